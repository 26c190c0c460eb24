/*
 * Copyright 2020 Go YAML Path Authors
 *
 * SPDX-License-Identifier: Apache-2.0
 */

package bpatch_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zproksi/bpatch/pkg/bpatch"
)

func TestLexemeAccessors(t *testing.T) {
	l := bpatch.NewLexemeFromBytes("greeting", []byte("hi"))
	require.Equal(t, "greeting", l.Name())
	require.Equal(t, []byte("hi"), l.Bytes())
	require.Equal(t, 2, l.Len())
}

func TestNewLexemeFromViewCopies(t *testing.T) {
	view := []byte("abc")
	l := bpatch.NewLexemeFromView("x", view)
	view[0] = 'z'
	require.Equal(t, []byte("abc"), l.Bytes(), "lexeme must not alias the caller's backing array")
}

func TestConcat(t *testing.T) {
	a := bpatch.NewLexemeFromBytes("a", []byte("foo"))
	b := bpatch.NewLexemeFromBytes("b", []byte("bar"))

	composite, err := bpatch.Concat("ab", a, b)
	require.NoError(t, err)
	require.Equal(t, "ab", composite.Name())
	require.Equal(t, []byte("foobar"), composite.Bytes())
}

func TestConcatEmptyParts(t *testing.T) {
	composite, err := bpatch.Concat("empty")
	require.NoError(t, err)
	require.Equal(t, 0, composite.Len())
}

func TestConcatRejectsInvalidPart(t *testing.T) {
	var zero bpatch.Lexeme
	_, err := bpatch.Concat("broken", zero)
	require.Error(t, err)
	require.IsType(t, &bpatch.UnknownName{}, err)
}
