/*
 * Copyright 2020 Go YAML Path Authors
 *
 * SPDX-License-Identifier: Apache-2.0
 */

package bpatch

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestByteTableTransformer(t *testing.T) {
	pairs := []ResolvedPair{
		{Source: NewLexemeFromBytes("a", []byte("a")), Target: NewLexemeFromBytes("1", []byte("1"))},
		{Source: NewLexemeFromBytes("b", []byte("b")), Target: NewLexemeFromBytes("2", []byte("22"))},
	}
	xform := newByteTableTransformer(pairs)
	rec := &recordingTransformer{}
	require.NoError(t, xform.SetSuccessor(rec))

	for _, b := range []byte("abc") {
		xform.Feed(b)
	}
	xform.Finish()

	require.Equal(t, "122c", string(rec.out))
	require.True(t, rec.finished)
}

func TestByteTableTransformerDuplicateSourceFirstWins(t *testing.T) {
	pairs := []ResolvedPair{
		{Source: NewLexemeFromBytes("a1", []byte("a")), Target: NewLexemeFromBytes("t1", []byte("1"))},
		{Source: NewLexemeFromBytes("a2", []byte("a")), Target: NewLexemeFromBytes("t2", []byte("2"))},
	}
	xform := newByteTableTransformer(pairs)
	rec := &recordingTransformer{}
	require.NoError(t, xform.SetSuccessor(rec))

	xform.Feed('a')
	xform.Finish()

	require.Equal(t, "1", string(rec.out))
}
