/*
 * Copyright 2020 Go YAML Path Authors
 *
 * SPDX-License-Identifier: Apache-2.0
 */

package bpatch

// Lexeme is an immutable, named, byte sequence. Source-side lexemes used as
// a replacement pattern must be non-empty; target-side lexemes may be
// empty, meaning "delete the match". Identity is by Name; a Lexeme's Bytes
// view is valid for as long as the Dictionary that produced it is alive.
type Lexeme struct {
	name  string
	bytes []byte
}

// Name returns the lexeme's dictionary key.
func (l Lexeme) Name() string {
	return l.name
}

// Bytes returns a read-only view of the lexeme's content. Callers must not
// mutate the returned slice.
func (l Lexeme) Bytes() []byte {
	return l.bytes
}

// Len is a convenience for len(l.Bytes()).
func (l Lexeme) Len() int {
	return len(l.bytes)
}

// valid reports whether l was actually constructed, as opposed to being the
// zero Lexeme returned by a failed lookup.
func (l Lexeme) valid() bool {
	return l.name != ""
}

// NewLexemeFromBytes constructs a Lexeme that takes ownership of owned.
// Callers must not retain or mutate owned after this call.
func NewLexemeFromBytes(name string, owned []byte) Lexeme {
	return Lexeme{name: name, bytes: owned}
}

// NewLexemeFromView constructs a Lexeme by copying view's bytes, so that the
// lexeme's lifetime does not depend on view's backing array.
func NewLexemeFromView(name string, view []byte) Lexeme {
	owned := make([]byte, len(view))
	copy(owned, view)
	return Lexeme{name: name, bytes: owned}
}

// Concat builds a new Lexeme named name by concatenating parts in order.
// Concat copies bytes rather than aliasing parts, so the result remains
// valid even if a constituent is later replaced in the dictionary (it
// cannot be: the dictionary forbids re-insertion of an existing name, but
// Concat does not rely on that to be correct).
func Concat(name string, parts ...Lexeme) (Lexeme, error) {
	total := 0
	for _, p := range parts {
		if !p.valid() {
			return Lexeme{}, &UnknownName{Name: "<composite part>"}
		}
		total += len(p.bytes)
	}
	buf := make([]byte, 0, total)
	for _, p := range parts {
		buf = append(buf, p.bytes...)
	}
	return Lexeme{name: name, bytes: buf}, nil
}
