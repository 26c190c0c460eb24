/*
 * Copyright 2020 Go YAML Path Authors
 *
 * SPDX-License-Identifier: Apache-2.0
 */

package bpatch

import "fmt"

// ParseError reports malformed configuration syntax: bad escapes, trailing
// garbage after the outer object, a non-object root, or any other violation
// of the grammar in configlex.go/confignode.go.
type ParseError struct {
	Line   int
	Column int
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at line %d, column %d: %s", e.Line, e.Column, e.Reason)
}

// SchemaError reports a config document that parses cleanly but violates
// the dictionary/todo schema: wrong value kind at a schema position, or an
// unrecognized shape under a recognized key.
type SchemaError struct {
	Path   string
	Reason string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("schema error at %s: %s", e.Path, e.Reason)
}

// RangeError reports a decimal/hexadecimal element outside 0..255, or an
// empty source pattern in a replace pair.
type RangeError struct {
	Reason string
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("range error: %s", e.Reason)
}

// DuplicateName reports a lexeme name inserted twice into a Dictionary.
type DuplicateName struct {
	Name string
}

func (e *DuplicateName) Error() string {
	return fmt.Sprintf("duplicate lexeme name %q", e.Name)
}

// UnknownName reports a composite or stage pair referencing an undefined
// lexeme name.
type UnknownName struct {
	Name string
}

func (e *UnknownName) Error() string {
	return fmt.Sprintf("unknown lexeme name %q", e.Name)
}

// FileNotFound reports a `file` dictionary entry whose backing file could
// not be located in the working directory or the fallback directory.
type FileNotFound struct {
	Name string
}

func (e *FileNotFound) Error() string {
	return fmt.Sprintf("file not found: %s", e.Name)
}

// EmptyTodo reports a configuration with no replacement stages declared.
type EmptyTodo struct{}

func (e *EmptyTodo) Error() string {
	return "todo: no replacement stages declared"
}

// ImmutableSink reports an attempt to extend the chain past the terminal
// sink adapter.
type ImmutableSink struct{}

func (e *ImmutableSink) Error() string {
	return "sink adapter cannot have a successor"
}

// BrokenChain reports a primitive asked to Feed with no successor installed.
type BrokenChain struct{}

func (e *BrokenChain) Error() string {
	return "chain primitive has no successor"
}
