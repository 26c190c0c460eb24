/*
 * Copyright 2020 Go YAML Path Authors
 *
 * SPDX-License-Identifier: Apache-2.0
 */

package bpatch

// ByteSource is the pull interface the engine consumes bytes from. It is an
// external collaborator (spec §6): the core never opens a file or decides
// buffering strategy, it only calls Read.
type ByteSource interface {
	Read(buf []byte) (nRead int, err error)
	Exhausted() bool
	TotalRead() int64
}

// ByteSink is the push interface the engine writes transformed bytes to.
// WriteByte's endOfData flag is the unique flush-and-commit signal; it is
// delivered exactly once, alongside the final (otherwise irrelevant) byte
// value when there is no final byte to report.
type ByteSink interface {
	WriteByte(b byte, endOfData bool) (nWritten int, err error)
	TotalWritten() int64
}

// FileLoader resolves a `file` dictionary entry's relativeName to its
// content, first against the working directory and then against
// fallbackDir. It returns FileNotFound if neither location has the file.
type FileLoader interface {
	Load(relativeName, fallbackDir string) ([]byte, error)
}

// Severity classifies a diagnostic reported by the engine during compile or
// replay. The three-level taxonomy (info/warning/error) follows the
// original C++ implementation's coloredconsole severities.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "unknown"
	}
}

// DiagnosticsSink receives non-fatal warnings (empty stage, duplicate
// pattern within a stage, trie prefix-priority conflicts) and informational
// messages. The core never writes to stdout/stderr directly; it only calls
// this collaborator (spec §7, §9).
type DiagnosticsSink interface {
	Diagnostic(severity Severity, message string)
}

// NopDiagnostics discards every diagnostic. Useful as a default when a
// caller doesn't care about warnings.
type NopDiagnostics struct{}

func (NopDiagnostics) Diagnostic(Severity, string) {}
