/*
 * Copyright 2020 Go YAML Path Authors
 *
 * SPDX-License-Identifier: Apache-2.0
 */

// Package bpatch is a thin façade over pkg/bpatch for callers who want to
// compile a configuration and run it over an io.Reader/io.Writer pair
// without dealing with the engine's streaming push interfaces directly.
package bpatch

import (
	"bufio"
	"io"
	"os"

	"github.com/zproksi/bpatch/pkg/bpatch"
)

// Engine is the compiled configuration produced by CompileFile.
type Engine = bpatch.Engine

type options struct {
	fallbackDir string
	diag        bpatch.DiagnosticsSink
	loader      bpatch.FileLoader
}

// Option configures CompileFile.
type Option func(*options)

// WithFallbackDir sets the directory `file` dictionary entries resolve
// against when not found relative to the working directory.
func WithFallbackDir(dir string) Option {
	return func(o *options) { o.fallbackDir = dir }
}

// WithDiagnostics installs a sink for non-fatal compile warnings. The
// default discards them. The sink is used by CompileFile only: Run builds
// its chain with NopDiagnostics, so warnings raised while building the
// chain (trie prefix conflicts) are discarded.
func WithDiagnostics(diag bpatch.DiagnosticsSink) Option {
	return func(o *options) { o.diag = diag }
}

// WithFileLoader overrides how `file` dictionary entries are resolved. The
// default reads from the local filesystem (bpatch.OSFileLoader).
func WithFileLoader(loader bpatch.FileLoader) Option {
	return func(o *options) { o.loader = loader }
}

// CompileFile reads and compiles the configuration document at configPath.
func CompileFile(configPath string, opts ...Option) (*Engine, error) {
	o := options{diag: bpatch.NopDiagnostics{}, loader: bpatch.OSFileLoader{}}
	for _, apply := range opts {
		apply(&o)
	}

	config, err := os.ReadFile(configPath)
	if err != nil {
		return nil, &bpatch.FileNotFound{Name: configPath}
	}

	return bpatch.CompileEngine(config, o.loader, o.fallbackDir, o.diag)
}

// Run streams src through engine's chain and writes the result to dst. It
// builds one fresh Chain per call, so the same Engine may back multiple
// concurrent Run calls over independent streams.
func Run(engine *Engine, src io.Reader, dst io.Writer) error {
	sink := &writerSink{w: bufio.NewWriter(dst)}
	chain, err := engine.NewChain(sink, bpatch.NopDiagnostics{})
	if err != nil {
		return err
	}

	reader := bufio.NewReader(src)
	buf := make([]byte, 4096)
	for {
		n, readErr := reader.Read(buf)
		for i := 0; i < n; i++ {
			chain.FeedByte(buf[i])
		}
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			return readErr
		}
	}
	chain.Finish()

	return sink.flushErr()
}

// writerSink adapts an io.Writer to bpatch.ByteSink, buffering bytes and
// flushing on the end-of-data signal.
type writerSink struct {
	w     *bufio.Writer
	total int64
	err   error
}

func (s *writerSink) WriteByte(b byte, endOfData bool) (int, error) {
	if endOfData {
		if s.err == nil {
			s.err = s.w.Flush()
		}
		return 0, s.err
	}
	if s.err != nil {
		return 0, s.err
	}
	if err := s.w.WriteByte(b); err != nil {
		s.err = err
		return 0, err
	}
	s.total++
	return 1, nil
}

func (s *writerSink) TotalWritten() int64 {
	return s.total
}

func (s *writerSink) flushErr() error {
	return s.err
}
