/*
 * Copyright 2020 Go YAML Path Authors
 *
 * SPDX-License-Identifier: Apache-2.0
 */

package bpatch

import "os"
import "path/filepath"

// Engine is a compiled configuration: a dictionary and the ordered stages
// it produced, ready to drive one or more Chains (a compiled dictionary
// may back several independently-fed chains, spec.md §5).
type Engine struct {
	Dictionary *Dictionary
	Stages     []Stage
}

// CompileEngine parses and compiles config into an Engine. See Compile for
// the loader/fallbackDir/diag contract.
func CompileEngine(config []byte, loader FileLoader, fallbackDir string, diag DiagnosticsSink) (*Engine, error) {
	dict, stages, err := Compile(config, loader, fallbackDir, diag)
	if err != nil {
		return nil, err
	}
	return &Engine{Dictionary: dict, Stages: stages}, nil
}

// NewChain builds a fresh Chain over the engine's stages, writing to sink.
func (e *Engine) NewChain(sink ByteSink, diag DiagnosticsSink) (*Chain, error) {
	return BuildChain(e.Stages, sink, diag)
}

// OSFileLoader resolves `file` dictionary entries against the process's
// working directory first, falling back to fallbackDir (spec.md §6).
type OSFileLoader struct{}

func (OSFileLoader) Load(relativeName, fallbackDir string) ([]byte, error) {
	if b, err := os.ReadFile(relativeName); err == nil {
		return b, nil
	}
	if fallbackDir == "" {
		return nil, &FileNotFound{Name: relativeName}
	}
	b, err := os.ReadFile(filepath.Join(fallbackDir, relativeName))
	if err != nil {
		return nil, &FileNotFound{Name: relativeName}
	}
	return b, nil
}
