/*
 * Copyright 2020 Go YAML Path Authors
 *
 * SPDX-License-Identifier: Apache-2.0
 */

package bpatch_test

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/stretchr/testify/require"

	"github.com/zproksi/bpatch/pkg/bpatch"

	rootbpatch "github.com/zproksi/bpatch"
)

// Example compiles a single-stage configuration from disk and streams a
// greeting through it, the way a cmd/bpatch invocation would.
func Example() {
	dir, err := os.MkdirTemp("", "bpatch-example")
	if err != nil {
		fmt.Println(err)
		return
	}
	defer os.RemoveAll(dir)

	configPath := filepath.Join(dir, "config.json")
	config := []byte(`{
		"dictionary": {
			"text": {"hello": "hello", "hi": "hi"}
		},
		"todo": [
			{"replace": {"hello": "hi"}}
		]
	}`)
	if err := os.WriteFile(configPath, config, 0o600); err != nil {
		fmt.Println(err)
		return
	}

	engine, err := rootbpatch.CompileFile(configPath)
	if err != nil {
		fmt.Println(err)
		return
	}

	var out bytes.Buffer
	if err := rootbpatch.Run(engine, bytes.NewBufferString("hello, world"), &out); err != nil {
		fmt.Println(err)
		return
	}

	want := "hi, world"
	if out.String() == want {
		fmt.Println("success")
	} else {
		dmp := diffmatchpatch.New()
		diffs := dmp.DiffMain(out.String(), want, false)
		fmt.Println(dmp.DiffPrettyText(diffs))
	}
	// Output: success
}

// Example_fallbackDir shows a file-backed lexeme resolved through a
// fallback directory rather than the working directory.
func Example_fallbackDir() {
	configDir, err := os.MkdirTemp("", "bpatch-example-config")
	if err != nil {
		fmt.Println(err)
		return
	}
	defer os.RemoveAll(configDir)

	assetsDir, err := os.MkdirTemp("", "bpatch-example-assets")
	if err != nil {
		fmt.Println(err)
		return
	}
	defer os.RemoveAll(assetsDir)

	if err := os.WriteFile(filepath.Join(assetsDir, "banner.txt"), []byte("ACME"), 0o600); err != nil {
		fmt.Println(err)
		return
	}

	configPath := filepath.Join(configDir, "config.json")
	config := []byte(`{
		"dictionary": {
			"text": {"marker": "NAME"},
			"file": {"banner": "banner.txt"}
		},
		"todo": [
			{"replace": {"marker": "banner"}}
		]
	}`)
	if err := os.WriteFile(configPath, config, 0o600); err != nil {
		fmt.Println(err)
		return
	}

	engine, err := rootbpatch.CompileFile(configPath, rootbpatch.WithFallbackDir(assetsDir))
	if err != nil {
		fmt.Println(err)
		return
	}

	var out bytes.Buffer
	if err := rootbpatch.Run(engine, bytes.NewBufferString("Hello, NAME!"), &out); err != nil {
		fmt.Println(err)
		return
	}

	want := "Hello, ACME!"
	if out.String() == want {
		fmt.Println("success")
	} else {
		dmp := diffmatchpatch.New()
		diffs := dmp.DiffMain(out.String(), want, false)
		fmt.Println(dmp.DiffPrettyText(diffs))
	}
	// Output: success
}

// recordingDiag captures diagnostics emitted while compiling a
// configuration with an empty replace stage.
type recordingDiag struct {
	messages []string
}

func (r *recordingDiag) Diagnostic(severity bpatch.Severity, message string) {
	r.messages = append(r.messages, severity.String()+": "+message)
}

func TestCompileFileWithDiagnosticsOption(t *testing.T) {
	dir, err := os.MkdirTemp("", "bpatch-diag")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	configPath := filepath.Join(dir, "config.json")
	config := []byte(`{
		"dictionary": {"text": {"a": "x", "b": "y"}},
		"todo": [{"replace": {}}, {"replace": {"a": "b"}}]
	}`)
	require.NoError(t, os.WriteFile(configPath, config, 0o600))

	diag := &recordingDiag{}
	engine, err := rootbpatch.CompileFile(configPath, rootbpatch.WithDiagnostics(diag))
	require.NoError(t, err)
	require.NotNil(t, engine)
	require.NotEmpty(t, diag.messages)
}

func TestCompileFileMissingConfigReturnsFileNotFound(t *testing.T) {
	_, err := rootbpatch.CompileFile(filepath.Join(os.TempDir(), "does-not-exist.json"))
	require.Error(t, err)
	require.IsType(t, &bpatch.FileNotFound{}, err)
}
