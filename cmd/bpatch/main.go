/*
Command bpatch runs the binary-patch engine end to end: it reads a
configuration document describing a dictionary and replacement stages,
then streams one or more source files through the compiled chain,
writing the patched result to a destination file or glob-expanded set of
destinations.

Usage:

	bpatch [flags] --config actions.json SOURCE [SOURCE...]

The flags are:

	-c, --config FILE
		Configuration document describing the dictionary and replacement
		stages. Required.

	-o, --out FILE
		Destination file. When exactly one source is given and --out is
		set, the patched stream is written there. Otherwise each source
		SOURCE is written to SOURCE + ".patched" unless --overwrite is
		given, in which case SOURCE is overwritten in place.

	--overwrite
		Write the patched stream back over each source file instead of
		appending a ".patched" suffix.

	--aux-dir DIR
		Directory `file` dictionary entries fall back to when not found
		relative to the working directory.

	-v, --verbose
		Emit informational diagnostics in addition to warnings.
*/
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/zproksi/bpatch/pkg/bpatch"
)

const (
	exitSuccess = iota
	exitUsageError
	exitCompileError
	exitRunError
)

var (
	returnCode = exitSuccess
	configPath = pflag.StringP("config", "c", "", "configuration document describing the dictionary and replacement stages")
	outPath    = pflag.StringP("out", "o", "", "destination file (single-source mode only)")
	overwrite  = pflag.Bool("overwrite", false, "write the patched stream back over each source file")
	auxDir     = pflag.String("aux-dir", "", "fallback directory for `file` dictionary entries")
	verbose    = pflag.BoolP("verbose", "v", false, "emit informational diagnostics in addition to warnings")
)

func main() {
	defer func() { os.Exit(returnCode) }()

	pflag.Parse()
	sources := expandGlobs(pflag.Args())

	if *configPath == "" || len(sources) == 0 {
		fmt.Fprintln(os.Stderr, "usage: bpatch [flags] --config actions.json SOURCE [SOURCE...]")
		pflag.PrintDefaults()
		returnCode = exitUsageError
		return
	}
	if *outPath != "" && len(sources) > 1 {
		fmt.Fprintln(os.Stderr, "ERROR: --out may only be used with a single SOURCE")
		returnCode = exitUsageError
		return
	}

	logger := newLogger(*verbose)
	defer func() { _ = logger.Sync() }()

	diag := &zapDiagnostics{logger: logger}

	engine, err := bpatch.CompileFile(*configPath, bpatch.WithFallbackDir(*auxDir), bpatch.WithDiagnostics(diag))
	if err != nil {
		logger.Error("compilation failed", zap.Error(err))
		returnCode = exitCompileError
		return
	}

	for _, src := range sources {
		dst := destinationFor(src)
		if err := runOne(engine, src, dst); err != nil {
			logger.Error("patching failed", zap.String("source", src), zap.Error(err))
			returnCode = exitRunError
			return
		}
		logger.Info("patched", zap.String("source", src), zap.String("destination", dst))
	}
}

func destinationFor(src string) string {
	if *outPath != "" {
		return *outPath
	}
	if *overwrite {
		return src
	}
	return src + ".patched"
}

func runOne(engine *bpatch.Engine, src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return &bpatch.FileNotFound{Name: src}
	}
	defer in.Close()

	tmp := dst + ".tmp"
	out, err := os.Create(tmp)
	if err != nil {
		return err
	}

	if err := bpatch.Run(engine, in, out); err != nil {
		out.Close()
		os.Remove(tmp)
		return err
	}
	if err := out.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, dst)
}

// expandGlobs resolves shell-style glob patterns in args itself, matching
// spec.md §1's listing of glob expansion as an external collaborator
// concern that nonetheless needs a concrete implementation to run.
func expandGlobs(args []string) []string {
	var out []string
	for _, a := range args {
		matches, err := filepath.Glob(a)
		if err != nil || len(matches) == 0 {
			out = append(out, a)
			continue
		}
		out = append(out, matches...)
	}
	return out
}

func newLogger(verbose bool) *zap.Logger {
	config := zap.NewProductionConfig()
	config.Encoding = "console"
	config.EncoderConfig = zap.NewDevelopmentEncoderConfig()
	level := zapcore.WarnLevel
	if verbose {
		level = zapcore.InfoLevel
	}
	config.Level = zap.NewAtomicLevelAt(level)

	logger, err := config.Build()
	if err != nil {
		panic(err)
	}
	return logger
}

// zapDiagnostics implements bpatch.DiagnosticsSink on top of a zap.Logger.
type zapDiagnostics struct {
	logger *zap.Logger
}

func (d *zapDiagnostics) Diagnostic(severity bpatch.Severity, message string) {
	switch severity {
	case bpatch.SeverityError:
		d.logger.Error(message)
	case bpatch.SeverityWarning:
		d.logger.Warn(message)
	default:
		d.logger.Info(message)
	}
}
