package compiler

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

const (
	DefaultBinary  = "tectonic"
	DefaultTimeout = 2 * time.Minute

	sourceFile = "report.tex"
	outputFile = "report.pdf"

	// How long Wait may block on pipes held open by orphaned children
	// after the compiler is killed.
	waitDelay = 2 * time.Second
)

// Options configures a Compiler.
type Options struct {
	Binary  string
	Timeout time.Duration
	// ScratchDir is the parent of per-compile temp dirs; empty means os.TempDir.
	ScratchDir string
}

// Result is a successful compilation.
type Result struct {
	PDF      []byte
	Log      string
	Duration time.Duration
}

// Compiler runs an external LaTeX compiler on one document at a time in a
// private scratch directory.
type Compiler struct {
	binary     string
	timeout    time.Duration
	scratchDir string
	log        *slog.Logger
}

func New(opts Options, log *slog.Logger) *Compiler {
	if opts.Binary == "" {
		opts.Binary = DefaultBinary
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	return &Compiler{
		binary:     opts.Binary,
		timeout:    opts.Timeout,
		scratchDir: opts.ScratchDir,
		log:        log.With("component", "compiler"),
	}
}

// Binary returns the compiler executable.
func (c *Compiler) Binary() string { return c.binary }

// Compile writes document to report.tex in a fresh temp dir, runs the
// compiler with the file name as its only argument, and returns the bytes of
// report.pdf. Failures are *ExitError, *MissingOutputError or *TimeoutError.
// Any other error is infrastructure trouble. The temp dir is removed before
// Compile returns.
func (c *Compiler) Compile(ctx context.Context, document string) (*Result, error) {
	dir, err := os.MkdirTemp(c.scratchDir, "report-*")
	if err != nil {
		return nil, fmt.Errorf("create scratch dir: %w", err)
	}
	defer os.RemoveAll(dir)

	if err := os.WriteFile(filepath.Join(dir, sourceFile), []byte(document), 0o600); err != nil {
		return nil, fmt.Errorf("write %s: %w", sourceFile, err)
	}

	runCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	cmd := exec.CommandContext(runCtx, c.binary, sourceFile)
	cmd.Dir = dir
	cmd.WaitDelay = waitDelay

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	runErr := cmd.Run()
	elapsed := time.Since(start)

	if runErr != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("compile canceled: %w", ctx.Err())
		}
		if errors.Is(runCtx.Err(), context.DeadlineExceeded) {
			c.log.Warn("compiler timed out", "timeout", c.timeout)
			return nil, &TimeoutError{After: c.timeout, Stderr: stderrText(stderr.String())}
		}
		var exitErr *exec.ExitError
		if errors.As(runErr, &exitErr) {
			c.log.Info("compiler rejected document",
				"exit_code", exitErr.ExitCode(),
				"duration_ms", elapsed.Milliseconds(),
			)
			return nil, &ExitError{
				ExitCode: exitErr.ExitCode(),
				Stderr:   stderrText(stderr.String()),
				Excerpt:  Excerpt(document, 15, 25),
			}
		}
		return nil, fmt.Errorf("run %s: %w", c.binary, runErr)
	}

	pdf, err := os.ReadFile(filepath.Join(dir, outputFile))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, &MissingOutputError{Path: outputFile, Stderr: stderrText(stderr.String())}
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", outputFile, err)
	}

	c.log.Info("compiled document",
		"bytes", len(pdf),
		"duration_ms", elapsed.Milliseconds(),
	)
	return &Result{PDF: pdf, Log: stdout.String(), Duration: elapsed}, nil
}

// Excerpt returns lines from..to (1-based, inclusive) of document.
func Excerpt(document string, from, to int) string {
	lines := strings.Split(document, "\n")
	if from < 1 {
		from = 1
	}
	if to > len(lines) {
		to = len(lines)
	}
	if from > to {
		return ""
	}
	return strings.Join(lines[from-1:to], "\n")
}
