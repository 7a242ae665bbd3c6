package compiler

import (
	"fmt"
	"time"
)

// NoStderr stands in for empty diagnostics so callers always get some text.
const NoStderr = "(no stderr output)"

// ExitError means the compiler ran and rejected the document.
type ExitError struct {
	ExitCode int
	Stderr   string
	// Excerpt is a window of the submitted source around where compile
	// errors usually land, for debugging.
	Excerpt string
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("compiler exited with code %d", e.ExitCode)
}

// MissingOutputError means the compiler exited cleanly but wrote no PDF,
// which points at the toolchain rather than the document.
type MissingOutputError struct {
	Path   string
	Stderr string
}

func (e *MissingOutputError) Error() string {
	return fmt.Sprintf("compiler succeeded but %s was not produced", e.Path)
}

// TimeoutError means the compiler was killed after exceeding its budget.
type TimeoutError struct {
	After  time.Duration
	Stderr string
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("compiler timed out after %s", e.After)
}

func stderrText(s string) string {
	if s == "" {
		return NoStderr
	}
	return s
}
