package execution

import (
	"errors"
	"fmt"
	"strings"
)

// ErrEmptyCommand is returned for a command with no program
var ErrEmptyCommand = errors.New("command is empty")

// ProcessErrorKind says which step of running a program failed
type ProcessErrorKind int

const (
	ProgramNotFound ProcessErrorKind = iota + 1
	SpawnFailed
	StdinWriteFailed
	WaitFailed
)

func (k ProcessErrorKind) String() string {
	switch k {
	case ProgramNotFound:
		return "program not found"
	case SpawnFailed:
		return "spawn failed"
	case StdinWriteFailed:
		return "stdin write failed"
	case WaitFailed:
		return "wait failed"
	}
	return "unknown"
}

// ProcessError is a failure to run a program at all, as opposed to the
// program running and exiting non-zero
type ProcessError struct {
	Kind    ProcessErrorKind
	Program string
	Err     error
}

func (e *ProcessError) Error() string {
	switch e.Kind {
	case ProgramNotFound:
		return fmt.Sprintf("failed to find the program '%s'", e.Program)
	case SpawnFailed:
		return fmt.Sprintf("failed to run the program '%s': %v", e.Program, e.Err)
	case StdinWriteFailed:
		return fmt.Sprintf("failed to write test case input to '%s': %v", e.Program, e.Err)
	case WaitFailed:
		return fmt.Sprintf("failed to wait for '%s': %v", e.Program, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Program, e.Err)
}

func (e *ProcessError) Unwrap() error {
	return e.Err
}

// IsProcessError reports whether err is a ProcessError of the given kind
func IsProcessError(err error, kind ProcessErrorKind) bool {
	var pe *ProcessError
	return errors.As(err, &pe) && pe.Kind == kind
}

// CompileError is a compiler that ran and exited non-zero
type CompileError struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("failed to compile program (exit status: %d)", e.ExitCode)
}

// GeneratorError is an input generator or answer validator that exited
// non-zero. It points at a broken harness, not a broken solution.
type GeneratorError struct {
	Name     string
	ExitCode int
	Stdout   string
	Stderr   string
}

func (e *GeneratorError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "your %s generator exited with a non-zero exit code (%d)", e.Name, e.ExitCode)
	if out := strings.TrimSpace(e.Stdout + "\n" + e.Stderr); out != "" {
		fmt.Fprintf(&b, "\n\nGenerator output:\n%s", out)
	}
	return b.String()
}
