package domain

import (
	"context"
	"fmt"
	"os"
)

// Command is an argv: the program followed by its arguments.
type Command []string

// Program returns the executable name, or "" for an empty command
func (c Command) Program() string {
	if len(c) == 0 {
		return ""
	}
	return c[0]
}

// Args returns the arguments after the program name
func (c Command) Args() []string {
	if len(c) < 2 {
		return nil
	}
	return c[1:]
}

// ExecCommands holds the resolved commands for one program.
// Compile is nil for languages that run straight from source.
type ExecCommands struct {
	Compile Command
	Run     Command
}

// Source produces the input and the expected answer of a test case on demand
type Source interface {
	Input(ctx context.Context) ([]byte, error)
	// Answer returns the expected answer for input. checked is false when
	// there is nothing to compare against.
	Answer(ctx context.Context, input []byte) (answer []byte, checked bool, err error)
}

// TestCase is one named input/answer pairing
type TestCase struct {
	Name   string
	Source Source
}

// FileSource reads a test case from a .in/.ans pair on disk
type FileSource struct {
	InputFile  string
	AnswerFile string
}

// Input reads the .in file
func (f FileSource) Input(ctx context.Context) ([]byte, error) {
	data, err := os.ReadFile(f.InputFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load input: %w", err)
	}
	return data, nil
}

// Answer reads the .ans file
func (f FileSource) Answer(ctx context.Context, input []byte) ([]byte, bool, error) {
	data, err := os.ReadFile(f.AnswerFile)
	if err != nil {
		return nil, false, fmt.Errorf("failed to load expected answer: %w", err)
	}
	return data, true, nil
}
