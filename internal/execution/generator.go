package execution

import (
	"context"
	"fmt"

	"kitty/internal/domain"
)

// GeneratorPrograms are the resolved commands of the debug helpers.
// Answer is nil when no validator is used.
type GeneratorPrograms struct {
	Input  domain.ExecCommands
	Answer *domain.ExecCommands
}

// GeneratorSource produces test cases by running an input generator and,
// optionally, an answer validator. It only holds compiled commands.
type GeneratorSource struct {
	runner *Runner
	input  domain.Command
	answer domain.Command
}

// PrepareGenerators compiles the generator programs once and returns a
// source that only runs them
func (o *Orchestrator) PrepareGenerators(ctx context.Context, progs GeneratorPrograms) (*GeneratorSource, error) {
	if progs.Input.Compile != nil {
		if err := o.compile(ctx, progs.Input.Compile); err != nil {
			return nil, fmt.Errorf("failed to compile your input generator: %w", err)
		}
	}
	if err := LookupProgram(progs.Input.Run); err != nil {
		return nil, fmt.Errorf("input generator: %w", err)
	}

	source := &GeneratorSource{runner: o.runner, input: progs.Input.Run}

	if progs.Answer != nil {
		if progs.Answer.Compile != nil {
			if err := o.compile(ctx, progs.Answer.Compile); err != nil {
				return nil, fmt.Errorf("failed to compile your answer validator: %w", err)
			}
		}
		if err := LookupProgram(progs.Answer.Run); err != nil {
			return nil, fmt.Errorf("answer validator: %w", err)
		}
		source.answer = progs.Answer.Run
	}

	return source, nil
}

// ChecksAnswer reports whether a validator produces expected answers
func (g *GeneratorSource) ChecksAnswer() bool {
	return g.answer != nil
}

// Input runs the input generator with empty stdin
func (g *GeneratorSource) Input(ctx context.Context) ([]byte, error) {
	out, err := g.runner.RunWithInput(ctx, g.input, nil)
	if err != nil {
		return nil, err
	}
	if !out.Success() {
		return nil, generatorError("input", out)
	}
	return out.Stdout, nil
}

// Answer runs the validator on input. Without one there is nothing to check.
func (g *GeneratorSource) Answer(ctx context.Context, input []byte) ([]byte, bool, error) {
	if g.answer == nil {
		return nil, false, nil
	}
	out, err := g.runner.RunWithInput(ctx, g.answer, input)
	if err != nil {
		return nil, false, err
	}
	if !out.Success() {
		return nil, false, generatorError("answer", out)
	}
	return out.Stdout, true, nil
}

func generatorError(name string, out ProcessOutput) *GeneratorError {
	return &GeneratorError{
		Name:     name,
		ExitCode: out.ExitCode,
		Stdout:   lossy(out.Stdout),
		Stderr:   lossy(out.Stderr),
	}
}
