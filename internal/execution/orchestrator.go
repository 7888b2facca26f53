package execution

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"kitty/internal/domain"
)

// Plan is one test invocation with every command already resolved
type Plan struct {
	Commands domain.ExecCommands
	Cases    []domain.TestCase
	Timed    bool
}

// Orchestrator compiles the solution once, then runs test cases one by
// one in the given order
type Orchestrator struct {
	runner   *Runner
	reporter Reporter
	logger   *zap.Logger
}

// NewOrchestrator creates a new Orchestrator
func NewOrchestrator(runner *Runner, reporter Reporter, logger *zap.Logger) *Orchestrator {
	if reporter == nil {
		reporter = NopReporter{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Orchestrator{runner: runner, reporter: reporter, logger: logger}
}

// Run executes every case of the plan. Failing cases are reported and do
// not stop the run; compile and process failures abort it with an error.
func (o *Orchestrator) Run(ctx context.Context, plan Plan) (domain.RunSummary, error) {
	summary := domain.RunSummary{Timed: plan.Timed}

	if err := o.prepare(ctx, plan.Commands); err != nil {
		return summary, err
	}

	o.reporter.RunStarted(len(plan.Cases))
	start := time.Now()

	for _, tc := range plan.Cases {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		result, err := o.runCase(ctx, plan.Commands.Run, tc)
		if err != nil {
			return summary, fmt.Errorf("test %s: %w", tc.Name, err)
		}

		if plan.Timed {
			summary.Stats.Add(result.Duration)
		}
		if result.Outcome.Passed() {
			summary.Passed++
		} else {
			summary.Failed++
		}
		summary.Results = append(summary.Results, result)

		o.reporter.CaseFinished(result, plan.Timed)
	}

	summary.Duration = time.Since(start)
	o.reporter.RunFinished(summary)
	return summary, nil
}

// prepare compiles when needed and checks that the run program exists,
// so setup errors surface before any case runs.
func (o *Orchestrator) prepare(ctx context.Context, cmds domain.ExecCommands) error {
	if len(cmds.Run) == 0 {
		return fmt.Errorf("run %w", ErrEmptyCommand)
	}
	if cmds.Compile != nil {
		if err := o.compile(ctx, cmds.Compile); err != nil {
			return err
		}
	}
	return LookupProgram(cmds.Run)
}

func (o *Orchestrator) compile(ctx context.Context, cmd domain.Command) error {
	start := time.Now()
	err := o.runner.Compile(ctx, cmd)

	var compileErr *CompileError
	if errors.As(err, &compileErr) {
		o.reporter.CompileFailed(compileErr)
	}
	if err == nil {
		o.logger.Debug("compiled", zap.String("program", cmd.Program()), zap.Duration("elapsed", time.Since(start)))
	}
	return err
}

func (o *Orchestrator) runCase(ctx context.Context, run domain.Command, tc domain.TestCase) (domain.CaseResult, error) {
	input, err := tc.Source.Input(ctx)
	if err != nil {
		return domain.CaseResult{}, err
	}

	answer, checked, err := tc.Source.Answer(ctx, input)
	if err != nil {
		return domain.CaseResult{}, err
	}

	start := time.Now()
	out, err := o.runner.RunWithInput(ctx, run, input)
	elapsed := time.Since(start)
	if err != nil {
		return domain.CaseResult{}, err
	}

	return domain.CaseResult{
		Name:     tc.Name,
		Outcome:  Classify(out, input, answer, checked),
		Duration: elapsed,
	}, nil
}

// Classify turns a finished run into an outcome. A non-zero exit is a
// runtime error whatever was printed. Without an answer to check, any
// clean exit passes.
func Classify(out ProcessOutput, input, answer []byte, checked bool) domain.TestOutcome {
	outcome := domain.TestOutcome{
		Input:    lossy(input),
		ExitCode: out.ExitCode,
	}
	stdout := lossy(out.Stdout)

	if !out.Success() {
		outcome.Kind = domain.RuntimeError
		outcome.Stdout = stdout
		outcome.Stderr = lossy(out.Stderr)
		return outcome
	}

	expected := lossy(answer)
	if checked && !EqualAfterNormalisation(stdout, expected) {
		outcome.Kind = domain.WrongAnswer
		outcome.Expected = trimEnd(expected)
		outcome.Actual = trimEnd(stdout)
		return outcome
	}

	outcome.Kind = domain.Passed
	return outcome
}
