package execution

import (
	"context"
	"errors"
	"strconv"

	"kitty/internal/domain"
)

// DebugPlan runs the solution against generated cases
type DebugPlan struct {
	Commands   domain.ExecCommands
	Generators GeneratorPrograms
	Iterations int
}

// Debug compiles everything once, then runs up to Iterations generated
// cases and stops at the first failing one. Generator failures halt the
// run with a *GeneratorError.
func (o *Orchestrator) Debug(ctx context.Context, plan DebugPlan) (domain.DebugSummary, error) {
	summary := domain.DebugSummary{Requested: plan.Iterations}
	if plan.Iterations <= 0 {
		return summary, errors.New("the number of test cases must be positive")
	}

	if err := o.prepare(ctx, plan.Commands); err != nil {
		return summary, err
	}
	source, err := o.PrepareGenerators(ctx, plan.Generators)
	if err != nil {
		return summary, err
	}
	summary.Checked = source.ChecksAnswer()

	o.reporter.DebugStarted(plan.Iterations)

	for n := 1; n <= plan.Iterations; n++ {
		if err := ctx.Err(); err != nil {
			o.reporter.DebugAborted(err)
			return summary, err
		}
		o.reporter.IterationStarted(n, plan.Iterations)

		tc := domain.TestCase{Name: strconv.Itoa(n), Source: source}
		result, err := o.runCase(ctx, plan.Commands.Run, tc)
		if err != nil {
			o.reporter.DebugAborted(err)
			return summary, err
		}

		summary.Stats.Add(result.Duration)
		summary.Completed = n

		if !result.Outcome.Passed() {
			outcome := result.Outcome
			summary.Failure = &outcome
			break
		}
	}

	o.reporter.DebugFinished(summary)
	return summary, nil
}
