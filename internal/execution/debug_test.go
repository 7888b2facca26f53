package execution

import (
	"context"
	"errors"
	"strings"
	"testing"

	"kitty/internal/domain"
)

func TestOrchestrator_Debug(t *testing.T) {
	requireShell(t)
	dir := t.TempDir()
	sum := shellCommand(t, dir, "sum.sh", sumScript)
	gen := shellCommand(t, dir, "gen.sh", `echo "1 2"`)
	validator := shellCommand(t, dir, "answer.sh", sumScript)

	t.Run("all iterations pass", func(t *testing.T) {
		reporter := &recordingReporter{}
		o := NewOrchestrator(NewRunner(nil, 0), reporter, nil)

		summary, err := o.Debug(context.Background(), DebugPlan{
			Commands: domain.ExecCommands{Run: sum},
			Generators: GeneratorPrograms{
				Input:  domain.ExecCommands{Run: gen},
				Answer: &domain.ExecCommands{Run: validator},
			},
			Iterations: 5,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if summary.Failure != nil || summary.Completed != 5 || !summary.Checked {
			t.Errorf("unexpected summary: %+v", summary)
		}
		if summary.Stats.Count() != 5 {
			t.Errorf("stats count = %d, want 5", summary.Stats.Count())
		}
		if len(reporter.iterations) != 5 || reporter.debugSummary == nil {
			t.Errorf("reporter saw %d iterations", len(reporter.iterations))
		}
	})

	t.Run("stops at the first failing case", func(t *testing.T) {
		counter := dir + "/count"
		// prints the right answer for the first two inputs only
		flaky := shellCommand(t, dir, "flaky.sh", `read a b
n=$(cat `+counter+` 2>/dev/null || echo 0)
n=$((n + 1))
echo $n > `+counter+`
if [ $n -ge 3 ]; then echo 0; else echo $((a + b)); fi`)

		o := NewOrchestrator(NewRunner(nil, 0), nil, nil)
		summary, err := o.Debug(context.Background(), DebugPlan{
			Commands: domain.ExecCommands{Run: flaky},
			Generators: GeneratorPrograms{
				Input:  domain.ExecCommands{Run: gen},
				Answer: &domain.ExecCommands{Run: validator},
			},
			Iterations: 10,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if summary.Completed != 3 {
			t.Errorf("completed = %d, want 3", summary.Completed)
		}
		if summary.Failure == nil || summary.Failure.Kind != domain.WrongAnswer {
			t.Fatalf("expected a wrong answer, got %+v", summary.Failure)
		}
		if summary.Failure.Input != "1 2\n" || summary.Failure.Expected != "3" || summary.Failure.Actual != "0" {
			t.Errorf("unexpected failure: %+v", summary.Failure)
		}
	})

	t.Run("without validator only crashes fail", func(t *testing.T) {
		o := NewOrchestrator(NewRunner(nil, 0), nil, nil)
		summary, err := o.Debug(context.Background(), DebugPlan{
			Commands:   domain.ExecCommands{Run: shellCommand(t, dir, "wrong.sh", `echo 42`)},
			Generators: GeneratorPrograms{Input: domain.ExecCommands{Run: gen}},
			Iterations: 3,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if summary.Failure != nil || summary.Completed != 3 || summary.Checked {
			t.Errorf("unexpected summary: %+v", summary)
		}

		summary, err = o.Debug(context.Background(), DebugPlan{
			Commands:   domain.ExecCommands{Run: shellCommand(t, dir, "crash.sh", `exit 139`)},
			Generators: GeneratorPrograms{Input: domain.ExecCommands{Run: gen}},
			Iterations: 3,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if summary.Failure == nil || summary.Failure.Kind != domain.RuntimeError || summary.Completed != 1 {
			t.Errorf("unexpected summary: %+v", summary)
		}
	})

	t.Run("generator failure halts", func(t *testing.T) {
		reporter := &recordingReporter{}
		o := NewOrchestrator(NewRunner(nil, 0), reporter, nil)
		_, err := o.Debug(context.Background(), DebugPlan{
			Commands:   domain.ExecCommands{Run: sum},
			Generators: GeneratorPrograms{Input: domain.ExecCommands{Run: shellCommand(t, dir, "badgen.sh", `echo oops >&2; exit 4`)}},
			Iterations: 3,
		})
		var genErr *GeneratorError
		if !errors.As(err, &genErr) {
			t.Fatalf("expected *GeneratorError, got %v", err)
		}
		if genErr.Name != "input" || genErr.ExitCode != 4 {
			t.Errorf("unexpected generator error: %+v", genErr)
		}
		if !strings.Contains(err.Error(), "Generator output:\noops") {
			t.Errorf("message = %q", err.Error())
		}
		if reporter.aborted == nil || reporter.debugSummary != nil {
			t.Error("expected DebugAborted without DebugFinished")
		}
	})

	t.Run("generator compile failure", func(t *testing.T) {
		o := NewOrchestrator(NewRunner(nil, 0), nil, nil)
		_, err := o.Debug(context.Background(), DebugPlan{
			Commands: domain.ExecCommands{Run: sum},
			Generators: GeneratorPrograms{Input: domain.ExecCommands{
				Compile: shellCommand(t, dir, "gencc.sh", `exit 1`),
				Run:     gen,
			}},
			Iterations: 3,
		})
		if err == nil || !strings.HasPrefix(err.Error(), "failed to compile your input generator") {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("non-positive iterations", func(t *testing.T) {
		o := NewOrchestrator(NewRunner(nil, 0), nil, nil)
		if _, err := o.Debug(context.Background(), DebugPlan{Iterations: 0}); err == nil {
			t.Error("expected an error")
		}
	})
}
