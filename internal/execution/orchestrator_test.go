package execution

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"kitty/internal/domain"
)

const sumScript = `set -- $(cat); echo $(($1 + $2))`

func TestOrchestrator_Run(t *testing.T) {
	requireShell(t)
	dir := t.TempDir()
	sum := shellCommand(t, dir, "sum.sh", sumScript)

	tests := []struct {
		name     string
		run      domain.Command
		cases    []domain.TestCase
		wantKind []domain.OutcomeKind
		passed   int
		failed   int
	}{
		{
			name:     "correct answer passes",
			run:      sum,
			cases:    []domain.TestCase{memCase("1", "1 2\n", "3\n")},
			wantKind: []domain.OutcomeKind{domain.Passed},
			passed:   1,
		},
		{
			name:     "answer differing only in trailing whitespace passes",
			run:      sum,
			cases:    []domain.TestCase{memCase("1", "1 2", "3  \n\n")},
			wantKind: []domain.OutcomeKind{domain.Passed},
			passed:   1,
		},
		{
			name:     "wrong answer",
			run:      sum,
			cases:    []domain.TestCase{memCase("1", "1 2\n", "8\n")},
			wantKind: []domain.OutcomeKind{domain.WrongAnswer},
			failed:   1,
		},
		{
			name:     "crash is a runtime error",
			run:      shellCommand(t, dir, "crash.sh", `echo 3; exit 1`),
			cases:    []domain.TestCase{memCase("1", "1 2\n", "3\n")},
			wantKind: []domain.OutcomeKind{domain.RuntimeError},
			failed:   1,
		},
		{
			name: "failures do not stop the run",
			run:  sum,
			cases: []domain.TestCase{
				memCase("a", "1 1", "5"),
				memCase("b", "2 2", "4"),
				memCase("c", "3 3", "0"),
			},
			wantKind: []domain.OutcomeKind{domain.WrongAnswer, domain.Passed, domain.WrongAnswer},
			passed:   1,
			failed:   2,
		},
		{
			name:     "unchecked case passes on clean exit",
			run:      sum,
			cases:    []domain.TestCase{{Name: "u", Source: memSource{input: "1 2"}}},
			wantKind: []domain.OutcomeKind{domain.Passed},
			passed:   1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reporter := &recordingReporter{}
			o := NewOrchestrator(NewRunner(nil, 0), reporter, nil)

			summary, err := o.Run(context.Background(), Plan{
				Commands: domain.ExecCommands{Run: tt.run},
				Cases:    tt.cases,
			})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			var kinds []domain.OutcomeKind
			for _, r := range summary.Results {
				kinds = append(kinds, r.Outcome.Kind)
			}
			if !reflect.DeepEqual(kinds, tt.wantKind) {
				t.Errorf("outcomes = %v, want %v", kinds, tt.wantKind)
			}
			if summary.Passed != tt.passed || summary.Failed != tt.failed {
				t.Errorf("passed/failed = %d/%d, want %d/%d", summary.Passed, summary.Failed, tt.passed, tt.failed)
			}
			if reporter.started != len(tt.cases) || len(reporter.finished) != len(tt.cases) {
				t.Errorf("reporter saw start=%d finished=%d", reporter.started, len(reporter.finished))
			}
			if reporter.runSummary == nil {
				t.Error("expected RunFinished to be reported")
			}
		})
	}
}

func TestOrchestrator_RunOutcomeDetails(t *testing.T) {
	requireShell(t)
	dir := t.TempDir()
	o := NewOrchestrator(NewRunner(nil, 0), nil, nil)

	t.Run("wrong answer keeps expected and actual", func(t *testing.T) {
		summary, err := o.Run(context.Background(), Plan{
			Commands: domain.ExecCommands{Run: shellCommand(t, dir, "sum.sh", sumScript)},
			Cases:    []domain.TestCase{memCase("1", "1 2\n", "8\n")},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		got := summary.Results[0].Outcome
		if got.Expected != "8" || got.Actual != "3" || got.Input != "1 2\n" {
			t.Errorf("unexpected outcome: %+v", got)
		}
	})

	t.Run("runtime error keeps output and exit code", func(t *testing.T) {
		summary, err := o.Run(context.Background(), Plan{
			Commands: domain.ExecCommands{Run: shellCommand(t, dir, "fail.sh", `echo out; echo boom >&2; exit 3`)},
			Cases:    []domain.TestCase{memCase("1", "", "out")},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		got := summary.Results[0].Outcome
		if got.ExitCode != 3 || got.Stdout != "out\n" || got.Stderr != "boom\n" {
			t.Errorf("unexpected outcome: %+v", got)
		}
	})
}

func TestOrchestrator_CompileFailureRunsNothing(t *testing.T) {
	requireShell(t)
	dir := t.TempDir()
	marker := dir + "/ran"
	reporter := &recordingReporter{}
	o := NewOrchestrator(NewRunner(nil, 0), reporter, nil)

	_, err := o.Run(context.Background(), Plan{
		Commands: domain.ExecCommands{
			Compile: shellCommand(t, dir, "cc.sh", `echo "error: expected ';'" >&2; exit 1`),
			Run:     shellCommand(t, dir, "run.sh", `touch `+marker),
		},
		Cases: []domain.TestCase{memCase("1", "", ""), memCase("2", "", "")},
	})

	var compileErr *CompileError
	if !errors.As(err, &compileErr) {
		t.Fatalf("expected *CompileError, got %v", err)
	}
	if reporter.compileFailed == nil {
		t.Error("expected CompileFailed to be reported")
	}
	if reporter.started != 0 || len(reporter.finished) != 0 {
		t.Errorf("no case should run, got %d finished", len(reporter.finished))
	}
	if fileExists(marker) {
		t.Error("solution ran after a failed compile")
	}
}

func TestOrchestrator_CompileThenRun(t *testing.T) {
	requireShell(t)
	dir := t.TempDir()
	src := shellCommand(t, dir, "src.sh", sumScript)
	exe := dir + "/sum"

	o := NewOrchestrator(NewRunner(nil, 0), nil, nil)
	summary, err := o.Run(context.Background(), Plan{
		Commands: domain.ExecCommands{
			Compile: domain.Command{"cp", src[1], exe},
			Run:     domain.Command{"/bin/sh", exe},
		},
		Cases: []domain.TestCase{memCase("1", "2 2", "4")},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !summary.OK() || summary.Total() != 1 {
		t.Errorf("unexpected summary: %+v", summary)
	}
}

func TestOrchestrator_MissingRunProgram(t *testing.T) {
	reporter := &recordingReporter{}
	o := NewOrchestrator(NewRunner(nil, 0), reporter, nil)

	_, err := o.Run(context.Background(), Plan{
		Commands: domain.ExecCommands{Run: domain.Command{"kitty-no-such-program"}},
		Cases:    []domain.TestCase{memCase("1", "", "")},
	})
	if !IsProcessError(err, ProgramNotFound) {
		t.Fatalf("expected ProgramNotFound, got %v", err)
	}
	if reporter.started != 0 {
		t.Error("no run should be reported")
	}
}

func TestOrchestrator_TimedStatistics(t *testing.T) {
	requireShell(t)
	o := NewOrchestrator(NewRunner(nil, 0), nil, nil)
	sum := shellCommand(t, t.TempDir(), "sum.sh", sumScript)

	timed, err := o.Run(context.Background(), Plan{
		Commands: domain.ExecCommands{Run: sum},
		Cases:    []domain.TestCase{memCase("1", "1 1", "2"), memCase("2", "1 1", "2")},
		Timed:    true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if timed.Stats.Count() != 2 {
		t.Errorf("timed stats count = %d, want 2", timed.Stats.Count())
	}

	untimed, err := o.Run(context.Background(), Plan{
		Commands: domain.ExecCommands{Run: sum},
		Cases:    []domain.TestCase{memCase("1", "1 1", "2")},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if untimed.Stats.Count() != 0 {
		t.Errorf("untimed stats count = %d, want 0", untimed.Stats.Count())
	}
}

func TestOrchestrator_Deterministic(t *testing.T) {
	requireShell(t)
	o := NewOrchestrator(NewRunner(nil, 0), nil, nil)
	plan := Plan{
		Commands: domain.ExecCommands{Run: shellCommand(t, t.TempDir(), "sum.sh", sumScript)},
		Cases:    []domain.TestCase{memCase("a", "1 2", "3"), memCase("b", "1 2", "4")},
	}

	first, err := o.Run(context.Background(), plan)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := o.Run(context.Background(), plan)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := range first.Results {
		a, b := first.Results[i], second.Results[i]
		if a.Name != b.Name || !reflect.DeepEqual(a.Outcome, b.Outcome) {
			t.Errorf("result %d differs between runs: %+v vs %+v", i, a, b)
		}
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name    string
		out     ProcessOutput
		answer  string
		checked bool
		want    domain.OutcomeKind
	}{
		{"match", ProcessOutput{Stdout: []byte("3\n")}, "3", true, domain.Passed},
		{"mismatch", ProcessOutput{Stdout: []byte("8\n")}, "3", true, domain.WrongAnswer},
		{"unchecked", ProcessOutput{Stdout: []byte("8\n")}, "", false, domain.Passed},
		{"non-zero exit with right output", ProcessOutput{Stdout: []byte("3"), ExitCode: 1}, "3", true, domain.RuntimeError},
		{"timed out", ProcessOutput{Stdout: []byte("3"), ExitCode: -1, TimedOut: true}, "3", true, domain.RuntimeError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.out, nil, []byte(tt.answer), tt.checked)
			if got.Kind != tt.want {
				t.Errorf("Classify() = %v, want %v", got.Kind, tt.want)
			}
		})
	}
}
