package ui

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"

	"kitty/internal/domain"
	"kitty/internal/execution"
	"kitty/internal/lang"
)

func newTestFormatter(t *testing.T) (*Formatter, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	color.NoColor = true
	var out, errOut bytes.Buffer
	return NewFormatter(&out, &errOut), &out, &errOut
}

func TestFormatter_Run(t *testing.T) {
	f, out, _ := newTestFormatter(t)

	f.RunStarted(3)
	f.CaseFinished(domain.CaseResult{Name: "1", Outcome: domain.TestOutcome{Kind: domain.Passed}}, false)
	f.CaseFinished(domain.CaseResult{
		Name:    "2",
		Outcome: domain.TestOutcome{Kind: domain.WrongAnswer, Expected: "7", Actual: "8"},
	}, false)
	f.CaseFinished(domain.CaseResult{
		Name:    "3",
		Outcome: domain.TestOutcome{Kind: domain.RuntimeError, Stdout: "partial\n", Stderr: "panic: boom\n"},
	}, false)
	f.RunFinished(domain.RunSummary{Passed: 1, Failed: 2})

	want := "Running 3 tests\n" +
		"test 1 ... ✅\n" +
		"test 2 ... ❌\n" +
		"Expected:\n7\n\n" +
		"Actual:\n8\n\n" +
		"test 3 ... ❌\n" +
		"Runtime error:\npartial\npanic: boom\n\n" +
		"\nTest result: failed. 1 passed; 2 failed.\n"
	if out.String() != want {
		t.Errorf("output mismatch\ngot:\n%s\nwant:\n%s", out.String(), want)
	}
}

func TestFormatter_RunTimed(t *testing.T) {
	f, out, _ := newTestFormatter(t)

	var stats domain.RunStatistics
	stats.Add(1200 * time.Millisecond)
	stats.Add(600 * time.Millisecond)

	f.CaseFinished(domain.CaseResult{Name: "a", Outcome: domain.TestOutcome{Kind: domain.Passed}, Duration: 1230 * time.Millisecond}, true)
	f.RunFinished(domain.RunSummary{Passed: 2, Timed: true, Stats: stats})

	got := out.String()
	if !strings.Contains(got, "test a ... ✅ in 1.23s\n") {
		t.Errorf("missing timed status line in %q", got)
	}
	if !strings.Contains(got, "Test result: ok. 2 passed; 0 failed.\n") {
		t.Errorf("missing summary in %q", got)
	}
	if !strings.Contains(got, "Running times: min 0.60s, max 1.20s, average 0.90s.\n") {
		t.Errorf("missing running times in %q", got)
	}
}

func TestFormatter_EmptyRun(t *testing.T) {
	f, out, _ := newTestFormatter(t)
	f.RunStarted(0)
	f.RunFinished(domain.RunSummary{})
	if !strings.HasSuffix(out.String(), "Test result: ok. 0 passed; 0 failed.\n") {
		t.Errorf("unexpected output %q", out.String())
	}
}

func TestFormatter_CompileFailed(t *testing.T) {
	f, out, errOut := newTestFormatter(t)
	f.CompileFailed(&execution.CompileError{ExitCode: 1, Stderr: "main.cpp:1: error: expected ';'\n"})

	if out.Len() != 0 {
		t.Errorf("compile errors belong on stderr, stdout = %q", out.String())
	}
	want := "Compilation error:\nmain.cpp:1: error: expected ';'\n\n"
	if errOut.String() != want {
		t.Errorf("stderr = %q, want %q", errOut.String(), want)
	}
}

func TestFormatter_PrintError(t *testing.T) {
	f, out, errOut := newTestFormatter(t)
	f.PrintError(&execution.CompileError{ExitCode: 1})

	if out.Len() != 0 {
		t.Errorf("stdout = %q, want nothing", out.String())
	}
	want := "error: failed to compile program (exit status: 1)\n"
	if errOut.String() != want {
		t.Errorf("stderr = %q, want %q", errOut.String(), want)
	}
}

func TestFormatter_Debug(t *testing.T) {
	t.Run("all passed", func(t *testing.T) {
		f, out, _ := newTestFormatter(t)
		var stats domain.RunStatistics
		stats.Add(100 * time.Millisecond)

		f.DebugStarted(2)
		f.IterationStarted(1, 2)
		f.IterationStarted(2, 2)
		f.DebugFinished(domain.DebugSummary{Requested: 2, Completed: 2, Checked: true, Stats: stats})

		got := out.String()
		if !strings.Contains(got, "Passed all 2 test cases. Running times: min 0.10s, max 0.10s, average 0.10s.\n") {
			t.Errorf("missing success line in %q", got)
		}
	})

	t.Run("all passed without validator", func(t *testing.T) {
		f, out, _ := newTestFormatter(t)
		f.DebugFinished(domain.DebugSummary{Requested: 4, Completed: 4})
		if !strings.Contains(out.String(), "Passed all 4 test cases without runtime errors.") {
			t.Errorf("unexpected output %q", out.String())
		}
	})

	t.Run("no samples", func(t *testing.T) {
		f, out, _ := newTestFormatter(t)
		f.DebugFinished(domain.DebugSummary{Requested: 0})
		if !strings.Contains(out.String(), "Running times: min N/A, max N/A, average N/A.") {
			t.Errorf("unexpected output %q", out.String())
		}
	})

	t.Run("failure prints input", func(t *testing.T) {
		f, out, _ := newTestFormatter(t)
		f.DebugStarted(10)
		f.IterationStarted(1, 10)
		var stats domain.RunStatistics
		stats.Add(250 * time.Millisecond)
		f.DebugFinished(domain.DebugSummary{
			Requested: 10,
			Completed: 1,
			Failure:   &domain.TestOutcome{Kind: domain.WrongAnswer, Input: "1 2\n", Expected: "3", Actual: "0"},
			Stats:     stats,
		})

		got := out.String()
		want := "❌\n\nExpected:\n3\n\nActual:\n0\n\nInput:\n1 2\n\n" +
			"Failed on test case 1 of 10. Running times: min 0.25s, max 0.25s, average 0.25s.\n"
		if !strings.HasSuffix(got, want) {
			t.Errorf("output %q does not end with %q", got, want)
		}
	})
}

func TestFormatter_PrintLanguages(t *testing.T) {
	f, out, _ := newTestFormatter(t)
	f.PrintLanguages([]*lang.Language{
		{Name: "C++", FileExt: "cpp"},
		{Name: "Python 3", FileExt: "py"},
	})

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %q", out.String())
	}
	if !strings.HasPrefix(lines[0], "Name") || !strings.Contains(lines[0], "Extension") {
		t.Errorf("unexpected header %q", lines[0])
	}
	if strings.Fields(lines[2])[0] != "Python" || strings.Fields(lines[2])[2] != "py" {
		t.Errorf("unexpected row %q", lines[2])
	}
}

func TestFormatter_PrintLastRun(t *testing.T) {
	f, out, _ := newTestFormatter(t)
	f.PrintLastRun(&domain.TestResultsOutput{
		Meta: domain.TestResultsMeta{Problem: "hello", TotalTestCases: 2, PassedTestCases: 1, FailedTestCases: 1},
		Details: []domain.TestFailure{
			{TestName: "2", Kind: "wrong answer", Resolved: true},
		},
	})

	got := out.String()
	for _, want := range []string{"Last Test Run", "hello", "✗ 1 test case(s) failed", "└── 2 wrong answer (resolved)"} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
}
