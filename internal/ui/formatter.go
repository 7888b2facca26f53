package ui

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"unicode"

	"github.com/fatih/color"

	"kitty/internal/domain"
	"kitty/internal/execution"
	"kitty/internal/lang"
)

const (
	SuccessMark = "\u2705"
	FailureMark = "\u274C"
)

var (
	underline = color.New(color.Underline).SprintFunc()
	brightRed = color.New(color.FgHiRed).SprintFunc()
	brightGrn = color.New(color.FgHiGreen).SprintFunc()
)

// Formatter renders run progress and results. It implements execution.Reporter.
type Formatter struct {
	out    io.Writer
	errOut io.Writer
	bar    *ProgressBar
}

var _ execution.Reporter = (*Formatter)(nil)

// NewFormatter creates a Formatter writing to out and errOut
func NewFormatter(out, errOut io.Writer) *Formatter {
	if out == nil {
		out = os.Stdout
	}
	if errOut == nil {
		errOut = os.Stderr
	}
	return &Formatter{out: out, errOut: errOut}
}

// CompileFailed prints the compiler output before the run aborts
func (f *Formatter) CompileFailed(err *execution.CompileError) {
	fmt.Fprintf(f.errOut, "%s:\n", brightRed("Compilation error"))
	if s := strings.TrimSpace(err.Stdout); s != "" {
		fmt.Fprintln(f.errOut, s)
	}
	if s := strings.TrimSpace(err.Stderr); s != "" {
		fmt.Fprintln(f.errOut, s)
	}
	fmt.Fprintln(f.errOut)
}

// RunStarted prints the run header
func (f *Formatter) RunStarted(total int) {
	fmt.Fprintf(f.out, "Running %d tests\n", total)
}

// CaseFinished prints the status line of one case and, on failure, its detail
func (f *Formatter) CaseFinished(result domain.CaseResult, timed bool) {
	mark := SuccessMark
	if !result.Outcome.Passed() {
		mark = FailureMark
	}
	line := fmt.Sprintf("test %s ... %s", result.Name, mark)
	if timed {
		line += fmt.Sprintf(" in %.2fs", result.Duration.Seconds())
	}
	fmt.Fprintln(f.out, line)

	if !result.Outcome.Passed() {
		f.printOutcome(result.Outcome)
	}
}

// RunFinished prints the summary line
func (f *Formatter) RunFinished(summary domain.RunSummary) {
	status := brightGrn("ok")
	if !summary.OK() {
		status = brightRed("failed")
	}
	fmt.Fprintf(f.out, "\nTest result: %s. %d passed; %d failed.\n", status, summary.Passed, summary.Failed)
	if summary.Timed {
		fmt.Fprintf(f.out, "Running times: %s.\n", formatStats(summary.Stats))
	}
}

// DebugStarted shows the iteration progress bar
func (f *Formatter) DebugStarted(total int) {
	f.bar = NewProgressBar(total, f.out)
}

// IterationStarted advances the progress bar
func (f *Formatter) IterationStarted(n, total int) {
	if f.bar != nil {
		f.bar.Update(n)
	}
}

// DebugAborted closes the progress line after a harness failure
func (f *Formatter) DebugAborted(err error) {
	f.finishBar()
	fmt.Fprintf(f.out, "%s\n\n", FailureMark)
}

// DebugFinished prints the failing case with its input, or the timing summary
func (f *Formatter) DebugFinished(summary domain.DebugSummary) {
	f.finishBar()
	if summary.Failure != nil {
		fmt.Fprintf(f.out, "%s\n\n", FailureMark)
		f.printOutcome(*summary.Failure)
		fmt.Fprintf(f.out, "%s:\n%s\n\n", brightRed("Input"), strings.TrimRightFunc(summary.Failure.Input, unicode.IsSpace))
		fmt.Fprintf(f.out, "%s on test case %d of %d. Running times: %s.\n",
			brightRed("Failed"), summary.Completed, summary.Requested, formatStats(summary.Stats))
		return
	}

	fmt.Fprintf(f.out, "%s\n\n", SuccessMark)
	if !summary.Checked {
		fmt.Fprintf(f.out, "%s all %d test cases without runtime errors. Running times: %s.\n",
			brightGrn("Passed"), summary.Requested, formatStats(summary.Stats))
		return
	}
	fmt.Fprintf(f.out, "%s all %d test cases. Running times: %s.\n",
		brightGrn("Passed"), summary.Requested, formatStats(summary.Stats))
}

// PrintLanguages prints the configured languages as a table
func (f *Formatter) PrintLanguages(languages []*lang.Language) {
	w := tabwriter.NewWriter(f.out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\t%s\n", underline("Name"), underline("Extension"))
	for _, l := range languages {
		fmt.Fprintf(w, "%s\t%s\n", l.Name, l.FileExt)
	}
	w.Flush()
}

// PrintError prints a failure that does not end the program, such as a
// failed run in watch mode
func (f *Formatter) PrintError(err error) {
	fmt.Fprintf(f.errOut, "%s: %v\n", brightRed("error"), err)
}

// Info prints a neutral status message
func (f *Formatter) Info(format string, args ...any) {
	fmt.Fprintf(f.out, format+"\n", args...)
}

func (f *Formatter) printOutcome(o domain.TestOutcome) {
	switch o.Kind {
	case domain.WrongAnswer:
		fmt.Fprintf(f.out, "%s\n%s\n\n", underline("Expected:"), strings.TrimRightFunc(o.Expected, unicode.IsSpace))
		fmt.Fprintf(f.out, "%s\n%s\n\n", underline("Actual:"), strings.TrimRightFunc(o.Actual, unicode.IsSpace))
	case domain.RuntimeError:
		fmt.Fprintf(f.out, "%s:\n", brightRed("Runtime error"))
		fmt.Fprintln(f.out, strings.TrimRightFunc(o.Stdout, unicode.IsSpace))
		fmt.Fprintf(f.out, "%s\n\n", strings.TrimRightFunc(o.Stderr, unicode.IsSpace))
	}
}

func (f *Formatter) finishBar() {
	if f.bar != nil {
		f.bar.Finish()
		f.bar = nil
	}
}

func formatStats(s domain.RunStatistics) string {
	return fmt.Sprintf("min %s, max %s, average %s",
		formatSeconds(s.Min()), formatSeconds(s.Max()), formatSeconds(s.Mean()))
}

func formatSeconds(secs float64, ok bool) string {
	if !ok {
		return "N/A"
	}
	return fmt.Sprintf("%.2fs", secs)
}

// PrintLastRun prints the stored statistics of the last run and its failing cases
func (f *Formatter) PrintLastRun(output *domain.TestResultsOutput) {
	meta := output.Meta
	cyan := color.New(color.FgCyan)
	row := func(label string, value string, c *color.Color) {
		fmt.Fprintf(f.out, "│ %-31s │ %s │\n", label, c.Sprintf("%-27s", value))
	}
	sep := "├─────────────────────────────────┼─────────────────────────────┤"
	white := color.New(color.FgWhite)

	fmt.Fprintln(f.out)
	cyan.Fprintln(f.out, "╔═══════════════════════════════════════════════════════════════╗")
	cyan.Fprintln(f.out, "║                      Last Test Run                            ║")
	cyan.Fprintln(f.out, "╚═══════════════════════════════════════════════════════════════╝")
	fmt.Fprintln(f.out, "┌─────────────────────────────────┬─────────────────────────────┐")
	row("Problem", meta.Problem, white)
	fmt.Fprintln(f.out, sep)
	row("Solution", meta.SolutionFile, white)
	fmt.Fprintln(f.out, sep)
	row("Total Test Cases", fmt.Sprint(meta.TotalTestCases), white)
	fmt.Fprintln(f.out, sep)
	row("Passed Test Cases", fmt.Sprint(meta.PassedTestCases), color.New(color.FgGreen))
	fmt.Fprintln(f.out, sep)
	row("Failed Test Cases", fmt.Sprint(meta.FailedTestCases), color.New(color.FgRed))
	fmt.Fprintln(f.out, sep)
	row("Duration", fmt.Sprintf("%.2fs", meta.DurationSeconds), white)
	fmt.Fprintln(f.out, sep)
	row("Timestamp", meta.Timestamp, white)
	fmt.Fprintln(f.out, "└─────────────────────────────────┴─────────────────────────────┘")

	fmt.Fprintln(f.out)
	if meta.FailedTestCases == 0 {
		color.New(color.FgGreen).Fprintln(f.out, "✓ All tests passed!")
		return
	}
	color.New(color.FgRed).Fprintf(f.out, "✗ %d test case(s) failed\n", meta.FailedTestCases)
	for i, failure := range output.Details {
		connector := "├── "
		if i == len(output.Details)-1 {
			connector = "└── "
		}
		resolved := ""
		if failure.Resolved {
			resolved = color.New(color.FgHiBlack).Sprint(" (resolved)")
		}
		fmt.Fprintf(f.out, "%s%s %s%s\n", connector, color.YellowString(failure.TestName), failure.Kind, resolved)
	}
}
