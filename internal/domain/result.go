package domain

import "time"

// OutcomeKind classifies how a single test case ended
type OutcomeKind int

const (
	Passed OutcomeKind = iota
	WrongAnswer
	RuntimeError
)

func (k OutcomeKind) String() string {
	switch k {
	case Passed:
		return "passed"
	case WrongAnswer:
		return "wrong answer"
	case RuntimeError:
		return "runtime error"
	}
	return "unknown"
}

// TestOutcome is the classified result of running the candidate once.
// Expected/Actual are set for WrongAnswer, Stdout/Stderr for RuntimeError.
type TestOutcome struct {
	Kind     OutcomeKind
	Input    string
	Expected string
	Actual   string
	Stdout   string
	Stderr   string
	ExitCode int
}

// Passed reports whether the case passed
func (o TestOutcome) Passed() bool {
	return o.Kind == Passed
}

// CaseResult is one reported line of a run
type CaseResult struct {
	Name     string
	Outcome  TestOutcome
	Duration time.Duration
}

// RunSummary aggregates one orchestrator invocation
type RunSummary struct {
	Results  []CaseResult
	Passed   int
	Failed   int
	Duration time.Duration
	Timed    bool
	Stats    RunStatistics
}

// Total returns the number of cases that ran
func (s RunSummary) Total() int {
	return s.Passed + s.Failed
}

// OK reports whether no case failed
func (s RunSummary) OK() bool {
	return s.Failed == 0
}

// DebugSummary aggregates a generator debug run. Failure is nil when all
// requested iterations passed. Checked is set when an answer validator
// produced the expected answers.
type DebugSummary struct {
	Requested int
	Completed int
	Checked   bool
	Failure   *TestOutcome
	Stats     RunStatistics
}

// TestResultsMeta contains metadata about a stored test run
type TestResultsMeta struct {
	Problem         string  `json:"problem"`
	SolutionFile    string  `json:"solution_file"`
	TotalTestCases  int     `json:"total_test_cases"`
	PassedTestCases int     `json:"passed_test_cases"`
	FailedTestCases int     `json:"failed_test_cases"`
	Duration        string  `json:"duration"`
	DurationSeconds float64 `json:"duration_seconds"`
	Timestamp       string  `json:"timestamp"`
}

// TestResultsOutput is the complete stored structure for a test run
type TestResultsOutput struct {
	Meta    TestResultsMeta `json:"meta"`
	Details []TestFailure   `json:"details"`
}
