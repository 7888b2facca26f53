package domain

// TestFailure is the stored form of a failing test case
type TestFailure struct {
	TestName        string  `json:"test_name"`
	Kind            string  `json:"kind"`
	Input           string  `json:"input"`
	Expected        string  `json:"expected,omitempty"`
	Actual          string  `json:"actual,omitempty"`
	Stdout          string  `json:"stdout,omitempty"`
	Stderr          string  `json:"stderr,omitempty"`
	ExitCode        int     `json:"exit_code"`
	DurationSeconds float64 `json:"duration_seconds"`
	Resolved        bool    `json:"resolved,omitempty"` // Track if test case is marked as resolved
}

// NewTestFailure converts a failing case result to its stored form
func NewTestFailure(r CaseResult) TestFailure {
	return TestFailure{
		TestName:        r.Name,
		Kind:            r.Outcome.Kind.String(),
		Input:           r.Outcome.Input,
		Expected:        r.Outcome.Expected,
		Actual:          r.Outcome.Actual,
		Stdout:          r.Outcome.Stdout,
		Stderr:          r.Outcome.Stderr,
		ExitCode:        r.Outcome.ExitCode,
		DurationSeconds: r.Duration.Seconds(),
	}
}
