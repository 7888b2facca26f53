package execution

import "kitty/internal/domain"

// Reporter receives the progress of test and debug runs
type Reporter interface {
	CompileFailed(err *CompileError)

	RunStarted(total int)
	CaseFinished(result domain.CaseResult, timed bool)
	RunFinished(summary domain.RunSummary)

	DebugStarted(total int)
	IterationStarted(n, total int)
	DebugAborted(err error)
	DebugFinished(summary domain.DebugSummary)
}

// NopReporter discards everything
type NopReporter struct{}

func (NopReporter) CompileFailed(*CompileError)          {}
func (NopReporter) RunStarted(int)                       {}
func (NopReporter) CaseFinished(domain.CaseResult, bool) {}
func (NopReporter) RunFinished(domain.RunSummary)        {}
func (NopReporter) DebugStarted(int)                     {}
func (NopReporter) IterationStarted(int, int)            {}
func (NopReporter) DebugAborted(error)                   {}
func (NopReporter) DebugFinished(domain.DebugSummary)    {}
