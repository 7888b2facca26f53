package execution

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"kitty/internal/domain"
)

func requireShell(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell scripts are not available on windows")
	}
}

// shellCommand writes body to a script and returns the argv running it
func shellCommand(t *testing.T, dir, name, body string) domain.Command {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0755); err != nil {
		t.Fatalf("failed to write script %s: %v", name, err)
	}
	return domain.Command{"/bin/sh", path}
}

type memSource struct {
	input   string
	answer  string
	checked bool
}

func (m memSource) Input(ctx context.Context) ([]byte, error) {
	return []byte(m.input), nil
}

func (m memSource) Answer(ctx context.Context, input []byte) ([]byte, bool, error) {
	return []byte(m.answer), m.checked, nil
}

func memCase(name, input, answer string) domain.TestCase {
	return domain.TestCase{Name: name, Source: memSource{input: input, answer: answer, checked: true}}
}

type recordingReporter struct {
	NopReporter
	compileFailed *CompileError
	started       int
	finished      []domain.CaseResult
	runSummary    *domain.RunSummary
	iterations    []int
	aborted       error
	debugSummary  *domain.DebugSummary
}

func (r *recordingReporter) CompileFailed(err *CompileError) { r.compileFailed = err }
func (r *recordingReporter) RunStarted(total int)            { r.started = total }
func (r *recordingReporter) CaseFinished(res domain.CaseResult, timed bool) {
	r.finished = append(r.finished, res)
}
func (r *recordingReporter) RunFinished(s domain.RunSummary)     { r.runSummary = &s }
func (r *recordingReporter) IterationStarted(n, total int)       { r.iterations = append(r.iterations, n) }
func (r *recordingReporter) DebugAborted(err error)              { r.aborted = err }
func (r *recordingReporter) DebugFinished(s domain.DebugSummary) { r.debugSummary = &s }

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
