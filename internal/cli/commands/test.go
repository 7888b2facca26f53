package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"kitty/internal/discovery"
	"kitty/internal/domain"
	"kitty/internal/execution"
	"kitty/internal/storage"
	"kitty/internal/ui"
	"kitty/internal/watch"
)

// TestCommand handles the test command
type TestCommand struct {
	deps   *Deps
	filter *discovery.Filter
}

// NewTestCommand creates a new TestCommand
func NewTestCommand(deps *Deps) *TestCommand {
	return &TestCommand{deps: deps, filter: discovery.NewFilter()}
}

// Execute runs the command
func (tc *TestCommand) Execute(cmd *cobra.Command, args []string) error {
	return tc.Run(cmd.Context())
}

// Run tests the solution once, or keeps testing it in watch mode
func (tc *TestCommand) Run(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg := tc.deps.Config

	sol, err := tc.deps.solution()
	if err != nil {
		return err
	}
	st := tc.deps.storage(sol)
	orch := tc.deps.orchestrator()

	var last domain.RunSummary
	run := func(ctx context.Context) error {
		summary, err := tc.runOnce(ctx, sol, orch, st)
		last = summary
		return err
	}

	if cfg.Flags.Watch {
		return watch.Watch(ctx, sol.File, run,
			watch.WithDebounce(cfg.WatchDebounce),
			watch.WithLogger(tc.deps.Logger),
			watch.WithOutput(tc.deps.Stdout, tc.deps.Stderr),
			watch.WithErrorPrinter(tc.deps.Formatter.PrintError))
	}

	if err := run(ctx); err != nil {
		return err
	}

	if !last.OK() && cfg.Flags.OpenFailures {
		results, err := st.Load()
		if err != nil {
			return err
		}
		if err := ui.NewErrorViewer(st).View(results); err != nil {
			return err
		}
	}

	if !last.OK() && cfg.Flags.Strict {
		return fmt.Errorf("%w: %d of %d", ErrTestsFailed, last.Failed, last.Total())
	}
	return nil
}

func (tc *TestCommand) runOnce(ctx context.Context, sol *discovery.Solution, orch *execution.Orchestrator, st storage.Storage) (domain.RunSummary, error) {
	cfg := tc.deps.Config

	commands, err := tc.deps.commands(sol.Lang, sol.File)
	if err != nil {
		return domain.RunSummary{}, err
	}

	scanner := discovery.NewScanner(cfg.TestDir, tc.deps.Logger)
	cases, err := scanner.Scan(sol.Dir)
	if errors.Is(err, discovery.ErrMissingTestDirectory) {
		return domain.RunSummary{}, fmt.Errorf("%w. Add <name>.in and <name>.ans files to %s", discovery.ErrMissingTestDirectory, scanner.TestDir(sol.Dir))
	}
	if err != nil {
		return domain.RunSummary{}, err
	}

	cases, err = tc.filter.FilterByName(cases, cfg.Flags.Filter)
	if err != nil {
		return domain.RunSummary{}, err
	}

	summary, err := orch.Run(ctx, execution.Plan{
		Commands: commands,
		Cases:    cases,
		Timed:    cfg.Flags.Time,
	})
	if err != nil {
		return summary, err
	}

	if err := st.Save(storage.RunInfo{Problem: sol.ID, SolutionFile: sol.File}, summary); err != nil {
		tc.deps.Logger.Warn("failed to save test results", zap.Error(err))
	}
	return summary, nil
}
