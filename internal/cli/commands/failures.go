package commands

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/spf13/cobra"

	"kitty/internal/ui"
)

// FailuresCommand handles the failures command
type FailuresCommand struct {
	deps    *Deps
	summary bool
}

// NewFailuresCommand creates a new FailuresCommand
func NewFailuresCommand(deps *Deps) *FailuresCommand {
	return &FailuresCommand{deps: deps}
}

// Execute runs the command
func (fc *FailuresCommand) Execute(cmd *cobra.Command, args []string) error {
	sol, err := fc.deps.solution()
	if err != nil {
		return err
	}
	st := fc.deps.storage(sol)

	results, err := st.Load()
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("no test results found for %s. Run kitty test first", sol.ID)
	}
	if err != nil {
		return err
	}

	if fc.summary {
		fc.deps.Formatter.PrintLastRun(results)
		return nil
	}
	return ui.NewErrorViewer(st).View(results)
}
