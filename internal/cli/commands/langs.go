package commands

import "github.com/spf13/cobra"

// LangsCommand handles the langs command
type LangsCommand struct {
	deps *Deps
}

// NewLangsCommand creates a new LangsCommand
func NewLangsCommand(deps *Deps) *LangsCommand {
	return &LangsCommand{deps: deps}
}

// Execute runs the command
func (lc *LangsCommand) Execute(cmd *cobra.Command, args []string) error {
	lc.deps.Formatter.PrintLanguages(lc.deps.Registry.Languages())
	return nil
}
