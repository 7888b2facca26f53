package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// ConfigCommand handles the config command
type ConfigCommand struct {
	deps       *Deps
	location   bool
	initialise bool
}

// NewConfigCommand creates a new ConfigCommand
func NewConfigCommand(deps *Deps) *ConfigCommand {
	return &ConfigCommand{deps: deps}
}

// Execute runs the command
func (cc *ConfigCommand) Execute(cmd *cobra.Command, args []string) error {
	cfg := cc.deps.Config

	switch {
	case cc.initialise:
		dir, err := cc.deps.Config.Init()
		if err != nil {
			return err
		}
		cc.deps.Formatter.Info("Config folder: %s", dir)
		return nil
	case cc.location:
		fmt.Fprintln(cc.deps.Stdout, cfg.ConfigDir)
		return nil
	}

	cc.deps.Formatter.Info("Config folder: %s", cfg.ConfigDir)
	cc.deps.Formatter.Info("Language file: %s", cfg.ConfigFilePath())
	cc.deps.Formatter.Info("Test folder: %s, debug folder: %s", cfg.TestDir, cfg.DebugDir)
	return nil
}
