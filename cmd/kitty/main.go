package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"kitty/internal/cli"
	"kitty/internal/cli/commands"
	"kitty/internal/config"

	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	rootCmd := &cobra.Command{
		Use:           "kitty",
		Short:         "Local test runner for competitive programming solutions",
		Long:          `Compile a solution and run it against its .in/.ans test cases, re-run on every save, or hunt for failing cases with input generators.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cfg := config.New()

	// Populated by command flags
	var flags cli.Flags

	cmds := commands.NewCommands(commands.NewDeps(cfg))
	cmds.Register(rootCmd, &flags)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
