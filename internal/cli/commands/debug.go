package commands

import (
	"context"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"kitty/internal/discovery"
	"kitty/internal/domain"
	"kitty/internal/execution"
)

// DebugCommand handles the debug input and debug answer commands
type DebugCommand struct {
	deps *Deps
}

// NewDebugCommand creates a new DebugCommand
func NewDebugCommand(deps *Deps) *DebugCommand {
	return &DebugCommand{deps: deps}
}

// ExecuteInput runs generated input without checking answers
func (dc *DebugCommand) ExecuteInput(cmd *cobra.Command, args []string) error {
	return dc.Run(cmd.Context(), false)
}

// ExecuteAnswer runs generated input and checks it with the answer validator
func (dc *DebugCommand) ExecuteAnswer(cmd *cobra.Command, args []string) error {
	return dc.Run(cmd.Context(), true)
}

// Run resolves the solution and its generators, then runs the debug loop
func (dc *DebugCommand) Run(ctx context.Context, checkAnswers bool) error {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg := dc.deps.Config

	sol, err := dc.deps.solution()
	if err != nil {
		return err
	}
	commands, err := dc.deps.commands(sol.Lang, sol.File)
	if err != nil {
		return err
	}

	debugDir := filepath.Join(sol.Dir, cfg.DebugDir)
	input, err := dc.generator(discovery.InputGeneratorName, debugDir, cfg.Flags.InputGenerator)
	if err != nil {
		return err
	}
	progs := execution.GeneratorPrograms{Input: input}

	if checkAnswers {
		answer, err := dc.generator(discovery.AnswerValidatorName, debugDir, cfg.Flags.AnswerValidator)
		if err != nil {
			return err
		}
		progs.Answer = &answer
	}

	_, err = dc.deps.orchestrator().Debug(ctx, execution.DebugPlan{
		Commands:   commands,
		Generators: progs,
		Iterations: cfg.GetDebugIterations(),
	})
	return err
}

func (dc *DebugCommand) generator(name, debugDir, explicit string) (domain.ExecCommands, error) {
	path, l, err := discovery.ResolveGenerator(dc.deps.Registry, name, debugDir, explicit)
	if err != nil {
		return domain.ExecCommands{}, err
	}
	dc.deps.Logger.Debug("generator", zap.String("name", name), zap.String("file", path), zap.Stringer("lang", l))
	return dc.deps.commands(l, path)
}
