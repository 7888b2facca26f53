package commands

import (
	"errors"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"kitty/internal/cli"
	"kitty/internal/config"
	"kitty/internal/discovery"
	"kitty/internal/domain"
	"kitty/internal/execution"
	"kitty/internal/lang"
	"kitty/internal/logging"
	"kitty/internal/storage"
	"kitty/internal/ui"
)

// ErrTestsFailed is returned by test --strict when a case failed
var ErrTestsFailed = errors.New("some test cases failed")

// Deps are the services shared by all commands. They are built once the
// flags are parsed, since verbosity and the language file depend on them.
type Deps struct {
	Config    *config.Config
	Logger    *zap.Logger
	Formatter *ui.Formatter
	Registry  *lang.Registry
	Stdout    io.Writer
	Stderr    io.Writer
}

// NewDeps creates Deps writing to the process streams
func NewDeps(cfg *config.Config) *Deps {
	return &Deps{
		Config:    cfg,
		Logger:    logging.Nop(),
		Formatter: ui.NewFormatter(os.Stdout, os.Stderr),
		Stdout:    os.Stdout,
		Stderr:    os.Stderr,
	}
}

// Setup applies the environment and flags, then loads the language file
func (d *Deps) Setup(flags *cli.Flags) error {
	if err := d.Config.ApplyEnv(); err != nil {
		return err
	}
	flags.Apply(d.Config)
	d.Logger = logging.New(d.Config.Verbose, d.Stderr)
	if err := d.Config.LoadLanguages(); err != nil {
		return err
	}
	d.Registry = d.Config.Registry()
	return nil
}

func (d *Deps) orchestrator() *execution.Orchestrator {
	runner := execution.NewRunner(d.Logger, d.Config.GetRunTimeout())
	return execution.NewOrchestrator(runner, d.Formatter, d.Logger)
}

func (d *Deps) solution() (*discovery.Solution, error) {
	return discovery.ResolveSolution(d.Registry, d.Config.GetSolutionPath(), discovery.SolutionOptions{
		File: d.Config.Flags.File,
		Lang: d.Config.Flags.Lang,
	})
}

// commands expands the compile and run commands for src
func (d *Deps) commands(r lang.Resolver, src string) (domain.ExecCommands, error) {
	cmds, err := r.Commands(src)
	if err != nil {
		return domain.ExecCommands{}, err
	}
	d.Logger.Debug("commands", zap.String("file", src), zap.Strings("compile", cmds.Compile), zap.Strings("run", cmds.Run))
	return cmds, nil
}

func (d *Deps) storage(sol *discovery.Solution) *storage.JSONStorage {
	return storage.NewJSONStorage(d.Config.GetOutputPath(sol.Dir))
}

// Commands holds all CLI commands
type Commands struct {
	deps     *Deps
	Test     *TestCommand
	Debug    *DebugCommand
	Langs    *LangsCommand
	Failures *FailuresCommand
	Config   *ConfigCommand
}

// NewCommands creates all commands with dependencies
func NewCommands(deps *Deps) *Commands {
	return &Commands{
		deps:     deps,
		Test:     NewTestCommand(deps),
		Debug:    NewDebugCommand(deps),
		Langs:    NewLangsCommand(deps),
		Failures: NewFailuresCommand(deps),
		Config:   NewConfigCommand(deps),
	}
}

// Register registers all commands with cobra
func (c *Commands) Register(rootCmd *cobra.Command, flags *cli.Flags) {
	rootCmd.PersistentFlags().BoolVarP(&flags.Verbose, "verbose", "v", false, "Print the commands being run and other diagnostics to stderr")
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if err := c.deps.Setup(flags); err != nil {
			return err
		}
		c.deps.Logger.Debug("invoked", zap.Strings("argv", os.Args))
		return nil
	}

	pathArg := func(cmd *cobra.Command, args []string) {
		if len(args) > 0 {
			c.deps.Config.Flags.Path = args[0]
		}
	}

	// Test command
	testCmd := &cobra.Command{
		Use:   "test [path]",
		Short: "Run a solution against its test cases",
		Long: "Compile the solution in the folder (current folder by default) and run it against\n" +
			"every <name>.in/<name>.ans pair in its test folder, in name order.",
		Args:   cobra.MaximumNArgs(1),
		PreRun: pathArg,
		RunE:   c.Test.Execute,
	}
	addSolutionFlags(testCmd, flags)
	testCmd.Flags().StringVar(&flags.Filter, "filter", "", "Only run test cases whose name matches this regular expression")
	testCmd.Flags().BoolVarP(&flags.Time, "time", "t", false, "Show how long each test case took")
	testCmd.Flags().BoolVarP(&flags.Watch, "watch", "w", false, "Re-run the tests every time the solution file is saved")
	testCmd.Flags().BoolVar(&flags.Strict, "strict", false, "Exit with a non-zero status when any test case fails")
	testCmd.Flags().BoolVar(&flags.OpenFailures, "open-failures", false, "Open the failures viewer when the run finishes with failures")
	testCmd.Flags().DurationVar(&flags.Timeout, "timeout", 0, "Kill the solution after this long on a single test case (0 waits forever)")
	rootCmd.AddCommand(testCmd)

	// Debug commands
	debugCmd := &cobra.Command{
		Use:   "debug",
		Short: "Run a solution against generated test cases",
		Long: "Generate test cases with an input generator from the debug folder and stop at the\n" +
			"first one the solution fails. The input generator is the program whose file name\n" +
			"contains \"input\"; the answer validator is the one whose file name contains \"answer\".",
	}
	debugInputCmd := &cobra.Command{
		Use:    "input [path]",
		Short:  "Only report runtime errors on generated input",
		Args:   cobra.MaximumNArgs(1),
		PreRun: pathArg,
		RunE:   c.Debug.ExecuteInput,
	}
	debugAnswerCmd := &cobra.Command{
		Use:    "answer [path]",
		Short:  "Check the solution against an answer validator",
		Args:   cobra.MaximumNArgs(1),
		PreRun: pathArg,
		RunE:   c.Debug.ExecuteAnswer,
	}
	for _, sub := range []*cobra.Command{debugInputCmd, debugAnswerCmd} {
		addSolutionFlags(sub, flags)
		sub.Flags().IntVarP(&flags.NumTests, "num-tests", "n", config.DefaultDebugIterations, "Number of test cases to generate")
		sub.Flags().StringVar(&flags.InputGenerator, "input-generator", "", "Path to the input generator")
		sub.Flags().DurationVar(&flags.Timeout, "timeout", 0, "Kill the solution after this long on a single test case (0 waits forever)")
		debugCmd.AddCommand(sub)
	}
	debugAnswerCmd.Flags().StringVar(&flags.AnswerValidator, "answer-validator", "", "Path to the answer validator")
	rootCmd.AddCommand(debugCmd)

	// Langs command
	rootCmd.AddCommand(&cobra.Command{
		Use:   "langs",
		Short: "List the configured languages",
		Args:  cobra.NoArgs,
		RunE:  c.Langs.Execute,
	})

	// Failures command
	failuresCmd := &cobra.Command{
		Use:    "failures [path]",
		Short:  "View the failing test cases of the last run interactively",
		Args:   cobra.MaximumNArgs(1),
		PreRun: pathArg,
		RunE:   c.Failures.Execute,
	}
	addSolutionFlags(failuresCmd, flags)
	failuresCmd.Flags().BoolVar(&c.Failures.summary, "summary", false, "Print the statistics of the last run instead of opening the viewer")
	rootCmd.AddCommand(failuresCmd)

	// Config command
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Show or initialise the configuration",
		Args:  cobra.NoArgs,
		RunE:  c.Config.Execute,
	}
	configCmd.Flags().BoolVar(&c.Config.location, "location", false, "Print the configuration folder")
	configCmd.Flags().BoolVar(&c.Config.initialise, "init", false, "Create the configuration folder and a starter kitty.yml")
	rootCmd.AddCommand(configCmd)
}

func addSolutionFlags(cmd *cobra.Command, flags *cli.Flags) {
	cmd.Flags().StringVarP(&flags.File, "file", "f", "", "Solution file to use when the folder has several")
	cmd.Flags().StringVarP(&flags.Lang, "lang", "l", "", "Language to use instead of detecting it from the file extension")
}
