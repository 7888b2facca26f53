package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"kitty/internal/lang"
)

// Config holds all configuration for the application
type Config struct {
	// Where kitty.yml lives
	ConfigDir string

	// Solution layout
	TestDir  string
	DebugDir string

	// Output settings
	OutputJSONFile string
	OutputJSONDir  string

	// Execution settings
	Verbose         bool
	RunTimeout      time.Duration
	WatchDebounce   time.Duration
	DebugIterations int

	// Languages from kitty.yml, or the defaults
	DefaultLanguage string
	Languages       []LanguageConfig

	// Command flags
	Flags Flags
}

// Flags holds command-line flags
type Flags struct {
	Path            string
	File            string
	Lang            string
	Filter          string
	Time            bool
	Watch           bool
	Strict          bool
	OpenFailures    bool
	Timeout         time.Duration
	Iterations      int
	InputGenerator  string
	AnswerValidator string
}

// New creates a new Config with defaults
func New() *Config {
	cfg := &Config{
		ConfigDir:       defaultConfigDir(),
		TestDir:         DefaultTestDir,
		DebugDir:        DefaultDebugDir,
		OutputJSONFile:  DefaultOutputJSONFile,
		OutputJSONDir:   DefaultOutputJSONDir,
		WatchDebounce:   DefaultWatchDebounce,
		DebugIterations: DefaultDebugIterations,
		Flags:           Flags{Path: "."},
	}
	// Copy default languages
	cfg.Languages = make([]LanguageConfig, len(DefaultLanguages))
	copy(cfg.Languages, DefaultLanguages)
	return cfg
}

// ConfigFilePath returns the full path to kitty.yml
func (c *Config) ConfigFilePath() string {
	return filepath.Join(c.ConfigDir, DefaultConfigFile)
}

// Registry builds the language lookup table
func (c *Config) Registry() *lang.Registry {
	languages := make([]lang.Language, 0, len(c.Languages))
	for _, l := range c.Languages {
		languages = append(languages, l.Language())
	}
	return lang.NewRegistry(languages, c.DefaultLanguage)
}

// GetSolutionPath returns the solution folder from the path flag
func (c *Config) GetSolutionPath() string {
	if c.Flags.Path == "" {
		return "."
	}
	return c.Flags.Path
}

// GetOutputPath returns the full path to the output JSON file of a solution.
// Resolves to an absolute path so test and failures always use the same file regardless of cwd.
func (c *Config) GetOutputPath(solutionDir string) string {
	p := filepath.Join(solutionDir, c.OutputJSONDir, c.OutputJSONFile)
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}

// GetRunTimeout returns the candidate timeout, the flag taking precedence
func (c *Config) GetRunTimeout() time.Duration {
	if c.Flags.Timeout > 0 {
		return c.Flags.Timeout
	}
	return c.RunTimeout
}

// GetDebugIterations returns how many generated cases to run
func (c *Config) GetDebugIterations() int {
	if c.Flags.Iterations > 0 {
		return c.Flags.Iterations
	}
	return c.DebugIterations
}

// Init creates the config directory and a starter kitty.yml when absent
func (c *Config) Init() (string, error) {
	if err := os.MkdirAll(c.ConfigDir, 0755); err != nil {
		return "", fmt.Errorf("failed to initialise config directory: %w", err)
	}
	path := c.ConfigFilePath()
	if _, err := os.Stat(path); err == nil {
		return c.ConfigDir, nil
	}
	data, err := MarshalLanguages(c.DefaultLanguage, DefaultLanguages)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return c.ConfigDir, nil
}

func defaultConfigDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return filepath.Join(".", "."+DefaultConfigDirName)
	}
	return filepath.Join(dir, DefaultConfigDirName)
}
