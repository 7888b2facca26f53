package cli

import (
	"time"

	"kitty/internal/config"
)

// Flags holds command-line flags
type Flags struct {
	Verbose         bool
	Path            string
	File            string
	Lang            string
	Filter          string
	Time            bool
	Watch           bool
	Strict          bool
	OpenFailures    bool
	Timeout         time.Duration
	NumTests        int
	InputGenerator  string
	AnswerValidator string
}

// ToConfigFlags converts CLI flags to config flags
func (f *Flags) ToConfigFlags() config.Flags {
	return config.Flags{
		Path:            f.Path,
		File:            f.File,
		Lang:            f.Lang,
		Filter:          f.Filter,
		Time:            f.Time,
		Watch:           f.Watch,
		Strict:          f.Strict,
		OpenFailures:    f.OpenFailures,
		Timeout:         f.Timeout,
		Iterations:      f.NumTests,
		InputGenerator:  f.InputGenerator,
		AnswerValidator: f.AnswerValidator,
	}
}

// Apply copies the flags into cfg. --verbose can only switch verbose mode on.
func (f *Flags) Apply(cfg *config.Config) {
	cfg.Flags = f.ToConfigFlags()
	if f.Verbose {
		cfg.Verbose = true
	}
}
