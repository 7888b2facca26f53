package lang

import (
	"errors"
	"fmt"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/google/shlex"

	"kitty/internal/domain"
)

// ErrUnknownLanguage is returned when no configured language matches a file
var ErrUnknownLanguage = errors.New("kitty doesn't recognise the language")

// Placeholders accepted in command templates
const (
	PlaceholderSource = "{src}"
	PlaceholderDir    = "{dir}"
	PlaceholderExe    = "{exe}"
	PlaceholderStem   = "{stem}"
)

// Resolver turns a source file into the commands that compile and run it
type Resolver interface {
	Commands(src string) (domain.ExecCommands, error)
}

var _ Resolver = (*Language)(nil)

// Language is one configured language. CompileCmd is empty for languages
// that run straight from source.
type Language struct {
	Name       string
	FileExt    string
	RunCmd     string
	CompileCmd string
}

// Commands expands the language's templates for src
func (l *Language) Commands(src string) (domain.ExecCommands, error) {
	vars := placeholderValues(src)

	run, err := expand(l.RunCmd, vars)
	if err != nil {
		return domain.ExecCommands{}, fmt.Errorf("invalid run command for %s: %w", l.Name, err)
	}

	var compile domain.Command
	if strings.TrimSpace(l.CompileCmd) != "" {
		compile, err = expand(l.CompileCmd, vars)
		if err != nil {
			return domain.ExecCommands{}, fmt.Errorf("invalid compile command for %s: %w", l.Name, err)
		}
	}

	return domain.ExecCommands{Compile: compile, Run: run}, nil
}

func (l *Language) String() string {
	return l.Name
}

func placeholderValues(src string) *strings.Replacer {
	dir := filepath.Dir(src)
	base := filepath.Base(src)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	exe := filepath.Join(dir, stem) + exeSuffix()
	if dir == "." {
		// a bare name would be looked up in PATH
		exe = "." + string(filepath.Separator) + exe
	}

	return strings.NewReplacer(
		PlaceholderSource, src,
		PlaceholderDir, dir,
		PlaceholderExe, exe,
		PlaceholderStem, stem,
	)
}

// expand splits the template first so substituted paths containing
// spaces remain single argv tokens.
func expand(tpl string, vars *strings.Replacer) (domain.Command, error) {
	if strings.TrimSpace(tpl) == "" {
		return nil, errors.New("command template is empty")
	}
	fields, err := shlex.Split(tpl)
	if err != nil {
		return nil, fmt.Errorf("parse command template: %w", err)
	}
	if len(fields) == 0 {
		return nil, errors.New("command is empty after expansion")
	}

	cmd := make(domain.Command, len(fields))
	for i, field := range fields {
		cmd[i] = vars.Replace(field)
	}
	return cmd, nil
}

func exeSuffix() string {
	if runtime.GOOS == "windows" {
		return ".exe"
	}
	return ""
}
