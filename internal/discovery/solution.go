package discovery

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"kitty/internal/lang"
)

// ErrNoSolutionFile means the folder has no file in a known language
var ErrNoSolutionFile = errors.New("no solution files found in the solution folder")

// Solution is a problem folder and the source file being tested
type Solution struct {
	ID   string
	Dir  string
	File string
	Lang *lang.Language
}

// SolutionOptions are the user's explicit choices
type SolutionOptions struct {
	File string
	Lang string
}

// ResolveSolution picks the solution file and its language in dir
func ResolveSolution(registry *lang.Registry, dir string, opts SolutionOptions) (*Solution, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve solution folder: %w", err)
	}
	info, err := os.Stat(abs)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("the path does not point to a folder: '%s'", dir)
	}

	file, err := resolveSolutionFile(registry, abs, opts.File)
	if err != nil {
		return nil, err
	}

	var language *lang.Language
	if opts.Lang != "" {
		l, ok := registry.Lookup(opts.Lang)
		if !ok {
			return nil, fmt.Errorf("%w: %s", lang.ErrUnknownLanguage, opts.Lang)
		}
		language = l
	} else {
		language, err = registry.FromFile(file)
		if err != nil {
			return nil, err
		}
	}

	return &Solution{
		ID:   filepath.Base(abs),
		Dir:  abs,
		File: file,
		Lang: language,
	}, nil
}

func resolveSolutionFile(registry *lang.Registry, dir, explicit string) (string, error) {
	if explicit != "" {
		path := explicit
		if !filepath.IsAbs(path) {
			path = filepath.Join(dir, path)
		}
		info, err := os.Stat(path)
		if err != nil || !info.Mode().IsRegular() {
			return "", fmt.Errorf("the solution file path does not point to a file: '%s'", explicit)
		}
		return path, nil
	}

	options, err := FilesWithKnownExtension(registry, dir)
	if err != nil {
		return "", err
	}

	switch len(options) {
	case 0:
		return "", fmt.Errorf("%w: '%s'", ErrNoSolutionFile, dir)
	case 1:
		return options[0], nil
	}

	// Several candidates: the default language breaks the tie if it
	// matches exactly one of them.
	if def, ok := registry.Default(); ok {
		var matching []string
		for _, option := range options {
			if l, err := registry.FromFile(option); err == nil && l == def {
				matching = append(matching, option)
			}
		}
		if len(matching) == 1 {
			return matching[0], nil
		}
	}

	return "", errors.New("multiple solution files found. Specify which file to use with the --file option")
}

// FilesWithKnownExtension lists regular files in dir whose extension maps
// to a configured language, sorted by name
func FilesWithKnownExtension(registry *lang.Registry, dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read folder contents: %w", err)
	}

	var files []string
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if registry.Known(path) {
			files = append(files, path)
		}
	}
	sort.Strings(files)
	return files, nil
}
