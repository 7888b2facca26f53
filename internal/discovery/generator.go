package discovery

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"kitty/internal/lang"
)

// Generator names looked for in the debug folder
const (
	InputGeneratorName  = "input"
	AnswerValidatorName = "answer"
)

// ResolveGenerator finds the program called name in debugDir: the single
// file in a known language whose file name contains name. An explicit
// path skips the search.
func ResolveGenerator(registry *lang.Registry, name, debugDir, explicit string) (string, *lang.Language, error) {
	if explicit != "" {
		path, err := filepath.Abs(explicit)
		if err != nil {
			return "", nil, fmt.Errorf("failed to resolve the %s generator path: %w", name, err)
		}
		info, err := os.Stat(path)
		if err != nil || !info.Mode().IsRegular() {
			return "", nil, fmt.Errorf("the %s generator file path does not point to a file: %s", name, explicit)
		}
		l, err := registry.FromFile(path)
		if err != nil {
			return "", nil, err
		}
		return path, l, nil
	}

	info, err := os.Stat(debugDir)
	if err != nil || !info.IsDir() {
		return "", nil, fmt.Errorf("you don't have a debug folder. Create it at: %s", debugDir)
	}

	files, err := FilesWithKnownExtension(registry, debugDir)
	if err != nil {
		return "", nil, err
	}

	var options []string
	for _, file := range files {
		if strings.Contains(filepath.Base(file), name) {
			options = append(options, file)
		}
	}

	switch len(options) {
	case 0:
		return "", nil, fmt.Errorf("no %s generator file found in the debug folder: %s. See the help message for how to create one", name, debugDir)
	case 1:
		l, err := registry.FromFile(options[0])
		if err != nil {
			return "", nil, err
		}
		return options[0], l, nil
	}
	return "", nil, fmt.Errorf("multiple %s generator files found. Specify which file to use", name)
}
