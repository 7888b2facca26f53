package discovery

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"

	"kitty/internal/domain"
)

// ErrMissingTestDirectory means the solution has no test folder yet.
// Callers may recover by fetching the tests.
var ErrMissingTestDirectory = errors.New("no test cases found")

const (
	inputExt  = ".in"
	answerExt = ".ans"
)

// Scanner finds .in/.ans pairs in a solution's test folder
type Scanner struct {
	testDir string
	logger  *zap.Logger
}

// NewScanner creates a new Scanner for the given test folder name
func NewScanner(testDir string, logger *zap.Logger) *Scanner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scanner{testDir: testDir, logger: logger}
}

// TestDir returns the test folder of a solution
func (s *Scanner) TestDir(solutionDir string) string {
	return filepath.Join(solutionDir, s.testDir)
}

// Scan returns one test case per stem that has both an .in and an .ans
// file, sorted case-insensitively by name. Orphans are dropped.
func (s *Scanner) Scan(solutionDir string) ([]domain.TestCase, error) {
	dir := s.TestDir(solutionDir)

	info, err := os.Stat(dir)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrMissingTestDirectory, dir)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read test case folder: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("test path is not a directory: %s", dir)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read test case folder: %w", err)
	}

	inputs := make(map[string]string)
	answers := make(map[string]string)

	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}

		name := entry.Name()
		ext := filepath.Ext(name)
		stem := strings.TrimSuffix(name, ext)
		if stem == "" {
			continue
		}

		switch strings.ToLower(ext) {
		case inputExt:
			inputs[stem] = filepath.Join(dir, name)
		case answerExt:
			answers[stem] = filepath.Join(dir, name)
		}
	}

	cases := make([]domain.TestCase, 0, len(inputs))
	for stem, inputFile := range inputs {
		answerFile, ok := answers[stem]
		if !ok {
			s.logger.Debug("skipping input without answer", zap.String("file", inputFile))
			continue
		}
		cases = append(cases, domain.TestCase{
			Name:   stem,
			Source: domain.FileSource{InputFile: inputFile, AnswerFile: answerFile},
		})
	}
	for stem, answerFile := range answers {
		if _, ok := inputs[stem]; !ok {
			s.logger.Debug("skipping answer without input", zap.String("file", answerFile))
		}
	}

	SortByName(cases)

	s.logger.Debug("discovered test cases", zap.String("dir", dir), zap.Int("count", len(cases)))
	return cases, nil
}

// SortByName orders test cases case-insensitively, falling back to the
// exact name so the order never depends on directory enumeration.
func SortByName(cases []domain.TestCase) {
	sort.Slice(cases, func(i, j int) bool {
		a, b := strings.ToLower(cases[i].Name), strings.ToLower(cases[j].Name)
		if a != b {
			return a < b
		}
		return cases[i].Name < cases[j].Name
	})
}
