package storage

import "kitty/internal/domain"

// Storage persists and loads the last test run of a solution (e.g. for the failures viewer).
type Storage interface {
	Save(run RunInfo, summary domain.RunSummary) error
	Load() (*domain.TestResultsOutput, error)
	// SaveOutput writes the full output (e.g. after toggling resolved cases).
	SaveOutput(output *domain.TestResultsOutput) error
}

// RunInfo identifies what was tested
type RunInfo struct {
	Problem      string
	SolutionFile string
}

// JSONStorage stores results in a single JSON file.
type JSONStorage struct {
	path string
}

// NewJSONStorage returns a Storage that reads/writes path,
// usually config.GetOutputPath of the solution folder.
func NewJSONStorage(path string) *JSONStorage {
	return &JSONStorage{path: path}
}

// Path returns the JSON file location
func (s *JSONStorage) Path() string {
	return s.path
}
