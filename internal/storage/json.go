package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"kitty/internal/domain"
)

// Save writes the run summary and its failing cases to the JSON file.
func (s *JSONStorage) Save(run RunInfo, summary domain.RunSummary) error {
	failures := make([]domain.TestFailure, 0, summary.Failed)
	for _, r := range summary.Results {
		if !r.Outcome.Passed() {
			failures = append(failures, domain.NewTestFailure(r))
		}
	}

	output := domain.TestResultsOutput{
		Meta: domain.TestResultsMeta{
			Problem:         run.Problem,
			SolutionFile:    run.SolutionFile,
			TotalTestCases:  summary.Total(),
			PassedTestCases: summary.Passed,
			FailedTestCases: summary.Failed,
			Duration:        summary.Duration.String(),
			DurationSeconds: summary.Duration.Seconds(),
			Timestamp:       time.Now().Format(time.RFC3339),
		},
		Details: failures,
	}

	return s.SaveOutput(&output)
}

// Load reads the last test results from the JSON file.
func (s *JSONStorage) Load() (*domain.TestResultsOutput, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("read results file: %w", err)
	}
	var output domain.TestResultsOutput
	if err := json.Unmarshal(data, &output); err != nil {
		return nil, fmt.Errorf("parse results: %w", err)
	}
	return &output, nil
}

// SaveOutput writes the full output to the JSON file.
func (s *JSONStorage) SaveOutput(output *domain.TestResultsOutput) error {
	data, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal results: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("write results: %w", err)
	}
	return nil
}
