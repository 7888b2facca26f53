package ui

import "kitty/internal/domain"

// Viewer displays stored test results in an interactive TUI
type Viewer interface {
	View(results *domain.TestResultsOutput) error
}
