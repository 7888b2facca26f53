package discovery

import (
	"fmt"
	"regexp"

	"kitty/internal/domain"
)

// Filter filters test cases by name pattern
type Filter struct{}

// NewFilter creates a new Filter
func NewFilter() *Filter {
	return &Filter{}
}

// FilterByName keeps the cases whose name matches the regular expression
// pattern, preserving order. An empty pattern keeps everything.
func (f *Filter) FilterByName(cases []domain.TestCase, pattern string) ([]domain.TestCase, error) {
	if pattern == "" {
		return cases, nil
	}

	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid filter pattern %q: %w", pattern, err)
	}

	filtered := make([]domain.TestCase, 0, len(cases))
	for _, tc := range cases {
		if re.MatchString(tc.Name) {
			filtered = append(filtered, tc)
		}
	}
	return filtered, nil
}
