package execution

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Normalise strips trailing whitespace from the whole text and from every
// line. Leading whitespace and blank lines in the middle are kept.
func Normalise(s string) string {
	lines := strings.Split(strings.TrimRightFunc(s, unicode.IsSpace), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRightFunc(line, unicode.IsSpace)
	}
	return strings.Join(lines, "\n")
}

// EqualAfterNormalisation compares two outputs the way a judge would
func EqualAfterNormalisation(a, b string) bool {
	return Normalise(a) == Normalise(b)
}

func lossy(b []byte) string {
	if utf8.Valid(b) {
		return string(b)
	}
	return strings.ToValidUTF8(string(b), "�")
}

func trimEnd(s string) string {
	return strings.TrimRightFunc(s, unicode.IsSpace)
}
