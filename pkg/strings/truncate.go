package strings

import (
	"strings"
)

// DefaultErrorMaxLen is the default maximum length for error messages in
// formatted table output.
const DefaultErrorMaxLen = 60

// MinTruncateLen is the minimum maxLen value for Truncate. Values smaller
// than this would not leave room for meaningful content plus "...".
const MinTruncateLen = 4

// Truncate truncates a string to maxLen characters and ensures single-line
// output: newlines and repeated whitespace collapse to single spaces, and
// "..." is appended if the string was cut.
//
// Operates on runes rather than bytes so multi-byte characters are never cut
// in half.
func Truncate(s string, maxLen int) string {
	if maxLen < MinTruncateLen {
		maxLen = MinTruncateLen
	}

	s = strings.Join(strings.Fields(s), " ")

	runes := []rune(s)
	if len(runes) > maxLen {
		return string(runes[:maxLen-3]) + "..."
	}
	return s
}
