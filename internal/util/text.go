package util

import "strings"

// SplitLines splits on '\n' and drops a trailing '\r' from each line.
// Empty lines are kept so line numbers stay aligned with the input.
func SplitLines(text string) []string {
	parts := strings.Split(text, "\n")
	for i, p := range parts {
		parts[i] = strings.TrimSuffix(p, "\r")
	}
	return parts
}

// QuotedField returns the idx-th piece of line split on '"'. Odd indexes are
// the contents of quoted strings: 1 is the first quoted value, 3 the second.
func QuotedField(line string, idx int) (string, bool) {
	parts := strings.Split(line, `"`)
	if idx < 0 || idx >= len(parts) {
		return "", false
	}
	return parts[idx], true
}

func HasBrace(line string) bool {
	return strings.ContainsAny(line, "{}")
}

func IsBlank(line string) bool {
	return strings.TrimSpace(line) == ""
}
