package util

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseInt parses a base-10 integer with no surrounding noise. Overflow is an
// error rather than a clamp.
func ParseInt(token string) (int, error) {
	n, err := strconv.Atoi(token)
	if err != nil {
		return 0, fmt.Errorf("parse integer %q: %w", token, err)
	}
	return n, nil
}

// SplitTokens splits a comma separated id list. Whitespace around a token is
// kept, so " 5" is not treated as the number 5.
func SplitTokens(token string) []string {
	return strings.Split(token, ",")
}
