package ident

import (
	"strconv"
	"strings"
)

// NormalizeScenarioName normalizes a scenario name for use in identifiers.
// The normalization pipeline:
// 1. Synthesize "test_<index>" when the raw name is empty (index is 1-based).
// 2. Case-fold to lower.
// 3. Replace spaces with underscores.
func NormalizeScenarioName(raw string, index int) string {
	if raw == "" {
		return "test_" + strconv.Itoa(index)
	}

	return strings.ReplaceAll(strings.ToLower(raw), " ", "_")
}

// NormalizeDUT lowercases the DUT name, falling back to def when empty.
func NormalizeDUT(raw, def string) string {
	if raw == "" {
		raw = def
	}

	return strings.ToLower(raw)
}

// IsIdentifier reports whether s is a legal SystemVerilog simple identifier:
// a letter or underscore followed by letters, digits, underscores or dollars.
func IsIdentifier(s string) bool {
	if s == "" {
		return false
	}

	for i := 0; i < len(s); i++ {
		c := s[i]

		switch {
		case isLetter(c) || c == '_':
		case i > 0 && (isDigit(c) || c == '$'):
		default:
			return false
		}
	}

	return true
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
