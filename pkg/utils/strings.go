package utils

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	slugInvalid = regexp.MustCompile(`[^a-z0-9 _-]+`)
	slugSep     = regexp.MustCompile(`[ _-]+`)
)

// GenerateSlug converts a string into a URL-friendly slug.
// e.g. "Men's T-Shirt!" -> "mens-t-shirt"
func GenerateSlug(input string) string {
	s := strings.ToLower(input)
	s = slugInvalid.ReplaceAllString(s, "")
	// Spaces, underscores and hyphen runs all collapse to a single hyphen.
	s = slugSep.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// ParseInt parses a string to int with a fallback default value.
func ParseInt(s string, defaultVal int) int {
	if s == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(s)
	if err != nil {
		return defaultVal
	}
	return val
}

// ParseInt64 parses a string to int64, returning ok=false on failure.
func ParseInt64(s string) (int64, bool) {
	val, err := strconv.ParseInt(s, 10, 64)
	return val, err == nil
}
