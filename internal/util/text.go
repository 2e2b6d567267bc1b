package util

import "strings"

// placeholders is the in-band vocabulary the export uses for "no data":
// empty strings, "?" and any casing of "unknown". Every field rule goes
// through this one predicate so the vocabulary stays consistent.
var placeholders = map[string]struct{}{
	"":        {},
	"?":       {},
	"unknown": {},
}

func IsPlaceholder(input string) bool {
	_, ok := placeholders[strings.ToLower(strings.TrimSpace(input))]
	return ok
}

// CleanString trims the input and returns nil when nothing remains.
func CleanString(input string) *string {
	s := strings.TrimSpace(input)
	if s == "" {
		return nil
	}
	return &s
}

// CleanText is CleanString plus placeholder rejection.
func CleanText(input string) *string {
	if IsPlaceholder(input) {
		return nil
	}
	return CleanString(input)
}

func StringPtr(v string) *string { return &v }
