// Package validation implements the form rules the frontend applies before a
// request is sent. The rules are advisory: the server only enforces the
// model constraints.
//
// Every validator fills a per-form Errors struct with one message slot per
// field. All failing fields are recorded; First returns the message of the
// first failing field in declaration order, which is what the transient
// notification shows.
package validation

import (
	"strings"
	"unicode/utf8"
)

// firstOf returns the first non-empty message
func firstOf(msgs ...string) string {
	for _, m := range msgs {
		if m != "" {
			return m
		}
	}
	return ""
}

func length(s string) int {
	return utf8.RuneCountInString(s)
}

// lettersOnly reports whether s is made of ASCII letters and whitespace
func lettersOnly(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case r == ' ', r == '\t', r == '\n', r == '\r':
		default:
			return false
		}
	}
	return true
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// removeSpace drops all whitespace runes
func removeSpace(s string) string {
	return strings.Join(strings.Fields(s), "")
}

// NonBlank trims each entry and drops the empty ones, keeping order
func NonBlank(entries []string) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		if e = strings.TrimSpace(e); e != "" {
			out = append(out, e)
		}
	}
	return out
}
