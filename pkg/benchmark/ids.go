// Package benchmark parses the free-text benchmark employee lists that
// recruiters paste into a vacancy form.
package benchmark

import (
	"regexp"
	"strings"
)

// idPattern matches an employee ID: an alphabetic prefix followed by digits
// (EMP100012), or a bare number.
var idPattern = regexp.MustCompile(`[A-Za-z]+\d+|\d+`)

// ParseIDs extracts employee IDs from text separated by commas, whitespace,
// semicolons or any other punctuation. IDs are returned in first-seen order
// without duplicates.
func ParseIDs(input string) []string {
	matches := idPattern.FindAllString(input, -1)
	return Dedupe(matches)
}

// Dedupe trims ids and drops blanks and repeats, keeping first-seen order.
func Dedupe(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}

// Join renders ids as a comma-separated list.
func Join(ids []string) string {
	return strings.Join(ids, ", ")
}
