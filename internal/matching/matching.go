// Package matching implements the tag-overlap heuristic behind every
// "recommended" endpoint. Free-text tags entered by patients and researchers
// rarely match exactly ("cancer" vs "breast cancer"), so two tags are
// considered related when either is a case-insensitive substring of the other.
package matching

import "strings"

// Limit caps how many items a recommendation query returns.
const Limit = 10

// Overlaps reports whether any tag in a is related to any tag in b.
// Comparison is bidirectional substring containment, case-insensitive.
// An empty or missing list on either side never matches.
func Overlaps(a, b []string) bool {
	for _, left := range a {
		l := strings.ToLower(strings.TrimSpace(left))

		if l == "" {
			continue
		}

		for _, right := range b {
			r := strings.ToLower(strings.TrimSpace(right))

			if r == "" {
				continue
			}

			if strings.Contains(l, r) || strings.Contains(r, l) {
				return true
			}
		}
	}

	return false
}

// MatchesTerm reports whether term is a case-insensitive substring of any tag.
// Used by keyword filters on trial conditions and collaborator search.
func MatchesTerm(tags []string, term string) bool {
	t := strings.ToLower(strings.TrimSpace(term))

	if t == "" {
		return false
	}

	for _, tag := range tags {
		if strings.Contains(strings.ToLower(tag), t) {
			return true
		}
	}

	return false
}
