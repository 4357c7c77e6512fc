package filterutil

import "strings"

// Filter narrows items down to those whose name contains the query as a
// subsequence: every query character must appear in the name in order, but
// not necessarily next to each other. "lux" matches "Luxanna". Matching is
// case-insensitive on both sides and the relative order of items is kept.
//
// An empty (or whitespace-only) query returns a copy of the input, so the
// caller can mutate the result without touching the original slice.
func Filter[T any](query string, items []T, nameOf func(T) string) []T {
	if strings.TrimSpace(query) == "" {
		out := make([]T, len(items))
		copy(out, items)
		return out
	}

	q := strings.ToLower(query)
	out := make([]T, 0, len(items))
	for _, item := range items {
		if isSubsequence(q, strings.ToLower(nameOf(item))) {
			out = append(out, item)
		}
	}
	return out
}

// isSubsequence walks target left to right, advancing the query cursor on
// every match. Single pass, leftmost match.
func isSubsequence(query, target string) bool {
	qi := 0
	for ti := 0; qi < len(query) && ti < len(target); ti++ {
		if query[qi] == target[ti] {
			qi++
		}
	}
	return qi == len(query)
}
