package catalog

import "strings"

// Filter keeps the candidates whose text contains the query,
// case-insensitively. An empty query keeps everything. This is the pure
// function behind search and autocomplete.
func Filter[T any](query string, candidates []T, text func(T) string) []T {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return candidates
	}
	var out []T
	for _, c := range candidates {
		if strings.Contains(strings.ToLower(text(c)), q) {
			out = append(out, c)
		}
	}
	return out
}
