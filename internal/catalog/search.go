package catalog

import (
	"strings"

	"golang.org/x/text/cases"
)

// BuildSearchBlob combines the searchable fields of a song into a single
// case-folded string used for substring queries.
func BuildSearchBlob(parts ...string) string {
	joined := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			joined = append(joined, trimmed)
		}
	}
	return foldForSearch(strings.Join(joined, " "))
}

func foldForSearch(s string) string {
	// Casers are stateful; build one per call rather than sharing.
	return cases.Fold().String(s)
}
