// Package search builds lowercase haystacks for tools and filters them by
// keyword chips, price tier and free-text queries.
package search

import (
	"strings"

	"aidex/internal/domain"
)

// BuildIndex derives one haystack per tool. The result is a fresh slice on
// every call and is never updated in place; rebuild it whenever the list
// changes.
func BuildIndex(tools []domain.Tool) []domain.IndexedTool {
	indexed := make([]domain.IndexedTool, 0, len(tools))
	for _, tool := range tools {
		indexed = append(indexed, domain.IndexedTool{
			Tool:     tool,
			Haystack: Haystack(tool),
		})
	}
	return indexed
}

// Haystack joins name, description, category label, features and tags, in
// that order, skipping empty parts, and lowercases the result.
func Haystack(tool domain.Tool) string {
	parts := make([]string, 0, 5)
	for _, part := range []string{
		tool.Name,
		tool.Description,
		tool.CategoryLabel,
		joinNonEmpty(tool.Features),
		joinNonEmpty(tool.Tags),
	} {
		if part == "" {
			continue
		}
		parts = append(parts, part)
	}
	return strings.ToLower(strings.Join(parts, " "))
}

func joinNonEmpty(values []string) string {
	if len(values) == 0 {
		return ""
	}
	kept := make([]string, 0, len(values))
	for _, v := range values {
		if v == "" {
			continue
		}
		kept = append(kept, v)
	}
	return strings.Join(kept, " ")
}
