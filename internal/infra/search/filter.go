package search

import (
	"strings"

	"aidex/internal/domain"
)

// Filter applies the keyword chips and then the price filter. Keywords match
// as case-insensitive substrings of the haystack with OR semantics; the ALL
// chip is ignored, and a set with no specific keyword restricts nothing.
// Relative order is preserved.
func Filter(indexed []domain.IndexedTool, keywords map[string]struct{}, price domain.PriceFilter) []domain.Tool {
	needles := needlesFrom(keywords)
	out := make([]domain.Tool, 0, len(indexed))
	for _, entry := range indexed {
		if len(needles) > 0 && !containsAny(entry.Haystack, needles) {
			continue
		}
		if !price.Matches(entry.Tool.PricingTier) {
			continue
		}
		out = append(out, entry.Tool)
	}
	return out
}

// Query keeps entries whose haystack contains the trimmed, lowercased text.
// An empty query keeps everything.
func Query(indexed []domain.IndexedTool, text string) []domain.IndexedTool {
	needle := strings.ToLower(strings.TrimSpace(text))
	if needle == "" {
		return indexed
	}
	out := make([]domain.IndexedTool, 0, len(indexed))
	for _, entry := range indexed {
		if strings.Contains(entry.Haystack, needle) {
			out = append(out, entry)
		}
	}
	return out
}

func needlesFrom(keywords map[string]struct{}) []string {
	needles := make([]string, 0, len(keywords))
	for keyword := range keywords {
		if keyword == domain.KeywordAll {
			continue
		}
		needle := strings.ToLower(keyword)
		if needle == "" {
			continue
		}
		needles = append(needles, needle)
	}
	return needles
}

func containsAny(haystack string, needles []string) bool {
	for _, needle := range needles {
		if strings.Contains(haystack, needle) {
			return true
		}
	}
	return false
}
