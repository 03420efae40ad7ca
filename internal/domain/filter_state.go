package domain

import (
	"sort"
	"strings"
)

// FilterState is the chip, price and sort selection of a listing page.
// The keyword set is never empty: it holds either KeywordAll alone or one or
// more specific keywords.
type FilterState struct {
	keywords map[string]struct{}
	Price    PriceFilter
	Sort     SortType
}

// NewFilterState returns the initial state: {ALL}, all prices, default sort.
func NewFilterState() FilterState {
	return FilterState{
		keywords: map[string]struct{}{KeywordAll: {}},
		Price:    PriceAll,
		Sort:     DefaultSort,
	}
}

// ToggleKeyword applies a chip click. ALL clears every other selection, a
// specific keyword drops ALL, and removing the last specific keyword reverts
// to {ALL}.
func (s *FilterState) ToggleKeyword(keyword string) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return
	}
	if keyword == KeywordAll {
		s.SelectAll()
		return
	}
	s.ensure()
	if _, ok := s.keywords[keyword]; ok {
		delete(s.keywords, keyword)
		if len(s.specificKeywords()) == 0 {
			s.SelectAll()
		}
		return
	}
	delete(s.keywords, KeywordAll)
	s.keywords[keyword] = struct{}{}
}

// SetKeywords replaces the selection, applying the same normalization as a
// sequence of toggles from {ALL}.
func (s *FilterState) SetKeywords(keywords []string) {
	s.SelectAll()
	for _, keyword := range keywords {
		keyword = strings.TrimSpace(keyword)
		if keyword == "" || keyword == KeywordAll {
			continue
		}
		if _, ok := s.keywords[keyword]; ok {
			continue
		}
		s.ToggleKeyword(keyword)
	}
}

// SelectAll resets the keyword set to {ALL}.
func (s *FilterState) SelectAll() {
	s.keywords = map[string]struct{}{KeywordAll: {}}
}

// Keywords returns the raw selection, including KeywordAll when present.
func (s FilterState) Keywords() map[string]struct{} {
	if len(s.keywords) == 0 {
		return map[string]struct{}{KeywordAll: {}}
	}
	out := make(map[string]struct{}, len(s.keywords))
	for k := range s.keywords {
		out[k] = struct{}{}
	}
	return out
}

// ActiveKeywords returns the specific keywords in sorted order.
func (s FilterState) ActiveKeywords() []string {
	return s.specificKeywords()
}

// HasKeywordFilter reports whether any specific keyword is selected.
func (s FilterState) HasKeywordFilter() bool {
	return len(s.specificKeywords()) > 0
}

// IsSelected reports whether a chip is currently highlighted.
func (s FilterState) IsSelected(keyword string) bool {
	if len(s.keywords) == 0 {
		return keyword == KeywordAll
	}
	_, ok := s.keywords[keyword]
	return ok
}

func (s *FilterState) ensure() {
	if s.keywords == nil {
		s.SelectAll()
	}
}

func (s FilterState) specificKeywords() []string {
	out := make([]string, 0, len(s.keywords))
	for k := range s.keywords {
		if k == KeywordAll {
			continue
		}
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func normalizeToken(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

// Clone returns a copy that does not share the keyword set.
func (s FilterState) Clone() FilterState {
	out := s
	out.keywords = s.Keywords()
	return out
}
