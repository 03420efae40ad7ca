package apiclient

import (
	"net/url"
	"sort"
	"strconv"
	"strings"

	"aidex/internal/domain"
)

type tabInfo struct {
	category string
	label    string
}

// tabTable maps page tabs to the upstream category parameter and the label
// shown on cards.
var tabTable = map[string]tabInfo{
	"chatbot":      {category: "CHATBOT", label: "챗봇"},
	"image":        {category: "IMAGE", label: "이미지 생성"},
	"video":        {category: "VIDEO", label: "영상 생성"},
	"audio":        {category: "AUDIO", label: "음성·음악"},
	"writing":      {category: "WRITING", label: "글쓰기"},
	"coding":       {category: "CODING", label: "코딩"},
	"productivity": {category: "PRODUCTIVITY", label: "생산성"},
	"design":       {category: "DESIGN", label: "디자인"},
	"search":       {category: "SEARCH", label: "검색"},
	"avatar":       {category: "AVATAR", label: "아바타"},
	"3d":           {category: "3D", label: "3D"},
}

var sortTable = map[domain.SortType]string{
	domain.SortPopular: "viewCount,desc",
	domain.SortNewest:  "launchDate,desc",
}

// ListQuery is the typed parameter set of the tool list endpoint.
type ListQuery struct {
	Category string
	Sort     string
	Size     int
}

// NewListQuery translates a tab and sort selection into upstream parameters.
func NewListQuery(tab string, sortType domain.SortType, size int) (ListQuery, error) {
	info, ok := tabTable[strings.ToLower(strings.TrimSpace(tab))]
	if !ok {
		return ListQuery{}, domain.E(domain.CodeInvalidArgument, "list query", "unknown tab "+strconv.Quote(tab), domain.ErrInvalidArgument)
	}
	sortParam, ok := sortTable[sortType]
	if !ok {
		return ListQuery{}, domain.E(domain.CodeInvalidArgument, "list query", "unknown sort "+strconv.Quote(string(sortType)), domain.ErrInvalidArgument)
	}
	if size <= 0 {
		size = domain.DefaultPageSize
	}
	return ListQuery{Category: info.category, Sort: sortParam, Size: size}, nil
}

// Values renders the query string parameters.
func (q ListQuery) Values() url.Values {
	values := url.Values{}
	values.Set("category", q.Category)
	values.Set("sort", q.Sort)
	values.Set("size", strconv.Itoa(q.Size))
	return values
}

// Tabs lists the known tab slugs in sorted order.
func Tabs() []string {
	tabs := make([]string, 0, len(tabTable))
	for tab := range tabTable {
		tabs = append(tabs, tab)
	}
	sort.Strings(tabs)
	return tabs
}

// IsTab reports whether slug names a known tab.
func IsTab(slug string) bool {
	_, ok := tabTable[strings.ToLower(strings.TrimSpace(slug))]
	return ok
}

// TabLabel returns the display label of a tab, or "" when unknown.
func TabLabel(slug string) string {
	return tabTable[strings.ToLower(strings.TrimSpace(slug))].label
}

// tabForCategory maps an upstream category value back to its tab slug.
func tabForCategory(category string) string {
	normalized := strings.ToLower(strings.TrimSpace(category))
	if _, ok := tabTable[normalized]; ok {
		return normalized
	}
	upper := strings.ToUpper(strings.TrimSpace(category))
	for tab, info := range tabTable {
		if info.category == upper {
			return tab
		}
	}
	return normalized
}
