package app

import (
	"context"
	"strings"
	"sync/atomic"

	"go.uber.org/zap"

	"aidex/internal/domain"
	"aidex/internal/infra/apiclient"
	"aidex/internal/infra/images"
	"aidex/internal/infra/ranking"
	"aidex/internal/infra/search"
)

// ToolLister returns the memoized list of one tab in one order.
type ToolLister interface {
	GetOrFetch(ctx context.Context, tab string, sort domain.SortType) ([]domain.Tool, error)
}

// ListRequest describes one listing query.
type ListRequest struct {
	Tab           string
	Sort          domain.SortType
	Keywords      []string
	Price         domain.PriceFilter
	Query         string
	FeaturedCount int
}

// ListView is a rendered listing: the featured cards, the remaining cards and
// the filters that produced them.
type ListView struct {
	Tab      string             `json:"tab"`
	TabLabel string             `json:"tabLabel"`
	Sort     domain.SortType    `json:"sort"`
	Keywords []string           `json:"keywords"`
	Price    domain.PriceFilter `json:"price"`
	Query    string             `json:"query,omitempty"`
	Featured []domain.Card      `json:"featured"`
	Rest     []domain.Card      `json:"rest"`
	Total    int                `json:"total"`
}

// ListingService runs the fetch, index, filter and segment pipeline.
type ListingService struct {
	lister        ToolLister
	images        *images.Resolver
	metrics       domain.Metrics
	featuredCount atomic.Int64
	logger        *zap.Logger
}

func NewListingService(lister ToolLister, resolver *images.Resolver, metrics domain.Metrics, cfg domain.Config, logger *zap.Logger) *ListingService {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &ListingService{
		lister:  lister,
		images:  resolver,
		metrics: metrics,
		logger:  logger.Named("listing"),
	}
	s.SetFeaturedCount(cfg.Listing.FeaturedCount)
	return s
}

// SetFeaturedCount changes the default featured section size. Values <= 0
// restore the built-in default.
func (s *ListingService) SetFeaturedCount(n int) {
	if n <= 0 {
		n = domain.DefaultFeaturedCount
	}
	s.featuredCount.Store(int64(n))
}

func (s *ListingService) FeaturedCount() int {
	return int(s.featuredCount.Load())
}

// List fetches the tab (from cache when possible) and applies the request's
// filters.
func (s *ListingService) List(ctx context.Context, req ListRequest) (ListView, error) {
	tab, err := normalizeTab(req.Tab)
	if err != nil {
		return ListView{}, err
	}
	if req.Sort == "" {
		req.Sort = domain.DefaultSort
	}
	if req.Price == "" {
		req.Price = domain.PriceAll
	}
	state := domain.NewFilterState()
	state.SetKeywords(req.Keywords)
	state.Price = req.Price
	state.Sort = req.Sort

	tools, err := s.lister.GetOrFetch(ctx, tab, req.Sort)
	if err != nil {
		return ListView{}, err
	}
	return s.Compose(tab, tools, state, req.Query, req.FeaturedCount), nil
}

// Compose filters an already fetched list. It performs no I/O.
func (s *ListingService) Compose(tab string, tools []domain.Tool, state domain.FilterState, query string, featuredCount int) ListView {
	if featuredCount <= 0 {
		featuredCount = s.FeaturedCount()
	}
	indexed := search.Query(search.BuildIndex(withCategory(tools, tab)), query)
	filtered := search.Filter(indexed, state.Keywords(), state.Price)
	if s.metrics != nil {
		s.metrics.ObserveFilter(len(tools), len(filtered))
	}
	segments := ranking.Segment(filtered, featuredCount)

	return ListView{
		Tab:      tab,
		TabLabel: apiclient.TabLabel(tab),
		Sort:     state.Sort,
		Keywords: state.ActiveKeywords(),
		Price:    state.Price,
		Query:    strings.TrimSpace(query),
		Featured: s.Cards(segments.Featured),
		Rest:     s.Cards(segments.Rest),
		Total:    segments.Len(),
	}
}

// Cards attaches resolved assets to each tool.
func (s *ListingService) Cards(tools []domain.Tool) []domain.Card {
	cards := make([]domain.Card, 0, len(tools))
	for _, tool := range tools {
		cards = append(cards, s.Card(tool))
	}
	return cards
}

func (s *ListingService) Card(tool domain.Tool) domain.Card {
	return domain.Card{Tool: tool, Images: s.images.Resolve(tool.Name, tool.CategorySlug)}
}

// withCategory fills in the tab's category for records the upstream sent
// without one.
func withCategory(tools []domain.Tool, tab string) []domain.Tool {
	var out []domain.Tool
	for i, tool := range tools {
		if tool.CategorySlug != "" {
			continue
		}
		if out == nil {
			out = domain.CloneTools(tools)
		}
		out[i].CategorySlug = tab
		if out[i].CategoryLabel == "" {
			out[i].CategoryLabel = apiclient.TabLabel(tab)
		}
	}
	if out == nil {
		return tools
	}
	return out
}

func normalizeTab(raw string) (string, error) {
	tab := strings.ToLower(strings.TrimSpace(raw))
	if !apiclient.IsTab(tab) {
		return "", domain.E(domain.CodeInvalidArgument, "list tools", "unknown tab "+raw, domain.ErrInvalidArgument)
	}
	return tab, nil
}
