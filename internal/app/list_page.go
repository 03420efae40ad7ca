package app

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"aidex/internal/domain"
	"aidex/internal/infra/telemetry"
)

// ListPage holds the selection state of one listing page and the view last
// derived from it. Filter changes recompute the view from the loaded list
// without I/O; tab and sort changes require Load.
type ListPage struct {
	listing *ListingService
	logger  *zap.Logger

	mu     sync.Mutex
	tab    string
	state  domain.FilterState
	query  string
	tools  []domain.Tool
	err    error
	view   ListView
	loaded bool
}

func NewListPage(listing *ListingService, cfg domain.Config, logger *zap.Logger) *ListPage {
	if logger == nil {
		logger = zap.NewNop()
	}
	state := domain.NewFilterState()
	if cfg.Listing.DefaultSort != "" {
		state.Sort = cfg.Listing.DefaultSort
	}
	tab := cfg.Listing.DefaultTab
	if tab == "" {
		tab = domain.DefaultTab
	}
	page := &ListPage{
		listing: listing,
		logger:  logger.Named("list_page"),
		tab:     tab,
		state:   state,
	}
	page.recompose()
	return page
}

// SelectTab switches the active tab. The view is emptied until Load.
func (p *ListPage) SelectTab(tab string) error {
	normalized, err := normalizeTab(tab)
	if err != nil {
		return err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if normalized == p.tab {
		return nil
	}
	p.tab = normalized
	p.resetList()
	return nil
}

// SelectSort switches the sort order. The view is emptied until Load.
func (p *ListPage) SelectSort(sortType domain.SortType) error {
	parsed, err := domain.ParseSortType(string(sortType))
	if err != nil {
		return err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if parsed == p.state.Sort {
		return nil
	}
	p.state.Sort = parsed
	p.resetList()
	return nil
}

// ToggleKeyword applies a keyword chip click.
func (p *ListPage) ToggleKeyword(keyword string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.state.ToggleKeyword(keyword)
	p.recompose()
}

// SetKeywords replaces the keyword selection.
func (p *ListPage) SetKeywords(keywords []string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.state.SetKeywords(keywords)
	p.recompose()
}

func (p *ListPage) SetPriceFilter(price domain.PriceFilter) error {
	parsed, err := domain.ParsePriceFilter(string(price))
	if err != nil {
		return err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.state.Price = parsed
	p.recompose()
	return nil
}

// SetQuery sets the free-text search box.
func (p *ListPage) SetQuery(query string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.query = query
	p.recompose()
}

// Load fetches the active tab in the active order. The result replaces the
// view only if the tab and sort are still the same when the fetch completes;
// otherwise it is left to the cache and discarded here. On failure the view
// is emptied and the error is kept for display.
func (p *ListPage) Load(ctx context.Context) error {
	p.mu.Lock()
	key := p.activeKey()
	p.mu.Unlock()

	tools, err := p.listing.lister.GetOrFetch(ctx, key.Tab, key.Sort)

	p.mu.Lock()
	defer p.mu.Unlock()
	if current := p.activeKey(); current != key {
		p.logger.Debug("discarding list for inactive selection",
			telemetry.EventField(telemetry.EventStaleResult),
			telemetry.CacheKeyField(key),
			zap.String("active", current.String()),
		)
		return nil
	}
	p.loaded = true
	if err != nil {
		p.tools = nil
		p.err = err
		p.recompose()
		return err
	}
	p.tools = tools
	p.err = nil
	p.recompose()
	return nil
}

// View returns the current view.
func (p *ListPage) View() ListView {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.view
}

// Err returns the error of the last load for the active selection.
func (p *ListPage) Err() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.err
}

// Loaded reports whether the active selection has been loaded, successfully
// or not.
func (p *ListPage) Loaded() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.loaded
}

// Filters returns a copy of the current filter state.
func (p *ListPage) Filters() domain.FilterState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state.Clone()
}

func (p *ListPage) activeKey() domain.CacheKey {
	return domain.CacheKey{Tab: p.tab, Sort: p.state.Sort}
}

func (p *ListPage) resetList() {
	p.tools = nil
	p.err = nil
	p.loaded = false
	p.recompose()
}

func (p *ListPage) recompose() {
	p.view = p.listing.Compose(p.tab, p.tools, p.state.Clone(), p.query, 0)
}
