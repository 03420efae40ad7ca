package app

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"aidex/internal/domain"
	"aidex/internal/infra/telemetry"
)

// ToolFinder looks a tool up among already fetched lists.
type ToolFinder interface {
	FindTool(id string) (domain.Tool, bool)
}

// ToolFetcher loads a single tool from the upstream API.
type ToolFetcher interface {
	FetchTool(ctx context.Context, id string) (domain.Tool, error)
}

// Detail is a tool's detail view.
type Detail struct {
	domain.Card
	Bookmarked bool `json:"bookmarked"`
}

type DetailService struct {
	finder    ToolFinder
	fetcher   ToolFetcher
	listing   *ListingService
	bookmarks *BookmarkService
	logger    *zap.Logger
}

func NewDetailService(finder ToolFinder, fetcher ToolFetcher, listing *ListingService, bookmarks *BookmarkService, logger *zap.Logger) *DetailService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DetailService{
		finder:    finder,
		fetcher:   fetcher,
		listing:   listing,
		bookmarks: bookmarks,
		logger:    logger.Named("detail"),
	}
}

// Get returns the tool with the given ID. Cached lists are searched first;
// the upstream detail endpoint is only called when no list holds the tool.
// Bookmark state is attached when the user is signed in; a failure to read
// it is logged and leaves Bookmarked false.
func (s *DetailService) Get(ctx context.Context, id string) (Detail, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Detail{}, domain.E(domain.CodeInvalidArgument, "get tool", "tool id is required", domain.ErrInvalidArgument)
	}

	tool, ok := s.finder.FindTool(id)
	if !ok {
		fetched, err := s.fetcher.FetchTool(ctx, id)
		if err != nil {
			return Detail{}, err
		}
		tool = fetched
	}

	detail := Detail{Card: s.listing.Card(tool)}
	if s.bookmarks == nil || !s.bookmarks.IsAuthenticated() {
		return detail, nil
	}
	bookmarked, err := s.bookmarks.IsBookmarked(ctx, id)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return Detail{}, err
		}
		s.logger.Warn("bookmark state unavailable", telemetry.ToolIDField(id), zap.Error(err))
		return detail, nil
	}
	detail.Bookmarked = bookmarked
	return detail, nil
}
