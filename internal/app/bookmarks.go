package app

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"aidex/internal/domain"
	"aidex/internal/infra/telemetry"
)

// BookmarkClient is the upstream bookmark API of the signed-in user.
type BookmarkClient interface {
	IsAuthenticated() bool
	ListBookmarks(ctx context.Context) ([]domain.Bookmark, error)
	AddBookmark(ctx context.Context, toolID string) error
	RemoveBookmark(ctx context.Context, toolID string) error
}

type BookmarkService struct {
	client BookmarkClient
	logger *zap.Logger
}

func NewBookmarkService(client BookmarkClient, logger *zap.Logger) *BookmarkService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BookmarkService{client: client, logger: logger.Named("bookmarks")}
}

// IsAuthenticated reports whether bookmark calls can be made.
func (s *BookmarkService) IsAuthenticated() bool {
	return s.client.IsAuthenticated()
}

func (s *BookmarkService) List(ctx context.Context) ([]domain.Bookmark, error) {
	if err := s.requireAuth("list bookmarks"); err != nil {
		return nil, err
	}
	return s.client.ListBookmarks(ctx)
}

// IsBookmarked reports whether toolID is among the user's bookmarks.
func (s *BookmarkService) IsBookmarked(ctx context.Context, toolID string) (bool, error) {
	bookmarks, err := s.List(ctx)
	if err != nil {
		return false, err
	}
	for _, bookmark := range bookmarks {
		if bookmark.ToolID == toolID {
			return true, nil
		}
	}
	return false, nil
}

func (s *BookmarkService) Add(ctx context.Context, toolID string) error {
	toolID, err := s.prepare("add bookmark", toolID)
	if err != nil {
		return err
	}
	if err := s.client.AddBookmark(ctx, toolID); err != nil {
		return err
	}
	s.logger.Info("bookmark added", telemetry.EventField(telemetry.EventBookmarkAdd), telemetry.ToolIDField(toolID))
	return nil
}

func (s *BookmarkService) Remove(ctx context.Context, toolID string) error {
	toolID, err := s.prepare("remove bookmark", toolID)
	if err != nil {
		return err
	}
	if err := s.client.RemoveBookmark(ctx, toolID); err != nil {
		return err
	}
	s.logger.Info("bookmark removed", telemetry.EventField(telemetry.EventBookmarkRemove), telemetry.ToolIDField(toolID))
	return nil
}

// Toggle removes toolID when it is bookmarked and adds it otherwise. It
// reports whether the tool is bookmarked afterwards.
func (s *BookmarkService) Toggle(ctx context.Context, toolID string) (bool, error) {
	toolID, err := s.prepare("toggle bookmark", toolID)
	if err != nil {
		return false, err
	}
	bookmarked, err := s.IsBookmarked(ctx, toolID)
	if err != nil {
		return false, err
	}
	if bookmarked {
		return false, s.Remove(ctx, toolID)
	}
	return true, s.Add(ctx, toolID)
}

func (s *BookmarkService) prepare(op, toolID string) (string, error) {
	toolID = strings.TrimSpace(toolID)
	if toolID == "" {
		return "", domain.E(domain.CodeInvalidArgument, op, "tool id is required", domain.ErrInvalidArgument)
	}
	return toolID, s.requireAuth(op)
}

func (s *BookmarkService) requireAuth(op string) error {
	if !s.client.IsAuthenticated() {
		return domain.E(domain.CodeUnauthenticated, op, "", domain.ErrUnauthenticated)
	}
	return nil
}
