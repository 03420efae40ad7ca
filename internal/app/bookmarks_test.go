package app

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aidex/internal/domain"
)

type fakeBookmarkClient struct {
	mu        sync.Mutex
	signedIn  bool
	bookmarks []string
	listErr   error
	calls     []string
}

func (f *fakeBookmarkClient) IsAuthenticated() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.signedIn
}

func (f *fakeBookmarkClient) ListBookmarks(context.Context) ([]domain.Bookmark, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, "list")
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]domain.Bookmark, 0, len(f.bookmarks))
	for _, id := range f.bookmarks {
		out = append(out, domain.Bookmark{ToolID: id})
	}
	return out, nil
}

func (f *fakeBookmarkClient) AddBookmark(_ context.Context, toolID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, "add "+toolID)
	f.bookmarks = append(f.bookmarks, toolID)
	return nil
}

func (f *fakeBookmarkClient) RemoveBookmark(_ context.Context, toolID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, "remove "+toolID)
	kept := f.bookmarks[:0]
	for _, id := range f.bookmarks {
		if id != toolID {
			kept = append(kept, id)
		}
	}
	f.bookmarks = kept
	return nil
}

func TestBookmarkService_Toggle(t *testing.T) {
	client := &fakeBookmarkClient{signedIn: true, bookmarks: []string{"2"}}
	service := NewBookmarkService(client, nil)
	ctx := context.Background()

	added, err := service.Toggle(ctx, " 1 ")
	require.NoError(t, err)
	assert.True(t, added)

	added, err = service.Toggle(ctx, "2")
	require.NoError(t, err)
	assert.False(t, added)

	bookmarks, err := service.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []domain.Bookmark{{ToolID: "1"}}, bookmarks)
	assert.Equal(t, []string{"list", "add 1", "list", "remove 2", "list"}, client.calls)
}

func TestBookmarkService_RequiresSignIn(t *testing.T) {
	client := &fakeBookmarkClient{}
	service := NewBookmarkService(client, nil)
	ctx := context.Background()

	_, err := service.List(ctx)
	require.ErrorIs(t, err, domain.ErrUnauthenticated)
	_, err = service.Toggle(ctx, "1")
	require.ErrorIs(t, err, domain.ErrUnauthenticated)
	require.ErrorIs(t, service.Add(ctx, "1"), domain.ErrUnauthenticated)
	require.ErrorIs(t, service.Remove(ctx, "1"), domain.ErrUnauthenticated)
	assert.Empty(t, client.calls)
}

func TestBookmarkService_RejectsEmptyID(t *testing.T) {
	service := NewBookmarkService(&fakeBookmarkClient{signedIn: true}, nil)
	require.ErrorIs(t, service.Add(context.Background(), "  "), domain.ErrInvalidArgument)
}

func TestBookmarkService_ToggleStopsOnListFailure(t *testing.T) {
	client := &fakeBookmarkClient{signedIn: true, listErr: errors.New("boom")}
	service := NewBookmarkService(client, nil)

	_, err := service.Toggle(context.Background(), "1")
	require.Error(t, err)
	assert.Equal(t, []string{"list"}, client.calls)
}
