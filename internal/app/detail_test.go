package app

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aidex/internal/domain"
)

type fakeFinder map[string]domain.Tool

func (f fakeFinder) FindTool(id string) (domain.Tool, bool) {
	tool, ok := f[id]
	return tool, ok
}

type fakeToolFetcher struct {
	tools map[string]domain.Tool
	calls int
}

func (f *fakeToolFetcher) FetchTool(_ context.Context, id string) (domain.Tool, error) {
	f.calls++
	tool, ok := f.tools[id]
	if !ok {
		return domain.Tool{}, domain.E(domain.CodeNotFound, "fetch tool", id, domain.ErrToolNotFound)
	}
	return tool, nil
}

func newTestDetails(fetcher *fakeToolFetcher, bookmarks *fakeBookmarkClient) *DetailService {
	finder := fakeFinder{"1": chatbotTools()[0]}
	return NewDetailService(finder, fetcher, newTestListing(newFakeLister()), NewBookmarkService(bookmarks, nil), nil)
}

func TestDetailService_PrefersCachedLists(t *testing.T) {
	fetcher := &fakeToolFetcher{}
	details := newTestDetails(fetcher, &fakeBookmarkClient{})

	detail, err := details.Get(context.Background(), "1")
	require.NoError(t, err)
	assert.Equal(t, "ChatGPT", detail.Name)
	assert.Equal(t, "/images/chatbot/service/chatgpt.png", detail.Images.ServiceImage)
	assert.False(t, detail.Bookmarked)
	assert.Zero(t, fetcher.calls)
}

func TestDetailService_FallsBackToUpstream(t *testing.T) {
	fetcher := &fakeToolFetcher{tools: map[string]domain.Tool{
		"20": {ID: "20", Name: "Midjourney", CategorySlug: "image"},
	}}
	details := newTestDetails(fetcher, &fakeBookmarkClient{signedIn: true, bookmarks: []string{"20"}})

	detail, err := details.Get(context.Background(), "20")
	require.NoError(t, err)
	assert.Equal(t, "Midjourney", detail.Name)
	assert.True(t, detail.Bookmarked)
	assert.Equal(t, 1, fetcher.calls)

	_, err = details.Get(context.Background(), "404")
	require.ErrorIs(t, err, domain.ErrToolNotFound)

	_, err = details.Get(context.Background(), "")
	require.ErrorIs(t, err, domain.ErrInvalidArgument)
}

func TestDetailService_BookmarkFailureIsNotFatal(t *testing.T) {
	details := newTestDetails(&fakeToolFetcher{}, &fakeBookmarkClient{signedIn: true, listErr: errors.New("boom")})

	detail, err := details.Get(context.Background(), "1")
	require.NoError(t, err)
	assert.False(t, detail.Bookmarked)
}
