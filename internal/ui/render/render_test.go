package render

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aidex/internal/domain"
)

func newTestRenderer() *Renderer {
	return New(&bytes.Buffer{}, 60)
}

func card(id, name string, tier domain.PricingTier) domain.Card {
	return domain.Card{
		Tool: domain.Tool{
			ID:            id,
			Name:          name,
			Description:   name + " description",
			CategoryLabel: "챗봇",
			PricingTier:   tier,
			Rating:        4.5,
			Tags:          []string{"대화"},
		},
		Images: domain.ImageMapping{Logo: "/images/chatbot/logo/" + id + ".png"},
	}
}

func TestListing_FeaturedBeforeRest(t *testing.T) {
	out := newTestRenderer().Listing(Listing{
		Title:    "챗봇",
		Sort:     domain.SortPopular,
		Keywords: []string{"코드 생성"},
		Price:    domain.PriceFree,
		Featured: []domain.Card{card("1", "ChatGPT", domain.PricingFreemium)},
		Rest:     []domain.Card{card("2", "Claude", domain.PricingFree)},
	})

	assert.Contains(t, out, "sort: popular")
	assert.Contains(t, out, "keywords: 코드 생성")
	assert.Contains(t, out, "price: 무료")
	assert.Contains(t, out, "#대화")
	assert.Contains(t, out, "/images/chatbot/logo/1.png")
	featured := strings.Index(out, "ChatGPT")
	rest := strings.Index(out, "Claude")
	require.True(t, featured >= 0 && rest >= 0)
	assert.Less(t, featured, rest)
	assert.Less(t, strings.Index(out, "Featured"), strings.Index(out, "All tools"))
}

func TestListing_EmptyAndError(t *testing.T) {
	r := newTestRenderer()

	empty := r.Listing(Listing{Title: "영상 생성", Sort: domain.SortNewest})
	assert.Contains(t, empty, "No tools match the current filters.")
	assert.Contains(t, empty, "keywords: "+domain.KeywordAll)

	failed := r.Listing(Listing{
		Title: "영상 생성",
		Sort:  domain.SortNewest,
		Err:   domain.NetworkError("fetch tool list", 502, nil),
		Rest:  []domain.Card{card("9", "Sora", domain.PricingPaid)},
	})
	assert.Contains(t, failed, "Could not load tools")
	assert.Contains(t, failed, "retry")
	assert.NotContains(t, failed, "Sora")
}

func TestDetail(t *testing.T) {
	c := card("1", "ChatGPT", domain.PricingFreemium)
	c.LaunchDate = time.Date(2022, 11, 30, 0, 0, 0, 0, time.UTC)
	c.Features = []string{"대화", "코드 작성"}
	c.WebsiteURL = "https://chat.openai.com"
	c.Images.SearchbarLogo = "/images/chatbot/searchbar/1.png"

	out := newTestRenderer().Detail(c)
	assert.Contains(t, out, "2022-11-30")
	assert.Contains(t, out, "부분 무료")
	assert.Contains(t, out, "4.5")
	assert.Contains(t, out, "  - 코드 작성")
	assert.Contains(t, out, "https://chat.openai.com")
	assert.Contains(t, out, "/images/chatbot/searchbar/1.png")
}

func TestBookmarks(t *testing.T) {
	r := newTestRenderer()
	assert.Contains(t, r.Bookmarks(nil, nil), "No bookmarks yet.")

	out := r.Bookmarks([]domain.Bookmark{{ToolID: "1"}, {ToolID: "2"}}, map[string]string{"1": "ChatGPT"})
	assert.Contains(t, out, "Bookmarks (2)")
	assert.Contains(t, out, "• 1  ChatGPT")
	assert.Contains(t, out, "• 2\n")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcd…", truncate("abcdefgh", 5))
	assert.Equal(t, "가나…", truncate("가나다라", 5))
}

func TestPricingLabel(t *testing.T) {
	assert.Equal(t, "유료", PricingLabel(domain.PricingPaid))
	assert.Equal(t, "", PricingLabel(""))
}
