package domain

import (
	"time"
)

// PricingTier classifies how a tool is monetized.
type PricingTier string

const (
	PricingFree     PricingTier = "free"
	PricingPaid     PricingTier = "paid"
	PricingFreemium PricingTier = "freemium"
)

// ParsePricingTier normalizes an upstream pricing value. Unknown values map to
// the empty tier, which never matches a specific price filter.
func ParsePricingTier(raw string) PricingTier {
	switch PricingTier(normalizeToken(raw)) {
	case PricingFree:
		return PricingFree
	case PricingPaid:
		return PricingPaid
	case PricingFreemium:
		return PricingFreemium
	default:
		return ""
	}
}

// PriceFilter selects tools by pricing tier.
type PriceFilter string

const (
	PriceAll      PriceFilter = "all"
	PriceFree     PriceFilter = "free"
	PricePaid     PriceFilter = "paid"
	PriceFreemium PriceFilter = "freemium"
)

// ParsePriceFilter validates a price filter. The empty string means PriceAll.
func ParsePriceFilter(raw string) (PriceFilter, error) {
	switch PriceFilter(normalizeToken(raw)) {
	case "", PriceAll:
		return PriceAll, nil
	case PriceFree:
		return PriceFree, nil
	case PricePaid:
		return PricePaid, nil
	case PriceFreemium:
		return PriceFreemium, nil
	default:
		return "", E(CodeInvalidArgument, "parse price filter", "unknown price filter "+raw, ErrInvalidArgument)
	}
}

// Matches reports whether a tier passes the filter.
func (f PriceFilter) Matches(tier PricingTier) bool {
	if f == "" || f == PriceAll {
		return true
	}
	return PricingTier(f) == tier
}

// SortType orders a tab's tool list.
type SortType string

const (
	SortPopular SortType = "popular"
	SortNewest  SortType = "newest"
)

// ParseSortType validates a sort type. The empty string means DefaultSort.
func ParseSortType(raw string) (SortType, error) {
	switch SortType(normalizeToken(raw)) {
	case "":
		return DefaultSort, nil
	case SortPopular:
		return SortPopular, nil
	case SortNewest:
		return SortNewest, nil
	default:
		return "", E(CodeInvalidArgument, "parse sort", "unknown sort "+raw, ErrInvalidArgument)
	}
}

// Tool is an immutable snapshot of a catalog entry as fetched upstream.
type Tool struct {
	ID            string      `json:"id"`
	Name          string      `json:"name"`
	Description   string      `json:"description,omitempty"`
	CategorySlug  string      `json:"categorySlug,omitempty"`
	CategoryLabel string      `json:"categoryLabel,omitempty"`
	PricingTier   PricingTier `json:"pricingTier,omitempty"`
	Rating        float64     `json:"rating"`
	Tags          []string    `json:"tags,omitempty"`
	Keywords      []string    `json:"keywords,omitempty"`
	Features      []string    `json:"features,omitempty"`
	ViewCount     int64       `json:"viewCount"`
	BookmarkCount int64       `json:"bookmarkCount"`
	LaunchDate    time.Time   `json:"launchDate,omitempty"`
	WebsiteURL    string      `json:"websiteUrl,omitempty"`
	LogoURL       string      `json:"logoUrl,omitempty"`
}

// IndexedTool pairs a tool with its lowercase search haystack.
type IndexedTool struct {
	Tool     Tool
	Haystack string
}

// CacheKey identifies one fetched list.
type CacheKey struct {
	Tab  string
	Sort SortType
}

func (k CacheKey) String() string {
	return k.Tab + ":" + string(k.Sort)
}

// ImageMapping holds the asset URLs derived for a tool.
type ImageMapping struct {
	Logo          string `json:"logo"`
	ServiceImage  string `json:"serviceImage"`
	PriceImage    string `json:"priceImage"`
	SearchbarLogo string `json:"searchbarLogo"`
}

// Card is a tool together with its resolved assets, as shown in a listing.
type Card struct {
	Tool
	Images ImageMapping `json:"images"`
}

// Segments splits a filtered list into the featured slice and the remainder.
type Segments struct {
	Featured []Tool `json:"featured"`
	Rest     []Tool `json:"rest"`
}

// Len returns the number of tools across both slices.
func (s Segments) Len() int {
	return len(s.Featured) + len(s.Rest)
}

// Bookmark is a saved tool reference for the signed-in user.
type Bookmark struct {
	ToolID string `json:"toolId"`
}

// CloneTools returns a shallow copy of the slice so callers cannot mutate a
// cached list in place.
func CloneTools(tools []Tool) []Tool {
	if tools == nil {
		return nil
	}
	out := make([]Tool, len(tools))
	copy(out, tools)
	return out
}
