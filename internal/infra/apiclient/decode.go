package apiclient

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cast"

	"aidex/internal/domain"
)

// envelopeKeys are the wrapper fields some endpoints use around the payload.
var envelopeKeys = []string{"content", "data", "tools", "items"}

// decodeToolList parses a list payload. The payload must be an array of
// objects, optionally wrapped once in an envelope object; anything else is a
// DataShapeError. Records without an id or name are dropped.
func decodeToolList(op string, r io.Reader) ([]domain.Tool, error) {
	var payload any
	if err := json.NewDecoder(r).Decode(&payload); err != nil {
		return nil, domain.DataShapeError(op, "invalid json: "+err.Error())
	}

	items, ok := unwrapList(payload)
	if !ok {
		return nil, domain.DataShapeError(op, fmt.Sprintf("expected array of tools, got %s", kindOf(payload)))
	}

	tools := make([]domain.Tool, 0, len(items))
	for i, item := range items {
		record, ok := item.(map[string]any)
		if !ok {
			return nil, domain.DataShapeError(op, fmt.Sprintf("item %d: expected object, got %s", i, kindOf(item)))
		}
		tool, ok := toolFromRecord(record)
		if !ok {
			continue
		}
		tools = append(tools, tool)
	}
	return tools, nil
}

// decodeTool parses a single tool payload, optionally wrapped in an envelope.
func decodeTool(op string, r io.Reader) (domain.Tool, error) {
	var payload any
	if err := json.NewDecoder(r).Decode(&payload); err != nil {
		return domain.Tool{}, domain.DataShapeError(op, "invalid json: "+err.Error())
	}
	record, ok := payload.(map[string]any)
	if !ok {
		return domain.Tool{}, domain.DataShapeError(op, "expected tool object, got "+kindOf(payload))
	}
	if inner, ok := record["data"].(map[string]any); ok {
		record = inner
	}
	tool, ok := toolFromRecord(record)
	if !ok {
		return domain.Tool{}, domain.DataShapeError(op, "tool record has no id")
	}
	return tool, nil
}

// decodeBookmarks accepts either bookmark records ({toolId}) or full tool
// records ({id}).
func decodeBookmarks(op string, r io.Reader) ([]domain.Bookmark, error) {
	var payload any
	if err := json.NewDecoder(r).Decode(&payload); err != nil {
		return nil, domain.DataShapeError(op, "invalid json: "+err.Error())
	}
	items, ok := unwrapList(payload)
	if !ok {
		return nil, domain.DataShapeError(op, "expected array of bookmarks, got "+kindOf(payload))
	}
	bookmarks := make([]domain.Bookmark, 0, len(items))
	for _, item := range items {
		record, ok := item.(map[string]any)
		if !ok {
			continue
		}
		id := firstString(record, "toolId", "aiToolId")
		if id == "" {
			if nested, ok := record["tool"].(map[string]any); ok {
				id = firstString(nested, "id")
			}
		}
		if id == "" {
			id = firstString(record, "id")
		}
		if id == "" {
			continue
		}
		bookmarks = append(bookmarks, domain.Bookmark{ToolID: id})
	}
	return bookmarks, nil
}

func unwrapList(payload any) ([]any, bool) {
	switch v := payload.(type) {
	case []any:
		return v, true
	case map[string]any:
		for _, key := range envelopeKeys {
			if list, ok := v[key].([]any); ok {
				return list, true
			}
		}
	}
	return nil, false
}

func toolFromRecord(record map[string]any) (domain.Tool, bool) {
	name := firstString(record, "name", "serviceName", "title")
	id := firstString(record, "id", "toolId", "aiToolId")
	if id == "" {
		id = name
	}
	if id == "" {
		return domain.Tool{}, false
	}

	slug := tabForCategory(firstString(record, "categorySlug", "category", "categoryName"))
	label := firstString(record, "categoryLabel", "categoryDisplayName")
	if label == "" {
		label = TabLabel(slug)
	}

	tool := domain.Tool{
		ID:            id,
		Name:          name,
		Description:   firstString(record, "description", "summary"),
		CategorySlug:  slug,
		CategoryLabel: label,
		PricingTier:   domain.ParsePricingTier(firstString(record, "pricingTier", "priceType", "pricing")),
		Rating:        clampRating(cast.ToFloat64(record["rating"])),
		Tags:          stringList(record["tags"]),
		Keywords:      stringList(record["keywords"]),
		Features:      stringList(firstPresent(record, "features", "mainFeatures")),
		ViewCount:     cast.ToInt64(record["viewCount"]),
		BookmarkCount: cast.ToInt64(record["bookmarkCount"]),
		LaunchDate:    parseTime(firstPresent(record, "launchDate", "releaseDate")),
		WebsiteURL:    firstString(record, "websiteUrl", "websiteURL", "url"),
		LogoURL:       firstString(record, "logoUrl", "logoURL", "logo"),
	}
	return tool, true
}

func firstPresent(record map[string]any, keys ...string) any {
	for _, key := range keys {
		if v, ok := record[key]; ok && v != nil {
			return v
		}
	}
	return nil
}

func firstString(record map[string]any, keys ...string) string {
	for _, key := range keys {
		v, ok := record[key]
		if !ok || v == nil {
			continue
		}
		if _, nested := v.(map[string]any); nested {
			continue
		}
		if s := strings.TrimSpace(cast.ToString(v)); s != "" {
			return s
		}
	}
	return ""
}

// stringList accepts a JSON array or a comma separated string.
func stringList(v any) []string {
	var raw []string
	switch value := v.(type) {
	case nil:
		return nil
	case string:
		raw = strings.Split(value, ",")
	default:
		raw = cast.ToStringSlice(value)
	}
	out := make([]string, 0, len(raw))
	for _, s := range raw {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		out = append(out, s)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func parseTime(v any) time.Time {
	if v == nil {
		return time.Time{}
	}
	if _, isNumber := v.(float64); isNumber {
		return time.Time{}
	}
	t, err := cast.ToTimeE(v)
	if err != nil {
		return time.Time{}
	}
	return t.UTC()
}

func clampRating(r float64) float64 {
	switch {
	case r < 0:
		return 0
	case r > 5:
		return 5
	default:
		return r
	}
}

func kindOf(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	case string:
		return "string"
	case float64:
		return "number"
	case bool:
		return "boolean"
	default:
		return fmt.Sprintf("%T", v)
	}
}
