package ranking

import "aidex/internal/domain"

// Segment splits a filtered list into the first featuredCount tools and the
// remainder. The remainder excludes featured tools by ID rather than by
// position, so a tool whose ID repeats upstream is still shown once.
// featuredCount <= 0 uses domain.DefaultFeaturedCount.
func Segment(filtered []domain.Tool, featuredCount int) domain.Segments {
	if featuredCount <= 0 {
		featuredCount = domain.DefaultFeaturedCount
	}

	seen := make(map[string]struct{}, len(filtered))
	featured := make([]domain.Tool, 0, min(featuredCount, len(filtered)))
	for _, tool := range filtered {
		if len(featured) == featuredCount {
			break
		}
		if _, dup := seen[tool.ID]; dup {
			continue
		}
		seen[tool.ID] = struct{}{}
		featured = append(featured, tool)
	}

	rest := make([]domain.Tool, 0, len(filtered)-len(featured))
	for _, tool := range filtered {
		if _, dup := seen[tool.ID]; dup {
			continue
		}
		seen[tool.ID] = struct{}{}
		rest = append(rest, tool)
	}

	return domain.Segments{Featured: featured, Rest: rest}
}
