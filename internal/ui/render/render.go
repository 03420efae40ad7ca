package render

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"aidex/internal/domain"
)

const defaultWidth = 72

// Listing is everything needed to draw one page of results.
type Listing struct {
	Title    string
	Sort     domain.SortType
	Keywords []string
	Price    domain.PriceFilter
	Query    string
	Featured []domain.Card
	Rest     []domain.Card
	Err      error
}

type Renderer struct {
	styles Styles
	width  int
}

// New returns a renderer that detects the color profile of w.
func New(w io.Writer, width int) *Renderer {
	if width <= 0 {
		width = defaultWidth
	}
	return &Renderer{
		styles: DefaultStyles(lipgloss.NewRenderer(w)),
		width:  width,
	}
}

// Listing draws the filter header, the featured cards and the remaining list.
func (r *Renderer) Listing(l Listing) string {
	var sb strings.Builder
	sb.WriteString(r.styles.Title.Render(l.Title))
	sb.WriteString("\n")
	sb.WriteString(r.styles.Meta.Render(r.filterSummary(l)))
	sb.WriteString("\n\n")

	if l.Err != nil {
		sb.WriteString(r.styles.Error.Render("Could not load tools: " + l.Err.Error()))
		sb.WriteString("\n")
		if domain.IsRetryable(l.Err) {
			sb.WriteString(r.styles.Muted.Render("Run the command again to retry."))
			sb.WriteString("\n")
		}
		return sb.String()
	}
	if len(l.Featured) == 0 && len(l.Rest) == 0 {
		sb.WriteString(r.styles.Muted.Render("No tools match the current filters."))
		sb.WriteString("\n")
		return sb.String()
	}

	if len(l.Featured) > 0 {
		sb.WriteString(r.styles.Section.Render("Featured"))
		sb.WriteString("\n")
		for _, card := range l.Featured {
			sb.WriteString(r.box(r.styles.Featured, card))
			sb.WriteString("\n")
		}
	}
	if len(l.Rest) > 0 {
		if len(l.Featured) > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(r.styles.Section.Render("All tools"))
		sb.WriteString("\n")
		for _, card := range l.Rest {
			sb.WriteString(r.Row(card))
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

// Card draws a bordered card.
func (r *Renderer) Card(card domain.Card) string {
	return r.box(r.styles.Card, card)
}

func (r *Renderer) box(style lipgloss.Style, card domain.Card) string {
	lines := []string{
		r.styles.Name.Render(card.Name) + "  " + r.styles.Meta.Render(r.meta(card.Tool)),
	}
	if desc := strings.TrimSpace(card.Description); desc != "" {
		lines = append(lines, truncate(desc, r.width-4))
	}
	if tags := r.tags(card.Tags); tags != "" {
		lines = append(lines, tags)
	}
	lines = append(lines, r.styles.Muted.Render(card.Images.Logo))
	return style.Width(r.width).Render(strings.Join(lines, "\n"))
}

// Row draws a single compact line for a tool.
func (r *Renderer) Row(card domain.Card) string {
	name := r.styles.Name.Render(card.Name)
	meta := r.styles.Meta.Render(r.meta(card.Tool))
	line := "• " + name + "  " + meta
	if desc := strings.TrimSpace(card.Description); desc != "" {
		room := r.width - lipgloss.Width(line) - 3
		if room > 8 {
			line += " - " + truncate(desc, room)
		}
	}
	return line
}

// Detail draws every field of a tool and its asset URLs.
func (r *Renderer) Detail(card domain.Card) string {
	var sb strings.Builder
	sb.WriteString(r.styles.Title.Render(card.Name))
	sb.WriteString("\n")
	if card.Description != "" {
		sb.WriteString(card.Description)
		sb.WriteString("\n")
	}
	sb.WriteString("\n")
	r.field(&sb, "Category", card.CategoryLabel)
	r.field(&sb, "Pricing", PricingLabel(card.PricingTier))
	r.field(&sb, "Rating", strconv.FormatFloat(card.Rating, 'f', 1, 64))
	r.field(&sb, "Views", strconv.FormatInt(card.ViewCount, 10))
	r.field(&sb, "Bookmarks", strconv.FormatInt(card.BookmarkCount, 10))
	if !card.LaunchDate.IsZero() {
		r.field(&sb, "Launched", card.LaunchDate.Format("2006-01-02"))
	}
	r.field(&sb, "Website", card.WebsiteURL)
	if len(card.Tags) > 0 {
		r.field(&sb, "Tags", strings.Join(card.Tags, ", "))
	}
	if len(card.Features) > 0 {
		sb.WriteString("\n")
		sb.WriteString(r.styles.Section.Render("Features"))
		sb.WriteString("\n")
		for _, feature := range card.Features {
			sb.WriteString("  - " + feature + "\n")
		}
	}
	sb.WriteString("\n")
	sb.WriteString(r.Images(card.Images))
	return sb.String()
}

// Images draws the four asset URLs.
func (r *Renderer) Images(m domain.ImageMapping) string {
	var sb strings.Builder
	r.field(&sb, "Logo", m.Logo)
	r.field(&sb, "Service image", m.ServiceImage)
	r.field(&sb, "Price image", m.PriceImage)
	r.field(&sb, "Searchbar", m.SearchbarLogo)
	return sb.String()
}

// Bookmarks lists bookmarked tools; names maps IDs to display names where
// they are known.
func (r *Renderer) Bookmarks(bookmarks []domain.Bookmark, names map[string]string) string {
	if len(bookmarks) == 0 {
		return r.styles.Muted.Render("No bookmarks yet.") + "\n"
	}
	var sb strings.Builder
	sb.WriteString(r.styles.Section.Render(fmt.Sprintf("Bookmarks (%d)", len(bookmarks))))
	sb.WriteString("\n")
	for _, bookmark := range bookmarks {
		line := "• " + bookmark.ToolID
		if name := names[bookmark.ToolID]; name != "" {
			line += "  " + r.styles.Name.Render(name)
		}
		sb.WriteString(line + "\n")
	}
	return sb.String()
}

func (r *Renderer) field(sb *strings.Builder, key, value string) {
	if value == "" {
		return
	}
	sb.WriteString(r.styles.Key.Render(key))
	sb.WriteString(value)
	sb.WriteString("\n")
}

func (r *Renderer) filterSummary(l Listing) string {
	parts := []string{"sort: " + string(l.Sort)}
	keywords := l.Keywords
	if len(keywords) == 0 {
		keywords = []string{domain.KeywordAll}
	}
	parts = append(parts, "keywords: "+strings.Join(keywords, ", "))
	if l.Price != "" && l.Price != domain.PriceAll {
		parts = append(parts, "price: "+PricingLabel(domain.PricingTier(l.Price)))
	}
	if q := strings.TrimSpace(l.Query); q != "" {
		parts = append(parts, "search: "+strconv.Quote(q))
	}
	return strings.Join(parts, " · ")
}

func (r *Renderer) meta(tool domain.Tool) string {
	parts := make([]string, 0, 3)
	if tool.CategoryLabel != "" {
		parts = append(parts, tool.CategoryLabel)
	}
	if label := PricingLabel(tool.PricingTier); label != "" {
		parts = append(parts, label)
	}
	parts = append(parts, "★ "+strconv.FormatFloat(tool.Rating, 'f', 1, 64))
	return strings.Join(parts, " · ")
}

func (r *Renderer) tags(tags []string) string {
	if len(tags) == 0 {
		return ""
	}
	rendered := make([]string, 0, len(tags))
	for _, tag := range tags {
		rendered = append(rendered, r.styles.Tag.Render("#"+tag))
	}
	return strings.Join(rendered, " ")
}

// PricingLabel returns the display label of a pricing tier.
func PricingLabel(tier domain.PricingTier) string {
	switch tier {
	case domain.PricingFree:
		return "무료"
	case domain.PricingPaid:
		return "유료"
	case domain.PricingFreemium:
		return "부분 무료"
	default:
		return ""
	}
}

func truncate(s string, width int) string {
	if width <= 1 || lipgloss.Width(s) <= width {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 && lipgloss.Width(string(runes)) > width-1 {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "…"
}
