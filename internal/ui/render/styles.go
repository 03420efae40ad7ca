// Package render draws listings and tool cards for the terminal.
package render

import "github.com/charmbracelet/lipgloss"

var (
	accent  = lipgloss.AdaptiveColor{Light: "#5A3FC0", Dark: "#B69CFF"}
	muted   = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#9CA3AF"}
	danger  = lipgloss.AdaptiveColor{Light: "#C62828", Dark: "#EF5350"}
	success = lipgloss.AdaptiveColor{Light: "#2E7D32", Dark: "#81C784"}
	border  = lipgloss.AdaptiveColor{Light: "#D1D5DB", Dark: "#374151"}
)

// Styles groups the lipgloss styles used by Renderer.
type Styles struct {
	Title    lipgloss.Style
	Section  lipgloss.Style
	Name     lipgloss.Style
	Meta     lipgloss.Style
	Tag      lipgloss.Style
	Muted    lipgloss.Style
	Error    lipgloss.Style
	Card     lipgloss.Style
	Featured lipgloss.Style
	Key      lipgloss.Style
}

// DefaultStyles builds the style set bound to r.
func DefaultStyles(r *lipgloss.Renderer) Styles {
	return Styles{
		Title:    r.NewStyle().Bold(true).Foreground(accent),
		Section:  r.NewStyle().Bold(true).Underline(true),
		Name:     r.NewStyle().Bold(true),
		Meta:     r.NewStyle().Foreground(muted),
		Tag:      r.NewStyle().Foreground(success),
		Muted:    r.NewStyle().Foreground(muted).Italic(true),
		Error:    r.NewStyle().Bold(true).Foreground(danger),
		Card:     r.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(border).Padding(0, 1),
		Featured: r.NewStyle().Border(lipgloss.DoubleBorder()).BorderForeground(accent).Padding(0, 1),
		Key:      r.NewStyle().Foreground(muted).Width(14),
	}
}
