package app

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/treykane/listings/internal/config"
	"github.com/treykane/listings/internal/overlay"
)

var (
	paneStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	listPane      = paneStyle.BorderForeground(lipgloss.Color("62"))
	detailPane    = paneStyle.BorderForeground(lipgloss.Color("240"))
	selectedStyle = lipgloss.NewStyle().Reverse(true)
	titleStyle    = lipgloss.NewStyle().Bold(true)
	statusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	actingStatus  = lipgloss.NewStyle().Foreground(lipgloss.Color("211"))
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	navStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
	tabStyle      = lipgloss.NewStyle().Padding(0, 1)
	activeTab     = tabStyle.Bold(true).Foreground(lipgloss.Color("255")).Background(lipgloss.Color("62"))
	buttonStyle   = lipgloss.NewStyle().Padding(0, 1).Foreground(lipgloss.Color("255")).Background(lipgloss.Color("238"))
	focusedButton = buttonStyle.Background(lipgloss.Color("62"))

	statusColors = map[string]lipgloss.Color{
		"active":     lipgloss.Color("42"),
		"pending":    lipgloss.Color("214"),
		"sold":       lipgloss.Color("203"),
		"off-market": lipgloss.Color("244"),
	}
)

// overlayTheme converts the configured palette into panel colors.
func overlayTheme(t config.Theme) overlay.Theme {
	return overlay.Theme{
		Border:          lipgloss.Color(t.Border),
		Foreground:      lipgloss.Color(t.Foreground),
		Background:      lipgloss.Color(t.Background),
		TitleForeground: lipgloss.Color(t.TitleForeground),
		TitleBackground: lipgloss.Color(t.TitleBackground),
	}
}

// overlayMetrics converts the configured spacing into engine metrics.
func overlayMetrics(o config.Overlay) overlay.Metrics {
	return overlay.Metrics{
		Gap:        o.Gap,
		Margin:     o.Margin,
		ArrowSize:  o.ArrowSize,
		ArrowInset: o.ArrowInset,
	}
}

// statusBadge colors a listing status, padded to width cells first so
// columns line up.
func statusBadge(status string, width int) string {
	padded := status
	if pad := width - lipgloss.Width(status); pad > 0 {
		padded += strings.Repeat(" ", pad)
	}
	color, ok := statusColors[status]
	if !ok {
		return padded
	}
	return lipgloss.NewStyle().Foreground(color).Render(padded)
}
