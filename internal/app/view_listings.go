package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/treykane/listings/internal/listings"
)

func (m *Model) renderListings(width, height int) string {
	innerWidth := max(0, width-listPane.GetHorizontalFrameSize())
	innerHeight := max(0, height-listPane.GetVerticalFrameSize())

	header := titleStyle.Render(fmt.Sprintf("%s (%d)", m.activeTab().label, len(m.visible)))
	lines := []string{truncate(header, innerWidth)}

	visibleHeight := max(0, innerHeight-len(lines))
	start := min(m.listOffset, max(0, len(m.visible)-1))
	end := min(len(m.visible), start+visibleHeight)

	for i := start; i < end; i++ {
		if i == m.cursor {
			line := formatListingRow(m.visible[i], innerWidth, false)
			lines = append(lines, selectedStyle.Width(innerWidth).Render(line))
			continue
		}
		lines = append(lines, formatListingRow(m.visible[i], innerWidth, true))
	}
	if len(m.visible) == 0 {
		lines = append(lines, truncate(mutedStyle.Render("(no listings)"), innerWidth))
	}

	return renderPane(listPane, width, height, strings.Join(lines, "\n"))
}

// formatListingRow lays out title on the left and price on the right,
// truncating the title first when space runs out.
func formatListingRow(l listings.Listing, width int, styled bool) string {
	price := l.PriceLabel()
	status := string(l.Status)
	if styled {
		status = statusBadge(status, 0)
	}
	right := price + " " + status
	titleWidth := max(0, width-lipgloss.Width(right)-1)
	title := truncate(l.Title, titleWidth)
	gap := strings.Repeat(" ", max(1, width-lipgloss.Width(title)-lipgloss.Width(right)))
	return truncate(title+gap+right, width)
}
