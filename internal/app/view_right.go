package app

import (
	"fmt"
	"strings"

	"github.com/treykane/listings/internal/listings"
)

func (m *Model) renderDetail(width, height int) string {
	innerWidth := max(0, width-detailPane.GetHorizontalFrameSize())
	innerHeight := max(0, height-detailPane.GetVerticalFrameSize())
	contentHeight := max(0, innerHeight-1)

	var content string
	if m.showHelp {
		content = m.renderHelp(innerWidth, contentHeight)
	} else {
		m.viewport.Width = innerWidth
		m.viewport.Height = contentHeight
		content = m.viewport.View()
	}

	header := titleStyle.Render("Details")
	if l, ok := m.selectedListing(); ok && !m.showHelp {
		header = titleStyle.Render(l.Title) + mutedStyle.Render(" · "+l.City)
	}
	header = truncate(header, innerWidth)
	body := padBlock(content, innerWidth, contentHeight)
	return renderPane(detailPane, width, height, header+"\n"+body)
}

// renderReport tallies every listing by status and city, plus the
// effective user's own share.
func (m *Model) renderReport(width int) string {
	all := m.store.Listings()
	report := listings.BuildReport(all)
	user := m.session.Effective()
	mine := listings.BuildReport(listings.Filter(all, listings.ScopeMine, user))

	lines := []string{
		titleStyle.Render("Reports"),
		"",
		fmt.Sprintf("Total listings: %d   Total value: %s", report.Total, listings.FormatPrice(report.Value)),
		fmt.Sprintf("%s: %d listings, %s", user.Label(), mine.Total, listings.FormatPrice(mine.Value)),
		"",
		titleStyle.Render("By status"),
	}
	for _, c := range report.ByStatus {
		lines = append(lines, fmt.Sprintf("  %s %3d  %s", statusBadge(c.Label, 12), c.Count, listings.FormatPrice(c.Value)))
	}
	lines = append(lines, "", titleStyle.Render("By city"))
	for _, c := range report.ByCity {
		lines = append(lines, fmt.Sprintf("  %-12s %3d  %s", c.Label, c.Count, listings.FormatPrice(c.Value)))
	}

	out := make([]string, 0, len(lines))
	for _, line := range lines {
		out = append(out, truncate(line, width))
	}
	return strings.Join(out, "\n")
}
