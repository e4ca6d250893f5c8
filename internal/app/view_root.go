package app

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/treykane/listings/internal/overlay"
)

// View draws the full UI (nav bar + panes + status footer) and then paints
// the open floating panels on one layer above it.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	footerHeight := m.footerHeightForWidth(m.width)
	layout := m.calculateLayout()

	parts := []string{m.renderNav(m.width)}
	if layout.ContentHeight > 0 {
		var row string
		if m.activeTab().report {
			row = renderPane(detailPane, m.width, layout.ContentHeight, m.renderReport(m.width-paneStyle.GetHorizontalFrameSize()))
		} else {
			leftPane := m.renderListings(layout.LeftWidth, layout.ContentHeight)
			rightPane := m.renderDetail(layout.RightWidth, layout.ContentHeight)
			row = lipgloss.JoinHorizontal(lipgloss.Top, leftPane, rightPane)
		}
		parts = append(parts, padBlock(row, m.width, layout.ContentHeight))
	}
	parts = append(parts, m.renderStatus(m.width, footerHeight))
	base := padBlock(strings.Join(parts, "\n"), m.width, m.height)

	layer := overlay.NewLayer(base, m.width, m.height)
	layer.Paint(m.info, m.infoFrame.View(), m.theme)
	layer.Paint(m.userMenu, m.menuFrame.View(), m.theme)
	layer.Paint(m.suggest, m.suggestFrame.View(), m.theme)
	return layer.String()
}
