// layout.go centralizes all terminal layout calculations for the listings UI.
//
// The screen is a one-row navigation bar, a content area and an adaptive
// footer. On listing tabs the content area is a horizontal split: a listings
// pane on the left and a detail pane on the right. The Reports tab uses the
// full content width.
//
// Anchors for floating panels (the user button, listing rows, the act-as
// field) are derived from the same LayoutDimensions the View uses, so a
// panel is always positioned against exactly what is on screen.
package app

// LayoutDimensions holds all calculated layout dimensions for the UI.
type LayoutDimensions struct {
	ContentTop     int // first row below the nav bar
	LeftWidth      int // width of the listings pane (including border/padding)
	RightWidth     int // width of the detail pane (remainder after the list)
	ContentHeight  int // rows between the nav bar and the footer
	ViewportWidth  int // usable width inside the detail pane
	ViewportHeight int // usable height inside the detail pane (after header)
	ListRows       int // listing rows visible in the listings pane
}

// calculateLayout computes all UI dimensions based on terminal size.
//
// The list width is the smaller of DefaultListWidth and
// terminal_width / ListWidthDivider. Both panes lose their border and
// padding, and one row each for their header line.
func (m *Model) calculateLayout() LayoutDimensions {
	leftWidth := min(DefaultListWidth, m.width/ListWidthDivider)
	rightWidth := max(0, m.width-leftWidth)
	contentHeight := max(0, m.height-NavHeight-m.footerHeightForWidth(m.width))

	innerHeight := max(0, contentHeight-paneStyle.GetVerticalFrameSize()-1)
	return LayoutDimensions{
		ContentTop:     NavHeight,
		LeftWidth:      leftWidth,
		RightWidth:     rightWidth,
		ContentHeight:  contentHeight,
		ViewportWidth:  max(0, rightWidth-paneStyle.GetHorizontalFrameSize()),
		ViewportHeight: innerHeight,
		ListRows:       innerHeight,
	}
}

// listOrigin returns the screen cell of the first visible listing row and
// the row width.
func (l LayoutDimensions) listOrigin() (x, y, width int) {
	x = paneStyle.GetBorderLeftSize() + paneStyle.GetPaddingLeft()
	y = l.ContentTop + paneStyle.GetBorderTopSize() + paneStyle.GetPaddingTop() + 1 // +1 for header line
	width = max(0, l.LeftWidth-paneStyle.GetHorizontalFrameSize())
	return x, y, width
}

// footerHeightForWidth returns how many rows should be reserved for the footer.
// It prefers FooterMinRows and expands to FooterMaxRows when the footer
// segments cannot fit without dropping content.
func (m *Model) footerHeightForWidth(width int) int {
	_, fit := m.buildStatusRows(width, FooterMinRows)
	if fit {
		return FooterMinRows
	}
	return FooterMaxRows
}

// applyLayout updates the viewport widget dimensions to match the calculated
// layout and keeps the list window around the cursor.
func (m *Model) applyLayout(layout LayoutDimensions) {
	m.viewport.Width = layout.ViewportWidth
	m.viewport.Height = layout.ViewportHeight
	m.adjustListOffset(layout.ListRows)
}
