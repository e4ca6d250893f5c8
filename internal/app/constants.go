package app

import "time"

// Layout constants define the default dimensions and spacing for the UI
const (
	// NavHeight is the number of rows used by the top navigation bar.
	NavHeight = 1

	// DefaultListWidth is the maximum width allocated to the listings pane
	DefaultListWidth = 48

	// ListWidthDivider determines list width as terminal_width / this value
	// when terminal is wide enough
	ListWidthDivider = 2

	// ActAsInputWidth is the visible width of the act-as text field.
	ActAsInputWidth = 32

	// FooterMinRows is the default number of rows reserved for the bottom
	// status/help area. The app targets two rows on typical terminal widths.
	FooterMinRows = 2
	// FooterMaxRows is the expanded footer height used when content does not
	// fit within FooterMinRows.
	FooterMaxRows = 3
)

// Input limits define maximum sizes for user input
const (
	// InputCharLimit is the maximum number of characters allowed in text inputs
	InputCharLimit = 120
)

// Rendering constants control render timing and optimization
const (
	// RenderDebounce is the delay before triggering a render after the
	// selection or the terminal width changes.
	RenderDebounce = 150 * time.Millisecond

	// RenderWidthBucket is the granularity for width-based render caching
	// Widths are rounded to nearest multiple of this value
	RenderWidthBucket = 20
)

// Session constants
const (
	// LogOutTimeout bounds the background sign-out work.
	LogOutTimeout = 5 * time.Second
)
