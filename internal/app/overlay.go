package app

import (
	"math"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/treykane/listings/internal/overlay"
)

// userButton is the nav bar button the user menu hangs from.
type userButton struct{ m *Model }

func (b userButton) Bounds() (overlay.Rect, bool) {
	if b.m.width == 0 || b.m.height == 0 {
		return overlay.Rect{}, false
	}
	return b.m.userButtonRect(), true
}

func (b userButton) Focus() {
	b.m.focus = focusUserButton
}

// listingRow is one row of the listings pane, identified by listing ID so
// it survives re-filtering. It is unmounted while scrolled out of the pane
// or filtered away.
type listingRow struct {
	m  *Model
	id string
}

func (r listingRow) Bounds() (overlay.Rect, bool) {
	if r.m.activeTab().report || r.m.width == 0 {
		return overlay.Rect{}, false
	}
	index := -1
	for i, l := range r.m.visible {
		if l.ID == r.id {
			index = i
			break
		}
	}
	layout := r.m.calculateLayout()
	if index < r.m.listOffset || index >= r.m.listOffset+layout.ListRows {
		return overlay.Rect{}, false
	}
	x, y, width := layout.listOrigin()
	return overlay.Rect{
		Top:    float64(y + index - r.m.listOffset),
		Left:   float64(x),
		Width:  float64(width),
		Height: 1,
	}, true
}

// actAsField is the act-as text input in the nav bar. It only exists while
// the act-as prompt is showing.
type actAsField struct{ m *Model }

func (f actAsField) Bounds() (overlay.Rect, bool) {
	if f.m.mode != modeActAs || f.m.width == 0 {
		return overlay.Rect{}, false
	}
	return f.m.actAsFieldRect(), true
}

func (f actAsField) Focus() {
	f.m.focus = focusActAsInput
}

// initOverlays builds the three floating panels. Each popover stays closed
// until syncOverlays sees its open flag set.
func (m *Model) initOverlays() {
	metrics := overlayMetrics(m.cfg.Overlay)

	m.menuFrame = overlay.NewFrame(m.theme)
	m.userMenu = overlay.New(m.doc, m.menuFrame, overlay.Options{
		Anchor:      overlay.DirectAnchor(userButton{m}),
		Sides:       overlay.VerticalSides,
		Metrics:     &metrics,
		OnClose:     func() { m.menuOpen = false },
		ReturnFocus: true,
		Role:        overlay.RoleMenu,
		Label:       "User menu",
	})

	m.infoFrame = overlay.NewFrame(m.theme)
	m.infoFrame.MinWidth = 28
	m.infoFrame.MaxHeightPercent = m.cfg.Overlay.MaxHeightPercent
	m.info = overlay.New(m.doc, m.infoFrame, overlay.Options{
		Anchor:    overlay.HandleAnchor(m.rowHandle),
		ShowArrow: true,
		Metrics:   &metrics,
		OnClose:   func() { m.infoOpen = false },
		Role:      overlay.RoleDialog,
	})

	m.suggestFrame = overlay.NewFrame(m.theme)
	m.suggestFrame.MinWidth = ActAsInputWidth - 3
	m.suggestFrame.MaxHeightPercent = m.cfg.Overlay.MaxHeightPercent
	m.suggest = overlay.New(m.doc, m.suggestFrame, overlay.Options{
		Anchor:  overlay.DirectAnchor(actAsField{m}),
		Sides:   overlay.VerticalSides,
		Metrics: &metrics,
		OnClose: func() { m.showSuggestions = false },
		Role:    overlay.RoleListbox,
		Label:   "Matching users",
	})
}

// syncOverlays renders every open panel, reconciles each popover with its
// open flag and then lets the document observe the new sizes. Panels are
// rendered before Sync so an opening popover can be placed immediately.
func (m *Model) syncOverlays() {
	viewport := m.doc.Viewport()
	syncPopover(m.info, m.infoFrame, m.infoOpen, viewport, m.infoContent)
	syncPopover(m.userMenu, m.menuFrame, m.menuOpen, viewport, m.menuContent)
	syncPopover(m.suggest, m.suggestFrame, m.suggestionsOpen(), viewport, m.suggestContent)
	m.doc.NotifyLayout()
}

func syncPopover(pop *overlay.Popover, frame *overlay.Frame, open bool, viewport overlay.Size, content func() (string, string)) {
	if open {
		frame.SetContent(content())
		frame.Render(viewport)
	} else {
		frame.Unmeasure()
	}
	pop.Sync(open)
}

// pointRowHandle re-points the info panel's anchor at the selected row.
func (m *Model) pointRowHandle() {
	id := m.selectedID()
	if id == "" {
		m.rowHandle.Set(nil)
		return
	}
	m.rowHandle.Set(listingRow{m: m, id: id})
}

// panelRowAt maps a screen row to a line index inside an untitled panel's
// body, or -1 when the row is outside the body.
func panelRowAt(pop *overlay.Popover, y, count int) int {
	rect, ok := pop.Bounds()
	if !ok {
		return -1
	}
	row := y - int(math.Round(rect.Top)) - 1 // top border
	if row < 0 || row >= count {
		return -1
	}
	return row
}

// handlePopupListNav handles the shared up/down/select key patterns used by
// list panels. vimKeys adds j/k, which text-entry panels must leave alone.
// It returns (nextCursor, selectPressed, handled).
func handlePopupListNav(msg tea.KeyMsg, cursor, count int, vimKeys bool) (int, bool, bool) {
	key := msg.String()
	if !vimKeys && (key == "j" || key == "k") {
		return cursor, false, false
	}
	switch key {
	case "up", "k", "ctrl+p":
		if count <= 0 {
			return 0, false, true
		}
		return clamp(cursor-1, 0, count-1), false, true
	case "down", "j", "ctrl+n":
		if count <= 0 {
			return 0, false, true
		}
		return clamp(cursor+1, 0, count-1), false, true
	case "enter":
		return cursor, true, true
	case "tab":
		if vimKeys {
			return cursor, false, false
		}
		return cursor, true, true
	default:
		return cursor, false, false
	}
}
