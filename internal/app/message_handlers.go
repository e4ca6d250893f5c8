package app

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/treykane/listings/internal/overlay"
)

// handleSpinnerTick updates the spinner animation state.
func (m *Model) handleSpinnerTick(msg spinner.TickMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(msg)
	if m.rendering {
		m.viewport.SetContent(m.spinner.View() + " Rendering...")
	}
	return m, cmd
}

// handleWindowResize updates layout dimensions after terminal resize and
// tells the overlay document, which repositions every open panel.
func (m *Model) handleWindowResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	m.applyLayout(m.calculateLayout())
	m.doc.Resize(overlay.Size{Width: float64(msg.Width), Height: float64(msg.Height)})
	return m, m.refreshDetail()
}

// handleRenderRequest validates and dispatches a render command.
func (m *Model) handleRenderRequest(msg renderRequestMsg) (tea.Model, tea.Cmd) {
	if msg.seq != m.renderSeq || msg.id != m.pendingID || msg.width != m.pendingWidth {
		return m, nil
	}
	return m, renderMarkdownCmd(msg.id, msg.source, msg.width, msg.seq)
}

// handleRenderResult processes the completed markdown render.
//
//  1. Errors are shown only if the render is still current; the raw
//     markdown is displayed instead.
//  2. Successful renders are cached by listing ID, source and width bucket.
//  3. Only a render whose sequence number and listing are still current is
//     displayed, and only if the width bucket still matches.
func (m *Model) handleRenderResult(msg renderResultMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		appLog.Error("render listing", "id", msg.id, "seq", msg.seq, "error", msg.err)
		if msg.seq == m.renderSeq && msg.id == m.selectedID() {
			m.viewport.SetContent(msg.source)
			m.status = "Could not render listing details"
			m.clearRenderingState()
		}
		return m, nil
	}

	m.renderCache[msg.id] = renderCacheEntry{
		source:  msg.source,
		width:   msg.width,
		content: msg.content,
	}

	if msg.seq != m.renderSeq || msg.id != m.selectedID() {
		return m, nil
	}

	if msg.width == roundWidthToNearestBucket(m.viewport.Width) {
		m.viewport.SetContent(msg.content)
		m.viewport.GotoTop()
		m.clearRenderingState()
	}
	return m, nil
}

// clearRenderingState resets rendering flags after completion or error.
func (m *Model) clearRenderingState() {
	m.rendering = false
	m.renderingID = ""
	m.renderingSeq = 0
}
