// render.go implements debounced, cached markdown rendering for the detail
// pane.
//
// Rendering markdown through Glamour is relatively expensive, so this module
// applies two optimizations to keep the UI responsive:
//
// # Debouncing
//
// When the user moves through the listings (e.g. holding down j/k), each
// cursor move would trigger a new render. Instead, requestRender increments
// a sequence number and schedules a render after RenderDebounce. If another
// move happens before the timer fires, the sequence number changes and the
// stale request is discarded.
//
// # Caching
//
// Completed renders are cached by listing ID. Each entry records the
// markdown source and the width bucket it was rendered at; a cache hit
// requires both to match, so an edited description or a resize to another
// bucket renders again.
//
// # Glamour Renderers
//
// Glamour TermRenderer instances are cached per width bucket in a small LRU
// protected by a mutex, since renders run on background goroutines. The
// style comes from LISTINGS_GLAMOUR_STYLE or GLAMOUR_STYLE, defaulting to
// "dark".
package app

import (
	"container/list"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"github.com/treykane/listings/internal/listings"
)

// renderCacheEntry stores a completed render alongside the inputs that
// produced it.
type renderCacheEntry struct {
	source  string // markdown that was rendered
	width   int    // width bucket used for word wrapping
	content string // ANSI-formatted output, ready for the viewport
}

// renderRequestMsg is emitted by the debounce timer to trigger the actual
// render.
type renderRequestMsg struct {
	id     string
	source string
	width  int
	seq    int
}

// renderResultMsg carries the completed render output (or error) back from
// the async render Cmd to the Update loop.
type renderResultMsg struct {
	id      string
	source  string
	width   int
	seq     int
	content string
	err     error
}

var (
	// maxRendererCacheEntries bounds the number of width-specific Glamour
	// renderers retained in memory.
	maxRendererCacheEntries = 8

	rendererCacheMu    sync.Mutex
	rendererCache      = map[int]*glamour.TermRenderer{}
	rendererCacheOrder = list.New() // front = least recently used
	rendererCacheNodes = map[int]*list.Element{}
)

// listingMarkdown is the document shown in the detail pane: the listing's
// own description followed by a fact sheet.
func listingMarkdown(l listings.Listing) string {
	var b strings.Builder
	description := strings.TrimSpace(l.Description)
	if description == "" {
		description = "# " + l.Title
	}
	b.WriteString(description)
	b.WriteString("\n\n---\n\n")
	fmt.Fprintf(&b, "- **Address:** %s, %s\n", l.Address, l.City)
	fmt.Fprintf(&b, "- **Price:** %s\n", l.PriceLabel())
	if l.Bedrooms > 0 {
		fmt.Fprintf(&b, "- **Bedrooms:** %d\n", l.Bedrooms)
	}
	fmt.Fprintf(&b, "- **Status:** %s\n", l.Status)
	fmt.Fprintf(&b, "- **Owner:** %s\n", l.Owner)
	return b.String()
}

// showSelectedListing renders the selected listing into the detail pane,
// or clears the pane when nothing is selected.
func (m *Model) showSelectedListing() tea.Cmd {
	l, ok := m.selectedListing()
	if !ok {
		m.clearRenderingState()
		m.viewport.SetContent("Select a listing to view")
		return nil
	}
	return m.requestRender(l)
}

// requestRender initiates a debounced render for l.
//
// Fast path (cache hit): the cached content is displayed immediately and no
// Cmd is returned.
//
// Slow path (cache miss): a spinner is shown, renderSeq is incremented
// (invalidating any in-flight render), and a debounce timer is started.
func (m *Model) requestRender(l listings.Listing) tea.Cmd {
	if l.ID == "" {
		return nil
	}
	source := listingMarkdown(l)
	width := roundWidthToNearestBucket(m.viewport.Width)
	if entry, ok := m.renderCache[l.ID]; ok && entry.width == width && entry.source == source {
		m.viewport.SetContent(entry.content)
		m.viewport.GotoTop()
		m.clearRenderingState()
		return nil
	}
	m.rendering = true
	m.viewport.SetContent(m.spinner.View() + " Rendering...")
	m.renderSeq++
	seq := m.renderSeq
	id := l.ID
	m.pendingID = id
	m.pendingWidth = width
	m.renderingID = id
	m.renderingSeq = seq
	return tea.Tick(RenderDebounce, func(time.Time) tea.Msg {
		return renderRequestMsg{id: id, source: source, width: width, seq: seq}
	})
}

// refreshDetail re-renders the selected listing, e.g. after a resize.
func (m *Model) refreshDetail() tea.Cmd {
	if _, ok := m.selectedListing(); !ok {
		return nil
	}
	return m.showSelectedListing()
}

// renderMarkdownCmd renders source on a background goroutine and reports
// back with a renderResultMsg.
func renderMarkdownCmd(id, source string, width, seq int) tea.Cmd {
	return func() tea.Msg {
		rendered, err := renderMarkdown(source, width)
		return renderResultMsg{
			id:      id,
			source:  source,
			width:   width,
			seq:     seq,
			content: rendered,
			err:     err,
		}
	}
}

// renderMarkdown converts markdown to ANSI output at width using a cached
// Glamour renderer.
func renderMarkdown(content string, width int) (string, error) {
	if width <= 0 {
		width = 80
	}
	renderer, err := getRenderer(width)
	if err != nil {
		return "", fmt.Errorf("create markdown renderer: %w", err)
	}
	out, err := renderer.Render(content)
	if err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return out, nil
}

// getRenderer returns a cached Glamour TermRenderer for the given width,
// creating one if it doesn't exist.
func getRenderer(width int) (*glamour.TermRenderer, error) {
	if width <= 0 {
		width = 80
	}
	rendererCacheMu.Lock()
	defer rendererCacheMu.Unlock()
	if renderer, ok := rendererCache[width]; ok {
		if node, ok := rendererCacheNodes[width]; ok {
			rendererCacheOrder.MoveToBack(node)
		}
		return renderer, nil
	}
	renderer, err := glamour.NewTermRenderer(
		glamourStyleOption(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, err
	}
	rendererCache[width] = renderer
	rendererCacheNodes[width] = rendererCacheOrder.PushBack(width)
	evictOldestRendererIfNeeded()
	return renderer, nil
}

func evictOldestRendererIfNeeded() {
	for len(rendererCache) > maxRendererCacheEntries && rendererCacheOrder.Len() > 0 {
		oldest := rendererCacheOrder.Front()
		width, _ := oldest.Value.(int)
		rendererCacheOrder.Remove(oldest)
		delete(rendererCache, width)
		delete(rendererCacheNodes, width)
	}
}

func resetRendererCacheForTests() {
	rendererCacheMu.Lock()
	defer rendererCacheMu.Unlock()
	rendererCache = map[int]*glamour.TermRenderer{}
	rendererCacheOrder = list.New()
	rendererCacheNodes = map[int]*list.Element{}
}

// glamourStyleOption resolves the Glamour rendering style from
// LISTINGS_GLAMOUR_STYLE, then GLAMOUR_STYLE, then "dark". The value "auto"
// delegates to Glamour's background detection.
func glamourStyleOption() glamour.TermRendererOption {
	style := strings.ToLower(strings.TrimSpace(os.Getenv("LISTINGS_GLAMOUR_STYLE")))
	if style == "" {
		style = strings.ToLower(strings.TrimSpace(os.Getenv("GLAMOUR_STYLE")))
	}
	if style == "" {
		style = "dark"
	}
	if style == "auto" {
		return glamour.WithAutoStyle()
	}
	switch style {
	case "dark", "light", "notty":
		return glamour.WithStandardStyle(style)
	default:
		return glamour.WithStandardStyle("dark")
	}
}
