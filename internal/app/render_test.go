package app

import (
	"errors"
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"

	"github.com/treykane/listings/internal/listings"
)

func testListing() listings.Listing {
	return listings.Listing{
		ID:          "l1",
		Title:       "Harbor View Loft",
		Address:     "12 Wharf St",
		City:        "Portland",
		Price:       685000,
		Bedrooms:    2,
		Status:      listings.StatusActive,
		Owner:       "dana@example.com",
		Description: "# Harbor View Loft\n\nExposed brick.",
	}
}

func TestRequestRenderUsesCachedEntryWhenSourceAndWidthMatch(t *testing.T) {
	l := testListing()
	vp := viewport.New(81, 5) // width bucket is 80
	m := &Model{
		viewport:    vp,
		spinner:     spinner.New(),
		renderSeq:   9,
		renderCache: map[string]renderCacheEntry{},
	}
	m.renderCache[l.ID] = renderCacheEntry{
		source:  listingMarkdown(l),
		width:   80,
		content: "cached-render-output",
	}

	cmd := m.requestRender(l)
	if cmd != nil {
		t.Fatal("expected no render command on cache hit")
	}
	if !strings.Contains(m.viewport.View(), "cached-render-output") {
		t.Fatalf("expected cached content in viewport, got %q", m.viewport.View())
	}
	if m.rendering {
		t.Fatal("expected rendering to be false on cache hit")
	}
	if m.renderSeq != 9 {
		t.Fatalf("expected renderSeq to stay 9, got %d", m.renderSeq)
	}
}

func TestRequestRenderStartsAsyncRenderWhenCacheMissing(t *testing.T) {
	l := testListing()
	vp := viewport.New(81, 5) // width bucket is 80
	m := &Model{
		viewport:    vp,
		spinner:     spinner.New(),
		renderCache: map[string]renderCacheEntry{},
	}

	cmd := m.requestRender(l)
	if cmd == nil {
		t.Fatal("expected render command on cache miss")
	}
	if !m.rendering {
		t.Fatal("expected rendering to be true on cache miss")
	}
	if m.pendingID != l.ID {
		t.Fatalf("expected pendingID %q, got %q", l.ID, m.pendingID)
	}
	if m.pendingWidth != 80 {
		t.Fatalf("expected pendingWidth 80, got %d", m.pendingWidth)
	}
	if m.renderingID != l.ID {
		t.Fatalf("expected renderingID %q, got %q", l.ID, m.renderingID)
	}
	if m.renderSeq != 1 || m.renderingSeq != 1 {
		t.Fatalf("expected render sequence to be 1/1, got %d/%d", m.renderSeq, m.renderingSeq)
	}
	if !strings.Contains(m.viewport.View(), "Rendering...") {
		t.Fatalf("expected rendering indicator in viewport, got %q", m.viewport.View())
	}
}

func TestRequestRenderMissesWhenDescriptionChanged(t *testing.T) {
	l := testListing()
	m := &Model{
		viewport:    viewport.New(81, 5),
		spinner:     spinner.New(),
		renderCache: map[string]renderCacheEntry{},
	}
	m.renderCache[l.ID] = renderCacheEntry{
		source:  listingMarkdown(l),
		width:   80,
		content: "stale",
	}

	l.Description = "# Harbor View Loft\n\nNow with a rooftop deck."
	if cmd := m.requestRender(l); cmd == nil {
		t.Fatal("expected render command after the description changed")
	}
}

func TestListingMarkdownFallsBackToTitle(t *testing.T) {
	l := testListing()
	l.Description = "  "
	l.Bedrooms = 0

	md := listingMarkdown(l)
	if !strings.HasPrefix(md, "# Harbor View Loft") {
		t.Fatalf("expected title heading, got %q", md)
	}
	if strings.Contains(md, "Bedrooms") {
		t.Fatalf("expected no bedroom line for commercial listings, got %q", md)
	}
	if !strings.Contains(md, "$685,000") {
		t.Fatalf("expected formatted price, got %q", md)
	}
}

func TestRenderMarkdownUsesConfiguredStyle(t *testing.T) {
	t.Setenv("LISTINGS_GLAMOUR_STYLE", "notty")
	resetRendererCacheForTests()
	t.Cleanup(resetRendererCacheForTests)

	out, err := renderMarkdown("# Harbor View Loft\n\nExposed brick.", 60)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(out, "Harbor View Loft") || !strings.Contains(out, "Exposed brick.") {
		t.Fatalf("expected rendered text, got %q", out)
	}
}

func TestGetRendererEvictsLeastRecentlyUsedWidth(t *testing.T) {
	resetRendererCacheForTests()
	t.Cleanup(resetRendererCacheForTests)
	previous := maxRendererCacheEntries
	maxRendererCacheEntries = 2
	t.Cleanup(func() { maxRendererCacheEntries = previous })

	for _, width := range []int{40, 60, 40, 80} {
		if _, err := getRenderer(width); err != nil {
			t.Fatalf("getRenderer(%d): %v", width, err)
		}
	}

	rendererCacheMu.Lock()
	defer rendererCacheMu.Unlock()
	if len(rendererCache) != 2 {
		t.Fatalf("expected 2 cached renderers, got %d", len(rendererCache))
	}
	if _, ok := rendererCache[60]; ok {
		t.Fatal("expected width 60 to be evicted as least recently used")
	}
	if _, ok := rendererCache[40]; !ok {
		t.Fatal("expected recently used width 40 to survive")
	}
}

func TestHandleRenderResultIgnoresStaleSequenceButCaches(t *testing.T) {
	m := newTestModel(t, "dana@example.com", 120, 30)
	m.viewport.SetContent("current")
	m.renderSeq = 5

	m.handleRenderResult(renderResultMsg{id: "l1", source: "src", width: 60, seq: 4, content: "old-output"})

	if strings.Contains(m.viewport.View(), "old-output") {
		t.Fatal("expected stale render to be ignored")
	}
	if entry, ok := m.renderCache["l1"]; !ok || entry.content != "old-output" {
		t.Fatalf("expected stale render to still be cached, got %+v", entry)
	}
}

func TestHandleRenderResultShowsSourceOnError(t *testing.T) {
	m := newTestModel(t, "dana@example.com", 120, 30)
	m.renderSeq = 3
	m.rendering = true

	m.handleRenderResult(renderResultMsg{id: "l1", source: "# raw markdown", seq: 3, err: errors.New("boom")})

	if !strings.Contains(m.viewport.View(), "# raw markdown") {
		t.Fatalf("expected raw markdown fallback, got %q", m.viewport.View())
	}
	if m.rendering {
		t.Fatal("expected rendering state to be cleared")
	}
	if !strings.Contains(m.status, "Could not render") {
		t.Fatalf("expected error status, got %q", m.status)
	}
}
