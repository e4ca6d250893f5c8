package overlay

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
)

func TestSpliceLine(t *testing.T) {
	tests := []struct {
		name  string
		base  string
		over  string
		col   int
		width int
		want  string
	}{
		{"middle", "abcdef", "XY", 2, 6, "abXYef"},
		{"start", "abcdef", "XY", 0, 6, "XYcdef"},
		{"clipped left", "abcdef", "XYZ", -1, 6, "YZcdef"},
		{"clipped right", "abc", "XYZ", 2, 4, "abXY"},
		{"short base", "a", "X", 3, 6, "a  X"},
		{"off screen", "abc", "XYZ", 6, 6, "abc"},
		{"fully left", "abc", "XY", -5, 6, "abc"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ansi.Strip(spliceLine(tt.base, tt.over, tt.col, tt.width))
			if got != tt.want {
				t.Fatalf("spliceLine = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSpliceLineKeepsStyledBase(t *testing.T) {
	base := "\x1b[31mredred\x1b[m"
	got := spliceLine(base, "XX", 2, 6)
	if ansi.Strip(got) != "reXXed" {
		t.Fatalf("unexpected text %q", ansi.Strip(got))
	}
	if ansi.StringWidth(got) != 6 {
		t.Fatalf("unexpected width %d", ansi.StringWidth(got))
	}
}

func TestNewLayerNormalizesHeight(t *testing.T) {
	layer := NewLayer("one\ntwo", 10, 3)
	if got := layer.String(); got != "one\ntwo\n" {
		t.Fatalf("unexpected padded layer %q", got)
	}
	layer = NewLayer("a\nb\nc\nd", 10, 2)
	if got := layer.String(); got != "a\nb" {
		t.Fatalf("unexpected trimmed layer %q", got)
	}
}

func TestLayerPaintSkipsUnpositionedPopover(t *testing.T) {
	doc := NewDocument(Size{Width: 20, Height: 5})
	pop := New(doc, &fakePanel{}, Options{})
	base := strings.Repeat(".", 20)
	layer := NewLayer(base, 20, 1)
	layer.Paint(pop, "PANEL", DefaultTheme)
	if layer.String() != base {
		t.Fatalf("unpositioned popover was painted: %q", layer.String())
	}
}

func TestLayerPaintsPanelAndArrow(t *testing.T) {
	viewport := Size{Width: 20, Height: 8}
	doc := NewDocument(viewport)
	anchor := &fakeElement{rect: Rect{Top: 0, Left: 8, Width: 4, Height: 1}, mounted: true}
	panel := &fakePanel{size: Size{Width: 6, Height: 2}, ok: true}
	pop := New(doc, panel, Options{
		Anchor:    DirectAnchor(anchor),
		Preferred: SideBottom,
		ShowArrow: true,
		Metrics:   &CellMetrics,
	})
	pop.Sync(true)

	placement, _ := pop.Result()
	// Anchor bottom 1 + arrow allowance 1; centered on x=10.
	if placement.Top != 2 || placement.Left != 7 {
		t.Fatalf("unexpected placement %+v", placement)
	}

	rows := make([]string, int(viewport.Height))
	for i := range rows {
		rows[i] = strings.Repeat(".", int(viewport.Width))
	}
	layer := NewLayer(strings.Join(rows, "\n"), int(viewport.Width), int(viewport.Height))
	layer.Paint(pop, "AAAAAA\nBBBBBB", DefaultTheme)

	lines := strings.Split(ansi.Strip(layer.String()), "\n")
	if lines[2] != ".......AAAAAA......." || lines[3] != ".......BBBBBB......." {
		t.Fatalf("panel painted in the wrong place:\n%s", strings.Join(lines, "\n"))
	}
	// Arrow offset 2 (10 - 7 - 1) plus half the arrow: column 7+3.
	if lines[1] != "..........▲........." {
		t.Fatalf("arrow painted in the wrong place: %q", lines[1])
	}
}
