package overlay

import "testing"

func TestRectContainsEdges(t *testing.T) {
	r := Rect{Top: 2, Left: 3, Width: 4, Height: 2}
	tests := []struct {
		x, y float64
		want bool
	}{
		{3, 2, true},
		{6.5, 3.5, true},
		{7, 2, false},
		{3, 4, false},
		{2.9, 2, false},
	}
	for _, tt := range tests {
		if got := r.Contains(tt.x, tt.y); got != tt.want {
			t.Fatalf("Contains(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestClampUpperBoundWins(t *testing.T) {
	if got := clamp(5, 10, 2); got != 2 {
		t.Fatalf("expected upper bound when lo > hi, got %v", got)
	}
	if got := clamp(-1, 0, 10); got != 0 {
		t.Fatalf("expected lower bound, got %v", got)
	}
}

func TestAnchorResolvesThroughHandle(t *testing.T) {
	handle := NewHandle()
	anchor := HandleAnchor(handle)
	if _, ok := anchor.Resolve(); ok {
		t.Fatal("empty handle should not resolve")
	}

	first := &fakeElement{rect: Rect{Top: 1, Left: 1, Width: 2, Height: 1}, mounted: true}
	handle.Set(first)
	if rect, ok := anchor.Resolve(); !ok || rect != first.rect {
		t.Fatalf("unexpected resolution %+v (%v)", rect, ok)
	}

	second := &fakeElement{rect: Rect{Top: 5, Left: 5, Width: 2, Height: 1}, mounted: true}
	handle.Set(second)
	if rect, _ := anchor.Resolve(); rect != second.rect {
		t.Fatalf("handle re-point not observed: %+v", rect)
	}

	second.mounted = false
	if _, ok := anchor.Resolve(); ok {
		t.Fatal("unmounted element should not resolve")
	}
}

func TestAnchorDirectAndZero(t *testing.T) {
	el := ElementFunc(func() (Rect, bool) { return Rect{Width: 3, Height: 1}, true })
	anchor := DirectAnchor(el)
	if !anchor.Contains(1, 0) {
		t.Fatal("direct anchor should contain its own cell")
	}

	var zero Anchor
	if zero.Element() != nil {
		t.Fatal("zero anchor should have no element")
	}
	if _, ok := zero.Resolve(); ok {
		t.Fatal("zero anchor should never resolve")
	}
	if HandleAnchor(nil).Element() != nil {
		t.Fatal("nil handle should resolve to nothing")
	}
}
