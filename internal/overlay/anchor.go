package overlay

import "sync"

// Element is anything on screen whose bounding rectangle can be read on
// demand. Bounds returns false while the element is not mounted (not yet
// laid out, scrolled out of its pane, or removed).
type Element interface {
	Bounds() (Rect, bool)
}

// Focusable is implemented by elements that can take keyboard focus. The
// dismissal controller uses it to hand focus back to the anchor on close.
type Focusable interface {
	Focus()
}

// ElementFunc adapts a plain function to Element.
type ElementFunc func() (Rect, bool)

// Bounds calls f.
func (f ElementFunc) Bounds() (Rect, bool) { return f() }

// Handle is a live, re-pointable reference to an element. It is set during
// rendering and read later by the engine; the zero value is an empty handle.
type Handle struct {
	mu sync.RWMutex
	el Element
}

// NewHandle returns an empty handle.
func NewHandle() *Handle {
	return &Handle{}
}

// Set points the handle at el. Passing nil empties it.
func (h *Handle) Set(el Element) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.el = el
}

// Element returns the referenced element, or nil if the handle is empty.
func (h *Handle) Element() Element {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.el
}

type anchorKind int

const (
	anchorNone anchorKind = iota
	anchorHandle
	anchorDirect
)

// Anchor is the element a panel is positioned against: either a Handle,
// resolved through whatever it currently points at, or a direct Element.
// The zero Anchor is empty and never resolves.
type Anchor struct {
	kind   anchorKind
	handle *Handle
	direct Element
}

// HandleAnchor anchors to whatever h points at when the anchor is resolved.
func HandleAnchor(h *Handle) Anchor {
	return Anchor{kind: anchorHandle, handle: h}
}

// DirectAnchor anchors to el itself.
func DirectAnchor(el Element) Anchor {
	return Anchor{kind: anchorDirect, direct: el}
}

// Element returns the concrete element behind the anchor, or nil.
func (a Anchor) Element() Element {
	switch a.kind {
	case anchorHandle:
		return resolveHandle(a.handle)
	case anchorDirect:
		return a.direct
	default:
		return nil
	}
}

// Resolve returns the anchor's current bounding rectangle. Nothing is
// cached: the anchor may have moved since the previous call.
func (a Anchor) Resolve() (Rect, bool) {
	el := a.Element()
	if el == nil {
		return Rect{}, false
	}
	return el.Bounds()
}

// Contains reports whether the point hits the anchor element.
func (a Anchor) Contains(x, y float64) bool {
	rect, ok := a.Resolve()
	return ok && rect.Contains(x, y)
}

func resolveHandle(h *Handle) Element {
	if h == nil {
		return nil
	}
	return h.Element()
}
