package overlay

// EventType identifies a document-level event.
type EventType int

const (
	// EventResize fires after the viewport changed size.
	EventResize EventType = iota
	// EventScroll fires when any scrollable region in the program scrolled.
	EventScroll
	// EventPointerDown fires on a mouse button press.
	EventPointerDown
	// EventKeyDown fires on a key press.
	EventKeyDown
)

// Phase selects when a listener runs during dispatch. Capture listeners run
// before bubble listeners and cannot be skipped by them.
type Phase int

const (
	PhaseCapture Phase = iota
	PhaseBubble
)

// Event is a dispatched document event.
type Event struct {
	Type EventType
	// X and Y locate pointer events in viewport coordinates.
	X, Y float64
	// Key is the key name for key events, in Bubble Tea notation ("esc").
	Key string

	stopped bool
	handled bool
}

// StopPropagation prevents listeners later in the dispatch order from
// receiving the event.
func (e *Event) StopPropagation() { e.stopped = true }

// Stopped reports whether a listener stopped the event.
func (e *Event) Stopped() bool { return e.stopped }

// MarkHandled records that a listener acted on the event without keeping it
// from the remaining listeners.
func (e *Event) MarkHandled() { e.handled = true }

// Handled reports whether a listener acted on the event.
func (e *Event) Handled() bool { return e.handled }

// Listener handles a dispatched event.
type Listener func(*Event)

// Measurable is anything whose current size can be measured after a render
// pass. Panels satisfy it directly.
type Measurable interface {
	Size() (Size, bool)
}

type listenerEntry struct {
	typ     EventType
	phase   Phase
	fn      Listener
	removed bool
}

type observation struct {
	target   Measurable
	fn       func()
	last     Size
	measured bool
	removed  bool
}

// Document is the event and layout hub of one program: it owns the current
// viewport size, dispatches events to registered listeners, and runs size
// observers after each render pass. Each program creates its own Document;
// there is no package-level registry.
type Document struct {
	viewport  Size
	listeners []*listenerEntry
	observers []*observation
}

// NewDocument returns a document with the given initial viewport.
func NewDocument(viewport Size) *Document {
	return &Document{viewport: viewport}
}

// Viewport returns the current viewport size.
func (d *Document) Viewport() Size {
	return d.viewport
}

// AddListener registers fn for events of type t in the given phase. The
// returned function removes the listener; calling it more than once is a
// no-op.
func (d *Document) AddListener(t EventType, phase Phase, fn Listener) func() {
	entry := &listenerEntry{typ: t, phase: phase, fn: fn}
	d.listeners = append(d.listeners, entry)
	return func() {
		if entry.removed {
			return
		}
		entry.removed = true
		d.listeners = removeEntry(d.listeners, entry)
	}
}

// Observe calls fn whenever the measured size of target changes between two
// render passes, including the first time it becomes measurable. The
// returned function disconnects the observer.
func (d *Document) Observe(target Measurable, fn func()) func() {
	obs := &observation{target: target, fn: fn}
	if size, ok := target.Size(); ok {
		obs.last = size
		obs.measured = true
	}
	d.observers = append(d.observers, obs)
	return func() {
		if obs.removed {
			return
		}
		obs.removed = true
		d.observers = removeEntry(d.observers, obs)
	}
}

// ListenerCount returns the number of live listeners and observers.
func (d *Document) ListenerCount() int {
	return len(d.listeners) + len(d.observers)
}

// Dispatch delivers ev to capture listeners, then bubble listeners, in
// registration order, until one stops propagation. Listeners removed during
// dispatch are not called.
func (d *Document) Dispatch(ev *Event) {
	snapshot := append([]*listenerEntry(nil), d.listeners...)
	for _, phase := range []Phase{PhaseCapture, PhaseBubble} {
		for _, entry := range snapshot {
			if ev.stopped {
				return
			}
			if entry.removed || entry.typ != ev.Type || entry.phase != phase {
				continue
			}
			entry.fn(ev)
		}
	}
}

// Resize records the new viewport and dispatches EventResize.
func (d *Document) Resize(viewport Size) {
	d.viewport = viewport
	d.Dispatch(&Event{Type: EventResize})
}

// Scroll dispatches EventScroll.
func (d *Document) Scroll() {
	d.Dispatch(&Event{Type: EventScroll})
}

// PointerDown dispatches EventPointerDown at (x, y) and reports whether a
// listener stopped or handled it.
func (d *Document) PointerDown(x, y float64) bool {
	ev := &Event{Type: EventPointerDown, X: x, Y: y}
	d.Dispatch(ev)
	return ev.stopped || ev.handled
}

// KeyDown dispatches EventKeyDown and reports whether a listener stopped or
// handled it. Callers skip their own key handling in that case.
func (d *Document) KeyDown(key string) bool {
	ev := &Event{Type: EventKeyDown, Key: key}
	d.Dispatch(ev)
	return ev.stopped || ev.handled
}

// NotifyLayout runs size observers. Call it once after every render pass
// that may have changed the size of an observed element.
func (d *Document) NotifyLayout() {
	snapshot := append([]*observation(nil), d.observers...)
	for _, obs := range snapshot {
		if obs.removed {
			continue
		}
		size, ok := obs.target.Size()
		if !ok {
			obs.measured = false
			continue
		}
		if obs.measured && size == obs.last {
			continue
		}
		obs.last = size
		obs.measured = true
		obs.fn()
	}
}

func removeEntry[T comparable](entries []T, target T) []T {
	out := entries[:0:0]
	for _, e := range entries {
		if e != target {
			out = append(out, e)
		}
	}
	return out
}
