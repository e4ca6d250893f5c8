package overlay

// subscription owns every listener and observer one open popover
// registered, so closing can release exactly those and nothing else.
type subscription struct {
	releases []func()
}

func (s *subscription) listen(d *Document, t EventType, phase Phase, fn Listener) {
	s.releases = append(s.releases, d.AddListener(t, phase, fn))
}

func (s *subscription) observe(d *Document, target Measurable, fn func()) {
	s.releases = append(s.releases, d.Observe(target, fn))
}

// teardown releases everything in reverse registration order.
func (s *subscription) teardown() {
	for i := len(s.releases) - 1; i >= 0; i-- {
		s.releases[i]()
	}
	s.releases = nil
}

// anchorExtent lets a size observer watch an anchor through whatever
// element it resolves to at measurement time.
type anchorExtent struct {
	anchor Anchor
}

func (a anchorExtent) Size() (Size, bool) {
	rect, ok := a.anchor.Resolve()
	if !ok {
		return Size{}, false
	}
	return rect.Size(), true
}
