package overlay

// EscapeKey is the key name that dismisses an open popover.
const EscapeKey = "esc"

// Role describes what an open panel is to assistive output.
type Role string

const (
	RoleDialog  Role = "dialog"
	RoleMenu    Role = "menu"
	RoleListbox Role = "listbox"
	RoleTooltip Role = "tooltip"
)

// Panel is the floating container being positioned. Size reports false
// until the panel has been rendered at least once.
type Panel interface {
	Size() (Size, bool)
}

// TitledPanel is a panel with a designated title region. TitleRegion is in
// panel-local coordinates; TitleID returns a stable identity for the region,
// assigning one on first use.
type TitledPanel interface {
	Panel
	TitleRegion() (Rect, bool)
	TitleID() string
}

// Options configure a Popover.
type Options struct {
	Anchor Anchor
	// Preferred forces a side; SideAuto lets the placer choose.
	Preferred Side
	ShowArrow bool
	// Sides restricts automatic placement. Nil means all four sides.
	Sides []Side
	// Metrics defaults to DefaultMetrics when nil. All-zero metrics are
	// honored as given.
	Metrics *Metrics
	// OnClose is notified when the popover asks to be closed (escape key or
	// pointer-down outside). The caller decides whether to actually close.
	OnClose func()
	// ReturnFocus hands focus back to the anchor after closing.
	ReturnFocus bool
	Role        Role
	// Label names the panel directly. LabelledBy points at another region
	// that names it. With neither set, a title region is used if present.
	Label      string
	LabelledBy string
}

// Popover positions one panel against one anchor for as long as the caller
// keeps it open.
type Popover struct {
	doc    *Document
	panel  Panel
	opts   Options
	placer Placer

	open       bool
	dismissed  bool
	positioned bool
	result     Placement
	sub        *subscription
	labelledBy string
}

// New returns a closed popover for panel. Nothing is registered on doc
// until the popover is opened through Sync.
func New(doc *Document, panel Panel, opts Options) *Popover {
	metrics := DefaultMetrics
	if opts.Metrics != nil {
		metrics = *opts.Metrics
	}
	if opts.Role == "" {
		opts.Role = RoleDialog
	}
	return &Popover{
		doc:   doc,
		panel: panel,
		opts:  opts,
		placer: Placer{
			Metrics:   metrics,
			ShowArrow: opts.ShowArrow,
			Sides:     opts.Sides,
		},
	}
}

// Sync reconciles the popover with the caller's open state. Call it on
// every update; only the closed→open and open→closed transitions do work.
func (p *Popover) Sync(open bool) {
	switch {
	case open && !p.open:
		p.attach()
	case !open && p.open:
		p.detach()
	}
}

// Unmount releases everything the popover holds, as when its owner goes
// away. It is safe to call on a closed popover.
func (p *Popover) Unmount() {
	if p.open {
		p.detach()
	}
}

// IsOpen reports whether the popover is currently open.
func (p *Popover) IsOpen() bool {
	return p.open
}

// Result returns the current placement. It reports false while the popover
// is closed or has not been measured yet; callers must not paint then.
func (p *Popover) Result() (Placement, bool) {
	if !p.open || !p.positioned {
		return Placement{}, false
	}
	return p.result, true
}

// Bounds returns the panel's rectangle in viewport coordinates once
// positioned. A Popover can therefore anchor another popover.
func (p *Popover) Bounds() (Rect, bool) {
	placement, ok := p.Result()
	if !ok {
		return Rect{}, false
	}
	size, ok := p.panel.Size()
	if !ok {
		return Rect{}, false
	}
	return Rect{Top: placement.Top, Left: placement.Left, Width: size.Width, Height: size.Height}, true
}

// Contains reports whether the point hits the positioned panel.
func (p *Popover) Contains(x, y float64) bool {
	rect, ok := p.Bounds()
	return ok && rect.Contains(x, y)
}

// Panel returns the positioned panel.
func (p *Popover) Panel() Panel {
	return p.panel
}

// Anchor returns the anchor the popover is positioned against.
func (p *Popover) Anchor() Anchor {
	return p.opts.Anchor
}

// SetAnchor replaces the anchor and repositions if open.
func (p *Popover) SetAnchor(a Anchor) {
	p.opts.Anchor = a
	if p.open {
		p.sub.teardown()
		p.subscribe()
		p.Recalculate()
	}
}

// Role returns the panel's role.
func (p *Popover) Role() Role {
	return p.opts.Role
}

// Label returns the explicit label, if any.
func (p *Popover) Label() string {
	return p.opts.Label
}

// LabelledBy returns the identity of the region naming the panel: the
// explicit override, else the title region found at open time. It is empty
// whenever an explicit Label is set.
func (p *Popover) LabelledBy() string {
	if p.opts.Label != "" {
		return ""
	}
	if p.opts.LabelledBy != "" {
		return p.opts.LabelledBy
	}
	return p.labelledBy
}

// Recalculate recomputes the placement from the current anchor, panel and
// viewport. It does nothing while closed or while the anchor or panel cannot
// be measured; running it twice without a layout change yields the same
// result.
func (p *Popover) Recalculate() {
	if !p.open {
		return
	}
	anchor, ok := p.opts.Anchor.Resolve()
	if !ok {
		return
	}
	panel, ok := p.panel.Size()
	if !ok {
		return
	}
	p.result = p.placer.Place(p.opts.Preferred, anchor, panel, p.doc.Viewport())
	p.positioned = true
	p.relateTitle()
}

// ArrowOverTitle reports whether the arrow touches the panel's title
// region, in which case it should be filled with the title background.
func (p *Popover) ArrowOverTitle() bool {
	placement, ok := p.Result()
	if !ok || !placement.HasArrow {
		return false
	}
	titled, ok := p.panel.(TitledPanel)
	if !ok {
		return false
	}
	region, ok := titled.TitleRegion()
	if !ok {
		return false
	}
	size, ok := p.panel.Size()
	if !ok {
		return false
	}
	along := placement.Arrow + p.placer.Metrics.ArrowSize/2
	var x, y float64
	switch placement.Side {
	case SideBottom:
		x, y = along, 0
	case SideTop:
		x, y = along, size.Height
	case SideLeft:
		x, y = size.Width, along
	default:
		x, y = 0, along
	}
	// The touch point sits on the panel edge, so the far edges count.
	return x >= region.Left && x <= region.Right() && y >= region.Top && y < region.Bottom()
}

func (p *Popover) attach() {
	p.open = true
	p.dismissed = false
	p.positioned = false
	p.subscribe()
	p.relateTitle()
	overlayLog.Debug("popover opened", "role", p.opts.Role)
	p.Recalculate()
}

func (p *Popover) detach() {
	p.open = false
	p.positioned = false
	p.result = Placement{}
	if p.sub != nil {
		p.sub.teardown()
		p.sub = nil
	}
	overlayLog.Debug("popover closed", "role", p.opts.Role)
	if p.opts.ReturnFocus {
		if f, ok := p.opts.Anchor.Element().(Focusable); ok {
			f.Focus()
		}
	}
}

func (p *Popover) subscribe() {
	sub := &subscription{}
	recalc := func(*Event) { p.Recalculate() }
	sub.listen(p.doc, EventResize, PhaseBubble, recalc)
	sub.listen(p.doc, EventScroll, PhaseCapture, recalc)
	sub.listen(p.doc, EventKeyDown, PhaseCapture, p.onKeyDown)
	sub.listen(p.doc, EventPointerDown, PhaseBubble, p.onPointerDown)
	sub.observe(p.doc, anchorExtent{anchor: p.opts.Anchor}, p.Recalculate)
	sub.observe(p.doc, p.panel, p.Recalculate)
	p.sub = sub
}

func (p *Popover) onKeyDown(ev *Event) {
	if ev.Key != EscapeKey {
		return
	}
	// Every open popover hears escape; none of them hides it from the others.
	ev.MarkHandled()
	p.dismiss("escape")
}

func (p *Popover) onPointerDown(ev *Event) {
	if p.Contains(ev.X, ev.Y) || p.opts.Anchor.Contains(ev.X, ev.Y) {
		return
	}
	p.dismiss("outside")
}

// dismiss notifies the caller at most once per open period.
func (p *Popover) dismiss(reason string) {
	if !p.open || p.dismissed {
		return
	}
	p.dismissed = true
	overlayLog.Debug("popover dismissed", "role", p.opts.Role, "reason", reason)
	if p.opts.OnClose != nil {
		p.opts.OnClose()
	}
}

// relateTitle links the panel to its title region once. Later calls only
// re-check; the identity is never reassigned while open.
func (p *Popover) relateTitle() {
	if p.labelledBy != "" || p.opts.Label != "" || p.opts.LabelledBy != "" {
		return
	}
	titled, ok := p.panel.(TitledPanel)
	if !ok {
		return
	}
	if _, ok := titled.TitleRegion(); !ok {
		return
	}
	p.labelledBy = titled.TitleID()
}
