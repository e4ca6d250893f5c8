package app

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/treykane/listings/internal/config"
	"github.com/treykane/listings/internal/listings"
	"github.com/treykane/listings/internal/overlay"
)

// mode controls the UI state and which input widget is active.
type mode int

const (
	modeBrowse mode = iota
	modeActAs
)

// focusTarget is the element that currently holds keyboard focus.
type focusTarget int

const (
	focusList focusTarget = iota
	focusUserButton
	focusActAsInput
)

// navTab is one entry of the navigation bar.
type navTab struct {
	label  string
	scope  listings.Scope
	report bool
}

var navTabs = []navTab{
	{label: "My Listings", scope: listings.ScopeMine},
	{label: "All Properties", scope: listings.ScopeAll},
	{label: "Team Listings", scope: listings.ScopeTeam},
	{label: "Reports", report: true},
}

// Model holds the Bubble Tea state for the entire UI.
type Model struct {
	cfg     config.Config
	store   *listings.Store
	session *listings.Session

	// Listing state
	tab        int
	visible    []listings.Listing
	cursor     int
	listOffset int

	// UI widgets
	viewport   viewport.Model
	actAs      textinput.Model
	spinner    spinner.Model
	mode       mode
	focus      focusTarget
	status     string
	showHelp   bool
	debugInput bool
	loggingOut bool
	loggedOut  bool

	// Layout sizing
	width  int
	height int

	// Keybindings
	keyForAction map[string][]string
	keyToAction  map[string]string

	// Floating panels
	doc             *overlay.Document
	theme           overlay.Theme
	rowHandle       *overlay.Handle
	userMenu        *overlay.Popover
	menuFrame       *overlay.Frame
	menuOpen        bool
	menuCursor      int
	info            *overlay.Popover
	infoFrame       *overlay.Frame
	infoOpen        bool
	suggest         *overlay.Popover
	suggestFrame    *overlay.Frame
	showSuggestions bool
	suggestions     []listings.User
	suggestCursor   int

	// Debounced render bookkeeping
	rendering    bool
	renderSeq    int
	pendingID    string
	pendingWidth int
	renderCache  map[string]renderCacheEntry
	renderingID  string
	renderingSeq int
}

// New prepares the initial UI model for the signed-in session.
func New(cfg config.Config, store *listings.Store, session *listings.Session) *Model {
	vp := viewport.New(0, 0)
	vp.SetContent("Select a listing to view")

	input := textinput.New()
	input.Prompt = ""
	input.Placeholder = "email or name"
	input.CharLimit = InputCharLimit
	input.Width = ActAsInputWidth

	spin := spinner.New()
	spin.Spinner = spinner.Line

	m := &Model{
		cfg:         cfg,
		store:       store,
		session:     session,
		viewport:    vp,
		actAs:       input,
		spinner:     spin,
		mode:        modeBrowse,
		status:      "Ready",
		renderCache: map[string]renderCacheEntry{},
		debugInput:  os.Getenv("LISTINGS_DEBUG_INPUT") != "",
		doc:         overlay.NewDocument(overlay.Size{}),
		theme:       overlayTheme(cfg.Theme),
		rowHandle:   overlay.NewHandle(),
	}
	m.loadKeybindings(cfg)
	m.initOverlays()
	m.refreshListings()
	return m
}

// LoggedOut reports whether the program ended because the user logged out.
func (m *Model) LoggedOut() bool {
	return m.loggedOut
}

// Init starts the spinner so we can show async rendering progress.
func (m *Model) Init() tea.Cmd {
	return m.spinner.Tick
}

// Update is the Bubble Tea update loop: handle events and emit commands.
// Every pass ends by reconciling the floating panels with the new state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	model, cmd := m.update(msg)
	m.syncOverlays()
	return model, cmd
}

func (m *Model) update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		return m.handleSpinnerTick(msg)
	case tea.WindowSizeMsg:
		return m.handleWindowResize(msg)
	case renderRequestMsg:
		return m.handleRenderRequest(msg)
	case renderResultMsg:
		return m.handleRenderResult(msg)
	case logOutResultMsg:
		return m.handleLogOutResult(msg)
	case tea.MouseMsg:
		return m.handleMouse(msg)
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

// handleKey routes key presses. Open panels see the key first; when one of
// them acts on it (escape asks every open panel to close) the app leaves it
// alone.
func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.shouldIgnoreInput(msg) {
		return m, nil
	}
	key := msg.String()
	if m.doc.KeyDown(key) {
		return m, nil
	}
	if m.mode == modeActAs {
		return m.handleActAsKey(msg)
	}
	if m.menuOpen {
		if model, cmd, ok := m.handleMenuKey(msg); ok {
			return model, cmd
		}
	}
	return m.handleBrowseKey(key)
}

// refreshListings recomputes the visible listings for the active tab and
// the effective user, keeping the selection on the same listing when it is
// still visible.
func (m *Model) refreshListings() {
	selected := m.selectedID()
	tab := navTabs[m.tab]
	if tab.report {
		m.visible = nil
	} else {
		m.visible = listings.Filter(m.store.Listings(), tab.scope, m.session.Effective())
	}
	m.cursor = 0
	for i, l := range m.visible {
		if l.ID == selected {
			m.cursor = i
			break
		}
	}
	m.pointRowHandle()
	m.adjustListOffset(m.calculateLayout().ListRows)
	if len(m.visible) == 0 {
		m.infoOpen = false
	}
}

// selectedListing returns the listing under the cursor.
func (m *Model) selectedListing() (listings.Listing, bool) {
	if m.cursor < 0 || m.cursor >= len(m.visible) {
		return listings.Listing{}, false
	}
	return m.visible[m.cursor], true
}

func (m *Model) selectedID() string {
	if l, ok := m.selectedListing(); ok {
		return l.ID
	}
	return ""
}

func (m *Model) activeTab() navTab {
	return navTabs[m.tab]
}

func isOSCBackgroundResponse(msg tea.KeyMsg) bool {
	if msg.Type != tea.KeyRunes {
		return false
	}
	sequence := msg.String()
	if sequence == "" {
		return false
	}
	sequence = trimOSCSequenceSuffix(sequence)
	if !strings.Contains(sequence, "rgb:") {
		return false
	}
	if !strings.Contains(sequence, "\x1b") &&
		!strings.Contains(sequence, "11;rgb:") &&
		!strings.Contains(sequence, "1;rgb:") {
		return false
	}
	return hasRGBTriple(sequence)
}

// shouldIgnoreInput drops terminal responses (OSC color replies) and stray
// control runes that some terminals deliver as key presses.
func (m *Model) shouldIgnoreInput(msg tea.KeyMsg) bool {
	if msg.Type != tea.KeyRunes {
		return false
	}
	if isOSCBackgroundResponse(msg) || containsControlRunes(msg.String()) {
		if m.debugInput {
			m.status = fmt.Sprintf("Ignored input: %q", msg.String())
		}
		return true
	}
	return false
}

func trimOSCSequenceSuffix(sequence string) string {
	for _, suffix := range []string{"\x1b\\", "\a", "\\", "\x1b"} {
		if strings.HasSuffix(sequence, suffix) {
			return strings.TrimSuffix(sequence, suffix)
		}
	}
	return sequence
}

func containsControlRunes(sequence string) bool {
	for _, r := range sequence {
		switch {
		case r == '\n' || r == '\t':
			continue
		case r < 32 || r == 127:
			return true
		}
	}
	return false
}

func isHex(value string) bool {
	for _, r := range value {
		switch {
		case r >= '0' && r <= '9':
		case r >= 'a' && r <= 'f':
		case r >= 'A' && r <= 'F':
		default:
			return false
		}
	}
	return true
}

func hasRGBTriple(sequence string) bool {
	index := strings.Index(sequence, "rgb:")
	if index == -1 {
		return false
	}
	tail := sequence[index+len("rgb:"):]
	for i := 0; i < 3; i++ {
		component, rest, ok := readHexComponent(tail)
		if !ok {
			return false
		}
		if len(component) < 4 || !isHex(component[:4]) {
			return false
		}
		if i < 2 {
			if rest == "" || rest[0] != '/' {
				return false
			}
			tail = rest[1:]
		} else {
			tail = rest
		}
	}
	return true
}

func readHexComponent(sequence string) (string, string, bool) {
	if sequence == "" {
		return "", "", false
	}
	var b strings.Builder
	for _, r := range sequence {
		if r == '/' || !isHex(string(r)) {
			break
		}
		b.WriteRune(r)
	}
	component := b.String()
	if component == "" {
		return "", "", false
	}
	return component, sequence[len(component):], true
}
