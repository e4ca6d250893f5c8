package app

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/treykane/listings/internal/listings"
)

// ---------------------------------------------------------------------------
// User menu
// ---------------------------------------------------------------------------

const (
	menuActAs      = "act-as"
	menuStopActing = "stop-acting"
	menuLogOut     = "log-out"
)

type menuItem struct {
	id       string
	label    string
	disabled bool
}

// userMenuItems lists the entries for the current session. Act-as is only
// offered to admins, and stop-acting only while impersonating.
func (m *Model) userMenuItems() []menuItem {
	var items []menuItem
	if m.session.CanActAs() {
		items = append(items, menuItem{id: menuActAs, label: "Act as user…"})
	}
	if acting, ok := m.session.Acting(); ok {
		items = append(items, menuItem{id: menuStopActing, label: "Stop acting as " + acting.Name})
	}
	logOut := menuItem{id: menuLogOut, label: "Log out"}
	if m.loggingOut {
		logOut.label = "Logging out…"
		logOut.disabled = true
	}
	return append(items, logOut)
}

func (m *Model) toggleUserMenu() {
	if m.menuOpen {
		m.closeUserMenu()
		return
	}
	m.openUserMenu()
}

func (m *Model) openUserMenu() {
	m.infoOpen = false
	m.menuOpen = true
	m.menuCursor = m.firstEnabledMenuItem()
	m.status = "User menu: Enter to choose, Esc to close"
}

// closeUserMenu closes the menu right away rather than at the end of the
// update, so focus is back on the button before any follow-up moves it.
func (m *Model) closeUserMenu() {
	m.menuOpen = false
	m.userMenu.Sync(false)
}

func (m *Model) firstEnabledMenuItem() int {
	for i, item := range m.userMenuItems() {
		if !item.disabled {
			return i
		}
	}
	return 0
}

func (m *Model) handleMenuKey(msg tea.KeyMsg) (tea.Model, tea.Cmd, bool) {
	items := m.userMenuItems()
	next, selected, handled := handlePopupListNav(msg, m.menuCursor, len(items), true)
	if !handled {
		return m, nil, false
	}
	if selected {
		model, cmd := m.activateMenuItem(m.menuCursor)
		return model, cmd, true
	}
	m.menuCursor = next
	return m, nil, true
}

func (m *Model) activateMenuItem(index int) (tea.Model, tea.Cmd) {
	items := m.userMenuItems()
	if index < 0 || index >= len(items) || items[index].disabled {
		return m, nil
	}
	switch items[index].id {
	case menuActAs:
		m.closeUserMenu()
		m.startActAs()
		return m, nil
	case menuStopActing:
		m.closeUserMenu()
		m.session.StopActing()
		m.status = "Stopped acting; showing your listings"
		m.refreshListings()
		return m, m.showSelectedListing()
	case menuLogOut:
		m.loggingOut = true
		m.status = "Logging out…"
		return m, logOutCmd(m.store)
	}
	return m, nil
}

func (m *Model) menuContent() (string, string) {
	items := m.userMenuItems()
	lines := make([]string, 0, len(items))
	for i, item := range items {
		marker := "  "
		if i == m.menuCursor && !item.disabled {
			marker = "› "
		}
		lines = append(lines, marker+item.label)
	}
	return "", strings.Join(lines, "\n")
}

// logOutResultMsg reports the end of the background sign-out.
type logOutResultMsg struct {
	err error
}

// logOutCmd flushes the data file before the session ends, off the UI
// goroutine. The log out menu entry stays disabled until it reports back.
func logOutCmd(store *listings.Store) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), LogOutTimeout)
		defer cancel()
		done := make(chan error, 1)
		go func() { done <- store.Save() }()
		select {
		case err := <-done:
			return logOutResultMsg{err: err}
		case <-ctx.Done():
			return logOutResultMsg{err: fmt.Errorf("save data file: %w", ctx.Err())}
		}
	}
}

func (m *Model) handleLogOutResult(msg logOutResultMsg) (tea.Model, tea.Cmd) {
	m.loggingOut = false
	if msg.err != nil {
		m.setStatusError("Log out failed", msg.err)
		return m, nil
	}
	if err := m.session.LogOut(context.Background()); err != nil {
		m.setStatusError("Log out failed", err)
		return m, nil
	}
	m.menuOpen = false
	m.loggedOut = true
	m.status = "Logged out"
	return m, tea.Quit
}

// ---------------------------------------------------------------------------
// Listing info panel
// ---------------------------------------------------------------------------

func (m *Model) toggleInfo() {
	if m.infoOpen {
		m.infoOpen = false
		return
	}
	if _, ok := m.selectedListing(); !ok {
		m.status = "No listing selected"
		return
	}
	m.closeUserMenu()
	m.infoOpen = true
}

func (m *Model) infoContent() (string, string) {
	l, ok := m.selectedListing()
	if !ok {
		return "", "No listing selected"
	}
	beds := fmt.Sprintf("%d bd", l.Bedrooms)
	if l.Bedrooms == 0 {
		beds = "commercial"
	}
	lines := []string{
		l.Address,
		l.City,
		l.PriceLabel() + " · " + beds,
		"Status: " + string(l.Status),
		"Owner:  " + l.Owner,
	}
	if l.Team != "" {
		lines = append(lines, "Team:   "+l.Team)
	}
	return l.Title, strings.Join(lines, "\n")
}

// ---------------------------------------------------------------------------
// Act-as prompt and suggestions
// ---------------------------------------------------------------------------

func (m *Model) startActAs() {
	m.mode = modeActAs
	m.infoOpen = false
	m.actAs.Reset()
	m.actAs.Focus()
	m.focus = focusActAsInput
	m.suggestions = nil
	m.showSuggestions = false
	m.suggestCursor = 0
	m.status = "Act as: type an email or name"
}

func (m *Model) endActAs() {
	m.mode = modeBrowse
	m.actAs.Blur()
	m.showSuggestions = false
	m.suggestions = nil
	m.suggestCursor = 0
	m.focus = focusUserButton
}

// suggestionsOpen mirrors the suggestion list's open condition: the field
// has text, there are matches, and the list was not dismissed since the
// last edit.
func (m *Model) suggestionsOpen() bool {
	return m.mode == modeActAs &&
		m.showSuggestions &&
		strings.TrimSpace(m.actAs.Value()) != "" &&
		len(m.suggestions) > 0
}

func (m *Model) refreshSuggestions() {
	self := m.session.User().Email
	matches := m.store.SearchUsers(m.actAs.Value(), listings.DefaultSearchLimit)
	m.suggestions = m.suggestions[:0]
	for _, u := range matches {
		if u.Email != self {
			m.suggestions = append(m.suggestions, u)
		}
	}
	m.suggestCursor = 0
	m.showSuggestions = true
}

func (m *Model) handleActAsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.suggestionsOpen() {
		next, selected, handled := handlePopupListNav(msg, m.suggestCursor, len(m.suggestions), false)
		if handled {
			if selected {
				return m.pickSuggestion(m.suggestCursor)
			}
			m.suggestCursor = next
			return m, nil
		}
	}

	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.endActAs()
		m.status = "Act as cancelled"
		return m, nil
	case "enter":
		return m.confirmActAs(strings.TrimSpace(m.actAs.Value()))
	}

	before := m.actAs.Value()
	var cmd tea.Cmd
	m.actAs, cmd = m.actAs.Update(msg)
	if m.actAs.Value() != before {
		m.refreshSuggestions()
	}
	return m, cmd
}

// pickSuggestion fills the field with the chosen user, closes the list and
// starts acting as them.
func (m *Model) pickSuggestion(index int) (tea.Model, tea.Cmd) {
	if index < 0 || index >= len(m.suggestions) {
		return m, nil
	}
	email := m.suggestions[index].Email
	m.actAs.SetValue(email)
	m.showSuggestions = false
	return m.confirmActAs(email)
}

func (m *Model) confirmActAs(email string) (tea.Model, tea.Cmd) {
	if email == "" {
		m.status = "Type an email to act as"
		return m, nil
	}
	if err := m.session.ActAs(email); err != nil {
		m.setStatusError("Could not act as "+email, err, "email", email)
		return m, nil
	}
	m.endActAs()
	m.status = "Acting as " + m.session.Effective().Label()
	m.refreshListings()
	return m, m.showSelectedListing()
}

// suggestionWindow returns the slice of suggestions that fits the panel's
// height cap, scrolled so the cursor stays visible.
func (m *Model) suggestionWindow() (start, end int) {
	total := len(m.suggestions)
	rows := total
	if pct := m.cfg.Overlay.MaxHeightPercent; pct > 0 && m.height > 0 {
		rows = max(1, int(float64(m.height)*pct/100)-2)
	}
	if total <= rows {
		return 0, total
	}
	start = clamp(m.suggestCursor-rows+1, 0, total-rows)
	return start, start + rows
}

func (m *Model) suggestContent() (string, string) {
	start, end := m.suggestionWindow()
	lines := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		marker := "  "
		if i == m.suggestCursor {
			marker = "› "
		}
		lines = append(lines, marker+m.suggestions[i].Label())
	}
	return "", strings.Join(lines, "\n")
}
