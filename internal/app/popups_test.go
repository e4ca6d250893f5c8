package app

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/treykane/listings/internal/config"
	"github.com/treykane/listings/internal/listings"
	"github.com/treykane/listings/internal/overlay"
)

func TestUserMenuOpensBelowButtonAndEscapeReturnsFocus(t *testing.T) {
	m := newTestModel(t, "dana@example.com", 120, 30)

	m.Update(keyRunes("u"))
	if !m.menuOpen || !m.userMenu.IsOpen() {
		t.Fatal("expected user menu to open")
	}
	placement, ok := m.userMenu.Result()
	if !ok {
		t.Fatal("expected user menu to be placed")
	}
	if placement.Side != overlay.SideBottom {
		t.Fatalf("expected menu below the button, got %v", placement.Side)
	}
	if placement.Top != 1 {
		t.Fatalf("expected menu directly under the nav bar, got top %.1f", placement.Top)
	}
	if m.userMenu.Role() != overlay.RoleMenu || m.userMenu.Label() != "User menu" {
		t.Fatalf("unexpected menu semantics: %q %q", m.userMenu.Role(), m.userMenu.Label())
	}

	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if m.menuOpen || m.userMenu.IsOpen() {
		t.Fatal("expected escape to close the user menu")
	}
	if m.focus != focusUserButton {
		t.Fatalf("expected focus back on the user button, got %v", m.focus)
	}
	if got := m.doc.ListenerCount(); got != 0 {
		t.Fatalf("expected no listeners after close, got %d", got)
	}
}

func TestUserMenuHonorsZeroOverlayMetrics(t *testing.T) {
	store := listings.NewMemoryStore(testListings(), testUsers())
	session, err := listings.NewSession(store, "dana@example.com")
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	cfg := testConfig()
	cfg.Overlay = config.Overlay{MaxHeightPercent: config.DefaultOverlay.MaxHeightPercent}
	m := New(cfg, store, session)
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 30})

	m.Update(keyRunes("u"))
	placement, ok := m.userMenu.Result()
	if !ok {
		t.Fatal("expected user menu to be placed")
	}
	// Pixel-scale defaults would push the menu to top 9, left 94.
	if placement.Top != 1 || placement.Left != 101 {
		t.Fatalf("expected zero gap and margin to keep the menu at (1, 101), got (%.1f, %.1f)", placement.Top, placement.Left)
	}
}

func TestUserMenuItemsForNonAdmin(t *testing.T) {
	m := newTestModel(t, "lee@example.com", 120, 30)
	for _, item := range m.userMenuItems() {
		if item.id == menuActAs {
			t.Fatal("expected non-admin menu to omit act-as")
		}
	}
	items := m.userMenuItems()
	if len(items) != 1 || items[0].id != menuLogOut {
		t.Fatalf("expected only log out, got %+v", items)
	}
}

func TestMenuKeyNavigationSkipsToActivation(t *testing.T) {
	m := newTestModel(t, "dana@example.com", 120, 30)
	m.Update(keyRunes("u"))
	if m.menuCursor != 0 {
		t.Fatalf("expected cursor on the first item, got %d", m.menuCursor)
	}

	m.Update(keyRunes("j"))
	if m.menuCursor != 1 {
		t.Fatalf("expected j to move the menu cursor, got %d", m.menuCursor)
	}
	if m.cursor != 0 {
		t.Fatalf("expected list cursor untouched while the menu is open, got %d", m.cursor)
	}
	m.Update(keyRunes("k"))
	if m.menuCursor != 0 {
		t.Fatalf("expected k to move back, got %d", m.menuCursor)
	}
}

func TestLogOutDisablesItemThenQuits(t *testing.T) {
	m := newTestModel(t, "lee@example.com", 120, 30)
	m.Update(keyRunes("u"))

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a log out command")
	}
	items := m.userMenuItems()
	if !items[len(items)-1].disabled {
		t.Fatal("expected log out item to be disabled while logging out")
	}

	// A second activation is ignored while the first is in flight.
	if _, again := m.activateMenuItem(len(items) - 1); again != nil {
		t.Fatal("expected disabled item to do nothing")
	}

	_, quit := m.Update(cmd())
	if quit == nil {
		t.Fatal("expected quit after log out")
	}
	if _, ok := quit().(tea.QuitMsg); !ok {
		t.Fatal("expected tea.Quit after log out")
	}
	if !m.LoggedOut() || m.session.LoggedIn() {
		t.Fatal("expected the session to be logged out")
	}
	if m.userMenu.IsOpen() {
		t.Fatal("expected menu to close after log out")
	}
}

func TestActAsSuggestionsEscapeLayers(t *testing.T) {
	m := newTestModel(t, "dana@example.com", 120, 30)
	m.Update(keyRunes("u"))
	m.Update(tea.KeyMsg{Type: tea.KeyEnter}) // "Act as user…"

	if m.mode != modeActAs {
		t.Fatal("expected act-as prompt to open")
	}
	if m.focus != focusActAsInput {
		t.Fatalf("expected focus in the act-as field, got %v", m.focus)
	}

	m.Update(keyRunes("s"))
	if !m.suggestionsOpen() || !m.suggest.IsOpen() {
		t.Fatal("expected suggestions after typing")
	}
	if len(m.suggestions) != 1 || m.suggestions[0].Email != "sam@example.com" {
		t.Fatalf("expected sam as the only match, got %+v", m.suggestions)
	}
	placement, ok := m.suggest.Result()
	if !ok || placement.Side != overlay.SideBottom {
		t.Fatalf("expected suggestions under the field, got %+v ok=%v", placement, ok)
	}
	field := m.actAsFieldRect()
	if placement.Top < field.Bottom() {
		t.Fatalf("expected suggestions below the field, got top %.1f", placement.Top)
	}

	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if m.suggest.IsOpen() {
		t.Fatal("expected first escape to close the suggestions")
	}
	if m.mode != modeActAs {
		t.Fatal("expected first escape to leave the act-as prompt open")
	}

	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if m.mode != modeBrowse {
		t.Fatal("expected second escape to cancel act-as")
	}
	if got := m.doc.ListenerCount(); got != 0 {
		t.Fatalf("expected no listeners once everything closed, got %d", got)
	}
}

func TestActAsPickSuggestionImpersonates(t *testing.T) {
	m := newTestModel(t, "dana@example.com", 120, 30)
	m.startActAs()
	m.Update(keyRunes("s"))

	m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	acting, ok := m.session.Acting()
	if !ok || acting.Email != "sam@example.com" {
		t.Fatalf("expected to act as sam, got %+v ok=%v", acting, ok)
	}
	if m.mode != modeBrowse || m.suggest.IsOpen() {
		t.Fatal("expected prompt and suggestions to close")
	}
	if len(m.visible) != 1 || m.visible[0].ID != "l5" {
		t.Fatalf("expected sam's listings, got %+v", m.visible)
	}

	items := m.userMenuItems()
	found := false
	for _, item := range items {
		if item.id == menuStopActing {
			found = true
		}
	}
	if !found {
		t.Fatal("expected stop-acting entry while impersonating")
	}
}

func TestActAsTypingJKStaysInField(t *testing.T) {
	m := newTestModel(t, "dana@example.com", 120, 30)
	m.startActAs()
	m.Update(keyRunes("l"))
	m.Update(keyRunes("k"))

	if got := m.actAs.Value(); got != "lk" {
		t.Fatalf("expected typed value %q, got %q", "lk", got)
	}
}

func TestConfirmActAsUnknownUserKeepsPrompt(t *testing.T) {
	m := newTestModel(t, "dana@example.com", 120, 30)
	m.startActAs()

	m.confirmActAs("nobody@example.com")

	if m.mode != modeActAs {
		t.Fatal("expected prompt to stay open after a failed act-as")
	}
	if _, ok := m.session.Acting(); ok {
		t.Fatal("expected no impersonation")
	}
}

func TestInfoPanelFollowsSelectedRow(t *testing.T) {
	m := newTestModel(t, "dana@example.com", 120, 30)

	m.Update(keyRunes("i"))
	if !m.infoOpen || !m.info.IsOpen() {
		t.Fatal("expected info panel to open")
	}
	placement, ok := m.info.Result()
	if !ok {
		t.Fatal("expected info panel to be placed")
	}
	if placement.Side != overlay.SideRight || !placement.HasArrow {
		t.Fatalf("expected info to the right of the row with an arrow, got %+v", placement)
	}
	if m.info.LabelledBy() == "" {
		t.Fatal("expected info panel to be labelled by its title")
	}

	_, y, _ := m.calculateLayout().listOrigin()
	m.Update(keyRunes("j"))
	anchor, ok := m.info.Anchor().Resolve()
	if !ok || anchor.Top != float64(y+1) {
		t.Fatalf("expected anchor on the second row (top %d), got %+v ok=%v", y+1, anchor, ok)
	}
	if !m.info.IsOpen() {
		t.Fatal("expected info panel to stay open while moving")
	}

	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if m.infoOpen || m.info.IsOpen() {
		t.Fatal("expected escape to close the info panel")
	}
	if got := m.doc.ListenerCount(); got != 0 {
		t.Fatalf("expected no listeners after close, got %d", got)
	}
}

func TestInfoPanelKeepsPlacementWhenRowScrollsOut(t *testing.T) {
	m := newTestModel(t, "dana@example.com", 120, 9)
	m.setTab(1)
	m.Update(keyRunes("i"))
	before, ok := m.info.Result()
	if !ok {
		t.Fatal("expected info panel to be placed")
	}

	m.scrollList(len(m.visible))
	if m.listOffset == 0 {
		t.Fatal("expected the list to scroll")
	}
	if _, ok := m.info.Anchor().Resolve(); ok {
		t.Fatal("expected the scrolled-out row to be unmounted")
	}
	after, ok := m.info.Result()
	if !ok || after != before {
		t.Fatalf("expected placement kept while the anchor is unmounted, got %+v then %+v", before, after)
	}
}

func TestOpeningMenuClosesInfo(t *testing.T) {
	m := newTestModel(t, "dana@example.com", 120, 30)
	m.Update(keyRunes("i"))
	m.Update(keyRunes("u"))

	if m.infoOpen || m.info.IsOpen() {
		t.Fatal("expected info to close when the menu opens")
	}
	if !m.userMenu.IsOpen() {
		t.Fatal("expected menu to be open")
	}
}
