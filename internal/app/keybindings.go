package app

import (
	"errors"
	"os"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/treykane/listings/internal/config"
)

// ---------------------------------------------------------------------------
// Action constants
// ---------------------------------------------------------------------------
//
// Each constant below identifies a user-triggerable action in browse mode.
// Actions are the abstraction layer between physical key presses and
// application behavior: the user presses a key, the key is looked up in the
// keyToAction map, and the resulting action string is dispatched in
// handleBrowseKey.
//
// Default key assignments are declared in defaultActionKeys. Users can
// override any assignment via the [keybindings] table in config.toml or via
// an external keymap file (default: ~/.listings/keymap.toml).
// ---------------------------------------------------------------------------

const (
	// actionCursorUp moves the listing selection up by one row.
	actionCursorUp = "list.cursor.up"

	// actionCursorDown moves the listing selection down by one row.
	actionCursorDown = "list.cursor.down"

	// actionJumpTop selects the first listing.
	actionJumpTop = "list.jump.top"

	// actionJumpBottom selects the last listing.
	actionJumpBottom = "list.jump.bottom"

	// actionInfo opens or closes the info panel next to the selected row.
	actionInfo = "listing.info.toggle"

	// actionUserMenu opens or closes the user menu under the user button.
	actionUserMenu = "menu.user"

	// actionTabNext and actionTabPrev cycle through the nav tabs.
	actionTabNext = "tab.next"
	actionTabPrev = "tab.prev"

	// Direct tab jumps, in nav bar order.
	actionTabMine    = "tab.mine"
	actionTabAll     = "tab.all"
	actionTabTeam    = "tab.team"
	actionTabReports = "tab.reports"

	// actionDetailPageUp scrolls the detail pane up by one viewport page.
	actionDetailPageUp = "detail.scroll.page_up"

	// actionDetailPageDown scrolls the detail pane down by one viewport page.
	actionDetailPageDown = "detail.scroll.page_down"

	// actionDetailHalfUp scrolls the detail pane up by half a page.
	actionDetailHalfUp = "detail.scroll.half_up"

	// actionDetailHalfDown scrolls the detail pane down by half a page.
	actionDetailHalfDown = "detail.scroll.half_down"

	// actionHelp toggles the in-app keyboard shortcut reference.
	actionHelp = "help.toggle"

	// actionQuit exits the application.
	actionQuit = "app.quit"
)

// defaultActionKeys maps each action to its factory-default key bindings.
//
// Key strings use the Bubble Tea notation:
//   - Modifier keys: "ctrl+", "alt+", "shift+"
//   - Special keys: "enter", "esc", "tab", "up", "down", "left", "right"
//   - Single characters: "i", "u", "?", etc.
var defaultActionKeys = map[string][]string{
	actionCursorUp:       {"up", "k"},
	actionCursorDown:     {"down", "j", "ctrl+n"},
	actionJumpTop:        {"g", "home"},
	actionJumpBottom:     {"shift+g", "end"},
	actionInfo:           {"i", "enter"},
	actionUserMenu:       {"u"},
	actionTabNext:        {"tab", "right", "l"},
	actionTabPrev:        {"shift+tab", "left", "h"},
	actionTabMine:        {"1"},
	actionTabAll:         {"2"},
	actionTabTeam:        {"3"},
	actionTabReports:     {"4"},
	actionDetailPageUp:   {"pgup"},
	actionDetailPageDown: {"pgdown"},
	actionDetailHalfUp:   {"ctrl+u"},
	actionDetailHalfDown: {"ctrl+d"},
	actionHelp:           {"?"},
	actionQuit:           {"q", "ctrl+c"},
}

// ---------------------------------------------------------------------------
// Keybinding initialization
// ---------------------------------------------------------------------------

// loadKeybindings initializes the bidirectional key↔action maps from three
// sources, applied in order of increasing priority:
//
//  1. defaultActionKeys: built-in factory defaults.
//  2. cfg.Keybindings: inline overrides from config.toml.
//  3. The keymap file at cfg.KeymapFile, if it exists.
//
// Overrides replace an action's full default key set with the configured
// key. Unknown action names and key conflicts are logged and ignored; the
// first action to claim a key wins.
func (m *Model) loadKeybindings(cfg config.Config) {
	m.keyForAction = map[string][]string{}
	for action, keys := range defaultActionKeys {
		m.keyForAction[action] = append([]string(nil), keys...)
	}

	for action, key := range cfg.Keybindings {
		m.applyKeybindingOverride(action, key)
	}

	fileOverrides := loadKeymapFile(cfg.KeymapFile)
	for action, key := range fileOverrides {
		m.applyKeybindingOverride(action, key)
	}

	m.rebuildActionKeyIndex()
}

// loadKeymapFile reads an external TOML keymap: a flat table of action
// names to key strings, for example:
//
//	"menu.user" = "alt+u"
//	"listing.info.toggle" = "space"
//
// A missing file is not an error. Unreadable or malformed files are logged
// and ignored.
func loadKeymapFile(path string) map[string]string {
	if strings.TrimSpace(path) == "" {
		return nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			appLog.Warn("read keymap file", "path", path, "error", err)
		}
		return nil
	}
	overrides := map[string]string{}
	if _, err := toml.Decode(string(data), &overrides); err != nil {
		appLog.Warn("parse keymap file", "path", path, "error", err)
		return nil
	}
	return overrides
}

// applyKeybindingOverride updates a single action's key binding, replacing
// the action's full default key set.
func (m *Model) applyKeybindingOverride(action, key string) {
	action = strings.TrimSpace(action)
	key = normalizeKeyString(key)
	if action == "" || key == "" {
		return
	}
	if _, ok := defaultActionKeys[action]; !ok {
		appLog.Warn("ignore unknown keybinding action", "action", action)
		return
	}
	m.keyForAction[action] = []string{key}
}

// rebuildActionKeyIndex constructs the reverse lookup map (keyToAction) from
// the current keyForAction map. Actions are visited in sorted order so a
// conflict always resolves the same way.
func (m *Model) rebuildActionKeyIndex() {
	m.keyToAction = map[string]string{}
	actions := make([]string, 0, len(m.keyForAction))
	for action := range m.keyForAction {
		actions = append(actions, action)
	}
	slices.Sort(actions)
	for _, action := range actions {
		for _, key := range m.keyForAction[action] {
			if key == "" {
				continue
			}
			if existing, ok := m.keyToAction[key]; ok && existing != action {
				appLog.Warn("keybinding conflict ignored", "key", key, "action", action, "existing_action", existing)
				continue
			}
			m.keyToAction[key] = action
		}
	}
}

// ---------------------------------------------------------------------------
// Key string normalization
// ---------------------------------------------------------------------------

// normalizeKeyString converts a user-provided key string into the canonical
// lowercase form used by the keybinding maps. A single uppercase letter
// ("G") becomes "shift+g" because Bubble Tea reports shifted letters as
// uppercase runes.
//
// Examples:
//
//	normalizeKeyString("Ctrl+P")  → "ctrl+p"
//	normalizeKeyString(" G ")     → "shift+g"
//	normalizeKeyString("")        → ""
func normalizeKeyString(key string) string {
	key = strings.TrimSpace(key)
	if key == "" {
		return ""
	}
	if len([]rune(key)) == 1 && strings.ToUpper(key) == key && strings.ToLower(key) != key {
		return "shift+" + strings.ToLower(key)
	}
	return strings.ToLower(key)
}

// actionForKey looks up the action bound to the given key string, or ""
// when nothing is bound.
func (m *Model) actionForKey(key string) string {
	if m.keyToAction == nil {
		return ""
	}
	return m.keyToAction[normalizeKeyString(key)]
}

func (m *Model) actionKeyLabels(action string) []string {
	keys, ok := m.keyForAction[action]
	if !ok || len(keys) == 0 {
		return nil
	}
	labels := make([]string, 0, len(keys))
	for _, key := range keys {
		label := humanizeKeyLabel(key)
		if label == "" {
			continue
		}
		if slices.Contains(labels, label) {
			continue
		}
		labels = append(labels, label)
	}
	return labels
}

func (m *Model) primaryActionKey(action, fallback string) string {
	keys := m.actionKeyLabels(action)
	if len(keys) == 0 {
		return fallback
	}
	return keys[0]
}

func (m *Model) allActionKeys(action, fallback string) string {
	keys := m.actionKeyLabels(action)
	if len(keys) == 0 {
		return fallback
	}
	return strings.Join(keys, ", ")
}

func humanizeKeyLabel(key string) string {
	normalized := normalizeKeyString(key)
	if normalized == "" {
		return ""
	}
	special := map[string]string{
		"up":        "↑",
		"down":      "↓",
		"left":      "←",
		"right":     "→",
		"enter":     "Enter",
		"esc":       "Esc",
		"tab":       "Tab",
		"home":      "Home",
		"end":       "End",
		"pgup":      "PgUp",
		"pgdown":    "PgDn",
		"space":     "Space",
		"backspace": "Backspace",
	}
	parts := strings.Split(normalized, "+")
	for i, part := range parts {
		switch part {
		case "ctrl":
			parts[i] = "Ctrl"
		case "alt":
			parts[i] = "Alt"
		case "shift":
			parts[i] = "Shift"
		default:
			if label, ok := special[part]; ok {
				parts[i] = label
				continue
			}
			runes := []rune(part)
			if len(runes) == 1 && runes[0] >= 'a' && runes[0] <= 'z' {
				// A bare letter stays lowercase; "U" would read as shift+u.
				if len(parts) > 1 {
					parts[i] = strings.ToUpper(part)
				}
			} else {
				parts[i] = strings.ToUpper(part[:1]) + part[1:]
			}
		}
	}
	return strings.Join(parts, "+")
}
