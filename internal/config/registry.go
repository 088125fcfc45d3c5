package config

import (
	"sort"
	"strings"
)

// KeybindRegistry resolves key strings to actions and back.
type KeybindRegistry struct {
	keyToAction map[string]string
	actionKeys  map[string][]string
}

// NewKeybindRegistry builds a registry from every keybinding section of cfg.
// When two actions claim the same key the first section wins.
func NewKeybindRegistry(cfg *UserConfig) *KeybindRegistry {
	r := &KeybindRegistry{
		keyToAction: make(map[string]string),
		actionKeys:  make(map[string][]string),
	}
	if cfg == nil {
		cfg = DefaultConfig()
	}
	for _, section := range cfg.Keybindings.sections() {
		for _, action := range sortedKeys(section) {
			for _, key := range section[action] {
				key = NormalizeKey(key)
				if key == "" {
					continue
				}
				r.actionKeys[action] = append(r.actionKeys[action], key)
				if _, taken := r.keyToAction[key]; !taken {
					r.keyToAction[key] = action
				}
			}
		}
	}
	return r
}

func (k KeybindingsConfig) sections() []map[string][]string {
	return []map[string][]string{k.Transport, k.Navigation, k.View, k.Editing, k.System}
}

func sortedKeys(m map[string][]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// NormalizeKey lowercases modifier names and maps common aliases so config
// strings line up with the key strings reported by the terminal.
func NormalizeKey(key string) string {
	key = strings.TrimSpace(key)
	if key == "" {
		return ""
	}
	mods, last := splitKey(key)
	chord := false
	for i, m := range mods {
		m = strings.ToLower(m)
		switch m {
		case "control":
			m = "ctrl"
		case "option", "opt":
			m = "alt"
		case "cmd", "super":
			m = "meta"
		}
		mods[i] = m
		if m == "ctrl" || m == "alt" || m == "meta" {
			chord = true
		}
	}
	// Modified letters are reported lowercase; a bare letter keeps its case.
	if chord && len(last) == 1 {
		last = strings.ToLower(last)
	}
	if len(last) > 1 {
		last = strings.ToLower(last)
		switch last {
		case "escape":
			last = "esc"
		case "return":
			last = "enter"
		case "pageup":
			last = "pgup"
		case "pagedown":
			last = "pgdown"
		}
	}
	return strings.Join(append(mods, last), "+")
}

// splitKey separates modifiers from the final key. A literal "+" is allowed
// as the final key ("+", "ctrl++").
func splitKey(key string) (mods []string, last string) {
	if key == "+" {
		return nil, "+"
	}
	if strings.HasSuffix(key, "++") {
		return strings.Split(strings.TrimSuffix(key, "++"), "+"), "+"
	}
	parts := strings.Split(key, "+")
	return parts[:len(parts)-1], parts[len(parts)-1]
}

// GetAction returns the action bound to key, or "" if none.
func (r *KeybindRegistry) GetAction(key string) string {
	if r == nil {
		return ""
	}
	return r.keyToAction[NormalizeKey(key)]
}

// GetKeys returns the keys bound to action.
func (r *KeybindRegistry) GetKeys(action string) []string {
	if r == nil {
		return nil
	}
	return r.actionKeys[action]
}

// GetKeysForDisplay returns the keys bound to action formatted for help text.
func (r *KeybindRegistry) GetKeysForDisplay(action string) string {
	keys := r.GetKeys(action)
	if len(keys) == 0 {
		return ""
	}
	display := make([]string, len(keys))
	for i, k := range keys {
		display[i] = displayKey(k)
	}
	return strings.Join(display, ", ")
}

// ListAll returns every bound action in sorted order.
func (r *KeybindRegistry) ListAll() []string {
	if r == nil {
		return nil
	}
	return sortedKeys(r.actionKeys)
}

func displayKey(k string) string {
	mods, last := splitKey(k)
	parts := append(mods, last)
	for i, p := range parts {
		switch p {
		case "left":
			parts[i] = "←"
		case "right":
			parts[i] = "→"
		case "up":
			parts[i] = "↑"
		case "down":
			parts[i] = "↓"
		default:
			if len(p) > 1 {
				parts[i] = strings.ToUpper(p[:1]) + p[1:]
			}
		}
	}
	return strings.Join(parts, "+")
}
