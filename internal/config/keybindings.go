package config

// Keybinding represents a single keybinding entry
type Keybinding struct {
	Key         string
	Description string
}

// KeybindingSection represents a section of related keybindings
type KeybindingSection struct {
	Title     string
	Condition string // Empty for always shown, "snap" when snapping is on, "!snap" when off
	Bindings  []Keybinding
}

// ActionDescriptions maps every bindable action to its help text.
var ActionDescriptions = map[string]string{
	"play_pause":    "Play / pause",
	"frame_back":    "Previous frame",
	"frame_fwd":     "Next frame",
	"second_back":   "Back one second",
	"second_fwd":    "Forward one second",
	"go_start":      "Go to start",
	"go_end":        "Go to end",
	"prev_marker":   "Previous marker",
	"next_marker":   "Next marker",
	"scroll_left":   "Scroll left",
	"scroll_right":  "Scroll right",
	"track_up":      "Select track above",
	"track_down":    "Select track below",
	"center":        "Center on playhead",
	"zoom_in":       "Zoom in",
	"zoom_out":      "Zoom out",
	"fit":           "Fit sequence to window",
	"toggle_follow": "Toggle follow playhead",
	"toggle_snap":   "Toggle snapping",
	"toggle_grid":   "Toggle grid snapping",
	"add_marker":    "Add marker at playhead",
	"cancel_drag":   "Cancel drag",
	"next_clip":     "Select next clip",
	"prev_clip":     "Select previous clip",
	"copy_timecode": "Copy playhead timecode",
	"copy_edl":      "Copy EDL to clipboard",
	"toggle_mute":   "Toggle track mute",
	"toggle_lock":   "Toggle track lock",
	"toggle_help":   "Toggle help",
	"toggle_logs":   "Toggle log viewer",
	"quit":          "Quit",
}

// GetKeybindings returns all keybinding sections for the help menu
// If registry is provided, it generates bindings dynamically from user config
// If registry is nil, it falls back to the default config
func GetKeybindings(registry *KeybindRegistry) []KeybindingSection {
	if registry == nil {
		registry = NewKeybindRegistry(DefaultConfig())
	}

	sections := []KeybindingSection{}

	transport := KeybindingSection{Title: "TRANSPORT"}
	for _, action := range []string{"play_pause", "frame_back", "frame_fwd", "second_back", "second_fwd", "go_start", "go_end"} {
		addBinding(&transport, registry, action)
	}
	if len(transport.Bindings) > 0 {
		sections = append(sections, transport)
	}

	nav := KeybindingSection{Title: "NAVIGATION"}
	for _, action := range []string{"prev_marker", "next_marker", "scroll_left", "scroll_right", "track_up", "track_down", "center"} {
		addBinding(&nav, registry, action)
	}
	if len(nav.Bindings) > 0 {
		sections = append(sections, nav)
	}

	view := KeybindingSection{Title: "VIEW"}
	for _, action := range []string{"zoom_in", "zoom_out", "fit", "toggle_follow", "toggle_snap", "toggle_grid"} {
		addBinding(&view, registry, action)
	}
	if len(view.Bindings) > 0 {
		sections = append(sections, view)
	}

	editing := KeybindingSection{Title: "EDITING"}
	for _, action := range []string{"add_marker", "cancel_drag", "next_clip", "prev_clip", "copy_timecode", "copy_edl", "toggle_mute", "toggle_lock"} {
		addBinding(&editing, registry, action)
	}
	if len(editing.Bindings) > 0 {
		sections = append(sections, editing)
	}

	sections = append(sections, getStaticHelpSections()...)

	system := KeybindingSection{Title: "SYSTEM"}
	for _, action := range []string{"toggle_help", "toggle_logs", "quit"} {
		addBinding(&system, registry, action)
	}
	if len(system.Bindings) > 0 {
		sections = append(sections, system)
	}
	return sections
}

// addBinding adds a keybinding to a section if the action has keys configured
func addBinding(section *KeybindingSection, registry *KeybindRegistry, action string) {
	keys := registry.GetKeysForDisplay(action)
	if keys != "" {
		section.Bindings = append(section.Bindings, Keybinding{
			Key:         keys,
			Description: ActionDescriptions[action],
		})
	}
}

// getStaticHelpSections returns help sections that don't need dynamic binding info
// (mouse actions)
func getStaticHelpSections() []KeybindingSection {
	return []KeybindingSection{
		{
			Title: "MOUSE",
			Bindings: []Keybinding{
				{"Drag clip body", "Move clip"},
				{"Drag clip edge", "Trim in / out"},
				{"Click ruler or track", "Scrub playhead"},
				{"Click [M] / [L]", "Toggle track mute / lock"},
				{"Wheel", "Select track above / below"},
				{"Shift+Wheel", "Scroll timeline"},
				{"Horizontal wheel", "Scroll timeline"},
				{"Ctrl+Wheel", "Zoom around cursor"},
			},
		},
		{
			Title:     "SNAPPING",
			Condition: "snap",
			Bindings: []Keybinding{
				{"Playhead", "Strongest target"},
				{"Clip edges", "Start and end of other clips"},
				{"Markers", "Sequence markers"},
				{"Grid", "Ruler interval (when enabled)"},
			},
		},
	}
}
