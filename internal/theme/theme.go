// Package theme provides color themes and styling for the timeline editor.
package theme

import (
	"fmt"
	"image/color"
	"log"

	"charm.land/lipgloss/v2"
	tint "github.com/lrstanley/bubbletint/v2"

	"github.com/Gaurav-Gosain/tuicut/internal/timeline"
)

var enabled bool

// Initialize sets up the theme registry with the specified theme name.
// Call this once at application startup.
// If themeName is empty, theming will be disabled and standard terminal colors will be used.
func Initialize(themeName string) error {
	if themeName == "" {
		enabled = false
		return nil
	}

	enabled = true
	tint.NewDefaultRegistry()

	// Load custom themes from user's themes directory
	if themesDir, err := GetThemesDir(); err == nil {
		if _, err := LoadCustomThemes(themesDir); err != nil {
			log.Printf("Warning: error loading custom themes: %v", err)
		}
	}

	if ok := tint.SetTintID(themeName); !ok {
		tint.SetTintID("default")
		return fmt.Errorf("theme %q not found, using default", themeName)
	}
	return nil
}

// IsEnabled returns true if theming is enabled
func IsEnabled() bool {
	return enabled
}

// Current returns the currently active theme.
// Returns nil if theming is disabled.
func Current() *tint.Tint {
	if !enabled {
		return nil
	}
	return tint.Current()
}

// pick returns the theme color chosen by sel, or fallback when theming is off
// or the theme leaves the slot empty.
func pick(fallback string, sel func(t *tint.Tint) *tint.Color) color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color(fallback)
	}
	if c := sel(t); c != nil {
		return c
	}
	return lipgloss.Color(fallback)
}

// ClipColor returns the body color for clips on a track of the given kind.
// A custom theme may override it per kind.
func ClipColor(kind timeline.TrackKind) color.Color {
	if c, ok := clipOverride(kind); ok {
		return c
	}
	switch kind {
	case timeline.KindAudio:
		return pick("#2e7d4f", func(t *tint.Tint) *tint.Color { return t.Green })
	case timeline.KindCaption:
		return pick("#8a6d1f", func(t *tint.Tint) *tint.Color { return t.Yellow })
	case timeline.KindOverlay:
		return pick("#7b3f8c", func(t *tint.Tint) *tint.Color { return t.Purple })
	default:
		return pick("#2f5f9e", func(t *tint.Tint) *tint.Color { return t.Blue })
	}
}

// ClipFg returns the label color drawn on clip bodies.
func ClipFg() color.Color {
	return pick("#f0f0f0", func(t *tint.Tint) *tint.Color { return t.BrightWhite })
}

// ClipSelected returns the body color of the selected clip.
func ClipSelected() color.Color {
	return pick("#5fafff", func(t *tint.Tint) *tint.Color { return t.BrightBlue })
}

// ClipDragging returns the body color of a clip being dragged.
func ClipDragging() color.Color {
	return pick("#87d7ff", func(t *tint.Tint) *tint.Color { return t.BrightCyan })
}

// TrimHandle returns the color of clip trim handles.
func TrimHandle() color.Color {
	return pick("#ffd75f", func(t *tint.Tint) *tint.Color { return t.BrightYellow })
}

// Playhead returns the playhead color.
func Playhead() color.Color {
	return pick("#ff5f5f", func(t *tint.Tint) *tint.Color { return t.BrightRed })
}

// SnapGuide returns the color of the snap guide line.
func SnapGuide() color.Color {
	return pick("#ffff5f", func(t *tint.Tint) *tint.Color { return t.Yellow })
}

// MarkerColor returns the ruler color for a marker type.
func MarkerColor(mt timeline.MarkerType) color.Color {
	switch mt {
	case timeline.MarkerChapter:
		return pick("#5fd7ff", func(t *tint.Tint) *tint.Color { return t.Cyan })
	case timeline.MarkerHook:
		return pick("#ff87d7", func(t *tint.Tint) *tint.Color { return t.BrightPurple })
	case timeline.MarkerCTA:
		return pick("#87ff87", func(t *tint.Tint) *tint.Color { return t.BrightGreen })
	case timeline.MarkerTodo:
		return pick("#ff8700", func(t *tint.Tint) *tint.Color { return t.Red })
	default:
		return pick("#d0d0d0", func(t *tint.Tint) *tint.Color { return t.White })
	}
}

// RulerFg returns the ruler label color.
func RulerFg() color.Color {
	return pick("#bcbcbc", func(t *tint.Tint) *tint.Color { return t.Fg })
}

// RulerBg returns the ruler background.
func RulerBg() color.Color {
	return pick("#262626", func(t *tint.Tint) *tint.Color { return t.Black })
}

// GridLine returns the color of grid ticks drawn in track rows.
func GridLine() color.Color {
	return pick("#3a3a3a", func(t *tint.Tint) *tint.Color { return t.BrightBlack })
}

// HeaderFg returns the track header text color.
func HeaderFg() color.Color {
	return pick("#e4e4e4", func(t *tint.Tint) *tint.Color { return t.Fg })
}

// HeaderBg returns the track header background.
func HeaderBg() color.Color {
	return pick("#1c1c1c", func(t *tint.Tint) *tint.Color { return t.Bg })
}

// HeaderActive returns the header color of the focused track.
func HeaderActive() color.Color {
	return pick("#5fafd7", func(t *tint.Tint) *tint.Color { return t.Blue })
}

// TrackFlagOn returns the color of an active mute or lock button.
func TrackFlagOn() color.Color {
	return pick("#ff5f5f", func(t *tint.Tint) *tint.Color { return t.Red })
}

// TrackFlagOff returns the color of an inactive mute or lock button.
func TrackFlagOff() color.Color {
	return pick("#585858", func(t *tint.Tint) *tint.Color { return t.BrightBlack })
}

// StatusBarBg returns the status bar background.
func StatusBarBg() color.Color {
	return pick("#303030", func(t *tint.Tint) *tint.Color { return t.BrightBlack })
}

// StatusBarFg returns the status bar text color.
func StatusBarFg() color.Color {
	return pick("#e4e4e4", func(t *tint.Tint) *tint.Color { return t.BrightWhite })
}

// StatusBarAccent returns the color used for the timecode and mode badges.
func StatusBarAccent() color.Color {
	return pick("#87d787", func(t *tint.Tint) *tint.Color { return t.BrightGreen })
}

// NotificationError returns the color for error notifications.
func NotificationError() color.Color {
	return pick("#FF6B6B", func(t *tint.Tint) *tint.Color { return t.BrightRed })
}

// NotificationWarning returns the color for warning notifications.
func NotificationWarning() color.Color {
	return pick("#FFD93D", func(t *tint.Tint) *tint.Color { return t.BrightYellow })
}

// NotificationInfo returns the color for info notifications.
func NotificationInfo() color.Color {
	return pick("#4ECDC4", func(t *tint.Tint) *tint.Color { return t.BrightCyan })
}

// NotificationSuccess returns the color for success notifications.
func NotificationSuccess() color.Color {
	return pick("#6BCB77", func(t *tint.Tint) *tint.Color { return t.Green })
}

// LogViewerBg returns the background of the log viewer and help overlay.
func LogViewerBg() color.Color {
	return pick("#1a1a2a", func(t *tint.Tint) *tint.Color { return t.Bg })
}

// LogViewerError returns the color for error entries in the log viewer.
func LogViewerError() color.Color { return NotificationError() }

// LogViewerWarn returns the color for warn entries in the log viewer.
func LogViewerWarn() color.Color { return NotificationWarning() }

// LogViewerInfo returns the color for info entries in the log viewer.
func LogViewerInfo() color.Color {
	return pick("#A8E6CF", func(t *tint.Tint) *tint.Color { return t.Green })
}

// HelpKeyBadge returns the foreground of key badges in the help overlay.
func HelpKeyBadge() color.Color {
	return pick("#000000", func(t *tint.Tint) *tint.Color { return t.Bg })
}

// HelpKeyBadgeBg returns the background of key badges in the help overlay.
func HelpKeyBadgeBg() color.Color {
	return pick("#87afd7", func(t *tint.Tint) *tint.Color { return t.Blue })
}

// HelpBorder returns the border color of overlays.
func HelpBorder() color.Color {
	return pick("#5f87af", func(t *tint.Tint) *tint.Color { return t.Cyan })
}

// HelpGray returns the dim text color used in overlays.
func HelpGray() color.Color {
	return pick("#808080", func(t *tint.Tint) *tint.Color { return t.BrightBlack })
}

// CLITableHeader returns the header color for CLI tables.
func CLITableHeader() color.Color {
	return pick("#5fafff", func(t *tint.Tint) *tint.Color { return t.BrightBlue })
}

// CLITableBorder returns the border color for CLI tables.
func CLITableBorder() color.Color { return HelpGray() }

// CLITableKey returns the key column color for CLI tables.
func CLITableKey() color.Color {
	return pick("#87d787", func(t *tint.Tint) *tint.Color { return t.BrightGreen })
}

// ColorToString converts a color to a hex string for EDL comments and PNG
// exports.
func ColorToString(c color.Color) string {
	if c == nil {
		return ""
	}
	r, g, b, _ := c.RGBA()
	return fmt.Sprintf("#%02x%02x%02x", r>>8, g>>8, b>>8)
}
