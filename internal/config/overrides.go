package config

import (
	"log"

	"github.com/Gaurav-Gosain/tuicut/internal/theme"
)

// Overrides contains CLI flag values that can override user config.
// Zero values indicate the flag was not set and should use the user config default.
type Overrides struct {
	// ASCIIOnly uses ASCII characters instead of box drawing glyphs
	ASCIIOnly bool

	// ThemeName is the theme to load
	ThemeName string

	// HeaderWidth overrides the track header width (0 means use default)
	HeaderWidth int

	// Zoom overrides the initial zoom in cells per second (0 means use default)
	Zoom float64

	// FPS overrides the timecode frame rate (0 means use default)
	FPS float64

	// NoSnap disables snapping at startup
	NoSnap bool

	// Grid enables grid snapping at startup
	Grid bool

	// NoFollow disables following the playhead during playback
	NoFollow bool

	// HideStatusBar hides the bottom status bar
	HideStatusBar bool

	// Debug mirrors the in-app log to stderr
	Debug bool
}

// ApplyOverrides applies CLI flag overrides to global config and to the
// user config, falling back to user config values. If userConfig is nil,
// only CLI flag values (when set) are applied to the globals.
func ApplyOverrides(overrides Overrides, userConfig *UserConfig) {
	// ASCII Only - OR of CLI flag and user config
	UseASCIIOnly = overrides.ASCIIOnly || (userConfig != nil && userConfig.Appearance.ASCIIOnly)

	// Header Width - CLI flag takes precedence, otherwise use user config
	width := 0
	if overrides.HeaderWidth > 0 {
		width = overrides.HeaderWidth
	} else if userConfig != nil {
		width = userConfig.Appearance.HeaderWidth
	}
	if width > 0 {
		HeaderWidth = clampInt(width, MinHeaderWidth, MaxHeaderWidth)
	}

	// Ruler and status bar
	if userConfig != nil && userConfig.Appearance.ShowRuler != nil {
		ShowRuler = *userConfig.Appearance.ShowRuler
	}
	HideStatusBar = overrides.HideStatusBar || (userConfig != nil && userConfig.Appearance.HideStatusBar)

	DebugLogging = overrides.Debug

	if userConfig != nil {
		if overrides.Zoom > 0 {
			userConfig.Timeline.DefaultZoom = overrides.Zoom
		}
		if overrides.FPS > 0 {
			userConfig.Timeline.FPS = overrides.FPS
		}
		if overrides.NoSnap {
			userConfig.Snapping.Enabled = boolPtr(false)
		}
		if overrides.Grid {
			userConfig.Snapping.Grid = true
		}
		if overrides.NoFollow {
			userConfig.Timeline.FollowPlayhead = boolPtr(false)
		}
	}

	// Theme - CLI flag takes precedence, otherwise use user config
	themeName := overrides.ThemeName
	if themeName == "" && userConfig != nil && userConfig.Appearance.Theme != "" {
		themeName = userConfig.Appearance.Theme
	}
	if themeName != "" {
		if err := theme.Initialize(themeName); err != nil {
			log.Printf("Warning: Failed to load theme '%s': %v", themeName, err)
		}
	}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
