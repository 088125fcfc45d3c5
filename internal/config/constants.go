// Package config provides configuration constants, keybinding management, and user settings.
package config

import (
	"time"
)

// =============================================================================
// Layout Defaults
// =============================================================================

const (
	// DefaultHeaderWidth is the width of the track header column in cells
	DefaultHeaderWidth = 14

	// MinHeaderWidth is the narrowest header that still fits a track name
	MinHeaderWidth = 8

	// MaxHeaderWidth keeps the header from eating the tracks area
	MaxHeaderWidth = 40

	// TrackHeight is the number of rows each track occupies
	TrackHeight = 2

	// RulerHeight is the number of rows used by the time ruler
	RulerHeight = 2

	// StatusBarHeight is the number of rows used by the status bar
	StatusBarHeight = 1

	// TrimHandleWidth is the number of cells at each clip edge that start a trim
	TrimHandleWidth = 1

	// MinClipWidthForHandles is the narrowest clip that offers trim handles
	MinClipWidthForHandles = 3
)

// =============================================================================
// Timeline Defaults
// =============================================================================

const (
	// DefaultZoom is the initial zoom in cells per second
	DefaultZoom = 4.0

	// DefaultMinZoom is the widest zoom-out in cells per second
	DefaultMinZoom = 0.05

	// DefaultMaxZoom is the deepest zoom-in in cells per second
	DefaultMaxZoom = 600.0

	// DefaultZoomStep is the multiplicative step for one zoom action
	DefaultZoomStep = 1.2

	// DefaultMinClipDuration is the shortest a trim may make a clip, in seconds
	DefaultMinClipDuration = 0.1

	// DefaultFollowMargin is the fraction of the viewport kept around a
	// followed playhead
	DefaultFollowMargin = 0.2

	// DefaultWheelDelta is the pixel delta of one wheel notch
	DefaultWheelDelta = 4.0

	// DefaultFPS is the frame rate used for timecodes when a sequence has none
	DefaultFPS = 30.0
)

// =============================================================================
// Snapping Defaults
// =============================================================================

const (
	// DefaultSnapThresholdPx is the snap distance in cells
	DefaultSnapThresholdPx = 2.0

	// DefaultMinGridSpacingPx is the minimum spacing between grid ticks in cells
	DefaultMinGridSpacingPx = 8.0
)

// =============================================================================
// FPS and Refresh Rates
// =============================================================================

const (
	// NormalFPS is the refresh rate of the program loop
	NormalFPS = 60

	// PlaybackTickRate is how often the playhead advances while playing
	PlaybackTickRate = time.Second / 30
)

// =============================================================================
// Logs and Notifications
// =============================================================================

const (
	// MaxLogMessages caps the in-app log buffer
	MaxLogMessages = 500

	// NotificationDuration is how long a status notification stays visible
	NotificationDuration = 2 * time.Second
)

// =============================================================================
// Layering
// =============================================================================

const (
	// ZIndexTimeline is the layer holding the ruler, tracks and status bar
	ZIndexTimeline = 0

	// ZIndexNotifications is the layer for toasts and the tape indicator
	ZIndexNotifications = 100

	// ZIndexHelp is the layer for the help overlay
	ZIndexHelp = 200

	// ZIndexLogs is the layer for the log viewer
	ZIndexLogs = 300
)

// Notification icons
const (
	NotificationIconInfo    = "i"
	NotificationIconSuccess = "+"
	NotificationIconWarning = "!"
	NotificationIconError   = "x"

	// TapeRecordingIndicator marks the status bar while a tape is being recorded
	TapeRecordingIndicator = "REC"
)

// =============================================================================
// Runtime Settings
// =============================================================================

// UseASCIIOnly replaces box-drawing and icon glyphs with ASCII
var UseASCIIOnly = false

// HeaderWidth is the active track header width
var HeaderWidth = DefaultHeaderWidth

// ShowRuler toggles the time ruler
var ShowRuler = true

// HideStatusBar hides the bottom status bar
var HideStatusBar = false

// DebugLogging mirrors the in-app log to the structured logger
var DebugLogging = false

// =============================================================================
// Glyphs
// =============================================================================

const (
	glyphPlayhead      = "│"
	glyphPlayheadASCII = "|"
	glyphMarker        = "▼"
	glyphMarkerASCII   = "v"
	glyphSnap          = "┆"
	glyphSnapASCII     = ":"
	glyphTick          = "┴"
	glyphTickASCII     = "+"
	glyphHandle        = "▐"
	glyphHandleRight   = "▌"
	glyphHandleASCII   = "["
	glyphHandleRASCII  = "]"
	glyphMuted         = "M"
	glyphLocked        = "L"
)

// PlayheadGlyph returns the playhead column character.
func PlayheadGlyph() string {
	if UseASCIIOnly {
		return glyphPlayheadASCII
	}
	return glyphPlayhead
}

// MarkerGlyph returns the ruler marker character.
func MarkerGlyph() string {
	if UseASCIIOnly {
		return glyphMarkerASCII
	}
	return glyphMarker
}

// SnapGuideGlyph returns the snap guide column character.
func SnapGuideGlyph() string {
	if UseASCIIOnly {
		return glyphSnapASCII
	}
	return glyphSnap
}

// TickGlyph returns the ruler tick character.
func TickGlyph() string {
	if UseASCIIOnly {
		return glyphTickASCII
	}
	return glyphTick
}

// HandleGlyphs returns the left and right trim handle characters.
func HandleGlyphs() (left, right string) {
	if UseASCIIOnly {
		return glyphHandleASCII, glyphHandleRASCII
	}
	return glyphHandle, glyphHandleRight
}

// TrackFlagGlyphs returns the mute and lock button labels.
func TrackFlagGlyphs() (mute, lock string) {
	return glyphMuted, glyphLocked
}
