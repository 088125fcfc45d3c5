package input

import (
	"fmt"

	tea "charm.land/bubbletea/v2"

	"github.com/Gaurav-Gosain/tuicut/internal/app"
	"github.com/Gaurav-Gosain/tuicut/internal/config"
	"github.com/Gaurav-Gosain/tuicut/internal/export"
)

// ActionHandler is a function that handles a specific action
type ActionHandler func(_ tea.KeyPressMsg, e *app.Editor) (*app.Editor, tea.Cmd)

// ActionDispatcher maps action names to handler functions
type ActionDispatcher struct {
	handlers map[string]ActionHandler
}

// NewActionDispatcher creates a new action dispatcher with all handlers registered
func NewActionDispatcher() *ActionDispatcher {
	d := &ActionDispatcher{
		handlers: make(map[string]ActionHandler),
	}
	d.registerHandlers()
	return d
}

// registerHandlers registers all action handlers
func (d *ActionDispatcher) registerHandlers() {
	// Transport
	d.Register("play_pause", handlePlayPause)
	d.Register("frame_back", makeFrameStepHandler(-1))
	d.Register("frame_fwd", makeFrameStepHandler(1))
	d.Register("second_back", makeSecondStepHandler(-1))
	d.Register("second_fwd", makeSecondStepHandler(1))
	d.Register("go_start", handleGoStart)
	d.Register("go_end", handleGoEnd)

	// Navigation
	d.Register("prev_marker", makeMarkerHandler(-1))
	d.Register("next_marker", makeMarkerHandler(1))
	d.Register("scroll_left", makeScrollHandler(-scrollFraction))
	d.Register("scroll_right", makeScrollHandler(scrollFraction))
	d.Register("track_up", makeTrackFocusHandler(-1))
	d.Register("track_down", makeTrackFocusHandler(1))
	d.Register("center", handleCenter)

	// View
	d.Register("zoom_in", makeZoomHandler(true))
	d.Register("zoom_out", makeZoomHandler(false))
	d.Register("fit", handleFit)
	d.Register("toggle_follow", handleToggleFollow)
	d.Register("toggle_snap", handleToggleSnap)
	d.Register("toggle_grid", handleToggleGrid)

	// Editing
	d.Register("add_marker", handleAddMarker)
	d.Register("cancel_drag", handleCancelDrag)
	d.Register("next_clip", makeCycleClipHandler(1))
	d.Register("prev_clip", makeCycleClipHandler(-1))
	d.Register("copy_timecode", handleCopyTimecode)
	d.Register("copy_edl", handleCopyEDL)
	d.Register("toggle_mute", handleToggleMute)
	d.Register("toggle_lock", handleToggleLock)

	// System
	d.Register("toggle_help", handleToggleHelp)
	d.Register("toggle_logs", handleToggleLogs)
	d.Register("quit", handleQuit)
}

// Register adds a handler for an action
func (d *ActionDispatcher) Register(action string, handler ActionHandler) {
	d.handlers[action] = handler
}

// Dispatch executes the handler for a given action
func (d *ActionDispatcher) Dispatch(action string, msg tea.KeyPressMsg, e *app.Editor) (*app.Editor, tea.Cmd) {
	if handler, ok := d.handlers[action]; ok {
		return handler(msg, e)
	}
	return e, nil
}

// HasAction checks if an action has a registered handler
func (d *ActionDispatcher) HasAction(action string) bool {
	_, ok := d.handlers[action]
	return ok
}

// Actions returns the number of registered actions.
func (d *ActionDispatcher) Actions() int {
	return len(d.handlers)
}

// Global action dispatcher instance
var globalDispatcher = NewActionDispatcher()

// GetDispatcher returns the global action dispatcher
func GetDispatcher() *ActionDispatcher {
	return globalDispatcher
}

// scrollFraction is how much of the viewport one scroll key moves.
const scrollFraction = 0.25

// ============================================================================
// Transport Action Handlers
// ============================================================================

func handlePlayPause(_ tea.KeyPressMsg, e *app.Editor) (*app.Editor, tea.Cmd) {
	e.Transport.TogglePlayback()
	return e, nil
}

func makeFrameStepHandler(n int) ActionHandler {
	return func(_ tea.KeyPressMsg, e *app.Editor) (*app.Editor, tea.Cmd) {
		e.Transport.StepFrames(n)
		e.SeekTo(e.Transport.Position)
		return e, nil
	}
}

func makeSecondStepHandler(dir float64) ActionHandler {
	return func(_ tea.KeyPressMsg, e *app.Editor) (*app.Editor, tea.Cmd) {
		e.SeekTo(e.Playhead() + dir)
		return e, nil
	}
}

func handleGoStart(_ tea.KeyPressMsg, e *app.Editor) (*app.Editor, tea.Cmd) {
	e.SeekTo(0)
	return e, nil
}

func handleGoEnd(_ tea.KeyPressMsg, e *app.Editor) (*app.Editor, tea.Cmd) {
	e.SeekTo(e.Sequence.Duration())
	return e, nil
}

// ============================================================================
// Navigation Action Handlers
// ============================================================================

func makeMarkerHandler(dir int) ActionHandler {
	return func(_ tea.KeyPressMsg, e *app.Editor) (*app.Editor, tea.Cmd) {
		e.GoToMarker(dir)
		return e, nil
	}
}

func makeScrollHandler(fraction float64) ActionHandler {
	return func(_ tea.KeyPressMsg, e *app.Editor) (*app.Editor, tea.Cmd) {
		e.ScrollBy(fraction)
		return e, nil
	}
}

func makeTrackFocusHandler(dir int) ActionHandler {
	return func(_ tea.KeyPressMsg, e *app.Editor) (*app.Editor, tea.Cmd) {
		e.SetFocusedTrack(e.FocusedTrack + dir)
		return e, nil
	}
}

func handleCenter(_ tea.KeyPressMsg, e *app.Editor) (*app.Editor, tea.Cmd) {
	e.Viewport.ScrollToTime(e.Playhead())
	return e, nil
}

// ============================================================================
// View Action Handlers
// ============================================================================

func makeZoomHandler(in bool) ActionHandler {
	return func(_ tea.KeyPressMsg, e *app.Editor) (*app.Editor, tea.Cmd) {
		e.ZoomBy(in)
		return e, nil
	}
}

func handleFit(_ tea.KeyPressMsg, e *app.Editor) (*app.Editor, tea.Cmd) {
	e.FitSequence()
	return e, nil
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}

func handleToggleFollow(_ tea.KeyPressMsg, e *app.Editor) (*app.Editor, tea.Cmd) {
	e.FollowEnabled = !e.FollowEnabled
	e.ShowNotification("Follow playhead "+onOff(e.FollowEnabled), "info", config.NotificationDuration)
	return e, nil
}

func handleToggleSnap(_ tea.KeyPressMsg, e *app.Editor) (*app.Editor, tea.Cmd) {
	e.SnapEnabled = !e.SnapEnabled
	e.ShowNotification("Snapping "+onOff(e.SnapEnabled), "info", config.NotificationDuration)
	return e, nil
}

func handleToggleGrid(_ tea.KeyPressMsg, e *app.Editor) (*app.Editor, tea.Cmd) {
	e.GridEnabled = !e.GridEnabled
	e.ShowNotification("Grid snapping "+onOff(e.GridEnabled), "info", config.NotificationDuration)
	return e, nil
}

// ============================================================================
// Editing Action Handlers
// ============================================================================

func handleAddMarker(_ tea.KeyPressMsg, e *app.Editor) (*app.Editor, tea.Cmd) {
	m := e.DropMarker(e.Playhead(), "")
	e.ShowNotification(fmt.Sprintf("Added %s at %s", m.Label, export.Timecode(m.Time, e.FPS())), "success", config.NotificationDuration)
	return e, nil
}

// handleCancelDrag abandons a gesture, or clears the selection when none is
// active.
func handleCancelDrag(_ tea.KeyPressMsg, e *app.Editor) (*app.Editor, tea.Cmd) {
	if e.Gesturing() {
		e.CancelGesture()
		return e, nil
	}
	e.SelectedClipID = ""
	return e, nil
}

func makeCycleClipHandler(dir int) ActionHandler {
	return func(_ tea.KeyPressMsg, e *app.Editor) (*app.Editor, tea.Cmd) {
		e.CycleClip(dir)
		return e, nil
	}
}

// handleCopyTimecode copies the playhead timecode. SSH sessions copy through
// the remote terminal with OSC 52 instead of the host clipboard.
func handleCopyTimecode(_ tea.KeyPressMsg, e *app.Editor) (*app.Editor, tea.Cmd) {
	tc := export.Timecode(e.Playhead(), e.FPS())
	if e.IsSSHMode {
		e.ShowNotification("Copied "+tc, "success", config.NotificationDuration)
		return e, tea.SetClipboard(tc)
	}
	if _, err := export.CopyTimecode(e.Playhead(), e.FPS()); err != nil {
		e.ShowNotification(fmt.Sprintf("Copy failed: %v", err), "error", config.NotificationDuration)
		return e, nil
	}
	e.ShowNotification("Copied "+tc, "success", config.NotificationDuration)
	return e, nil
}

// handleCopyEDL copies the focused track as a CMX 3600 EDL.
func handleCopyEDL(_ tea.KeyPressMsg, e *app.Editor) (*app.Editor, tea.Cmd) {
	if e.IsSSHMode {
		edl, err := export.GenerateEDL(e.Sequence, e.FocusedTrack)
		if err != nil {
			e.ShowNotification(fmt.Sprintf("EDL failed: %v", err), "error", config.NotificationDuration)
			return e, nil
		}
		e.ShowNotification("Copied EDL", "success", config.NotificationDuration)
		return e, tea.SetClipboard(edl)
	}
	if err := export.CopyEDL(e.Sequence, e.FocusedTrack); err != nil {
		e.ShowNotification(fmt.Sprintf("EDL failed: %v", err), "error", config.NotificationDuration)
		return e, nil
	}
	e.ShowNotification("Copied EDL", "success", config.NotificationDuration)
	return e, nil
}

func handleToggleMute(_ tea.KeyPressMsg, e *app.Editor) (*app.Editor, tea.Cmd) {
	e.ToggleMute()
	return e, nil
}

func handleToggleLock(_ tea.KeyPressMsg, e *app.Editor) (*app.Editor, tea.Cmd) {
	e.ToggleLock()
	return e, nil
}

// ============================================================================
// System Action Handlers
// ============================================================================

func handleToggleHelp(_ tea.KeyPressMsg, e *app.Editor) (*app.Editor, tea.Cmd) {
	e.ShowHelp = !e.ShowHelp
	e.HelpScrollOffset = 0
	return e, nil
}

func handleToggleLogs(_ tea.KeyPressMsg, e *app.Editor) (*app.Editor, tea.Cmd) {
	wasShowing := e.ShowLogs
	e.ShowLogs = !e.ShowLogs
	if e.ShowLogs && !wasShowing {
		// Opening the log viewer - log the message first
		e.LogInfo("Log viewer opened")
	}
	return e, nil
}

func handleQuit(_ tea.KeyPressMsg, e *app.Editor) (*app.Editor, tea.Cmd) {
	e.Cleanup()
	return e, tea.Quit
}
