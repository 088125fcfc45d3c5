// Package app provides the tuicut editor model: the sequence being edited,
// the interaction engine wired to it, and the Bubble Tea update and view.
package app

import (
	"fmt"
	"math"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/Gaurav-Gosain/tuicut/internal/config"
	"github.com/Gaurav-Gosain/tuicut/internal/coord"
	"github.com/Gaurav-Gosain/tuicut/internal/drag"
	"github.com/Gaurav-Gosain/tuicut/internal/logging"
	"github.com/Gaurav-Gosain/tuicut/internal/playback"
	"github.com/Gaurav-Gosain/tuicut/internal/pointer"
	"github.com/Gaurav-Gosain/tuicut/internal/scrub"
	"github.com/Gaurav-Gosain/tuicut/internal/snap"
	"github.com/Gaurav-Gosain/tuicut/internal/tape"
	"github.com/Gaurav-Gosain/tuicut/internal/timeline"
	"github.com/Gaurav-Gosain/tuicut/internal/viewport"
)

// Editor is the tuicut application state.
type Editor struct {
	Sequence  *timeline.Sequence
	Transport *playback.Transport
	Viewport  *viewport.Controller
	Snaps     *snap.Index
	Bus       *pointer.Bus
	Drag      *drag.Controller
	Scrub     *scrub.Controller
	Config    *config.UserConfig
	Logger    *log.Logger

	Width  int
	Height int

	SelectedClipID string
	FocusedTrack   int
	TrackScroll    int // first track row on screen
	ActiveSnap     *snap.Point // snap target shown as a guide line
	SnapEnabled    bool
	GridEnabled    bool
	FollowEnabled  bool
	FitOnOpen      bool // fit the sequence to the first window size

	// Clip under the last press, read by the drag parameters
	pressedClip  *timeline.Clip
	pressedTrack int

	LastMouseX int
	LastMouseY int

	ShowHelp         bool
	HelpScrollOffset int
	ShowLogs         bool
	LogMessages      []LogMessage
	LogScrollOffset  int
	Notifications    []Notification

	// Keybind registry for user-configurable keybindings
	KeybindRegistry *config.KeybindRegistry

	// Tape scripting support
	ScriptPlayer       *tape.Player
	ScriptMode         bool
	ScriptPaused       bool
	ScriptExecutor     *tape.CommandExecutor
	ScriptSleepUntil   time.Time
	ScriptFinishedTime time.Time
	TapeRecorder       *tape.Recorder

	// SSH and web sessions run one editor each
	IsSSHMode bool
}

// Notification represents a temporary notification message.
type Notification struct {
	ID        string
	Message   string
	Type      string // "info", "success", "warning", "error"
	StartTime time.Time
	Duration  time.Duration
}

// LogMessage represents a log entry with timestamp and level.
type LogMessage struct {
	Time    time.Time
	Level   string // INFO, WARN, ERROR
	Message string
}

// NewEditor wires the interaction engine to seq. A nil cfg uses the default
// configuration and a nil logger discards structured logs.
func NewEditor(seq *timeline.Sequence, cfg *config.UserConfig, logger *log.Logger) *Editor {
	if seq == nil {
		seq = timeline.Demo()
	}
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if logger == nil {
		logger = logging.Discard()
	}
	fps := seq.FPS
	if fps <= 0 {
		fps = cfg.Timeline.FPS
	}

	e := &Editor{
		Sequence:        seq,
		Transport:       playback.New(seq.Duration(), fps),
		Viewport:        viewport.New(cfg.ViewportConfig(), cfg.Timeline.DefaultZoom),
		Snaps:           snap.NewIndex(cfg.SnapConfig()),
		Bus:             pointer.NewBus(),
		Config:          cfg,
		Logger:          logging.WithComponent(logger, "editor"),
		SnapEnabled:     cfg.SnappingEnabled(),
		GridEnabled:     cfg.Snapping.Grid,
		FollowEnabled:   cfg.FollowEnabled(),
		KeybindRegistry: config.NewKeybindRegistry(cfg),
	}
	e.Viewport.SetDuration(seq.Duration())

	e.Drag = drag.NewController(e.Bus, e.dragParams, drag.Callbacks{
		OnDragStart:  e.onDragStart,
		OnDrag:       e.onDrag,
		OnDragEnd:    e.onDragEnd,
		OnSnapChange: e.onSnapChange,
	})
	e.Scrub = scrub.NewController(e.Bus, e.Transport, e.timeAt, scrub.Options{
		OnSnapChange: e.onSnapChange,
	})
	return e
}

func createID() string {
	return uuid.New().String()
}

// Log adds a new log message to the log buffer.
func (e *Editor) Log(level, format string, args ...any) {
	message := fmt.Sprintf(format, args...)
	e.LogMessages = append(e.LogMessages, LogMessage{
		Time:    time.Now(),
		Level:   level,
		Message: message,
	})
	if len(e.LogMessages) > config.MaxLogMessages {
		e.LogMessages = e.LogMessages[len(e.LogMessages)-config.MaxLogMessages:]
	}

	if config.DebugLogging {
		switch level {
		case "ERROR":
			e.Logger.Error(message)
		case "WARN":
			e.Logger.Warn(message)
		default:
			e.Logger.Info(message)
		}
	}

	// Sticky scroll: stay pinned to the newest entry
	if e.ShowLogs {
		e.LogScrollOffset = max(len(e.LogMessages)-e.logsPerPage(), 0)
	}
}

// LogInfo logs an informational message.
func (e *Editor) LogInfo(format string, args ...any) {
	e.Log("INFO", format, args...)
}

// LogWarn logs a warning message.
func (e *Editor) LogWarn(format string, args ...any) {
	e.Log("WARN", format, args...)
}

// LogError logs an error message.
func (e *Editor) LogError(format string, args ...any) {
	e.Log("ERROR", format, args...)
}

// ShowNotification displays a temporary notification in the status bar.
func (e *Editor) ShowNotification(message, notifType string, duration time.Duration) {
	e.Notifications = append(e.Notifications, Notification{
		ID:        createID(),
		Message:   message,
		Type:      notifType,
		StartTime: time.Now(),
		Duration:  duration,
	})

	switch notifType {
	case "error":
		e.LogError("%s", message)
	case "warning":
		e.LogWarn("%s", message)
	default:
		e.LogInfo("%s", message)
	}
}

// CleanupNotifications removes expired notifications.
func (e *Editor) CleanupNotifications() {
	now := time.Now()
	var active []Notification
	for _, n := range e.Notifications {
		if now.Sub(n.StartTime) < n.Duration {
			active = append(active, n)
		}
	}
	e.Notifications = active
}

// Resize records a new terminal size and rebinds the tracks area.
func (e *Editor) Resize(width, height int) {
	e.Width = width
	e.Height = height
	e.Viewport.SetViewportWidth(float64(e.Layout().TracksWidth()))
	e.revealTrack(e.FocusedTrack)
}

// Transform returns the current screen/time mapping.
func (e *Editor) Transform() coord.Transform {
	return e.Viewport.Transform(float64(config.HeaderWidth))
}

// container is nil until the editor has been sized.
func (e *Editor) container() *coord.Container {
	if e.Width <= config.HeaderWidth {
		return nil
	}
	return &coord.Container{Left: 0, Width: float64(e.Width)}
}

// Playhead returns the playhead time in seconds.
func (e *Editor) Playhead() float64 {
	return e.Transport.Position
}

// FocusedTrackPtr returns the focused track, or nil for an empty sequence.
func (e *Editor) FocusedTrackPtr() *timeline.Track {
	if e.FocusedTrack < 0 || e.FocusedTrack >= len(e.Sequence.Tracks) {
		return nil
	}
	return e.Sequence.Tracks[e.FocusedTrack]
}

// SelectedClip returns the selected clip, or nil.
func (e *Editor) SelectedClip() *timeline.Clip {
	if e.SelectedClipID == "" {
		return nil
	}
	c, _ := e.Sequence.FindClip(e.SelectedClipID)
	return c
}

// SeekTo moves the playhead and keeps it on screen.
func (e *Editor) SeekTo(sec float64) {
	e.Transport.Seek(sec)
	if e.FollowEnabled {
		e.Viewport.Follow(e.Transport.Position)
	}
}

// SetFocusedTrack moves track focus, clamped to the existing tracks, and
// scrolls the focused track into view.
func (e *Editor) SetFocusedTrack(idx int) {
	if len(e.Sequence.Tracks) == 0 {
		e.FocusedTrack, e.TrackScroll = 0, 0
		return
	}
	e.FocusedTrack = max(0, min(idx, len(e.Sequence.Tracks)-1))
	e.revealTrack(e.FocusedTrack)
}

// CycleClip selects the next (dir > 0) or previous clip on the focused
// track in timeline order, and moves the playhead to its start.
func (e *Editor) CycleClip(dir int) {
	track := e.FocusedTrackPtr()
	if track == nil || len(track.Clips) == 0 {
		return
	}
	idx := -1
	for i, c := range track.Clips {
		if c.ID == e.SelectedClipID {
			idx = i
			break
		}
	}
	switch {
	case idx < 0 && dir < 0:
		idx = len(track.Clips) - 1
	case idx < 0:
		idx = 0
	default:
		idx = (idx + dir + len(track.Clips)) % len(track.Clips)
	}
	c := track.Clips[idx]
	e.SelectedClipID = c.ID
	e.SeekTo(c.TimelineIn)
}

// ToggleMute flips the mute flag of the focused track.
func (e *Editor) ToggleMute() {
	if t := e.FocusedTrackPtr(); t != nil {
		t.Muted = !t.Muted
		e.LogInfo("Track %s muted=%v", t.Name, t.Muted)
	}
}

// ToggleLock flips the lock flag of the focused track.
func (e *Editor) ToggleLock() {
	if t := e.FocusedTrackPtr(); t != nil {
		t.Locked = !t.Locked
		e.LogInfo("Track %s locked=%v", t.Name, t.Locked)
	}
}

// DropMarker adds a generic marker at sec.
func (e *Editor) DropMarker(sec float64, label string) *timeline.Marker {
	if label == "" {
		label = fmt.Sprintf("Marker %d", len(e.Sequence.Markers)+1)
	}
	m := e.Sequence.AddMarker(math.Max(sec, 0), label, timeline.MarkerGeneric)
	e.LogInfo("Added marker %q at %.3fs", m.Label, m.Time)
	return m
}

// FitSequence zooms so the whole sequence fills the tracks area.
func (e *Editor) FitSequence() {
	e.Viewport.FitToWindow(e.Sequence.Duration(), float64(e.Layout().TracksWidth()))
}

// ZoomBy zooms one step around the playhead when cursor-preserving zoom is
// on, otherwise around the left edge.
func (e *Editor) ZoomBy(in bool) {
	cfg := e.Viewport.Config()
	if !cfg.CursorPreserving {
		if in {
			e.Viewport.ZoomIn()
		} else {
			e.Viewport.ZoomOut()
		}
		return
	}
	factor := cfg.ZoomStep
	if !in {
		factor = 1 / factor
	}
	anchor := e.Transform().TimeToScreen(e.Playhead()) - float64(config.HeaderWidth)
	anchor = coord.Clamp(anchor, 0, e.Viewport.State().ViewportWidth)
	e.Viewport.ZoomAt(factor, anchor)
}

// ScrollBy scrolls the viewport by a fraction of its width.
func (e *Editor) ScrollBy(fraction float64) {
	st := e.Viewport.State()
	e.Viewport.SetScrollX(st.ScrollX + st.ViewportWidth*fraction)
}

// GoToMarker seeks to the next (dir > 0) or previous marker and centres it
// when it is off screen.
func (e *Editor) GoToMarker(dir int) {
	var m *timeline.Marker
	if dir > 0 {
		m = e.Sequence.NextMarker(e.Playhead())
	} else {
		m = e.Sequence.PrevMarker(e.Playhead())
	}
	if m == nil {
		return
	}
	e.Transport.Seek(m.Time)
	if start, end := e.Viewport.VisibleRange(); m.Time < start || m.Time > end {
		e.Viewport.ScrollToTime(m.Time)
	}
}

// CancelGesture abandons any drag or scrub without committing it.
func (e *Editor) CancelGesture() {
	if e.Drag.Dragging() {
		e.Drag.Close()
		e.LogInfo("Drag cancelled")
	}
	e.Scrub.Close()
	e.pressedClip = nil
	e.ActiveSnap = nil
}

// Cleanup ends any active gesture so no bus subscription outlives the
// program.
func (e *Editor) Cleanup() {
	e.CancelGesture()
}
