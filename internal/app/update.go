package app

import (
	"fmt"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/Gaurav-Gosain/tuicut/internal/config"
	"github.com/Gaurav-Gosain/tuicut/internal/tape"
)

// TickerMsg represents a periodic tick event for updating the UI.
// This is exported so it can be used by the input package.
type TickerMsg time.Time

// ScriptCommandMsg represents a command from a tape script to be executed.
// This allows tape commands to be processed through the normal message handling flow.
type ScriptCommandMsg struct {
	Command *tape.Command
}

// ScriptFinishedMsg is sent once the last tape command has run.
type ScriptFinishedMsg struct{}

// InputHandler is a function type that handles input messages.
// This allows the Update method to delegate to the input package without creating a circular dependency.
type InputHandler func(msg tea.Msg, e *Editor) (tea.Model, tea.Cmd)

// inputHandler is the registered input handler function.
// This will be set by the main package to break the circular dependency.
var inputHandler InputHandler

// SetInputHandler registers the input handler function.
// This must be called during initialization before the Update loop runs.
func SetInputHandler(handler InputHandler) {
	inputHandler = handler
}

// Init starts the tick loop.
func (e *Editor) Init() tea.Cmd {
	return TickCmd()
}

// TickCmd creates a command that generates tick messages at 60 FPS.
// This drives playback, playhead follow and script playback.
func TickCmd() tea.Cmd {
	return tea.Tick(time.Second/config.NormalFPS, func(t time.Time) tea.Msg {
		return TickerMsg(t)
	})
}

// LoadScript arms a tape for playback on the next ticks.
func (e *Editor) LoadScript(cmds []tape.Command) {
	e.ScriptPlayer = tape.NewPlayer(cmds)
	e.ScriptExecutor = tape.NewCommandExecutor(e)
	e.ScriptMode = true
	e.ScriptPaused = false
	e.ScriptSleepUntil = time.Time{}
	e.ScriptFinishedTime = time.Time{}
	e.LogInfo("Loaded tape with %d commands", len(cmds))
}

// Update handles all incoming messages and updates the application state.
func (e *Editor) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case TickerMsg:
		return e, e.tick(time.Time(msg))

	case tea.WindowSizeMsg:
		first := !e.Viewport.Bound()
		e.Resize(msg.Width, msg.Height)
		if first && e.FitOnOpen {
			e.FitSequence()
		}
		return e, nil

	case ScriptCommandMsg:
		if msg.Command == nil || e.ScriptExecutor == nil {
			return e, nil
		}
		if err := e.ScriptExecutor.Execute(msg.Command); err != nil {
			e.LogError("Tape line %d (%s): %v", msg.Command.Line, msg.Command.Type, err)
		}
		return e, nil

	case ScriptFinishedMsg:
		e.ShowNotification("Tape finished", "success", config.NotificationDuration)
		return e, nil
	}

	if inputHandler != nil {
		if e.TapeRecorder != nil {
			e.TapeRecorder.RecordMsg(msg)
		}
		return inputHandler(msg, e)
	}
	return e, nil
}

// tick advances playback and the tape player.
func (e *Editor) tick(now time.Time) tea.Cmd {
	e.CleanupNotifications()

	if e.Transport.Advance(now) && e.FollowEnabled && !e.Gesturing() {
		e.Viewport.Follow(e.Transport.Position)
	}

	cmds := []tea.Cmd{TickCmd()}
	if e.ScriptMode && !e.ScriptPaused && e.ScriptPlayer != nil {
		if cmd := e.stepScript(now); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	if len(cmds) > 1 {
		return tea.Sequence(cmds...)
	}
	return cmds[0]
}

// stepScript releases at most one tape command per tick.
func (e *Editor) stepScript(now time.Time) tea.Cmd {
	player := e.ScriptPlayer
	if player.IsFinished() {
		if e.ScriptFinishedTime.IsZero() {
			e.ScriptFinishedTime = now
			return func() tea.Msg { return ScriptFinishedMsg{} }
		}
		return nil
	}

	// Check if we're waiting for a sleep to finish
	if !e.ScriptSleepUntil.IsZero() && now.Before(e.ScriptSleepUntil) {
		return nil
	}
	e.ScriptSleepUntil = time.Time{}

	next := player.NextCommand()
	if next == nil {
		return nil
	}
	player.Advance()
	if next.Type == tape.CommandTypeSleep && next.Delay > 0 {
		e.ScriptSleepUntil = now.Add(next.Delay)
		return nil
	}
	return func() tea.Msg { return ScriptCommandMsg{Command: next} }
}

// ScriptStatus describes tape progress for the status bar.
func (e *Editor) ScriptStatus() string {
	if !e.ScriptMode || e.ScriptPlayer == nil {
		return ""
	}
	done, total := e.ScriptPlayer.Progress()
	if e.ScriptPaused {
		return fmt.Sprintf("TAPE %d/%d paused", done, total)
	}
	return fmt.Sprintf("TAPE %d/%d", done, total)
}
