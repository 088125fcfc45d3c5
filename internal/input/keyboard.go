package input

import (
	tea "charm.land/bubbletea/v2"

	"github.com/Gaurav-Gosain/tuicut/internal/app"
	"github.com/Gaurav-Gosain/tuicut/internal/config"
)

// HandleKeyPress routes a key to the open overlay, or to the action bound
// to it.
func HandleKeyPress(msg tea.KeyPressMsg, e *app.Editor) (tea.Model, tea.Cmd) {
	key := msg.String()

	if key == "ctrl+c" {
		e.Cleanup()
		return e, tea.Quit
	}
	// Tape playback is paused with a fixed key so a tape cannot rebind it
	if key == "ctrl+p" && e.ScriptMode {
		e.ScriptPaused = !e.ScriptPaused
		if e.ScriptPaused {
			e.ShowNotification("Tape paused", "info", config.NotificationDuration)
		} else {
			e.ShowNotification("Tape resumed", "info", config.NotificationDuration)
		}
		return e, nil
	}
	if e.ShowLogs {
		return handleLogViewerKey(key, e)
	}
	if e.ShowHelp {
		return handleHelpKey(key, e)
	}

	action := e.KeybindRegistry.GetAction(key)
	if action == "" {
		return e, nil
	}
	dispatcher := GetDispatcher()
	if !dispatcher.HasAction(action) {
		e.LogWarn("No handler for action %q", action)
		return e, nil
	}
	return dispatcher.Dispatch(action, msg, e)
}

// handleHelpKey scrolls or closes the help overlay.
func handleHelpKey(key string, e *app.Editor) (tea.Model, tea.Cmd) {
	switch key {
	case "?", "esc", "q":
		e.ShowHelp = false
		e.HelpScrollOffset = 0
	case "j", "down":
		e.HelpScrollOffset = min(e.HelpScrollOffset+1, max(e.HelpLineCount()-1, 0))
	case "k", "up":
		e.HelpScrollOffset = max(e.HelpScrollOffset-1, 0)
	case "g", "home":
		e.HelpScrollOffset = 0
	}
	return e, nil
}

// handleLogViewerKey scrolls or closes the log viewer.
func handleLogViewerKey(key string, e *app.Editor) (tea.Model, tea.Cmd) {
	if e.KeybindRegistry.GetAction(key) == "toggle_logs" {
		e.ShowLogs = false
		return e, nil
	}
	switch key {
	case "esc", "q":
		e.ShowLogs = false
	case "j", "down":
		e.LogScrollOffset = min(e.LogScrollOffset+1, max(len(e.LogMessages)-1, 0))
	case "k", "up":
		e.LogScrollOffset = max(e.LogScrollOffset-1, 0)
	case "g", "home":
		e.LogScrollOffset = 0
	case "G", "end":
		// Clamped to the last page when rendered
		e.LogScrollOffset = len(e.LogMessages)
	}
	return e, nil
}
