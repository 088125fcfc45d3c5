// Package input implements tuicut input handling.
//
// Keys are resolved to actions through the keybind registry; mouse messages
// are converted to pointer events and handed to the editor's gestures.
package input

import (
	tea "charm.land/bubbletea/v2"

	"github.com/Gaurav-Gosain/tuicut/internal/app"
)

// HandleInput is the main input coordinator that routes messages to appropriate handlers
func HandleInput(msg tea.Msg, e *app.Editor) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		return HandleKeyPress(msg, e)
	case tea.MouseClickMsg:
		return handleMouseClick(msg, e)
	case tea.MouseMotionMsg:
		return handleMouseMotion(msg, e)
	case tea.MouseReleaseMsg:
		return handleMouseRelease(msg, e)
	case tea.MouseWheelMsg:
		return handleMouseWheel(msg, e)
	case tea.BlurMsg:
		// The release may never arrive once the terminal loses focus.
		if e.Gesturing() {
			e.CancelGesture()
		}
		return e, nil
	}
	return e, nil
}
