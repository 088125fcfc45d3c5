package input

import (
	tea "charm.land/bubbletea/v2"

	"github.com/Gaurav-Gosain/tuicut/internal/app"
	"github.com/Gaurav-Gosain/tuicut/internal/config"
	"github.com/Gaurav-Gosain/tuicut/internal/pointer"
)

// pointerEvent converts a terminal mouse event to a pointer event. Cells are
// the pixel unit of the engine.
func pointerEvent(m tea.Mouse) pointer.Event {
	return pointer.Event{
		X:      float64(m.X),
		Y:      float64(m.Y),
		Button: pointerButton(m.Button),
		Mod:    pointerMod(m.Mod),
	}
}

func pointerButton(b tea.MouseButton) pointer.Button {
	switch b {
	case tea.MouseLeft:
		return pointer.ButtonLeft
	case tea.MouseMiddle:
		return pointer.ButtonMiddle
	case tea.MouseRight:
		return pointer.ButtonRight
	}
	return pointer.ButtonNone
}

func pointerMod(m tea.KeyMod) pointer.Mod {
	var out pointer.Mod
	if m.Contains(tea.ModShift) {
		out |= pointer.ModShift
	}
	if m.Contains(tea.ModCtrl) {
		out |= pointer.ModCtrl
	}
	if m.Contains(tea.ModAlt) {
		out |= pointer.ModAlt
	}
	if m.Contains(tea.ModMeta) || m.Contains(tea.ModSuper) {
		out |= pointer.ModMeta
	}
	return out
}

// overlayOpen reports whether a modal overlay swallows clicks.
func overlayOpen(e *app.Editor) bool {
	return e.ShowHelp || e.ShowLogs
}

func handleMouseClick(msg tea.MouseClickMsg, e *app.Editor) (*app.Editor, tea.Cmd) {
	if overlayOpen(e) {
		return e, nil
	}
	e.PointerPress(pointerEvent(msg.Mouse()))
	return e, nil
}

func handleMouseMotion(msg tea.MouseMotionMsg, e *app.Editor) (*app.Editor, tea.Cmd) {
	e.PointerMove(pointerEvent(msg.Mouse()))
	return e, nil
}

func handleMouseRelease(msg tea.MouseReleaseMsg, e *app.Editor) (*app.Editor, tea.Cmd) {
	e.PointerRelease(pointerEvent(msg.Mouse()))
	return e, nil
}

// wheelEvent converts one wheel notch to a pointer wheel event.
func wheelEvent(m tea.Mouse) pointer.WheelEvent {
	ev := pointer.WheelEvent{
		X:   float64(m.X),
		Y:   float64(m.Y),
		Mod: pointerMod(m.Mod),
	}
	switch m.Button {
	case tea.MouseWheelUp:
		ev.DeltaY = -config.DefaultWheelDelta
	case tea.MouseWheelDown:
		ev.DeltaY = config.DefaultWheelDelta
	case tea.MouseWheelLeft:
		ev.DeltaX = -config.DefaultWheelDelta
	case tea.MouseWheelRight:
		ev.DeltaX = config.DefaultWheelDelta
	}
	return ev
}

// handleMouseWheel scrolls an open overlay, otherwise the timeline.
func handleMouseWheel(msg tea.MouseWheelMsg, e *app.Editor) (*app.Editor, tea.Cmd) {
	m := msg.Mouse()
	step := 0
	switch m.Button {
	case tea.MouseWheelUp:
		step = -1
	case tea.MouseWheelDown:
		step = 1
	}

	switch {
	case e.ShowLogs:
		e.LogScrollOffset = max(e.LogScrollOffset+step, 0)
		return e, nil
	case e.ShowHelp:
		e.HelpScrollOffset = max(e.HelpScrollOffset+step, 0)
		return e, nil
	}

	e.Wheel(wheelEvent(m))
	return e, nil
}
