package input

import (
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/Gaurav-Gosain/tuicut/internal/config"
	"github.com/Gaurav-Gosain/tuicut/internal/pointer"
)

func TestPointerConversion(t *testing.T) {
	tests := []struct {
		name       string
		mouse      tea.Mouse
		wantButton pointer.Button
		wantMod    pointer.Mod
	}{
		{"left", tea.Mouse{X: 3, Y: 4, Button: tea.MouseLeft}, pointer.ButtonLeft, 0},
		{"right with shift", tea.Mouse{Button: tea.MouseRight, Mod: tea.ModShift}, pointer.ButtonRight, pointer.ModShift},
		{"middle with ctrl+alt", tea.Mouse{Button: tea.MouseMiddle, Mod: tea.ModCtrl | tea.ModAlt}, pointer.ButtonMiddle, pointer.ModCtrl | pointer.ModAlt},
		{"super maps to meta", tea.Mouse{Button: tea.MouseNone, Mod: tea.ModSuper}, pointer.ButtonNone, pointer.ModMeta},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev := pointerEvent(tt.mouse)
			if ev.Button != tt.wantButton {
				t.Errorf("Button = %v, want %v", ev.Button, tt.wantButton)
			}
			if ev.Mod != tt.wantMod {
				t.Errorf("Mod = %v, want %v", ev.Mod, tt.wantMod)
			}
			if ev.X != float64(tt.mouse.X) || ev.Y != float64(tt.mouse.Y) {
				t.Errorf("position = (%v, %v)", ev.X, ev.Y)
			}
		})
	}
}

func TestWheelEvent(t *testing.T) {
	tests := []struct {
		button         tea.MouseButton
		wantDX, wantDY float64
	}{
		{tea.MouseWheelUp, 0, -config.DefaultWheelDelta},
		{tea.MouseWheelDown, 0, config.DefaultWheelDelta},
		{tea.MouseWheelLeft, -config.DefaultWheelDelta, 0},
		{tea.MouseWheelRight, config.DefaultWheelDelta, 0},
	}
	for _, tt := range tests {
		ev := wheelEvent(tea.Mouse{Button: tt.button})
		if ev.DeltaX != tt.wantDX || ev.DeltaY != tt.wantDY {
			t.Errorf("%v: delta = (%v, %v), want (%v, %v)", tt.button, ev.DeltaX, ev.DeltaY, tt.wantDX, tt.wantDY)
		}
	}
}

func TestMouseDragMovesClip(t *testing.T) {
	e := newTestEditor(t)
	e.SnapEnabled = false
	e.GridEnabled = false

	// V1 "interview" starts at 6s; at 4 cells per second it spans
	// columns 38-109 and the first track row is y=2.
	clip := e.Sequence.Tracks[0].Clips[1]

	HandleInput(tea.MouseClickMsg{X: 60, Y: 2, Button: tea.MouseLeft}, e)
	if !e.Drag.Dragging() {
		t.Fatal("press on clip body did not start a drag")
	}
	if e.SelectedClipID != clip.ID {
		t.Errorf("selected %q, want %q", e.SelectedClipID, clip.ID)
	}

	HandleInput(tea.MouseMotionMsg{X: 68, Y: 2, Button: tea.MouseLeft}, e)
	if clip.TimelineIn != 6 {
		t.Error("clip moved before release")
	}

	HandleInput(tea.MouseReleaseMsg{X: 68, Y: 2, Button: tea.MouseLeft}, e)
	if e.Drag.Dragging() {
		t.Error("drag still active after release")
	}
	if clip.TimelineIn != 8 {
		t.Errorf("TimelineIn = %v, want 8", clip.TimelineIn)
	}
}

func TestEscCancelsDrag(t *testing.T) {
	e := newTestEditor(t)
	e.SnapEnabled = false
	e.GridEnabled = false
	clip := e.Sequence.Tracks[0].Clips[1]

	HandleInput(tea.MouseClickMsg{X: 60, Y: 2, Button: tea.MouseLeft}, e)
	HandleInput(tea.MouseMotionMsg{X: 80, Y: 2, Button: tea.MouseLeft}, e)
	HandleInput(tea.KeyPressMsg{Code: tea.KeyEscape}, e)
	HandleInput(tea.MouseReleaseMsg{X: 80, Y: 2, Button: tea.MouseLeft}, e)

	if clip.TimelineIn != 6 {
		t.Errorf("cancelled drag committed: TimelineIn = %v", clip.TimelineIn)
	}
}

func TestRulerClickScrubs(t *testing.T) {
	e := newTestEditor(t)
	e.SnapEnabled = false
	e.GridEnabled = false

	x := config.HeaderWidth + 40
	HandleInput(tea.MouseClickMsg{X: x, Y: 0, Button: tea.MouseLeft}, e)
	if !e.Scrub.Scrubbing() {
		t.Fatal("ruler press did not start a scrub")
	}
	if e.Playhead() != 10 {
		t.Errorf("playhead = %v, want 10", e.Playhead())
	}

	HandleInput(tea.MouseMotionMsg{X: x + 8, Y: 10, Button: tea.MouseLeft}, e)
	HandleInput(tea.MouseReleaseMsg{X: x + 8, Y: 10, Button: tea.MouseLeft}, e)
	if e.Playhead() != 12 {
		t.Errorf("playhead = %v, want 12", e.Playhead())
	}
	if e.Scrub.Scrubbing() {
		t.Error("scrub still active after release")
	}
}

func TestCtrlWheelZooms(t *testing.T) {
	e := newTestEditor(t)
	before := e.Viewport.State().Zoom
	HandleInput(tea.MouseWheelMsg{X: 40, Y: 3, Button: tea.MouseWheelUp, Mod: tea.ModCtrl}, e)
	if e.Viewport.State().Zoom <= before {
		t.Errorf("zoom = %v, want > %v", e.Viewport.State().Zoom, before)
	}
}
