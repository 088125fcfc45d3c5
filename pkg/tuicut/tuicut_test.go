package tuicut

import (
	"math"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/Gaurav-Gosain/tuicut/internal/config"
	"github.com/Gaurav-Gosain/tuicut/internal/pointer"
)

type fakePTY struct{ w, h int }

func (p fakePTY) Width() int  { return p.w }
func (p fakePTY) Height() int { return p.h }

func TestNewAppliesOptions(t *testing.T) {
	m := New(
		WithUserConfig(config.DefaultConfig()),
		WithSnapping(false),
		WithZoom(8),
		WithSSHMode(true),
	)
	if m.SnapEnabled {
		t.Error("snapping still enabled")
	}
	if m.FitOnOpen {
		t.Error("explicit zoom should disable fit-on-open")
	}
	if got := m.Viewport.State().Zoom; got != 8 {
		t.Errorf("Zoom = %v, want 8", got)
	}
	if !m.IsSSHMode {
		t.Error("SSH mode not set")
	}
}

func TestNewForPTYFits(t *testing.T) {
	m := NewForPTY(fakePTY{120, 30}, WithUserConfig(config.DefaultConfig()))
	if m.Width != 120 || m.Height != 30 {
		t.Fatalf("size = %dx%d", m.Width, m.Height)
	}
	want := float64(120-config.HeaderWidth) / m.Sequence.Duration()
	if got := m.Viewport.State().Zoom; math.Abs(got-want) > 1e-9 {
		t.Errorf("Zoom = %v, want %v", got, want)
	}
}

func TestFilterMouseMotion(t *testing.T) {
	m := NewForPTY(fakePTY{120, 30}, WithUserConfig(config.DefaultConfig()))
	motion := tea.MouseMotionMsg{X: 50, Y: 2}

	if got := FilterMouseMotion(m, motion); got != nil {
		t.Error("idle motion passed the filter")
	}
	if got := FilterMouseMotion(m, tea.MouseClickMsg{X: 50, Y: 2}); got == nil {
		t.Error("click was filtered")
	}

	m.PointerPress(pointer.Event{X: float64(config.HeaderWidth + 10), Y: 0, Button: pointer.ButtonLeft})
	if got := FilterMouseMotion(m, motion); got == nil {
		t.Error("motion filtered during a scrub")
	}
}
