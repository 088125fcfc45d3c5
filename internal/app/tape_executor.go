package app

import (
	"errors"
	"fmt"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/Gaurav-Gosain/tuicut/internal/coord"
)

// errNoInputHandler is returned when a tape drives input before the input
// package has registered itself.
var errNoInputHandler = errors.New("no input handler registered")

// Dispatch implements tape.Executor by running msg through the input
// handler, exactly as if the terminal had sent it.
func (e *Editor) Dispatch(msg tea.Msg) error {
	if inputHandler == nil {
		return errNoInputHandler
	}
	inputHandler(msg, e)
	return nil
}

// Play implements tape.Executor.
func (e *Editor) Play() error {
	e.Transport.Play(time.Now())
	return nil
}

// Pause implements tape.Executor.
func (e *Editor) Pause() error {
	e.Transport.Pause()
	return nil
}

// Seek implements tape.Executor.
func (e *Editor) Seek(sec float64) error {
	if !coord.Finite(sec) {
		return fmt.Errorf("invalid seek target %v", sec)
	}
	e.SeekTo(sec)
	return nil
}

// SetZoom implements tape.Executor.
func (e *Editor) SetZoom(zoom float64) error {
	if !coord.ValidZoom(zoom) {
		return fmt.Errorf("invalid zoom %v", zoom)
	}
	e.Viewport.SetZoom(zoom)
	return nil
}

// Fit implements tape.Executor.
func (e *Editor) Fit() error {
	if !e.Viewport.Bound() {
		return fmt.Errorf("timeline is not laid out yet")
	}
	e.FitSequence()
	return nil
}

// AddMarker implements tape.Executor.
func (e *Editor) AddMarker(sec float64, label string) error {
	if !coord.Finite(sec) {
		return fmt.Errorf("invalid marker time %v", sec)
	}
	e.DropMarker(sec, label)
	return nil
}
