// Package viewport manages timeline zoom and horizontal scroll.
package viewport

import (
	"math"

	"github.com/Gaurav-Gosain/tuicut/internal/coord"
	"github.com/Gaurav-Gosain/tuicut/internal/pointer"
)

// Defaults for Config fields left at zero.
const (
	DefaultMinZoom      = 0.5
	DefaultMaxZoom      = 600.0
	DefaultZoomStep     = 1.2
	DefaultFollowMargin = 0.2
)

// Config bounds and tunes viewport changes.
type Config struct {
	MinZoom  float64
	MaxZoom  float64
	ZoomStep float64
	// FollowMargin is the fraction of the viewport width kept between the
	// playhead and either edge while following.
	FollowMargin float64
	// CursorPreserving keeps the time under the cursor fixed while wheel
	// zooming, and scrolls by the vertical wheel delta only.
	CursorPreserving bool
}

func (c Config) withDefaults() Config {
	if !(c.MinZoom > 0) || !coord.Finite(c.MinZoom) {
		c.MinZoom = DefaultMinZoom
	}
	if !(c.MaxZoom >= c.MinZoom) || !coord.Finite(c.MaxZoom) {
		c.MaxZoom = math.Max(DefaultMaxZoom, c.MinZoom)
	}
	if !(c.ZoomStep > 1) || !coord.Finite(c.ZoomStep) {
		c.ZoomStep = DefaultZoomStep
	}
	if !(c.FollowMargin >= 0 && c.FollowMargin < 0.5) {
		c.FollowMargin = DefaultFollowMargin
	}
	return c
}

// State is the current viewport.
type State struct {
	ScrollX       float64 // pixels, never negative
	Zoom          float64 // pixels per second
	ViewportWidth float64 // width of the tracks area in pixels
	Duration      float64 // seconds
}

// Controller owns a viewport State.
type Controller struct {
	cfg      Config
	st       State
	bound    bool
	onChange func(State)
}

// New returns a controller starting at zoom. The tracks area is unbound
// until SetViewportWidth is called with a positive width.
func New(cfg Config, zoom float64) *Controller {
	c := &Controller{cfg: cfg.withDefaults()}
	c.st.Zoom = c.clampZoom(zoom)
	if !coord.ValidZoom(zoom) {
		c.st.Zoom = c.cfg.MinZoom
	}
	return c
}

// OnChange registers a function called after every state change.
func (c *Controller) OnChange(fn func(State)) {
	c.onChange = fn
}

// Config returns the effective configuration.
func (c *Controller) Config() Config { return c.cfg }

// State returns the current viewport.
func (c *Controller) State() State { return c.st }

// Bound reports whether a tracks area is laid out.
func (c *Controller) Bound() bool { return c.bound }

func (c *Controller) clampZoom(z float64) float64 {
	return coord.Clamp(z, c.cfg.MinZoom, c.cfg.MaxZoom)
}

func (c *Controller) set(st State) {
	if st == c.st {
		return
	}
	c.st = st
	if c.onChange != nil {
		c.onChange(st)
	}
}

// SetViewportWidth records the tracks area width. A non-positive width
// unbinds the area.
func (c *Controller) SetViewportWidth(w float64) {
	if !coord.Finite(w) {
		return
	}
	c.bound = w > 0
	st := c.st
	st.ViewportWidth = math.Max(w, 0)
	c.set(st)
}

// SetDuration records the sequence length.
func (c *Controller) SetDuration(d float64) {
	if !coord.Finite(d) || d < 0 {
		return
	}
	st := c.st
	st.Duration = d
	c.set(st)
}

// SetZoom sets the zoom, clamped to the configured bounds.
func (c *Controller) SetZoom(z float64) {
	if !coord.ValidZoom(z) {
		return
	}
	st := c.st
	st.Zoom = c.clampZoom(z)
	c.set(st)
}

// SetScrollX sets the horizontal scroll, clamped at zero.
func (c *Controller) SetScrollX(x float64) {
	if !coord.Finite(x) {
		return
	}
	st := c.st
	st.ScrollX = math.Max(x, 0)
	c.set(st)
}

// ZoomIn zooms in one step, keeping the left edge fixed.
func (c *Controller) ZoomIn() {
	c.SetZoom(c.st.Zoom * c.cfg.ZoomStep)
}

// ZoomOut zooms out one step, keeping the left edge fixed.
func (c *Controller) ZoomOut() {
	c.SetZoom(c.st.Zoom / c.cfg.ZoomStep)
}

// ZoomAt zooms by factor keeping the time under cursorX, measured from the
// left edge of the tracks area, in place.
func (c *Controller) ZoomAt(factor, cursorX float64) {
	if !coord.ValidZoom(factor) || !coord.Finite(cursorX) {
		return
	}
	old := c.st.Zoom
	next := c.clampZoom(old * factor)
	timeAtCursor := (c.st.ScrollX + cursorX) / old

	st := c.st
	st.Zoom = next
	st.ScrollX = math.Max(timeAtCursor*next-cursorX, 0)
	c.set(st)
}

// HandleWheel applies a wheel gesture: ctrl or meta zooms, shift scrolls.
// It returns false when the event is not a viewport gesture.
func (c *Controller) HandleWheel(ev pointer.WheelEvent) bool {
	if !coord.Finite(ev.DeltaX) || !coord.Finite(ev.DeltaY) {
		return false
	}
	switch {
	case ev.Mod.Contains(pointer.ModCtrl) || ev.Mod.Contains(pointer.ModMeta):
		factor := 1 / c.cfg.ZoomStep
		if ev.DeltaY < 0 {
			factor = c.cfg.ZoomStep
		}
		if c.cfg.CursorPreserving {
			c.ZoomAt(factor, ev.X)
		} else {
			c.SetZoom(c.st.Zoom * factor)
		}
		return true
	case ev.Mod.Contains(pointer.ModShift):
		delta := ev.DeltaX + ev.DeltaY
		if c.cfg.CursorPreserving {
			delta = ev.DeltaY
		}
		c.SetScrollX(c.st.ScrollX + delta)
		return true
	}
	return false
}

// FitToWindow zooms so duration seconds fill width pixels and scrolls to
// the start. It does nothing for a non-positive argument or an unbound area.
func (c *Controller) FitToWindow(duration, width float64) {
	if !c.bound || !(duration > 0) || !(width > 0) || !coord.Finite(duration) || !coord.Finite(width) {
		return
	}
	st := c.st
	st.Zoom = c.clampZoom(width / duration)
	st.ScrollX = 0
	c.set(st)
}

// FollowPlayhead returns the scroll that keeps t inside the follow margin.
// changed is false when t is already comfortably visible.
func (c *Controller) FollowPlayhead(t float64) (scrollX float64, changed bool) {
	w := c.st.ViewportWidth
	if !c.bound || w <= 0 || !coord.Finite(t) {
		return c.st.ScrollX, false
	}
	px := t * c.st.Zoom
	margin := w * c.cfg.FollowMargin
	left := c.st.ScrollX + margin
	right := c.st.ScrollX + w - margin

	var next float64
	switch {
	case px < left:
		next = math.Max(px-margin, 0)
	case px > right:
		next = px - (w - margin)
	default:
		return c.st.ScrollX, false
	}
	if next == c.st.ScrollX {
		return next, false
	}
	return next, true
}

// Follow applies FollowPlayhead and reports whether the scroll moved.
func (c *Controller) Follow(t float64) bool {
	x, changed := c.FollowPlayhead(t)
	if changed {
		c.SetScrollX(x)
	}
	return changed
}

// ScrollToTime centres t in the viewport.
func (c *Controller) ScrollToTime(t float64) {
	if !coord.Finite(t) {
		return
	}
	c.SetScrollX(t*c.st.Zoom - c.st.ViewportWidth/2)
}

// VisibleRange returns the first and last visible times.
func (c *Controller) VisibleRange() (start, end float64) {
	start = c.st.ScrollX / c.st.Zoom
	end = (c.st.ScrollX + c.st.ViewportWidth) / c.st.Zoom
	return start, end
}

// Transform returns a coordinate transform for the current state.
func (c *Controller) Transform(headerWidth float64) coord.Transform {
	return coord.Transform{
		Zoom:        c.st.Zoom,
		ScrollX:     c.st.ScrollX,
		HeaderWidth: headerWidth,
		Duration:    c.st.Duration,
	}
}
