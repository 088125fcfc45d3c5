// Package coord converts between screen positions and timeline seconds.
//
// Positions are measured in pixels. In the terminal host one cell is one
// pixel, so zoom is cells per second.
package coord

import "math"

// Container is the on-screen box the timeline is drawn in. A nil *Container
// means the timeline is not laid out yet.
type Container struct {
	Left  float64
	Width float64
}

// Transform is a snapshot of the current zoom, scroll and layout.
type Transform struct {
	Zoom        float64 // pixels per second
	ScrollX     float64 // pixels scrolled off the left edge
	HeaderWidth float64 // width of the track header column
	Duration    float64 // seconds; upper clamp for MouseToTime
}

// TimeToPixel returns the distance in pixels from time zero.
func (t Transform) TimeToPixel(sec float64) float64 {
	return sec * t.Zoom
}

// PixelToTime is the inverse of TimeToPixel. It returns 0 for an unusable
// zoom.
func (t Transform) PixelToTime(px float64) float64 {
	if !ValidZoom(t.Zoom) {
		return 0
	}
	return px / t.Zoom
}

// TimeToScreen returns the x offset of sec from the container's left edge.
func (t Transform) TimeToScreen(sec float64) float64 {
	return t.HeaderWidth + t.TimeToPixel(sec) - t.ScrollX
}

// MouseToTime maps a pointer x position to a timeline time clamped to
// [0, Duration]. ok is false when the container is unbound or the inputs
// cannot produce a time.
func (t Transform) MouseToTime(clientX float64, c *Container) (sec float64, ok bool) {
	if c == nil || !ValidZoom(t.Zoom) || !Finite(clientX) || !Finite(t.ScrollX) {
		return 0, false
	}
	sec = (clientX - c.Left - t.HeaderWidth + t.ScrollX) / t.Zoom
	return Clamp(sec, 0, math.Max(t.Duration, 0)), true
}

// ValidZoom reports whether z can be divided by.
func ValidZoom(z float64) bool {
	return z > 0 && Finite(z)
}

// Finite reports whether v is neither NaN nor infinite.
func Finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
