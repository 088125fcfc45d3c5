// Package scrub drives the playhead from the pointer.
package scrub

import (
	"github.com/Gaurav-Gosain/tuicut/internal/pointer"
	"github.com/Gaurav-Gosain/tuicut/internal/snap"
)

// Transport is the playback surface a scrub controls.
type Transport interface {
	Seek(t float64)
	TogglePlayback()
	IsPlaying() bool
}

// TimeFunc converts a pointer event into a timeline time. ok is false when
// no time can be computed.
type TimeFunc func(ev pointer.Event, applySnapping bool) (t float64, pt *snap.Point, ok bool)

// Options configure a Controller.
type Options struct {
	// Excluded reports whether presses on a target belong to something
	// else. Defaults to pointer.Target.Interactive.
	Excluded     func(pointer.Target) bool
	OnSnapChange func(*snap.Point)
}

// Controller runs scrub gestures.
type Controller struct {
	bus       *pointer.Bus
	transport Transport
	timeAt    TimeFunc
	opts      Options

	scrubbing   bool
	wasPlaying  bool
	snapped     *snap.Point
	unsubscribe func()
}

// NewController returns an idle scrub controller.
func NewController(bus *pointer.Bus, transport Transport, timeAt TimeFunc, opts Options) *Controller {
	if opts.Excluded == nil {
		opts.Excluded = pointer.Target.Interactive
	}
	return &Controller{bus: bus, transport: transport, timeAt: timeAt, opts: opts}
}

// Press starts scrubbing unless the event targets an interactive element,
// uses a non-primary button, or a scrub is already running.
func (c *Controller) Press(ev pointer.Event) bool {
	if c.scrubbing || ev.Button != pointer.ButtonLeft || c.opts.Excluded(ev.Target) {
		return false
	}
	c.scrubbing = true
	c.wasPlaying = c.transport.IsPlaying()
	if c.wasPlaying {
		c.transport.TogglePlayback()
	}
	c.seek(ev)
	c.unsubscribe = c.bus.Subscribe(c.handle)
	return true
}

func (c *Controller) handle(ev pointer.Event) {
	if !c.scrubbing {
		return
	}
	switch ev.Kind {
	case pointer.Move:
		c.seek(ev)
	case pointer.Release:
		resume := c.wasPlaying
		c.teardown()
		c.setSnap(nil)
		if resume {
			c.transport.TogglePlayback()
		}
	}
}

func (c *Controller) seek(ev pointer.Event) {
	t, pt, ok := c.timeAt(ev, true)
	if !ok {
		return
	}
	c.transport.Seek(t)
	c.setSnap(pt)
}

func (c *Controller) setSnap(pt *snap.Point) {
	if c.snapped == nil && pt == nil {
		return
	}
	if c.snapped != nil && pt != nil && *c.snapped == *pt {
		return
	}
	c.snapped = pt
	if c.opts.OnSnapChange != nil {
		c.opts.OnSnapChange(pt)
	}
}

// Close ends any scrub without resuming playback.
func (c *Controller) Close() {
	c.teardown()
}

func (c *Controller) teardown() {
	if c.unsubscribe != nil {
		c.unsubscribe()
		c.unsubscribe = nil
	}
	c.scrubbing = false
	c.wasPlaying = false
}

// Scrubbing reports whether a scrub is active.
func (c *Controller) Scrubbing() bool {
	return c.scrubbing
}
