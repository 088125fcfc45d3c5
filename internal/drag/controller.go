package drag

import (
	"github.com/Gaurav-Gosain/tuicut/internal/coord"
	"github.com/Gaurav-Gosain/tuicut/internal/pointer"
	"github.com/Gaurav-Gosain/tuicut/internal/snap"
)

// ClipState is the committed geometry of the clip under the pointer.
type ClipState struct {
	ID         string
	TimelineIn float64
	SourceIn   float64
	SourceOut  float64
}

// Callbacks receive drag progress. Any of them may be nil.
type Callbacks struct {
	OnDragStart  func(Session)
	OnDrag       func(Session, Preview)
	OnDragEnd    func(Session, Preview)
	OnSnapChange func(*snap.Point)
}

// ParamsFunc supplies the current configuration.
type ParamsFunc func() Params

// Controller runs one drag gesture at a time.
type Controller struct {
	bus    *pointer.Bus
	params ParamsFunc
	cb     Callbacks

	session     *Session
	last        Preview
	snapped     *snap.Point
	unsubscribe func()
}

// NewController returns an idle controller listening on bus once a drag
// starts.
func NewController(bus *pointer.Bus, params ParamsFunc, cb Callbacks) *Controller {
	return &Controller{bus: bus, params: params, cb: cb}
}

// Press starts a drag of typ on clip. It returns false and does nothing for
// non-primary buttons, while disabled, while another drag is active, or for
// a clip with unusable geometry.
func (c *Controller) Press(ev pointer.Event, clip ClipState, typ Type) bool {
	if c.session != nil || ev.Button != pointer.ButtonLeft || !coord.Finite(ev.X) {
		return false
	}
	p := c.params()
	if p.Disabled {
		return false
	}
	for _, v := range []float64{clip.TimelineIn, clip.SourceIn, clip.SourceOut} {
		if !coord.Finite(v) {
			return false
		}
	}
	switch typ {
	case Move, TrimLeft, TrimRight:
	default:
		return false
	}

	c.session = &Session{
		ClipID:             clip.ID,
		Type:               typ,
		StartX:             ev.X,
		OriginalTimelineIn: clip.TimelineIn,
		OriginalSourceIn:   clip.SourceIn,
		OriginalSourceOut:  clip.SourceOut,
	}
	c.last = InitialPreview(*c.session, p.Speed)
	c.snapped = nil
	c.unsubscribe = c.bus.Subscribe(c.handle)

	if c.cb.OnDragStart != nil {
		c.cb.OnDragStart(*c.session)
	}
	return true
}

func (c *Controller) handle(ev pointer.Event) {
	if c.session == nil {
		return
	}
	switch ev.Kind {
	case pointer.Move:
		c.move(ev.X)
	case pointer.Release:
		c.release()
	}
}

func (c *Controller) move(x float64) {
	p := c.params()
	if p.Disabled {
		c.teardown()
		return
	}
	if !coord.Finite(x) {
		return
	}
	prev, pt := Calculate(*c.session, x, p)
	c.last = prev
	c.setSnap(pt)
	if c.cb.OnDrag != nil {
		c.cb.OnDrag(*c.session, prev)
	}
}

func (c *Controller) release() {
	s, last := *c.session, c.last
	c.teardown()
	if c.cb.OnDragEnd != nil {
		c.cb.OnDragEnd(s, last)
	}
}

// Close abandons any active drag without reporting its end.
func (c *Controller) Close() {
	c.teardown()
}

// teardown is the only place a session ends.
func (c *Controller) teardown() {
	if c.session == nil {
		return
	}
	if c.unsubscribe != nil {
		c.unsubscribe()
		c.unsubscribe = nil
	}
	c.session = nil
	c.setSnap(nil)
}

func (c *Controller) setSnap(pt *snap.Point) {
	if samePoint(c.snapped, pt) {
		return
	}
	c.snapped = pt
	if c.cb.OnSnapChange != nil {
		c.cb.OnSnapChange(pt)
	}
}

func samePoint(a, b *snap.Point) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// Dragging reports whether a drag is active.
func (c *Controller) Dragging() bool {
	return c.session != nil
}

// Session returns the active session.
func (c *Controller) Session() (Session, bool) {
	if c.session == nil {
		return Session{}, false
	}
	return *c.session, true
}

// Preview returns the most recent preview of the active drag.
func (c *Controller) Preview() (Preview, bool) {
	if c.session == nil {
		return Preview{}, false
	}
	return c.last, true
}
