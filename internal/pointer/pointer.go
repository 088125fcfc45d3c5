// Package pointer carries pointer input to whichever gesture currently owns
// it. A gesture subscribes when it starts and unsubscribes when it ends, so
// moves and releases keep reaching it after the pointer leaves the element
// that started it.
package pointer

// Button identifies a pointer button.
type Button int

// Pointer buttons. ButtonLeft is the primary button.
const (
	ButtonLeft Button = iota
	ButtonMiddle
	ButtonRight
	ButtonNone
)

// Mod is a set of keyboard modifiers held during an event.
type Mod uint8

// Modifier bits.
const (
	ModShift Mod = 1 << iota
	ModCtrl
	ModAlt
	ModMeta
)

// Contains reports whether all bits of o are set in m.
func (m Mod) Contains(o Mod) bool {
	return m&o == o
}

// Target is the kind of element an event landed on.
type Target int

// Event targets.
const (
	TargetNone Target = iota
	TargetTrackArea
	TargetRuler
	TargetClip
	TargetHeader
	TargetButton
)

// Interactive reports whether the target handles its own presses.
func (t Target) Interactive() bool {
	switch t {
	case TargetClip, TargetHeader, TargetButton:
		return true
	}
	return false
}

// Kind distinguishes the events delivered through a Bus.
type Kind int

// Event kinds.
const (
	Press Kind = iota
	Move
	Release
)

// Event is a pointer event in screen pixels.
type Event struct {
	Kind   Kind
	X, Y   float64
	Button Button
	Mod    Mod
	Target Target
}

// WheelEvent is a scroll wheel event. X and Y are the cursor position; the
// deltas are in pixels, positive meaning right or down.
type WheelEvent struct {
	X, Y           float64
	DeltaX, DeltaY float64
	Mod            Mod
}

// Handler receives events from a Bus.
type Handler func(Event)

// Bus fans move and release events out to active gestures.
type Bus struct {
	next int
	subs []subscription
}

type subscription struct {
	id int
	fn Handler
}

// NewBus returns an empty bus.
func NewBus() *Bus {
	return &Bus{}
}

// Subscribe registers h and returns the function that removes it. The
// returned function is safe to call more than once.
func (b *Bus) Subscribe(h Handler) (unsubscribe func()) {
	b.next++
	id := b.next
	b.subs = append(b.subs, subscription{id: id, fn: h})

	done := false
	return func() {
		if done {
			return
		}
		done = true
		for i, s := range b.subs {
			if s.id == id {
				b.subs = append(b.subs[:i:i], b.subs[i+1:]...)
				return
			}
		}
	}
}

// Dispatch delivers ev to every subscriber registered when it was called.
// Handlers may unsubscribe themselves or others during delivery; a removed
// handler is not called.
func (b *Bus) Dispatch(ev Event) {
	if len(b.subs) == 0 {
		return
	}
	snapshot := make([]subscription, len(b.subs))
	copy(snapshot, b.subs)
	for _, s := range snapshot {
		if b.live(s.id) {
			s.fn(ev)
		}
	}
}

func (b *Bus) live(id int) bool {
	for _, s := range b.subs {
		if s.id == id {
			return true
		}
	}
	return false
}

// Len returns the number of live subscriptions.
func (b *Bus) Len() int {
	return len(b.subs)
}
