package scrub

import (
	"testing"

	"github.com/Gaurav-Gosain/tuicut/internal/pointer"
	"github.com/Gaurav-Gosain/tuicut/internal/snap"
)

type fakeTransport struct {
	playing bool
	seeks   []float64
	toggles int
}

func (f *fakeTransport) Seek(t float64)  { f.seeks = append(f.seeks, t) }
func (f *fakeTransport) IsPlaying() bool { return f.playing }
func (f *fakeTransport) TogglePlayback() {
	f.toggles++
	f.playing = !f.playing
}

// timeAt maps x to seconds at 10 px/s and snaps to whole seconds within 0.2.
func timeAt(ev pointer.Event, applySnapping bool) (float64, *snap.Point, bool) {
	if ev.X < 0 {
		return 0, nil, false
	}
	t := ev.X / 10
	if applySnapping {
		res := snap.Resolve(t, []snap.Point{{Time: 3, Type: snap.TypeMarker}}, 0.2)
		return res.Time, res.Point, true
	}
	return t, nil, true
}

func TestScrubWhilePlaying(t *testing.T) {
	bus := pointer.NewBus()
	tr := &fakeTransport{playing: true}
	var snaps []*snap.Point
	c := NewController(bus, tr, timeAt, Options{OnSnapChange: func(p *snap.Point) { snaps = append(snaps, p) }})

	if !c.Press(pointer.Event{X: 10, Target: pointer.TargetTrackArea}) {
		t.Fatal("press rejected")
	}
	if tr.playing {
		t.Error("playback not paused on press")
	}

	bus.Dispatch(pointer.Event{Kind: pointer.Move, X: 31})
	bus.Dispatch(pointer.Event{Kind: pointer.Move, X: 50})
	bus.Dispatch(pointer.Event{Kind: pointer.Release, X: 50})

	want := []float64{1, 3, 5}
	if len(tr.seeks) != len(want) {
		t.Fatalf("seeks = %v, want %v", tr.seeks, want)
	}
	for i := range want {
		if tr.seeks[i] != want[i] {
			t.Errorf("seek %d = %v, want %v", i, tr.seeks[i], want[i])
		}
	}
	if !tr.playing || tr.toggles != 2 {
		t.Errorf("playback not resumed: playing=%v toggles=%d", tr.playing, tr.toggles)
	}
	if c.Scrubbing() || bus.Len() != 0 {
		t.Error("scrub not torn down")
	}
	if len(snaps) != 2 || snaps[0] == nil || snaps[1] != nil {
		t.Errorf("snap changes = %v, want marker then nil", snaps)
	}
}

func TestScrubWhilePaused(t *testing.T) {
	bus := pointer.NewBus()
	tr := &fakeTransport{}
	c := NewController(bus, tr, timeAt, Options{})

	c.Press(pointer.Event{X: 20, Target: pointer.TargetRuler})
	bus.Dispatch(pointer.Event{Kind: pointer.Release, X: 20})

	if tr.toggles != 0 || tr.playing {
		t.Errorf("paused scrub toggled playback %d times", tr.toggles)
	}
}

func TestScrubExcludedTargets(t *testing.T) {
	for _, target := range []pointer.Target{pointer.TargetClip, pointer.TargetHeader, pointer.TargetButton} {
		bus := pointer.NewBus()
		tr := &fakeTransport{playing: true}
		c := NewController(bus, tr, timeAt, Options{})

		if c.Press(pointer.Event{X: 10, Target: target}) {
			t.Errorf("press on target %d accepted", target)
		}
		if len(tr.seeks) != 0 || tr.toggles != 0 || bus.Len() != 0 {
			t.Errorf("excluded press on target %d had side effects", target)
		}
	}
}

func TestScrubNonPrimaryButton(t *testing.T) {
	c := NewController(pointer.NewBus(), &fakeTransport{}, timeAt, Options{})
	if c.Press(pointer.Event{Button: pointer.ButtonRight, Target: pointer.TargetTrackArea}) {
		t.Error("right button started a scrub")
	}
}

func TestScrubNoTimeNoSeek(t *testing.T) {
	bus := pointer.NewBus()
	tr := &fakeTransport{}
	c := NewController(bus, tr, timeAt, Options{})

	c.Press(pointer.Event{X: -5, Target: pointer.TargetTrackArea})
	bus.Dispatch(pointer.Event{Kind: pointer.Move, X: -1})
	if len(tr.seeks) != 0 {
		t.Errorf("seeked without a time: %v", tr.seeks)
	}
	bus.Dispatch(pointer.Event{Kind: pointer.Move, X: 40})
	if len(tr.seeks) != 1 || tr.seeks[0] != 4 {
		t.Errorf("seeks = %v", tr.seeks)
	}
}

func TestScrubCloseDoesNotResume(t *testing.T) {
	bus := pointer.NewBus()
	tr := &fakeTransport{playing: true}
	c := NewController(bus, tr, timeAt, Options{})

	c.Press(pointer.Event{X: 10})
	c.Close()
	bus.Dispatch(pointer.Event{Kind: pointer.Release})

	if tr.playing || tr.toggles != 1 {
		t.Errorf("close resumed playback: playing=%v toggles=%d", tr.playing, tr.toggles)
	}
	if bus.Len() != 0 || c.Scrubbing() {
		t.Error("close left the scrub alive")
	}
}
