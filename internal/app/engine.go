package app

import (
	"github.com/Gaurav-Gosain/tuicut/internal/config"
	"github.com/Gaurav-Gosain/tuicut/internal/drag"
	"github.com/Gaurav-Gosain/tuicut/internal/pointer"
	"github.com/Gaurav-Gosain/tuicut/internal/snap"
	"github.com/Gaurav-Gosain/tuicut/internal/timeline"
)

// rebuildSnaps refreshes the snap candidates from the current playhead, zoom
// and visible range. Gesture providers call it on every pointer event.
func (e *Editor) rebuildSnaps(excludeClipID string, includePlayhead bool) {
	start, end := e.Viewport.VisibleRange()
	e.Snaps.Rebuild(e.Sequence, snap.Query{
		Zoom:            e.Viewport.State().Zoom,
		Playhead:        e.Playhead(),
		IncludePlayhead: includePlayhead,
		ExcludeClipID:   excludeClipID,
		IncludeGrid:     e.GridEnabled,
		VisibleStart:    start,
		VisibleEnd:      end,
	})
}

// dragParams is read by the drag controller at every pointer event, so zoom
// and toggles changed mid-drag take effect on the next move.
func (e *Editor) dragParams() drag.Params {
	st := e.Viewport.State()
	sc := e.Snaps.Config()
	p := drag.Params{
		Zoom:              st.Zoom,
		Speed:             1,
		MinDuration:       e.Config.Timeline.MinClipDuration,
		MaxSourceDuration: e.Config.Timeline.MaxSourceDuration,
		SnapThreshold:     snap.Threshold(st.Zoom, sc.ThresholdPx),
	}
	if e.pressedClip != nil {
		e.rebuildSnaps(e.pressedClip.ID, true)
		p.Speed = e.pressedClip.Speed
		if e.pressedTrack >= 0 && e.pressedTrack < len(e.Sequence.Tracks) {
			p.Disabled = e.Sequence.Tracks[e.pressedTrack].Locked
		}
	}
	if e.SnapEnabled {
		p.SnapPoints = snap.Semantic(e.Snaps.Points())
	}
	if e.GridEnabled {
		p.GridInterval = snap.GridInterval(st.Zoom, sc.MinGridSpacingPx, sc.GridSteps)
	}
	return p
}

// timeAt converts a scrub event into a playhead time.
func (e *Editor) timeAt(ev pointer.Event, applySnapping bool) (float64, *snap.Point, bool) {
	t, ok := e.Transform().MouseToTime(ev.X, e.container())
	if !ok {
		return 0, nil, false
	}
	if !applySnapping {
		return t, nil, true
	}
	e.rebuildSnaps("", false)
	candidates := e.Snaps.Points()
	if !e.SnapEnabled {
		candidates = gridOnly(candidates)
	}
	if res := snap.Resolve(t, candidates, e.Snaps.Threshold()); res.Snapped {
		return res.Time, res.Point, true
	}
	return t, nil, true
}

func gridOnly(pts []snap.Point) []snap.Point {
	var out []snap.Point
	for _, p := range pts {
		if p.Type == snap.TypeGrid {
			out = append(out, p)
		}
	}
	return out
}

func (e *Editor) onDragStart(s drag.Session) {
	e.LogInfo("Drag %s started on clip %s", s.Type, shortID(s.ClipID))
}

func (e *Editor) onDrag(drag.Session, drag.Preview) {}

// onDragEnd commits the final preview to the sequence.
func (e *Editor) onDragEnd(s drag.Session, p drag.Preview) {
	e.pressedClip = nil
	if !e.Sequence.ApplyEdit(s.ClipID, p.TimelineIn, p.SourceIn, p.SourceOut) {
		e.LogWarn("Clip %s vanished during drag", shortID(s.ClipID))
		return
	}
	e.sequenceChanged()
	e.LogInfo("%s committed: in=%.3fs source=[%.3f, %.3f] duration=%.3fs",
		s.Type, p.TimelineIn, p.SourceIn, p.SourceOut, p.Duration)
}

func (e *Editor) onSnapChange(pt *snap.Point) {
	e.ActiveSnap = pt
}

// sequenceChanged propagates a new sequence length to the transport and
// viewport.
func (e *Editor) sequenceChanged() {
	d := e.Sequence.Duration()
	e.Transport.SetDuration(d)
	e.Viewport.SetDuration(d)
}

// ReplaceSequence swaps the edited sequence, ending any gesture first.
func (e *Editor) ReplaceSequence(seq *timeline.Sequence) {
	e.CancelGesture()
	e.Sequence = seq
	e.SelectedClipID = ""
	e.SetFocusedTrack(e.FocusedTrack)
	e.sequenceChanged()
}

// PointerPress routes a press to the clip drag, a header button or the
// scrub, depending on what lies under it.
func (e *Editor) PointerPress(ev pointer.Event) {
	e.LastMouseX, e.LastMouseY = int(ev.X), int(ev.Y)
	hit := e.HitTest(int(ev.X), int(ev.Y))
	ev.Target = hit.Target
	ev.Kind = pointer.Press

	switch hit.Target {
	case pointer.TargetClip:
		e.SetFocusedTrack(hit.Track)
		e.SelectedClipID = hit.Clip.ID
		if ev.Button != pointer.ButtonLeft {
			return
		}
		if e.Sequence.Tracks[hit.Track].Locked {
			e.ShowNotification("Track is locked", "warning", config.NotificationDuration)
			return
		}
		e.pressedClip, e.pressedTrack = hit.Clip, hit.Track
		state := drag.ClipState{
			ID:         hit.Clip.ID,
			TimelineIn: hit.Clip.TimelineIn,
			SourceIn:   hit.Clip.SourceIn,
			SourceOut:  hit.Clip.SourceOut,
		}
		if !e.Drag.Press(ev, state, hit.Edge) {
			e.pressedClip = nil
		}

	case pointer.TargetButton:
		if ev.Button != pointer.ButtonLeft {
			return
		}
		e.SetFocusedTrack(hit.Track)
		if hit.Button == "mute" {
			e.ToggleMute()
		} else {
			e.ToggleLock()
		}

	case pointer.TargetHeader:
		e.SetFocusedTrack(hit.Track)

	case pointer.TargetRuler, pointer.TargetTrackArea:
		if hit.Target == pointer.TargetTrackArea {
			e.SetFocusedTrack(hit.Track)
			e.SelectedClipID = ""
		}
		e.Scrub.Press(ev)
	}
}

// PointerMove forwards a move to the active gesture.
func (e *Editor) PointerMove(ev pointer.Event) {
	e.LastMouseX, e.LastMouseY = int(ev.X), int(ev.Y)
	ev.Kind = pointer.Move
	e.Bus.Dispatch(ev)
}

// PointerRelease ends the active gesture.
func (e *Editor) PointerRelease(ev pointer.Event) {
	e.LastMouseX, e.LastMouseY = int(ev.X), int(ev.Y)
	ev.Kind = pointer.Release
	e.Bus.Dispatch(ev)
	if !e.Drag.Dragging() {
		e.pressedClip = nil
	}
}

// Wheel applies a wheel event at screen position (ev.X, ev.Y). Ctrl or meta
// zooms and shift scrolls; a plain vertical wheel moves track focus and a
// plain horizontal wheel scrolls.
func (e *Editor) Wheel(ev pointer.WheelEvent) {
	ev.X -= float64(config.HeaderWidth)
	if ev.X < 0 {
		ev.X = 0
	}
	if e.Viewport.HandleWheel(ev) {
		return
	}
	switch {
	case ev.DeltaX != 0:
		e.Viewport.SetScrollX(e.Viewport.State().ScrollX + ev.DeltaX)
	case ev.DeltaY > 0:
		e.SetFocusedTrack(e.FocusedTrack + 1)
	case ev.DeltaY < 0:
		e.SetFocusedTrack(e.FocusedTrack - 1)
	}
}

// Gesturing reports whether a drag or scrub owns the pointer.
func (e *Editor) Gesturing() bool {
	return e.Drag.Dragging() || e.Scrub.Scrubbing()
}

// DragPreview returns the uncommitted geometry of the clip being dragged.
func (e *Editor) DragPreview() (clipID string, p drag.Preview, ok bool) {
	s, ok := e.Drag.Session()
	if !ok {
		return "", drag.Preview{}, false
	}
	p, _ = e.Drag.Preview()
	return s.ClipID, p, true
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
