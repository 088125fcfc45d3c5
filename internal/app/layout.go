package app

import (
	"math"

	uv "github.com/charmbracelet/ultraviolet"

	"github.com/Gaurav-Gosain/tuicut/internal/config"
	"github.com/Gaurav-Gosain/tuicut/internal/coord"
	"github.com/Gaurav-Gosain/tuicut/internal/drag"
	"github.com/Gaurav-Gosain/tuicut/internal/pointer"
	"github.com/Gaurav-Gosain/tuicut/internal/timeline"
)

// TrackRow is the screen area of one track.
type TrackRow struct {
	Index  int
	Header uv.Rectangle
	Lane   uv.Rectangle
	Mute   uv.Rectangle
	Lock   uv.Rectangle
}

// Layout splits the screen into the ruler, one row per track and the status
// bar. Track rows start at Editor.TrackScroll; tracks that do not fit below
// them are not laid out.
type Layout struct {
	Screen      uv.Rectangle
	RulerHeader uv.Rectangle
	Ruler       uv.Rectangle
	Tracks      []TrackRow
	Status      uv.Rectangle
}

// TracksWidth is the width of the lane area in cells.
func (l Layout) TracksWidth() int {
	return max(l.Screen.Dx()-config.HeaderWidth, 0)
}

// trackCapacity is the number of track rows that fit between the ruler and
// the status bar.
func (e *Editor) trackCapacity() int {
	h := max(e.Height, 0)
	top := 0
	if config.ShowRuler {
		top = min(config.RulerHeight, h)
	}
	bottom := h
	if !config.HideStatusBar && h > top {
		bottom = h - config.StatusBarHeight
	}
	return max(bottom-top, 0) / config.TrackHeight
}

// revealTrack scrolls the track rows so idx is laid out.
func (e *Editor) revealTrack(idx int) {
	n := len(e.Sequence.Tracks)
	capacity := e.trackCapacity()
	if capacity <= 0 || n == 0 {
		e.TrackScroll = 0
		return
	}
	if idx < e.TrackScroll {
		e.TrackScroll = idx
	}
	if idx >= e.TrackScroll+capacity {
		e.TrackScroll = idx - capacity + 1
	}
	e.TrackScroll = max(0, min(e.TrackScroll, n-capacity))
}

// Layout computes the regions for the current size.
func (e *Editor) Layout() Layout {
	w, h := max(e.Width, 0), max(e.Height, 0)
	l := Layout{Screen: uv.Rect(0, 0, w, h)}
	hw := min(config.HeaderWidth, w)

	y := 0
	if config.ShowRuler {
		rh := min(config.RulerHeight, h)
		l.RulerHeader = uv.Rect(0, 0, hw, rh)
		l.Ruler = uv.Rect(hw, 0, w-hw, rh)
		y = rh
	}

	bottom := h
	if !config.HideStatusBar && h > y {
		bottom = h - config.StatusBarHeight
		l.Status = uv.Rect(0, bottom, w, config.StatusBarHeight)
	}

	for i := e.TrackScroll; i < len(e.Sequence.Tracks); i++ {
		if y+config.TrackHeight > bottom {
			break
		}
		row := TrackRow{
			Index:  i,
			Header: uv.Rect(0, y, hw, config.TrackHeight),
			Lane:   uv.Rect(hw, y, w-hw, config.TrackHeight),
		}
		by := y + config.TrackHeight - 1
		row.Mute = uv.Rect(1, by, 3, 1)
		row.Lock = uv.Rect(5, by, 3, 1)
		l.Tracks = append(l.Tracks, row)
		y += config.TrackHeight
	}
	return l
}

// Hit describes what lies under a screen cell.
type Hit struct {
	Target pointer.Target
	Track  int
	Clip   *timeline.Clip
	Edge   drag.Type // edit a press on Clip starts
	Button string    // "mute" or "lock" when Target is a button
}

// clipSpan returns the cells [x1, x2) a clip occupies on screen. Every clip
// is at least one cell wide.
func clipSpan(c *timeline.Clip, tr coord.Transform) (x1, x2 int) {
	x1 = int(math.Round(tr.TimeToScreen(c.TimelineIn)))
	x2 = int(math.Round(tr.TimeToScreen(c.TimelineOut())))
	if x2 <= x1 {
		x2 = x1 + 1
	}
	return x1, x2
}

// edgeAt picks the drag type for a press at column x on a clip spanning
// [x1, x2).
func edgeAt(x, x1, x2 int) drag.Type {
	if x2-x1 < config.MinClipWidthForHandles {
		return drag.Move
	}
	switch {
	case x < x1+config.TrimHandleWidth:
		return drag.TrimLeft
	case x >= x2-config.TrimHandleWidth:
		return drag.TrimRight
	}
	return drag.Move
}

// HitTest resolves the element at (x, y).
func (e *Editor) HitTest(x, y int) Hit {
	l := e.Layout()
	pos := uv.Pos(x, y)
	hit := Hit{Target: pointer.TargetNone, Track: -1}

	switch {
	case pos.In(l.Ruler):
		hit.Target = pointer.TargetRuler
		return hit
	case pos.In(l.RulerHeader), pos.In(l.Status):
		return hit
	}

	tr := e.Transform()
	for _, row := range l.Tracks {
		switch {
		case pos.In(row.Mute):
			hit.Target, hit.Track, hit.Button = pointer.TargetButton, row.Index, "mute"
		case pos.In(row.Lock):
			hit.Target, hit.Track, hit.Button = pointer.TargetButton, row.Index, "lock"
		case pos.In(row.Header):
			hit.Target, hit.Track = pointer.TargetHeader, row.Index
		case pos.In(row.Lane):
			hit.Target, hit.Track = pointer.TargetTrackArea, row.Index
			track := e.Sequence.Tracks[row.Index]
			// Later clips draw on top, so test them first
			for i := len(track.Clips) - 1; i >= 0; i-- {
				c := track.Clips[i]
				x1, x2 := clipSpan(c, tr)
				if x >= x1 && x < x2 {
					hit.Target, hit.Clip, hit.Edge = pointer.TargetClip, c, edgeAt(x, x1, x2)
					break
				}
			}
		default:
			continue
		}
		return hit
	}
	return hit
}
