// Package drag turns pointer drags on a clip into move and trim previews.
package drag

import (
	"math"

	"github.com/Gaurav-Gosain/tuicut/internal/coord"
	"github.com/Gaurav-Gosain/tuicut/internal/snap"
	"github.com/Gaurav-Gosain/tuicut/internal/timeline"
)

// Type is the edit a drag performs.
type Type string

// Drag types.
const (
	Move      Type = "move"
	TrimLeft  Type = "trim-left"
	TrimRight Type = "trim-right"
)

// Session is the state frozen when a drag starts.
type Session struct {
	ClipID             string
	Type               Type
	StartX             float64
	OriginalTimelineIn float64
	OriginalSourceIn   float64
	OriginalSourceOut  float64
}

// Preview is the uncommitted result of a drag.
type Preview struct {
	TimelineIn float64
	SourceIn   float64
	SourceOut  float64
	Duration   float64
}

// Params is the configuration read at every pointer event.
type Params struct {
	Zoom        float64
	Speed       float64
	MinDuration float64
	// MaxSourceDuration bounds SourceOut during trim-right. Zero or less
	// means unbounded.
	MaxSourceDuration float64
	GridInterval      float64
	SnapPoints        []snap.Point
	// SnapThreshold is in seconds. Zero or less derives it from Zoom and
	// snap.DefaultThresholdPx.
	SnapThreshold float64
	Disabled      bool
}

// InitialPreview is the preview of an untouched session.
func InitialPreview(s Session, speed float64) Preview {
	return preview(s.OriginalTimelineIn, s.OriginalSourceIn, s.OriginalSourceOut, timeline.NormalizeSpeed(speed))
}

func preview(timelineIn, sourceIn, sourceOut, speed float64) Preview {
	return Preview{
		TimelineIn: timelineIn,
		SourceIn:   sourceIn,
		SourceOut:  sourceOut,
		Duration:   (sourceOut - sourceIn) / speed,
	}
}

// Calculate computes the preview for a pointer at clientX. The returned point
// is the snap target in effect, or nil.
func Calculate(s Session, clientX float64, p Params) (Preview, *snap.Point) {
	speed := timeline.NormalizeSpeed(p.Speed)
	if !coord.ValidZoom(p.Zoom) || !coord.Finite(clientX) {
		return InitialPreview(s, speed), nil
	}
	deltaTime := (clientX - s.StartX) / p.Zoom

	threshold := p.SnapThreshold
	if threshold <= 0 || !coord.Finite(threshold) {
		threshold = snap.Threshold(p.Zoom, snap.DefaultThresholdPx)
	}
	minDur := p.MinDuration
	if minDur < 0 || !coord.Finite(minDur) {
		minDur = 0
	}

	switch s.Type {
	case TrimLeft:
		return trimLeft(s, deltaTime, speed, minDur, threshold, p)
	case TrimRight:
		return trimRight(s, deltaTime, speed, minDur, threshold, p)
	default:
		return move(s, deltaTime, speed, threshold, p)
	}
}

func move(s Session, deltaTime, speed, threshold float64, p Params) (Preview, *snap.Point) {
	in := math.Max(s.OriginalTimelineIn+deltaTime, 0)
	dur := (s.OriginalSourceOut - s.OriginalSourceIn) / speed

	var hit *snap.Point
	switch {
	case len(p.SnapPoints) > 0:
		if res := snap.Resolve(in, p.SnapPoints, threshold); res.Snapped {
			in, hit = res.Time, res.Point
		} else if res := snap.Resolve(in+dur, p.SnapPoints, threshold); res.Snapped {
			in, hit = res.Time-dur, res.Point
		} else if p.GridInterval > 0 {
			in = snap.SnapToGrid(in, p.GridInterval)
		}
	case p.GridInterval > 0:
		in = snap.SnapToGrid(in, p.GridInterval)
	}

	if in < 0 {
		in, hit = 0, nil
	}
	return preview(in, s.OriginalSourceIn, s.OriginalSourceOut, speed), hit
}

func trimLeft(s Session, deltaTime, speed, minDur, threshold float64, p Params) (Preview, *snap.Point) {
	origIn := s.OriginalSourceIn
	lo := math.Max(-origIn/speed, -s.OriginalTimelineIn)
	hi := math.Max((s.OriginalSourceOut-origIn)/speed-minDur, lo)
	delta := coord.Clamp(deltaTime, lo, hi)

	var hit *snap.Point
	if target, pt, ok := snapTime(s.OriginalTimelineIn+delta, threshold, p); ok {
		want := target - s.OriginalTimelineIn
		delta = coord.Clamp(want, lo, hi)
		if delta == want {
			hit = pt
		}
	}

	sourceIn := origIn + delta*speed
	timelineIn := s.OriginalTimelineIn + delta
	if sourceIn < 0 {
		sourceIn = 0
		timelineIn = s.OriginalTimelineIn - origIn/speed
	}
	timelineIn = math.Max(timelineIn, 0)
	return preview(timelineIn, sourceIn, s.OriginalSourceOut, speed), hit
}

func trimRight(s Session, deltaTime, speed, minDur, threshold float64, p Params) (Preview, *snap.Point) {
	sourceIn := s.OriginalSourceIn
	lo := sourceIn + minDur*speed
	hi := math.Inf(1)
	if p.MaxSourceDuration > 0 && coord.Finite(p.MaxSourceDuration) {
		hi = math.Max(p.MaxSourceDuration, lo)
	}
	out := coord.Clamp(s.OriginalSourceOut+deltaTime*speed, lo, hi)

	var hit *snap.Point
	switch {
	case len(p.SnapPoints) > 0:
		end := s.OriginalTimelineIn + (out-sourceIn)/speed
		if res := snap.Resolve(end, p.SnapPoints, threshold); res.Snapped {
			want := sourceIn + (res.Time-s.OriginalTimelineIn)*speed
			out = coord.Clamp(want, lo, hi)
			if out == want {
				hit = res.Point
			}
		} else if p.GridInterval > 0 {
			out = gridDuration(out, sourceIn, speed, lo, hi, p.GridInterval)
		}
	case p.GridInterval > 0:
		out = gridDuration(out, sourceIn, speed, lo, hi, p.GridInterval)
	}
	return preview(s.OriginalTimelineIn, sourceIn, out, speed), hit
}

// gridDuration snaps the clip length to the grid and re-derives SourceOut.
func gridDuration(out, sourceIn, speed, lo, hi, interval float64) float64 {
	dur := snap.SnapToGrid((out-sourceIn)/speed, interval)
	return coord.Clamp(sourceIn+dur*speed, lo, hi)
}

// snapTime resolves t against semantic points, falling back to the grid.
func snapTime(t, threshold float64, p Params) (float64, *snap.Point, bool) {
	if len(p.SnapPoints) > 0 {
		if res := snap.Resolve(t, p.SnapPoints, threshold); res.Snapped {
			return res.Time, res.Point, true
		}
	}
	if p.GridInterval > 0 {
		return snap.SnapToGrid(t, p.GridInterval), nil, true
	}
	return t, nil, false
}
