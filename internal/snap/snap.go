// Package snap builds the set of times an edit can snap to and resolves a
// raw time against it.
package snap

import (
	"math"

	"github.com/Gaurav-Gosain/tuicut/internal/coord"
)

// PointType is the kind of thing a snap point marks.
type PointType string

// Snap point types.
const (
	TypeGrid      PointType = "grid"
	TypeClipStart PointType = "clip-start"
	TypeClipEnd   PointType = "clip-end"
	TypePlayhead  PointType = "playhead"
	TypeMarker    PointType = "marker"
)

// Priority ranks point types when several are in range. Higher wins.
func (t PointType) Priority() int {
	switch t {
	case TypePlayhead:
		return 3
	case TypeClipStart, TypeClipEnd:
		return 2
	case TypeMarker:
		return 1
	default:
		return 0
	}
}

// Point is a snap candidate.
type Point struct {
	Time   float64
	Type   PointType
	ClipID string
	Label  string
}

// Result is the outcome of resolving a raw time.
type Result struct {
	Snapped bool
	Time    float64
	Point   *Point
}

// Resolve returns the best candidate within threshold seconds of raw.
// Candidates are ranked by type priority, then distance; on a full tie the
// earlier candidate wins. When nothing qualifies, Time is raw.
func Resolve(raw float64, candidates []Point, threshold float64) Result {
	if !coord.Finite(raw) || !coord.Finite(threshold) || threshold < 0 {
		return Result{Time: raw}
	}

	best := -1
	var bestDist float64
	for i := range candidates {
		c := &candidates[i]
		if !coord.Finite(c.Time) {
			continue
		}
		dist := math.Abs(c.Time - raw)
		if dist > threshold {
			continue
		}
		if best < 0 {
			best, bestDist = i, dist
			continue
		}
		bp, cp := candidates[best].Type.Priority(), c.Type.Priority()
		if cp > bp || (cp == bp && dist < bestDist) {
			best, bestDist = i, dist
		}
	}

	if best < 0 {
		return Result{Time: raw}
	}
	p := candidates[best]
	return Result{Snapped: true, Time: p.Time, Point: &p}
}

// SnapToGrid rounds t to the nearest multiple of interval. It returns t
// unchanged for a non-positive interval.
func SnapToGrid(t, interval float64) float64 {
	if interval <= 0 || !coord.Finite(interval) || !coord.Finite(t) {
		return t
	}
	return math.Round(t/interval) * interval
}

// Threshold converts a pixel distance into seconds at the given zoom.
func Threshold(zoom, thresholdPx float64) float64 {
	if !coord.ValidZoom(zoom) || thresholdPx <= 0 || !coord.Finite(thresholdPx) {
		return 0
	}
	return thresholdPx / zoom
}

// GridInterval picks the smallest step from steps whose on-screen spacing at
// zoom is at least minSpacingPx. It falls back to the largest step when none
// is wide enough, and returns 0 for an unusable zoom or an empty ladder.
func GridInterval(zoom, minSpacingPx float64, steps []float64) float64 {
	if !coord.ValidZoom(zoom) || len(steps) == 0 {
		return 0
	}
	var largest float64
	for _, s := range steps {
		if s <= 0 || !coord.Finite(s) {
			continue
		}
		largest = math.Max(largest, s)
	}
	best := math.Inf(1)
	for _, s := range steps {
		if s <= 0 || !coord.Finite(s) {
			continue
		}
		if s*zoom >= minSpacingPx && s < best {
			best = s
		}
	}
	if math.IsInf(best, 1) {
		return largest
	}
	return best
}

// GridTicks lists multiples of interval inside [start, end], ascending.
// At most limit ticks are produced.
func GridTicks(start, end, interval float64, limit int) []float64 {
	if interval <= 0 || !coord.Finite(interval) || !coord.Finite(start) || !coord.Finite(end) || end < start {
		return nil
	}
	first := math.Ceil(math.Max(start, 0)/interval - 1e-9)
	var ticks []float64
	for k := first; len(ticks) < limit; k++ {
		t := k * interval
		if t > end+1e-9 {
			break
		}
		if t == 0 {
			t = 0 // drop the sign of -0
		}
		ticks = append(ticks, t)
	}
	return ticks
}
