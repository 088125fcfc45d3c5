package snap

import (
	"github.com/Gaurav-Gosain/tuicut/internal/timeline"
)

// Defaults used when the user config leaves snapping settings unset.
const (
	DefaultThresholdPx      = 2.0
	DefaultMinGridSpacingPx = 8.0

	// maxGridTicks bounds the number of grid candidates per rebuild.
	maxGridTicks = 4096
)

// DefaultGridSteps is the ladder of grid intervals in seconds, finest first.
var DefaultGridSteps = []float64{1.0 / 30, 0.1, 0.25, 0.5, 1, 2, 5, 10, 15, 30, 60, 120, 300, 600}

// Config holds the tunables for candidate generation and resolution.
type Config struct {
	ThresholdPx      float64
	MinGridSpacingPx float64
	GridSteps        []float64
}

// DefaultConfig returns the stock snapping settings.
func DefaultConfig() Config {
	return Config{
		ThresholdPx:      DefaultThresholdPx,
		MinGridSpacingPx: DefaultMinGridSpacingPx,
		GridSteps:        DefaultGridSteps,
	}
}

// Query describes the timeline state candidates are built for.
type Query struct {
	Zoom            float64
	Playhead        float64
	IncludePlayhead bool
	// ExcludeClipID leaves out the edges of the clip being edited.
	ExcludeClipID string
	IncludeGrid   bool
	VisibleStart  float64
	VisibleEnd    float64
}

// Index is the candidate set for one timeline state.
type Index struct {
	cfg    Config
	points []Point
	zoom   float64
	grid   float64
}

// NewIndex returns an empty index using cfg.
func NewIndex(cfg Config) *Index {
	return &Index{cfg: cfg}
}

// Config returns the index settings.
func (x *Index) Config() Config { return x.cfg }

// SetConfig replaces the settings. Call Rebuild afterwards.
func (x *Index) SetConfig(cfg Config) { x.cfg = cfg }

// Rebuild regenerates candidates from seq.
func (x *Index) Rebuild(seq *timeline.Sequence, q Query) {
	x.zoom = q.Zoom
	x.grid = GridInterval(q.Zoom, x.cfg.MinGridSpacingPx, x.cfg.GridSteps)
	x.points = Collect(seq, q, x.grid)
}

// Points returns the candidates in resolution order.
func (x *Index) Points() []Point { return x.points }

// GridInterval returns the grid step chosen for the last rebuild's zoom.
func (x *Index) GridInterval() float64 { return x.grid }

// Threshold returns the snap distance in seconds at the last rebuild's zoom.
func (x *Index) Threshold() float64 {
	return Threshold(x.zoom, x.cfg.ThresholdPx)
}

// Resolve snaps raw against the current candidates.
func (x *Index) Resolve(raw float64) Result {
	return Resolve(raw, x.points, x.Threshold())
}

// Collect lists candidates for seq in a fixed order: playhead, clip edges by
// track then clip (start before end), markers, then grid ticks ascending.
func Collect(seq *timeline.Sequence, q Query, gridInterval float64) []Point {
	var pts []Point
	if q.IncludePlayhead {
		pts = append(pts, Point{Time: q.Playhead, Type: TypePlayhead})
	}
	if seq != nil {
		for _, t := range seq.Tracks {
			if !t.IsVisible() {
				continue
			}
			for _, c := range t.Clips {
				if c.ID == q.ExcludeClipID && q.ExcludeClipID != "" {
					continue
				}
				pts = append(pts,
					Point{Time: c.TimelineIn, Type: TypeClipStart, ClipID: c.ID, Label: c.Name},
					Point{Time: c.TimelineOut(), Type: TypeClipEnd, ClipID: c.ID, Label: c.Name},
				)
			}
		}
		for _, m := range seq.Markers {
			pts = append(pts, Point{Time: m.Time, Type: TypeMarker, Label: m.Label})
		}
	}
	if q.IncludeGrid {
		for _, tick := range GridTicks(q.VisibleStart, q.VisibleEnd, gridInterval, maxGridTicks) {
			pts = append(pts, Point{Time: tick, Type: TypeGrid})
		}
	}
	return pts
}

// Semantic returns pts without grid ticks.
func Semantic(pts []Point) []Point {
	out := make([]Point, 0, len(pts))
	for _, p := range pts {
		if p.Type != TypeGrid {
			out = append(out, p)
		}
	}
	return out
}
