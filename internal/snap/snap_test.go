package snap

import (
	"math"
	"testing"

	"github.com/Gaurav-Gosain/tuicut/internal/timeline"
)

func TestResolvePriority(t *testing.T) {
	tests := []struct {
		name       string
		raw        float64
		candidates []Point
		threshold  float64
		wantType   PointType
		wantTime   float64
	}{
		{
			name: "playhead beats clip end at same time",
			raw:  10.02,
			candidates: []Point{
				{Time: 10, Type: TypeClipEnd, ClipID: "a"},
				{Time: 10, Type: TypePlayhead},
			},
			threshold: 0.1,
			wantType:  TypePlayhead,
			wantTime:  10,
		},
		{
			name: "clip edge beats nearer grid tick",
			raw:  4.98,
			candidates: []Point{
				{Time: 5, Type: TypeGrid},
				{Time: 4.9, Type: TypeClipStart},
			},
			threshold: 0.1,
			wantType:  TypeClipStart,
			wantTime:  4.9,
		},
		{
			name: "marker beats grid",
			raw:  2.01,
			candidates: []Point{
				{Time: 2, Type: TypeGrid},
				{Time: 2.05, Type: TypeMarker},
			},
			threshold: 0.1,
			wantType:  TypeMarker,
			wantTime:  2.05,
		},
		{
			name: "nearest wins within a priority",
			raw:  3,
			candidates: []Point{
				{Time: 3.08, Type: TypeClipEnd},
				{Time: 2.97, Type: TypeClipStart},
			},
			threshold: 0.1,
			wantType:  TypeClipStart,
			wantTime:  2.97,
		},
		{
			name: "out of range higher priority is ignored",
			raw:  1,
			candidates: []Point{
				{Time: 1.5, Type: TypePlayhead},
				{Time: 1.02, Type: TypeGrid},
			},
			threshold: 0.1,
			wantType:  TypeGrid,
			wantTime:  1.02,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Resolve(tt.raw, tt.candidates, tt.threshold)
			if !res.Snapped {
				t.Fatal("expected snap")
			}
			if res.Point.Type != tt.wantType || res.Time != tt.wantTime {
				t.Errorf("got %s at %v, want %s at %v", res.Point.Type, res.Time, tt.wantType, tt.wantTime)
			}
		})
	}
}

func TestResolveTieKeepsFirst(t *testing.T) {
	candidates := []Point{
		{Time: 4, Type: TypeClipEnd, ClipID: "first"},
		{Time: 6, Type: TypeClipStart, ClipID: "second"},
	}
	res := Resolve(5, candidates, 1)
	if !res.Snapped || res.Point.ClipID != "first" {
		t.Errorf("tie should resolve to first candidate, got %+v", res.Point)
	}
}

func TestResolveNoMatch(t *testing.T) {
	tests := []struct {
		name      string
		raw       float64
		threshold float64
	}{
		{"nothing in range", 5, 0.1},
		{"NaN raw", math.NaN(), 1},
		{"negative threshold", 1, -1},
		{"infinite threshold", 1, math.Inf(1)},
	}

	candidates := []Point{{Time: 1, Type: TypeGrid}}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Resolve(tt.raw, candidates, tt.threshold)
			if res.Snapped || res.Point != nil {
				t.Errorf("expected no snap, got %+v", res)
			}
		})
	}

	if res := Resolve(7, nil, 1); res.Snapped || res.Time != 7 {
		t.Errorf("empty candidate set: %+v", res)
	}
}

func TestSnapToGrid(t *testing.T) {
	tests := []struct {
		t, interval, want float64
	}{
		{6.5, 1, 7},
		{6.4, 1, 6},
		{1.3, 0.5, 1.5},
		{3.7, 0, 3.7},
		{3.7, -1, 3.7},
	}
	for _, tt := range tests {
		if got := SnapToGrid(tt.t, tt.interval); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("SnapToGrid(%v, %v) = %v, want %v", tt.t, tt.interval, got, tt.want)
		}
	}
}

func TestGridInterval(t *testing.T) {
	tests := []struct {
		name string
		zoom float64
		want float64
	}{
		{"very zoomed in uses frames", 300, 1.0 / 30},
		{"ten cells per second", 10, 1},
		{"two cells per second", 2, 5},
		{"zoomed far out falls back to largest", 0.001, 600},
		{"invalid zoom", 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GridInterval(tt.zoom, DefaultMinGridSpacingPx, DefaultGridSteps)
			if math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("GridInterval(%v) = %v, want %v", tt.zoom, got, tt.want)
			}
		})
	}
}

func TestThreshold(t *testing.T) {
	if got := Threshold(100, 2); got != 0.02 {
		t.Errorf("Threshold(100, 2) = %v", got)
	}
	if got := Threshold(0, 2); got != 0 {
		t.Errorf("Threshold with zero zoom = %v", got)
	}
}

func TestGridTicks(t *testing.T) {
	got := GridTicks(0.5, 3, 1, 100)
	want := []float64{1, 2, 3}
	if len(got) != len(want) {
		t.Fatalf("GridTicks = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("tick %d = %v, want %v", i, got[i], want[i])
		}
	}
	if got := GridTicks(0, 1000, 1, 10); len(got) != 10 {
		t.Errorf("limit not applied: %d ticks", len(got))
	}
}

func testSequence() *timeline.Sequence {
	seq := timeline.NewSequence("t", 30)
	seq.AddTrack("V1", timeline.KindVideo)
	seq.AddTrack("V2", timeline.KindVideo)
	_ = seq.AddClip(0, &timeline.Clip{ID: "a", SourceOut: 5, Speed: 1, TimelineIn: 0})
	_ = seq.AddClip(0, &timeline.Clip{ID: "b", SourceOut: 10, Speed: 2, TimelineIn: 5})
	_ = seq.AddClip(1, &timeline.Clip{ID: "c", SourceOut: 3, Speed: 1, TimelineIn: 2})
	seq.AddMarker(7, "m", timeline.MarkerGeneric)
	return seq
}

func TestCollectOrder(t *testing.T) {
	pts := Collect(testSequence(), Query{
		Zoom:            10,
		Playhead:        4,
		IncludePlayhead: true,
		ExcludeClipID:   "b",
		IncludeGrid:     true,
		VisibleStart:    0,
		VisibleEnd:      2,
	}, 1)

	want := []struct {
		typ  PointType
		time float64
	}{
		{TypePlayhead, 4},
		{TypeClipStart, 0}, {TypeClipEnd, 5},
		{TypeClipStart, 2}, {TypeClipEnd, 5},
		{TypeMarker, 7},
		{TypeGrid, 0}, {TypeGrid, 1}, {TypeGrid, 2},
	}
	if len(pts) != len(want) {
		t.Fatalf("got %d points, want %d: %+v", len(pts), len(want), pts)
	}
	for i, w := range want {
		if pts[i].Type != w.typ || pts[i].Time != w.time {
			t.Errorf("point %d = %s@%v, want %s@%v", i, pts[i].Type, pts[i].Time, w.typ, w.time)
		}
	}
}

func TestCollectSkipsHiddenTracks(t *testing.T) {
	seq := testSequence()
	seq.Tracks[1].SetVisible(false)
	for _, p := range Collect(seq, Query{}, 0) {
		if p.ClipID == "c" {
			t.Fatal("hidden track clip offered as snap point")
		}
	}
}

func TestIndexResolve(t *testing.T) {
	x := NewIndex(DefaultConfig())
	x.Rebuild(testSequence(), Query{Zoom: 100, Playhead: 10, IncludePlayhead: true})

	if got := x.Threshold(); math.Abs(got-0.02) > 1e-12 {
		t.Fatalf("Threshold() = %v", got)
	}
	// clip b ends at 10 together with the playhead
	res := x.Resolve(10.01)
	if !res.Snapped || res.Point.Type != TypePlayhead {
		t.Errorf("expected playhead snap, got %+v", res)
	}
	if res := x.Resolve(10.5); res.Snapped {
		t.Errorf("unexpected snap far from candidates: %+v", res)
	}
	if len(Semantic(x.Points())) != len(x.Points()) {
		t.Error("no grid ticks were requested")
	}
}
