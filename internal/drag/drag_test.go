package drag

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/Gaurav-Gosain/tuicut/internal/pointer"
	"github.com/Gaurav-Gosain/tuicut/internal/snap"
)

const eps = 1e-9

func near(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}

func TestCalculate(t *testing.T) {
	tests := []struct {
		name    string
		session Session
		x       float64
		params  Params
		want    Preview
	}{
		{
			name:    "move by one second",
			session: Session{Type: Move, StartX: 100, OriginalTimelineIn: 5, OriginalSourceOut: 10},
			x:       200,
			params:  Params{Zoom: 100, Speed: 1},
			want:    Preview{TimelineIn: 6, SourceIn: 0, SourceOut: 10, Duration: 10},
		},
		{
			name:    "move clamps at zero",
			session: Session{Type: Move, StartX: 200, OriginalTimelineIn: 1, OriginalSourceOut: 10},
			x:       -100,
			params:  Params{Zoom: 100, Speed: 1},
			want:    Preview{TimelineIn: 0, SourceIn: 0, SourceOut: 10, Duration: 10},
		},
		{
			name:    "move snaps to grid",
			session: Session{Type: Move, StartX: 0, OriginalTimelineIn: 5, OriginalSourceOut: 10},
			x:       150,
			params:  Params{Zoom: 100, Speed: 1, GridInterval: 1},
			want:    Preview{TimelineIn: 7, SourceIn: 0, SourceOut: 10, Duration: 10},
		},
		{
			name:    "trim left forward",
			session: Session{Type: TrimLeft, StartX: 100, OriginalTimelineIn: 5, OriginalSourceIn: 2, OriginalSourceOut: 12},
			x:       200,
			params:  Params{Zoom: 100, Speed: 1, MinDuration: 0.1},
			want:    Preview{TimelineIn: 6, SourceIn: 3, SourceOut: 12, Duration: 9},
		},
		{
			name:    "trim left stops at start of source",
			session: Session{Type: TrimLeft, StartX: 500, OriginalTimelineIn: 5, OriginalSourceIn: 2, OriginalSourceOut: 12},
			x:       0,
			params:  Params{Zoom: 100, Speed: 1, MinDuration: 0.1},
			want:    Preview{TimelineIn: 3, SourceIn: 0, SourceOut: 12, Duration: 12},
		},
		{
			name:    "trim left stops at timeline zero",
			session: Session{Type: TrimLeft, StartX: 500, OriginalTimelineIn: 1, OriginalSourceIn: 4, OriginalSourceOut: 12},
			x:       0,
			params:  Params{Zoom: 100, Speed: 1},
			want:    Preview{TimelineIn: 0, SourceIn: 3, SourceOut: 12, Duration: 9},
		},
		{
			name:    "trim left keeps minimum duration",
			session: Session{Type: TrimLeft, StartX: 0, OriginalTimelineIn: 5, OriginalSourceIn: 2, OriginalSourceOut: 12},
			x:       5000,
			params:  Params{Zoom: 100, Speed: 1, MinDuration: 0.5},
			want:    Preview{TimelineIn: 14.5, SourceIn: 11.5, SourceOut: 12, Duration: 0.5},
		},
		{
			name:    "trim left at double speed",
			session: Session{Type: TrimLeft, StartX: 0, OriginalTimelineIn: 5, OriginalSourceIn: 2, OriginalSourceOut: 12},
			x:       100,
			params:  Params{Zoom: 100, Speed: 2},
			want:    Preview{TimelineIn: 6, SourceIn: 4, SourceOut: 12, Duration: 4},
		},
		{
			name:    "trim right backward",
			session: Session{Type: TrimRight, StartX: 500, OriginalTimelineIn: 5, OriginalSourceIn: 0, OriginalSourceOut: 10},
			x:       300,
			params:  Params{Zoom: 100, Speed: 1, MinDuration: 0.1},
			want:    Preview{TimelineIn: 5, SourceIn: 0, SourceOut: 8, Duration: 8},
		},
		{
			name:    "trim right bounded by source length",
			session: Session{Type: TrimRight, StartX: 0, OriginalTimelineIn: 5, OriginalSourceIn: 0, OriginalSourceOut: 10},
			x:       1000,
			params:  Params{Zoom: 100, Speed: 1, MaxSourceDuration: 12},
			want:    Preview{TimelineIn: 5, SourceIn: 0, SourceOut: 12, Duration: 12},
		},
		{
			name:    "trim right unbounded without source length",
			session: Session{Type: TrimRight, StartX: 0, OriginalTimelineIn: 5, OriginalSourceIn: 0, OriginalSourceOut: 10},
			x:       1000,
			params:  Params{Zoom: 100, Speed: 1},
			want:    Preview{TimelineIn: 5, SourceIn: 0, SourceOut: 20, Duration: 20},
		},
		{
			name:    "trim right keeps minimum duration",
			session: Session{Type: TrimRight, StartX: 1000, OriginalTimelineIn: 5, OriginalSourceIn: 2, OriginalSourceOut: 10},
			x:       0,
			params:  Params{Zoom: 100, Speed: 2, MinDuration: 0.5},
			want:    Preview{TimelineIn: 5, SourceIn: 2, SourceOut: 3, Duration: 0.5},
		},
		{
			name:    "trim right grid snaps duration",
			session: Session{Type: TrimRight, StartX: 0, OriginalTimelineIn: 0.3, OriginalSourceIn: 0, OriginalSourceOut: 4},
			x:       140,
			params:  Params{Zoom: 100, Speed: 1, GridInterval: 1},
			want:    Preview{TimelineIn: 0.3, SourceIn: 0, SourceOut: 5, Duration: 5},
		},
		{
			name:    "invalid zoom leaves the clip untouched",
			session: Session{Type: Move, StartX: 0, OriginalTimelineIn: 5, OriginalSourceOut: 10},
			x:       300,
			params:  Params{Zoom: math.NaN(), Speed: 1},
			want:    Preview{TimelineIn: 5, SourceIn: 0, SourceOut: 10, Duration: 10},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, _ := Calculate(tt.session, tt.x, tt.params)
			if !near(got.TimelineIn, tt.want.TimelineIn) || !near(got.SourceIn, tt.want.SourceIn) ||
				!near(got.SourceOut, tt.want.SourceOut) || !near(got.Duration, tt.want.Duration) {
				t.Errorf("Calculate() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestCalculateSemanticSnapping(t *testing.T) {
	points := []snap.Point{
		{Time: 12, Type: snap.TypeClipStart, ClipID: "n"},
		{Time: 3, Type: snap.TypeMarker},
	}

	tests := []struct {
		name     string
		session  Session
		x        float64
		params   Params
		wantIn   float64
		wantOut  float64
		wantType snap.PointType
	}{
		{
			name:     "move start edge onto marker",
			session:  Session{Type: Move, OriginalTimelineIn: 5, OriginalSourceOut: 2},
			x:        -199,
			params:   Params{Zoom: 100, Speed: 1, SnapPoints: points, GridInterval: 1},
			wantIn:   3,
			wantOut:  2,
			wantType: snap.TypeMarker,
		},
		{
			name:     "move end edge against neighbour",
			session:  Session{Type: Move, OriginalTimelineIn: 5, OriginalSourceOut: 2},
			x:        499,
			params:   Params{Zoom: 100, Speed: 1, SnapPoints: points},
			wantIn:   10,
			wantOut:  2,
			wantType: snap.TypeClipStart,
		},
		{
			name:     "trim right onto neighbour",
			session:  Session{Type: TrimRight, OriginalTimelineIn: 5, OriginalSourceOut: 2},
			x:        499,
			params:   Params{Zoom: 100, Speed: 1, SnapPoints: points},
			wantIn:   5,
			wantOut:  7,
			wantType: snap.TypeClipStart,
		},
		{
			name:     "trim left onto marker",
			session:  Session{Type: TrimLeft, OriginalTimelineIn: 5, OriginalSourceIn: 4, OriginalSourceOut: 8},
			x:        -201,
			params:   Params{Zoom: 100, Speed: 1, SnapPoints: points},
			wantIn:   3,
			wantOut:  8,
			wantType: snap.TypeMarker,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, pt := Calculate(tt.session, tt.x, tt.params)
			if pt == nil || pt.Type != tt.wantType {
				t.Fatalf("snap point = %+v, want type %s", pt, tt.wantType)
			}
			if !near(got.TimelineIn, tt.wantIn) || !near(got.SourceOut, tt.wantOut) {
				t.Errorf("Calculate() = %+v, want in %v out %v", got, tt.wantIn, tt.wantOut)
			}
		})
	}
}

func TestCalculateGridFallbackWithSnapPoints(t *testing.T) {
	points := []snap.Point{{Time: 50, Type: snap.TypeMarker}}
	s := Session{Type: Move, OriginalTimelineIn: 5, OriginalSourceOut: 2}
	got, pt := Calculate(s, 140, Params{Zoom: 100, Speed: 1, SnapPoints: points, GridInterval: 1})
	if pt != nil {
		t.Errorf("unexpected snap point %+v", pt)
	}
	if got.TimelineIn != 6 {
		t.Errorf("TimelineIn = %v, want grid value 6", got.TimelineIn)
	}
}

func TestInitialPreviewSpeed(t *testing.T) {
	s := Session{Type: Move, OriginalSourceIn: 0, OriginalSourceOut: 10}
	if got := InitialPreview(s, 2).Duration; got != 5 {
		t.Errorf("initial duration at 2x = %v, want 5", got)
	}
}

func TestCalculateInvariants(t *testing.T) {
	r := rand.New(rand.NewPCG(7, 11))
	types := []Type{Move, TrimLeft, TrimRight}
	pointTypes := []snap.PointType{snap.TypePlayhead, snap.TypeClipStart, snap.TypeClipEnd, snap.TypeMarker, snap.TypeGrid}

	for i := range 5000 {
		sourceIn := r.Float64() * 20
		speed := 0.25 + r.Float64()*3.75
		minDur := r.Float64() * 0.5
		length := minDur*speed + r.Float64()*30
		s := Session{
			Type:               types[i%len(types)],
			StartX:             r.Float64() * 1000,
			OriginalTimelineIn: r.Float64() * 60,
			OriginalSourceIn:   sourceIn,
			OriginalSourceOut:  sourceIn + length,
		}
		p := Params{
			Zoom:        1 + r.Float64()*300,
			Speed:       speed,
			MinDuration: minDur,
		}
		if r.IntN(3) == 0 {
			p.GridInterval = []float64{0.1, 0.5, 1, 5}[r.IntN(4)]
		}
		if r.IntN(2) == 0 {
			for range 1 + r.IntN(8) {
				p.SnapPoints = append(p.SnapPoints, snap.Point{
					Time: r.Float64() * 120,
					Type: pointTypes[r.IntN(len(pointTypes))],
				})
			}
			p.SnapThreshold = r.Float64() * 2
		}
		if r.IntN(2) == 0 {
			p.MaxSourceDuration = r.Float64() * 80
		}
		x := (r.Float64()*2 - 1) * 20000

		got, _ := Calculate(s, x, p)
		if got.TimelineIn < 0 {
			t.Fatalf("case %d: negative timelineIn %+v", i, got)
		}
		if want := (got.SourceOut - got.SourceIn) / speed; math.Abs(got.Duration-want) > eps {
			t.Fatalf("case %d: duration %v != (out-in)/speed %v", i, got.Duration, want)
		}
		if s.Type == TrimLeft && got.SourceIn < 0 {
			t.Fatalf("case %d: negative sourceIn %+v", i, got)
		}
		if s.Type != Move && got.Duration < minDur-1e-6 {
			t.Fatalf("case %d: duration %v below minimum %v", i, got.Duration, minDur)
		}
		switch s.Type {
		case TrimLeft:
			if got.SourceOut != s.OriginalSourceOut {
				t.Fatalf("case %d: trim-left moved sourceOut %+v", i, got)
			}
		case TrimRight:
			if got.SourceIn != s.OriginalSourceIn || got.TimelineIn != s.OriginalTimelineIn {
				t.Fatalf("case %d: trim-right moved the left edge %+v", i, got)
			}
			if p.MaxSourceDuration > 0 {
				limit := math.Max(p.MaxSourceDuration, sourceIn+minDur*speed)
				if got.SourceOut > limit+1e-9 {
					t.Fatalf("case %d: sourceOut %v beyond bound %v", i, got.SourceOut, limit)
				}
			}
		}
	}
}

type recorder struct {
	starts  int
	drags   []Preview
	ends    []Preview
	snaps   []*snap.Point
	lastEnd Session
}

func (r *recorder) callbacks() Callbacks {
	return Callbacks{
		OnDragStart: func(Session) { r.starts++ },
		OnDrag:      func(_ Session, p Preview) { r.drags = append(r.drags, p) },
		OnDragEnd: func(s Session, p Preview) {
			r.lastEnd = s
			r.ends = append(r.ends, p)
		},
		OnSnapChange: func(p *snap.Point) { r.snaps = append(r.snaps, p) },
	}
}

func TestControllerLifecycle(t *testing.T) {
	bus := pointer.NewBus()
	rec := &recorder{}
	params := Params{Zoom: 100, Speed: 1, MinDuration: 0.1}
	c := NewController(bus, func() Params { return params }, rec.callbacks())

	clip := ClipState{ID: "clip", TimelineIn: 5, SourceIn: 0, SourceOut: 10}
	if !c.Press(pointer.Event{X: 100, Button: pointer.ButtonLeft}, clip, Move) {
		t.Fatal("press rejected")
	}
	if rec.starts != 1 || bus.Len() != 1 {
		t.Fatalf("starts=%d subs=%d", rec.starts, bus.Len())
	}
	if c.Press(pointer.Event{X: 100}, clip, Move) {
		t.Error("second press accepted during a drag")
	}

	bus.Dispatch(pointer.Event{Kind: pointer.Move, X: 200})
	if p, ok := c.Preview(); !ok || p.TimelineIn != 6 {
		t.Errorf("preview = %+v", p)
	}

	// configuration is read at event time
	params.Zoom = 50
	bus.Dispatch(pointer.Event{Kind: pointer.Move, X: 200})
	bus.Dispatch(pointer.Event{Kind: pointer.Release, X: 200})

	if len(rec.drags) != 2 || len(rec.ends) != 1 {
		t.Fatalf("drags=%d ends=%d", len(rec.drags), len(rec.ends))
	}
	if rec.ends[0].TimelineIn != 7 || rec.lastEnd.ClipID != "clip" {
		t.Errorf("end preview = %+v session = %+v", rec.ends[0], rec.lastEnd)
	}
	if c.Dragging() || bus.Len() != 0 {
		t.Error("session not torn down on release")
	}

	bus.Dispatch(pointer.Event{Kind: pointer.Move, X: 900})
	if len(rec.drags) != 2 {
		t.Error("moves after release still reach the controller")
	}
}

func TestControllerRejectsPress(t *testing.T) {
	clip := ClipState{ID: "clip", SourceOut: 10}
	tests := []struct {
		name   string
		ev     pointer.Event
		params Params
		typ    Type
	}{
		{"right button", pointer.Event{Button: pointer.ButtonRight}, Params{Zoom: 10}, Move},
		{"middle button", pointer.Event{Button: pointer.ButtonMiddle}, Params{Zoom: 10}, Move},
		{"disabled", pointer.Event{Button: pointer.ButtonLeft}, Params{Zoom: 10, Disabled: true}, Move},
		{"unknown type", pointer.Event{Button: pointer.ButtonLeft}, Params{Zoom: 10}, Type("slip")},
		{"NaN position", pointer.Event{Button: pointer.ButtonLeft, X: math.NaN()}, Params{Zoom: 10}, Move},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bus := pointer.NewBus()
			rec := &recorder{}
			c := NewController(bus, func() Params { return tt.params }, rec.callbacks())
			if c.Press(tt.ev, clip, tt.typ) {
				t.Fatal("press accepted")
			}
			if rec.starts != 0 || bus.Len() != 0 || c.Dragging() {
				t.Error("rejected press changed state")
			}
		})
	}
}

func TestControllerCloseMidDrag(t *testing.T) {
	bus := pointer.NewBus()
	rec := &recorder{}
	c := NewController(bus, func() Params { return Params{Zoom: 100, Speed: 1} }, rec.callbacks())

	c.Press(pointer.Event{X: 0}, ClipState{ID: "c", SourceOut: 4}, TrimRight)
	bus.Dispatch(pointer.Event{Kind: pointer.Move, X: 50})
	c.Close()
	c.Close()
	bus.Dispatch(pointer.Event{Kind: pointer.Release})

	if len(rec.ends) != 0 {
		t.Error("close fired OnDragEnd")
	}
	if bus.Len() != 0 || c.Dragging() {
		t.Error("close left the session alive")
	}
}

func TestControllerDisabledMidDrag(t *testing.T) {
	bus := pointer.NewBus()
	rec := &recorder{}
	params := Params{Zoom: 100, Speed: 1}
	c := NewController(bus, func() Params { return params }, rec.callbacks())

	c.Press(pointer.Event{X: 0}, ClipState{ID: "c", SourceOut: 4}, Move)
	params.Disabled = true
	bus.Dispatch(pointer.Event{Kind: pointer.Move, X: 50})
	bus.Dispatch(pointer.Event{Kind: pointer.Release, X: 50})

	if len(rec.drags) != 0 || len(rec.ends) != 0 {
		t.Errorf("disabled drag still reported: drags=%d ends=%d", len(rec.drags), len(rec.ends))
	}
	if c.Dragging() || bus.Len() != 0 {
		t.Error("disabling did not abandon the drag")
	}
}

func TestControllerSnapChanges(t *testing.T) {
	bus := pointer.NewBus()
	rec := &recorder{}
	params := Params{
		Zoom:       100,
		Speed:      1,
		SnapPoints: []snap.Point{{Time: 10, Type: snap.TypePlayhead}, {Time: 10, Type: snap.TypeClipEnd, ClipID: "x"}},
	}
	c := NewController(bus, func() Params { return params }, rec.callbacks())

	c.Press(pointer.Event{X: 0}, ClipState{ID: "c", TimelineIn: 5, SourceOut: 2}, Move)
	bus.Dispatch(pointer.Event{Kind: pointer.Move, X: 499})
	bus.Dispatch(pointer.Event{Kind: pointer.Move, X: 500})
	bus.Dispatch(pointer.Event{Kind: pointer.Move, X: 300})
	bus.Dispatch(pointer.Event{Kind: pointer.Release, X: 300})

	if len(rec.snaps) != 2 {
		t.Fatalf("snap changes = %d, want 2 (%v)", len(rec.snaps), rec.snaps)
	}
	if rec.snaps[0] == nil || rec.snaps[0].Type != snap.TypePlayhead {
		t.Errorf("first snap = %+v, want playhead", rec.snaps[0])
	}
	if rec.snaps[1] != nil {
		t.Errorf("snap not cleared: %+v", rec.snaps[1])
	}
}
