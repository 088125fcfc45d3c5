package playback

import (
	"math"
	"testing"
	"time"
)

func TestAdvance(t *testing.T) {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	tr := New(10, 30)
	tr.Play(start)

	if !tr.Advance(start.Add(1500 * time.Millisecond)) {
		t.Fatal("Advance reported no change")
	}
	if math.Abs(tr.Position-1.5) > 1e-9 {
		t.Errorf("Position = %v, want 1.5", tr.Position)
	}

	tr.SetRate(2)
	tr.Advance(start.Add(2500 * time.Millisecond))
	if math.Abs(tr.Position-3.5) > 1e-9 {
		t.Errorf("Position = %v, want 3.5", tr.Position)
	}

	tr.Advance(start.Add(time.Minute))
	if tr.Position != 10 || tr.IsPlaying() {
		t.Errorf("playback should stop at the end: pos=%v playing=%v", tr.Position, tr.IsPlaying())
	}
}

func TestAdvanceLoops(t *testing.T) {
	start := time.Unix(0, 0)
	tr := New(4, 30)
	tr.Loop = true
	tr.Play(start)
	tr.Advance(start.Add(5 * time.Second))
	if math.Abs(tr.Position-1) > 1e-9 || !tr.IsPlaying() {
		t.Errorf("looped position = %v playing=%v", tr.Position, tr.IsPlaying())
	}
}

func TestPausedDoesNotAdvance(t *testing.T) {
	tr := New(10, 30)
	if tr.Advance(time.Now()) {
		t.Error("paused transport advanced")
	}
}

func TestPlayAtEndRewinds(t *testing.T) {
	tr := New(10, 30)
	tr.Seek(10)
	tr.Play(time.Now())
	if tr.Position != 0 {
		t.Errorf("Position = %v, want 0", tr.Position)
	}
}

func TestSeekAndToggle(t *testing.T) {
	tests := []struct {
		seek float64
		want float64
	}{
		{5, 5},
		{-2, 0},
		{50, 10},
		{math.NaN(), 10},
	}
	tr := New(10, 30)
	for _, tt := range tests {
		tr.Seek(tt.seek)
		if tr.Position != tt.want {
			t.Errorf("Seek(%v) -> %v, want %v", tt.seek, tr.Position, tt.want)
		}
	}

	tr.TogglePlayback()
	if !tr.IsPlaying() {
		t.Error("toggle did not start playback")
	}
	tr.TogglePlayback()
	if tr.IsPlaying() {
		t.Error("toggle did not pause")
	}
}

func TestStepFramesAndDuration(t *testing.T) {
	tr := New(10, 25)
	tr.StepFrames(50)
	if math.Abs(tr.Position-2) > 1e-9 {
		t.Errorf("Position = %v, want 2", tr.Position)
	}
	tr.SetDuration(1)
	if tr.Position != 1 {
		t.Errorf("SetDuration did not pull playhead back: %v", tr.Position)
	}
	if tr.Progress() != 1 {
		t.Errorf("Progress() = %v", tr.Progress())
	}
}

func TestSetRate(t *testing.T) {
	tests := []struct {
		name string
		rate float64
		want float64
	}{
		{"normal", 2, 2},
		{"too fast", 50, 10},
		{"too slow", 0.01, 0.1},
		{"nan ignored", math.NaN(), 1.5},
		{"+inf ignored", math.Inf(1), 1.5},
		{"-inf ignored", math.Inf(-1), 1.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := New(10, 30)
			tr.Rate = 1.5
			tr.SetRate(tt.rate)
			if tr.Rate != tt.want {
				t.Errorf("Rate = %v, want %v", tr.Rate, tt.want)
			}
		})
	}
}
