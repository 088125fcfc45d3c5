// Package playback keeps the playhead position and play/pause state.
package playback

import (
	"math"
	"time"
)

// Transport is the editor's playhead clock.
type Transport struct {
	Position float64 // seconds
	Duration float64 // seconds; playback stops here
	Rate     float64 // 1.0 is real time
	FPS      float64
	Loop     bool

	playing    bool
	lastUpdate time.Time
}

// New returns a paused transport at zero.
func New(duration, fps float64) *Transport {
	if fps <= 0 || math.IsNaN(fps) || math.IsInf(fps, 0) {
		fps = 30
	}
	return &Transport{Duration: math.Max(duration, 0), Rate: 1, FPS: fps}
}

// IsPlaying reports whether the playhead is advancing.
func (t *Transport) IsPlaying() bool {
	return t.playing
}

// Play starts playback from the current position, rewinding first if the
// playhead sits at the end.
func (t *Transport) Play(now time.Time) {
	if t.playing {
		return
	}
	if t.Position >= t.Duration {
		t.Position = 0
	}
	t.playing = true
	t.lastUpdate = now
}

// Pause stops playback.
func (t *Transport) Pause() {
	t.playing = false
}

// TogglePlayback flips between playing and paused.
func (t *Transport) TogglePlayback() {
	if t.playing {
		t.Pause()
		return
	}
	t.Play(time.Now())
}

// Seek moves the playhead, clamped to [0, Duration].
func (t *Transport) Seek(sec float64) {
	if math.IsNaN(sec) || math.IsInf(sec, 0) {
		return
	}
	t.Position = math.Min(math.Max(sec, 0), t.Duration)
}

// SetDuration updates the end of the sequence, pulling the playhead back
// when it would fall past it.
func (t *Transport) SetDuration(d float64) {
	if math.IsNaN(d) || math.IsInf(d, 0) || d < 0 {
		return
	}
	t.Duration = d
	if t.Position > d {
		t.Position = d
	}
}

// Advance moves the playhead by the wall time elapsed since the previous
// call. It returns true when the position changed.
func (t *Transport) Advance(now time.Time) bool {
	if !t.playing {
		return false
	}
	elapsed := now.Sub(t.lastUpdate).Seconds()
	t.lastUpdate = now
	if elapsed <= 0 {
		return false
	}

	before := t.Position
	t.Position += elapsed * t.Rate
	if t.Position >= t.Duration {
		if t.Loop && t.Duration > 0 {
			t.Position = math.Mod(t.Position, t.Duration)
		} else {
			t.Position = t.Duration
			t.playing = false
		}
	}
	return t.Position != before
}

// StepFrames pauses and moves the playhead by n frames.
func (t *Transport) StepFrames(n int) {
	t.Pause()
	t.Seek(t.Position + float64(n)/t.FPS)
}

// SetRate sets the playback rate, limited to [0.1, 10].
func (t *Transport) SetRate(rate float64) {
	if math.IsNaN(rate) || math.IsInf(rate, 0) {
		return
	}
	t.Rate = math.Min(math.Max(rate, 0.1), 10)
}

// Progress returns the playhead position as a fraction of the duration.
func (t *Transport) Progress() float64 {
	if t.Duration <= 0 {
		return 0
	}
	return t.Position / t.Duration
}
