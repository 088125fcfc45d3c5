// Package timeline holds the sequence model edited by tuicut: tracks, clips
// with their source ranges, and markers.
package timeline

import (
	"fmt"
	"math"
	"slices"

	"github.com/google/uuid"
)

// TrackKind identifies what a track carries.
type TrackKind string

// Track kinds.
const (
	KindVideo   TrackKind = "video"
	KindAudio   TrackKind = "audio"
	KindCaption TrackKind = "caption"
	KindOverlay TrackKind = "overlay"
)

// Valid reports whether k is a known track kind.
func (k TrackKind) Valid() bool {
	switch k {
	case KindVideo, KindAudio, KindCaption, KindOverlay:
		return true
	}
	return false
}

// MarkerType classifies a marker.
type MarkerType string

// Marker types.
const (
	MarkerGeneric MarkerType = "generic"
	MarkerChapter MarkerType = "chapter"
	MarkerHook    MarkerType = "hook"
	MarkerCTA     MarkerType = "cta"
	MarkerTodo    MarkerType = "todo"
)

// ClipRange is the span of source material a clip plays, and the rate it
// plays it at.
type ClipRange struct {
	SourceIn  float64
	SourceOut float64
	Speed     float64
}

// Rate returns the effective speed, treating zero, negative and non-finite
// speeds as 1.
func (r ClipRange) Rate() float64 {
	return NormalizeSpeed(r.Speed)
}

// Duration returns the timeline length of the range.
func (r ClipRange) Duration() float64 {
	return (r.SourceOut - r.SourceIn) / r.Rate()
}

// NormalizeSpeed maps invalid speeds to 1.
func NormalizeSpeed(speed float64) float64 {
	if speed <= 0 || math.IsNaN(speed) || math.IsInf(speed, 0) {
		return 1
	}
	return speed
}

// Clip is a placed piece of source media.
type Clip struct {
	ID         string  `toml:"id"`
	Name       string  `toml:"name"`
	AssetPath  string  `toml:"asset"`
	SourceIn   float64 `toml:"source_in"`
	SourceOut  float64 `toml:"source_out"`
	Speed      float64 `toml:"speed"`
	TimelineIn float64 `toml:"timeline_in"`
}

// Range returns the clip's source range.
func (c *Clip) Range() ClipRange {
	return ClipRange{SourceIn: c.SourceIn, SourceOut: c.SourceOut, Speed: c.Speed}
}

// Rate returns the clip's effective speed.
func (c *Clip) Rate() float64 {
	return NormalizeSpeed(c.Speed)
}

// Duration is the clip's length on the timeline in seconds.
func (c *Clip) Duration() float64 {
	return c.Range().Duration()
}

// TimelineOut is where the clip ends on the timeline.
func (c *Clip) TimelineOut() float64 {
	return c.TimelineIn + c.Duration()
}

// ContainsTime reports whether t falls within [TimelineIn, TimelineOut).
func (c *Clip) ContainsTime(t float64) bool {
	return t >= c.TimelineIn && t < c.TimelineOut()
}

// TimelineToSource maps a timeline time inside the clip to a source time.
func (c *Clip) TimelineToSource(t float64) float64 {
	return c.SourceIn + (t-c.TimelineIn)*c.Rate()
}

// Overlaps reports whether two clips share any timeline time.
func (c *Clip) Overlaps(other *Clip) bool {
	return c.TimelineIn < other.TimelineOut() && other.TimelineIn < c.TimelineOut()
}

// Track is an ordered lane of clips.
type Track struct {
	ID      string    `toml:"id"`
	Name    string    `toml:"name"`
	Kind    TrackKind `toml:"kind"`
	Muted   bool      `toml:"muted"`
	Locked  bool      `toml:"locked"`
	Visible *bool     `toml:"visible"`
	Clips   []*Clip   `toml:"clips"`
}

// IsVisible reports whether the track is shown. Tracks are visible unless
// explicitly hidden.
func (t *Track) IsVisible() bool {
	return t.Visible == nil || *t.Visible
}

// SetVisible shows or hides the track.
func (t *Track) SetVisible(v bool) {
	t.Visible = &v
}

// SortClips orders the track's clips by timeline position.
func (t *Track) SortClips() {
	slices.SortStableFunc(t.Clips, func(a, b *Clip) int {
		switch {
		case a.TimelineIn < b.TimelineIn:
			return -1
		case a.TimelineIn > b.TimelineIn:
			return 1
		}
		return 0
	})
}

// ClipAt returns the clip playing at sec, if any.
func (t *Track) ClipAt(sec float64) *Clip {
	for _, c := range t.Clips {
		if c.ContainsTime(sec) {
			return c
		}
	}
	return nil
}

// Marker is a labelled point in time.
type Marker struct {
	ID    string     `toml:"id"`
	Time  float64    `toml:"time"`
	Label string     `toml:"label"`
	Type  MarkerType `toml:"type"`
}

// Sequence is the edited timeline.
type Sequence struct {
	ID      string    `toml:"id"`
	Name    string    `toml:"name"`
	FPS     float64   `toml:"fps"`
	Tracks  []*Track  `toml:"tracks"`
	Markers []*Marker `toml:"markers"`
}

// NewSequence creates an empty sequence.
func NewSequence(name string, fps float64) *Sequence {
	return &Sequence{ID: NewID(), Name: name, FPS: fps}
}

// NewID returns a fresh identifier for sequences, tracks, clips and markers.
func NewID() string {
	return uuid.New().String()
}

// Duration is the latest clip end across all tracks.
func (s *Sequence) Duration() float64 {
	var d float64
	for _, t := range s.Tracks {
		for _, c := range t.Clips {
			d = math.Max(d, c.TimelineOut())
		}
	}
	return d
}

// AddTrack appends a new empty track.
func (s *Sequence) AddTrack(name string, kind TrackKind) *Track {
	t := &Track{ID: NewID(), Name: name, Kind: kind}
	s.Tracks = append(s.Tracks, t)
	return t
}

// AddClip places a clip on the track at index trackIdx.
func (s *Sequence) AddClip(trackIdx int, c *Clip) error {
	if trackIdx < 0 || trackIdx >= len(s.Tracks) {
		return fmt.Errorf("track %d out of range", trackIdx)
	}
	if c.ID == "" {
		c.ID = NewID()
	}
	t := s.Tracks[trackIdx]
	t.Clips = append(t.Clips, c)
	t.SortClips()
	return nil
}

// AddMarker inserts a marker keeping markers ordered by time.
func (s *Sequence) AddMarker(t float64, label string, typ MarkerType) *Marker {
	if typ == "" {
		typ = MarkerGeneric
	}
	m := &Marker{ID: NewID(), Time: t, Label: label, Type: typ}
	s.Markers = append(s.Markers, m)
	s.sortMarkers()
	return m
}

func (s *Sequence) sortMarkers() {
	slices.SortStableFunc(s.Markers, func(a, b *Marker) int {
		switch {
		case a.Time < b.Time:
			return -1
		case a.Time > b.Time:
			return 1
		}
		return 0
	})
}

// FindClip looks a clip up by ID and returns it with its track index.
func (s *Sequence) FindClip(id string) (*Clip, int) {
	for i, t := range s.Tracks {
		for _, c := range t.Clips {
			if c.ID == id {
				return c, i
			}
		}
	}
	return nil, -1
}

// ApplyEdit commits a finished drag to the clip with the given ID.
func (s *Sequence) ApplyEdit(id string, timelineIn, sourceIn, sourceOut float64) bool {
	c, idx := s.FindClip(id)
	if c == nil {
		return false
	}
	c.TimelineIn = timelineIn
	c.SourceIn = sourceIn
	c.SourceOut = sourceOut
	s.Tracks[idx].SortClips()
	return true
}

// NextMarker returns the first marker strictly after t.
func (s *Sequence) NextMarker(t float64) *Marker {
	for _, m := range s.Markers {
		if m.Time > t {
			return m
		}
	}
	return nil
}

// PrevMarker returns the last marker strictly before t.
func (s *Sequence) PrevMarker(t float64) *Marker {
	for i := len(s.Markers) - 1; i >= 0; i-- {
		if s.Markers[i].Time < t {
			return s.Markers[i]
		}
	}
	return nil
}
