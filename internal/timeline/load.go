package timeline

import (
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// DefaultFPS is used when a sequence file does not set one.
const DefaultFPS = 30.0

// LoadSequence reads a TOML sequence description from path.
func LoadSequence(path string) (*Sequence, error) {
	// #nosec G304 - the path is supplied by the user on the command line
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read sequence file: %w", err)
	}
	return ParseSequence(data)
}

// ParseSequence decodes and normalizes a TOML sequence document.
func ParseSequence(data []byte) (*Sequence, error) {
	var seq Sequence
	if err := toml.Unmarshal(data, &seq); err != nil {
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			row, col := derr.Position()
			return nil, fmt.Errorf("failed to parse sequence at line %d, column %d: %w", row, col, err)
		}
		return nil, fmt.Errorf("failed to parse sequence: %w", err)
	}
	if err := seq.normalize(); err != nil {
		return nil, err
	}
	return &seq, nil
}

// normalize fills defaults and rejects clips that break the range invariants.
func (s *Sequence) normalize() error {
	if s.ID == "" {
		s.ID = NewID()
	}
	if s.Name == "" {
		s.Name = "Untitled"
	}
	if s.FPS <= 0 || !finite(s.FPS) {
		s.FPS = DefaultFPS
	}

	for ti, t := range s.Tracks {
		if t.ID == "" {
			t.ID = NewID()
		}
		if t.Kind == "" {
			t.Kind = KindVideo
		}
		if !t.Kind.Valid() {
			return fmt.Errorf("track %d: unknown kind %q", ti, t.Kind)
		}
		if t.Name == "" {
			t.Name = fmt.Sprintf("%s %d", t.Kind, ti+1)
		}
		for ci, c := range t.Clips {
			if err := c.validate(); err != nil {
				return fmt.Errorf("track %d clip %d: %w", ti, ci, err)
			}
			if c.ID == "" {
				c.ID = NewID()
			}
			if c.Speed == 0 {
				c.Speed = 1
			}
		}
		t.SortClips()
	}

	for _, m := range s.Markers {
		if m.ID == "" {
			m.ID = NewID()
		}
		if m.Type == "" {
			m.Type = MarkerGeneric
		}
	}
	s.sortMarkers()
	return nil
}

func (c *Clip) validate() error {
	for _, v := range []float64{c.SourceIn, c.SourceOut, c.TimelineIn, c.Speed} {
		if !finite(v) {
			return errors.New("non-finite value")
		}
	}
	switch {
	case c.SourceIn < 0:
		return fmt.Errorf("source_in %.3f is negative", c.SourceIn)
	case c.SourceOut < c.SourceIn:
		return fmt.Errorf("source_out %.3f is before source_in %.3f", c.SourceOut, c.SourceIn)
	case c.TimelineIn < 0:
		return fmt.Errorf("timeline_in %.3f is negative", c.TimelineIn)
	case c.Speed < 0:
		return fmt.Errorf("speed %.3f is negative", c.Speed)
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Demo returns the sequence opened when no file is given.
func Demo() *Sequence {
	seq := NewSequence("Demo", DefaultFPS)

	v1 := seq.AddTrack("V1", KindVideo)
	v1.Clips = []*Clip{
		{ID: NewID(), Name: "intro", AssetPath: "intro.mp4", SourceIn: 0, SourceOut: 6, Speed: 1, TimelineIn: 0},
		{ID: NewID(), Name: "interview", AssetPath: "interview.mp4", SourceIn: 12, SourceOut: 30, Speed: 1, TimelineIn: 6},
		{ID: NewID(), Name: "b-roll", AssetPath: "broll.mp4", SourceIn: 0, SourceOut: 10, Speed: 2, TimelineIn: 26},
	}

	v2 := seq.AddTrack("V2", KindOverlay)
	v2.Clips = []*Clip{
		{ID: NewID(), Name: "lower third", AssetPath: "lower-third.mov", SourceIn: 0, SourceOut: 4, Speed: 1, TimelineIn: 8},
	}

	a1 := seq.AddTrack("A1", KindAudio)
	a1.Clips = []*Clip{
		{ID: NewID(), Name: "music", AssetPath: "music.wav", SourceIn: 5, SourceOut: 40, Speed: 1, TimelineIn: 0},
	}

	c1 := seq.AddTrack("CC", KindCaption)
	c1.Clips = []*Clip{
		{ID: NewID(), Name: "captions", AssetPath: "captions.srt", SourceIn: 0, SourceOut: 20, Speed: 1, TimelineIn: 6},
	}

	seq.AddMarker(6, "Interview", MarkerChapter)
	seq.AddMarker(14.5, "Hook", MarkerHook)
	seq.AddMarker(29, "Call to action", MarkerCTA)
	return seq
}
