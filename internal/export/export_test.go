package export

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/atotto/clipboard"

	"github.com/Gaurav-Gosain/tuicut/internal/timeline"
)

func TestTimecode(t *testing.T) {
	tests := []struct {
		name string
		sec  float64
		fps  float64
		want string
	}{
		{"zero", 0, 30, "00:00:00:00"},
		{"one frame", 1.0 / 30, 30, "00:00:00:01"},
		{"minute", 61.5, 24, "00:01:01:12"},
		{"hour", 3600, 25, "01:00:00:00"},
		{"negative clamps", -4, 30, "00:00:00:00"},
		{"bad fps", 1, 0, "00:00:01:00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Timecode(tt.sec, tt.fps); got != tt.want {
				t.Errorf("Timecode(%v, %v) = %s, want %s", tt.sec, tt.fps, got, tt.want)
			}
		})
	}
}

func TestDropFrameTimecode(t *testing.T) {
	tests := []struct {
		frames int
		want   string
	}{
		{0, "00:00:00;00"},
		{1799, "00:00:59;29"},
		{1800, "00:01:00;02"},
		{17982, "00:10:00;00"},
		{17983, "00:10:00;01"},
	}
	for _, tt := range tests {
		if got := FramesToTimecode(tt.frames, 29.97); got != tt.want {
			t.Errorf("FramesToTimecode(%d) = %s, want %s", tt.frames, got, tt.want)
		}
	}
	if IsDropFrame(30) || !IsDropFrame(59.94) {
		t.Error("IsDropFrame misclassified a rate")
	}
}

func edlSequence() *timeline.Sequence {
	seq := timeline.NewSequence("Promo Cut", 30)
	v := seq.AddTrack("V1", timeline.KindVideo)
	v.Clips = []*timeline.Clip{
		{ID: "b", Name: "broll", AssetPath: "/media/b-roll take2.mov", SourceIn: 0, SourceOut: 4, Speed: 2, TimelineIn: 5},
		{ID: "a", Name: "intro", AssetPath: "intro.mp4", SourceIn: 1, SourceOut: 6, Speed: 1, TimelineIn: 0},
	}
	a := seq.AddTrack("A1", timeline.KindAudio)
	a.Clips = []*timeline.Clip{
		{ID: "m", Name: "music", SourceIn: 0, SourceOut: 10, Speed: 1, TimelineIn: 0},
	}
	return seq
}

func TestGenerateEDL(t *testing.T) {
	edl, err := GenerateEDL(edlSequence(), 0)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{
		"TITLE: Promo Cut",
		"FCM: NON-DROP FRAME",
		"001  INTRO    V     C        00:00:01:00 00:00:06:00 00:00:00:00 00:00:05:00",
		"002  BROLLTAK V     C        00:00:00:00 00:00:04:00 00:00:05:00 00:00:07:00",
		"M2   BROLLTAK 060.0                00:00:00:00",
		"* FROM CLIP NAME:  intro",
		"* MEDIA PATH:  /media/b-roll take2.mov",
	} {
		if !strings.Contains(edl, want) {
			t.Errorf("EDL missing %q\n%s", want, edl)
		}
	}
	if strings.Index(edl, "intro") > strings.Index(edl, "broll") {
		t.Error("events are not in timeline order")
	}
}

func TestGenerateEDLAudioTrack(t *testing.T) {
	edl, err := GenerateEDL(edlSequence(), 1)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(edl, "001  AX       A     C") {
		t.Errorf("audio event not on channel A with default reel:\n%s", edl)
	}
	if strings.Contains(edl, "MEDIA PATH") {
		t.Error("clip without an asset should have no media path")
	}
}

func TestGenerateEDLErrors(t *testing.T) {
	if _, err := GenerateEDL(nil, 0); err == nil {
		t.Error("expected error for nil sequence")
	}
	if _, err := GenerateEDL(edlSequence(), 5); err == nil {
		t.Error("expected error for out-of-range track")
	}
}

func TestSavePNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "demo.png")
	opts := DefaultSnapshotOptions()
	opts.Width = 640
	opts.Playhead = 3
	if err := SavePNG(path, timeline.Demo(), opts); err != nil {
		t.Fatalf("SavePNG: %v", err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	b := img.Bounds()
	wantH := opts.RulerHeight + opts.TrackHeight*len(timeline.Demo().Tracks)
	if b.Dx() != 640 || b.Dy() != wantH {
		t.Errorf("image is %dx%d, want 640x%d", b.Dx(), b.Dy(), wantH)
	}
}

func TestWritePNGRejectsNarrowImage(t *testing.T) {
	var buf bytes.Buffer
	opts := DefaultSnapshotOptions()
	opts.Width = 50
	if err := WritePNG(&buf, timeline.Demo(), opts); err == nil {
		t.Error("expected an error when the header fills the image")
	}
}

func TestCopyTimecode(t *testing.T) {
	if clipboard.Unsupported {
		t.Skip("no clipboard on this system")
	}
	var got string
	orig := writeClipboard
	writeClipboard = func(s string) error { got = s; return nil }
	t.Cleanup(func() { writeClipboard = orig })

	tc, err := CopyTimecode(2.5, 30)
	if err != nil {
		t.Fatal(err)
	}
	if tc != "00:00:02:15" || got != tc {
		t.Errorf("copied %q, returned %q", got, tc)
	}
}
