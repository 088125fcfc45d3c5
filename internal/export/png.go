package export

import (
	"fmt"
	"image/color"
	"io"
	"math"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"

	"github.com/Gaurav-Gosain/tuicut/internal/coord"
	"github.com/Gaurav-Gosain/tuicut/internal/snap"
	"github.com/Gaurav-Gosain/tuicut/internal/theme"
	"github.com/Gaurav-Gosain/tuicut/internal/timeline"
)

// SnapshotOptions controls the layout of a PNG snapshot.
type SnapshotOptions struct {
	Width       int     // image width in pixels
	HeaderWidth int     // width of the track name column
	RulerHeight int     // height of the time ruler
	TrackHeight int     // height of each track row
	FontSize    float64 // label size in points
	Playhead    float64 // seconds; negative hides the playhead
	GridSteps   []float64
}

// DefaultSnapshotOptions returns the layout used by `tuicut export png`.
func DefaultSnapshotOptions() SnapshotOptions {
	return SnapshotOptions{
		Width:       1600,
		HeaderWidth: 120,
		RulerHeight: 28,
		TrackHeight: 40,
		FontSize:    12,
		Playhead:    -1,
		GridSteps:   snap.DefaultConfig().GridSteps,
	}
}

func (o *SnapshotOptions) fill() {
	d := DefaultSnapshotOptions()
	if o.Width <= 0 {
		o.Width = d.Width
	}
	if o.HeaderWidth <= 0 {
		o.HeaderWidth = d.HeaderWidth
	}
	if o.RulerHeight <= 0 {
		o.RulerHeight = d.RulerHeight
	}
	if o.TrackHeight <= 0 {
		o.TrackHeight = d.TrackHeight
	}
	if o.FontSize <= 0 {
		o.FontSize = d.FontSize
	}
	if len(o.GridSteps) == 0 {
		o.GridSteps = d.GridSteps
	}
}

// Snapshot draws the whole sequence fitted to opts.Width.
func Snapshot(seq *timeline.Sequence, opts SnapshotOptions) (*gg.Context, error) {
	if seq == nil {
		return nil, fmt.Errorf("no sequence")
	}
	opts.fill()
	if opts.Width <= opts.HeaderWidth {
		return nil, fmt.Errorf("image width %d leaves no room for tracks", opts.Width)
	}

	duration := seq.Duration()
	if duration <= 0 {
		duration = 1
	}
	tr := coord.Transform{
		Zoom:        float64(opts.Width-opts.HeaderWidth) / duration,
		HeaderWidth: float64(opts.HeaderWidth),
		Duration:    duration,
	}
	height := opts.RulerHeight + opts.TrackHeight*len(seq.Tracks)
	if height <= opts.RulerHeight {
		height = opts.RulerHeight + opts.TrackHeight
	}

	dc := gg.NewContext(opts.Width, height)
	dc.SetColor(theme.HeaderBg())
	dc.Clear()

	f, err := truetype.Parse(gomono.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font: %v", err)
	}
	dc.SetFontFace(truetype.NewFace(f, &truetype.Options{
		Size:    opts.FontSize,
		DPI:     72,
		Hinting: font.HintingFull,
	}))

	drawRuler(dc, seq, tr, opts)
	for i, track := range seq.Tracks {
		drawTrack(dc, track, tr, opts, opts.RulerHeight+i*opts.TrackHeight)
	}
	drawMarkers(dc, seq, tr, opts, height)

	if opts.Playhead >= 0 {
		x := tr.TimeToScreen(math.Min(opts.Playhead, duration))
		dc.SetLineWidth(2)
		dc.SetColor(theme.Playhead())
		dc.DrawLine(x, 0, x, float64(height))
		dc.Stroke()
	}
	return dc, nil
}

func drawRuler(dc *gg.Context, seq *timeline.Sequence, tr coord.Transform, opts SnapshotOptions) {
	dc.SetColor(theme.RulerBg())
	dc.DrawRectangle(0, 0, float64(opts.Width), float64(opts.RulerHeight))
	dc.Fill()

	// Labels need more room than snap grid lines.
	interval := snap.GridInterval(tr.Zoom, 80, opts.GridSteps)
	fps := seq.FPS
	dc.SetLineWidth(1)
	for _, t := range snap.GridTicks(0, tr.Duration, interval, 500) {
		x := tr.TimeToScreen(t)
		dc.SetColor(theme.GridLine())
		dc.DrawLine(x, float64(opts.RulerHeight)/2, x, float64(opts.RulerHeight))
		dc.Stroke()
		dc.SetColor(theme.RulerFg())
		dc.DrawString(Timecode(t, fps), x+3, float64(opts.RulerHeight)/2)
	}
}

func drawTrack(dc *gg.Context, track *timeline.Track, tr coord.Transform, opts SnapshotOptions, top int) {
	y := float64(top)
	h := float64(opts.TrackHeight)

	dc.SetColor(theme.HeaderBg())
	dc.DrawRectangle(0, y, float64(opts.HeaderWidth), h)
	dc.Fill()
	dc.SetColor(theme.HeaderFg())
	dc.DrawStringAnchored(track.Name, 8, y+h/2, 0, 0.35)

	body := theme.ClipColor(track.Kind)
	if track.Muted {
		body = dim(body)
	}
	for _, c := range track.Clips {
		x1 := tr.TimeToScreen(c.TimelineIn)
		x2 := tr.TimeToScreen(c.TimelineOut())
		w := math.Max(x2-x1, 1)

		dc.SetColor(body)
		dc.DrawRectangle(x1, y+2, w, h-4)
		dc.Fill()
		dc.SetColor(theme.TrimHandle())
		dc.SetLineWidth(1)
		dc.DrawRectangle(x1, y+2, w, h-4)
		dc.Stroke()

		if tw, _ := dc.MeasureString(c.Name); tw+8 <= w {
			dc.SetColor(theme.ClipFg())
			dc.DrawStringAnchored(c.Name, x1+4, y+h/2, 0, 0.35)
		}
	}

	dc.SetColor(theme.GridLine())
	dc.DrawLine(0, y+h, float64(opts.Width), y+h)
	dc.Stroke()
}

func drawMarkers(dc *gg.Context, seq *timeline.Sequence, tr coord.Transform, opts SnapshotOptions, height int) {
	dc.SetLineWidth(1)
	dc.SetDash(4, 3)
	defer dc.SetDash()
	for _, m := range seq.Markers {
		x := tr.TimeToScreen(m.Time)
		dc.SetColor(theme.MarkerColor(m.Type))
		dc.DrawLine(x, float64(opts.RulerHeight)/2, x, float64(height))
		dc.Stroke()
	}
}

func dim(c color.Color) color.Color {
	r, g, b, a := c.RGBA()
	return color.RGBA64{R: uint16(r / 2), G: uint16(g / 2), B: uint16(b / 2), A: uint16(a)}
}

// WritePNG renders seq and encodes it to w.
func WritePNG(w io.Writer, seq *timeline.Sequence, opts SnapshotOptions) error {
	dc, err := Snapshot(seq, opts)
	if err != nil {
		return err
	}
	return dc.EncodePNG(w)
}

// SavePNG renders seq to a PNG file.
func SavePNG(path string, seq *timeline.Sequence, opts SnapshotOptions) error {
	dc, err := Snapshot(seq, opts)
	if err != nil {
		return err
	}
	return dc.SavePNG(path)
}
