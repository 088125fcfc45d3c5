package app

import (
	"fmt"
	"image/color"
	"math"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	uv "github.com/charmbracelet/ultraviolet"

	"github.com/Gaurav-Gosain/tuicut/internal/config"
	"github.com/Gaurav-Gosain/tuicut/internal/coord"
	"github.com/Gaurav-Gosain/tuicut/internal/export"
	"github.com/Gaurav-Gosain/tuicut/internal/snap"
	"github.com/Gaurav-Gosain/tuicut/internal/theme"
	"github.com/Gaurav-Gosain/tuicut/internal/timeline"
)

// rulerLabelSpacing is the minimum distance between ruler labels in cells.
const rulerLabelSpacing = 10

// GetCanvas composes the timeline and its overlays.
func (e *Editor) GetCanvas() *lipgloss.Canvas {
	canvas := lipgloss.NewCanvas(e.Width, e.Height)

	layers := []*lipgloss.Layer{
		lipgloss.NewLayer(e.renderTimeline()).X(0).Y(0).Z(config.ZIndexTimeline).ID("timeline"),
	}
	layers = append(layers, e.renderOverlays()...)

	for _, layer := range layers {
		canvas.Compose(layer)
	}
	return canvas
}

// View renders the editor.
func (e *Editor) View() tea.View {
	var view tea.View
	if e.Width > 0 && e.Height > 0 {
		view.SetContent(lipgloss.Sprint(e.GetCanvas().Render()))
	}
	view.AltScreen = true
	// Motion is only reported while a button is held, which is all a drag
	// or scrub needs.
	view.MouseMode = tea.MouseModeCellMotion
	view.ReportFocus = true
	return view
}

// renderTimeline paints the ruler, tracks and status bar.
func (e *Editor) renderTimeline() string {
	l := e.Layout()
	g := newGrid(e.Width, e.Height)
	tr := e.Transform()

	e.drawRuler(g, l, tr)
	for _, row := range l.Tracks {
		e.drawTrack(g, row, tr)
	}
	e.drawGuides(g, l, tr)
	if !l.Status.Empty() {
		e.drawStatusBar(g, l.Status)
	}
	return g.String()
}

// column maps a time to a screen column, reporting whether it lands inside
// the lanes.
func column(tr coord.Transform, sec float64, lanes uv.Rectangle) (int, bool) {
	x := int(math.Floor(tr.TimeToScreen(sec)))
	return x, x >= lanes.Min.X && x < lanes.Max.X
}

func (e *Editor) drawRuler(g *grid, l Layout, tr coord.Transform) {
	if l.Ruler.Empty() && l.RulerHeader.Empty() {
		return
	}
	g.fill(l.RulerHeader, theme.HeaderBg())
	g.text(1, l.RulerHeader.Min.Y, l.RulerHeader.Dx()-1, e.Sequence.Name, theme.HeaderFg(), nil, true)
	if l.RulerHeader.Dy() > 1 {
		g.text(1, l.RulerHeader.Min.Y+1, l.RulerHeader.Dx()-1, fmt.Sprintf("%gfps", e.FPS()), theme.HelpGray(), nil, false)
	}

	g.fill(l.Ruler, theme.RulerBg())
	if l.Ruler.Empty() {
		return
	}

	zoom := e.Viewport.State().Zoom
	start, end := e.Viewport.VisibleRange()
	steps := e.Snaps.Config().GridSteps
	tickY := l.Ruler.Max.Y - 1

	minor := snap.GridInterval(zoom, e.Snaps.Config().MinGridSpacingPx, steps)
	for _, t := range snap.GridTicks(start, end, minor, l.Ruler.Dx()) {
		if x, ok := column(tr, t, l.Ruler); ok {
			g.glyph(x, tickY, config.TickGlyph(), theme.GridLine(), nil)
		}
	}

	major := snap.GridInterval(zoom, rulerLabelSpacing, steps)
	nextFree := l.Ruler.Min.X
	for _, t := range snap.GridTicks(start, end, major, l.Ruler.Dx()) {
		x, ok := column(tr, t, l.Ruler)
		if !ok || x < nextFree {
			continue
		}
		g.glyph(x, tickY, config.TickGlyph(), theme.RulerFg(), nil)
		if l.Ruler.Dy() > 1 {
			n := g.text(x, l.Ruler.Min.Y, l.Ruler.Max.X-x, rulerLabel(t, major), theme.RulerFg(), nil, false)
			nextFree = x + n + 1
		}
	}

	for _, m := range e.Sequence.Markers {
		if x, ok := column(tr, m.Time, l.Ruler); ok {
			g.glyph(x, l.Ruler.Min.Y, config.MarkerGlyph(), theme.MarkerColor(m.Type), nil)
		}
	}
}

// rulerLabel formats t as m:ss, with tenths when the ruler interval is
// below one second.
func rulerLabel(t, interval float64) string {
	t = math.Max(t, 0)
	mins := int(t / 60)
	secs := t - float64(mins*60)
	if interval < 1 {
		return fmt.Sprintf("%d:%04.1f", mins, secs)
	}
	return fmt.Sprintf("%d:%02d", mins, int(math.Round(secs)))
}

func (e *Editor) drawTrack(g *grid, row TrackRow, tr coord.Transform) {
	track := e.Sequence.Tracks[row.Index]
	focused := row.Index == e.FocusedTrack

	headerFg := theme.HeaderFg()
	headerBg := theme.HeaderBg()
	if focused {
		headerFg, headerBg = theme.HeaderBg(), theme.HeaderActive()
	}
	g.fill(row.Header, headerBg)
	g.text(row.Header.Min.X+1, row.Header.Min.Y, row.Header.Dx()-1, track.Name, headerFg, nil, focused)

	mute, lock := config.TrackFlagGlyphs()
	flag := func(r uv.Rectangle, label string, on bool) {
		fg := theme.TrackFlagOff()
		if on {
			fg = theme.TrackFlagOn()
		}
		g.text(r.Min.X, r.Min.Y, r.Dx(), "["+label+"]", fg, nil, on)
	}
	flag(row.Mute, mute, track.Muted)
	flag(row.Lock, lock, track.Locked)

	g.fill(row.Lane, nil)
	if e.GridEnabled {
		zoom := e.Viewport.State().Zoom
		interval := snap.GridInterval(zoom, e.Snaps.Config().MinGridSpacingPx, e.Snaps.Config().GridSteps)
		start, end := e.Viewport.VisibleRange()
		for _, t := range snap.GridTicks(start, end, interval, row.Lane.Dx()) {
			if x, ok := column(tr, t, row.Lane); ok {
				for y := row.Lane.Min.Y; y < row.Lane.Max.Y; y++ {
					g.glyph(x, y, gridGlyph(), theme.GridLine(), nil)
				}
			}
		}
	}

	dragID, preview, dragging := e.DragPreview()
	for _, c := range track.Clips {
		shown := c
		if dragging && c.ID == dragID {
			moved := *c
			moved.TimelineIn, moved.SourceIn, moved.SourceOut = preview.TimelineIn, preview.SourceIn, preview.SourceOut
			shown = &moved
		}
		e.drawClip(g, row, track, shown, tr, dragging && c.ID == dragID)
	}
}

func gridGlyph() string {
	if config.UseASCIIOnly {
		return "."
	}
	return "·"
}

func (e *Editor) drawClip(g *grid, row TrackRow, track *timeline.Track, c *timeline.Clip, tr coord.Transform, dragging bool) {
	x1, x2 := clipSpan(c, tr)
	lane := row.Lane
	if x2 <= lane.Min.X || x1 >= lane.Max.X {
		return
	}

	bg := theme.ClipColor(track.Kind)
	switch {
	case dragging:
		bg = theme.ClipDragging()
	case c.ID == e.SelectedClipID:
		bg = theme.ClipSelected()
	}
	fg := theme.ClipFg()
	if track.Muted {
		bg, fg = dimColor(bg), dimColor(fg)
	}

	visible := uv.Rect(x1, lane.Min.Y, x2-x1, lane.Dy()).Intersect(lane)
	g.fill(visible, bg)

	labelX := max(x1+1, lane.Min.X)
	labelW := min(x2-1, lane.Max.X) - labelX
	g.text(labelX, lane.Min.Y, labelW, c.Name, fg, nil, c.ID == e.SelectedClipID)
	if lane.Dy() > 1 {
		info := fmt.Sprintf("%.2fs", c.Duration())
		if rate := c.Rate(); rate != 1 {
			info += fmt.Sprintf(" %gx", rate)
		}
		g.text(labelX, lane.Min.Y+1, labelW, info, fg, nil, false)
	}

	if x2-x1 >= config.MinClipWidthForHandles && !track.Locked {
		left, right := config.HandleGlyphs()
		for y := lane.Min.Y; y < lane.Max.Y; y++ {
			if x1 >= lane.Min.X {
				g.glyph(x1, y, left, theme.TrimHandle(), nil)
			}
			if x2-1 < lane.Max.X {
				g.glyph(x2-1, y, right, theme.TrimHandle(), nil)
			}
		}
	}
}

// drawGuides draws the snap guide and the playhead over the ruler and lanes.
func (e *Editor) drawGuides(g *grid, l Layout, tr coord.Transform) {
	if len(l.Tracks) == 0 && l.Ruler.Empty() {
		return
	}
	lanes := l.Ruler
	top := l.Ruler.Min.Y
	bottom := l.Ruler.Max.Y
	if n := len(l.Tracks); n > 0 {
		if lanes.Empty() {
			lanes = l.Tracks[0].Lane
			top = lanes.Min.Y
		}
		lanes = lanes.Union(l.Tracks[n-1].Lane)
		bottom = l.Tracks[n-1].Lane.Max.Y
	}

	if e.ActiveSnap != nil {
		if x, ok := column(tr, e.ActiveSnap.Time, lanes); ok {
			for y := top; y < bottom; y++ {
				g.glyph(x, y, config.SnapGuideGlyph(), theme.SnapGuide(), nil)
			}
		}
	}

	if x, ok := column(tr, e.Playhead(), lanes); ok {
		for y := top; y < bottom; y++ {
			g.glyph(x, y, config.PlayheadGlyph(), theme.Playhead(), nil)
		}
	}
}

// FPS returns the timecode frame rate.
func (e *Editor) FPS() float64 {
	if e.Sequence.FPS > 0 {
		return e.Sequence.FPS
	}
	return e.Transport.FPS
}

// drawStatusBar writes the transport state and toggles on the left and the
// tape state on the right.
func (e *Editor) drawStatusBar(g *grid, r uv.Rectangle) {
	bg := theme.StatusBarBg()
	fg := theme.StatusBarFg()
	accent := theme.StatusBarAccent()
	g.fill(r, bg)

	x := r.Min.X + 1
	put := func(s string, c color.Color, bold bool) {
		x += g.text(x, r.Min.Y, r.Max.X-x, s, c, nil, bold)
	}

	state := "PAUSE"
	if e.Transport.IsPlaying() {
		state = "PLAY"
	}
	put(state+" ", accent, true)
	put(export.Timecode(e.Playhead(), e.FPS()), accent, true)
	put(" / "+export.Timecode(e.Sequence.Duration(), e.FPS()), fg, false)
	put(fmt.Sprintf("  %.1f c/s", e.Viewport.State().Zoom), fg, false)

	toggle := func(name string, on bool) {
		c := theme.HelpGray()
		if on {
			c = accent
		}
		put("  "+name, c, on)
	}
	toggle("SNAP", e.SnapEnabled)
	toggle("GRID", e.GridEnabled)
	toggle("FOLLOW", e.FollowEnabled)

	if c := e.SelectedClip(); c != nil {
		put("  "+c.Name, fg, false)
	}

	var right []string
	if e.TapeRecorder != nil {
		right = append(right, config.TapeRecordingIndicator)
	}
	if s := e.ScriptStatus(); s != "" {
		right = append(right, s)
	}
	if len(right) > 0 {
		text := strings.Join(right, " | ") + " "
		rx := r.Max.X - len(text)
		if rx > x+1 {
			g.text(rx, r.Min.Y, len(text), text, theme.NotificationWarning(), nil, true)
		}
	}
}
