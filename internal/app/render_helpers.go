package app

import (
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"
	uv "github.com/charmbracelet/ultraviolet"
	"github.com/charmbracelet/x/ansi"

	"github.com/Gaurav-Gosain/tuicut/internal/config"
)

// cell is one character cell of an offscreen frame. An empty Content marks
// the trailing half of a wide character.
type cell struct {
	Content string
	Fg      color.Color
	Bg      color.Color
	Bold    bool
}

// grid is an offscreen frame the timeline is painted into before it is
// turned into styled text.
type grid struct {
	w, h  int
	cells []cell
}

func newGrid(w, h int) *grid {
	w, h = max(w, 0), max(h, 0)
	g := &grid{w: w, h: h, cells: make([]cell, w*h)}
	for i := range g.cells {
		g.cells[i].Content = " "
	}
	return g
}

func (g *grid) at(x, y int) *cell {
	if x < 0 || y < 0 || x >= g.w || y >= g.h {
		return nil
	}
	return &g.cells[y*g.w+x]
}

// fill paints r with bg and clears its text.
func (g *grid) fill(r uv.Rectangle, bg color.Color) {
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			if c := g.at(x, y); c != nil {
				*c = cell{Content: " ", Bg: bg}
			}
		}
	}
}

// glyph overwrites the character at (x, y). A nil bg keeps the background
// already there.
func (g *grid) glyph(x, y int, s string, fg, bg color.Color) {
	c := g.at(x, y)
	if c == nil {
		return
	}
	c.Content, c.Fg, c.Bold = s, fg, false
	if bg != nil {
		c.Bg = bg
	}
}

// text writes s starting at (x, y), truncated to width cells. It returns the
// number of cells written. A nil bg keeps the background already there.
func (g *grid) text(x, y, width int, s string, fg, bg color.Color, bold bool) int {
	if width <= 0 {
		return 0
	}
	s = ansi.Truncate(s, width, ellipsis())
	col := 0
	for _, r := range s {
		ch := string(r)
		w := ansi.StringWidth(ch)
		if w == 0 || col+w > width {
			continue
		}
		if c := g.at(x+col, y); c != nil {
			c.Content, c.Fg, c.Bold = ch, fg, bold
			if bg != nil {
				c.Bg = bg
			}
		}
		if w == 2 {
			if c := g.at(x+col+1, y); c != nil {
				c.Content = ""
				if bg != nil {
					c.Bg = bg
				}
			}
		}
		col += w
	}
	return col
}

func ellipsis() string {
	if config.UseASCIIOnly {
		return "~"
	}
	return "…"
}

// String renders the frame, merging runs of equally styled cells into one
// escape sequence.
func (g *grid) String() string {
	var sb strings.Builder
	for y := range g.h {
		if y > 0 {
			sb.WriteByte('\n')
		}
		row := g.cells[y*g.w : (y+1)*g.w]
		for i := 0; i < len(row); {
			j := i + 1
			for j < len(row) && sameStyle(row[i], row[j]) {
				j++
			}
			var run strings.Builder
			for _, c := range row[i:j] {
				run.WriteString(c.Content)
			}
			sb.WriteString(renderStyledText(cellStyle(row[i]), run.String()))
			i = j
		}
	}
	return sb.String()
}

func sameStyle(a, b cell) bool {
	return a.Bold == b.Bold && a.Fg == b.Fg && a.Bg == b.Bg
}

func cellStyle(c cell) lipgloss.Style {
	s := lipgloss.NewStyle()
	if isColorSafe(c.Fg) {
		s = s.Foreground(c.Fg)
	}
	if isColorSafe(c.Bg) {
		s = s.Background(c.Bg)
	}
	if c.Bold {
		s = s.Bold(true)
	}
	return s
}

func styleToANSI(s lipgloss.Style) (prefix string, suffix string) {
	var te ansi.Style

	fg := s.GetForeground()
	bg := s.GetBackground()

	if _, ok := fg.(lipgloss.NoColor); !ok && fg != nil {
		te = te.ForegroundColor(ansi.Color(fg))
	}
	if _, ok := bg.(lipgloss.NoColor); !ok && bg != nil {
		te = te.BackgroundColor(ansi.Color(bg))
	}
	if s.GetBold() {
		te = te.Bold()
	}

	ansiStr := te.String()
	if ansiStr != "" {
		return ansiStr, "\x1b[0m"
	}
	return "", ""
}

func renderStyledText(style lipgloss.Style, text string) string {
	prefix, suffix := styleToANSI(style)
	if prefix == "" {
		return text
	}
	return prefix + text + suffix
}

func isColorSafe(c color.Color) bool {
	if c == nil {
		return false
	}
	defer func() {
		_ = recover()
	}()
	_, _, _, _ = c.RGBA()
	return true
}

// dimColor halves a color toward black, for muted tracks.
func dimColor(c color.Color) color.Color {
	if !isColorSafe(c) {
		return c
	}
	r, g, b, _ := c.RGBA()
	return color.RGBA{R: uint8(r >> 9), G: uint8(g >> 9), B: uint8(b >> 9), A: 0xff}
}
