package tape

import (
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
)

// minSleep is the shortest pause worth writing as a Sleep line.
const minSleep = 50 * time.Millisecond

// Recorder turns live input into tape lines, inserting Sleep lines for the
// pauses between events.
type Recorder struct {
	lines []string
	last  time.Time
	now   func() time.Time
}

// NewRecorder returns an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{now: time.Now}
}

// RecordMsg records a mouse or key message. Other messages are ignored.
func (r *Recorder) RecordMsg(msg tea.Msg) {
	switch msg := msg.(type) {
	case tea.MouseClickMsg:
		m := msg.Mouse()
		line := fmt.Sprintf("Press %d %d %s", m.X, m.Y, buttonName(m.Button))
		r.add(line + modWords(m.Mod))
	case tea.MouseMotionMsg:
		m := msg.Mouse()
		r.add(fmt.Sprintf("Move %d %d", m.X, m.Y) + modWords(m.Mod))
	case tea.MouseReleaseMsg:
		m := msg.Mouse()
		r.add(fmt.Sprintf("Release %d %d", m.X, m.Y) + modWords(m.Mod))
	case tea.MouseWheelMsg:
		m := msg.Mouse()
		dir := ""
		switch m.Button {
		case tea.MouseWheelUp:
			dir = "up"
		case tea.MouseWheelDown:
			dir = "down"
		case tea.MouseWheelLeft:
			dir = "left"
		case tea.MouseWheelRight:
			dir = "right"
		default:
			return
		}
		r.add(fmt.Sprintf("Wheel %s %d %d", dir, m.X, m.Y) + modWords(m.Mod))
	case tea.KeyPressMsg:
		r.add("Key " + quote(msg.String()))
	}
}

// RecordCommand records a non-input command such as Play or Seek.
func (r *Recorder) RecordCommand(typ CommandType, args ...string) {
	words := append([]string{string(typ)}, args...)
	for i := 1; i < len(words); i++ {
		words[i] = quote(words[i])
	}
	r.add(strings.Join(words, " "))
}

func (r *Recorder) add(line string) {
	now := r.now()
	if !r.last.IsZero() {
		if gap := now.Sub(r.last); gap >= minSleep {
			r.lines = append(r.lines, "Sleep "+gap.Round(10*time.Millisecond).String())
		}
	}
	r.last = now
	r.lines = append(r.lines, line)
}

// Len returns the number of recorded lines.
func (r *Recorder) Len() int {
	return len(r.lines)
}

// String renders the recording as a tape.
func (r *Recorder) String() string {
	var sb strings.Builder
	sb.WriteString("# tuicut gesture tape\n")
	for _, l := range r.lines {
		sb.WriteString(l)
		sb.WriteByte('\n')
	}
	return sb.String()
}

func buttonName(b tea.MouseButton) string {
	switch b {
	case tea.MouseMiddle:
		return "middle"
	case tea.MouseRight:
		return "right"
	default:
		return "left"
	}
}

func modWords(m tea.KeyMod) string {
	var sb strings.Builder
	if m.Contains(tea.ModShift) {
		sb.WriteString(" shift")
	}
	if m.Contains(tea.ModCtrl) {
		sb.WriteString(" ctrl")
	}
	if m.Contains(tea.ModAlt) {
		sb.WriteString(" alt")
	}
	if m.Contains(tea.ModMeta) {
		sb.WriteString(" meta")
	}
	return sb.String()
}

func quote(s string) string {
	if s == "" || strings.ContainsAny(s, " \t#\"\\") {
		return `"` + strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(s) + `"`
	}
	return s
}
