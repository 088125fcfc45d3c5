package app_test

import (
	"testing"

	"github.com/Gaurav-Gosain/tuicut/internal/app"
	"github.com/Gaurav-Gosain/tuicut/internal/config"
	"github.com/Gaurav-Gosain/tuicut/internal/input"
	"github.com/Gaurav-Gosain/tuicut/internal/tape"
	"github.com/Gaurav-Gosain/tuicut/internal/timeline"
)

const dragTape = `# move the interview two seconds later
Press 60 2
Move 64 2
Move 68 2
Release 68 2
Seek 3
Marker 5 beat
`

func newTapeEditor(t *testing.T) *app.Editor {
	t.Helper()
	app.SetInputHandler(input.HandleInput)
	e := app.NewEditor(timeline.Demo(), config.DefaultConfig(), nil)
	e.Resize(120, 30)
	e.SnapEnabled = false
	e.GridEnabled = false
	return e
}

func TestTapeDrivesDrag(t *testing.T) {
	e := newTapeEditor(t)
	cmds, err := tape.ParseString(dragTape)
	if err != nil {
		t.Fatalf("ParseString: %v", err)
	}

	exec := tape.NewCommandExecutor(e)
	for i := range cmds {
		if err := exec.Execute(&cmds[i]); err != nil {
			t.Fatalf("line %d: %v", cmds[i].Line, err)
		}
	}

	if got := e.Sequence.Tracks[0].Clips[1].TimelineIn; got != 8 {
		t.Errorf("TimelineIn = %v, want 8", got)
	}
	if e.Playhead() != 3 {
		t.Errorf("playhead = %v, want 3", e.Playhead())
	}
	if len(e.Sequence.Markers) != 4 {
		t.Errorf("markers = %d, want 4", len(e.Sequence.Markers))
	}
}
