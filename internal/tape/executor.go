package tape

import (
	"fmt"

	tea "charm.land/bubbletea/v2"

	"github.com/Gaurav-Gosain/tuicut/internal/pointer"
)

// Executor executes tape commands against the editor.
// Pointer, wheel and key commands arrive as the same messages the terminal
// would send, so they run through the normal input path.
type Executor interface {
	// Dispatch feeds a synthesized input message through the input handler
	Dispatch(msg tea.Msg) error

	// Transport
	Play() error
	Pause() error
	Seek(sec float64) error

	// View
	SetZoom(zoom float64) error
	Fit() error

	// Markers
	AddMarker(sec float64, label string) error
}

// CommandExecutor provides a default implementation
type CommandExecutor struct {
	executor Executor
}

// NewCommandExecutor creates a new command executor
func NewCommandExecutor(executor Executor) *CommandExecutor {
	return &CommandExecutor{executor: executor}
}

// Execute executes a command. Sleep is handled by the caller's clock and is
// a no-op here.
func (ce *CommandExecutor) Execute(cmd *Command) error {
	if ce.executor == nil || cmd == nil {
		return nil
	}

	switch cmd.Type {
	case CommandTypePress, CommandTypeMove, CommandTypeRelease, CommandTypeWheel, CommandTypeKey:
		msg, ok := ToMsg(cmd)
		if !ok {
			return fmt.Errorf("line %d: cannot convert %s", cmd.Line, cmd.Type)
		}
		return ce.executor.Dispatch(msg)

	case CommandTypePlay:
		return ce.executor.Play()

	case CommandTypePause:
		return ce.executor.Pause()

	case CommandTypeSeek:
		return ce.executor.Seek(cmd.Value)

	case CommandTypeZoom:
		return ce.executor.SetZoom(cmd.Value)

	case CommandTypeFit:
		return ce.executor.Fit()

	case CommandTypeMarker:
		return ce.executor.AddMarker(cmd.Value, cmd.Label)

	default:
		return nil
	}
}

// ToMsg converts an input command into the message the terminal would have
// produced for it.
func ToMsg(cmd *Command) (tea.Msg, bool) {
	switch cmd.Type {
	case CommandTypePress:
		return tea.MouseClickMsg{X: cmd.X, Y: cmd.Y, Button: teaButton(cmd.Button), Mod: teaMod(cmd.Mods)}, true
	case CommandTypeMove:
		return tea.MouseMotionMsg{X: cmd.X, Y: cmd.Y, Button: tea.MouseLeft, Mod: teaMod(cmd.Mods)}, true
	case CommandTypeRelease:
		return tea.MouseReleaseMsg{X: cmd.X, Y: cmd.Y, Button: tea.MouseLeft, Mod: teaMod(cmd.Mods)}, true
	case CommandTypeWheel:
		var b tea.MouseButton
		switch cmd.Direction {
		case "up":
			b = tea.MouseWheelUp
		case "down":
			b = tea.MouseWheelDown
		case "left":
			b = tea.MouseWheelLeft
		case "right":
			b = tea.MouseWheelRight
		default:
			return nil, false
		}
		return tea.MouseWheelMsg{X: cmd.X, Y: cmd.Y, Button: b, Mod: teaMod(cmd.Mods)}, true
	case CommandTypeKey:
		return cmd.Key, true
	}
	return nil, false
}

func teaButton(b pointer.Button) tea.MouseButton {
	switch b {
	case pointer.ButtonMiddle:
		return tea.MouseMiddle
	case pointer.ButtonRight:
		return tea.MouseRight
	case pointer.ButtonNone:
		return tea.MouseNone
	default:
		return tea.MouseLeft
	}
}

func teaMod(m pointer.Mod) tea.KeyMod {
	var k tea.KeyMod
	if m.Contains(pointer.ModShift) {
		k |= tea.ModShift
	}
	if m.Contains(pointer.ModCtrl) {
		k |= tea.ModCtrl
	}
	if m.Contains(pointer.ModAlt) {
		k |= tea.ModAlt
	}
	if m.Contains(pointer.ModMeta) {
		k |= tea.ModMeta
	}
	return k
}
