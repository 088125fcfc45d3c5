// Package tape implements gesture tapes: line-oriented scripts that replay
// pointer, wheel and key input against the timeline editor.
package tape

import (
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/Gaurav-Gosain/tuicut/internal/pointer"
)

// CommandType is the first word of a tape line.
type CommandType string

// Tape commands.
const (
	CommandTypePress   CommandType = "Press"
	CommandTypeMove    CommandType = "Move"
	CommandTypeRelease CommandType = "Release"
	CommandTypeWheel   CommandType = "Wheel"
	CommandTypeKey     CommandType = "Key"
	CommandTypeSleep   CommandType = "Sleep"
	CommandTypePlay    CommandType = "Play"
	CommandTypePause   CommandType = "Pause"
	CommandTypeSeek    CommandType = "Seek"
	CommandTypeZoom    CommandType = "Zoom"
	CommandTypeFit     CommandType = "Fit"
	CommandTypeMarker  CommandType = "Marker"
)

// commandTypes maps lowercase names to command types.
var commandTypes = map[string]CommandType{
	"press":   CommandTypePress,
	"move":    CommandTypeMove,
	"release": CommandTypeRelease,
	"wheel":   CommandTypeWheel,
	"key":     CommandTypeKey,
	"sleep":   CommandTypeSleep,
	"play":    CommandTypePlay,
	"pause":   CommandTypePause,
	"seek":    CommandTypeSeek,
	"zoom":    CommandTypeZoom,
	"fit":     CommandTypeFit,
	"marker":  CommandTypeMarker,
}

// Command is one parsed tape line. Only the fields relevant to Type are set.
type Command struct {
	Type CommandType
	Args []string
	Line int

	// Pointer and wheel position in cells.
	X, Y int
	// Button for Press.
	Button pointer.Button
	// Mods held during Press, Move, Release and Wheel.
	Mods pointer.Mod
	// Direction for Wheel: "up", "down", "left" or "right".
	Direction string
	// Key for Key commands.
	Key tea.KeyPressMsg
	// Delay for Sleep.
	Delay time.Duration
	// Value is the seconds for Seek and Marker, or the zoom for Zoom.
	Value float64
	// Label for Marker.
	Label string
}
