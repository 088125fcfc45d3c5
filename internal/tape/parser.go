package tape

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	tea "charm.land/bubbletea/v2"

	"github.com/Gaurav-Gosain/tuicut/internal/pointer"
)

// Parse errors. ParseError wraps one of these.
var (
	ErrUnknownCommand    = errors.New("unknown command")
	ErrMissingArgument   = errors.New("missing argument")
	ErrInvalidArgument   = errors.New("invalid argument")
	ErrUnterminatedQuote = errors.New("unterminated quote")
)

// ParseError is an error on a specific tape line.
type ParseError struct {
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Parser turns lexed lines into commands.
type Parser struct {
	lexer  *Lexer
	errors []error
}

// NewParser returns a parser reading from l.
func NewParser(l *Lexer) *Parser {
	return &Parser{lexer: l}
}

// Parse reads every line. Lines that fail to parse are skipped and
// reported by Errors.
func (p *Parser) Parse() []Command {
	var cmds []Command
	for {
		words, line, unterminated, ok := p.lexer.NextLine()
		if !ok {
			return cmds
		}
		if unterminated {
			p.fail(line, ErrUnterminatedQuote)
			continue
		}
		cmd, err := parseLine(words)
		if err != nil {
			p.fail(line, err)
			continue
		}
		cmd.Line = line
		cmds = append(cmds, cmd)
	}
}

// Errors returns the errors collected by Parse.
func (p *Parser) Errors() []error {
	return p.errors
}

func (p *Parser) fail(line int, err error) {
	p.errors = append(p.errors, &ParseError{Line: line, Err: err})
}

// ParseString parses a whole tape and joins any line errors.
func ParseString(src string) ([]Command, error) {
	p := NewParser(New(src))
	cmds := p.Parse()
	return cmds, errors.Join(p.Errors()...)
}

func parseLine(words []string) (Command, error) {
	typ, ok := commandTypes[strings.ToLower(words[0])]
	if !ok {
		return Command{}, fmt.Errorf("%w %q", ErrUnknownCommand, words[0])
	}
	cmd := Command{Type: typ, Args: words[1:]}
	args := cmd.Args

	switch typ {
	case CommandTypePress, CommandTypeMove, CommandTypeRelease:
		if len(args) < 2 {
			return cmd, fmt.Errorf("%w: %s needs <x> <y>", ErrMissingArgument, typ)
		}
		x, y, err := parsePos(args[0], args[1])
		if err != nil {
			return cmd, err
		}
		cmd.X, cmd.Y = x, y
		rest := args[2:]
		if typ == CommandTypePress && len(rest) > 0 {
			if b, ok := parseButton(rest[0]); ok {
				cmd.Button = b
				rest = rest[1:]
			}
		}
		mods, err := parseMods(rest)
		if err != nil {
			return cmd, err
		}
		cmd.Mods = mods

	case CommandTypeWheel:
		if len(args) < 3 {
			return cmd, fmt.Errorf("%w: Wheel needs <direction> <x> <y>", ErrMissingArgument)
		}
		dir := strings.ToLower(args[0])
		switch dir {
		case "up", "down", "left", "right":
		default:
			return cmd, fmt.Errorf("%w: wheel direction %q", ErrInvalidArgument, args[0])
		}
		cmd.Direction = dir
		x, y, err := parsePos(args[1], args[2])
		if err != nil {
			return cmd, err
		}
		cmd.X, cmd.Y = x, y
		mods, err := parseMods(args[3:])
		if err != nil {
			return cmd, err
		}
		cmd.Mods = mods

	case CommandTypeKey:
		if len(args) < 1 {
			return cmd, fmt.Errorf("%w: Key needs <key>", ErrMissingArgument)
		}
		k, err := ParseKey(args[0])
		if err != nil {
			return cmd, err
		}
		cmd.Key = k

	case CommandTypeSleep:
		if len(args) < 1 {
			return cmd, fmt.Errorf("%w: Sleep needs <duration>", ErrMissingArgument)
		}
		d, err := time.ParseDuration(args[0])
		if err != nil || d < 0 {
			return cmd, fmt.Errorf("%w: duration %q", ErrInvalidArgument, args[0])
		}
		cmd.Delay = d

	case CommandTypeSeek, CommandTypeZoom, CommandTypeMarker:
		if len(args) < 1 {
			return cmd, fmt.Errorf("%w: %s needs a number", ErrMissingArgument, typ)
		}
		v, err := strconv.ParseFloat(args[0], 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v < 0 || (typ == CommandTypeZoom && v == 0) {
			return cmd, fmt.Errorf("%w: %s value %q", ErrInvalidArgument, typ, args[0])
		}
		cmd.Value = v
		if typ == CommandTypeMarker && len(args) > 1 {
			cmd.Label = strings.Join(args[1:], " ")
		}
	}
	return cmd, nil
}

func parsePos(xs, ys string) (int, int, error) {
	x, err := strconv.Atoi(xs)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: x %q", ErrInvalidArgument, xs)
	}
	y, err := strconv.Atoi(ys)
	if err != nil || y < 0 {
		return 0, 0, fmt.Errorf("%w: y %q", ErrInvalidArgument, ys)
	}
	return x, y, nil
}

func parseButton(s string) (pointer.Button, bool) {
	switch strings.ToLower(s) {
	case "left":
		return pointer.ButtonLeft, true
	case "middle":
		return pointer.ButtonMiddle, true
	case "right":
		return pointer.ButtonRight, true
	}
	return pointer.ButtonNone, false
}

func parseMods(words []string) (pointer.Mod, error) {
	var m pointer.Mod
	for _, w := range words {
		switch strings.ToLower(w) {
		case "shift":
			m |= pointer.ModShift
		case "ctrl", "control":
			m |= pointer.ModCtrl
		case "alt", "opt":
			m |= pointer.ModAlt
		case "meta", "cmd":
			m |= pointer.ModMeta
		default:
			return 0, fmt.Errorf("%w: modifier %q", ErrInvalidArgument, w)
		}
	}
	return m, nil
}

// namedKeys maps key names to key codes.
var namedKeys = map[string]rune{
	"space":     tea.KeySpace,
	"enter":     tea.KeyEnter,
	"return":    tea.KeyEnter,
	"esc":       tea.KeyEscape,
	"escape":    tea.KeyEscape,
	"tab":       tea.KeyTab,
	"backspace": tea.KeyBackspace,
	"delete":    tea.KeyDelete,
	"up":        tea.KeyUp,
	"down":      tea.KeyDown,
	"left":      tea.KeyLeft,
	"right":     tea.KeyRight,
	"home":      tea.KeyHome,
	"end":       tea.KeyEnd,
	"pgup":      tea.KeyPgUp,
	"pgdown":    tea.KeyPgDown,
}

// ParseKey converts a key string such as "space", "ctrl+l" or "Y" into the
// key press the terminal would report.
func ParseKey(s string) (tea.KeyPressMsg, error) {
	if s == "" {
		return tea.KeyPressMsg{}, fmt.Errorf("%w: empty key", ErrInvalidArgument)
	}
	var mods []string
	last := s
	if s != "+" {
		if strings.HasSuffix(s, "++") {
			mods = strings.Split(strings.TrimSuffix(s, "++"), "+")
			last = "+"
		} else if i := strings.LastIndex(s, "+"); i > 0 {
			mods = strings.Split(s[:i], "+")
			last = s[i+1:]
		}
	}

	var k tea.KeyPressMsg
	for _, m := range mods {
		switch strings.ToLower(m) {
		case "ctrl", "control":
			k.Mod |= tea.ModCtrl
		case "alt", "opt":
			k.Mod |= tea.ModAlt
		case "shift":
			k.Mod |= tea.ModShift
		case "meta", "cmd":
			k.Mod |= tea.ModMeta
		default:
			return tea.KeyPressMsg{}, fmt.Errorf("%w: modifier %q in key %q", ErrInvalidArgument, m, s)
		}
	}

	if code, ok := namedKeys[strings.ToLower(last)]; ok && utf8.RuneCountInString(last) > 1 {
		k.Code = code
		return k, nil
	}
	if utf8.RuneCountInString(last) != 1 {
		return tea.KeyPressMsg{}, fmt.Errorf("%w: key %q", ErrInvalidArgument, s)
	}
	r, _ := utf8.DecodeRuneInString(last)
	k.Code = r
	if k.Mod&(tea.ModCtrl|tea.ModAlt|tea.ModMeta) == 0 {
		k.Text = last
	}
	return k, nil
}
