// Package tuicut provides the timeline editor as a reusable Bubble Tea model
// that can be embedded in other applications or served over SSH and the web.
//
// # Basic Usage
//
// Create an editor over the built-in demo sequence:
//
//	model := tuicut.New()
//	p := tea.NewProgram(model, tuicut.ProgramOptions()...)
//	if _, err := p.Run(); err != nil {
//		log.Fatal(err)
//	}
//
// # Opening a Sequence
//
//	seq, err := timeline.LoadSequence("cut.toml")
//	if err != nil {
//		return err
//	}
//	model := tuicut.New(
//		tuicut.WithSequence(seq),
//		tuicut.WithTheme("dracula"),
//		tuicut.WithSnapping(false),
//	)
//
// # Using with sip (Web Terminal)
//
//	server := sip.NewServer(sip.DefaultConfig())
//	server.Serve(ctx, func(sess sip.Session) (tea.Model, []tea.ProgramOption) {
//		return tuicut.NewForPTY(sess.Pty()), tuicut.ProgramOptions()
//	})
package tuicut

import (
	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/log"

	"github.com/Gaurav-Gosain/tuicut/internal/app"
	"github.com/Gaurav-Gosain/tuicut/internal/config"
	"github.com/Gaurav-Gosain/tuicut/internal/input"
	"github.com/Gaurav-Gosain/tuicut/internal/tape"
	"github.com/Gaurav-Gosain/tuicut/internal/theme"
	"github.com/Gaurav-Gosain/tuicut/internal/timeline"
)

// Model is the editor model. It implements tea.Model.
type Model = app.Editor

// Options configures an editor.
type Options struct {
	// Sequence is the sequence to edit. Nil opens the demo sequence.
	Sequence *timeline.Sequence

	// Theme is the color theme name (e.g., "dracula", "nord", "tokyonight").
	// Leave empty to use standard terminal colors.
	Theme string

	// ASCIIOnly uses ASCII characters instead of box drawing glyphs.
	ASCIIOnly bool

	// Zoom is the initial zoom in cells per second. Zero fits the sequence
	// to the first window size.
	Zoom float64

	// Snapping enables semantic snapping at startup.
	Snapping bool

	// Width and Height are the initial size (set automatically if 0).
	Width  int
	Height int

	// SSHMode indicates the editor runs in a remote session. Clipboard
	// copies then go through the terminal instead of the host clipboard.
	SSHMode bool

	// Script is a tape played back once the program starts.
	Script []tape.Command

	// Recorder, when set, records live input as a tape.
	Recorder *tape.Recorder

	// Logger receives structured logs. Nil discards them.
	Logger *log.Logger

	// UserConfig is a custom user configuration. If nil, the config file
	// is loaded, falling back to defaults.
	UserConfig *config.UserConfig
}

// Option is a functional option for configuring the editor.
type Option func(*Options)

// WithSequence sets the sequence to edit.
func WithSequence(seq *timeline.Sequence) Option {
	return func(o *Options) {
		o.Sequence = seq
	}
}

// WithTheme sets the color theme.
func WithTheme(name string) Option {
	return func(o *Options) {
		o.Theme = name
	}
}

// WithASCIIOnly enables ASCII-only glyphs.
func WithASCIIOnly(enabled bool) Option {
	return func(o *Options) {
		o.ASCIIOnly = enabled
	}
}

// WithZoom sets the initial zoom in cells per second. Non-positive values
// keep fit-on-open.
func WithZoom(zoom float64) Option {
	return func(o *Options) {
		if zoom > 0 {
			o.Zoom = zoom
		}
	}
}

// WithSnapping enables or disables snapping at startup.
func WithSnapping(enabled bool) Option {
	return func(o *Options) {
		o.Snapping = enabled
	}
}

// WithSize sets the initial terminal size.
func WithSize(width, height int) Option {
	return func(o *Options) {
		o.Width = width
		o.Height = height
	}
}

// WithSSHMode enables SSH mode.
func WithSSHMode(enabled bool) Option {
	return func(o *Options) {
		o.SSHMode = enabled
	}
}

// WithScript plays cmds back once the program starts.
func WithScript(cmds []tape.Command) Option {
	return func(o *Options) {
		o.Script = cmds
	}
}

// WithRecorder records live input into r.
func WithRecorder(r *tape.Recorder) Option {
	return func(o *Options) {
		o.Recorder = r
	}
}

// WithLogger sets the structured logger.
func WithLogger(l *log.Logger) Option {
	return func(o *Options) {
		o.Logger = l
	}
}

// WithUserConfig sets a custom user configuration.
func WithUserConfig(cfg *config.UserConfig) Option {
	return func(o *Options) {
		o.UserConfig = cfg
	}
}

// DefaultOptions returns the default options.
func DefaultOptions() Options {
	return Options{
		Snapping: true,
	}
}

// New creates an editor with the given options.
// This is the main entry point for using tuicut as a library.
func New(opts ...Option) *Model {
	options := DefaultOptions()
	for _, opt := range opts {
		opt(&options)
	}
	return newModel(options)
}

// PTY is the size of a pseudo terminal session.
type PTY interface {
	Width() int
	Height() int
}

// NewForPTY creates an editor sized for a PTY session. This is useful when
// serving the editor through web terminals or SSH servers.
func NewForPTY(pty PTY, opts ...Option) *Model {
	options := DefaultOptions()
	for _, opt := range opts {
		opt(&options)
	}
	options.Width = pty.Width()
	options.Height = pty.Height()
	return newModel(options)
}

func newModel(options Options) *Model {
	app.SetInputHandler(input.HandleInput)

	if options.ASCIIOnly {
		config.UseASCIIOnly = true
	}
	if options.Theme != "" {
		_ = theme.Initialize(options.Theme)
	}

	userConfig := options.UserConfig
	if userConfig == nil {
		var err error
		userConfig, err = config.LoadUserConfig()
		if err != nil {
			userConfig = config.DefaultConfig()
		}
	}

	seq := options.Sequence
	if seq == nil {
		seq = timeline.Demo()
	}

	e := app.NewEditor(seq, userConfig, options.Logger)
	e.IsSSHMode = options.SSHMode
	e.TapeRecorder = options.Recorder
	if !options.Snapping {
		e.SnapEnabled = false
	}
	if options.Zoom > 0 {
		e.Viewport.SetZoom(options.Zoom)
	} else {
		e.FitOnOpen = true
	}
	if options.Width > 0 && options.Height > 0 {
		e.Resize(options.Width, options.Height)
		if e.FitOnOpen {
			e.FitSequence()
		}
	}
	if len(options.Script) > 0 {
		e.LoadScript(options.Script)
	}
	return e
}

// ProgramOptions returns recommended tea.ProgramOption values for running
// the editor:
//
//	model := tuicut.New()
//	p := tea.NewProgram(model, tuicut.ProgramOptions()...)
func ProgramOptions() []tea.ProgramOption {
	return []tea.ProgramOption{
		tea.WithFPS(config.NormalFPS),
		tea.WithFilter(FilterMouseMotion),
	}
}

// FilterMouseMotion is a tea.WithFilter function that drops mouse motion
// unless a drag or scrub is in progress.
func FilterMouseMotion(model tea.Model, msg tea.Msg) tea.Msg {
	if _, ok := msg.(tea.MouseMotionMsg); !ok {
		return msg
	}

	e, ok := model.(*Model)
	if !ok {
		return msg
	}
	if e.Gesturing() {
		return msg
	}
	return nil
}

// Config re-exports the config package for customization.
var Config = struct {
	// LoadUserConfig loads the user's configuration file.
	LoadUserConfig func() (*config.UserConfig, error)
	// DefaultConfig returns the default configuration.
	DefaultConfig func() *config.UserConfig
	// GetConfigPath returns the path to the configuration file.
	GetConfigPath func() (string, error)
}{
	LoadUserConfig: config.LoadUserConfig,
	DefaultConfig:  config.DefaultConfig,
	GetConfigPath:  config.GetConfigPath,
}
