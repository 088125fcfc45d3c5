// Package main implements tuicut, a terminal timeline editor. Clips are
// moved and trimmed with the mouse, the playhead is scrubbed on the ruler,
// and edits snap to the playhead, clip edges, markers and a zoom-aware grid.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/fang"
	tint "github.com/lrstanley/bubbletint/v2"
	"github.com/spf13/cobra"

	"github.com/Gaurav-Gosain/tuicut/internal/theme"
)

// Version information (set by goreleaser)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
	builtBy = "unknown"
)

// Global flags
var (
	debugMode    bool
	cpuProfile   string
	asciiOnly    bool
	themeName    string
	listThemes   bool
	previewTheme string
	initialZoom  float64
	fps          float64
	noSnap       bool
	gridSnap     bool
	noFollow     bool
	recordPath   string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "tuicut [sequence.toml]",
		Short: "Terminal timeline editor",
		Long: `tuicut - terminal timeline editor

Move and trim clips with the mouse, scrub the playhead on the ruler and let
edits snap to the playhead, clip edges, markers and the zoom-aware grid.
Without a sequence file the built-in demo sequence is opened.`,
		Example: `  # Open the demo sequence
  tuicut

  # Open a sequence file
  tuicut cut.toml

  # Start at 8 cells per second with snapping off
  tuicut cut.toml --zoom 8 --no-snap

  # Run with a specific theme
  tuicut --theme dracula

  # Record your gestures as a tape
  tuicut --record session.tape

  # Serve the editor over SSH
  tuicut ssh --port 2222

  # Export the first video track as an EDL
  tuicut export edl cut.toml -o cut.edl`,
		Version: version,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if previewTheme != "" {
				return previewThemeColors(previewTheme)
			}

			if listThemes {
				if err := theme.Initialize("default"); err != nil {
					return fmt.Errorf("failed to initialize themes: %w", err)
				}
				for _, t := range tint.TintIDs() {
					fmt.Println(t)
				}
				return nil
			}

			path := ""
			if len(args) > 0 {
				path = args[0]
			}
			return runLocal(path, nil)
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&cpuProfile, "cpuprofile", "", "Write CPU profile to file")
	rootCmd.PersistentFlags().BoolVar(&asciiOnly, "ascii-only", false, "Use ASCII characters instead of box drawing glyphs")
	rootCmd.PersistentFlags().StringVar(&themeName, "theme", "", "Color theme to use (e.g., dracula, nord, tokyonight). Leave empty to use standard terminal colors without theming")
	rootCmd.PersistentFlags().BoolVar(&listThemes, "list-themes", false, "List all available themes and exit")
	rootCmd.PersistentFlags().StringVar(&previewTheme, "preview-theme", "", "Preview a theme's 16 ANSI colors")
	rootCmd.PersistentFlags().Float64Var(&initialZoom, "zoom", 0, "Initial zoom in cells per second (default: fit the sequence to the window)")
	rootCmd.PersistentFlags().Float64Var(&fps, "fps", 0, "Timecode frame rate (default: from the sequence or config)")
	rootCmd.PersistentFlags().BoolVar(&noSnap, "no-snap", false, "Start with snapping disabled")
	rootCmd.PersistentFlags().BoolVar(&gridSnap, "grid", false, "Start with grid snapping enabled")
	rootCmd.PersistentFlags().BoolVar(&noFollow, "no-follow", false, "Do not follow the playhead during playback")
	rootCmd.Flags().StringVar(&recordPath, "record", "", "Record mouse and key input to a tape file")

	var sshPort, sshHost, sshKeyPath, sshSequence string

	sshCmd := &cobra.Command{
		Use:   "ssh",
		Short: "Run tuicut as SSH server",
		Long: `Run tuicut as an SSH server

Every SSH session gets its own editor. Edits are never written back to the
sequence file. The server generates a host key automatically if not
specified.`,
		Example: `  # Start SSH server on default port
  tuicut ssh

  # Start on custom port with a sequence
  tuicut ssh --port 2222 --sequence cut.toml

  # Specify custom host key
  tuicut ssh --key-path /path/to/host_key`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runSSHServer(sshHost, sshPort, sshKeyPath, sshSequence)
		},
	}

	sshCmd.Flags().StringVar(&sshPort, "port", "2222", "SSH server port")
	sshCmd.Flags().StringVar(&sshHost, "host", "localhost", "SSH server host")
	sshCmd.Flags().StringVar(&sshKeyPath, "key-path", "", "Path to SSH host key (auto-generated if not specified)")
	sshCmd.Flags().StringVar(&sshSequence, "sequence", "", "Sequence file opened by every session (default: demo)")

	var webSequence string

	webCmd := &cobra.Command{
		Use:   "web",
		Short: "Serve tuicut in the browser",
		Long: `Serve tuicut to browsers through a web terminal

Every browser session gets its own editor.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runWebServer(webSequence)
		},
	}
	webCmd.Flags().StringVar(&webSequence, "sequence", "", "Sequence file opened by every session (default: demo)")

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage tuicut configuration",
		Long:  `Manage tuicut configuration file and settings`,
	}

	configPathCmd := &cobra.Command{
		Use:   "path",
		Short: "Print configuration file path",
		Long:  `Print the path to the tuicut configuration file`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return printConfigPath()
		},
	}

	configEditCmd := &cobra.Command{
		Use:   "edit",
		Short: "Edit configuration in $EDITOR",
		Long: `Open the tuicut configuration file in your default editor

The editor is determined by checking $EDITOR, $VISUAL, or common editors
like vim, vi, nano, and emacs in that order.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return editConfigFile()
		},
	}

	var resetYes bool
	configResetCmd := &cobra.Command{
		Use:   "reset",
		Short: "Reset configuration to defaults",
		Long: `Reset the tuicut configuration file to default settings

This will overwrite your existing configuration after confirmation.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return resetConfigToDefaults(resetYes)
		},
	}
	configResetCmd.Flags().BoolVarP(&resetYes, "yes", "y", false, "Skip the confirmation prompt")

	configCmd.AddCommand(configPathCmd, configEditCmd, configResetCmd)

	keybindsCmd := &cobra.Command{
		Use:     "keybinds",
		Aliases: []string{"keys", "kb"},
		Short:   "View keybinding configuration",
		Long:    `View and inspect tuicut keybinding configuration`,
	}

	keybindsListCmd := &cobra.Command{
		Use:   "list",
		Short: "List all keybindings",
		Long:  `Display all configured keybindings in a formatted table`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return listKeybindings()
		},
	}

	keybindsCmd.AddCommand(keybindsListCmd)

	tapeCmd := &cobra.Command{
		Use:   "tape",
		Short: "Run and validate .tape gesture scripts",
		Long: `Run and validate .tape gesture scripts

Tape files drive the editor deterministically with presses, moves,
releases, wheel notches, keys and transport commands. Record one with
'tuicut --record file.tape'.`,
		Example: `  # Watch a tape drive the editor
  tuicut tape play demo.tape

  # Play a tape against a sequence file
  tuicut tape play demo.tape --sequence cut.toml

  # Validate tape file syntax
  tuicut tape validate demo.tape`,
	}

	var tapeSequence string
	tapePlayCmd := &cobra.Command{
		Use:   "play <file.tape>",
		Short: "Run a tape file in interactive mode",
		Long: `Execute a tape script while displaying the editor

Press ctrl+p to pause and resume playback.`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runTapeInteractive(args[0], tapeSequence)
		},
	}
	tapePlayCmd.Flags().StringVar(&tapeSequence, "sequence", "", "Sequence file to open (default: demo)")

	tapeValidateCmd := &cobra.Command{
		Use:   "validate <file.tape>",
		Short: "Validate a tape file without running it",
		Long:  `Check if a tape file is syntactically correct`,
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return validateTapeFile(args[0])
		},
	}

	tapeCmd.AddCommand(tapePlayCmd, tapeValidateCmd)

	var exportOut string
	var exportTrack, exportWidth int
	var exportPlayhead float64

	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Export a sequence as an EDL or PNG snapshot",
	}

	exportEDLCmd := &cobra.Command{
		Use:   "edl <sequence.toml>",
		Short: "Write a CMX3600 EDL for one track",
		Example: `  # Print the first track's EDL
  tuicut export edl cut.toml

  # Write the audio track to a file
  tuicut export edl cut.toml --track 2 -o music.edl`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runExportEDL(args[0], exportTrack, exportOut)
		},
	}
	exportEDLCmd.Flags().IntVar(&exportTrack, "track", 0, "Track index to export")
	exportEDLCmd.Flags().StringVarP(&exportOut, "output", "o", "", "Output file (default: stdout)")

	exportPNGCmd := &cobra.Command{
		Use:   "png <sequence.toml>",
		Short: "Render the timeline to a PNG image",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runExportPNG(args[0], exportOut, exportWidth, exportPlayhead)
		},
	}
	exportPNGCmd.Flags().StringVarP(&exportOut, "output", "o", "timeline.png", "Output file")
	exportPNGCmd.Flags().IntVar(&exportWidth, "width", 0, "Image width in pixels (default 1600)")
	exportPNGCmd.Flags().Float64Var(&exportPlayhead, "playhead", -1, "Draw the playhead at this time in seconds")

	exportCmd.AddCommand(exportEDLCmd, exportPNGCmd)

	rootCmd.AddCommand(sshCmd, webCmd, configCmd, keybindsCmd, tapeCmd, exportCmd)

	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(fmt.Sprintf("%s\nCommit: %s\nBuilt: %s\nBy: %s", version, commit, date, builtBy)),
	); err != nil {
		os.Exit(1)
	}
}
