package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime/pprof"
	"syscall"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/Gaurav-Gosain/tuicut/internal/app"
	"github.com/Gaurav-Gosain/tuicut/internal/config"
	"github.com/Gaurav-Gosain/tuicut/internal/logging"
	"github.com/Gaurav-Gosain/tuicut/internal/server"
	"github.com/Gaurav-Gosain/tuicut/internal/tape"
	"github.com/Gaurav-Gosain/tuicut/internal/timeline"
	"github.com/Gaurav-Gosain/tuicut/pkg/tuicut"
)

// newLogger returns the structured logger for the CLI. Debug mode lowers the
// level so the in-app log is mirrored to stderr.
func newLogger() *log.Logger {
	level := "info"
	if debugMode {
		level = "debug"
	}
	return logging.New(os.Stderr, level)
}

// loadConfig loads the user config and applies the global CLI flags.
func loadConfig(logger *log.Logger) *config.UserConfig {
	userConfig, err := config.LoadUserConfig()
	if err != nil {
		logger.Warn("Failed to load config, using defaults", "err", err)
		userConfig = config.DefaultConfig()
	}

	config.ApplyOverrides(config.Overrides{
		ASCIIOnly: asciiOnly,
		ThemeName: themeName,
		Zoom:      initialZoom,
		FPS:       fps,
		NoSnap:    noSnap,
		Grid:      gridSnap,
		NoFollow:  noFollow,
		Debug:     debugMode,
	}, userConfig)
	return userConfig
}

// openSequence loads path, or the demo sequence when path is empty. The
// --fps flag overrides the file's frame rate.
func openSequence(path string) (*timeline.Sequence, error) {
	seq := timeline.Demo()
	if path != "" {
		var err error
		if seq, err = timeline.LoadSequence(path); err != nil {
			return nil, err
		}
	}
	if fps > 0 {
		seq.FPS = fps
	}
	return seq, nil
}

func runLocal(path string, script []tape.Command) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("tuicut needs an interactive terminal")
	}

	logger := newLogger()
	userConfig := loadConfig(logger)

	seq, err := openSequence(path)
	if err != nil {
		return err
	}

	if cpuProfile != "" {
		f, err := os.Create(cpuProfile)
		if err != nil {
			return fmt.Errorf("could not create CPU profile: %w", err)
		}
		defer func() {
			if closeErr := f.Close(); closeErr != nil {
				logger.Warn("Failed to close CPU profile file", "err", closeErr)
			}
		}()

		if err := pprof.StartCPUProfile(f); err != nil {
			return fmt.Errorf("could not start CPU profile: %w", err)
		}
		defer pprof.StopCPUProfile()
	}

	if debugMode {
		configPath, _ := config.GetConfigPath()
		logger.Debug("Configuration", "path", configPath)
	}

	var recorder *tape.Recorder
	if recordPath != "" {
		recorder = tape.NewRecorder()
	}

	opts := []tuicut.Option{
		tuicut.WithUserConfig(userConfig),
		tuicut.WithSequence(seq),
		tuicut.WithSnapping(userConfig.SnappingEnabled()),
		tuicut.WithLogger(logger),
		tuicut.WithRecorder(recorder),
		tuicut.WithScript(script),
	}
	if initialZoom > 0 {
		opts = append(opts, tuicut.WithZoom(initialZoom))
	}
	editor := tuicut.New(opts...)

	programOpts := append(tuicut.ProgramOptions(), tea.WithoutSignalHandler())
	p := tea.NewProgram(editor, programOpts...)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		p.Send(tea.QuitMsg{})
	}()

	finalModel, err := p.Run()

	if final, ok := finalModel.(*app.Editor); ok {
		final.Cleanup()
	}

	if recorder != nil && recorder.Len() > 0 {
		if werr := os.WriteFile(recordPath, []byte(recorder.String()), 0600); werr != nil {
			logger.Error("Failed to write tape", "path", recordPath, "err", werr)
		} else {
			logger.Info("Tape recorded", "path", recordPath, "lines", recorder.Len())
		}
	}

	if err != nil {
		return fmt.Errorf("program error: %w", err)
	}
	return nil
}

// signalContext returns a context cancelled on interrupt or SIGTERM.
func signalContext(logger *log.Logger, what string) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-c
		logger.Info("Shutting down " + what)
		cancel()
	}()
	return ctx, cancel
}

func runSSHServer(sshHost, sshPort, sshKeyPath, sequencePath string) error {
	logger := newLogger()
	loadConfig(logger)

	logger.Info("Starting tuicut SSH server", "host", sshHost, "port", sshPort)

	ctx, cancel := signalContext(logger, "SSH server")
	defer cancel()

	cfg := &server.SSHServerConfig{
		Host:         sshHost,
		Port:         sshPort,
		KeyPath:      sshKeyPath,
		Version:      version,
		SequencePath: sequencePath,
		Logger:       logging.WithComponent(logger, "ssh"),
	}
	if err := server.StartSSHServer(ctx, cfg); err != nil {
		return fmt.Errorf("SSH server error: %w", err)
	}
	return nil
}

func runWebServer(sequencePath string) error {
	logger := newLogger()
	loadConfig(logger)

	ctx, cancel := signalContext(logger, "web server")
	defer cancel()

	cfg := &server.WebServerConfig{
		SequencePath: sequencePath,
		Logger:       logging.WithComponent(logger, "web"),
	}
	return server.StartWebServer(ctx, cfg)
}

func runTapeInteractive(tapeFile, sequencePath string) error {
	cmds, err := readTape(tapeFile)
	if err != nil {
		return err
	}
	return runLocal(sequencePath, cmds)
}

func validateTapeFile(tapeFile string) error {
	cmds, err := readTape(tapeFile)
	if err != nil {
		return err
	}
	fmt.Printf("%s: %d commands OK\n", tapeFile, len(cmds))
	return nil
}

func readTape(tapeFile string) ([]tape.Command, error) {
	// #nosec G304 - the tape path is supplied by the user on the command line
	data, err := os.ReadFile(tapeFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read tape file: %w", err)
	}
	cmds, err := tape.ParseString(string(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", tapeFile, err)
	}
	return cmds, nil
}
