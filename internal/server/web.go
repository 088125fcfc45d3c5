package server

import (
	"context"
	"fmt"

	tea "charm.land/bubbletea/v2"
	"github.com/Gaurav-Gosain/sip"
	"github.com/charmbracelet/log"

	"github.com/Gaurav-Gosain/tuicut/pkg/tuicut"
)

// WebServerConfig holds configuration for the browser front end. The
// listen address comes from sip's defaults.
type WebServerConfig struct {
	SequencePath string
	Logger       *log.Logger
}

// StartWebServer serves one editor per browser session until ctx is
// cancelled.
func StartWebServer(ctx context.Context, cfg *WebServerConfig) error {
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}

	server := sip.NewServer(sip.DefaultConfig())
	logger.Info("Starting web server")

	err := server.Serve(ctx, func(sess sip.Session) (tea.Model, []tea.ProgramOption) {
		opts := []tuicut.Option{
			tuicut.WithSSHMode(true),
			tuicut.WithLogger(logger),
		}
		if seq, err := loadSequence(cfg.SequencePath); err != nil {
			logger.Warn("Falling back to the demo sequence", "path", cfg.SequencePath, "err", err)
		} else {
			opts = append(opts, tuicut.WithSequence(seq))
		}
		return tuicut.New(opts...), tuicut.ProgramOptions()
	})
	if err != nil && ctx.Err() == nil {
		return fmt.Errorf("web server: %w", err)
	}
	return nil
}
