// Package server serves the editor to remote clients: one independent editor
// per SSH session, or per browser tab through sip.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/wish/v2"
	"charm.land/wish/v2/activeterm"
	bm "charm.land/wish/v2/bubbletea"
	"charm.land/wish/v2/logging"
	"github.com/adrg/xdg"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"

	"github.com/Gaurav-Gosain/tuicut/internal/timeline"
	"github.com/Gaurav-Gosain/tuicut/pkg/tuicut"
)

const hostKeyRelPath = "tuicut/ssh_host_ed25519"

// shutdownTimeout bounds how long open sessions get to close on shutdown.
const shutdownTimeout = 30 * time.Second

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	Host    string
	Port    string
	KeyPath string // generated on first start when missing
	Version string

	// SequencePath is loaded fresh for every session. Empty opens the demo.
	SequencePath string

	Logger *log.Logger
}

// sessionPTY adapts an SSH pty to the size interface of tuicut.NewForPTY.
type sessionPTY struct {
	pty ssh.Pty
}

func (p sessionPTY) Width() int  { return p.pty.Window.Width }
func (p sessionPTY) Height() int { return p.pty.Window.Height }

// StartSSHServer serves the editor until ctx is cancelled.
func StartSSHServer(ctx context.Context, cfg *SSHServerConfig) error {
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}

	keyPath := cfg.KeyPath
	if keyPath == "" {
		p, err := xdg.DataFile(hostKeyRelPath)
		if err != nil {
			return fmt.Errorf("host key path: %w", err)
		}
		keyPath = p
	}

	s, err := wish.NewServer(
		wish.WithAddress(net.JoinHostPort(cfg.Host, cfg.Port)),
		wish.WithHostKeyPath(keyPath),
		wish.WithVersion("tuicut-"+cfg.Version),
		wish.WithMiddleware(
			bm.Middleware(teaHandler(cfg, logger)),
			activeterm.Middleware(),
			logging.MiddlewareWithLogger(logger),
		),
	)
	if err != nil {
		return fmt.Errorf("could not create server: %w", err)
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("SSH server listening", "addr", s.Addr, "host_key", keyPath)
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("Stopping SSH server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.Shutdown(shutdownCtx); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
		return err
	}
	return nil
}

// teaHandler builds one editor per SSH session.
func teaHandler(cfg *SSHServerConfig, logger *log.Logger) bm.Handler {
	return func(sess ssh.Session) (tea.Model, []tea.ProgramOption) {
		pty, _, active := sess.Pty()
		if !active {
			wish.Fatalln(sess, "tuicut needs an interactive terminal")
			return nil, nil
		}

		opts := []tuicut.Option{
			tuicut.WithSSHMode(true),
			tuicut.WithLogger(logger.With("user", sess.User())),
		}
		if seq, err := loadSequence(cfg.SequencePath); err != nil {
			logger.Warn("Falling back to the demo sequence", "path", cfg.SequencePath, "err", err)
		} else {
			opts = append(opts, tuicut.WithSequence(seq))
		}

		return tuicut.NewForPTY(sessionPTY{pty}, opts...), tuicut.ProgramOptions()
	}
}

// loadSequence returns the sequence at path, or the demo when path is empty.
func loadSequence(path string) (*timeline.Sequence, error) {
	if path == "" {
		return timeline.Demo(), nil
	}
	return timeline.LoadSequence(path)
}
