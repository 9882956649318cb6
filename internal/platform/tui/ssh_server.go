package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/vovakirdan/frogcore/internal/logging"
	"github.com/vovakirdan/frogcore/internal/storage"
)

// shutdownGrace bounds how long Serve waits for open consoles to close.
const shutdownGrace = 10 * time.Second

// SSHServerConfig configures the console server.
type SSHServerConfig struct {
	Address     string // host:port
	HostKeyPath string // empty means ~/.frogcore/host_key, created on first use
	DBPath      string // shared high-score database
	IdleTimeout time.Duration

	// Console is copied for every session, which then gets its own Store,
	// Player and Logger.
	Console ConsoleConfig

	Logger *log.Logger
}

// DefaultSSHServerConfig listens on :23234 and drops sessions idle for
// half an hour.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23234",
		DBPath:      "~/.frogcore/scores.db",
		IdleTimeout: 30 * time.Minute,
		Console:     DefaultConsoleConfig(),
	}
}

// SSHServer gives every SSH session its own headless console. All sessions
// save to one score store under their SSH user name.
type SSHServer struct {
	cfg    SSHServerConfig
	server *ssh.Server
	store  *storage.Store
	logger *log.Logger
	active atomic.Int64
}

// NewSSHServer opens the score store and prepares the listener. A store
// that cannot be opened only disables score saving.
func NewSSHServer(cfg SSHServerConfig) (*SSHServer, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.New(os.Stderr, "frogcore-ssh", false)
	}

	keyPath, err := hostKeyPath(cfg.HostKeyPath)
	if err != nil {
		return nil, err
	}

	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		logger.Warn("scores will not be saved", "db", cfg.DBPath, "error", err)
		store = nil
	}

	s := &SSHServer{cfg: cfg, store: store, logger: logger}
	s.server, err = wish.NewServer(
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(keyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(s.newSessionConsole),
			s.trackSessions,
		),
	)
	if err != nil {
		if store != nil {
			store.Close()
		}
		return nil, fmt.Errorf("ssh: cannot create server: %w", err)
	}
	return s, nil
}

func hostKeyPath(path string) (string, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("ssh: cannot locate host key: %w", err)
		}
		path = filepath.Join(home, ".frogcore", "host_key")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return "", fmt.Errorf("ssh: cannot create host key directory: %w", err)
	}
	return path, nil
}

// newSessionConsole starts a console whose clock stops with the session.
func (s *SSHServer) newSessionConsole(sess ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sess.Pty()
	if !ok {
		s.logger.Warn("refusing session without a terminal", "user", sess.User())
		return nil, nil
	}

	cfg := s.cfg.Console
	cfg.Store = s.store
	cfg.Player = sess.User()
	cfg.Logger = s.logger.With("user", sess.User())

	console := NewConsole(cfg)
	console.Start(sess.Context())

	return NewConsoleModel(console, pty.Window.Width, pty.Window.Height), []tea.ProgramOption{
		tea.WithAltScreen(),
	}
}

func (s *SSHServer) trackSessions(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		n := s.active.Add(1)
		s.logger.Info("console opened", "user", sess.User(), "remote", sess.RemoteAddr().String(), "active", n)
		next(sess)
		n = s.active.Add(-1)
		s.logger.Info("console closed", "user", sess.User(), "active", n)
	}
}

// Serve accepts sessions until ctx is cancelled, then closes the listener
// and the score store.
func (s *SSHServer) Serve(ctx context.Context) error {
	errc := make(chan error, 1)
	go func() {
		errc <- s.server.ListenAndServe()
	}()
	s.logger.Info("accepting consoles", "address", s.cfg.Address)

	select {
	case err := <-errc:
		s.closeStore()
		if errors.Is(err, ssh.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("ssh: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("stopping", "active", s.active.Load())
	return s.Shutdown()
}

// Shutdown closes the listener, waits up to shutdownGrace for sessions to
// end, then closes the score store.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	err := s.server.Shutdown(ctx)
	s.closeStore()
	return err
}

func (s *SSHServer) closeStore() {
	if s.store != nil {
		s.store.Close()
		s.store = nil
	}
}

// ActiveSessions returns the number of open consoles.
func (s *SSHServer) ActiveSessions() int64 {
	return s.active.Load()
}

// Addr returns the configured listen address.
func (s *SSHServer) Addr() string {
	return s.cfg.Address
}
