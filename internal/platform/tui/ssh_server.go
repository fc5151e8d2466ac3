package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/vovakirdan/robopath/internal/config"
	"github.com/vovakirdan/robopath/internal/planner"
	"github.com/vovakirdan/robopath/internal/storage"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23234").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.robopath/host_key.
	HostKeyPath string

	// DBPath is the path to the run history database.
	// Empty disables recording.
	DBPath string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration

	// Config drives the planner built for every session.
	Config config.Config
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23234",
		DBPath:      "~/.robopath/runs.db",
		IdleTimeout: 30 * time.Minute,
		Config:      config.DefaultConfig(),
	}
}

// SSHServer wraps a Wish SSH server that shows the route viewer to every session.
type SSHServer struct {
	config SSHServerConfig
	server *ssh.Server
	store  *storage.Store
	logger *log.Logger
}

// NewSSHServer creates a new SSH server with the given configuration.
func NewSSHServer(cfg SSHServerConfig) (*SSHServer, error) {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "robopath-ssh",
	})

	if err := cfg.Config.Validate(); err != nil {
		return nil, err
	}

	// Open storage
	var store *storage.Store
	if cfg.DBPath != "" {
		var err error
		store, err = storage.Open(cfg.DBPath)
		if err != nil {
			logger.Warn("could not open run database", "error", err)
			// Continue without storage
		}
	}

	srv := &SSHServer{
		config: cfg,
		store:  store,
		logger: logger,
	}

	// Resolve host key path
	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		home, homeErr := os.UserHomeDir()
		if homeErr != nil {
			return nil, fmt.Errorf("cannot get home directory: %w", homeErr)
		}
		hostKeyPath = filepath.Join(home, ".robopath", "host_key")
	}

	// Ensure host key directory exists
	hostKeyDir := filepath.Dir(hostKeyPath)
	if mkdirErr := os.MkdirAll(hostKeyDir, 0o700); mkdirErr != nil {
		return nil, fmt.Errorf("cannot create host key directory: %w", mkdirErr)
	}

	// Create Wish server options
	opts := []ssh.Option{
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.loggingMiddleware,
		),
	}

	// Create the server
	server, err := wish.NewServer(opts...)
	if err != nil {
		if store != nil {
			store.Close()
		}
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// teaHandler creates a Bubble Tea program for each SSH session.
func (s *SSHServer) teaHandler(sshSession ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sshSession.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sshSession.User())
		return nil, nil
	}

	opts := []planner.Option{
		planner.WithLogger(s.logger.WithPrefix("robopath-ssh " + sshSession.User())),
	}
	if s.store != nil {
		opts = append(opts, planner.WithRecorder(s.store))
	}
	p, err := planner.New(s.config.Config, opts...)
	if err != nil {
		s.logger.Error("cannot create planner", "user", sshSession.User(), "error", err)
		return nil, nil
	}

	model := NewSessionModel(p, s.store, time.Now().UnixNano(), pty.Window.Width, pty.Window.Height)

	return model, []tea.ProgramOption{
		tea.WithAltScreen(),
	}
}

// loggingMiddleware logs SSH session events.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		s.logger.Info("session started",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
		next(sshSession)
		s.logger.Info("session ended",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
	}
}

// ListenAndServe starts the SSH server and blocks until shutdown.
func (s *SSHServer) ListenAndServe() error {
	s.logger.Info("starting SSH server", "address", s.config.Address)

	// Setup signal handling for graceful shutdown
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			s.logger.Error("server error", "error", err)
		}
	}()

	<-done
	s.logger.Info("shutting down...")
	return s.Shutdown()
}

// Shutdown gracefully stops the server.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if s.store != nil {
		s.store.Close()
	}

	return s.server.Shutdown(ctx)
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}

// sessionToggle switches an SSH session between the viewer and the history.
var sessionToggle = key.NewBinding(
	key.WithKeys("ctrl+t"),
	key.WithHelp("ctrl+t", "history"),
)

// SessionModel is the top-level model for SSH sessions. It hosts the route
// viewer and, on demand, the run history.
type SessionModel struct {
	store     *storage.Store
	viewer    Model
	history   HistoryModel
	inHistory bool
	width     int
	height    int
	quitting  bool
}

// NewSessionModel creates a session showing routes from p.
func NewSessionModel(p *planner.Planner, store *storage.Store, seed int64, width, height int) SessionModel {
	return SessionModel{
		store:  store,
		viewer: NewModel(p, seed),
		width:  width,
		height: height,
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.viewer.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		var cmd tea.Cmd
		m.viewer, cmd = updateViewer(m.viewer, msg)
		if m.inHistory {
			m.history, _ = updateHistory(m.history, msg)
		}
		return m, cmd

	case tea.KeyMsg:
		if key.Matches(msg, sessionToggle) && m.store != nil {
			m.inHistory = !m.inHistory
			if m.inHistory {
				m.history = NewHistoryModel(m.store, m.width, m.height)
			}
			return m, nil
		}
		if m.inHistory {
			var cmd tea.Cmd
			m.history, cmd = updateHistory(m.history, msg)
			if m.history.quitting {
				m.quitting = true
			}
			return m, cmd
		}
	}

	// Ticks and search results always reach the viewer so its loop survives
	// while the history is on screen.
	var cmd tea.Cmd
	m.viewer, cmd = updateViewer(m.viewer, msg)
	if m.viewer.IsQuitting() {
		m.quitting = true
	}
	return m, cmd
}

func updateViewer(m Model, msg tea.Msg) (Model, tea.Cmd) {
	next, cmd := m.Update(msg)
	if v, ok := next.(Model); ok {
		m = v
	}
	return m, cmd
}

func updateHistory(m HistoryModel, msg tea.Msg) (HistoryModel, tea.Cmd) {
	next, cmd := m.Update(msg)
	if h, ok := next.(HistoryModel); ok {
		m = h
	}
	return m, cmd
}

// InHistory reports whether the history browser is shown.
func (m SessionModel) InHistory() bool {
	return m.inHistory
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}
	if m.inHistory {
		return m.history.View()
	}
	view := m.viewer.View()
	if m.store != nil {
		view += "\n" + helpStyle.Render("ctrl+t history")
	}
	return view
}
