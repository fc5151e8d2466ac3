// Package web serves the browser renderer: an HTML page and a websocket feed
// that streams boards and route steps as JSON.
package web

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/robopath/internal/planner"
	"github.com/vovakirdan/robopath/internal/render"
)

const (
	socketPath = "/ws"
	cellSize   = 24
)

// Client commands.
const (
	cmdNext   = "next"
	cmdReplay = "replay"
)

// ServerConfig holds configuration for the web server.
type ServerConfig struct {
	// Address is the host:port to listen on (e.g., ":8080").
	Address string

	// StepDelay is the default time between route steps. Clients may
	// override it with the delay query parameter (milliseconds).
	StepDelay time.Duration

	// ShowExplored includes expanded cells in grid messages.
	ShowExplored bool
}

// Server streams planner outcomes to browsers.
type Server struct {
	config   ServerConfig
	planner  *planner.Planner
	upgrader websocket.Upgrader
	server   *http.Server
	logger   *log.Logger
}

// NewServer creates a web server that plans boards with p.
func NewServer(cfg ServerConfig, p *planner.Planner) *Server {
	s := &Server{
		config:  cfg,
		planner: p,
		logger: log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "robopath-web",
		}),
	}
	s.server = &http.Server{
		Addr:              cfg.Address,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// SetLogger replaces the server logger.
func (s *Server) SetLogger(l *log.Logger) {
	s.logger = l
}

// Handler returns the HTTP routes: the page at / and the feed at /ws.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handlePage)
	mux.HandleFunc(socketPath, s.handleSocket)
	return mux
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pageTemplate.Execute(w, pageData{SocketPath: socketPath, CellSize: cellSize}); err != nil {
		s.logger.Error("cannot render page", "error", err)
	}
}

// envelope is the JSON frame every message is wrapped in.
type envelope struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

// GridMessage describes a freshly planned board.
type GridMessage struct {
	Source   string     `json:"source"`
	Seed     int64      `json:"seed"`
	Width    int        `json:"width"`
	Height   int        `json:"height"`
	Facing   string     `json:"facing"`
	Attempts int        `json:"attempts"`
	Cells    [][]string `json:"cells"`
}

// StepMessage reveals one route cell. Cell is what the position shows once
// the agent has moved on.
type StepMessage struct {
	Index int    `json:"index"`
	X     int    `json:"x"`
	Y     int    `json:"y"`
	Cell  string `json:"cell"`
}

// DoneMessage closes a route animation.
type DoneMessage struct {
	Found    bool   `json:"found"`
	Cost     int    `json:"cost"`
	Length   int    `json:"length"`
	Expanded int    `json:"expanded"`
	Reason   string `json:"reason,omitempty"`
	Summary  string `json:"summary"`
}

func gridMessage(out planner.Outcome, showExplored bool) GridMessage {
	f := render.Snapshot(out.Grid, out.Result, 0, showExplored)
	cells := make([][]string, f.Height())
	for y := range cells {
		row := make([]string, f.Width())
		for x := range row {
			row[x] = f.At(x, y).String()
		}
		cells[y] = row
	}
	return GridMessage{
		Source:   out.Source,
		Seed:     out.Seed,
		Width:    f.Width(),
		Height:   f.Height(),
		Facing:   out.Result.Facing.String(),
		Attempts: out.Attempts,
		Cells:    cells,
	}
}

func stepMessages(out planner.Outcome) []StepMessage {
	base := render.NewFrame(out.Grid)
	steps := make([]StepMessage, len(out.Result.Path))
	for i, c := range out.Result.Path {
		trail := render.CellPath
		switch k := base.At(c.X, c.Y); k {
		case render.CellObstacle:
			trail = render.CellCollision
		case render.CellStart, render.CellGoal:
			trail = k
		}
		steps[i] = StepMessage{Index: i, X: c.X, Y: c.Y, Cell: trail.String()}
	}
	return steps
}

func doneMessage(out planner.Outcome) DoneMessage {
	return DoneMessage{
		Found:    out.Result.Found(),
		Cost:     out.Result.Cost,
		Length:   len(out.Result.Path),
		Expanded: out.Result.Expanded(),
		Reason:   out.Result.Reason,
		Summary:  render.Summary(out.Result),
	}
}

func (s *Server) handleSocket(w http.ResponseWriter, r *http.Request) {
	seed := time.Now().UnixNano()
	if v := r.URL.Query().Get("seed"); v != "" {
		parsed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			http.Error(w, "bad seed", http.StatusBadRequest)
			return
		}
		seed = parsed
	}
	delay := s.config.StepDelay
	if v := r.URL.Query().Get("delay"); v != "" {
		ms, err := strconv.Atoi(v)
		if err != nil || ms < 0 {
			http.Error(w, "bad delay", http.StatusBadRequest)
			return
		}
		delay = time.Duration(ms) * time.Millisecond
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("upgrade failed", "remote", r.RemoteAddr, "error", err)
		return
	}
	defer conn.Close()

	s.logger.Info("viewer connected", "remote", r.RemoteAddr, "seed", seed)
	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	cmds := make(chan string, 4)
	go s.readCommands(ctx, cancel, conn, cmds)

	if err := s.stream(ctx, conn, seed, delay, cmds); err != nil && !errors.Is(err, context.Canceled) {
		s.logger.Warn("stream ended", "remote", r.RemoteAddr, "error", err)
	}
	s.logger.Info("viewer disconnected", "remote", r.RemoteAddr)
}

// readCommands forwards client text messages until the socket closes.
func (s *Server) readCommands(ctx context.Context, cancel context.CancelFunc, conn *websocket.Conn, cmds chan<- string) {
	defer cancel()
	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			return
		}
		select {
		case cmds <- string(msg):
		case <-ctx.Done():
			return
		}
	}
}

// stream plans boards and plays them back until the client leaves. It is
// the only writer on conn.
func (s *Server) stream(ctx context.Context, conn *websocket.Conn, seed int64, delay time.Duration, cmds <-chan string) error {
	for {
		out, err := s.planner.Plan(ctx, seed)
		if err != nil {
			if ctx.Err() == nil {
				//nolint:errcheck // Best-effort notice before closing
				conn.WriteJSON(envelope{Type: "error", Payload: err.Error()})
			}
			return err
		}

		cmd, err := s.play(ctx, conn, out, delay, cmds)
		if err != nil {
			return err
		}
		for cmd == cmdReplay {
			if cmd, err = s.play(ctx, conn, out, delay, cmds); err != nil {
				return err
			}
		}
		// cmdNext
		seed = out.Seed + 1
	}
}

// play sends one board and its steps, then waits for the next command.
// Commands received mid-animation cut it short.
func (s *Server) play(ctx context.Context, conn *websocket.Conn, out planner.Outcome, delay time.Duration, cmds <-chan string) (string, error) {
	if err := conn.WriteJSON(envelope{Type: "grid", Payload: gridMessage(out, s.config.ShowExplored)}); err != nil {
		return "", err
	}

	for _, step := range stepMessages(out) {
		if cmd, err := s.wait(ctx, delay, cmds); cmd != "" || err != nil {
			return cmd, err
		}
		if err := conn.WriteJSON(envelope{Type: "step", Payload: step}); err != nil {
			return "", err
		}
	}

	if err := conn.WriteJSON(envelope{Type: "done", Payload: doneMessage(out)}); err != nil {
		return "", err
	}

	for {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case cmd := <-cmds:
			if known(cmd) {
				return cmd, nil
			}
			if err := conn.WriteJSON(envelope{Type: "error", Payload: fmt.Sprintf("unknown command %q", cmd)}); err != nil {
				return "", err
			}
		}
	}
}

// wait sleeps for delay. It returns early with the first known command.
func (s *Server) wait(ctx context.Context, delay time.Duration, cmds <-chan string) (string, error) {
	timer := time.NewTimer(delay)
	defer timer.Stop()
	for {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case cmd := <-cmds:
			if known(cmd) {
				return cmd, nil
			}
			s.logger.Debug("ignoring command", "command", cmd)
		case <-timer.C:
			return "", nil
		}
	}
}

func known(cmd string) bool {
	return cmd == cmdNext || cmd == cmdReplay
}

// ListenAndServe starts the web server and blocks until shutdown.
func (s *Server) ListenAndServe() error {
	s.logger.Info("starting web server", "address", s.config.Address)

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("server error", "error", err)
		}
	}()

	<-done
	s.logger.Info("shutting down...")
	return s.Shutdown()
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.server.Shutdown(ctx)
}
