package ipc

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"os"
	"sync/atomic"
	"time"

	"github.com/1broseidon/deskwm/internal/desktop"
	"github.com/1broseidon/deskwm/internal/geom"
	"github.com/1broseidon/deskwm/internal/geometry"
	"github.com/1broseidon/deskwm/internal/runtimepath"
	"github.com/1broseidon/deskwm/internal/wm"
)

// ServerOptions configures a Server.
type ServerOptions struct {
	// SocketPath defaults to runtimepath.SocketPath().
	SocketPath string
	SessionID  string
	Logger     *slog.Logger
	// Reload is called for RELOAD. A nil Reload rejects the command.
	Reload func() error
}

// Server answers line-delimited JSON requests on a unix socket, one
// request per connection.
type Server struct {
	socketPath string
	listener   net.Listener
	session    *desktop.Session
	controller *desktop.Controller
	sessionID  string
	reload     func() error
	logger     *slog.Logger
	started    time.Time
	closing    atomic.Bool
}

func NewServer(session *desktop.Session, controller *desktop.Controller, opts ServerOptions) (*Server, error) {
	path := opts.SocketPath
	if path == "" {
		p, err := runtimepath.SocketPath()
		if err != nil {
			return nil, fmt.Errorf("resolve IPC socket path: %w", err)
		}
		path = p
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	// A stale socket from a crashed daemon blocks Listen.
	_ = os.Remove(path)

	return &Server{
		socketPath: path,
		session:    session,
		controller: controller,
		sessionID:  opts.SessionID,
		reload:     opts.Reload,
		logger:     logger,
		started:    time.Now(),
	}, nil
}

func (s *Server) SocketPath() string {
	return s.socketPath
}

// Start listens and accepts in the background. The socket is private to
// the owning user.
func (s *Server) Start() error {
	ln, err := net.Listen("unix", s.socketPath)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.socketPath, err)
	}
	if err := os.Chmod(s.socketPath, 0o600); err != nil {
		ln.Close()
		return fmt.Errorf("chmod %s: %w", s.socketPath, err)
	}
	s.listener = ln
	s.closing.Store(false)
	s.logger.Info("IPC server listening", "socket", s.socketPath)

	go s.accept()
	return nil
}

// Serve runs the server until ctx is cancelled.
func (s *Server) Serve(ctx context.Context) error {
	if err := s.Start(); err != nil {
		return err
	}
	<-ctx.Done()
	s.Stop()
	return ctx.Err()
}

func (s *Server) accept() {
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			if s.closing.Load() {
				return
			}
			s.logger.Warn("IPC accept failed", "error", err)
			continue
		}
		go s.serveConn(conn)
	}
}

func (s *Server) serveConn(conn net.Conn) {
	defer conn.Close()

	line, err := bufio.NewReader(conn).ReadBytes('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		s.logger.Warn("IPC read failed", "error", err)
		return
	}

	var resp *Response
	var req Request
	if err := json.Unmarshal(line, &req); err != nil {
		resp = errorf("Invalid request: %v", err)
	} else {
		resp = s.handleCommand(&req)
	}
	if err := json.NewEncoder(conn).Encode(resp); err != nil {
		s.logger.Warn("IPC write failed", "command", req.Command, "error", err)
	}
}

// handleCommand processes an IPC command and returns a response
func (s *Server) handleCommand(req *Request) *Response {
	s.logger.Debug("IPC command", "command", req.Command)

	switch req.Command {
	case CommandGetStatus:
		return s.handleGetStatus()
	case CommandListWindows:
		return s.handleListWindows()
	case CommandListApps:
		return s.handleListApps()
	case CommandOpen:
		return s.handleOpen(req.Payload)
	case CommandClose:
		return s.handleClose(req.Payload)
	case CommandMinimize:
		return s.handleWindowAction(req.Payload, s.session.Minimize)
	case CommandMaximize:
		return s.handleWindowAction(req.Payload, s.session.Maximize)
	case CommandRestore:
		return s.handleWindowAction(req.Payload, s.session.Restore)
	case CommandFocus:
		return s.handleWindowAction(req.Payload, s.session.Focus)
	case CommandMove:
		return s.handleMove(req.Payload)
	case CommandResize:
		return s.handleResize(req.Payload)
	case CommandDrag:
		return s.handleDrag(req.Payload)
	case CommandResizeEdge:
		return s.handleResizeEdge(req.Payload)
	case CommandNavigate:
		return s.handleNavigate(req.Payload)
	case CommandFront:
		return s.handleFront()
	case CommandTile:
		return s.handleTile(req.Payload)
	case CommandSetViewport:
		return s.handleSetViewport(req.Payload)
	case CommandReload:
		return s.handleReload()
	default:
		return errorf("Unknown command: %s", req.Command)
	}
}

func (s *Server) handleGetStatus() *Response {
	st := s.session.State()
	status := StatusData{
		SessionID:     s.sessionID,
		UptimeSeconds: int64(time.Since(s.started).Seconds()),
		DaemonRunning: true,
		Booting:       st.Booting,
		Viewport:      st.Viewport,
		Metrics:       s.session.Metrics(),
		WindowCount:   len(st.Windows),
		ActiveID:      st.ActiveID,
		Running:       st.RunningApplicationIDs(),
		Revision:      s.session.Revision(),
		Interactions:  s.controller.ActiveInteractions(),
	}
	return okResponse(status)
}

func (s *Server) handleListWindows() *Response {
	return okResponse(s.windowsData())
}

func (s *Server) handleListApps() *Response {
	return okResponse(AppsData{Applications: s.session.Applications()})
}

func (s *Server) handleOpen(payload json.RawMessage) *Response {
	var req OpenPayload
	if err := json.Unmarshal(payload, &req); err != nil {
		return errorf("Invalid open payload: %v", err)
	}
	if req.AppID == "" {
		return errorf("app_id is required")
	}

	open := s.session.Open
	if req.New {
		open = s.session.OpenNew
	}
	w, err := open(req.AppID, req.Route)
	if err != nil {
		return errorf("Failed to open: %v", err)
	}
	return okResponse(s.session.Describe(w))
}

func (s *Server) handleClose(payload json.RawMessage) *Response {
	id, resp := parseWindowID(payload)
	if resp != nil {
		return resp
	}
	s.controller.Forget(id)
	if err := s.session.Close(id); err != nil {
		return errorf("Failed to close: %v", err)
	}
	return okResponse(nil)
}

func (s *Server) handleWindowAction(payload json.RawMessage, action func(string) (wm.Window, error)) *Response {
	id, resp := parseWindowID(payload)
	if resp != nil {
		return resp
	}
	w, err := action(id)
	if err != nil {
		return errorf("%v", err)
	}
	return okResponse(s.session.Describe(w))
}

func (s *Server) handleMove(payload json.RawMessage) *Response {
	var req MovePayload
	if err := json.Unmarshal(payload, &req); err != nil {
		return errorf("Invalid move payload: %v", err)
	}
	w, err := s.session.Reposition(req.ID, geom.Point{X: req.X, Y: req.Y})
	if err != nil {
		return errorf("%v", err)
	}
	return okResponse(s.session.Describe(w))
}

func (s *Server) handleResize(payload json.RawMessage) *Response {
	var req ResizePayload
	if err := json.Unmarshal(payload, &req); err != nil {
		return errorf("Invalid resize payload: %v", err)
	}
	w, err := s.session.Resize(req.ID, geom.Size{Width: req.Width, Height: req.Height})
	if err != nil {
		return errorf("%v", err)
	}
	return okResponse(s.session.Describe(w))
}

func (s *Server) handleDrag(payload json.RawMessage) *Response {
	var req DragPayload
	if err := json.Unmarshal(payload, &req); err != nil {
		return errorf("Invalid drag payload: %v", err)
	}
	w, err := s.controller.DragBy(req.ID, geom.Point{X: req.DX, Y: req.DY})
	if err != nil {
		return errorf("Failed to drag: %v", err)
	}
	return okResponse(s.session.Describe(w))
}

func (s *Server) handleResizeEdge(payload json.RawMessage) *Response {
	var req ResizeEdgePayload
	if err := json.Unmarshal(payload, &req); err != nil {
		return errorf("Invalid resize payload: %v", err)
	}
	dir, err := geometry.ParseDirection(req.Direction)
	if err != nil {
		return errorf("%v", err)
	}
	w, err := s.controller.ResizeBy(req.ID, dir, geom.Point{X: req.DX, Y: req.DY})
	if err != nil {
		return errorf("Failed to resize: %v", err)
	}
	return okResponse(s.session.Describe(w))
}

func (s *Server) handleNavigate(payload json.RawMessage) *Response {
	var req NavigatePayload
	if err := json.Unmarshal(payload, &req); err != nil {
		return errorf("Invalid navigate payload: %v", err)
	}
	w, err := s.session.Navigate(req.ID, req.Route)
	if err != nil {
		return errorf("%v", err)
	}
	return okResponse(s.session.Describe(w))
}

func (s *Server) handleFront() *Response {
	s.session.BringAllToFront()
	return okResponse(s.windowsData())
}

func (s *Server) handleTile(payload json.RawMessage) *Response {
	var req TilePayload
	if len(payload) > 0 {
		if err := json.Unmarshal(payload, &req); err != nil {
			return errorf("Invalid tile payload: %v", err)
		}
	}
	layout, err := req.Layout()
	if err != nil {
		return errorf("%v", err)
	}
	if _, err := s.controller.Tile(layout); err != nil {
		return errorf("Failed to tile: %v", err)
	}
	return okResponse(s.windowsData())
}

func (s *Server) handleSetViewport(payload json.RawMessage) *Response {
	var req ViewportPayload
	if err := json.Unmarshal(payload, &req); err != nil {
		return errorf("Invalid viewport payload: %v", err)
	}
	size := geom.Size{Width: req.Width, Height: req.Height}
	if !size.Finite() || !size.Positive() {
		return errorf("invalid viewport %v", size)
	}
	s.session.SetViewport(size)
	return okResponse(nil)
}

func (s *Server) handleReload() *Response {
	if s.reload == nil {
		return errorf("reload is not supported")
	}
	s.logger.Info("IPC: received RELOAD command")
	if err := s.reload(); err != nil {
		return errorf("Failed to reload config: %v", err)
	}
	s.logger.Info("IPC: config reloaded")
	return okResponse(nil)
}

func (s *Server) windowsData() WindowsData {
	st := s.session.State()
	return WindowsData{Windows: s.session.DescribeAll(), ActiveID: st.ActiveID}
}

func parseWindowID(payload json.RawMessage) (string, *Response) {
	var req WindowPayload
	if err := json.Unmarshal(payload, &req); err != nil {
		return "", errorf("Invalid payload: %v", err)
	}
	if req.ID == "" {
		return "", errorf("id is required")
	}
	return req.ID, nil
}

// Stop closes the listener and removes the socket file.
func (s *Server) Stop() {
	s.closing.Store(true)
	if s.listener != nil {
		s.listener.Close()
	}
	_ = os.Remove(s.socketPath)
}
