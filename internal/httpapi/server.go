// Package httpapi exposes the window registry over HTTP.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/1broseidon/deskwm/internal/desktop"
	"github.com/1broseidon/deskwm/internal/geom"
	"github.com/1broseidon/deskwm/internal/geometry"
	"github.com/1broseidon/deskwm/internal/tiling"
	"github.com/1broseidon/deskwm/internal/wm"
)

// Server serves the HTTP API for one desktop session.
type Server struct {
	addr       string
	session    *desktop.Session
	controller *desktop.Controller
	logger     *slog.Logger
	router     chi.Router
}

// New builds the router. addr is only used by Serve.
func New(addr string, session *desktop.Session, controller *desktop.Controller, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	s := &Server{
		addr:       addr,
		session:    session,
		controller: controller,
		logger:     logger,
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(requestLogger(logger))
	r.Use(middleware.Recoverer)

	r.Get("/windows", s.listWindows)
	r.Post("/windows", s.openWindow)
	r.Get("/windows/{id}", s.getWindow)
	r.Post("/windows/{id}/{action}", s.windowAction)
	r.Put("/windows/{id}/position", s.putPosition)
	r.Put("/windows/{id}/size", s.putSize)
	r.Put("/windows/{id}/route", s.putRoute)
	r.Post("/front", s.front)
	r.Post("/tile", s.tile)

	cfg := huma.DefaultConfig("deskwm", "0.1.0")
	cfg.Info.Description = "Window registry and geometry engine of a deskwm session."
	s.registerOperations(humachi.New(r, cfg))
	s.router = r
	return s
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// String names the service for supervisor logs.
func (s *Server) String() string {
	return "http-api"
}

// Serve listens on the configured address until ctx is cancelled.
func (s *Server) Serve(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errC := make(chan error, 1)
	go func() { errC <- srv.ListenAndServe() }()
	s.logger.Info("HTTP API listening", "addr", s.addr)

	select {
	case err := <-errC:
		return fmt.Errorf("http api: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		s.logger.Warn("HTTP API shutdown", "error", err)
	}
	return ctx.Err()
}

type openRequest struct {
	AppID string `json:"app_id"`
	Route string `json:"route,omitempty"`
	New   bool   `json:"new,omitempty"`
}

type offsetRequest struct {
	DX float64 `json:"dx"`
	DY float64 `json:"dy"`
}

type resizeEdgeRequest struct {
	Direction string  `json:"direction"`
	DX        float64 `json:"dx"`
	DY        float64 `json:"dy"`
}

type routeRequest struct {
	Route string `json:"route"`
}

type tileRequest struct {
	Mode            string  `json:"mode,omitempty"`
	Gap             float64 `json:"gap,omitempty"`
	FlexibleLastRow *bool   `json:"flexible_last_row,omitempty"`
	MasterPercent   float64 `json:"master_percent,omitempty"`
}

type windowsResponse struct {
	Windows  []desktop.WindowInfo `json:"windows"`
	ActiveID string               `json:"active_id,omitempty"`
}

func (s *Server) listWindows(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.windows())
}

func (s *Server) getWindow(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	win, ok := s.session.Window(id)
	if !ok {
		s.writeError(w, fmt.Errorf("%w: %q", desktop.ErrUnknownWindow, id))
		return
	}
	s.writeJSON(w, http.StatusOK, s.session.Describe(win))
}

func (s *Server) openWindow(w http.ResponseWriter, r *http.Request) {
	var req openRequest
	if !s.decode(w, r, &req) {
		return
	}
	if req.AppID == "" {
		s.writeJSON(w, http.StatusBadRequest, errorBody("app_id is required"))
		return
	}
	open := s.session.Open
	if req.New {
		open = s.session.OpenNew
	}
	win, err := open(req.AppID, req.Route)
	s.respondWindow(w, win, err)
}

func (s *Server) windowAction(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	switch action := chi.URLParam(r, "action"); action {
	case "close":
		s.controller.Forget(id)
		if err := s.session.Close(id); err != nil {
			s.writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	case "minimize":
		win, err := s.session.Minimize(id)
		s.respondWindow(w, win, err)
	case "maximize":
		win, err := s.session.Maximize(id)
		s.respondWindow(w, win, err)
	case "restore":
		win, err := s.session.Restore(id)
		s.respondWindow(w, win, err)
	case "focus":
		win, err := s.session.Focus(id)
		s.respondWindow(w, win, err)
	case "drag":
		var req offsetRequest
		if !s.decode(w, r, &req) {
			return
		}
		win, err := s.controller.DragBy(id, geom.Point{X: req.DX, Y: req.DY})
		s.respondWindow(w, win, err)
	case "resize-edge":
		var req resizeEdgeRequest
		if !s.decode(w, r, &req) {
			return
		}
		dir, err := geometry.ParseDirection(req.Direction)
		if err != nil {
			s.writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
			return
		}
		win, err := s.controller.ResizeBy(id, dir, geom.Point{X: req.DX, Y: req.DY})
		s.respondWindow(w, win, err)
	default:
		s.writeJSON(w, http.StatusNotFound, errorBody(fmt.Sprintf("unknown action %q", action)))
	}
}

func (s *Server) putPosition(w http.ResponseWriter, r *http.Request) {
	var p geom.Point
	if !s.decode(w, r, &p) {
		return
	}
	win, err := s.session.Reposition(chi.URLParam(r, "id"), p)
	s.respondWindow(w, win, err)
}

func (s *Server) putSize(w http.ResponseWriter, r *http.Request) {
	var size geom.Size
	if !s.decode(w, r, &size) {
		return
	}
	win, err := s.session.Resize(chi.URLParam(r, "id"), size)
	s.respondWindow(w, win, err)
}

func (s *Server) putRoute(w http.ResponseWriter, r *http.Request) {
	var req routeRequest
	if !s.decode(w, r, &req) {
		return
	}
	win, err := s.session.Navigate(chi.URLParam(r, "id"), req.Route)
	s.respondWindow(w, win, err)
}

func (s *Server) front(w http.ResponseWriter, r *http.Request) {
	s.session.BringAllToFront()
	s.writeJSON(w, http.StatusOK, s.windows())
}

func (s *Server) tile(w http.ResponseWriter, r *http.Request) {
	var req tileRequest
	if r.ContentLength != 0 && !s.decode(w, r, &req) {
		return
	}
	layout := tiling.DefaultLayout()
	mode, err := tiling.ParseMode(req.Mode)
	if err != nil {
		s.writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
		return
	}
	layout.Mode = mode
	layout.Gap = req.Gap
	if req.FlexibleLastRow != nil {
		layout.FlexibleLastRow = *req.FlexibleLastRow
	}
	if req.MasterPercent > 0 {
		layout.MasterPercent = req.MasterPercent
	}
	if _, err := s.controller.Tile(layout); err != nil {
		if errors.Is(err, desktop.ErrInteractionBusy) {
			s.writeError(w, err)
			return
		}
		s.writeJSON(w, http.StatusUnprocessableEntity, errorBody(err.Error()))
		return
	}
	s.writeJSON(w, http.StatusOK, s.windows())
}

func (s *Server) windows() windowsResponse {
	return windowsResponse{
		Windows:  s.session.DescribeAll(),
		ActiveID: s.session.State().ActiveID,
	}
}

func (s *Server) respondWindow(w http.ResponseWriter, win wm.Window, err error) {
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, s.session.Describe(win))
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, out any) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(out); err != nil {
		s.writeJSON(w, http.StatusBadRequest, errorBody(fmt.Sprintf("invalid request body: %v", err)))
		return false
	}
	return true
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	s.writeJSON(w, statusFor(err), errorBody(err.Error()))
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.logger.Warn("failed to write response", "error", err)
	}
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, desktop.ErrUnknownWindow), errors.Is(err, desktop.ErrUnknownApplication):
		return http.StatusNotFound
	case errors.Is(err, desktop.ErrInteractionBusy), errors.Is(err, desktop.ErrMaximized):
		return http.StatusConflict
	case errors.Is(err, desktop.ErrNoInteraction):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func errorBody(msg string) map[string]string {
	return map[string]string{"error": msg}
}
