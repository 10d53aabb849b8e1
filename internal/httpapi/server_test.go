package httpapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/1broseidon/deskwm/internal/apps"
	"github.com/1broseidon/deskwm/internal/desktop"
	"github.com/1broseidon/deskwm/internal/geom"
	"github.com/1broseidon/deskwm/internal/wm"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	session := desktop.NewSession(desktop.Options{
		Reducer:         wm.NewReducer(apps.BuiltinCatalog()),
		CheckInvariants: true,
	})
	session.SetViewport(geom.Size{Width: 1920, Height: 1080})
	return New("", session, desktop.NewController(session), nil)
}

func do(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func decodeWindow(t *testing.T, rec *httptest.ResponseRecorder) desktop.WindowInfo {
	t.Helper()
	var w desktop.WindowInfo
	if err := json.Unmarshal(rec.Body.Bytes(), &w); err != nil {
		t.Fatalf("decode window: %v (%s)", err, rec.Body.String())
	}
	return w
}

func TestOpenDragAndResize(t *testing.T) {
	s := newTestServer(t)

	rec := do(t, s, http.MethodPost, "/windows", `{"app_id":"notes"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("open: status %d body %s", rec.Code, rec.Body.String())
	}
	w := decodeWindow(t, rec)
	if w.ID != "notes-1" || w.Title != "Notes" {
		t.Fatalf("unexpected window %+v", w)
	}

	rec = do(t, s, http.MethodPost, "/windows/notes-1/drag", `{"dx":-5000,"dy":-5000}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("drag: status %d body %s", rec.Code, rec.Body.String())
	}
	if got := decodeWindow(t, rec).Position; got != (geom.Point{X: -1486, Y: 28}) {
		t.Fatalf("expected clamped drag, got %v", got)
	}

	rec = do(t, s, http.MethodPut, "/windows/notes-1/size", `{"width":10,"height":10}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("size: status %d body %s", rec.Code, rec.Body.String())
	}
	if got := decodeWindow(t, rec).Size; got != (geom.Size{Width: 300, Height: 240}) {
		t.Fatalf("expected size floored at minimum, got %v", got)
	}

	rec = do(t, s, http.MethodPut, "/windows/notes-1/position", `{"x":400,"y":300}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("position: status %d body %s", rec.Code, rec.Body.String())
	}

	rec = do(t, s, http.MethodPost, "/windows/notes-1/resize-edge", `{"direction":"se","dx":100,"dy":60}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("resize-edge: status %d body %s", rec.Code, rec.Body.String())
	}
	if got := decodeWindow(t, rec).Frame; got != (geom.Rect{X: 400, Y: 300, Width: 400, Height: 300}) {
		t.Fatalf("unexpected frame after resize %v", got)
	}

	rec = do(t, s, http.MethodPut, "/windows/notes-1/route", `{"route":"/drafts"}`)
	if rec.Code != http.StatusOK || decodeWindow(t, rec).Route != "/drafts" {
		t.Fatalf("route: status %d body %s", rec.Code, rec.Body.String())
	}
}

func TestErrorStatuses(t *testing.T) {
	s := newTestServer(t)
	do(t, s, http.MethodPost, "/windows", `{"app_id":"terminal"}`)

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		want   int
	}{
		{"unknown window", http.MethodPost, "/windows/ghost-9/focus", "", http.StatusNotFound},
		{"unknown app", http.MethodPost, "/windows", `{"app_id":"spreadsheet"}`, http.StatusNotFound},
		{"missing app", http.MethodPost, "/windows", `{}`, http.StatusBadRequest},
		{"unknown field", http.MethodPost, "/windows", `{"app":"terminal"}`, http.StatusBadRequest},
		{"unknown action", http.MethodPost, "/windows/terminal-1/shake", "", http.StatusNotFound},
		{"bad direction", http.MethodPost, "/windows/terminal-1/resize-edge", `{"direction":"up"}`, http.StatusBadRequest},
		{"get unknown", http.MethodGet, "/windows/ghost-9", "", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, s, tt.method, tt.path, tt.body)
			if rec.Code != tt.want {
				t.Fatalf("expected %d, got %d (%s)", tt.want, rec.Code, rec.Body.String())
			}
		})
	}
}

func TestMaximizedDragConflicts(t *testing.T) {
	s := newTestServer(t)
	do(t, s, http.MethodPost, "/windows", `{"app_id":"browser"}`)

	rec := do(t, s, http.MethodPost, "/windows/browser-1/maximize", "")
	if rec.Code != http.StatusOK || decodeWindow(t, rec).Status != "maximized" {
		t.Fatalf("maximize: status %d body %s", rec.Code, rec.Body.String())
	}
	rec = do(t, s, http.MethodPost, "/windows/browser-1/drag", `{"dx":10,"dy":10}`)
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected conflict, got %d", rec.Code)
	}
}

func TestListAppsFrontAndClose(t *testing.T) {
	s := newTestServer(t)

	rec := do(t, s, http.MethodGet, "/apps", "")
	var appsBody struct {
		Applications []apps.Descriptor `json:"applications"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &appsBody); err != nil {
		t.Fatalf("decode apps: %v", err)
	}
	if len(appsBody.Applications) != len(apps.Builtin()) {
		t.Fatalf("expected %d apps, got %d", len(apps.Builtin()), len(appsBody.Applications))
	}

	do(t, s, http.MethodPost, "/windows", `{"app_id":"finder"}`)
	do(t, s, http.MethodPost, "/windows", `{"app_id":"notes"}`)
	do(t, s, http.MethodPost, "/windows/finder-1/focus", "")

	rec = do(t, s, http.MethodPost, "/front", "")
	var front windowsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &front); err != nil {
		t.Fatalf("decode front: %v", err)
	}
	if front.ActiveID != "finder-1" || len(front.Windows) != 2 {
		t.Fatalf("unexpected front response %+v", front)
	}

	rec = do(t, s, http.MethodPost, "/windows/finder-1/close", "")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("close: status %d", rec.Code)
	}
	rec = do(t, s, http.MethodGet, "/windows", "")
	var list windowsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &list); err != nil {
		t.Fatalf("decode windows: %v", err)
	}
	if len(list.Windows) != 1 || list.ActiveID != "notes-2" {
		t.Fatalf("unexpected windows after close %+v", list)
	}
}

func TestTile(t *testing.T) {
	s := newTestServer(t)
	do(t, s, http.MethodPost, "/windows", `{"app_id":"finder"}`)
	do(t, s, http.MethodPost, "/windows", `{"app_id":"notes"}`)

	rec := do(t, s, http.MethodPost, "/tile", `{"mode":"vertical"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("tile: status %d (%s)", rec.Code, rec.Body.String())
	}
	var body windowsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode tile: %v", err)
	}
	frames := map[string]geom.Rect{}
	for _, w := range body.Windows {
		frames[w.ID] = w.Frame
	}
	if frames["notes-2"] != (geom.Rect{X: 0, Y: 28, Width: 1920, Height: 486}) {
		t.Fatalf("unexpected notes frame %v", frames["notes-2"])
	}
	if frames["finder-1"] != (geom.Rect{X: 0, Y: 514, Width: 1920, Height: 486}) {
		t.Fatalf("unexpected finder frame %v", frames["finder-1"])
	}

	if rec := do(t, s, http.MethodPost, "/tile", ""); rec.Code != http.StatusOK {
		t.Fatalf("tile without body: status %d", rec.Code)
	}
	if rec := do(t, s, http.MethodPost, "/tile", `{"mode":"spiral"}`); rec.Code != http.StatusBadRequest {
		t.Fatalf("unknown mode: expected 400, got %d", rec.Code)
	}
	if rec := do(t, s, http.MethodPost, "/tile", `{"gap":2000}`); rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("oversized gap: expected 422, got %d", rec.Code)
	}
}

func TestStatusAppAndOpenAPI(t *testing.T) {
	s := newTestServer(t)
	do(t, s, http.MethodPost, "/windows", `{"app_id":"notes"}`)

	rec := do(t, s, http.MethodGet, "/status", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status: code %d (%s)", rec.Code, rec.Body.String())
	}
	var status struct {
		Viewport    geom.Size `json:"viewport"`
		WindowCount int       `json:"window_count"`
		ActiveID    string    `json:"active_id"`
		Running     []string  `json:"running"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &status); err != nil {
		t.Fatalf("decode status: %v", err)
	}
	if status.WindowCount != 1 || status.ActiveID != "notes-1" || status.Viewport.Width != 1920 {
		t.Fatalf("unexpected status %+v", status)
	}

	rec = do(t, s, http.MethodGet, "/apps/notes", "")
	var d apps.Descriptor
	if err := json.Unmarshal(rec.Body.Bytes(), &d); err != nil {
		t.Fatalf("decode app: %v", err)
	}
	if rec.Code != http.StatusOK || d.Name != "Notes" {
		t.Fatalf("unexpected app response %d %+v", rec.Code, d)
	}
	if rec := do(t, s, http.MethodGet, "/apps/nope", ""); rec.Code != http.StatusNotFound {
		t.Fatalf("unknown app: expected 404, got %d", rec.Code)
	}

	rec = do(t, s, http.MethodGet, "/openapi.json", "")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "get-status") {
		t.Fatalf("expected OpenAPI document, got %d", rec.Code)
	}
}
