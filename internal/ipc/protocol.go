package ipc

import (
	"encoding/json"
	"fmt"

	"github.com/1broseidon/deskwm/internal/apps"
	"github.com/1broseidon/deskwm/internal/desktop"
	"github.com/1broseidon/deskwm/internal/geom"
	"github.com/1broseidon/deskwm/internal/tiling"
)

// CommandType represents different IPC command types
type CommandType string

const (
	CommandGetStatus   CommandType = "GET_STATUS"
	CommandListWindows CommandType = "LIST_WINDOWS"
	CommandListApps    CommandType = "LIST_APPS"
	CommandOpen        CommandType = "OPEN"
	CommandClose       CommandType = "CLOSE"
	CommandMinimize    CommandType = "MINIMIZE"
	CommandMaximize    CommandType = "MAXIMIZE"
	CommandRestore     CommandType = "RESTORE"
	CommandFocus       CommandType = "FOCUS"
	CommandMove        CommandType = "MOVE"
	CommandResize      CommandType = "RESIZE"
	CommandDrag        CommandType = "DRAG"
	CommandResizeEdge  CommandType = "RESIZE_EDGE"
	CommandNavigate    CommandType = "NAVIGATE"
	CommandFront       CommandType = "FRONT"
	CommandTile        CommandType = "TILE"
	CommandSetViewport CommandType = "SET_VIEWPORT"
	CommandReload      CommandType = "RELOAD"
)

// Request represents an IPC request from client to server
type Request struct {
	Command CommandType     `json:"command"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Response represents an IPC response from server to client
type Response struct {
	Status string          `json:"status"` // "OK" or "ERROR"
	Data   json.RawMessage `json:"data,omitempty"`
	Error  string          `json:"error,omitempty"`
}

// StatusData represents the data returned by GET_STATUS
type StatusData struct {
	SessionID     string       `json:"session_id"`
	UptimeSeconds int64        `json:"uptime_seconds"`
	DaemonRunning bool         `json:"daemon_running"`
	Booting       bool         `json:"booting"`
	Viewport      geom.Size    `json:"viewport"`
	Metrics       geom.Metrics `json:"metrics"`
	WindowCount   int          `json:"window_count"`
	ActiveID      string       `json:"active_id,omitempty"`
	Running       []string     `json:"running"`
	Revision      uint64       `json:"revision"`
	Interactions  int          `json:"interactions"`
}

// WindowsData is returned by LIST_WINDOWS and FRONT.
type WindowsData struct {
	Windows  []desktop.WindowInfo `json:"windows"`
	ActiveID string               `json:"active_id,omitempty"`
}

// AppsData is returned by LIST_APPS.
type AppsData struct {
	Applications []apps.Descriptor `json:"applications"`
}

// WindowPayload names a single window.
type WindowPayload struct {
	ID string `json:"id"`
}

type OpenPayload struct {
	AppID string `json:"app_id"`
	Route string `json:"route,omitempty"`
	// New forces a fresh instance instead of focusing an existing one.
	New bool `json:"new,omitempty"`
}

type MovePayload struct {
	ID string  `json:"id"`
	X  float64 `json:"x"`
	Y  float64 `json:"y"`
}

type ResizePayload struct {
	ID     string  `json:"id"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// DragPayload carries the cumulative pointer offset of a whole drag.
type DragPayload struct {
	ID string  `json:"id"`
	DX float64 `json:"dx"`
	DY float64 `json:"dy"`
}

// ResizeEdgePayload carries a handle (n, s, e, w, ne, nw, se, sw) and the
// pointer delta since the press.
type ResizeEdgePayload struct {
	ID        string  `json:"id"`
	Direction string  `json:"direction"`
	DX        float64 `json:"dx"`
	DY        float64 `json:"dy"`
}

type NavigatePayload struct {
	ID    string `json:"id"`
	Route string `json:"route"`
}

// TilePayload selects the tiling mode (grid, vertical, horizontal,
// master-stack) and the gap between cells.
type TilePayload struct {
	Mode            string  `json:"mode,omitempty"`
	Gap             float64 `json:"gap,omitempty"`
	FlexibleLastRow *bool   `json:"flexible_last_row,omitempty"`
	MasterPercent   float64 `json:"master_percent,omitempty"`
}

// Layout converts the payload, filling unset fields from the default layout.
func (p TilePayload) Layout() (tiling.Layout, error) {
	layout := tiling.DefaultLayout()
	mode, err := tiling.ParseMode(p.Mode)
	if err != nil {
		return tiling.Layout{}, err
	}
	layout.Mode = mode
	layout.Gap = p.Gap
	if p.FlexibleLastRow != nil {
		layout.FlexibleLastRow = *p.FlexibleLastRow
	}
	if p.MasterPercent > 0 {
		layout.MasterPercent = p.MasterPercent
	}
	return layout, nil
}

type ViewportPayload struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

func okResponse(data any) *Response {
	if data == nil {
		return &Response{Status: "OK"}
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return errorf("encode response data: %v", err)
	}
	return &Response{Status: "OK", Data: raw}
}

func errorf(format string, args ...any) *Response {
	return &Response{Status: "ERROR", Error: fmt.Sprintf(format, args...)}
}
