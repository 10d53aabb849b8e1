package mcp

import (
	"github.com/1broseidon/deskwm/internal/apps"
	"github.com/1broseidon/deskwm/internal/desktop"
)

// ListWindowsInput is the input for the list_windows tool.
type ListWindowsInput struct {
	AppID string `json:"app_id,omitempty" jsonschema:"Only list windows of this application"`
}

// ListWindowsOutput is the output for list_windows and bring_all_to_front.
type ListWindowsOutput struct {
	Windows  []desktop.WindowInfo `json:"windows"`
	ActiveID string               `json:"active_id,omitempty"`
}

// ListAppsInput is the input for the list_apps tool.
type ListAppsInput struct{}

// ListAppsOutput is the output for the list_apps tool.
type ListAppsOutput struct {
	Applications []apps.Descriptor `json:"applications"`
}

// OpenAppInput is the input for the open_app tool.
type OpenAppInput struct {
	AppID string `json:"app_id" jsonschema:"required,Application id from list_apps"`
	Route string `json:"route,omitempty" jsonschema:"Route to show; defaults to the application's default route"`
	New   bool   `json:"new,omitempty" jsonschema:"When true, always open a new window instead of focusing an existing one"`
}

// WindowInput names a single window.
type WindowInput struct {
	ID string `json:"id" jsonschema:"required,Window id (e.g. notes-3)"`
}

// WindowStateInput is the input for the set_window_state tool.
type WindowStateInput struct {
	ID    string `json:"id" jsonschema:"required,Window id"`
	State string `json:"state" jsonschema:"required,One of minimize, maximize, restore, focus"`
}

// MoveWindowInput is the input for the move_window tool.
type MoveWindowInput struct {
	ID string  `json:"id" jsonschema:"required,Window id"`
	X  float64 `json:"x" jsonschema:"required,Left edge in pixels"`
	Y  float64 `json:"y" jsonschema:"required,Top edge in pixels"`
}

// ResizeWindowInput is the input for the resize_window tool.
type ResizeWindowInput struct {
	ID     string  `json:"id" jsonschema:"required,Window id"`
	Width  float64 `json:"width" jsonschema:"required,Width in pixels, floored at the application minimum"`
	Height float64 `json:"height" jsonschema:"required,Height in pixels, floored at the application minimum"`
}

// DragWindowInput is the input for the drag_window tool.
type DragWindowInput struct {
	ID string  `json:"id" jsonschema:"required,Window id"`
	DX float64 `json:"dx" jsonschema:"required,Horizontal pointer offset in pixels"`
	DY float64 `json:"dy" jsonschema:"required,Vertical pointer offset in pixels"`
}

// ResizeEdgeInput is the input for the resize_window_edge tool.
type ResizeEdgeInput struct {
	ID        string  `json:"id" jsonschema:"required,Window id"`
	Direction string  `json:"direction" jsonschema:"required,Handle to drag: n, s, e, w, ne, nw, se or sw"`
	DX        float64 `json:"dx" jsonschema:"Horizontal pointer delta in pixels"`
	DY        float64 `json:"dy" jsonschema:"Vertical pointer delta in pixels"`
}

// NavigateInput is the input for the navigate_window tool.
type NavigateInput struct {
	ID    string `json:"id" jsonschema:"required,Window id"`
	Route string `json:"route" jsonschema:"required,Route to show"`
}

// TileWindowsInput is the input for the tile_windows tool.
type TileWindowsInput struct {
	Mode string  `json:"mode,omitempty" jsonschema:"Layout: grid (default), vertical, horizontal or master-stack"`
	Gap  float64 `json:"gap,omitempty" jsonschema:"Pixels between cells and around the edge"`
}

// WindowOutput wraps a single window.
type WindowOutput struct {
	Window desktop.WindowInfo `json:"window"`
}

// CloseWindowOutput is the output for the close_window tool.
type CloseWindowOutput struct {
	Closed bool `json:"closed"`
}
