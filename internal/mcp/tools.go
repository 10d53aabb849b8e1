package mcp

import (
	"context"
	"fmt"
	"strings"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/1broseidon/deskwm/internal/desktop"
	"github.com/1broseidon/deskwm/internal/ipc"
)

func (s *Server) handleListWindows(_ context.Context, _ *mcpsdk.CallToolRequest, args ListWindowsInput) (*mcpsdk.CallToolResult, ListWindowsOutput, error) {
	data, err := s.desktop.ListWindows()
	if err != nil {
		return nil, ListWindowsOutput{}, err
	}
	out := ListWindowsOutput{ActiveID: data.ActiveID, Windows: data.Windows}
	if args.AppID != "" {
		out.Windows = filterWindows(data.Windows, args.AppID)
	}
	if out.Windows == nil {
		out.Windows = []desktop.WindowInfo{}
	}
	s.logger.Debug("tool list_windows", "count", len(out.Windows))
	return nil, out, nil
}

func (s *Server) handleListApps(_ context.Context, _ *mcpsdk.CallToolRequest, _ ListAppsInput) (*mcpsdk.CallToolResult, ListAppsOutput, error) {
	data, err := s.desktop.ListApps()
	if err != nil {
		return nil, ListAppsOutput{}, err
	}
	return nil, ListAppsOutput{Applications: data.Applications}, nil
}

func (s *Server) handleOpenApp(_ context.Context, _ *mcpsdk.CallToolRequest, args OpenAppInput) (*mcpsdk.CallToolResult, WindowOutput, error) {
	if strings.TrimSpace(args.AppID) == "" {
		return nil, WindowOutput{}, fmt.Errorf("app_id is required")
	}
	w, err := s.desktop.Open(args.AppID, args.Route, args.New)
	return s.windowResult("open_app", w, err)
}

func (s *Server) handleCloseWindow(_ context.Context, _ *mcpsdk.CallToolRequest, args WindowInput) (*mcpsdk.CallToolResult, CloseWindowOutput, error) {
	if args.ID == "" {
		return nil, CloseWindowOutput{}, fmt.Errorf("id is required")
	}
	if err := s.desktop.Close(args.ID); err != nil {
		return nil, CloseWindowOutput{}, err
	}
	s.logger.Debug("tool close_window", "window", args.ID)
	return nil, CloseWindowOutput{Closed: true}, nil
}

func (s *Server) handleSetWindowState(_ context.Context, _ *mcpsdk.CallToolRequest, args WindowStateInput) (*mcpsdk.CallToolResult, WindowOutput, error) {
	if args.ID == "" {
		return nil, WindowOutput{}, fmt.Errorf("id is required")
	}
	var action func(string) (*desktop.WindowInfo, error)
	switch strings.ToLower(strings.TrimSpace(args.State)) {
	case "minimize":
		action = s.desktop.Minimize
	case "maximize":
		action = s.desktop.Maximize
	case "restore":
		action = s.desktop.Restore
	case "focus":
		action = s.desktop.Focus
	default:
		return nil, WindowOutput{}, fmt.Errorf("unknown state %q (want minimize, maximize, restore or focus)", args.State)
	}
	w, err := action(args.ID)
	return s.windowResult("set_window_state", w, err)
}

func (s *Server) handleMoveWindow(_ context.Context, _ *mcpsdk.CallToolRequest, args MoveWindowInput) (*mcpsdk.CallToolResult, WindowOutput, error) {
	w, err := s.desktop.Move(args.ID, args.X, args.Y)
	return s.windowResult("move_window", w, err)
}

func (s *Server) handleResizeWindow(_ context.Context, _ *mcpsdk.CallToolRequest, args ResizeWindowInput) (*mcpsdk.CallToolResult, WindowOutput, error) {
	w, err := s.desktop.Resize(args.ID, args.Width, args.Height)
	return s.windowResult("resize_window", w, err)
}

func (s *Server) handleDragWindow(_ context.Context, _ *mcpsdk.CallToolRequest, args DragWindowInput) (*mcpsdk.CallToolResult, WindowOutput, error) {
	w, err := s.desktop.Drag(args.ID, args.DX, args.DY)
	return s.windowResult("drag_window", w, err)
}

func (s *Server) handleResizeEdge(_ context.Context, _ *mcpsdk.CallToolRequest, args ResizeEdgeInput) (*mcpsdk.CallToolResult, WindowOutput, error) {
	w, err := s.desktop.ResizeEdge(args.ID, args.Direction, args.DX, args.DY)
	return s.windowResult("resize_window_edge", w, err)
}

func (s *Server) handleNavigate(_ context.Context, _ *mcpsdk.CallToolRequest, args NavigateInput) (*mcpsdk.CallToolResult, WindowOutput, error) {
	w, err := s.desktop.Navigate(args.ID, args.Route)
	return s.windowResult("navigate_window", w, err)
}

func (s *Server) handleBringAllToFront(_ context.Context, _ *mcpsdk.CallToolRequest, _ ListAppsInput) (*mcpsdk.CallToolResult, ListWindowsOutput, error) {
	data, err := s.desktop.Front()
	if err != nil {
		return nil, ListWindowsOutput{}, err
	}
	return nil, ListWindowsOutput{Windows: data.Windows, ActiveID: data.ActiveID}, nil
}

func (s *Server) handleTileWindows(_ context.Context, _ *mcpsdk.CallToolRequest, args TileWindowsInput) (*mcpsdk.CallToolResult, ListWindowsOutput, error) {
	data, err := s.desktop.Tile(ipc.TilePayload{Mode: args.Mode, Gap: args.Gap})
	if err != nil {
		return nil, ListWindowsOutput{}, err
	}
	s.logger.Debug("tool ok", "tool", "tile_windows", "count", len(data.Windows))
	return nil, ListWindowsOutput{Windows: data.Windows, ActiveID: data.ActiveID}, nil
}

func (s *Server) windowResult(tool string, w *desktop.WindowInfo, err error) (*mcpsdk.CallToolResult, WindowOutput, error) {
	if err != nil {
		s.logger.Debug("tool failed", "tool", tool, "error", err)
		return nil, WindowOutput{}, err
	}
	s.logger.Debug("tool ok", "tool", tool, "window", w.ID, "status", w.Status)
	return nil, WindowOutput{Window: *w}, nil
}

func filterWindows(ws []desktop.WindowInfo, appID string) []desktop.WindowInfo {
	var out []desktop.WindowInfo
	for _, w := range ws {
		if w.AppID == appID {
			out = append(out, w)
		}
	}
	return out
}
