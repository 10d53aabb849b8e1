package mcp

import (
	"context"
	"io"
	"log/slog"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/1broseidon/deskwm/internal/desktop"
	"github.com/1broseidon/deskwm/internal/ipc"
)

const (
	ServerName    = "deskwm"
	ServerVersion = "0.1.0"
)

// Desktop is the daemon surface the tools drive. *ipc.Client implements it.
type Desktop interface {
	ListWindows() (*ipc.WindowsData, error)
	ListApps() (*ipc.AppsData, error)
	Open(appID, route string, newInstance bool) (*desktop.WindowInfo, error)
	Close(id string) error
	Minimize(id string) (*desktop.WindowInfo, error)
	Maximize(id string) (*desktop.WindowInfo, error)
	Restore(id string) (*desktop.WindowInfo, error)
	Focus(id string) (*desktop.WindowInfo, error)
	Move(id string, x, y float64) (*desktop.WindowInfo, error)
	Resize(id string, width, height float64) (*desktop.WindowInfo, error)
	Drag(id string, dx, dy float64) (*desktop.WindowInfo, error)
	ResizeEdge(id, direction string, dx, dy float64) (*desktop.WindowInfo, error)
	Navigate(id, route string) (*desktop.WindowInfo, error)
	Front() (*ipc.WindowsData, error)
	Tile(payload ipc.TilePayload) (*ipc.WindowsData, error)
}

// Server is the MCP server exposing window management tools.
type Server struct {
	mcpServer *mcpsdk.Server
	desktop   Desktop
	logger    *slog.Logger
}

// NewServer creates a new MCP server driving d.
func NewServer(d Desktop, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	s := &Server{desktop: d, logger: logger}

	s.mcpServer = mcpsdk.NewServer(
		&mcpsdk.Implementation{
			Name:    ServerName,
			Version: ServerVersion,
		},
		nil,
	)

	s.registerTools()
	return s
}

// Run starts the MCP server on stdio transport, blocking until done.
func (s *Server) Run(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcpsdk.StdioTransport{})
}

func (s *Server) registerTools() {
	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "list_windows",
		Description: "List open desktop windows from bottom to top of the stack, with status, frame and route. The active window is reported as active_id.",
	}, s.handleListWindows)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "list_apps",
		Description: "List the applications that can be opened, with default and minimum window sizes.",
	}, s.handleListApps)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "open_app",
		Description: "Open an application. If a window of that application is already open it is focused instead, unless new is true.",
	}, s.handleOpenApp)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "close_window",
		Description: "Close a window. Focus passes to the next highest visible window.",
	}, s.handleCloseWindow)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "set_window_state",
		Description: "Minimize, maximize, restore or focus a window.",
	}, s.handleSetWindowState)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "move_window",
		Description: "Place a window at an exact position. No snapping or clamping is applied; use drag_window for pointer-style moves.",
	}, s.handleMoveWindow)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "resize_window",
		Description: "Set a window's size. Sizes below the application minimum are raised to it.",
	}, s.handleResizeWindow)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "drag_window",
		Description: "Drag a window by a pointer offset. The result snaps to nearby screen edges and always stays reachable. Maximized windows cannot be dragged.",
	}, s.handleDragWindow)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "resize_window_edge",
		Description: "Resize a window by dragging one of its edges or corners. The opposite edge stays fixed.",
	}, s.handleResizeEdge)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "navigate_window",
		Description: "Change the route a window shows.",
	}, s.handleNavigate)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "bring_all_to_front",
		Description: "Raise every visible window above the rest while keeping their relative order.",
	}, s.handleBringAllToFront)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "tile_windows",
		Description: "Arrange the visible windows over the desktop. The active window takes the first cell.",
	}, s.handleTileWindows)
}
