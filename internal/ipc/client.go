package ipc

import (
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/1broseidon/deskwm/internal/desktop"
	"github.com/1broseidon/deskwm/internal/runtimepath"
)

const defaultClientTimeout = 5 * time.Second

// Client talks to a running daemon over its unix socket. Each call opens a
// fresh connection carrying one request line and one response line.
type Client struct {
	socketPath string
	timeout    time.Duration
}

// NewClient targets the default socket. A path lookup failure surfaces on
// the first call.
func NewClient() *Client {
	path, _ := runtimepath.SocketPath()
	return NewClientWithSocket(path)
}

func NewClientWithSocket(socketPath string) *Client {
	return &Client{socketPath: socketPath, timeout: defaultClientTimeout}
}

func (c *Client) roundTrip(req Request) (Response, error) {
	conn, err := net.DialTimeout("unix", c.socketPath, c.timeout)
	if err != nil {
		return Response{}, fmt.Errorf("dial %s: %w (is the daemon running?)", c.socketPath, err)
	}
	defer conn.Close()
	_ = conn.SetDeadline(time.Now().Add(c.timeout))

	if err := json.NewEncoder(conn).Encode(req); err != nil {
		return Response{}, fmt.Errorf("send %s: %w", req.Command, err)
	}
	var resp Response
	if err := json.NewDecoder(conn).Decode(&resp); err != nil {
		return Response{}, fmt.Errorf("read %s response: %w", req.Command, err)
	}
	if resp.Status == "ERROR" {
		return resp, errors.New("daemon error: " + resp.Error)
	}
	return resp, nil
}

// call sends cmd with an optional payload and decodes the reply into out
// when out is non-nil.
func (c *Client) call(cmd CommandType, payload any, out any) error {
	req := Request{Command: cmd}
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("encode %s payload: %w", cmd, err)
		}
		req.Payload = raw
	}
	resp, err := c.roundTrip(req)
	if err != nil || out == nil {
		return err
	}
	if err := json.Unmarshal(resp.Data, out); err != nil {
		return fmt.Errorf("decode %s data: %w", cmd, err)
	}
	return nil
}

func fetch[T any](c *Client, cmd CommandType, payload any) (*T, error) {
	var out T
	if err := c.call(cmd, payload, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) window(cmd CommandType, payload any) (*desktop.WindowInfo, error) {
	return fetch[desktop.WindowInfo](c, cmd, payload)
}

func (c *Client) GetStatus() (*StatusData, error) {
	return fetch[StatusData](c, CommandGetStatus, nil)
}

// ListWindows returns every open window, bottom to top.
func (c *Client) ListWindows() (*WindowsData, error) {
	return fetch[WindowsData](c, CommandListWindows, nil)
}

// ListApps returns the application catalog.
func (c *Client) ListApps() (*AppsData, error) {
	return fetch[AppsData](c, CommandListApps, nil)
}

// Open shows an application. With newInstance set a fresh window is
// always created.
func (c *Client) Open(appID, route string, newInstance bool) (*desktop.WindowInfo, error) {
	return c.window(CommandOpen, OpenPayload{AppID: appID, Route: route, New: newInstance})
}

func (c *Client) Close(id string) error {
	return c.call(CommandClose, WindowPayload{ID: id}, nil)
}

func (c *Client) Minimize(id string) (*desktop.WindowInfo, error) {
	return c.window(CommandMinimize, WindowPayload{ID: id})
}

func (c *Client) Maximize(id string) (*desktop.WindowInfo, error) {
	return c.window(CommandMaximize, WindowPayload{ID: id})
}

func (c *Client) Restore(id string) (*desktop.WindowInfo, error) {
	return c.window(CommandRestore, WindowPayload{ID: id})
}

func (c *Client) Focus(id string) (*desktop.WindowInfo, error) {
	return c.window(CommandFocus, WindowPayload{ID: id})
}

// Move commits a position without snapping or clamping.
func (c *Client) Move(id string, x, y float64) (*desktop.WindowInfo, error) {
	return c.window(CommandMove, MovePayload{ID: id, X: x, Y: y})
}

// Resize commits a size, floored at the application minimum.
func (c *Client) Resize(id string, width, height float64) (*desktop.WindowInfo, error) {
	return c.window(CommandResize, ResizePayload{ID: id, Width: width, Height: height})
}

// Drag replays a full drag gesture with a cumulative offset.
func (c *Client) Drag(id string, dx, dy float64) (*desktop.WindowInfo, error) {
	return c.window(CommandDrag, DragPayload{ID: id, DX: dx, DY: dy})
}

// ResizeEdge replays a resize from the given handle.
func (c *Client) ResizeEdge(id, direction string, dx, dy float64) (*desktop.WindowInfo, error) {
	return c.window(CommandResizeEdge, ResizeEdgePayload{ID: id, Direction: direction, DX: dx, DY: dy})
}

func (c *Client) Navigate(id, route string) (*desktop.WindowInfo, error) {
	return c.window(CommandNavigate, NavigatePayload{ID: id, Route: route})
}

// Front raises every visible window and returns the new stack.
func (c *Client) Front() (*WindowsData, error) {
	return fetch[WindowsData](c, CommandFront, nil)
}

// Tile arranges the visible windows and returns the new stack.
func (c *Client) Tile(payload TilePayload) (*WindowsData, error) {
	return fetch[WindowsData](c, CommandTile, payload)
}

// SetViewport overrides the viewport until the next reconciler poll.
func (c *Client) SetViewport(width, height float64) error {
	return c.call(CommandSetViewport, ViewportPayload{Width: width, Height: height}, nil)
}

// Reload asks the daemon to re-read its config file.
func (c *Client) Reload() error {
	return c.call(CommandReload, nil, nil)
}

// Ping reports whether the daemon answers.
func (c *Client) Ping() error {
	_, err := c.GetStatus()
	return err
}
