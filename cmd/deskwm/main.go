package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/1broseidon/deskwm/internal/config"
	"github.com/1broseidon/deskwm/internal/daemon"
	"github.com/1broseidon/deskwm/internal/ipc"
	"github.com/1broseidon/deskwm/internal/mcp"
	"github.com/1broseidon/deskwm/internal/tui"
	"github.com/joho/godotenv"
	"github.com/k0kubun/pp"
)

func main() {
	// A .env next to the binary's working directory may set DESKWM_* overrides.
	_ = godotenv.Load()

	if len(os.Args) < 2 {
		printMainUsage(os.Stdout)
		os.Exit(0)
	}

	switch os.Args[1] {
	case "daemon":
		os.Exit(runDaemon(os.Args[2:]))
	case "status":
		os.Exit(runStatus(os.Args[2:]))
	case "list":
		os.Exit(runList(os.Args[2:]))
	case "apps":
		os.Exit(runApps(os.Args[2:]))
	case "open":
		os.Exit(runOpen(os.Args[2:]))
	case "close", "minimize", "maximize", "restore", "focus":
		os.Exit(runWindowAction(os.Args[1], os.Args[2:]))
	case "move":
		os.Exit(runMove(os.Args[2:]))
	case "resize":
		os.Exit(runResize(os.Args[2:]))
	case "drag":
		os.Exit(runDrag(os.Args[2:]))
	case "resize-edge":
		os.Exit(runResizeEdge(os.Args[2:]))
	case "navigate":
		os.Exit(runNavigate(os.Args[2:]))
	case "front":
		os.Exit(runFront(os.Args[2:]))
	case "tile":
		os.Exit(runTile(os.Args[2:]))
	case "viewport":
		os.Exit(runViewport(os.Args[2:]))
	case "snapshot":
		os.Exit(runSnapshot(os.Args[2:]))
	case "reload":
		os.Exit(runReload(os.Args[2:]))
	case "config":
		os.Exit(runConfig(os.Args[2:]))
	case "tui":
		os.Exit(runTUI(os.Args[2:]))
	case "mcp":
		os.Exit(runMCP(os.Args[2:]))
	case "help", "-h", "--help":
		printMainUsage(os.Stdout)
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printMainUsage(os.Stderr)
		os.Exit(2)
	}
}

func printMainUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: deskwm <command> [options]")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  daemon              Start the desktop daemon (foreground)")
	fmt.Fprintln(w, "  status              Show daemon status")
	fmt.Fprintln(w, "  reload              Re-read configuration in the daemon")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  list                List windows, bottom to top")
	fmt.Fprintln(w, "  apps                List launchable applications")
	fmt.Fprintln(w, "  open                Open or focus an application window")
	fmt.Fprintln(w, "  close               Close a window")
	fmt.Fprintln(w, "  minimize            Minimize a window")
	fmt.Fprintln(w, "  maximize            Maximize a window")
	fmt.Fprintln(w, "  restore             Restore a minimized or maximized window")
	fmt.Fprintln(w, "  focus               Focus a window")
	fmt.Fprintln(w, "  move                Move a window to a position")
	fmt.Fprintln(w, "  resize              Resize a window")
	fmt.Fprintln(w, "  drag                Drag a window by an offset (snap and clamp)")
	fmt.Fprintln(w, "  resize-edge         Resize a window from an edge or corner handle")
	fmt.Fprintln(w, "  navigate            Set the route of a window")
	fmt.Fprintln(w, "  front               Bring all windows to front")
	fmt.Fprintln(w, "  tile                Arrange visible windows in a layout")
	fmt.Fprintln(w, "  viewport            Set the desktop viewport size")
	fmt.Fprintln(w, "  snapshot            Render the window layout to a PNG")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  config validate     Validate configuration")
	fmt.Fprintln(w, "  config print        Print configuration")
	fmt.Fprintln(w, "  config explain      Explain a config value")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  tui                 Run a standalone desktop in the terminal")
	fmt.Fprintln(w, "  mcp serve           Start MCP server (stdio transport)")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Run 'deskwm <command> --help' for command-specific options.")
}

// parseFlags applies the shared flag conventions: 0 on --help, 2 on a parse
// error, -1 to continue.
func parseFlags(fs *flag.FlagSet, args []string) int {
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	return -1
}

func loadConfig(path string) (*config.LoadResult, error) {
	if path == "" {
		return config.LoadWithSources()
	}
	return config.LoadFromPath(path)
}

func runDaemon(args []string) int {
	fs := flag.NewFlagSet("daemon", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	path := fs.String("path", "", "Config file path (default: ~/.config/deskwm/config.yaml)")
	socket := fs.String("socket", "", "IPC socket path (default: $XDG_RUNTIME_DIR/deskwm.sock)")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: deskwm daemon [--path PATH] [--socket PATH]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Run the window manager session in the foreground.")
	}
	if code := parseFlags(fs, args); code >= 0 {
		return code
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "daemon takes no arguments")
		fs.Usage()
		return 2
	}

	res, err := loadConfig(*path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		return 1
	}
	logger := daemon.NewLogger(os.Stderr, res.Config.SlogLevel())

	d, err := daemon.New(daemon.Options{
		Config:     res.Config,
		ConfigPath: *path,
		Logger:     logger,
		SocketPath: *socket,
	})
	if err != nil {
		logger.Error("daemon setup failed", "error", err)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := d.Run(ctx); err != nil {
		logger.Error("daemon stopped", "error", err)
		return 1
	}
	return 0
}

func runStatus(args []string) int {
	fs := flag.NewFlagSet("status", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	dump := fs.Bool("dump", false, "Pretty-print the raw status and window list")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: deskwm status [--dump]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Show daemon status via IPC.")
	}
	if code := parseFlags(fs, args); code >= 0 {
		return code
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "status takes no arguments")
		fs.Usage()
		return 2
	}

	client := ipc.NewClient()
	status, err := client.GetStatus()
	if err != nil {
		return fail(err)
	}
	if *dump {
		windows, err := client.ListWindows()
		if err != nil {
			return fail(err)
		}
		pp.Println(status)
		pp.Println(windows)
		return 0
	}
	fmt.Printf("session_id:     %s\n", status.SessionID)
	fmt.Printf("daemon_running: %v\n", status.DaemonRunning)
	fmt.Printf("booting:        %v\n", status.Booting)
	fmt.Printf("viewport:       %.0fx%.0f\n", status.Viewport.Width, status.Viewport.Height)
	fmt.Printf("window_count:   %d\n", status.WindowCount)
	fmt.Printf("active_id:      %s\n", status.ActiveID)
	fmt.Printf("running:        %v\n", status.Running)
	fmt.Printf("interactions:   %d\n", status.Interactions)
	fmt.Printf("uptime_seconds: %d\n", status.UptimeSeconds)
	return 0
}

func runReload(args []string) int {
	fs := flag.NewFlagSet("reload", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: deskwm reload")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Ask the daemon to re-read its configuration. Open windows are kept.")
	}
	if code := parseFlags(fs, args); code >= 0 {
		return code
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "reload takes no arguments")
		fs.Usage()
		return 2
	}
	if err := ipc.NewClient().Reload(); err != nil {
		return fail(err)
	}
	fmt.Println("config: reloaded")
	return 0
}

func runTUI(args []string) int {
	fs := flag.NewFlagSet("tui", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	path := fs.String("path", "", "Config file path (default: ~/.config/deskwm/config.yaml)")
	var open stringList
	fs.Var(&open, "open", "Application to open at start (repeatable)")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: deskwm tui [--path PATH] [--open APP]...")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Run a desktop session drawn in the terminal. Does not need the daemon.")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Mouse:")
		fmt.Fprintln(os.Stderr, "  title bar     Drag to move, buttons close/minimize/maximize")
		fmt.Fprintln(os.Stderr, "  border        Drag to resize")
		fmt.Fprintln(os.Stderr, "  dock          Open or focus an application")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Keybindings:")
		fmt.Fprintln(os.Stderr, "  a             Toggle application launcher")
		fmt.Fprintln(os.Stderr, "  tab           Cycle focus")
		fmt.Fprintln(os.Stderr, "  f             Bring all windows to front")
		fmt.Fprintln(os.Stderr, "  t             Tile visible windows")
		fmt.Fprintln(os.Stderr, "  m             Minimize active window")
		fmt.Fprintln(os.Stderr, "  x             Toggle maximize on active window")
		fmt.Fprintln(os.Stderr, "  w             Close active window")
		fmt.Fprintln(os.Stderr, "  q, Ctrl+C     Quit")
	}
	if code := parseFlags(fs, args); code >= 0 {
		return code
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "tui takes no positional arguments")
		fs.Usage()
		return 2
	}

	res, err := loadConfig(*path)
	if err != nil {
		return fail(err)
	}
	if err := tui.Run(tui.Options{Config: res.Config, Open: open}); err != nil {
		return fail(err)
	}
	return 0
}

func printMCPUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: deskwm mcp <command>")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  serve    Start the MCP server (stdio transport)")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Run 'deskwm mcp <command> --help' for command-specific options.")
}

func runMCP(args []string) int {
	if len(args) == 0 {
		printMCPUsage(os.Stderr)
		return 2
	}

	switch args[0] {
	case "serve":
		return runMCPServe(args[1:])
	case "help", "-h", "--help":
		printMCPUsage(os.Stdout)
		return 0
	default:
		fmt.Fprintf(os.Stderr, "Unknown mcp command: %s\n\n", args[0])
		printMCPUsage(os.Stderr)
		return 2
	}
}

func runMCPServe(args []string) int {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	socket := fs.String("socket", "", "Daemon socket path")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: deskwm mcp serve [--socket PATH]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Start the MCP server on stdio. Tools are forwarded to a running daemon.")
	}
	if code := parseFlags(fs, args); code >= 0 {
		return code
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		return 1
	}
	// stdout carries the protocol; logs go to stderr.
	logger := daemon.NewLogger(os.Stderr, cfg.SlogLevel())

	client := ipc.NewClient()
	if *socket != "" {
		client = ipc.NewClientWithSocket(*socket)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := mcp.NewServer(client, logger).Run(ctx); err != nil && ctx.Err() == nil {
		logger.Error("mcp server error", "error", err)
		return 1
	}
	return 0
}

type stringList []string

func (l *stringList) String() string {
	return fmt.Sprint([]string(*l))
}

func (l *stringList) Set(value string) error {
	*l = append(*l, value)
	return nil
}

func fail(err error) int {
	fmt.Fprintln(os.Stderr, err)
	return 1
}
