package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/1broseidon/deskwm/internal/desktop"
	"github.com/1broseidon/deskwm/internal/ipc"
	"github.com/atotto/clipboard"
	"github.com/charmbracelet/huh"
)

func runList(args []string) int {
	fs := flag.NewFlagSet("list", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	asJSON := fs.Bool("json", false, "Output JSON")
	copyJSON := fs.Bool("copy", false, "Also copy the JSON listing to the clipboard")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: deskwm list [--json] [--copy]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "List open windows in stacking order, bottom to top.")
	}
	if code := parseFlags(fs, args); code >= 0 {
		return code
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "list takes no arguments")
		fs.Usage()
		return 2
	}

	data, err := ipc.NewClient().ListWindows()
	if err != nil {
		return fail(err)
	}
	if *copyJSON {
		raw, err := json.MarshalIndent(data, "", "  ")
		if err != nil {
			return fail(err)
		}
		if err := clipboard.WriteAll(string(raw)); err != nil {
			fmt.Fprintf(os.Stderr, "copy to clipboard: %v\n", err)
			return 1
		}
	}
	if *asJSON {
		return printJSON(data)
	}
	printWindows(data.Windows)
	return 0
}

func printWindows(windows []desktop.WindowInfo) {
	if len(windows) == 0 {
		fmt.Println("no windows")
		return
	}
	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tSTATUS\tFRAME\tROUTE\t")
	for _, w := range windows {
		id := w.ID
		if w.Active {
			id += " *"
		}
		fmt.Fprintf(tw, "%s\t%s\t%.0f,%.0f %.0fx%.0f\t%s\t\n",
			id, w.Status, w.Frame.X, w.Frame.Y, w.Frame.Width, w.Frame.Height, w.Route)
	}
	_ = tw.Flush()
}

func runApps(args []string) int {
	fs := flag.NewFlagSet("apps", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	asJSON := fs.Bool("json", false, "Output JSON")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: deskwm apps [--json]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "List the application catalog of the running daemon.")
	}
	if code := parseFlags(fs, args); code >= 0 {
		return code
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "apps takes no arguments")
		fs.Usage()
		return 2
	}

	data, err := ipc.NewClient().ListApps()
	if err != nil {
		return fail(err)
	}
	if *asJSON {
		return printJSON(data)
	}
	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tDEFAULT\tMINIMUM\t")
	for _, a := range data.Applications {
		fmt.Fprintf(tw, "%s\t%s\t%.0fx%.0f\t%.0fx%.0f\t\n",
			a.ID, a.Name, a.DefaultSize.Width, a.DefaultSize.Height, a.MinSize.Width, a.MinSize.Height)
	}
	_ = tw.Flush()
	return 0
}

func runOpen(args []string) int {
	fs := flag.NewFlagSet("open", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	newInstance := fs.Bool("new", false, "Always open a new window")
	route := fs.String("route", "", "Initial route for the window")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: deskwm open [--new] [--route ROUTE] [app]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Open an application, or focus its topmost window when one is open.")
		fmt.Fprintln(os.Stderr, "Without an app, pick one interactively.")
	}
	if code := parseFlags(fs, args); code >= 0 {
		return code
	}
	if fs.NArg() > 1 {
		fmt.Fprintln(os.Stderr, "open takes at most one app")
		fs.Usage()
		return 2
	}

	client := ipc.NewClient()
	appID := fs.Arg(0)
	if appID == "" {
		picked, err := pickApplication(client)
		if err != nil {
			return fail(err)
		}
		appID = picked
	}

	w, err := client.Open(appID, *route, *newInstance)
	if err != nil {
		return fail(err)
	}
	printWindow(w)
	return 0
}

func pickApplication(client *ipc.Client) (string, error) {
	data, err := client.ListApps()
	if err != nil {
		return "", err
	}
	if len(data.Applications) == 0 {
		return "", fmt.Errorf("no applications configured")
	}

	options := make([]huh.Option[string], 0, len(data.Applications))
	for _, a := range data.Applications {
		options = append(options, huh.NewOption(a.Name, a.ID))
	}
	var choice string
	sel := huh.NewSelect[string]().
		Title("Open application").
		Options(options...).
		Value(&choice)
	if err := huh.NewForm(huh.NewGroup(sel)).Run(); err != nil {
		return "", err
	}
	return choice, nil
}

func runWindowAction(name string, args []string) int {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: deskwm %s <window-id>\n", name)
	}
	if code := parseFlags(fs, args); code >= 0 {
		return code
	}
	if fs.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "%s requires exactly one window id\n", name)
		fs.Usage()
		return 2
	}

	client := ipc.NewClient()
	id := fs.Arg(0)
	var (
		w   *desktop.WindowInfo
		err error
	)
	switch name {
	case "close":
		err = client.Close(id)
	case "minimize":
		w, err = client.Minimize(id)
	case "maximize":
		w, err = client.Maximize(id)
	case "restore":
		w, err = client.Restore(id)
	case "focus":
		w, err = client.Focus(id)
	}
	if err != nil {
		return fail(err)
	}
	if w != nil {
		printWindow(w)
	}
	return 0
}

func runMove(args []string) int {
	return runPairCommand("move", "<window-id> <x> <y>", args, func(c *ipc.Client, id string, a, b float64) (*desktop.WindowInfo, error) {
		return c.Move(id, a, b)
	})
}

func runResize(args []string) int {
	return runPairCommand("resize", "<window-id> <width> <height>", args, func(c *ipc.Client, id string, a, b float64) (*desktop.WindowInfo, error) {
		return c.Resize(id, a, b)
	})
}

func runDrag(args []string) int {
	return runPairCommand("drag", "<window-id> <dx> <dy>", args, func(c *ipc.Client, id string, a, b float64) (*desktop.WindowInfo, error) {
		return c.Drag(id, a, b)
	})
}

// runPairCommand handles the "<id> <number> <number>" command shape.
func runPairCommand(name, usage string, args []string, call func(*ipc.Client, string, float64, float64) (*desktop.WindowInfo, error)) int {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: deskwm %s %s\n", name, usage)
	}
	if code := parseFlags(fs, args); code >= 0 {
		return code
	}
	if fs.NArg() != 3 {
		fs.Usage()
		return 2
	}
	a, b, err := parsePair(fs.Arg(1), fs.Arg(2))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	w, err := call(ipc.NewClient(), fs.Arg(0), a, b)
	if err != nil {
		return fail(err)
	}
	printWindow(w)
	return 0
}

func runResizeEdge(args []string) int {
	fs := flag.NewFlagSet("resize-edge", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: deskwm resize-edge <window-id> <n|s|e|w|ne|nw|se|sw> <dx> <dy>")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Resize from a handle. West and north handles keep the opposite edge fixed.")
	}
	if code := parseFlags(fs, args); code >= 0 {
		return code
	}
	if fs.NArg() != 4 {
		fs.Usage()
		return 2
	}
	dx, dy, err := parsePair(fs.Arg(2), fs.Arg(3))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	w, err := ipc.NewClient().ResizeEdge(fs.Arg(0), fs.Arg(1), dx, dy)
	if err != nil {
		return fail(err)
	}
	printWindow(w)
	return 0
}

func runNavigate(args []string) int {
	fs := flag.NewFlagSet("navigate", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: deskwm navigate <window-id> <route>")
	}
	if code := parseFlags(fs, args); code >= 0 {
		return code
	}
	if fs.NArg() != 2 {
		fs.Usage()
		return 2
	}

	w, err := ipc.NewClient().Navigate(fs.Arg(0), fs.Arg(1))
	if err != nil {
		return fail(err)
	}
	printWindow(w)
	return 0
}

func runFront(args []string) int {
	fs := flag.NewFlagSet("front", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: deskwm front")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Un-minimize every window, keeping the relative stacking order.")
	}
	if code := parseFlags(fs, args); code >= 0 {
		return code
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "front takes no arguments")
		fs.Usage()
		return 2
	}

	data, err := ipc.NewClient().Front()
	if err != nil {
		return fail(err)
	}
	printWindows(data.Windows)
	return 0
}

func runTile(args []string) int {
	fs := flag.NewFlagSet("tile", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	mode := fs.String("mode", "grid", "Layout: grid, vertical, horizontal or master-stack")
	gap := fs.Float64("gap", 0, "Pixels between cells and around the edge")
	fixedLastRow := fs.Bool("fixed-last-row", false, "Keep the last grid row at full-row slot widths")
	master := fs.Float64("master", 0, "Master pane width percent (master-stack)")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: deskwm tile [--mode MODE] [--gap PX] [--fixed-last-row] [--master PCT]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Arrange the visible windows over the desktop. The active window goes first.")
	}
	if code := parseFlags(fs, args); code >= 0 {
		return code
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "tile takes no positional arguments")
		fs.Usage()
		return 2
	}

	flexible := !*fixedLastRow
	data, err := ipc.NewClient().Tile(ipc.TilePayload{
		Mode:            *mode,
		Gap:             *gap,
		FlexibleLastRow: &flexible,
		MasterPercent:   *master,
	})
	if err != nil {
		return fail(err)
	}
	printWindows(data.Windows)
	return 0
}

func runViewport(args []string) int {
	fs := flag.NewFlagSet("viewport", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: deskwm viewport <width> <height>")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Override the viewport size. The reconciler may replace it on its next poll.")
	}
	if code := parseFlags(fs, args); code >= 0 {
		return code
	}
	if fs.NArg() != 2 {
		fs.Usage()
		return 2
	}
	w, h, err := parsePair(fs.Arg(0), fs.Arg(1))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}
	if err := ipc.NewClient().SetViewport(w, h); err != nil {
		return fail(err)
	}
	return 0
}

func parsePair(a, b string) (float64, float64, error) {
	x, err := strconv.ParseFloat(a, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid number %q", a)
	}
	y, err := strconv.ParseFloat(b, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid number %q", b)
	}
	return x, y, nil
}

func printWindow(w *desktop.WindowInfo) {
	fmt.Printf("id:     %s\n", w.ID)
	fmt.Printf("title:  %s\n", w.Title)
	fmt.Printf("status: %s\n", w.Status)
	fmt.Printf("frame:  %.0f,%.0f %.0fx%.0f\n", w.Frame.X, w.Frame.Y, w.Frame.Width, w.Frame.Height)
	if w.Route != "" {
		fmt.Printf("route:  %s\n", w.Route)
	}
}

func printJSON(v any) int {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fail(err)
	}
	return 0
}
