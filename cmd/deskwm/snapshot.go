package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/1broseidon/deskwm/internal/ipc"
	"github.com/1broseidon/deskwm/internal/snapshot"
)

func runSnapshot(args []string) int {
	fs := flag.NewFlagSet("snapshot", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	out := fs.String("out", "deskwm.png", "Output PNG path")
	scale := fs.Float64("scale", 1, "Scale factor for the image")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: deskwm snapshot [--out FILE] [--scale F]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Render the current window layout of the daemon to a PNG.")
	}
	if code := parseFlags(fs, args); code >= 0 {
		return code
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "snapshot takes no positional arguments")
		fs.Usage()
		return 2
	}

	client := ipc.NewClient()
	status, err := client.GetStatus()
	if err != nil {
		return fail(err)
	}
	windows, err := client.ListWindows()
	if err != nil {
		return fail(err)
	}

	img, err := snapshot.Render(status.Viewport, status.Metrics, windows.Windows, snapshot.Options{Scale: *scale})
	if err != nil {
		return fail(err)
	}
	f, err := os.Create(*out)
	if err != nil {
		return fail(err)
	}
	if err := snapshot.WritePNG(f, img); err != nil {
		f.Close()
		return fail(err)
	}
	if err := f.Close(); err != nil {
		return fail(err)
	}
	fmt.Printf("wrote %s (%dx%d)\n", *out, img.Bounds().Dx(), img.Bounds().Dy())
	return 0
}
