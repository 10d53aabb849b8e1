package config

import (
	"fmt"
	"log/slog"
	"net"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/1broseidon/deskwm/internal/apps"
	"github.com/1broseidon/deskwm/internal/geom"
	"github.com/1broseidon/deskwm/internal/wm"
)

// ViewportSource selects where the daemon learns the desktop size from.
type ViewportSource string

const (
	ViewportAuto     ViewportSource = "auto"     // X11 when a display is reachable, else terminal, else static.
	ViewportX11      ViewportSource = "x11"      // Active monitor via RandR.
	ViewportTerminal ViewportSource = "terminal" // Controlling terminal, scaled to pixels.
	ViewportStatic   ViewportSource = "static"   // The configured viewport.
)

// Dimensions is a width/height pair in pixels.
type Dimensions struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// Size converts the dimensions into engine units.
func (d Dimensions) Size() geom.Size {
	return geom.Size{Width: float64(d.Width), Height: float64(d.Height)}
}

// Application describes one launchable application.
type Application struct {
	Name         string     `yaml:"name"`
	Icon         string     `yaml:"icon,omitempty"`
	DefaultSize  Dimensions `yaml:"default_size"`
	MinimumSize  Dimensions `yaml:"minimum_size"`
	DefaultRoute string     `yaml:"default_route,omitempty"`
}

// Config is the effective configuration after includes, builtins and
// defaults have been applied.
type Config struct {
	TopStripHeight       int                    `yaml:"top_strip_height"`
	BottomStripHeight    int                    `yaml:"bottom_strip_height"`
	SnapThreshold        int                    `yaml:"snap_threshold"`
	MinVisiblePixels     int                    `yaml:"min_visible_pixels"`
	CascadeOffset        int                    `yaml:"cascade_offset"`
	InitialSizePercent   int                    `yaml:"initial_size_percent"`
	ViewportSource       ViewportSource         `yaml:"viewport_source"`
	Viewport             Dimensions             `yaml:"viewport"`
	ViewportPollInterval int                    `yaml:"viewport_poll_interval"` // seconds
	Display              string                 `yaml:"display,omitempty"`
	LogLevel             string                 `yaml:"log_level"`
	CheckInvariants      bool                   `yaml:"check_invariants"`
	HTTPListen           string                 `yaml:"http_listen,omitempty"`
	Applications         map[string]Application `yaml:"applications"`
}

func DefaultConfig() *Config {
	return &Config{
		TopStripHeight:       28,
		BottomStripHeight:    80,
		SnapThreshold:        20,
		MinVisiblePixels:     50,
		CascadeOffset:        30,
		InitialSizePercent:   80,
		ViewportSource:       ViewportAuto,
		Viewport:             Dimensions{Width: 1920, Height: 1080},
		ViewportPollInterval: 2,
		LogLevel:             "info",
		Applications:         BuiltinApplications(),
	}
}

func DefaultConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "deskwm", "config.yaml"), nil
}

// Metrics returns the strip heights as engine metrics.
func (c *Config) Metrics() geom.Metrics {
	return geom.Metrics{
		TopStrip:    float64(c.TopStripHeight),
		BottomStrip: float64(c.BottomStripHeight),
	}
}

// PollInterval returns the viewport poll interval as a duration.
func (c *Config) PollInterval() time.Duration {
	return time.Duration(c.ViewportPollInterval) * time.Second
}

// Catalog builds the application catalog.
func (c *Config) Catalog() *apps.Catalog {
	descs := make([]apps.Descriptor, 0, len(c.Applications))
	for _, id := range sortedKeys(c.Applications) {
		app := c.Applications[id]
		descs = append(descs, apps.Descriptor{
			ID:           id,
			Name:         app.Name,
			Icon:         app.Icon,
			DefaultSize:  app.DefaultSize.Size(),
			MinSize:      app.MinimumSize.Size(),
			DefaultRoute: app.DefaultRoute,
		})
	}
	return apps.NewCatalog(descs...)
}

// Reducer builds a registry reducer from the configuration.
func (c *Config) Reducer() wm.Reducer {
	return wm.Reducer{
		Catalog: c.Catalog(),
		Metrics: c.Metrics(),
		Placer: wm.Placer{
			InitialSizePercent: float64(c.InitialSizePercent),
			CascadeOffset:      float64(c.CascadeOffset),
		},
		SnapThreshold: float64(c.SnapThreshold),
		MinVisible:    float64(c.MinVisiblePixels),
	}
}

// SlogLevel maps log_level onto a slog level.
func (c *Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Validate performs strict validation of the effective configuration.
func (c *Config) Validate() error {
	if c.TopStripHeight < 0 {
		return &ValidationError{Path: "top_strip_height", Err: fmt.Errorf("top_strip_height must be >= 0")}
	}
	if c.BottomStripHeight < 0 {
		return &ValidationError{Path: "bottom_strip_height", Err: fmt.Errorf("bottom_strip_height must be >= 0")}
	}
	if c.SnapThreshold < 0 {
		return &ValidationError{Path: "snap_threshold", Err: fmt.Errorf("snap_threshold must be >= 0")}
	}
	if c.MinVisiblePixels < 1 {
		return &ValidationError{Path: "min_visible_pixels", Err: fmt.Errorf("min_visible_pixels must be >= 1")}
	}
	if c.CascadeOffset < 0 {
		return &ValidationError{Path: "cascade_offset", Err: fmt.Errorf("cascade_offset must be >= 0")}
	}
	if c.InitialSizePercent < 10 || c.InitialSizePercent > 100 {
		return &ValidationError{Path: "initial_size_percent", Err: fmt.Errorf("initial_size_percent must be between 10 and 100")}
	}
	switch c.ViewportSource {
	case ViewportAuto, ViewportX11, ViewportTerminal, ViewportStatic:
	default:
		return &ValidationError{Path: "viewport_source", Err: fmt.Errorf("viewport_source must be one of: auto, x11, terminal, static")}
	}
	if c.Viewport.Width <= 0 || c.Viewport.Height <= 0 {
		return &ValidationError{Path: "viewport", Err: fmt.Errorf("viewport width and height must be > 0")}
	}
	if c.Viewport.Height <= c.TopStripHeight+c.BottomStripHeight {
		return &ValidationError{Path: "viewport.height", Err: fmt.Errorf("viewport height must exceed top_strip_height + bottom_strip_height")}
	}
	if c.ViewportPollInterval < 1 {
		return &ValidationError{Path: "viewport_poll_interval", Err: fmt.Errorf("viewport_poll_interval must be >= 1")}
	}
	switch c.LogLevel {
	case "debug", "info", "warning", "error":
	default:
		return &ValidationError{Path: "log_level", Err: fmt.Errorf("log_level must be one of: debug, info, warning, error")}
	}
	if c.HTTPListen != "" {
		if _, _, err := net.SplitHostPort(c.HTTPListen); err != nil {
			return &ValidationError{Path: "http_listen", Err: fmt.Errorf("http_listen must be host:port: %w", err)}
		}
	}

	if len(c.Applications) == 0 {
		return &ValidationError{Path: "applications", Err: fmt.Errorf("applications must not be empty")}
	}
	for _, id := range sortedKeys(c.Applications) {
		app := c.Applications[id]
		if err := validateApplication(id, app); err != nil {
			return err
		}
	}

	return nil
}

func validateApplication(id string, app Application) error {
	path := "applications." + id
	if strings.TrimSpace(id) == "" || strings.ContainsAny(id, " \t.") {
		return &ValidationError{Path: "applications", Err: fmt.Errorf("application id %q must be non-empty without spaces or dots", id)}
	}
	if strings.TrimSpace(app.Name) == "" {
		return &ValidationError{Path: path + ".name", Err: fmt.Errorf("name is required")}
	}
	if app.MinimumSize.Width <= 0 || app.MinimumSize.Height <= 0 {
		return &ValidationError{Path: path + ".minimum_size", Err: fmt.Errorf("minimum_size width and height must be > 0")}
	}
	if app.DefaultSize.Width < app.MinimumSize.Width || app.DefaultSize.Height < app.MinimumSize.Height {
		return &ValidationError{Path: path + ".default_size", Err: fmt.Errorf("default_size must be at least minimum_size")}
	}
	if app.DefaultRoute != "" && !strings.HasPrefix(app.DefaultRoute, "/") {
		return &ValidationError{Path: path + ".default_route", Err: fmt.Errorf("default_route must start with /")}
	}
	return nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
