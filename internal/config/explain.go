package config

import (
	"fmt"
	"strings"
)

// Explain returns the effective value at the given YAML-like path and its source.
//
// Supported paths include:
//
//	top_strip_height
//	bottom_strip_height
//	snap_threshold
//	min_visible_pixels
//	cascade_offset
//	initial_size_percent
//	viewport_source
//	viewport.width
//	viewport_poll_interval
//	display
//	log_level
//	check_invariants
//	http_listen
//	applications.<id>
//	applications.<id>.minimum_size.width
func Explain(res *LoadResult, path string) (any, Source, error) {
	if res == nil || res.Config == nil {
		return nil, Source{}, fmt.Errorf("no config loaded")
	}
	if path == "" {
		return nil, Source{}, fmt.Errorf("path is empty")
	}

	value, err := lookupValue(res.Config, path)
	if err != nil {
		return nil, Source{}, err
	}

	// Exact-path file source wins.
	if src, ok := res.Sources[path]; ok {
		return value, src, nil
	}

	if strings.HasPrefix(path, "applications.") {
		id := applicationIDFromPath(path)
		if base := res.ApplicationBases[id]; base != "" {
			return value, Source{Kind: SourceBuiltin, Name: base}, nil
		}
	}

	return value, Source{Kind: SourceDefault, Name: "defaults"}, nil
}

func applicationIDFromPath(path string) string {
	parts := strings.Split(path, ".")
	if len(parts) < 2 || parts[0] != "applications" {
		return ""
	}
	return parts[1]
}

func lookupValue(cfg *Config, path string) (any, error) {
	parts := strings.Split(path, ".")
	scalar := func(v any) (any, error) {
		if len(parts) != 1 {
			return nil, fmt.Errorf("unknown path: %s", path)
		}
		return v, nil
	}

	switch parts[0] {
	case "top_strip_height":
		return scalar(cfg.TopStripHeight)
	case "bottom_strip_height":
		return scalar(cfg.BottomStripHeight)
	case "snap_threshold":
		return scalar(cfg.SnapThreshold)
	case "min_visible_pixels":
		return scalar(cfg.MinVisiblePixels)
	case "cascade_offset":
		return scalar(cfg.CascadeOffset)
	case "initial_size_percent":
		return scalar(cfg.InitialSizePercent)
	case "viewport_source":
		return scalar(cfg.ViewportSource)
	case "viewport_poll_interval":
		return scalar(cfg.ViewportPollInterval)
	case "display":
		return scalar(cfg.Display)
	case "log_level":
		return scalar(cfg.LogLevel)
	case "check_invariants":
		return scalar(cfg.CheckInvariants)
	case "http_listen":
		return scalar(cfg.HTTPListen)
	case "viewport":
		return lookupDimensions(cfg.Viewport, parts[1:], path)
	case "applications":
		if len(parts) == 1 {
			return cfg.Applications, nil
		}
		id := parts[1]
		app, ok := cfg.Applications[id]
		if !ok {
			return nil, fmt.Errorf("unknown application %q", id)
		}
		if len(parts) == 2 {
			return app, nil
		}
		switch parts[2] {
		case "name", "icon", "default_route":
			if len(parts) != 3 {
				return nil, fmt.Errorf("unknown path: %s", path)
			}
			switch parts[2] {
			case "name":
				return app.Name, nil
			case "icon":
				return app.Icon, nil
			default:
				return app.DefaultRoute, nil
			}
		case "default_size":
			return lookupDimensions(app.DefaultSize, parts[3:], path)
		case "minimum_size":
			return lookupDimensions(app.MinimumSize, parts[3:], path)
		default:
			return nil, fmt.Errorf("unknown path: %s", path)
		}
	default:
		return nil, fmt.Errorf("unknown path: %s", path)
	}
}

func lookupDimensions(d Dimensions, rest []string, path string) (any, error) {
	if len(rest) == 0 {
		return d, nil
	}
	if len(rest) != 1 {
		return nil, fmt.Errorf("unknown path: %s", path)
	}
	switch rest[0] {
	case "width":
		return d.Width, nil
	case "height":
		return d.Height, nil
	default:
		return nil, fmt.Errorf("unknown path: %s", path)
	}
}
