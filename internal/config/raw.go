package config

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// IncludeList supports either:
//
//	include: "/path/to/file.yaml"
//
// or:
//
//	include:
//	  - "/path/to/file.yaml"
//	  - "/path/to/dir"
type IncludeList []string

func (l *IncludeList) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case 0:
		*l = nil
		return nil
	case yaml.ScalarNode:
		if value.Tag != "!!str" {
			return fmt.Errorf("include must be a string or list of strings")
		}
		*l = []string{value.Value}
		return nil
	case yaml.SequenceNode:
		out := make([]string, 0, len(value.Content))
		for _, item := range value.Content {
			if item.Kind != yaml.ScalarNode || item.Tag != "!!str" {
				return fmt.Errorf("include entries must be strings")
			}
			out = append(out, item.Value)
		}
		*l = out
		return nil
	default:
		return fmt.Errorf("include must be a string or list of strings")
	}
}

type RawDimensions struct {
	Width  *int `yaml:"width"`
	Height *int `yaml:"height"`
}

type RawApplication struct {
	Name         *string        `yaml:"name"`
	Icon         *string        `yaml:"icon"`
	DefaultSize  *RawDimensions `yaml:"default_size"`
	MinimumSize  *RawDimensions `yaml:"minimum_size"`
	DefaultRoute *string        `yaml:"default_route"`
}

// RawConfig mirrors the YAML file. Every field is optional so that includes
// and the main file can be layered before defaults are applied.
type RawConfig struct {
	Include              IncludeList               `yaml:"include"`
	TopStripHeight       *int                      `yaml:"top_strip_height"`
	BottomStripHeight    *int                      `yaml:"bottom_strip_height"`
	SnapThreshold        *int                      `yaml:"snap_threshold"`
	MinVisiblePixels     *int                      `yaml:"min_visible_pixels"`
	CascadeOffset        *int                      `yaml:"cascade_offset"`
	InitialSizePercent   *int                      `yaml:"initial_size_percent"`
	ViewportSource       *ViewportSource           `yaml:"viewport_source"`
	Viewport             *RawDimensions            `yaml:"viewport"`
	ViewportPollInterval *int                      `yaml:"viewport_poll_interval"`
	Display              *string                   `yaml:"display"`
	LogLevel             *string                   `yaml:"log_level"`
	CheckInvariants      *bool                     `yaml:"check_invariants"`
	HTTPListen           *string                   `yaml:"http_listen"`
	Applications         map[string]RawApplication `yaml:"applications"`
}

func (c RawConfig) merge(overlay RawConfig) RawConfig {
	out := c

	if overlay.TopStripHeight != nil {
		out.TopStripHeight = overlay.TopStripHeight
	}
	if overlay.BottomStripHeight != nil {
		out.BottomStripHeight = overlay.BottomStripHeight
	}
	if overlay.SnapThreshold != nil {
		out.SnapThreshold = overlay.SnapThreshold
	}
	if overlay.MinVisiblePixels != nil {
		out.MinVisiblePixels = overlay.MinVisiblePixels
	}
	if overlay.CascadeOffset != nil {
		out.CascadeOffset = overlay.CascadeOffset
	}
	if overlay.InitialSizePercent != nil {
		out.InitialSizePercent = overlay.InitialSizePercent
	}
	if overlay.ViewportSource != nil {
		out.ViewportSource = overlay.ViewportSource
	}
	if overlay.Viewport != nil {
		if out.Viewport == nil {
			out.Viewport = &RawDimensions{}
		}
		merged := mergeRawDimensions(*out.Viewport, *overlay.Viewport)
		out.Viewport = &merged
	}
	if overlay.ViewportPollInterval != nil {
		out.ViewportPollInterval = overlay.ViewportPollInterval
	}
	if overlay.Display != nil {
		out.Display = overlay.Display
	}
	if overlay.LogLevel != nil {
		out.LogLevel = overlay.LogLevel
	}
	if overlay.CheckInvariants != nil {
		out.CheckInvariants = overlay.CheckInvariants
	}
	if overlay.HTTPListen != nil {
		out.HTTPListen = overlay.HTTPListen
	}

	if overlay.Applications != nil {
		apps := make(map[string]RawApplication, len(out.Applications)+len(overlay.Applications))
		for id, app := range out.Applications {
			apps[id] = app
		}
		for id, app := range overlay.Applications {
			base, ok := apps[id]
			if !ok {
				apps[id] = app
				continue
			}
			apps[id] = mergeRawApplication(base, app)
		}
		out.Applications = apps
	}

	return out
}

func mergeRawDimensions(base RawDimensions, overlay RawDimensions) RawDimensions {
	out := base
	if overlay.Width != nil {
		out.Width = overlay.Width
	}
	if overlay.Height != nil {
		out.Height = overlay.Height
	}
	return out
}

func mergeRawApplication(base RawApplication, overlay RawApplication) RawApplication {
	out := base
	if overlay.Name != nil {
		out.Name = overlay.Name
	}
	if overlay.Icon != nil {
		out.Icon = overlay.Icon
	}
	if overlay.DefaultSize != nil {
		if out.DefaultSize == nil {
			out.DefaultSize = &RawDimensions{}
		}
		merged := mergeRawDimensions(*out.DefaultSize, *overlay.DefaultSize)
		out.DefaultSize = &merged
	}
	if overlay.MinimumSize != nil {
		if out.MinimumSize == nil {
			out.MinimumSize = &RawDimensions{}
		}
		merged := mergeRawDimensions(*out.MinimumSize, *overlay.MinimumSize)
		out.MinimumSize = &merged
	}
	if overlay.DefaultRoute != nil {
		out.DefaultRoute = overlay.DefaultRoute
	}
	return out
}
