package config

import (
	"fmt"
)

type ValidationError struct {
	Path   string
	Source Source
	Err    error
}

func (e *ValidationError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Source.Kind == SourceFile && e.Source.File != "" && e.Source.Line > 0 {
		return fmt.Sprintf("%s:%d:%d: %s: %v", e.Source.File, e.Source.Line, e.Source.Column, e.Path, e.Err)
	}
	if e.Path != "" {
		return fmt.Sprintf("%s: %v", e.Path, e.Err)
	}
	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// BuildEffectiveConfig overlays raw values on DefaultConfig. The second
// return value maps each application id to the builtin it was merged onto
// ("" for applications defined only in YAML).
func BuildEffectiveConfig(raw RawConfig) (*Config, map[string]string, error) {
	cfg := DefaultConfig()

	cfg.TopStripHeight = derefInt(raw.TopStripHeight, cfg.TopStripHeight)
	cfg.BottomStripHeight = derefInt(raw.BottomStripHeight, cfg.BottomStripHeight)
	cfg.SnapThreshold = derefInt(raw.SnapThreshold, cfg.SnapThreshold)
	cfg.MinVisiblePixels = derefInt(raw.MinVisiblePixels, cfg.MinVisiblePixels)
	cfg.CascadeOffset = derefInt(raw.CascadeOffset, cfg.CascadeOffset)
	cfg.InitialSizePercent = derefInt(raw.InitialSizePercent, cfg.InitialSizePercent)
	cfg.ViewportPollInterval = derefInt(raw.ViewportPollInterval, cfg.ViewportPollInterval)

	if raw.ViewportSource != nil {
		cfg.ViewportSource = *raw.ViewportSource
	}
	if raw.Viewport != nil {
		cfg.Viewport = applyDimensions(cfg.Viewport, *raw.Viewport)
	}
	if raw.Display != nil {
		cfg.Display = *raw.Display
	}
	if raw.LogLevel != nil {
		cfg.LogLevel = *raw.LogLevel
	}
	if raw.CheckInvariants != nil {
		cfg.CheckInvariants = *raw.CheckInvariants
	}
	if raw.HTTPListen != nil {
		cfg.HTTPListen = *raw.HTTPListen
	}

	bases, err := applyApplications(cfg, raw)
	if err != nil {
		return nil, nil, err
	}
	return cfg, bases, nil
}

func applyApplications(cfg *Config, raw RawConfig) (map[string]string, error) {
	builtin := BuiltinApplications()
	bases := make(map[string]string, len(builtin)+len(raw.Applications))
	for id := range builtin {
		bases[id] = id
	}

	for _, id := range sortedKeys(raw.Applications) {
		patch := raw.Applications[id]
		base, isBuiltin := builtin[id]
		if !isBuiltin {
			if patch.Name == nil {
				return nil, &ValidationError{Path: "applications." + id + ".name", Err: fmt.Errorf("name is required for application %q", id)}
			}
			if patch.MinimumSize == nil {
				return nil, &ValidationError{Path: "applications." + id + ".minimum_size", Err: fmt.Errorf("minimum_size is required for application %q", id)}
			}
			bases[id] = ""
		}
		cfg.Applications[id] = mergeApplicationPatch(base, patch)
	}
	return bases, nil
}

func mergeApplicationPatch(base Application, patch RawApplication) Application {
	out := base
	if patch.Name != nil {
		out.Name = *patch.Name
	}
	if patch.Icon != nil {
		out.Icon = *patch.Icon
	}
	if patch.MinimumSize != nil {
		out.MinimumSize = applyDimensions(out.MinimumSize, *patch.MinimumSize)
	}
	if patch.DefaultSize != nil {
		out.DefaultSize = applyDimensions(out.DefaultSize, *patch.DefaultSize)
	} else if out.DefaultSize.Width == 0 && out.DefaultSize.Height == 0 {
		out.DefaultSize = out.MinimumSize
	}
	if patch.DefaultRoute != nil {
		out.DefaultRoute = *patch.DefaultRoute
	}
	return out
}

func applyDimensions(base Dimensions, patch RawDimensions) Dimensions {
	base.Width = derefInt(patch.Width, base.Width)
	base.Height = derefInt(patch.Height, base.Height)
	return base
}

func derefInt(p *int, def int) int {
	if p == nil {
		return def
	}
	return *p
}
