package config

import (
	"math"

	"github.com/1broseidon/deskwm/internal/apps"
	"github.com/1broseidon/deskwm/internal/geom"
)

// BuiltinApplications returns the built-in application library in config
// form.
//
// These are always available without being defined in YAML. Entries under
// "applications" with the same id are merged field by field on top.
func BuiltinApplications() map[string]Application {
	out := make(map[string]Application)
	for _, d := range apps.Builtin() {
		out[d.ID] = Application{
			Name:         d.Name,
			Icon:         d.Icon,
			DefaultSize:  dimensionsOf(d.DefaultSize),
			MinimumSize:  dimensionsOf(d.MinSize),
			DefaultRoute: d.DefaultRoute,
		}
	}
	return out
}

func dimensionsOf(s geom.Size) Dimensions {
	return Dimensions{Width: int(math.Round(s.Width)), Height: int(math.Round(s.Height))}
}
