package apps

import "github.com/1broseidon/deskwm/internal/geom"

// Builtin returns the stock application library.
//
// These are always available; the config file can override any field or add
// new applications under the "applications" key.
func Builtin() []Descriptor {
	return []Descriptor{
		{
			ID:          "finder",
			Name:        "Finder",
			Icon:        "folder",
			DefaultSize: geom.Size{Width: 800, Height: 500},
			MinSize:     geom.Size{Width: 400, Height: 260},
		},
		{
			ID:          "terminal",
			Name:        "Terminal",
			Icon:        "terminal",
			DefaultSize: geom.Size{Width: 720, Height: 440},
			MinSize:     geom.Size{Width: 320, Height: 200},
		},
		{
			ID:           "developer",
			Name:         "Developer",
			Icon:         "code",
			DefaultSize:  geom.Size{Width: 1000, Height: 680},
			MinSize:      geom.Size{Width: 600, Height: 400},
			DefaultRoute: "/projects",
		},
		{
			ID:          "notes",
			Name:        "Notes",
			Icon:        "note",
			DefaultSize: geom.Size{Width: 600, Height: 480},
			MinSize:     geom.Size{Width: 300, Height: 240},
		},
		{
			ID:           "settings",
			Name:         "Settings",
			Icon:         "gear",
			DefaultSize:  geom.Size{Width: 680, Height: 520},
			MinSize:      geom.Size{Width: 480, Height: 360},
			DefaultRoute: "/general",
		},
		{
			ID:           "browser",
			Name:         "Browser",
			Icon:         "globe",
			DefaultSize:  geom.Size{Width: 1100, Height: 720},
			MinSize:      geom.Size{Width: 420, Height: 300},
			DefaultRoute: "/",
		},
	}
}

// BuiltinCatalog returns a catalog holding only the builtin applications.
func BuiltinCatalog() *Catalog {
	return NewCatalog(Builtin()...)
}
