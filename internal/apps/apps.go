package apps

import (
	"sort"

	"github.com/1broseidon/deskwm/internal/geom"
)

// Descriptor is the static description of an application the desktop can host.
type Descriptor struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Icon         string    `json:"icon,omitempty"`
	DefaultSize  geom.Size `json:"default_size"`
	MinSize      geom.Size `json:"min_size"`
	DefaultRoute string    `json:"default_route,omitempty"`
}

// Catalog is an immutable lookup table of application descriptors.
type Catalog struct {
	byID map[string]Descriptor
}

// NewCatalog builds a catalog. Later descriptors replace earlier ones with
// the same ID.
func NewCatalog(descs ...Descriptor) *Catalog {
	c := &Catalog{byID: make(map[string]Descriptor, len(descs))}
	for _, d := range descs {
		if d.ID == "" {
			continue
		}
		c.byID[d.ID] = d
	}
	return c
}

// Lookup returns the descriptor registered for id.
func (c *Catalog) Lookup(id string) (Descriptor, bool) {
	if c == nil {
		return Descriptor{}, false
	}
	d, ok := c.byID[id]
	return d, ok
}

// List returns every descriptor sorted by ID.
func (c *Catalog) List() []Descriptor {
	if c == nil {
		return nil
	}
	out := make([]Descriptor, 0, len(c.byID))
	for _, d := range c.byID {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// IDs returns the sorted application IDs.
func (c *Catalog) IDs() []string {
	list := c.List()
	ids := make([]string, len(list))
	for i, d := range list {
		ids[i] = d.ID
	}
	return ids
}

// Len reports the number of registered applications.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.byID)
}
