package apps

import (
	"testing"

	"github.com/1broseidon/deskwm/internal/geom"
)

func TestBuiltinCatalogIsValid(t *testing.T) {
	c := BuiltinCatalog()
	if c.Len() != len(Builtin()) {
		t.Fatalf("expected %d apps, got %d", len(Builtin()), c.Len())
	}
	for _, d := range c.List() {
		if d.Name == "" {
			t.Errorf("%s: missing name", d.ID)
		}
		if !d.MinSize.Positive() {
			t.Errorf("%s: minimum size must be positive, got %v", d.ID, d.MinSize)
		}
		if d.DefaultSize.Width < d.MinSize.Width || d.DefaultSize.Height < d.MinSize.Height {
			t.Errorf("%s: default size %v below minimum %v", d.ID, d.DefaultSize, d.MinSize)
		}
	}
}

func TestCatalogOverrideAndOrder(t *testing.T) {
	c := NewCatalog(
		Descriptor{ID: "b", Name: "B"},
		Descriptor{ID: "a", Name: "A"},
		Descriptor{ID: "b", Name: "B2", MinSize: geom.Size{Width: 10, Height: 10}},
		Descriptor{Name: "no id"},
	)
	if got := c.IDs(); len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Fatalf("unexpected ids %v", got)
	}
	d, ok := c.Lookup("b")
	if !ok || d.Name != "B2" {
		t.Fatalf("expected later descriptor to win, got %+v", d)
	}
	if _, ok := c.Lookup("missing"); ok {
		t.Fatalf("expected missing lookup to fail")
	}
}

func TestNilCatalog(t *testing.T) {
	var c *Catalog
	if _, ok := c.Lookup("finder"); ok {
		t.Fatalf("nil catalog should not resolve apps")
	}
	if c.Len() != 0 || c.List() != nil {
		t.Fatalf("nil catalog should be empty")
	}
}
