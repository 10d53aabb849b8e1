package x11

import (
	"testing"

	"github.com/1broseidon/deskwm/internal/geom"
)

func TestMonitorAt(t *testing.T) {
	monitors := []Monitor{
		{Name: "DP-1", Bounds: geom.Rect{Width: 1920, Height: 1080}},
		{Name: "HDMI-1", Bounds: geom.Rect{X: 1920, Width: 2560, Height: 1440}},
	}
	tests := []struct {
		x, y   int
		want   string
		wantOK bool
	}{
		{100, 100, "DP-1", true},
		{1919, 1079, "DP-1", true},
		{1920, 0, "HDMI-1", true},
		{3000, 1400, "HDMI-1", true},
		{100, 1200, "", false},
		{-1, 0, "", false},
	}
	for _, tt := range tests {
		m, ok := monitorAt(monitors, tt.x, tt.y)
		if ok != tt.wantOK || m.Name != tt.want {
			t.Fatalf("(%d,%d): expected %q/%v, got %q/%v", tt.x, tt.y, tt.want, tt.wantOK, m.Name, ok)
		}
	}
}
