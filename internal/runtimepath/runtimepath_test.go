package runtimepath

import (
	"os"
	"path/filepath"
	"strconv"
	"testing"
)

func TestDir(t *testing.T) {
	td := t.TempDir()
	t.Setenv("XDG_RUNTIME_DIR", td)
	if got, err := Dir(); err != nil || got != td {
		t.Fatalf("Dir() = %q, %v; want %q", got, err, td)
	}

	t.Setenv("XDG_RUNTIME_DIR", "")
	got, err := Dir()
	if err != nil {
		t.Fatalf("Dir() error: %v", err)
	}
	uid := strconv.Itoa(os.Getuid())
	candidates := []string{
		filepath.Join("/run/user", uid),
		filepath.Join(os.TempDir(), "deskwm-runtime-"+uid),
	}
	if got != candidates[0] && got != candidates[1] {
		t.Fatalf("Dir() = %q, want one of %v", got, candidates)
	}
}

func TestSocketPath(t *testing.T) {
	td := t.TempDir()
	t.Setenv("XDG_RUNTIME_DIR", td)

	tests := []struct {
		name     string
		override string
		want     string
	}{
		{"runtime dir", "", filepath.Join(td, "deskwm.sock")},
		{"env override", "/tmp/custom.sock", "/tmp/custom.sock"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("DESKWM_SOCKET", tt.override)
			got, err := SocketPath()
			if err != nil {
				t.Fatalf("SocketPath() error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("SocketPath() = %q, want %q", got, tt.want)
			}
		})
	}
}
