// Package runtimepath locates per-user runtime files such as the daemon socket.
package runtimepath

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

const (
	socketEnv  = "DESKWM_SOCKET"
	socketName = "deskwm.sock"
)

// Dir returns the runtime directory. XDG_RUNTIME_DIR wins, then an existing
// /run/user/<uid>, then a private directory under the temp dir.
func Dir() (string, error) {
	if dir := os.Getenv("XDG_RUNTIME_DIR"); dir != "" {
		return dir, nil
	}
	uid := strconv.Itoa(os.Getuid())
	if info, err := os.Stat(filepath.Join("/run/user", uid)); err == nil && info.IsDir() {
		return filepath.Join("/run/user", uid), nil
	}
	fallback := filepath.Join(os.TempDir(), "deskwm-runtime-"+uid)
	if err := os.MkdirAll(fallback, 0o700); err != nil {
		return "", fmt.Errorf("create runtime dir: %w", err)
	}
	return fallback, nil
}

// File joins name onto Dir.
func File(name string) (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, name), nil
}

// SocketPath returns the daemon IPC socket. DESKWM_SOCKET overrides it.
func SocketPath() (string, error) {
	if p := os.Getenv(socketEnv); p != "" {
		return p, nil
	}
	return File(socketName)
}
