package desktop

import "errors"

var (
	// ErrUnknownWindow is returned when an operation names a window that is
	// not in the registry.
	ErrUnknownWindow = errors.New("unknown window")
	// ErrUnknownApplication is returned when opening an application that is
	// not in the catalog.
	ErrUnknownApplication = errors.New("unknown application")
	// ErrInteractionBusy is returned when a drag or resize is started on a
	// window that already has one in progress.
	ErrInteractionBusy = errors.New("interaction already in progress")
	// ErrNoInteraction is returned when moving or ending an interaction that
	// was never started.
	ErrNoInteraction = errors.New("no interaction in progress")
	// ErrMaximized is returned when a drag or resize is started on a
	// maximized window.
	ErrMaximized = errors.New("window is maximized")
)
