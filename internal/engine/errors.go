package engine

import "errors"

var (
	// ErrNoBeast is returned by actions that need a summoned beast.
	ErrNoBeast = errors.New("no beast has been summoned")
	// ErrModeActive is returned when an encounter or training session holds
	// the exclusive mode, or when a session has already begun.
	ErrModeActive = errors.New("another mode is active")
	// ErrSnapshotNotFound is returned by Load and Delete for unknown ids.
	ErrSnapshotNotFound = errors.New("snapshot not found")
	// ErrNoStore is returned by snapshot operations when no store is configured.
	ErrNoStore = errors.New("no snapshot store configured")
	// ErrInvalidLane is returned by SetPlayerLane for lanes outside the arena.
	ErrInvalidLane = errors.New("invalid lane")
)
