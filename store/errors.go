package store

import "errors"

var (
	// ErrVersionMismatch indicates a record written with another schema or codec version.
	ErrVersionMismatch = errors.New("store: record version mismatch")

	// ErrNotInitialized indicates use before Init.
	ErrNotInitialized = errors.New("store: not initialized")

	// ErrNoPath indicates a SQLite store without a file path.
	ErrNoPath = errors.New("store: sqlite path is required")

	// ErrUnknownBackend indicates an unsupported backend name.
	ErrUnknownBackend = errors.New("store: unsupported backend")

	// ErrEmptyID indicates a record without a run ID.
	ErrEmptyID = errors.New("store: empty run id")
)
