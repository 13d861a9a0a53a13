// Package store persists trained pipelines: a quantizer codebook plus the
// per-class HMM ensemble, keyed by a run ID.
//
// Two backends share the Store interface: an in-memory map and a SQLite file
// (modernc.org/sqlite, no cgo). Records are encoded as versioned JSON; a
// record written by an incompatible codec fails to decode with
// ErrVersionMismatch.
package store
