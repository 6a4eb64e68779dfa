// Package config is the versioned configuration model for accepted API breaks
// and manual version overrides.
//
// A Document records, per library artifact, version overrides and the set of
// API breaks a maintainer accepted together with a justification. Documents
// read two persisted shapes:
//
//   - v1 (LegacyAcceptedBreaks): artifact version to breaks, no justification
//   - v2 (AcceptedBreaksStore): artifact version to (justification, break) pairs
//
// Constructing a Document upgrades the v1 input exactly once and merges it
// with the v2 input. Every later read sees only the merged store, and only the
// v2 shape is ever written back.
//
// # Immutability
//
// Every type in this package is an immutable value. Methods that look like
// mutators (AddVersionOverride, AddAcceptedBreaks, Put, AndAlso) return a new
// value and never touch the receiver, so documents may be shared across
// goroutines without synchronization.
//
// # Totality
//
// None of the model operations fail. Unknown keys yield empty sets or an
// absent override, and duplicate additions are absorbed by set semantics. The
// only fallible steps are at the boundary: parsing coordinates and building
// break descriptors.
package config
