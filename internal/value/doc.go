// Package value provides the constrained value model used for break
// descriptors.
//
// A break descriptor is produced by the API diffing collaborator and is opaque
// to the configuration model. The model only needs structural equality, which
// this package provides through RFC 8785 canonical JSON: two descriptors are
// equal iff their canonical forms are byte-identical. Canonical form keeps
// strings as authored; only Hash folds Unicode normal forms together.
//
// Key design constraints:
//   - NO float types anywhere - use int64 for numbers
//   - null is a real value and differs from an absent field
//   - Object keys are compared by UTF-16 code units, never UTF-8 bytes
//   - value imports nothing internal
package value
