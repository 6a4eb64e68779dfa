package config

import (
	"fmt"

	"github.com/roach88/breakledger/internal/value"
)

// Justification is the human-supplied reason a set of breaks was accepted.
// It tags breaks and is never part of a break's identity.
type Justification string

// DefaultMigrationJustification is attached to every break upgraded from the
// v1 shape, which recorded no justification. The braces keep it visibly
// distinct from authored text.
const DefaultMigrationJustification Justification = "{no justification recorded: migrated from acceptedBreaks v1}"

// String returns the justification text.
func (j Justification) String() string {
	return string(j)
}

// AcceptedBreak is one accepted API break.
//
// Its descriptor is produced by the diffing collaborator and opaque here: the
// break stores only the descriptor's RFC 8785 canonical JSON. Two breaks are
// equal iff all descriptor fields are equal, and AcceptedBreak is comparable
// with == and usable as a map key.
//
// The zero value is not a valid break; use NewAcceptedBreak.
type AcceptedBreak struct {
	canonical string
}

// NewAcceptedBreak builds a break from its descriptor. It fails only when the
// descriptor cannot be canonicalised.
func NewAcceptedBreak(descriptor value.Object) (AcceptedBreak, error) {
	if descriptor == nil {
		descriptor = value.Object{}
	}
	canonical, err := value.MarshalCanonical(descriptor)
	if err != nil {
		return AcceptedBreak{}, fmt.Errorf("accepted break: %w", err)
	}
	return AcceptedBreak{canonical: string(canonical)}, nil
}

// MustAcceptedBreak is like NewAcceptedBreak but panics on error.
// Use only in tests or when the descriptor is known to be valid.
func MustAcceptedBreak(descriptor value.Object) AcceptedBreak {
	b, err := NewAcceptedBreak(descriptor)
	if err != nil {
		panic(err)
	}
	return b
}

// Descriptor returns a fresh copy of the break's descriptor.
func (b AcceptedBreak) Descriptor() value.Object {
	if b.canonical == "" {
		return value.Object{}
	}
	parsed, err := value.ParseJSON([]byte(b.canonical))
	if err != nil {
		// canonical was produced by MarshalCanonical, so it always parses.
		panic(fmt.Sprintf("accepted break: corrupt canonical form: %v", err))
	}
	return parsed.(value.Object)
}

// Canonical returns the RFC 8785 form of the descriptor.
func (b AcceptedBreak) Canonical() string {
	return b.canonical
}

// ID returns the content address of the break.
func (b AcceptedBreak) ID() string {
	return value.HashCanonical(value.DomainBreak, []byte(b.canonical))
}

// String returns the canonical form.
func (b AcceptedBreak) String() string {
	return b.canonical
}

func (b AcceptedBreak) sortKey() string {
	return b.canonical
}

// JustifiedBreak pairs a break with the justification it was accepted under.
// This is the element stored per exact artifact version.
type JustifiedBreak struct {
	Justification Justification
	Break         AcceptedBreak
}

func (jb JustifiedBreak) sortKey() string {
	return string(jb.Justification) + "\x00" + jb.Break.canonical
}

// FlattenedBreak is a break merged with its justification in the
// version-independent view. It is produced only by flattening and never
// persisted.
type FlattenedBreak struct {
	Break         AcceptedBreak
	Justification Justification
}

func (fb FlattenedBreak) sortKey() string {
	return fb.Break.canonical + "\x00" + string(fb.Justification)
}

// justify pairs j with every break.
func justify(j Justification, breaks []AcceptedBreak) []JustifiedBreak {
	out := make([]JustifiedBreak, len(breaks))
	for i, b := range breaks {
		out[i] = JustifiedBreak{Justification: j, Break: b}
	}
	return out
}
