package testutil

import (
	"github.com/roach88/breakledger/internal/config"
	"github.com/roach88/breakledger/internal/value"
)

// Break builds an accepted break with the code/old/new descriptor shape of a
// typical API diff. An empty newElement is recorded as null, which is how
// removals are reported.
func Break(code, oldElement, newElement string) config.AcceptedBreak {
	var newValue value.Value = value.Null{}
	if newElement != "" {
		newValue = value.String(newElement)
	}
	return config.MustAcceptedBreak(value.ObjectOf(
		value.P("code", value.String(code)),
		value.P("old", value.String(oldElement)),
		value.P("new", newValue),
	))
}

// Removed is shorthand for a removal break of element.
func Removed(element string) config.AcceptedBreak {
	return Break("java.class.removed", element, "")
}

// GNV parses "group:name:version" and panics on malformed input.
func GNV(s string) config.GroupNameVersion {
	gnv, err := config.ParseGroupNameVersion(s)
	if err != nil {
		panic(err)
	}
	return gnv
}

// GAN parses "group:name" and panics on malformed input.
func GAN(s string) config.GroupAndName {
	gan, err := config.ParseGroupAndName(s)
	if err != nil {
		panic(err)
	}
	return gan
}
