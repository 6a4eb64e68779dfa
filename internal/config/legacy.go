package config

import (
	"maps"
	"slices"
)

// LegacyAcceptedBreaks is the v1 model: artifact version to accepted breaks,
// with no justification. It is read-only and only ever upgraded.
type LegacyAcceptedBreaks struct {
	entries map[GroupNameVersion]Set[AcceptedBreak]
}

// EmptyLegacyAcceptedBreaks returns a v1 model with no entries.
func EmptyLegacyAcceptedBreaks() LegacyAcceptedBreaks {
	return LegacyAcceptedBreaks{}
}

// NewLegacyAcceptedBreaks builds a v1 model. Empty lists are dropped.
func NewLegacyAcceptedBreaks(entries map[GroupNameVersion][]AcceptedBreak) LegacyAcceptedBreaks {
	out := make(map[GroupNameVersion]Set[AcceptedBreak], len(entries))
	for key, breaks := range entries {
		if len(breaks) == 0 {
			continue
		}
		out[key] = NewSet(breaks...)
	}
	return LegacyAcceptedBreaks{entries: out}
}

// BreaksFor returns the breaks recorded for key, or the empty set.
func (l LegacyAcceptedBreaks) BreaksFor(key GroupNameVersion) Set[AcceptedBreak] {
	return l.entries[key]
}

// Keys returns the recorded versions in sorted order.
func (l LegacyAcceptedBreaks) Keys() []GroupNameVersion {
	keys := slices.Collect(maps.Keys(l.entries))
	slices.SortFunc(keys, compareGroupNameVersion)
	return keys
}

// Len returns the number of recorded versions.
func (l LegacyAcceptedBreaks) Len() int {
	return len(l.entries)
}

// Upgrade converts the v1 model into a v2 store. Every break keeps its key and
// acquires DefaultMigrationJustification. Upgrade is pure: the same input
// always yields an equal store.
func (l LegacyAcceptedBreaks) Upgrade() AcceptedBreaksStore {
	if len(l.entries) == 0 {
		return EmptyStore()
	}
	out := make(map[GroupNameVersion]Set[JustifiedBreak], len(l.entries))
	for key, breaks := range l.entries {
		pairs := make([]JustifiedBreak, 0, breaks.Len())
		for b := range breaks.items {
			pairs = append(pairs, JustifiedBreak{Justification: DefaultMigrationJustification, Break: b})
		}
		out[key] = NewSet(pairs...)
	}
	return AcceptedBreaksStore{entries: out}
}
