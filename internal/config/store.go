package config

import (
	"maps"
	"slices"
)

// AcceptedBreaksStore is the v2 model: for every exact artifact version, the
// set of (justification, break) pairs accepted for it.
//
// Keys mapped to an empty set are never stored. The zero value is the empty
// store.
type AcceptedBreaksStore struct {
	entries map[GroupNameVersion]Set[JustifiedBreak]
}

// EmptyStore returns a store with no entries.
func EmptyStore() AcceptedBreaksStore {
	return AcceptedBreaksStore{}
}

// NewStore builds a store from per-version pairs. Duplicates are absorbed.
func NewStore(entries map[GroupNameVersion][]JustifiedBreak) AcceptedBreaksStore {
	out := make(map[GroupNameVersion]Set[JustifiedBreak], len(entries))
	for key, pairs := range entries {
		if len(pairs) == 0 {
			continue
		}
		out[key] = NewSet(pairs...)
	}
	return AcceptedBreaksStore{entries: out}
}

// AcceptedBreaksFor returns the exact set stored for key, or the empty set.
func (s AcceptedBreaksStore) AcceptedBreaksFor(key GroupNameVersion) Set[JustifiedBreak] {
	return s.entries[key]
}

// FlattenedBreaksFor unions the pairs of every stored version of key's
// artifact and re-pairs them as FlattenedBreak. Acceptance is recorded per
// exact version; checks against a version range need this version-erased view.
func (s AcceptedBreaksStore) FlattenedBreaksFor(key GroupAndName) Set[FlattenedBreak] {
	var flattened []FlattenedBreak
	for gnv, pairs := range s.entries {
		if gnv.GroupAndName() != key {
			continue
		}
		for jb := range pairs.items {
			flattened = append(flattened, FlattenedBreak{Break: jb.Break, Justification: jb.Justification})
		}
	}
	return NewSet(flattened...)
}

// AddAcceptedBreaks returns a new store whose set for key is the prior set
// united with justification paired to each of breaks. Other keys are shared
// unchanged.
func (s AcceptedBreaksStore) AddAcceptedBreaks(key GroupNameVersion, justification Justification, breaks []AcceptedBreak) AcceptedBreaksStore {
	added := NewSet(justify(justification, breaks)...)
	if added.IsEmpty() {
		return s
	}
	out := s.copyEntries(1)
	out[key] = s.entries[key].Union(added)
	return AcceptedBreaksStore{entries: out}
}

// AndAlso merges two stores key by key. Keys present in both get the union of
// their sets. The operation is commutative and associative, and EmptyStore()
// is its identity.
func (s AcceptedBreaksStore) AndAlso(other AcceptedBreaksStore) AcceptedBreaksStore {
	if len(other.entries) == 0 {
		return s
	}
	if len(s.entries) == 0 {
		return other
	}
	out := s.copyEntries(len(other.entries))
	for key, pairs := range other.entries {
		out[key] = out[key].Union(pairs)
	}
	return AcceptedBreaksStore{entries: out}
}

// Keys returns the stored versions in sorted order.
func (s AcceptedBreaksStore) Keys() []GroupNameVersion {
	keys := slices.Collect(maps.Keys(s.entries))
	slices.SortFunc(keys, compareGroupNameVersion)
	return keys
}

// Len returns the number of stored versions.
func (s AcceptedBreaksStore) Len() int {
	return len(s.entries)
}

// BreakCount returns the number of stored pairs across all versions.
func (s AcceptedBreaksStore) BreakCount() int {
	n := 0
	for _, pairs := range s.entries {
		n += pairs.Len()
	}
	return n
}

// Equal reports whether both stores hold the same pairs for the same keys.
func (s AcceptedBreaksStore) Equal(other AcceptedBreaksStore) bool {
	if len(s.entries) != len(other.entries) {
		return false
	}
	for key, pairs := range s.entries {
		theirs, ok := other.entries[key]
		if !ok || !pairs.Equal(theirs) {
			return false
		}
	}
	return true
}

// copyEntries returns a shallow copy of the entry map. Sets are immutable, so
// sharing them is safe.
func (s AcceptedBreaksStore) copyEntries(extra int) map[GroupNameVersion]Set[JustifiedBreak] {
	out := make(map[GroupNameVersion]Set[JustifiedBreak], len(s.entries)+extra)
	maps.Copy(out, s.entries)
	return out
}
