package config

import (
	"maps"
	"slices"
)

// VersionOverrideTable maps an artifact version to a manually supplied
// version used in place of the inferred one. The zero value is empty.
type VersionOverrideTable struct {
	entries map[GroupNameVersion]string
}

// NewVersionOverrideTable copies entries into a new table.
func NewVersionOverrideTable(entries map[GroupNameVersion]string) VersionOverrideTable {
	if len(entries) == 0 {
		return VersionOverrideTable{}
	}
	return VersionOverrideTable{entries: maps.Clone(entries)}
}

// Get returns the override for key, if any.
func (t VersionOverrideTable) Get(key GroupNameVersion) (string, bool) {
	v, ok := t.entries[key]
	return v, ok
}

// Put returns a new table with key set to override. The last write wins.
func (t VersionOverrideTable) Put(key GroupNameVersion, override string) VersionOverrideTable {
	out := make(map[GroupNameVersion]string, len(t.entries)+1)
	maps.Copy(out, t.entries)
	out[key] = override
	return VersionOverrideTable{entries: out}
}

// Keys returns the overridden versions in sorted order.
func (t VersionOverrideTable) Keys() []GroupNameVersion {
	keys := slices.Collect(maps.Keys(t.entries))
	slices.SortFunc(keys, compareGroupNameVersion)
	return keys
}

// Len returns the number of overrides.
func (t VersionOverrideTable) Len() int {
	return len(t.entries)
}

// Equal reports whether both tables hold the same overrides.
func (t VersionOverrideTable) Equal(other VersionOverrideTable) bool {
	return maps.Equal(t.entries, other.entries)
}
