package config

// Fields are the raw inputs of a Document, as decoded from a persisted file.
type Fields struct {
	VersionOverrides     VersionOverrideTable
	LegacyAcceptedBreaks LegacyAcceptedBreaks // v1 "acceptedBreaks", read only
	AcceptedBreaksV2     AcceptedBreaksStore  // v2 "acceptedBreaksV2" as authored
}

// Document is the immutable configuration aggregate.
//
// It keeps the legacy and natively authored inputs it was built from, and the
// effective store derived from them once at construction:
//
//	effective = legacy.Upgrade().AndAlso(native)
//
// The effective store cannot be set independently. Every read goes through it
// and it is the only accepted-breaks state written back out.
type Document struct {
	versionOverrides VersionOverrideTable
	legacy           LegacyAcceptedBreaks
	native           AcceptedBreaksStore
	acceptedBreaks   AcceptedBreaksStore
}

// Empty returns a document with no overrides and no accepted breaks.
func Empty() Document {
	return Document{}
}

// New builds a document from its raw inputs, upgrading and merging the legacy
// accepted breaks.
func New(f Fields) Document {
	return Document{
		versionOverrides: f.VersionOverrides,
		legacy:           f.LegacyAcceptedBreaks,
		native:           f.AcceptedBreaksV2,
		acceptedBreaks:   f.LegacyAcceptedBreaks.Upgrade().AndAlso(f.AcceptedBreaksV2),
	}
}

// derive builds the successor of a document. The effective store already holds
// the upgraded legacy data, so the successor carries no legacy input.
func derive(overrides VersionOverrideTable, store AcceptedBreaksStore) Document {
	return New(Fields{VersionOverrides: overrides, AcceptedBreaksV2: store})
}

// VersionOverrideFor returns the override for key, if any.
func (d Document) VersionOverrideFor(key GroupNameVersion) (string, bool) {
	return d.versionOverrides.Get(key)
}

// AddVersionOverride returns a new document with key overridden to version.
// Any prior override for key is replaced.
func (d Document) AddVersionOverride(key GroupNameVersion, version string) Document {
	return derive(d.versionOverrides.Put(key, version), d.acceptedBreaks)
}

// AcceptedBreaks returns the breaks accepted for any version of key.
func (d Document) AcceptedBreaks(key GroupAndName) Set[FlattenedBreak] {
	return d.acceptedBreaks.FlattenedBreaksFor(key)
}

// AcceptedBreaksFor returns the pairs accepted for exactly key.
func (d Document) AcceptedBreaksFor(key GroupNameVersion) Set[JustifiedBreak] {
	return d.acceptedBreaks.AcceptedBreaksFor(key)
}

// AddAcceptedBreaks returns a new document in which key additionally accepts
// breaks under justification. Pairs already present are absorbed.
func (d Document) AddAcceptedBreaks(key GroupNameVersion, justification Justification, breaks []AcceptedBreak) Document {
	return derive(d.versionOverrides, d.acceptedBreaks.AddAcceptedBreaks(key, justification, breaks))
}

// VersionOverrides returns the override table.
func (d Document) VersionOverrides() VersionOverrideTable {
	return d.versionOverrides
}

// AcceptedBreaksV2 returns the effective store: the upgraded legacy input
// merged with the natively authored one.
func (d Document) AcceptedBreaksV2() AcceptedBreaksStore {
	return d.acceptedBreaks
}

// LegacyAcceptedBreaks returns the v1 input the document was decoded from.
// Derived documents always report an empty legacy input.
func (d Document) LegacyAcceptedBreaks() LegacyAcceptedBreaks {
	return d.legacy
}

// NativeAcceptedBreaks returns the v2 input as authored, before merging.
func (d Document) NativeAcceptedBreaks() AcceptedBreaksStore {
	return d.native
}

// Equal compares the effective state: overrides and the merged store.
// Two documents that only differ in how their data was split between v1 and
// v2 inputs are equal.
func (d Document) Equal(other Document) bool {
	return d.versionOverrides.Equal(other.versionOverrides) &&
		d.acceptedBreaks.Equal(other.acceptedBreaks)
}
