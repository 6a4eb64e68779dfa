// Package codec reads and writes config documents in their persisted
// framings, YAML and JSON.
//
// Both framings share one field layout:
//
//	versionOverrides:  {"group:name:version": "version"}
//	acceptedBreaks:    {"group:name:version": [descriptor, ...]}       (v1, read only)
//	acceptedBreaksV2:  {"group:name:version": [{justification, breaks}]}
//
// Decoding migrates v1 data into the effective store. Encoding writes only the
// v2 fields, so a file loaded and saved once is fully migrated.
package codec
