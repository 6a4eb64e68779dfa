// Package history provides an SQLite-backed audit log of config document
// revisions.
//
// Every mutating command records the resulting document for its config path.
// The log is append-only:
//   - Revisions are never updated or deleted
//   - Each path has its own logical sequence, starting at 1
//   - Recording a document identical to the path's latest revision is a no-op
//
// # Ordering
//
// All ordering uses the seq column, never timestamps. Queries order by
// seq ASC, id ASC COLLATE BINARY so results are identical across runs.
//
// # Identity
//
// Documents are stored in RFC 8785 canonical form next to their
// domain-separated SHA-256 hash, so two revisions holding equal documents
// always carry the same hash.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce referential integrity
package history
