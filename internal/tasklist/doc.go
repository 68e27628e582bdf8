// Package tasklist parses, queries, and updates checklist documents.
//
// The document format is plain text, one task per line:
//
//   - [ ] 1. Write the login form
//     leverage: AuthService
//     requirements: REQ-4
//   - [x] 2. Write the tests
//
// A task line is a checkbox marker ("[ ]" pending, "[x]" completed) followed
// by an optional ordinal and a description. Indented "key: value" lines
// attach as metadata to the nearest preceding task line. Blank lines are
// separators; anything else is skipped. The metadata key "completedAt" is
// reserved: it carries a completed task's RFC 3339 timestamp across the
// serialize/parse round trip.
//
// # Parsing model
//
// Parsing is a deterministic line scanner with an explicit token grammar
// (task-line, metadata-line, blank-line, other). Sequence numbers are
// assigned by document order at parse time; the document carries no
// independent identifiers. Re-parsing the same input always yields the same
// records.
//
// # Snapshots
//
// Records exist only transiently: a caller parses the backing text, queries
// or mutates the in-memory snapshot, and serializes the result back.
// Mutation helpers return a new snapshot rather than editing in place, so
// callers control persistence and ordering themselves.
package tasklist
