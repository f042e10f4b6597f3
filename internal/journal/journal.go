// Package journal supplies raw session records from the durable event journal.
// The journal is shared with unrelated record types; callers are expected to
// filter records structurally, not assume every payload is a session.
package journal

import "context"

// Record is one journaled (key, value) pair. Key carries the owning user id;
// Value is an arbitrary journaled payload that may or may not be a completed
// session.
type Record struct {
	Key   string
	Value []byte
}

// Source reads a snapshot of the journal. Implementations must treat the
// journal as read-only and return records exactly once per call.
type Source interface {
	Snapshot(ctx context.Context) ([]Record, error)
}

// MemorySource serves a fixed record slice. Used in tests and local runs.
type MemorySource struct {
	Records []Record
}

// Snapshot returns the configured records.
func (s *MemorySource) Snapshot(context.Context) ([]Record, error) {
	return s.Records, nil
}
