// Package events defines the journaled event payloads shared with the
// recording services.
package events

import "time"

// SessionCompleted is the payload journaled when a recording session finishes.
// The journal key carries the owning user id.
type SessionCompleted struct {
	SessionID   string            `json:"session_id"`
	CompletedAt time.Time         `json:"completed_at"`
	Examples    []ExampleRecorded `json:"examples"`
}

// ExampleRecorded is one classified (or unclassified) example inside a
// completed session. A missing exercise_id means the classifier produced no
// outcome for the example.
type ExampleRecorded struct {
	ExerciseID string            `json:"exercise_id,omitempty"`
	Readings   []ReadingRecorded `json:"readings"`
}

// ReadingRecorded is a single sensor sample. Axes is 1 for single-axis
// captures and 3 for triaxial ones.
type ReadingRecorded struct {
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	Z    float64 `json:"z"`
	Axes int     `json:"axes"`
}
