// Package extract turns raw journal records into flattened training examples.
package extract

import (
	"bytes"
	"encoding/json"
	"log"

	"example.com/trainingdata/internal/domain"
	"example.com/trainingdata/internal/events"
	"example.com/trainingdata/internal/journal"
)

// UserSession pairs a completed session with its owning user.
type UserSession struct {
	User    domain.UserID
	Session domain.CompletedSession
}

// Option configures optional behaviour for the Extractor.
type Option func(*Extractor)

// WithLogger overrides the logger used for per-session diagnostics.
func WithLogger(logger *log.Logger) Option {
	return func(e *Extractor) {
		e.logger = logger
	}
}

// Extractor filters journal records down to completed sessions and flattens
// them into per-example tuples.
type Extractor struct {
	logger *log.Logger
}

// NewExtractor constructs an Extractor.
func NewExtractor(opts ...Option) *Extractor {
	e := &Extractor{
		logger: log.New(log.Writer(), "[extract] ", log.LstdFlags),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Sessions keeps the journal records whose payload is structurally a completed
// session. The journal is shared with unrelated record types, so everything
// else is skipped without error.
func (e *Extractor) Sessions(records []journal.Record) []UserSession {
	sessions := make([]UserSession, 0, len(records))
	for _, record := range records {
		session, ok := decodeSession(record.Value)
		if !ok {
			recordSkipped()
			continue
		}
		recordExtracted()
		sessions = append(sessions, UserSession{
			User:    domain.UserID(record.Key),
			Session: session,
		})
	}
	return sessions
}

// Flatten expands a session into one tuple per classified example. Examples
// without a classification outcome contribute nothing. Diagnostic counts are
// best effort and never fail the pipeline.
func (e *Extractor) Flatten(user domain.UserID, session domain.CompletedSession) []domain.FlatExample {
	examples := make([]domain.FlatExample, 0, len(session.Examples))
	readings := 0
	for _, example := range session.Examples {
		if !example.Classified() {
			recordUnclassified()
			continue
		}
		readings += len(example.Readings)
		examples = append(examples, domain.FlatExample{
			User:     user,
			Exercise: example.Exercise,
			Readings: example.Readings,
		})
	}
	recordFlattened(len(examples), readings)

	e.logger.Printf("flattened session (user=%s session=%s examples=%d readings=%d)",
		user, session.SessionID, len(examples), readings)
	return examples
}

// decodeSession reports whether the payload is structurally a completed
// session. Unknown fields disqualify the payload so that unrelated journaled
// event types are not misread as sessions.
func decodeSession(value []byte) (domain.CompletedSession, bool) {
	decoder := json.NewDecoder(bytes.NewReader(value))
	decoder.DisallowUnknownFields()

	var payload events.SessionCompleted
	if err := decoder.Decode(&payload); err != nil {
		return domain.CompletedSession{}, false
	}
	if payload.SessionID == "" {
		return domain.CompletedSession{}, false
	}

	session := domain.CompletedSession{
		SessionID: payload.SessionID,
		Examples:  make([]domain.ClassifiedExample, 0, len(payload.Examples)),
	}
	for _, example := range payload.Examples {
		readings := make([]domain.SensorReading, 0, len(example.Readings))
		for _, reading := range example.Readings {
			readings = append(readings, domain.SensorReading{
				X:    reading.X,
				Y:    reading.Y,
				Z:    reading.Z,
				Axes: reading.Axes,
			})
		}
		session.Examples = append(session.Examples, domain.ClassifiedExample{
			Exercise: domain.ExerciseID(example.ExerciseID),
			Readings: readings,
		})
	}
	return session, true
}
