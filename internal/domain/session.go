// Package domain defines the core types flowing through the preparation pipeline.
package domain

import "strings"

// UserID uniquely identifies the person a session belongs to. It is the
// partitioning and filtering key for the whole pipeline.
type UserID string

// ExerciseID is a slash-structured exercise identifier of the form
// "<group>/<name>", e.g. "arms/biceps-curl". The name is everything after the
// first separator.
type ExerciseID string

// Split returns the group and name components of the identifier. The name may
// itself contain separators; only the first one delimits the group.
func (id ExerciseID) Split() (group, name string) {
	group, name, _ = strings.Cut(string(id), "/")
	return group, name
}

// Label is the output grouping key assigned by a LabelMapper. Shipped mappers
// keep labels slash-structured so the ExerciseID split rule applies to them too.
type Label string

// Split returns the group and name components of the label, using the same
// first-separator rule as ExerciseID.
func (l Label) Split() (group, name string) {
	return ExerciseID(l).Split()
}

// SensorReading is a single sampled motion datum. Triaxial readings carry
// x/y/z; single-axis readings carry only X and report Axes == 1.
type SensorReading struct {
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	Z    float64 `json:"z"`
	Axes int     `json:"axes"`
}

// Triaxial reports whether the reading has all three components.
func (r SensorReading) Triaxial() bool { return r.Axes == 3 }

// ClassifiedExample is one recorded example inside a session. An empty
// Exercise means the classifier produced no outcome; such examples carry no
// usable identifier and are dropped during flattening.
type ClassifiedExample struct {
	Exercise ExerciseID      `json:"exercise_id,omitempty"`
	Readings []SensorReading `json:"readings"`
}

// Classified reports whether the example has a classification outcome.
func (e ClassifiedExample) Classified() bool { return e.Exercise != "" }

// CompletedSession is a finished recording session for one user. The pipeline
// reads it once and never mutates it.
type CompletedSession struct {
	SessionID string              `json:"session_id"`
	Examples  []ClassifiedExample `json:"examples"`
}

// FlatExample is a flattened (user, exercise, readings) tuple, one per
// classified example.
type FlatExample struct {
	User     UserID
	Exercise ExerciseID
	Readings []SensorReading
}

// LabeledGroup is the pipeline's output unit: one user's readings regrouped by
// mapped label. Each label appears at most once; each sequence preserves the
// order the readings were encountered in.
type LabeledGroup struct {
	User   UserID
	Series map[Label][]SensorReading
}
