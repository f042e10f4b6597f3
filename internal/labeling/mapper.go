// Package labeling holds the pluggable policies composed into a pipeline: how
// exercises map to output labels and which users are included at all.
package labeling

import "example.com/trainingdata/internal/domain"

// Shipped labels for the activity/slacking training objective.
const (
	LabelSlacking domain.Label = "/slacking"
	LabelExercise domain.Label = "/exercise"
)

// DefaultSlackingExercise is the identifier treated as non-exercise by the
// binary activity mapper.
const DefaultSlackingExercise domain.ExerciseID = "arms/biceps-curl"

// LabelMapper maps an exercise identifier to an output label. A false second
// return excludes the exercise from the output entirely. Neither shipped
// mapper excludes anything, but the contract keeps the branch open for future
// policies.
type LabelMapper interface {
	Map(id domain.ExerciseID) (domain.Label, bool)
}

// Identity labels every exercise with its own identifier. Used for
// fine-grained exercise recognition datasets.
type Identity struct{}

// Map returns the identifier unchanged.
func (Identity) Map(id domain.ExerciseID) (domain.Label, bool) {
	return domain.Label(id), true
}

// ActivityBinary collapses every exercise to one of two labels: the
// distinguished non-exercise identifier becomes LabelSlacking, everything
// else LabelExercise. Used for coarse activity detection datasets.
type ActivityBinary struct {
	Slacking domain.ExerciseID
}

// NewActivityBinary constructs the mapper with the default distinguished
// identifier.
func NewActivityBinary() ActivityBinary {
	return ActivityBinary{Slacking: DefaultSlackingExercise}
}

// Map classifies the identifier as slacking or exercise.
func (m ActivityBinary) Map(id domain.ExerciseID) (domain.Label, bool) {
	if id == m.Slacking {
		return LabelSlacking, true
	}
	return LabelExercise, true
}
