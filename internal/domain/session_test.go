package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExerciseIDSplit(t *testing.T) {
	cases := []struct {
		id    ExerciseID
		group string
		name  string
	}{
		{"arms/biceps-curl", "arms", "biceps-curl"},
		{"legs/squat", "legs", "squat"},
		{"core/plank/side", "core", "plank/side"},
		{"/slacking", "", "slacking"},
	}

	for _, tc := range cases {
		group, name := tc.id.Split()
		require.Equal(t, tc.group, group, "group of %q", tc.id)
		require.Equal(t, tc.name, name, "name of %q", tc.id)
	}
}

func TestLabelSplitMatchesExerciseRule(t *testing.T) {
	group, name := Label("/exercise").Split()
	require.Equal(t, "", group)
	require.Equal(t, "exercise", name)
}

func TestClassified(t *testing.T) {
	require.False(t, ClassifiedExample{}.Classified())
	require.True(t, ClassifiedExample{Exercise: "arms/biceps-curl"}.Classified())
}

func TestTriaxial(t *testing.T) {
	require.True(t, SensorReading{X: 1, Y: 2, Z: 3, Axes: 3}.Triaxial())
	require.False(t, SensorReading{X: 1, Axes: 1}.Triaxial())
}
