package grouping

import (
	"context"
	"fmt"
	"log"
	"sort"
	"testing"

	"github.com/stretchr/testify/require"

	"example.com/trainingdata/internal/domain"
	"example.com/trainingdata/internal/labeling"
)

func reading(v float64) domain.SensorReading {
	return domain.SensorReading{X: v, Y: v, Z: v, Axes: 3}
}

func testInput() []domain.FlatExample {
	return []domain.FlatExample{
		{User: "u1", Exercise: "arms/biceps-curl", Readings: []domain.SensorReading{reading(1), reading(2)}},
		{User: "u2", Exercise: "legs/squat", Readings: []domain.SensorReading{reading(10)}},
		{User: "u1", Exercise: "legs/squat", Readings: []domain.SensorReading{reading(3)}},
		{User: "u1", Exercise: "arms/biceps-curl", Readings: []domain.SensorReading{reading(4)}},
	}
}

func TestGroupIdentityAllUsers(t *testing.T) {
	engine := NewEngine(labeling.Identity{}, labeling.AllUsers{}, WithLogger(log.New(testWriter{t}, "", 0)))

	groups, err := engine.Group(context.Background(), testInput())
	require.NoError(t, err)
	require.Len(t, groups, 2)

	byUser := indexByUser(groups)

	u1 := byUser["u1"]
	require.Len(t, u1.Series, 2)
	require.Equal(t, []domain.SensorReading{reading(1), reading(2), reading(4)}, u1.Series["arms/biceps-curl"])
	require.Equal(t, []domain.SensorReading{reading(3)}, u1.Series["legs/squat"])

	u2 := byUser["u2"]
	require.Len(t, u2.Series, 1)
	require.Equal(t, []domain.SensorReading{reading(10)}, u2.Series["legs/squat"])
}

func TestGroupActivityBinaryMergesLabels(t *testing.T) {
	engine := NewEngine(labeling.NewActivityBinary(), labeling.SingleUser{Target: "u1"}, WithLogger(log.New(testWriter{t}, "", 0)))

	groups, err := engine.Group(context.Background(), testInput())
	require.NoError(t, err)
	require.Len(t, groups, 1)

	group := groups[0]
	require.Equal(t, domain.UserID("u1"), group.User)
	require.Len(t, group.Series, 2)
	require.Equal(t, []domain.SensorReading{reading(1), reading(2), reading(4)}, group.Series[labeling.LabelSlacking])
	require.Equal(t, []domain.SensorReading{reading(3)}, group.Series[labeling.LabelExercise])
}

func TestGroupFilteredUserContributesNothing(t *testing.T) {
	engine := NewEngine(labeling.Identity{}, labeling.SingleUser{Target: "nobody"}, WithLogger(log.New(testWriter{t}, "", 0)))

	groups, err := engine.Group(context.Background(), testInput())
	require.NoError(t, err)
	require.Empty(t, groups)
}

// excludeAll is a mapper exercising the exclude branch the shipped variants
// never take.
type excludeAll struct{}

func (excludeAll) Map(domain.ExerciseID) (domain.Label, bool) { return "", false }

func TestGroupExcludedExamplesDropped(t *testing.T) {
	engine := NewEngine(excludeAll{}, labeling.AllUsers{}, WithLogger(log.New(testWriter{t}, "", 0)))

	groups, err := engine.Group(context.Background(), testInput())
	require.NoError(t, err)
	require.Empty(t, groups, "a user with every example excluded emits no group")
}

func TestGroupDeterministicAcrossRuns(t *testing.T) {
	input := make([]domain.FlatExample, 0, 400)
	for i := 0; i < 100; i++ {
		for _, user := range []domain.UserID{"u1", "u2", "u3", "u4"} {
			input = append(input, domain.FlatExample{
				User:     user,
				Exercise: domain.ExerciseID(fmt.Sprintf("arms/exercise-%d", i%7)),
				Readings: []domain.SensorReading{reading(float64(i))},
			})
		}
	}

	run := func(workers int) []domain.LabeledGroup {
		engine := NewEngine(labeling.Identity{}, labeling.AllUsers{},
			WithWorkers(workers), WithLogger(log.New(testWriter{t}, "", 0)))
		groups, err := engine.Group(context.Background(), input)
		require.NoError(t, err)
		sort.Slice(groups, func(i, j int) bool { return groups[i].User < groups[j].User })
		return groups
	}

	first := run(4)
	second := run(4)
	single := run(1)

	require.Equal(t, first, second, "re-running with identical input must be byte-identical")
	require.Equal(t, first, single, "worker count must not affect per-user sequences")
}

func TestGroupCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	engine := NewEngine(labeling.Identity{}, labeling.AllUsers{}, WithLogger(log.New(testWriter{t}, "", 0)))
	_, err := engine.Group(ctx, testInput())
	require.ErrorIs(t, err, context.Canceled)
}

func indexByUser(groups []domain.LabeledGroup) map[domain.UserID]domain.LabeledGroup {
	byUser := make(map[domain.UserID]domain.LabeledGroup, len(groups))
	for _, group := range groups {
		byUser[group.User] = group
	}
	return byUser
}

type testWriter struct {
	t *testing.T
}

func (tw testWriter) Write(p []byte) (int, error) {
	tw.t.Log(string(p))
	return len(p), nil
}
