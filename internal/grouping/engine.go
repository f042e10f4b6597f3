// Package grouping regroups flattened examples into per-user, per-label
// reading sequences. Users are hash-partitioned across workers so every
// partition aggregates independently with no shared mutable state, mirroring
// how the job runs over a distributed dataset.
package grouping

import (
	"context"
	"log"
	"runtime"
	"sync"

	"github.com/cespare/xxhash/v2"

	"example.com/trainingdata/internal/domain"
	"example.com/trainingdata/internal/labeling"
)

// Option configures optional behaviour for the Engine.
type Option func(*Engine)

// WithWorkers sets the number of partition workers.
func WithWorkers(workers int) Option {
	return func(e *Engine) {
		if workers > 0 {
			e.workers = workers
		}
	}
}

// WithLogger overrides the logger used to report partition progress.
func WithLogger(logger *log.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// Engine applies the label-mapping and user-filtering policies while grouping
// examples by user and label.
type Engine struct {
	mapper  labeling.LabelMapper
	filter  labeling.UserFilter
	workers int
	logger  *log.Logger
}

// NewEngine constructs an Engine with the given policies.
func NewEngine(mapper labeling.LabelMapper, filter labeling.UserFilter, opts ...Option) *Engine {
	e := &Engine{
		mapper:  mapper,
		filter:  filter,
		workers: runtime.GOMAXPROCS(0),
		logger:  log.New(log.Writer(), "[grouping] ", log.LstdFlags),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// partition is one worker's slice of the input: a disjoint set of users and
// their examples in encounter order.
type partition struct {
	users  []domain.UserID
	byUser map[domain.UserID][]domain.FlatExample
}

// Group emits one LabeledGroup per user that survives the filter. For a fixed
// input ordering the per-label sequences are deterministic: partitioning
// preserves each user's encounter order and no state is shared between users.
// The order of groups across users is unspecified.
func (e *Engine) Group(ctx context.Context, examples []domain.FlatExample) ([]domain.LabeledGroup, error) {
	partitions := e.shuffle(examples)

	groupCh := make(chan domain.LabeledGroup)
	var wg sync.WaitGroup
	for _, part := range partitions {
		if len(part.users) == 0 {
			continue
		}
		wg.Add(1)
		go func(part *partition) {
			defer wg.Done()
			e.aggregate(ctx, part, groupCh)
		}(part)
	}

	go func() {
		wg.Wait()
		close(groupCh)
	}()

	groups := make([]domain.LabeledGroup, 0, len(examples))
	for group := range groupCh {
		groups = append(groups, group)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	e.logger.Printf("grouped %d examples into %d user groups (workers=%d)", len(examples), len(groups), e.workers)
	return groups, nil
}

// shuffle assigns every user to exactly one partition by hashing the user id,
// keeping each user's examples in encounter order.
func (e *Engine) shuffle(examples []domain.FlatExample) []*partition {
	partitions := make([]*partition, e.workers)
	for i := range partitions {
		partitions[i] = &partition{byUser: make(map[domain.UserID][]domain.FlatExample)}
	}

	for _, example := range examples {
		idx := xxhash.Sum64String(string(example.User)) % uint64(e.workers)
		part := partitions[idx]
		if _, seen := part.byUser[example.User]; !seen {
			part.users = append(part.users, example.User)
		}
		part.byUser[example.User] = append(part.byUser[example.User], example)
	}

	return partitions
}

// aggregate builds one labeled group per surviving user in the partition.
func (e *Engine) aggregate(ctx context.Context, part *partition, out chan<- domain.LabeledGroup) {
	for _, user := range part.users {
		if ctx.Err() != nil {
			return
		}
		if !e.filter.Include(user) {
			recordUserFiltered()
			continue
		}

		series := make(map[domain.Label][]domain.SensorReading)
		for _, example := range part.byUser[user] {
			label, ok := e.mapper.Map(example.Exercise)
			if !ok {
				recordExampleExcluded()
				continue
			}
			series[label] = append(series[label], example.Readings...)
		}
		if len(series) == 0 {
			continue
		}

		recordGroupEmitted(len(series))
		select {
		case out <- domain.LabeledGroup{User: user, Series: series}:
		case <-ctx.Done():
			return
		}
	}
}
