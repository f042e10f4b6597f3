// Package pipeline composes extraction, grouping, and materialization into
// named preparation pipelines and runs them against a shared journal snapshot.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log"
	"runtime"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"example.com/trainingdata/internal/dataset"
	"example.com/trainingdata/internal/domain"
	"example.com/trainingdata/internal/extract"
	"example.com/trainingdata/internal/grouping"
	"example.com/trainingdata/internal/journal"
	"example.com/trainingdata/internal/labeling"
)

// Pipeline names one strategy pair and the root its datasets are written to.
type Pipeline struct {
	Name       string
	Mapper     labeling.LabelMapper
	Filter     labeling.UserFilter
	OutputRoot string
}

// Option configures optional behaviour for the Driver.
type Option func(*Driver)

// WithLogger overrides the driver logger.
func WithLogger(logger *log.Logger) Option {
	return func(d *Driver) {
		d.logger = logger
	}
}

// WithWorkers sets the parallelism used for grouping and materialization.
func WithWorkers(workers int) Option {
	return func(d *Driver) {
		if workers > 0 {
			d.workers = workers
		}
	}
}

// Driver runs preparation pipelines over one journal snapshot.
type Driver struct {
	extractor *extract.Extractor
	workers   int
	logger    *log.Logger
}

// NewDriver constructs a Driver.
func NewDriver(extractor *extract.Extractor, opts ...Option) *Driver {
	d := &Driver{
		extractor: extractor,
		workers:   runtime.GOMAXPROCS(0),
		logger:    log.New(log.Writer(), "[pipeline] ", log.LstdFlags),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Run reads the journal once and runs every pipeline against the same
// flattened examples. Pipelines are bulkheaded: each runs to completion
// regardless of the others, and their failures are joined into one error.
func (d *Driver) Run(ctx context.Context, source journal.Source, pipelines ...Pipeline) error {
	records, err := source.Snapshot(ctx)
	if err != nil {
		return fmt.Errorf("read journal snapshot: %w", err)
	}

	examples := make([]domain.FlatExample, 0, len(records))
	for _, session := range d.extractor.Sessions(records) {
		examples = append(examples, d.extractor.Flatten(session.User, session.Session)...)
	}
	d.logger.Printf("journal snapshot flattened (records=%d examples=%d)", len(records), len(examples))

	errs := make([]error, len(pipelines))
	var wg sync.WaitGroup
	for i, p := range pipelines {
		wg.Add(1)
		go func(i int, p Pipeline) {
			defer wg.Done()
			errs[i] = d.runPipeline(ctx, p, examples)
		}(i, p)
	}
	wg.Wait()

	return errors.Join(errs...)
}

func (d *Driver) runPipeline(ctx context.Context, p Pipeline, examples []domain.FlatExample) error {
	start := time.Now()

	engine := grouping.NewEngine(p.Mapper, p.Filter, grouping.WithWorkers(d.workers), grouping.WithLogger(d.logger))
	groups, err := engine.Group(ctx, examples)
	if err != nil {
		recordRun(p.Name, "error", time.Since(start))
		return fmt.Errorf("pipeline %s: group examples: %w", p.Name, err)
	}

	writer := dataset.NewWriter(p.OutputRoot, dataset.WithLogger(d.logger))
	users, err := d.materialize(ctx, p.Name, writer, groups)
	if err != nil {
		recordRun(p.Name, "error", time.Since(start))
		return fmt.Errorf("pipeline %s: %w", p.Name, err)
	}

	if err := writer.WriteListing(users); err != nil {
		recordRun(p.Name, "error", time.Since(start))
		return fmt.Errorf("pipeline %s: write users listing: %w", p.Name, err)
	}

	recordRun(p.Name, "ok", time.Since(start))
	d.logger.Printf("pipeline complete (name=%s users=%d root=%s elapsed=%s)",
		p.Name, len(users), p.OutputRoot, time.Since(start).Round(time.Millisecond))
	return nil
}

// materialize writes every group, bounding write concurrency. A user whose
// directory cannot be prepared is logged and skipped without aborting the run;
// a user hitting the non-triaxial row encoder keeps the rest of their labels
// and stays in the listing.
func (d *Driver) materialize(ctx context.Context, name string, writer *dataset.Writer, groups []domain.LabeledGroup) ([]domain.UserID, error) {
	var mu sync.Mutex
	users := make([]domain.UserID, 0, len(groups))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(d.workers)
	for _, group := range groups {
		group := group
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := writer.WriteGroup(group); err != nil {
				d.logger.Printf("pipeline %s: user %s materialization failed: %v", name, group.User, err)
				if !errors.Is(err, dataset.ErrNonTriaxialReading) {
					recordUserSkipped(name)
					return nil
				}
			}
			mu.Lock()
			users = append(users, group.User)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return users, nil
}
