// Package dataset materializes labeled groups as per-user CSV datasets on
// durable storage.
package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/google/uuid"

	"example.com/trainingdata/internal/domain"
)

// ErrNonTriaxialReading is returned when a reading without all three axes
// reaches the row encoder. The row shape is (group, name, x, y, z); rather
// than coerce single-axis data into it, the affected label file is discarded
// and the error surfaced. Remaining labels for the user are still written.
var ErrNonTriaxialReading = errors.New("non-triaxial reading cannot be encoded as a dataset row")

// Option configures optional behaviour for the Writer.
type Option func(*Writer)

// WithLogger overrides the logger used to report materialization progress.
func WithLogger(logger *log.Logger) Option {
	return func(w *Writer) {
		w.logger = logger
	}
}

// Writer materializes labeled groups under a single output root. Writers for
// different users may run concurrently: user directories are disjoint and
// file names are process-wide unique.
type Writer struct {
	root   string
	logger *log.Logger
}

// NewWriter constructs a Writer rooted at the given directory.
func NewWriter(root string, opts ...Option) *Writer {
	w := &Writer{
		root:   root,
		logger: log.New(log.Writer(), "[dataset] ", log.LstdFlags),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// UserDir returns the directory a user's dataset files are written to.
func (w *Writer) UserDir(user domain.UserID) string {
	return filepath.Join(w.root, "datasets", string(user))
}

// WriteGroup materializes one user's group. The user directory is removed and
// recreated first, so a rerun leaves no files from the prior run. Each label
// becomes one CSV file with a generated unique name; labels are not used as
// file names since they may collide across runs or contain unsafe characters.
func (w *Writer) WriteGroup(group domain.LabeledGroup) error {
	dir := w.UserDir(group.User)

	if err := os.RemoveAll(dir); err != nil {
		recordPrepareFailure()
		return fmt.Errorf("prepare dataset dir for user %s: %w", group.User, err)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		recordPrepareFailure()
		return fmt.Errorf("prepare dataset dir for user %s: %w", group.User, err)
	}

	// Sort labels so files of the same run are written in a stable order.
	labels := make([]domain.Label, 0, len(group.Series))
	for label := range group.Series {
		labels = append(labels, label)
	}
	sort.Slice(labels, func(i, j int) bool { return labels[i] < labels[j] })

	var errs []error
	for _, label := range labels {
		path := filepath.Join(dir, uuid.NewString()+".csv")
		if err := writeSeries(path, label, group.Series[label]); err != nil {
			errs = append(errs, fmt.Errorf("user %s label %q: %w", group.User, label, err))
			continue
		}
		recordFileWritten(len(group.Series[label]))
	}
	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	w.logger.Printf("materialized user dataset (user=%s labels=%d dir=%s)", group.User, len(labels), dir)
	return nil
}

// writeSeries writes one label's reading sequence as CSV rows of
// (group, name, x, y, z), splitting the label by the first separator. A
// non-triaxial reading aborts the file, which is removed before returning.
func writeSeries(path string, label domain.Label, readings []domain.SensorReading) (err error) {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create dataset file: %w", err)
	}
	defer func() {
		file.Close()
		if err != nil {
			os.Remove(path)
		}
	}()

	group, name := label.Split()

	cw := csv.NewWriter(file)
	for _, reading := range readings {
		if !reading.Triaxial() {
			recordNonTriaxial()
			return ErrNonTriaxialReading
		}
		row := []string{
			group,
			name,
			strconv.FormatFloat(reading.X, 'g', -1, 64),
			strconv.FormatFloat(reading.Y, 'g', -1, 64),
			strconv.FormatFloat(reading.Z, 'g', -1, 64),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write dataset row: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush dataset file: %w", err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("close dataset file: %w", err)
	}
	return nil
}

// WriteListing writes the run-level users listing, one entry per processed
// user. Entries are sorted so reruns produce identical listings.
func (w *Writer) WriteListing(users []domain.UserID) error {
	if err := os.MkdirAll(w.root, 0o755); err != nil {
		return fmt.Errorf("prepare output root: %w", err)
	}

	sorted := make([]string, 0, len(users))
	for _, user := range users {
		sorted = append(sorted, string(user))
	}
	sort.Strings(sorted)

	file, err := os.Create(filepath.Join(w.root, "users"))
	if err != nil {
		return fmt.Errorf("create users listing: %w", err)
	}
	defer file.Close()

	for _, user := range sorted {
		if _, err := fmt.Fprintln(file, user); err != nil {
			return fmt.Errorf("write users listing: %w", err)
		}
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("close users listing: %w", err)
	}
	return nil
}
