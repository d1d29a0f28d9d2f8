package store

import (
	"context"
	"fmt"

	"github.com/brianbruff/Log4YM/internal/adif"
)

// DefaultBatchSize is the number of records written per insert-many call.
const DefaultBatchSize = 100

// Inserter writes one batch of records as a single insert-many call.
// Consumers depend on this interface rather than the concrete *Mongo type to
// facilitate testing with fakes.
type Inserter interface {
	InsertMany(ctx context.Context, docs []adif.Record) (int, error)
}

// Verify *Mongo satisfies Inserter at compile time.
var _ Inserter = (*Mongo)(nil)

// ProgressFunc is called after each acknowledged batch with the cumulative
// inserted count and the total record count.
type ProgressFunc func(inserted, total int)

// Loader writes records to an Inserter in fixed-size batches.
type Loader struct {
	inserter  Inserter
	batchSize int
	progress  ProgressFunc
}

// NewLoader returns a Loader. A non-positive batchSize falls back to
// DefaultBatchSize; progress may be nil.
func NewLoader(inserter Inserter, batchSize int, progress ProgressFunc) *Loader {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	return &Loader{
		inserter:  inserter,
		batchSize: batchSize,
		progress:  progress,
	}
}

// Load writes records batch by batch, acknowledging each batch before the
// next begins, and returns the total inserted count. Empty input performs no
// writes. The first failed batch aborts the run; earlier batches stay
// durable and nothing is retried.
func (l *Loader) Load(ctx context.Context, records []adif.Record) (int, error) {
	total := len(records)
	inserted := 0

	for start := 0; start < total; start += l.batchSize {
		end := min(start+l.batchSize, total)
		n, err := l.inserter.InsertMany(ctx, records[start:end])
		if err != nil {
			return inserted, fmt.Errorf("store: batch starting at record %d: %w", start, err)
		}
		inserted += n
		if l.progress != nil {
			l.progress(inserted, total)
		}
	}

	return inserted, nil
}
