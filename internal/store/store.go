package store

import "context"

// Store is the persistence surface an import run depends on. Consumers use
// this interface rather than the concrete *Mongo type to facilitate testing
// with fakes.
type Store interface {
	Inserter
	SeenChecksum(ctx context.Context, sum string) (bool, error)
	RecordImport(ctx context.Context, entry ImportRecord) error
	Close(ctx context.Context) error
}

// Verify *Mongo satisfies Store at compile time.
var _ Store = (*Mongo)(nil)
