package internal

import (
	"context"
	"io"

	"github.com/brianbruff/Log4YM/internal/store"
)

// Option is a functional option for configuring the application.
type Option func(*application)

// storeOpener dials the persistence layer for an import run.
type storeOpener func(ctx context.Context, cfg MongoConfig) (store.Store, error)

type application struct {
	config    *Config
	file      string
	force     bool
	dryRun    bool
	out       io.Writer
	openStore storeOpener
}

// WithConfig sets the application configuration.
func WithConfig(cfg *Config) Option {
	return func(a *application) {
		a.config = cfg
	}
}

// WithFile sets the ADIF file to import.
func WithFile(path string) Option {
	return func(a *application) {
		a.file = path
	}
}

// WithForce imports a file even when its checksum appears in the journal.
func WithForce(force bool) Option {
	return func(a *application) {
		a.force = force
	}
}

// WithDryRun parses and reports counts without writing to the store.
func WithDryRun(dryRun bool) Option {
	return func(a *application) {
		a.dryRun = dryRun
	}
}

// WithOutput redirects progress reporting away from stdout. Used by tests.
func WithOutput(w io.Writer) Option {
	return func(a *application) {
		a.out = w
	}
}

// withStoreOpener replaces the MongoDB dial with a fake. Used by tests.
func withStoreOpener(open storeOpener) Option {
	return func(a *application) {
		a.openStore = open
	}
}
