// Package internal provides the import pipeline orchestration.
package internal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/brianbruff/Log4YM/internal/adif"
	"github.com/brianbruff/Log4YM/internal/apperr"
	"github.com/brianbruff/Log4YM/internal/checksum"
	"github.com/brianbruff/Log4YM/internal/store"
	"github.com/brianbruff/Log4YM/internal/watch"
)

// openMongo is the default storeOpener.
func openMongo(ctx context.Context, cfg MongoConfig) (store.Store, error) {
	return store.Open(ctx, cfg.URI, cfg.Database, cfg.Collection, cfg.JournalCollection)
}

// newApplication applies opts and checks the invariants shared by both
// entry points.
func newApplication(opts []Option) (*application, error) {
	app := &application{out: os.Stdout, openStore: openMongo}
	for _, opt := range opts {
		opt(app)
	}
	if app.config == nil {
		return nil, fmt.Errorf("config is required")
	}
	return app, nil
}

// newLogger builds the structured logger. Diagnostics go to stderr so the
// progress lines on stdout stay clean.
func newLogger(cfg *Config) *slog.Logger {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.App.LogLevel,
	}))
	slog.SetDefault(logger)
	return logger
}

// Run imports a single ADIF file into the configured collection.
//
// It returns apperr.ErrAlreadyImported when the file's checksum appears in
// the import journal and force is not set.
func Run(ctx context.Context, opts ...Option) error {
	app, err := newApplication(opts)
	if err != nil {
		return err
	}
	if app.file == "" {
		return fmt.Errorf("input file is required")
	}

	logger := newLogger(app.config)
	return app.importFile(ctx, logger, app.file)
}

// importFile runs the sequential pipeline for one file: read, parse, journal
// check, batch load, journal write.
func (app *application) importFile(ctx context.Context, logger *slog.Logger, path string) error {
	cfg := app.config

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read adif file: %w", err)
	}
	sum := checksum.Sum(data)

	fmt.Fprintf(app.out, "Parsing ADIF file: %s\n", path)

	records := adif.New().ParseAll(string(data))
	total := len(records)
	fmt.Fprintf(app.out, "Found %d QSO records\n", total)

	if total == 0 {
		fmt.Fprintln(app.out, "No records found to import")
		return nil
	}

	if app.dryRun {
		fmt.Fprintf(app.out, "Dry run: skipping import of %d records\n", total)
		return nil
	}

	connectCtx, cancel := context.WithTimeout(ctx, cfg.Mongo.ConnectTimeout)
	defer cancel()
	db, err := app.openStore(connectCtx, cfg.Mongo)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(context.Background()); err != nil {
			logger.Warn("store close failed", slog.String("error", err.Error()))
		}
	}()

	if !app.force {
		seen, err := db.SeenChecksum(ctx, sum)
		if err != nil {
			return err
		}
		if seen {
			fmt.Fprintf(app.out, "File %s was already imported (matching checksum); use --force to import again\n", path)
			return apperr.ErrAlreadyImported
		}
	}

	loader := store.NewLoader(db, cfg.Import.BatchSize, func(inserted, total int) {
		fmt.Fprintf(app.out, "Inserted %d/%d records...\n", inserted, total)
	})
	inserted, err := loader.Load(ctx, records)
	if err != nil {
		return err
	}

	entry := store.ImportRecord{
		File:       path,
		Checksum:   sum,
		Records:    inserted,
		ImportedAt: time.Now().UTC(),
	}
	if err := db.RecordImport(ctx, entry); err != nil {
		logger.Warn("journal write failed", slog.String("error", err.Error()))
	}

	logger.Info("import complete",
		slog.String("file", path),
		slog.String("checksum", checksum.Short(sum)),
		slog.Int("records", inserted))
	fmt.Fprintf(app.out, "\nSuccessfully imported %d QSO records into %s.%s\n",
		inserted, cfg.Mongo.Database, cfg.Mongo.Collection)
	return nil
}

// RunWatch watches the configured directory and imports each new or changed
// ADIF file. The journal makes repeated events for the same content harmless.
// Blocks until a shutdown signal arrives or ctx is cancelled.
func RunWatch(ctx context.Context, opts ...Option) error {
	app, err := newApplication(opts)
	if err != nil {
		return err
	}
	cfg := app.config
	if cfg.Watch.Dir == "" {
		return fmt.Errorf("watch: dir is required")
	}

	logger := newLogger(cfg)

	g, gCtx := errgroup.WithContext(ctx)
	watchCtx, cancel := context.WithCancel(gCtx)
	defer cancel()

	g.Go(func() error {
		return watch.Watch(watchCtx, cfg.Watch.Dir, cfg.Watch.Debounce, logger, func(path string) {
			if err := app.importFile(watchCtx, logger, path); err != nil {
				if errors.Is(err, apperr.ErrAlreadyImported) {
					logger.Info("skipping already imported file", slog.String("path", path))
					return
				}
				logger.Error("import failed", slog.String("path", path), slog.String("error", err.Error()))
			}
		})
	})

	g.Go(func() error {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(quit)

		select {
		case sig := <-quit:
			logger.Info("received shutdown signal", slog.String("signal", sig.String()))
			cancel()
		case <-gCtx.Done():
		}
		return nil
	})

	return g.Wait()
}
