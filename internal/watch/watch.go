// Package watch monitors a directory for new ADIF log files.
package watch

import (
	"context"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ImportFunc is called with the path of an ADIF file that was created or
// written in the watched directory.
type ImportFunc func(path string)

// IsADIF reports whether path carries an ADIF file extension.
func IsADIF(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".adi", ".adif":
		return true
	}
	return false
}

// Watch watches dir and invokes imp for each created or written ADIF file.
// Events are debounced so a file arriving in several write chunks triggers a
// single import. Blocks until ctx is cancelled.
func Watch(ctx context.Context, dir string, debounce time.Duration, logger *slog.Logger, imp ImportFunc) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	if err := w.Add(dir); err != nil {
		return err
	}

	logger.Info("watcher: started", slog.String("dir", dir))

	pending := make(map[string]struct{})
	var timer *time.Timer
	var timerCh <-chan time.Time

	schedule := func() {
		if timer == nil {
			timer = time.NewTimer(debounce)
			timerCh = timer.C
		} else {
			timer.Reset(debounce)
		}
	}

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			logger.Info("watcher: stopped")
			return nil

		case <-timerCh:
			for path := range pending {
				delete(pending, path)
				logger.Debug("watcher: importing", slog.String("path", path))
				imp(path)
			}

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if ev.Op&(fsnotify.Create|fsnotify.Write) == 0 {
				continue
			}
			if !IsADIF(ev.Name) {
				continue
			}
			pending[ev.Name] = struct{}{}
			schedule()

		case watchErr, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Error("watcher: error", slog.String("error", watchErr.Error()))
		}
	}
}
