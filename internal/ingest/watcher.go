package ingest

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

const fileBuffer = 64

// Watcher observes a directory tree and forwards newly created file paths to
// a bounded channel. Files that exist when the watcher starts are ignored, as
// are hidden files and directories. Detection and cataloging are decoupled:
// the watcher only pumps paths; the Processor decides what to do with them.
type Watcher struct {
	dir    string
	fsw    *fsnotify.Watcher
	files  chan string
	logger zerolog.Logger
}

// NewWatcher creates a watcher over dir and registers watches for the whole
// existing tree.
func NewWatcher(dir string, logger zerolog.Logger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create fsnotify watcher: %w", err)
	}

	w := &Watcher{
		dir:    dir,
		fsw:    fsw,
		files:  make(chan string, fileBuffer),
		logger: logger.With().Str("component", "watcher").Logger(),
	}

	if err := w.watchTree(dir); err != nil {
		fsw.Close()
		return nil, err
	}
	return w, nil
}

// Files returns the channel of detected file paths. It is closed when Run
// returns.
func (w *Watcher) Files() <-chan string {
	return w.files
}

// Run pumps filesystem events until the context is cancelled. Watch errors
// are logged and watching continues; the watcher runs for the lifetime of
// the process.
func (w *Watcher) Run(ctx context.Context) error {
	defer close(w.files)
	defer w.fsw.Close()

	w.logger.Info().Str("dir", w.dir).Msg("watching for new files")

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			w.handle(ev)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn().Err(err).Msg("watch error")
		}
	}
}

func (w *Watcher) handle(ev fsnotify.Event) {
	if !ev.Has(fsnotify.Create) {
		return
	}
	if hidden(ev.Name) {
		return
	}

	info, err := os.Stat(ev.Name)
	if err != nil {
		w.logger.Warn().Err(err).Str("path", ev.Name).Msg("stat failed")
		return
	}

	if info.IsDir() {
		if err := w.watchTree(ev.Name); err != nil {
			w.logger.Warn().Err(err).Str("path", ev.Name).Msg("failed to watch new directory")
		}
		return
	}

	select {
	case w.files <- ev.Name:
	default:
		w.logger.Warn().Str("path", ev.Name).Msg("event buffer full, dropping file event")
	}
}

// watchTree registers watches for root and every non-hidden directory below
// it. Files already present are deliberately not forwarded.
func (w *Watcher) watchTree(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			w.logger.Warn().Err(err).Str("path", path).Msg("failed to access path")
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && hidden(path) {
			return filepath.SkipDir
		}
		if err := w.fsw.Add(path); err != nil {
			w.logger.Warn().Err(err).Str("path", path).Msg("failed to add watch")
		}
		return nil
	})
}

func hidden(path string) bool {
	return strings.HasPrefix(filepath.Base(path), ".")
}
