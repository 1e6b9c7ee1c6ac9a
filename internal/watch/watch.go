package watch

import (
	"context"
	"errors"
	"path/filepath"
	"time"

	"github.com/agentlink/agentlink/internal/logging"
	"github.com/agentlink/agentlink/internal/platform"
	"github.com/fsnotify/fsnotify"
	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"
)

// DefaultDebounce is how long the watcher waits after the last event before
// triggering a run.
const DefaultDebounce = 300 * time.Millisecond

// ErrNothingToWatch is returned by New when none of the configured paths exist.
var ErrNothingToWatch = errors.New("no watchable paths exist")

// RunFunc performs one reconciliation. runID identifies the run in logs.
type RunFunc func(ctx context.Context, runID string) error

// Config configures a Watcher.
type Config struct {
	// Dirs are watched non-recursively; any change inside one triggers a run.
	Dirs []string
	// Files are watched through their parent directory; only events naming
	// the file itself trigger a run.
	Files []string
	// Debounce defaults to DefaultDebounce.
	Debounce time.Duration
	// Logger defaults to logging.Logger.
	Logger *zerolog.Logger
}

// Watcher triggers a RunFunc after bursts of filesystem changes. Runs are
// serialized on the goroutine that calls Run.
type Watcher struct {
	cfg   Config
	fsw   *fsnotify.Watcher
	run   RunFunc
	log   zerolog.Logger
	files map[string]bool
}

// New creates a Watcher. Paths that do not exist yet are skipped and retried
// after every run, so directories created by a run get picked up.
func New(cfg Config, run RunFunc) (*Watcher, error) {
	if cfg.Debounce <= 0 {
		cfg.Debounce = DefaultDebounce
	}
	log := logging.Logger
	if cfg.Logger != nil {
		log = *cfg.Logger
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		cfg:   cfg,
		fsw:   fsw,
		run:   run,
		log:   log.With().Str("component", "watch").Logger(),
		files: make(map[string]bool, len(cfg.Files)),
	}
	for _, f := range cfg.Files {
		w.files[filepath.Clean(f)] = true
	}

	if w.addPaths() == 0 {
		fsw.Close()
		return nil, ErrNothingToWatch
	}
	return w, nil
}

// watchTargets returns every directory the watcher should hold.
func (w *Watcher) watchTargets() []string {
	dirs := append([]string{}, w.cfg.Dirs...)
	for _, f := range w.cfg.Files {
		dirs = append(dirs, filepath.Dir(f))
	}
	return dirs
}

// addPaths registers every existing target and returns how many are watched.
func (w *Watcher) addPaths() int {
	for _, dir := range w.watchTargets() {
		if !platform.IsDir(dir) {
			continue
		}
		if err := w.fsw.Add(dir); err != nil {
			w.log.Warn().Err(err).Str("path", dir).Msg("cannot watch directory")
		}
	}
	return len(w.fsw.WatchList())
}

// relevant reports whether an event should schedule a run.
func (w *Watcher) relevant(ev fsnotify.Event) bool {
	if ev.Op == fsnotify.Chmod {
		return false
	}
	name := filepath.Clean(ev.Name)
	for _, dir := range w.cfg.Dirs {
		if filepath.Dir(name) == filepath.Clean(dir) || name == filepath.Clean(dir) {
			return true
		}
	}
	return w.files[name]
}

// Run blocks until ctx is cancelled, triggering the RunFunc after each burst
// of relevant events. It closes the underlying watcher before returning.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.fsw.Close()

	timer := time.NewTimer(w.cfg.Debounce)
	timer.Stop()
	defer timer.Stop()
	pending := false

	w.log.Info().Strs("paths", w.fsw.WatchList()).Dur("debounce", w.cfg.Debounce).Msg("watching")

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if !w.relevant(ev) {
				continue
			}
			w.log.Debug().Str("path", ev.Name).Str("op", ev.Op.String()).Msg("change detected")
			timer.Reset(w.cfg.Debounce)
			pending = true

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.log.Error().Err(err).Msg("watcher error")

		case <-timer.C:
			if !pending {
				continue
			}
			pending = false
			w.trigger(ctx)
		}
	}
}

// NewRunID returns a sortable identifier for one reconciliation run.
func NewRunID() string {
	return ulid.Make().String()
}

func (w *Watcher) trigger(ctx context.Context) {
	id := NewRunID()
	log := w.log.With().Str("run_id", id).Logger()

	start := time.Now()
	if err := w.run(ctx, id); err != nil {
		log.Error().Err(err).Msg("run failed")
	} else {
		log.Debug().Dur("took", time.Since(start)).Msg("run finished")
	}
	w.addPaths()
}
