package datastore

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/turtacn/recreation-potential/internal/domain/dataset"
	"github.com/turtacn/recreation-potential/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/recreation-potential/pkg/errors"
)

// DefaultDebounce collapses the burst of events an editor or copy produces.
const DefaultDebounce = 500 * time.Millisecond

// Watcher reloads the holder when a dataset file in the data directory
// changes.
type Watcher struct {
	holder   *Holder
	debounce time.Duration
	logger   logging.Logger
	fsw      *fsnotify.Watcher
	files    map[string]struct{}
}

func NewWatcher(holder *Holder, debounce time.Duration, log logging.Logger) (*Watcher, error) {
	if log == nil {
		log = logging.NewNopLogger()
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInternal, "failed to create file watcher")
	}
	dir := holder.Loader().Dir()
	if err := fsw.Add(dir); err != nil {
		fsw.Close()
		return nil, errors.Wrap(err, errors.CodeInternal, "failed to watch data directory").WithDetail(dir)
	}
	files := make(map[string]struct{}, len(dataset.AllKinds))
	for _, kind := range dataset.AllKinds {
		files[kind.FileName()] = struct{}{}
	}
	return &Watcher{holder: holder, debounce: debounce, logger: log.Named("watcher"), fsw: fsw, files: files}, nil
}

func (w *Watcher) relevant(ev fsnotify.Event) bool {
	if _, ok := w.files[filepath.Base(ev.Name)]; !ok {
		return false
	}
	return ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) != 0
}

// Run blocks until ctx is cancelled or the underlying watcher is closed.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.fsw.Close()

	var timer *time.Timer
	var fire <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if !w.relevant(ev) {
				continue
			}
			w.logger.Debug("dataset file changed", logging.String("file", ev.Name), logging.String("op", ev.Op.String()))
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(w.debounce)
			}
			fire = timer.C
		case <-fire:
			fire = nil
			if snap, err := w.holder.Reload(ctx); err != nil {
				w.logger.Error("dataset reload failed", logging.Err(err))
			} else {
				w.logger.Info("dataset reloaded", logging.String("snapshot_id", snap.ID))
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("file watcher error", logging.Err(err))
		}
	}
}

// Close stops watching.  Run returns shortly after.
func (w *Watcher) Close() error {
	return w.fsw.Close()
}

//Personal.AI order the ending
