package datastore

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/turtacn/recreation-potential/internal/domain/dataset"
	"github.com/turtacn/recreation-potential/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/recreation-potential/pkg/errors"
)

// ReloadHook is invoked after every reload attempt.  snap is nil when the
// attempt failed.
type ReloadHook func(ctx context.Context, snap *dataset.Snapshot, err error)

// Holder publishes the active snapshot.  Readers never block; reloads are
// serialized and a failed reload keeps the previous snapshot.
type Holder struct {
	current atomic.Pointer[dataset.Snapshot]
	loader  *Loader
	logger  logging.Logger

	mu    sync.Mutex
	hooks []ReloadHook
}

func NewHolder(loader *Loader, log logging.Logger) *Holder {
	if log == nil {
		log = logging.NewNopLogger()
	}
	return &Holder{loader: loader, logger: log.Named("holder")}
}

// Loader returns the loader backing the holder.
func (h *Holder) Loader() *Loader { return h.loader }

// Current returns the active snapshot or ErrCodeDatasetNotLoaded.
func (h *Holder) Current() (*dataset.Snapshot, error) {
	s := h.current.Load()
	if s == nil {
		return nil, errors.NotLoaded()
	}
	return s, nil
}

// Loaded reports whether a snapshot is available.
func (h *Holder) Loaded() bool { return h.current.Load() != nil }

// Store replaces the active snapshot without reading the data directory.
func (h *Holder) Store(s *dataset.Snapshot) {
	h.current.Store(s)
}

// OnReload registers a hook run after each reload attempt.
func (h *Holder) OnReload(hook ReloadHook) {
	h.mu.Lock()
	h.hooks = append(h.hooks, hook)
	h.mu.Unlock()
}

// Reload loads a fresh snapshot and swaps it in.
func (h *Holder) Reload(ctx context.Context) (*dataset.Snapshot, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	snap, err := h.loader.Load(ctx)
	if err != nil {
		if prev := h.current.Load(); prev != nil {
			h.logger.Warn("reload failed, keeping previous snapshot",
				logging.String("snapshot_id", prev.ID), logging.Err(err))
		}
		h.notify(ctx, nil, err)
		return nil, err
	}
	h.current.Store(snap)
	h.notify(ctx, snap, nil)
	return snap, nil
}

func (h *Holder) notify(ctx context.Context, snap *dataset.Snapshot, err error) {
	for _, hook := range h.hooks {
		hook(ctx, snap, err)
	}
}

//Personal.AI order the ending
