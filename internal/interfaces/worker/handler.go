// Package worker turns snapshot events into precomputed analyses.  A worker
// reloads its own view of the datasets, recomputes every region analysis and
// the zone ranking (filling the shared cache) and optionally exports the
// report.
package worker

import (
	"context"
	"time"

	"github.com/turtacn/recreation-potential/internal/application/analysis"
	"github.com/turtacn/recreation-potential/internal/domain/dataset"
	"github.com/turtacn/recreation-potential/internal/infrastructure/messaging/kafka"
	"github.com/turtacn/recreation-potential/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/recreation-potential/pkg/errors"
)

// Snapshots is the dataset holder of the worker.
type Snapshots interface {
	Current() (*dataset.Snapshot, error)
	Reload(ctx context.Context) (*dataset.Snapshot, error)
}

// Locker serialises recomputation of one snapshot across worker replicas.
type Locker interface {
	TryLock(ctx context.Context) (bool, error)
	Unlock(ctx context.Context) error
}

// LockFactory returns the lock guarding name.
type LockFactory func(name string) Locker

// Config tunes the handler.
type Config struct {
	// Export uploads the report after recomputation.
	Export bool

	// Timeout bounds one recomputation.  Zero means no bound beyond the
	// consumer context.
	Timeout time.Duration
}

// SnapshotHandler handles recreation.snapshot.reloaded events.
type SnapshotHandler struct {
	svc       analysis.Service
	snapshots Snapshots
	locks     LockFactory
	cfg       Config
	logger    logging.Logger
}

// NewSnapshotHandler wires a handler.  locks may be nil, in which case every
// replica recomputes independently.
func NewSnapshotHandler(svc analysis.Service, snapshots Snapshots, locks LockFactory, cfg Config, logger logging.Logger) *SnapshotHandler {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &SnapshotHandler{
		svc:       svc,
		snapshots: snapshots,
		locks:     locks,
		cfg:       cfg,
		logger:    logger.Named("worker"),
	}
}

// Handle is a kafka.MessageHandler.  Malformed events are rejected so
// the consumer dead-letters them; a lost lock race is not an error.
func (h *SnapshotHandler) Handle(ctx context.Context, msg *kafka.Message) error {
	env, err := kafka.MessageToEventEnvelope(msg)
	if err != nil {
		return err
	}
	var payload kafka.SnapshotReloadedPayload
	if err := env.DecodePayload(&payload); err != nil {
		return err
	}
	if payload.SnapshotID == "" {
		return errors.New(errors.ErrCodeValidation, "snapshot event without snapshot id").WithDetail(env.EventID)
	}

	log := h.logger.With(logging.String("snapshot_id", payload.SnapshotID), logging.String("event_id", env.EventID))

	snapID, err := h.sync(ctx, payload.SnapshotID, log)
	if err != nil {
		return err
	}

	if h.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.cfg.Timeout)
		defer cancel()
	}

	if h.locks != nil {
		lock := h.locks("recompute:" + snapID)
		ok, err := lock.TryLock(ctx)
		if err != nil {
			return err
		}
		if !ok {
			log.Info("recompute already running on another worker")
			return nil
		}
		defer func() {
			if err := lock.Unlock(context.Background()); err != nil {
				log.Warn("failed to release recompute lock", logging.Err(err))
			}
		}()
	}

	start := time.Now()
	res, err := h.svc.Recompute(ctx, h.cfg.Export)
	if err != nil {
		log.Error("recompute failed", logging.Err(err))
		return err
	}
	fields := []logging.Field{
		logging.Int("regions", res.Regions),
		logging.Int("zones", res.Zones),
		logging.Duration("duration", time.Since(start)),
	}
	if res.Export != nil {
		fields = append(fields, logging.String("report_key", res.Export.ObjectKey))
	}
	log.Info("snapshot recomputed", fields...)
	return nil
}

// sync brings the local snapshot in line with the announced one and returns
// the id that will be recomputed.
func (h *SnapshotHandler) sync(ctx context.Context, want string, log logging.Logger) (string, error) {
	if cur, err := h.snapshots.Current(); err == nil && cur.ID == want {
		return cur.ID, nil
	}
	snap, err := h.snapshots.Reload(ctx)
	if err != nil {
		log.Error("dataset reload failed", logging.Err(err))
		return "", err
	}
	if snap.ID != want {
		// a newer reload is already on its way and will trigger its own event
		log.Warn("local datasets differ from the announced snapshot", logging.String("local_snapshot_id", snap.ID))
	}
	return snap.ID, nil
}

//Personal.AI order the ending
