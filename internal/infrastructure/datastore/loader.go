// Package datastore loads the recreation datasets from a data directory,
// keeps the active dataset.Snapshot behind an atomic pointer and reloads it
// when files change on disk or a replacement dataset is imported.
package datastore

import (
	"context"
	"crypto/sha256"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/turtacn/recreation-potential/internal/domain/dataset"
	"github.com/turtacn/recreation-potential/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/recreation-potential/pkg/errors"
)

// snapshotNamespace scopes content-derived snapshot ids.
var snapshotNamespace = uuid.MustParse("6f1c2a8e-4d0b-5e7a-9c3f-2b8d1e6a4f70")

// Loader reads every dataset file from a single directory.
type Loader struct {
	dir    string
	logger logging.Logger
}

func NewLoader(dir string, log logging.Logger) *Loader {
	if log == nil {
		log = logging.NewNopLogger()
	}
	return &Loader{dir: dir, logger: log.Named("datastore")}
}

// Dir returns the data directory.
func (l *Loader) Dir() string { return l.dir }

// Path returns the file path of a dataset inside the data directory.
func (l *Loader) Path(kind dataset.Kind) string {
	return filepath.Join(l.dir, kind.FileName())
}

// ReadRaw returns the file content of a dataset as stored on disk.
func (l *Loader) ReadRaw(kind dataset.Kind) ([]byte, error) {
	path := l.Path(kind)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New(errors.CodeNotFound, "dataset file not found").WithDetail(path)
		}
		return nil, errors.Wrap(err, errors.CodeInternal, "failed to read dataset file").WithDetail(path)
	}
	return data, nil
}

// Load decodes and validates every dataset file and indexes them into a new
// Snapshot.  A missing optional dataset is logged and treated as empty; a
// missing population file fails the load.
//
// The snapshot id is a name-based UUID over the loaded file contents, so
// every process reading the same files agrees on it and cache entries keyed
// by it stay valid across reloads of unchanged data.
func (l *Loader) Load(ctx context.Context) (*dataset.Snapshot, error) {
	start := time.Now()
	var bundle dataset.Bundle
	digest := sha256.New()
	for _, kind := range dataset.AllKinds {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		data, err := l.ReadRaw(kind)
		if err != nil {
			if errors.IsCode(err, errors.CodeNotFound) && !kind.Required() {
				l.logger.Warn("optional dataset missing, using empty collection",
					logging.String("dataset", kind.String()), logging.String("path", l.Path(kind)))
				continue
			}
			if errors.IsCode(err, errors.CodeNotFound) {
				return nil, errors.NotLoaded().WithDetail(l.Path(kind)).WithCause(err)
			}
			return nil, err
		}
		if err := bundle.Apply(kind, data); err != nil {
			l.logger.Error("dataset rejected", logging.String("dataset", kind.String()), logging.Err(err))
			return nil, err
		}
		digest.Write([]byte(kind))
		digest.Write(data)
	}

	snap, err := dataset.NewSnapshot(bundle, l.dir)
	if err != nil {
		return nil, err
	}
	snap.ID = uuid.NewSHA1(snapshotNamespace, digest.Sum(nil)).String()
	counts := snap.Counts()
	l.logger.Info("datasets loaded",
		logging.String("snapshot_id", snap.ID),
		logging.Int("regions", counts.Regions),
		logging.Int("recreational_points", counts.RecreationalPoints),
		logging.Int("fires", counts.Fires),
		logging.Duration("elapsed", time.Since(start)))
	return snap, nil
}

//Personal.AI order the ending
