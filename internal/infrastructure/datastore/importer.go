package datastore

import (
	"context"
	"os"
	"path/filepath"
	"sync"

	"github.com/turtacn/recreation-potential/internal/domain/dataset"
	"github.com/turtacn/recreation-potential/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/recreation-potential/internal/infrastructure/storage/minio"
	"github.com/turtacn/recreation-potential/pkg/errors"
)

// Backuper stores the previous version of a dataset before it is replaced.
type Backuper interface {
	BackupDataset(ctx context.Context, kind string, data []byte) (*minio.UploadResult, error)
}

// ImportResult describes a completed dataset replacement.
type ImportResult struct {
	Dataset    string         `json:"dataset"`
	File       string         `json:"file"`
	BackupKey  string         `json:"backup_key,omitempty"`
	SnapshotID string         `json:"snapshot_id"`
	Counts     dataset.Counts `json:"counts"`
}

// Importer replaces dataset files in the data directory.  Imports run one at
// a time: the file read for backup, the write and the reload form a single
// step, and every reload validates all datasets.
type Importer struct {
	mu     sync.Mutex
	holder *Holder
	backup Backuper
	logger logging.Logger
}

// NewImporter creates an Importer.  backup may be nil, in which case the
// previous file is overwritten without a copy.
func NewImporter(holder *Holder, backup Backuper, log logging.Logger) *Importer {
	if log == nil {
		log = logging.NewNopLogger()
	}
	return &Importer{holder: holder, backup: backup, logger: log.Named("importer")}
}

// Import validates data as the given dataset, backs up the current file,
// writes the replacement and reloads the snapshot.  When the reload fails
// the previous file is restored.
func (im *Importer) Import(ctx context.Context, kind dataset.Kind, data []byte) (*ImportResult, error) {
	var probe dataset.Bundle
	if err := probe.Apply(kind, data); err != nil {
		return nil, err
	}

	im.mu.Lock()
	defer im.mu.Unlock()

	loader := im.holder.Loader()
	path := loader.Path(kind)
	result := &ImportResult{Dataset: kind.String(), File: path}

	previous, err := loader.ReadRaw(kind)
	if err != nil && !errors.IsCode(err, errors.CodeNotFound) {
		return nil, err
	}
	if previous != nil && im.backup != nil {
		up, err := im.backup.BackupDataset(ctx, kind.String(), previous)
		if err != nil {
			return nil, errors.Wrap(err, errors.CodeStorageError, "dataset backup failed").WithDetail(kind.String())
		}
		result.BackupKey = up.ObjectKey
	}

	if err := writeFileAtomic(path, data); err != nil {
		return nil, err
	}

	snap, err := im.holder.Reload(ctx)
	if err != nil {
		if previous != nil {
			if rerr := writeFileAtomic(path, previous); rerr != nil {
				im.logger.Error("failed to restore dataset after rejected import",
					logging.String("path", path), logging.Err(rerr))
			}
		} else {
			_ = os.Remove(path)
		}
		return nil, err
	}

	result.SnapshotID = snap.ID
	result.Counts = snap.Counts()
	im.logger.Info("dataset imported",
		logging.String("dataset", kind.String()),
		logging.String("snapshot_id", snap.ID),
		logging.String("backup_key", result.BackupKey))
	return result, nil
}

func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".import-*")
	if err != nil {
		return errors.Wrap(err, errors.CodeInternal, "failed to create temp file").WithDetail(path)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return errors.Wrap(err, errors.CodeInternal, "failed to write dataset").WithDetail(path)
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrap(err, errors.CodeInternal, "failed to write dataset").WithDetail(path)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return errors.Wrap(err, errors.CodeInternal, "failed to replace dataset").WithDetail(path)
	}
	return nil
}

//Personal.AI order the ending
