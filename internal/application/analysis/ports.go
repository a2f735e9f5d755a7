package analysis

import (
	"context"
	"time"

	"github.com/turtacn/recreation-potential/internal/domain/dataset"
	"github.com/turtacn/recreation-potential/internal/infrastructure/datastore"
	"github.com/turtacn/recreation-potential/internal/infrastructure/storage/minio"
)

// SnapshotSource yields the active dataset snapshot.
type SnapshotSource interface {
	Current() (*dataset.Snapshot, error)
}

// RawDatasetReader returns dataset files as stored.
type RawDatasetReader interface {
	ReadRaw(kind dataset.Kind) ([]byte, error)
}

// Cache is the subset of the redis cache the service uses.
type Cache interface {
	GetOrSet(ctx context.Context, key string, dest interface{}, ttl time.Duration, loader func(ctx context.Context) (interface{}, error)) error
}

// EventPublisher publishes domain events.
type EventPublisher interface {
	PublishEvent(ctx context.Context, topic, key string, payload interface{}) error
}

// ReportStore persists exported reports.
type ReportStore interface {
	PutReport(ctx context.Context, snapshotID string, data []byte) (*minio.UploadResult, error)
}

// DatasetImporter replaces a dataset file and reloads the snapshot.
type DatasetImporter interface {
	Import(ctx context.Context, kind dataset.Kind, data []byte) (*datastore.ImportResult, error)
}

//Personal.AI order the ending
