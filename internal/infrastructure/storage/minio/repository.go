package minio

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"

	"github.com/turtacn/recreation-potential/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/recreation-potential/pkg/errors"
)

const jsonContentType = "application/json"

var (
	ErrObjectNotFound = errors.New(errors.CodeNotFound, "object not found")
	ErrInvalidRequest = errors.New(errors.ErrCodeValidation, "invalid request")
)

// UploadResult describes a stored object.
type UploadResult struct {
	Bucket     string    `json:"bucket"`
	ObjectKey  string    `json:"object_key"`
	ETag       string    `json:"etag"`
	Size       int64     `json:"size"`
	UploadedAt time.Time `json:"uploaded_at"`
	URL        string    `json:"url,omitempty"`
}

// ObjectInfo is a listed object.
type ObjectInfo struct {
	ObjectKey    string    `json:"object_key"`
	Size         int64     `json:"size"`
	LastModified time.Time `json:"last_modified"`
}

// Repository stores analysis reports and dataset backups.
type Repository struct {
	client *MinIOClient
	logger logging.Logger
	now    func() time.Time
}

func NewRepository(client *MinIOClient, log logging.Logger) *Repository {
	return &Repository{client: client, logger: log, now: time.Now}
}

// ReportKey is the object key of an exported report.
func ReportKey(snapshotID, exportID string) string {
	return fmt.Sprintf("reports/%s/%s.json", snapshotID, exportID)
}

// BackupKey is the object key of a dataset backup taken at t.
func BackupKey(kind string, t time.Time) string {
	return fmt.Sprintf("datasets/%s/%s.json", kind, t.UTC().Format("20060102T150405.000Z"))
}

// PutReport uploads a JSON report for snapshotID under a fresh export id and
// returns its location with a presigned download URL when one can be issued.
func (r *Repository) PutReport(ctx context.Context, snapshotID string, data []byte) (*UploadResult, error) {
	if snapshotID == "" || len(data) == 0 {
		return nil, ErrInvalidRequest.WithDetail("snapshot id and report body are required")
	}
	bucket := r.client.config.Buckets.Reports
	key := ReportKey(snapshotID, uuid.NewString())
	res, err := r.put(ctx, bucket, key, data, map[string]string{"snapshot-id": snapshotID})
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeExportFailed, "failed to store report").WithDetail(key)
	}
	if u, err := r.client.PresignedGetURL(ctx, bucket, key); err == nil {
		res.URL = u
	} else {
		r.logger.Warn("report stored without download url", logging.String("key", key), logging.Err(err))
	}
	r.logger.Info("report exported", logging.String("bucket", bucket), logging.String("key", key), logging.Int64("size", res.Size))
	return res, nil
}

// BackupDataset stores the previous content of a dataset file before it is
// replaced.
func (r *Repository) BackupDataset(ctx context.Context, kind string, data []byte) (*UploadResult, error) {
	if kind == "" || len(data) == 0 {
		return nil, ErrInvalidRequest.WithDetail("dataset kind and content are required")
	}
	key := BackupKey(kind, r.now())
	res, err := r.put(ctx, r.client.config.Buckets.Backups, key, data, map[string]string{"dataset": kind})
	if err != nil {
		return nil, err
	}
	r.logger.Info("dataset backed up", logging.String("dataset", kind), logging.String("key", key))
	return res, nil
}

// ListBackups returns the backups of kind, newest first.
func (r *Repository) ListBackups(ctx context.Context, kind string) ([]ObjectInfo, error) {
	opts := minio.ListObjectsOptions{Prefix: "datasets/" + kind + "/", Recursive: true}
	var out []ObjectInfo
	for obj := range r.client.client.ListObjects(ctx, r.client.config.Buckets.Backups, opts) {
		if obj.Err != nil {
			return nil, errors.Wrap(obj.Err, errors.CodeStorageError, "failed to list backups").WithDetail(kind)
		}
		out = append(out, ObjectInfo{ObjectKey: obj.Key, Size: obj.Size, LastModified: obj.LastModified})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ObjectKey > out[j].ObjectKey })
	return out, nil
}

// Exists reports whether an object is present.
func (r *Repository) Exists(ctx context.Context, bucket, objectKey string) (bool, error) {
	_, err := r.client.client.StatObject(ctx, bucket, objectKey, minio.StatObjectOptions{})
	if err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return false, nil
		}
		return false, errors.Wrap(err, errors.CodeStorageError, "failed to stat object").WithDetail(objectKey)
	}
	return true, nil
}

func (r *Repository) put(ctx context.Context, bucket, key string, data []byte, meta map[string]string) (*UploadResult, error) {
	opts := minio.PutObjectOptions{ContentType: jsonContentType, UserMetadata: meta}
	info, err := r.client.client.PutObject(ctx, bucket, key, bytes.NewReader(data), int64(len(data)), opts)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeStorageError, "upload failed").WithDetail(bucket + "/" + key)
	}
	return &UploadResult{
		Bucket:     bucket,
		ObjectKey:  key,
		ETag:       info.ETag,
		Size:       info.Size,
		UploadedAt: r.now().UTC(),
	}, nil
}

//Personal.AI order the ending
