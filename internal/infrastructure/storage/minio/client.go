// Package minio stores exported reports and dataset backups in S3-compatible
// object storage through minio-go.
package minio

import (
	"context"
	"io"
	"net/url"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/minio/minio-go/v7/pkg/lifecycle"

	"github.com/turtacn/recreation-potential/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/recreation-potential/pkg/errors"
)

// MinIOAPI is the subset of *minio.Client the package uses.
type MinIOAPI interface {
	ListBuckets(ctx context.Context) ([]minio.BucketInfo, error)
	BucketExists(ctx context.Context, bucketName string) (bool, error)
	MakeBucket(ctx context.Context, bucketName string, opts minio.MakeBucketOptions) error
	SetBucketLifecycle(ctx context.Context, bucketName string, config *lifecycle.Configuration) error
	ListObjects(ctx context.Context, bucketName string, opts minio.ListObjectsOptions) <-chan minio.ObjectInfo
	PresignedGetObject(ctx context.Context, bucketName, objectName string, expiry time.Duration, reqParams url.Values) (*url.URL, error)
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
	StatObject(ctx context.Context, bucketName, objectName string, opts minio.StatObjectOptions) (minio.ObjectInfo, error)
}

type BucketConfig struct {
	Reports string `mapstructure:"reports"`
	Backups string `mapstructure:"backups"`
}

type MinIOConfig struct {
	Endpoint            string        `mapstructure:"endpoint"`
	AccessKeyID         string        `mapstructure:"access_key_id"`
	SecretAccessKey     string        `mapstructure:"secret_access_key"`
	UseSSL              bool          `mapstructure:"use_ssl"`
	Region              string        `mapstructure:"region"`
	Buckets             BucketConfig  `mapstructure:"buckets"`
	PresignExpiry       time.Duration `mapstructure:"presign_expiry"`
	ReportRetentionDays int           `mapstructure:"report_retention_days"`
}

type MinIOClient struct {
	client MinIOAPI
	config *MinIOConfig
	logger logging.Logger
}

// NewMinIOClient connects, creates missing buckets and installs the report
// expiry rule.
func NewMinIOClient(cfg *MinIOConfig, log logging.Logger) (*MinIOClient, error) {
	applyDefaults(cfg)

	api, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeStorageError, "failed to create minio client")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if _, err := api.ListBuckets(ctx); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeServiceUnavailable, "failed to connect to minio").WithDetail(cfg.Endpoint)
	}

	c := NewClientWithAPI(api, cfg, log)
	if err := c.EnsureBuckets(ctx); err != nil {
		return nil, err
	}
	c.SetupLifecycleRules(ctx)

	log.Info("minio client connected", logging.String("endpoint", cfg.Endpoint), logging.Bool("ssl", cfg.UseSSL))
	return c, nil
}

// NewClientWithAPI wraps an existing API implementation.
func NewClientWithAPI(api MinIOAPI, cfg *MinIOConfig, log logging.Logger) *MinIOClient {
	applyDefaults(cfg)
	return &MinIOClient{client: api, config: cfg, logger: log}
}

func applyDefaults(cfg *MinIOConfig) {
	if cfg.Region == "" {
		cfg.Region = "us-east-1"
	}
	if cfg.Buckets.Reports == "" {
		cfg.Buckets.Reports = "recreation-reports"
	}
	if cfg.Buckets.Backups == "" {
		cfg.Buckets.Backups = "recreation-datasets"
	}
	if cfg.PresignExpiry == 0 {
		cfg.PresignExpiry = time.Hour
	}
	if cfg.ReportRetentionDays == 0 {
		cfg.ReportRetentionDays = 90
	}
}

func (c *MinIOClient) EnsureBuckets(ctx context.Context) error {
	for _, bucket := range []string{c.config.Buckets.Reports, c.config.Buckets.Backups} {
		exists, err := c.client.BucketExists(ctx, bucket)
		if err != nil {
			return errors.Wrap(err, errors.CodeStorageError, "failed to check bucket existence").WithDetail(bucket)
		}
		if exists {
			continue
		}
		if err := c.client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{Region: c.config.Region}); err != nil {
			return errors.Wrap(err, errors.CodeStorageError, "failed to create bucket").WithDetail(bucket)
		}
		c.logger.Info("created bucket", logging.String("bucket", bucket))
	}
	return nil
}

// SetupLifecycleRules expires exported reports.  Dataset backups are kept.
// Failures are logged only; some S3 implementations reject lifecycle calls.
func (c *MinIOClient) SetupLifecycleRules(ctx context.Context) {
	cfg := lifecycle.NewConfiguration()
	cfg.Rules = []lifecycle.Rule{{
		ID:     "reports-expiry",
		Status: "Enabled",
		Expiration: lifecycle.Expiration{
			Days: lifecycle.ExpirationDays(c.config.ReportRetentionDays),
		},
	}}
	if err := c.client.SetBucketLifecycle(ctx, c.config.Buckets.Reports, cfg); err != nil {
		c.logger.Warn("failed to set lifecycle for reports bucket", logging.Err(err))
	}
}

// HealthStatus reports reachability and bucket presence.
type HealthStatus struct {
	Healthy bool            `json:"healthy"`
	Latency time.Duration   `json:"latency"`
	Buckets map[string]bool `json:"buckets"`
	Error   string          `json:"error,omitempty"`
}

func (c *MinIOClient) HealthCheck(ctx context.Context) *HealthStatus {
	start := time.Now()
	_, err := c.client.ListBuckets(ctx)
	status := &HealthStatus{Healthy: err == nil, Latency: time.Since(start), Buckets: map[string]bool{}}
	if err != nil {
		status.Error = err.Error()
		return status
	}
	for _, b := range []string{c.config.Buckets.Reports, c.config.Buckets.Backups} {
		exists, _ := c.client.BucketExists(ctx, b)
		status.Buckets[b] = exists
		if !exists {
			status.Healthy = false
			status.Error = "bucket " + b + " missing"
		}
	}
	return status
}

func (c *MinIOClient) PresignedGetURL(ctx context.Context, bucket, objectKey string) (string, error) {
	u, err := c.client.PresignedGetObject(ctx, bucket, objectKey, c.config.PresignExpiry, nil)
	if err != nil {
		return "", errors.Wrap(err, errors.CodeStorageError, "failed to presign object").WithDetail(objectKey)
	}
	return u.String(), nil
}

//Personal.AI order the ending
