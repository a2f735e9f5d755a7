// Package config defines all configuration structures for the recreation
// potential service.  No I/O or parsing logic lives here, only plain data
// types and validation.
package config

import (
	"fmt"
	"time"

	"github.com/turtacn/recreation-potential/internal/infrastructure/database/redis"
	"github.com/turtacn/recreation-potential/internal/infrastructure/messaging/kafka"
	"github.com/turtacn/recreation-potential/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/recreation-potential/internal/infrastructure/monitoring/prometheus"
	"github.com/turtacn/recreation-potential/internal/infrastructure/storage/minio"
)

// Build metadata, injected with -ldflags "-X .../internal/config.Version=...".
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// ─────────────────────────────────────────────────────────────────────────────
// Sub-configuration structs
// ─────────────────────────────────────────────────────────────────────────────

// HTTPConfig holds HTTP server tunables.
type HTTPConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout"`
	RequestTimeout  time.Duration `mapstructure:"request_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	MaxBodySize     int64         `mapstructure:"max_body_size"`
	CORSOrigins     []string      `mapstructure:"cors_origins"`
}

// Addr returns host:port.
func (h HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", h.Host, h.Port)
}

type ServerConfig struct {
	HTTP HTTPConfig `mapstructure:"http"`
}

// DataConfig locates the dataset files.
type DataConfig struct {
	Dir      string        `mapstructure:"dir"`
	Watch    bool          `mapstructure:"watch"`
	Debounce time.Duration `mapstructure:"debounce"`
}

// AnalysisConfig tunes the analysis service.
type AnalysisConfig struct {
	Workers int `mapstructure:"workers"`
}

// CacheConfig enables the redis analysis cache.
type CacheConfig struct {
	Enabled   bool              `mapstructure:"enabled"`
	TTL       time.Duration     `mapstructure:"ttl"`
	KeyPrefix string            `mapstructure:"key_prefix"`
	Redis     redis.RedisConfig `mapstructure:"redis"`
}

// MessagingConfig enables kafka event publication and consumption.
type MessagingConfig struct {
	Enabled          bool                 `mapstructure:"enabled"`
	AutoCreateTopics bool                 `mapstructure:"auto_create_topics"`
	Producer         kafka.ProducerConfig `mapstructure:"producer"`
	Consumer         kafka.ConsumerConfig `mapstructure:"consumer"`
}

// StorageConfig enables report export and dataset backups.
type StorageConfig struct {
	Enabled bool              `mapstructure:"enabled"`
	MinIO   minio.MinIOConfig `mapstructure:"minio"`
}

// MetricsConfig holds Prometheus exposition parameters.
type MetricsConfig struct {
	Enabled   bool                       `mapstructure:"enabled"`
	Path      string                     `mapstructure:"path"`
	Collector prometheus.CollectorConfig `mapstructure:",squash"`
}

type MonitoringConfig struct {
	Metrics MetricsConfig `mapstructure:"metrics"`
}

// WorkerConfig tunes cmd/worker.
type WorkerConfig struct {
	LockTTL       time.Duration `mapstructure:"lock_ttl"`
	ExportReports bool          `mapstructure:"export_reports"`
}

// ─────────────────────────────────────────────────────────────────────────────
// Root Config
// ─────────────────────────────────────────────────────────────────────────────

// Config is the root configuration structure.  Every component reads its
// settings from the relevant sub-struct.
type Config struct {
	Server     ServerConfig      `mapstructure:"server"`
	Data       DataConfig        `mapstructure:"data"`
	Analysis   AnalysisConfig    `mapstructure:"analysis"`
	Cache      CacheConfig       `mapstructure:"cache"`
	Messaging  MessagingConfig   `mapstructure:"messaging"`
	Storage    StorageConfig     `mapstructure:"storage"`
	Monitoring MonitoringConfig  `mapstructure:"monitoring"`
	Worker     WorkerConfig      `mapstructure:"worker"`
	Log        logging.LogConfig `mapstructure:"log"`
}

// ─────────────────────────────────────────────────────────────────────────────
// Validation
// ─────────────────────────────────────────────────────────────────────────────

// Validate performs semantic validation of a fully-populated Config and
// returns the first problem found.  Sections that are disabled are not
// checked.
func (c *Config) Validate() error {
	if c.Server.HTTP.Port < 1 || c.Server.HTTP.Port > 65535 {
		return fmt.Errorf("server.http.port %d is out of range [1, 65535]", c.Server.HTTP.Port)
	}
	if c.Server.HTTP.MaxBodySize < 0 {
		return fmt.Errorf("server.http.max_body_size must be non-negative, got %d", c.Server.HTTP.MaxBodySize)
	}

	if c.Data.Dir == "" {
		return fmt.Errorf("data.dir is required")
	}
	if c.Analysis.Workers < 1 {
		return fmt.Errorf("analysis.workers must be at least 1, got %d", c.Analysis.Workers)
	}

	if c.Cache.Enabled {
		if c.Cache.Redis.Addr == "" && len(c.Cache.Redis.ClusterAddrs) == 0 && len(c.Cache.Redis.SentinelAddrs) == 0 {
			return fmt.Errorf("cache.redis.addr is required when the cache is enabled")
		}
		if c.Cache.Redis.DB < 0 {
			return fmt.Errorf("cache.redis.db must be non-negative, got %d", c.Cache.Redis.DB)
		}
	}

	if c.Messaging.Enabled {
		if err := kafka.ValidateProducerConfig(c.Messaging.Producer); err != nil {
			return fmt.Errorf("messaging.producer: %w", err)
		}
		if err := kafka.ValidateConsumerConfig(c.Messaging.Consumer); err != nil {
			return fmt.Errorf("messaging.consumer: %w", err)
		}
	}

	if c.Storage.Enabled {
		if c.Storage.MinIO.Endpoint == "" {
			return fmt.Errorf("storage.minio.endpoint is required when storage is enabled")
		}
		if c.Storage.MinIO.AccessKeyID == "" || c.Storage.MinIO.SecretAccessKey == "" {
			return fmt.Errorf("storage.minio credentials are required when storage is enabled")
		}
	}

	if c.Monitoring.Metrics.Enabled && c.Monitoring.Metrics.Collector.Namespace == "" {
		return fmt.Errorf("monitoring.metrics.namespace is required when metrics are enabled")
	}

	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level %q is invalid; expected debug|info|warn|error", c.Log.Level)
	}
	switch c.Log.Format {
	case "json", "console":
	default:
		return fmt.Errorf("log.format %q is invalid; expected json|console", c.Log.Format)
	}

	return nil
}

//Personal.AI order the ending
