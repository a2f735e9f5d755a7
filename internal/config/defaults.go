package config

import (
	"time"

	"github.com/spf13/viper"
)

// ─────────────────────────────────────────────────────────────────────────────
// Default value constants
// ─────────────────────────────────────────────────────────────────────────────

const (
	DefaultHTTPHost            = "0.0.0.0"
	DefaultHTTPPort            = 8080
	DefaultHTTPReadTimeout     = 15 * time.Second
	DefaultHTTPWriteTimeout    = 30 * time.Second
	DefaultHTTPIdleTimeout     = 60 * time.Second
	DefaultHTTPRequestTimeout  = 30 * time.Second
	DefaultHTTPShutdownTimeout = 10 * time.Second
	DefaultHTTPMaxBodySize     = 32 << 20

	DefaultDataDir         = "./data"
	DefaultDataDebounce    = 500 * time.Millisecond
	DefaultAnalysisWorkers = 4

	DefaultCacheTTL       = 30 * time.Minute
	DefaultCacheKeyPrefix = "recreation:"
	DefaultRedisAddr      = "localhost:6379"

	DefaultKafkaBroker  = "localhost:9092"
	DefaultKafkaGroupID = "recreation-worker"

	DefaultMinIOEndpoint = "localhost:9000"

	DefaultMetricsPath      = "/metrics"
	DefaultMetricsNamespace = "recreation"

	DefaultWorkerLockTTL = 2 * time.Minute

	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"
)

// ApplyDefaults fills every zero-value field in cfg with the service default.
// Fields that have already been set are left unchanged so that explicit
// configuration always wins.
func ApplyDefaults(cfg *Config) {
	if cfg == nil {
		return
	}

	// ── Server ────────────────────────────────────────────────────────────────
	h := &cfg.Server.HTTP
	if h.Host == "" {
		h.Host = DefaultHTTPHost
	}
	if h.Port == 0 {
		h.Port = DefaultHTTPPort
	}
	if h.ReadTimeout == 0 {
		h.ReadTimeout = DefaultHTTPReadTimeout
	}
	if h.WriteTimeout == 0 {
		h.WriteTimeout = DefaultHTTPWriteTimeout
	}
	if h.IdleTimeout == 0 {
		h.IdleTimeout = DefaultHTTPIdleTimeout
	}
	if h.RequestTimeout == 0 {
		h.RequestTimeout = DefaultHTTPRequestTimeout
	}
	if h.ShutdownTimeout == 0 {
		h.ShutdownTimeout = DefaultHTTPShutdownTimeout
	}
	if h.MaxBodySize == 0 {
		h.MaxBodySize = DefaultHTTPMaxBodySize
	}

	// ── Data / Analysis ───────────────────────────────────────────────────────
	if cfg.Data.Dir == "" {
		cfg.Data.Dir = DefaultDataDir
	}
	if cfg.Data.Debounce == 0 {
		cfg.Data.Debounce = DefaultDataDebounce
	}
	if cfg.Analysis.Workers == 0 {
		cfg.Analysis.Workers = DefaultAnalysisWorkers
	}

	// ── Cache ─────────────────────────────────────────────────────────────────
	if cfg.Cache.TTL == 0 {
		cfg.Cache.TTL = DefaultCacheTTL
	}
	if cfg.Cache.KeyPrefix == "" {
		cfg.Cache.KeyPrefix = DefaultCacheKeyPrefix
	}
	if cfg.Cache.Redis.Addr == "" {
		cfg.Cache.Redis.Addr = DefaultRedisAddr
	}

	// ── Messaging ─────────────────────────────────────────────────────────────
	if len(cfg.Messaging.Producer.Brokers) == 0 {
		cfg.Messaging.Producer.Brokers = []string{DefaultKafkaBroker}
	}
	if len(cfg.Messaging.Consumer.Brokers) == 0 {
		cfg.Messaging.Consumer.Brokers = cfg.Messaging.Producer.Brokers
	}
	if cfg.Messaging.Consumer.GroupID == "" {
		cfg.Messaging.Consumer.GroupID = DefaultKafkaGroupID
	}
	if cfg.Messaging.Consumer.AutoOffsetReset == "" {
		cfg.Messaging.Consumer.AutoOffsetReset = "earliest"
	}

	// ── Storage ───────────────────────────────────────────────────────────────
	if cfg.Storage.MinIO.Endpoint == "" {
		cfg.Storage.MinIO.Endpoint = DefaultMinIOEndpoint
	}

	// ── Monitoring ────────────────────────────────────────────────────────────
	if cfg.Monitoring.Metrics.Path == "" {
		cfg.Monitoring.Metrics.Path = DefaultMetricsPath
	}
	if cfg.Monitoring.Metrics.Collector.Namespace == "" {
		cfg.Monitoring.Metrics.Collector.Namespace = DefaultMetricsNamespace
	}

	// ── Worker ────────────────────────────────────────────────────────────────
	if cfg.Worker.LockTTL == 0 {
		cfg.Worker.LockTTL = DefaultWorkerLockTTL
	}

	// ── Log ───────────────────────────────────────────────────────────────────
	if cfg.Log.Level == "" {
		cfg.Log.Level = DefaultLogLevel
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = DefaultLogFormat
	}
}

// NewDefaultConfig returns a Config with every default applied.  Optional
// integrations are disabled.
func NewDefaultConfig() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	cfg.Monitoring.Metrics.Enabled = true
	return cfg
}

// setViperDefaults registers the keys viper must know about so that
// environment variables can override them without a config file.
func setViperDefaults(v *viper.Viper) {
	d := NewDefaultConfig()
	v.SetDefault("server.http.host", d.Server.HTTP.Host)
	v.SetDefault("server.http.port", d.Server.HTTP.Port)
	v.SetDefault("server.http.read_timeout", d.Server.HTTP.ReadTimeout)
	v.SetDefault("server.http.write_timeout", d.Server.HTTP.WriteTimeout)
	v.SetDefault("server.http.request_timeout", d.Server.HTTP.RequestTimeout)
	v.SetDefault("server.http.shutdown_timeout", d.Server.HTTP.ShutdownTimeout)
	v.SetDefault("data.dir", d.Data.Dir)
	v.SetDefault("data.watch", false)
	v.SetDefault("analysis.workers", d.Analysis.Workers)
	v.SetDefault("cache.enabled", false)
	v.SetDefault("cache.ttl", d.Cache.TTL)
	v.SetDefault("cache.redis.addr", d.Cache.Redis.Addr)
	v.SetDefault("cache.redis.password", "")
	v.SetDefault("messaging.enabled", false)
	v.SetDefault("messaging.producer.brokers", d.Messaging.Producer.Brokers)
	v.SetDefault("messaging.consumer.group_id", d.Messaging.Consumer.GroupID)
	v.SetDefault("storage.enabled", false)
	v.SetDefault("storage.minio.endpoint", d.Storage.MinIO.Endpoint)
	v.SetDefault("storage.minio.access_key_id", "")
	v.SetDefault("storage.minio.secret_access_key", "")
	v.SetDefault("monitoring.metrics.enabled", true)
	v.SetDefault("monitoring.metrics.namespace", d.Monitoring.Metrics.Collector.Namespace)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
}

//Personal.AI order the ending
