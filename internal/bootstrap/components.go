// Package bootstrap builds the runtime components shared by the API
// server, the worker and the CLI from a loaded configuration.
package bootstrap

import (
	"context"
	"fmt"

	"github.com/turtacn/recreation-potential/internal/application/analysis"
	"github.com/turtacn/recreation-potential/internal/config"
	"github.com/turtacn/recreation-potential/internal/infrastructure/database/redis"
	"github.com/turtacn/recreation-potential/internal/infrastructure/datastore"
	"github.com/turtacn/recreation-potential/internal/infrastructure/messaging/kafka"
	"github.com/turtacn/recreation-potential/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/recreation-potential/internal/infrastructure/monitoring/prometheus"
	"github.com/turtacn/recreation-potential/internal/infrastructure/storage/minio"
	"github.com/turtacn/recreation-potential/internal/interfaces/http/handlers"
)

// Options select which parts of the configuration are honoured.
type Options struct {
	// External connects the clients enabled in the configuration (redis,
	// kafka, minio).  Offline CLI commands leave it false.
	External bool

	// RequireData fails New when the initial dataset load fails.  Servers
	// start anyway and report not-ready until a reload succeeds.
	RequireData bool

	// Watch starts the dataset watcher when data.watch is set.
	Watch bool

	// QuietReloads stops reloads from being announced on the event topic.
	QuietReloads bool
}

// Components holds every constructed component.  Optional clients are nil
// when disabled.
type Components struct {
	Config  *config.Config
	Logger  logging.Logger
	Metrics *prometheus.AppMetrics

	// Collector is nil when metrics are disabled.
	Collector prometheus.MetricsCollector

	Loader   *datastore.Loader
	Holder   *datastore.Holder
	Importer *datastore.Importer
	Watcher  *datastore.Watcher

	Redis    *redis.Client
	Cache    redis.Cache
	Producer *kafka.Producer
	MinIO    *minio.MinIOClient
	Reports  *minio.Repository

	Service analysis.Service
}

// New builds the components described by cfg.  On error every component
// created so far is closed.
func New(ctx context.Context, cfg *config.Config, log logging.Logger, opts Options) (c *Components, err error) {
	if log == nil {
		log = logging.NewNopLogger()
	}
	c = &Components{Config: cfg, Logger: log, Metrics: prometheus.NewNopAppMetrics()}
	defer func() {
		if err != nil {
			c.Close()
			c = nil
		}
	}()

	if cfg.Monitoring.Metrics.Enabled {
		collector, cerr := prometheus.NewMetricsCollector(cfg.Monitoring.Metrics.Collector, log)
		if cerr != nil {
			return nil, fmt.Errorf("metrics: %w", cerr)
		}
		c.Collector = collector
		c.Metrics = prometheus.NewAppMetrics(collector)
	}

	c.Loader = datastore.NewLoader(cfg.Data.Dir, log)
	c.Holder = datastore.NewHolder(c.Loader, log)

	if opts.External {
		if err = c.connect(ctx); err != nil {
			return nil, err
		}
	}

	var backup datastore.Backuper
	if c.Reports != nil {
		backup = c.Reports
	}
	c.Importer = datastore.NewImporter(c.Holder, backup, log)

	deps := analysis.Deps{
		Snapshots: c.Holder,
		Raw:       c.Loader,
		Importer:  c.Importer,
		Metrics:   c.Metrics,
		Logger:    log,
	}
	if c.Cache != nil {
		deps.Cache = c.Cache
	}
	if c.Producer != nil {
		deps.Events = c.Producer
	}
	if c.Reports != nil {
		deps.Reports = c.Reports
	}
	c.Service, err = analysis.NewService(analysis.Config{
		Workers:      cfg.Analysis.Workers,
		CacheTTL:     cfg.Cache.TTL,
		QuietReloads: opts.QuietReloads,
	}, deps)
	if err != nil {
		return nil, err
	}
	c.Holder.OnReload(c.Service.SnapshotReloaded)

	if _, lerr := c.Holder.Reload(ctx); lerr != nil {
		if opts.RequireData {
			return nil, lerr
		}
		log.Warn("initial dataset load failed, serving not-ready", logging.Err(lerr))
	}

	if opts.Watch && cfg.Data.Watch {
		c.Watcher, err = datastore.NewWatcher(c.Holder, cfg.Data.Debounce, log)
		if err != nil {
			return nil, fmt.Errorf("dataset watcher: %w", err)
		}
	}
	return c, nil
}

func (c *Components) connect(ctx context.Context) error {
	cfg, log := c.Config, c.Logger

	if cfg.Cache.Enabled {
		client, err := redis.NewClient(&cfg.Cache.Redis, log)
		if err != nil {
			return fmt.Errorf("redis: %w", err)
		}
		c.Redis = client
		c.Cache = redis.NewRedisCache(client, log,
			redis.WithPrefix(cfg.Cache.KeyPrefix),
			redis.WithDefaultTTL(cfg.Cache.TTL),
			redis.WithObserver(func(hit bool) {
				prometheus.RecordCacheAccess(c.Metrics, "analysis", hit)
			}))
	}

	if cfg.Messaging.Enabled {
		if cfg.Messaging.AutoCreateTopics {
			tm, err := kafka.NewTopicManager(cfg.Messaging.Producer.Brokers, log)
			if err != nil {
				return fmt.Errorf("kafka topics: %w", err)
			}
			err = tm.EnsureTopics(ctx, kafka.DefaultTopics())
			_ = tm.Close()
			if err != nil {
				return fmt.Errorf("kafka topics: %w", err)
			}
		}
		producer, err := kafka.NewProducer(cfg.Messaging.Producer, log)
		if err != nil {
			return fmt.Errorf("kafka producer: %w", err)
		}
		c.Producer = producer
	}

	if cfg.Storage.Enabled {
		client, err := minio.NewMinIOClient(&cfg.Storage.MinIO, log)
		if err != nil {
			return fmt.Errorf("minio: %w", err)
		}
		if err := client.EnsureBuckets(ctx); err != nil {
			return fmt.Errorf("minio buckets: %w", err)
		}
		client.SetupLifecycleRules(ctx)
		c.MinIO = client
		c.Reports = minio.NewRepository(client, log)
	}
	return nil
}

// HealthCheckers returns the readiness checks of the enabled components.
func (c *Components) HealthCheckers() []handlers.HealthChecker {
	checks := []handlers.HealthChecker{
		handlers.NewCheck("datasets", func(context.Context) error {
			_, err := c.Holder.Current()
			return err
		}),
	}
	if c.Redis != nil {
		checks = append(checks, handlers.NewCheck("redis", c.Redis.Ping))
	}
	if c.MinIO != nil {
		checks = append(checks, handlers.NewCheck("minio", func(ctx context.Context) error {
			if st := c.MinIO.HealthCheck(ctx); !st.Healthy {
				return fmt.Errorf("minio unhealthy: %s", st.Error)
			}
			return nil
		}))
	}
	return checks
}

// Close releases every client.  It is safe on a partially built value.
func (c *Components) Close() {
	if c == nil {
		return
	}
	if c.Watcher != nil {
		_ = c.Watcher.Close()
	}
	if c.Producer != nil {
		if err := c.Producer.Close(); err != nil {
			c.Logger.Warn("kafka producer close failed", logging.Err(err))
		}
	}
	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			c.Logger.Warn("redis close failed", logging.Err(err))
		}
	}
	_ = c.Logger.Sync()
}

//Personal.AI order the ending
