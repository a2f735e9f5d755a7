// Command worker consumes snapshot events, recomputes region analyses and
// zone rankings into the shared cache and exports the resulting report.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/turtacn/recreation-potential/internal/bootstrap"
	"github.com/turtacn/recreation-potential/internal/config"
	"github.com/turtacn/recreation-potential/internal/infrastructure/database/redis"
	"github.com/turtacn/recreation-potential/internal/infrastructure/messaging/kafka"
	"github.com/turtacn/recreation-potential/internal/infrastructure/monitoring/logging"
	httpapi "github.com/turtacn/recreation-potential/internal/interfaces/http"
	"github.com/turtacn/recreation-potential/internal/interfaces/worker"
)

const (
	defaultWorkerConfigPath = "configs/config.yaml"
	defaultHealthPort       = 8081
	defaultHandlerTimeout   = 5 * time.Minute
)

func main() {
	configPath := flag.String("config", defaultWorkerConfigPath, "path to configuration file")
	healthPort := flag.Int("health-port", defaultHealthPort, "port of the health and metrics endpoint")
	flag.Parse()

	opts := []config.LoadOption{}
	if _, err := os.Stat(*configPath); err == nil {
		opts = append(opts, config.WithConfigPath(*configPath))
	}
	cfg, err := config.Load(opts...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	cfg.Log.Service = "recreation-worker"
	logger, err := logging.NewLogger(cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	logging.SetDefault(logger)
	defer logger.Sync()

	if !cfg.Messaging.Enabled {
		logger.Fatal("the worker requires messaging.enabled")
	}

	logger.Info("starting recreation worker",
		logging.String("version", config.Version),
		logging.Bool("export_reports", cfg.Worker.ExportReports),
		logging.Bool("cache", cfg.Cache.Enabled),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// reloads are driven by events here, so they must not be announced again
	c, err := bootstrap.New(ctx, cfg, logger, bootstrap.Options{External: true, QuietReloads: true})
	if err != nil {
		logger.Fatal("failed to initialize components", logging.Err(err))
	}
	defer c.Close()

	var locks worker.LockFactory
	if c.Redis != nil {
		locks = func(name string) worker.Locker {
			return redis.NewMutex(c.Redis, name, cfg.Worker.LockTTL)
		}
	}
	handler := worker.NewSnapshotHandler(c.Service, c.Holder, locks, worker.Config{
		Export:  cfg.Worker.ExportReports,
		Timeout: defaultHandlerTimeout,
	}, logger)

	consumerCfg := cfg.Messaging.Consumer
	if len(consumerCfg.Topics) == 0 {
		consumerCfg.Topics = []string{kafka.TopicSnapshotReloaded}
	}
	consumer, err := kafka.NewConsumer(consumerCfg, logger)
	if err != nil {
		logger.Fatal("failed to create Kafka consumer", logging.Err(err))
	}
	defer consumer.Close()
	consumer.Subscribe(kafka.TopicSnapshotReloaded, handler.Handle)

	healthSrv := startHealthServer(c, *healthPort, logger)

	if err := consumer.Start(ctx); err != nil {
		logger.Fatal("failed to start Kafka consumer", logging.Err(err))
	}

	<-ctx.Done()
	logger.Info("received shutdown signal")

	if err := consumer.Close(); err != nil {
		logger.Warn("kafka consumer close failed", logging.Err(err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := healthSrv.Shutdown(shutdownCtx); err != nil {
		logger.Error("health server shutdown error", logging.Err(err))
	}

	logger.Info("recreation worker stopped",
		logging.Int64("processed", consumer.Processed()),
		logging.Int64("dead_lettered", consumer.DeadLettered()))
}

// startHealthServer exposes the probes and metrics of the worker.
func startHealthServer(c *bootstrap.Components, port int, logger logging.Logger) *httpapi.Server {
	rc := c.RouterConfig(config.Version)
	rc.AnalysisHandler = nil
	rc.DatasetHandler = nil
	rc.CORS = nil

	srv := httpapi.NewServer(httpapi.ServerConfig{
		Addr:            fmt.Sprintf(":%d", port),
		ReadTimeout:     5 * time.Second,
		WriteTimeout:    10 * time.Second,
		ShutdownTimeout: 5 * time.Second,
	}, httpapi.NewRouter(rc), logger.Named("health"))

	go func() {
		if err := srv.Start(); err != nil {
			logger.Error("health server error", logging.Err(err))
		}
	}()
	return srv
}

//Personal.AI order the ending
