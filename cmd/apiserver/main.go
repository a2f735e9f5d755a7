// Command apiserver serves the recreation potential HTTP API and reloads
// datasets when their files change.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/turtacn/recreation-potential/internal/bootstrap"
	"github.com/turtacn/recreation-potential/internal/config"
	"github.com/turtacn/recreation-potential/internal/infrastructure/monitoring/logging"
)

const defaultConfigPath = "configs/config.yaml"

func main() {
	configPath := flag.String("config", defaultConfigPath, "path to configuration file")
	httpPort := flag.Int("http-port", 0, "HTTP server port (overrides config)")
	dataDir := flag.String("data-dir", "", "dataset directory (overrides config)")
	flag.Parse()

	cfg, err := loadConfig(*configPath, *httpPort, *dataDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	cfg.Log.Service = "recreation-apiserver"
	logger, err := logging.NewLogger(cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	logging.SetDefault(logger)
	defer logger.Sync()

	logger.Info("starting recreation API server",
		logging.String("version", config.Version),
		logging.String("commit", config.GitCommit),
		logging.String("addr", cfg.Server.HTTP.Addr()),
		logging.String("data_dir", cfg.Data.Dir),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	c, err := bootstrap.New(ctx, cfg, logger, bootstrap.Options{External: true, Watch: true})
	if err != nil {
		logger.Fatal("failed to initialize components", logging.Err(err))
	}
	defer c.Close()

	if err := c.RunAPI(ctx, c.NewHTTPServer(config.Version)); err != nil {
		logger.Error("API server stopped with error", logging.Err(err))
		c.Close()
		os.Exit(1)
	}
	logger.Info("API server stopped")
}

// loadConfig falls back to defaults and the environment when the file at
// path does not exist.
func loadConfig(path string, port int, dataDir string) (*config.Config, error) {
	overrides := map[string]interface{}{}
	if port > 0 {
		overrides["server.http.port"] = port
	}
	if dataDir != "" {
		overrides["data.dir"] = dataDir
	}
	opts := []config.LoadOption{config.WithOverrides(overrides)}
	if _, err := os.Stat(path); err == nil {
		opts = append(opts, config.WithConfigPath(path))
	} else {
		fmt.Fprintf(os.Stderr, "warning: %s not found, using defaults and environment\n", path)
	}
	return config.Load(opts...)
}

//Personal.AI order the ending
