package bootstrap

import (
	"context"
	stderrors "errors"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/turtacn/recreation-potential/internal/infrastructure/monitoring/logging"
	httpapi "github.com/turtacn/recreation-potential/internal/interfaces/http"
	"github.com/turtacn/recreation-potential/internal/interfaces/http/handlers"
	"github.com/turtacn/recreation-potential/internal/interfaces/http/middleware"
)

// RouterConfig returns the route tree configuration over the components.
func (c *Components) RouterConfig(version string) httpapi.RouterConfig {
	h := c.Config.Server.HTTP

	rc := httpapi.RouterConfig{
		AnalysisHandler:  handlers.NewAnalysisHandler(c.Service, c.Logger),
		DatasetHandler:   handlers.NewDatasetHandler(c.Service, c.Logger),
		HealthHandler:    handlers.NewHealthHandler(version, c.HealthCheckers()...),
		Logging:          middleware.DefaultLoggingConfig(),
		RequestTimeout:   h.RequestTimeout,
		MaxBodySize:      h.MaxBodySize,
		Logger:           c.Logger,
		MetricsCollector: c.Collector,
		MetricsPath:      c.Config.Monitoring.Metrics.Path,
	}
	if c.Collector != nil {
		rc.Metrics = c.Metrics
	}
	if len(h.CORSOrigins) > 0 {
		cors := middleware.DefaultCORSConfig()
		cors.AllowedOrigins = h.CORSOrigins
		rc.CORS = &cors
	}
	return rc
}

// NewHTTPServer wires the router into a server listening on the configured
// address.
func (c *Components) NewHTTPServer(version string) *httpapi.Server {
	h := c.Config.Server.HTTP
	return httpapi.NewServer(httpapi.ServerConfig{
		Addr:            h.Addr(),
		ReadTimeout:     h.ReadTimeout,
		WriteTimeout:    h.WriteTimeout,
		IdleTimeout:     h.IdleTimeout,
		ShutdownTimeout: h.ShutdownTimeout,
	}, httpapi.NewRouter(c.RouterConfig(version)), c.Logger)
}

// RunAPI serves the API and, when configured, the dataset watcher until ctx
// is cancelled or either of them fails.
func (c *Components) RunAPI(ctx context.Context, srv *httpapi.Server) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(srv.Start)
	g.Go(func() error {
		<-gctx.Done()
		c.Logger.Info("shutting down HTTP server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), c.Config.Server.HTTP.ShutdownTimeout+time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	if c.Watcher != nil {
		g.Go(func() error {
			c.Logger.Info("watching dataset directory", logging.String("dir", c.Config.Data.Dir))
			return c.Watcher.Run(gctx)
		})
	}

	err := g.Wait()
	if stderrors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

//Personal.AI order the ending
