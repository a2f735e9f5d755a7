package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/turtacn/recreation-potential/internal/bootstrap"
	"github.com/turtacn/recreation-potential/internal/config"
	"github.com/turtacn/recreation-potential/internal/infrastructure/monitoring/logging"
)

func newServeCmd() *cobra.Command {
	var (
		port  int
		watch bool
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}
			cfg := cliCtx.Config
			if cmd.Flags().Changed("port") {
				cfg.Server.HTTP.Port = port
			}
			if cmd.Flags().Changed("watch") {
				cfg.Data.Watch = watch
			}

			// the server runs until interrupted, not for --timeout
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			c, err := cliCtx.Open(ctx, bootstrap.Options{External: true, Watch: true})
			if err != nil {
				return err
			}
			defer c.Close()

			cliCtx.Logger.Info("starting recreation API",
				logging.String("version", config.Version),
				logging.String("addr", cfg.Server.HTTP.Addr()))
			return c.RunAPI(ctx, c.NewHTTPServer(config.Version))
		},
	}
	cmd.Flags().IntVar(&port, "port", 0, "HTTP port (overrides server.http.port)")
	cmd.Flags().BoolVar(&watch, "watch", false, "reload datasets when files in the data directory change")
	return cmd
}

//Personal.AI order the ending
