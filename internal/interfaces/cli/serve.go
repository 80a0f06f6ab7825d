package cli

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/weathervibes/weathervibes/internal/config"
	"github.com/weathervibes/weathervibes/internal/devstub"
	"github.com/weathervibes/weathervibes/internal/logging"
)

func newServeCmd() *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the local stub analysis backend",
		Long:  "Serves the three analysis endpoints against a deterministic synthetic\nclimate, so the client can be used without the real backend.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}

			stubCfg := cliCtx.Config.Stub
			if port != 0 {
				stubCfg.Port = port
			}
			server := devstub.NewServer(stubCfg, cliCtx.Logger, cliCtx.Metrics)

			// Long-running command, so pick up config file edits: the log
			// level applies immediately, everything else on restart.
			if cliCtx.ConfigPath != "" {
				log := cliCtx.Logger
				config.Watch(cliCtx.ConfigPath, func(cfg *config.Config) {
					if ls, ok := log.(logging.LevelSetter); ok {
						ls.SetLevel(cfg.Log.Level)
					}
					log.Info("configuration reloaded",
						logging.String("log_level", cfg.Log.Level))
				})
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() { errCh <- server.Start() }()

			select {
			case err := <-errCh:
				return err
			case <-ctx.Done():
				return server.Stop(context.Background())
			}
		},
	}
	cmd.Flags().IntVar(&port, "port", 0, "listen port (overrides config)")
	return cmd
}
