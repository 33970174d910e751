package cli

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/gridfare/gridfare/pkg/agent"
	"github.com/gridfare/gridfare/pkg/config"
	"github.com/gridfare/gridfare/pkg/ergast"
	"github.com/gridfare/gridfare/pkg/server"
)

// shutdownGrace is how long in-flight requests get to finish on SIGINT.
const shutdownGrace = 10 * time.Second

// newServeCmd creates the "serve" command.
func newServeCmd() *cobra.Command {
	var cfgPath string
	var listen string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP agent",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			cfg, err := config.Load(cfgPath)
			if err != nil {
				return err
			}
			if listen != "" {
				cfg.Server.Listen = listen
			}

			p := newProgress(logger)
			registry, err := buildRegistry(cfg)
			if err != nil {
				return err
			}
			p.done("Initialized entrypoint registry")

			srv := server.New(cfg.Agent, registry, server.AllowAll{Logger: logger}, logger)
			httpSrv := &http.Server{
				Addr:    cfg.Server.Listen,
				Handler: srv.Router(),
			}

			errCh := make(chan error, 1)
			go func() {
				logger.Info("serving", "addr", cfg.Server.Listen, "entrypoints", registry.Len())
				errCh <- httpSrv.ListenAndServe()
			}()

			select {
			case <-ctx.Done():
				logger.Info("shutting down")
				shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
				defer cancel()
				if err := httpSrv.Shutdown(shutdownCtx); err != nil {
					return err
				}
				return ctx.Err()
			case err := <-errCh:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return err
			}
		},
	}

	cmd.Flags().StringVarP(&cfgPath, "config", "c", "", "path to TOML config file")
	cmd.Flags().StringVarP(&listen, "listen", "l", "", "listen address (overrides config)")

	return cmd
}

// buildRegistry wires the upstream client, pricing policy, and entrypoint
// table from configuration.
func buildRegistry(cfg config.Config) (*agent.Registry, error) {
	var hc *http.Client
	if cfg.Upstream.TimeoutSeconds > 0 {
		hc = &http.Client{Timeout: cfg.UpstreamTimeout()}
	}
	client := ergast.NewClient(cfg.Upstream.BaseURL, hc)
	pricing := agent.DefaultPricing().Merge(cfg.Prices)
	return agent.Initialize(client, pricing)
}
