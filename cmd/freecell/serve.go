package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/pdrpinto/search/internal/httpapi"
	"github.com/pdrpinto/search/internal/solver"
	"github.com/pdrpinto/search/observability"
)

const shutdownTimeout = 5 * time.Second

func newServeCmd(a *app) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP solver",
		Long:  `Serves POST /solve, POST /trace, GET /deals/{number}, GET /healthz and GET /metrics.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := a.cfg
			if cmd.Flags().Changed("addr") {
				cfg.Server.Addr = addr
			}
			ctx := cmd.Context()

			reg := prometheus.NewRegistry()
			reg.MustRegister(
				collectors.NewGoCollector(),
				collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			)
			metrics, err := observability.NewMetrics(reg)
			if err != nil {
				return err
			}

			cache, err := solver.OpenStore(ctx, cfg.Cache)
			if err != nil {
				return err
			}
			if cache != nil {
				defer cache.Close()
			}
			service := solver.New(cfg,
				solver.WithStore(cache),
				solver.WithLogger(a.logger),
				solver.WithHooks(metrics.Hooks()),
			)

			srv := &http.Server{
				Addr:              cfg.Server.Addr,
				Handler:           httpapi.NewHandler(service, reg, a.logger),
				ReadHeaderTimeout: 10 * time.Second,
			}

			// Channel to listen for errors coming from the listener.
			serverErrors := make(chan error, 1)
			go func() {
				a.logger.Info("server listening", "addr", srv.Addr, "cache", cfg.Cache.Backend)
				serverErrors <- srv.ListenAndServe()
			}()

			select {
			case err := <-serverErrors:
				return err
			case <-ctx.Done():
				a.logger.Info("shutting down")
				shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
				defer cancel()
				if err := srv.Shutdown(shutdownCtx); err != nil {
					a.logger.Warn("graceful shutdown did not complete", "error", err)
					return srv.Close()
				}
				if err := <-serverErrors; !errors.Is(err, http.ErrServerClosed) {
					return err
				}
				return nil
			}
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address, defaults to server.addr from the config")
	return cmd
}
