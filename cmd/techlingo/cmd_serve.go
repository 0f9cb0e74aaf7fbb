package main

import (
	"context"
	"errors"
	"expvar"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/ajitpratap0/techlingo/internal/api"
)

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP/JSON API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger()

			a, err := openApp(cmd.Context(), logger)
			if err != nil {
				return fmt.Errorf("serve: %w", err)
			}
			defer func() { _ = a.Close() }()

			srv := api.NewServer(a.dict, logger, cfg.API.AuthToken)
			if a.creds != nil {
				srv = srv.WithKeySetter(a.creds)
			}

			if cfg.API.AuthToken == "" {
				logger.Warn("HTTP API: auth is DISABLED; set TECHLINGO_API_AUTH_TOKEN or api.auth_token for production use")
			}

			mux := http.NewServeMux()
			mux.Handle("/", srv.Handler())
			mux.Handle("GET /debug/vars", expvar.Handler())

			httpSrv := &http.Server{
				Addr:              cfg.API.ListenAddr,
				Handler:           mux,
				ReadHeaderTimeout: 10 * time.Second,
				ReadTimeout:       30 * time.Second,
				// Code requests run on the pro tier with a thinking budget.
				WriteTimeout: 180 * time.Second,
				IdleTimeout:  120 * time.Second,
			}

			g, ctx := errgroup.WithContext(cmd.Context())
			g.Go(func() error {
				logger.Info("HTTP API server starting", "addr", cfg.API.ListenAddr, "backend", a.gw.Backend())
				if listenErr := httpSrv.ListenAndServe(); listenErr != nil && !errors.Is(listenErr, http.ErrServerClosed) {
					return fmt.Errorf("serve: HTTP server: %w", listenErr)
				}
				return nil
			})
			g.Go(func() error {
				<-ctx.Done()
				logger.Info("shutting down")
				const shutdownTimeout = 10 * time.Second
				if shutdownErr := api.Shutdown(httpSrv, shutdownTimeout); shutdownErr != nil {
					return fmt.Errorf("serve: graceful shutdown: %w", shutdownErr)
				}
				return nil
			})

			if waitErr := g.Wait(); waitErr != nil && !errors.Is(waitErr, context.Canceled) {
				return waitErr
			}
			return nil
		},
	}
	return cmd
}
