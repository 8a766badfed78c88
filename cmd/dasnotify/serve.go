package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/semaphore"

	"das_notify/internal/adapters/das"
	"das_notify/internal/adapters/files"
	server "das_notify/internal/adapters/http_server"
	"das_notify/internal/adapters/observability"
	"das_notify/internal/app"
	"das_notify/internal/shared"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP host that renders the parameter form and executes invocations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serve(cmd.Context())
		},
	}
}

func serve(ctx context.Context) error {
	cfg := shared.Load()
	log.Logger = observability.NewLogger(cfg.AppEnv)

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	d := app.NewDispatcher(
		files.New(cfg.DataDir),
		das.New(cfg.DASKey, cfg.DASTimeout, cfg.DASRPS),
		log.Logger,
	)

	srv := server.New(cfg.ExecTimeout + 5*time.Second)
	reg := observability.InitRegistry()
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(&server.Handlers{
		Exec:     d,
		Resolve:  func(ref string) (string, error) { return das.ResolveConnector(cfg.DASBaseURL, ref) },
		Inflight: semaphore.NewWeighted(int64(max(cfg.MaxInflight, 1))),
		Timeout:  cfg.ExecTimeout,
	})

	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Mux(), ReadHeaderTimeout: 5 * time.Second}
	errc := make(chan error, 1)
	go func() {
		log.Info().Str("addr", cfg.HTTPAddr).Msg("host listening")
		errc <- httpSrv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return httpSrv.Shutdown(shutdownCtx)
}
