package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/thywilljoshua/pdf2md/internal/server"
)

func serveCmd(a *app) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and the browser UI",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if addr == "" {
				addr = a.cfg.Addr
			}
			srv := &http.Server{
				Addr:              addr,
				Handler:           server.New(a.pipeline(), a.registry, a.cfg.MaxUploadBytes, a.log).Routes(),
				ReadHeaderTimeout: 10 * time.Second,
				// Conversions may run up to the configured timeout.
				WriteTimeout: a.cfg.Timeout + 30*time.Second,
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			errc := make(chan error, 1)
			go func() {
				a.log.Info("listening", zap.String("addr", addr),
					zap.Int("models", len(a.registry.ListAvailable())))
				errc <- srv.ListenAndServe()
			}()

			select {
			case err := <-errc:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return err
			case <-ctx.Done():
			}

			a.log.Info("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from PDF2MD_ADDR)")
	return cmd
}
