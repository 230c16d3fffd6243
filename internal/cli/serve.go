package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"abacus/internal/httpapi"
	"abacus/internal/mcpserver"
	"abacus/internal/metrics"
	"abacus/internal/session"
	"abacus/internal/tracing"
)

const (
	sessionTTL      = 30 * time.Minute
	shutdownTimeout = 5 * time.Second
)

func newServeCmd(e *env) *cobra.Command {
	var (
		transport string
		addr      string
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve calculator sessions over MCP (stdio) or HTTP",
		Long: `Serve calculator sessions to agents and other programs.

With --transport stdio the MCP protocol is spoken on stdin/stdout. With
--transport http the server exposes MCP at /mcp, a JSON API under
/calculator, Prometheus metrics at /metrics and /healthz.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("transport") {
				e.cfg.Serve.Transport = transport
			}
			if cmd.Flags().Changed("addr") {
				e.cfg.Serve.Addr = addr
			}

			ctx := cmd.Context()
			if e.cfg.Trace.Enabled {
				shutdown, err := tracing.Init(ctx, e.cfg.Trace.Service)
				if err != nil {
					return fmt.Errorf("tracing: %w", err)
				}
				defer func() {
					if err := shutdown(context.Background()); err != nil {
						e.log.Warn("tracing shutdown", zap.Error(err))
					}
				}()
			}

			m := metrics.New()
			store := session.NewStore(sessionTTL, m)
			srv := mcpserver.New(store, m, e.log.Named("mcp"))

			switch e.cfg.Serve.Transport {
			case "stdio":
				e.log.Info("serving MCP on stdio")
				err := srv.ServeStdio(ctx, e.stdin, e.stdout)
				if errors.Is(err, context.Canceled) {
					return nil
				}
				return err
			case "http":
				router := httpapi.NewRouter(httpapi.Options{
					Sessions: store,
					Metrics:  m,
					MCP:      srv.HTTPHandler(),
					Log:      e.log.Named("http"),
				})
				return serveHTTP(ctx, e.log, e.cfg.Serve.Addr, router)
			default:
				return fmt.Errorf("unsupported transport: %s (use stdio or http)", e.cfg.Serve.Transport)
			}
		},
	}
	cmd.Flags().StringVar(&transport, "transport", "stdio", "Transport: stdio or http")
	cmd.Flags().StringVar(&addr, "addr", ":8080", "Listen address for --transport http")
	return cmd
}

// serveHTTP runs the server until ctx is done, then shuts it down.
func serveHTTP(ctx context.Context, log *zap.Logger, addr string, h http.Handler) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		log.Info("server started", zap.String("addr", addr))
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	log.Info("server stopped")
	return nil
}
