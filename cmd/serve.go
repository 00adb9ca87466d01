package cmd

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/etnz/finkit/api"
	"github.com/gin-gonic/gin"
	"github.com/google/subcommands"
	"github.com/sirupsen/logrus"
)

// shutdownTimeout bounds the time given to in-flight requests on shutdown.
const shutdownTimeout = 30 * time.Second

// serveCmd holds the flags for the 'serve' subcommand.
type serveCmd struct {
	addr string
}

func (*serveCmd) Name() string     { return "serve" }
func (*serveCmd) Synopsis() string { return "serve the calculators as a JSON HTTP API" }
func (*serveCmd) Usage() string {
	return `fin serve [-addr <host:port>]

  Serves POST /api/{npv,capm,dcf,wacc,bond,statements} and GET /api/health
  until interrupted. See 'fin topic api'.
`
}

func (c *serveCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.addr, "addr", "", "Address to listen on (default from the configuration, :8080)")
}

func (c *serveCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := settings()
	if err != nil {
		return fail("loading configuration", err)
	}
	addr := c.addr
	if addr == "" {
		addr = cfg.Server.Addr
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := serve(ctx, addr, cfg); err != nil {
		return fail("serving API", err)
	}
	return subcommands.ExitSuccess
}

// serve runs the API on addr until ctx is done, then shuts it down
// gracefully.
func serve(ctx context.Context, addr string, cfg *Config) error {
	if logger.GetLevel() < logrus.DebugLevel {
		gin.SetMode(gin.ReleaseMode)
	}
	srv := &http.Server{
		Addr:              addr,
		Handler:           api.NewRouter(cfg.Options(), logger),
		ReadHeaderTimeout: 10 * time.Second,
	}
	log := logger.WithFields(logrus.Fields{"component": "api", "addr": addr})

	errc := make(chan error, 1)
	go func() {
		log.Info("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	log.Info("server exited")
	return nil
}
