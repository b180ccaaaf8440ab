package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/bft-labs/i2p/internal/adapters/console"
	"github.com/bft-labs/i2p/internal/api"
	"github.com/bft-labs/i2p/internal/app"
	"github.com/bft-labs/i2p/internal/cliconfig"
	"github.com/bft-labs/i2p/internal/command"
	"github.com/bft-labs/i2p/internal/metrics"
	"github.com/bft-labs/i2p/pkg/log"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Load the packet table and answer commands on the console and over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := c.load(cmd); err != nil {
				return err
			}
			if c.cfg.HTTPAddr == "" && !c.cfg.Console {
				return errors.New("nothing to serve: set --http-addr or --console")
			}
			return c.serve(contextOf(cmd))
		},
	}

	cmd.Flags().StringVar(&c.cfg.Prefix, "prefix", c.cfg.Prefix, "command prefix")
	cmd.Flags().StringVar(&c.cfg.HTTPAddr, "http-addr", c.cfg.HTTPAddr, "HTTP listen address (empty disables HTTP)")
	cmd.Flags().BoolVar(&c.cfg.Console, "console", c.cfg.Console, "read commands from stdin")

	return cmd
}

func (c *cli) serve(parent context.Context) error {
	logger := cliconfig.Logger(c.cfg.LogLevel)
	logger.Info("configuration",
		log.String("source_url", c.cfg.SourceURL),
		log.Duration("fetch_timeout", c.cfg.FetchTimeout),
		log.Int("fetch_retries", c.cfg.FetchRetries),
		log.String("prefix", c.cfg.Prefix),
		log.String("http_addr", c.cfg.HTTPAddr),
		log.Bool("console", c.cfg.Console),
	)

	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	m := metrics.New()
	a := c.newApp(logger, app.WithLoadObserver(m), app.WithLookupRecorder(m))

	if err := a.Start(ctx); err != nil {
		return err
	}
	defer func() {
		if err := a.Stop(); err != nil {
			logger.Warn("stop", log.Err(err))
		}
	}()

	querier := a.Querier()
	dispatcher := command.NewDispatcher(querier, c.cfg.Prefix, logger)

	g, gctx := errgroup.WithContext(ctx)

	if c.cfg.HTTPAddr != "" {
		srv := &http.Server{
			Addr: c.cfg.HTTPAddr,
			Handler: api.NewServer(querier,
				api.WithMiddlewares(middleware.RequestID, middleware.Recoverer, api.LoggingMiddleware(logger)),
				api.WithDispatcher(dispatcher),
				api.WithMetricsHandler(m.Handler()),
				api.WithLogger(logger),
			),
			ReadHeaderTimeout: 10 * time.Second,
		}

		g.Go(func() error {
			logger.Info("http server listening", log.String("addr", c.cfg.HTTPAddr))
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("http server: %w", err)
			}
			return nil
		})
		g.Go(func() error {
			<-gctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		})
	}

	if c.cfg.Console {
		session := console.NewSession(dispatcher, os.Stdin, os.Stdout, logger)
		g.Go(func() error {
			return session.Run(gctx)
		})
	}

	return g.Wait()
}
