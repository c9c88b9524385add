package commands

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"depositrecon/internal/handler"
	"depositrecon/internal/models"
	"depositrecon/internal/service"
	"depositrecon/pkg/integrations/memcache"
	"depositrecon/pkg/integrations/wmPubsub"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

const (
	// lastRunCapacity bounds the in-memory last-run cache to about a month of dates.
	lastRunCapacity = 31
	// streamBuffer is how many run events a slow SSE client may fall behind by.
	streamBuffer = 16
)

func newServeCommand(opts *globalOptions) *cobra.Command {
	var port string
	var swagger bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and the daily fetch schedule",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if port != "" {
				opts.cfg.Server.Port = port
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, opts, swagger)
		},
	}

	cmd.Flags().StringVar(&port, "port", "", "listen port (overrides config and APP_PORT)")
	cmd.Flags().BoolVar(&swagger, "swagger", true, "serve the swagger UI at /swagger/index.html")

	return cmd
}

func runServe(ctx context.Context, opts *globalOptions, swagger bool) error {
	logger := opts.logger

	repository, closeDB, err := opts.openRepository()
	if err != nil {
		return err
	}
	defer closeDB()

	runCache := memcache.New[string, models.FetchRun](memcache.WithCapacity(lastRunCapacity))
	runEvents := wmPubsub.New(
		wmPubsub.WithChannel(make(chan []byte, 10)),
		wmPubsub.WithContext(ctx),
		wmPubsub.WithTopic("fetch_runs"),
		wmPubsub.WithLogger(logger),
		wmPubsub.WithListenerBuffer(streamBuffer),
	)
	if err := runEvents.Subscribe(); err != nil {
		return errors.Wrap(err, "starting fetch run subscriber")
	}

	handlerOpts := []handler.Option{
		handler.WithRepository(repository),
		handler.WithAggregator(opts.aggregator()),
		handler.WithRunListener(runEvents),
		handler.WithLogger(logger),
		handler.WithSwagger(swagger),
	}

	svc, err := newFetchService(ctx, opts, repository,
		service.WithFetchRunCache(runCache),
		service.WithFetchPublisher(runEvents),
	)
	if err != nil {
		logger.Warn("fetching disabled", "error", err)
	} else {
		handlerOpts = append(handlerOpts, handler.WithFetchRunner(svc))
		if opts.cfg.Schedule.Enabled {
			if err := svc.Start(); err != nil {
				return errors.Wrap(err, "starting fetch schedule")
			}
			defer svc.Stop()
		}
	}

	r := gin.Default()
	h, err := handler.New(append(handlerOpts, handler.WithEngine(r))...)
	if err != nil {
		return errors.Wrap(err, "creating handler")
	}
	if err := h.Setup(); err != nil {
		return errors.Wrap(err, "setting up routes")
	}

	srv := &http.Server{
		Addr:              ":" + opts.cfg.Server.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting depositrecon", "port", opts.cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return errors.Wrap(err, "serving http")
	case <-ctx.Done():
	}

	logger.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
