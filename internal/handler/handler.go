package handler

import (
	"errors"
	"log/slog"

	"depositrecon/internal/controller"
	"depositrecon/internal/summary"
	"depositrecon/pkg/types/pubsub"
	"depositrecon/pkg/types/repo"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

var (
	ErrNilEngine     = errors.New("engine is required")
	ErrNilRepository = errors.New("repository is required")
)

type Handler struct {
	engine      *gin.Engine
	repository  repo.Repository
	fetcher     controller.FetchRunner
	aggregator  *summary.Aggregator
	runListener pubsub.Listener
	logger      *slog.Logger
	swagger     bool
}

func (h *Handler) IsValid() error {
	if h.engine == nil {
		return ErrNilEngine
	}
	if h.repository == nil {
		return ErrNilRepository
	}
	return nil
}

type Option func(*Handler)

func WithEngine(engine *gin.Engine) Option {
	return func(h *Handler) {
		h.engine = engine
	}
}

func WithRepository(repository repo.Repository) Option {
	return func(h *Handler) {
		h.repository = repository
	}
}

func WithFetchRunner(f controller.FetchRunner) Option {
	return func(h *Handler) {
		h.fetcher = f
	}
}

func WithAggregator(a *summary.Aggregator) Option {
	return func(h *Handler) {
		h.aggregator = a
	}
}

// WithRunListener enables the SSE stream of finished fetch runs.
func WithRunListener(l pubsub.Listener) Option {
	return func(h *Handler) {
		h.runListener = l
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(h *Handler) {
		h.logger = l
	}
}

func WithSwagger(enabled bool) Option {
	return func(h *Handler) {
		h.swagger = enabled
	}
}

func New(opts ...Option) (*Handler, error) {
	h := &Handler{}
	for _, opt := range opts {
		opt(h)
	}
	if err := h.IsValid(); err != nil {
		return nil, err
	}
	return h, nil
}

func (h *Handler) Setup() error {
	ctrl, err := controller.New(
		controller.WithRepository(h.repository),
		controller.WithFetchRunner(h.fetcher),
		controller.WithAggregator(h.aggregator),
		controller.WithLogger(h.logger),
	)
	if err != nil {
		return err
	}

	h.engine.GET("/health", controller.Health)
	if h.swagger {
		h.engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := h.engine.Group("/api")

	reports := api.Group("/reports")
	reports.GET("", ctrl.GetLatestReport)
	reports.GET("/:date", ctrl.GetReport)

	deposits := api.Group("/deposits")
	deposits.GET("", ctrl.ListDeposits)
	deposits.GET("/:date/:txn_id", ctrl.GetDeposit)

	fetch := api.Group("/fetch")
	fetch.POST("", ctrl.TriggerFetch)
	fetch.GET("/status", ctrl.FetchStatus)
	fetch.GET("/runs", ctrl.ListFetchRuns)
	fetch.GET("/runs/:id", ctrl.GetFetchRun)
	if h.runListener != nil {
		fetch.GET("/stream", controller.SSEFetchRuns(h.runListener))
	}

	history := api.Group("/history")
	history.GET("", ctrl.ListHistory)
	history.DELETE("/:date", ctrl.PurgeHistory)

	return nil
}
