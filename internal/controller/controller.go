package controller

import (
	"context"
	"log/slog"
	"time"

	"depositrecon/internal/models"
	"depositrecon/internal/summary"
	"depositrecon/pkg/types/repo"
)

// FetchRunner is the part of the fetch service the API drives.
type FetchRunner interface {
	FetchAndStore(ctx context.Context, date, trigger string) (int, error)
	IsFetching() bool
	NextRun() time.Time
	LastRuns() []models.FetchRun
	LastRun(date string) (models.FetchRun, bool)
}

type Controller struct {
	repo       repo.Repository
	fetcher    FetchRunner
	aggregator *summary.Aggregator
	logger     *slog.Logger
}

type Option func(*Controller)

func WithRepository(r repo.Repository) Option {
	return func(c *Controller) {
		c.repo = r
	}
}

func WithFetchRunner(f FetchRunner) Option {
	return func(c *Controller) {
		c.fetcher = f
	}
}

func WithAggregator(a *summary.Aggregator) Option {
	return func(c *Controller) {
		c.aggregator = a
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) {
		c.logger = l
	}
}

func New(opts ...Option) (*Controller, error) {
	c := &Controller{}
	for _, opt := range opts {
		opt(c)
	}
	if c.repo == nil {
		return nil, ErrNilRepository
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	if c.aggregator == nil {
		c.aggregator = summary.NewAggregator(summary.WithLogger(c.logger))
	}
	return c, nil
}
