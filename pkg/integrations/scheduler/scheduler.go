package scheduler

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"depositrecon/pkg/types/scheduler"

	"github.com/pkg/errors"
)

var (
	ErrInvalidSchedulerConfig = errors.New("invalid scheduler config")
)

var _ scheduler.Scheduler = (*Scheduler)(nil)

// Scheduler runs its handler once a day at a fixed wall-clock time.
type Scheduler struct {
	daily    bool
	hour     int
	minute   int
	location *time.Location
	now      func() time.Time
	ctx      context.Context
	logger   *slog.Logger
	handler  func() error

	mu       sync.RWMutex
	next     time.Time
	done     chan struct{}
	stopOnce sync.Once
}

type Option func(*Scheduler)

// WithDailyAt is required and fires the handler every day at hour:minute.
func WithDailyAt(hour, minute int) Option {
	return func(s *Scheduler) {
		s.daily = true
		s.hour = hour
		s.minute = minute
	}
}

// WithLocation sets the zone hour:minute is read in. Defaults to time.Local.
func WithLocation(loc *time.Location) Option {
	return func(s *Scheduler) {
		s.location = loc
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Scheduler) {
		s.now = now
	}
}

func WithContext(ctx context.Context) Option {
	return func(s *Scheduler) {
		s.ctx = ctx
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Scheduler) {
		s.logger = l
	}
}

func WithHandler(h func() error) Option {
	return func(s *Scheduler) {
		s.handler = h
	}
}

func (s *Scheduler) IsValid() error {
	switch {
	case s.ctx == nil:
		return errors.Wrap(ErrInvalidSchedulerConfig, "ctx cannot be nil")
	case s.logger == nil:
		return errors.Wrap(ErrInvalidSchedulerConfig, "logger cannot be nil")
	case !s.daily:
		return errors.Wrap(ErrInvalidSchedulerConfig, "daily run time is required")
	case s.location == nil:
		return errors.Wrap(ErrInvalidSchedulerConfig, "location cannot be nil")
	case s.hour < 0 || s.hour > 23:
		return errors.Wrap(ErrInvalidSchedulerConfig, "hour must be between 0 and 23")
	case s.minute < 0 || s.minute > 59:
		return errors.Wrap(ErrInvalidSchedulerConfig, "minute must be between 0 and 59")
	case s.handler == nil:
		return errors.Wrap(ErrInvalidSchedulerConfig, "handler cannot be nil")
	default:
		return nil
	}
}

func New(opts ...Option) (*Scheduler, error) {
	s := &Scheduler{
		location: time.Local,
		now:      time.Now,
		done:     make(chan struct{}),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s, s.IsValid()
}

func (s *Scheduler) Start() error {
	if err := s.IsValid(); err != nil {
		return err
	}

	s.setNext(NextDailyRun(s.now().In(s.location), s.hour, s.minute))
	go s.runDaily()
	return nil
}

func (s *Scheduler) runDaily() {
	for {
		next := s.NextRun()
		timer := time.NewTimer(next.Sub(s.now()))

		select {
		case <-timer.C:
			s.setNext(NextDailyRun(next, s.hour, s.minute))
			if err := s.handler(); err != nil {
				s.logger.Error("scheduler handler error", "run_at", next, "error", err)
			}
		case <-s.ctx.Done():
			timer.Stop()
			return
		case <-s.done:
			timer.Stop()
			return
		}
	}
}

func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() {
		close(s.done)
	})
}

// NextRun is the time of the next scheduled invocation, zero before Start.
func (s *Scheduler) NextRun() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.next
}

func (s *Scheduler) setNext(t time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.next = t
}

// NextDailyRun returns the first hour:minute strictly after now, in now's location.
func NextDailyRun(now time.Time, hour, minute int) time.Time {
	run := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location())
	if !now.Before(run) {
		run = run.AddDate(0, 0, 1)
	}
	return run
}
