package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net"
	"sort"
	"strings"
	"sync/atomic"
	"time"

	"depositrecon/internal/models"
	dailyScheduler "depositrecon/pkg/integrations/scheduler"
	"depositrecon/pkg/types/cache"
	"depositrecon/pkg/types/pubsub"
	"depositrecon/pkg/types/scheduler"
	"depositrecon/pkg/types/settlement"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

const DateLayout = "2006-01-02"

const DefaultFetchTimeout = 120 * time.Second

var (
	ErrInvalidFetchConfig = errors.New("invalid fetch service config")
	ErrInvalidDate        = errors.New("invalid date")
	ErrUpstream           = errors.New("settlement api error")
	ErrUpstreamTimeout    = errors.New("settlement api timeout")
	ErrStore              = errors.New("deposit store error")
)

type DepositRepository interface {
	UpsertDeposit(deposit *models.Deposit) error
	CreateFetchRun(run *models.FetchRun) error
	UpdateFetchRun(run *models.FetchRun) error
}

// Credentials identify the merchant to the settlement API.
type Credentials struct {
	Username string
	Password string
	Prefix   string
}

type FetchService struct {
	ctx         context.Context
	logger      *slog.Logger
	fetcher     settlement.DepositFetcher
	repo        DepositRepository
	runs        cache.Cache[string, models.FetchRun]
	publisher   pubsub.Publisher
	credentials Credentials
	timeout     time.Duration
	now         func() time.Time
	location    *time.Location
	hour        int
	minute      int
	scheduler   scheduler.Scheduler

	active atomic.Int32
}

type FetchOption func(*FetchService)

func WithFetchContext(ctx context.Context) FetchOption {
	return func(s *FetchService) {
		s.ctx = ctx
	}
}

func WithFetchLogger(l *slog.Logger) FetchOption {
	return func(s *FetchService) {
		s.logger = l
	}
}

func WithFetchFetcher(f settlement.DepositFetcher) FetchOption {
	return func(s *FetchService) {
		s.fetcher = f
	}
}

func WithFetchRepo(r DepositRepository) FetchOption {
	return func(s *FetchService) {
		s.repo = r
	}
}

// WithFetchRunCache keeps the latest run per fetch date for status queries.
func WithFetchRunCache(c cache.Cache[string, models.FetchRun]) FetchOption {
	return func(s *FetchService) {
		s.runs = c
	}
}

// WithFetchPublisher announces every finished run as JSON.
func WithFetchPublisher(p pubsub.Publisher) FetchOption {
	return func(s *FetchService) {
		s.publisher = p
	}
}

func WithFetchCredentials(c Credentials) FetchOption {
	return func(s *FetchService) {
		s.credentials = c
	}
}

func WithFetchTimeout(d time.Duration) FetchOption {
	return func(s *FetchService) {
		s.timeout = d
	}
}

func WithFetchClock(now func() time.Time) FetchOption {
	return func(s *FetchService) {
		s.now = now
	}
}

// WithFetchLocation sets the zone of the daily schedule and of "yesterday".
func WithFetchLocation(loc *time.Location) FetchOption {
	return func(s *FetchService) {
		s.location = loc
	}
}

// WithFetchSchedule sets the wall-clock time of the daily fetch of yesterday.
func WithFetchSchedule(hour, minute int) FetchOption {
	return func(s *FetchService) {
		s.hour = hour
		s.minute = minute
	}
}

func (s *FetchService) IsValid() error {
	switch {
	case s.ctx == nil:
		return errors.Wrap(ErrInvalidFetchConfig, "ctx cannot be nil")
	case s.logger == nil:
		return errors.Wrap(ErrInvalidFetchConfig, "logger cannot be nil")
	case s.fetcher == nil:
		return errors.Wrap(ErrInvalidFetchConfig, "fetcher cannot be nil")
	case s.repo == nil:
		return errors.Wrap(ErrInvalidFetchConfig, "repo cannot be nil")
	case s.timeout <= 0:
		return errors.Wrap(ErrInvalidFetchConfig, "timeout must be positive")
	case s.location == nil:
		return errors.Wrap(ErrInvalidFetchConfig, "location cannot be nil")
	default:
		return nil
	}
}

func NewFetchService(opts ...FetchOption) (*FetchService, error) {
	s := &FetchService{
		timeout:  DefaultFetchTimeout,
		now:      time.Now,
		location: time.Local,
		minute:   5,
	}

	for _, opt := range opts {
		opt(s)
	}

	if err := s.IsValid(); err != nil {
		return nil, err
	}

	sched, err := dailyScheduler.New(
		dailyScheduler.WithContext(s.ctx),
		dailyScheduler.WithLogger(s.logger),
		dailyScheduler.WithDailyAt(s.hour, s.minute),
		dailyScheduler.WithLocation(s.location),
		dailyScheduler.WithClock(s.now),
		dailyScheduler.WithHandler(s.FetchYesterday),
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create scheduler")
	}
	s.scheduler = sched

	return s, nil
}

func (s *FetchService) Start() error {
	if err := s.scheduler.Start(); err != nil {
		return err
	}
	s.logger.Info("scheduled daily fetch", "next_run", s.scheduler.NextRun())
	return nil
}

func (s *FetchService) Stop() {
	s.scheduler.Stop()
}

// IsFetching reports whether any fetch is in flight.
func (s *FetchService) IsFetching() bool {
	return s.active.Load() > 0
}

func (s *FetchService) NextRun() time.Time {
	return s.scheduler.NextRun()
}

// LastRuns returns the most recent run per fetch date, newest first.
func (s *FetchService) LastRuns() []models.FetchRun {
	if s.runs == nil {
		return []models.FetchRun{}
	}
	runs := s.runs.Values()
	sort.SliceStable(runs, func(i, j int) bool {
		return runs[i].StartedAt.After(runs[j].StartedAt)
	})
	return runs
}

// LastRun returns the latest run recorded for date since the service started.
func (s *FetchService) LastRun(date string) (models.FetchRun, bool) {
	if s.runs == nil {
		return models.FetchRun{}, false
	}
	return s.runs.Get(date)
}

// FetchYesterday is the scheduled trigger: it fetches the day before now in
// the schedule's location.
func (s *FetchService) FetchYesterday() error {
	date := s.now().In(s.location).AddDate(0, 0, -1).Format(DateLayout)
	s.logger.Info("auto fetch", "date", date)
	_, err := s.FetchAndStore(s.ctx, date, models.FetchTriggerScheduled)
	return err
}

// FetchAndStore pulls date's deposits from the settlement API and upserts
// each of them. Nothing is stored when the call or the payload fails. A store
// failure part way leaves earlier upserts in place; calling again for the
// same date is safe.
func (s *FetchService) FetchAndStore(ctx context.Context, date, trigger string) (count int, err error) {
	if _, perr := time.Parse(DateLayout, date); perr != nil {
		return 0, errors.Wrapf(ErrInvalidDate, "%q", date)
	}

	s.active.Add(1)
	defer s.active.Add(-1)

	run := s.beginRun(date, trigger)
	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("fetch panicked: %v", r)
		}
		s.finishRun(run, count, err)
	}()

	deposits, err := s.fetch(ctx, date)
	if err != nil {
		return 0, err
	}

	for i := range deposits {
		if err := s.repo.UpsertDeposit(&deposits[i]); err != nil {
			return count, fmt.Errorf("%w: upsert %s: %w", ErrStore, deposits[i].TxnID, err)
		}
		count++
	}

	return count, nil
}

func (s *FetchService) fetch(ctx context.Context, date string) ([]models.Deposit, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	batch, err := s.fetcher.FetchDeposits(ctx, settlement.Request{
		Username: s.credentials.Username,
		Password: s.credentials.Password,
		Prefix:   s.credentials.Prefix,
		Date:     date,
	})
	if err != nil {
		if isTimeout(err) {
			return nil, fmt.Errorf("%w: no response within %s: %w", ErrUpstreamTimeout, s.timeout, err)
		}
		return nil, fmt.Errorf("%w: %w", ErrUpstream, err)
	}

	deposits, err := ToDeposits(date, batch)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUpstream, err)
	}
	return deposits, nil
}

// ToDeposits validates a settlement batch and fills defaults: a missing
// fetch date becomes date and a missing deposit type becomes Auto.
func ToDeposits(date string, batch []settlement.Deposit) ([]models.Deposit, error) {
	deposits := make([]models.Deposit, 0, len(batch))
	for i, d := range batch {
		txnID := strings.TrimSpace(d.TxnID)
		if txnID == "" {
			return nil, fmt.Errorf("deposit %d has no txn_id", i)
		}

		fetchDate := strings.TrimSpace(d.FetchDate)
		if fetchDate == "" {
			fetchDate = date
		}
		if _, err := time.Parse(DateLayout, fetchDate); err != nil {
			return nil, fmt.Errorf("deposit %s has invalid fetch_date %q", txnID, d.FetchDate)
		}

		depositType := d.DepositType
		if depositType == "" {
			depositType = models.DepositTypeAuto
		}

		deposits = append(deposits, models.Deposit{
			TxnID:         txnID,
			FetchDate:     fetchDate,
			DepositAmount: string(d.DepositAmount),
			BankIcon:      d.BankIcon,
			Status:        d.Status,
			Remark:        d.Remark,
			DepositType:   depositType,
		})
	}
	return deposits, nil
}

func (s *FetchService) beginRun(date, trigger string) *models.FetchRun {
	run := &models.FetchRun{
		ID:        uuid.NewString(),
		FetchDate: date,
		Trigger:   trigger,
		Status:    models.FetchStatusRunning,
		StartedAt: s.now(),
	}
	if err := s.repo.CreateFetchRun(run); err != nil {
		s.logger.Error("failed to record fetch run", "date", date, "error", err)
	}
	return run
}

func (s *FetchService) finishRun(run *models.FetchRun, count int, err error) {
	run.Ingested = count
	run.FinishedAt = s.now()
	run.Status = models.FetchStatusSuccess
	if err != nil {
		run.Status = models.FetchStatusFailed
		run.Error = err.Error()
		s.logger.Error("fetch failed",
			"date", run.FetchDate,
			"trigger", run.Trigger,
			"ingested", count,
			"error", err,
		)
	} else {
		s.logger.Info("fetch completed",
			"date", run.FetchDate,
			"trigger", run.Trigger,
			"ingested", count,
		)
	}

	if uerr := s.repo.UpdateFetchRun(run); uerr != nil {
		s.logger.Error("failed to update fetch run", "id", run.ID, "error", uerr)
	}
	if s.runs != nil {
		s.runs.Set(run.FetchDate, *run)
	}
	if s.publisher != nil {
		data, merr := json.Marshal(run)
		if merr != nil {
			s.logger.Error("failed to marshal fetch run", "id", run.ID, "error", merr)
			return
		}
		if perr := s.publisher.Publish(data); perr != nil {
			s.logger.Warn("failed to publish fetch run", "id", run.ID, "error", perr)
		}
	}
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
