package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/stitts-dev/dugout/internal/models"
)

// ErrInvalidDate is returned for dates not in YYYY-MM-DD form
var ErrInvalidDate = errors.New("invalid date: expected YYYY-MM-DD")

// ScheduleCache is the subset of CacheService the schedule needs
type ScheduleCache interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Key(elements ...string) string
}

// ScheduleService serves daily schedules through a read-through cache. When
// today has no games, the configured fallback date is served instead.
type ScheduleService struct {
	provider     ScheduleProvider
	cache        ScheduleCache
	liveTTL      time.Duration
	fallbackDate string
	now          func() time.Time
	logger       *logrus.Logger
}

// NewScheduleService creates a schedule service. cache may be nil.
func NewScheduleService(provider ScheduleProvider, cache ScheduleCache, liveTTL time.Duration, fallbackDate string, logger *logrus.Logger) *ScheduleService {
	if liveTTL <= 0 {
		liveTTL = LiveScheduleTTL
	}
	return &ScheduleService{
		provider:     provider,
		cache:        cache,
		liveTTL:      liveTTL,
		fallbackDate: fallbackDate,
		now:          time.Now,
		logger:       logger,
	}
}

// Today returns today's games, or the fallback date's games on an off day
func (s *ScheduleService) Today(ctx context.Context) (*models.DaySchedule, error) {
	today := s.now().Format(dateLayout)
	schedule, err := s.ByDate(ctx, today)
	if err != nil {
		return nil, err
	}
	if len(schedule.Games) > 0 || s.fallbackDate == "" || s.fallbackDate == today {
		return schedule, nil
	}

	s.logger.WithFields(logrus.Fields{
		"date":     today,
		"fallback": s.fallbackDate,
	}).Info("No games today, serving fallback schedule")

	fallback, err := s.ByDate(ctx, s.fallbackDate)
	if err != nil {
		return nil, err
	}
	fallback.Fallback = true
	return fallback, nil
}

// ByDate returns the games on a date (YYYY-MM-DD)
func (s *ScheduleService) ByDate(ctx context.Context, date string) (*models.DaySchedule, error) {
	if _, err := time.Parse(dateLayout, date); err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidDate, date)
	}

	if s.cache != nil {
		var cached models.DaySchedule
		err := s.cache.Get(ctx, s.cache.Key("schedule", date), &cached)
		if err == nil {
			return &cached, nil
		}
		if !errors.Is(err, ErrCacheMiss) {
			s.logger.WithError(err).WithField("date", date).Warn("Schedule cache unavailable")
		}
	}

	return s.fetch(ctx, date)
}

// Refresh refetches today's schedule into the cache
func (s *ScheduleService) Refresh(ctx context.Context) error {
	_, err := s.fetch(ctx, s.now().Format(dateLayout))
	return err
}

func (s *ScheduleService) fetch(ctx context.Context, date string) (*models.DaySchedule, error) {
	games, err := s.provider.Schedule(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch schedule for %s: %w", date, err)
	}
	schedule := &models.DaySchedule{Date: date, Games: games}

	if s.cache != nil {
		if err := s.cache.Set(ctx, s.cache.Key("schedule", date), schedule, s.ttlFor(date)); err != nil {
			s.logger.WithError(err).WithField("date", date).Warn("Failed to cache schedule")
		}
	}
	return schedule, nil
}

// past days are final and can be cached much longer
func (s *ScheduleService) ttlFor(date string) time.Duration {
	if date < s.now().AddDate(0, 0, -1).Format(dateLayout) {
		return PastScheduleTTL
	}
	return s.liveTTL
}

// ScheduleWarmer keeps today's schedule hot in the cache
type ScheduleWarmer struct {
	schedule *ScheduleService
	cron     *cron.Cron
	interval time.Duration
	timeout  time.Duration
	logger   *logrus.Logger
}

// NewScheduleWarmer creates a warmer that refreshes on a fixed interval
func NewScheduleWarmer(schedule *ScheduleService, interval time.Duration, logger *logrus.Logger) *ScheduleWarmer {
	if interval <= 0 {
		interval = LiveScheduleTTL
	}
	return &ScheduleWarmer{
		schedule: schedule,
		cron:     cron.New(cron.WithLogger(cron.VerbosePrintfLogger(logger))),
		interval: interval,
		timeout:  30 * time.Second,
		logger:   logger,
	}
}

// Start registers the refresh job and starts the scheduler
func (w *ScheduleWarmer) Start() error {
	spec := "@every " + w.interval.String()
	if _, err := w.cron.AddFunc(spec, w.run); err != nil {
		return fmt.Errorf("failed to schedule warmer %q: %w", spec, err)
	}
	w.cron.Start()

	w.logger.WithFields(logrus.Fields{
		"component": "schedule_warmer",
		"interval":  w.interval.String(),
	}).Info("Schedule warmer started")
	return nil
}

// Stop halts the scheduler; the returned context is done when running jobs finish
func (w *ScheduleWarmer) Stop() context.Context {
	return w.cron.Stop()
}

func (w *ScheduleWarmer) run() {
	ctx, cancel := context.WithTimeout(context.Background(), w.timeout)
	defer cancel()

	start := time.Now()
	if err := w.schedule.Refresh(ctx); err != nil {
		w.logger.WithError(err).WithField("component", "schedule_warmer").Error("Schedule refresh failed")
		return
	}
	w.logger.WithFields(logrus.Fields{
		"component": "schedule_warmer",
		"duration":  time.Since(start).String(),
	}).Debug("Schedule refreshed")
}
