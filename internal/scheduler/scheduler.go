package scheduler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/Arnold-CK/Anjo/internal/domain/models"
)

// SnapshotSource computes the weekly roll-up.
type SnapshotSource interface {
	WeeklyTotals(ctx context.Context, at time.Time) models.WeeklyTotals
}

// SnapshotStore archives snapshots.
type SnapshotStore interface {
	SaveWeeklySnapshot(ctx context.Context, snapshot models.WeeklySnapshot) error
}

// DigestSender delivers the weekly totals to the farm managers.
type DigestSender interface {
	SendDigest(ctx context.Context, totals models.WeeklyTotals) error
}

// Scheduler manages scheduled tasks.
type Scheduler struct {
	cron     *cron.Cron
	schedule string
	source   SnapshotSource
	store    SnapshotStore
	digest   DigestSender
	now      func() time.Time
	logger   *zap.Logger
}

// NewScheduler creates a scheduler running the weekly report on schedule in
// loc. store and digest are optional.
func NewScheduler(schedule string, loc *time.Location, source SnapshotSource, store SnapshotStore, digest DigestSender, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if loc == nil {
		loc = time.UTC
	}

	return &Scheduler{
		cron:     cron.New(cron.WithLocation(loc)),
		schedule: schedule,
		source:   source,
		store:    store,
		digest:   digest,
		now:      time.Now,
		logger:   logger,
	}
}

// Start registers the weekly report and starts the scheduler.
func (s *Scheduler) Start() error {
	s.logger.Info("starting scheduler", zap.String("schedule", s.schedule))

	if _, err := s.cron.AddFunc(s.schedule, s.runWeeklyReport); err != nil {
		return fmt.Errorf("schedule weekly report %q: %w", s.schedule, err)
	}

	s.cron.Start()
	return nil
}

// Stop stops the scheduler and waits for a running job.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	<-s.cron.Stop().Done()
}

func (s *Scheduler) runWeeklyReport() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if err := s.WeeklyReport(ctx); err != nil {
		s.logger.Error("weekly report incomplete", zap.Error(err))
	}
}

// WeeklyReport computes the current week's snapshot, archives it and sends
// the digest. Every configured step runs even when an earlier one fails.
func (s *Scheduler) WeeklyReport(ctx context.Context) error {
	s.logger.Info("generating weekly report")
	totals := s.source.WeeklyTotals(ctx, s.now())

	var errs []error
	if s.store != nil {
		if err := s.store.SaveWeeklySnapshot(ctx, totals.Snapshot(s.now().UTC())); err != nil {
			errs = append(errs, fmt.Errorf("save snapshot: %w", err))
		} else {
			s.logger.Info("weekly snapshot saved", zap.Time("from", totals.From))
		}
	}

	if s.digest != nil {
		if err := s.digest.SendDigest(ctx, totals); err != nil {
			errs = append(errs, fmt.Errorf("send digest: %w", err))
		}
	}

	return errors.Join(errs...)
}
