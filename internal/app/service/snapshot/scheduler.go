package snapshot

import (
	"context"
	"time"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/grupomv/mapaventas/internal/models"
	"github.com/grupomv/mapaventas/pkg/config"
)

// Scheduler fires snapshot generation at midnight in the reference timezone.
// The daily run always fires; the monthly run additionally fires on the last
// day of the month. No retry on failure, the next midnight tries again.
type Scheduler struct {
	svc *Service
	log *zap.SugaredLogger
	now func() time.Time
}

func NewScheduler(svc *Service, log *zap.SugaredLogger) *Scheduler {
	return &Scheduler{svc: svc, log: log, now: time.Now}
}

// nextMidnight returns the next 00:00 strictly after t.
func nextMidnight(t time.Time) time.Time {
	next := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	if !next.After(t) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}

// isLastDayOfMonth detects month end by checking whether tomorrow rolls over
// to the 1st.
func isLastDayOfMonth(t time.Time) bool {
	return t.AddDate(0, 0, 1).Day() == 1
}

// Run blocks until ctx is done, firing generation at every midnight.
func (s *Scheduler) Run(ctx context.Context) {
	for {
		now := s.now().In(s.svc.loc)
		timer := time.NewTimer(time.Until(nextMidnight(now)))
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case fired := <-timer.C:
			s.fire(ctx, fired.In(s.svc.loc))
		}
	}
}

func (s *Scheduler) fire(ctx context.Context, now time.Time) {
	if _, err := s.svc.GenerateSnapshots(ctx, models.SnapshotTipoDiario, TriggerScheduler); err != nil {
		s.log.Errorw("scheduled daily snapshot run failed", "err", err)
	}
	if isLastDayOfMonth(now) {
		if _, err := s.svc.GenerateSnapshots(ctx, models.SnapshotTipoMensual, TriggerScheduler); err != nil {
			s.log.Errorw("scheduled monthly snapshot run failed", "err", err)
		}
	}
}

// runScheduler ties the scheduler loop to the fx lifecycle.
func runScheduler(lc fx.Lifecycle, cfg *config.Config, sched *Scheduler, log *zap.SugaredLogger) {
	if !cfg.Snapshot.SchedulerEnabled {
		log.Infow("snapshot scheduler disabled by config")
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			log.Infow("snapshot scheduler started", "timezone", cfg.Snapshot.Timezone)
			go func() {
				defer close(done)
				sched.Run(ctx)
			}()
			return nil
		},
		OnStop: func(stopCtx context.Context) error {
			cancel()
			select {
			case <-done:
			case <-stopCtx.Done():
			}
			return nil
		},
	})
}
