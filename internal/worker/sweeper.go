// worker/sweeper.go
package worker

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/devoapp/backend/internal/devotional"
)

// Sweeper periodically purges devotionals whose end date has passed, together
// with their messages. Runs at most one purge per calendar day regardless of
// the check interval.
type Sweeper struct {
	devotionals devotional.Registry
	interval    time.Duration
	log         *logrus.Entry

	lastSweep time.Time
}

// NewSweeper creates a sweeper checking at the given interval.
func NewSweeper(devotionals devotional.Registry, interval time.Duration) *Sweeper {
	if interval <= 0 {
		interval = time.Hour
	}
	return &Sweeper{
		devotionals: devotionals,
		interval:    interval,
		log:         logrus.WithField("component", "devotional_sweeper"),
	}
}

// Run blocks until ctx is cancelled. One sweep fires immediately on start.
func (s *Sweeper) Run(ctx context.Context) {
	s.log.WithField("interval", s.interval.String()).Info("devotional sweeper started")

	s.sweep(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.log.Info("devotional sweeper stopped")
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *Sweeper) sweep(ctx context.Context) {
	now := time.Now()
	if sameDay(s.lastSweep, now) {
		return
	}

	purged, err := s.devotionals.PurgeExpired(ctx)
	if err != nil {
		s.log.WithError(err).Error("purge of expired devotionals failed")
		return
	}

	s.lastSweep = now
	if purged > 0 {
		s.log.WithField("purged", purged).Info("expired devotionals removed")
	}
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
