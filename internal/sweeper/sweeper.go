// Package sweeper runs the periodic database maintenance: purging long
// expired verification tokens and archiving drafts that were never
// verified.
package sweeper

import (
	"context"
	"log/slog"
	"time"

	"github.com/yotayard/yotayard/internal/metrics"
	"github.com/yotayard/yotayard/internal/repository"
)

const (
	// Expired tokens stay around for a grace window so the redeem
	// endpoint can report "expired" instead of "invalid".
	tokenRetention = 7 * 24 * time.Hour

	// Drafts whose verification window has long passed get archived.
	draftRetention = 30 * 24 * time.Hour

	batchSize = 500
)

type Sweeper struct {
	tokens   repository.VerificationRepository
	listings repository.ListingRepository
	logger   *slog.Logger
	now      func() time.Time
}

func New(tokens repository.VerificationRepository, listings repository.ListingRepository, logger *slog.Logger) *Sweeper {
	return &Sweeper{
		tokens:   tokens,
		listings: listings,
		logger:   logger.With("component", "sweeper"),
		now:      time.Now,
	}
}

// Sweep runs one maintenance cycle. Each action is independent; a
// failure in one does not stop the other.
func (s *Sweeper) Sweep(ctx context.Context) {
	start := s.now()
	defer func() {
		metrics.SweepDuration.Observe(time.Since(start).Seconds())
	}()

	purged, err := s.tokens.PurgeExpired(ctx, start.Add(-tokenRetention), batchSize)
	if err != nil {
		s.logger.ErrorContext(ctx, "purge expired tokens", "error", err)
	} else if purged > 0 {
		metrics.SweeperActionsTotal.WithLabelValues("tokens_purged").Add(float64(purged))
		s.logger.InfoContext(ctx, "purged expired verification tokens", "count", purged)
	}

	archived, err := s.listings.ArchiveStaleDrafts(ctx, start.Add(-draftRetention), batchSize)
	if err != nil {
		s.logger.ErrorContext(ctx, "archive stale drafts", "error", err)
	} else if archived > 0 {
		metrics.SweeperActionsTotal.WithLabelValues("drafts_archived").Add(float64(archived))
		s.logger.InfoContext(ctx, "archived stale drafts", "count", archived)
	}
}

// WithClock overrides the sweeper clock. Test hook.
func (s *Sweeper) WithClock(now func() time.Time) *Sweeper {
	s.now = now
	return s
}
