package service

import (
	"context"
	"time"

	"flatly/internal/models"
	"flatly/internal/observability"
	"flatly/internal/repository"
)

// ReplacementService expires replacement searches whose deadline has
// passed. It runs as a background sweep alongside the API server.
type ReplacementService struct {
	listingRepo repository.ListingRepository
	interval    time.Duration
	now         func() time.Time
}

func NewReplacementService(listingRepo repository.ListingRepository, interval time.Duration) *ReplacementService {
	if interval <= 0 {
		interval = time.Hour
	}
	return &ReplacementService{
		listingRepo: listingRepo,
		interval:    interval,
		now:         time.Now,
	}
}

// SweepOnce marks every due replacement listing expired and returns how
// many were updated. Listings already fulfilled or expired are untouched.
func (s *ReplacementService) SweepOnce(ctx context.Context) (int, error) {
	due, err := s.listingRepo.ListDueReplacements(ctx, s.now())
	if err != nil {
		return 0, err
	}

	expired := 0
	for _, listing := range due {
		if err := s.listingRepo.UpdateReplacementStatus(ctx, listing.ID, models.ReplacementExpired); err != nil {
			observability.GlobalLogger.Error("failed to expire replacement listing",
				"listing_id", listing.ID, "error", err)
			continue
		}
		expired++
		observability.ReplacementListingsExpired.Inc()
	}

	if expired > 0 {
		observability.GlobalLogger.Info("replacement sweep completed",
			"expired", expired, "due", len(due))
	}
	return expired, nil
}

// Run sweeps on the configured interval until the context is cancelled.
func (s *ReplacementService) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := s.SweepOnce(ctx); err != nil {
				observability.GlobalLogger.Error("replacement sweep failed", "error", err)
			}
		}
	}
}
