package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"flatly/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSweepOnceExpiresDueListings(t *testing.T) {
	deadline := time.Now().Add(-time.Hour)
	updated := map[uint]models.ReplacementStatus{}

	svc := NewReplacementService(&listingRepoStub{
		listDueReplacementsFn: func(context.Context, time.Time) ([]models.Listing, error) {
			return []models.Listing{
				{ID: 1, IsReplacementListing: true, ReplacementStatus: models.ReplacementActive, ReplacementDeadline: &deadline},
				{ID: 2, IsReplacementListing: true, ReplacementStatus: models.ReplacementExtended, ReplacementDeadline: &deadline},
			}, nil
		},
		updateReplacementStatusFn: func(_ context.Context, id uint, status models.ReplacementStatus) error {
			updated[id] = status
			return nil
		},
	}, time.Hour)

	expired, err := svc.SweepOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, expired)
	assert.Equal(t, models.ReplacementExpired, updated[1])
	assert.Equal(t, models.ReplacementExpired, updated[2])
}

func TestSweepOnceContinuesPastUpdateFailure(t *testing.T) {
	deadline := time.Now().Add(-time.Hour)

	svc := NewReplacementService(&listingRepoStub{
		listDueReplacementsFn: func(context.Context, time.Time) ([]models.Listing, error) {
			return []models.Listing{
				{ID: 1, ReplacementStatus: models.ReplacementActive, ReplacementDeadline: &deadline},
				{ID: 2, ReplacementStatus: models.ReplacementActive, ReplacementDeadline: &deadline},
			}, nil
		},
		updateReplacementStatusFn: func(_ context.Context, id uint, _ models.ReplacementStatus) error {
			if id == 1 {
				return errors.New("db hiccup")
			}
			return nil
		},
	}, time.Hour)

	expired, err := svc.SweepOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, expired)
}

func TestSweepOnceNothingDue(t *testing.T) {
	svc := NewReplacementService(&listingRepoStub{
		listDueReplacementsFn: func(context.Context, time.Time) ([]models.Listing, error) {
			return nil, nil
		},
	}, time.Hour)

	expired, err := svc.SweepOnce(context.Background())
	require.NoError(t, err)
	assert.Zero(t, expired)
}

func TestRunStopsOnContextCancel(t *testing.T) {
	svc := NewReplacementService(&listingRepoStub{
		listDueReplacementsFn: func(context.Context, time.Time) ([]models.Listing, error) {
			return nil, nil
		},
	}, 10*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		svc.Run(ctx)
		close(done)
	}()

	time.Sleep(30 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not stop after context cancellation")
	}
}
