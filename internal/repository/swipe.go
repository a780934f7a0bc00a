package repository

import (
	"context"
	"errors"

	"flatly/internal/models"

	"gorm.io/gorm"
)

// SwipeRepository defines the interface for swipe decision operations.
// Swipes are append-only: decisions are final and never updated.
type SwipeRepository interface {
	Create(ctx context.Context, swipe *models.Swipe) error
	GetByActorAndTarget(ctx context.Context, actorID, targetID uint) (*models.Swipe, error)
	ListByActor(ctx context.Context, actorID uint) ([]models.Swipe, error)
	// ListSwipedIDs returns the IDs of every user the actor has already
	// decided on, regardless of direction of the decision.
	ListSwipedIDs(ctx context.Context, actorID uint) ([]uint, error)
	// HasLike reports whether the actor has recorded a like on the target.
	HasLike(ctx context.Context, actorID, targetID uint) (bool, error)
	// ListActorsWithLikes returns the distinct IDs of users who have
	// recorded at least one like. Used by the orphan-repair sweep.
	ListActorsWithLikes(ctx context.Context) ([]uint, error)
	// ListLikedIDs returns the IDs of users the actor has liked.
	ListLikedIDs(ctx context.Context, actorID uint) ([]uint, error)
}

// swipeRepository implements SwipeRepository
type swipeRepository struct {
	db *gorm.DB
}

// NewSwipeRepository creates a new swipe repository
func NewSwipeRepository(db *gorm.DB) SwipeRepository {
	return &swipeRepository{db: db}
}

func (r *swipeRepository) Create(ctx context.Context, swipe *models.Swipe) error {
	if err := r.db.WithContext(ctx).Create(swipe).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// The unique index on (actor, target) backs up the
			// pre-mutation duplicate check under concurrency.
			return models.NewDuplicateDecisionError(swipe.TargetID)
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *swipeRepository) GetByActorAndTarget(ctx context.Context, actorID, targetID uint) (*models.Swipe, error) {
	var swipe models.Swipe
	if err := r.db.WithContext(ctx).
		Where("actor_id = ? AND target_id = ?", actorID, targetID).
		First(&swipe).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil // No decision recorded yet
		}
		return nil, models.NewInternalError(err)
	}
	return &swipe, nil
}

func (r *swipeRepository) ListByActor(ctx context.Context, actorID uint) ([]models.Swipe, error) {
	var swipes []models.Swipe
	if err := r.db.WithContext(ctx).
		Where("actor_id = ?", actorID).
		Preload("Target").
		Order("created_at DESC").
		Find(&swipes).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return swipes, nil
}

func (r *swipeRepository) ListSwipedIDs(ctx context.Context, actorID uint) ([]uint, error) {
	var ids []uint
	if err := r.db.WithContext(ctx).
		Model(&models.Swipe{}).
		Where("actor_id = ?", actorID).
		Pluck("target_id", &ids).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return ids, nil
}

func (r *swipeRepository) HasLike(ctx context.Context, actorID, targetID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Swipe{}).
		Where("actor_id = ? AND target_id = ? AND action = ?", actorID, targetID, models.SwipeLike).
		Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

func (r *swipeRepository) ListActorsWithLikes(ctx context.Context) ([]uint, error) {
	var ids []uint
	if err := r.db.WithContext(ctx).
		Model(&models.Swipe{}).
		Where("action = ?", models.SwipeLike).
		Distinct().
		Pluck("actor_id", &ids).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return ids, nil
}

func (r *swipeRepository) ListLikedIDs(ctx context.Context, actorID uint) ([]uint, error) {
	var ids []uint
	if err := r.db.WithContext(ctx).
		Model(&models.Swipe{}).
		Where("actor_id = ? AND action = ?", actorID, models.SwipeLike).
		Pluck("target_id", &ids).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return ids, nil
}
