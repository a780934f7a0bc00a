package repository

import (
	"context"
	"errors"

	"flatly/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// MatchRepository defines the interface for match record operations.
type MatchRepository interface {
	// CreateIgnoreDuplicate inserts one side of a match. A row that
	// already exists for the (user, counterpart) pair is a silent no-op,
	// which makes concurrent double-creation of the same match safe.
	CreateIgnoreDuplicate(ctx context.Context, match *models.Match) error
	GetByUserAndCounterpart(ctx context.Context, userID, counterpartID uint) (*models.Match, error)
	ListByUser(ctx context.Context, userID uint) ([]models.Match, error)
	// DeletePair removes both sides of a match, preserving the
	// bidirectional-symmetry invariant on unmatch.
	DeletePair(ctx context.Context, userID, counterpartID uint) error
}

// matchRepository implements MatchRepository
type matchRepository struct {
	db *gorm.DB
}

// NewMatchRepository creates a new match repository
func NewMatchRepository(db *gorm.DB) MatchRepository {
	return &matchRepository{db: db}
}

func (r *matchRepository) CreateIgnoreDuplicate(ctx context.Context, match *models.Match) error {
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(match).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *matchRepository) GetByUserAndCounterpart(ctx context.Context, userID, counterpartID uint) (*models.Match, error) {
	var match models.Match
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND counterpart_id = ?", userID, counterpartID).
		First(&match).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil // No match entry on this side
		}
		return nil, models.NewInternalError(err)
	}
	return &match, nil
}

func (r *matchRepository) ListByUser(ctx context.Context, userID uint) ([]models.Match, error) {
	var matches []models.Match
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Preload("Counterpart").
		Order("created_at DESC").
		Find(&matches).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return matches, nil
}

func (r *matchRepository) DeletePair(ctx context.Context, userID, counterpartID uint) error {
	if err := r.db.WithContext(ctx).
		Where("(user_id = ? AND counterpart_id = ?) OR (user_id = ? AND counterpart_id = ?)",
			userID, counterpartID, counterpartID, userID).
		Delete(&models.Match{}).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}
