package repository

import (
	"context"
	"errors"
	"time"

	"flatly/internal/models"

	"gorm.io/gorm"
)

// ListingRepository defines the interface for listing data operations.
type ListingRepository interface {
	Create(ctx context.Context, listing *models.Listing) error
	GetByID(ctx context.Context, id uint) (*models.Listing, error)
	Update(ctx context.Context, listing *models.Listing) error
	Delete(ctx context.Context, id uint) error
	ListByOwner(ctx context.Context, ownerID uint) ([]models.Listing, error)
	ListByCity(ctx context.Context, city string, limit, offset int) ([]models.Listing, error)
	// HasActivePriorityListing is the one signal the matching core
	// consumes: does this user own an active replacement listing whose
	// replacement search is running?
	HasActivePriorityListing(ctx context.Context, ownerID uint) (bool, error)
	// ListDueReplacements returns replacement listings whose deadline has
	// passed but whose replacement search is still marked running.
	ListDueReplacements(ctx context.Context, now time.Time) ([]models.Listing, error)
	UpdateReplacementStatus(ctx context.Context, listingID uint, status models.ReplacementStatus) error
}

// listingRepository implements ListingRepository
type listingRepository struct {
	db *gorm.DB
}

// NewListingRepository creates a new listing repository
func NewListingRepository(db *gorm.DB) ListingRepository {
	return &listingRepository{db: db}
}

func (r *listingRepository) Create(ctx context.Context, listing *models.Listing) error {
	if err := r.db.WithContext(ctx).Create(listing).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *listingRepository) GetByID(ctx context.Context, id uint) (*models.Listing, error) {
	var listing models.Listing
	if err := r.db.WithContext(ctx).Preload("Owner").First(&listing, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Listing", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &listing, nil
}

func (r *listingRepository) Update(ctx context.Context, listing *models.Listing) error {
	if err := r.db.WithContext(ctx).Save(listing).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *listingRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.Listing{}, id).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *listingRepository) ListByOwner(ctx context.Context, ownerID uint) ([]models.Listing, error) {
	var listings []models.Listing
	if err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&listings).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return listings, nil
}

func (r *listingRepository) ListByCity(ctx context.Context, city string, limit, offset int) ([]models.Listing, error) {
	var listings []models.Listing
	query := r.db.WithContext(ctx).Where("status = ?", models.ListingStatusActive)
	if city != "" {
		query = query.Where("LOWER(city) LIKE LOWER(?)", "%"+city+"%")
	}
	if err := query.Limit(limit).Offset(offset).Order("created_at DESC").Find(&listings).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return listings, nil
}

func (r *listingRepository) HasActivePriorityListing(ctx context.Context, ownerID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Listing{}).
		Where("owner_id = ? AND status = ? AND is_replacement_listing = ? AND replacement_status = ?",
			ownerID, models.ListingStatusActive, true, models.ReplacementActive).
		Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

func (r *listingRepository) ListDueReplacements(ctx context.Context, now time.Time) ([]models.Listing, error) {
	var listings []models.Listing
	if err := r.db.WithContext(ctx).
		Where("is_replacement_listing = ?", true).
		Where("replacement_status IN ?", []models.ReplacementStatus{models.ReplacementActive, models.ReplacementExtended}).
		Where("replacement_deadline IS NOT NULL AND replacement_deadline <= ?", now).
		Find(&listings).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return listings, nil
}

func (r *listingRepository) UpdateReplacementStatus(ctx context.Context, listingID uint, status models.ReplacementStatus) error {
	if err := r.db.WithContext(ctx).
		Model(&models.Listing{}).
		Where("id = ?", listingID).
		Update("replacement_status", status).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}
