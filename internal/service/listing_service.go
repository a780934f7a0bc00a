package service

import (
	"context"
	"strings"
	"time"

	"flatly/internal/models"
	"flatly/internal/repository"
)

// ListingService manages room listings and their replacement lifecycle.
type ListingService struct {
	listingRepo repository.ListingRepository
	userRepo    repository.UserRepository
}

func NewListingService(listingRepo repository.ListingRepository, userRepo repository.UserRepository) *ListingService {
	return &ListingService{listingRepo: listingRepo, userRepo: userRepo}
}

type CreateListingInput struct {
	OwnerID              uint
	Title                string
	Description          string
	RoomType             string
	Rent                 int
	City                 string
	Area                 string
	Amenities            string
	IsReplacementListing bool
	ReplacementDeadline  *time.Time
}

// CreateListing creates a listing for a room provider. Replacement
// listings with a deadline start their replacement search immediately.
func (s *ListingService) CreateListing(ctx context.Context, in CreateListingInput) (*models.Listing, error) {
	owner, err := s.userRepo.GetByID(ctx, in.OwnerID)
	if err != nil {
		return nil, err
	}
	if owner.Intent != models.IntentSeekingRoommate {
		return nil, models.NewValidationError("Only room providers can post listings")
	}
	if strings.TrimSpace(in.Title) == "" {
		return nil, models.NewValidationError("Title is required")
	}
	if in.Rent < 0 {
		return nil, models.NewValidationError("Rent cannot be negative")
	}
	if in.ReplacementDeadline != nil && in.ReplacementDeadline.Before(time.Now()) {
		return nil, models.NewValidationError("Replacement deadline must be in the future")
	}

	listing := &models.Listing{
		OwnerID:              in.OwnerID,
		Title:                strings.TrimSpace(in.Title),
		Description:          in.Description,
		RoomType:             in.RoomType,
		Rent:                 in.Rent,
		City:                 strings.TrimSpace(in.City),
		Area:                 in.Area,
		Amenities:            in.Amenities,
		Status:               models.ListingStatusActive,
		IsReplacementListing: in.IsReplacementListing,
		ReplacementDeadline:  in.ReplacementDeadline,
	}
	if in.IsReplacementListing {
		if in.ReplacementDeadline != nil {
			listing.ReplacementStatus = models.ReplacementActive
		} else {
			listing.ReplacementStatus = models.ReplacementPending
		}
	}

	if err := s.listingRepo.Create(ctx, listing); err != nil {
		return nil, err
	}
	return listing, nil
}

func (s *ListingService) GetListing(ctx context.Context, id uint) (*models.Listing, error) {
	return s.listingRepo.GetByID(ctx, id)
}

func (s *ListingService) ListByOwner(ctx context.Context, ownerID uint) ([]models.Listing, error) {
	return s.listingRepo.ListByOwner(ctx, ownerID)
}

func (s *ListingService) ListByCity(ctx context.Context, city string, limit, offset int) ([]models.Listing, error) {
	if limit <= 0 || limit > 50 {
		limit = 20
	}
	return s.listingRepo.ListByCity(ctx, city, limit, offset)
}

type UpdateListingInput struct {
	ListingID   uint
	OwnerID     uint
	Title       string
	Description string
	Rent        *int
	Status      models.ListingStatus
}

// UpdateListing applies partial changes. Only the owner may update.
func (s *ListingService) UpdateListing(ctx context.Context, in UpdateListingInput) (*models.Listing, error) {
	listing, err := s.listingRepo.GetByID(ctx, in.ListingID)
	if err != nil {
		return nil, err
	}
	if listing.OwnerID != in.OwnerID {
		return nil, models.NewUnauthorizedError("You do not own this listing")
	}

	if in.Title != "" {
		listing.Title = strings.TrimSpace(in.Title)
	}
	if in.Description != "" {
		listing.Description = in.Description
	}
	if in.Rent != nil {
		if *in.Rent < 0 {
			return nil, models.NewValidationError("Rent cannot be negative")
		}
		listing.Rent = *in.Rent
	}
	if in.Status != "" {
		switch in.Status {
		case models.ListingStatusActive, models.ListingStatusInactive, models.ListingStatusRented:
			listing.Status = in.Status
		default:
			return nil, models.NewValidationError("Unknown listing status")
		}
	}

	if err := s.listingRepo.Update(ctx, listing); err != nil {
		return nil, err
	}
	return listing, nil
}

// SetReplacementDeadline starts or restarts a replacement search on a
// listing. An owner may also extend a running search, which moves the
// status to extended.
func (s *ListingService) SetReplacementDeadline(ctx context.Context, listingID, ownerID uint, deadline time.Time) (*models.Listing, error) {
	listing, err := s.listingRepo.GetByID(ctx, listingID)
	if err != nil {
		return nil, err
	}
	if listing.OwnerID != ownerID {
		return nil, models.NewUnauthorizedError("You do not own this listing")
	}
	if deadline.Before(time.Now()) {
		return nil, models.NewValidationError("Replacement deadline must be in the future")
	}

	listing.IsReplacementListing = true
	listing.ReplacementDeadline = &deadline
	if listing.ReplacementStatus == models.ReplacementActive {
		listing.ReplacementStatus = models.ReplacementExtended
	} else {
		listing.ReplacementStatus = models.ReplacementActive
	}
	listing.ReplacementNotified = false

	if err := s.listingRepo.Update(ctx, listing); err != nil {
		return nil, err
	}
	return listing, nil
}

// MarkReplacementFulfilled closes a replacement search after a roommate
// was found, which also removes the owner's priority boost.
func (s *ListingService) MarkReplacementFulfilled(ctx context.Context, listingID, ownerID uint) (*models.Listing, error) {
	listing, err := s.listingRepo.GetByID(ctx, listingID)
	if err != nil {
		return nil, err
	}
	if listing.OwnerID != ownerID {
		return nil, models.NewUnauthorizedError("You do not own this listing")
	}
	if !listing.IsReplacementListing {
		return nil, models.NewValidationError("Not a replacement listing")
	}

	listing.ReplacementStatus = models.ReplacementFulfilled
	listing.Status = models.ListingStatusRented

	if err := s.listingRepo.Update(ctx, listing); err != nil {
		return nil, err
	}
	return listing, nil
}

func (s *ListingService) DeleteListing(ctx context.Context, listingID, ownerID uint) error {
	listing, err := s.listingRepo.GetByID(ctx, listingID)
	if err != nil {
		return err
	}
	if listing.OwnerID != ownerID {
		return models.NewUnauthorizedError("You do not own this listing")
	}
	return s.listingRepo.Delete(ctx, listingID)
}
