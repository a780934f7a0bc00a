package server

import (
	"time"

	"flatly/internal/models"
	"flatly/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreateListing handles POST /api/listings
func (s *Server) CreateListing(c *fiber.Ctx) error {
	var req struct {
		Title                string     `json:"title"`
		Description          string     `json:"description"`
		RoomType             string     `json:"room_type"`
		Rent                 int        `json:"rent"`
		City                 string     `json:"city"`
		Area                 string     `json:"area"`
		Amenities            string     `json:"amenities"`
		IsReplacementListing bool       `json:"is_replacement_listing"`
		ReplacementDeadline  *time.Time `json:"replacement_deadline"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	listing, err := s.listingService.CreateListing(c.Context(), service.CreateListingInput{
		OwnerID:              currentUserID(c),
		Title:                req.Title,
		Description:          req.Description,
		RoomType:             req.RoomType,
		Rent:                 req.Rent,
		City:                 req.City,
		Area:                 req.Area,
		Amenities:            req.Amenities,
		IsReplacementListing: req.IsReplacementListing,
		ReplacementDeadline:  req.ReplacementDeadline,
	})
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(listing)
}

// GetListings handles GET /api/listings
func (s *Server) GetListings(c *fiber.Ctx) error {
	city := c.Query("city")
	pagination := parsePagination(c, 20)

	listings, err := s.listingService.ListByCity(c.Context(), city, pagination.Limit, pagination.Offset)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"listings": listings,
	})
}

// GetMyListings handles GET /api/listings/me
func (s *Server) GetMyListings(c *fiber.Ctx) error {
	listings, err := s.listingService.ListByOwner(c.Context(), currentUserID(c))
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"listings": listings,
	})
}

// GetListing handles GET /api/listings/:id
func (s *Server) GetListing(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	listing, err := s.listingService.GetListing(c.Context(), id)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(listing)
}

// UpdateListing handles PUT /api/listings/:id
func (s *Server) UpdateListing(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Title       string               `json:"title"`
		Description string               `json:"description"`
		Rent        *int                 `json:"rent"`
		Status      models.ListingStatus `json:"status"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	listing, err := s.listingService.UpdateListing(c.Context(), service.UpdateListingInput{
		ListingID:   id,
		OwnerID:     currentUserID(c),
		Title:       req.Title,
		Description: req.Description,
		Rent:        req.Rent,
		Status:      req.Status,
	})
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(listing)
}

// SetReplacementDeadline handles POST /api/listings/:id/replacement
func (s *Server) SetReplacementDeadline(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Deadline time.Time `json:"deadline"`
	}
	if err := c.BodyParser(&req); err != nil || req.Deadline.IsZero() {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("A deadline is required"))
	}

	listing, err := s.listingService.SetReplacementDeadline(c.Context(), id, currentUserID(c), req.Deadline)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(listing)
}

// MarkReplacementFulfilled handles POST /api/listings/:id/fulfill
func (s *Server) MarkReplacementFulfilled(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	listing, err := s.listingService.MarkReplacementFulfilled(c.Context(), id, currentUserID(c))
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(listing)
}

// DeleteListing handles DELETE /api/listings/:id
func (s *Server) DeleteListing(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.listingService.DeleteListing(c.Context(), id, currentUserID(c)); err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
