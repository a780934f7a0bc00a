package server

import (
	"flatly/internal/matching"
	"flatly/internal/models"
	"flatly/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetMyProfile handles GET /api/users/me
func (s *Server) GetMyProfile(c *fiber.Ctx) error {
	user, err := s.profileService.GetUserByID(c.Context(), currentUserID(c))
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(user)
}

// GetUserProfile handles GET /api/users/:id
func (s *Server) GetUserProfile(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	user, err := s.profileService.GetUserByID(c.Context(), id)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	// Another user's profile never exposes contact details.
	user.Email = ""
	user.PhoneNumber = ""
	return c.Status(fiber.StatusOK).JSON(user)
}

// UpdateMyProfile handles PUT /api/users/me
func (s *Server) UpdateMyProfile(c *fiber.Ctx) error {
	var req struct {
		Name            string        `json:"name"`
		Age             int           `json:"age"`
		City            string        `json:"city"`
		PhoneNumber     string        `json:"phone_number"`
		Bio             string        `json:"bio"`
		InstagramHandle string        `json:"instagram_handle"`
		Gender          string        `json:"gender"`
		PreferredGender string        `json:"preferred_gender"`
		Intent          models.Intent `json:"intent"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.profileService.UpdateProfile(c.Context(), service.UpdateProfileInput{
		UserID:          currentUserID(c),
		Name:            req.Name,
		Age:             req.Age,
		City:            req.City,
		PhoneNumber:     req.PhoneNumber,
		Bio:             req.Bio,
		InstagramHandle: req.InstagramHandle,
		Gender:          req.Gender,
		PreferredGender: req.PreferredGender,
		Intent:          req.Intent,
	})
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(user)
}

// GetSelfQuestionnaire handles GET /api/questionnaire/self
func (s *Server) GetSelfQuestionnaire(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"questions": matching.SelfQuestionnaire(),
	})
}

// GetDesiredQuestionnaire handles GET /api/questionnaire/desired.
// The question set depends on the caller's intent.
func (s *Server) GetDesiredQuestionnaire(c *fiber.Ctx) error {
	user, err := s.profileService.GetUserByID(c.Context(), currentUserID(c))
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	if !user.Intent.Valid() {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Set your intent before requesting the questionnaire"))
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"intent":    user.Intent,
		"questions": matching.DesiredQuestionnaire(user.Intent),
	})
}

// SubmitSelfQuestionnaire handles POST /api/questionnaire/self
func (s *Server) SubmitSelfQuestionnaire(c *fiber.Ctx) error {
	var req struct {
		Answers map[string]string `json:"answers"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.profileService.SubmitSelfQuestionnaire(c.Context(), currentUserID(c), req.Answers)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	s.invalidateUserCache(c, user.ID)

	return c.Status(fiber.StatusOK).JSON(user)
}

// SubmitDesiredQuestionnaire handles POST /api/questionnaire/desired
func (s *Server) SubmitDesiredQuestionnaire(c *fiber.Ctx) error {
	var req struct {
		Answers map[string]string `json:"answers"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.profileService.SubmitDesiredQuestionnaire(c.Context(), currentUserID(c), req.Answers)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	s.invalidateUserCache(c, user.ID)

	return c.Status(fiber.StatusOK).JSON(user)
}
