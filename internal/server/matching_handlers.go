package server

import (
	"flatly/internal/cache"
	"flatly/internal/models"
	"flatly/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetPotentialMatches handles GET /api/matches/potential
func (s *Server) GetPotentialMatches(c *fiber.Ctx) error {
	userID := currentUserID(c)
	pagination := parsePagination(c, 10)

	var cached []service.PotentialMatch
	if cache.GetPotentialMatches(c.Context(), userID, pagination.Limit, &cached) {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"matches": cached,
			"cached":  true,
		})
	}

	results, err := s.matchService.GetPotentialMatches(c.Context(), userID, pagination.Limit)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	cache.SetPotentialMatches(c.Context(), userID, pagination.Limit, results)

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"matches": results,
	})
}

// RecordSwipe handles POST /api/swipes
func (s *Server) RecordSwipe(c *fiber.Ctx) error {
	var req struct {
		TargetID uint               `json:"target_id"`
		Action   models.SwipeAction `json:"action"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if req.TargetID == 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("target_id is required"))
	}

	userID := currentUserID(c)
	result, err := s.matchService.RecordSwipeAndCheckMatch(c.Context(), userID, req.TargetID, req.Action)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	// The swipe changed both users' feeds; a match also changed both
	// users' match lists.
	s.invalidateUserCache(c, userID)
	if result.IsMatch {
		s.invalidateUserCache(c, req.TargetID)
	}

	status := fiber.StatusOK
	if result.IsMatch {
		status = fiber.StatusCreated
	}
	return c.Status(status).JSON(result)
}

// GetMatches handles GET /api/matches
func (s *Server) GetMatches(c *fiber.Ctx) error {
	userID := currentUserID(c)

	var cached []models.Match
	if cache.GetMatchList(c.Context(), userID, &cached) {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"matches": cached,
			"cached":  true,
		})
	}

	matches, err := s.matchService.GetMatches(c.Context(), userID)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	cache.SetMatchList(c.Context(), userID, matches)

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"matches": matches,
	})
}

// GetMatchScore handles GET /api/matches/score/:userId
func (s *Server) GetMatchScore(c *fiber.Ctx) error {
	otherID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}

	score, err := s.matchService.ScoreBetween(c.Context(), currentUserID(c), otherID)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"user_id":     otherID,
		"match_score": score,
	})
}

// Unmatch handles DELETE /api/matches/:userId
func (s *Server) Unmatch(c *fiber.Ctx) error {
	counterpartID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}

	userID := currentUserID(c)
	if err := s.matchService.Unmatch(c.Context(), userID, counterpartID); err != nil {
		return models.RespondWithAppError(c, err)
	}
	s.invalidateUserCache(c, userID)
	s.invalidateUserCache(c, counterpartID)

	return c.SendStatus(fiber.StatusNoContent)
}

// GetSwipeHistory handles GET /api/swipes/history
func (s *Server) GetSwipeHistory(c *fiber.Ctx) error {
	history, err := s.matchService.GetSwipeHistory(c.Context(), currentUserID(c))
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(history)
}

// RepairMatches handles POST /api/matches/repair
func (s *Server) RepairMatches(c *fiber.Ctx) error {
	fixed, err := s.matchService.RepairOrphanedMatches(c.Context())
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"repaired": fixed,
	})
}

func (s *Server) invalidateUserCache(c *fiber.Ctx, userID uint) {
	cache.InvalidateUser(c.Context(), userID)
}
