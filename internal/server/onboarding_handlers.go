package server

import (
	"postpilot/internal/models"
	"postpilot/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetOnboarding handles GET /api/onboarding
func (s *Server) GetOnboarding(c *fiber.Ctx) error {
	state, err := s.onboardingService.State(c.Context(), currentUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(state)
}

// OnboardingNext handles POST /api/onboarding/next
func (s *Server) OnboardingNext(c *fiber.Ctx) error {
	var in service.StepInput
	if err := c.BodyParser(&in); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewInvalidRequestError("Invalid request body"))
	}

	state, err := s.onboardingService.Next(c.Context(), currentUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(state)
}

// OnboardingBack handles POST /api/onboarding/back
func (s *Server) OnboardingBack(c *fiber.Ctx) error {
	state, err := s.onboardingService.Back(c.Context(), currentUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(state)
}
