package server

import (
	"postpilot/internal/models"
	"postpilot/internal/service"

	"github.com/gofiber/fiber/v2"
)

// Generate handles POST /api/generate
func (s *Server) Generate(c *fiber.Ctx) error {
	var req struct {
		ProjectID     uint                 `json:"projectId"`
		ProjectType   models.ProjectType   `json:"projectType"`
		Subject       string               `json:"subject"`
		Tone          string               `json:"tone"`
		Keywords      string               `json:"keywords"`
		ContentLength models.ContentLength `json:"contentLength"`
		Persona       string               `json:"persona"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewInvalidRequestError("Invalid request body"))
	}
	if req.ProjectID == 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewInvalidRequestError("projectId is required"))
	}

	result, err := s.generationService.Generate(c.Context(), service.GenerateInput{
		UserID:        currentUserID(c),
		ProjectID:     req.ProjectID,
		ProjectType:   req.ProjectType,
		Subject:       req.Subject,
		Tone:          req.Tone,
		Keywords:      req.Keywords,
		ContentLength: req.ContentLength,
		Persona:       req.Persona,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(result)
}
