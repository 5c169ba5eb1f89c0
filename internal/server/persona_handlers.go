package server

import (
	"postpilot/internal/models"
	"postpilot/internal/service"

	"github.com/gofiber/fiber/v2"
)

// ListPersonas handles GET /api/personas
func (s *Server) ListPersonas(c *fiber.Ctx) error {
	nodes, err := s.personaService.ListPersonas(c.Context(), currentUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"personas": nodes})
}

// CreatePersona handles POST /api/personas
func (s *Server) CreatePersona(c *fiber.Ctx) error {
	var req struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		ParentID    *uint  `json:"parentId"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewInvalidRequestError("Invalid request body"))
	}

	persona, err := s.personaService.CreatePersona(c.Context(), service.CreatePersonaInput{
		UserID:      currentUserID(c),
		Title:       req.Title,
		Description: req.Description,
		ParentID:    req.ParentID,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(persona)
}

// UpdatePersona handles PUT /api/personas/:id
func (s *Server) UpdatePersona(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Title       *string `json:"title"`
		Description *string `json:"description"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewInvalidRequestError("Invalid request body"))
	}

	persona, err := s.personaService.UpdatePersona(c.Context(), service.UpdatePersonaInput{
		UserID:      currentUserID(c),
		PersonaID:   id,
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(persona)
}

// DuplicatePersona handles POST /api/personas/:id/duplicate
func (s *Server) DuplicatePersona(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	copy, err := s.personaService.DuplicatePersona(c.Context(), id, currentUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(copy)
}

// DeletePersona handles DELETE /api/personas/:id
func (s *Server) DeletePersona(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.personaService.DeletePersona(c.Context(), id, currentUserID(c)); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"success": true})
}
