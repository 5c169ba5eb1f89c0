package server

import (
	"encoding/json"

	"postpilot/internal/models"
	"postpilot/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreateProject handles POST /api/projects
func (s *Server) CreateProject(c *fiber.Ctx) error {
	var req struct {
		Type      models.ProjectType `json:"type"`
		Title     string             `json:"title"`
		PersonaID *uint              `json:"personaId"`
		Content   json.RawMessage    `json:"content"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewInvalidRequestError("Invalid request body"))
	}

	project, err := s.projectService.CreateProject(c.Context(), service.CreateProjectInput{
		UserID:    currentUserID(c),
		Type:      req.Type,
		Title:     req.Title,
		PersonaID: req.PersonaID,
		Content:   req.Content,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(project)
}

// ListProjects handles GET /api/projects
func (s *Server) ListProjects(c *fiber.Ctx) error {
	projects, err := s.projectService.ListProjects(c.Context(), service.ListProjectsInput{
		UserID:  currentUserID(c),
		Type:    models.ProjectType(c.Query("type")),
		Status:  models.ProjectStatus(c.Query("status")),
		SortAsc: c.Query("sort") == "asc",
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"projects": projects})
}

// GetProject handles GET /api/projects/:id
func (s *Server) GetProject(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	project, err := s.projectService.GetProject(c.Context(), id, currentUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(project)
}

// UpdateProject handles PUT /api/projects/:id
func (s *Server) UpdateProject(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Title     *string               `json:"title"`
		Status    *models.ProjectStatus `json:"status"`
		PersonaID *uint                 `json:"personaId"`
		Content   json.RawMessage       `json:"content"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewInvalidRequestError("Invalid request body"))
	}

	project, err := s.projectService.UpdateProject(c.Context(), service.UpdateProjectInput{
		UserID:    currentUserID(c),
		ProjectID: id,
		Title:     req.Title,
		Status:    req.Status,
		PersonaID: req.PersonaID,
		Content:   req.Content,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(project)
}

// DeleteProject handles DELETE /api/projects/:id
func (s *Server) DeleteProject(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.projectService.DeleteProject(c.Context(), id, currentUserID(c)); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"success": true})
}
