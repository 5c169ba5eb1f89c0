// Package service contains the application's business logic, sitting between
// HTTP handlers and repositories.
package service

import (
	"context"
	"encoding/json"
	"fmt"

	"postpilot/internal/models"
	"postpilot/internal/repository"
	"postpilot/internal/validation"
)

type ProjectService struct {
	projectRepo repository.ProjectRepository
	personaRepo repository.PersonaRepository
}

// CreateProjectInput is the creation payload. Type and content length are
// optional; defaults are substituted before the write.
type CreateProjectInput struct {
	UserID    uint
	Type      models.ProjectType
	Title     string
	PersonaID *uint
	Content   json.RawMessage
}

// UpdateProjectInput carries a partial update. Nil fields are left untouched;
// Content is merged field-by-field into the stored variant when present.
type UpdateProjectInput struct {
	UserID    uint
	ProjectID uint
	Title     *string
	Status    *models.ProjectStatus
	PersonaID *uint
	Content   json.RawMessage
}

// ListProjectsInput narrows a listing.
type ListProjectsInput struct {
	UserID  uint
	Type    models.ProjectType
	Status  models.ProjectStatus
	SortAsc bool
}

func NewProjectService(projectRepo repository.ProjectRepository, personaRepo repository.PersonaRepository) *ProjectService {
	return &ProjectService{projectRepo: projectRepo, personaRepo: personaRepo}
}

// CreateProject validates and stores a new project. Status is always forced
// to draft regardless of what the caller sends.
func (s *ProjectService) CreateProject(ctx context.Context, in CreateProjectInput) (*models.Project, error) {
	projectType := in.Type
	if projectType == "" {
		projectType = models.DefaultProjectType
	}
	if !models.ValidProjectType(projectType) {
		return nil, models.NewInvalidRequestError("unknown project type")
	}
	if err := validation.ValidateProjectTitle(in.Title); err != nil {
		return nil, models.NewInvalidRequestError(err.Error())
	}

	content, err := s.decodeAndValidateContent(projectType, in.Content)
	if err != nil {
		return nil, err
	}
	// Generated text only ever comes from the orchestrator.
	content.Common().GeneratedContent = ""
	content.Common().LastGeneratedAt = nil

	if in.PersonaID != nil {
		if err := s.checkPersonaOwnership(ctx, *in.PersonaID, in.UserID); err != nil {
			return nil, err
		}
	}

	project := &models.Project{
		Type:      projectType,
		Title:     in.Title,
		Status:    models.ProjectStatusDraft,
		UserID:    in.UserID,
		PersonaID: in.PersonaID,
	}
	if err := project.SetContent(content); err != nil {
		return nil, models.NewInternalError(err)
	}

	if err := s.projectRepo.Create(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

// GetProject returns a project the user owns. Someone else's project is
// reported as not found.
func (s *ProjectService) GetProject(ctx context.Context, projectID, userID uint) (*models.Project, error) {
	project, err := s.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if project.UserID != userID {
		return nil, models.NewNotFoundError("Project", projectID)
	}
	return project, nil
}

func (s *ProjectService) ListProjects(ctx context.Context, in ListProjectsInput) ([]models.Project, error) {
	if in.Type != "" && !models.ValidProjectType(in.Type) {
		return nil, models.NewInvalidRequestError("unknown project type filter")
	}
	return s.projectRepo.ListByOwner(ctx, in.UserID, repository.ProjectFilter{
		Type:    in.Type,
		Status:  in.Status,
		SortAsc: in.SortAsc,
	})
}

// UpdateProject merges the provided fields into the stored project. Owner and
// type are immutable. Content is not cross-validated against fields the
// update does not touch.
func (s *ProjectService) UpdateProject(ctx context.Context, in UpdateProjectInput) (*models.Project, error) {
	project, err := s.GetProject(ctx, in.ProjectID, in.UserID)
	if err != nil {
		return nil, err
	}

	if in.Title != nil {
		if err := validation.ValidateProjectTitle(*in.Title); err != nil {
			return nil, models.NewInvalidRequestError(err.Error())
		}
		project.Title = *in.Title
	}
	if in.Status != nil {
		switch *in.Status {
		case models.ProjectStatusDraft, models.ProjectStatusGenerated,
			models.ProjectStatusPublished, models.ProjectStatusArchived:
			project.Status = *in.Status
		default:
			return nil, models.NewInvalidRequestError("unknown project status")
		}
	}
	if in.PersonaID != nil {
		if err := s.checkPersonaOwnership(ctx, *in.PersonaID, in.UserID); err != nil {
			return nil, err
		}
		project.PersonaID = in.PersonaID
	}
	if in.Content != nil {
		// Merge into the stored variant so fields the update does not name,
		// generated text included, survive the write.
		content, err := project.DecodeContent()
		if err != nil {
			return nil, models.NewInternalError(err)
		}
		if err := json.Unmarshal(in.Content, content); err != nil {
			return nil, models.NewInvalidRequestError(fmt.Sprintf("decode %s content: %v", project.Type, err))
		}
		if err := validateContentFields(content); err != nil {
			return nil, err
		}
		if err := project.SetContent(content); err != nil {
			return nil, models.NewInternalError(err)
		}
	}

	if err := s.projectRepo.Update(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

func (s *ProjectService) DeleteProject(ctx context.Context, projectID, userID uint) error {
	return s.projectRepo.Delete(ctx, projectID, userID)
}

// decodeAndValidateContent parses raw content into the typed variant and
// validates its user-supplied fields. Empty raw content yields the zero
// variant with the medium length preset.
func (s *ProjectService) decodeAndValidateContent(t models.ProjectType, raw json.RawMessage) (models.Content, error) {
	content, err := models.DecodeContent(t, raw)
	if err != nil {
		return nil, models.NewInvalidRequestError(err.Error())
	}
	if err := validateContentFields(content); err != nil {
		return nil, err
	}
	return content, nil
}

func validateContentFields(content models.Content) error {
	common := content.Common()
	if err := validation.ValidateTone(common.Tone); err != nil {
		return models.NewInvalidRequestError(err.Error())
	}
	if err := validation.ValidateContentLength(common.ContentLength); err != nil {
		return models.NewInvalidRequestError(err.Error())
	}
	if common.ContentLength.Type == "" {
		common.ContentLength = models.ContentLengthPreset(models.LengthMedium)
	}
	return nil
}

func (s *ProjectService) checkPersonaOwnership(ctx context.Context, personaID, userID uint) error {
	persona, err := s.personaRepo.GetByID(ctx, personaID)
	if err != nil {
		return err
	}
	if persona.UserID != userID {
		return models.NewNotFoundError("Persona", personaID)
	}
	return nil
}
