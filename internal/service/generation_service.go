package service

import (
	"context"
	"log/slog"
	"time"

	"postpilot/internal/llm"
	"postpilot/internal/models"
	"postpilot/internal/observability"
	"postpilot/internal/repository"
	"postpilot/internal/validation"
)

type GenerationService struct {
	projectRepo repository.ProjectRepository
	personaRepo repository.PersonaRepository
	client      llm.Client
}

// GenerateInput is the generation request payload.
type GenerateInput struct {
	UserID        uint
	ProjectID     uint
	ProjectType   models.ProjectType
	Subject       string
	Tone          string
	Keywords      string
	ContentLength models.ContentLength
	Persona       string
}

// GenerateResult is the two-phase outcome: content from the provider and
// whether the write-back to the project succeeded. A failed write-back is
// reported, not raised; the caller already paid for the completion.
type GenerateResult struct {
	Content   string `json:"content"`
	Persisted bool   `json:"persisted"`
}

func NewGenerationService(projectRepo repository.ProjectRepository, personaRepo repository.PersonaRepository, client llm.Client) *GenerationService {
	return &GenerationService{projectRepo: projectRepo, personaRepo: personaRepo, client: client}
}

// Generate runs one synchronous completion for the given project. Checks run
// in a fixed order: request validation before any external call, then project
// ownership, then the provider call. There are no retries; a repeated call
// overwrites the previous result.
func (s *GenerationService) Generate(ctx context.Context, in GenerateInput) (*GenerateResult, error) {
	if err := validation.ValidateGenerationSubject(in.Subject); err != nil {
		return nil, models.NewInvalidRequestError(err.Error())
	}
	if err := validation.ValidateTone(in.Tone); err != nil {
		return nil, models.NewInvalidRequestError(err.Error())
	}
	if err := validation.ValidateContentLength(in.ContentLength); err != nil {
		return nil, models.NewInvalidRequestError(err.Error())
	}

	project, err := s.projectRepo.GetByID(ctx, in.ProjectID)
	if err != nil {
		return nil, err
	}
	if project.UserID != in.UserID {
		return nil, models.NewUnauthorizedError("project belongs to another user")
	}

	projectType := in.ProjectType
	if projectType == "" {
		projectType = project.Type
	}

	personaTitle, personaDescription := in.Persona, ""
	if personaTitle == "" && project.PersonaID != nil {
		// Best effort: a dangling persona reference just means no persona
		// framing in the system prompt.
		if persona, perr := s.personaRepo.GetByID(ctx, *project.PersonaID); perr == nil && persona.UserID == in.UserID {
			personaTitle, personaDescription = persona.Title, persona.Description
		}
	}

	length := in.ContentLength
	if length.Type == "" {
		length = models.ContentLengthPreset(models.LengthMedium)
	}

	systemPrompt := buildSystemPrompt(personaTitle, personaDescription)
	userPrompt := buildUserPrompt(projectType, in.Subject, in.Tone, in.Keywords, length)

	start := time.Now()
	content, err := s.client.CompleteWithSystem(ctx, systemPrompt, userPrompt)
	if err != nil {
		observability.ObserveGeneration(string(projectType), "error", time.Since(start))
		return nil, models.NewGenerationFailedError(err)
	}
	observability.ObserveGeneration(string(projectType), "success", time.Since(start))

	persisted := s.persistResult(ctx, project, content)
	return &GenerateResult{Content: content, Persisted: persisted}, nil
}

// persistResult writes the completion back onto the project. Failures are
// swallowed into the persisted flag.
func (s *GenerationService) persistResult(ctx context.Context, project *models.Project, generated string) bool {
	content, err := project.DecodeContent()
	if err == nil {
		now := time.Now().UTC()
		common := content.Common()
		common.GeneratedContent = generated
		common.LastGeneratedAt = &now
		err = project.SetContent(content)
	}
	if err == nil {
		if project.Status == models.ProjectStatusDraft {
			project.Status = models.ProjectStatusGenerated
		}
		err = s.projectRepo.Update(ctx, project)
	}
	if err != nil {
		observability.GenerationPersistenceFailures.Inc()
		slog.WarnContext(ctx, "generated content could not be written back",
			"project_id", project.ID, "error", err)
		return false
	}
	return true
}
