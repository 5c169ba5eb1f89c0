package service

import (
	"context"

	"postpilot/internal/models"
	"postpilot/internal/repository"
)

// projectRepoStub is a stub for repository.ProjectRepository.
type projectRepoStub struct {
	createFn      func(context.Context, *models.Project) error
	getByIDFn     func(context.Context, uint) (*models.Project, error)
	listByOwnerFn func(context.Context, uint, repository.ProjectFilter) ([]models.Project, error)
	updateFn      func(context.Context, *models.Project) error
	deleteFn      func(context.Context, uint, uint) error
}

func (s *projectRepoStub) Create(ctx context.Context, p *models.Project) error {
	return s.createFn(ctx, p)
}
func (s *projectRepoStub) GetByID(ctx context.Context, id uint) (*models.Project, error) {
	return s.getByIDFn(ctx, id)
}
func (s *projectRepoStub) ListByOwner(ctx context.Context, userID uint, f repository.ProjectFilter) ([]models.Project, error) {
	return s.listByOwnerFn(ctx, userID, f)
}
func (s *projectRepoStub) Update(ctx context.Context, p *models.Project) error {
	return s.updateFn(ctx, p)
}
func (s *projectRepoStub) Delete(ctx context.Context, id, userID uint) error {
	return s.deleteFn(ctx, id, userID)
}

func noopProjectRepo() *projectRepoStub {
	return &projectRepoStub{
		createFn:  func(_ context.Context, _ *models.Project) error { return nil },
		getByIDFn: func(_ context.Context, _ uint) (*models.Project, error) { return &models.Project{}, nil },
		listByOwnerFn: func(_ context.Context, _ uint, _ repository.ProjectFilter) ([]models.Project, error) {
			return nil, nil
		},
		updateFn: func(_ context.Context, _ *models.Project) error { return nil },
		deleteFn: func(_ context.Context, _, _ uint) error { return nil },
	}
}

// personaRepoStub is a stub for repository.PersonaRepository.
type personaRepoStub struct {
	createFn      func(context.Context, *models.Persona) error
	getByIDFn     func(context.Context, uint) (*models.Persona, error)
	listByOwnerFn func(context.Context, uint) ([]models.Persona, error)
	updateFn      func(context.Context, *models.Persona) error
	deleteFn      func(context.Context, uint, uint) error
}

func (s *personaRepoStub) Create(ctx context.Context, p *models.Persona) error {
	return s.createFn(ctx, p)
}
func (s *personaRepoStub) GetByID(ctx context.Context, id uint) (*models.Persona, error) {
	return s.getByIDFn(ctx, id)
}
func (s *personaRepoStub) ListByOwner(ctx context.Context, userID uint) ([]models.Persona, error) {
	return s.listByOwnerFn(ctx, userID)
}
func (s *personaRepoStub) Update(ctx context.Context, p *models.Persona) error {
	return s.updateFn(ctx, p)
}
func (s *personaRepoStub) Delete(ctx context.Context, id, userID uint) error {
	return s.deleteFn(ctx, id, userID)
}

func noopPersonaRepo() *personaRepoStub {
	return &personaRepoStub{
		createFn:      func(_ context.Context, _ *models.Persona) error { return nil },
		getByIDFn:     func(_ context.Context, _ uint) (*models.Persona, error) { return &models.Persona{}, nil },
		listByOwnerFn: func(_ context.Context, _ uint) ([]models.Persona, error) { return nil, nil },
		updateFn:      func(_ context.Context, _ *models.Persona) error { return nil },
		deleteFn:      func(_ context.Context, _, _ uint) error { return nil },
	}
}

// userRepoStub is a stub for repository.UserRepository.
type userRepoStub struct {
	getByIDFn    func(context.Context, uint) (*models.UserProfile, error)
	getByEmailFn func(context.Context, string) (*models.UserProfile, error)
	createFn     func(context.Context, *models.UserProfile) error
	updateFn     func(context.Context, *models.UserProfile) error
}

func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.UserProfile, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.UserProfile, error) {
	return s.getByEmailFn(ctx, email)
}
func (s *userRepoStub) Create(ctx context.Context, p *models.UserProfile) error {
	return s.createFn(ctx, p)
}
func (s *userRepoStub) Update(ctx context.Context, p *models.UserProfile) error {
	return s.updateFn(ctx, p)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		getByIDFn:    func(_ context.Context, id uint) (*models.UserProfile, error) { return &models.UserProfile{ID: id}, nil },
		getByEmailFn: func(_ context.Context, _ string) (*models.UserProfile, error) { return nil, nil },
		createFn:     func(_ context.Context, _ *models.UserProfile) error { return nil },
		updateFn:     func(_ context.Context, _ *models.UserProfile) error { return nil },
	}
}

// llmClientStub is a stub for llm.Client.
type llmClientStub struct {
	completeFn func(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

func (s *llmClientStub) Complete(ctx context.Context, prompt string) (string, error) {
	return s.completeFn(ctx, "", prompt)
}
func (s *llmClientStub) CompleteWithSystem(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	return s.completeFn(ctx, systemPrompt, userPrompt)
}
