package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"postpilot/internal/models"
	"postpilot/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectService_CreateDefaults(t *testing.T) {
	t.Parallel()

	var created *models.Project
	projectRepo := noopProjectRepo()
	projectRepo.createFn = func(_ context.Context, p *models.Project) error {
		created = p
		return nil
	}

	svc := NewProjectService(projectRepo, noopPersonaRepo())
	project, err := svc.CreateProject(context.Background(), CreateProjectInput{
		UserID: 1,
		Title:  "Untitled",
	})
	require.NoError(t, err)
	require.NotNil(t, created)

	assert.Equal(t, models.DefaultProjectType, project.Type)
	assert.Equal(t, models.ProjectStatusDraft, project.Status)
	assert.Equal(t, uint(1), project.UserID)

	content, err := project.DecodeContent()
	require.NoError(t, err)
	assert.Equal(t, models.LengthMedium, content.Common().ContentLength.Type)
	assert.Equal(t, 300, content.Common().ContentLength.MinWords)
}

func TestProjectService_CreateForcesDraftStatus(t *testing.T) {
	t.Parallel()

	svc := NewProjectService(noopProjectRepo(), noopPersonaRepo())
	project, err := svc.CreateProject(context.Background(), CreateProjectInput{
		UserID:  1,
		Type:    models.ProjectTypeBlogArticle,
		Content: json.RawMessage(`{"subject":"Go hiring","generatedContent":"prefilled","lastGeneratedAt":"2026-01-02T15:04:05Z"}`),
	})
	require.NoError(t, err)
	assert.Equal(t, models.ProjectStatusDraft, project.Status)

	content, err := project.DecodeContent()
	require.NoError(t, err)
	assert.Equal(t, "Go hiring", content.Common().Subject)
	assert.Empty(t, content.Common().GeneratedContent)
	assert.Nil(t, content.Common().LastGeneratedAt)
}

func TestProjectService_CreateValidation(t *testing.T) {
	t.Parallel()
	svc := NewProjectService(noopProjectRepo(), noopPersonaRepo())
	ctx := context.Background()

	tests := []struct {
		name  string
		input CreateProjectInput
	}{
		{"Unknown type", CreateProjectInput{UserID: 1, Type: "tweet"}},
		{"Unknown tone", CreateProjectInput{UserID: 1, Content: json.RawMessage(`{"tone":"sarcastic"}`)}},
		{"Custom length out of range", CreateProjectInput{UserID: 1, Content: json.RawMessage(`{"contentLength":{"type":"custom","customWordCount":10}}`)}},
		{"Malformed content", CreateProjectInput{UserID: 1, Content: json.RawMessage(`{"subject":`)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateProject(ctx, tt.input)
			require.Error(t, err)
			appErr, ok := err.(*models.AppError)
			require.True(t, ok)
			assert.Equal(t, models.CodeInvalidRequest, appErr.Code)
		})
	}
}

func TestProjectService_CreateRejectsForeignPersona(t *testing.T) {
	t.Parallel()

	personaRepo := noopPersonaRepo()
	personaRepo.getByIDFn = func(_ context.Context, id uint) (*models.Persona, error) {
		return &models.Persona{ID: id, UserID: 99}, nil
	}
	svc := NewProjectService(noopProjectRepo(), personaRepo)

	personaID := uint(5)
	_, err := svc.CreateProject(context.Background(), CreateProjectInput{UserID: 1, PersonaID: &personaID})
	require.Error(t, err)
	appErr, ok := err.(*models.AppError)
	require.True(t, ok)
	assert.Equal(t, models.CodeNotFound, appErr.Code)
}

func TestProjectService_GetHidesForeignProjects(t *testing.T) {
	t.Parallel()

	projectRepo := noopProjectRepo()
	projectRepo.getByIDFn = func(_ context.Context, id uint) (*models.Project, error) {
		return &models.Project{ID: id, UserID: 42, Type: models.ProjectTypeLinkedInPost}, nil
	}
	svc := NewProjectService(projectRepo, noopPersonaRepo())

	_, err := svc.GetProject(context.Background(), 7, 1)
	require.Error(t, err)
	appErr, ok := err.(*models.AppError)
	require.True(t, ok)
	assert.Equal(t, models.CodeNotFound, appErr.Code)
}

func TestProjectService_UpdateMerges(t *testing.T) {
	t.Parallel()

	stored := &models.Project{ID: 9, UserID: 1, Type: models.ProjectTypeLinkedInPost, Status: models.ProjectStatusDraft, Title: "Old"}
	require.NoError(t, stored.SetContent(&models.PostContent{
		ContentCommon: models.ContentCommon{Subject: "Old subject"},
	}))

	var updated *models.Project
	projectRepo := noopProjectRepo()
	projectRepo.getByIDFn = func(_ context.Context, _ uint) (*models.Project, error) { return stored, nil }
	projectRepo.updateFn = func(_ context.Context, p *models.Project) error {
		updated = p
		return nil
	}
	svc := NewProjectService(projectRepo, noopPersonaRepo())

	newTitle := "New"
	newStatus := models.ProjectStatusPublished
	project, err := svc.UpdateProject(context.Background(), UpdateProjectInput{
		UserID:    1,
		ProjectID: 9,
		Title:     &newTitle,
		Status:    &newStatus,
		Content:   json.RawMessage(`{"subject":"New subject"}`),
	})
	require.NoError(t, err)
	require.NotNil(t, updated)

	assert.Equal(t, "New", project.Title)
	assert.Equal(t, models.ProjectStatusPublished, project.Status)
	content, err := project.DecodeContent()
	require.NoError(t, err)
	assert.Equal(t, "New subject", content.Common().Subject)
}

func TestProjectService_UpdatePartialContentKeepsOtherFields(t *testing.T) {
	t.Parallel()

	generatedAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	stored := &models.Project{ID: 9, UserID: 1, Type: models.ProjectTypeLinkedInPost, Status: models.ProjectStatusGenerated}
	require.NoError(t, stored.SetContent(&models.PostContent{
		ContentCommon: models.ContentCommon{
			Subject:          "Hiring senior engineers",
			Keywords:         "hiring, golang",
			Tone:             models.PreferenceToneProfessional,
			ContentLength:    models.ContentLengthPreset(models.LengthLong),
			GeneratedContent: "We are hiring!",
			LastGeneratedAt:  &generatedAt,
		},
	}))

	projectRepo := noopProjectRepo()
	projectRepo.getByIDFn = func(_ context.Context, _ uint) (*models.Project, error) { return stored, nil }
	svc := NewProjectService(projectRepo, noopPersonaRepo())

	project, err := svc.UpdateProject(context.Background(), UpdateProjectInput{
		UserID:    1,
		ProjectID: 9,
		Content:   json.RawMessage(`{"tone":"casual"}`),
	})
	require.NoError(t, err)

	content, err := project.DecodeContent()
	require.NoError(t, err)
	common := content.Common()
	assert.Equal(t, models.PreferenceToneCasual, common.Tone)
	assert.Equal(t, "Hiring senior engineers", common.Subject)
	assert.Equal(t, "hiring, golang", common.Keywords)
	assert.Equal(t, models.LengthLong, common.ContentLength.Type)
	assert.Equal(t, "We are hiring!", common.GeneratedContent)
	require.NotNil(t, common.LastGeneratedAt)
	assert.True(t, generatedAt.Equal(*common.LastGeneratedAt))
}

func TestProjectService_UpdateRejectsUnknownStatus(t *testing.T) {
	t.Parallel()

	projectRepo := noopProjectRepo()
	projectRepo.getByIDFn = func(_ context.Context, id uint) (*models.Project, error) {
		return &models.Project{ID: id, UserID: 1, Type: models.ProjectTypeLinkedInPost}, nil
	}
	svc := NewProjectService(projectRepo, noopPersonaRepo())

	bad := models.ProjectStatus("finalized")
	_, err := svc.UpdateProject(context.Background(), UpdateProjectInput{UserID: 1, ProjectID: 1, Status: &bad})
	assert.Error(t, err)
}

func TestProjectService_ListPassesFilter(t *testing.T) {
	t.Parallel()

	var gotFilter string
	projectRepo := noopProjectRepo()
	projectRepo.listByOwnerFn = func(_ context.Context, userID uint, f repository.ProjectFilter) ([]models.Project, error) {
		gotFilter = string(f.Type)
		return []models.Project{}, nil
	}
	svc := NewProjectService(projectRepo, noopPersonaRepo())

	_, err := svc.ListProjects(context.Background(), ListProjectsInput{UserID: 1, Type: models.ProjectTypeBlogArticle})
	require.NoError(t, err)
	assert.Equal(t, string(models.ProjectTypeBlogArticle), gotFilter)

	_, err = svc.ListProjects(context.Background(), ListProjectsInput{UserID: 1, Type: "tweet"})
	assert.Error(t, err)
}
