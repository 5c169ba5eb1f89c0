package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"postpilot/internal/models"
	"postpilot/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockPersonaRepository is a mock of the PersonaRepository interface
type MockPersonaRepository struct {
	mock.Mock
}

func (m *MockPersonaRepository) Create(ctx context.Context, persona *models.Persona) error {
	args := m.Called(ctx, persona)
	return args.Error(0)
}

func (m *MockPersonaRepository) GetByID(ctx context.Context, id uint) (*models.Persona, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Persona), args.Error(1)
}

func (m *MockPersonaRepository) ListByOwner(ctx context.Context, userID uint) ([]models.Persona, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]models.Persona), args.Error(1)
}

func (m *MockPersonaRepository) Update(ctx context.Context, persona *models.Persona) error {
	args := m.Called(ctx, persona)
	return args.Error(0)
}

func (m *MockPersonaRepository) Delete(ctx context.Context, id, userID uint) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}

func newPersonaTestApp(personaRepo *MockPersonaRepository) *fiber.App {
	app := fiber.New()
	s := &Server{config: testConfig()}
	s.personaService = service.NewPersonaService(personaRepo)

	app.Use(asUser(1))
	app.Get("/personas", s.ListPersonas)
	app.Post("/personas", s.CreatePersona)
	app.Post("/personas/:id/duplicate", s.DuplicatePersona)
	app.Put("/personas/:id", s.UpdatePersona)
	app.Delete("/personas/:id", s.DeletePersona)
	return app
}

func TestCreatePersona(t *testing.T) {
	tests := []struct {
		name           string
		body           map[string]any
		mockSetup      func(*MockPersonaRepository)
		expectedStatus int
	}{
		{
			name: "Success",
			body: map[string]any{
				"title":       "Thought Leader",
				"description": "Opinionated takes on industry trends.",
			},
			mockSetup: func(pe *MockPersonaRepository) {
				pe.On("Create", mock.Anything, mock.MatchedBy(func(p *models.Persona) bool {
					return p.UserID == 1 && p.Title == "Thought Leader"
				})).Return(nil)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "Missing Title",
			body:           map[string]any{"description": "No title here."},
			mockSetup:      func(*MockPersonaRepository) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "Title Too Long",
			body: map[string]any{
				"title": strings.Repeat("x", models.MaxPersonaTitleLen+1),
			},
			mockSetup:      func(*MockPersonaRepository) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "Variant Of Foreign Persona",
			body: map[string]any{
				"title":    "Variant",
				"parentId": 8,
			},
			mockSetup: func(pe *MockPersonaRepository) {
				pe.On("GetByID", mock.Anything, uint(8)).
					Return(&models.Persona{ID: 8, UserID: 2}, nil)
			},
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			personaRepo := new(MockPersonaRepository)
			tt.mockSetup(personaRepo)
			app := newPersonaTestApp(personaRepo)

			resp := postJSON(t, app, "/personas", tt.body)
			defer func() { _ = resp.Body.Close() }()
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)
			personaRepo.AssertExpectations(t)
		})
	}
}

func TestListPersonas_TreeShape(t *testing.T) {
	personaRepo := new(MockPersonaRepository)
	app := newPersonaTestApp(personaRepo)

	rootID := uint(1)
	goneID := uint(99)
	personaRepo.On("ListByOwner", mock.Anything, uint(1)).Return([]models.Persona{
		{ID: 1, Title: "Root", UserID: 1},
		{ID: 2, Title: "Variant", UserID: 1, ParentID: &rootID},
		{ID: 3, Title: "Orphan", UserID: 1, ParentID: &goneID},
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/personas", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string][]models.PersonaNode
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	nodes := body["personas"]
	require.Len(t, nodes, 2)

	assert.Equal(t, "Root", nodes[0].Title)
	require.Len(t, nodes[0].Variants, 1)
	assert.Equal(t, "Variant", nodes[0].Variants[0].Title)

	// The orphan is promoted to a root with no variants.
	assert.Equal(t, "Orphan", nodes[1].Title)
	assert.Empty(t, nodes[1].Variants)
}

func TestDuplicatePersona(t *testing.T) {
	t.Run("Copy Of Root", func(t *testing.T) {
		personaRepo := new(MockPersonaRepository)
		app := newPersonaTestApp(personaRepo)

		personaRepo.On("GetByID", mock.Anything, uint(1)).
			Return(&models.Persona{ID: 1, Title: "Root", UserID: 1}, nil)
		personaRepo.On("Create", mock.Anything, mock.MatchedBy(func(p *models.Persona) bool {
			return p.Title == "Root (Copy)" && p.ParentID != nil && *p.ParentID == 1
		})).Return(nil)

		resp := postJSON(t, app, "/personas/1/duplicate", nil)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusCreated, resp.StatusCode)
		personaRepo.AssertExpectations(t)
	})

	t.Run("Copy Of Variant Attaches To Root", func(t *testing.T) {
		personaRepo := new(MockPersonaRepository)
		app := newPersonaTestApp(personaRepo)

		rootID := uint(1)
		personaRepo.On("GetByID", mock.Anything, uint(2)).
			Return(&models.Persona{ID: 2, Title: "Variant", UserID: 1, ParentID: &rootID}, nil)
		personaRepo.On("Create", mock.Anything, mock.MatchedBy(func(p *models.Persona) bool {
			return p.ParentID != nil && *p.ParentID == 1
		})).Return(nil)

		resp := postJSON(t, app, "/personas/2/duplicate", nil)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusCreated, resp.StatusCode)
		personaRepo.AssertExpectations(t)
	})

	t.Run("Foreign Persona", func(t *testing.T) {
		personaRepo := new(MockPersonaRepository)
		app := newPersonaTestApp(personaRepo)

		personaRepo.On("GetByID", mock.Anything, uint(3)).
			Return(&models.Persona{ID: 3, UserID: 2}, nil)

		resp := postJSON(t, app, "/personas/3/duplicate", nil)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestUpdatePersona(t *testing.T) {
	personaRepo := new(MockPersonaRepository)
	app := newPersonaTestApp(personaRepo)

	personaRepo.On("GetByID", mock.Anything, uint(5)).
		Return(&models.Persona{ID: 5, Title: "Old", UserID: 1}, nil)
	personaRepo.On("Update", mock.Anything, mock.MatchedBy(func(p *models.Persona) bool {
		return p.Title == "New Title"
	})).Return(nil)

	raw, _ := json.Marshal(map[string]string{"title": "New Title"})
	req := httptest.NewRequest(http.MethodPut, "/personas/5", strings.NewReader(string(raw)))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	personaRepo.AssertExpectations(t)
}

func TestDeletePersona(t *testing.T) {
	personaRepo := new(MockPersonaRepository)
	app := newPersonaTestApp(personaRepo)
	personaRepo.On("Delete", mock.Anything, uint(5), uint(1)).Return(nil)

	req := httptest.NewRequest(http.MethodDelete, "/personas/5", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]bool
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.True(t, body["success"])
}
