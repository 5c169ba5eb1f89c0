package server

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"postpilot/internal/config"
	"postpilot/internal/linkedin"
	"postpilot/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newLinkedInTestApp(userRepo *MockUserRepository, client *linkedin.Client) *fiber.App {
	app := fiber.New()
	s := &Server{config: testConfig(), userRepo: userRepo, linkedinClient: client}

	app.Get("/linkedin", asUser(5), s.LinkedInRedirect)
	app.Get("/linkedin/callback", s.LinkedInCallback)
	return app
}

// fakeOAuthServer serves the token and userinfo endpoints of the exchange.
func fakeOAuthServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"fake-token","token_type":"Bearer","expires_in":3600}`))
	})
	mux.HandleFunc("/userinfo", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer fake-token" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"sub":"abc123","name":"Ada Lovelace","email":"ada@example.com"}`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestLinkedInCallbackURL(t *testing.T) {
	tests := []struct {
		name string
		cfg  *config.Config
		want string
	}{
		{
			name: "Configured base URL",
			cfg:  &config.Config{APIBaseURL: "https://api.postpilot.example.com"},
			want: "https://api.postpilot.example.com/linkedin/callback",
		},
		{
			name: "Trailing slash trimmed",
			cfg:  &config.Config{APIBaseURL: "https://api.postpilot.example.com/"},
			want: "https://api.postpilot.example.com/linkedin/callback",
		},
		{
			name: "Falls back to local port",
			cfg:  &config.Config{Port: "8240"},
			want: "http://localhost:8240/linkedin/callback",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, linkedinCallbackURL(tt.cfg))
		})
	}
}

func TestLinkedInRedirect(t *testing.T) {
	client := linkedin.NewClient("client-id", "client-secret", "http://localhost:8240/linkedin/callback")
	app := newLinkedInTestApp(new(MockUserRepository), client)

	req := httptest.NewRequest(http.MethodGet, "/linkedin", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusFound, resp.StatusCode)

	loc, err := url.Parse(resp.Header.Get("Location"))
	require.NoError(t, err)
	q := loc.Query()
	assert.Equal(t, "client-id", q.Get("client_id"))
	assert.Equal(t, "5", q.Get("state"))
	assert.Equal(t, "code", q.Get("response_type"))
}

func TestLinkedInRedirect_NotConfigured(t *testing.T) {
	client := linkedin.NewClient("", "", "")
	app := newLinkedInTestApp(new(MockUserRepository), client)

	req := httptest.NewRequest(http.MethodGet, "/linkedin", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestLinkedInCallback_Success(t *testing.T) {
	srv := fakeOAuthServer(t)
	client := linkedin.NewClient("client-id", "client-secret", "http://localhost:8240/linkedin/callback").
		WithEndpoints(srv.URL+"/auth", srv.URL+"/token", srv.URL+"/userinfo")

	userRepo := new(MockUserRepository)
	userRepo.On("GetByID", mock.Anything, uint(5)).
		Return(&models.UserProfile{ID: 5}, nil)
	userRepo.On("Update", mock.Anything, mock.MatchedBy(func(p *models.UserProfile) bool {
		return p.LinkedIn.Connected &&
			p.LinkedIn.AccessToken == "fake-token" &&
			p.LinkedIn.ProfileURL == "https://www.linkedin.com/openid/abc123" &&
			p.LinkedIn.TokenExpiry != nil
	})).Return(nil)

	app := newLinkedInTestApp(userRepo, client)

	req := httptest.NewRequest(http.MethodGet, "/linkedin/callback?code=auth-code&state=5", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "http://localhost:3000/profile", resp.Header.Get("Location"))
	userRepo.AssertExpectations(t)
}

func TestLinkedInCallback_Failures(t *testing.T) {
	tests := []struct {
		name      string
		path      string
		mockSetup func(*MockUserRepository)
	}{
		{
			name:      "Provider Error",
			path:      "/linkedin/callback?error=user_cancelled_authorize",
			mockSetup: func(*MockUserRepository) {},
		},
		{
			name:      "Missing Code",
			path:      "/linkedin/callback?state=5",
			mockSetup: func(*MockUserRepository) {},
		},
		{
			name:      "Bad State",
			path:      "/linkedin/callback?code=x&state=abc",
			mockSetup: func(*MockUserRepository) {},
		},
		{
			name: "Unknown User",
			path: "/linkedin/callback?code=x&state=42",
			mockSetup: func(repo *MockUserRepository) {
				repo.On("GetByID", mock.Anything, uint(42)).
					Return(nil, models.NewNotFoundError("User", 42))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			userRepo := new(MockUserRepository)
			tt.mockSetup(userRepo)

			client := linkedin.NewClient("client-id", "client-secret", "")
			app := newLinkedInTestApp(userRepo, client)

			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			resp, err := app.Test(req)
			require.NoError(t, err)
			defer func() { _ = resp.Body.Close() }()

			assert.Equal(t, http.StatusFound, resp.StatusCode)
			assert.Equal(t,
				"http://localhost:3000/profile?error=linkedin_connection_failed",
				resp.Header.Get("Location"))
		})
	}
}
