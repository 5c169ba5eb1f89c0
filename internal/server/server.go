// Package server contains the HTTP handlers for the application's API endpoints.
package server

import (
	"context"
	"fmt"
	"strings"
	"time"

	"postpilot/internal/cache"
	"postpilot/internal/config"
	"postpilot/internal/database"
	"postpilot/internal/linkedin"
	"postpilot/internal/llm"
	"postpilot/internal/middleware"
	"postpilot/internal/models"
	"postpilot/internal/repository"
	"postpilot/internal/service"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/monitor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Server holds all dependencies and provides handlers.
type Server struct {
	config         *config.Config
	db             *gorm.DB
	redis          *redis.Client
	promMiddleware *fiberprometheus.FiberPrometheus

	userRepo    repository.UserRepository
	projectRepo repository.ProjectRepository
	personaRepo repository.PersonaRepository

	projectService    *service.ProjectService
	personaService    *service.PersonaService
	onboardingService *service.OnboardingService
	generationService *service.GenerationService

	linkedinClient *linkedin.Client
}

// NewServer creates a new server instance with all dependencies.
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	cache.InitRedis(cfg.RedisURL)
	redisClient := cache.GetClient()

	client, err := llm.NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("LLM client setup failed: %w", err)
	}

	return newServer(cfg, db, redisClient, client), nil
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// Used by tests and by bootstrap layers that establish DB/Redis themselves.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, client llm.Client) *Server {
	return newServer(cfg, db, redisClient, client)
}

func newServer(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, client llm.Client) *Server {
	middleware.InitMiddleware(cfg)

	userRepo := repository.NewUserRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	personaRepo := repository.NewPersonaRepository(db)

	s := &Server{
		config:         cfg,
		db:             db,
		redis:          redisClient,
		promMiddleware: middleware.InitMetrics("postpilot-api"),
		userRepo:       userRepo,
		projectRepo:    projectRepo,
		personaRepo:    personaRepo,
	}
	s.projectService = service.NewProjectService(projectRepo, personaRepo)
	s.personaService = service.NewPersonaService(personaRepo)
	s.onboardingService = service.NewOnboardingService(userRepo)
	s.generationService = service.NewGenerationService(projectRepo, personaRepo, client)
	s.linkedinClient = linkedin.NewClient(
		cfg.LinkedInClientID,
		cfg.LinkedInClientSecret,
		linkedinCallbackURL(cfg),
	)
	return s
}

// linkedinCallbackURL builds the OAuth redirect URL on the API's public
// origin; it must match the callback registered with the provider.
func linkedinCallbackURL(cfg *config.Config) string {
	base := cfg.APIBaseURL
	if base == "" {
		base = "http://localhost:" + cfg.Port
	}
	return strings.TrimRight(base, "/") + "/linkedin/callback"
}

// SetupMiddleware configures middleware for the Fiber app.
func (s *Server) SetupMiddleware(app *fiber.App) {
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(middleware.ContextMiddleware())

	if s.promMiddleware != nil {
		app.Use(middleware.MetricsMiddleware(s.promMiddleware))
	}

	app.Use(middleware.TracingMiddleware())
	app.Use(helmet.New())
	app.Use(middleware.StructuredLogger())

	// CORS before middlewares that can short-circuit (e.g. limiter) so
	// browser clients still get CORS headers on error responses.
	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:3000,http://127.0.0.1:3000"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	// Global rate limiting (100 requests per minute per IP)
	app.Use(limiter.New(limiter.Config{
		Max:        100,
		Expiration: 1 * time.Minute,
		Next: func(c *fiber.Ctx) bool {
			return c.Method() == fiber.MethodOptions
		},
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Too many requests, please try again later.",
			})
		},
	}))
}

// SetupRoutes configures all routes for the application.
func (s *Server) SetupRoutes(app *fiber.App) {
	api := app.Group("/api")

	// Health checks
	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)

	// Metrics endpoint for Prometheus
	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}
	api.Get("/metrics/dashboard", monitor.New(monitor.Config{
		Title: "Postpilot Backend Metrics Dashboard",
	}))

	// Auth routes
	auth := api.Group("/auth")
	auth.Post("/signup", middleware.RateLimit(
		s.redis, 3, 10*time.Minute, "signup"), s.Signup)
	auth.Post("/login", middleware.RateLimit(
		s.redis, 10, 5*time.Minute, "login"), s.Login)
	auth.Post("/session", s.CreateSession)
	auth.Post("/logout", s.Logout)
	auth.Post("/check-onboarding", s.CheckOnboarding)

	// Session required from here on.
	protected := api.Group("", s.SessionRequired())

	// Onboarding wizard: accessible to authenticated but not yet onboarded
	// users.
	onboarding := protected.Group("/onboarding")
	onboarding.Get("/", s.GetOnboarding)
	onboarding.Post("/next", s.OnboardingNext)
	onboarding.Post("/back", s.OnboardingBack)

	// Everything below also requires a completed onboarding.
	onboarded := protected.Group("", middleware.OnboardingRequired())

	users := onboarded.Group("/users")
	users.Get("/me", s.GetMyProfile)
	users.Put("/me", s.UpdateMyProfile)

	projects := onboarded.Group("/projects")
	projects.Post("/", s.CreateProject)
	projects.Get("/", s.ListProjects)
	projects.Get("/:id", s.GetProject)
	projects.Put("/:id", s.UpdateProject)
	projects.Delete("/:id", s.DeleteProject)

	personas := onboarded.Group("/personas")
	personas.Get("/", s.ListPersonas)
	personas.Post("/", s.CreatePersona)
	personas.Post("/:id/duplicate", s.DuplicatePersona)
	personas.Put("/:id", s.UpdatePersona)
	personas.Delete("/:id", s.DeletePersona)

	onboarded.Post("/generate", middleware.RateLimit(
		s.redis, 10, time.Minute, "generate"), s.Generate)

	// LinkedIn linkage: browser redirects, not under /api.
	app.Get("/linkedin", s.SessionRequired(), s.LinkedInRedirect)
	app.Get("/linkedin/callback", s.LinkedInCallback)
}

// Shutdown releases the server's external connections.
func (s *Server) Shutdown(ctx context.Context) error {
	var firstErr error

	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			firstErr = err
		}
	}

	if s.db != nil {
		sqlDB, err := s.db.DB()
		if err == nil {
			err = sqlDB.Close()
		}
		if err != nil && firstErr == nil {
			firstErr = err
		}
	}

	return firstErr
}

// SessionRequired returns the session-cookie authentication middleware wired
// to the user repository.
func (s *Server) SessionRequired() fiber.Handler {
	return middleware.SessionRequired(s)
}

// OnboardingStatus implements middleware.ProfileGate: it reports whether the
// identity behind a session still exists and whether onboarding finished.
// The lookup rides the profile cache, so the gate costs one redis hit on the
// hot path.
func (s *Server) OnboardingStatus(ctx context.Context, userID uint) (bool, bool, error) {
	profile, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if models.IsNotFound(err) {
			return false, false, nil
		}
		return false, false, err
	}
	return true, profile.OnboardingCompleted, nil
}

// LivenessCheck handles liveness probe requests.
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "up",
		"time":   time.Now(),
	})
}

// ReadinessCheck handles readiness probe requests.
func (s *Server) ReadinessCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	dbStatus := "healthy"
	sqlDB, err := s.db.DB()
	if err != nil {
		dbStatus = "unhealthy"
	} else if err := sqlDB.PingContext(ctx); err != nil {
		dbStatus = "unhealthy"
	}

	redisStatus := "healthy"
	if s.redis != nil {
		if err := s.redis.Ping(ctx).Err(); err != nil {
			redisStatus = "unhealthy"
		}
	} else {
		// The app degrades without redis (no cache, no wizard drafts),
		// so report it but stay ready.
		redisStatus = "unavailable"
	}

	status := fiber.StatusOK
	overallStatus := "healthy"
	if dbStatus == "unhealthy" {
		status = fiber.StatusServiceUnavailable
		overallStatus = "unhealthy"
	}

	return c.Status(status).JSON(fiber.Map{
		"status": overallStatus,
		"checks": fiber.Map{
			"database": dbStatus,
			"redis":    redisStatus,
		},
		"time": time.Now(),
	})
}
