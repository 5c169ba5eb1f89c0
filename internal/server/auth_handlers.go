package server

import (
	"fmt"
	"strconv"
	"time"

	"postpilot/internal/middleware"
	"postpilot/internal/models"
	"postpilot/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// idTokenTTL is how long the short-lived identity token issued by signup and
// login stays valid. It exists only to be exchanged for a session cookie.
const idTokenTTL = 10 * time.Minute

// Signup handles POST /api/auth/signup
func (s *Server) Signup(c *fiber.Ctx) error {
	var req struct {
		Email       string `json:"email"`
		Password    string `json:"password"`
		DisplayName string `json:"displayName"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewInvalidRequestError("Invalid request body"))
	}

	if err := validation.ValidateEmail(req.Email); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewInvalidRequestError(err.Error()))
	}
	if err := validation.ValidatePassword(req.Password); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewInvalidRequestError(err.Error()))
	}

	existing, err := s.userRepo.GetByEmail(c.Context(), req.Email)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	if existing != nil {
		return models.RespondWithError(c, fiber.StatusConflict,
			models.NewInvalidRequestError("Account already exists"))
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	profile := models.NewUserProfile(req.Email, string(hashedPassword), req.DisplayName)
	if createErr := s.userRepo.Create(c.Context(), profile); createErr != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, createErr)
	}

	token, err := s.generateToken(profile.ID, middleware.TokenUseID, idTokenTTL)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"idToken": token,
		"user":    profile,
	})
}

// Login handles POST /api/auth/login
func (s *Server) Login(c *fiber.Ctx) error {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewInvalidRequestError("Invalid request body"))
	}

	user, err := s.userRepo.GetByEmail(c.Context(), req.Email)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	if user == nil {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthenticatedError("Invalid credentials"))
	}

	if cmpErr := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); cmpErr != nil {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthenticatedError("Invalid credentials"))
	}

	token, err := s.generateToken(user.ID, middleware.TokenUseID, idTokenTTL)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	return c.JSON(fiber.Map{
		"idToken": token,
		"user":    user,
	})
}

// CreateSession handles POST /api/auth/session. It trades a valid ID token
// for the long-lived session cookie the rest of the API authenticates with.
func (s *Server) CreateSession(c *fiber.Ctx) error {
	var req struct {
		IDToken string `json:"idToken"`
	}
	if err := c.BodyParser(&req); err != nil || req.IDToken == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewInvalidRequestError("idToken is required"))
	}

	userID, err := middleware.ParseToken(req.IDToken, middleware.TokenUseID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusUnauthorized, err)
	}

	sessionToken, err := s.generateToken(userID, middleware.TokenUseSession, middleware.SessionMaxAge)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	c.Cookie(&fiber.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    sessionToken,
		Path:     "/",
		MaxAge:   int(middleware.SessionMaxAge.Seconds()),
		HTTPOnly: true,
		Secure:   s.config.IsProduction(),
		SameSite: fiber.CookieSameSiteLaxMode,
	})

	return c.JSON(fiber.Map{"success": true})
}

// Logout handles POST /api/auth/logout
func (s *Server) Logout(c *fiber.Ctx) error {
	middleware.ClearSessionCookie(c)
	return c.JSON(fiber.Map{"success": true})
}

// CheckOnboarding handles POST /api/auth/check-onboarding. It accepts the
// session either as the cookie or in the body, for callers that hold the
// cookie value themselves.
func (s *Server) CheckOnboarding(c *fiber.Ctx) error {
	var req struct {
		SessionCookie string `json:"sessionCookie"`
	}
	_ = c.BodyParser(&req)

	cookie := req.SessionCookie
	if cookie == "" {
		cookie = c.Cookies(middleware.SessionCookieName)
	}
	if cookie == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"isAuthenticated": false,
		})
	}

	userID, err := middleware.ParseToken(cookie, middleware.TokenUseSession)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"isAuthenticated": false,
		})
	}

	exists, completed, err := s.OnboardingStatus(c.Context(), userID)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"isAuthenticated": false,
		})
	}
	if !exists {
		middleware.ClearSessionCookie(c)
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"isAuthenticated": false,
			"userDeleted":     true,
		})
	}

	return c.JSON(fiber.Map{
		"isAuthenticated":     true,
		"onboardingCompleted": completed,
	})
}

// generateToken creates an HS256 JWT carrying the given use claim.
func (s *Server) generateToken(userID uint, tokenUse string, ttl time.Duration) (string, error) {
	if s.config.SessionSecret == "" {
		return "", fmt.Errorf("session secret not configured")
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub":       strconv.FormatUint(uint64(userID), 10),
		"token_use": tokenUse,
		"iss":       "postpilot-api",
		"aud":       "postpilot-client",
		"exp":       now.Add(ttl).Unix(),
		"iat":       now.Unix(),
		"nbf":       now.Unix(),
		"jti":       s.generateJTI(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.config.SessionSecret))
}

// generateJTI creates a unique JWT ID to prevent replay attacks.
func (s *Server) generateJTI() string {
	return fmt.Sprintf("%d-%s", time.Now().Unix(), uuid.New().String()[:8])
}
