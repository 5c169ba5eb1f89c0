// Package middleware provides authentication and authorization middleware for the application.
package middleware

import (
	"context"
	"strconv"
	"time"

	"postpilot/internal/config"
	"postpilot/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// SessionCookieName is the cookie carrying the long-lived session token.
const SessionCookieName = "session"

// SessionMaxAge is the session cookie lifetime.
const SessionMaxAge = 5 * 24 * time.Hour

// Token use claims distinguishing the short-lived identity token issued at
// login from the long-lived session token stored in the cookie.
const (
	TokenUseID      = "id"
	TokenUseSession = "session"
)

var cfg *config.Config

// InitMiddleware initializes authentication middleware with the given config.
func InitMiddleware(c *config.Config) {
	cfg = c
}

// ProfileGate resolves onboarding state for a session's identity. It reports
// whether the identity still exists upstream and whether onboarding finished.
type ProfileGate interface {
	OnboardingStatus(ctx context.Context, userID uint) (exists bool, completed bool, err error)
}

// ParseToken validates an HS256 token of the given use and returns the user ID
// from its subject claim.
func ParseToken(tokenString, expectedUse string) (uint, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid signing method")
		}
		return []byte(cfg.SessionSecret), nil
	})
	if err != nil || !token.Valid {
		return 0, models.NewUnauthenticatedError("Invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, models.NewUnauthenticatedError("Invalid token claims")
	}

	if use, _ := claims["token_use"].(string); use != expectedUse {
		return 0, models.NewUnauthenticatedError("Invalid token use")
	}

	subStr, ok := claims["sub"].(string)
	if !ok {
		return 0, models.NewUnauthenticatedError("Invalid token structure - missing subject")
	}

	userIDVal, err := strconv.ParseUint(subStr, 10, 32)
	if err != nil {
		return 0, models.NewUnauthenticatedError("Invalid user ID in token")
	}

	return uint(userIDVal), nil
}

// ClearSessionCookie expires the session cookie on the response.
func ClearSessionCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		Secure:   cfg != nil && cfg.IsProduction(),
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

// SessionRequired enforces a valid session cookie on protected routes. It
// runs on every protected request; any failure while checking state is
// treated as not authenticated (fail closed). When the referenced identity
// no longer exists upstream the stale cookie is cleared.
func SessionRequired(gate ProfileGate) fiber.Handler {
	return func(c *fiber.Ctx) error {
		cookie := c.Cookies(SessionCookieName)
		if cookie == "" {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthenticatedError("Session required"))
		}

		userID, err := ParseToken(cookie, TokenUseSession)
		if err != nil {
			ClearSessionCookie(c)
			return models.RespondWithError(c, fiber.StatusUnauthorized, err)
		}

		exists, completed, err := gate.OnboardingStatus(c.Context(), userID)
		if err != nil {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthenticatedError("Unable to verify session"))
		}
		if !exists {
			ClearSessionCookie(c)
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthenticatedError("Account no longer exists"))
		}

		c.Locals("userID", userID)
		c.Locals("onboardingCompleted", completed)

		// Refresh the logging context now that the user is known.
		ctx := context.WithValue(c.UserContext(), UserIDKey, userID)
		c.SetUserContext(ctx)

		return c.Next()
	}
}

// OnboardingRequired blocks access to routes that require a completed
// onboarding flow, pointing incomplete accounts at the onboarding surface.
func OnboardingRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		completed, _ := c.Locals("onboardingCompleted").(bool)
		if !completed {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error":    "Onboarding not completed",
				"redirect": "/onboarding",
			})
		}
		return c.Next()
	}
}
