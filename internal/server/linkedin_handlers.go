package server

import (
	"log/slog"
	"strconv"
	"time"

	"postpilot/internal/models"

	"github.com/gofiber/fiber/v2"
)

// LinkedInRedirect handles GET /linkedin. It sends the browser to LinkedIn's
// authorization page with the user ID as state, so the callback can attach
// the result to the right profile.
func (s *Server) LinkedInRedirect(c *fiber.Ctx) error {
	if !s.linkedinClient.Configured() {
		return models.RespondWithError(c, fiber.StatusServiceUnavailable,
			models.NewInvalidRequestError("LinkedIn integration is not configured"))
	}

	state := strconv.FormatUint(uint64(currentUserID(c)), 10)
	return c.Redirect(s.linkedinClient.AuthURL(state), fiber.StatusFound)
}

// LinkedInCallback handles GET /linkedin/callback. Any failure sends the
// browser back to the profile page with an error marker instead of a JSON
// error; this endpoint is only ever hit by a redirecting browser.
func (s *Server) LinkedInCallback(c *fiber.Ctx) error {
	profileURL := s.config.AppURL + "/profile"
	failureURL := profileURL + "?error=linkedin_connection_failed"

	if c.Query("error") != "" {
		return c.Redirect(failureURL, fiber.StatusFound)
	}

	code := c.Query("code")
	state := c.Query("state")
	if code == "" || state == "" {
		return c.Redirect(failureURL, fiber.StatusFound)
	}

	userID, err := strconv.ParseUint(state, 10, 32)
	if err != nil || userID == 0 {
		return c.Redirect(failureURL, fiber.StatusFound)
	}

	profile, err := s.userRepo.GetByID(c.Context(), uint(userID))
	if err != nil {
		return c.Redirect(failureURL, fiber.StatusFound)
	}

	token, err := s.linkedinClient.Exchange(c.Context(), code)
	if err != nil {
		slog.WarnContext(c.UserContext(), "linkedin token exchange failed", "error", err)
		return c.Redirect(failureURL, fiber.StatusFound)
	}

	info, err := s.linkedinClient.FetchUserInfo(c.Context(), token)
	if err != nil {
		slog.WarnContext(c.UserContext(), "linkedin userinfo fetch failed", "error", err)
		return c.Redirect(failureURL, fiber.StatusFound)
	}

	profile.LinkedIn.Connected = true
	profile.LinkedIn.ProfileURL = info.ProfileURL
	profile.LinkedIn.AccessToken = token.AccessToken
	if !token.Expiry.IsZero() {
		expiry := token.Expiry.UTC()
		profile.LinkedIn.TokenExpiry = &expiry
	} else {
		exp := time.Now().Add(60 * 24 * time.Hour).UTC()
		profile.LinkedIn.TokenExpiry = &exp
	}

	if err := s.userRepo.Update(c.Context(), profile); err != nil {
		slog.WarnContext(c.UserContext(), "linkedin profile write failed", "error", err)
		return c.Redirect(failureURL, fiber.StatusFound)
	}

	return c.Redirect(profileURL, fiber.StatusFound)
}
