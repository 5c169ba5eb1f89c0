package server

import (
	"postpilot/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
)

// GetMyProfile handles GET /api/users/me
func (s *Server) GetMyProfile(c *fiber.Ctx) error {
	profile, err := s.userRepo.GetByID(c.Context(), currentUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(profile)
}

// UpdateMyProfile handles PUT /api/users/me. It merges the provided fields;
// OnboardingCompleted is monotonic and cannot be unset here.
func (s *Server) UpdateMyProfile(c *fiber.Ctx) error {
	var req struct {
		DisplayName *string          `json:"displayName"`
		AvatarURL   *string          `json:"avatarUrl"`
		UserInfo    *models.UserInfo `json:"userInfo"`

		Tone      *string   `json:"tone"`
		Frequency *string   `json:"frequency"`
		Topics    *[]string `json:"topics"`

		Notifications *string `json:"notifications"`
		AIAssistance  *string `json:"aiAssistance"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewInvalidRequestError("Invalid request body"))
	}

	profile, err := s.userRepo.GetByID(c.Context(), currentUserID(c))
	if err != nil {
		return respondError(c, err)
	}

	if req.DisplayName != nil {
		profile.DisplayName = *req.DisplayName
	}
	if req.AvatarURL != nil {
		profile.AvatarURL = *req.AvatarURL
	}
	if req.UserInfo != nil {
		profile.UserInfo = datatypes.NewJSONType(*req.UserInfo)
	}
	if req.Tone != nil {
		switch *req.Tone {
		case models.PreferenceToneProfessional, models.PreferenceToneCasual, models.PreferenceToneTechnical:
			profile.ContentPreferences.Tone = *req.Tone
		default:
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewInvalidRequestError("unknown tone"))
		}
	}
	if req.Frequency != nil {
		switch *req.Frequency {
		case models.FrequencyDaily, models.FrequencyWeekly, models.FrequencyMonthly:
			profile.ContentPreferences.Frequency = *req.Frequency
		default:
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewInvalidRequestError("unknown frequency"))
		}
	}
	if req.Topics != nil {
		profile.ContentPreferences.Topics = datatypes.JSONSlice[string](*req.Topics)
	}
	if req.Notifications != nil {
		switch *req.Notifications {
		case models.NotificationsAll, models.NotificationsImportant, models.NotificationsNone:
			profile.Notifications = *req.Notifications
		default:
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewInvalidRequestError("unknown notifications level"))
		}
	}
	if req.AIAssistance != nil {
		switch *req.AIAssistance {
		case models.AIAssistanceAggressive, models.AIAssistanceBalanced, models.AIAssistanceMinimal:
			profile.AIAssistance = *req.AIAssistance
		default:
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewInvalidRequestError("unknown aiAssistance level"))
		}
	}

	if err := s.userRepo.Update(c.Context(), profile); err != nil {
		return respondError(c, err)
	}
	return c.JSON(profile)
}
