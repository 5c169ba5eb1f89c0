package service

import (
	"context"

	"postpilot/internal/cache"
	"postpilot/internal/models"
	"postpilot/internal/observability"
	"postpilot/internal/repository"

	"gorm.io/datatypes"
)

type OnboardingService struct {
	userRepo repository.UserRepository
}

// OnboardingState is what the wizard endpoints return.
type OnboardingState struct {
	Step      string           `json:"step"`
	Completed bool             `json:"completed"`
	Draft     *OnboardingDraft `json:"draft,omitempty"`
}

func NewOnboardingService(userRepo repository.UserRepository) *OnboardingService {
	return &OnboardingService{userRepo: userRepo}
}

// State returns the wizard position for the user, loading the draft from
// redis. A missing draft means the wizard starts at the first step.
func (s *OnboardingService) State(ctx context.Context, userID uint) (*OnboardingState, error) {
	profile, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile.OnboardingCompleted {
		return &OnboardingState{Step: StepFinalConfig, Completed: true}, nil
	}

	draft, err := s.loadDraft(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &OnboardingState{Step: draft.Step(), Draft: draft}, nil
}

// Next applies the payload to the current step. A validation failure leaves
// the stored draft untouched. The final step performs the single profile
// write and clears the draft.
func (s *OnboardingService) Next(ctx context.Context, userID uint, in StepInput) (*OnboardingState, error) {
	profile, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile.OnboardingCompleted {
		return nil, models.NewInvalidRequestError("onboarding is already completed")
	}

	draft, err := s.loadDraft(ctx, userID)
	if err != nil {
		return nil, err
	}

	done, err := draft.Advance(in)
	if err != nil {
		return nil, models.NewInvalidRequestError(err.Error())
	}

	if done {
		if err := s.writeProfile(ctx, profile, draft); err != nil {
			return nil, err
		}
		cache.Invalidate(ctx, cache.OnboardingDraftKey(userID))
		observability.OnboardingCompletions.WithLabelValues(string(draft.UserType)).Inc()
		return &OnboardingState{Step: StepFinalConfig, Completed: true}, nil
	}

	if err := cache.SetJSON(ctx, cache.OnboardingDraftKey(userID), draft, cache.OnboardingDraftTTL); err != nil {
		return nil, models.NewInternalError(err)
	}
	return &OnboardingState{Step: draft.Step(), Draft: draft}, nil
}

// Back moves the wizard one step backwards without dropping answers.
func (s *OnboardingService) Back(ctx context.Context, userID uint) (*OnboardingState, error) {
	profile, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile.OnboardingCompleted {
		return nil, models.NewInvalidRequestError("onboarding is already completed")
	}

	draft, err := s.loadDraft(ctx, userID)
	if err != nil {
		return nil, err
	}
	draft.Back()

	if err := cache.SetJSON(ctx, cache.OnboardingDraftKey(userID), draft, cache.OnboardingDraftTTL); err != nil {
		return nil, models.NewInternalError(err)
	}
	return &OnboardingState{Step: draft.Step(), Draft: draft}, nil
}

func (s *OnboardingService) loadDraft(ctx context.Context, userID uint) (*OnboardingDraft, error) {
	var draft OnboardingDraft
	found, err := cache.GetJSON(ctx, cache.OnboardingDraftKey(userID), &draft)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if !found {
		return &OnboardingDraft{}, nil
	}
	return &draft, nil
}

// writeProfile is the only place the wizard touches the profile row: one
// merged write flipping OnboardingCompleted.
func (s *OnboardingService) writeProfile(ctx context.Context, profile *models.UserProfile, draft *OnboardingDraft) error {
	profile.UserType = draft.UserType
	profile.UserInfo = datatypes.NewJSONType(draft.UserInfo)
	profile.ContentPreferences.Tone = draft.Tone
	profile.ContentPreferences.Frequency = draft.Frequency
	profile.ContentPreferences.Topics = datatypes.JSONSlice[string](draft.Topics)
	if draft.LinkedInProfileURL != "" {
		profile.LinkedIn.ProfileURL = draft.LinkedInProfileURL
	}
	profile.Notifications = draft.Notifications
	profile.AIAssistance = draft.AIAssistance
	profile.OnboardingCompleted = true

	return s.userRepo.Update(ctx, profile)
}
