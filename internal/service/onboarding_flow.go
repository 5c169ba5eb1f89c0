package service

import (
	"fmt"

	"postpilot/internal/models"
)

// Onboarding wizard steps, in order.
const (
	StepUserType           = "user-type"
	StepContentPreferences = "content-preferences"
	StepLinkedInProfile    = "linkedin-profile"
	StepFinalConfig        = "final-config"
)

var onboardingSteps = []string{
	StepUserType,
	StepContentPreferences,
	StepLinkedInProfile,
	StepFinalConfig,
}

// OnboardingDraft accumulates wizard answers outside the profile row. The
// profile itself is only written once, when the final step passes.
type OnboardingDraft struct {
	StepIndex int `json:"stepIndex"`

	UserType models.UserType `json:"userType,omitempty"`
	UserInfo models.UserInfo `json:"userInfo"`

	Tone      string   `json:"tone,omitempty"`
	Frequency string   `json:"frequency,omitempty"`
	Topics    []string `json:"topics,omitempty"`

	LinkedInProfileURL string `json:"linkedinProfileUrl,omitempty"`

	Notifications string `json:"notifications,omitempty"`
	AIAssistance  string `json:"aiAssistance,omitempty"`
}

// Step returns the name of the step the draft currently sits on.
func (d *OnboardingDraft) Step() string {
	if d.StepIndex < 0 || d.StepIndex >= len(onboardingSteps) {
		return onboardingSteps[0]
	}
	return onboardingSteps[d.StepIndex]
}

// StepInput is the union of all per-step payload fields. Handlers decode the
// whole body into it; only the fields belonging to the current step are read.
type StepInput struct {
	UserType    string `json:"userType"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	CompanyName string `json:"companyName"`
	AgencyName  string `json:"agencyName"`

	Tone      string   `json:"tone"`
	Frequency string   `json:"frequency"`
	Topics    []string `json:"topics"`

	LinkedInProfileURL string `json:"linkedinProfileUrl"`

	Notifications string `json:"notifications"`
	AIAssistance  string `json:"aiAssistance"`
}

// Advance validates in against the draft's current step, merges it, and moves
// the draft forward. On validation failure the draft is left untouched. It
// reports whether the wizard finished.
func (d *OnboardingDraft) Advance(in StepInput) (done bool, err error) {
	switch d.Step() {
	case StepUserType:
		if err := d.applyUserType(in); err != nil {
			return false, err
		}
	case StepContentPreferences:
		if err := d.applyContentPreferences(in); err != nil {
			return false, err
		}
	case StepLinkedInProfile:
		// Optional step: any payload is accepted, including none.
		d.LinkedInProfileURL = in.LinkedInProfileURL
	case StepFinalConfig:
		if err := d.applyFinalConfig(in); err != nil {
			return false, err
		}
		if err := d.Complete(); err != nil {
			return false, err
		}
		return true, nil
	}

	d.StepIndex++
	return false, nil
}

// Back moves the draft one step backwards, keeping collected answers.
func (d *OnboardingDraft) Back() {
	if d.StepIndex > 0 {
		d.StepIndex--
	}
}

func (d *OnboardingDraft) applyUserType(in StepInput) error {
	userType := models.UserType(in.UserType)
	if in.UserType == "" {
		return fmt.Errorf("userType is required")
	}
	if !models.ValidUserType(userType) {
		return fmt.Errorf("unknown userType %q", in.UserType)
	}
	d.UserType = userType
	d.UserInfo = models.UserInfo{
		FirstName:   in.FirstName,
		LastName:    in.LastName,
		CompanyName: in.CompanyName,
		AgencyName:  in.AgencyName,
	}
	return nil
}

func (d *OnboardingDraft) applyContentPreferences(in StepInput) error {
	switch in.Tone {
	case models.PreferenceToneProfessional, models.PreferenceToneCasual, models.PreferenceToneTechnical:
	case "":
		return fmt.Errorf("tone is required")
	default:
		return fmt.Errorf("unknown tone %q", in.Tone)
	}
	switch in.Frequency {
	case models.FrequencyDaily, models.FrequencyWeekly, models.FrequencyMonthly:
	case "":
		return fmt.Errorf("frequency is required")
	default:
		return fmt.Errorf("unknown frequency %q", in.Frequency)
	}
	if len(in.Topics) == 0 {
		return fmt.Errorf("at least one topic is required")
	}
	d.Tone = in.Tone
	d.Frequency = in.Frequency
	d.Topics = in.Topics
	return nil
}

func (d *OnboardingDraft) applyFinalConfig(in StepInput) error {
	switch in.Notifications {
	case models.NotificationsAll, models.NotificationsImportant, models.NotificationsNone:
	case "":
		return fmt.Errorf("notifications is required")
	default:
		return fmt.Errorf("unknown notifications level %q", in.Notifications)
	}
	switch in.AIAssistance {
	case models.AIAssistanceAggressive, models.AIAssistanceBalanced, models.AIAssistanceMinimal:
	case "":
		return fmt.Errorf("aiAssistance is required")
	default:
		return fmt.Errorf("unknown aiAssistance level %q", in.AIAssistance)
	}
	d.Notifications = in.Notifications
	d.AIAssistance = in.AIAssistance
	return nil
}

// Complete checks the invariants a finished wizard must satisfy. Earlier
// steps enforce them as they run; this guards against drafts that skipped
// ahead or lost fields.
func (d *OnboardingDraft) Complete() error {
	if d.UserType == "" {
		return fmt.Errorf("userType is not set")
	}
	if d.Tone == "" || d.Frequency == "" || len(d.Topics) == 0 {
		return fmt.Errorf("content preferences are incomplete")
	}
	switch d.UserType {
	case models.UserTypeIndividual:
		if d.UserInfo.FirstName == "" || d.UserInfo.LastName == "" {
			return fmt.Errorf("first and last name are required for individual accounts")
		}
	case models.UserTypeBusiness:
		if d.UserInfo.CompanyName == "" {
			return fmt.Errorf("company name is required for business accounts")
		}
	case models.UserTypeAgency:
		if d.UserInfo.AgencyName == "" {
			return fmt.Errorf("agency name is required for agency accounts")
		}
	}
	if d.Notifications == "" || d.AIAssistance == "" {
		return fmt.Errorf("final configuration is incomplete")
	}
	return nil
}
