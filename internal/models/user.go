// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/datatypes"
)

// UserType classifies the account during onboarding.
type UserType string

const (
	UserTypeIndividual UserType = "individual"
	UserTypeBusiness   UserType = "business"
	UserTypeAgency     UserType = "agency"
)

// Content tone preferences collected during onboarding.
const (
	PreferenceToneProfessional = "professional"
	PreferenceToneCasual       = "casual"
	PreferenceToneTechnical    = "technical"
)

// Posting frequency preferences.
const (
	FrequencyDaily   = "daily"
	FrequencyWeekly  = "weekly"
	FrequencyMonthly = "monthly"
)

// Notification levels.
const (
	NotificationsAll       = "all"
	NotificationsImportant = "important"
	NotificationsNone      = "none"
)

// AI assistance levels.
const (
	AIAssistanceAggressive = "aggressive"
	AIAssistanceBalanced   = "balanced"
	AIAssistanceMinimal    = "minimal"
)

// UserInfo holds classification-specific identity fields. Individuals fill
// FirstName/LastName, businesses CompanyName, agencies AgencyName.
type UserInfo struct {
	FirstName   string `json:"firstName,omitempty"`
	LastName    string `json:"lastName,omitempty"`
	CompanyName string `json:"companyName,omitempty"`
	AgencyName  string `json:"agencyName,omitempty"`
}

// ContentPreferences is the onboarding content-preferences aggregate.
type ContentPreferences struct {
	Tone      string                        `gorm:"column:pref_tone" json:"tone"`
	Frequency string                        `gorm:"column:pref_frequency" json:"frequency"`
	Topics    datatypes.JSONSlice[string]   `gorm:"column:pref_topics;type:jsonb" json:"topics"`
}

// LinkedInProfile is the linked-social-profile state written by the OAuth callback.
type LinkedInProfile struct {
	Connected   bool       `gorm:"column:linkedin_connected" json:"connected"`
	ProfileURL  string     `gorm:"column:linkedin_profile_url" json:"profileUrl"`
	AccessToken string     `gorm:"column:linkedin_access_token" json:"-"`
	TokenExpiry *time.Time `gorm:"column:linkedin_token_expiry" json:"tokenExpiry,omitempty"`
}

// UserProfile is the aggregate profile record, one per authenticated identity.
// It is created with defaults on first sign-in and mutated only through the
// onboarding wizard or the profile-edit form. Profiles are never hard-deleted.
type UserProfile struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	Email        string `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"not null" json:"-"`
	DisplayName  string `json:"displayName"`
	AvatarURL    string `json:"avatarUrl"`

	UserType UserType                      `json:"userType"`
	UserInfo datatypes.JSONType[UserInfo]  `gorm:"type:jsonb" json:"userInfo"`

	ContentPreferences ContentPreferences `gorm:"embedded" json:"contentPreferences"`
	LinkedIn           LinkedInProfile    `gorm:"embedded" json:"linkedInProfile"`

	Notifications string `json:"notifications"`
	AIAssistance  string `gorm:"column:ai_assistance" json:"aiAssistance"`

	// OnboardingCompleted is monotonic: once true it gates all protected
	// routes and the application never resets it.
	OnboardingCompleted bool `json:"onboardingCompleted"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewUserProfile returns a profile populated with the first-sign-in defaults.
func NewUserProfile(email, passwordHash, displayName string) *UserProfile {
	return &UserProfile{
		Email:        email,
		PasswordHash: passwordHash,
		DisplayName:  displayName,
		ContentPreferences: ContentPreferences{
			Tone:      PreferenceToneProfessional,
			Frequency: FrequencyWeekly,
			Topics:    datatypes.JSONSlice[string]{},
		},
		Notifications: NotificationsImportant,
		AIAssistance:  AIAssistanceBalanced,
	}
}

// ValidUserType reports whether t is a known classification.
func ValidUserType(t UserType) bool {
	switch t {
	case UserTypeIndividual, UserTypeBusiness, UserTypeAgency:
		return true
	}
	return false
}
