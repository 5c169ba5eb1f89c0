package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	ProfileKeyPrefix         = "profile:%d"
	OnboardingDraftKeyPrefix = "onboarding:draft:%d"
)

const (
	// ProfileTTL bounds how stale the session gate's onboarding view can be.
	ProfileTTL = 5 * time.Minute
	// OnboardingDraftTTL is how long an abandoned wizard draft survives.
	OnboardingDraftTTL = 24 * time.Hour
)

func ProfileKey(userID uint) string {
	return fmt.Sprintf(ProfileKeyPrefix, userID)
}

func OnboardingDraftKey(userID uint) string {
	return fmt.Sprintf(OnboardingDraftKeyPrefix, userID)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateProfile(ctx context.Context, userID uint) {
	Invalidate(ctx, ProfileKey(userID))
}
