package validation

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"postpilot/internal/models"
)

const maxProjectTitleLen = 200

var knownTones = map[string]struct{}{
	models.PreferenceToneProfessional: {},
	models.PreferenceToneCasual:       {},
	models.PreferenceToneTechnical:    {},
}

// ValidateProjectTitle bounds the optional project title. Lengths count
// runes, not bytes.
func ValidateProjectTitle(title string) error {
	if utf8.RuneCountInString(title) > maxProjectTitleLen {
		return fmt.Errorf("title must be at most %d characters", maxProjectTitleLen)
	}
	return nil
}

// ValidateProjectType rejects unknown content types. Empty is allowed; the
// store substitutes the default type on creation.
func ValidateProjectType(t models.ProjectType) error {
	if t == "" {
		return nil
	}
	if !models.ValidProjectType(t) {
		return fmt.Errorf("unknown project type %q", t)
	}
	return nil
}

// ValidateTone rejects unknown tone values. Empty means inherit.
func ValidateTone(tone string) error {
	if tone == "" {
		return nil
	}
	if _, ok := knownTones[tone]; !ok {
		return fmt.Errorf("unknown tone %q", tone)
	}
	return nil
}

// ValidateContentLength checks a length descriptor. Presets pass as-is;
// custom lengths must carry a word count inside the allowed bounds.
func ValidateContentLength(length models.ContentLength) error {
	switch length.Type {
	case "", models.LengthShort, models.LengthMedium, models.LengthLong:
		return nil
	case models.LengthCustom:
		if length.CustomWordCount < models.MinCustomWordCount || length.CustomWordCount > models.MaxCustomWordCount {
			return fmt.Errorf("custom word count must be between %d and %d",
				models.MinCustomWordCount, models.MaxCustomWordCount)
		}
		return nil
	default:
		return fmt.Errorf("unknown content length type %q", length.Type)
	}
}

// ValidateGenerationSubject is checked before any provider call is made.
func ValidateGenerationSubject(subject string) error {
	if strings.TrimSpace(subject) == "" {
		return fmt.Errorf("subject is required")
	}
	return nil
}

// ValidatePersonaFields bounds persona title and description.
func ValidatePersonaFields(title, description string) error {
	if strings.TrimSpace(title) == "" {
		return fmt.Errorf("title is required")
	}
	if utf8.RuneCountInString(title) > models.MaxPersonaTitleLen {
		return fmt.Errorf("title must be at most %d characters", models.MaxPersonaTitleLen)
	}
	if utf8.RuneCountInString(description) > models.MaxPersonaDescriptionLen {
		return fmt.Errorf("description must be at most %d characters", models.MaxPersonaDescriptionLen)
	}
	return nil
}
