package service

import (
	"fmt"
	"strings"

	"postpilot/internal/models"
)

const generationSystemPrompt = "You are a professional LinkedIn content creator who specializes in creating engaging and viral posts."

// buildSystemPrompt returns the system message, naming the persona when one
// is attached.
func buildSystemPrompt(personaTitle, personaDescription string) string {
	if personaTitle == "" {
		return generationSystemPrompt
	}
	var b strings.Builder
	b.WriteString(generationSystemPrompt)
	fmt.Fprintf(&b, " Write in the voice of the persona %q.", personaTitle)
	if personaDescription != "" {
		fmt.Fprintf(&b, " Persona description: %s", personaDescription)
	}
	return b.String()
}

// lengthGuidance renders the length descriptor as prompt instructions.
// Presets map to paragraph counts; custom lengths get an explicit word target.
func lengthGuidance(length models.ContentLength) string {
	switch length.Type {
	case models.LengthShort:
		return "short (1-2 paragraphs)"
	case models.LengthLong:
		return "long (3-4 paragraphs)"
	case models.LengthCustom:
		return fmt.Sprintf("approximately %d words", length.CustomWordCount)
	default:
		return "medium (2-3 paragraphs)"
	}
}

// buildUserPrompt constructs the generation prompt for the given request.
// Post-like types get the hook/hashtags/spacing/call-to-action template;
// articles get a longer-form template.
func buildUserPrompt(projectType models.ProjectType, subject, tone, keywords string, length models.ContentLength) string {
	if tone == "" {
		tone = models.PreferenceToneProfessional
	}

	var b strings.Builder
	switch projectType {
	case models.ProjectTypeBlogArticle:
		fmt.Fprintf(&b, "Write a blog article about %s.\n", subject)
		fmt.Fprintf(&b, "Tone: %s\n", tone)
		fmt.Fprintf(&b, "Length: %s\n", lengthGuidance(length))
		if keywords != "" {
			fmt.Fprintf(&b, "Include these keywords: %s\n", keywords)
		}
		b.WriteString(`
Make sure the article:
- Opens with a compelling introduction
- Uses clear section headings
- Supports claims with concrete examples
- Ends with a conclusion and a takeaway for the reader`)
	case models.ProjectTypeLinkedInCarousel:
		fmt.Fprintf(&b, "Write the slide copy for a LinkedIn carousel about %s.\n", subject)
		fmt.Fprintf(&b, "Tone: %s\n", tone)
		fmt.Fprintf(&b, "Length: %s\n", lengthGuidance(length))
		if keywords != "" {
			fmt.Fprintf(&b, "Include these keywords: %s\n", keywords)
		}
		b.WriteString(`
Make sure the carousel:
- Starts with a hook slide to grab attention
- Dedicates one idea to each slide
- Ends with a call to action slide
- Follows LinkedIn best practices`)
	default:
		fmt.Fprintf(&b, "Write a professional LinkedIn post about %s.\n", subject)
		fmt.Fprintf(&b, "Tone: %s\n", tone)
		fmt.Fprintf(&b, "Length: %s\n", lengthGuidance(length))
		if keywords != "" {
			fmt.Fprintf(&b, "Include these keywords: %s\n", keywords)
		}
		b.WriteString(`
Make sure the post:
- Starts with a hook to grab attention
- Includes relevant hashtags
- Has proper spacing for readability
- Ends with a call to action
- Follows LinkedIn best practices
- Is engaging and shareable`)
	}
	return b.String()
}
