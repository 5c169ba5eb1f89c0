package service

import (
	"testing"

	"postpilot/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestBuildUserPrompt_PostTemplate(t *testing.T) {
	t.Parallel()

	prompt := buildUserPrompt(models.ProjectTypeLinkedInPost, "remote hiring", "casual", "golang, teams",
		models.ContentLengthPreset(models.LengthShort))

	assert.Contains(t, prompt, "LinkedIn post about remote hiring")
	assert.Contains(t, prompt, "Tone: casual")
	assert.Contains(t, prompt, "short (1-2 paragraphs)")
	assert.Contains(t, prompt, "Include these keywords: golang, teams")
	assert.Contains(t, prompt, "hook")
	assert.Contains(t, prompt, "hashtags")
	assert.Contains(t, prompt, "call to action")
}

func TestBuildUserPrompt_ArticleTemplate(t *testing.T) {
	t.Parallel()

	prompt := buildUserPrompt(models.ProjectTypeBlogArticle, "platform teams", "", "",
		models.ContentLengthPreset(models.LengthLong))

	assert.Contains(t, prompt, "blog article about platform teams")
	// Tone falls back to professional.
	assert.Contains(t, prompt, "Tone: professional")
	assert.Contains(t, prompt, "long (3-4 paragraphs)")
	assert.Contains(t, prompt, "section headings")
	assert.NotContains(t, prompt, "Include these keywords")
}

func TestBuildUserPrompt_CustomLengthWordTarget(t *testing.T) {
	t.Parallel()

	prompt := buildUserPrompt(models.ProjectTypeLinkedInPost, "x", "professional", "",
		models.ContentLength{Type: models.LengthCustom, CustomWordCount: 750})
	assert.Contains(t, prompt, "approximately 750 words")
}

func TestBuildSystemPrompt(t *testing.T) {
	t.Parallel()

	plain := buildSystemPrompt("", "")
	assert.Equal(t, generationSystemPrompt, plain)

	withPersona := buildSystemPrompt("Recruiter", "Warm and direct")
	assert.Contains(t, withPersona, generationSystemPrompt)
	assert.Contains(t, withPersona, `"Recruiter"`)
	assert.Contains(t, withPersona, "Warm and direct")
}
