// Package seed provides helpers to create test and demo data for the
// application database. These helpers are intended for development and
// testing only.
package seed

import (
	"fmt"
	"math/rand"
	"time"

	"postpilot/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// SeedPassword is the password every seeded account gets.
const SeedPassword = "Password123!dev"

// Factory builds domain entities and persists them to the database.
type Factory struct {
	db   *gorm.DB
	rand *rand.Rand
	// passwordHash is computed once; bcrypt per user makes large seeds slow.
	passwordHash string
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	hash, _ := bcrypt.GenerateFromPassword([]byte(SeedPassword), bcrypt.MinCost)
	return &Factory{
		db:           db,
		rand:         rand.New(rand.NewSource(time.Now().UnixNano())),
		passwordHash: string(hash),
	}
}

var seedTopics = []string{
	"engineering leadership", "remote work", "product strategy", "hiring",
	"developer tools", "startups", "marketing", "personal branding",
	"AI in the workplace", "career growth",
}

func (f *Factory) pickTopics() []string {
	n := 2 + f.rand.Intn(3)
	picked := make([]string, 0, n)
	for _, i := range f.rand.Perm(len(seedTopics))[:n] {
		picked = append(picked, seedTopics[i])
	}
	return picked
}

// CreateUser constructs and persists a sample profile in a realistic
// post-onboarding state. Optional override functions may modify the generated
// profile before saving.
func (f *Factory) CreateUser(overrides ...func(*models.UserProfile)) (*models.UserProfile, error) {
	firstName := gofakeit.FirstName()
	lastName := gofakeit.LastName()

	profile := models.NewUserProfile(
		gofakeit.Email(),
		f.passwordHash,
		firstName+" "+lastName,
	)
	profile.AvatarURL = fmt.Sprintf("https://i.pravatar.cc/150?u=%s", gofakeit.UUID())
	profile.OnboardingCompleted = true

	userTypes := []models.UserType{models.UserTypeIndividual, models.UserTypeBusiness, models.UserTypeAgency}
	profile.UserType = userTypes[f.rand.Intn(len(userTypes))]
	switch profile.UserType {
	case models.UserTypeIndividual:
		profile.UserInfo = datatypes.NewJSONType(models.UserInfo{FirstName: firstName, LastName: lastName})
	case models.UserTypeBusiness:
		profile.UserInfo = datatypes.NewJSONType(models.UserInfo{CompanyName: gofakeit.Company()})
	case models.UserTypeAgency:
		profile.UserInfo = datatypes.NewJSONType(models.UserInfo{AgencyName: gofakeit.Company() + " Agency"})
	}

	tones := []string{models.PreferenceToneProfessional, models.PreferenceToneCasual, models.PreferenceToneTechnical}
	frequencies := []string{models.FrequencyDaily, models.FrequencyWeekly, models.FrequencyMonthly}
	profile.ContentPreferences.Tone = tones[f.rand.Intn(len(tones))]
	profile.ContentPreferences.Frequency = frequencies[f.rand.Intn(len(frequencies))]
	profile.ContentPreferences.Topics = datatypes.JSONSlice[string](f.pickTopics())

	for _, override := range overrides {
		override(profile)
	}

	if err := f.db.Create(profile).Error; err != nil {
		return nil, fmt.Errorf("seed user: %w", err)
	}
	return profile, nil
}

// CreatePersona persists a persona for the given owner. Pass a parent ID to
// create a variant.
func (f *Factory) CreatePersona(owner *models.UserProfile, parentID *uint, overrides ...func(*models.Persona)) (*models.Persona, error) {
	persona := &models.Persona{
		Title:       gofakeit.JobTitle(),
		Description: gofakeit.Paragraph(1, 2, 8, " "),
		ParentID:    parentID,
		UserID:      owner.ID,
	}

	for _, override := range overrides {
		override(persona)
	}

	if err := f.db.Create(persona).Error; err != nil {
		return nil, fmt.Errorf("seed persona: %w", err)
	}
	return persona, nil
}

// CreateProject persists a project for the given owner in a random lifecycle
// state, with typed content matching the chosen project type. Generated and
// published projects carry a fake completion result.
func (f *Factory) CreateProject(owner *models.UserProfile, persona *models.Persona, overrides ...func(*models.Project)) (*models.Project, error) {
	types := []models.ProjectType{
		models.ProjectTypeLinkedInPost,
		models.ProjectTypeLinkedInCarousel,
		models.ProjectTypeBlogArticle,
		models.ProjectTypeEditorialCal,
	}
	statuses := []models.ProjectStatus{
		models.ProjectStatusDraft,
		models.ProjectStatusGenerated,
		models.ProjectStatusPublished,
		models.ProjectStatusArchived,
	}

	project := &models.Project{
		Type:   types[f.rand.Intn(len(types))],
		Title:  gofakeit.Sentence(4),
		Status: statuses[f.rand.Intn(len(statuses))],
		UserID: owner.ID,
	}
	if persona != nil {
		project.PersonaID = &persona.ID
	}

	content, err := models.NewContent(project.Type)
	if err != nil {
		return nil, err
	}
	common := content.Common()
	common.Subject = gofakeit.Phrase()
	common.Tone = owner.ContentPreferences.Tone
	common.ContentLength = models.ContentLengthPreset(models.LengthMedium)
	if project.Status != models.ProjectStatusDraft {
		now := time.Now().Add(-time.Duration(f.rand.Intn(72)) * time.Hour).UTC()
		common.GeneratedContent = gofakeit.Paragraph(2, 3, 12, "\n\n")
		common.LastGeneratedAt = &now
	}
	if err := project.SetContent(content); err != nil {
		return nil, err
	}

	// realistic created_at spread over the last 90 days
	project.CreatedAt = time.Now().Add(-time.Duration(f.rand.Intn(90*24)) * time.Hour)

	for _, override := range overrides {
		override(project)
	}

	if err := f.db.Create(project).Error; err != nil {
		return nil, fmt.Errorf("seed project: %w", err)
	}
	return project, nil
}
