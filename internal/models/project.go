package models

import (
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/datatypes"
)

// ProjectType identifies which content variant a project carries.
type ProjectType string

const (
	ProjectTypeLinkedInPost     ProjectType = "linkedin_post"
	ProjectTypeLinkedInCarousel ProjectType = "linkedin_carousel"
	ProjectTypeBlogArticle      ProjectType = "blog_article"
	ProjectTypeEditorialCal     ProjectType = "editorial_calendar"
)

// DefaultProjectType is the primary content type assigned when a creation
// request leaves the type unset.
const DefaultProjectType = ProjectTypeLinkedInPost

// ValidProjectType reports whether t is a known project type.
func ValidProjectType(t ProjectType) bool {
	switch t {
	case ProjectTypeLinkedInPost, ProjectTypeLinkedInCarousel,
		ProjectTypeBlogArticle, ProjectTypeEditorialCal:
		return true
	}
	return false
}

// ProjectStatus tracks the lifecycle of a project. Projects start as drafts
// and move to generated on the first successful generation.
type ProjectStatus string

const (
	ProjectStatusDraft     ProjectStatus = "draft"
	ProjectStatusGenerated ProjectStatus = "generated"
	ProjectStatusPublished ProjectStatus = "published"
	ProjectStatusArchived  ProjectStatus = "archived"
)

// Content length descriptors.
const (
	LengthShort  = "short"
	LengthMedium = "medium"
	LengthLong   = "long"
	LengthCustom = "custom"
)

// Bounds for custom word counts.
const (
	MinCustomWordCount = 50
	MaxCustomWordCount = 2000
)

// ContentLength describes the requested output size. Preset types carry an
// explicit word-count pair; custom carries a single word count.
type ContentLength struct {
	Type            string `json:"type"`
	MinWords        int    `json:"minWords,omitempty"`
	MaxWords        int    `json:"maxWords,omitempty"`
	CustomWordCount int    `json:"customWordCount,omitempty"`
}

// ContentLengthPreset returns the word-count pair for a preset descriptor.
// Unrecognized types fall back to medium.
func ContentLengthPreset(lengthType string) ContentLength {
	switch lengthType {
	case LengthShort:
		return ContentLength{Type: LengthShort, MinWords: 150, MaxWords: 250}
	case LengthLong:
		return ContentLength{Type: LengthLong, MinWords: 600, MaxWords: 1000}
	case LengthCustom:
		return ContentLength{Type: LengthCustom}
	default:
		return ContentLength{Type: LengthMedium, MinWords: 300, MaxWords: 500}
	}
}

// ContentCommon holds the fields shared by every project content variant.
type ContentCommon struct {
	Subject          string        `json:"subject"`
	Keywords         string        `json:"keywords,omitempty"`
	Tone             string        `json:"tone,omitempty"`
	TargetAudience   string        `json:"targetAudience,omitempty"`
	ContentLength    ContentLength `json:"contentLength"`
	GeneratedContent string        `json:"generatedContent,omitempty"`
	LastGeneratedAt  *time.Time    `json:"lastGeneratedAt,omitempty"`
}

// Content is the tagged union over project content variants. Each project
// type decodes to exactly one variant struct; the store boundary is the only
// place raw JSON is turned into a variant.
type Content interface {
	ContentType() ProjectType
	Common() *ContentCommon
}

// PostContent is the linkedin_post variant.
type PostContent struct {
	ContentCommon
	Style     string `json:"style,omitempty"`
	Formality string `json:"formality,omitempty"`
}

func (c *PostContent) ContentType() ProjectType { return ProjectTypeLinkedInPost }
func (c *PostContent) Common() *ContentCommon   { return &c.ContentCommon }

// CarouselSlide is one slide of a carousel variant.
type CarouselSlide struct {
	Content string `json:"content"`
	Image   string `json:"image,omitempty"`
}

// CarouselContent is the linkedin_carousel variant.
type CarouselContent struct {
	ContentCommon
	Slides []CarouselSlide `json:"slides,omitempty"`
}

func (c *CarouselContent) ContentType() ProjectType { return ProjectTypeLinkedInCarousel }
func (c *CarouselContent) Common() *ContentCommon   { return &c.ContentCommon }

// ArticleContent is the blog_article variant.
type ArticleContent struct {
	ContentCommon
	Title      string   `json:"title,omitempty"`
	CoverImage string   `json:"coverImage,omitempty"`
	Tags       []string `json:"tags,omitempty"`
}

func (c *ArticleContent) ContentType() ProjectType { return ProjectTypeBlogArticle }
func (c *ArticleContent) Common() *ContentCommon   { return &c.ContentCommon }

// ScheduledPost is one planned entry of an editorial calendar.
type ScheduledPost struct {
	Date   time.Time   `json:"date"`
	Type   ProjectType `json:"type"`
	Status string      `json:"status"` // planned, generated, published
}

// CalendarContent is the editorial_calendar variant.
type CalendarContent struct {
	ContentCommon
	StartDate      *time.Time      `json:"startDate,omitempty"`
	EndDate        *time.Time      `json:"endDate,omitempty"`
	Frequency      string          `json:"frequency,omitempty"` // daily, weekly, biweekly, monthly
	Topics         []string        `json:"topics,omitempty"`
	ScheduledPosts []ScheduledPost `json:"scheduledPosts,omitempty"`
}

func (c *CalendarContent) ContentType() ProjectType { return ProjectTypeEditorialCal }
func (c *CalendarContent) Common() *ContentCommon   { return &c.ContentCommon }

// NewContent returns the zero variant for the given project type.
func NewContent(t ProjectType) (Content, error) {
	switch t {
	case ProjectTypeLinkedInPost:
		return &PostContent{}, nil
	case ProjectTypeLinkedInCarousel:
		return &CarouselContent{}, nil
	case ProjectTypeBlogArticle:
		return &ArticleContent{}, nil
	case ProjectTypeEditorialCal:
		return &CalendarContent{}, nil
	}
	return nil, fmt.Errorf("unknown project type %q", t)
}

// DecodeContent decodes a raw content column into the variant matching t.
func DecodeContent(t ProjectType, raw []byte) (Content, error) {
	content, err := NewContent(t)
	if err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return content, nil
	}
	if err := json.Unmarshal(raw, content); err != nil {
		return nil, fmt.Errorf("decode %s content: %w", t, err)
	}
	return content, nil
}

// Project represents one content-generation request/result pair.
type Project struct {
	ID     uint          `gorm:"primaryKey" json:"id"`
	Type   ProjectType   `gorm:"not null;index" json:"type"`
	Title  string        `json:"title,omitempty"`
	Status ProjectStatus `gorm:"not null;default:draft;index" json:"status"`

	// UserID is the owning identity; it is immutable after creation.
	UserID uint         `gorm:"not null;index" json:"user_id"`
	User   *UserProfile `gorm:"foreignKey:UserID" json:"-"`

	// PersonaID is a weak reference: deleting the persona leaves it dangling.
	PersonaID *uint `gorm:"index" json:"persona_id,omitempty"`

	Content datatypes.JSON `gorm:"type:jsonb" json:"content"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DecodeContent decodes the project's content column into its typed variant.
func (p *Project) DecodeContent() (Content, error) {
	return DecodeContent(p.Type, p.Content)
}

// SetContent encodes the given variant back into the content column. The
// variant must match the project's type.
func (p *Project) SetContent(c Content) error {
	if c.ContentType() != p.Type {
		return fmt.Errorf("content variant %s does not match project type %s", c.ContentType(), p.Type)
	}
	raw, err := json.Marshal(c)
	if err != nil {
		return err
	}
	p.Content = datatypes.JSON(raw)
	return nil
}
