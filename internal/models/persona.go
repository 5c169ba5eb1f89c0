package models

import "time"

// Bounds for persona fields.
const (
	MaxPersonaTitleLen       = 120
	MaxPersonaDescriptionLen = 2000
)

// Persona is a small reusable named voice fragment. A persona may point at a
// parent persona to model "variant of" relationships; the data model does not
// prevent parent cycles, so listings only ever flatten one level.
type Persona struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Title       string `gorm:"not null;size:120" json:"title"`
	Description string `gorm:"size:2000" json:"description"`

	// ParentID links a variant to its root. Deleting the parent does not
	// cascade; children are left orphaned.
	ParentID *uint `gorm:"index" json:"parentId,omitempty"`

	UserID uint         `gorm:"not null;index" json:"user_id"`
	User   *UserProfile `gorm:"foreignKey:UserID" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PersonaNode is a persona with its direct variants, as returned by the list
// operation. Only one level is reconstructed: variants of variants appear as
// children of whatever their ParentID points at, never nested deeper.
type PersonaNode struct {
	Persona
	Variants []Persona `json:"variants"`
}
