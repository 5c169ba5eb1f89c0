package repository

import (
	"context"
	"errors"

	"postpilot/internal/models"

	"gorm.io/gorm"
)

// PersonaRepository defines persistence operations for writing personas.
type PersonaRepository interface {
	Create(ctx context.Context, persona *models.Persona) error
	GetByID(ctx context.Context, id uint) (*models.Persona, error)
	ListByOwner(ctx context.Context, userID uint) ([]models.Persona, error)
	Update(ctx context.Context, persona *models.Persona) error
	Delete(ctx context.Context, id, userID uint) error
}

type personaRepository struct {
	db *gorm.DB
}

// NewPersonaRepository returns a new PersonaRepository implementation.
func NewPersonaRepository(db *gorm.DB) PersonaRepository {
	return &personaRepository{db: db}
}

func (r *personaRepository) Create(ctx context.Context, persona *models.Persona) error {
	if err := r.db.WithContext(ctx).Create(persona).Error; err != nil {
		return models.NewPersistenceFailedError(err)
	}
	return nil
}

func (r *personaRepository) GetByID(ctx context.Context, id uint) (*models.Persona, error) {
	var persona models.Persona
	if err := r.db.WithContext(ctx).First(&persona, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Persona", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &persona, nil
}

func (r *personaRepository) ListByOwner(ctx context.Context, userID uint) ([]models.Persona, error) {
	var personas []models.Persona
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&personas).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return personas, nil
}

func (r *personaRepository) Update(ctx context.Context, persona *models.Persona) error {
	if err := r.db.WithContext(ctx).Save(persona).Error; err != nil {
		return models.NewPersistenceFailedError(err)
	}
	return nil
}

// Delete removes a persona owned by userID. Children of the deleted
// persona keep their parent reference; rendering treats a dangling
// parent as a root.
func (r *personaRepository) Delete(ctx context.Context, id, userID uint) error {
	result := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&models.Persona{})
	if result.Error != nil {
		return models.NewInternalError(result.Error)
	}
	if result.RowsAffected == 0 {
		return models.NewNotFoundError("Persona", id)
	}
	return nil
}
