package repository

import (
	"context"
	"errors"
	"strings"

	"postpilot/internal/models"

	"gorm.io/gorm"
)

// ProjectFilter narrows a project listing. Zero values mean no filtering.
type ProjectFilter struct {
	Type   models.ProjectType
	Status models.ProjectStatus
	// SortAsc orders by created_at ascending when true, descending otherwise.
	SortAsc bool
}

// ProjectRepository defines persistence operations for content projects.
type ProjectRepository interface {
	Create(ctx context.Context, project *models.Project) error
	GetByID(ctx context.Context, id uint) (*models.Project, error)
	ListByOwner(ctx context.Context, userID uint, filter ProjectFilter) ([]models.Project, error)
	Update(ctx context.Context, project *models.Project) error
	Delete(ctx context.Context, id, userID uint) error
}

type projectRepository struct {
	db *gorm.DB
}

// NewProjectRepository returns a new ProjectRepository implementation.
func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &projectRepository{db: db}
}

func (r *projectRepository) Create(ctx context.Context, project *models.Project) error {
	if err := r.db.WithContext(ctx).Create(project).Error; err != nil {
		return models.NewPersistenceFailedError(err)
	}
	return nil
}

func (r *projectRepository) GetByID(ctx context.Context, id uint) (*models.Project, error) {
	var project models.Project
	if err := r.db.WithContext(ctx).First(&project, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Project", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &project, nil
}

func (r *projectRepository) ListByOwner(ctx context.Context, userID uint, filter ProjectFilter) ([]models.Project, error) {
	query := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if filter.Type != "" {
		query = query.Where("type = ?", filter.Type)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	order := "created_at DESC"
	if filter.SortAsc {
		order = "created_at ASC"
	}

	var projects []models.Project
	if err := query.Order(order).Find(&projects).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return projects, nil
}

func (r *projectRepository) Update(ctx context.Context, project *models.Project) error {
	err := r.db.WithContext(ctx).Save(project).Error
	if err != nil {
		if strings.Contains(err.Error(), "FOREIGN KEY") {
			return models.NewInvalidRequestError("invalid project reference")
		}
		return models.NewPersistenceFailedError(err)
	}
	return nil
}

// Delete removes a project owned by userID. Deleting someone else's
// project reports not found rather than leaking its existence.
func (r *projectRepository) Delete(ctx context.Context, id, userID uint) error {
	result := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&models.Project{})
	if result.Error != nil {
		return models.NewInternalError(result.Error)
	}
	if result.RowsAffected == 0 {
		return models.NewNotFoundError("Project", id)
	}
	return nil
}
