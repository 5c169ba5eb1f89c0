package service

import (
	"context"

	"postpilot/internal/models"
	"postpilot/internal/repository"
	"postpilot/internal/validation"
)

type PersonaService struct {
	personaRepo repository.PersonaRepository
}

type CreatePersonaInput struct {
	UserID      uint
	Title       string
	Description string
	ParentID    *uint
}

type UpdatePersonaInput struct {
	UserID      uint
	PersonaID   uint
	Title       *string
	Description *string
}

func NewPersonaService(personaRepo repository.PersonaRepository) *PersonaService {
	return &PersonaService{personaRepo: personaRepo}
}

func (s *PersonaService) CreatePersona(ctx context.Context, in CreatePersonaInput) (*models.Persona, error) {
	if err := validation.ValidatePersonaFields(in.Title, in.Description); err != nil {
		return nil, models.NewInvalidRequestError(err.Error())
	}

	if in.ParentID != nil {
		if err := s.checkOwnership(ctx, *in.ParentID, in.UserID); err != nil {
			return nil, err
		}
	}

	persona := &models.Persona{
		Title:       in.Title,
		Description: in.Description,
		ParentID:    in.ParentID,
		UserID:      in.UserID,
	}
	if err := s.personaRepo.Create(ctx, persona); err != nil {
		return nil, err
	}
	return persona, nil
}

func (s *PersonaService) GetPersona(ctx context.Context, personaID, userID uint) (*models.Persona, error) {
	persona, err := s.personaRepo.GetByID(ctx, personaID)
	if err != nil {
		return nil, err
	}
	if persona.UserID != userID {
		return nil, models.NewNotFoundError("Persona", personaID)
	}
	return persona, nil
}

// ListPersonas returns the user's personas arranged as a two-level tree.
// Personas whose parent no longer exists are promoted to roots. Variants of
// variants hang off whatever their ParentID names; nesting never goes deeper
// than one level, so a parent cycle cannot make rendering loop.
func (s *PersonaService) ListPersonas(ctx context.Context, userID uint) ([]models.PersonaNode, error) {
	personas, err := s.personaRepo.ListByOwner(ctx, userID)
	if err != nil {
		return nil, err
	}

	byID := make(map[uint]bool, len(personas))
	for _, p := range personas {
		byID[p.ID] = true
	}

	variants := make(map[uint][]models.Persona)
	var roots []models.Persona
	for _, p := range personas {
		if p.ParentID != nil && byID[*p.ParentID] {
			variants[*p.ParentID] = append(variants[*p.ParentID], p)
			continue
		}
		roots = append(roots, p)
	}

	nodes := make([]models.PersonaNode, 0, len(roots))
	for _, root := range roots {
		node := models.PersonaNode{Persona: root, Variants: variants[root.ID]}
		if node.Variants == nil {
			node.Variants = []models.Persona{}
		}
		nodes = append(nodes, node)
	}
	return nodes, nil
}

func (s *PersonaService) UpdatePersona(ctx context.Context, in UpdatePersonaInput) (*models.Persona, error) {
	persona, err := s.GetPersona(ctx, in.PersonaID, in.UserID)
	if err != nil {
		return nil, err
	}

	title := persona.Title
	description := persona.Description
	if in.Title != nil {
		title = *in.Title
	}
	if in.Description != nil {
		description = *in.Description
	}
	if err := validation.ValidatePersonaFields(title, description); err != nil {
		return nil, models.NewInvalidRequestError(err.Error())
	}

	persona.Title = title
	persona.Description = description
	if err := s.personaRepo.Update(ctx, persona); err != nil {
		return nil, err
	}
	return persona, nil
}

// DuplicatePersona copies a persona as a variant. The copy always points at
// the original's root: duplicating a variant attaches the copy next to it
// rather than under it, which keeps the tree at two levels.
func (s *PersonaService) DuplicatePersona(ctx context.Context, personaID, userID uint) (*models.Persona, error) {
	original, err := s.GetPersona(ctx, personaID, userID)
	if err != nil {
		return nil, err
	}

	parentID := original.ID
	if original.ParentID != nil {
		parentID = *original.ParentID
	}

	title := original.Title + " (Copy)"
	if runes := []rune(title); len(runes) > models.MaxPersonaTitleLen {
		title = string(runes[:models.MaxPersonaTitleLen])
	}

	copy := &models.Persona{
		Title:       title,
		Description: original.Description,
		ParentID:    &parentID,
		UserID:      userID,
	}
	if err := s.personaRepo.Create(ctx, copy); err != nil {
		return nil, err
	}
	return copy, nil
}

func (s *PersonaService) DeletePersona(ctx context.Context, personaID, userID uint) error {
	return s.personaRepo.Delete(ctx, personaID, userID)
}

func (s *PersonaService) checkOwnership(ctx context.Context, personaID, userID uint) error {
	persona, err := s.personaRepo.GetByID(ctx, personaID)
	if err != nil {
		return err
	}
	if persona.UserID != userID {
		return models.NewNotFoundError("Persona", personaID)
	}
	return nil
}
