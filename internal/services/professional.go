package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"marketdirectory/internal/domain"
)

// Field allow-lists for professional updates, keyed by capability.
var professionalOwnerFields = map[string]bool{
	"name":        true,
	"category_id": true,
	"description": true,
	"email":       true,
	"phone":       true,
	"website":     true,
	"city":        true,
	"address":     true,
	"images":      true,
}

var professionalAdminFields = map[string]bool{
	"featured": true,
	"active":   true,
	"priority": true,
}

type professionalService struct {
	profRepo       domain.ProfessionalRepository
	categoryRepo   domain.CategoryRepository
	contextTimeout time.Duration
}

func NewProfessionalService(profRepo domain.ProfessionalRepository, categoryRepo domain.CategoryRepository, timeout time.Duration) domain.ProfessionalService {
	return &professionalService{
		profRepo:       profRepo,
		categoryRepo:   categoryRepo,
		contextTimeout: timeout,
	}
}

func (s *professionalService) CreateProfessional(ctx context.Context, p *domain.Professional) (*domain.Professional, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if p.OwnerID == "" {
		return nil, fmt.Errorf("%w: owner is required", domain.ErrInvalidInput)
	}
	if strings.TrimSpace(p.Name) == "" {
		return nil, fmt.Errorf("%w: name is required", domain.ErrInvalidInput)
	}
	if p.CategoryID != "" {
		if _, err := s.categoryRepo.GetByID(ctx, p.CategoryID); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, fmt.Errorf("%w: unknown category %q", domain.ErrInvalidInput, p.CategoryID)
			}
			return nil, fmt.Errorf("get category: %w", err)
		}
	}

	now := time.Now()
	p.Active = true
	p.Featured = false
	p.Priority = 0
	p.Rating = 0
	p.ReviewCount = 0
	p.CreatedAt = now
	p.UpdatedAt = now

	slug, err := insertWithUniqueSlug(ctx, slugify(p.Name), s.profRepo.SlugExists, func(slug string) error {
		p.Slug = slug
		return s.profRepo.Create(ctx, p)
	})
	if err != nil {
		return nil, err
	}
	p.Slug = slug
	return p, nil
}

func (s *professionalService) GetByIDOrSlug(ctx context.Context, idOrSlug string) (*domain.Professional, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if looksLikeID(idOrSlug) {
		p, err := s.profRepo.GetByID(ctx, idOrSlug)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, domain.ErrNotFound
			}
			return nil, fmt.Errorf("get professional: %w", err)
		}
		return p, nil
	}
	p, err := s.profRepo.GetBySlug(ctx, idOrSlug)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get professional by slug: %w", err)
	}
	return p, nil
}

func (s *professionalService) ListActive(ctx context.Context, filter domain.ProfessionalFilter, params domain.PaginationParams) ([]*domain.Professional, int, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	pros, total, err := s.profRepo.ListActive(ctx, filter, params)
	if err != nil {
		return nil, 0, fmt.Errorf("list professionals: %w", err)
	}
	if pros == nil {
		pros = []*domain.Professional{}
	}
	return pros, total, nil
}

func (s *professionalService) ListByOwner(ctx context.Context, ownerID string) ([]*domain.Professional, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()
	return s.profRepo.ListByOwnerID(ctx, ownerID)
}

func professionalUpdateFields(upd domain.ProfessionalUpdate) []string {
	var fields []string
	if upd.Name != nil {
		fields = append(fields, "name")
	}
	if upd.CategoryID != nil {
		fields = append(fields, "category_id")
	}
	if upd.Description != nil {
		fields = append(fields, "description")
	}
	if upd.Email != nil {
		fields = append(fields, "email")
	}
	if upd.Phone != nil {
		fields = append(fields, "phone")
	}
	if upd.Website != nil {
		fields = append(fields, "website")
	}
	if upd.City != nil {
		fields = append(fields, "city")
	}
	if upd.Address != nil {
		fields = append(fields, "address")
	}
	if upd.Images != nil {
		fields = append(fields, "images")
	}
	if upd.Featured != nil {
		fields = append(fields, "featured")
	}
	if upd.Active != nil {
		fields = append(fields, "active")
	}
	if upd.Priority != nil {
		fields = append(fields, "priority")
	}
	return fields
}

func (s *professionalService) UpdateProfessional(ctx context.Context, id string, actor domain.Actor, upd domain.ProfessionalUpdate) (*domain.Professional, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	p, err := s.profRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get professional: %w", err)
	}
	if !actor.IsAdmin && p.OwnerID != actor.UserID {
		return nil, domain.ErrForbidden
	}

	for _, field := range professionalUpdateFields(upd) {
		if professionalOwnerFields[field] {
			continue
		}
		if professionalAdminFields[field] && actor.IsAdmin {
			continue
		}
		return nil, fmt.Errorf("%w: field %q is not editable by this role", domain.ErrForbidden, field)
	}

	if upd.CategoryID != nil && *upd.CategoryID != "" {
		if _, err := s.categoryRepo.GetByID(ctx, *upd.CategoryID); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, fmt.Errorf("%w: unknown category %q", domain.ErrInvalidInput, *upd.CategoryID)
			}
			return nil, fmt.Errorf("get category: %w", err)
		}
	}
	if upd.Priority != nil {
		clamped := clampPriority(*upd.Priority)
		upd.Priority = &clamped
	}

	updated, err := s.profRepo.Update(ctx, id, upd)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("update professional: %w", err)
	}
	return updated, nil
}

func (s *professionalService) DeleteProfessional(ctx context.Context, id string, actor domain.Actor) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	p, err := s.profRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get professional: %w", err)
	}
	if !actor.IsAdmin && p.OwnerID != actor.UserID {
		return domain.ErrForbidden
	}
	if err := s.profRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete professional: %w", err)
	}
	return nil
}

func (s *professionalService) ToggleFeatured(ctx context.Context, id string, actor domain.Actor) (*domain.Professional, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if !actor.IsAdmin {
		return nil, domain.ErrForbidden
	}
	p, err := s.profRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get professional: %w", err)
	}
	featured := !p.Featured
	updated, err := s.profRepo.Update(ctx, id, domain.ProfessionalUpdate{Featured: &featured})
	if err != nil {
		return nil, fmt.Errorf("toggle featured: %w", err)
	}
	return updated, nil
}

func (s *professionalService) AdjustPriority(ctx context.Context, id string, actor domain.Actor, delta int) (*domain.Professional, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if !actor.IsAdmin {
		return nil, domain.ErrForbidden
	}
	if delta != 1 && delta != -1 {
		return nil, fmt.Errorf("%w: priority delta must be 1 or -1", domain.ErrInvalidInput)
	}
	p, err := s.profRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get professional: %w", err)
	}
	priority := clampPriority(p.Priority + delta)
	updated, err := s.profRepo.Update(ctx, id, domain.ProfessionalUpdate{Priority: &priority})
	if err != nil {
		return nil, fmt.Errorf("adjust priority: %w", err)
	}
	return updated, nil
}

func (s *professionalService) SetPriority(ctx context.Context, id string, actor domain.Actor, value int) (*domain.Professional, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if !actor.IsAdmin {
		return nil, domain.ErrForbidden
	}
	priority := clampPriority(value)
	updated, err := s.profRepo.Update(ctx, id, domain.ProfessionalUpdate{Priority: &priority})
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("set priority: %w", err)
	}
	return updated, nil
}
