package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"marketdirectory/internal/domain"
)

// CatalogService manages categories. All mutations are admin-only.
type CatalogService struct {
	categoryRepo   domain.CategoryRepository
	contextTimeout time.Duration
}

func NewCatalogService(categoryRepo domain.CategoryRepository, timeout time.Duration) *CatalogService {
	return &CatalogService{
		categoryRepo:   categoryRepo,
		contextTimeout: timeout,
	}
}

func (s *CatalogService) CreateCategory(ctx context.Context, actor domain.Actor, c *domain.Category) (*domain.Category, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if !actor.IsAdmin {
		return nil, domain.ErrForbidden
	}
	if strings.TrimSpace(c.Name) == "" {
		return nil, fmt.Errorf("%w: name is required", domain.ErrInvalidInput)
	}

	now := time.Now()
	c.CreatedAt = now
	c.UpdatedAt = now
	slug, err := insertWithUniqueSlug(ctx, slugify(c.Name), s.categoryRepo.SlugExists, func(slug string) error {
		c.Slug = slug
		return s.categoryRepo.Create(ctx, c)
	})
	if err != nil {
		return nil, err
	}
	c.Slug = slug
	return c, nil
}

func (s *CatalogService) GetCategory(ctx context.Context, idOrSlug string) (*domain.Category, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if looksLikeID(idOrSlug) {
		c, err := s.categoryRepo.GetByID(ctx, idOrSlug)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, domain.ErrNotFound
			}
			return nil, fmt.Errorf("get category: %w", err)
		}
		return c, nil
	}
	c, err := s.categoryRepo.GetBySlug(ctx, idOrSlug)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get category by slug: %w", err)
	}
	return c, nil
}

func (s *CatalogService) ListCategories(ctx context.Context) ([]*domain.Category, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	categories, err := s.categoryRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	if categories == nil {
		categories = []*domain.Category{}
	}
	return categories, nil
}

func (s *CatalogService) UpdateCategory(ctx context.Context, actor domain.Actor, c *domain.Category) (*domain.Category, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if !actor.IsAdmin {
		return nil, domain.ErrForbidden
	}
	existing, err := s.categoryRepo.GetByID(ctx, c.ID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get category: %w", err)
	}
	if strings.TrimSpace(c.Name) == "" {
		c.Name = existing.Name
	}
	c.Slug = existing.Slug
	c.CreatedAt = existing.CreatedAt
	c.UpdatedAt = time.Now()
	if err := s.categoryRepo.Update(ctx, c); err != nil {
		return nil, fmt.Errorf("update category: %w", err)
	}
	return c, nil
}

func (s *CatalogService) DeleteCategory(ctx context.Context, actor domain.Actor, id string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if !actor.IsAdmin {
		return domain.ErrForbidden
	}
	if err := s.categoryRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete category: %w", err)
	}
	return nil
}
