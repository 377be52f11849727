package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"marketdirectory/internal/domain"
)

type contentService struct {
	postRepo       domain.BlogPostRepository
	newsFlashRepo  domain.NewsFlashRepository
	contextTimeout time.Duration
}

func NewContentService(postRepo domain.BlogPostRepository, newsFlashRepo domain.NewsFlashRepository, timeout time.Duration) domain.ContentService {
	return &contentService{
		postRepo:       postRepo,
		newsFlashRepo:  newsFlashRepo,
		contextTimeout: timeout,
	}
}

func (s *contentService) CreatePost(ctx context.Context, actor domain.Actor, post *domain.BlogPost) (*domain.BlogPost, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if !actor.IsAdmin {
		return nil, domain.ErrForbidden
	}
	if strings.TrimSpace(post.Title) == "" {
		return nil, fmt.Errorf("%w: title is required", domain.ErrInvalidInput)
	}

	now := time.Now()
	post.AuthorID = actor.UserID
	post.CreatedAt = now
	post.UpdatedAt = now
	slug, err := insertWithUniqueSlug(ctx, slugify(post.Title), s.postRepo.SlugExists, func(slug string) error {
		post.Slug = slug
		return s.postRepo.Create(ctx, post)
	})
	if err != nil {
		return nil, err
	}
	post.Slug = slug
	return post, nil
}

func (s *contentService) GetPostByIDOrSlug(ctx context.Context, idOrSlug string) (*domain.BlogPost, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if looksLikeID(idOrSlug) {
		post, err := s.postRepo.GetByID(ctx, idOrSlug)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, domain.ErrNotFound
			}
			return nil, fmt.Errorf("get post: %w", err)
		}
		return post, nil
	}
	post, err := s.postRepo.GetBySlug(ctx, idOrSlug)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get post by slug: %w", err)
	}
	return post, nil
}

func (s *contentService) ListPublishedPosts(ctx context.Context, params domain.PaginationParams) ([]*domain.BlogPost, int, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	posts, total, err := s.postRepo.ListPublished(ctx, params)
	if err != nil {
		return nil, 0, fmt.Errorf("list posts: %w", err)
	}
	if posts == nil {
		posts = []*domain.BlogPost{}
	}
	return posts, total, nil
}

func (s *contentService) UpdatePost(ctx context.Context, actor domain.Actor, post *domain.BlogPost) (*domain.BlogPost, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if !actor.IsAdmin {
		return nil, domain.ErrForbidden
	}
	existing, err := s.postRepo.GetByID(ctx, post.ID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get post: %w", err)
	}
	post.Slug = existing.Slug
	post.AuthorID = existing.AuthorID
	post.CreatedAt = existing.CreatedAt
	post.UpdatedAt = time.Now()
	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, fmt.Errorf("update post: %w", err)
	}
	return post, nil
}

func (s *contentService) DeletePost(ctx context.Context, actor domain.Actor, id string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if !actor.IsAdmin {
		return domain.ErrForbidden
	}
	if err := s.postRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete post: %w", err)
	}
	return nil
}

func (s *contentService) CreateNewsFlash(ctx context.Context, actor domain.Actor, n *domain.NewsFlash) (*domain.NewsFlash, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if !actor.IsAdmin {
		return nil, domain.ErrForbidden
	}
	if strings.TrimSpace(n.Title) == "" {
		return nil, fmt.Errorf("%w: title is required", domain.ErrInvalidInput)
	}
	now := time.Now()
	n.CreatedAt = now
	n.UpdatedAt = now
	if err := s.newsFlashRepo.Create(ctx, n); err != nil {
		return nil, fmt.Errorf("create news flash: %w", err)
	}
	return n, nil
}

func (s *contentService) ListPublishedNewsFlashes(ctx context.Context) ([]*domain.NewsFlash, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	flashes, err := s.newsFlashRepo.ListPublished(ctx)
	if err != nil {
		return nil, fmt.Errorf("list news flashes: %w", err)
	}
	if flashes == nil {
		flashes = []*domain.NewsFlash{}
	}
	return flashes, nil
}

func (s *contentService) UpdateNewsFlash(ctx context.Context, actor domain.Actor, n *domain.NewsFlash) (*domain.NewsFlash, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if !actor.IsAdmin {
		return nil, domain.ErrForbidden
	}
	existing, err := s.newsFlashRepo.GetByID(ctx, n.ID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get news flash: %w", err)
	}
	n.CreatedAt = existing.CreatedAt
	n.UpdatedAt = time.Now()
	if err := s.newsFlashRepo.Update(ctx, n); err != nil {
		return nil, fmt.Errorf("update news flash: %w", err)
	}
	return n, nil
}

func (s *contentService) DeleteNewsFlash(ctx context.Context, actor domain.Actor, id string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if !actor.IsAdmin {
		return domain.ErrForbidden
	}
	if err := s.newsFlashRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete news flash: %w", err)
	}
	return nil
}
