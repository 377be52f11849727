package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"marketdirectory/internal/domain"
)

type reviewService struct {
	reviewRepo     domain.ReviewRepository
	profRepo       domain.ProfessionalRepository
	contextTimeout time.Duration
}

func NewReviewService(reviewRepo domain.ReviewRepository, profRepo domain.ProfessionalRepository, timeout time.Duration) domain.ReviewService {
	return &reviewService{
		reviewRepo:     reviewRepo,
		profRepo:       profRepo,
		contextTimeout: timeout,
	}
}

// SubmitReview stores a new review in the pending state. It never counts
// toward the professional's rating until approved.
func (s *reviewService) SubmitReview(ctx context.Context, rv *domain.Review) (*domain.Review, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if rv.AuthorID == "" {
		return nil, fmt.Errorf("%w: author is required", domain.ErrInvalidInput)
	}
	if rv.Rating < 1 || rv.Rating > 5 {
		return nil, fmt.Errorf("%w: rating must be between 1 and 5", domain.ErrInvalidInput)
	}
	if strings.TrimSpace(rv.Comment) == "" {
		return nil, fmt.Errorf("%w: comment is required", domain.ErrInvalidInput)
	}
	if _, err := s.profRepo.GetByID(ctx, rv.ProfessionalID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get professional: %w", err)
	}

	now := time.Now()
	rv.Approved = false
	rv.Verified = false
	rv.CreatedAt = now
	rv.UpdatedAt = now
	if err := s.reviewRepo.Create(ctx, rv); err != nil {
		return nil, fmt.Errorf("create review: %w", err)
	}
	return rv, nil
}

// ListForProfessional returns approved reviews for everyone; admins also see
// pending ones.
func (s *reviewService) ListForProfessional(ctx context.Context, professionalID string, actor domain.Actor) ([]*domain.Review, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	reviews, err := s.reviewRepo.ListByProfessionalID(ctx, professionalID, !actor.IsAdmin)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	if reviews == nil {
		reviews = []*domain.Review{}
	}
	return reviews, nil
}

func (s *reviewService) ListPending(ctx context.Context, actor domain.Actor, params domain.PaginationParams) ([]*domain.Review, int, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if !actor.IsAdmin {
		return nil, 0, domain.ErrForbidden
	}
	reviews, total, err := s.reviewRepo.ListPending(ctx, params)
	if err != nil {
		return nil, 0, fmt.Errorf("list pending reviews: %w", err)
	}
	if reviews == nil {
		reviews = []*domain.Review{}
	}
	return reviews, total, nil
}

// Moderate sets the approval state of a review. Rejection is soft: the record
// is kept with approved=false so the decision stays auditable. The
// professional's aggregate rating is recomputed from approved reviews.
func (s *reviewService) Moderate(ctx context.Context, reviewID string, actor domain.Actor, approved, verified bool) (*domain.Review, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if !actor.IsAdmin {
		return nil, domain.ErrForbidden
	}
	updated, err := s.reviewRepo.SetModeration(ctx, reviewID, approved, verified)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("moderate review: %w", err)
	}
	if err := s.refreshRating(ctx, updated.ProfessionalID); err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *reviewService) DeleteReview(ctx context.Context, reviewID string, actor domain.Actor) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if !actor.IsAdmin {
		return domain.ErrForbidden
	}
	rv, err := s.reviewRepo.GetByID(ctx, reviewID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get review: %w", err)
	}
	if err := s.reviewRepo.Delete(ctx, reviewID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete review: %w", err)
	}
	return s.refreshRating(ctx, rv.ProfessionalID)
}

func (s *reviewService) refreshRating(ctx context.Context, professionalID string) error {
	avg, count, err := s.reviewRepo.ApprovedStats(ctx, professionalID)
	if err != nil {
		return fmt.Errorf("review stats: %w", err)
	}
	if err := s.profRepo.SetRating(ctx, professionalID, avg, count); err != nil {
		return fmt.Errorf("set rating: %w", err)
	}
	return nil
}
