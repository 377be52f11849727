package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"marketdirectory/internal/domain"
)

var subscriberEmailRegexp = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

type newsletterService struct {
	subscriberRepo  domain.SubscriberRepository
	emailService    domain.EmailService
	unsubscribeBase string
	contextTimeout  time.Duration
}

// NewNewsletterService creates a NewsletterService. unsubscribeBase is the
// public URL prefix the unsubscribe token is appended to in the welcome mail.
func NewNewsletterService(subscriberRepo domain.SubscriberRepository, emailService domain.EmailService, unsubscribeBase string, timeout time.Duration) domain.NewsletterService {
	return &newsletterService{
		subscriberRepo:  subscriberRepo,
		emailService:    emailService,
		unsubscribeBase: strings.TrimSuffix(unsubscribeBase, "/"),
		contextTimeout:  timeout,
	}
}

func (s *newsletterService) Subscribe(ctx context.Context, email string) (*domain.Subscriber, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	email = strings.TrimSpace(strings.ToLower(email))
	if !subscriberEmailRegexp.MatchString(email) {
		return nil, fmt.Errorf("%w: invalid email format", domain.ErrInvalidInput)
	}

	existing, err := s.subscriberRepo.GetByEmail(ctx, email)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("get subscriber: %w", err)
	}
	now := time.Now()
	if existing != nil {
		if existing.UnsubscribedAt == nil {
			return nil, domain.ErrAlreadySubscribed
		}
		if err := s.subscriberRepo.Resubscribe(ctx, existing.ID, now); err != nil {
			return nil, fmt.Errorf("resubscribe: %w", err)
		}
		existing.SubscribedAt = now
		existing.UnsubscribedAt = nil
		return existing, nil
	}

	sub := &domain.Subscriber{
		Email:            email,
		UnsubscribeToken: uuid.NewString(),
		SubscribedAt:     now,
	}
	if err := s.subscriberRepo.Create(ctx, sub); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return nil, domain.ErrAlreadySubscribed
		}
		return nil, fmt.Errorf("create subscriber: %w", err)
	}

	if s.emailService != nil {
		data := &domain.SubscriberWelcomeEmailData{
			Email:          email,
			UnsubscribeURL: s.unsubscribeBase + "/" + sub.UnsubscribeToken,
		}
		// Welcome mail failure should not undo the signup.
		_ = s.emailService.SendSubscriberWelcome(ctx, data)
	}
	return sub, nil
}

func (s *newsletterService) Unsubscribe(ctx context.Context, token string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	sub, err := s.subscriberRepo.GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get subscriber by token: %w", err)
	}
	if sub.UnsubscribedAt != nil {
		return nil // already unsubscribed, idempotent
	}
	if err := s.subscriberRepo.Unsubscribe(ctx, sub.ID, time.Now()); err != nil {
		return fmt.Errorf("unsubscribe: %w", err)
	}
	return nil
}

func (s *newsletterService) ListSubscribers(ctx context.Context, actor domain.Actor, params domain.PaginationParams) ([]*domain.Subscriber, int, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if !actor.IsAdmin {
		return nil, 0, domain.ErrForbidden
	}
	subs, total, err := s.subscriberRepo.List(ctx, params)
	if err != nil {
		return nil, 0, fmt.Errorf("list subscribers: %w", err)
	}
	if subs == nil {
		subs = []*domain.Subscriber{}
	}
	return subs, total, nil
}
