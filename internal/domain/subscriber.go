package domain

import (
	"context"
	"errors"
	"time"
)

// ErrAlreadySubscribed is returned when the email is already on the list.
var ErrAlreadySubscribed = errors.New("already subscribed")

// Subscriber is a newsletter list entry
// swagger:model Subscriber
type Subscriber struct {
	ID               string     `json:"id"`
	Email            string     `json:"email"`
	UnsubscribeToken string     `json:"-"`
	SubscribedAt     time.Time  `json:"subscribed_at"`
	UnsubscribedAt   *time.Time `json:"unsubscribed_at,omitempty"`
}

// SubscriberRepository defines the interface for newsletter subscriber storage
type SubscriberRepository interface {
	Create(ctx context.Context, s *Subscriber) error
	GetByEmail(ctx context.Context, email string) (*Subscriber, error)
	GetByToken(ctx context.Context, token string) (*Subscriber, error)
	Resubscribe(ctx context.Context, id string, at time.Time) error
	Unsubscribe(ctx context.Context, id string, at time.Time) error
	List(ctx context.Context, params PaginationParams) ([]*Subscriber, int, error)
}

// NewsletterService defines the business logic for newsletter signup.
type NewsletterService interface {
	Subscribe(ctx context.Context, email string) (*Subscriber, error)
	Unsubscribe(ctx context.Context, token string) error
	ListSubscribers(ctx context.Context, actor Actor, params PaginationParams) ([]*Subscriber, int, error)
}
