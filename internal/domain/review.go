package domain

import (
	"context"
	"time"
)

// Review is a user-submitted rating for a professional. Reviews start out
// unapproved and only count toward the professional's rating once an admin
// approves them.
// swagger:model Review
type Review struct {
	ID             string    `json:"id"`
	ProfessionalID string    `json:"professional_id"`
	AuthorID       string    `json:"author_id"`
	AuthorName     string    `json:"author_name"`
	Rating         int       `json:"rating"`
	Comment        string    `json:"comment"`
	Approved       bool      `json:"approved"`
	Verified       bool      `json:"verified"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// ReviewRepository defines the interface for review storage
type ReviewRepository interface {
	Create(ctx context.Context, rv *Review) error
	GetByID(ctx context.Context, id string) (*Review, error)
	ListByProfessionalID(ctx context.Context, professionalID string, approvedOnly bool) ([]*Review, error)
	ListPending(ctx context.Context, params PaginationParams) ([]*Review, int, error)
	SetModeration(ctx context.Context, id string, approved, verified bool) (*Review, error)
	Delete(ctx context.Context, id string) error
	ApprovedStats(ctx context.Context, professionalID string) (avg float64, count int, err error)
}

// ReviewService defines the business logic for review submission and moderation.
type ReviewService interface {
	SubmitReview(ctx context.Context, rv *Review) (*Review, error)
	ListForProfessional(ctx context.Context, professionalID string, actor Actor) ([]*Review, error)
	ListPending(ctx context.Context, actor Actor, params PaginationParams) ([]*Review, int, error)
	Moderate(ctx context.Context, reviewID string, actor Actor, approved, verified bool) (*Review, error)
	DeleteReview(ctx context.Context, reviewID string, actor Actor) error
}
