package domain

import (
	"context"
	"time"
)

// Professional represents a directory listing for a service professional
// swagger:model Professional
type Professional struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	CategoryID  string    `json:"category_id"`
	Description string    `json:"description"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone"`
	Website     string    `json:"website"`
	City        string    `json:"city"`
	Address     string    `json:"address"`
	Images      []string  `json:"images"`
	Featured    bool      `json:"featured"`
	Active      bool      `json:"active"`
	Priority    int       `json:"priority"`
	Rating      float64   `json:"rating"`
	ReviewCount int       `json:"review_count"`
	OwnerID     string    `json:"owner_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ProfessionalUpdate carries the optional fields of a professional update. Nil fields are unchanged.
type ProfessionalUpdate struct {
	Name        *string
	CategoryID  *string
	Description *string
	Email       *string
	Phone       *string
	Website     *string
	City        *string
	Address     *string
	Images      *[]string
	Featured    *bool
	Active      *bool
	Priority    *int
}

// ProfessionalFilter narrows public directory listings.
type ProfessionalFilter struct {
	CategoryID string
	City       string
}

// ProfessionalRepository defines the interface for professional storage
type ProfessionalRepository interface {
	Create(ctx context.Context, p *Professional) error
	GetByID(ctx context.Context, id string) (*Professional, error)
	GetBySlug(ctx context.Context, slug string) (*Professional, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
	ListActive(ctx context.Context, filter ProfessionalFilter, params PaginationParams) ([]*Professional, int, error)
	ListByOwnerID(ctx context.Context, ownerID string) ([]*Professional, error)
	Update(ctx context.Context, id string, upd ProfessionalUpdate) (*Professional, error)
	SetRating(ctx context.Context, id string, rating float64, reviewCount int) error
	Delete(ctx context.Context, id string) error
}

// ProfessionalService defines the business logic for the professionals directory.
type ProfessionalService interface {
	CreateProfessional(ctx context.Context, p *Professional) (*Professional, error)
	GetByIDOrSlug(ctx context.Context, idOrSlug string) (*Professional, error)
	ListActive(ctx context.Context, filter ProfessionalFilter, params PaginationParams) ([]*Professional, int, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*Professional, error)
	UpdateProfessional(ctx context.Context, id string, actor Actor, upd ProfessionalUpdate) (*Professional, error)
	DeleteProfessional(ctx context.Context, id string, actor Actor) error
	ToggleFeatured(ctx context.Context, id string, actor Actor) (*Professional, error)
	AdjustPriority(ctx context.Context, id string, actor Actor, delta int) (*Professional, error)
	SetPriority(ctx context.Context, id string, actor Actor, value int) (*Professional, error)
}
