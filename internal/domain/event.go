package domain

import (
	"context"
	"time"
)

// TicketTier is a named ticket price point for an event.
type TicketTier struct {
	Label string  `json:"label"`
	Price float64 `json:"price"`
}

// Organizer is the contact block for the person running an event.
type Organizer struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// Location describes where an event takes place.
type Location struct {
	Venue   string `json:"venue"`
	City    string `json:"city"`
	Address string `json:"address"`
}

// Event represents a promoted marketplace event
// swagger:model Event
type Event struct {
	ID                 string        `json:"id"`
	Title              string        `json:"title"`
	Slug               string        `json:"slug"`
	Description        string        `json:"description"`
	CategoryID         string        `json:"category_id"`
	StartDate          time.Time     `json:"start_date"`
	StartTime          string        `json:"start_time"`
	EndTime            string        `json:"end_time"`
	Location           Location      `json:"location"`
	PosterImage        string        `json:"poster_image"`
	Images             []string      `json:"images"`
	Media              []VideoEmbed  `json:"media"`
	Ticketing          []TicketTier  `json:"ticketing"`
	Capacity           int           `json:"capacity"`
	Organizer          Organizer     `json:"organizer"`
	Published          bool          `json:"published"`
	Featured           bool          `json:"featured"`
	PromotionTier      PromotionTier `json:"promotion_tier"`
	PromotionStartDate *time.Time    `json:"promotion_start_date"`
	PromotionExpiry    *time.Time    `json:"promotion_expiry_date"`
	Priority           int           `json:"priority"`
	OwnerID            string        `json:"owner_id"`
	CreatedAt          time.Time     `json:"created_at"`
	UpdatedAt          time.Time     `json:"updated_at"`
}

// EventUpdate carries the optional fields of an event update. Nil fields are unchanged.
type EventUpdate struct {
	Description   *string
	StartDate     *time.Time
	StartTime     *string
	EndTime       *string
	Location      *Location
	PosterImage   *string
	Ticketing     *[]TicketTier
	Capacity      *int
	Organizer     *Organizer
	Published     *bool
	Featured      *bool
	PromotionTier *PromotionTier
	Priority      *int
}

// EventFilter narrows public event listings.
type EventFilter struct {
	CategoryID string
	City       string
}

// EventRepository defines the interface for event storage
type EventRepository interface {
	Create(ctx context.Context, event *Event) error
	GetByID(ctx context.Context, id string) (*Event, error)
	GetBySlug(ctx context.Context, slug string) (*Event, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
	ListPublished(ctx context.Context, filter EventFilter, params PaginationParams) ([]*Event, int, error)
	ListByOwnerID(ctx context.Context, ownerID string) ([]*Event, error)
	Update(ctx context.Context, id string, upd EventUpdate) (*Event, error)
	Delete(ctx context.Context, id string) error
}

// EventService defines the business logic for events and their promotion.
type EventService interface {
	PromoteEvent(ctx context.Context, event *Event, tierName string, mediaURLs []string) (*Event, error)
	GetByIDOrSlug(ctx context.Context, idOrSlug string) (*Event, error)
	ListPublished(ctx context.Context, filter EventFilter, params PaginationParams) ([]*Event, int, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*Event, error)
	UpdateEvent(ctx context.Context, eventID string, actor Actor, upd EventUpdate) (*Event, error)
	DeleteEvent(ctx context.Context, eventID string, actor Actor) error
	ToggleFeatured(ctx context.Context, eventID string, actor Actor) (*Event, error)
	AdjustPriority(ctx context.Context, eventID string, actor Actor, delta int) (*Event, error)
	SetPriority(ctx context.Context, eventID string, actor Actor, value int) (*Event, error)
}
