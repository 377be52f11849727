package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"marketdirectory/internal/domain"
)

// Priority bounds for directory ordering. Admin adjustments are clamped so a
// long run of increments cannot drift without limit.
const (
	priorityMin = -100
	priorityMax = 100
)

func clampPriority(v int) int {
	if v < priorityMin {
		return priorityMin
	}
	if v > priorityMax {
		return priorityMax
	}
	return v
}

// Field allow-lists for event updates, keyed by capability. Owners edit the
// content of their own event; admins additionally control visibility and
// promotion state.
var eventOwnerFields = map[string]bool{
	"description":  true,
	"start_date":   true,
	"start_time":   true,
	"end_time":     true,
	"location":     true,
	"poster_image": true,
	"ticketing":    true,
	"capacity":     true,
	"organizer":    true,
}

var eventAdminFields = map[string]bool{
	"published":      true,
	"featured":       true,
	"promotion_tier": true,
	"priority":       true,
}

type eventService struct {
	eventRepo      domain.EventRepository
	categoryRepo   domain.CategoryRepository
	contextTimeout time.Duration
}

func NewEventService(eventRepo domain.EventRepository, categoryRepo domain.CategoryRepository, timeout time.Duration) domain.EventService {
	return &eventService{
		eventRepo:      eventRepo,
		categoryRepo:   categoryRepo,
		contextTimeout: timeout,
	}
}

// PromoteEvent validates the submission against the chosen pricing tier,
// resolves video embeds, derives the promotion block, generates a unique slug,
// and persists the event. mediaURLs are the raw user-pasted video URLs.
func (s *eventService) PromoteEvent(ctx context.Context, event *domain.Event, tierName string, mediaURLs []string) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if event.OwnerID == "" {
		return nil, fmt.Errorf("%w: event owner is required", domain.ErrInvalidInput)
	}
	if strings.TrimSpace(event.Title) == "" {
		return nil, fmt.Errorf("%w: title is required", domain.ErrInvalidInput)
	}
	if event.CategoryID != "" {
		if _, err := s.categoryRepo.GetByID(ctx, event.CategoryID); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, fmt.Errorf("%w: unknown category %q", domain.ErrInvalidInput, event.CategoryID)
			}
			return nil, fmt.Errorf("get category: %w", err)
		}
	}
	for _, t := range event.Ticketing {
		if t.Price < 0 {
			return nil, fmt.Errorf("%w: ticket price for %q must not be negative", domain.ErrInvalidInput, t.Label)
		}
	}

	now := time.Now()
	promo, err := ValidatePromotion(tierName, event.Images, mediaURLs, now)
	if err != nil {
		return nil, err
	}
	event.PromotionTier = promo.Tier
	event.Featured = promo.Featured
	event.Media = promo.Media
	event.PromotionStartDate = &promo.StartDate
	event.PromotionExpiry = promo.Expiry
	event.Published = true
	event.CreatedAt = now
	event.UpdatedAt = now

	slug, err := insertWithUniqueSlug(ctx, slugify(event.Title), s.eventRepo.SlugExists, func(slug string) error {
		event.Slug = slug
		return s.eventRepo.Create(ctx, event)
	})
	if err != nil {
		return nil, err
	}
	event.Slug = slug
	return event, nil
}

func (s *eventService) GetByIDOrSlug(ctx context.Context, idOrSlug string) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if looksLikeID(idOrSlug) {
		event, err := s.eventRepo.GetByID(ctx, idOrSlug)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, domain.ErrNotFound
			}
			return nil, fmt.Errorf("get event: %w", err)
		}
		return event, nil
	}
	event, err := s.eventRepo.GetBySlug(ctx, idOrSlug)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event by slug: %w", err)
	}
	return event, nil
}

func (s *eventService) ListPublished(ctx context.Context, filter domain.EventFilter, params domain.PaginationParams) ([]*domain.Event, int, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	events, total, err := s.eventRepo.ListPublished(ctx, filter, params)
	if err != nil {
		return nil, 0, fmt.Errorf("list events: %w", err)
	}
	if events == nil {
		events = []*domain.Event{}
	}
	return events, total, nil
}

func (s *eventService) ListByOwner(ctx context.Context, ownerID string) ([]*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()
	return s.eventRepo.ListByOwnerID(ctx, ownerID)
}

// eventUpdateFields lists the names of the fields set in the update.
func eventUpdateFields(upd domain.EventUpdate) []string {
	var fields []string
	if upd.Description != nil {
		fields = append(fields, "description")
	}
	if upd.StartDate != nil {
		fields = append(fields, "start_date")
	}
	if upd.StartTime != nil {
		fields = append(fields, "start_time")
	}
	if upd.EndTime != nil {
		fields = append(fields, "end_time")
	}
	if upd.Location != nil {
		fields = append(fields, "location")
	}
	if upd.PosterImage != nil {
		fields = append(fields, "poster_image")
	}
	if upd.Ticketing != nil {
		fields = append(fields, "ticketing")
	}
	if upd.Capacity != nil {
		fields = append(fields, "capacity")
	}
	if upd.Organizer != nil {
		fields = append(fields, "organizer")
	}
	if upd.Published != nil {
		fields = append(fields, "published")
	}
	if upd.Featured != nil {
		fields = append(fields, "featured")
	}
	if upd.PromotionTier != nil {
		fields = append(fields, "promotion_tier")
	}
	if upd.Priority != nil {
		fields = append(fields, "priority")
	}
	return fields
}

// UpdateEvent applies a capability-scoped update. Owners may edit content
// fields of their own event; admins may edit any event and additionally the
// visibility and promotion fields. A disallowed field in the update is
// rejected rather than silently dropped.
func (s *eventService) UpdateEvent(ctx context.Context, eventID string, actor domain.Actor, upd domain.EventUpdate) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	if !actor.IsAdmin && event.OwnerID != actor.UserID {
		return nil, domain.ErrForbidden
	}

	for _, field := range eventUpdateFields(upd) {
		if eventOwnerFields[field] {
			continue
		}
		if eventAdminFields[field] && actor.IsAdmin {
			continue
		}
		return nil, fmt.Errorf("%w: field %q is not editable by this role", domain.ErrForbidden, field)
	}

	if upd.Ticketing != nil {
		for _, t := range *upd.Ticketing {
			if t.Price < 0 {
				return nil, fmt.Errorf("%w: ticket price for %q must not be negative", domain.ErrInvalidInput, t.Label)
			}
		}
	}
	if upd.Priority != nil {
		clamped := clampPriority(*upd.Priority)
		upd.Priority = &clamped
	}
	// Changing the tier re-derives featured unless the admin set it explicitly.
	if upd.PromotionTier != nil && upd.Featured == nil {
		featured := upd.PromotionTier.IsFeatured()
		upd.Featured = &featured
	}

	updated, err := s.eventRepo.Update(ctx, eventID, upd)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("update event: %w", err)
	}
	return updated, nil
}

func (s *eventService) DeleteEvent(ctx context.Context, eventID string, actor domain.Actor) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get event: %w", err)
	}
	if !actor.IsAdmin && event.OwnerID != actor.UserID {
		return domain.ErrForbidden
	}
	if err := s.eventRepo.Delete(ctx, eventID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete event: %w", err)
	}
	return nil
}

func (s *eventService) ToggleFeatured(ctx context.Context, eventID string, actor domain.Actor) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if !actor.IsAdmin {
		return nil, domain.ErrForbidden
	}
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	featured := !event.Featured
	updated, err := s.eventRepo.Update(ctx, eventID, domain.EventUpdate{Featured: &featured})
	if err != nil {
		return nil, fmt.Errorf("toggle featured: %w", err)
	}
	return updated, nil
}

func (s *eventService) AdjustPriority(ctx context.Context, eventID string, actor domain.Actor, delta int) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if !actor.IsAdmin {
		return nil, domain.ErrForbidden
	}
	if delta != 1 && delta != -1 {
		return nil, fmt.Errorf("%w: priority delta must be 1 or -1", domain.ErrInvalidInput)
	}
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	priority := clampPriority(event.Priority + delta)
	updated, err := s.eventRepo.Update(ctx, eventID, domain.EventUpdate{Priority: &priority})
	if err != nil {
		return nil, fmt.Errorf("adjust priority: %w", err)
	}
	return updated, nil
}

func (s *eventService) SetPriority(ctx context.Context, eventID string, actor domain.Actor, value int) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if !actor.IsAdmin {
		return nil, domain.ErrForbidden
	}
	priority := clampPriority(value)
	updated, err := s.eventRepo.Update(ctx, eventID, domain.EventUpdate{Priority: &priority})
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("set priority: %w", err)
	}
	return updated, nil
}
