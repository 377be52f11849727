package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"marketdirectory/internal/delivery/http/helpers"
	"marketdirectory/internal/delivery/http/middleware"
	"marketdirectory/internal/domain"
	"marketdirectory/internal/services"
)

// PromoteEventRequest is the request body for POST /promote-event.
type PromoteEventRequest struct {
	Title       string              `json:"title"`
	Description string              `json:"description"`
	CategoryID  string              `json:"category_id"`
	StartDate   time.Time           `json:"start_date"`
	StartTime   string              `json:"start_time"`
	EndTime     string              `json:"end_time"`
	Location    domain.Location     `json:"location"`
	PosterImage string              `json:"poster_image"`
	Images      []string            `json:"images"`
	MediaURLs   []string            `json:"media_urls"`
	Ticketing   []domain.TicketTier `json:"ticketing"`
	Capacity    int                 `json:"capacity"`
	Organizer   domain.Organizer    `json:"organizer"`
	Tier        string              `json:"tier"`
}

// Validate implements Validator.
func (p PromoteEventRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(p.Title) == "" {
		errs = append(errs, "title is required")
	}
	if p.StartDate.IsZero() {
		errs = append(errs, "start_date is required")
	}
	if p.Capacity < 0 {
		errs = append(errs, "capacity must not be negative")
	}
	for _, t := range p.Ticketing {
		if t.Price < 0 {
			errs = append(errs, "ticket prices must not be negative")
			break
		}
	}
	return errs
}

// PromoteEventSuccessResponse is the success response envelope for POST /promote-event (201).
type PromoteEventSuccessResponse struct {
	Data  *domain.Event     `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// UpdateEventRequest is the request body for PUT /events/{eventID}. All fields optional; omitted fields are unchanged.
type UpdateEventRequest struct {
	Description   *string              `json:"description"`
	StartDate     *time.Time           `json:"start_date"`
	StartTime     *string              `json:"start_time"`
	EndTime       *string              `json:"end_time"`
	Location      *domain.Location     `json:"location"`
	PosterImage   *string              `json:"poster_image"`
	Ticketing     *[]domain.TicketTier `json:"ticketing"`
	Capacity      *int                 `json:"capacity"`
	Organizer     *domain.Organizer    `json:"organizer"`
	Published     *bool                `json:"published"`
	Featured      *bool                `json:"featured"`
	PromotionTier *string              `json:"promotion_tier"`
	Priority      *int                 `json:"priority"`
}

// Validate implements Validator.
func (u UpdateEventRequest) Validate() []string {
	var errs []string
	if u.Capacity != nil && *u.Capacity < 0 {
		errs = append(errs, "capacity must not be negative")
	}
	return errs
}

func (u UpdateEventRequest) toUpdate() domain.EventUpdate {
	upd := domain.EventUpdate{
		Description: u.Description,
		StartDate:   u.StartDate,
		StartTime:   u.StartTime,
		EndTime:     u.EndTime,
		Location:    u.Location,
		PosterImage: u.PosterImage,
		Ticketing:   u.Ticketing,
		Capacity:    u.Capacity,
		Organizer:   u.Organizer,
		Published:   u.Published,
		Featured:    u.Featured,
		Priority:    u.Priority,
	}
	if u.PromotionTier != nil {
		tier := domain.NormalizeTier(*u.PromotionTier)
		upd.PromotionTier = &tier
	}
	return upd
}

// SetPriorityRequest is the request body for PUT /events/{eventID}/priority.
type SetPriorityRequest struct {
	Priority int `json:"priority"`
}

// Validate implements Validator.
func (s SetPriorityRequest) Validate() []string { return nil }

// ListEventsResponse is the data payload for GET /events (200).
type ListEventsResponse struct {
	Events     []*domain.Event        `json:"events"`
	Pagination helpers.PaginationMeta `json:"pagination"`
}

// EventStatusResponse is the data payload for DELETE /events/{eventID} (200).
type EventStatusResponse struct {
	Status string `json:"status"`
}

type EventController struct {
	Logger  *slog.Logger
	Service domain.EventService
}

func NewEventController(logger *slog.Logger, svc domain.EventService) *EventController {
	return &EventController{
		Logger:  logger,
		Service: svc,
	}
}

// writeEventError maps service errors to API responses. Unmapped errors are
// logged and become 500s.
func (c *EventController) writeEventError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput), errors.Is(err, services.ErrSlugExhausted):
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
	case errors.Is(err, domain.ErrForbidden):
		helpers.WriteJSONError(w, http.StatusForbidden, helpers.ErrCodeForbidden, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "event not found")
	case errors.Is(err, domain.ErrConflict):
		helpers.WriteJSONError(w, http.StatusConflict, helpers.ErrCodeConflict, err.Error())
	default:
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
	}
}

// PromoteEvent godoc
// @Summary Submit an event for promotion
// @Description Validates the submission against the chosen pricing tier (image and video limits), resolves video embed URLs, generates a unique slug, and publishes the event. The authenticated user becomes the owner.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body PromoteEventRequest true "Event submission"
// @Success 201 {object} controllers.PromoteEventSuccessResponse "data contains the published event"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request (tier limit exceeded, unknown category, invalid video URL)"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /promote-event [post]
func (c *EventController) PromoteEvent(w http.ResponseWriter, r *http.Request) {
	var req PromoteEventRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	event := &domain.Event{
		Title:       req.Title,
		Description: req.Description,
		CategoryID:  req.CategoryID,
		StartDate:   req.StartDate,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Location:    req.Location,
		PosterImage: req.PosterImage,
		Images:      req.Images,
		Ticketing:   req.Ticketing,
		Capacity:    req.Capacity,
		Organizer:   req.Organizer,
		OwnerID:     actor.UserID,
	}
	created, err := c.Service.PromoteEvent(r.Context(), event, req.Tier, req.MediaURLs)
	if err != nil {
		c.writeEventError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, created)
}

// ListEvents godoc
// @Summary List published events
// @Description Returns published events ordered by featured, priority, then start date. Supports category and city filters and pagination.
// @Tags events
// @Produce json
// @Param category_id query string false "Filter by category ID"
// @Param city query string false "Filter by city"
// @Param page query int false "Page number (default 1)"
// @Param page_size query int false "Page size (default 20, max 100)"
// @Success 200 {object} helpers.APIResponse "data contains events and pagination"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events [get]
func (c *EventController) ListEvents(w http.ResponseWriter, r *http.Request) {
	params := helpers.ParsePagination(r)
	filter := domain.EventFilter{
		CategoryID: r.URL.Query().Get("category_id"),
		City:       r.URL.Query().Get("city"),
	}
	events, total, err := c.Service.ListPublished(r.Context(), filter, params)
	if err != nil {
		c.writeEventError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, ListEventsResponse{
		Events:     events,
		Pagination: helpers.NewPaginationMeta(params.Page, params.PageSize, total),
	})
}

// ListMyEvents godoc
// @Summary List the authenticated user's events
// @Tags events
// @Produce json
// @Security BearerAuth
// @Success 200 {object} helpers.APIResponse "data contains the caller's events"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/me [get]
func (c *EventController) ListMyEvents(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	events, err := c.Service.ListByOwner(r.Context(), actor.UserID)
	if err != nil {
		c.writeEventError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, events)
}

// GetEvent godoc
// @Summary Get an event by ID or slug
// @Tags events
// @Produce json
// @Param idOrSlug path string true "Event ID (UUID) or slug"
// @Success 200 {object} helpers.APIResponse "data contains the event"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{idOrSlug} [get]
func (c *EventController) GetEvent(w http.ResponseWriter, r *http.Request) {
	idOrSlug := r.PathValue("idOrSlug")
	if idOrSlug == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing idOrSlug")
		return
	}
	event, err := c.Service.GetByIDOrSlug(r.Context(), idOrSlug)
	if err != nil {
		c.writeEventError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, event)
}

// UpdateEvent godoc
// @Summary Update an event
// @Description Owners may edit content fields of their own event. Admins may edit any event and additionally published, featured, promotion_tier, and priority. Omitted fields are unchanged.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Param body body UpdateEventRequest true "Fields to update (all optional)"
// @Success 200 {object} helpers.APIResponse "data contains the updated event"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden (not owner, or field not editable by role)"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID} [put]
func (c *EventController) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if eventID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID")
		return
	}
	var req UpdateEventRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	event, err := c.Service.UpdateEvent(r.Context(), eventID, actor, req.toUpdate())
	if err != nil {
		c.writeEventError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, event)
}

// DeleteEvent godoc
// @Summary Delete an event
// @Description Owners may delete their own event; admins may delete any event.
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Success 200 {object} helpers.APIResponse "data contains status message"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID} [delete]
func (c *EventController) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if eventID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID")
		return
	}
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	if err := c.Service.DeleteEvent(r.Context(), eventID, actor); err != nil {
		c.writeEventError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, EventStatusResponse{Status: "deleted"})
}

// ToggleFeatured godoc
// @Summary Toggle the featured flag on an event
// @Description Admin only. Flips the featured flag independent of the promotion tier.
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Success 200 {object} helpers.APIResponse "data contains the updated event"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /admin/events/{eventID}/toggle-featured [post]
func (c *EventController) ToggleFeatured(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if eventID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID")
		return
	}
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	event, err := c.Service.ToggleFeatured(r.Context(), eventID, actor)
	if err != nil {
		c.writeEventError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, event)
}

func (c *EventController) adjustPriority(w http.ResponseWriter, r *http.Request, delta int) {
	eventID := r.PathValue("eventID")
	if eventID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID")
		return
	}
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	event, err := c.Service.AdjustPriority(r.Context(), eventID, actor, delta)
	if err != nil {
		c.writeEventError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, event)
}

// IncrementPriority godoc
// @Summary Increment event priority
// @Description Admin only. Raises the event's ordering priority by one, clamped at the upper bound.
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Success 200 {object} helpers.APIResponse "data contains the updated event"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /admin/events/{eventID}/priority/increment [post]
func (c *EventController) IncrementPriority(w http.ResponseWriter, r *http.Request) {
	c.adjustPriority(w, r, 1)
}

// DecrementPriority godoc
// @Summary Decrement event priority
// @Description Admin only. Lowers the event's ordering priority by one, clamped at the lower bound.
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Success 200 {object} helpers.APIResponse "data contains the updated event"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /admin/events/{eventID}/priority/decrement [post]
func (c *EventController) DecrementPriority(w http.ResponseWriter, r *http.Request) {
	c.adjustPriority(w, r, -1)
}

// SetPriority godoc
// @Summary Set event priority
// @Description Admin only. Sets the event's ordering priority to an absolute value, clamped to the valid range.
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Param body body SetPriorityRequest true "Priority value"
// @Success 200 {object} helpers.APIResponse "data contains the updated event"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /admin/events/{eventID}/priority [put]
func (c *EventController) SetPriority(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if eventID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID")
		return
	}
	var req SetPriorityRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	event, err := c.Service.SetPriority(r.Context(), eventID, actor, req.Priority)
	if err != nil {
		c.writeEventError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, event)
}
