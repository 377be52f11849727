package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"marketdirectory/internal/delivery/http/helpers"
	"marketdirectory/internal/delivery/http/middleware"
	"marketdirectory/internal/domain"
	"marketdirectory/internal/services"
)

// CreateProfessionalRequest is the request body for POST /professionals.
type CreateProfessionalRequest struct {
	Name        string   `json:"name"`
	CategoryID  string   `json:"category_id"`
	Description string   `json:"description"`
	Email       string   `json:"email"`
	Phone       string   `json:"phone"`
	Website     string   `json:"website"`
	City        string   `json:"city"`
	Address     string   `json:"address"`
	Images      []string `json:"images"`
}

// Validate implements Validator.
func (c CreateProfessionalRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(c.Name) == "" {
		errs = append(errs, "name is required")
	}
	if c.Email != "" && !emailRegexp.MatchString(c.Email) {
		errs = append(errs, "invalid email format")
	}
	return errs
}

// UpdateProfessionalRequest is the request body for PUT /professionals/{professionalID}.
// All fields optional; omitted fields are unchanged.
type UpdateProfessionalRequest struct {
	Name        *string   `json:"name"`
	CategoryID  *string   `json:"category_id"`
	Description *string   `json:"description"`
	Email       *string   `json:"email"`
	Phone       *string   `json:"phone"`
	Website     *string   `json:"website"`
	City        *string   `json:"city"`
	Address     *string   `json:"address"`
	Images      *[]string `json:"images"`
	Featured    *bool     `json:"featured"`
	Active      *bool     `json:"active"`
	Priority    *int      `json:"priority"`
}

// Validate implements Validator.
func (u UpdateProfessionalRequest) Validate() []string {
	var errs []string
	if u.Name != nil && strings.TrimSpace(*u.Name) == "" {
		errs = append(errs, "name must not be empty")
	}
	if u.Email != nil && *u.Email != "" && !emailRegexp.MatchString(*u.Email) {
		errs = append(errs, "invalid email format")
	}
	return errs
}

func (u UpdateProfessionalRequest) toUpdate() domain.ProfessionalUpdate {
	return domain.ProfessionalUpdate{
		Name:        u.Name,
		CategoryID:  u.CategoryID,
		Description: u.Description,
		Email:       u.Email,
		Phone:       u.Phone,
		Website:     u.Website,
		City:        u.City,
		Address:     u.Address,
		Images:      u.Images,
		Featured:    u.Featured,
		Active:      u.Active,
		Priority:    u.Priority,
	}
}

// ListProfessionalsResponse is the data payload for GET /professionals (200).
type ListProfessionalsResponse struct {
	Professionals []*domain.Professional `json:"professionals"`
	Pagination    helpers.PaginationMeta `json:"pagination"`
}

type ProfessionalController struct {
	Logger  *slog.Logger
	Service domain.ProfessionalService
}

func NewProfessionalController(logger *slog.Logger, svc domain.ProfessionalService) *ProfessionalController {
	return &ProfessionalController{
		Logger:  logger,
		Service: svc,
	}
}

func (c *ProfessionalController) writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput), errors.Is(err, services.ErrSlugExhausted):
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
	case errors.Is(err, domain.ErrForbidden):
		helpers.WriteJSONError(w, http.StatusForbidden, helpers.ErrCodeForbidden, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "professional not found")
	case errors.Is(err, domain.ErrConflict):
		helpers.WriteJSONError(w, http.StatusConflict, helpers.ErrCodeConflict, err.Error())
	default:
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
	}
}

// CreateProfessional godoc
// @Summary Create a professional listing
// @Description Creates a directory listing for the authenticated user. A unique slug is generated from the name.
// @Tags professionals
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CreateProfessionalRequest true "Listing data"
// @Success 201 {object} helpers.APIResponse "data contains the created listing"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /professionals [post]
func (c *ProfessionalController) CreateProfessional(w http.ResponseWriter, r *http.Request) {
	var req CreateProfessionalRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	p := &domain.Professional{
		Name:        req.Name,
		CategoryID:  req.CategoryID,
		Description: req.Description,
		Email:       req.Email,
		Phone:       req.Phone,
		Website:     req.Website,
		City:        req.City,
		Address:     req.Address,
		Images:      req.Images,
		OwnerID:     actor.UserID,
	}
	created, err := c.Service.CreateProfessional(r.Context(), p)
	if err != nil {
		c.writeError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, created)
}

// ListProfessionals godoc
// @Summary List active professionals
// @Description Returns active listings ordered by featured, priority, then rating. Supports category and city filters and pagination.
// @Tags professionals
// @Produce json
// @Param category_id query string false "Filter by category ID"
// @Param city query string false "Filter by city"
// @Param page query int false "Page number (default 1)"
// @Param page_size query int false "Page size (default 20, max 100)"
// @Success 200 {object} helpers.APIResponse "data contains professionals and pagination"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /professionals [get]
func (c *ProfessionalController) ListProfessionals(w http.ResponseWriter, r *http.Request) {
	params := helpers.ParsePagination(r)
	filter := domain.ProfessionalFilter{
		CategoryID: r.URL.Query().Get("category_id"),
		City:       r.URL.Query().Get("city"),
	}
	pros, total, err := c.Service.ListActive(r.Context(), filter, params)
	if err != nil {
		c.writeError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, ListProfessionalsResponse{
		Professionals: pros,
		Pagination:    helpers.NewPaginationMeta(params.Page, params.PageSize, total),
	})
}

// ListMyProfessionals godoc
// @Summary List the authenticated user's listings
// @Tags professionals
// @Produce json
// @Security BearerAuth
// @Success 200 {object} helpers.APIResponse "data contains the caller's listings"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /professionals/me [get]
func (c *ProfessionalController) ListMyProfessionals(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	pros, err := c.Service.ListByOwner(r.Context(), actor.UserID)
	if err != nil {
		c.writeError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, pros)
}

// GetProfessional godoc
// @Summary Get a professional by ID or slug
// @Tags professionals
// @Produce json
// @Param idOrSlug path string true "Professional ID (UUID) or slug"
// @Success 200 {object} helpers.APIResponse "data contains the listing"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /professionals/{idOrSlug} [get]
func (c *ProfessionalController) GetProfessional(w http.ResponseWriter, r *http.Request) {
	idOrSlug := r.PathValue("idOrSlug")
	if idOrSlug == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing idOrSlug")
		return
	}
	p, err := c.Service.GetByIDOrSlug(r.Context(), idOrSlug)
	if err != nil {
		c.writeError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, p)
}

// UpdateProfessional godoc
// @Summary Update a professional listing
// @Description Owners may edit content fields of their own listing. Admins may edit any listing and additionally featured, active, and priority. Omitted fields are unchanged.
// @Tags professionals
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param professionalID path string true "Professional ID (UUID)"
// @Param body body UpdateProfessionalRequest true "Fields to update (all optional)"
// @Success 200 {object} helpers.APIResponse "data contains the updated listing"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden (not owner, or field not editable by role)"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /professionals/{professionalID} [put]
func (c *ProfessionalController) UpdateProfessional(w http.ResponseWriter, r *http.Request) {
	professionalID := r.PathValue("professionalID")
	if professionalID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing professionalID")
		return
	}
	var req UpdateProfessionalRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	p, err := c.Service.UpdateProfessional(r.Context(), professionalID, actor, req.toUpdate())
	if err != nil {
		c.writeError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, p)
}

// DeleteProfessional godoc
// @Summary Delete a professional listing
// @Description Owners may delete their own listing; admins may delete any listing.
// @Tags professionals
// @Produce json
// @Security BearerAuth
// @Param professionalID path string true "Professional ID (UUID)"
// @Success 200 {object} helpers.APIResponse "data contains status message"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /professionals/{professionalID} [delete]
func (c *ProfessionalController) DeleteProfessional(w http.ResponseWriter, r *http.Request) {
	professionalID := r.PathValue("professionalID")
	if professionalID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing professionalID")
		return
	}
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	if err := c.Service.DeleteProfessional(r.Context(), professionalID, actor); err != nil {
		c.writeError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, EventStatusResponse{Status: "deleted"})
}

// ToggleProfessionalFeatured godoc
// @Summary Toggle the featured flag on a professional
// @Description Admin only.
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param professionalID path string true "Professional ID (UUID)"
// @Success 200 {object} helpers.APIResponse "data contains the updated listing"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /admin/professionals/{professionalID}/toggle-featured [post]
func (c *ProfessionalController) ToggleFeatured(w http.ResponseWriter, r *http.Request) {
	professionalID := r.PathValue("professionalID")
	if professionalID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing professionalID")
		return
	}
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	p, err := c.Service.ToggleFeatured(r.Context(), professionalID, actor)
	if err != nil {
		c.writeError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, p)
}

func (c *ProfessionalController) adjustPriority(w http.ResponseWriter, r *http.Request, delta int) {
	professionalID := r.PathValue("professionalID")
	if professionalID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing professionalID")
		return
	}
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	p, err := c.Service.AdjustPriority(r.Context(), professionalID, actor, delta)
	if err != nil {
		c.writeError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, p)
}

// IncrementPriority godoc
// @Summary Increment professional priority
// @Description Admin only.
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param professionalID path string true "Professional ID (UUID)"
// @Success 200 {object} helpers.APIResponse "data contains the updated listing"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Router /admin/professionals/{professionalID}/priority/increment [post]
func (c *ProfessionalController) IncrementPriority(w http.ResponseWriter, r *http.Request) {
	c.adjustPriority(w, r, 1)
}

// DecrementPriority godoc
// @Summary Decrement professional priority
// @Description Admin only.
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param professionalID path string true "Professional ID (UUID)"
// @Success 200 {object} helpers.APIResponse "data contains the updated listing"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Router /admin/professionals/{professionalID}/priority/decrement [post]
func (c *ProfessionalController) DecrementPriority(w http.ResponseWriter, r *http.Request) {
	c.adjustPriority(w, r, -1)
}

// SetProfessionalPriority godoc
// @Summary Set professional priority
// @Description Admin only. Sets the listing's ordering priority to an absolute value, clamped to the valid range.
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param professionalID path string true "Professional ID (UUID)"
// @Param body body SetPriorityRequest true "Priority value"
// @Success 200 {object} helpers.APIResponse "data contains the updated listing"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Router /admin/professionals/{professionalID}/priority [put]
func (c *ProfessionalController) SetPriority(w http.ResponseWriter, r *http.Request) {
	professionalID := r.PathValue("professionalID")
	if professionalID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing professionalID")
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
	p, err := c.Service.SetPriority(r.Context(), professionalID, actor, req.Priority)
	if err != nil {
		c.writeError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, p)
}
