package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"marketdirectory/internal/delivery/http/helpers"
	"marketdirectory/internal/delivery/http/middleware"
	"marketdirectory/internal/domain"
)

// SubmitReviewRequest is the request body for POST /professionals/{professionalID}/reviews.
type SubmitReviewRequest struct {
	AuthorName string `json:"author_name"`
	Rating     int    `json:"rating"`
	Comment    string `json:"comment"`
}

// Validate implements Validator.
func (s SubmitReviewRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(s.AuthorName) == "" {
		errs = append(errs, "author_name is required")
	}
	if s.Rating < 1 || s.Rating > 5 {
		errs = append(errs, "rating must be between 1 and 5")
	}
	return errs
}

// ModerateReviewRequest is the request body for POST /admin/reviews/{reviewID}/moderate.
type ModerateReviewRequest struct {
	Approved bool `json:"approved"`
	Verified bool `json:"verified"`
}

// Validate implements Validator.
func (m ModerateReviewRequest) Validate() []string { return nil }

// ListPendingReviewsResponse is the data payload for GET /admin/reviews/pending (200).
type ListPendingReviewsResponse struct {
	Reviews    []*domain.Review       `json:"reviews"`
	Pagination helpers.PaginationMeta `json:"pagination"`
}

type ReviewController struct {
	Logger  *slog.Logger
	Service domain.ReviewService
}

func NewReviewController(logger *slog.Logger, svc domain.ReviewService) *ReviewController {
	return &ReviewController{
		Logger:  logger,
		Service: svc,
	}
}

func (c *ReviewController) writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
	case errors.Is(err, domain.ErrForbidden):
		helpers.WriteJSONError(w, http.StatusForbidden, helpers.ErrCodeForbidden, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "review not found")
	default:
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
	}
}

// SubmitReview godoc
// @Summary Submit a review for a professional
// @Description Creates an unapproved review. The review does not appear publicly or affect the professional's rating until an admin approves it.
// @Tags reviews
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param professionalID path string true "Professional ID (UUID)"
// @Param body body SubmitReviewRequest true "Review data"
// @Success 201 {object} helpers.APIResponse "data contains the submitted review"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /professionals/{professionalID}/reviews [post]
func (c *ReviewController) SubmitReview(w http.ResponseWriter, r *http.Request) {
	professionalID := r.PathValue("professionalID")
	if professionalID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing professionalID")
		return
	}
	var req SubmitReviewRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	review := &domain.Review{
		ProfessionalID: professionalID,
		AuthorID:       actor.UserID,
		AuthorName:     req.AuthorName,
		Rating:         req.Rating,
		Comment:        req.Comment,
	}
	created, err := c.Service.SubmitReview(r.Context(), review)
	if err != nil {
		c.writeError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, created)
}

// ListReviews godoc
// @Summary List reviews for a professional
// @Description Returns approved reviews. Admins also see unapproved reviews.
// @Tags reviews
// @Produce json
// @Param professionalID path string true "Professional ID (UUID)"
// @Success 200 {object} helpers.APIResponse "data contains the reviews"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /professionals/{professionalID}/reviews [get]
func (c *ReviewController) ListReviews(w http.ResponseWriter, r *http.Request) {
	professionalID := r.PathValue("professionalID")
	if professionalID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing professionalID")
		return
	}
	// Unauthenticated callers get the public view.
	actor, _ := middleware.ActorFromContext(r.Context())
	reviews, err := c.Service.ListForProfessional(r.Context(), professionalID, actor)
	if err != nil {
		c.writeError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, reviews)
}

// ListPending godoc
// @Summary List reviews awaiting moderation
// @Description Admin only. Oldest submissions first.
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number (default 1)"
// @Param page_size query int false "Page size (default 20, max 100)"
// @Success 200 {object} helpers.APIResponse "data contains reviews and pagination"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /admin/reviews/pending [get]
func (c *ReviewController) ListPending(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	params := helpers.ParsePagination(r)
	reviews, total, err := c.Service.ListPending(r.Context(), actor, params)
	if err != nil {
		c.writeError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, ListPendingReviewsResponse{
		Reviews:    reviews,
		Pagination: helpers.NewPaginationMeta(params.Page, params.PageSize, total),
	})
}

// ModerateReview godoc
// @Summary Approve or reject a review
// @Description Admin only. Approving a review makes it public and recalculates the professional's rating. Rejecting keeps the review on record but hidden.
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param reviewID path string true "Review ID (UUID)"
// @Param body body ModerateReviewRequest true "Moderation decision"
// @Success 200 {object} helpers.APIResponse "data contains the moderated review"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /admin/reviews/{reviewID}/moderate [post]
func (c *ReviewController) ModerateReview(w http.ResponseWriter, r *http.Request) {
	reviewID := r.PathValue("reviewID")
	if reviewID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing reviewID")
		return
	}
	var req ModerateReviewRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	review, err := c.Service.Moderate(r.Context(), reviewID, actor, req.Approved, req.Verified)
	if err != nil {
		c.writeError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, review)
}

// DeleteReview godoc
// @Summary Delete a review
// @Description Admin only. Removes the review and recalculates the professional's rating.
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param reviewID path string true "Review ID (UUID)"
// @Success 200 {object} helpers.APIResponse "data contains status message"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /admin/reviews/{reviewID} [delete]
func (c *ReviewController) DeleteReview(w http.ResponseWriter, r *http.Request) {
	reviewID := r.PathValue("reviewID")
	if reviewID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing reviewID")
		return
	}
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	if err := c.Service.DeleteReview(r.Context(), reviewID, actor); err != nil {
		c.writeError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, EventStatusResponse{Status: "deleted"})
}
