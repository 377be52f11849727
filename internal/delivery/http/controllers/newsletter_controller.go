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

// SubscribeRequest is the request body for POST /newsletter/subscribe.
type SubscribeRequest struct {
	Email string `json:"email"`
}

// Validate implements Validator.
func (s SubscribeRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(s.Email) == "" {
		errs = append(errs, "email is required")
	}
	return errs
}

// ListSubscribersResponse is the data payload for GET /admin/newsletter/subscribers (200).
type ListSubscribersResponse struct {
	Subscribers []*domain.Subscriber   `json:"subscribers"`
	Pagination  helpers.PaginationMeta `json:"pagination"`
}

type NewsletterController struct {
	Logger  *slog.Logger
	Service domain.NewsletterService
}

func NewNewsletterController(logger *slog.Logger, svc domain.NewsletterService) *NewsletterController {
	return &NewsletterController{
		Logger:  logger,
		Service: svc,
	}
}

// Subscribe godoc
// @Summary Subscribe to the newsletter
// @Description Adds the email to the list and sends a welcome email. Resubscribing a previously unsubscribed address reactivates it.
// @Tags newsletter
// @Accept json
// @Produce json
// @Param body body SubscribeRequest true "Email address"
// @Success 201 {object} helpers.APIResponse "data contains the subscription"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (already subscribed)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /newsletter/subscribe [post]
func (c *NewsletterController) Subscribe(w http.ResponseWriter, r *http.Request) {
	var req SubscribeRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	sub, err := c.Service.Subscribe(r.Context(), req.Email)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrAlreadySubscribed):
			helpers.WriteJSONError(w, http.StatusConflict, helpers.ErrCodeConflict, "already subscribed")
		case errors.Is(err, domain.ErrInvalidInput):
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
		default:
			c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
			helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		}
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, sub)
}

// Unsubscribe godoc
// @Summary Unsubscribe from the newsletter
// @Description Unsubscribes using the token from the welcome email. Idempotent.
// @Tags newsletter
// @Produce json
// @Param token path string true "Unsubscribe token"
// @Success 200 {object} helpers.APIResponse "data contains status message"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /newsletter/unsubscribe/{token} [post]
func (c *NewsletterController) Unsubscribe(w http.ResponseWriter, r *http.Request) {
	token := r.PathValue("token")
	if token == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing token")
		return
	}
	if err := c.Service.Unsubscribe(r.Context(), token); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "subscription not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, EventStatusResponse{Status: "unsubscribed"})
}

// ListSubscribers godoc
// @Summary List newsletter subscribers
// @Description Admin only. Returns active subscriptions, newest first.
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number (default 1)"
// @Param page_size query int false "Page size (default 20, max 100)"
// @Success 200 {object} helpers.APIResponse "data contains subscribers and pagination"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /admin/newsletter/subscribers [get]
func (c *NewsletterController) ListSubscribers(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	params := helpers.ParsePagination(r)
	subs, total, err := c.Service.ListSubscribers(r.Context(), actor, params)
	if err != nil {
		if errors.Is(err, domain.ErrForbidden) {
			helpers.WriteJSONError(w, http.StatusForbidden, helpers.ErrCodeForbidden, err.Error())
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, ListSubscribersResponse{
		Subscribers: subs,
		Pagination:  helpers.NewPaginationMeta(params.Page, params.PageSize, total),
	})
}
