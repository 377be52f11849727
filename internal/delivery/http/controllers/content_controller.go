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

// CreatePostRequest is the request body for POST /admin/posts.
type CreatePostRequest struct {
	Title      string `json:"title"`
	Body       string `json:"body"`
	CoverImage string `json:"cover_image"`
	Published  bool   `json:"published"`
}

// Validate implements Validator.
func (c CreatePostRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(c.Title) == "" {
		errs = append(errs, "title is required")
	}
	if strings.TrimSpace(c.Body) == "" {
		errs = append(errs, "body is required")
	}
	return errs
}

// UpdatePostRequest is the request body for PUT /admin/posts/{postID}.
type UpdatePostRequest struct {
	Title      string `json:"title"`
	Body       string `json:"body"`
	CoverImage string `json:"cover_image"`
	Published  bool   `json:"published"`
}

// Validate implements Validator.
func (u UpdatePostRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(u.Title) == "" {
		errs = append(errs, "title is required")
	}
	if strings.TrimSpace(u.Body) == "" {
		errs = append(errs, "body is required")
	}
	return errs
}

// NewsFlashRequest is the request body for creating or updating a news flash.
type NewsFlashRequest struct {
	Title     string `json:"title"`
	Body      string `json:"body"`
	Published bool   `json:"published"`
}

// Validate implements Validator.
func (n NewsFlashRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(n.Title) == "" {
		errs = append(errs, "title is required")
	}
	return errs
}

// ListPostsResponse is the data payload for GET /posts (200).
type ListPostsResponse struct {
	Posts      []*domain.BlogPost     `json:"posts"`
	Pagination helpers.PaginationMeta `json:"pagination"`
}

type ContentController struct {
	Logger  *slog.Logger
	Service domain.ContentService
}

func NewContentController(logger *slog.Logger, svc domain.ContentService) *ContentController {
	return &ContentController{
		Logger:  logger,
		Service: svc,
	}
}

func (c *ContentController) writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput), errors.Is(err, services.ErrSlugExhausted):
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
	case errors.Is(err, domain.ErrForbidden):
		helpers.WriteJSONError(w, http.StatusForbidden, helpers.ErrCodeForbidden, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "not found")
	case errors.Is(err, domain.ErrConflict):
		helpers.WriteJSONError(w, http.StatusConflict, helpers.ErrCodeConflict, err.Error())
	default:
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
	}
}

// CreatePost godoc
// @Summary Create a blog post
// @Description Admin only. A unique slug is generated from the title.
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CreatePostRequest true "Post data"
// @Success 201 {object} helpers.APIResponse "data contains the created post"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Router /admin/posts [post]
func (c *ContentController) CreatePost(w http.ResponseWriter, r *http.Request) {
	var req CreatePostRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	post := &domain.BlogPost{
		Title:      req.Title,
		Body:       req.Body,
		CoverImage: req.CoverImage,
		Published:  req.Published,
		AuthorID:   actor.UserID,
	}
	created, err := c.Service.CreatePost(r.Context(), actor, post)
	if err != nil {
		c.writeError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, created)
}

// ListPosts godoc
// @Summary List published blog posts
// @Tags content
// @Produce json
// @Param page query int false "Page number (default 1)"
// @Param page_size query int false "Page size (default 20, max 100)"
// @Success 200 {object} helpers.APIResponse "data contains posts and pagination"
// @Router /posts [get]
func (c *ContentController) ListPosts(w http.ResponseWriter, r *http.Request) {
	params := helpers.ParsePagination(r)
	posts, total, err := c.Service.ListPublishedPosts(r.Context(), params)
	if err != nil {
		c.writeError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, ListPostsResponse{
		Posts:      posts,
		Pagination: helpers.NewPaginationMeta(params.Page, params.PageSize, total),
	})
}

// GetPost godoc
// @Summary Get a blog post by ID or slug
// @Tags content
// @Produce json
// @Param idOrSlug path string true "Post ID (UUID) or slug"
// @Success 200 {object} helpers.APIResponse "data contains the post"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /posts/{idOrSlug} [get]
func (c *ContentController) GetPost(w http.ResponseWriter, r *http.Request) {
	idOrSlug := r.PathValue("idOrSlug")
	if idOrSlug == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing idOrSlug")
		return
	}
	post, err := c.Service.GetPostByIDOrSlug(r.Context(), idOrSlug)
	if err != nil {
		c.writeError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, post)
}

// UpdatePost godoc
// @Summary Update a blog post
// @Description Admin only. The slug is not changed by updates.
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param postID path string true "Post ID (UUID)"
// @Param body body UpdatePostRequest true "Post data"
// @Success 200 {object} helpers.APIResponse "data contains the updated post"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /admin/posts/{postID} [put]
func (c *ContentController) UpdatePost(w http.ResponseWriter, r *http.Request) {
	postID := r.PathValue("postID")
	if postID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing postID")
		return
	}
	var req UpdatePostRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	post := &domain.BlogPost{
		ID:         postID,
		Title:      req.Title,
		Body:       req.Body,
		CoverImage: req.CoverImage,
		Published:  req.Published,
	}
	updated, err := c.Service.UpdatePost(r.Context(), actor, post)
	if err != nil {
		c.writeError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, updated)
}

// DeletePost godoc
// @Summary Delete a blog post
// @Description Admin only.
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param postID path string true "Post ID (UUID)"
// @Success 200 {object} helpers.APIResponse "data contains status message"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /admin/posts/{postID} [delete]
func (c *ContentController) DeletePost(w http.ResponseWriter, r *http.Request) {
	postID := r.PathValue("postID")
	if postID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing postID")
		return
	}
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	if err := c.Service.DeletePost(r.Context(), actor, postID); err != nil {
		c.writeError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, EventStatusResponse{Status: "deleted"})
}

// CreateNewsFlash godoc
// @Summary Create a news flash
// @Description Admin only.
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body NewsFlashRequest true "News flash data"
// @Success 201 {object} helpers.APIResponse "data contains the created news flash"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Router /admin/news-flashes [post]
func (c *ContentController) CreateNewsFlash(w http.ResponseWriter, r *http.Request) {
	var req NewsFlashRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	flash := &domain.NewsFlash{
		Title:     req.Title,
		Body:      req.Body,
		Published: req.Published,
	}
	created, err := c.Service.CreateNewsFlash(r.Context(), actor, flash)
	if err != nil {
		c.writeError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, created)
}

// ListNewsFlashes godoc
// @Summary List published news flashes
// @Tags content
// @Produce json
// @Success 200 {object} helpers.APIResponse "data contains the news flashes"
// @Router /news-flashes [get]
func (c *ContentController) ListNewsFlashes(w http.ResponseWriter, r *http.Request) {
	flashes, err := c.Service.ListPublishedNewsFlashes(r.Context())
	if err != nil {
		c.writeError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, flashes)
}

// UpdateNewsFlash godoc
// @Summary Update a news flash
// @Description Admin only.
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param newsFlashID path string true "News flash ID (UUID)"
// @Param body body NewsFlashRequest true "News flash data"
// @Success 200 {object} helpers.APIResponse "data contains the updated news flash"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /admin/news-flashes/{newsFlashID} [put]
func (c *ContentController) UpdateNewsFlash(w http.ResponseWriter, r *http.Request) {
	newsFlashID := r.PathValue("newsFlashID")
	if newsFlashID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing newsFlashID")
		return
	}
	var req NewsFlashRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	flash := &domain.NewsFlash{
		ID:        newsFlashID,
		Title:     req.Title,
		Body:      req.Body,
		Published: req.Published,
	}
	updated, err := c.Service.UpdateNewsFlash(r.Context(), actor, flash)
	if err != nil {
		c.writeError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, updated)
}

// DeleteNewsFlash godoc
// @Summary Delete a news flash
// @Description Admin only.
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param newsFlashID path string true "News flash ID (UUID)"
// @Success 200 {object} helpers.APIResponse "data contains status message"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /admin/news-flashes/{newsFlashID} [delete]
func (c *ContentController) DeleteNewsFlash(w http.ResponseWriter, r *http.Request) {
	newsFlashID := r.PathValue("newsFlashID")
	if newsFlashID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing newsFlashID")
		return
	}
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	if err := c.Service.DeleteNewsFlash(r.Context(), actor, newsFlashID); err != nil {
		c.writeError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, EventStatusResponse{Status: "deleted"})
}
