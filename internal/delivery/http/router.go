package http

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	_ "marketdirectory/docs"
	"marketdirectory/internal/delivery/http/controllers"
	"marketdirectory/internal/delivery/http/middleware"
	"marketdirectory/internal/domain"
)

// Controllers bundles the controllers wired into the router.
type Controllers struct {
	Auth         *controllers.AuthController
	Event        *controllers.EventController
	Professional *controllers.ProfessionalController
	Review       *controllers.ReviewController
	Category     *controllers.CategoryController
	Newsletter   *controllers.NewsletterController
	Content      *controllers.ContentController
}

// NewRouter initializes the HTTP router with all application routes
func NewRouter(c Controllers, verifier domain.TokenVerifier) *http.ServeMux {
	mux := http.NewServeMux()

	auth := middleware.RequireAuth(verifier)
	admin := middleware.RequireAdmin(verifier)

	// Auth
	mux.HandleFunc("POST /api/auth/signup", c.Auth.SignUp)
	mux.HandleFunc("POST /api/auth/login", c.Auth.Login)
	mux.HandleFunc("GET /api/auth/me", auth(c.Auth.Me))

	// Events
	mux.HandleFunc("POST /api/promote-event", auth(c.Event.PromoteEvent))
	mux.HandleFunc("GET /api/events", c.Event.ListEvents)
	mux.HandleFunc("GET /api/events/me", auth(c.Event.ListMyEvents))
	mux.HandleFunc("GET /api/events/{idOrSlug}", c.Event.GetEvent)
	mux.HandleFunc("PUT /api/events/{eventID}", auth(c.Event.UpdateEvent))
	mux.HandleFunc("DELETE /api/events/{eventID}", auth(c.Event.DeleteEvent))

	// Professionals
	mux.HandleFunc("POST /api/professionals", auth(c.Professional.CreateProfessional))
	mux.HandleFunc("GET /api/professionals", c.Professional.ListProfessionals)
	mux.HandleFunc("GET /api/professionals/me", auth(c.Professional.ListMyProfessionals))
	mux.HandleFunc("GET /api/professionals/{idOrSlug}", c.Professional.GetProfessional)
	mux.HandleFunc("PUT /api/professionals/{professionalID}", auth(c.Professional.UpdateProfessional))
	mux.HandleFunc("DELETE /api/professionals/{professionalID}", auth(c.Professional.DeleteProfessional))

	// Reviews
	mux.HandleFunc("POST /api/professionals/{professionalID}/reviews", auth(c.Review.SubmitReview))
	mux.HandleFunc("GET /api/professionals/{professionalID}/reviews", c.Review.ListReviews)

	// Categories
	mux.HandleFunc("GET /api/categories", c.Category.ListCategories)
	mux.HandleFunc("GET /api/categories/{idOrSlug}", c.Category.GetCategory)

	// Newsletter
	mux.HandleFunc("POST /api/newsletter/subscribe", c.Newsletter.Subscribe)
	mux.HandleFunc("POST /api/newsletter/unsubscribe/{token}", c.Newsletter.Unsubscribe)

	// Content
	mux.HandleFunc("GET /api/posts", c.Content.ListPosts)
	mux.HandleFunc("GET /api/posts/{idOrSlug}", c.Content.GetPost)
	mux.HandleFunc("GET /api/news-flashes", c.Content.ListNewsFlashes)

	// Admin
	mux.HandleFunc("POST /api/admin/events/{eventID}/toggle-featured", admin(c.Event.ToggleFeatured))
	mux.HandleFunc("POST /api/admin/events/{eventID}/priority/increment", admin(c.Event.IncrementPriority))
	mux.HandleFunc("POST /api/admin/events/{eventID}/priority/decrement", admin(c.Event.DecrementPriority))
	mux.HandleFunc("PUT /api/admin/events/{eventID}/priority", admin(c.Event.SetPriority))
	mux.HandleFunc("POST /api/admin/professionals/{professionalID}/toggle-featured", admin(c.Professional.ToggleFeatured))
	mux.HandleFunc("POST /api/admin/professionals/{professionalID}/priority/increment", admin(c.Professional.IncrementPriority))
	mux.HandleFunc("POST /api/admin/professionals/{professionalID}/priority/decrement", admin(c.Professional.DecrementPriority))
	mux.HandleFunc("PUT /api/admin/professionals/{professionalID}/priority", admin(c.Professional.SetPriority))
	mux.HandleFunc("GET /api/admin/reviews/pending", admin(c.Review.ListPending))
	mux.HandleFunc("POST /api/admin/reviews/{reviewID}/moderate", admin(c.Review.ModerateReview))
	mux.HandleFunc("DELETE /api/admin/reviews/{reviewID}", admin(c.Review.DeleteReview))
	mux.HandleFunc("POST /api/admin/categories", admin(c.Category.CreateCategory))
	mux.HandleFunc("PUT /api/admin/categories/{categoryID}", admin(c.Category.UpdateCategory))
	mux.HandleFunc("DELETE /api/admin/categories/{categoryID}", admin(c.Category.DeleteCategory))
	mux.HandleFunc("GET /api/admin/newsletter/subscribers", admin(c.Newsletter.ListSubscribers))
	mux.HandleFunc("POST /api/admin/posts", admin(c.Content.CreatePost))
	mux.HandleFunc("PUT /api/admin/posts/{postID}", admin(c.Content.UpdatePost))
	mux.HandleFunc("DELETE /api/admin/posts/{postID}", admin(c.Content.DeletePost))
	mux.HandleFunc("POST /api/admin/news-flashes", admin(c.Content.CreateNewsFlash))
	mux.HandleFunc("PUT /api/admin/news-flashes/{newsFlashID}", admin(c.Content.UpdateNewsFlash))
	mux.HandleFunc("DELETE /api/admin/news-flashes/{newsFlashID}", admin(c.Content.DeleteNewsFlash))

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
