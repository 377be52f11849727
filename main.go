package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	"marketdirectory/config"
	"marketdirectory/internal/adapters/auth"
	"marketdirectory/internal/adapters/email"
	delivery "marketdirectory/internal/delivery/http"
	"marketdirectory/internal/delivery/http/controllers"
	"marketdirectory/internal/delivery/http/middleware"
	"marketdirectory/internal/repository/postgres"
	"marketdirectory/internal/services"
)

const (
	serviceTimeout  = 5 * time.Second
	shutdownTimeout = 10 * time.Second
	bcryptCost      = 12
)

// @title Market Directory API
// @version 1.0
// @description Marketplace directory backend: event promotion, professional listings, reviews, and newsletter.
// @BasePath /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	logger := config.NewLogger()

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load config", "err", err)
		os.Exit(1)
	}

	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		logger.Error("failed to open database", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		logger.Error("failed to ping database", "err", err)
		os.Exit(1)
	}

	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    cfg.EmailProvider,
		FromAddress: cfg.EmailFrom,
		FromName:    cfg.EmailFromName,
		SES: email.SESConfig{
			Region:             cfg.SESRegion,
			AccessKeyID:        cfg.SESAccessKey,
			SecretAccessKey:    cfg.SESSecretKey,
			InsecureSkipVerify: cfg.SESSkipVerify,
		},
	})
	if err != nil {
		logger.Error("failed to create mailer", "err", err)
		os.Exit(1)
	}

	// Repositories
	userRepo := postgres.NewUserRepository(db)
	roleRepo := postgres.NewRoleRepository(db)
	eventRepo := postgres.NewEventRepository(db)
	profRepo := postgres.NewProfessionalRepository(db)
	categoryRepo := postgres.NewCategoryRepository(db)
	reviewRepo := postgres.NewReviewRepository(db)
	subscriberRepo := postgres.NewSubscriberRepository(db)
	postRepo := postgres.NewBlogPostRepository(db)
	newsFlashRepo := postgres.NewNewsFlashRepository(db)

	// Adapters
	hasher := auth.NewBcryptHasher(bcryptCost)
	tokenIssuer := auth.NewJWTIssuer(cfg.JWTSecret)
	tokenVerifier := auth.NewJWTVerifier(cfg.JWTSecret)
	renderer := email.NewTemplateRenderer()

	// Services
	userService := services.NewUserService(userRepo, roleRepo, hasher, tokenIssuer, cfg.TokenExpiry, serviceTimeout)
	eventService := services.NewEventService(eventRepo, categoryRepo, serviceTimeout)
	profService := services.NewProfessionalService(profRepo, categoryRepo, serviceTimeout)
	catalogService := services.NewCatalogService(categoryRepo, serviceTimeout)
	reviewService := services.NewReviewService(reviewRepo, profRepo, serviceTimeout)
	emailService := services.NewEmailService(mailer, renderer)
	newsletterService := services.NewNewsletterService(subscriberRepo, emailService, cfg.PublicBaseURL+"/api/newsletter/unsubscribe", serviceTimeout)
	contentService := services.NewContentService(postRepo, newsFlashRepo, serviceTimeout)

	// Controllers
	ctrl := delivery.Controllers{
		Auth:         controllers.NewAuthController(logger, userService),
		Event:        controllers.NewEventController(logger, eventService),
		Professional: controllers.NewProfessionalController(logger, profService),
		Review:       controllers.NewReviewController(logger, reviewService),
		Category:     controllers.NewCategoryController(logger, catalogService),
		Newsletter:   controllers.NewNewsletterController(logger, newsletterService),
		Content:      controllers.NewContentController(logger, contentService),
	}

	mux := delivery.NewRouter(ctrl, tokenVerifier)
	handler := middleware.CORS(cfg.AllowedOrigins, middleware.LoggingMiddleware(logger, mux))

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		logger.Info("server starting", "port", cfg.Port, "env", cfg.Environment)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "err", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("forced shutdown", "err", err)
	}
	logger.Info("server stopped")
}
