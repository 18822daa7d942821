package router

import (
	"log"
	"time"

	"firebase.google.com/go/v4/auth"
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/teamkudos/recognition/backend/internal/handlers"
	"github.com/teamkudos/recognition/backend/internal/kudos"
	"github.com/teamkudos/recognition/backend/internal/middleware"
	"github.com/teamkudos/recognition/backend/internal/models"
	"github.com/teamkudos/recognition/backend/internal/nominations"
	"github.com/teamkudos/recognition/backend/internal/notifications"
	"github.com/teamkudos/recognition/backend/internal/occasions"
	"github.com/teamkudos/recognition/backend/internal/repositories"
	"github.com/teamkudos/recognition/backend/pkg/config"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo) {
	e.Use(eMiddleware.Logger())
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
	log.Println("Global middleware configured.")
}

// Services bundles the core services so callers outside the HTTP layer
// (the occasion scheduler, for one) can share the same wiring.
type Services struct {
	Ledger        *kudos.Ledger
	Lifecycle     *nominations.Service
	Awarder       *occasions.Awarder
	Notifications *notifications.Service
	ReadState     repositories.ReadStateRepository
	Profiles      repositories.ProfileRepository
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, cfg *config.Config, pgdb *gorm.DB, mgClient *mongo.Client, firebaseAuthClient *auth.Client) *Services {
	// AutoMigrate PostgreSQL models
	err := pgdb.AutoMigrate(
		&models.Profile{},
		&models.Badge{},
		&models.Nomination{},
		&models.Reaction{},
		&models.Comment{},
		&models.CommentLike{},
	)
	if err != nil {
		log.Fatalf("Failed to auto migrate models: %v", err)
	}
	log.Println("PostgreSQL auto-migrations completed for all models.")

	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)

	// --- Initialize Repositories ---
	profileRepo := repositories.NewPostgresProfileRepository(pgdb)
	badgeRepo := repositories.NewPostgresBadgeRepository(pgdb)
	nominationRepo := repositories.NewPostgresNominationRepository(pgdb)
	reactionRepo := repositories.NewPostgresReactionRepository(pgdb)
	commentRepo := repositories.NewPostgresCommentRepository(pgdb)
	commentLikeRepo := repositories.NewPostgresCommentLikeRepository(pgdb)
	readStateRepo := repositories.NewMongoReadStateRepository(mgClient.Database(cfg.MongoDBName))

	if err := badgeRepo.Seed(models.DefaultBadges); err != nil {
		log.Fatalf("Failed to seed badge catalog: %v", err)
	}
	log.Println("Badge catalog ready.")

	// --- Initialize Services ---
	ledger := kudos.NewLedger(profileRepo, nominationRepo)
	lifecycle := nominations.NewService(nominationRepo, profileRepo, reactionRepo, commentRepo, commentLikeRepo, ledger, cfg.NominationMinMessageLen)
	awarder := occasions.NewAwarder(profileRepo, nominationRepo, badgeRepo, time.Now)
	notificationService := notifications.NewService(nominationRepo, readStateRepo)

	// --- Unprotected routes for authentication ---
	authGroup := e.Group("/api/v1/auth")
	authHandler := handlers.NewAuthHandler(profileRepo, firebaseAuthClient, cfg.JWTSecret)
	authHandler.RegisterAuthRoutes(authGroup)
	authGroup.POST("/firebase-exchange", authHandler.FirebaseExchange, middleware.FirebaseAuthMiddleware(firebaseAuthClient))
	log.Println("Auth routes configured.")

	// --- Protected routes (require JWT authentication) ---
	api := e.Group("/api/v1")
	api.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret))
	log.Println("JWT authentication middleware applied to /api/v1 group.")

	// Profile routes
	profileHandler := handlers.NewProfileHandler(profileRepo)
	profileHandler.RegisterProfileRoutes(api)
	log.Println("Profile routes configured.")

	// Badge routes
	badgeHandler := handlers.NewBadgeHandler(badgeRepo)
	badgeHandler.RegisterBadgeRoutes(api)
	log.Println("Badge routes configured.")

	// Nomination routes
	nominationHandler := handlers.NewNominationHandler(lifecycle, nominationRepo, profileRepo, reactionRepo, commentRepo, commentLikeRepo)
	nominationHandler.RegisterNominationRoutes(api)
	log.Println("Nomination routes configured.")

	// Reaction routes
	reactionHandler := handlers.NewReactionHandler(reactionRepo, nominationRepo)
	reactionHandler.RegisterReactionRoutes(api)
	log.Println("Reaction routes configured.")

	// Comment routes
	commentHandler := handlers.NewCommentHandler(commentRepo, commentLikeRepo, nominationRepo, profileRepo)
	commentHandler.RegisterCommentRoutes(api)
	log.Println("Comment routes configured.")

	// Notification routes
	notificationHandler := handlers.NewNotificationHandler(notificationService)
	notificationHandler.RegisterNotificationRoutes(api)
	log.Println("Notification routes configured.")

	// Admin routes
	adminHandler := handlers.NewAdminHandler(profileRepo, ledger, awarder)
	adminHandler.RegisterAdminRoutes(api)
	log.Println("Admin routes configured.")

	log.Println("All routes configured.")

	return &Services{
		Ledger:        ledger,
		Lifecycle:     lifecycle,
		Awarder:       awarder,
		Notifications: notificationService,
		ReadState:     readStateRepo,
		Profiles:      profileRepo,
	}
}
