package main

import (
	"context"
	"log"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/teamkudos/recognition/backend/internal/router"
	"github.com/teamkudos/recognition/backend/pkg/config"
	"github.com/teamkudos/recognition/backend/pkg/firebase"
	"github.com/teamkudos/recognition/backend/validators"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database connections
	db, err := config.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize databases: %v", err)
	}
	defer db.CloseDB() // Ensure database connections are closed when main exits

	// Initialize Firebase
	ctx := context.Background()
	firebaseApp, err := firebase.InitFirebase(ctx, cfg.FirebaseCredentialsPath)
	if err != nil {
		log.Fatalf("Failed to initialize Firebase: %v", err)
	}

	// Create Echo instance
	e := echo.New()

	// Setup global middleware
	router.SetupMiddleware(e)

	// Setup routes and dependencies
	services := router.SetupRoutes(e, cfg, db.Postgres, db.Mongo, firebaseApp.AuthClient)

	// Validator
	e.Validator = validators.NewValidator()

	// Background occasion scan, at most once per calendar day
	go runOccasionLoop(ctx, services)

	// Start server
	e.Logger.Fatal(e.Start(":" + cfg.Port))
}

// runOccasionLoop checks hourly whether today's birthday and work
// anniversary scan has run yet, acting as the first admin profile. The
// per-year duplicate check inside the awarder makes extra runs safe.
func runOccasionLoop(ctx context.Context, services *router.Services) {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()

	run := func() {
		actorID, err := systemActorID(services)
		if err != nil {
			log.Printf("Occasion scan skipped: %v", err)
			return
		}
		if actorID == "" {
			log.Println("Occasion scan skipped: no admin profile to act as.")
			return
		}
		result, ran, err := services.Awarder.RunOncePerDay(ctx, services.ReadState, actorID)
		if err != nil {
			log.Printf("Occasion scan error: %v", err)
			return
		}
		if ran {
			log.Printf("Occasion scan complete: %d birthdays, %d anniversaries, %d errors",
				len(result.Birthdays), len(result.Anniversaries), len(result.Errors))
		}
	}

	run()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			run()
		}
	}
}

func systemActorID(services *router.Services) (string, error) {
	profiles, err := services.Profiles.GetProfiles()
	if err != nil {
		return "", err
	}
	for _, p := range profiles {
		if p.IsAdmin() {
			return p.ID, nil
		}
	}
	return "", nil
}
