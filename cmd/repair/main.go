// Command main runs the orphaned-match repair sweep once and exits.
// Mutual likes whose match rows are missing on one or both sides are
// completed to the full bidirectional pair.
package main

import (
	"context"
	"log"
	"time"

	"flatly/internal/config"
	"flatly/internal/database"
	"flatly/internal/repository"
	"flatly/internal/service"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	svc := service.NewMatchService(
		repository.NewUserRepository(db),
		repository.NewSwipeRepository(db),
		repository.NewMatchRepository(db),
		repository.NewListingRepository(db),
	)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	start := time.Now()
	fixed, err := svc.RepairOrphanedMatches(ctx)
	if err != nil {
		log.Fatalf("Repair failed after %d fixes: %v", fixed, err)
	}

	log.Printf("Repair complete: %d orphaned match pairs fixed in %s", fixed, time.Since(start))
}
