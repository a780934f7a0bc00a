// Package bootstrap wires runtime dependencies for the command binaries.
package bootstrap

import (
	"fmt"

	"flatly/internal/cache"
	"flatly/internal/config"
	"flatly/internal/database"
	"flatly/internal/seed"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Options control runtime initialization behavior.
type Options struct {
	// SeedDemoData populates an empty database with demo users and
	// listings. Development convenience only.
	SeedDemoData bool
}

// InitRuntime connects to the database and Redis and optionally seeds
// demo data. Redis being unreachable yields a nil client, not an error.
func InitRuntime(cfg *config.Config, opts Options) (*gorm.DB, *redis.Client, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("database connection failed: %w", err)
	}

	cache.InitRedis(cfg.RedisURL)
	r := cache.GetClient()

	if opts.SeedDemoData {
		if err := seed.Run(db, seed.Options{}); err != nil {
			return nil, nil, fmt.Errorf("failed to seed demo data: %w", err)
		}
	}

	return db, r, nil
}
