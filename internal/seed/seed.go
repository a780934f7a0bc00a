package seed

import (
	"fmt"
	"log"

	"flatly/internal/models"

	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	// UsersPerCity is split roughly evenly between room seekers and
	// room providers in each city.
	UsersPerCity int
	// ShouldClean wipes existing rows before seeding.
	ShouldClean bool
}

// Run populates the database with demo users, listings, swipes, and
// matches across a handful of cities.
func Run(db *gorm.DB, opts Options) error {
	if opts.UsersPerCity <= 0 {
		opts.UsersPerCity = 10
	}

	if opts.ShouldClean {
		if err := clean(db); err != nil {
			return err
		}
	}

	f := NewFactory(db)

	for _, city := range seedCities {
		seekers := make([]*models.User, 0, opts.UsersPerCity/2)
		providers := make([]*models.User, 0, opts.UsersPerCity/2)

		for i := 0; i < opts.UsersPerCity; i++ {
			intent := models.IntentSeekingRoom
			if i%2 == 0 {
				intent = models.IntentSeekingRoommate
			}
			user, err := f.CreateUser(intent, city)
			if err != nil {
				return err
			}
			if intent == models.IntentSeekingRoom {
				seekers = append(seekers, user)
			} else {
				providers = append(providers, user)
			}
		}

		// Every provider gets a listing; the first one per city runs a
		// replacement search so the priority path has data.
		for i, provider := range providers {
			if i == 0 {
				if _, err := f.CreateReplacementListing(provider, 14); err != nil {
					return err
				}
				continue
			}
			if _, err := f.CreateListing(provider); err != nil {
				return err
			}
		}

		// Wire some history: the first seeker/provider pair matches,
		// the second seeker has a pending one-sided like.
		if len(seekers) > 0 && len(providers) > 0 {
			if err := f.CreateMutualMatch(seekers[0], providers[0]); err != nil {
				return err
			}
		}
		if len(seekers) > 1 && len(providers) > 1 {
			if err := f.CreateSwipe(seekers[1], providers[1], models.SwipeLike); err != nil {
				return err
			}
		}
		if len(seekers) > 2 && len(providers) > 0 {
			if err := f.CreateSwipe(seekers[2], providers[0], models.SwipeDislike); err != nil {
				return err
			}
		}

		log.Printf("seeded %s: %d seekers, %d providers", city, len(seekers), len(providers))
	}

	return nil
}

func clean(db *gorm.DB) error {
	// Child tables first.
	for _, model := range []any{
		&models.Match{},
		&models.Swipe{},
		&models.Listing{},
		&models.User{},
	} {
		if err := db.Session(&gorm.Session{AllowGlobalUpdate: true}).
			Unscoped().Delete(model).Error; err != nil {
			return fmt.Errorf("clean: %w", err)
		}
	}
	return nil
}
