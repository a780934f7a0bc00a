// Command main runs the database seeder for Flatly.
package main

import (
	"flag"
	"log"

	"flatly/internal/config"
	"flatly/internal/database"
	"flatly/internal/seed"
)

func main() {
	usersPerCity := flag.Int("users-per-city", 10, "Number of users to create per city")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	flag.Parse()

	log.Println("Database Seeder")
	log.Printf("Target: %d users per city, clean=%v\n", *usersPerCity, *shouldClean)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := seed.Run(db, seed.Options{
		UsersPerCity: *usersPerCity,
		ShouldClean:  *shouldClean,
	}); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Println("Done. All seeded users have the password: password123")
}
