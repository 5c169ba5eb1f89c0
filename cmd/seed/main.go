// Command main runs the database seeder for Postpilot.
package main

import (
	"flag"
	"log"

	"postpilot/internal/config"
	"postpilot/internal/database"
	"postpilot/internal/seed"
)

func main() {
	numUsers := flag.Int("users", 25, "Number of users to create")
	projectsPerUser := flag.Int("projects", 6, "Number of projects per user")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	flag.Parse()

	log.Println("Database Seeder")
	log.Printf("Target: %d users, %d projects each, clean=%v\n", *numUsers, *projectsPerUser, *shouldClean)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	s := seed.NewSeeder(db)

	if *shouldClean {
		if err := s.ClearAll(); err != nil {
			log.Fatalf("Cleanup failed: %v", err)
		}
	}

	if err := s.Run(*numUsers, *projectsPerUser); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Printf("Done. All seeded accounts use the password %q.", seed.SeedPassword)
}
