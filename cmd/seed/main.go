// Command main runs the database seeder for Echo.
package main

import (
	"flag"
	"log"

	"echo/internal/config"
	"echo/internal/database"
	"echo/internal/seed"
)

func main() {
	numUsers := flag.Int("users", 50, "Number of users to create")
	numTweets := flag.Int("tweets", 200, "Number of tweets to create")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	flag.Parse()

	log.Println("Database Seeder")
	log.Printf("Target: %d users, %d tweets, clean=%v\n", *numUsers, *numTweets, *shouldClean)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	s := seed.NewSeeder(db)

	if *shouldClean {
		if err := s.ClearAll(); err != nil {
			log.Fatalf("Cleanup failed: %v", err)
		}
	}

	users, err := s.SeedUsers(*numUsers)
	if err != nil {
		log.Fatalf("User seeding failed: %v", err)
	}
	tweets, err := s.SeedTweets(users, *numTweets)
	if err != nil {
		log.Fatalf("Tweet seeding failed: %v", err)
	}
	if err := s.SeedGraph(users, tweets); err != nil {
		log.Fatalf("Graph seeding failed: %v", err)
	}

	log.Println("All done! Your database is now populated with demo data.")
	log.Println("All demo users have the password: password123")
}
