package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"github.com/feyerinaGO/RestaurantVoting/internal/adapters/repository/postgres"
	"github.com/feyerinaGO/RestaurantVoting/internal/core/services"
)

// Materializes per-restaurant vote tallies for a date into vote_results.
// Intended to run from cron shortly after the voting deadline.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	var dbHost, dbPort, dbUser, dbPass, dbName, dateStr string

	flag.StringVar(&dbHost, "db-host", os.Getenv("POSTGRES_HOST"), "Database host")
	flag.StringVar(&dbPort, "db-port", os.Getenv("POSTGRES_PORT"), "Database port")
	flag.StringVar(&dbUser, "db-user", os.Getenv("POSTGRES_USER"), "Database user")
	flag.StringVar(&dbPass, "db-pass", os.Getenv("POSTGRES_PASSWORD"), "Database password")
	flag.StringVar(&dbName, "db-name", os.Getenv("POSTGRES_DB"), "Database name")
	flag.StringVar(&dateStr, "date", "", "Date to summarize (YYYY-MM-DD, default today)")
	flag.Parse()

	date := time.Now()
	if dateStr != "" {
		var err error
		date, err = time.Parse(time.DateOnly, dateStr)
		if err != nil {
			log.Fatalf("Invalid -date %q: %v", dateStr, err)
		}
	}

	connStr := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", dbUser, dbPass, dbHost, dbPort, dbName)
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatal(err)
	}

	restaurantRepo := postgres.NewRestaurantRepository(db)
	voteRepo := postgres.NewVoteRepository(db)
	resultRepo := postgres.NewVoteResultRepository(db)

	summaryService := services.NewSummaryService(restaurantRepo, voteRepo, resultRepo)

	// Use a timeout for the job execution to prevent it from hanging indefinitely
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	log.Println("Starting vote summarization job...")

	if err := summaryService.SummarizeAllRestaurants(ctx, date); err != nil {
		log.Fatalf("Error summarizing votes: %v", err)
	}

	log.Println("Vote summarization completed successfully.")
}
