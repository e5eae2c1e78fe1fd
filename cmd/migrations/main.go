package main

import (
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"github.com/feyerinaGO/RestaurantVoting/internal/adapters/repository/postgres"
)

// Applies schema migrations. With no argument every *.up.sql file runs in
// numeric order; naming a migration runs just that file.
func main() {
	dir := flag.String("dir", filepath.Join("internal", "adapters", "repository", "postgres", "migrations"), "migrations directory")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	db, err := sql.Open("postgres", dbConnString())
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatal(err)
	}

	if name := flag.Arg(0); name != "" {
		if err := applyOne(db, *dir, name); err != nil {
			log.Fatal(err)
		}
		fmt.Println("Migration executed successfully.")
		return
	}

	if err := postgres.ApplyMigrations(db, *dir); err != nil {
		log.Fatal(err)
	}
	fmt.Println("Migrations executed successfully.")
}

func applyOne(db *sql.DB, dir, name string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("failed to read migrations directory: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.Contains(entry.Name(), name) {
			continue
		}

		content, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return fmt.Errorf("failed to read migration file %s: %w", entry.Name(), err)
		}
		if _, err := db.Exec(string(content)); err != nil {
			return fmt.Errorf("failed to execute migration %s: %w", entry.Name(), err)
		}
		return nil
	}

	return fmt.Errorf("migration %q not found in %s", name, dir)
}

func dbConnString() string {
	dbName, user, password, host, port := dbConfig()
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", user, password, host, port, dbName)
}

func dbConfig() (dbName string, user string, password string, host string, port string) {
	dbName = os.Getenv("POSTGRES_DB")
	user = os.Getenv("POSTGRES_USER")
	password = os.Getenv("POSTGRES_PASSWORD")
	host = os.Getenv("POSTGRES_HOST")
	port = os.Getenv("POSTGRES_PORT")
	return
}
