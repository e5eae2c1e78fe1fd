package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"log/slog"
	stdhttp "net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	goredis "github.com/redis/go-redis/v9"

	rediscache "github.com/feyerinaGO/RestaurantVoting/internal/adapters/cache/redis"
	"github.com/feyerinaGO/RestaurantVoting/internal/adapters/clock"
	"github.com/feyerinaGO/RestaurantVoting/internal/adapters/handler/http"
	"github.com/feyerinaGO/RestaurantVoting/internal/adapters/repository/postgres"
	"github.com/feyerinaGO/RestaurantVoting/internal/core/domain"
	"github.com/feyerinaGO/RestaurantVoting/internal/core/ports"
	"github.com/feyerinaGO/RestaurantVoting/internal/core/services"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found")
	}

	db, err := sql.Open("postgres", dbConnString())
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatal(err)
	}

	var cache ports.RestaurantCache
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		client := goredis.NewClient(&goredis.Options{Addr: addr})
		cache = rediscache.NewRestaurantCache(client)
	}

	deadline, err := voteDeadline()
	if err != nil {
		log.Fatal(err)
	}

	sysClock := clock.NewSystemClock()
	policy := domain.NewVotePolicy(deadline)

	restaurantRepo := postgres.NewRestaurantRepository(db)
	menuRepo := postgres.NewMenuItemRepository(db)
	voteRepo := postgres.NewVoteRepository(db)
	resultRepo := postgres.NewVoteResultRepository(db)
	userRepo := postgres.NewUserRepository(db)
	authRepo := postgres.NewAuthRepository(db)

	restaurantSvc := services.NewRestaurantService(restaurantRepo, cache, sysClock)
	menuSvc := services.NewMenuItemService(menuRepo, restaurantRepo, cache)
	voteSvc := services.NewVoteService(voteRepo, restaurantRepo, policy, sysClock)
	summarySvc := services.NewSummaryService(restaurantRepo, voteRepo, resultRepo)
	userSvc := services.NewUserService(userRepo)
	authSvc := services.NewAuthService(userRepo, authRepo, sysClock)

	handler := http.NewHandler(
		http.NewRestaurantHandler(restaurantSvc, sysClock),
		http.NewMenuItemHandler(menuSvc, sysClock),
		http.NewVoteHandler(voteSvc, policy),
		http.NewResultHandler(summarySvc, sysClock),
		http.NewUserHandler(userSvc),
		http.NewAuthHandler(authSvc, os.Getenv("COOKIE_DOMAIN"), stdhttp.SameSiteLaxMode),
	)
	server := &stdhttp.Server{Addr: "0.0.0.0:8080", Handler: handler}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		slog.Info("server listening", "addr", server.Addr, "vote_deadline", deadline.String())
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, stdhttp.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	<-ctx.Done()
	slog.Info("Gracefully shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal(err)
	}
}

// voteDeadline parses VOTE_DEADLINE as HH:MM, defaulting to 11:00.
func voteDeadline() (time.Duration, error) {
	raw := os.Getenv("VOTE_DEADLINE")
	if raw == "" {
		return domain.DefaultVoteDeadline, nil
	}

	parts := strings.SplitN(raw, ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid VOTE_DEADLINE %q, expected HH:MM", raw)
	}
	hours, err := strconv.Atoi(parts[0])
	if err != nil || hours < 0 || hours > 23 {
		return 0, fmt.Errorf("invalid VOTE_DEADLINE %q, expected HH:MM", raw)
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil || minutes < 0 || minutes > 59 {
		return 0, fmt.Errorf("invalid VOTE_DEADLINE %q, expected HH:MM", raw)
	}
	return time.Duration(hours)*time.Hour + time.Duration(minutes)*time.Minute, nil
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
