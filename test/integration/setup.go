package integration

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	handler "github.com/feyerinaGO/RestaurantVoting/internal/adapters/handler/http"
	repo "github.com/feyerinaGO/RestaurantVoting/internal/adapters/repository/postgres"
	"github.com/feyerinaGO/RestaurantVoting/internal/core/domain"
	"github.com/feyerinaGO/RestaurantVoting/internal/core/ports"
	"github.com/feyerinaGO/RestaurantVoting/internal/core/services"
)

// testClock starts at the real time and can be moved to exercise the voting
// deadline. Services see only this clock; JWT expiry validation still uses
// the real time, so auth tests leave it unset.
type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func newTestClock() *testClock {
	return &testClock{now: time.Now()}
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

// SetTimeOfDay keeps today's date but moves the wall clock, so deadline
// behavior can be tested without touching the vote's date.
func (c *testClock) SetTimeOfDay(hour, min int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	y, m, d := time.Now().Date()
	c.now = time.Date(y, m, d, hour, min, 0, 0, time.Local)
}

type TestApp struct {
	DB          *sql.DB
	Server      *httptest.Server
	Client      *http.Client
	Clock       *testClock
	SummarySvc  ports.SummaryService
	DBContainer testcontainers.Container
}

func setupPostgresContainer(ctx context.Context) (testcontainers.Container, string, error) {
	pgContainer, err := postgres.Run(ctx, "postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("user"),
		postgres.WithPassword("password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(5*time.Second),
		),
	)
	if err != nil {
		return nil, "", fmt.Errorf("failed to start postgres container: %w", err)
	}

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return nil, "", err
	}

	return pgContainer, connStr, nil
}

func applyMigrations(db *sql.DB) error {
	return repo.ApplyMigrations(db, "../../internal/adapters/repository/postgres/migrations")
}

func setupTestApp(t *testing.T) *TestApp {
	os.Setenv("JWT_SECRET", "test-secret")
	ctx := context.Background()
	dbContainer, dbURL, err := setupPostgresContainer(ctx)
	require.NoError(t, err)

	db, err := sql.Open("postgres", dbURL)
	require.NoError(t, err)

	err = applyMigrations(db)
	require.NoError(t, err)

	clock := newTestClock()

	restaurantRepo := repo.NewRestaurantRepository(db)
	menuRepo := repo.NewMenuItemRepository(db)
	voteRepo := repo.NewVoteRepository(db)
	resultRepo := repo.NewVoteResultRepository(db)
	userRepo := repo.NewUserRepository(db)
	authRepo := repo.NewAuthRepository(db)

	policy := domain.NewVotePolicy(domain.DefaultVoteDeadline)

	restaurantSvc := services.NewRestaurantService(restaurantRepo, nil, clock)
	menuSvc := services.NewMenuItemService(menuRepo, restaurantRepo, nil)
	voteSvc := services.NewVoteService(voteRepo, restaurantRepo, policy, clock)
	summarySvc := services.NewSummaryService(restaurantRepo, voteRepo, resultRepo)
	userSvc := services.NewUserService(userRepo)
	authSvc := services.NewAuthService(userRepo, authRepo, clock)

	restaurantHandler := handler.NewRestaurantHandler(restaurantSvc, clock)
	menuItemHandler := handler.NewMenuItemHandler(menuSvc, clock)
	voteHandler := handler.NewVoteHandler(voteSvc, policy)
	resultHandler := handler.NewResultHandler(summarySvc, clock)
	userHandler := handler.NewUserHandler(userSvc)
	authHandler := handler.NewAuthHandler(authSvc, "", http.SameSiteLaxMode)

	router := handler.NewHandler(restaurantHandler, menuItemHandler, voteHandler, resultHandler, userHandler, authHandler)

	server := httptest.NewServer(router)

	return &TestApp{
		DB:          db,
		Server:      server,
		Client:      server.Client(),
		Clock:       clock,
		SummarySvc:  summarySvc,
		DBContainer: dbContainer,
	}
}

func (app *TestApp) Teardown(t *testing.T) {
	app.Server.Close()
	app.DB.Close()
	if err := app.DBContainer.Terminate(context.Background()); err != nil {
		t.Logf("failed to terminate container: %v", err)
	}
}

func (app *TestApp) createUserAndToken(t *testing.T, role string) (uuid.UUID, string) {
	t.Helper()

	userID := uuid.New()
	email := fmt.Sprintf("user-%s@example.com", userID)
	name := fmt.Sprintf("User %s", userID)
	_, err := app.DB.Exec("INSERT INTO users (id, email, name, password_hash, role) VALUES ($1, $2, $3, 'x', $4)", userID, email, name, role)
	require.NoError(t, err)

	claims := jwt.MapClaims{
		"sub":   userID.String(),
		"email": email,
		"role":  role,
		"exp":   time.Now().Add(15 * time.Minute).Unix(),
		"iat":   time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return userID, signedToken
}

func (app *TestApp) createRestaurant(t *testing.T, name string) uuid.UUID {
	t.Helper()

	id := uuid.New()
	_, err := app.DB.Exec("INSERT INTO restaurants (id, name) VALUES ($1, $2)", id, name)
	require.NoError(t, err)
	return id
}

func (app *TestApp) insertVote(t *testing.T, userID, restaurantID uuid.UUID, date time.Time) {
	t.Helper()

	_, err := app.DB.Exec("INSERT INTO votes (user_id, restaurant_id, vote_date) VALUES ($1, $2, $3)",
		userID, restaurantID, date.Format(time.DateOnly))
	require.NoError(t, err)
}

func (app *TestApp) authedRequest(t *testing.T, method, path, token string, body []byte) *http.Request {
	t.Helper()

	var req *http.Request
	var err error
	if body != nil {
		req, err = http.NewRequest(method, app.Server.URL+path, strings.NewReader(string(body)))
	} else {
		req, err = http.NewRequest(method, app.Server.URL+path, nil)
	}
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	req.AddCookie(&http.Cookie{Name: "access_token", Value: token})
	return req
}
