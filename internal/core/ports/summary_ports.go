package ports

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/feyerinaGO/RestaurantVoting/internal/core/domain"
)

type VoteResultRepository interface {
	// SummarizeVotes recounts the restaurant's votes for the date and
	// upserts the tally into vote_results.
	SummarizeVotes(ctx context.Context, restaurantID uuid.UUID, date time.Time) error
	GetResultsByDate(ctx context.Context, date time.Time) ([]*domain.RestaurantResult, error)
}

type SummaryService interface {
	SummarizeAllRestaurants(ctx context.Context, date time.Time) error
	GetResults(ctx context.Context, date time.Time) ([]*domain.RestaurantResult, error)
	// CountVotes returns the live tally for a single restaurant, bypassing
	// the materialized results.
	CountVotes(ctx context.Context, restaurantID uuid.UUID, date time.Time) (int64, error)
}
