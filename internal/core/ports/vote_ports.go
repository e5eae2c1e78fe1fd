package ports

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/feyerinaGO/RestaurantVoting/internal/core/domain"
)

type VoteRepository interface {
	// GetByUserAndDate returns (nil, nil) when no vote exists.
	GetByUserAndDate(ctx context.Context, userID uuid.UUID, date time.Time) (*domain.Vote, error)
	// GetAllByUser returns the user's votes ordered by vote date descending.
	GetAllByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Vote, error)
	// Insert fails with domain.ErrVoteConflict when a vote already exists
	// for (vote.UserID, vote.VoteDate).
	Insert(ctx context.Context, vote *domain.Vote) error
	Update(ctx context.Context, vote *domain.Vote) error
	Delete(ctx context.Context, id uuid.UUID) error
	CountByRestaurantAndDate(ctx context.Context, restaurantID uuid.UUID, date time.Time) (int64, error)
}

type CastVoteInput struct {
	UserID       uuid.UUID
	RestaurantID uuid.UUID
}

type VoteService interface {
	GetTodayVote(ctx context.Context, userID uuid.UUID) (*domain.Vote, error)
	GetVoteHistory(ctx context.Context, userID uuid.UUID) ([]*domain.Vote, error)
	// CastVote creates today's vote, or changes it when one already exists
	// and the deadline has not passed. The returned flag is true when a new
	// vote was created.
	CastVote(ctx context.Context, input CastVoteInput) (*domain.Vote, bool, error)
	DeleteTodayVote(ctx context.Context, userID uuid.UUID) error
}
