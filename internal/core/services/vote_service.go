package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/feyerinaGO/RestaurantVoting/internal/core/domain"
	"github.com/feyerinaGO/RestaurantVoting/internal/core/ports"
)

type voteService struct {
	voteRepo       ports.VoteRepository
	restaurantRepo ports.RestaurantRepository
	policy         domain.VotePolicy
	clock          ports.Clock
}

func NewVoteService(voteRepo ports.VoteRepository, restaurantRepo ports.RestaurantRepository, policy domain.VotePolicy, clock ports.Clock) ports.VoteService {
	return &voteService{
		voteRepo:       voteRepo,
		restaurantRepo: restaurantRepo,
		policy:         policy,
		clock:          clock,
	}
}

func (s *voteService) GetTodayVote(ctx context.Context, userID uuid.UUID) (*domain.Vote, error) {
	today := domain.DateOf(s.clock.Now())

	vote, err := s.voteRepo.GetByUserAndDate(ctx, userID, today)
	if err != nil {
		return nil, fmt.Errorf("failed to get today's vote: %w", err)
	}
	if vote == nil {
		return nil, domain.ErrVoteNotFound
	}
	return vote, nil
}

func (s *voteService) GetVoteHistory(ctx context.Context, userID uuid.UUID) ([]*domain.Vote, error) {
	votes, err := s.voteRepo.GetAllByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get vote history: %w", err)
	}
	return votes, nil
}

// CastVote is the create-or-update entry point for today's vote. The "now"
// snapshot is taken once and reused for both the date resolution and the
// deadline check, so a request cannot straddle the cutoff mid-flight.
func (s *voteService) CastVote(ctx context.Context, input ports.CastVoteInput) (*domain.Vote, bool, error) {
	now := s.clock.Now()
	today := domain.DateOf(now)

	existing, err := s.voteRepo.GetByUserAndDate(ctx, input.UserID, today)
	if err != nil {
		return nil, false, fmt.Errorf("failed to look up existing vote: %w", err)
	}

	if existing == nil {
		vote, err := s.createVote(ctx, input, today)
		if err == nil {
			slog.Info("vote created", "user_id", input.UserID, "restaurant_id", input.RestaurantID, "vote_date", today.Format(time.DateOnly))
			return vote, true, nil
		}
		if !errors.Is(err, domain.ErrVoteConflict) {
			return nil, false, err
		}

		// A concurrent request won the insert race. The unique constraint is
		// the arbiter; retry once as an update against the winning row.
		existing, err = s.voteRepo.GetByUserAndDate(ctx, input.UserID, today)
		if err != nil {
			return nil, false, fmt.Errorf("failed to re-read vote after conflict: %w", err)
		}
		if existing == nil {
			return nil, false, domain.ErrVoteConflict
		}
	}

	vote, err := s.changeVote(ctx, existing, input.RestaurantID, now)
	if err != nil {
		return nil, false, err
	}
	slog.Info("vote updated", "user_id", input.UserID, "restaurant_id", input.RestaurantID, "vote_date", today.Format(time.DateOnly))
	return vote, false, nil
}

func (s *voteService) DeleteTodayVote(ctx context.Context, userID uuid.UUID) error {
	now := s.clock.Now()
	today := domain.DateOf(now)

	vote, err := s.voteRepo.GetByUserAndDate(ctx, userID, today)
	if err != nil {
		return fmt.Errorf("failed to look up today's vote: %w", err)
	}
	if vote == nil {
		return domain.ErrVoteNotFound
	}

	if !s.policy.CanMutate(vote.VoteDate, now) {
		return domain.ErrDeadlinePassed
	}

	if err := s.voteRepo.Delete(ctx, vote.ID); err != nil {
		return fmt.Errorf("failed to delete vote: %w", err)
	}
	slog.Info("vote deleted", "user_id", userID, "vote_date", today.Format(time.DateOnly))
	return nil
}

// createVote handles the first vote of the day. First-time creation is not
// deadline-gated; the deadline only restricts changing an already-cast vote.
func (s *voteService) createVote(ctx context.Context, input ports.CastVoteInput, today time.Time) (*domain.Vote, error) {
	if err := s.checkRestaurant(ctx, input.RestaurantID); err != nil {
		return nil, err
	}

	vote := &domain.Vote{
		ID:           uuid.New(),
		UserID:       input.UserID,
		RestaurantID: input.RestaurantID,
		VoteDate:     today,
	}
	if err := s.voteRepo.Insert(ctx, vote); err != nil {
		if errors.Is(err, domain.ErrVoteConflict) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to insert vote: %w", err)
	}
	return vote, nil
}

func (s *voteService) changeVote(ctx context.Context, vote *domain.Vote, restaurantID uuid.UUID, now time.Time) (*domain.Vote, error) {
	if !s.policy.CanMutate(vote.VoteDate, now) {
		return nil, domain.ErrDeadlinePassed
	}
	if err := s.checkRestaurant(ctx, restaurantID); err != nil {
		return nil, err
	}

	vote.RestaurantID = restaurantID
	if err := s.voteRepo.Update(ctx, vote); err != nil {
		return nil, fmt.Errorf("failed to update vote: %w", err)
	}
	return vote, nil
}

func (s *voteService) checkRestaurant(ctx context.Context, id uuid.UUID) error {
	exists, err := s.restaurantRepo.Exists(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to check restaurant: %w", err)
	}
	if !exists {
		return domain.ErrRestaurantNotFound
	}
	return nil
}
