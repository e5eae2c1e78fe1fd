package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/feyerinaGO/RestaurantVoting/internal/core/domain"
	"github.com/feyerinaGO/RestaurantVoting/internal/core/ports"
)

type summaryService struct {
	restaurantRepo ports.RestaurantRepository
	voteRepo       ports.VoteRepository
	resultRepo     ports.VoteResultRepository
}

func NewSummaryService(restaurantRepo ports.RestaurantRepository, voteRepo ports.VoteRepository, resultRepo ports.VoteResultRepository) ports.SummaryService {
	return &summaryService{
		restaurantRepo: restaurantRepo,
		voteRepo:       voteRepo,
		resultRepo:     resultRepo,
	}
}

// SummarizeAllRestaurants recounts the date's votes for every restaurant
// concurrently and materializes the tallies.
func (s *summaryService) SummarizeAllRestaurants(ctx context.Context, date time.Time) error {
	restaurants, err := s.restaurantRepo.GetAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch restaurants: %w", err)
	}

	day := domain.DateOf(date)

	var wg sync.WaitGroup
	errChan := make(chan error, len(restaurants))

	for _, restaurant := range restaurants {
		wg.Add(1)
		go func(rID [16]byte) { // uuid.UUID is [16]byte; pass by value to avoid closure issues
			defer wg.Done()
			if err := s.resultRepo.SummarizeVotes(ctx, rID, day); err != nil {
				errChan <- fmt.Errorf("failed to summarize restaurant %s: %w", rID, err)
			}
		}(restaurant.ID)
	}

	wg.Wait()
	close(errChan)

	for err := range errChan {
		if err != nil {
			return err
		}
	}

	return nil
}

func (s *summaryService) CountVotes(ctx context.Context, restaurantID uuid.UUID, date time.Time) (int64, error) {
	exists, err := s.restaurantRepo.Exists(ctx, restaurantID)
	if err != nil {
		return 0, fmt.Errorf("failed to check restaurant: %w", err)
	}
	if !exists {
		return 0, domain.ErrRestaurantNotFound
	}

	count, err := s.voteRepo.CountByRestaurantAndDate(ctx, restaurantID, domain.DateOf(date))
	if err != nil {
		return 0, fmt.Errorf("failed to count votes: %w", err)
	}
	return count, nil
}

func (s *summaryService) GetResults(ctx context.Context, date time.Time) ([]*domain.RestaurantResult, error) {
	results, err := s.resultRepo.GetResultsByDate(ctx, domain.DateOf(date))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch vote results: %w", err)
	}
	return results, nil
}
