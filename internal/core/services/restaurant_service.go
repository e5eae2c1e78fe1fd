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

type restaurantService struct {
	repo  ports.RestaurantRepository
	cache ports.RestaurantCache
	clock ports.Clock
}

// NewRestaurantService builds the restaurant directory service. cache may be
// nil; the listing then always hits the database.
func NewRestaurantService(repo ports.RestaurantRepository, cache ports.RestaurantCache, clock ports.Clock) ports.RestaurantService {
	return &restaurantService{
		repo:  repo,
		cache: cache,
		clock: clock,
	}
}

func (s *restaurantService) Create(ctx context.Context, input ports.CreateRestaurantInput) (*domain.Restaurant, error) {
	if input.Name == "" {
		return nil, errors.New("name is required")
	}

	restaurant := &domain.Restaurant{
		ID:   uuid.New(),
		Name: input.Name,
	}
	if err := s.repo.Save(ctx, restaurant); err != nil {
		if errors.Is(err, domain.ErrRestaurantExists) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to save restaurant: %w", err)
	}
	return restaurant, nil
}

func (s *restaurantService) Get(ctx context.Context, id uuid.UUID) (*domain.Restaurant, error) {
	restaurant, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if restaurant == nil {
		return nil, domain.ErrRestaurantNotFound
	}
	return restaurant, nil
}

func (s *restaurantService) ListWithMenu(ctx context.Context, date time.Time) ([]*domain.Restaurant, error) {
	if s.cache != nil {
		listing, hit, err := s.cache.GetListing(ctx, date)
		if err != nil {
			slog.Warn("restaurant listing cache read failed", "error", err)
		} else if hit {
			return listing, nil
		}
	}

	listing, err := s.repo.GetAllWithMenu(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("failed to list restaurants: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.SetListing(ctx, date, listing); err != nil {
			slog.Warn("restaurant listing cache write failed", "error", err)
		}
	}
	return listing, nil
}

func (s *restaurantService) Rename(ctx context.Context, id uuid.UUID, name string) (*domain.Restaurant, error) {
	if name == "" {
		return nil, errors.New("name is required")
	}

	restaurant, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	restaurant.Name = name
	if err := s.repo.Update(ctx, restaurant); err != nil {
		if errors.Is(err, domain.ErrRestaurantExists) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update restaurant: %w", err)
	}

	s.invalidateAll(ctx)
	return restaurant, nil
}

func (s *restaurantService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete restaurant: %w", err)
	}
	s.invalidateAll(ctx)
	return nil
}

// invalidateAll drops the cached listing for today. Admin mutations are rare
// compared to listing reads, so over-invalidation is acceptable.
func (s *restaurantService) invalidateAll(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateListing(ctx, domain.DateOf(s.clock.Now())); err != nil {
		slog.Warn("restaurant listing cache invalidation failed", "error", err)
	}
}
