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

type menuItemService struct {
	menuRepo       ports.MenuItemRepository
	restaurantRepo ports.RestaurantRepository
	cache          ports.RestaurantCache
}

func NewMenuItemService(menuRepo ports.MenuItemRepository, restaurantRepo ports.RestaurantRepository, cache ports.RestaurantCache) ports.MenuItemService {
	return &menuItemService{
		menuRepo:       menuRepo,
		restaurantRepo: restaurantRepo,
		cache:          cache,
	}
}

func (s *menuItemService) Create(ctx context.Context, input ports.CreateMenuItemInput) (*domain.MenuItem, error) {
	if input.Name == "" {
		return nil, errors.New("dish name is required")
	}
	if input.PriceCents <= 0 {
		return nil, errors.New("price must be positive")
	}

	exists, err := s.restaurantRepo.Exists(ctx, input.RestaurantID)
	if err != nil {
		return nil, fmt.Errorf("failed to check restaurant: %w", err)
	}
	if !exists {
		return nil, domain.ErrRestaurantNotFound
	}

	item := &domain.MenuItem{
		ID:           uuid.New(),
		RestaurantID: input.RestaurantID,
		DishDate:     domain.DateOf(input.DishDate),
		Name:         input.Name,
		PriceCents:   input.PriceCents,
	}
	if err := s.menuRepo.Save(ctx, item); err != nil {
		if errors.Is(err, domain.ErrMenuItemExists) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to save menu item: %w", err)
	}

	s.invalidate(ctx, item.DishDate)
	return item, nil
}

func (s *menuItemService) GetMenu(ctx context.Context, restaurantID uuid.UUID, date time.Time) ([]domain.MenuItem, error) {
	exists, err := s.restaurantRepo.Exists(ctx, restaurantID)
	if err != nil {
		return nil, fmt.Errorf("failed to check restaurant: %w", err)
	}
	if !exists {
		return nil, domain.ErrRestaurantNotFound
	}

	items, err := s.menuRepo.GetByRestaurantAndDate(ctx, restaurantID, domain.DateOf(date))
	if err != nil {
		return nil, fmt.Errorf("failed to get menu: %w", err)
	}
	return items, nil
}

func (s *menuItemService) Update(ctx context.Context, id uuid.UUID, input ports.UpdateMenuItemInput) (*domain.MenuItem, error) {
	item, err := s.menuRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrMenuItemNotFound
	}

	if input.Name != "" {
		item.Name = input.Name
	}
	if input.PriceCents > 0 {
		item.PriceCents = input.PriceCents
	}
	if err := s.menuRepo.Update(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to update menu item: %w", err)
	}

	s.invalidate(ctx, item.DishDate)
	return item, nil
}

func (s *menuItemService) Delete(ctx context.Context, id uuid.UUID) error {
	item, err := s.menuRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if item == nil {
		return domain.ErrMenuItemNotFound
	}

	if err := s.menuRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete menu item: %w", err)
	}

	s.invalidate(ctx, item.DishDate)
	return nil
}

func (s *menuItemService) invalidate(ctx context.Context, date time.Time) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateListing(ctx, date); err != nil {
		slog.Warn("restaurant listing cache invalidation failed", "error", err)
	}
}
