package ports

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/feyerinaGO/RestaurantVoting/internal/core/domain"
)

type RestaurantRepository interface {
	Save(ctx context.Context, restaurant *domain.Restaurant) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Restaurant, error)
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
	// GetAllWithMenu lists restaurants offering a menu on the given date,
	// menus included.
	GetAllWithMenu(ctx context.Context, date time.Time) ([]*domain.Restaurant, error)
	GetAll(ctx context.Context) ([]*domain.Restaurant, error)
	Update(ctx context.Context, restaurant *domain.Restaurant) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type MenuItemRepository interface {
	Save(ctx context.Context, item *domain.MenuItem) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.MenuItem, error)
	GetByRestaurantAndDate(ctx context.Context, restaurantID uuid.UUID, date time.Time) ([]domain.MenuItem, error)
	Update(ctx context.Context, item *domain.MenuItem) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// RestaurantCache fronts the read-heavy restaurants-with-menu listing. A nil
// implementation is tolerated by the service layer.
type RestaurantCache interface {
	GetListing(ctx context.Context, date time.Time) ([]*domain.Restaurant, bool, error)
	SetListing(ctx context.Context, date time.Time, restaurants []*domain.Restaurant) error
	InvalidateListing(ctx context.Context, date time.Time) error
}

type CreateRestaurantInput struct {
	Name string
}

type CreateMenuItemInput struct {
	RestaurantID uuid.UUID
	DishDate     time.Time
	Name         string
	PriceCents   int64
}

type UpdateMenuItemInput struct {
	Name       string
	PriceCents int64
}

type RestaurantService interface {
	Create(ctx context.Context, input CreateRestaurantInput) (*domain.Restaurant, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.Restaurant, error)
	ListWithMenu(ctx context.Context, date time.Time) ([]*domain.Restaurant, error)
	Rename(ctx context.Context, id uuid.UUID, name string) (*domain.Restaurant, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type MenuItemService interface {
	Create(ctx context.Context, input CreateMenuItemInput) (*domain.MenuItem, error)
	GetMenu(ctx context.Context, restaurantID uuid.UUID, date time.Time) ([]domain.MenuItem, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateMenuItemInput) (*domain.MenuItem, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
