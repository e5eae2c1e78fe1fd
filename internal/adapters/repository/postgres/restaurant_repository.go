package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/feyerinaGO/RestaurantVoting/internal/core/domain"
	"github.com/feyerinaGO/RestaurantVoting/internal/core/ports"
)

type restaurantRepository struct {
	db *sql.DB
}

func NewRestaurantRepository(db *sql.DB) ports.RestaurantRepository {
	return &restaurantRepository{
		db: db,
	}
}

func (r *restaurantRepository) Save(ctx context.Context, restaurant *domain.Restaurant) error {
	query := `
		INSERT INTO restaurants (id, name)
		VALUES ($1, $2)
		RETURNING created_at
	`
	err := r.db.QueryRowContext(ctx, query, restaurant.ID, restaurant.Name).Scan(&restaurant.CreatedAt)
	if err != nil {
		if isUniqueViolation(err, "restaurants_name_key") {
			return domain.ErrRestaurantExists
		}
		return fmt.Errorf("failed to insert restaurant: %w", err)
	}
	return nil
}

func (r *restaurantRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Restaurant, error) {
	query := `
		SELECT id, name, created_at
		FROM restaurants
		WHERE id = $1 AND deleted_at IS NULL
	`
	restaurant := &domain.Restaurant{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&restaurant.ID, &restaurant.Name, &restaurant.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get restaurant: %w", err)
	}
	return restaurant, nil
}

func (r *restaurantRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	query := `SELECT 1 FROM restaurants WHERE id = $1 AND deleted_at IS NULL`
	var one int
	err := r.db.QueryRowContext(ctx, query, id).Scan(&one)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check restaurant: %w", err)
	}
	return true, nil
}

func (r *restaurantRepository) GetAllWithMenu(ctx context.Context, date time.Time) ([]*domain.Restaurant, error) {
	query := `
		SELECT DISTINCT r.id, r.name, r.created_at
		FROM restaurants r
		JOIN menu_items m ON m.restaurant_id = r.id
		WHERE r.deleted_at IS NULL AND m.dish_date = $1
		ORDER BY r.name
	`
	rows, err := r.db.QueryContext(ctx, query, date.Format(time.DateOnly))
	if err != nil {
		return nil, fmt.Errorf("failed to list restaurants: %w", err)
	}
	defer rows.Close()

	var restaurants []*domain.Restaurant
	for rows.Next() {
		var restaurant domain.Restaurant
		if err := rows.Scan(&restaurant.ID, &restaurant.Name, &restaurant.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan restaurant: %w", err)
		}
		restaurants = append(restaurants, &restaurant)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating restaurants: %w", err)
	}

	for _, restaurant := range restaurants {
		menu, err := r.fetchMenu(ctx, restaurant.ID, date)
		if err != nil {
			return nil, err
		}
		restaurant.Menu = menu
	}
	return restaurants, nil
}

func (r *restaurantRepository) GetAll(ctx context.Context) ([]*domain.Restaurant, error) {
	query := `
		SELECT id, name, created_at
		FROM restaurants
		WHERE deleted_at IS NULL
		ORDER BY name
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get all restaurants: %w", err)
	}
	defer rows.Close()

	var restaurants []*domain.Restaurant
	for rows.Next() {
		var restaurant domain.Restaurant
		if err := rows.Scan(&restaurant.ID, &restaurant.Name, &restaurant.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan restaurant: %w", err)
		}
		restaurants = append(restaurants, &restaurant)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating restaurants: %w", err)
	}
	return restaurants, nil
}

func (r *restaurantRepository) Update(ctx context.Context, restaurant *domain.Restaurant) error {
	query := `UPDATE restaurants SET name = $1 WHERE id = $2 AND deleted_at IS NULL`
	res, err := r.db.ExecContext(ctx, query, restaurant.Name, restaurant.ID)
	if err != nil {
		if isUniqueViolation(err, "restaurants_name_key") {
			return domain.ErrRestaurantExists
		}
		return fmt.Errorf("failed to update restaurant: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return domain.ErrRestaurantNotFound
	}
	return nil
}

func (r *restaurantRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE restaurants SET deleted_at = NOW() WHERE id = $1 AND deleted_at IS NULL`
	_, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete restaurant: %w", err)
	}
	return nil
}

func (r *restaurantRepository) fetchMenu(ctx context.Context, restaurantID uuid.UUID, date time.Time) ([]domain.MenuItem, error) {
	query := `
		SELECT id, restaurant_id, dish_date, name, price_cents, created_at
		FROM menu_items
		WHERE restaurant_id = $1 AND dish_date = $2
		ORDER BY name
	`
	rows, err := r.db.QueryContext(ctx, query, restaurantID, date.Format(time.DateOnly))
	if err != nil {
		return nil, fmt.Errorf("failed to get menu: %w", err)
	}
	defer rows.Close()

	var items []domain.MenuItem
	for rows.Next() {
		var item domain.MenuItem
		if err := rows.Scan(&item.ID, &item.RestaurantID, &item.DishDate, &item.Name, &item.PriceCents, &item.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan menu item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating menu items: %w", err)
	}
	return items, nil
}
