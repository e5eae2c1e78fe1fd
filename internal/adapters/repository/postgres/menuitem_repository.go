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

type menuItemRepository struct {
	db *sql.DB
}

func NewMenuItemRepository(db *sql.DB) ports.MenuItemRepository {
	return &menuItemRepository{
		db: db,
	}
}

func (r *menuItemRepository) Save(ctx context.Context, item *domain.MenuItem) error {
	query := `
		INSERT INTO menu_items (id, restaurant_id, dish_date, name, price_cents)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at
	`
	err := r.db.QueryRowContext(ctx, query, item.ID, item.RestaurantID, item.DishDate.Format(time.DateOnly), item.Name, item.PriceCents).Scan(&item.CreatedAt)
	if err != nil {
		if isUniqueViolation(err, "menu_items_unique_dish_idx") {
			return domain.ErrMenuItemExists
		}
		return fmt.Errorf("failed to insert menu item: %w", err)
	}
	return nil
}

func (r *menuItemRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.MenuItem, error) {
	query := `
		SELECT id, restaurant_id, dish_date, name, price_cents, created_at
		FROM menu_items
		WHERE id = $1
	`
	item := &domain.MenuItem{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&item.ID, &item.RestaurantID, &item.DishDate, &item.Name, &item.PriceCents, &item.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get menu item: %w", err)
	}
	return item, nil
}

func (r *menuItemRepository) GetByRestaurantAndDate(ctx context.Context, restaurantID uuid.UUID, date time.Time) ([]domain.MenuItem, error) {
	query := `
		SELECT id, restaurant_id, dish_date, name, price_cents, created_at
		FROM menu_items
		WHERE restaurant_id = $1 AND dish_date = $2
		ORDER BY name
	`
	rows, err := r.db.QueryContext(ctx, query, restaurantID, date.Format(time.DateOnly))
	if err != nil {
		return nil, fmt.Errorf("failed to get menu items: %w", err)
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

func (r *menuItemRepository) Update(ctx context.Context, item *domain.MenuItem) error {
	query := `UPDATE menu_items SET name = $1, price_cents = $2 WHERE id = $3`
	res, err := r.db.ExecContext(ctx, query, item.Name, item.PriceCents, item.ID)
	if err != nil {
		return fmt.Errorf("failed to update menu item: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return domain.ErrMenuItemNotFound
	}
	return nil
}

func (r *menuItemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM menu_items WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete menu item: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return domain.ErrMenuItemNotFound
	}
	return nil
}
