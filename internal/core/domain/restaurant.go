package domain

import (
	"time"

	"github.com/google/uuid"
)

type Restaurant struct {
	ID        uuid.UUID  `json:"id"`
	Name      string     `json:"name"`
	Menu      []MenuItem `json:"menu,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
}

// MenuItem is a single dish a restaurant offers on a given date. Prices are
// stored in minor currency units to avoid float arithmetic.
type MenuItem struct {
	ID           uuid.UUID `json:"id"`
	RestaurantID uuid.UUID `json:"restaurant_id"`
	DishDate     time.Time `json:"dish_date"`
	Name         string    `json:"name"`
	PriceCents   int64     `json:"price_cents"`
	CreatedAt    time.Time `json:"created_at"`
}

// RestaurantResult is the materialized vote tally for one restaurant on one
// date, produced by the summary job.
type RestaurantResult struct {
	RestaurantID uuid.UUID `json:"restaurant_id"`
	VoteDate     time.Time `json:"vote_date"`
	VoteCount    int64     `json:"vote_count"`
	SummarizedAt time.Time `json:"summarized_at"`
}
