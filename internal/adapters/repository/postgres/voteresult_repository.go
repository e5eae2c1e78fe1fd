package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/feyerinaGO/RestaurantVoting/internal/core/domain"
	"github.com/feyerinaGO/RestaurantVoting/internal/core/ports"
)

type voteResultRepository struct {
	db *sql.DB
}

func NewVoteResultRepository(db *sql.DB) ports.VoteResultRepository {
	return &voteResultRepository{
		db: db,
	}
}

func (r *voteResultRepository) SummarizeVotes(ctx context.Context, restaurantID uuid.UUID, date time.Time) error {
	query := `
		INSERT INTO vote_results (restaurant_id, vote_date, vote_count, summarized_at)
		SELECT $1, $2, COUNT(v.id), NOW()
		FROM votes v
		WHERE v.restaurant_id = $1 AND v.vote_date = $2
		ON CONFLICT (restaurant_id, vote_date)
		DO UPDATE SET vote_count = EXCLUDED.vote_count, summarized_at = EXCLUDED.summarized_at
	`
	_, err := r.db.ExecContext(ctx, query, restaurantID, date.Format(time.DateOnly))
	if err != nil {
		return fmt.Errorf("failed to summarize votes: %w", err)
	}
	return nil
}

func (r *voteResultRepository) GetResultsByDate(ctx context.Context, date time.Time) ([]*domain.RestaurantResult, error) {
	query := `
		SELECT restaurant_id, vote_date, vote_count, summarized_at
		FROM vote_results
		WHERE vote_date = $1
		ORDER BY vote_count DESC
	`
	rows, err := r.db.QueryContext(ctx, query, date.Format(time.DateOnly))
	if err != nil {
		return nil, fmt.Errorf("failed to get vote results: %w", err)
	}
	defer rows.Close()

	var results []*domain.RestaurantResult
	for rows.Next() {
		var result domain.RestaurantResult
		if err := rows.Scan(&result.RestaurantID, &result.VoteDate, &result.VoteCount, &result.SummarizedAt); err != nil {
			return nil, fmt.Errorf("failed to scan vote result: %w", err)
		}
		results = append(results, &result)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating vote results: %w", err)
	}
	return results, nil
}
