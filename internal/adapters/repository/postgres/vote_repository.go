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

type voteRepository struct {
	db *sql.DB
}

func NewVoteRepository(db *sql.DB) ports.VoteRepository {
	return &voteRepository{
		db: db,
	}
}

func (r *voteRepository) GetByUserAndDate(ctx context.Context, userID uuid.UUID, date time.Time) (*domain.Vote, error) {
	query := `
		SELECT id, user_id, restaurant_id, vote_date, created_at
		FROM votes
		WHERE user_id = $1 AND vote_date = $2
	`
	vote := &domain.Vote{}
	err := r.db.QueryRowContext(ctx, query, userID, date.Format(time.DateOnly)).Scan(
		&vote.ID, &vote.UserID, &vote.RestaurantID, &vote.VoteDate, &vote.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get vote: %w", err)
	}
	return vote, nil
}

func (r *voteRepository) GetAllByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Vote, error) {
	query := `
		SELECT id, user_id, restaurant_id, vote_date, created_at
		FROM votes
		WHERE user_id = $1
		ORDER BY vote_date DESC
	`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get votes: %w", err)
	}
	defer rows.Close()

	var votes []*domain.Vote
	for rows.Next() {
		var vote domain.Vote
		if err := rows.Scan(&vote.ID, &vote.UserID, &vote.RestaurantID, &vote.VoteDate, &vote.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan vote: %w", err)
		}
		votes = append(votes, &vote)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating votes: %w", err)
	}
	return votes, nil
}

func (r *voteRepository) Insert(ctx context.Context, vote *domain.Vote) error {
	query := `
		INSERT INTO votes (id, user_id, restaurant_id, vote_date)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at
	`
	err := r.db.QueryRowContext(ctx, query, vote.ID, vote.UserID, vote.RestaurantID, vote.VoteDate.Format(time.DateOnly)).Scan(&vote.CreatedAt)
	if err != nil {
		if isUniqueViolation(err, "votes_unique_user_date_idx") {
			return domain.ErrVoteConflict
		}
		return fmt.Errorf("failed to insert vote: %w", err)
	}
	return nil
}

func (r *voteRepository) Update(ctx context.Context, vote *domain.Vote) error {
	query := `UPDATE votes SET restaurant_id = $1 WHERE id = $2`
	res, err := r.db.ExecContext(ctx, query, vote.RestaurantID, vote.ID)
	if err != nil {
		return fmt.Errorf("failed to update vote: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return domain.ErrVoteNotFound
	}
	return nil
}

func (r *voteRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM votes WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete vote: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return domain.ErrVoteNotFound
	}
	return nil
}

func (r *voteRepository) CountByRestaurantAndDate(ctx context.Context, restaurantID uuid.UUID, date time.Time) (int64, error) {
	query := `SELECT COUNT(*) FROM votes WHERE restaurant_id = $1 AND vote_date = $2`
	var count int64
	err := r.db.QueryRowContext(ctx, query, restaurantID, date.Format(time.DateOnly)).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count votes: %w", err)
	}
	return count, nil
}
