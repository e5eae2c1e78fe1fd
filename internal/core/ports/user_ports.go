package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/feyerinaGO/RestaurantVoting/internal/core/domain"
)

type UserRepository interface {
	// GetByEmail returns (nil, nil) when no user exists.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	// Create fails with domain.ErrEmailTaken when the email is in use.
	Create(ctx context.Context, user *domain.User) error
}

type UserService interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
}
