package repositories

import (
	"context"

	"github.com/google/uuid"
	"startup-platform.backend/internal/domain/entities"
)

// UserRepository defines user data operations
type UserRepository interface {
	Create(ctx context.Context, user *entities.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error)
	GetByEmail(ctx context.Context, email string) (*entities.User, error)
	GetByTelegramUsername(ctx context.Context, username string) (*entities.User, error)
	Update(ctx context.Context, user *entities.User) error
	// ListActiveInvestors returns every active investor, profile included.
	ListActiveInvestors(ctx context.Context) ([]*entities.User, error)
	// ListAvailableMentors returns every active mentor with availability on.
	ListAvailableMentors(ctx context.Context) ([]*entities.User, error)
	// GetManyByIDs resolves a cached ID list back to users, skipping unknowns.
	GetManyByIDs(ctx context.Context, ids []uuid.UUID) ([]*entities.User, error)
}
