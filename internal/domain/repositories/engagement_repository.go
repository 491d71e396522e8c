package repositories

import (
	"context"

	"github.com/google/uuid"
	"startup-platform.backend/internal/domain/entities"
)

// LikeRepository defines like data operations. The (user, startup) pair is
// unique at the storage layer.
type LikeRepository interface {
	Get(ctx context.Context, userID, startupID uuid.UUID) (*entities.Like, error)
	Create(ctx context.Context, like *entities.Like) error
	Delete(ctx context.Context, userID, startupID uuid.UUID) error
}

// CommentRepository defines comment data operations. Comments are append-only.
type CommentRepository interface {
	Create(ctx context.Context, comment *entities.Comment) error
	// ListPublicByStartup returns public comments newest first with the total
	// public count, author name and role resolved.
	ListPublicByStartup(ctx context.Context, startupID uuid.UUID, skip, limit int) ([]*entities.Comment, int64, error)
}
