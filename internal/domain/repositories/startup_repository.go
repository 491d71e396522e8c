package repositories

import (
	"context"

	"github.com/google/uuid"
	"startup-platform.backend/internal/domain/entities"
)

// StartupRepository defines startup data operations
type StartupRepository interface {
	Create(ctx context.Context, startup *entities.Startup) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Startup, error)
	// GetPublishedByID returns the startup only when published and approved.
	GetPublishedByID(ctx context.Context, id uuid.UUID) (*entities.Startup, error)
	// ListPublished applies the catalog filter over published+approved rows,
	// ordered by ai_score desc then created_at desc.
	ListPublished(ctx context.Context, filter entities.StartupFilter) ([]*entities.Startup, int64, error)
	// IncrementViews bumps views_count atomically.
	IncrementViews(ctx context.Context, id uuid.UUID) error
	// AddLikes moves likes_count by delta, floored at zero.
	AddLikes(ctx context.Context, id uuid.UUID, delta int) error
	// AddComments moves comments_count by delta.
	AddComments(ctx context.Context, id uuid.UUID, delta int) error
	// UpdateScore stores a re-blended overall score.
	UpdateScore(ctx context.Context, id uuid.UUID, score float64) error
}
