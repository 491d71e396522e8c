package repositories

import (
	"context"

	"github.com/google/uuid"
	"startup-platform.backend/internal/domain/entities"
)

// ScoreRepository defines score record data operations
type ScoreRepository interface {
	Create(ctx context.Context, record *entities.ScoreRecord) error
	GetByStartupID(ctx context.Context, startupID uuid.UUID) (*entities.ScoreRecord, error)
	// UpdateOverall stores a re-blended overall score.
	UpdateOverall(ctx context.Context, startupID uuid.UUID, score float64) error
	// UpdateMatches replaces the cached match lists and reasons.
	UpdateMatches(ctx context.Context, startupID uuid.UUID, investors, mentors []uuid.UUID, reasons map[string]string) error
}
