package repositories

import (
	"context"

	"github.com/google/uuid"
	"startup-platform.backend/internal/domain/entities"
)

// AnalyticsRepository defines analytics event operations. Events are
// append-only and never updated or deleted.
type AnalyticsRepository interface {
	Append(ctx context.Context, event *entities.AnalyticsEvent) error
	// ListRecentByStartup returns up to limit events for the startup,
	// newest first.
	ListRecentByStartup(ctx context.Context, startupID uuid.UUID, limit int) ([]*entities.AnalyticsEvent, error)
}
