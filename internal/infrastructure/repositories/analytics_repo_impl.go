package repositories

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"startup-platform.backend/internal/domain/entities"
	"startup-platform.backend/internal/infrastructure/models"
)

// AnalyticsRepository implements the append-only analytics event log
type AnalyticsRepository struct {
	db *gorm.DB
}

// NewAnalyticsRepository creates a new analytics repository
func NewAnalyticsRepository(db *gorm.DB) *AnalyticsRepository {
	return &AnalyticsRepository{db: db}
}

// Append inserts an event
func (r *AnalyticsRepository) Append(ctx context.Context, event *entities.AnalyticsEvent) error {
	m := &models.AnalyticsEvent{
		ID:        event.ID,
		EventType: event.EventType,
		UserID:    event.UserID,
		UserRole:  string(event.UserRole),
		StartupID: event.StartupID,
		Metadata:  event.Metadata,
		CreatedAt: event.CreatedAt,
	}
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	event.ID = m.ID
	event.CreatedAt = m.CreatedAt
	return nil
}

// ListRecentByStartup returns up to limit events for the startup, newest first
func (r *AnalyticsRepository) ListRecentByStartup(ctx context.Context, startupID uuid.UUID, limit int) ([]*entities.AnalyticsEvent, error) {
	var ms []models.AnalyticsEvent
	if err := r.db.WithContext(ctx).
		Where("startup_id = ?", startupID).
		Order("created_at DESC").
		Limit(limit).
		Find(&ms).Error; err != nil {
		return nil, err
	}
	events := make([]*entities.AnalyticsEvent, 0, len(ms))
	for i := range ms {
		events = append(events, &entities.AnalyticsEvent{
			ID:        ms[i].ID,
			EventType: ms[i].EventType,
			UserID:    ms[i].UserID,
			UserRole:  entities.UserRole(ms[i].UserRole),
			StartupID: ms[i].StartupID,
			Metadata:  ms[i].Metadata,
			CreatedAt: ms[i].CreatedAt,
		})
	}
	return events, nil
}
