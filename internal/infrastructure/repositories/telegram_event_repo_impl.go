package repositories

import (
	"context"

	"gorm.io/gorm"
	"startup-platform.backend/internal/domain/entities"
	"startup-platform.backend/internal/infrastructure/models"
)

// TelegramEventRepository implements the append-only delivery audit log
type TelegramEventRepository struct {
	db *gorm.DB
}

// NewTelegramEventRepository creates a new telegram event repository
func NewTelegramEventRepository(db *gorm.DB) *TelegramEventRepository {
	return &TelegramEventRepository{db: db}
}

// Append inserts an audit record
func (r *TelegramEventRepository) Append(ctx context.Context, event *entities.TelegramEvent) error {
	m := &models.TelegramEvent{
		ID:            event.ID,
		EventType:     event.EventType,
		UserID:        event.UserID,
		RelatedUserID: event.RelatedUserID,
		StartupID:     event.StartupID,
		Metadata:      event.Metadata,
		CreatedAt:     event.CreatedAt,
	}
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	event.ID = m.ID
	event.CreatedAt = m.CreatedAt
	return nil
}
