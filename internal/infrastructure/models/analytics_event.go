package models

import (
	"time"

	"github.com/google/uuid"
)

// AnalyticsEvent rows are append-only; there is no UpdatedAt or DeletedAt.
type AnalyticsEvent struct {
	ID        uuid.UUID              `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	EventType string                 `gorm:"type:varchar(100);not null;index"`
	UserID    uuid.UUID              `gorm:"type:uuid;index"`
	UserRole  string                 `gorm:"type:varchar(50)"`
	StartupID uuid.UUID              `gorm:"type:uuid;not null;index"`
	Metadata  map[string]interface{} `gorm:"serializer:json"`
	CreatedAt time.Time              `gorm:"index"`
}
