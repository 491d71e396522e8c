package models

import (
	"time"

	"github.com/google/uuid"
)

// TelegramEvent rows are an append-only audit log; metadata only, no message
// bodies.
type TelegramEvent struct {
	ID            uuid.UUID              `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	EventType     string                 `gorm:"type:varchar(100);not null;index"`
	UserID        *uuid.UUID             `gorm:"type:uuid;index"`
	RelatedUserID *uuid.UUID             `gorm:"type:uuid"`
	StartupID     *uuid.UUID             `gorm:"type:uuid"`
	Metadata      map[string]interface{} `gorm:"serializer:json"`
	CreatedAt     time.Time
}
