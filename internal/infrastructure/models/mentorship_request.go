package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MentorshipRequest struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	MenteeID  uuid.UUID  `gorm:"type:uuid;not null;index"`
	MentorID  uuid.UUID  `gorm:"type:uuid;not null;index"`
	StartupID *uuid.UUID `gorm:"type:uuid"`

	RequestMessage  *string  `gorm:"type:text"`
	Goals           []string `gorm:"serializer:json"`
	Duration        string   `gorm:"type:varchar(50);default:'1 month'"`
	Status          string   `gorm:"type:varchar(50);not null;default:'pending';index"`
	ResponseMessage *string  `gorm:"type:text"`

	CreatedAt   time.Time
	UpdatedAt   time.Time
	CompletedAt *time.Time
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}
