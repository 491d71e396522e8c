package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is the flattened users table. Role-specific columns stay NULL for
// roles they do not apply to; the entity layer folds them into profiles.
type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	Email        string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	Name         string    `gorm:"type:varchar(100);not null"`
	PasswordHash string    `gorm:"type:varchar(255);not null"`
	Role         string    `gorm:"type:varchar(50);not null"`
	Bio          *string   `gorm:"type:text"`
	Skills       []string  `gorm:"serializer:json"`
	// No column default: gorm skips zero-value fields that carry one, which
	// would resurrect deactivated users on insert.
	IsActive bool

	TelegramID       *string `gorm:"type:varchar(100);uniqueIndex"`
	TelegramUsername *string `gorm:"type:varchar(100);index"`
	TelegramLinked   bool    `gorm:"default:false"`
	TelegramLinkedAt *time.Time

	InvestmentInterests []string `gorm:"serializer:json"`
	InvestmentRegions   []string `gorm:"serializer:json"`

	MentorSpecialties  []string `gorm:"serializer:json"`
	MentorExperience   *int
	MentorHourlyRate   *float64
	MentorAvailability *bool `gorm:"default:true"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}
