package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ScoreRecord struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	StartupID uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`

	OverallScore    float64 `gorm:"not null"`
	TeamScore       float64
	MarketScore     float64
	TractionScore   float64
	FinancialScore  float64
	TechnologyScore float64

	Strengths       []string `gorm:"serializer:json"`
	Weaknesses      []string `gorm:"serializer:json"`
	Recommendations []string `gorm:"serializer:json"`

	MatchedInvestors []uuid.UUID       `gorm:"serializer:json"`
	MatchedMentors   []uuid.UUID       `gorm:"serializer:json"`
	MatchReasons     map[string]string `gorm:"serializer:json"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}
