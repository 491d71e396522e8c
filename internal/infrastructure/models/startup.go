package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Startup struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	Name             string    `gorm:"type:varchar(200);not null"`
	Description      string    `gorm:"type:text;not null"`
	ShortDescription string    `gorm:"type:varchar(500)"`
	Stage            string    `gorm:"type:varchar(50);not null;index"`
	Category         string    `gorm:"type:varchar(100);not null;index"`
	TeamSize         *int

	ProjectCost     *float64
	MonthlyExpenses *float64
	InvestmentAsked *float64

	TractionMetrics map[string]float64 `gorm:"serializer:json"`
	TractionScore   float64            `gorm:"default:0"`

	MarketSize     *string `gorm:"type:varchar(100)"`
	TargetAudience *string `gorm:"type:text"`
	Region         *string `gorm:"type:varchar(100);index"`

	TelegramContact string  `gorm:"type:varchar(100);not null"`
	Website         *string `gorm:"type:varchar(255)"`
	Github          *string `gorm:"type:varchar(255)"`
	ContactEmail    *string `gorm:"type:varchar(255)"`

	ViewsCount    int `gorm:"default:0"`
	LikesCount    int `gorm:"default:0"`
	CommentsCount int `gorm:"default:0"`

	AIScore             float64 `gorm:"default:0;index"`
	InvestmentReadiness string  `gorm:"type:varchar(50);default:'low'"`

	OwnerID     uuid.UUID `gorm:"type:uuid;not null;index"`
	IsPublished bool      `gorm:"default:false"`
	IsApproved  bool      `gorm:"default:false"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}
