package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// StartupStage represents the lifecycle stage of a startup
type StartupStage string

const (
	StageIdea    StartupStage = "idea"
	StageMVP     StartupStage = "mvp"
	StageBeta    StartupStage = "beta"
	StageReady   StartupStage = "ready"
	StageScaling StartupStage = "scaling"
)

// ValidStage reports whether s is a known lifecycle stage.
func ValidStage(s StartupStage) bool {
	switch s {
	case StageIdea, StageMVP, StageBeta, StageReady, StageScaling:
		return true
	}
	return false
}

// InvestmentReadiness labels derived from the overall score.
const (
	ReadinessLow    = "low"
	ReadinessMedium = "medium"
	ReadinessHigh   = "high"
)

// RecognizedTractionKeys are the metric names a founder may submit.
var RecognizedTractionKeys = map[string]struct{}{
	"users":        {},
	"active_users": {},
	"revenue":      {},
	"growth":       {},
	"orders":       {},
	"downloads":    {},
}

// HasRecognizedTractionKey reports whether at least one key of a non-empty
// metrics map is recognized.
func HasRecognizedTractionKey(metrics map[string]float64) bool {
	for k := range metrics {
		if _, ok := RecognizedTractionKeys[k]; ok {
			return true
		}
	}
	return false
}

// Startup represents a startup project owned by exactly one user.
type Startup struct {
	ID               uuid.UUID    `json:"id"`
	Name             string       `json:"name"`
	Description      string       `json:"description"`
	ShortDescription string       `json:"shortDescription"`
	Stage            StartupStage `json:"stage"`
	Category         string       `json:"category"`
	TeamSize         null.Int     `json:"teamSize,omitempty"`

	ProjectCost     null.Float64 `json:"projectCost,omitempty"`
	MonthlyExpenses null.Float64 `json:"monthlyExpenses,omitempty"`
	InvestmentAsked null.Float64 `json:"investmentAsked,omitempty"`

	TractionMetrics map[string]float64 `json:"tractionMetrics,omitempty"`
	TractionScore   float64            `json:"tractionScore"`

	MarketSize     null.String `json:"marketSize,omitempty"`
	TargetAudience null.String `json:"targetAudience,omitempty"`
	Region         null.String `json:"region,omitempty"`

	TelegramContact string      `json:"telegramContact"`
	Website         null.String `json:"website,omitempty"`
	Github          null.String `json:"github,omitempty"`
	ContactEmail    null.String `json:"contactEmail,omitempty"`

	ViewsCount    int `json:"viewsCount"`
	LikesCount    int `json:"likesCount"`
	CommentsCount int `json:"commentsCount"`

	AIScore             float64 `json:"aiScore"`
	InvestmentReadiness string  `json:"investmentReadiness"`

	OwnerID     uuid.UUID `json:"ownerId"`
	IsPublished bool      `json:"isPublished"`
	IsApproved  bool      `json:"isApproved"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CreateStartupInput represents input for creating a startup.
type CreateStartupInput struct {
	Name             string             `json:"name" binding:"required,min=3,max=200"`
	Description      string             `json:"description" binding:"required,min=50"`
	ShortDescription string             `json:"shortDescription" binding:"required,max=500"`
	Stage            string             `json:"stage" binding:"required"`
	Category         string             `json:"category" binding:"required,min=2"`
	TeamSize         *int               `json:"teamSize,omitempty"`
	ProjectCost      *float64           `json:"projectCost,omitempty"`
	MonthlyExpenses  *float64           `json:"monthlyExpenses,omitempty"`
	InvestmentAsked  *float64           `json:"investmentAsked,omitempty"`
	TractionMetrics  map[string]float64 `json:"tractionMetrics,omitempty"`
	MarketSize       *string            `json:"marketSize,omitempty"`
	TargetAudience   *string            `json:"targetAudience,omitempty"`
	Region           *string            `json:"region,omitempty"`
	TelegramContact  string             `json:"telegramContact" binding:"required"`
	Website          *string            `json:"website,omitempty"`
	Github           *string            `json:"github,omitempty"`
	ContactEmail     *string            `json:"contactEmail,omitempty"`
}

// StartupFilter narrows the public catalog listing.
type StartupFilter struct {
	Category string
	Stage    string
	Region   string
	MinScore float64
	Skip     int
	Limit    int
}

// StartupCard is the compact listing payload for the catalog.
type StartupCard struct {
	ID               uuid.UUID    `json:"id"`
	Name             string       `json:"name"`
	ShortDescription string       `json:"shortDescription"`
	Stage            StartupStage `json:"stage"`
	Category         string       `json:"category"`
	AIScore          float64      `json:"aiScore"`
	ViewsCount       int          `json:"viewsCount"`
	LikesCount       int          `json:"likesCount"`
	Region           null.String  `json:"region,omitempty"`
	CreatedAt        time.Time    `json:"createdAt"`
}

// Card projects a startup onto the catalog listing shape.
func (s *Startup) Card() StartupCard {
	return StartupCard{
		ID:               s.ID,
		Name:             s.Name,
		ShortDescription: s.ShortDescription,
		Stage:            s.Stage,
		Category:         s.Category,
		AIScore:          s.AIScore,
		ViewsCount:       s.ViewsCount,
		LikesCount:       s.LikesCount,
		Region:           s.Region,
		CreatedAt:        s.CreatedAt,
	}
}
