package entities

import (
	"time"

	"github.com/google/uuid"
)

// ScoreRecord is the persisted analysis of a startup, one-to-one with it.
// OverallScore starts as the scoring engine output and is re-blended with
// engagement over time. The matched ID lists are a cache recomputed by the
// matching worker.
type ScoreRecord struct {
	ID        uuid.UUID `json:"id"`
	StartupID uuid.UUID `json:"startupId"`

	OverallScore    float64 `json:"overallScore"`
	TeamScore       float64 `json:"teamScore"`
	MarketScore     float64 `json:"marketScore"`
	TractionScore   float64 `json:"tractionScore"`
	FinancialScore  float64 `json:"financialScore"`
	TechnologyScore float64 `json:"technologyScore"`

	Strengths       []string `json:"strengths"`
	Weaknesses      []string `json:"weaknesses"`
	Recommendations []string `json:"recommendations"`

	MatchedInvestors []uuid.UUID       `json:"matchedInvestors"`
	MatchedMentors   []uuid.UUID       `json:"matchedMentors"`
	MatchReasons     map[string]string `json:"matchReasons,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
