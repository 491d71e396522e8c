package entities

import (
	"time"

	"github.com/google/uuid"
)

// Analytics event types.
const (
	EventView         = "view"
	EventLike         = "like"
	EventComment      = "comment"
	EventContactClick = "contact_click"
)

// AnalyticsEvent is an immutable, append-only fact about user activity on a
// startup. The actor role is snapshotted at event time.
type AnalyticsEvent struct {
	ID        uuid.UUID              `json:"id"`
	EventType string                 `json:"type"`
	UserID    uuid.UUID              `json:"userId"`
	UserRole  UserRole               `json:"userRole"`
	StartupID uuid.UUID              `json:"startupId"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	CreatedAt time.Time              `json:"timestamp"`
}

// StartupAnalytics is the aggregated analytics payload for a startup owner.
type StartupAnalytics struct {
	TotalViews     int                    `json:"totalViews"`
	TotalLikes     int                    `json:"totalLikes"`
	TotalComments  int                    `json:"totalComments"`
	ViewsByRole    map[string]int         `json:"viewsByRole"`
	LikesByRole    map[string]int         `json:"likesByRole"`
	ContactClicks  int                    `json:"contactClicks"`
	ConversionRate float64                `json:"conversionRate"`
	AIScore        float64                `json:"aiScore"`
	Readiness      string                 `json:"investmentReadiness"`
	RecentEvents   []AnalyticsEventRecord `json:"recentEvents"`
}

// AnalyticsEventRecord is the raw event shape exposed for display.
type AnalyticsEventRecord struct {
	Type      string                 `json:"type"`
	UserRole  UserRole               `json:"userRole"`
	Timestamp time.Time              `json:"timestamp"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
}
