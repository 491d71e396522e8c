package usecases

import (
	"context"
	"errors"
	"math"

	"github.com/google/uuid"
	"startup-platform.backend/internal/domain/entities"
	domainerrors "startup-platform.backend/internal/domain/errors"
	"startup-platform.backend/internal/domain/repositories"
)

const (
	// analyticsWindow bounds how many recent events feed the aggregation.
	analyticsWindow = 100
	// recentEventsShown is how many raw events the payload exposes.
	recentEventsShown = 20
)

// StartupMatches is the cached matching payload for a startup owner.
type StartupMatches struct {
	Startup      *entities.Startup   `json:"startup"`
	Investors    []*entities.User    `json:"investors"`
	Mentors      []*entities.User    `json:"mentors"`
	MatchReasons map[string]string   `json:"matchReasons,omitempty"`
	OverallScore float64             `json:"overallScore"`
}

// AnalyticsUsecase aggregates engagement analytics and exposes cached matches
type AnalyticsUsecase struct {
	startupRepo   repositories.StartupRepository
	analyticsRepo repositories.AnalyticsRepository
	scoreRepo     repositories.ScoreRepository
	userRepo      repositories.UserRepository
}

// NewAnalyticsUsecase creates a new analytics usecase
func NewAnalyticsUsecase(
	startupRepo repositories.StartupRepository,
	analyticsRepo repositories.AnalyticsRepository,
	scoreRepo repositories.ScoreRepository,
	userRepo repositories.UserRepository,
) *AnalyticsUsecase {
	return &AnalyticsUsecase{
		startupRepo:   startupRepo,
		analyticsRepo: analyticsRepo,
		scoreRepo:     scoreRepo,
		userRepo:      userRepo,
	}
}

// GetStartupAnalytics folds the recent event window into per-role counts.
// Only the owner or an admin may read it. The conversion rate divides contact
// clicks by the startup's lifetime view counter, not the windowed count.
func (u *AnalyticsUsecase) GetStartupAnalytics(ctx context.Context, requester Viewer, startupID uuid.UUID) (*entities.StartupAnalytics, *entities.Startup, error) {
	startup, err := u.startupRepo.GetByID(ctx, startupID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, nil, domainerrors.NotFound("startup not found")
		}
		return nil, nil, err
	}
	if startup.OwnerID != requester.ID && requester.Role != entities.UserRoleAdmin {
		return nil, nil, domainerrors.Forbidden("no access to this startup's analytics")
	}

	events, err := u.analyticsRepo.ListRecentByStartup(ctx, startupID, analyticsWindow)
	if err != nil {
		return nil, nil, err
	}

	viewsByRole := map[string]int{}
	likesByRole := map[string]int{}
	contactClicks := 0
	for _, ev := range events {
		switch ev.EventType {
		case entities.EventView:
			viewsByRole[string(ev.UserRole)]++
		case entities.EventLike:
			likesByRole[string(ev.UserRole)]++
		case entities.EventContactClick:
			contactClicks++
		}
	}

	conversionRate := 0.0
	if startup.ViewsCount > 0 {
		conversionRate = math.Round(float64(contactClicks)/float64(startup.ViewsCount)*100*100) / 100
	}

	recent := make([]entities.AnalyticsEventRecord, 0, recentEventsShown)
	for i, ev := range events {
		if i >= recentEventsShown {
			break
		}
		recent = append(recent, entities.AnalyticsEventRecord{
			Type:      ev.EventType,
			UserRole:  ev.UserRole,
			Timestamp: ev.CreatedAt,
			Metadata:  ev.Metadata,
		})
	}

	return &entities.StartupAnalytics{
		TotalViews:     startup.ViewsCount,
		TotalLikes:     startup.LikesCount,
		TotalComments:  startup.CommentsCount,
		ViewsByRole:    viewsByRole,
		LikesByRole:    likesByRole,
		ContactClicks:  contactClicks,
		ConversionRate: conversionRate,
		AIScore:        startup.AIScore,
		Readiness:      startup.InvestmentReadiness,
		RecentEvents:   recent,
	}, startup, nil
}

// GetStartupMatches resolves the cached match lists for the owner or an
// admin. IDs that no longer resolve to users are dropped.
func (u *AnalyticsUsecase) GetStartupMatches(ctx context.Context, requester Viewer, startupID uuid.UUID) (*StartupMatches, error) {
	startup, err := u.startupRepo.GetByID(ctx, startupID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("startup not found")
		}
		return nil, err
	}
	if startup.OwnerID != requester.ID && requester.Role != entities.UserRoleAdmin {
		return nil, domainerrors.Forbidden("no access to this startup's matching")
	}

	record, err := u.scoreRepo.GetByStartupID(ctx, startupID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("score record not found")
		}
		return nil, err
	}

	investors, err := u.userRepo.GetManyByIDs(ctx, record.MatchedInvestors)
	if err != nil {
		return nil, err
	}
	mentors, err := u.userRepo.GetManyByIDs(ctx, record.MatchedMentors)
	if err != nil {
		return nil, err
	}

	return &StartupMatches{
		Startup:      startup,
		Investors:    investors,
		Mentors:      mentors,
		MatchReasons: record.MatchReasons,
		OverallScore: record.OverallScore,
	}, nil
}
