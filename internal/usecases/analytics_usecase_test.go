package usecases_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"startup-platform.backend/internal/domain/entities"
	domainerrors "startup-platform.backend/internal/domain/errors"
	"startup-platform.backend/internal/usecases"
)

type analyticsMocks struct {
	startupRepo   *MockStartupRepository
	analyticsRepo *MockAnalyticsRepository
	scoreRepo     *MockScoreRepository
	userRepo      *MockUserRepository
}

func newAnalyticsUsecase() (*usecases.AnalyticsUsecase, *analyticsMocks) {
	m := &analyticsMocks{
		startupRepo:   new(MockStartupRepository),
		analyticsRepo: new(MockAnalyticsRepository),
		scoreRepo:     new(MockScoreRepository),
		userRepo:      new(MockUserRepository),
	}
	return usecases.NewAnalyticsUsecase(m.startupRepo, m.analyticsRepo, m.scoreRepo, m.userRepo), m
}

func analyticsEvent(startupID uuid.UUID, eventType string, role entities.UserRole) *entities.AnalyticsEvent {
	return &entities.AnalyticsEvent{
		ID:        uuid.New(),
		EventType: eventType,
		UserID:    uuid.New(),
		UserRole:  role,
		StartupID: startupID,
		CreatedAt: time.Now(),
	}
}

func TestAnalyticsUsecase_GetStartupAnalytics(t *testing.T) {
	ctx := context.Background()

	t.Run("folds events by role and computes the conversion rate", func(t *testing.T) {
		uc, m := newAnalyticsUsecase()
		ownerID := uuid.New()
		startup := &entities.Startup{
			ID:            uuid.New(),
			OwnerID:       ownerID,
			ViewsCount:    40,
			LikesCount:    3,
			CommentsCount: 2,
		}

		events := []*entities.AnalyticsEvent{
			analyticsEvent(startup.ID, entities.EventView, entities.UserRoleInvestor),
			analyticsEvent(startup.ID, entities.EventView, entities.UserRoleInvestor),
			analyticsEvent(startup.ID, entities.EventView, entities.UserRoleMentor),
			analyticsEvent(startup.ID, entities.EventLike, entities.UserRoleInvestor),
			analyticsEvent(startup.ID, entities.EventComment, entities.UserRoleMentor),
			analyticsEvent(startup.ID, entities.EventContactClick, entities.UserRoleInvestor),
			analyticsEvent(startup.ID, entities.EventContactClick, entities.UserRoleInvestor),
		}

		m.startupRepo.On("GetByID", ctx, startup.ID).Return(startup, nil)
		m.analyticsRepo.On("ListRecentByStartup", ctx, startup.ID, 100).Return(events, nil)

		analytics, got, err := uc.GetStartupAnalytics(ctx, usecases.Viewer{ID: ownerID, Role: entities.UserRoleStartupOwner}, startup.ID)
		require.NoError(t, err)
		assert.Equal(t, startup.ID, got.ID)

		assert.Equal(t, 40, analytics.TotalViews)
		assert.Equal(t, 3, analytics.TotalLikes)
		assert.Equal(t, 2, analytics.TotalComments)
		assert.Equal(t, map[string]int{"investor": 2, "mentor": 1}, analytics.ViewsByRole)
		assert.Equal(t, map[string]int{"investor": 1}, analytics.LikesByRole)
		assert.Equal(t, 2, analytics.ContactClicks)
		// 2 contacts over 40 lifetime views
		assert.InDelta(t, 5.0, analytics.ConversionRate, 0.001)
		assert.Len(t, analytics.RecentEvents, 7)
	})

	t.Run("zero lifetime views means zero conversion", func(t *testing.T) {
		uc, m := newAnalyticsUsecase()
		ownerID := uuid.New()
		startup := &entities.Startup{ID: uuid.New(), OwnerID: ownerID, ViewsCount: 0}

		events := []*entities.AnalyticsEvent{
			analyticsEvent(startup.ID, entities.EventContactClick, entities.UserRoleInvestor),
		}
		m.startupRepo.On("GetByID", ctx, startup.ID).Return(startup, nil)
		m.analyticsRepo.On("ListRecentByStartup", ctx, startup.ID, 100).Return(events, nil)

		analytics, _, err := uc.GetStartupAnalytics(ctx, usecases.Viewer{ID: ownerID}, startup.ID)
		require.NoError(t, err)
		assert.Zero(t, analytics.ConversionRate)
		assert.Equal(t, 1, analytics.ContactClicks)
	})

	t.Run("caps the raw event list at twenty", func(t *testing.T) {
		uc, m := newAnalyticsUsecase()
		ownerID := uuid.New()
		startup := &entities.Startup{ID: uuid.New(), OwnerID: ownerID, ViewsCount: 60}

		events := make([]*entities.AnalyticsEvent, 0, 60)
		for i := 0; i < 60; i++ {
			events = append(events, analyticsEvent(startup.ID, entities.EventView, entities.UserRoleInvestor))
		}
		m.startupRepo.On("GetByID", ctx, startup.ID).Return(startup, nil)
		m.analyticsRepo.On("ListRecentByStartup", ctx, startup.ID, 100).Return(events, nil)

		analytics, _, err := uc.GetStartupAnalytics(ctx, usecases.Viewer{ID: ownerID}, startup.ID)
		require.NoError(t, err)
		assert.Len(t, analytics.RecentEvents, 20)
		assert.Equal(t, 60, analytics.ViewsByRole["investor"])
	})

	t.Run("only the owner or an admin may read", func(t *testing.T) {
		uc, m := newAnalyticsUsecase()
		startup := &entities.Startup{ID: uuid.New(), OwnerID: uuid.New()}
		m.startupRepo.On("GetByID", ctx, startup.ID).Return(startup, nil)

		_, _, err := uc.GetStartupAnalytics(ctx, usecases.Viewer{ID: uuid.New(), Role: entities.UserRoleInvestor}, startup.ID)
		assert.ErrorIs(t, err, domainerrors.ErrForbidden)
		m.analyticsRepo.AssertNotCalled(t, "ListRecentByStartup")
	})

	t.Run("admin may read any startup", func(t *testing.T) {
		uc, m := newAnalyticsUsecase()
		startup := &entities.Startup{ID: uuid.New(), OwnerID: uuid.New()}
		m.startupRepo.On("GetByID", ctx, startup.ID).Return(startup, nil)
		m.analyticsRepo.On("ListRecentByStartup", ctx, startup.ID, 100).Return([]*entities.AnalyticsEvent{}, nil)

		_, _, err := uc.GetStartupAnalytics(ctx, usecases.Viewer{ID: uuid.New(), Role: entities.UserRoleAdmin}, startup.ID)
		assert.NoError(t, err)
	})

	t.Run("unknown startup", func(t *testing.T) {
		uc, m := newAnalyticsUsecase()
		id := uuid.New()
		m.startupRepo.On("GetByID", ctx, id).Return(nil, domainerrors.ErrNotFound)

		_, _, err := uc.GetStartupAnalytics(ctx, usecases.Viewer{ID: uuid.New()}, id)
		assert.ErrorIs(t, err, domainerrors.ErrNotFound)
	})
}

func TestAnalyticsUsecase_GetStartupMatches(t *testing.T) {
	ctx := context.Background()

	t.Run("resolves the cached lists", func(t *testing.T) {
		uc, m := newAnalyticsUsecase()
		ownerID := uuid.New()
		startup := &entities.Startup{ID: uuid.New(), OwnerID: ownerID}

		investor := investorWith([]string{"agrotech"}, nil)
		mentor := mentorWith([]string{"agrotech"})
		record := &entities.ScoreRecord{
			StartupID:        startup.ID,
			OverallScore:     84,
			MatchedInvestors: []uuid.UUID{investor.ID},
			MatchedMentors:   []uuid.UUID{mentor.ID},
			MatchReasons:     map[string]string{"investors": "category agrotech"},
		}

		m.startupRepo.On("GetByID", ctx, startup.ID).Return(startup, nil)
		m.scoreRepo.On("GetByStartupID", ctx, startup.ID).Return(record, nil)
		m.userRepo.On("GetManyByIDs", ctx, []uuid.UUID{investor.ID}).Return([]*entities.User{investor}, nil)
		m.userRepo.On("GetManyByIDs", ctx, []uuid.UUID{mentor.ID}).Return([]*entities.User{mentor}, nil)

		matches, err := uc.GetStartupMatches(ctx, usecases.Viewer{ID: ownerID}, startup.ID)
		require.NoError(t, err)
		assert.Equal(t, 84.0, matches.OverallScore)
		require.Len(t, matches.Investors, 1)
		assert.Equal(t, investor.ID, matches.Investors[0].ID)
		require.Len(t, matches.Mentors, 1)
		assert.Equal(t, "category agrotech", matches.MatchReasons["investors"])
	})

	t.Run("missing score record", func(t *testing.T) {
		uc, m := newAnalyticsUsecase()
		ownerID := uuid.New()
		startup := &entities.Startup{ID: uuid.New(), OwnerID: ownerID}

		m.startupRepo.On("GetByID", ctx, startup.ID).Return(startup, nil)
		m.scoreRepo.On("GetByStartupID", ctx, startup.ID).Return(nil, domainerrors.ErrNotFound)

		_, err := uc.GetStartupMatches(ctx, usecases.Viewer{ID: ownerID}, startup.ID)
		assert.ErrorIs(t, err, domainerrors.ErrNotFound)
	})

	t.Run("strangers are rejected", func(t *testing.T) {
		uc, m := newAnalyticsUsecase()
		startup := &entities.Startup{ID: uuid.New(), OwnerID: uuid.New()}
		m.startupRepo.On("GetByID", ctx, startup.ID).Return(startup, nil)

		_, err := uc.GetStartupMatches(ctx, usecases.Viewer{ID: uuid.New(), Role: entities.UserRoleMentor}, startup.ID)
		assert.ErrorIs(t, err, domainerrors.ErrForbidden)
	})
}
