package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/volatiletech/null/v8"
	"startup-platform.backend/internal/domain/entities"
	domainerrors "startup-platform.backend/internal/domain/errors"
)

func seedStartup(t *testing.T, repo *StartupRepository, mutate func(*entities.Startup)) *entities.Startup {
	t.Helper()
	s := &entities.Startup{
		ID:                  uuid.New(),
		Name:                "Acme AI",
		Description:         "A long enough description of what the startup actually does for customers.",
		ShortDescription:    "AI for acme",
		Stage:               entities.StageMVP,
		Category:            "ai",
		TeamSize:            null.IntFrom(4),
		TractionMetrics:     map[string]float64{"users": 1500},
		MarketSize:          null.StringFrom("1B"),
		Region:              null.StringFrom("eu"),
		TelegramContact:     "@acme",
		AIScore:             70,
		InvestmentReadiness: entities.ReadinessMedium,
		OwnerID:             uuid.New(),
		IsPublished:         true,
		IsApproved:          true,
		CreatedAt:           time.Now(),
		UpdatedAt:           time.Now(),
	}
	if mutate != nil {
		mutate(s)
	}
	require.NoError(t, repo.Create(context.Background(), s))
	return s
}

func TestStartupRepository_CreateGet(t *testing.T) {
	db := newTestDB(t)
	createStartupTable(t, db)
	repo := NewStartupRepository(db)
	ctx := context.Background()

	s := seedStartup(t, repo, nil)

	got, err := repo.GetByID(ctx, s.ID)
	require.NoError(t, err)
	require.Equal(t, "Acme AI", got.Name)
	require.Equal(t, 4, got.TeamSize.Int)
	require.Equal(t, map[string]float64{"users": 1500}, got.TractionMetrics)
	require.Equal(t, "eu", got.Region.String)

	pub, err := repo.GetPublishedByID(ctx, s.ID)
	require.NoError(t, err)
	require.Equal(t, s.ID, pub.ID)
}

func TestStartupRepository_GetPublishedHidesDrafts(t *testing.T) {
	db := newTestDB(t)
	createStartupTable(t, db)
	repo := NewStartupRepository(db)
	ctx := context.Background()

	draft := seedStartup(t, repo, func(s *entities.Startup) {
		s.IsPublished = false
	})

	_, err := repo.GetPublishedByID(ctx, draft.ID)
	require.ErrorIs(t, err, domainerrors.ErrNotFound)

	// still reachable through the unrestricted getter
	got, err := repo.GetByID(ctx, draft.ID)
	require.NoError(t, err)
	require.False(t, got.IsPublished)
}

func TestStartupRepository_ListPublishedFilterAndOrder(t *testing.T) {
	db := newTestDB(t)
	createStartupTable(t, db)
	repo := NewStartupRepository(db)
	ctx := context.Background()

	seedStartup(t, repo, func(s *entities.Startup) {
		s.Name = "Low"
		s.AIScore = 40
		s.Category = "fintech"
	})
	seedStartup(t, repo, func(s *entities.Startup) {
		s.Name = "High"
		s.AIScore = 90
		s.Category = "fintech"
	})
	seedStartup(t, repo, func(s *entities.Startup) {
		s.Name = "Hidden"
		s.Category = "fintech"
		s.IsApproved = false
	})
	seedStartup(t, repo, func(s *entities.Startup) {
		s.Name = "OtherCategory"
		s.Category = "health"
	})

	items, total, err := repo.ListPublished(ctx, entities.StartupFilter{Category: "fintech", Limit: 10})
	require.NoError(t, err)
	require.Equal(t, int64(2), total)
	require.Len(t, items, 2)
	require.Equal(t, "High", items[0].Name)
	require.Equal(t, "Low", items[1].Name)

	items, total, err = repo.ListPublished(ctx, entities.StartupFilter{MinScore: 80, Limit: 10})
	require.NoError(t, err)
	require.Equal(t, int64(1), total)
	require.Equal(t, "High", items[0].Name)

	items, total, err = repo.ListPublished(ctx, entities.StartupFilter{Region: "eu", Skip: 1, Limit: 1})
	require.NoError(t, err)
	require.Equal(t, int64(3), total)
	require.Len(t, items, 1)
}

func TestStartupRepository_Counters(t *testing.T) {
	db := newTestDB(t)
	createStartupTable(t, db)
	repo := NewStartupRepository(db)
	ctx := context.Background()

	s := seedStartup(t, repo, nil)

	require.NoError(t, repo.IncrementViews(ctx, s.ID))
	require.NoError(t, repo.IncrementViews(ctx, s.ID))
	require.NoError(t, repo.AddLikes(ctx, s.ID, 1))
	require.NoError(t, repo.AddComments(ctx, s.ID, 1))

	got, err := repo.GetByID(ctx, s.ID)
	require.NoError(t, err)
	require.Equal(t, 2, got.ViewsCount)
	require.Equal(t, 1, got.LikesCount)
	require.Equal(t, 1, got.CommentsCount)

	// the like counter never goes below zero
	require.NoError(t, repo.AddLikes(ctx, s.ID, -5))
	got, err = repo.GetByID(ctx, s.ID)
	require.NoError(t, err)
	require.Equal(t, 0, got.LikesCount)
}

func TestStartupRepository_UpdateScore(t *testing.T) {
	db := newTestDB(t)
	createStartupTable(t, db)
	repo := NewStartupRepository(db)
	ctx := context.Background()

	s := seedStartup(t, repo, nil)
	require.NoError(t, repo.UpdateScore(ctx, s.ID, 83.5))

	got, err := repo.GetByID(ctx, s.ID)
	require.NoError(t, err)
	require.InDelta(t, 83.5, got.AIScore, 0.0001)
}

func TestStartupRepository_NotFoundBranches(t *testing.T) {
	db := newTestDB(t)
	createStartupTable(t, db)
	repo := NewStartupRepository(db)
	ctx := context.Background()
	id := uuid.New()

	_, err := repo.GetByID(ctx, id)
	require.ErrorIs(t, err, domainerrors.ErrNotFound)
	require.ErrorIs(t, repo.IncrementViews(ctx, id), domainerrors.ErrNotFound)
	require.ErrorIs(t, repo.AddLikes(ctx, id, 1), domainerrors.ErrNotFound)
	require.ErrorIs(t, repo.AddComments(ctx, id, 1), domainerrors.ErrNotFound)
	require.ErrorIs(t, repo.UpdateScore(ctx, id, 50), domainerrors.ErrNotFound)
}

func TestStartupRepository_DBErrorBranches(t *testing.T) {
	db := newTestDB(t)
	// intentionally skip table creation
	repo := NewStartupRepository(db)
	ctx := context.Background()

	_, err := repo.GetByID(ctx, uuid.New())
	require.Error(t, err)
	_, _, err = repo.ListPublished(ctx, entities.StartupFilter{Limit: 10})
	require.Error(t, err)
	require.Error(t, repo.IncrementViews(ctx, uuid.New()))
}
