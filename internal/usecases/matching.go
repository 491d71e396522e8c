package usecases

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	domainerrors "startup-platform.backend/internal/domain/errors"
	"startup-platform.backend/internal/domain/repositories"
	"startup-platform.backend/pkg/logger"
)

// matchNotifyLimit caps how many matched investors get a notification per
// refresh.
const matchNotifyLimit = 5

// MatchResult carries matched user IDs plus an explicit soft-fail flag.
// Failed means the directory could not be consulted and the empty list is a
// degradation, not a verdict.
type MatchResult struct {
	IDs    []uuid.UUID
	Failed bool
}

// MatchingService pairs startups with investors and mentors. Lookups degrade
// to empty results; a matching failure never propagates as a request error.
type MatchingService struct {
	startupRepo repositories.StartupRepository
	userRepo    repositories.UserRepository
	scoreRepo   repositories.ScoreRepository
	telegram    *TelegramUsecase
}

// NewMatchingService creates a new matching service
func NewMatchingService(
	startupRepo repositories.StartupRepository,
	userRepo repositories.UserRepository,
	scoreRepo repositories.ScoreRepository,
	telegram *TelegramUsecase,
) *MatchingService {
	return &MatchingService{
		startupRepo: startupRepo,
		userRepo:    userRepo,
		scoreRepo:   scoreRepo,
		telegram:    telegram,
	}
}

// MatchInvestors returns active investors whose interests contain the
// startup's category, or whose regions contain its region. The region leg is
// skipped when the startup has no region.
func (s *MatchingService) MatchInvestors(ctx context.Context, startupID uuid.UUID) MatchResult {
	startup, err := s.startupRepo.GetByID(ctx, startupID)
	if err != nil {
		if !errors.Is(err, domainerrors.ErrNotFound) {
			logger.Error(ctx, "investor matching: startup lookup failed",
				zap.String("startup_id", startupID.String()), zap.Error(err))
			return MatchResult{IDs: []uuid.UUID{}, Failed: true}
		}
		return MatchResult{IDs: []uuid.UUID{}}
	}

	investors, err := s.userRepo.ListActiveInvestors(ctx)
	if err != nil {
		logger.Error(ctx, "investor matching: directory lookup failed",
			zap.String("startup_id", startupID.String()), zap.Error(err))
		return MatchResult{IDs: []uuid.UUID{}, Failed: true}
	}

	matched := []uuid.UUID{}
	for _, inv := range investors {
		if inv.Investor == nil {
			continue
		}
		if contains(inv.Investor.Interests, startup.Category) {
			matched = append(matched, inv.ID)
			continue
		}
		if startup.Region.Valid && contains(inv.Investor.Regions, startup.Region.String) {
			matched = append(matched, inv.ID)
		}
	}
	return MatchResult{IDs: matched}
}

// MatchMentors returns active, available mentors whose specialties contain
// the startup's category.
func (s *MatchingService) MatchMentors(ctx context.Context, startupID uuid.UUID) MatchResult {
	startup, err := s.startupRepo.GetByID(ctx, startupID)
	if err != nil {
		if !errors.Is(err, domainerrors.ErrNotFound) {
			logger.Error(ctx, "mentor matching: startup lookup failed",
				zap.String("startup_id", startupID.String()), zap.Error(err))
			return MatchResult{IDs: []uuid.UUID{}, Failed: true}
		}
		return MatchResult{IDs: []uuid.UUID{}}
	}

	mentors, err := s.userRepo.ListAvailableMentors(ctx)
	if err != nil {
		logger.Error(ctx, "mentor matching: directory lookup failed",
			zap.String("startup_id", startupID.String()), zap.Error(err))
		return MatchResult{IDs: []uuid.UUID{}, Failed: true}
	}

	matched := []uuid.UUID{}
	for _, m := range mentors {
		if m.Mentor != nil && contains(m.Mentor.Specialties, startup.Category) {
			matched = append(matched, m.ID)
		}
	}
	return MatchResult{IDs: matched}
}

// RefreshMatches recomputes both match lists for a startup, caches them on
// the score record and notifies up to matchNotifyLimit matched investors.
func (s *MatchingService) RefreshMatches(ctx context.Context, startupID uuid.UUID) {
	startup, err := s.startupRepo.GetByID(ctx, startupID)
	if err != nil {
		logger.Warn(ctx, "match refresh: startup gone",
			zap.String("startup_id", startupID.String()), zap.Error(err))
		return
	}
	if _, err := s.scoreRepo.GetByStartupID(ctx, startupID); err != nil {
		logger.Warn(ctx, "match refresh: no score record",
			zap.String("startup_id", startupID.String()), zap.Error(err))
		return
	}

	investors := s.MatchInvestors(ctx, startupID)
	mentors := s.MatchMentors(ctx, startupID)
	if investors.Failed || mentors.Failed {
		logger.Warn(ctx, "match refresh degraded, keeping previous cache",
			zap.String("startup_id", startupID.String()))
		return
	}

	reasons := map[string]string{
		"investors": fmt.Sprintf("category %s, region %s", startup.Category, startup.Region.String),
		"mentors":   fmt.Sprintf("specialty %s, stage %s", startup.Category, startup.Stage),
	}
	if err := s.scoreRepo.UpdateMatches(ctx, startupID, investors.IDs, mentors.IDs, reasons); err != nil {
		logger.Error(ctx, "match refresh: cache update failed",
			zap.String("startup_id", startupID.String()), zap.Error(err))
		return
	}

	for i, investorID := range investors.IDs {
		if i >= matchNotifyLimit {
			break
		}
		s.telegram.SendNotification(ctx, investorID,
			fmt.Sprintf("Found a startup for you: '%s' (%s, AI score %.1f/100)",
				startup.Name, startup.Category, startup.AIScore))
	}

	logger.Info(ctx, "matches refreshed",
		zap.String("startup_id", startupID.String()),
		zap.Int("investors", len(investors.IDs)),
		zap.Int("mentors", len(mentors.IDs)))
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
