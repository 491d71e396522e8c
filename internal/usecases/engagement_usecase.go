package usecases

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"startup-platform.backend/internal/domain/entities"
	domainerrors "startup-platform.backend/internal/domain/errors"
	"startup-platform.backend/internal/domain/repositories"
	"startup-platform.backend/pkg/logger"
)

// commentPreviewLen caps how much comment text lands in the owner
// notification.
const commentPreviewLen = 50

// EngagementUsecase handles likes, comments and the engagement re-score
type EngagementUsecase struct {
	startupRepo   repositories.StartupRepository
	scoreRepo     repositories.ScoreRepository
	likeRepo      repositories.LikeRepository
	commentRepo   repositories.CommentRepository
	analyticsRepo repositories.AnalyticsRepository
	userRepo      repositories.UserRepository
	uow           repositories.UnitOfWork
	telegram      *TelegramUsecase
}

// NewEngagementUsecase creates a new engagement usecase
func NewEngagementUsecase(
	startupRepo repositories.StartupRepository,
	scoreRepo repositories.ScoreRepository,
	likeRepo repositories.LikeRepository,
	commentRepo repositories.CommentRepository,
	analyticsRepo repositories.AnalyticsRepository,
	userRepo repositories.UserRepository,
	uow repositories.UnitOfWork,
	telegram *TelegramUsecase,
) *EngagementUsecase {
	return &EngagementUsecase{
		startupRepo:   startupRepo,
		scoreRepo:     scoreRepo,
		likeRepo:      likeRepo,
		commentRepo:   commentRepo,
		analyticsRepo: analyticsRepo,
		userRepo:      userRepo,
		uow:           uow,
		telegram:      telegram,
	}
}

// ToggleLike flips the like row for the (user, startup) pair. The row change
// and the counter move share one transaction, so the counter tracks row
// existence even under concurrent toggles. Each toggle re-blends the score.
func (u *EngagementUsecase) ToggleLike(ctx context.Context, userID uuid.UUID, startupID uuid.UUID) (entities.LikeAction, int, error) {
	startup, err := u.startupRepo.GetByID(ctx, startupID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return "", 0, domainerrors.NotFound("startup not found")
		}
		return "", 0, err
	}

	user, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		return "", 0, err
	}

	var action entities.LikeAction
	err = u.uow.Do(ctx, func(txCtx context.Context) error {
		_, err := u.likeRepo.Get(txCtx, userID, startupID)
		switch {
		case err == nil:
			action = entities.LikeActionUnliked
			if err := u.likeRepo.Delete(txCtx, userID, startupID); err != nil {
				return err
			}
			return u.startupRepo.AddLikes(txCtx, startupID, -1)
		case errors.Is(err, domainerrors.ErrNotFound):
			action = entities.LikeActionLiked
			like := &entities.Like{ID: uuid.New(), UserID: userID, StartupID: startupID, CreatedAt: time.Now()}
			if err := u.likeRepo.Create(txCtx, like); err != nil {
				return err
			}
			if err := u.startupRepo.AddLikes(txCtx, startupID, 1); err != nil {
				return err
			}
			event := &entities.AnalyticsEvent{
				ID:        uuid.New(),
				EventType: entities.EventLike,
				UserID:    userID,
				UserRole:  user.Role,
				StartupID: startupID,
				Metadata:  map[string]interface{}{"action": "like"},
				CreatedAt: time.Now(),
			}
			return u.analyticsRepo.Append(txCtx, event)
		default:
			return err
		}
	})
	if err != nil {
		return "", 0, err
	}

	if action == entities.LikeActionLiked && user.Role == entities.UserRoleInvestor && startup.OwnerID != userID {
		u.telegram.SendNotification(ctx, startup.OwnerID,
			fmt.Sprintf("Investor %s liked your startup '%s'", user.Name, startup.Name))
	}

	u.RescoreEngagement(ctx, startupID)

	updated, err := u.startupRepo.GetByID(ctx, startupID)
	if err != nil {
		return action, startup.LikesCount, nil
	}
	return action, updated.LikesCount, nil
}

// CreateComment appends a public comment, bumps the counter, records the
// event and notifies the owner, then re-blends the score.
func (u *EngagementUsecase) CreateComment(ctx context.Context, userID uuid.UUID, startupID uuid.UUID, input *entities.CreateCommentInput) (*entities.Comment, error) {
	startup, err := u.startupRepo.GetByID(ctx, startupID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("startup not found")
		}
		return nil, err
	}

	author, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	comment := &entities.Comment{
		ID:        uuid.New(),
		Content:   input.Content,
		AuthorID:  userID,
		StartupID: startupID,
		IsPublic:  true,
		CreatedAt: time.Now(),
	}

	err = u.uow.Do(ctx, func(txCtx context.Context) error {
		if err := u.commentRepo.Create(txCtx, comment); err != nil {
			return err
		}
		if err := u.startupRepo.AddComments(txCtx, startupID, 1); err != nil {
			return err
		}
		event := &entities.AnalyticsEvent{
			ID:        uuid.New(),
			EventType: entities.EventComment,
			UserID:    userID,
			UserRole:  author.Role,
			StartupID: startupID,
			Metadata:  map[string]interface{}{"comment_length": len(input.Content)},
			CreatedAt: time.Now(),
		}
		return u.analyticsRepo.Append(txCtx, event)
	})
	if err != nil {
		return nil, err
	}

	if startup.OwnerID != userID {
		u.telegram.SendNotification(ctx, startup.OwnerID,
			fmt.Sprintf("%s commented on your startup '%s': '%s'",
				author.Name, startup.Name, commentPreview(input.Content)))
	}

	u.RescoreEngagement(ctx, startupID)

	comment.AuthorName = author.Name
	comment.AuthorRole = author.Role
	return comment, nil
}

// ListComments returns the public comments page for a startup
func (u *EngagementUsecase) ListComments(ctx context.Context, startupID uuid.UUID, skip, limit int) ([]*entities.Comment, int64, error) {
	return u.commentRepo.ListPublicByStartup(ctx, startupID, skip, limit)
}

// RescoreEngagement blends engagement into the overall score:
//
//	engagement = min(100, likes*5 + comments*10)
//	overall    = min(100, 0.3*engagement + 0.4*traction + 0.3*stored overall)
//
// The blend reads the current stored overall, so repeated calls compound and
// a like followed by an unlike does not restore the previous score. Failures
// are logged and absorbed.
func (u *EngagementUsecase) RescoreEngagement(ctx context.Context, startupID uuid.UUID) {
	startup, err := u.startupRepo.GetByID(ctx, startupID)
	if err != nil {
		logger.Error(ctx, "rescore: startup lookup failed",
			zap.String("startup_id", startupID.String()), zap.Error(err))
		return
	}

	engagement := float64(startup.LikesCount*5 + startup.CommentsCount*10)
	if engagement > 100 {
		engagement = 100
	}
	newScore := 0.3*engagement + 0.4*startup.TractionScore + 0.3*startup.AIScore
	if newScore > 100 {
		newScore = 100
	}

	if err := u.startupRepo.UpdateScore(ctx, startupID, newScore); err != nil {
		logger.Error(ctx, "rescore: startup update failed",
			zap.String("startup_id", startupID.String()), zap.Error(err))
		return
	}
	if err := u.scoreRepo.UpdateOverall(ctx, startupID, newScore); err != nil && !errors.Is(err, domainerrors.ErrNotFound) {
		logger.Error(ctx, "rescore: score record update failed",
			zap.String("startup_id", startupID.String()), zap.Error(err))
	}
}

func commentPreview(content string) string {
	runes := []rune(content)
	if len(runes) <= commentPreviewLen {
		return content
	}
	return string(runes[:commentPreviewLen]) + "..."
}
