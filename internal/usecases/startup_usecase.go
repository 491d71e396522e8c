package usecases

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"go.uber.org/zap"
	"startup-platform.backend/internal/domain/entities"
	domainerrors "startup-platform.backend/internal/domain/errors"
	"startup-platform.backend/internal/domain/repositories"
	"startup-platform.backend/pkg/logger"
)

// MatchEnqueuer hands a startup to the background matching worker. A false
// return means the queue is saturated and the task was dropped.
type MatchEnqueuer interface {
	Enqueue(startupID uuid.UUID) bool
}

// Viewer identifies the authenticated actor behind a catalog request.
type Viewer struct {
	ID   uuid.UUID
	Role entities.UserRole
}

// StartupUsecase handles startup lifecycle business logic
type StartupUsecase struct {
	startupRepo   repositories.StartupRepository
	scoreRepo     repositories.ScoreRepository
	userRepo      repositories.UserRepository
	analyticsRepo repositories.AnalyticsRepository
	uow           repositories.UnitOfWork
	matchQueue    MatchEnqueuer
	telegram      *TelegramUsecase
}

// NewStartupUsecase creates a new startup usecase
func NewStartupUsecase(
	startupRepo repositories.StartupRepository,
	scoreRepo repositories.ScoreRepository,
	userRepo repositories.UserRepository,
	analyticsRepo repositories.AnalyticsRepository,
	uow repositories.UnitOfWork,
	matchQueue MatchEnqueuer,
	telegram *TelegramUsecase,
) *StartupUsecase {
	return &StartupUsecase{
		startupRepo:   startupRepo,
		scoreRepo:     scoreRepo,
		userRepo:      userRepo,
		analyticsRepo: analyticsRepo,
		uow:           uow,
		matchQueue:    matchQueue,
		telegram:      telegram,
	}
}

// Create scores a submission, persists the startup with its score record in
// one transaction, then hands matching to the background worker and notifies
// the owner. The startup starts unpublished pending moderation.
func (u *StartupUsecase) Create(ctx context.Context, ownerID uuid.UUID, input *entities.CreateStartupInput) (*entities.Startup, *entities.ScoreRecord, error) {
	owner, err := u.userRepo.GetByID(ctx, ownerID)
	if err != nil {
		return nil, nil, err
	}
	if owner.Role != entities.UserRoleStartupOwner && owner.Role != entities.UserRoleAdmin {
		return nil, nil, domainerrors.Forbidden("only startup owners can create projects")
	}
	if !entities.ValidStage(entities.StartupStage(input.Stage)) {
		return nil, nil, domainerrors.BadRequest("unknown startup stage")
	}
	for _, v := range []*float64{input.ProjectCost, input.MonthlyExpenses, input.InvestmentAsked} {
		if v != nil && *v < 0 {
			return nil, nil, domainerrors.BadRequest("financial figures cannot be negative")
		}
	}
	if len(input.TractionMetrics) > 0 && !entities.HasRecognizedTractionKey(input.TractionMetrics) {
		return nil, nil, domainerrors.BadRequest("traction metrics must include at least one recognized key")
	}
	if !telegramHandleRe.MatchString(input.TelegramContact) {
		return nil, nil, domainerrors.BadRequest("telegram contact must be a valid @handle")
	}

	startup := &entities.Startup{
		ID:               uuid.New(),
		Name:             input.Name,
		Description:      input.Description,
		ShortDescription: input.ShortDescription,
		Stage:            entities.StartupStage(input.Stage),
		Category:         input.Category,
		TeamSize:         null.IntFromPtr(input.TeamSize),
		ProjectCost:      null.Float64FromPtr(input.ProjectCost),
		MonthlyExpenses:  null.Float64FromPtr(input.MonthlyExpenses),
		InvestmentAsked:  null.Float64FromPtr(input.InvestmentAsked),
		TractionMetrics:  input.TractionMetrics,
		MarketSize:       null.StringFromPtr(input.MarketSize),
		TargetAudience:   null.StringFromPtr(input.TargetAudience),
		Region:           null.StringFromPtr(input.Region),
		TelegramContact:  input.TelegramContact,
		Website:          null.StringFromPtr(input.Website),
		Github:           null.StringFromPtr(input.Github),
		ContactEmail:     null.StringFromPtr(input.ContactEmail),
		OwnerID:          ownerID,
		IsPublished:      false, // moderation gate
		IsApproved:       false,
		CreatedAt:        time.Now(),
		UpdatedAt:        time.Now(),
	}

	analysis := AnalyzeStartup(ScoreInputFromStartup(startup))
	startup.TractionScore = analysis.TractionScore
	startup.AIScore = analysis.OverallScore
	startup.InvestmentReadiness = analysis.InvestmentReadiness

	record := &entities.ScoreRecord{
		ID:              uuid.New(),
		StartupID:       startup.ID,
		OverallScore:    analysis.OverallScore,
		TeamScore:       analysis.TeamScore,
		MarketScore:     analysis.MarketScore,
		TractionScore:   analysis.TractionScore,
		FinancialScore:  analysis.FinancialScore,
		TechnologyScore: analysis.TechnologyScore,
		Strengths:       analysis.Strengths,
		Weaknesses:      analysis.Weaknesses,
		Recommendations: analysis.Recommendations,
		CreatedAt:       time.Now(),
		UpdatedAt:       time.Now(),
	}

	err = u.uow.Do(ctx, func(txCtx context.Context) error {
		if err := u.startupRepo.Create(txCtx, startup); err != nil {
			return err
		}
		return u.scoreRepo.Create(txCtx, record)
	})
	if err != nil {
		return nil, nil, err
	}

	if !u.matchQueue.Enqueue(startup.ID) {
		logger.Warn(ctx, "match queue full, startup skipped",
			zap.String("startup_id", startup.ID.String()))
	}

	u.telegram.SendNotification(ctx, ownerID,
		fmt.Sprintf("Your startup '%s' was created. AI score: %.1f/100. The project was sent to moderation.",
			startup.Name, analysis.OverallScore))

	return startup, record, nil
}

// List returns the public catalog page. An authenticated viewer leaves a
// view event and a view-count bump per listed startup; recording failures
// never fail the listing.
func (u *StartupUsecase) List(ctx context.Context, filter entities.StartupFilter, viewer *Viewer) ([]*entities.Startup, int64, error) {
	startups, total, err := u.startupRepo.ListPublished(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	if viewer != nil {
		page := 1
		if filter.Limit > 0 {
			page = filter.Skip/filter.Limit + 1
		}
		for _, s := range startups {
			u.recordView(ctx, viewer, s.ID, map[string]interface{}{
				"source": "catalog",
				"page":   page,
			})
			s.ViewsCount++
		}
	}

	return startups, total, nil
}

// Get returns a published startup with its owner. An authenticated viewer
// leaves a detail view event; an investor viewing someone else's startup
// additionally triggers an owner notification.
func (u *StartupUsecase) Get(ctx context.Context, id uuid.UUID, viewer *Viewer) (*entities.Startup, *entities.User, error) {
	startup, err := u.startupRepo.GetPublishedByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, nil, domainerrors.NotFound("startup not found")
		}
		return nil, nil, err
	}

	owner, err := u.userRepo.GetByID(ctx, startup.OwnerID)
	if err != nil && !errors.Is(err, domainerrors.ErrNotFound) {
		return nil, nil, err
	}

	if viewer != nil {
		u.recordView(ctx, viewer, startup.ID, map[string]interface{}{
			"source":    "detail_page",
			"user_role": string(viewer.Role),
		})
		startup.ViewsCount++

		if viewer.Role == entities.UserRoleInvestor && startup.OwnerID != viewer.ID {
			if investor, err := u.userRepo.GetByID(ctx, viewer.ID); err == nil {
				u.telegram.SendNotification(ctx, startup.OwnerID,
					fmt.Sprintf("Investor %s viewed your startup '%s'", investor.Name, startup.Name))
			}
		}
	}

	return startup, owner, nil
}

// Contact initiates a telegram introduction between the caller and the
// startup owner. Both sides must have confirmed telegram links. Returns the
// startup's telegram contact for the caller to use.
func (u *StartupUsecase) Contact(ctx context.Context, callerID uuid.UUID, startupID uuid.UUID) (string, string, error) {
	startup, err := u.startupRepo.GetByID(ctx, startupID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return "", "", domainerrors.NotFound("startup not found")
		}
		return "", "", err
	}

	caller, err := u.userRepo.GetByID(ctx, callerID)
	if err != nil {
		return "", "", err
	}
	if !caller.TelegramLinked {
		return "", "", domainerrors.NewAppError(http.StatusBadRequest, "link your telegram account first", domainerrors.ErrTelegramNotLinked)
	}
	owner, err := u.userRepo.GetByID(ctx, startup.OwnerID)
	if err != nil {
		return "", "", err
	}
	if !owner.TelegramLinked {
		return "", "", domainerrors.NewAppError(http.StatusBadRequest, "the startup owner has not linked telegram yet", domainerrors.ErrTelegramNotLinked)
	}

	if !u.telegram.InitiateContact(ctx, callerID, startup.OwnerID, &startup.ID, startup.Name) {
		return "", "", domainerrors.InternalError(errors.New("failed to initiate contact"))
	}

	event := &entities.AnalyticsEvent{
		ID:        uuid.New(),
		EventType: entities.EventContactClick,
		UserID:    callerID,
		UserRole:  caller.Role,
		StartupID: startupID,
		Metadata:  map[string]interface{}{"action": "telegram_contact_initiated"},
		CreatedAt: time.Now(),
	}
	if err := u.analyticsRepo.Append(ctx, event); err != nil {
		logger.Error(ctx, "failed to record contact click", zap.Error(err))
	}

	return "Contact initiated. Check your telegram to continue the conversation.", startup.TelegramContact, nil
}

func (u *StartupUsecase) recordView(ctx context.Context, viewer *Viewer, startupID uuid.UUID, metadata map[string]interface{}) {
	event := &entities.AnalyticsEvent{
		ID:        uuid.New(),
		EventType: entities.EventView,
		UserID:    viewer.ID,
		UserRole:  viewer.Role,
		StartupID: startupID,
		Metadata:  metadata,
		CreatedAt: time.Now(),
	}
	if err := u.analyticsRepo.Append(ctx, event); err != nil {
		logger.Error(ctx, "failed to record view event",
			zap.String("startup_id", startupID.String()), zap.Error(err))
		return
	}
	if err := u.startupRepo.IncrementViews(ctx, startupID); err != nil {
		logger.Error(ctx, "failed to bump view counter",
			zap.String("startup_id", startupID.String()), zap.Error(err))
	}
}
