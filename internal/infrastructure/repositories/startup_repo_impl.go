package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
	"startup-platform.backend/internal/domain/entities"
	domainerrors "startup-platform.backend/internal/domain/errors"
	"startup-platform.backend/internal/infrastructure/models"
)

// StartupRepository implements startup data operations
type StartupRepository struct {
	db *gorm.DB
}

// NewStartupRepository creates a new startup repository
func NewStartupRepository(db *gorm.DB) *StartupRepository {
	return &StartupRepository{db: db}
}

// Create creates a new startup
func (r *StartupRepository) Create(ctx context.Context, startup *entities.Startup) error {
	m := r.toModel(startup)
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	startup.ID = m.ID
	startup.CreatedAt = m.CreatedAt
	startup.UpdatedAt = m.UpdatedAt
	return nil
}

// GetByID gets a startup by ID regardless of publication state
func (r *StartupRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Startup, error) {
	var m models.Startup
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// GetPublishedByID gets a startup visible in the public catalog
func (r *StartupRepository) GetPublishedByID(ctx context.Context, id uuid.UUID) (*entities.Startup, error) {
	var m models.Startup
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).
		Where("id = ? AND is_published = ? AND is_approved = ?", id, true, true).
		First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// ListPublished applies the catalog filter over published and approved rows
func (r *StartupRepository) ListPublished(ctx context.Context, filter entities.StartupFilter) ([]*entities.Startup, int64, error) {
	q := r.db.WithContext(ctx).Model(&models.Startup{}).
		Where("is_published = ? AND is_approved = ?", true, true)
	if filter.Category != "" {
		q = q.Where("category = ?", filter.Category)
	}
	if filter.Stage != "" {
		q = q.Where("stage = ?", filter.Stage)
	}
	if filter.Region != "" {
		q = q.Where("region = ?", filter.Region)
	}
	if filter.MinScore > 0 {
		q = q.Where("ai_score >= ?", filter.MinScore)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var ms []models.Startup
	if err := q.
		Order("ai_score DESC").
		Order("created_at DESC").
		Offset(filter.Skip).
		Limit(filter.Limit).
		Find(&ms).Error; err != nil {
		return nil, 0, err
	}

	startups := make([]*entities.Startup, 0, len(ms))
	for i := range ms {
		startups = append(startups, r.toEntity(&ms[i]))
	}
	return startups, total, nil
}

// IncrementViews bumps views_count atomically
func (r *StartupRepository) IncrementViews(ctx context.Context, id uuid.UUID) error {
	db := GetDB(ctx, r.db)
	result := db.WithContext(ctx).Model(&models.Startup{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"views_count": gorm.Expr("views_count + 1"),
			"updated_at":  time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// AddLikes moves likes_count by delta in a single statement so concurrent
// toggles never lose updates. The counter is floored at zero.
func (r *StartupRepository) AddLikes(ctx context.Context, id uuid.UUID, delta int) error {
	db := GetDB(ctx, r.db)
	result := db.WithContext(ctx).Model(&models.Startup{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"likes_count": gorm.Expr("CASE WHEN likes_count + ? < 0 THEN 0 ELSE likes_count + ? END", delta, delta),
			"updated_at":  time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// AddComments moves comments_count by delta
func (r *StartupRepository) AddComments(ctx context.Context, id uuid.UUID, delta int) error {
	db := GetDB(ctx, r.db)
	result := db.WithContext(ctx).Model(&models.Startup{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"comments_count": gorm.Expr("comments_count + ?", delta),
			"updated_at":     time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// UpdateScore stores a re-blended overall score on the startup row
func (r *StartupRepository) UpdateScore(ctx context.Context, id uuid.UUID, score float64) error {
	db := GetDB(ctx, r.db)
	result := db.WithContext(ctx).Model(&models.Startup{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"ai_score":   score,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func (r *StartupRepository) toModel(s *entities.Startup) *models.Startup {
	return &models.Startup{
		ID:                  s.ID,
		Name:                s.Name,
		Description:         s.Description,
		ShortDescription:    s.ShortDescription,
		Stage:               string(s.Stage),
		Category:            s.Category,
		TeamSize:            s.TeamSize.Ptr(),
		ProjectCost:         s.ProjectCost.Ptr(),
		MonthlyExpenses:     s.MonthlyExpenses.Ptr(),
		InvestmentAsked:     s.InvestmentAsked.Ptr(),
		TractionMetrics:     s.TractionMetrics,
		TractionScore:       s.TractionScore,
		MarketSize:          s.MarketSize.Ptr(),
		TargetAudience:      s.TargetAudience.Ptr(),
		Region:              s.Region.Ptr(),
		TelegramContact:     s.TelegramContact,
		Website:             s.Website.Ptr(),
		Github:              s.Github.Ptr(),
		ContactEmail:        s.ContactEmail.Ptr(),
		ViewsCount:          s.ViewsCount,
		LikesCount:          s.LikesCount,
		CommentsCount:       s.CommentsCount,
		AIScore:             s.AIScore,
		InvestmentReadiness: s.InvestmentReadiness,
		OwnerID:             s.OwnerID,
		IsPublished:         s.IsPublished,
		IsApproved:          s.IsApproved,
		CreatedAt:           s.CreatedAt,
		UpdatedAt:           s.UpdatedAt,
	}
}

func (r *StartupRepository) toEntity(m *models.Startup) *entities.Startup {
	return &entities.Startup{
		ID:                  m.ID,
		Name:                m.Name,
		Description:         m.Description,
		ShortDescription:    m.ShortDescription,
		Stage:               entities.StartupStage(m.Stage),
		Category:            m.Category,
		TeamSize:            null.IntFromPtr(m.TeamSize),
		ProjectCost:         null.Float64FromPtr(m.ProjectCost),
		MonthlyExpenses:     null.Float64FromPtr(m.MonthlyExpenses),
		InvestmentAsked:     null.Float64FromPtr(m.InvestmentAsked),
		TractionMetrics:     m.TractionMetrics,
		TractionScore:       m.TractionScore,
		MarketSize:          null.StringFromPtr(m.MarketSize),
		TargetAudience:      null.StringFromPtr(m.TargetAudience),
		Region:              null.StringFromPtr(m.Region),
		TelegramContact:     m.TelegramContact,
		Website:             null.StringFromPtr(m.Website),
		Github:              null.StringFromPtr(m.Github),
		ContactEmail:        null.StringFromPtr(m.ContactEmail),
		ViewsCount:          m.ViewsCount,
		LikesCount:          m.LikesCount,
		CommentsCount:       m.CommentsCount,
		AIScore:             m.AIScore,
		InvestmentReadiness: m.InvestmentReadiness,
		OwnerID:             m.OwnerID,
		IsPublished:         m.IsPublished,
		IsApproved:          m.IsApproved,
		CreatedAt:           m.CreatedAt,
		UpdatedAt:           m.UpdatedAt,
	}
}
