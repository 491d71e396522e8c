package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"startup-platform.backend/internal/domain/entities"
	domainerrors "startup-platform.backend/internal/domain/errors"
	"startup-platform.backend/internal/infrastructure/models"
)

// ScoreRepository implements score record data operations
type ScoreRepository struct {
	db *gorm.DB
}

// NewScoreRepository creates a new score repository
func NewScoreRepository(db *gorm.DB) *ScoreRepository {
	return &ScoreRepository{db: db}
}

// Create creates a score record for a startup
func (r *ScoreRepository) Create(ctx context.Context, record *entities.ScoreRecord) error {
	m := r.toModel(record)
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	record.ID = m.ID
	record.CreatedAt = m.CreatedAt
	record.UpdatedAt = m.UpdatedAt
	return nil
}

// GetByStartupID gets the score record for a startup
func (r *ScoreRepository) GetByStartupID(ctx context.Context, startupID uuid.UUID) (*entities.ScoreRecord, error) {
	var m models.ScoreRecord
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).Where("startup_id = ?", startupID).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// UpdateOverall stores a re-blended overall score
func (r *ScoreRepository) UpdateOverall(ctx context.Context, startupID uuid.UUID, score float64) error {
	db := GetDB(ctx, r.db)
	result := db.WithContext(ctx).Model(&models.ScoreRecord{}).
		Where("startup_id = ?", startupID).
		Updates(map[string]interface{}{
			"overall_score": score,
			"updated_at":    time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// UpdateMatches replaces the cached match lists and reasons
func (r *ScoreRepository) UpdateMatches(ctx context.Context, startupID uuid.UUID, investors, mentors []uuid.UUID, reasons map[string]string) error {
	// Struct update so the json serializer applies to the list columns.
	db := GetDB(ctx, r.db)
	result := db.WithContext(ctx).Model(&models.ScoreRecord{}).
		Where("startup_id = ?", startupID).
		Select("matched_investors", "matched_mentors", "match_reasons", "updated_at").
		Updates(&models.ScoreRecord{
			MatchedInvestors: investors,
			MatchedMentors:   mentors,
			MatchReasons:     reasons,
			UpdatedAt:        time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func (r *ScoreRepository) toModel(s *entities.ScoreRecord) *models.ScoreRecord {
	return &models.ScoreRecord{
		ID:               s.ID,
		StartupID:        s.StartupID,
		OverallScore:     s.OverallScore,
		TeamScore:        s.TeamScore,
		MarketScore:      s.MarketScore,
		TractionScore:    s.TractionScore,
		FinancialScore:   s.FinancialScore,
		TechnologyScore:  s.TechnologyScore,
		Strengths:        s.Strengths,
		Weaknesses:       s.Weaknesses,
		Recommendations:  s.Recommendations,
		MatchedInvestors: s.MatchedInvestors,
		MatchedMentors:   s.MatchedMentors,
		MatchReasons:     s.MatchReasons,
		CreatedAt:        s.CreatedAt,
		UpdatedAt:        s.UpdatedAt,
	}
}

func (r *ScoreRepository) toEntity(m *models.ScoreRecord) *entities.ScoreRecord {
	return &entities.ScoreRecord{
		ID:               m.ID,
		StartupID:        m.StartupID,
		OverallScore:     m.OverallScore,
		TeamScore:        m.TeamScore,
		MarketScore:      m.MarketScore,
		TractionScore:    m.TractionScore,
		FinancialScore:   m.FinancialScore,
		TechnologyScore:  m.TechnologyScore,
		Strengths:        m.Strengths,
		Weaknesses:       m.Weaknesses,
		Recommendations:  m.Recommendations,
		MatchedInvestors: m.MatchedInvestors,
		MatchedMentors:   m.MatchedMentors,
		MatchReasons:     m.MatchReasons,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
}
