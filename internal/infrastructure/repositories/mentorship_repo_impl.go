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

// MentorshipRepository implements mentorship request data operations
type MentorshipRepository struct {
	db *gorm.DB
}

// NewMentorshipRepository creates a new mentorship repository
func NewMentorshipRepository(db *gorm.DB) *MentorshipRepository {
	return &MentorshipRepository{db: db}
}

// Create creates a mentorship request
func (r *MentorshipRepository) Create(ctx context.Context, request *entities.MentorshipRequest) error {
	m := r.toModel(request)
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	request.ID = m.ID
	request.CreatedAt = m.CreatedAt
	request.UpdatedAt = m.UpdatedAt
	return nil
}

// GetByID gets a mentorship request by ID
func (r *MentorshipRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.MentorshipRequest, error) {
	var m models.MentorshipRequest
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// GetActiveByPair returns the pending or accepted request for the
// (mentee, mentor) pair. ErrNotFound means the pair is free.
func (r *MentorshipRepository) GetActiveByPair(ctx context.Context, menteeID, mentorID uuid.UUID) (*entities.MentorshipRequest, error) {
	var m models.MentorshipRequest
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).
		Where("mentee_id = ? AND mentor_id = ? AND status IN ?",
			menteeID, mentorID,
			[]string{string(entities.MentorshipPending), string(entities.MentorshipAccepted)}).
		First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// UpdateStatus transitions the request state and stamps the response message
// and completion time
func (r *MentorshipRepository) UpdateStatus(ctx context.Context, request *entities.MentorshipRequest) error {
	db := GetDB(ctx, r.db)
	result := db.WithContext(ctx).Model(&models.MentorshipRequest{}).
		Where("id = ?", request.ID).
		Updates(map[string]interface{}{
			"status":           string(request.Status),
			"response_message": request.ResponseMessage.Ptr(),
			"completed_at":     request.CompletedAt,
			"updated_at":       time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func (r *MentorshipRepository) toModel(req *entities.MentorshipRequest) *models.MentorshipRequest {
	return &models.MentorshipRequest{
		ID:              req.ID,
		MenteeID:        req.MenteeID,
		MentorID:        req.MentorID,
		StartupID:       req.StartupID,
		RequestMessage:  req.RequestMessage.Ptr(),
		Goals:           req.Goals,
		Duration:        req.Duration,
		Status:          string(req.Status),
		ResponseMessage: req.ResponseMessage.Ptr(),
		CreatedAt:       req.CreatedAt,
		UpdatedAt:       req.UpdatedAt,
		CompletedAt:     req.CompletedAt,
	}
}

func (r *MentorshipRepository) toEntity(m *models.MentorshipRequest) *entities.MentorshipRequest {
	return &entities.MentorshipRequest{
		ID:              m.ID,
		MenteeID:        m.MenteeID,
		MentorID:        m.MentorID,
		StartupID:       m.StartupID,
		RequestMessage:  null.StringFromPtr(m.RequestMessage),
		Goals:           m.Goals,
		Duration:        m.Duration,
		Status:          entities.MentorshipStatus(m.Status),
		ResponseMessage: null.StringFromPtr(m.ResponseMessage),
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
		CompletedAt:     m.CompletedAt,
	}
}
