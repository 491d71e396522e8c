package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
	"startup-platform.backend/internal/domain/entities"
	domainerrors "startup-platform.backend/internal/domain/errors"
	"startup-platform.backend/internal/infrastructure/models"
)

// UserRepository implements user data operations
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create creates a new user
func (r *UserRepository) Create(ctx context.Context, user *entities.User) error {
	m := r.toModel(user)
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	user.ID = m.ID
	user.CreatedAt = m.CreatedAt
	user.UpdatedAt = m.UpdatedAt
	return nil
}

// GetByID gets a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	var m models.User
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// GetByEmail gets a user by email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	var m models.User
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).Where("email = ?", email).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// GetByTelegramUsername gets a user by their linked telegram handle
func (r *UserRepository) GetByTelegramUsername(ctx context.Context, username string) (*entities.User, error) {
	var m models.User
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).Where("telegram_username = ?", username).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// Update persists the full user row
func (r *UserRepository) Update(ctx context.Context, user *entities.User) error {
	m := r.toModel(user)
	db := GetDB(ctx, r.db)
	result := db.WithContext(ctx).Model(&models.User{}).Where("id = ?", user.ID).
		Select("name", "bio", "skills", "is_active",
			"telegram_id", "telegram_username", "telegram_linked", "telegram_linked_at",
			"investment_interests", "investment_regions",
			"mentor_specialties", "mentor_experience", "mentor_hourly_rate", "mentor_availability").
		Updates(m)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// ListActiveInvestors returns every active investor
func (r *UserRepository) ListActiveInvestors(ctx context.Context) ([]*entities.User, error) {
	var ms []models.User
	if err := r.db.WithContext(ctx).
		Where("role = ? AND is_active = ?", string(entities.UserRoleInvestor), true).
		Find(&ms).Error; err != nil {
		return nil, err
	}
	users := make([]*entities.User, 0, len(ms))
	for i := range ms {
		users = append(users, r.toEntity(&ms[i]))
	}
	return users, nil
}

// ListAvailableMentors returns every active mentor whose availability is on
func (r *UserRepository) ListAvailableMentors(ctx context.Context) ([]*entities.User, error) {
	var ms []models.User
	if err := r.db.WithContext(ctx).
		Where("role = ? AND is_active = ? AND mentor_availability = ?", string(entities.UserRoleMentor), true, true).
		Find(&ms).Error; err != nil {
		return nil, err
	}
	users := make([]*entities.User, 0, len(ms))
	for i := range ms {
		users = append(users, r.toEntity(&ms[i]))
	}
	return users, nil
}

// GetManyByIDs resolves an ID list back to users. Unknown IDs are skipped.
func (r *UserRepository) GetManyByIDs(ctx context.Context, ids []uuid.UUID) ([]*entities.User, error) {
	if len(ids) == 0 {
		return []*entities.User{}, nil
	}
	var ms []models.User
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&ms).Error; err != nil {
		return nil, err
	}
	users := make([]*entities.User, 0, len(ms))
	for i := range ms {
		users = append(users, r.toEntity(&ms[i]))
	}
	return users, nil
}

func (r *UserRepository) toModel(u *entities.User) *models.User {
	m := &models.User{
		ID:               u.ID,
		Email:            u.Email,
		Name:             u.Name,
		PasswordHash:     u.PasswordHash,
		Role:             string(u.Role),
		Bio:              u.Bio.Ptr(),
		Skills:           u.Skills,
		IsActive:         u.IsActive,
		TelegramID:       u.TelegramID.Ptr(),
		TelegramUsername: u.TelegramUsername.Ptr(),
		TelegramLinked:   u.TelegramLinked,
		TelegramLinkedAt: u.TelegramLinkedAt,
		CreatedAt:        u.CreatedAt,
		UpdatedAt:        u.UpdatedAt,
	}
	if u.Investor != nil {
		m.InvestmentInterests = u.Investor.Interests
		m.InvestmentRegions = u.Investor.Regions
	}
	if u.Mentor != nil {
		exp := u.Mentor.Experience
		avail := u.Mentor.Available
		m.MentorSpecialties = u.Mentor.Specialties
		m.MentorExperience = &exp
		m.MentorHourlyRate = u.Mentor.HourlyRate.Ptr()
		m.MentorAvailability = &avail
	}
	return m
}

func (r *UserRepository) toEntity(m *models.User) *entities.User {
	u := &entities.User{
		ID:               m.ID,
		Email:            m.Email,
		Name:             m.Name,
		PasswordHash:     m.PasswordHash,
		Role:             entities.UserRole(m.Role),
		Bio:              null.StringFromPtr(m.Bio),
		Skills:           m.Skills,
		IsActive:         m.IsActive,
		TelegramID:       null.StringFromPtr(m.TelegramID),
		TelegramUsername: null.StringFromPtr(m.TelegramUsername),
		TelegramLinked:   m.TelegramLinked,
		TelegramLinkedAt: m.TelegramLinkedAt,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
	switch u.Role {
	case entities.UserRoleInvestor:
		u.Investor = &entities.InvestorProfile{
			Interests: m.InvestmentInterests,
			Regions:   m.InvestmentRegions,
		}
	case entities.UserRoleMentor:
		p := &entities.MentorProfile{
			Specialties: m.MentorSpecialties,
			HourlyRate:  null.Float64FromPtr(m.MentorHourlyRate),
			Available:   true,
		}
		if m.MentorExperience != nil {
			p.Experience = *m.MentorExperience
		}
		if m.MentorAvailability != nil {
			p.Available = *m.MentorAvailability
		}
		u.Mentor = p
	}
	return u
}
