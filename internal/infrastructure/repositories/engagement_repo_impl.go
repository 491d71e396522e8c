package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"startup-platform.backend/internal/domain/entities"
	domainerrors "startup-platform.backend/internal/domain/errors"
	"startup-platform.backend/internal/infrastructure/models"
)

// LikeRepository implements like data operations
type LikeRepository struct {
	db *gorm.DB
}

// NewLikeRepository creates a new like repository
func NewLikeRepository(db *gorm.DB) *LikeRepository {
	return &LikeRepository{db: db}
}

// Get returns the like row for a (user, startup) pair
func (r *LikeRepository) Get(ctx context.Context, userID, startupID uuid.UUID) (*entities.Like, error) {
	var m models.Like
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).
		Where("user_id = ? AND startup_id = ?", userID, startupID).
		First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return &entities.Like{
		ID:        m.ID,
		UserID:    m.UserID,
		StartupID: m.StartupID,
		CreatedAt: m.CreatedAt,
	}, nil
}

// Create inserts a like row
func (r *LikeRepository) Create(ctx context.Context, like *entities.Like) error {
	m := &models.Like{
		ID:        like.ID,
		UserID:    like.UserID,
		StartupID: like.StartupID,
		CreatedAt: like.CreatedAt,
	}
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	like.ID = m.ID
	like.CreatedAt = m.CreatedAt
	return nil
}

// Delete removes the like row for a (user, startup) pair
func (r *LikeRepository) Delete(ctx context.Context, userID, startupID uuid.UUID) error {
	db := GetDB(ctx, r.db)
	result := db.WithContext(ctx).
		Where("user_id = ? AND startup_id = ?", userID, startupID).
		Delete(&models.Like{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// CommentRepository implements comment data operations
type CommentRepository struct {
	db *gorm.DB
}

// NewCommentRepository creates a new comment repository
func NewCommentRepository(db *gorm.DB) *CommentRepository {
	return &CommentRepository{db: db}
}

// Create inserts a comment
func (r *CommentRepository) Create(ctx context.Context, comment *entities.Comment) error {
	m := &models.Comment{
		ID:        comment.ID,
		Content:   comment.Content,
		AuthorID:  comment.AuthorID,
		StartupID: comment.StartupID,
		IsPublic:  comment.IsPublic,
		CreatedAt: comment.CreatedAt,
	}
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	comment.ID = m.ID
	comment.CreatedAt = m.CreatedAt
	return nil
}

// ListPublicByStartup returns public comments newest first with the total
// count. Author name and role are resolved in a second query.
func (r *CommentRepository) ListPublicByStartup(ctx context.Context, startupID uuid.UUID, skip, limit int) ([]*entities.Comment, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.Comment{}).
		Where("startup_id = ? AND is_public = ?", startupID, true).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var ms []models.Comment
	if err := r.db.WithContext(ctx).
		Where("startup_id = ? AND is_public = ?", startupID, true).
		Order("created_at DESC").
		Offset(skip).Limit(limit).
		Find(&ms).Error; err != nil {
		return nil, 0, err
	}

	authorIDs := make([]uuid.UUID, 0, len(ms))
	seen := make(map[uuid.UUID]struct{}, len(ms))
	for i := range ms {
		if _, ok := seen[ms[i].AuthorID]; !ok {
			seen[ms[i].AuthorID] = struct{}{}
			authorIDs = append(authorIDs, ms[i].AuthorID)
		}
	}

	authors := make(map[uuid.UUID]models.User, len(authorIDs))
	if len(authorIDs) > 0 {
		var users []models.User
		if err := r.db.WithContext(ctx).
			Select("id", "name", "role").
			Where("id IN ?", authorIDs).
			Find(&users).Error; err != nil {
			return nil, 0, err
		}
		for i := range users {
			authors[users[i].ID] = users[i]
		}
	}

	comments := make([]*entities.Comment, 0, len(ms))
	for i := range ms {
		c := &entities.Comment{
			ID:        ms[i].ID,
			Content:   ms[i].Content,
			AuthorID:  ms[i].AuthorID,
			StartupID: ms[i].StartupID,
			IsPublic:  ms[i].IsPublic,
			CreatedAt: ms[i].CreatedAt,
		}
		if a, ok := authors[ms[i].AuthorID]; ok {
			c.AuthorName = a.Name
			c.AuthorRole = entities.UserRole(a.Role)
		}
		comments = append(comments, c)
	}
	return comments, total, nil
}
