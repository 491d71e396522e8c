package models

import (
	"time"

	"github.com/google/uuid"
)

// Like rows are unique per (user, startup); the toggle deletes instead of
// duplicating.
type Like struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_like_user_startup"`
	StartupID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_like_user_startup"`
	CreatedAt time.Time
}

type Comment struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	Content   string    `gorm:"type:text;not null"`
	AuthorID  uuid.UUID `gorm:"type:uuid;not null;index"`
	StartupID uuid.UUID `gorm:"type:uuid;not null;index"`
	IsPublic  bool
	CreatedAt time.Time
}
