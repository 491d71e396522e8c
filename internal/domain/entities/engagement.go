package entities

import (
	"time"

	"github.com/google/uuid"
)

// Like marks that a user liked a startup. The (user, startup) pair is unique;
// repeating the request toggles the row away again.
type Like struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"userId"`
	StartupID uuid.UUID `json:"startupId"`
	CreatedAt time.Time `json:"createdAt"`
}

// LikeAction is the outcome of a toggle.
type LikeAction string

const (
	LikeActionLiked   LikeAction = "liked"
	LikeActionUnliked LikeAction = "unliked"
)

// Comment is an append-only public note on a startup.
type Comment struct {
	ID         uuid.UUID `json:"id"`
	Content    string    `json:"content"`
	AuthorID   uuid.UUID `json:"authorId"`
	AuthorName string    `json:"authorName,omitempty"`
	AuthorRole UserRole  `json:"authorRole,omitempty"`
	StartupID  uuid.UUID `json:"startupId"`
	IsPublic   bool      `json:"isPublic"`
	CreatedAt  time.Time `json:"createdAt"`
}

// CreateCommentInput represents input for creating a comment.
type CreateCommentInput struct {
	Content string `json:"content" binding:"required,min=1,max=1000"`
}
