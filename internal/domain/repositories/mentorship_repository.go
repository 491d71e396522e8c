package repositories

import (
	"context"

	"github.com/google/uuid"
	"startup-platform.backend/internal/domain/entities"
)

// MentorshipRepository defines mentorship request data operations
type MentorshipRepository interface {
	Create(ctx context.Context, request *entities.MentorshipRequest) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.MentorshipRequest, error)
	// GetActiveByPair returns the pending or accepted request for the
	// (mentee, mentor) pair, if any.
	GetActiveByPair(ctx context.Context, menteeID, mentorID uuid.UUID) (*entities.MentorshipRequest, error)
	// UpdateStatus transitions the request state and stamps the response
	// message / completion time.
	UpdateStatus(ctx context.Context, request *entities.MentorshipRequest) error
}
