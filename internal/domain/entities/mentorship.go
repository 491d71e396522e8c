package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// MentorshipStatus is the request state machine:
// pending -> accepted | rejected, accepted -> completed.
type MentorshipStatus string

const (
	MentorshipPending   MentorshipStatus = "pending"
	MentorshipAccepted  MentorshipStatus = "accepted"
	MentorshipRejected  MentorshipStatus = "rejected"
	MentorshipCompleted MentorshipStatus = "completed"
)

// Active reports whether the request still blocks a new one for the same
// (mentee, mentor) pair.
func (s MentorshipStatus) Active() bool {
	return s == MentorshipPending || s == MentorshipAccepted
}

// MentorshipRequest is a mentee's request for mentorship from a mentor.
type MentorshipRequest struct {
	ID        uuid.UUID  `json:"id"`
	MenteeID  uuid.UUID  `json:"menteeId"`
	MentorID  uuid.UUID  `json:"mentorId"`
	StartupID *uuid.UUID `json:"startupId,omitempty"`

	RequestMessage  null.String      `json:"requestMessage,omitempty"`
	Goals           []string         `json:"goals,omitempty"`
	Duration        string           `json:"duration"`
	Status          MentorshipStatus `json:"status"`
	ResponseMessage null.String      `json:"responseMessage,omitempty"`

	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}

// CreateMentorshipRequestInput represents input for requesting mentorship.
type CreateMentorshipRequestInput struct {
	MentorID       uuid.UUID  `json:"mentorId" binding:"required"`
	StartupID      *uuid.UUID `json:"startupId,omitempty"`
	RequestMessage *string    `json:"requestMessage,omitempty"`
	Goals          []string   `json:"goals,omitempty"`
	Duration       string     `json:"duration"`
}

// RespondMentorshipInput represents the mentor's decision on a pending request.
type RespondMentorshipInput struct {
	Accept          bool    `json:"accept"`
	ResponseMessage *string `json:"responseMessage,omitempty"`
}

// MentorFilter narrows the mentor directory listing.
type MentorFilter struct {
	Specialty     string
	MinExperience int
	Skip          int
	Limit         int
}

// MentorCard is the public mentor directory payload.
type MentorCard struct {
	ID               uuid.UUID    `json:"id"`
	Name             string       `json:"name"`
	Bio              null.String  `json:"bio,omitempty"`
	Specialties      []string     `json:"specialties"`
	Experience       int          `json:"experience"`
	HourlyRate       null.Float64 `json:"hourlyRate,omitempty"`
	TelegramUsername null.String  `json:"telegramUsername,omitempty"`
}
