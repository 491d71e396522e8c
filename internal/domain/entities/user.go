package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// UserRole represents user roles
type UserRole string

const (
	UserRoleStartupOwner UserRole = "startup_owner"
	UserRoleInvestor     UserRole = "investor"
	UserRoleMentor       UserRole = "mentor"
	UserRoleAdmin        UserRole = "admin"
)

// ValidRegistrationRole reports whether a role may be chosen at sign-up.
// Admins are provisioned out of band.
func ValidRegistrationRole(r UserRole) bool {
	switch r {
	case UserRoleStartupOwner, UserRoleInvestor, UserRoleMentor:
		return true
	}
	return false
}

// InvestorProfile carries the attributes that only exist for investors.
type InvestorProfile struct {
	Interests []string `json:"interests"`
	Regions   []string `json:"regions"`
}

// MentorProfile carries the attributes that only exist for mentors.
type MentorProfile struct {
	Specialties []string     `json:"specialties"`
	Experience  int          `json:"experience"`
	HourlyRate  null.Float64 `json:"hourlyRate,omitempty"`
	Available   bool         `json:"available"`
}

// User represents a platform user. Role is immutable after creation; the
// profile pointer matching the role is non-nil, the other stays nil.
type User struct {
	ID           uuid.UUID   `json:"id"`
	Email        string      `json:"email"`
	Name         string      `json:"name"`
	PasswordHash string      `json:"-"`
	Role         UserRole    `json:"role"`
	Bio          null.String `json:"bio,omitempty"`
	Skills       []string    `json:"skills,omitempty"`
	IsActive     bool        `json:"isActive"`

	TelegramID       null.String `json:"-"`
	TelegramUsername null.String `json:"telegramUsername,omitempty"`
	TelegramLinked   bool        `json:"telegramLinked"`
	TelegramLinkedAt *time.Time  `json:"-"`

	Investor *InvestorProfile `json:"investor,omitempty"`
	Mentor   *MentorProfile   `json:"mentor,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// RegisterInput represents input for user registration
type RegisterInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Name     string `json:"name" binding:"required,min=2,max=100"`
	Role     string `json:"role" binding:"required"`
}

// LoginInput represents input for user login
type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UserSummary is the compact user payload returned with auth responses.
type UserSummary struct {
	ID               uuid.UUID   `json:"id"`
	Email            string      `json:"email"`
	Name             string      `json:"name"`
	Role             UserRole    `json:"role"`
	TelegramLinked   bool        `json:"telegramLinked"`
	TelegramUsername null.String `json:"telegramUsername,omitempty"`
}

// AuthResponse represents the register/login response.
type AuthResponse struct {
	AccessToken          string      `json:"accessToken"`
	TokenType            string      `json:"tokenType"`
	User                 UserSummary `json:"user"`
	RequiresTelegramLink bool        `json:"requiresTelegramLink"`
}

// Summary projects a user onto the auth payload shape.
func (u *User) Summary() UserSummary {
	return UserSummary{
		ID:               u.ID,
		Email:            u.Email,
		Name:             u.Name,
		Role:             u.Role,
		TelegramLinked:   u.TelegramLinked,
		TelegramUsername: u.TelegramUsername,
	}
}

// TelegramLinkInput represents input for linking a telegram handle.
type TelegramLinkInput struct {
	TelegramUsername string `json:"telegramUsername" binding:"required"`
}

// TelegramConfirmInput is the payload the bot sends once the user pressed
// /start, completing the link.
type TelegramConfirmInput struct {
	TelegramID       string `json:"telegramId" binding:"required"`
	TelegramUsername string `json:"telegramUsername" binding:"required"`
}
