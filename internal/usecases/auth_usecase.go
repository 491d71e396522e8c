package usecases

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"startup-platform.backend/internal/domain/entities"
	domainerrors "startup-platform.backend/internal/domain/errors"
	"startup-platform.backend/internal/domain/repositories"
	"startup-platform.backend/pkg/crypto"
	"startup-platform.backend/pkg/jwt"
)

// AuthUsecase handles authentication business logic
type AuthUsecase struct {
	userRepo   repositories.UserRepository
	jwtService *jwt.JWTService
}

// NewAuthUsecase creates a new auth usecase
func NewAuthUsecase(userRepo repositories.UserRepository, jwtService *jwt.JWTService) *AuthUsecase {
	return &AuthUsecase{
		userRepo:   userRepo,
		jwtService: jwtService,
	}
}

// Register creates a user with an empty role profile and returns a signed
// token. The role is fixed at creation; admins are provisioned out of band.
func (u *AuthUsecase) Register(ctx context.Context, input *entities.RegisterInput) (*entities.AuthResponse, error) {
	role := entities.UserRole(input.Role)
	if !entities.ValidRegistrationRole(role) {
		return nil, domainerrors.BadRequest("unknown role")
	}

	_, err := u.userRepo.GetByEmail(ctx, input.Email)
	if err == nil {
		return nil, domainerrors.BadRequest("user with this email already exists")
	}
	if !errors.Is(err, domainerrors.ErrNotFound) {
		return nil, err
	}

	passwordHash, err := crypto.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user := &entities.User{
		ID:           uuid.New(),
		Email:        input.Email,
		Name:         input.Name,
		PasswordHash: passwordHash,
		Role:         role,
		IsActive:     true,
	}
	switch role {
	case entities.UserRoleInvestor:
		user.Investor = &entities.InvestorProfile{Interests: []string{}, Regions: []string{}}
	case entities.UserRoleMentor:
		user.Mentor = &entities.MentorProfile{Specialties: []string{}, Available: true}
	}

	if err := u.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	return u.authResponse(user)
}

// Login authenticates a user by email and password
func (u *AuthUsecase) Login(ctx context.Context, input *entities.LoginInput) (*entities.AuthResponse, error) {
	user, err := u.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.Unauthorized("invalid email or password")
		}
		return nil, err
	}

	if !crypto.CheckPassword(input.Password, user.PasswordHash) {
		return nil, domainerrors.Unauthorized("invalid email or password")
	}

	if !user.IsActive {
		return nil, domainerrors.NewAppError(http.StatusForbidden, "account is disabled", domainerrors.ErrAccountDisabled)
	}

	return u.authResponse(user)
}

// GetUserByID resolves the authenticated user
func (u *AuthUsecase) GetUserByID(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	user, err := u.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("user not found")
		}
		return nil, err
	}
	return user, nil
}

func (u *AuthUsecase) authResponse(user *entities.User) (*entities.AuthResponse, error) {
	token, err := u.jwtService.GenerateToken(user.ID, user.Email, string(user.Role))
	if err != nil {
		return nil, err
	}
	return &entities.AuthResponse{
		AccessToken:          token,
		TokenType:            "bearer",
		User:                 user.Summary(),
		RequiresTelegramLink: !user.TelegramLinked,
	}, nil
}
