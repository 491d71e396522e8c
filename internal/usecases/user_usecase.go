package usecases

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"startup-platform.backend/internal/domain/entities"
	domainerrors "startup-platform.backend/internal/domain/errors"
	"startup-platform.backend/internal/domain/repositories"
)

// telegramHandleRe matches a handle of the @name form with telegram's
// username length rules.
var telegramHandleRe = regexp.MustCompile(`^@[a-zA-Z0-9_]{5,32}$`)

// TelegramLinkResponse is returned after the handle is stored, pointing the
// user at the bot that completes the link.
type TelegramLinkResponse struct {
	Message          string `json:"message"`
	TelegramUsername string `json:"telegramUsername"`
	BotUsername      string `json:"botUsername"`
}

// UserUsecase handles profile and telegram link business logic
type UserUsecase struct {
	userRepo    repositories.UserRepository
	telegram    *TelegramUsecase
	botUsername string
}

// NewUserUsecase creates a new user usecase
func NewUserUsecase(userRepo repositories.UserRepository, telegram *TelegramUsecase, botUsername string) *UserUsecase {
	return &UserUsecase{
		userRepo:    userRepo,
		telegram:    telegram,
		botUsername: botUsername,
	}
}

// LinkTelegram stores the user's claimed handle. The link stays unconfirmed
// until the bot reports the user pressed /start.
func (u *UserUsecase) LinkTelegram(ctx context.Context, userID uuid.UUID, input *entities.TelegramLinkInput) (*TelegramLinkResponse, error) {
	if !telegramHandleRe.MatchString(input.TelegramUsername) {
		return nil, domainerrors.BadRequest("telegram username must look like @handle (5-32 letters, digits or underscores)")
	}

	user, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.TelegramLinked {
		return nil, domainerrors.BadRequest("telegram is already linked to this account")
	}

	holder, err := u.userRepo.GetByTelegramUsername(ctx, input.TelegramUsername)
	if err != nil && !errors.Is(err, domainerrors.ErrNotFound) {
		return nil, err
	}
	if holder != nil && holder.ID != userID {
		return nil, domainerrors.BadRequest("this telegram username is already taken")
	}

	user.TelegramUsername = null.StringFrom(input.TelegramUsername)
	if err := u.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return &TelegramLinkResponse{
		Message:          fmt.Sprintf("Telegram username saved. Open %s and send /start to finish linking.", u.botUsername),
		TelegramUsername: input.TelegramUsername,
		BotUsername:      u.botUsername,
	}, nil
}

// ConfirmTelegram completes the link once the bot has seen the user. A link
// confirms exactly once; repeating the confirmation is a conflict.
func (u *UserUsecase) ConfirmTelegram(ctx context.Context, input *entities.TelegramConfirmInput) (*entities.User, error) {
	user, err := u.userRepo.GetByTelegramUsername(ctx, input.TelegramUsername)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("no user claimed this telegram username")
		}
		return nil, err
	}
	if user.TelegramLinked {
		return nil, domainerrors.Conflict("telegram is already confirmed for this account")
	}

	now := time.Now()
	user.TelegramID = null.StringFrom(input.TelegramID)
	user.TelegramLinked = true
	user.TelegramLinkedAt = &now
	if err := u.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	u.telegram.SendNotification(ctx, user.ID,
		fmt.Sprintf("Telegram linked to %s. You will now receive updates about your startups.", user.Email))

	return user, nil
}
