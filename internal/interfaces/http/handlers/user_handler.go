package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"startup-platform.backend/internal/domain/entities"
	domainerrors "startup-platform.backend/internal/domain/errors"
	"startup-platform.backend/internal/interfaces/http/middleware"
	"startup-platform.backend/internal/interfaces/http/response"
	"startup-platform.backend/internal/usecases"
)

// UserHandler handles profile and telegram link endpoints
type UserHandler struct {
	userUsecase *usecases.UserUsecase
}

// NewUserHandler creates a new user handler
func NewUserHandler(userUsecase *usecases.UserUsecase) *UserHandler {
	return &UserHandler{
		userUsecase: userUsecase,
	}
}

// LinkTelegram stores the caller's telegram handle pending bot confirmation
// POST /api/user/telegram/link
func (h *UserHandler) LinkTelegram(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("not authenticated"))
		return
	}

	var input entities.TelegramLinkInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	resp, err := h.userUsecase.LinkTelegram(c.Request.Context(), userID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp)
}

// ConfirmTelegram completes a link; called by the bot, not the user
// POST /api/user/telegram/confirm
func (h *UserHandler) ConfirmTelegram(c *gin.Context) {
	var input entities.TelegramConfirmInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	user, err := h.userUsecase.ConfirmTelegram(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"message": "Telegram linked",
		"user":    user.Summary(),
	})
}
