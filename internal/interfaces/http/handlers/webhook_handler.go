package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	domainerrors "startup-platform.backend/internal/domain/errors"
	"startup-platform.backend/internal/interfaces/http/response"
	"startup-platform.backend/internal/usecases"
)

// WebhookHandler handles inbound bot callbacks
type WebhookHandler struct {
	telegramUsecase *usecases.TelegramUsecase
}

// NewWebhookHandler creates a new webhook handler
func NewWebhookHandler(telegramUsecase *usecases.TelegramUsecase) *WebhookHandler {
	return &WebhookHandler{
		telegramUsecase: telegramUsecase,
	}
}

// Telegram records a raw bot update in the audit log. The payload is stored
// as-is; no command dispatch happens here.
// POST /api/webhook/telegram
func (h *WebhookHandler) Telegram(c *gin.Context) {
	var payload map[string]interface{}
	if err := c.ShouldBindJSON(&payload); err != nil {
		response.Error(c, domainerrors.BadRequest("invalid webhook payload"))
		return
	}

	if err := h.telegramUsecase.ReceiveWebhook(c.Request.Context(), payload); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"status": "received"})
}
