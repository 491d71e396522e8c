package usecases

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"startup-platform.backend/internal/domain/entities"
	"startup-platform.backend/internal/domain/repositories"
	"startup-platform.backend/pkg/logger"
)

// notificationPreviewLen caps how much message text lands in the audit log.
const notificationPreviewLen = 100

// NotificationSender delivers a message to a linked telegram account.
type NotificationSender interface {
	Send(ctx context.Context, telegramUsername, message string) error
}

// LogNotificationSender writes deliveries to the structured log. It stands in
// for the Bot API client until one is wired.
type LogNotificationSender struct{}

func (LogNotificationSender) Send(ctx context.Context, telegramUsername, message string) error {
	logger.Info(ctx, "telegram notification",
		zap.String("to", telegramUsername),
		zap.String("message", message))
	return nil
}

// TelegramUsecase dispatches telegram notifications and keeps the delivery
// audit log. Every outcome is soft: callers never fail a request because a
// notification did not go out.
type TelegramUsecase struct {
	userRepo  repositories.UserRepository
	eventRepo repositories.TelegramEventRepository
	sender    NotificationSender
}

// NewTelegramUsecase creates a new telegram usecase
func NewTelegramUsecase(
	userRepo repositories.UserRepository,
	eventRepo repositories.TelegramEventRepository,
	sender NotificationSender,
) *TelegramUsecase {
	return &TelegramUsecase{
		userRepo:  userRepo,
		eventRepo: eventRepo,
		sender:    sender,
	}
}

// SendNotification delivers a message to the user's linked telegram account.
// Users without a confirmed link are skipped silently.
func (u *TelegramUsecase) SendNotification(ctx context.Context, userID uuid.UUID, message string) entities.DeliveryStatus {
	user, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		logger.Warn(ctx, "notification target lookup failed",
			zap.String("user_id", userID.String()), zap.Error(err))
		return entities.DeliverySkipped
	}
	if !user.TelegramLinked || !user.TelegramUsername.Valid {
		logger.Debug(ctx, "notification skipped, telegram not linked",
			zap.String("user_id", userID.String()))
		return entities.DeliverySkipped
	}

	// Audit the attempt before delivery so failed sends leave a trace too.
	event := &entities.TelegramEvent{
		ID:        uuid.New(),
		EventType: entities.TelegramEventNotificationSent,
		UserID:    &userID,
		Metadata: map[string]interface{}{
			"message_type":    "notification",
			"timestamp":       time.Now().UTC().Format(time.RFC3339),
			"user_telegram":   user.TelegramUsername.String,
			"message_preview": previewOf(message),
		},
		CreatedAt: time.Now(),
	}
	if err := u.eventRepo.Append(ctx, event); err != nil {
		logger.Error(ctx, "failed to record notification event", zap.Error(err))
	}

	if err := u.sender.Send(ctx, user.TelegramUsername.String, message); err != nil {
		logger.Error(ctx, "telegram delivery failed",
			zap.String("user_id", userID.String()), zap.Error(err))
		return entities.DeliveryFailed
	}

	return entities.DeliveryDelivered
}

// InitiateContact records a contact request between two users and notifies
// both sides. Returns false when either side cannot be resolved.
func (u *TelegramUsecase) InitiateContact(ctx context.Context, fromUserID, toUserID uuid.UUID, startupID *uuid.UUID, startupName string) bool {
	fromUser, err := u.userRepo.GetByID(ctx, fromUserID)
	if err != nil {
		logger.Warn(ctx, "contact initiator lookup failed",
			zap.String("user_id", fromUserID.String()), zap.Error(err))
		return false
	}
	toUser, err := u.userRepo.GetByID(ctx, toUserID)
	if err != nil {
		logger.Warn(ctx, "contact target lookup failed",
			zap.String("user_id", toUserID.String()), zap.Error(err))
		return false
	}

	subject := "the project"
	if startupName != "" {
		subject = fmt.Sprintf("'%s'", startupName)
	}

	event := &entities.TelegramEvent{
		ID:            uuid.New(),
		EventType:     entities.TelegramEventContactInitiated,
		UserID:        &fromUserID,
		RelatedUserID: &toUserID,
		StartupID:     startupID,
		Metadata: map[string]interface{}{
			"action":    "contact_request",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"from_user": fromUser.TelegramUsername.String,
			"to_user":   toUser.TelegramUsername.String,
		},
		CreatedAt: time.Now(),
	}
	if err := u.eventRepo.Append(ctx, event); err != nil {
		logger.Error(ctx, "failed to record contact event", zap.Error(err))
		return false
	}

	u.SendNotification(ctx, toUserID,
		fmt.Sprintf("%s wants to get in touch about %s. Reply in telegram: %s",
			fromUser.Name, subject, handleOf(fromUser.TelegramUsername.String)))
	u.SendNotification(ctx, fromUserID,
		fmt.Sprintf("%s was notified about your interest in %s. Their telegram: %s",
			toUser.Name, subject, handleOf(toUser.TelegramUsername.String)))

	return true
}

// ReceiveWebhook records a raw bot callback in the audit log
func (u *TelegramUsecase) ReceiveWebhook(ctx context.Context, payload map[string]interface{}) error {
	return u.eventRepo.Append(ctx, &entities.TelegramEvent{
		ID:        uuid.New(),
		EventType: entities.TelegramEventWebhookReceived,
		Metadata:  payload,
		CreatedAt: time.Now(),
	})
}

func previewOf(message string) string {
	runes := []rune(message)
	if len(runes) <= notificationPreviewLen {
		return message
	}
	return string(runes[:notificationPreviewLen])
}

func handleOf(username string) string {
	if username == "" {
		return "@unknown"
	}
	return "@" + strings.TrimPrefix(username, "@")
}
