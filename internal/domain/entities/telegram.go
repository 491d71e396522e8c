package entities

import (
	"time"

	"github.com/google/uuid"
)

// Telegram event types.
const (
	TelegramEventNotificationSent = "notification_sent"
	TelegramEventContactInitiated = "contact_initiated"
	TelegramEventWebhookReceived  = "telegram_webhook_received"
)

// TelegramEvent is an immutable audit record of an out-of-band delivery or
// contact-initiation attempt. It stores metadata only, never message text;
// notification previews are truncated before they land here.
type TelegramEvent struct {
	ID            uuid.UUID              `json:"id"`
	EventType     string                 `json:"eventType"`
	UserID        *uuid.UUID             `json:"userId,omitempty"`
	RelatedUserID *uuid.UUID             `json:"relatedUserId,omitempty"`
	StartupID     *uuid.UUID             `json:"startupId,omitempty"`
	Metadata      map[string]interface{} `json:"metadata,omitempty"`
	CreatedAt     time.Time              `json:"createdAt"`
}

// DeliveryStatus is the explicit soft-fail outcome of a notification attempt.
// Callers treat every status as non-fatal.
type DeliveryStatus string

const (
	DeliveryDelivered DeliveryStatus = "delivered"
	DeliverySkipped   DeliveryStatus = "skipped"
	DeliveryFailed    DeliveryStatus = "failed"
)
