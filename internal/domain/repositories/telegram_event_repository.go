package repositories

import (
	"context"

	"startup-platform.backend/internal/domain/entities"
)

// TelegramEventRepository defines the delivery audit log. Records are
// append-only.
type TelegramEventRepository interface {
	Append(ctx context.Context, event *entities.TelegramEvent) error
}
