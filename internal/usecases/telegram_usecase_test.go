package usecases_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/volatiletech/null/v8"
	"startup-platform.backend/internal/domain/entities"
	domainerrors "startup-platform.backend/internal/domain/errors"
	"startup-platform.backend/internal/usecases"
)

func linkedUser(name, handle string) *entities.User {
	return &entities.User{
		ID:               uuid.New(),
		Name:             name,
		Role:             entities.UserRoleStartupOwner,
		IsActive:         true,
		TelegramUsername: null.StringFrom(handle),
		TelegramLinked:   true,
	}
}

func TestTelegramUsecase_SendNotification(t *testing.T) {
	ctx := context.Background()

	t.Run("delivers and audits", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		eventRepo := new(MockTelegramEventRepository)
		sender := new(MockNotificationSender)
		uc := usecases.NewTelegramUsecase(userRepo, eventRepo, sender)

		user := linkedUser("Founder", "@founder")
		userRepo.On("GetByID", ctx, user.ID).Return(user, nil)
		sender.On("Send", ctx, "@founder", "hello").Return(nil)
		eventRepo.On("Append", ctx, mock.AnythingOfType("*entities.TelegramEvent")).Return(nil)

		status := uc.SendNotification(ctx, user.ID, "hello")
		assert.Equal(t, entities.DeliveryDelivered, status)

		event := eventRepo.Calls[0].Arguments.Get(1).(*entities.TelegramEvent)
		assert.Equal(t, entities.TelegramEventNotificationSent, event.EventType)
		assert.NotEqual(t, uuid.Nil, event.ID)
		assert.Equal(t, "hello", event.Metadata["message_preview"])
	})

	t.Run("truncates the audited preview", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		eventRepo := new(MockTelegramEventRepository)
		sender := new(MockNotificationSender)
		uc := usecases.NewTelegramUsecase(userRepo, eventRepo, sender)

		user := linkedUser("Founder", "@founder")
		long := strings.Repeat("x", 250)
		userRepo.On("GetByID", ctx, user.ID).Return(user, nil)
		sender.On("Send", ctx, "@founder", long).Return(nil)
		eventRepo.On("Append", ctx, mock.AnythingOfType("*entities.TelegramEvent")).Return(nil)

		status := uc.SendNotification(ctx, user.ID, long)
		assert.Equal(t, entities.DeliveryDelivered, status)

		event := eventRepo.Calls[0].Arguments.Get(1).(*entities.TelegramEvent)
		preview := event.Metadata["message_preview"].(string)
		assert.Len(t, preview, 100)
	})

	t.Run("skips users without a confirmed link", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		eventRepo := new(MockTelegramEventRepository)
		sender := new(MockNotificationSender)
		uc := usecases.NewTelegramUsecase(userRepo, eventRepo, sender)

		user := &entities.User{ID: uuid.New(), TelegramUsername: null.StringFrom("@pending")}
		userRepo.On("GetByID", ctx, user.ID).Return(user, nil)

		status := uc.SendNotification(ctx, user.ID, "hello")
		assert.Equal(t, entities.DeliverySkipped, status)
		sender.AssertNotCalled(t, "Send")
		eventRepo.AssertNotCalled(t, "Append")
	})

	t.Run("skips when the target cannot be resolved", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		eventRepo := new(MockTelegramEventRepository)
		sender := new(MockNotificationSender)
		uc := usecases.NewTelegramUsecase(userRepo, eventRepo, sender)

		id := uuid.New()
		userRepo.On("GetByID", ctx, id).Return(nil, domainerrors.ErrNotFound)

		status := uc.SendNotification(ctx, id, "hello")
		assert.Equal(t, entities.DeliverySkipped, status)
	})

	t.Run("reports sender failures but still audits the attempt", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		eventRepo := new(MockTelegramEventRepository)
		sender := new(MockNotificationSender)
		uc := usecases.NewTelegramUsecase(userRepo, eventRepo, sender)

		user := linkedUser("Founder", "@founder")
		userRepo.On("GetByID", ctx, user.ID).Return(user, nil)
		eventRepo.On("Append", ctx, mock.AnythingOfType("*entities.TelegramEvent")).Return(nil)
		sender.On("Send", ctx, "@founder", "hello").Return(errors.New("bot api down"))

		status := uc.SendNotification(ctx, user.ID, "hello")
		assert.Equal(t, entities.DeliveryFailed, status)

		require.Len(t, eventRepo.Calls, 1)
		event := eventRepo.Calls[0].Arguments.Get(1).(*entities.TelegramEvent)
		assert.Equal(t, entities.TelegramEventNotificationSent, event.EventType)
	})
}

func TestTelegramUsecase_InitiateContact(t *testing.T) {
	ctx := context.Background()

	t.Run("notifies both sides and audits", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		eventRepo := new(MockTelegramEventRepository)
		sender := new(MockNotificationSender)
		uc := usecases.NewTelegramUsecase(userRepo, eventRepo, sender)

		from := linkedUser("Investor", "@investor")
		to := linkedUser("Founder", "@founder")
		startupID := uuid.New()

		userRepo.On("GetByID", ctx, from.ID).Return(from, nil)
		userRepo.On("GetByID", ctx, to.ID).Return(to, nil)
		eventRepo.On("Append", ctx, mock.AnythingOfType("*entities.TelegramEvent")).Return(nil)
		sender.On("Send", ctx, "@founder", mock.AnythingOfType("string")).Return(nil)
		sender.On("Send", ctx, "@investor", mock.AnythingOfType("string")).Return(nil)

		ok := uc.InitiateContact(ctx, from.ID, to.ID, &startupID, "RoboFarm")
		assert.True(t, ok)

		event := eventRepo.Calls[0].Arguments.Get(1).(*entities.TelegramEvent)
		assert.Equal(t, entities.TelegramEventContactInitiated, event.EventType)
		require.NotNil(t, event.StartupID)
		assert.Equal(t, startupID, *event.StartupID)

		toMessage := senderMessageFor(t, sender, "@founder")
		assert.Contains(t, toMessage, "Investor")
		assert.Contains(t, toMessage, "'RoboFarm'")
		fromMessage := senderMessageFor(t, sender, "@investor")
		assert.Contains(t, fromMessage, "@founder")
	})

	t.Run("fails closed when a side cannot be resolved", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		eventRepo := new(MockTelegramEventRepository)
		sender := new(MockNotificationSender)
		uc := usecases.NewTelegramUsecase(userRepo, eventRepo, sender)

		from := linkedUser("Investor", "@investor")
		missing := uuid.New()
		userRepo.On("GetByID", ctx, from.ID).Return(from, nil)
		userRepo.On("GetByID", ctx, missing).Return(nil, domainerrors.ErrNotFound)

		ok := uc.InitiateContact(ctx, from.ID, missing, nil, "")
		assert.False(t, ok)
		eventRepo.AssertNotCalled(t, "Append")
	})
}

func TestTelegramUsecase_ReceiveWebhook(t *testing.T) {
	ctx := context.Background()
	userRepo := new(MockUserRepository)
	eventRepo := new(MockTelegramEventRepository)
	uc := usecases.NewTelegramUsecase(userRepo, eventRepo, new(MockNotificationSender))

	eventRepo.On("Append", ctx, mock.AnythingOfType("*entities.TelegramEvent")).Return(nil)

	err := uc.ReceiveWebhook(ctx, map[string]interface{}{"update_id": float64(42)})
	require.NoError(t, err)

	event := eventRepo.Calls[0].Arguments.Get(1).(*entities.TelegramEvent)
	assert.Equal(t, entities.TelegramEventWebhookReceived, event.EventType)
	assert.Equal(t, float64(42), event.Metadata["update_id"])
}

func senderMessageFor(t *testing.T, sender *MockNotificationSender, handle string) string {
	t.Helper()
	for _, call := range sender.Calls {
		if call.Arguments.String(1) == handle {
			return call.Arguments.String(2)
		}
	}
	t.Fatalf("no message sent to %s", handle)
	return ""
}
