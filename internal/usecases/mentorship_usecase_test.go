package usecases_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/volatiletech/null/v8"
	"startup-platform.backend/internal/domain/entities"
	domainerrors "startup-platform.backend/internal/domain/errors"
	"startup-platform.backend/internal/usecases"
)

type mentorshipMocks struct {
	userRepo       *MockUserRepository
	mentorshipRepo *MockMentorshipRepository
	eventRepo      *MockTelegramEventRepository
	sender         *MockNotificationSender
}

func newMentorshipUsecase() (*usecases.MentorshipUsecase, *mentorshipMocks) {
	m := &mentorshipMocks{
		userRepo:       new(MockUserRepository),
		mentorshipRepo: new(MockMentorshipRepository),
		eventRepo:      new(MockTelegramEventRepository),
		sender:         new(MockNotificationSender),
	}
	telegram := usecases.NewTelegramUsecase(m.userRepo, m.eventRepo, m.sender)
	return usecases.NewMentorshipUsecase(m.userRepo, m.mentorshipRepo, telegram), m
}

func directoryMentor(name string, specialties []string, experience int) *entities.User {
	return &entities.User{
		ID:       uuid.New(),
		Name:     name,
		Role:     entities.UserRoleMentor,
		IsActive: true,
		Mentor: &entities.MentorProfile{
			Specialties: specialties,
			Experience:  experience,
			Available:   true,
		},
	}
}

func TestMentorshipUsecase_ListMentors(t *testing.T) {
	ctx := context.Background()

	junior := directoryMentor("Junior", []string{"fintech"}, 2)
	senior := directoryMentor("Senior", []string{"fintech", "agrotech"}, 12)
	mid := directoryMentor("Mid", []string{"agrotech"}, 6)
	directory := []*entities.User{junior, senior, mid}

	t.Run("sorts by experience descending", func(t *testing.T) {
		uc, m := newMentorshipUsecase()
		m.userRepo.On("ListAvailableMentors", ctx).Return(directory, nil)

		cards, total, err := uc.ListMentors(ctx, entities.MentorFilter{Limit: 10})
		require.NoError(t, err)
		assert.Equal(t, 3, total)
		require.Len(t, cards, 3)
		assert.Equal(t, "Senior", cards[0].Name)
		assert.Equal(t, "Mid", cards[1].Name)
		assert.Equal(t, "Junior", cards[2].Name)
	})

	t.Run("filters by specialty and minimum experience", func(t *testing.T) {
		uc, m := newMentorshipUsecase()
		m.userRepo.On("ListAvailableMentors", ctx).Return(directory, nil)

		cards, total, err := uc.ListMentors(ctx, entities.MentorFilter{Specialty: "fintech", MinExperience: 5, Limit: 10})
		require.NoError(t, err)
		assert.Equal(t, 1, total)
		require.Len(t, cards, 1)
		assert.Equal(t, "Senior", cards[0].Name)
	})

	t.Run("paginates in memory", func(t *testing.T) {
		uc, m := newMentorshipUsecase()
		m.userRepo.On("ListAvailableMentors", ctx).Return(directory, nil)

		cards, total, err := uc.ListMentors(ctx, entities.MentorFilter{Skip: 1, Limit: 1})
		require.NoError(t, err)
		assert.Equal(t, 3, total)
		require.Len(t, cards, 1)
		assert.Equal(t, "Mid", cards[0].Name)

		cards, _, err = uc.ListMentors(ctx, entities.MentorFilter{Skip: 10, Limit: 10})
		require.NoError(t, err)
		assert.Empty(t, cards)
	})
}

func TestMentorshipUsecase_CreateRequest(t *testing.T) {
	ctx := context.Background()

	newLinkedMentor := func() *entities.User {
		mentor := directoryMentor("Mentor", []string{"agrotech"}, 8)
		mentor.TelegramUsername = null.StringFrom("@mentor")
		mentor.TelegramLinked = true
		return mentor
	}

	t.Run("creates a pending request and notifies the mentor", func(t *testing.T) {
		uc, m := newMentorshipUsecase()
		mentor := newLinkedMentor()
		mentee := linkedUser("Founder", "@founder")

		m.userRepo.On("GetByID", ctx, mentor.ID).Return(mentor, nil)
		m.userRepo.On("GetByID", ctx, mentee.ID).Return(mentee, nil)
		m.mentorshipRepo.On("GetActiveByPair", ctx, mentee.ID, mentor.ID).Return(nil, domainerrors.ErrNotFound)
		m.mentorshipRepo.On("Create", ctx, mock.AnythingOfType("*entities.MentorshipRequest")).Return(nil)
		m.sender.On("Send", ctx, mock.AnythingOfType("string"), mock.AnythingOfType("string")).Return(nil)
		m.eventRepo.On("Append", ctx, mock.Anything).Return(nil)

		request, err := uc.CreateRequest(ctx, mentee.ID, &entities.CreateMentorshipRequestInput{
			MentorID: mentor.ID,
			Goals:    []string{"fundraising"},
		})
		require.NoError(t, err)
		assert.Equal(t, entities.MentorshipPending, request.Status)
		assert.Equal(t, "1 month", request.Duration)
		assert.Equal(t, mentee.ID, request.MenteeID)

		assert.Contains(t, m.sender.Calls[0].Arguments.String(2), "requested mentorship")
	})

	t.Run("an active pair blocks a second request", func(t *testing.T) {
		uc, m := newMentorshipUsecase()
		mentor := newLinkedMentor()
		mentee := linkedUser("Founder", "@founder")
		active := &entities.MentorshipRequest{ID: uuid.New(), Status: entities.MentorshipPending}

		m.userRepo.On("GetByID", ctx, mentor.ID).Return(mentor, nil)
		m.userRepo.On("GetByID", ctx, mentee.ID).Return(mentee, nil)
		m.mentorshipRepo.On("GetActiveByPair", ctx, mentee.ID, mentor.ID).Return(active, nil)

		_, err := uc.CreateRequest(ctx, mentee.ID, &entities.CreateMentorshipRequestInput{MentorID: mentor.ID})
		assert.ErrorIs(t, err, domainerrors.ErrConflict)
		m.mentorshipRepo.AssertNotCalled(t, "Create")
	})

	t.Run("a non-mentor target is not found", func(t *testing.T) {
		uc, m := newMentorshipUsecase()
		investor := investorWith([]string{"agrotech"}, nil)

		m.userRepo.On("GetByID", ctx, investor.ID).Return(investor, nil)

		_, err := uc.CreateRequest(ctx, uuid.New(), &entities.CreateMentorshipRequestInput{MentorID: investor.ID})
		assert.ErrorIs(t, err, domainerrors.ErrNotFound)
	})

	t.Run("both sides need telegram", func(t *testing.T) {
		uc, m := newMentorshipUsecase()
		mentor := newLinkedMentor()
		mentee := &entities.User{ID: uuid.New(), Role: entities.UserRoleStartupOwner, IsActive: true}

		m.userRepo.On("GetByID", ctx, mentor.ID).Return(mentor, nil)
		m.userRepo.On("GetByID", ctx, mentee.ID).Return(mentee, nil)

		_, err := uc.CreateRequest(ctx, mentee.ID, &entities.CreateMentorshipRequestInput{MentorID: mentor.ID})
		assert.ErrorIs(t, err, domainerrors.ErrTelegramNotLinked)
	})
}

func TestMentorshipUsecase_Respond(t *testing.T) {
	ctx := context.Background()

	pendingRequest := func(mentorID uuid.UUID) *entities.MentorshipRequest {
		return &entities.MentorshipRequest{
			ID:       uuid.New(),
			MenteeID: uuid.New(),
			MentorID: mentorID,
			Status:   entities.MentorshipPending,
			Duration: "1 month",
		}
	}

	t.Run("accepting moves the request to accepted", func(t *testing.T) {
		uc, m := newMentorshipUsecase()
		mentorID := uuid.New()
		request := pendingRequest(mentorID)
		message := "happy to help"

		m.mentorshipRepo.On("GetByID", ctx, request.ID).Return(request, nil)
		m.mentorshipRepo.On("UpdateStatus", ctx, mock.AnythingOfType("*entities.MentorshipRequest")).Return(nil)
		m.userRepo.On("GetByID", ctx, request.MenteeID).Return(linkedUser("Founder", "@founder"), nil)
		m.sender.On("Send", ctx, mock.AnythingOfType("string"), mock.AnythingOfType("string")).Return(nil)
		m.eventRepo.On("Append", ctx, mock.Anything).Return(nil)

		updated, err := uc.Respond(ctx, mentorID, request.ID, &entities.RespondMentorshipInput{Accept: true, ResponseMessage: &message})
		require.NoError(t, err)
		assert.Equal(t, entities.MentorshipAccepted, updated.Status)
		assert.Equal(t, "happy to help", updated.ResponseMessage.String)
		assert.Contains(t, m.sender.Calls[0].Arguments.String(2), "accepted")
	})

	t.Run("rejecting frees the pair", func(t *testing.T) {
		uc, m := newMentorshipUsecase()
		mentorID := uuid.New()
		request := pendingRequest(mentorID)

		m.mentorshipRepo.On("GetByID", ctx, request.ID).Return(request, nil)
		m.mentorshipRepo.On("UpdateStatus", ctx, mock.Anything).Return(nil)
		m.userRepo.On("GetByID", ctx, request.MenteeID).Return(linkedUser("Founder", "@founder"), nil)
		m.sender.On("Send", ctx, mock.AnythingOfType("string"), mock.AnythingOfType("string")).Return(nil)
		m.eventRepo.On("Append", ctx, mock.Anything).Return(nil)

		updated, err := uc.Respond(ctx, mentorID, request.ID, &entities.RespondMentorshipInput{Accept: false})
		require.NoError(t, err)
		assert.Equal(t, entities.MentorshipRejected, updated.Status)
		assert.False(t, updated.Status.Active())
	})

	t.Run("only the requested mentor can respond", func(t *testing.T) {
		uc, m := newMentorshipUsecase()
		request := pendingRequest(uuid.New())
		m.mentorshipRepo.On("GetByID", ctx, request.ID).Return(request, nil)

		_, err := uc.Respond(ctx, uuid.New(), request.ID, &entities.RespondMentorshipInput{Accept: true})
		assert.ErrorIs(t, err, domainerrors.ErrForbidden)
	})

	t.Run("answering twice is a conflict", func(t *testing.T) {
		uc, m := newMentorshipUsecase()
		mentorID := uuid.New()
		request := pendingRequest(mentorID)
		request.Status = entities.MentorshipAccepted
		m.mentorshipRepo.On("GetByID", ctx, request.ID).Return(request, nil)

		_, err := uc.Respond(ctx, mentorID, request.ID, &entities.RespondMentorshipInput{Accept: false})
		assert.ErrorIs(t, err, domainerrors.ErrConflict)
	})
}

func TestMentorshipUsecase_Complete(t *testing.T) {
	ctx := context.Background()

	acceptedRequest := func() *entities.MentorshipRequest {
		return &entities.MentorshipRequest{
			ID:       uuid.New(),
			MenteeID: uuid.New(),
			MentorID: uuid.New(),
			Status:   entities.MentorshipAccepted,
		}
	}

	t.Run("either participant can complete", func(t *testing.T) {
		for name, pick := range map[string]func(*entities.MentorshipRequest) uuid.UUID{
			"mentee": func(r *entities.MentorshipRequest) uuid.UUID { return r.MenteeID },
			"mentor": func(r *entities.MentorshipRequest) uuid.UUID { return r.MentorID },
		} {
			t.Run(name, func(t *testing.T) {
				uc, m := newMentorshipUsecase()
				request := acceptedRequest()

				m.mentorshipRepo.On("GetByID", ctx, request.ID).Return(request, nil)
				m.mentorshipRepo.On("UpdateStatus", ctx, mock.Anything).Return(nil)
				m.userRepo.On("GetByID", ctx, mock.AnythingOfType("uuid.UUID")).Return(linkedUser("Other", "@other"), nil)
				m.sender.On("Send", ctx, mock.AnythingOfType("string"), mock.AnythingOfType("string")).Return(nil)
				m.eventRepo.On("Append", ctx, mock.Anything).Return(nil)

				updated, err := uc.Complete(ctx, pick(request), request.ID)
				require.NoError(t, err)
				assert.Equal(t, entities.MentorshipCompleted, updated.Status)
				require.NotNil(t, updated.CompletedAt)
				assert.WithinDuration(t, time.Now(), *updated.CompletedAt, time.Minute)
			})
		}
	})

	t.Run("strangers cannot complete", func(t *testing.T) {
		uc, m := newMentorshipUsecase()
		request := acceptedRequest()
		m.mentorshipRepo.On("GetByID", ctx, request.ID).Return(request, nil)

		_, err := uc.Complete(ctx, uuid.New(), request.ID)
		assert.ErrorIs(t, err, domainerrors.ErrForbidden)
	})

	t.Run("a pending request cannot be completed", func(t *testing.T) {
		uc, m := newMentorshipUsecase()
		request := acceptedRequest()
		request.Status = entities.MentorshipPending
		m.mentorshipRepo.On("GetByID", ctx, request.ID).Return(request, nil)

		_, err := uc.Complete(ctx, request.MenteeID, request.ID)
		assert.ErrorIs(t, err, domainerrors.ErrConflict)
	})
}
