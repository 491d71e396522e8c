package usecases

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"startup-platform.backend/internal/domain/entities"
	domainerrors "startup-platform.backend/internal/domain/errors"
	"startup-platform.backend/internal/domain/repositories"
)

// MentorshipUsecase handles the mentor directory and request state machine
type MentorshipUsecase struct {
	userRepo       repositories.UserRepository
	mentorshipRepo repositories.MentorshipRepository
	telegram       *TelegramUsecase
}

// NewMentorshipUsecase creates a new mentorship usecase
func NewMentorshipUsecase(
	userRepo repositories.UserRepository,
	mentorshipRepo repositories.MentorshipRepository,
	telegram *TelegramUsecase,
) *MentorshipUsecase {
	return &MentorshipUsecase{
		userRepo:       userRepo,
		mentorshipRepo: mentorshipRepo,
		telegram:       telegram,
	}
}

// ListMentors returns the public mentor directory, filtered by specialty and
// minimum experience, sorted by experience descending, paginated in memory.
func (u *MentorshipUsecase) ListMentors(ctx context.Context, filter entities.MentorFilter) ([]entities.MentorCard, int, error) {
	mentors, err := u.userRepo.ListAvailableMentors(ctx)
	if err != nil {
		return nil, 0, err
	}

	matched := make([]*entities.User, 0, len(mentors))
	for _, m := range mentors {
		if m.Mentor == nil {
			continue
		}
		if filter.Specialty != "" && !contains(m.Mentor.Specialties, filter.Specialty) {
			continue
		}
		if filter.MinExperience > 0 && m.Mentor.Experience < filter.MinExperience {
			continue
		}
		matched = append(matched, m)
	}

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].Mentor.Experience > matched[j].Mentor.Experience
	})

	total := len(matched)
	start := filter.Skip
	if start > total {
		start = total
	}
	end := start + filter.Limit
	if filter.Limit <= 0 || end > total {
		end = total
	}

	cards := make([]entities.MentorCard, 0, end-start)
	for _, m := range matched[start:end] {
		cards = append(cards, entities.MentorCard{
			ID:               m.ID,
			Name:             m.Name,
			Bio:              m.Bio,
			Specialties:      m.Mentor.Specialties,
			Experience:       m.Mentor.Experience,
			HourlyRate:       m.Mentor.HourlyRate,
			TelegramUsername: m.TelegramUsername,
		})
	}
	return cards, total, nil
}

// CreateRequest opens a mentorship request. One active request per
// (mentee, mentor) pair; both sides need confirmed telegram links.
func (u *MentorshipUsecase) CreateRequest(ctx context.Context, menteeID uuid.UUID, input *entities.CreateMentorshipRequestInput) (*entities.MentorshipRequest, error) {
	mentor, err := u.userRepo.GetByID(ctx, input.MentorID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("mentor not found")
		}
		return nil, err
	}
	if mentor.Role != entities.UserRoleMentor || !mentor.IsActive {
		return nil, domainerrors.NotFound("mentor not found")
	}

	mentee, err := u.userRepo.GetByID(ctx, menteeID)
	if err != nil {
		return nil, err
	}
	if !mentee.TelegramLinked {
		return nil, domainerrors.NewAppError(http.StatusBadRequest, "link your telegram account first", domainerrors.ErrTelegramNotLinked)
	}
	if !mentor.TelegramLinked {
		return nil, domainerrors.NewAppError(http.StatusBadRequest, "the mentor has not linked telegram yet", domainerrors.ErrTelegramNotLinked)
	}

	existing, err := u.mentorshipRepo.GetActiveByPair(ctx, menteeID, input.MentorID)
	if err != nil && !errors.Is(err, domainerrors.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, domainerrors.Conflict("you already have an active request to this mentor")
	}

	duration := input.Duration
	if duration == "" {
		duration = "1 month"
	}
	request := &entities.MentorshipRequest{
		ID:             uuid.New(),
		MenteeID:       menteeID,
		MentorID:       input.MentorID,
		StartupID:      input.StartupID,
		RequestMessage: null.StringFromPtr(input.RequestMessage),
		Goals:          input.Goals,
		Duration:       duration,
		Status:         entities.MentorshipPending,
		CreatedAt:      time.Now(),
		UpdatedAt:      time.Now(),
	}
	if err := u.mentorshipRepo.Create(ctx, request); err != nil {
		return nil, err
	}

	u.telegram.SendNotification(ctx, mentor.ID,
		fmt.Sprintf("%s requested mentorship from you (%s). Open the platform to respond.", mentee.Name, duration))
	u.telegram.InitiateContact(ctx, menteeID, mentor.ID, input.StartupID, "")

	return request, nil
}

// Respond lets the mentor accept or reject a pending request
func (u *MentorshipUsecase) Respond(ctx context.Context, mentorID uuid.UUID, requestID uuid.UUID, input *entities.RespondMentorshipInput) (*entities.MentorshipRequest, error) {
	request, err := u.mentorshipRepo.GetByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("mentorship request not found")
		}
		return nil, err
	}
	if request.MentorID != mentorID {
		return nil, domainerrors.Forbidden("only the requested mentor can respond")
	}
	if request.Status != entities.MentorshipPending {
		return nil, domainerrors.Conflict("the request was already answered")
	}

	if input.Accept {
		request.Status = entities.MentorshipAccepted
	} else {
		request.Status = entities.MentorshipRejected
	}
	request.ResponseMessage = null.StringFromPtr(input.ResponseMessage)
	if err := u.mentorshipRepo.UpdateStatus(ctx, request); err != nil {
		return nil, err
	}

	verdict := "accepted"
	if !input.Accept {
		verdict = "declined"
	}
	u.telegram.SendNotification(ctx, request.MenteeID,
		fmt.Sprintf("Your mentorship request was %s.", verdict))

	return request, nil
}

// Complete closes an accepted mentorship. Either party may close it.
func (u *MentorshipUsecase) Complete(ctx context.Context, callerID uuid.UUID, requestID uuid.UUID) (*entities.MentorshipRequest, error) {
	request, err := u.mentorshipRepo.GetByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("mentorship request not found")
		}
		return nil, err
	}
	if request.MentorID != callerID && request.MenteeID != callerID {
		return nil, domainerrors.Forbidden("only a participant can complete the mentorship")
	}
	if request.Status != entities.MentorshipAccepted {
		return nil, domainerrors.Conflict("only an accepted mentorship can be completed")
	}

	now := time.Now()
	request.Status = entities.MentorshipCompleted
	request.CompletedAt = &now
	if err := u.mentorshipRepo.UpdateStatus(ctx, request); err != nil {
		return nil, err
	}

	other := request.MenteeID
	if callerID == request.MenteeID {
		other = request.MentorID
	}
	u.telegram.SendNotification(ctx, other, "Your mentorship was marked as completed.")

	return request, nil
}
