package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"startup-platform.backend/internal/domain/entities"
	domainerrors "startup-platform.backend/internal/domain/errors"
	"startup-platform.backend/internal/interfaces/http/middleware"
	"startup-platform.backend/internal/interfaces/http/response"
	"startup-platform.backend/internal/usecases"
	"startup-platform.backend/pkg/utils"
)

// MentorHandler handles the mentor directory and mentorship endpoints
type MentorHandler struct {
	mentorshipUsecase *usecases.MentorshipUsecase
}

// NewMentorHandler creates a new mentor handler
func NewMentorHandler(mentorshipUsecase *usecases.MentorshipUsecase) *MentorHandler {
	return &MentorHandler{
		mentorshipUsecase: mentorshipUsecase,
	}
}

// ListMentors returns the public mentor directory
// GET /api/mentors
func (h *MentorHandler) ListMentors(c *gin.Context) {
	var page utils.PaginationParams
	_ = c.ShouldBindQuery(&page)
	p := utils.NormalizePagination(page.Skip, page.Limit, defaultPageSize, maxPageSize)

	filter := entities.MentorFilter{
		Specialty: c.Query("specialty"),
		Skip:      p.Skip,
		Limit:     p.Limit,
	}
	if raw := c.Query("minExperience"); raw != "" {
		var v float64
		if err := bindFloat(raw, &v); err != nil || v < 0 {
			response.Error(c, domainerrors.BadRequest("minExperience must be a non-negative number"))
			return
		}
		filter.MinExperience = int(v)
	}

	cards, total, err := h.mentorshipUsecase.ListMentors(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"items": cards,
		"meta":  utils.NewPageMeta(int64(total), p),
	})
}

// CreateRequest opens a mentorship request
// POST /api/mentorship/request
func (h *MentorHandler) CreateRequest(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("not authenticated"))
		return
	}

	var input entities.CreateMentorshipRequestInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	request, err := h.mentorshipUsecase.CreateRequest(c.Request.Context(), userID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, request)
}

// Respond lets the mentor accept or reject a pending request
// POST /api/mentorship/requests/:id/respond
func (h *MentorHandler) Respond(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("not authenticated"))
		return
	}
	requestID, ok := requestIDParam(c)
	if !ok {
		return
	}

	var input entities.RespondMentorshipInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	request, err := h.mentorshipUsecase.Respond(c.Request.Context(), userID, requestID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, request)
}

// Complete closes an accepted mentorship
// POST /api/mentorship/requests/:id/complete
func (h *MentorHandler) Complete(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("not authenticated"))
		return
	}
	requestID, ok := requestIDParam(c)
	if !ok {
		return
	}

	request, err := h.mentorshipUsecase.Complete(c.Request.Context(), userID, requestID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, request)
}

func requestIDParam(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid request id"))
		return uuid.Nil, false
	}
	return id, true
}
