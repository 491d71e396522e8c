package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"startup-platform.backend/internal/domain/entities"
	domainerrors "startup-platform.backend/internal/domain/errors"
	"startup-platform.backend/internal/interfaces/http/middleware"
	"startup-platform.backend/internal/interfaces/http/response"
	"startup-platform.backend/internal/usecases"
	"startup-platform.backend/pkg/utils"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// StartupHandler handles the startup catalog endpoints
type StartupHandler struct {
	startupUsecase    *usecases.StartupUsecase
	engagementUsecase *usecases.EngagementUsecase
}

// NewStartupHandler creates a new startup handler
func NewStartupHandler(startupUsecase *usecases.StartupUsecase, engagementUsecase *usecases.EngagementUsecase) *StartupHandler {
	return &StartupHandler{
		startupUsecase:    startupUsecase,
		engagementUsecase: engagementUsecase,
	}
}

// viewerFrom resolves the optional authenticated viewer from the gin context.
func viewerFrom(c *gin.Context) *usecases.Viewer {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return nil
	}
	role, _ := middleware.GetUserRole(c)
	return &usecases.Viewer{ID: userID, Role: role}
}

func startupIDParam(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid startup id"))
		return uuid.Nil, false
	}
	return id, true
}

// List returns the public catalog page
// GET /api/startups
func (h *StartupHandler) List(c *gin.Context) {
	var page utils.PaginationParams
	_ = c.ShouldBindQuery(&page)
	p := utils.NormalizePagination(page.Skip, page.Limit, defaultPageSize, maxPageSize)

	filter := entities.StartupFilter{
		Category: c.Query("category"),
		Stage:    c.Query("stage"),
		Region:   c.Query("region"),
		Skip:     p.Skip,
		Limit:    p.Limit,
	}
	if minScore := c.Query("minScore"); minScore != "" {
		if err := bindFloat(minScore, &filter.MinScore); err != nil {
			response.Error(c, domainerrors.BadRequest("minScore must be a number"))
			return
		}
	}

	startups, total, err := h.startupUsecase.List(c.Request.Context(), filter, viewerFrom(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	cards := make([]entities.StartupCard, 0, len(startups))
	for _, s := range startups {
		cards = append(cards, s.Card())
	}

	response.Success(c, http.StatusOK, gin.H{
		"items": cards,
		"meta":  utils.NewPageMeta(total, p),
	})
}

// Get returns one published startup with its owner card
// GET /api/startups/:id
func (h *StartupHandler) Get(c *gin.Context) {
	id, ok := startupIDParam(c)
	if !ok {
		return
	}

	startup, owner, err := h.startupUsecase.Get(c.Request.Context(), id, viewerFrom(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	payload := gin.H{"startup": startup}
	if owner != nil {
		payload["owner"] = owner.Summary()
	}
	response.Success(c, http.StatusOK, payload)
}

// Create submits a new startup for moderation
// POST /api/startups
func (h *StartupHandler) Create(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("not authenticated"))
		return
	}

	var input entities.CreateStartupInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	startup, record, err := h.startupUsecase.Create(c.Request.Context(), userID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{
		"startup": startup,
		"analysis": gin.H{
			"overallScore":        record.OverallScore,
			"investmentReadiness": startup.InvestmentReadiness,
			"strengths":           record.Strengths,
			"weaknesses":          record.Weaknesses,
			"recommendations":     record.Recommendations,
		},
	})
}

// ToggleLike flips the caller's like on a startup
// POST /api/startups/:id/like
func (h *StartupHandler) ToggleLike(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("not authenticated"))
		return
	}
	id, ok := startupIDParam(c)
	if !ok {
		return
	}

	action, likesCount, err := h.engagementUsecase.ToggleLike(c.Request.Context(), userID, id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"action":     action,
		"likesCount": likesCount,
	})
}

// ListComments returns the public comments page for a startup
// GET /api/startups/:id/comments
func (h *StartupHandler) ListComments(c *gin.Context) {
	id, ok := startupIDParam(c)
	if !ok {
		return
	}

	var page utils.PaginationParams
	_ = c.ShouldBindQuery(&page)
	p := utils.NormalizePagination(page.Skip, page.Limit, defaultPageSize, maxPageSize)

	comments, total, err := h.engagementUsecase.ListComments(c.Request.Context(), id, p.Skip, p.Limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"items": comments,
		"meta":  utils.NewPageMeta(total, p),
	})
}

// CreateComment appends a public comment
// POST /api/startups/:id/comments
func (h *StartupHandler) CreateComment(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("not authenticated"))
		return
	}
	id, ok := startupIDParam(c)
	if !ok {
		return
	}

	var input entities.CreateCommentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	comment, err := h.engagementUsecase.CreateComment(c.Request.Context(), userID, id, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, comment)
}

// Contact initiates a telegram introduction with the startup owner
// POST /api/startups/:id/contact
func (h *StartupHandler) Contact(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("not authenticated"))
		return
	}
	id, ok := startupIDParam(c)
	if !ok {
		return
	}

	message, contact, err := h.startupUsecase.Contact(c.Request.Context(), userID, id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"message":         message,
		"telegramContact": contact,
	})
}

func bindFloat(raw string, dst *float64) error {
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return err
	}
	*dst = v
	return nil
}
