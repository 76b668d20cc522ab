package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "spothop-backend/internal/common/errors"
	"spothop-backend/internal/common/middleware"
	"spothop-backend/internal/features/contest/models"
	"spothop-backend/internal/features/contest/service"
)

type ContestHandler struct {
	service *service.ContestService
}

func NewContestHandler(service *service.ContestService) *ContestHandler {
	return &ContestHandler{service: service}
}

// RegisterRoutes wires the participant-facing routes. adminOnly guards the
// lifecycle management routes.
func (h *ContestHandler) RegisterRoutes(router *gin.RouterGroup, adminOnly gin.HandlerFunc) {
	contests := router.Group("/contests")
	{
		contests.GET("", h.list)
		contests.GET("/active", h.listActive)
		contests.GET("/:id", h.getByID)
		contests.GET("/:id/eligible-spots", h.eligibleSpots)
		contests.GET("/:id/spots/:spotID/eligible-media", h.eligibleMedia)
		contests.GET("/:id/entries", h.listEntries)
		contests.GET("/:id/entries/me", h.listMyEntries)
		contests.POST("/:id/entries", h.submitEntry)
		contests.DELETE("/:id/entries/:entryID", h.withdrawEntry)
		contests.POST("/:id/entries/:entryID/vote", h.vote)
		contests.GET("/:id/winners", h.winners)
	}

	admin := router.Group("/contests", adminOnly)
	{
		admin.POST("", h.create)
		admin.PUT("/:id", h.update)
		admin.DELETE("/:id", h.delete)
		admin.POST("/:id/status", h.transition)
	}
}

// @Summary Create a contest
// @Tags contests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param input body models.ContestCreate true "Contest data"
// @Success 201 {object} models.Contest
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 403 {object} middleware.ErrorResponse
// @Router /contests [post]
func (h *ContestHandler) create(c *gin.Context) {
	var input models.ContestCreate
	if err := c.ShouldBindJSON(&input); err != nil {
		c.Error(apperrors.Wrap(err, apperrors.ErrCodeBadRequest, "invalid request body"))
		return
	}

	contest, err := h.service.Create(c.Request.Context(), middleware.UserID(c), input)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, contest)
}

// @Summary Update a contest
// @Description Edits a contest. Criteria can only change while the contest is a draft.
// @Tags contests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Contest ID"
// @Param input body models.ContestUpdate true "Fields to update"
// @Success 200 {object} models.Contest
// @Failure 403 {object} middleware.ErrorResponse
// @Router /contests/{id} [put]
func (h *ContestHandler) update(c *gin.Context) {
	var input models.ContestUpdate
	if err := c.ShouldBindJSON(&input); err != nil {
		c.Error(apperrors.Wrap(err, apperrors.ErrCodeBadRequest, "invalid request body"))
		return
	}

	contest, err := h.service.Update(c.Request.Context(), c.Param("id"), input)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, contest)
}

// @Summary Delete a draft contest
// @Tags contests
// @Security BearerAuth
// @Param id path string true "Contest ID"
// @Success 204
// @Failure 403 {object} middleware.ErrorResponse
// @Router /contests/{id} [delete]
func (h *ContestHandler) delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		c.Error(err)
		return
	}
	c.Status(http.StatusNoContent)
}

type transitionRequest struct {
	Status models.ContestStatus `json:"status" binding:"required,oneof=draft active voting finished"`
}

// @Summary Change contest status
// @Description Moves the contest along its lifecycle: draft, active, voting, finished.
// @Tags contests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Contest ID"
// @Param input body transitionRequest true "Target status"
// @Success 200 {object} models.Contest
// @Failure 409 {object} middleware.ErrorResponse
// @Router /contests/{id}/status [post]
func (h *ContestHandler) transition(c *gin.Context) {
	var input transitionRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.Error(apperrors.Wrap(err, apperrors.ErrCodeBadRequest, "invalid request body"))
		return
	}

	contest, err := h.service.Transition(c.Request.Context(), c.Param("id"), input.Status)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, contest)
}

// @Summary List contests
// @Tags contests
// @Produce json
// @Security BearerAuth
// @Param status query string false "Filter by status"
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Success 200 {array} models.Contest
// @Router /contests [get]
func (h *ContestHandler) list(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	contests, err := h.service.List(c.Request.Context(),
		models.ContestStatus(c.Query("status")), limit, offset)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"contests": contests})
}

// @Summary List running contests
// @Tags contests
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.Contest
// @Router /contests/active [get]
func (h *ContestHandler) listActive(c *gin.Context) {
	contests, err := h.service.ListActive(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"contests": contests})
}

// @Summary Get a contest
// @Tags contests
// @Produce json
// @Security BearerAuth
// @Param id path string true "Contest ID"
// @Success 200 {object} models.Contest
// @Failure 404 {object} middleware.ErrorResponse
// @Router /contests/{id} [get]
func (h *ContestHandler) getByID(c *gin.Context) {
	contest, err := h.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, contest)
}

// @Summary List my eligible spots for a contest
// @Description Evaluates the contest criteria over the caller's created and favorited spots.
// @Tags contests
// @Produce json
// @Security BearerAuth
// @Param id path string true "Contest ID"
// @Success 200 {array} spotmodels.Spot
// @Router /contests/{id}/eligible-spots [get]
func (h *ContestHandler) eligibleSpots(c *gin.Context) {
	spots, err := h.service.EligibleSpots(c.Request.Context(), c.Param("id"), middleware.UserID(c))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"spots": spots})
}

// @Summary List my eligible media for a spot in a contest
// @Tags contests
// @Produce json
// @Security BearerAuth
// @Param id path string true "Contest ID"
// @Param spotID path string true "Spot ID"
// @Success 200 {array} mediamodels.MediaItem
// @Router /contests/{id}/spots/{spotID}/eligible-media [get]
func (h *ContestHandler) eligibleMedia(c *gin.Context) {
	media, err := h.service.EligibleMedia(c.Request.Context(),
		c.Param("id"), c.Param("spotID"), middleware.UserID(c))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"media": media})
}

// @Summary Submit an entry
// @Description Submits one of the caller's eligible spots, represented by one media item. Eligibility is re-checked server-side.
// @Tags contests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Contest ID"
// @Param input body models.EntryCreate true "Entry data"
// @Success 201 {object} models.Entry
// @Failure 410 {object} middleware.ErrorResponse
// @Failure 422 {object} middleware.ErrorResponse
// @Router /contests/{id}/entries [post]
func (h *ContestHandler) submitEntry(c *gin.Context) {
	var input models.EntryCreate
	if err := c.ShouldBindJSON(&input); err != nil {
		c.Error(apperrors.Wrap(err, apperrors.ErrCodeBadRequest, "invalid request body"))
		return
	}

	entry, err := h.service.SubmitEntry(c.Request.Context(), c.Param("id"), middleware.UserID(c), input)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, entry)
}

// @Summary Withdraw my entry
// @Tags contests
// @Security BearerAuth
// @Param id path string true "Contest ID"
// @Param entryID path string true "Entry ID"
// @Success 204
// @Failure 403 {object} middleware.ErrorResponse
// @Router /contests/{id}/entries/{entryID} [delete]
func (h *ContestHandler) withdrawEntry(c *gin.Context) {
	err := h.service.WithdrawEntry(c.Request.Context(),
		c.Param("id"), c.Param("entryID"), middleware.UserID(c))
	if err != nil {
		c.Error(err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary List contest entries
// @Tags contests
// @Produce json
// @Security BearerAuth
// @Param id path string true "Contest ID"
// @Success 200 {array} models.Entry
// @Router /contests/{id}/entries [get]
func (h *ContestHandler) listEntries(c *gin.Context) {
	entries, err := h.service.ListEntries(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"entries": entries})
}

// @Summary List my entries in a contest
// @Tags contests
// @Produce json
// @Security BearerAuth
// @Param id path string true "Contest ID"
// @Success 200 {array} models.Entry
// @Router /contests/{id}/entries/me [get]
func (h *ContestHandler) listMyEntries(c *gin.Context) {
	entries, err := h.service.ListMyEntries(c.Request.Context(), c.Param("id"), middleware.UserID(c))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"entries": entries})
}

// @Summary Vote for an entry
// @Description One vote per user per contest, during the voting phase of public-voting contests.
// @Tags contests
// @Security BearerAuth
// @Param id path string true "Contest ID"
// @Param entryID path string true "Entry ID"
// @Success 204
// @Failure 409 {object} middleware.ErrorResponse
// @Router /contests/{id}/entries/{entryID}/vote [post]
func (h *ContestHandler) vote(c *gin.Context) {
	err := h.service.Vote(c.Request.Context(),
		c.Param("id"), c.Param("entryID"), middleware.UserID(c))
	if err != nil {
		c.Error(err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary List contest winners
// @Description Vote-ranked entries of a finished contest.
// @Tags contests
// @Produce json
// @Security BearerAuth
// @Param id path string true "Contest ID"
// @Param limit query int false "Number of winners"
// @Success 200 {array} models.Entry
// @Failure 409 {object} middleware.ErrorResponse
// @Router /contests/{id}/winners [get]
func (h *ContestHandler) winners(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "3"))

	entries, err := h.service.Winners(c.Request.Context(), c.Param("id"), limit)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"winners": entries})
}
