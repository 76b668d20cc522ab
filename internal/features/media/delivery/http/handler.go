package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "spothop-backend/internal/common/errors"
	"spothop-backend/internal/common/middleware"
	"spothop-backend/internal/features/media/models"
	"spothop-backend/internal/features/media/service"
)

type MediaHandler struct {
	service *service.MediaService
}

func NewMediaHandler(service *service.MediaService) *MediaHandler {
	return &MediaHandler{service: service}
}

func (h *MediaHandler) RegisterRoutes(router *gin.RouterGroup) {
	media := router.Group("/media")
	{
		media.POST("", h.register)
		media.GET("/me", h.listMine)
		media.GET("/:id", h.getByID)
		media.DELETE("/:id", h.delete)
	}

	router.GET("/spots/:id/media", h.listBySpot)
}

// @Summary Register uploaded media
// @Description Records the metadata of a photo or video already uploaded to the object store.
// @Tags media
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param input body models.MediaCreate true "Media metadata"
// @Success 201 {object} models.MediaItem
// @Failure 400 {object} middleware.ErrorResponse
// @Router /media [post]
func (h *MediaHandler) register(c *gin.Context) {
	var input models.MediaCreate
	if err := c.ShouldBindJSON(&input); err != nil {
		c.Error(apperrors.Wrap(err, apperrors.ErrCodeBadRequest, "invalid request body"))
		return
	}

	item, err := h.service.Register(c.Request.Context(), middleware.UserID(c), input)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

// @Summary Get a media item
// @Tags media
// @Produce json
// @Security BearerAuth
// @Param id path string true "Media ID"
// @Success 200 {object} models.MediaItem
// @Failure 404 {object} middleware.ErrorResponse
// @Router /media/{id} [get]
func (h *MediaHandler) getByID(c *gin.Context) {
	item, err := h.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// @Summary List my media
// @Tags media
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.MediaItem
// @Router /media/me [get]
func (h *MediaHandler) listMine(c *gin.Context) {
	items, err := h.service.ListByAuthor(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"media": items})
}

// @Summary List a spot's media
// @Tags media
// @Produce json
// @Security BearerAuth
// @Param id path string true "Spot ID"
// @Success 200 {array} models.MediaItem
// @Router /spots/{id}/media [get]
func (h *MediaHandler) listBySpot(c *gin.Context) {
	items, err := h.service.ListBySpot(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"media": items})
}

// @Summary Delete a media item
// @Tags media
// @Security BearerAuth
// @Param id path string true "Media ID"
// @Success 204
// @Failure 403 {object} middleware.ErrorResponse
// @Router /media/{id} [delete]
func (h *MediaHandler) delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), middleware.UserID(c), c.Param("id")); err != nil {
		c.Error(err)
		return
	}
	c.Status(http.StatusNoContent)
}
