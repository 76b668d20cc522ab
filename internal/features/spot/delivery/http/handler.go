package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "spothop-backend/internal/common/errors"
	"spothop-backend/internal/common/middleware"
	"spothop-backend/internal/features/spot/models"
	"spothop-backend/internal/features/spot/service"
)

type SpotHandler struct {
	service *service.SpotService
}

func NewSpotHandler(service *service.SpotService) *SpotHandler {
	return &SpotHandler{service: service}
}

func (h *SpotHandler) RegisterRoutes(router *gin.RouterGroup) {
	spots := router.Group("/spots")
	{
		spots.POST("", h.create)
		spots.GET("", h.list)
		spots.GET("/me", h.listMine)
		spots.GET("/me/favorites", h.listFavorites)
		spots.GET("/:id", h.getByID)
		spots.PUT("/:id", h.update)
		spots.DELETE("/:id", h.delete)
		spots.POST("/:id/favorite", h.addFavorite)
		spots.DELETE("/:id/favorite", h.removeFavorite)
		spots.GET("/:id/comments", h.listComments)
		spots.POST("/:id/comments", h.createComment)
	}

	router.DELETE("/comments/:commentID", h.deleteComment)
}

// @Summary Create a spot
// @Tags spots
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param input body models.SpotCreate true "Spot data"
// @Success 201 {object} models.Spot
// @Failure 400 {object} middleware.ErrorResponse
// @Router /spots [post]
func (h *SpotHandler) create(c *gin.Context) {
	var input models.SpotCreate
	if err := c.ShouldBindJSON(&input); err != nil {
		c.Error(apperrors.Wrap(err, apperrors.ErrCodeBadRequest, "invalid request body"))
		return
	}

	spot, err := h.service.Create(c.Request.Context(), middleware.UserID(c), input)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, spot)
}

// @Summary List spots
// @Tags spots
// @Produce json
// @Security BearerAuth
// @Param spot_type query string false "Spot type"
// @Param difficulty query string false "Difficulty"
// @Param is_lit query bool false "Lit at night"
// @Param max_kickout_risk query number false "Maximum kickout risk"
// @Param lat query number false "Center latitude"
// @Param lng query number false "Center longitude"
// @Param radius_km query number false "Radius in kilometers"
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Success 200 {array} models.Spot
// @Router /spots [get]
func (h *SpotHandler) list(c *gin.Context) {
	filter := models.SpotFilter{
		SpotType:   c.Query("spot_type"),
		Difficulty: c.Query("difficulty"),
	}
	if v := c.Query("is_lit"); v != "" {
		isLit, err := strconv.ParseBool(v)
		if err != nil {
			c.Error(apperrors.NewValidationError("is_lit", "must be a boolean"))
			return
		}
		filter.IsLit = &isLit
	}
	if v := c.Query("max_kickout_risk"); v != "" {
		risk, err := strconv.ParseFloat(v, 64)
		if err != nil {
			c.Error(apperrors.NewValidationError("max_kickout_risk", "must be a number"))
			return
		}
		filter.MaxKickoutRisk = risk
	}
	lat, latErr := parseFloatQuery(c, "lat")
	lng, lngErr := parseFloatQuery(c, "lng")
	if latErr != nil || lngErr != nil {
		c.Error(apperrors.NewValidationError("lat", "coordinates must be numbers"))
		return
	}
	filter.Latitude = lat
	filter.Longitude = lng
	if v := c.Query("radius_km"); v != "" {
		radius, err := strconv.ParseFloat(v, 64)
		if err != nil || radius <= 0 {
			c.Error(apperrors.NewValidationError("radius_km", "must be a positive number"))
			return
		}
		filter.RadiusKm = radius
	}
	filter.Limit, _ = strconv.Atoi(c.DefaultQuery("limit", "50"))
	filter.Offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))

	spots, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"spots": spots})
}

// @Summary Get a spot
// @Tags spots
// @Produce json
// @Security BearerAuth
// @Param id path string true "Spot ID"
// @Success 200 {object} models.Spot
// @Failure 404 {object} middleware.ErrorResponse
// @Router /spots/{id} [get]
func (h *SpotHandler) getByID(c *gin.Context) {
	spot, err := h.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, spot)
}

// @Summary Update a spot
// @Tags spots
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Spot ID"
// @Param input body models.SpotUpdate true "Fields to update"
// @Success 200 {object} models.Spot
// @Failure 403 {object} middleware.ErrorResponse
// @Router /spots/{id} [put]
func (h *SpotHandler) update(c *gin.Context) {
	var input models.SpotUpdate
	if err := c.ShouldBindJSON(&input); err != nil {
		c.Error(apperrors.Wrap(err, apperrors.ErrCodeBadRequest, "invalid request body"))
		return
	}

	spot, err := h.service.Update(c.Request.Context(), middleware.UserID(c), c.Param("id"), input)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, spot)
}

// @Summary Delete a spot
// @Tags spots
// @Security BearerAuth
// @Param id path string true "Spot ID"
// @Success 204
// @Failure 403 {object} middleware.ErrorResponse
// @Router /spots/{id} [delete]
func (h *SpotHandler) delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), middleware.UserID(c), c.Param("id")); err != nil {
		c.Error(err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary List my spots
// @Tags spots
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.Spot
// @Router /spots/me [get]
func (h *SpotHandler) listMine(c *gin.Context) {
	spots, err := h.service.ListByCreator(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"spots": spots})
}

// @Summary List my favorite spots
// @Tags spots
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.Spot
// @Router /spots/me/favorites [get]
func (h *SpotHandler) listFavorites(c *gin.Context) {
	spots, err := h.service.ListFavorites(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"spots": spots})
}

// @Summary Favorite a spot
// @Tags spots
// @Security BearerAuth
// @Param id path string true "Spot ID"
// @Success 204
// @Router /spots/{id}/favorite [post]
func (h *SpotHandler) addFavorite(c *gin.Context) {
	if err := h.service.AddFavorite(c.Request.Context(), middleware.UserID(c), c.Param("id")); err != nil {
		c.Error(err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Unfavorite a spot
// @Tags spots
// @Security BearerAuth
// @Param id path string true "Spot ID"
// @Success 204
// @Router /spots/{id}/favorite [delete]
func (h *SpotHandler) removeFavorite(c *gin.Context) {
	if err := h.service.RemoveFavorite(c.Request.Context(), middleware.UserID(c), c.Param("id")); err != nil {
		c.Error(err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary List spot comments
// @Tags spots
// @Produce json
// @Security BearerAuth
// @Param id path string true "Spot ID"
// @Success 200 {array} models.Comment
// @Router /spots/{id}/comments [get]
func (h *SpotHandler) listComments(c *gin.Context) {
	comments, err := h.service.ListComments(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"comments": comments})
}

// @Summary Comment on a spot
// @Tags spots
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Spot ID"
// @Param input body models.CommentCreate true "Comment body"
// @Success 201 {object} models.Comment
// @Router /spots/{id}/comments [post]
func (h *SpotHandler) createComment(c *gin.Context) {
	var input models.CommentCreate
	if err := c.ShouldBindJSON(&input); err != nil {
		c.Error(apperrors.Wrap(err, apperrors.ErrCodeBadRequest, "invalid request body"))
		return
	}

	comment, err := h.service.CreateComment(c.Request.Context(), middleware.UserID(c), c.Param("id"), input)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, comment)
}

// @Summary Delete a comment
// @Tags spots
// @Security BearerAuth
// @Param commentID path string true "Comment ID"
// @Success 204
// @Failure 403 {object} middleware.ErrorResponse
// @Router /comments/{commentID} [delete]
func (h *SpotHandler) deleteComment(c *gin.Context) {
	if err := h.service.DeleteComment(c.Request.Context(), middleware.UserID(c), c.Param("commentID")); err != nil {
		c.Error(err)
		return
	}
	c.Status(http.StatusNoContent)
}

func parseFloatQuery(c *gin.Context, name string) (*float64, error) {
	v := c.Query(name)
	if v == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return nil, err
	}
	return &f, nil
}
