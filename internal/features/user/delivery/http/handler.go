package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "spothop-backend/internal/common/errors"
	"spothop-backend/internal/common/middleware"
	"spothop-backend/internal/features/user/models"
	"spothop-backend/internal/features/user/service"
)

type UserHandler struct {
	service *service.UserService
}

func NewUserHandler(service *service.UserService) *UserHandler {
	return &UserHandler{service: service}
}

func (h *UserHandler) RegisterRoutes(router *gin.RouterGroup) {
	users := router.Group("/users")
	{
		users.GET("/me", h.getMe)
		users.PATCH("/me", h.updateMe)
		users.GET("/:id", h.getByID)
		users.GET("/:id/followers", h.listFollowers)
		users.GET("/:id/following", h.listFollowing)
		users.POST("/:id/follow", h.follow)
		users.DELETE("/:id/follow", h.unfollow)
	}
}

// @Summary Get my profile
// @Description Returns the caller's profile, creating it on first authenticated request.
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.User
// @Router /users/me [get]
func (h *UserHandler) getMe(c *gin.Context) {
	email, _ := c.Get(middleware.ContextUserEmail)
	emailStr, _ := email.(string)

	user, err := h.service.GetOrCreate(c.Request.Context(), middleware.UserID(c), emailStr)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// @Summary Update my profile
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param input body models.ProfileUpdate true "Fields to update"
// @Success 200 {object} models.User
// @Failure 400 {object} middleware.ErrorResponse
// @Router /users/me [patch]
func (h *UserHandler) updateMe(c *gin.Context) {
	var input models.ProfileUpdate
	if err := c.ShouldBindJSON(&input); err != nil {
		c.Error(apperrors.Wrap(err, apperrors.ErrCodeBadRequest, "invalid request body"))
		return
	}

	user, err := h.service.UpdateProfile(c.Request.Context(), middleware.UserID(c), input)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// @Summary Get a user profile
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 200 {object} models.User
// @Failure 404 {object} middleware.ErrorResponse
// @Router /users/{id} [get]
func (h *UserHandler) getByID(c *gin.Context) {
	user, err := h.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	// Email stays private to the owner.
	user.Email = ""
	c.JSON(http.StatusOK, user)
}

// @Summary List a user's followers
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 200 {array} models.User
// @Router /users/{id}/followers [get]
func (h *UserHandler) listFollowers(c *gin.Context) {
	users, err := h.service.ListFollowers(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": users})
}

// @Summary List who a user follows
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 200 {array} models.User
// @Router /users/{id}/following [get]
func (h *UserHandler) listFollowing(c *gin.Context) {
	users, err := h.service.ListFollowing(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": users})
}

// @Summary Follow a user
// @Tags users
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 204
// @Router /users/{id}/follow [post]
func (h *UserHandler) follow(c *gin.Context) {
	if err := h.service.Follow(c.Request.Context(), middleware.UserID(c), c.Param("id")); err != nil {
		c.Error(err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Unfollow a user
// @Tags users
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 204
// @Router /users/{id}/follow [delete]
func (h *UserHandler) unfollow(c *gin.Context) {
	if err := h.service.Unfollow(c.Request.Context(), middleware.UserID(c), c.Param("id")); err != nil {
		c.Error(err)
		return
	}
	c.Status(http.StatusNoContent)
}
