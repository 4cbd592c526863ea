package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/navid-fn/hotelradar/internal/model"
	"github.com/navid-fn/hotelradar/internal/repository"
	"github.com/navid-fn/hotelradar/internal/service"
)

// AdminHandler exposes the user CRUD screen backing endpoints. All routes
// require the admin role.
type AdminHandler struct {
	authService *service.AuthService
	logger      *logrus.Logger
}

func NewAdminHandler(authService *service.AuthService, logger *logrus.Logger) *AdminHandler {
	return &AdminHandler{authService: authService, logger: logger}
}

func (h *AdminHandler) ListUsers(c *gin.Context) {
	users, err := h.authService.ListUsers(c.Request.Context())
	if err != nil {
		h.logger.Errorf("User list failed: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "user store unavailable"})
		return
	}
	c.JSON(http.StatusOK, users)
}

type userRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

func (h *AdminHandler) CreateUser(c *gin.Context) {
	var req userRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username is required"})
		return
	}
	role := req.Role
	if role == "" {
		role = model.RoleViewer
	}
	if err := h.authService.CreateUser(c.Request.Context(), req.Username, req.Password, role); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"username": req.Username, "role": role})
}

type userUpdateRequest struct {
	Password string `json:"password"`
	Role     string `json:"role"`
}

func (h *AdminHandler) UpdateUser(c *gin.Context) {
	var req userUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	err := h.authService.UpdateUser(c.Request.Context(), c.Param("username"), req.Password, req.Role)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"username": c.Param("username")})
}

func (h *AdminHandler) DeleteUser(c *gin.Context) {
	if err := h.authService.DeleteUser(c.Request.Context(), c.Param("username")); err != nil {
		h.logger.Errorf("User delete failed: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "user store unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": c.Param("username")})
}
