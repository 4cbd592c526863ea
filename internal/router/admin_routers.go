package router

import (
	"github.com/gin-gonic/gin"

	"github.com/navid-fn/hotelradar/internal/handler"
)

func registerAdminRoutes(router *gin.RouterGroup, adminHandler *handler.AdminHandler) {
	users := router.Group("/users")
	{
		users.GET("", adminHandler.ListUsers)
		users.POST("", adminHandler.CreateUser)
		users.PUT("/:username", adminHandler.UpdateUser)
		users.DELETE("/:username", adminHandler.DeleteUser)
	}
}
