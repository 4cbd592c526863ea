package router

import (
	"github.com/gin-gonic/gin"

	"github.com/navid-fn/hotelradar/internal/handler"
	"github.com/navid-fn/hotelradar/internal/service"
)

type Config struct {
	PriceHandler    *handler.PriceHandler
	CalendarHandler *handler.CalendarHandler
	AuthHandler     *handler.AuthHandler
	AdminHandler    *handler.AdminHandler
	HealthHandler   *handler.HealthHandler
	AuthService     *service.AuthService
}

func NewRouter(cfg *Config) *gin.Engine {
	router := gin.Default()

	router.GET("/healthz", cfg.HealthHandler.Healthz)

	api := router.Group("/v1/")
	api.POST("/auth/login", cfg.AuthHandler.Login)

	authed := api.Group("", AuthRequired(cfg.AuthService))
	registerPriceRoutes(authed, cfg.PriceHandler)
	registerCalendarRoutes(authed, cfg.CalendarHandler)

	admin := authed.Group("/admin", AdminRequired())
	registerAdminRoutes(admin, cfg.AdminHandler)

	return router
}
