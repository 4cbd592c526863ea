package router

import (
	"github.com/gin-gonic/gin"

	"github.com/navid-fn/hotelradar/internal/handler"
)

func registerPriceRoutes(router *gin.RouterGroup, priceHandler *handler.PriceHandler) {
	prices := router.Group("/prices")
	{
		prices.GET("", priceHandler.GetPrices)
		prices.GET("/pivot", priceHandler.GetPivot)
		prices.GET("/export", priceHandler.Export)
	}
}

func registerCalendarRoutes(router *gin.RouterGroup, calendarHandler *handler.CalendarHandler) {
	calendar := router.Group("/calendar")
	{
		calendar.GET("", calendarHandler.GetCalendar)
		calendar.GET("/stream", calendarHandler.StreamCalendar)
	}
}
