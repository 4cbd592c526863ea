package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/navid-fn/hotelradar/internal/repository"
)

type HealthHandler struct {
	repo repository.PriceRepository
}

func NewHealthHandler(repo repository.PriceRepository) *HealthHandler {
	return &HealthHandler{repo: repo}
}

func (h *HealthHandler) Healthz(c *gin.Context) {
	if err := h.repo.Ping(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "store": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
