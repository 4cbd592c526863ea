package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/navid-fn/hotelradar/internal/model"
	"github.com/navid-fn/hotelradar/internal/service"
)

type PriceHandler struct {
	priceService  *service.PricesService
	exportService *service.ExportService
	logger        *logrus.Logger
}

func NewPriceHandler(priceService *service.PricesService, exportService *service.ExportService, logger *logrus.Logger) *PriceHandler {
	return &PriceHandler{
		priceService:  priceService,
		exportService: exportService,
		logger:        logger,
	}
}

// GetPrices runs a price query and returns the filtered observations
// plus the daily average series.
//
// Query params: location (required), persons, nights, time,
// scrape_start/scrape_end (YYYY-MM-DD), stay_start/stay_end (DD-MM-YYYY),
// extras (any|none|breakfast|cancellation|both).
func (h *PriceHandler) GetPrices(c *gin.Context) {
	params, err := parseQueryParams(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.priceService.Query(c.Request.Context(), params)
	if err != nil {
		h.respondQueryError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetPivot returns the price matrix for the same query parameters.
func (h *PriceHandler) GetPivot(c *gin.Context) {
	params, err := parseQueryParams(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	pivot, err := h.priceService.Pivot(c.Request.Context(), params)
	if err != nil {
		h.respondQueryError(c, err)
		return
	}
	c.JSON(http.StatusOK, pivot)
}

// Export streams the price matrix as an .xlsx attachment.
func (h *PriceHandler) Export(c *gin.Context) {
	params, err := parseQueryParams(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	pivot, err := h.priceService.Pivot(c.Request.Context(), params)
	if err != nil {
		h.respondQueryError(c, err)
		return
	}

	filename := fmt.Sprintf("hotel_summary_%s_%s.xlsx", params.Location, time.Now().Format("20060102"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")

	if err := h.exportService.WriteWorkbook(pivot, c.Writer); err != nil {
		h.logger.Errorf("Pivot export failed: %v", err)
	}
}

func (h *PriceHandler) respondQueryError(c *gin.Context, err error) {
	if errors.Is(err, service.ErrInvalidQuery) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h.logger.Errorf("Price query failed: %v", err)
	c.JSON(http.StatusBadGateway, gin.H{"error": "price store unavailable"})
}

func parseQueryParams(c *gin.Context) (service.QueryParams, error) {
	persons, err := strconv.Atoi(c.DefaultQuery("persons", "2"))
	if err != nil {
		return service.QueryParams{}, fmt.Errorf("invalid persons value")
	}
	nights, err := strconv.Atoi(c.DefaultQuery("nights", "1"))
	if err != nil {
		return service.QueryParams{}, fmt.Errorf("invalid nights value")
	}

	params := service.QueryParams{
		Location:    c.Query("location"),
		Persons:     persons,
		Nights:      nights,
		TimeOfDay:   c.DefaultQuery("time", "morning"),
		ScrapeStart: c.Query("scrape_start"),
		ScrapeEnd:   c.Query("scrape_end"),
		Extras:      service.ExtrasFilter(c.DefaultQuery("extras", "any")),
	}

	// Stay dates arrive in the user-facing layout and convert here, at
	// the boundary.
	if stayStart := c.Query("stay_start"); stayStart != "" {
		iso, err := model.ToISODate(stayStart)
		if err != nil {
			return service.QueryParams{}, err
		}
		params.StayStart = iso
	}
	if stayEnd := c.Query("stay_end"); stayEnd != "" {
		iso, err := model.ToISODate(stayEnd)
		if err != nil {
			return service.QueryParams{}, err
		}
		params.StayEnd = iso
	}

	return params, nil
}
