package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/navid-fn/hotelradar/internal/service"
)

type CalendarHandler struct {
	calendarService *service.CalendarService
	logger          *logrus.Logger
	upgrader        websocket.Upgrader
}

func NewCalendarHandler(calendarService *service.CalendarService, logger *logrus.Logger) *CalendarHandler {
	return &CalendarHandler{
		calendarService: calendarService,
		logger:          logger,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// GetCalendar computes the three calendar metric maps for a stay-date
// range. Long ranges block until every per-date query has run.
//
// Query params: location (required), zone, start/end (YYYY-MM-DD),
// persons, nights, time (optional partition overrides).
func (h *CalendarHandler) GetCalendar(c *gin.Context) {
	req, err := parseCalendarRequest(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	metrics, err := h.calendarService.Metrics(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidQuery) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.logger.Errorf("Calendar metrics failed: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "price store unavailable"})
		return
	}
	c.JSON(http.StatusOK, metrics)
}

type calendarFrame struct {
	Type        string              `json:"type"`
	Day         *service.DayMetrics `json:"day,omitempty"`
	QueryErrors int                 `json:"query_errors,omitempty"`
}

// StreamCalendar upgrades to a websocket and pushes one frame per date as
// it is computed, then a closing summary frame. The UI paints the heatmap
// incrementally instead of blocking on the whole range.
func (h *CalendarHandler) StreamCalendar(c *gin.Context) {
	req, err := parseCalendarRequest(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	days, err := h.calendarService.DateRange(req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Errorf("Calendar stream upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	queryErrors := 0
	for _, d := range days {
		day, errs := h.calendarService.MetricsForDate(c.Request.Context(), req, d)
		queryErrors += errs
		if err := conn.WriteJSON(calendarFrame{Type: "day", Day: &day}); err != nil {
			h.logger.Warnf("Calendar stream closed by client: %v", err)
			return
		}
	}
	_ = conn.WriteJSON(calendarFrame{Type: "done", QueryErrors: queryErrors})
}

func parseCalendarRequest(c *gin.Context) (service.CalendarRequest, error) {
	req := service.CalendarRequest{
		Location:  c.Query("location"),
		Zone:      c.DefaultQuery("zone", "zone1"),
		StartDate: c.Query("start"),
		EndDate:   c.Query("end"),
		TimeOfDay: c.Query("time"),
	}
	if v := c.Query("persons"); v != "" {
		persons, err := strconv.Atoi(v)
		if err != nil {
			return service.CalendarRequest{}, errors.New("invalid persons value")
		}
		req.Persons = persons
	}
	if v := c.Query("nights"); v != "" {
		nights, err := strconv.Atoi(v)
		if err != nil {
			return service.CalendarRequest{}, errors.New("invalid nights value")
		}
		req.Nights = nights
	}
	return req, nil
}
