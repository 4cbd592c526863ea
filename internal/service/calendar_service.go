package service

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/navid-fn/hotelradar/config"
	"github.com/navid-fn/hotelradar/internal/model"
	"github.com/navid-fn/hotelradar/internal/repository"
)

// CalendarRequest describes one calendar heatmap load. Dates are ISO.
// Persons/Nights/TimeOfDay fall back to the configured defaults when zero.
type CalendarRequest struct {
	Location  string
	Zone      string
	StartDate string
	EndDate   string
	Persons   int
	Nights    int
	TimeOfDay string
}

// DayMetrics carries the three metrics for a single stay date.
type DayMetrics struct {
	Date          string  `json:"date"`
	Availability  float64 `json:"availability"`
	PriceAvg      float64 `json:"price_avg"`
	FreeCancelAvg float64 `json:"free_cancel_avg"`
}

// CalendarMetrics is the calendar heatmap payload: three date-keyed maps
// plus the number of store queries that failed. Failed or empty queries
// contribute explicit zeros, so every requested date has a value.
type CalendarMetrics struct {
	Availability  map[string]float64 `json:"availability"`
	PriceAvg      map[string]float64 `json:"price_avg"`
	FreeCancelAvg map[string]float64 `json:"free_cancel_avg"`
	QueryErrors   int                `json:"query_errors"`
}

// CalendarService computes per-date zone metrics over a scrape-date
// lookback window. Each date is independently resolvable: two store
// queries per date, no cross-date state, serial execution bounded only
// by the rate limiter.
type CalendarService struct {
	repo         repository.PriceRepository
	zones        config.Zones
	limiter      *rate.Limiter
	logger       *logrus.Logger
	lookbackDays int
	defaults     config.QueryConfig
}

func NewCalendarService(repo repository.PriceRepository, zones config.Zones, cfg config.QueryConfig, logger *logrus.Logger) *CalendarService {
	lookback := cfg.LookbackDays
	if lookback <= 0 {
		lookback = 30
	}
	limit := cfg.RateLimit
	if limit <= 0 {
		limit = 50
	}
	return &CalendarService{
		repo:         repo,
		zones:        zones,
		limiter:      rate.NewLimiter(rate.Limit(limit), 1),
		logger:       logger,
		lookbackDays: lookback,
		defaults:     cfg,
	}
}

// Metrics computes the calendar maps for every date in [start, end]
// inclusive, one day at a time. It returns an error only for invalid
// input; store failures degrade to zeros and are counted in QueryErrors.
func (cs *CalendarService) Metrics(ctx context.Context, req CalendarRequest) (*CalendarMetrics, error) {
	start, end, err := cs.validateRange(req)
	if err != nil {
		return nil, err
	}

	metrics := &CalendarMetrics{
		Availability:  make(map[string]float64),
		PriceAvg:      make(map[string]float64),
		FreeCancelAvg: make(map[string]float64),
	}

	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		day, errs := cs.MetricsForDate(ctx, req, d)
		metrics.Availability[day.Date] = day.Availability
		metrics.PriceAvg[day.Date] = day.PriceAvg
		metrics.FreeCancelAvg[day.Date] = day.FreeCancelAvg
		metrics.QueryErrors += errs
	}

	return metrics, nil
}

// MetricsForDate computes one calendar cell. It issues two queries: a
// lookback scan over the secondary index for the price averages, and a
// same-day snapshot for availability. The returned int is the number of
// failed store queries (0, 1 or 2).
func (cs *CalendarService) MetricsForDate(ctx context.Context, req CalendarRequest, d time.Time) (DayMetrics, int) {
	date := d.Format(model.ISODate)
	day := DayMetrics{Date: date}
	errCount := 0

	partition := cs.partitionKey(req)
	zoneHotels := cs.zones.Hotels(req.Zone)
	noBreakfast := false
	filter := repository.Filter{BreakfastIncluded: &noBreakfast}

	// Lookback scan: fix checkin=date, range scraped over the window.
	scrapeStart := d.AddDate(0, 0, -cs.lookbackDays).Format(model.ISODate)
	lo, hi := model.RangeBounds(model.KeyPrefix(date, scrapeStart), model.KeyPrefix(date, date))

	if err := cs.limiter.Wait(ctx); err != nil {
		return day, errCount
	}
	window, err := cs.repo.RangeQuery(ctx, partition, lo, hi, filter, repository.IndexByCheckin)
	if err != nil {
		cs.logger.Errorf("Calendar lookback query failed for %s: %v", date, err)
		errCount++
	} else {
		var base, freeCancel []model.Observation
		for _, o := range window {
			if !inZone(zoneHotels, o.HotelName) {
				continue
			}
			if o.FreeCancellation {
				freeCancel = append(freeCancel, o)
			} else {
				base = append(base, o)
			}
		}
		day.PriceAvg = meanPrice(base)
		day.FreeCancelAvg = meanPrice(freeCancel)
	}

	// Same-day snapshot: which zone hotels have any non-breakfast offer
	// scraped on the stay date itself.
	lo, hi = model.RangeBounds(model.KeyPrefix(date, date), model.KeyPrefix(date, date))

	if err := cs.limiter.Wait(ctx); err != nil {
		return day, errCount
	}
	snapshot, err := cs.repo.RangeQuery(ctx, partition, lo, hi, filter, repository.IndexByCheckin)
	if err != nil {
		cs.logger.Errorf("Calendar snapshot query failed for %s: %v", date, err)
		errCount++
	} else {
		day.Availability = availability(zoneHotels, snapshot)
	}

	return day, errCount
}

// DateRange expands a validated request into its individual days.
func (cs *CalendarService) DateRange(req CalendarRequest) ([]time.Time, error) {
	start, end, err := cs.validateRange(req)
	if err != nil {
		return nil, err
	}
	var days []time.Time
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days, nil
}

func (cs *CalendarService) validateRange(req CalendarRequest) (time.Time, time.Time, error) {
	if req.Location == "" {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: location is required", ErrInvalidQuery)
	}
	start, err := model.ParseISODate(req.StartDate)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: calendar range start: %v", ErrInvalidQuery, err)
	}
	end, err := model.ParseISODate(req.EndDate)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: calendar range end: %v", ErrInvalidQuery, err)
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: calendar range end %s before start %s", ErrInvalidQuery, req.EndDate, req.StartDate)
	}
	return start, end, nil
}

func (cs *CalendarService) partitionKey(req CalendarRequest) string {
	persons := req.Persons
	if persons <= 0 {
		persons = cs.defaults.CalendarPersons
	}
	nights := req.Nights
	if nights <= 0 {
		nights = cs.defaults.CalendarNights
	}
	timeOfDay := req.TimeOfDay
	if timeOfDay == "" {
		timeOfDay = cs.defaults.CalendarTime
	}
	return model.PartitionKey(req.Location, persons, nights, timeOfDay)
}

func inZone(zoneHotels []string, hotelName string) bool {
	for _, h := range zoneHotels {
		if h == hotelName {
			return true
		}
	}
	return false
}

// meanPrice returns the mean price rounded to 2 decimals, 0 for an empty set.
func meanPrice(observations []model.Observation) float64 {
	if len(observations) == 0 {
		return 0
	}
	sum := decimal.Zero
	for _, o := range observations {
		sum = sum.Add(decimal.NewFromFloat(o.Price))
	}
	return sum.Div(decimal.NewFromInt(int64(len(observations)))).Round(2).InexactFloat64()
}

// availability returns the percentage of zone hotels present in the
// snapshot, rounded to 1 decimal. An empty zone is 0, never a division
// error.
func availability(zoneHotels []string, snapshot []model.Observation) float64 {
	if len(zoneHotels) == 0 {
		return 0
	}
	present := make(map[string]bool)
	for _, o := range snapshot {
		if inZone(zoneHotels, o.HotelName) {
			present[o.HotelName] = true
		}
	}
	pct := decimal.NewFromInt(int64(len(present) * 100)).Div(decimal.NewFromInt(int64(len(zoneHotels))))
	return pct.Round(1).InexactFloat64()
}
