package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/navid-fn/hotelradar/internal/aggregate"
	"github.com/navid-fn/hotelradar/internal/model"
	"github.com/navid-fn/hotelradar/internal/repository"
)

// ErrInvalidQuery marks caller-side input errors, rejected before any
// store query is issued.
var ErrInvalidQuery = errors.New("invalid query")

// ExtrasFilter selects one of the breakfast/cancellation flag combinations.
// Every value except ExtrasAny constrains BOTH flags, so the four concrete
// combinations partition the data into disjoint subsets.
type ExtrasFilter string

const (
	ExtrasAny          ExtrasFilter = "any"
	ExtrasNone         ExtrasFilter = "none"
	ExtrasBreakfast    ExtrasFilter = "breakfast"
	ExtrasCancellation ExtrasFilter = "cancellation"
	ExtrasBoth         ExtrasFilter = "both"
)

// QueryParams describes one price query. All dates are ISO (YYYY-MM-DD);
// the handler converts user-facing DD-MM-YYYY stay dates before calling.
type QueryParams struct {
	Location  string
	Persons   int
	Nights    int
	TimeOfDay string

	// Scrape window, required, inclusive.
	ScrapeStart string
	ScrapeEnd   string

	// Stay window, optional; both empty means unconstrained.
	StayStart string
	StayEnd   string

	Extras ExtrasFilter
}

// QueryResult carries the filtered observations and derived series.
type QueryResult struct {
	Observations  []model.Observation    `json:"observations"`
	DailyAverages []aggregate.DailyPrice `json:"daily_averages"`
	TotalScanned  int                    `json:"total_scanned"`
	TotalMatched  int                    `json:"total_matched"`
}

// PricesService runs composite-key range queries against the price store
// and post-filters the results. It holds no state between calls.
type PricesService struct {
	repo repository.PriceRepository
}

func NewPricesService(repo repository.PriceRepository) *PricesService {
	return &PricesService{repo: repo}
}

// Query executes the range scan for one query configuration, re-checks the
// date windows client-side and applies the extras filter. The key-range
// bound is approximate (it bounds the composite string, not the isolated
// date field), so the window re-check is deliberate redundancy, not waste.
func (ps *PricesService) Query(ctx context.Context, p QueryParams) (*QueryResult, error) {
	if err := validateParams(p); err != nil {
		return nil, err
	}

	partition := model.PartitionKey(p.Location, p.Persons, p.Nights, p.TimeOfDay)
	lo, hi := model.RangeBounds(p.ScrapeStart, p.ScrapeEnd)

	observations, err := ps.repo.RangeQuery(ctx, partition, lo, hi, repository.Filter{}, repository.IndexPrimary)
	if err != nil {
		return nil, err
	}

	scanned := len(observations)
	filtered := filterByWindow(observations, p.ScrapeStart, p.ScrapeEnd, p.StayStart, p.StayEnd)
	filtered = filterByExtras(filtered, p.Extras)

	return &QueryResult{
		Observations:  filtered,
		DailyAverages: aggregate.DailyAverage(filtered),
		TotalScanned:  scanned,
		TotalMatched:  len(filtered),
	}, nil
}

// Pivot runs Query and builds the price matrix over the filtered set.
func (ps *PricesService) Pivot(ctx context.Context, p QueryParams) (*aggregate.Pivot, error) {
	result, err := ps.Query(ctx, p)
	if err != nil {
		return nil, err
	}
	return aggregate.BuildPivot(result.Observations), nil
}

func validateParams(p QueryParams) error {
	if p.Location == "" {
		return fmt.Errorf("%w: location is required", ErrInvalidQuery)
	}
	if _, err := model.ParseISODate(p.ScrapeStart); err != nil {
		return fmt.Errorf("%w: scrape window start: %v", ErrInvalidQuery, err)
	}
	if _, err := model.ParseISODate(p.ScrapeEnd); err != nil {
		return fmt.Errorf("%w: scrape window end: %v", ErrInvalidQuery, err)
	}
	if p.ScrapeEnd < p.ScrapeStart {
		return fmt.Errorf("%w: scrape window end %s before start %s", ErrInvalidQuery, p.ScrapeEnd, p.ScrapeStart)
	}
	if (p.StayStart == "") != (p.StayEnd == "") {
		return fmt.Errorf("%w: stay window requires both start and end", ErrInvalidQuery)
	}
	switch p.Extras {
	case "", ExtrasAny, ExtrasNone, ExtrasBreakfast, ExtrasCancellation, ExtrasBoth:
	default:
		return fmt.Errorf("%w: unknown extras filter %q", ErrInvalidQuery, p.Extras)
	}
	if p.StayStart != "" {
		if _, err := model.ParseISODate(p.StayStart); err != nil {
			return fmt.Errorf("%w: stay window start: %v", ErrInvalidQuery, err)
		}
		if _, err := model.ParseISODate(p.StayEnd); err != nil {
			return fmt.Errorf("%w: stay window end: %v", ErrInvalidQuery, err)
		}
		if p.StayEnd < p.StayStart {
			return fmt.Errorf("%w: stay window end %s before start %s", ErrInvalidQuery, p.StayEnd, p.StayStart)
		}
	}
	return nil
}

// filterByWindow keeps observations whose scraped date falls inside the
// inclusive scrape window and, when a stay window is given, whose checkin
// date falls inside it. ISO date strings compare lexicographically.
// Relative order of survivors is preserved.
func filterByWindow(observations []model.Observation, scrapeStart, scrapeEnd, stayStart, stayEnd string) []model.Observation {
	filtered := make([]model.Observation, 0, len(observations))
	for _, o := range observations {
		if o.ScrapedDate < scrapeStart || o.ScrapedDate > scrapeEnd {
			continue
		}
		if stayStart != "" && (o.CheckinDate < stayStart || o.CheckinDate > stayEnd) {
			continue
		}
		filtered = append(filtered, o)
	}
	return filtered
}

// filterByExtras applies the breakfast/cancellation flag filter.
func filterByExtras(observations []model.Observation, extras ExtrasFilter) []model.Observation {
	var wantBreakfast, wantCancellation bool
	switch extras {
	case "", ExtrasAny:
		return observations
	case ExtrasNone:
	case ExtrasBreakfast:
		wantBreakfast = true
	case ExtrasCancellation:
		wantCancellation = true
	case ExtrasBoth:
		wantBreakfast = true
		wantCancellation = true
	default:
		// Unknown values are rejected by validateParams; never widen here.
		return nil
	}

	filtered := make([]model.Observation, 0, len(observations))
	for _, o := range observations {
		if o.BreakfastIncluded == wantBreakfast && o.FreeCancellation == wantCancellation {
			filtered = append(filtered, o)
		}
	}
	return filtered
}
