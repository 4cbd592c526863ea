// Package aggregate turns filtered price observations into the derived
// views the dashboard renders: the daily average series and the pivot
// matrix of mean prices.
package aggregate

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/navid-fn/hotelradar/internal/model"
)

// Pivot column names for the two row-key columns. The remaining columns
// are the distinct stay dates present in the input, ascending.
const (
	ColScrapeDate = "scrape_date"
	ColHotelName  = "name"

	// AverageLabel marks the synthetic trailing average row.
	AverageLabel = "AVERAGE"
)

// Pivot is the derived price matrix: rows keyed by (scrape date, hotel),
// columns keyed by stay date, cells holding formatted mean prices. Blank
// separator rows sit between scrape-date groups and before the trailing
// AVERAGE row. Cells with no data are empty strings, never "0".
type Pivot struct {
	Columns []string            `json:"columns"`
	Rows    []map[string]string `json:"rows"`
}

// DailyPrice is one point of the daily average series.
type DailyPrice struct {
	Date  string  `json:"date"`
	Price float64 `json:"price"`
}

// DailyAverage groups observations by checkin date and returns the mean
// price per date, ascending. Dates with no qualifying observations are
// absent from the output.
func DailyAverage(observations []model.Observation) []DailyPrice {
	sums := make(map[string]decimal.Decimal)
	counts := make(map[string]int64)
	for _, o := range observations {
		sums[o.CheckinDate] = sums[o.CheckinDate].Add(decimal.NewFromFloat(o.Price))
		counts[o.CheckinDate]++
	}

	dates := make([]string, 0, len(sums))
	for d := range sums {
		dates = append(dates, d)
	}
	sort.Strings(dates)

	series := make([]DailyPrice, 0, len(dates))
	for _, d := range dates {
		mean := sums[d].Div(decimal.NewFromInt(counts[d]))
		series = append(series, DailyPrice{Date: d, Price: mean.InexactFloat64()})
	}
	return series
}

type cellKey struct {
	scrapeDate string
	hotel      string
	stayDate   string
}

// BuildPivot builds the price matrix. Row groups follow the order scrape
// dates are first encountered; hotels within a group likewise. Cell value
// is the mean price over all observations sharing the (row, column) pair,
// which tolerates duplicate writes from ingestion.
func BuildPivot(observations []model.Observation) *Pivot {
	sums := make(map[cellKey]decimal.Decimal)
	counts := make(map[cellKey]int64)

	var scrapeOrder []string
	hotelOrder := make(map[string][]string)
	seenHotel := make(map[[2]string]bool)
	staySet := make(map[string]bool)

	for _, o := range observations {
		if _, seen := hotelOrder[o.ScrapedDate]; !seen {
			scrapeOrder = append(scrapeOrder, o.ScrapedDate)
			hotelOrder[o.ScrapedDate] = nil
		}
		rowID := [2]string{o.ScrapedDate, o.HotelName}
		if !seenHotel[rowID] {
			seenHotel[rowID] = true
			hotelOrder[o.ScrapedDate] = append(hotelOrder[o.ScrapedDate], o.HotelName)
		}
		staySet[o.CheckinDate] = true

		key := cellKey{o.ScrapedDate, o.HotelName, o.CheckinDate}
		sums[key] = sums[key].Add(decimal.NewFromFloat(o.Price))
		counts[key]++
	}

	stayDates := make([]string, 0, len(staySet))
	for d := range staySet {
		stayDates = append(stayDates, d)
	}
	sort.Strings(stayDates)

	columns := append([]string{ColScrapeDate, ColHotelName}, stayDates...)
	pivot := &Pivot{Columns: columns}

	// Per-column unrounded cell means feed the AVERAGE row.
	colValues := make(map[string][]decimal.Decimal)

	for gi, scrapeDate := range scrapeOrder {
		for _, hotel := range hotelOrder[scrapeDate] {
			row := map[string]string{ColScrapeDate: scrapeDate, ColHotelName: hotel}
			for _, stay := range stayDates {
				key := cellKey{scrapeDate, hotel, stay}
				if counts[key] == 0 {
					row[stay] = ""
					continue
				}
				mean := sums[key].Div(decimal.NewFromInt(counts[key]))
				row[stay] = FormatPrice(mean)
				colValues[stay] = append(colValues[stay], mean)
			}
			pivot.Rows = append(pivot.Rows, row)
		}
		if gi < len(scrapeOrder)-1 {
			pivot.Rows = append(pivot.Rows, blankRow(columns))
		}
	}

	if len(stayDates) > 0 && len(pivot.Rows) > 0 {
		pivot.Rows = append(pivot.Rows, blankRow(columns))

		avgRow := map[string]string{ColScrapeDate: AverageLabel, ColHotelName: ""}
		for _, stay := range stayDates {
			values := colValues[stay]
			if len(values) == 0 {
				avgRow[stay] = ""
				continue
			}
			sum := decimal.Zero
			for _, v := range values {
				sum = sum.Add(v)
			}
			mean := sum.Div(decimal.NewFromInt(int64(len(values)))).Round(2)
			avgRow[stay] = FormatPrice(mean)
		}
		pivot.Rows = append(pivot.Rows, avgRow)
	}

	return pivot
}

func blankRow(columns []string) map[string]string {
	row := make(map[string]string, len(columns))
	for _, c := range columns {
		row[c] = ""
	}
	return row
}

// FormatPrice renders a price to two decimals and trims trailing zero
// fractional digits: 120.00 -> "120", 120.50 -> "120.5", 120.53 -> "120.53".
func FormatPrice(d decimal.Decimal) string {
	s := d.StringFixed(2)
	if strings.HasSuffix(s, ".00") {
		return s[:len(s)-3]
	}
	if strings.HasSuffix(s, "0") {
		return s[:len(s)-1]
	}
	return s
}
