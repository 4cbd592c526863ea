package aggregate

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/navid-fn/hotelradar/internal/model"
)

func obs(scraped, hotel, checkin string, price float64) model.Observation {
	return model.Observation{
		ScrapedDate: scraped,
		HotelName:   hotel,
		CheckinDate: checkin,
		Price:       price,
	}
}

func TestFormatPrice(t *testing.T) {
	cases := map[float64]string{
		120:    "120",
		120.5:  "120.5",
		120.53: "120.53",
		0:      "0",
		99.9:   "99.9",
		100.05: "100.05",
	}
	for in, want := range cases {
		got := FormatPrice(decimal.NewFromFloat(in))
		if got != want {
			t.Errorf("FormatPrice(%v) = %q, want %q", in, got, want)
		}
	}
}

func TestDailyAverage(t *testing.T) {
	observations := []model.Observation{
		obs("2025-06-01", "A", "2025-07-01", 100),
		obs("2025-06-02", "A", "2025-07-01", 110),
		obs("2025-06-01", "A", "2025-07-02", 95),
	}

	series := DailyAverage(observations)

	if len(series) != 2 {
		t.Fatalf("Expected 2 points, got %d", len(series))
	}
	if series[0].Date != "2025-07-01" || series[0].Price != 105 {
		t.Errorf("Expected (2025-07-01, 105), got (%s, %v)", series[0].Date, series[0].Price)
	}
	if series[1].Date != "2025-07-02" || series[1].Price != 95 {
		t.Errorf("Expected (2025-07-02, 95), got (%s, %v)", series[1].Date, series[1].Price)
	}
}

func TestDailyAverageEmpty(t *testing.T) {
	series := DailyAverage(nil)
	if len(series) != 0 {
		t.Errorf("Expected empty series, got %d points", len(series))
	}
}

func TestBuildPivotSingleObservationPerCell(t *testing.T) {
	// One observation per (scrape date, hotel, checkin) triple: each cell
	// must carry that exact price, no averaging artifact.
	observations := []model.Observation{
		obs("2025-06-01", "A", "2025-07-01", 100),
		obs("2025-06-01", "A", "2025-07-02", 95),
		obs("2025-06-02", "A", "2025-07-01", 110),
	}

	pivot := BuildPivot(observations)

	wantColumns := []string{ColScrapeDate, ColHotelName, "2025-07-01", "2025-07-02"}
	if len(pivot.Columns) != len(wantColumns) {
		t.Fatalf("Expected %d columns, got %d", len(wantColumns), len(pivot.Columns))
	}
	for i, c := range wantColumns {
		if pivot.Columns[i] != c {
			t.Errorf("Column %d: expected %q, got %q", i, c, pivot.Columns[i])
		}
	}

	// data row, separator, data row, separator, average row
	if len(pivot.Rows) != 5 {
		t.Fatalf("Expected 5 rows, got %d", len(pivot.Rows))
	}

	first := pivot.Rows[0]
	if first[ColScrapeDate] != "2025-06-01" || first[ColHotelName] != "A" {
		t.Errorf("Unexpected first row key: %v", first)
	}
	if first["2025-07-01"] != "100" || first["2025-07-02"] != "95" {
		t.Errorf("Unexpected first row cells: %v", first)
	}

	sep := pivot.Rows[1]
	if sep[ColScrapeDate] != "" || sep["2025-07-01"] != "" {
		t.Errorf("Expected blank separator row, got %v", sep)
	}

	second := pivot.Rows[2]
	if second["2025-07-01"] != "110" {
		t.Errorf("Expected cell '110', got %q", second["2025-07-01"])
	}
	if second["2025-07-02"] != "" {
		t.Errorf("Cell with no data must be blank, got %q", second["2025-07-02"])
	}
}

func TestBuildPivotAverageRow(t *testing.T) {
	observations := []model.Observation{
		obs("2025-06-01", "A", "2025-07-01", 100),
		obs("2025-06-01", "B", "2025-07-01", 101),
		obs("2025-06-02", "A", "2025-07-01", 110),
		obs("2025-06-02", "A", "2025-07-02", 95.555),
	}

	pivot := BuildPivot(observations)

	avg := pivot.Rows[len(pivot.Rows)-1]
	if avg[ColScrapeDate] != AverageLabel {
		t.Fatalf("Expected trailing AVERAGE row, got %v", avg)
	}
	if avg[ColHotelName] != "" {
		t.Errorf("AVERAGE row hotel cell must be blank, got %q", avg[ColHotelName])
	}

	// (100 + 101 + 110) / 3 = 103.666... -> 103.67
	if avg["2025-07-01"] != "103.67" {
		t.Errorf("Expected column average '103.67', got %q", avg["2025-07-01"])
	}
	// single value, rounded to 2 decimals then trimmed
	if avg["2025-07-02"] != "95.56" {
		t.Errorf("Expected column average '95.56', got %q", avg["2025-07-02"])
	}

	beforeAvg := pivot.Rows[len(pivot.Rows)-2]
	if beforeAvg[ColScrapeDate] != "" {
		t.Errorf("Expected blank separator before AVERAGE row, got %v", beforeAvg)
	}
}

func TestBuildPivotDuplicateObservationsAveraged(t *testing.T) {
	// Duplicate writes for the same cell are tolerated by mean-reduction.
	observations := []model.Observation{
		obs("2025-06-01", "A", "2025-07-01", 100),
		obs("2025-06-01", "A", "2025-07-01", 110),
	}

	pivot := BuildPivot(observations)

	if pivot.Rows[0]["2025-07-01"] != "105" {
		t.Errorf("Expected averaged cell '105', got %q", pivot.Rows[0]["2025-07-01"])
	}
}

func TestBuildPivotSingleGroupHasNoSeparator(t *testing.T) {
	observations := []model.Observation{
		obs("2025-06-01", "A", "2025-07-01", 100),
	}

	pivot := BuildPivot(observations)

	// data row, blank, average
	if len(pivot.Rows) != 3 {
		t.Fatalf("Expected 3 rows, got %d", len(pivot.Rows))
	}
	if pivot.Rows[0]["2025-07-01"] != "100" {
		t.Errorf("Unexpected data row: %v", pivot.Rows[0])
	}
	if pivot.Rows[2][ColScrapeDate] != AverageLabel {
		t.Errorf("Expected AVERAGE row, got %v", pivot.Rows[2])
	}
}

func TestBuildPivotEmpty(t *testing.T) {
	pivot := BuildPivot(nil)

	if len(pivot.Rows) != 0 {
		t.Errorf("Expected no rows, got %d", len(pivot.Rows))
	}
	if len(pivot.Columns) != 2 {
		t.Errorf("Expected only the two key columns, got %v", pivot.Columns)
	}
}
