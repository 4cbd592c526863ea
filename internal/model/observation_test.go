package model

import "testing"

func TestObservationFromJSON(t *testing.T) {
	raw := `{
		"location": "tampere",
		"persons": 2,
		"nights": 1,
		"time": "morning",
		"checkin_date": "2025-07-01",
		"checkout_date": "2025-07-02",
		"scraped_date": "2025-06-01",
		"hotel_id": "h42",
		"hotel_name": "Scandic Tampere City",
		"price": 120.5,
		"review_score": 8.7,
		"breakfast_included": true,
		"free_cancellation": false
	}`

	o := ObservationFromJSON([]byte(raw))

	if o.HotelName != "Scandic Tampere City" {
		t.Errorf("Expected hotel name, got %q", o.HotelName)
	}
	if o.Price != 120.5 {
		t.Errorf("Expected price 120.5, got %v", o.Price)
	}
	if !o.BreakfastIncluded {
		t.Error("Expected breakfast_included true")
	}
	if o.FreeCancellation {
		t.Error("Expected free_cancellation false")
	}
}

func TestObservationFromJSONDefaults(t *testing.T) {
	// Missing fields are not an error, they take zero values.
	o := ObservationFromJSON([]byte(`{"hotel_name": "Hotelli Raumanlinna"}`))

	if o.HotelName != "Hotelli Raumanlinna" {
		t.Errorf("Expected hotel name, got %q", o.HotelName)
	}
	if o.Price != 0 {
		t.Errorf("Expected default price 0, got %v", o.Price)
	}
	if o.CheckinDate != "" {
		t.Errorf("Expected empty checkin date, got %q", o.CheckinDate)
	}
	if o.BreakfastIncluded || o.FreeCancellation {
		t.Error("Expected boolean flags to default to false")
	}
	if o.Persons != 0 || o.Nights != 0 {
		t.Error("Expected numeric fields to default to 0")
	}
}
