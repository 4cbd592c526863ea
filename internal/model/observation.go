package model

import "encoding/json"

// Observation is one scraped price quote for one hotel, for one stay
// configuration, as seen at one scrape time. Dates are ISO (YYYY-MM-DD)
// strings throughout; prices are EUR.
type Observation struct {
	Location          string  `json:"location"`
	Persons           int     `json:"persons"`
	Nights            int     `json:"nights"`
	TimeOfDay         string  `json:"time"`
	CheckinDate       string  `json:"checkin_date"`
	CheckoutDate      string  `json:"checkout_date"`
	ScrapedDate       string  `json:"scraped_date"`
	HotelID           string  `json:"hotel_id"`
	HotelName         string  `json:"hotel_name"`
	Price             float64 `json:"price"`
	ReviewScore       float64 `json:"review_score"`
	City              string  `json:"city"`
	Distance          string  `json:"distance"`
	HotelURL          string  `json:"hotel_url"`
	BreakfastIncluded bool    `json:"breakfast_included"`
	FreeCancellation  bool    `json:"free_cancellation"`
}

// ObservationFromJSON projects a raw stored document into the canonical
// Observation shape. Absent fields keep their zero values (0, "", false);
// missing fields are never an error condition.
func ObservationFromJSON(data []byte) Observation {
	var o Observation
	_ = json.Unmarshal(data, &o)
	return o
}
