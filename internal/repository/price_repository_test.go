package repository

import (
	"testing"

	"github.com/navid-fn/hotelradar/internal/model"
)

func TestIndexKey(t *testing.T) {
	if got := indexKey("tampere#2#1#morning", IndexPrimary); got != "prices:idx:tampere#2#1#morning" {
		t.Errorf("Unexpected primary index key %q", got)
	}
	if got := indexKey("tampere#2#1#morning", IndexByCheckin); got != "prices:idx2:tampere#2#1#morning" {
		t.Errorf("Unexpected secondary index key %q", got)
	}
}

func TestPrimarySortKey(t *testing.T) {
	primary := "2025-06-01#h42#2025-07-01#2025-07-02"
	if got, ok := primarySortKey(primary, IndexPrimary); !ok || got != primary {
		t.Errorf("Primary members map to themselves, got %q (%v)", got, ok)
	}

	// Secondary members carry checkin#scraped#hotel#checkout and reorder
	// back to the primary layout.
	secondary := "2025-07-01#2025-06-01#h42#2025-07-02"
	got, ok := primarySortKey(secondary, IndexByCheckin)
	if !ok {
		t.Fatal("Expected well-formed secondary member to map")
	}
	if got != primary {
		t.Errorf("Expected %q, got %q", primary, got)
	}

	if _, ok := primarySortKey("2025-07-01#h42", IndexByCheckin); ok {
		t.Error("Expected malformed member to be rejected")
	}
}

func TestFilterMatches(t *testing.T) {
	yes, no := true, false
	withBreakfast := model.Observation{BreakfastIncluded: true}
	plain := model.Observation{}

	if !(Filter{}).matches(withBreakfast) || !(Filter{}).matches(plain) {
		t.Error("Empty filter must match everything")
	}
	if (Filter{BreakfastIncluded: &no}).matches(withBreakfast) {
		t.Error("breakfast_included=false must reject breakfast records")
	}
	if !(Filter{BreakfastIncluded: &yes}).matches(withBreakfast) {
		t.Error("breakfast_included=true must keep breakfast records")
	}
	if (Filter{BreakfastIncluded: &no, FreeCancellation: &yes}).matches(plain) {
		t.Error("Combined filter must require both attributes")
	}
}
