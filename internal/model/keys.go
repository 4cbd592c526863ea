package model

import (
	"fmt"
	"strings"
	"time"
)

// Composite keys follow the price store schema:
//
//	partition: location#persons#nights#time
//	sort:      scraped_date#hotel_id#checkin_date#checkout_date
//	secondary: checkin_date#scraped_date#hotel_id#checkout_date
//
// Key components are joined with "#" (ASCII 35). Range bounds append "#"
// on the low side and "~" (ASCII 126, above digits, letters and "#") on
// the high side, so a lexicographic scan over the composite string keeps
// every key whose leading date components fall inside the range no matter
// what trails them.

const (
	keySeparator = "#"
	rangeLow     = "#"
	rangeHigh    = "~"

	// ISODate is the storage/query date layout.
	ISODate = "2006-01-02"

	// DisplayDate is the user-facing date layout.
	DisplayDate = "02-01-2006"
)

// PartitionKey builds the exact-match partition key for one query
// configuration.
func PartitionKey(location string, persons, nights int, timeOfDay string) string {
	return fmt.Sprintf("%s%s%d%s%d%s%s", location, keySeparator, persons, keySeparator, nights, keySeparator, timeOfDay)
}

// SortKey builds the primary sort key for one observation.
func SortKey(scrapedDate, hotelID, checkinDate, checkoutDate string) string {
	return strings.Join([]string{scrapedDate, hotelID, checkinDate, checkoutDate}, keySeparator)
}

// SecondarySortKey builds the alternate-index sort key, ordered so a scan
// can fix checkin_date and range over scraped_date.
func SecondarySortKey(checkinDate, scrapedDate, hotelID, checkoutDate string) string {
	return strings.Join([]string{checkinDate, scrapedDate, hotelID, checkoutDate}, keySeparator)
}

// RangeBounds turns an inclusive [lo, hi] prefix range into lexicographic
// scan bounds. lo and hi may be single dates or "#"-joined prefixes
// (e.g. checkin#scraped for the secondary index).
func RangeBounds(lo, hi string) (string, string) {
	return lo + rangeLow, hi + rangeHigh
}

// KeyPrefix joins key components into a sort-key prefix.
func KeyPrefix(parts ...string) string {
	return strings.Join(parts, keySeparator)
}

// ToISODate converts a user-facing DD-MM-YYYY date into the storage
// YYYY-MM-DD form. Mixing the two layouts in one comparison is a
// correctness bug, so conversion happens once, at the boundary.
func ToISODate(display string) (string, error) {
	t, err := time.Parse(DisplayDate, display)
	if err != nil {
		return "", fmt.Errorf("invalid date %q (want DD-MM-YYYY): %w", display, err)
	}
	return t.Format(ISODate), nil
}

// ParseISODate parses a storage-form date.
func ParseISODate(iso string) (time.Time, error) {
	t, err := time.Parse(ISODate, iso)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD): %w", iso, err)
	}
	return t, nil
}
