package locale

import (
	"strings"
	"time"
	_ "time/tzdata"
)

const (
	DefaultCountry  = "IN"
	DefaultTimezone = "Asia/Kolkata"
)

type Country struct {
	Code            string // ISO 3166-1 alpha-2 country code
	Name            string
	CurrencyCode    string // ISO 4217
	CurrencySymbol  string // printable in the PDF core fonts
	DefaultTimezone string // IANA timezone identifier
}

var (
	Countries = map[string]Country{
		"IN": {
			Code:            "IN",
			Name:            "India",
			CurrencyCode:    "INR",
			CurrencySymbol:  "Rs.",
			DefaultTimezone: "Asia/Kolkata",
		},
	}

	TimeZoneTags = map[string][]string{
		"IN": {"Asia/Kolkata", "Asia/Calcutta", "IST"},
	}
)

func DetectRegion(tz string) string {
	for region, zones := range TimeZoneTags {
		for _, z := range zones {
			if strings.EqualFold(tz, z) {
				return region
			}
		}
	}
	return DefaultCountry
}

// Location resolves tz, falling back to DefaultTimezone and then UTC when the
// zone database does not know it.
func Location(tz string) *time.Location {
	if tz == "" {
		tz = DefaultTimezone
	}
	if loc, err := time.LoadLocation(tz); err == nil {
		return loc
	}
	if loc, err := time.LoadLocation(DefaultTimezone); err == nil {
		return loc
	}
	return time.UTC
}

// StartOfDay returns local midnight of t in loc.
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	local := t.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
}
