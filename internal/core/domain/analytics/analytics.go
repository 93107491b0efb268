package analytics

import "errors"

// MaxSummaryDays matches how long the daily counters are retained.
const MaxSummaryDays = 90

// DefaultSummaryDays is used when the caller does not ask for a range.
const DefaultSummaryDays = 7

var ErrInvalidRange = errors.New("summary range must be between 1 and 90 days")

// DailyPageViews is the page view count of one UTC day.
type DailyPageViews struct {
	Day   string           `json:"day"`
	Total int64            `json:"total"`
	Paths map[string]int64 `json:"paths"`
}

// Summary covers the most recent days of a tenant, oldest first.
type Summary struct {
	Days  []DailyPageViews `json:"days"`
	Total int64            `json:"total"`
}
