package models

import (
	"fmt"
	"time"
)

// TimeRange is one token from the fixed period set understood by the
// market-data provider. The same set serves as both the historical range
// and the sampling interval of a request.
type TimeRange string

const (
	Range15Min  TimeRange = "15m"
	Range30Min  TimeRange = "30m"
	Range1Hour  TimeRange = "1h"
	Range2Hour  TimeRange = "2h"
	Range4Hour  TimeRange = "4h"
	Range6Hour  TimeRange = "6h"
	Range8Hour  TimeRange = "8h"
	Range1Day   TimeRange = "1d"
	Range5Day   TimeRange = "5d"
	Range1Week  TimeRange = "1wk"
	Range1Month TimeRange = "1mo"
	Range3Month TimeRange = "3mo"
	Range6Month TimeRange = "6mo"
	Range1Year  TimeRange = "1y"
	Range5Year  TimeRange = "5y"
)

// AllTimeRanges lists every period token, shortest first.
func AllTimeRanges() []TimeRange {
	return []TimeRange{
		Range15Min, Range30Min, Range1Hour, Range2Hour, Range4Hour,
		Range6Hour, Range8Hour, Range1Day, Range5Day, Range1Week,
		Range1Month, Range3Month, Range6Month, Range1Year, Range5Year,
	}
}

// Valid reports whether r belongs to the fixed token set.
func (r TimeRange) Valid() bool {
	for _, tr := range AllTimeRanges() {
		if r == tr {
			return true
		}
	}
	return false
}

// LookbackFrom returns the start of the trailing window that r spans,
// ending at t. Month and year tokens follow the calendar rather than a
// fixed number of hours.
func (r TimeRange) LookbackFrom(t time.Time) (time.Time, error) {
	switch r {
	case Range15Min:
		return t.Add(-15 * time.Minute), nil
	case Range30Min:
		return t.Add(-30 * time.Minute), nil
	case Range1Hour:
		return t.Add(-1 * time.Hour), nil
	case Range2Hour:
		return t.Add(-2 * time.Hour), nil
	case Range4Hour:
		return t.Add(-4 * time.Hour), nil
	case Range6Hour:
		return t.Add(-6 * time.Hour), nil
	case Range8Hour:
		return t.Add(-8 * time.Hour), nil
	case Range1Day:
		return t.AddDate(0, 0, -1), nil
	case Range5Day:
		return t.AddDate(0, 0, -5), nil
	case Range1Week:
		return t.AddDate(0, 0, -7), nil
	case Range1Month:
		return t.AddDate(0, -1, 0), nil
	case Range3Month:
		return t.AddDate(0, -3, 0), nil
	case Range6Month:
		return t.AddDate(0, -6, 0), nil
	case Range1Year:
		return t.AddDate(-1, 0, 0), nil
	case Range5Year:
		return t.AddDate(-5, 0, 0), nil
	}
	return time.Time{}, fmt.Errorf("unknown time range: %q", string(r))
}

// TimeFrame pairs the historical range of a market-data request with its
// sampling interval. Combinations are not validated here; the provider
// rejects the ones it does not support.
type TimeFrame struct {
	Range    TimeRange `json:"range"`
	Interval TimeRange `json:"interval"`
}
