package dataloader

import (
	"fmt"
	"time"
)

// DateLayout is the calendar-date format used by the source API.
const DateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD string into a midnight-UTC time.
func ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, NewValidationError("invalid date " + s + ": expected YYYY-MM-DD")
	}
	return t, nil
}

// FormatDate formats a time as the YYYY-MM-DD string the source API expects.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// DateFromInt converts a date given as a YYYYMMDD integer (e.g. 20240115)
// into a midnight-UTC time. This is a convenience for callers that carry
// dates as compact integers.
func DateFromInt(yyyymmdd int) (time.Time, error) {
	s := fmt.Sprintf("%d", yyyymmdd)
	if len(s) != 8 {
		return time.Time{}, NewValidationError(fmt.Sprintf("invalid date %d: expected YYYYMMDD", yyyymmdd))
	}
	return ParseDate(s[:4] + "-" + s[4:6] + "-" + s[6:8])
}

// Observation is one data point within a series. A missing observation
// (reported by the source with its no-value sentinel) has Missing set;
// Value is then zero and carries no meaning. Missing observations are never
// folded into numeric zeros.
type Observation struct {
	Date    time.Time
	Value   float64
	Missing bool
}

// Series is an ordered sequence of observations for one series ID. Dates
// are non-decreasing as returned by the source; duplicate dates are passed
// through, not deduplicated.
type Series []Observation

// Len returns the number of observations, missing ones included.
func (s Series) Len() int { return len(s) }

// First returns the earliest observation, or false if the series is empty.
func (s Series) First() (Observation, bool) {
	if len(s) == 0 {
		return Observation{}, false
	}
	return s[0], true
}

// Last returns the latest observation, or false if the series is empty.
func (s Series) Last() (Observation, bool) {
	if len(s) == 0 {
		return Observation{}, false
	}
	return s[len(s)-1], true
}

// Values returns the numeric values of the non-missing observations, in
// date order.
func (s Series) Values() []float64 {
	out := make([]float64, 0, len(s))
	for _, ob := range s {
		if !ob.Missing {
			out = append(out, ob.Value)
		}
	}
	return out
}

// SeriesDescription is the metadata record for one series, passed through
// verbatim from the source API's JSON object (id, title, frequency, units,
// seasonal adjustment, observation range, notes, ...). Field names follow
// the source; values are kept as strings.
type SeriesDescription map[string]string

// ID returns the series identifier field.
func (d SeriesDescription) ID() string { return d["id"] }

// Title returns the series title field.
func (d SeriesDescription) Title() string { return d["title"] }

// Frequency returns the series' native frequency field.
func (d SeriesDescription) Frequency() string { return d["frequency"] }

// Collection maps series IDs to their fetched series. Keys are exactly the
// requested IDs that succeeded; callers detect failed IDs by comparing the
// requested set against the returned keys.
type Collection map[string]Series

// SearchResult is an ordered sequence of series metadata rows returned by a
// catalog search.
type SearchResult []SeriesDescription

// PopularSeries is one entry in a hand-curated list of commonly used
// series. The list is static data with no lifecycle.
type PopularSeries struct {
	ID        string
	Title     string
	Frequency string
}
