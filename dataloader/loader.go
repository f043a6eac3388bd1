// Package dataloader defines the capability contract shared by financial
// time-series data sources, the tabular types their operations return, and
// the error taxonomy they report.
package dataloader

import (
	"context"
	"time"
)

// DataLoader is the core interface that all economic data sources must
// implement. Callers written against this interface can swap one source for
// another without changing their fetch logic.
type DataLoader interface {
	// GetSeries retrieves the observations for a single series. A nil opts
	// applies the source's defaults (full history, native frequency).
	GetSeries(ctx context.Context, seriesID string, opts *SeriesOptions) (Series, error)

	// GetSeriesDescription retrieves the metadata record for a single series.
	GetSeriesDescription(ctx context.Context, seriesID string) (SeriesDescription, error)

	// GetMultipleSeries retrieves several series with the same options. Each
	// series is fetched independently: a failure on one ID never aborts the
	// rest, and failed IDs are omitted from the returned collection.
	GetMultipleSeries(ctx context.Context, seriesIDs []string, opts *SeriesOptions) (Collection, error)

	// GetAvailableSeries searches the source's catalog for series matching
	// the given criteria.
	GetAvailableSeries(ctx context.Context, opts *SearchOptions) (SearchResult, error)
}

// Frequency is the sampling interval requested for a series, using the
// source API's short codes.
type Frequency string

const (
	FrequencyDaily      Frequency = "d"
	FrequencyWeekly     Frequency = "w"
	FrequencyMonthly    Frequency = "m"
	FrequencyQuarterly  Frequency = "q"
	FrequencySemiannual Frequency = "sa"
	FrequencyAnnual     Frequency = "a"
)

// Validate checks that the frequency is one of the supported short codes.
// The empty value is valid and means "use the series' native frequency".
func (f Frequency) Validate() error {
	switch f {
	case "", FrequencyDaily, FrequencyWeekly, FrequencyMonthly,
		FrequencyQuarterly, FrequencySemiannual, FrequencyAnnual:
		return nil
	}
	return NewValidationError("invalid frequency: " + string(f))
}

// Aggregation is the method used to combine sub-period observations when a
// series is down-sampled to a coarser frequency.
type Aggregation string

const (
	AggregationAverage     Aggregation = "avg"
	AggregationSum         Aggregation = "sum"
	AggregationEndOfPeriod Aggregation = "eop"
)

// Validate checks that the aggregation method is one of the supported
// codes. The empty value is valid and means "use the source's default".
func (a Aggregation) Validate() error {
	switch a {
	case "", AggregationAverage, AggregationSum, AggregationEndOfPeriod:
		return nil
	}
	return NewValidationError("invalid aggregation method: " + string(a))
}

// SeriesOptions holds the optional filters for a series fetch. Zero values
// mean "unset" and are omitted from the request.
type SeriesOptions struct {
	// StartDate is the inclusive lower bound of the observation range.
	StartDate time.Time

	// EndDate is the inclusive upper bound of the observation range. If both
	// bounds are set, StartDate must not be after EndDate.
	EndDate time.Time

	// Frequency down-samples the series to the given interval.
	Frequency Frequency

	// Aggregation selects how sub-period observations are combined when
	// Frequency is coarser than the series' native interval.
	Aggregation Aggregation
}

// Validate checks the option fields for internal consistency. A nil options
// struct is valid. An inverted date range fails here, before any network
// call, rather than coming back as an empty table: an empty table is a
// legitimate answer for a sparse range, an inverted range is a caller bug.
func (o *SeriesOptions) Validate() error {
	if o == nil {
		return nil
	}
	if err := o.Frequency.Validate(); err != nil {
		return err
	}
	if err := o.Aggregation.Validate(); err != nil {
		return err
	}
	if !o.StartDate.IsZero() && !o.EndDate.IsZero() && o.StartDate.After(o.EndDate) {
		return NewValidationError("start date is after end date")
	}
	return nil
}

// SearchOptions holds the optional filters for a catalog search.
type SearchOptions struct {
	// SearchText is matched against series titles by the source.
	SearchText string

	// CategoryID restricts results to one source category. Zero means no
	// category filter.
	CategoryID int

	// Limit caps the number of rows returned. Zero or negative means "use
	// the source's default page size". Implementations clamp values above
	// the source's maximum page size rather than rejecting them.
	Limit int
}
