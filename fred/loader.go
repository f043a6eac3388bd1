// Package fred implements the dataloader contract against the Federal
// Reserve Economic Data (FRED) HTTP API.
package fred

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"
	"resty.dev/v3"

	"freddata/dataloader"
	"freddata/internal/config"
	"freddata/internal/ratelimit"
)

const (
	// defaultBaseURL is the production FRED API endpoint root.
	defaultBaseURL = "https://api.stlouisfed.org/fred"

	// maxSearchLimit is the FRED API's maximum page size for search
	// results. Larger requested limits are clamped, not rejected.
	maxSearchLimit = 1000
)

// Loader fetches economic time series from the FRED API. It implements
// dataloader.DataLoader.
//
// A Loader is safe to reuse across sequential calls. The contract makes no
// guarantee about concurrent use of a single instance; callers needing
// parallelism should construct one Loader per concurrent path.
type Loader struct {
	apiKey  string
	client  *resty.Client
	limiter *ratelimit.Limiter
}

var _ dataloader.DataLoader = (*Loader)(nil)

type settings struct {
	baseURL    string
	timeout    time.Duration
	retryCount int
	rateRPS    float64
	rateBurst  int
}

// Option configures non-contract behavior of a Loader (endpoint, timeout,
// retries, client-side rate limiting).
type Option func(*settings)

// WithBaseURL overrides the FRED API endpoint root, mainly for tests.
func WithBaseURL(baseURL string) Option {
	return func(s *settings) { s.baseURL = baseURL }
}

// WithTimeout bounds each HTTP request. Zero disables the timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(s *settings) { s.timeout = timeout }
}

// WithRetry enables transparent retries of transient failures (network
// errors, 5xx, 429) up to count attempts with exponential backoff. The
// default is no retries: transient and rate-limit errors are surfaced.
func WithRetry(count int) Option {
	return func(s *settings) { s.retryCount = count }
}

// WithRateLimit gives the loader its own client-side request budget instead
// of the shared default limiter.
func WithRateLimit(rps float64, burst int) Option {
	return func(s *settings) {
		s.rateRPS = rps
		s.rateBurst = burst
	}
}

// New creates a FRED loader with the given API key. It fails fast with an
// auth-kind error if the key is empty; a key the source rejects surfaces as
// an auth-kind error on the first call.
func New(apiKey string, opts ...Option) (*Loader, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, dataloader.NewAuthError("missing API key")
	}

	s := settings{baseURL: defaultBaseURL}
	for _, opt := range opts {
		opt(&s)
	}

	limiter := ratelimit.GetLimiter()
	if s.rateRPS > 0 {
		limiter = ratelimit.New()
		limiter.Set(ratelimit.APIFred, rate.Limit(s.rateRPS), s.rateBurst)
	}

	return &Loader{
		apiKey:  apiKey,
		client:  newHTTPClient(s.baseURL, s.timeout, s.retryCount),
		limiter: limiter,
	}, nil
}

// NewFromEnv creates a FRED loader from environment configuration (see
// internal/config for the variables read). FRED_API_KEY is required.
func NewFromEnv() (*Loader, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, dataloader.NewAuthError(err.Error())
	}

	opts := []Option{WithBaseURL(cfg.FredBaseURL)}
	if cfg.TimeoutSeconds > 0 {
		opts = append(opts, WithTimeout(time.Duration(cfg.TimeoutSeconds)*time.Second))
	}
	if cfg.RetryCount > 0 {
		opts = append(opts, WithRetry(cfg.RetryCount))
	}
	if cfg.RateLimitRPS > 0 {
		opts = append(opts, WithRateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst))
	}

	return New(cfg.FredAPIKey, opts...)
}

// GetSeries retrieves the observations for a single series, honoring the
// optional date range, frequency, and aggregation filters. Dates are parsed
// into calendar dates and the source's missing-value sentinel becomes an
// explicit Missing marker, never a numeric zero.
func (l *Loader) GetSeries(ctx context.Context, seriesID string, opts *dataloader.SeriesOptions) (dataloader.Series, error) {
	if seriesID == "" {
		return nil, dataloader.NewValidationError("series ID is required")
	}
	if err := opts.Validate(); err != nil {
		return nil, withSeries(err, seriesID)
	}

	params := map[string]string{"series_id": seriesID}
	if opts != nil {
		if !opts.StartDate.IsZero() {
			params["observation_start"] = dataloader.FormatDate(opts.StartDate)
		}
		if !opts.EndDate.IsZero() {
			params["observation_end"] = dataloader.FormatDate(opts.EndDate)
		}
		if opts.Frequency != "" {
			params["frequency"] = string(opts.Frequency)
		}
		if opts.Aggregation != "" {
			params["aggregation_method"] = string(opts.Aggregation)
		}
	}

	var result observationsResponse
	if err := l.get(ctx, "/series/observations", params, &result); err != nil {
		return nil, withSeries(err, seriesID)
	}

	if result.Observations == nil {
		return nil, withSeries(dataloader.NewMalformedError("no observations in response", nil), seriesID)
	}

	series, err := result.toSeries()
	if err != nil {
		return nil, withSeries(err, seriesID)
	}
	return series, nil
}

// GetSeriesDescription retrieves the metadata record for a single series.
// Unknown series IDs surface as a not-found error.
func (l *Loader) GetSeriesDescription(ctx context.Context, seriesID string) (dataloader.SeriesDescription, error) {
	if seriesID == "" {
		return nil, dataloader.NewValidationError("series ID is required")
	}

	var result seriesListResponse
	if err := l.get(ctx, "/series", map[string]string{"series_id": seriesID}, &result); err != nil {
		return nil, withSeries(err, seriesID)
	}

	if len(result.Seriess) == 0 {
		return nil, dataloader.NewNotFoundError(seriesID)
	}

	return descriptionFromRaw(result.Seriess[0]), nil
}

// GetMultipleSeries retrieves several series sequentially with the same
// options. Failures are isolated per series ID: a failed ID is logged and
// omitted from the returned collection, and never aborts the remaining
// fetches. Callers detect failed IDs by comparing the requested set against
// the returned keys.
func (l *Loader) GetMultipleSeries(ctx context.Context, seriesIDs []string, opts *dataloader.SeriesOptions) (dataloader.Collection, error) {
	collection := make(dataloader.Collection, len(seriesIDs))

	for _, seriesID := range seriesIDs {
		series, err := l.GetSeries(ctx, seriesID, opts)
		if err != nil {
			slog.Warn("skipping series after failed fetch",
				"series_id", seriesID,
				"error", err)
			continue
		}
		collection[seriesID] = series
	}

	return collection, nil
}

// GetAvailableSeries searches the FRED catalog. With search text it queries
// the series search endpoint; with only a category ID it lists that
// category's series. Limits above the API's maximum page size are clamped.
func (l *Loader) GetAvailableSeries(ctx context.Context, opts *dataloader.SearchOptions) (dataloader.SearchResult, error) {
	endpoint := "/series/search"
	params := map[string]string{}
	limit := 0

	if opts != nil {
		if opts.SearchText != "" {
			params["search_text"] = opts.SearchText
		} else if opts.CategoryID > 0 {
			endpoint = "/category/series"
		}
		if opts.CategoryID > 0 {
			params["category_id"] = strconv.Itoa(opts.CategoryID)
		}
		limit = opts.Limit
		if limit > maxSearchLimit {
			limit = maxSearchLimit
		}
		if limit > 0 {
			params["limit"] = strconv.Itoa(limit)
		}
	}

	var result seriesListResponse
	if err := l.get(ctx, endpoint, params, &result); err != nil {
		return nil, err
	}

	if result.Seriess == nil {
		return nil, dataloader.NewMalformedError("no series list in response", nil)
	}

	rows := make(dataloader.SearchResult, 0, len(result.Seriess))
	for _, raw := range result.Seriess {
		rows = append(rows, descriptionFromRaw(raw))
	}
	if limit > 0 && len(rows) > limit {
		rows = rows[:limit]
	}
	return rows, nil
}

// get issues one GET request against the FRED API, attaching the API key
// and JSON file type, and maps failures into the error taxonomy.
func (l *Loader) get(ctx context.Context, endpoint string, params map[string]string, out any) error {
	if err := l.limiter.Wait(ctx, ratelimit.APIFred); err != nil {
		return dataloader.NewNetworkError(err)
	}

	var apiErr errorResponse
	resp, err := l.client.R().
		SetContext(ctx).
		SetQueryParams(params).
		SetQueryParams(map[string]string{
			"api_key":   l.apiKey,
			"file_type": "json",
		}).
		SetResult(out).
		SetError(&apiErr).
		Get(endpoint)

	if err != nil {
		if isDecodeError(err) {
			return dataloader.NewMalformedError("undecodable response body", err)
		}
		return dataloader.NewNetworkError(err)
	}

	if !resp.IsSuccess() {
		return dataloader.ClassifyStatus(resp.StatusCode(), apiErr.ErrorMessage)
	}

	return nil
}

// isDecodeError reports whether err came from unmarshaling the response
// body rather than from the transport.
func isDecodeError(err error) bool {
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	return errors.As(err, &syntaxErr) || errors.As(err, &typeErr)
}

// withSeries stamps the offending series ID onto a taxonomy error.
func withSeries(err error, seriesID string) error {
	var de *dataloader.Error
	if errors.As(err, &de) && de.SeriesID == "" {
		de.SeriesID = seriesID
	}
	return err
}
