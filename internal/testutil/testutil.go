package testutil

import (
	"context"
	"net/http"

	"freddata/dataloader"
)

var _ dataloader.DataLoader = (*MockLoader)(nil)

// MockLoader is a mock implementation of the DataLoader interface for testing
type MockLoader struct {
	GetSeriesFunc            func(ctx context.Context, seriesID string, opts *dataloader.SeriesOptions) (dataloader.Series, error)
	GetSeriesDescriptionFunc func(ctx context.Context, seriesID string) (dataloader.SeriesDescription, error)
	GetMultipleSeriesFunc    func(ctx context.Context, seriesIDs []string, opts *dataloader.SeriesOptions) (dataloader.Collection, error)
	GetAvailableSeriesFunc   func(ctx context.Context, opts *dataloader.SearchOptions) (dataloader.SearchResult, error)
}

// GetSeries implements the DataLoader interface
func (m *MockLoader) GetSeries(ctx context.Context, seriesID string, opts *dataloader.SeriesOptions) (dataloader.Series, error) {
	if m.GetSeriesFunc != nil {
		return m.GetSeriesFunc(ctx, seriesID, opts)
	}
	return nil, nil
}

// GetSeriesDescription implements the DataLoader interface
func (m *MockLoader) GetSeriesDescription(ctx context.Context, seriesID string) (dataloader.SeriesDescription, error) {
	if m.GetSeriesDescriptionFunc != nil {
		return m.GetSeriesDescriptionFunc(ctx, seriesID)
	}
	return nil, nil
}

// GetMultipleSeries implements the DataLoader interface
func (m *MockLoader) GetMultipleSeries(ctx context.Context, seriesIDs []string, opts *dataloader.SeriesOptions) (dataloader.Collection, error) {
	if m.GetMultipleSeriesFunc != nil {
		return m.GetMultipleSeriesFunc(ctx, seriesIDs, opts)
	}
	return dataloader.Collection{}, nil
}

// GetAvailableSeries implements the DataLoader interface
func (m *MockLoader) GetAvailableSeries(ctx context.Context, opts *dataloader.SearchOptions) (dataloader.SearchResult, error) {
	if m.GetAvailableSeriesFunc != nil {
		return m.GetAvailableSeriesFunc(ctx, opts)
	}
	return nil, nil
}

// JSONHandler returns an HTTP handler that responds with the given status
// code and JSON body, for use with httptest servers.
func JSONHandler(status int, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write([]byte(body))
	}
}
