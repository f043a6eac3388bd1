package fred

import "freddata/dataloader"

// popularSeries is a hand-curated list of commonly used FRED series. It is
// process-wide constant data: initialized once, never mutated, safe to
// share across all loader instances.
var popularSeries = []dataloader.PopularSeries{
	{ID: "GDP", Title: "Gross Domestic Product", Frequency: "Quarterly"},
	{ID: "UNRATE", Title: "Unemployment Rate", Frequency: "Monthly"},
	{ID: "CPIAUCSL", Title: "Consumer Price Index for All Urban Consumers", Frequency: "Monthly"},
	{ID: "FEDFUNDS", Title: "Federal Funds Effective Rate", Frequency: "Monthly"},
	{ID: "DGS10", Title: "10-Year Treasury Constant Maturity Rate", Frequency: "Daily"},
	{ID: "DGS2", Title: "2-Year Treasury Constant Maturity Rate", Frequency: "Daily"},
	{ID: "PAYEMS", Title: "Total Nonfarm Payrolls", Frequency: "Monthly"},
	{ID: "INDPRO", Title: "Industrial Production: Total Index", Frequency: "Monthly"},
	{ID: "M2SL", Title: "M2 Money Stock", Frequency: "Monthly"},
	{ID: "PCE", Title: "Personal Consumption Expenditures", Frequency: "Monthly"},
}

// GetPopularSeries returns the curated list of commonly used FRED series.
// It performs no network call and is deterministic across calls. The
// returned slice is a copy; mutating it does not affect later calls.
func (l *Loader) GetPopularSeries() []dataloader.PopularSeries {
	out := make([]dataloader.PopularSeries, len(popularSeries))
	copy(out, popularSeries)
	return out
}
