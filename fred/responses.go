package fred

import (
	"strconv"

	"freddata/dataloader"
)

// missingValue is the sentinel the FRED API uses for observations that have
// no value.
const missingValue = "."

// observationsResponse represents the FRED API response for series observations
type observationsResponse struct {
	RealtimeStart    string `json:"realtime_start"`
	RealtimeEnd      string `json:"realtime_end"`
	ObservationStart string `json:"observation_start"`
	ObservationEnd   string `json:"observation_end"`
	Count            int    `json:"count"`
	Observations     []struct {
		Date  string `json:"date"`
		Value string `json:"value"`
	} `json:"observations"`
}

// seriesListResponse represents the FRED API response shape shared by the
// series metadata and series search endpoints. Metadata fields are kept
// loosely typed because the set of fields varies by endpoint and the API
// mixes strings and numbers (e.g. popularity).
type seriesListResponse struct {
	Seriess []map[string]any `json:"seriess"`
}

// errorResponse represents the FRED API error body on non-2xx responses
type errorResponse struct {
	ErrorCode    int    `json:"error_code"`
	ErrorMessage string `json:"error_message"`
}

// toSeries converts the raw observations into a Series, mapping the
// missing-value sentinel to an explicit Missing marker. Missing
// observations are kept in the table so its length matches the source's
// observation count.
func (r *observationsResponse) toSeries() (dataloader.Series, error) {
	series := make(dataloader.Series, 0, len(r.Observations))
	for _, raw := range r.Observations {
		date, err := dataloader.ParseDate(raw.Date)
		if err != nil {
			return nil, dataloader.NewMalformedError("unparseable observation date "+raw.Date, err)
		}

		ob := dataloader.Observation{Date: date}
		if raw.Value == missingValue || raw.Value == "" {
			ob.Missing = true
		} else {
			value, err := strconv.ParseFloat(raw.Value, 64)
			if err != nil {
				return nil, dataloader.NewMalformedError("unparseable observation value "+raw.Value, err)
			}
			ob.Value = value
		}
		series = append(series, ob)
	}
	return series, nil
}

// descriptionFromRaw flattens one raw metadata object into a
// SeriesDescription, stringifying the occasional non-string field.
func descriptionFromRaw(raw map[string]any) dataloader.SeriesDescription {
	desc := make(dataloader.SeriesDescription, len(raw))
	for key, value := range raw {
		switch v := value.(type) {
		case string:
			desc[key] = v
		case float64:
			desc[key] = strconv.FormatFloat(v, 'f', -1, 64)
		case bool:
			desc[key] = strconv.FormatBool(v)
		case nil:
			desc[key] = ""
		default:
			desc[key] = ""
		}
	}
	return desc
}
