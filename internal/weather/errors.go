package weather

import "fmt"

// UpstreamError is returned when an upstream API answers with a non-2xx status.
type UpstreamError struct {
	API        string // "Geocoding" or "Weather"
	StatusCode int
	Status     string // status text without the code, e.g. "Not Found"
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s API error: %d %s", e.API, e.StatusCode, e.Status)
}

// NoMatchError is returned when geocoding finds no candidate for a query.
type NoMatchError struct {
	Query string
}

func (e *NoMatchError) Error() string {
	return "No results found for location: " + e.Query
}

// GeocodingFailedError wraps any failure raised while resolving a location.
type GeocodingFailedError struct {
	Err error
}

func (e *GeocodingFailedError) Error() string {
	if e.Err == nil || e.Err.Error() == "" {
		return "Geocoding failed with an unknown error"
	}
	return "Geocoding failed: " + e.Err.Error()
}

func (e *GeocodingFailedError) Unwrap() error {
	return e.Err
}

// WeatherFetchFailedError wraps any failure raised while fetching a forecast.
type WeatherFetchFailedError struct {
	Err error
}

func (e *WeatherFetchFailedError) Error() string {
	if e.Err == nil || e.Err.Error() == "" {
		return "Weather data fetch failed with an unknown error"
	}
	return "Weather data fetch failed: " + e.Err.Error()
}

func (e *WeatherFetchFailedError) Unwrap() error {
	return e.Err
}
