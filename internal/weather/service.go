package weather

import (
	"context"
	"fmt"
	"log"
)

// Service runs the geocode -> fetch -> format pipeline for a single location.
// It keeps no state between calls, so concurrent invocations are independent.
type Service struct {
	geocoder   Geocoder
	forecaster ForecastFetcher
}

// NewService creates a new Service.
func NewService(geocoder Geocoder, forecaster ForecastFetcher) *Service {
	return &Service{
		geocoder:   geocoder,
		forecaster: forecaster,
	}
}

// Report resolves the location, fetches its forecast and renders the text report.
// The two upstream calls are strictly sequential; the first error aborts the
// pipeline and is returned unmodified, no partial report is produced.
func (s *Service) Report(ctx context.Context, location string) (string, error) {
	if s.geocoder == nil || s.forecaster == nil {
		return "", fmt.Errorf("weather service is not configured")
	}

	log.Printf("DEBUG: geocoding location: %s", location)
	resolved, err := s.geocoder.ResolveLocation(ctx, location)
	if err != nil {
		return "", err
	}

	log.Printf("DEBUG: fetching forecast for %s (%g, %g)", resolved.DisplayName,
		resolved.Coordinate.Latitude, resolved.Coordinate.Longitude)
	report, err := s.forecaster.FetchForecast(ctx, resolved.Coordinate)
	if err != nil {
		return "", err
	}

	return FormatReport(report, resolved.DisplayName), nil
}
