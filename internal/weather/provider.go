package weather

import (
	"context"
)

// Geocoder resolves a free-text location to coordinates and a display name.
type Geocoder interface {
	ResolveLocation(ctx context.Context, query string) (ResolvedLocation, error)
}

// ForecastFetcher retrieves current conditions and the daily forecast for a point.
type ForecastFetcher interface {
	FetchForecast(ctx context.Context, coord Coordinate) (Report, error)
}
