package weather

// Coordinate is a point in decimal degrees.
type Coordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// ResolvedLocation is the outcome of geocoding a free-text query.
// DisplayName is never empty for a successful lookup.
type ResolvedLocation struct {
	Coordinate  Coordinate `json:"coordinate"`
	DisplayName string     `json:"displayName"`
}

// CurrentConditions holds the "current" block of a forecast, metric units.
type CurrentConditions struct {
	TemperatureC        float64 `json:"temperatureC"`
	WindSpeedKmh        float64 `json:"windSpeedKmh"`
	WindDirectionDeg    float64 `json:"windDirectionDeg"`
	WeatherCode         int     `json:"weatherCode"`
	IsDay               int     `json:"isDay"`
	Time                string  `json:"time"`
	RelativeHumidityPct float64 `json:"relativeHumidityPct"`
}

// DailyForecast stores one entry per forecast day in index-aligned slices.
// All slices have the same length and index i describes the same calendar day.
type DailyForecast struct {
	Time            []string  `json:"time"`
	WeatherCode     []int     `json:"weatherCode"`
	TemperatureMaxC []float64 `json:"temperatureMaxC"`
	TemperatureMinC []float64 `json:"temperatureMinC"`
	Sunrise         []string  `json:"sunrise"`
	Sunset          []string  `json:"sunset"`
	PrecipitationMm []float64 `json:"precipitationMm"`
}

// Len returns the number of forecast days.
func (d DailyForecast) Len() int {
	return len(d.Time)
}

// Aligned reports whether every daily sequence has the same length.
func (d DailyForecast) Aligned() bool {
	n := len(d.Time)
	return len(d.WeatherCode) == n &&
		len(d.TemperatureMaxC) == n &&
		len(d.TemperatureMinC) == n &&
		len(d.Sunrise) == n &&
		len(d.Sunset) == n &&
		len(d.PrecipitationMm) == n
}

// Report is the normalized forecast for one location. Coordinate is the
// point echoed by the forecast provider and may differ slightly in precision
// from the geocoded one.
type Report struct {
	Current    CurrentConditions `json:"current"`
	Daily      DailyForecast     `json:"daily"`
	Coordinate Coordinate        `json:"coordinate"`
}
