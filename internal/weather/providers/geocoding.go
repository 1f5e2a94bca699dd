package providers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/i474232898/weather-mcp/internal/weather"
)

// DefaultGeocodingURL is the Open-Meteo geocoding API root.
const DefaultGeocodingURL = "https://geocoding-api.open-meteo.com/v1"

// OpenMeteoGeocoder implements weather.Geocoder with the Open-Meteo geocoding API.
type OpenMeteoGeocoder struct {
	baseURL string
	httpCfg HTTPClientConfig
}

// NewOpenMeteoGeocoder creates a geocoder for the API rooted at baseURL.
func NewOpenMeteoGeocoder(client *http.Client, baseURL string) *OpenMeteoGeocoder {
	if baseURL == "" {
		baseURL = DefaultGeocodingURL
	}
	return &OpenMeteoGeocoder{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpCfg: HTTPClientConfig{Client: client},
	}
}

type geocodingResult struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Country   string  `json:"country"`
	Admin1    string  `json:"admin1"`
}

type geocodingResponse struct {
	Results []geocodingResult `json:"results"`
}

// ResolveLocation looks up the single best English match for query.
// Every failure is returned as *weather.GeocodingFailedError.
func (g *OpenMeteoGeocoder) ResolveLocation(ctx context.Context, query string) (weather.ResolvedLocation, error) {
	loc, err := g.resolve(ctx, query)
	if err != nil {
		return weather.ResolvedLocation{}, &weather.GeocodingFailedError{Err: err}
	}
	return loc, nil
}

func (g *OpenMeteoGeocoder) resolve(ctx context.Context, query string) (weather.ResolvedLocation, error) {
	values := url.Values{}
	values.Set("name", query)
	values.Set("count", "1")
	values.Set("language", "en")
	values.Set("format", "json")

	resp, err := doRequest(ctx, g.httpCfg, "Geocoding", g.baseURL+"/search?"+values.Encode())
	if err != nil {
		return weather.ResolvedLocation{}, err
	}
	defer resp.Body.Close()

	var payload geocodingResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return weather.ResolvedLocation{}, fmt.Errorf("invalid geocoding response: %w", err)
	}

	if len(payload.Results) == 0 {
		return weather.ResolvedLocation{}, &weather.NoMatchError{Query: query}
	}

	result := payload.Results[0]
	name := displayName(result.Name, result.Admin1, result.Country)
	if name == "" {
		return weather.ResolvedLocation{}, errors.New("geocoding result has no name")
	}

	return weather.ResolvedLocation{
		Coordinate: weather.Coordinate{
			Latitude:  result.Latitude,
			Longitude: result.Longitude,
		},
		DisplayName: name,
	}, nil
}

// displayName joins the non-empty parts with ", ".
func displayName(parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, ", ")
}
