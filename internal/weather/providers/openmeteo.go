package providers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/i474232898/weather-mcp/internal/weather"
)

// DefaultForecastURL is the Open-Meteo forecast API root.
const DefaultForecastURL = "https://api.open-meteo.com/v1"

const (
	currentFields = "temperature_2m,relative_humidity_2m,weather_code,wind_speed_10m,wind_direction_10m,is_day"
	dailyFields   = "weather_code,temperature_2m_max,temperature_2m_min,sunrise,sunset,precipitation_sum"
)

// OpenMeteoProvider implements weather.ForecastFetcher for Open-Meteo.
type OpenMeteoProvider struct {
	baseURL string
	httpCfg HTTPClientConfig
}

// NewOpenMeteoProvider creates a forecast fetcher for the API rooted at baseURL.
func NewOpenMeteoProvider(client *http.Client, baseURL string) *OpenMeteoProvider {
	if baseURL == "" {
		baseURL = DefaultForecastURL
	}
	return &OpenMeteoProvider{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpCfg: HTTPClientConfig{Client: client},
	}
}

// weatherCode accepts a WMO code sent either as a JSON number or a string.
// Values that are not whole numbers decode to weather.UnknownCode.
type weatherCode int

func (c *weatherCode) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if raw == "null" {
		*c = weather.UnknownCode
		return nil
	}
	if strings.HasPrefix(raw, `"`) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		raw = strings.TrimSpace(s)
	}

	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || f != math.Trunc(f) || math.IsInf(f, 0) {
		*c = weather.UnknownCode
		return nil
	}
	*c = weatherCode(f)
	return nil
}

type forecastResponse struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Current   *struct {
		Temperature      float64     `json:"temperature_2m"`
		WindSpeed        float64     `json:"wind_speed_10m"`
		WindDirection    float64     `json:"wind_direction_10m"`
		WeatherCode      weatherCode `json:"weather_code"`
		IsDay            int         `json:"is_day"`
		Time             string      `json:"time"`
		RelativeHumidity float64     `json:"relative_humidity_2m"`
	} `json:"current"`
	Daily *struct {
		Time             []string      `json:"time"`
		WeatherCode      []weatherCode `json:"weather_code"`
		TemperatureMax   []float64     `json:"temperature_2m_max"`
		TemperatureMin   []float64     `json:"temperature_2m_min"`
		Sunrise          []string      `json:"sunrise"`
		Sunset           []string      `json:"sunset"`
		PrecipitationSum []float64     `json:"precipitation_sum"`
	} `json:"daily"`
}

// FetchForecast retrieves current conditions and the daily forecast for coord.
// Every failure is returned as *weather.WeatherFetchFailedError.
func (p *OpenMeteoProvider) FetchForecast(ctx context.Context, coord weather.Coordinate) (weather.Report, error) {
	report, err := p.fetch(ctx, coord)
	if err != nil {
		return weather.Report{}, &weather.WeatherFetchFailedError{Err: err}
	}
	return report, nil
}

func (p *OpenMeteoProvider) fetch(ctx context.Context, coord weather.Coordinate) (weather.Report, error) {
	values := url.Values{}
	values.Set("latitude", strconv.FormatFloat(coord.Latitude, 'f', -1, 64))
	values.Set("longitude", strconv.FormatFloat(coord.Longitude, 'f', -1, 64))
	values.Set("current", currentFields)
	values.Set("daily", dailyFields)
	values.Set("timezone", "auto")

	resp, err := doRequest(ctx, p.httpCfg, "Weather", p.baseURL+"/forecast?"+values.Encode())
	if err != nil {
		return weather.Report{}, err
	}
	defer resp.Body.Close()

	var payload forecastResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return weather.Report{}, fmt.Errorf("invalid forecast response: %w", err)
	}
	if payload.Current == nil || payload.Daily == nil {
		return weather.Report{}, errors.New("forecast response is missing current or daily data")
	}

	codes := make([]int, len(payload.Daily.WeatherCode))
	for i, c := range payload.Daily.WeatherCode {
		codes[i] = int(c)
	}

	report := weather.Report{
		Current: weather.CurrentConditions{
			TemperatureC:        payload.Current.Temperature,
			WindSpeedKmh:        payload.Current.WindSpeed,
			WindDirectionDeg:    payload.Current.WindDirection,
			WeatherCode:         int(payload.Current.WeatherCode),
			IsDay:               payload.Current.IsDay,
			Time:                payload.Current.Time,
			RelativeHumidityPct: payload.Current.RelativeHumidity,
		},
		Daily: weather.DailyForecast{
			Time:            payload.Daily.Time,
			WeatherCode:     codes,
			TemperatureMaxC: payload.Daily.TemperatureMax,
			TemperatureMinC: payload.Daily.TemperatureMin,
			Sunrise:         payload.Daily.Sunrise,
			Sunset:          payload.Daily.Sunset,
			PrecipitationMm: payload.Daily.PrecipitationSum,
		},
		Coordinate: weather.Coordinate{
			Latitude:  payload.Latitude,
			Longitude: payload.Longitude,
		},
	}

	if !report.Daily.Aligned() {
		return weather.Report{}, errors.New("forecast daily sequences have mismatched lengths")
	}
	return report, nil
}
