package weather

import (
	"strconv"
	"strings"
	"time"
)

// Open-Meteo returns local times without a zone offset when timezone=auto.
var isoLayouts = []string{
	"2006-01-02T15:04",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"2006-01-02",
}

const longTimeLayout = "Monday, January 2, 2006 at 03:04 PM"

// FormatReport renders the report as human-readable text. It never fails:
// unreadable times and codes degrade to raw values or "Unknown".
func FormatReport(report Report, displayName string) string {
	current := report.Current
	daily := report.Daily

	header := strings.Join([]string{
		"Weather for " + displayName,
		"",
		"🌡️ Current Temperature: " + formatNumber(current.TemperatureC) + "°C",
		"💧 Humidity: " + formatNumber(current.RelativeHumidityPct) + "%",
		"🌤️ Conditions: " + DescribeCode(current.WeatherCode),
		"💨 Wind: " + formatNumber(current.WindSpeedKmh) + " km/h from " + CompassDirection(current.WindDirectionDeg),
		"⏰ Local time: " + formatDateTime(current.Time),
	}, "\n")

	days := make([]string, 0, daily.Len())
	for i, day := range daily.Time {
		days = append(days, strings.Join([]string{
			weekday(day) + " (" + datePart(day) + "):",
			"  🌡️ Temperature: " + formatNumber(floatAt(daily.TemperatureMinC, i)) + "°C to " +
				formatNumber(floatAt(daily.TemperatureMaxC, i)) + "°C",
			"  🌤️ Conditions: " + DescribeCode(intAt(daily.WeatherCode, i)),
			"  ☔ Precipitation: " + formatNumber(floatAt(daily.PrecipitationMm, i)) + " mm",
			"  🌅 Sunrise: " + clockTime(stringAt(daily.Sunrise, i)),
			"  🌆 Sunset: " + clockTime(stringAt(daily.Sunset, i)),
		}, "\n"))
	}

	return header + "\n\nForecast:\n\n" + strings.Join(days, "\n\n")
}

// formatNumber prints the shortest representation, so 21 stays "21" and 21.5 stays "21.5".
func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func parseISO(s string) (time.Time, bool) {
	for _, layout := range isoLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func formatDateTime(s string) string {
	t, ok := parseISO(s)
	if !ok {
		return s
	}
	return t.Format(longTimeLayout)
}

func weekday(s string) string {
	t, ok := parseISO(datePart(s))
	if !ok {
		return "Unknown"
	}
	return t.Weekday().String()
}

// datePart returns everything before the 'T' separator.
func datePart(s string) string {
	date, _, _ := strings.Cut(s, "T")
	return date
}

// clockTime returns HH:MM from an ISO timestamp, or the input when it has no time part.
func clockTime(s string) string {
	_, clock, found := strings.Cut(s, "T")
	if !found {
		return s
	}
	if len(clock) > 5 {
		clock = clock[:5]
	}
	return clock
}

func floatAt(slice []float64, i int) float64 {
	if i < 0 || i >= len(slice) {
		return 0
	}
	return slice[i]
}

func intAt(slice []int, i int) int {
	if i < 0 || i >= len(slice) {
		return UnknownCode
	}
	return slice[i]
}

func stringAt(slice []string, i int) string {
	if i < 0 || i >= len(slice) {
		return ""
	}
	return slice[i]
}
