package integrations

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/avast/retry-go"
)

const defaultWeatherBaseURL = "https://api.open-meteo.com"

// WeatherClient reads the hourly forecast from Open-Meteo.
type WeatherClient struct {
	Client  *http.Client
	BaseURL string
}

func NewWeatherClient(baseURL string) *WeatherClient {
	if baseURL == "" {
		baseURL = defaultWeatherBaseURL
	}
	return &WeatherClient{
		Client:  &http.Client{Timeout: 10 * time.Second},
		BaseURL: baseURL,
	}
}

// Conditions is the current hour's slice of the hourly forecast.
type Conditions struct {
	Temperature float64 `json:"temperature"` // °C
	Humidity    float64 `json:"humidity"`    // %
	Rain        float64 `json:"rain"`        // mm
	WindSpeed   float64 `json:"windSpeed"`   // km/h
	Hour        int     `json:"hour"`
}

type forecastResponse struct {
	Hourly struct {
		Temperature []float64 `json:"temperature_2m"`
		Humidity    []float64 `json:"relative_humidity_2m"`
		Rain        []float64 `json:"rain"`
		WindSpeed   []float64 `json:"wind_speed_10m"`
	} `json:"hourly"`
}

// forecastTimezone maps a Go location to the API's timezone parameter,
// which accepts only IANA zone names or "auto". time.Local is named
// "Local" when no TZ is set, so it resolves from the coordinates instead.
func forecastTimezone(loc *time.Location) string {
	name := loc.String()
	if name == "" || name == "Local" {
		return "auto"
	}
	return name
}

// CurrentConditions fetches today's hourly forecast for the coordinates
// and picks the values at the current hour in the given location.
func (wc *WeatherClient) CurrentConditions(ctx context.Context, lat, lon float64, loc *time.Location) (Conditions, error) {
	if loc == nil {
		loc = time.Local
	}

	q := url.Values{}
	q.Set("latitude", fmt.Sprintf("%f", lat))
	q.Set("longitude", fmt.Sprintf("%f", lon))
	q.Set("hourly", "temperature_2m,relative_humidity_2m,rain,wind_speed_10m")
	q.Set("timezone", forecastTimezone(loc))
	q.Set("forecast_days", "1")
	apiURL := wc.BaseURL + "/v1/forecast?" + q.Encode()

	var forecast forecastResponse
	err := retry.Do(
		func() error {
			req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
			if err != nil {
				return err
			}
			resp, err := wc.Client.Do(req)
			if err != nil {
				return fmt.Errorf("failed to fetch forecast: %w", err)
			}
			defer resp.Body.Close()

			if resp.StatusCode != http.StatusOK {
				body, _ := io.ReadAll(resp.Body)
				return fmt.Errorf("weather API returned non-200 status: %s, body: %s", resp.Status, string(body))
			}
			return json.NewDecoder(resp.Body).Decode(&forecast)
		},
		retry.Attempts(3),
		retry.Delay(300*time.Millisecond),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		return Conditions{}, err
	}

	hour := time.Now().In(loc).Hour()
	h := forecast.Hourly
	if hour >= len(h.Temperature) || hour >= len(h.Humidity) || hour >= len(h.Rain) || hour >= len(h.WindSpeed) {
		return Conditions{}, fmt.Errorf("forecast has no data for hour %d", hour)
	}

	return Conditions{
		Temperature: h.Temperature[hour],
		Humidity:    h.Humidity[hour],
		Rain:        h.Rain[hour],
		WindSpeed:   h.WindSpeed[hour],
		Hour:        hour,
	}, nil
}
