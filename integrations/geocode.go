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

// GeocodeClient resolves coordinates to a locality name through a
// reverse-geocoding REST API.
type GeocodeClient struct {
	Client  *http.Client
	BaseURL string
	APIKey  string
}

func NewGeocodeClient(baseURL, apiKey string) *GeocodeClient {
	return &GeocodeClient{
		Client:  &http.Client{Timeout: 10 * time.Second},
		BaseURL: baseURL,
		APIKey:  apiKey,
	}
}

type reverseGeocodeResponse struct {
	Results []struct {
		AddressComponents []struct {
			Types     []string `json:"types"`
			ShortName string   `json:"short_name"`
		} `json:"address_components"`
	} `json:"results"`
}

// Locality returns the locality name for the coordinates, or "Unknown"
// when the response carries none.
func (gc *GeocodeClient) Locality(ctx context.Context, lat, lon float64) (string, error) {
	if gc.BaseURL == "" || gc.APIKey == "" {
		return "", fmt.Errorf("reverse geocoding is not configured")
	}

	q := url.Values{}
	q.Set("latlng", fmt.Sprintf("%f,%f", lat, lon))
	q.Set("api_key", gc.APIKey)
	apiURL := gc.BaseURL + "/places/v1/reverse-geocode?" + q.Encode()

	var decoded reverseGeocodeResponse
	err := retry.Do(
		func() error {
			req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
			if err != nil {
				return err
			}
			resp, err := gc.Client.Do(req)
			if err != nil {
				return fmt.Errorf("failed to fetch reverse geocode: %w", err)
			}
			defer resp.Body.Close()

			if resp.StatusCode != http.StatusOK {
				body, _ := io.ReadAll(resp.Body)
				return fmt.Errorf("geocoding API returned non-200 status: %s, body: %s", resp.Status, string(body))
			}
			return json.NewDecoder(resp.Body).Decode(&decoded)
		},
		retry.Attempts(3),
		retry.Delay(300*time.Millisecond),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		return "", err
	}

	if len(decoded.Results) == 0 {
		return "Unknown", nil
	}
	for _, comp := range decoded.Results[0].AddressComponents {
		for _, typ := range comp.Types {
			if typ == "locality" {
				return comp.ShortName, nil
			}
		}
	}
	return "Unknown", nil
}
