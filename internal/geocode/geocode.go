// Package geocode relays coordinate pairs to the Google reverse-geocoding
// API and maps the provider's answer onto a single address string.
package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// NoAddressFound is returned as a successful result when the provider has
// no address for the given coordinates.
const NoAddressFound = "No address found for these coordinates."

const defaultBaseURL = "https://maps.googleapis.com/maps/api/geocode/json"

// ErrNotConfigured means the server has no provider key and the relay
// cannot operate.
var ErrNotConfigured = errors.New("geocoding provider key is not configured")

// APIError is a non-OK answer from the provider, carrying its status code
// and message.
type APIError struct {
	Status  string
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("geocoding API error: %s (Status: %s)", e.Message, e.Status)
}

// Client calls the reverse-geocoding provider.
type Client struct {
	APIKey     string
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient creates a geocoding client with a bounded request timeout.
func NewClient(apiKey string) *Client {
	return &Client{
		APIKey:     apiKey,
		BaseURL:    defaultBaseURL,
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// providerResponse mirrors the fields of the provider's JSON we care about.
type providerResponse struct {
	Status  string `json:"status"`
	Results []struct {
		FormattedAddress string `json:"formatted_address"`
	} `json:"results"`
	ErrorMessage string `json:"error_message"`
}

// Reverse resolves a latitude/longitude pair to a human-readable address.
// A provider answer with zero results is a success carrying NoAddressFound;
// any other non-OK provider status becomes an *APIError.
func (c *Client) Reverse(ctx context.Context, lat, lon float64) (string, error) {
	if c.APIKey == "" {
		return "", ErrNotConfigured
	}

	q := url.Values{}
	q.Set("latlng", fmt.Sprintf("%v,%v", lat, lon))
	q.Set("key", c.APIKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"?"+q.Encode(), nil)
	if err != nil {
		return "", err
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("error fetching location: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("geocoding provider returned status code %d", resp.StatusCode)
	}

	var data providerResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return "", fmt.Errorf("error decoding geocoding response: %w", err)
	}

	switch {
	case data.Status == "OK" && len(data.Results) > 0:
		return data.Results[0].FormattedAddress, nil
	case data.Status == "ZERO_RESULTS":
		return NoAddressFound, nil
	default:
		msg := data.ErrorMessage
		if msg == "" {
			msg = "No specific error message."
		}
		status := data.Status
		if status == "" {
			status = "UNKNOWN_STATUS"
		}
		return "", &APIError{Status: status, Message: msg}
	}
}
