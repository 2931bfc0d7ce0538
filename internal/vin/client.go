package vin

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/yotayard/yotayard/internal/metrics"
)

// Attribute is one name/value pair from the vehicle-data source. The
// NHTSA vPIC API returns an extensible list of these; the decoder
// consumes only the variables it recognizes.
type Attribute struct {
	Variable string `json:"Variable"`
	Value    string `json:"Value"`
}

// Client is the narrow adapter over the external VIN lookup service,
// so the normalization logic can be tested without HTTP.
type Client interface {
	Decode(ctx context.Context, vin string) ([]Attribute, error)
}

const DefaultBaseURL = "https://vpic.nhtsa.dot.gov/api"

// NHTSAClient calls the vPIC DecodeVin endpoint. The API publishes no
// SLA, so every request runs under a bounded timeout.
type NHTSAClient struct {
	baseURL string
	client  *http.Client
}

func NewNHTSAClient(baseURL string, timeout time.Duration) *NHTSAClient {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &NHTSAClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

type decodeVinResponse struct {
	Results []Attribute `json:"Results"`
}

func (c *NHTSAClient) Decode(ctx context.Context, vin string) ([]Attribute, error) {
	start := time.Now()
	defer func() {
		metrics.VINLookupDuration.Observe(time.Since(start).Seconds())
	}()

	url := fmt.Sprintf("%s/vehicles/decodevin/%s?format=json", c.baseURL, vin)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("vin lookup: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("vin lookup: unexpected status %d", resp.StatusCode)
	}

	var body decodeVinResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	return body.Results, nil
}
