// Package places wraps the Google Places web API: text autocomplete for
// candidate lookup and a details fetch to obtain the address and coordinates
// of a selected candidate. Outbound calls run through a circuit breaker so a
// struggling provider fails fast instead of stacking up requests.
package places

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/sony/gobreaker"

	"github.com/tavolo-app/backend/internal/apperror"
)

const defaultBaseURL = "https://maps.googleapis.com/maps/api/place"

// Candidate is one autocomplete prediction, not yet persisted anywhere.
type Candidate struct {
	PlaceID     string `json:"place_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Detail is the full place record for a candidate, fetched by place id.
type Detail struct {
	PlaceID          string  `json:"place_id"`
	Name             string  `json:"name"`
	FormattedAddress string  `json:"formatted_address"`
	Latitude         float64 `json:"latitude"`
	Longitude        float64 `json:"longitude"`
}

// ClientConfig configures a Client. Zero values fall back to the live Google
// endpoint and a default HTTP client; tests point BaseURL at a fake server.
type ClientConfig struct {
	APIKey     string
	BaseURL    string
	HTTPClient *http.Client
	Logger     zerolog.Logger
}

// Client is a Google Places API client.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	cb         *gobreaker.CircuitBreaker
	logger     zerolog.Logger
}

// NewClient creates a Places client with a circuit breaker around the
// provider endpoint.
func NewClient(cfg ClientConfig) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}

	logger := cfg.Logger
	cbSettings := gobreaker.Settings{
		Name:        "places-api",
		MaxRequests: 3,
		Interval:    60 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.ConsecutiveFailures > 5 ||
				(counts.Requests >= 10 && failureRatio >= 0.6)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("circuit breaker state changed")
		},
	}

	return &Client{
		apiKey:     cfg.APIKey,
		baseURL:    baseURL,
		httpClient: httpClient,
		cb:         gobreaker.NewCircuitBreaker(cbSettings),
		logger:     logger,
	}
}

type autocompleteResponse struct {
	Status      string `json:"status"`
	Predictions []struct {
		PlaceID              string `json:"place_id"`
		Description          string `json:"description"`
		StructuredFormatting struct {
			MainText string `json:"main_text"`
		} `json:"structured_formatting"`
	} `json:"predictions"`
}

type detailsResponse struct {
	Status string `json:"status"`
	Result struct {
		Name             string `json:"name"`
		FormattedAddress string `json:"formatted_address"`
		Geometry         struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
	} `json:"result"`
}

// Search returns establishment candidates for a free-text query. An empty or
// whitespace-only query returns no candidates without touching the network.
func (c *Client) Search(ctx context.Context, query string) ([]Candidate, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []Candidate{}, nil
	}

	endpoint := fmt.Sprintf("%s/autocomplete/json?input=%s&types=establishment&key=%s",
		c.baseURL, url.QueryEscape(query), url.QueryEscape(c.apiKey))

	var resp autocompleteResponse
	if err := c.getJSON(ctx, endpoint, &resp); err != nil {
		return nil, err
	}

	if resp.Status != "OK" && resp.Status != "ZERO_RESULTS" {
		return nil, apperror.Remote("places", fmt.Errorf("autocomplete status %s", resp.Status))
	}

	candidates := make([]Candidate, 0, len(resp.Predictions))
	for _, p := range resp.Predictions {
		candidates = append(candidates, Candidate{
			PlaceID:     p.PlaceID,
			Name:        p.StructuredFormatting.MainText,
			Description: p.Description,
		})
	}
	return candidates, nil
}

// Details fetches name, formatted address and coordinates for a place id.
func (c *Client) Details(ctx context.Context, placeID string) (*Detail, error) {
	placeID = strings.TrimSpace(placeID)
	if placeID == "" {
		return nil, apperror.ValidationFailed("place_id", "place id is required")
	}

	endpoint := fmt.Sprintf("%s/details/json?place_id=%s&fields=name,formatted_address,geometry&key=%s",
		c.baseURL, url.QueryEscape(placeID), url.QueryEscape(c.apiKey))

	var resp detailsResponse
	if err := c.getJSON(ctx, endpoint, &resp); err != nil {
		return nil, err
	}

	switch resp.Status {
	case "OK":
	case "NOT_FOUND", "ZERO_RESULTS", "INVALID_REQUEST":
		return nil, apperror.NotFound("place", placeID)
	default:
		return nil, apperror.Remote("places", fmt.Errorf("details status %s", resp.Status))
	}

	return &Detail{
		PlaceID:          placeID,
		Name:             resp.Result.Name,
		FormattedAddress: resp.Result.FormattedAddress,
		Latitude:         resp.Result.Geometry.Location.Lat,
		Longitude:        resp.Result.Geometry.Location.Lng,
	}, nil
}

// getJSON performs a GET through the circuit breaker and decodes the body.
func (c *Client) getJSON(ctx context.Context, endpoint string, out any) error {
	body, err := c.cb.Execute(func() (interface{}, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, err
		}

		res, err := c.httpClient.Do(req)
		if err != nil {
			return nil, err
		}
		defer res.Body.Close()

		if res.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("unexpected status %d", res.StatusCode)
		}
		return io.ReadAll(res.Body)
	})
	if err != nil {
		return apperror.Remote("places", err)
	}

	if err := json.Unmarshal(body.([]byte), out); err != nil {
		return apperror.Remote("places", fmt.Errorf("decoding response: %w", err))
	}
	return nil
}
