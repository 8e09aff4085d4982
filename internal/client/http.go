package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"bloomviewer/internal/models"
	"bloomviewer/internal/validation"
)

// APIError is a response whose envelope reported failure.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error: status %d: %s", e.Status, e.Message)
}

// HTTPClient calls the REST API under baseURL (for example http://localhost:8780/api/v1).
type HTTPClient struct {
	baseURL    string
	token      string
	httpClient *http.Client
	logr       *zap.Logger
}

// NewHTTPClient creates a client. token, when set, is sent as a bearer token.
func NewHTTPClient(baseURL, token string, timeout time.Duration, logr *zap.Logger) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logr: logr,
	}
}

func (c *HTTPClient) ListLocations(ctx context.Context, speciesID *int64) ([]models.Location, error) {
	path := "/locations"
	if speciesID != nil {
		path += "?" + url.Values{"speciesId": {strconv.FormatInt(*speciesID, 10)}}.Encode()
	}
	var out []models.Location
	return out, c.do(ctx, http.MethodGet, path, nil, &out)
}

func (c *HTTPClient) CreateLocation(ctx context.Context, p validation.Payload) (models.Location, error) {
	var out models.Location
	return out, c.do(ctx, http.MethodPost, "/locations", p, &out)
}

func (c *HTTPClient) UpdateLocation(ctx context.Context, id int64, patch validation.Payload) (models.Location, error) {
	var out models.Location
	return out, c.do(ctx, http.MethodPut, "/locations/"+strconv.FormatInt(id, 10), patch, &out)
}

func (c *HTTPClient) DeleteLocation(ctx context.Context, id int64) (models.Location, error) {
	var out models.Location
	return out, c.do(ctx, http.MethodDelete, "/locations/"+strconv.FormatInt(id, 10), nil, &out)
}

func (c *HTTPClient) ListOverlays(ctx context.Context) ([]models.OverlayStats, error) {
	var out []models.OverlayStats
	return out, c.do(ctx, http.MethodGet, "/overlays", nil, &out)
}

func (c *HTTPClient) ListSpecies(ctx context.Context) ([]models.Species, error) {
	var out []models.Species
	return out, c.do(ctx, http.MethodGet, "/species", nil, &out)
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

func (c *HTTPClient) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return &APIError{Status: resp.StatusCode, Message: "unreadable response body"}
	}
	if !env.Success || resp.StatusCode >= http.StatusBadRequest {
		c.logr.Debug("api request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
			zap.String("message", env.Message))
		return &APIError{Status: resp.StatusCode, Message: env.Message}
	}

	if out == nil || len(env.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("decode response data: %w", err)
	}
	return nil
}
