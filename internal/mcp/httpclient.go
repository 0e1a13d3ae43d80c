package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/meltforce/gymlog/internal/models"
)

// errNotFound marks a 404 from the API.
var errNotFound = errors.New("not found")

// HTTPClient implements DataSource by calling the gymlog REST API.
// Used for remote MCP mode where the binary runs locally (stdio) but
// data lives on another machine (e.g. reached over Tailscale).
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
}

// Compile-time check: HTTPClient satisfies DataSource.
var _ DataSource = (*HTTPClient)(nil)

// NewHTTPClient creates an HTTPClient targeting the given base URL.
func NewHTTPClient(baseURL string) *HTTPClient {
	return &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *HTTPClient) get(ctx context.Context, path string, params url.Values) ([]byte, error) {
	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("httpclient: create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("httpclient: %s: %w", path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("httpclient: read body: %w", err)
	}

	switch resp.StatusCode {
	case http.StatusOK:
		return body, nil
	case http.StatusNotFound:
		return nil, errNotFound
	default:
		return nil, fmt.Errorf("httpclient: %s returned %d: %s", path, resp.StatusCode, body)
	}
}

func getJSON[T any](ctx context.Context, c *HTTPClient, path string, params url.Values) (T, error) {
	var v T
	body, err := c.get(ctx, path, params)
	if err != nil {
		return v, err
	}
	if err := json.Unmarshal(body, &v); err != nil {
		return v, fmt.Errorf("httpclient: decode %s: %w", path, err)
	}
	return v, nil
}

// getOne fetches a single object, mapping 404 to nil.
func getOne[T any](ctx context.Context, c *HTTPClient, path string) (*T, error) {
	v, err := getJSON[T](ctx, c, path, nil)
	if errors.Is(err, errNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (c *HTTPClient) ListExercises(ctx context.Context) ([]models.Exercise, error) {
	return getJSON[[]models.Exercise](ctx, c, "/api/v1/exercises", nil)
}

func (c *HTTPClient) GetExercise(ctx context.Context, id int) (*models.Exercise, error) {
	return getOne[models.Exercise](ctx, c, fmt.Sprintf("/api/v1/exercises/%d", id))
}

func (c *HTTPClient) ListSessions(ctx context.Context, limit int) ([]models.Session, error) {
	params := url.Values{}
	if limit > 0 {
		params.Set("limit", strconv.Itoa(limit))
	}
	return getJSON[[]models.Session](ctx, c, "/api/v1/sessions", params)
}

func (c *HTTPClient) GetSession(ctx context.Context, id int) (*models.Session, error) {
	return getOne[models.Session](ctx, c, fmt.Sprintf("/api/v1/sessions/%d", id))
}

func (c *HTTPClient) ExerciseHistory(ctx context.Context, exerciseID int) ([]models.ExerciseHistory, error) {
	return getJSON[[]models.ExerciseHistory](ctx, c, fmt.Sprintf("/api/v1/exercises/%d/history", exerciseID), nil)
}
