// Package client is a small Go SDK for the perks directory JSON API.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/smartdev09/startup-perks/internal/models"
)

// Client talks to a perksd instance
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option configures the client
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.httpClient = client
	}
}

// WithTimeout sets the client timeout
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// NewClient creates a new perks directory client
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// ListOptions filters and sorts a perk listing. Zero values skip their
// corresponding stage server-side.
type ListOptions struct {
	Query        string
	Categories   []models.Category
	FeaturedOnly bool
	ValueRange   string
	SortBy       string
}

// PerkList is the response of the list endpoints.
type PerkList struct {
	Perks []models.Perk `json:"perks"`
	Total int           `json:"total"`
}

// CategoryList is the response of the categories endpoint.
type CategoryList struct {
	Categories []models.CategorySummary `json:"categories"`
	Total      int                      `json:"total"`
}

// CategoryPerks is the response of the per-category listing endpoint.
type CategoryPerks struct {
	Category models.Category `json:"category"`
	Label    string          `json:"label"`
	Perks    []models.Perk   `json:"perks"`
	Total    int             `json:"total"`
}

// APIError is a non-2xx envelope returned by the server.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d (%s): %s", e.StatusCode, e.Code, e.Message)
}

// IsNotFound reports whether err is an APIError with a 404 status.
func IsNotFound(err error) bool {
	apiErr, ok := err.(*APIError)
	return ok && apiErr.StatusCode == http.StatusNotFound
}

// ListPerks fetches the filtered, sorted perk list.
func (c *Client) ListPerks(ctx context.Context, opts ListOptions) (*PerkList, error) {
	params := url.Values{}
	if opts.Query != "" {
		params.Set("q", opts.Query)
	}
	if len(opts.Categories) > 0 {
		parts := make([]string, 0, len(opts.Categories))
		for _, cat := range opts.Categories {
			parts = append(parts, string(cat))
		}
		params.Set("categories", strings.Join(parts, ","))
	}
	if opts.FeaturedOnly {
		params.Set("featured", "true")
	}
	if opts.ValueRange != "" {
		params.Set("value_range", opts.ValueRange)
	}
	if opts.SortBy != "" {
		params.Set("sort", opts.SortBy)
	}

	path := "/api/v1/perks"
	if encoded := params.Encode(); encoded != "" {
		path += "?" + encoded
	}

	var result PerkList
	if err := c.get(ctx, path, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetPerk fetches one perk by id. Unknown ids return an APIError satisfying
// IsNotFound.
func (c *Client) GetPerk(ctx context.Context, id string) (*models.Perk, error) {
	var result models.Perk
	if err := c.get(ctx, "/api/v1/perks/"+url.PathEscape(id), &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// ListCategories fetches every category summary, including zero counts.
func (c *Client) ListCategories(ctx context.Context) (*CategoryList, error) {
	var result CategoryList
	if err := c.get(ctx, "/api/v1/categories", &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetCategoryPerks fetches the perks of one category.
func (c *Client) GetCategoryPerks(ctx context.Context, category models.Category) (*CategoryPerks, error) {
	var result CategoryPerks
	path := "/api/v1/categories/" + url.PathEscape(string(category)) + "/perks"
	if err := c.get(ctx, path, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetFeatured fetches the promoted perks.
func (c *Client) GetFeatured(ctx context.Context) (*PerkList, error) {
	var result PerkList
	if err := c.get(ctx, "/api/v1/featured", &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetStats fetches dataset statistics.
func (c *Client) GetStats(ctx context.Context) (*models.Stats, error) {
	var result models.Stats
	if err := c.get(ctx, "/api/v1/stats", &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// get performs a GET and decodes the standard response envelope into out.
func (c *Client) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	var envelope struct {
		Success bool            `json:"success"`
		Data    json.RawMessage `json:"data"`
		Error   *struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return fmt.Errorf("failed to unmarshal response: %w", err)
	}

	if !envelope.Success {
		apiErr := &APIError{StatusCode: resp.StatusCode, Code: "unknown"}
		if envelope.Error != nil {
			apiErr.Code = envelope.Error.Code
			apiErr.Message = envelope.Error.Message
		}
		return apiErr
	}

	if out != nil && len(envelope.Data) > 0 {
		if err := json.Unmarshal(envelope.Data, out); err != nil {
			return fmt.Errorf("failed to unmarshal data: %w", err)
		}
	}
	return nil
}
