// Package newsdata is a minimal client for the NewsData.io latest-news API.
package newsdata

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/Andrew77447/newsapp/internal/cache"
)

const DefaultBaseURL = "https://newsdata.io/api/1"

// APIError is a completed call whose envelope reported failure, as opposed to
// a transport error. Callers branch on it with errors.As.
type APIError struct {
	Code    string
	Message string
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s (%s)", e.Message, e.Code)
	}
	return e.Message
}

type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

func New(apiKey, baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		apiKey:     apiKey,
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// envelope is the common response wrapper. Results is raw because its shape
// depends on Status: an article list on success, an error object otherwise.
type envelope struct {
	Status  string          `json:"status"`
	Results json.RawMessage `json:"results"`
}

type apiFailure struct {
	Message string `json:"message"`
	Code    string `json:"code"`
}

// Latest fetches /latest with the given parameters. A non-success envelope
// comes back as *APIError; anything else is a transport-level error.
func (c *Client) Latest(ctx context.Context, params url.Values) ([]cache.Article, error) {
	reqURL := c.baseURL + "/latest?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	// The key travels as a header so it never shows up in URLs or logs.
	req.Header.Set("X-ACCESS-KEY", c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling newsdata: %w", err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		if resp.StatusCode != http.StatusOK {
			return nil, &APIError{Message: fmt.Sprintf("unexpected HTTP status %d", resp.StatusCode)}
		}
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	if env.Status != "success" {
		var failure apiFailure
		if err := json.Unmarshal(env.Results, &failure); err != nil || failure.Message == "" {
			failure.Message = fmt.Sprintf("unknown error (HTTP %d)", resp.StatusCode)
		}
		return nil, &APIError{Code: failure.Code, Message: failure.Message}
	}

	var articles []cache.Article
	if err := json.Unmarshal(env.Results, &articles); err != nil {
		return nil, fmt.Errorf("decoding articles: %w", err)
	}
	return articles, nil
}
