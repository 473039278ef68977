// Package passapi talks to the password utility service: random password
// generation and breach lookups. Both calls are best-effort helpers; the
// vault never depends on them to function.
package passapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// ErrUnavailable is returned when the service cannot be reached or
// answers with an unexpected status.
var ErrUnavailable = errors.New("password service unavailable")

const (
	// DefaultLength is used when the caller does not ask for a specific
	// password length.
	DefaultLength = 20

	requestTimeout = 10 * time.Second
)

// BreachResult is the outcome of a breach lookup.
type BreachResult struct {
	Breached bool `json:"breached"`
	Count    int  `json:"count"`
}

type Client struct {
	baseURL    string
	httpClient *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: requestTimeout,
		},
	}
}

// Generate asks the service for a random password of the given length.
func (c *Client) Generate(ctx context.Context, length int) (string, error) {
	if length <= 0 {
		length = DefaultLength
	}

	endpoint := fmt.Sprintf("%s/gen-password?l=%d", c.baseURL, length)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}

	var body struct {
		Password string `json:"password"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if body.Password == "" {
		return "", fmt.Errorf("%w: empty password in response", ErrUnavailable)
	}

	return body.Password, nil
}

// CheckBreach reports whether the password appears in known breaches and
// how many times. The password travels in the form body, never in the
// URL.
func (c *Client) CheckBreach(ctx context.Context, password string) (BreachResult, error) {
	form := url.Values{"p": {password}}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/check-breach", strings.NewReader(form.Encode()))
	if err != nil {
		return BreachResult{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Content-Length", strconv.Itoa(len(form.Encode())))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return BreachResult{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return BreachResult{}, fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}

	var result BreachResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return BreachResult{}, fmt.Errorf("decode response: %w", err)
	}

	return result, nil
}
