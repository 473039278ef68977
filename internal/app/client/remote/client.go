// Package remote implements the HTTP client for the vault server: account
// registration and sign-in, plus the per-user document collection behind
// the repository.DocumentStore interface. The server scopes every document
// call by the bearer token, so the userID parameter is advisory here.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/exp/slog"

	"credvault/internal/app/client/config"
	"credvault/internal/app/client/repository"
)

const userAgent = "credvault-client/1.0"

// Client talks to the vault server.
type Client struct {
	client  *http.Client
	log     *slog.Logger
	baseURL string
	token   string
}

func New(cfg *config.Config, log *slog.Logger) *Client {
	scheme := "http://"
	if cfg.EnableTLS {
		scheme = "https://"
	}

	return &Client{
		client: &http.Client{
			Timeout: 30 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				IdleConnTimeout:     90 * time.Second,
				MaxIdleConnsPerHost: 10,
			},
		},
		log:     log.With("component", "remote_client"),
		baseURL: scheme + cfg.ServerAddress,
	}
}

// SetToken installs the bearer token used on authenticated calls.
func (c *Client) SetToken(token string) {
	c.token = token
}

// Health checks server availability.
func (c *Client) Health(ctx context.Context) error {
	resp, err := c.doRequest(ctx, http.MethodGet, "/api/v1/health", nil)
	if err != nil {
		return err
	}
	return c.parseResponse(resp, nil)
}

type authRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	Token  string `json:"token"`
	UserID string `json:"user_id"`
}

// Register creates an account and returns a session token plus the user id.
func (c *Client) Register(ctx context.Context, email, password string) (token, userID string, err error) {
	return c.authenticate(ctx, "/api/v1/auth/register", email, password)
}

// Login signs into an existing account.
func (c *Client) Login(ctx context.Context, email, password string) (token, userID string, err error) {
	return c.authenticate(ctx, "/api/v1/auth/login", email, password)
}

func (c *Client) authenticate(ctx context.Context, path, email, password string) (string, string, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, path, authRequest{
		Email:    email,
		Password: password,
	})
	if err != nil {
		return "", "", err
	}

	var body authResponse
	if err := c.parseResponse(resp, &body); err != nil {
		return "", "", err
	}
	return body.Token, body.UserID, nil
}

// GetAll implements repository.DocumentStore.
func (c *Client) GetAll(ctx context.Context, _ string) ([]repository.Document, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/api/v1/documents", nil)
	if err != nil {
		return nil, err
	}

	var body struct {
		Documents []repository.Document `json:"documents"`
	}
	if err := c.parseResponse(resp, &body); err != nil {
		return nil, err
	}
	return body.Documents, nil
}

// Create implements repository.DocumentStore.
func (c *Client) Create(ctx context.Context, _ string, doc repository.Document) (string, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, "/api/v1/documents", doc)
	if err != nil {
		return "", err
	}

	var body struct {
		ID string `json:"id"`
	}
	if err := c.parseResponse(resp, &body); err != nil {
		return "", err
	}
	return body.ID, nil
}

// Put implements repository.DocumentStore.
func (c *Client) Put(ctx context.Context, _ string, doc repository.Document) error {
	resp, err := c.doRequest(ctx, http.MethodPut, "/api/v1/documents/"+doc.ID, doc)
	if err != nil {
		return err
	}
	return c.parseResponse(resp, nil)
}

// Delete implements repository.DocumentStore.
func (c *Client) Delete(ctx context.Context, _ string, documentID string) error {
	resp, err := c.doRequest(ctx, http.MethodDelete, "/api/v1/documents/"+documentID, nil)
	if err != nil {
		return err
	}
	return c.parseResponse(resp, nil)
}

func (c *Client) doRequest(ctx context.Context, method, path string, body any) (*http.Response, error) {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", userAgent)
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	c.log.Debug("sending request", "method", method, "url", req.URL.String())

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	return resp, nil
}

func (c *Client) parseResponse(resp *http.Response, out any) error {
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode == http.StatusNotFound {
		return repository.ErrNotFound
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("server returned %d: %s", resp.StatusCode, serverMessage(data))
	}

	if out != nil && len(data) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

// serverMessage extracts a human-readable message from an error body,
// tolerating both huma problem documents and plain payloads.
func serverMessage(data []byte) string {
	var problem struct {
		Detail string `json:"detail"`
		Title  string `json:"title"`
	}
	if err := json.Unmarshal(data, &problem); err == nil {
		if problem.Detail != "" {
			return problem.Detail
		}
		if problem.Title != "" {
			return problem.Title
		}
	}
	return string(data)
}
