// Package api implements the HTTP client used by the operator CLI to talk to
// the backend service.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/DorLamesh/devops-web-app/internal/common"
	"github.com/DorLamesh/devops-web-app/internal/server/models"
)

// Client is a thin wrapper over the backend's JSON API. After a successful
// Login or Signup the session token is kept in memory and attached to
// subsequent requests.
type Client struct {
	baseURL    string
	httpClient *http.Client
	token      string
}

// NewClient returns a Client targeting baseURL. The timeout applies to each
// individual request.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type signupRequest struct {
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
	Password string `json:"password"`
	Custom   bool   `json:"custom,omitempty"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

type profileResponse struct {
	User *models.PublicUser `json:"user"`
}

type usersResponse struct {
	Users []*models.PublicUser `json:"users"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// APIError carries the message the server returned alongside the HTTP status.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("server returned %d: %s", e.StatusCode, e.Message)
}

// Login authenticates with the given credentials and stores the returned
// session token for later calls.
func (c *Client) Login(ctx context.Context, username string, password []byte) error {
	var resp tokenResponse
	err := c.do(ctx, http.MethodPost, "/login",
		loginRequest{Username: username, Password: string(password)}, &resp)
	if err != nil {
		return err
	}
	c.token = resp.Token
	return nil
}

// Signup registers a new account and stores the returned session token.
// When custom is true the server enforces the stricter password policy.
func (c *Client) Signup(ctx context.Context, username, email string, password []byte, custom bool) error {
	var resp tokenResponse
	err := c.do(ctx, http.MethodPost, "/signup",
		signupRequest{Username: username, Email: email, Password: string(password), Custom: custom}, &resp)
	if err != nil {
		return err
	}
	c.token = resp.Token
	return nil
}

// Profile fetches the authenticated user's own record.
func (c *Client) Profile(ctx context.Context) (*models.PublicUser, error) {
	var resp profileResponse
	if err := c.do(ctx, http.MethodGet, "/profile", nil, &resp); err != nil {
		return nil, err
	}
	return resp.User, nil
}

// Users fetches the full user list. The server rejects the call unless the
// session belongs to the admin account.
func (c *Client) Users(ctx context.Context) ([]*models.PublicUser, error) {
	var resp usersResponse
	if err := c.do(ctx, http.MethodGet, "/admin/users", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Users, nil
}

// Logout discards the in-memory session token.
func (c *Client) Logout() {
	c.token = ""
}

// HasToken reports whether a session token is currently held.
func (c *Client) HasToken() bool {
	return c.token != ""
}

func (c *Client) do(ctx context.Context, method, path string, payload any, out any) error {
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set(common.AuthTokenHeaderName, c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var errResp errorResponse
		msg := resp.Status
		if decodeErr := json.NewDecoder(resp.Body).Decode(&errResp); decodeErr == nil && errResp.Error != "" {
			msg = errResp.Error
		}
		return &APIError{StatusCode: resp.StatusCode, Message: msg}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}
