// Package upstream is the typed client for the safari REST API. All gateway
// traffic to the backend goes through it: it attaches the visitor's bearer
// token, refreshes an expired token exactly once per request, and surfaces
// upstream error payloads to the caller.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

// ErrAuthExpired is returned when the token refresh path is exhausted: the
// stored tokens have been cleared and the visitor must log in again.
var ErrAuthExpired = errors.New("authentication expired")

// tokenNotValidCode is the error code the upstream attaches to 401 responses
// caused by an expired or invalid access token.
const tokenNotValidCode = "token_not_valid"

// IsAuthExpired reports whether err means the visitor must log in again.
func IsAuthExpired(err error) bool {
	return errors.Is(err, ErrAuthExpired)
}

// Auth exposes the visitor's token pair to the client. Implementations are
// backed by the visitor session; SetAccessToken and Clear mutate the session
// state so the outcome of a refresh survives the request.
type Auth interface {
	AccessToken() string
	RefreshToken() string
	SetAccessToken(token string)
	Clear()
}

// Client talks to the safari REST API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// New returns a client rooted at baseURL (no trailing slash required).
func New(baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// APIError carries an upstream failure. Detail holds the server's own message
// when one was present in the payload.
type APIError struct {
	StatusCode int
	Detail     string
	Body       []byte
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("upstream error (%d): %s", e.StatusCode, e.Detail)
	}
	return fmt.Sprintf("upstream error (%d)", e.StatusCode)
}

// errorDetail digs the human-readable message out of an upstream error body.
func errorDetail(body []byte) string {
	var payload struct {
		Detail  string `json:"detail"`
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	if payload.Detail != "" {
		return payload.Detail
	}
	if payload.Message != "" {
		return payload.Message
	}
	return payload.Error
}

func isTokenNotValid(body []byte) bool {
	var payload struct {
		Code string `json:"code"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return false
	}
	return payload.Code == tokenNotValidCode
}

// do issues one request with the single-refresh retry policy. The body is a
// byte slice so the retried request can replay it.
func (c *Client) do(ctx context.Context, auth Auth, method, path, contentType string, body []byte) ([]byte, error) {
	respBody, status, err := c.send(ctx, auth, method, path, contentType, body)
	if err != nil {
		return nil, err
	}
	if status == http.StatusUnauthorized && auth != nil && isTokenNotValid(respBody) {
		if err := c.refresh(ctx, auth); err != nil {
			auth.Clear()
			return nil, fmt.Errorf("token refresh failed: %w", ErrAuthExpired)
		}
		// Exactly one retry; a second 401 clears auth without another
		// refresh attempt.
		respBody, status, err = c.send(ctx, auth, method, path, contentType, body)
		if err != nil {
			return nil, err
		}
		if status == http.StatusUnauthorized {
			auth.Clear()
			return nil, fmt.Errorf("retried request unauthorized: %w", ErrAuthExpired)
		}
	}
	if status < 200 || status >= 300 {
		return nil, &APIError{StatusCode: status, Detail: errorDetail(respBody), Body: respBody}
	}
	return respBody, nil
}

// send performs a single HTTP round trip.
func (c *Client) send(ctx context.Context, auth Auth, method, path, contentType string, body []byte) ([]byte, int, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, 0, err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if auth != nil && auth.AccessToken() != "" {
		req.Header.Set("Authorization", "Bearer "+auth.AccessToken())
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("upstream request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read upstream response: %w", err)
	}
	return respBody, resp.StatusCode, nil
}

// refresh exchanges the stored refresh token for a new access token and
// stores it on the auth source.
func (c *Client) refresh(ctx context.Context, auth Auth) error {
	refreshToken := auth.RefreshToken()
	if refreshToken == "" {
		return errors.New("no refresh token")
	}
	payload, err := json.Marshal(map[string]string{"refresh": refreshToken})
	if err != nil {
		return err
	}
	respBody, status, err := c.send(ctx, nil, http.MethodPost, "/token/refresh/", "application/json", payload)
	if err != nil {
		return err
	}
	if status != http.StatusOK {
		return fmt.Errorf("refresh rejected (%d): %s", status, errorDetail(respBody))
	}
	var result struct {
		Access string `json:"access"`
	}
	if err := json.Unmarshal(respBody, &result); err != nil {
		return fmt.Errorf("failed to parse refresh response: %w", err)
	}
	if result.Access == "" {
		return errors.New("refresh response missing access token")
	}
	auth.SetAccessToken(result.Access)
	c.logger.Debug("access token refreshed")
	return nil
}

// getJSON issues a GET and decodes the response into out.
func (c *Client) getJSON(ctx context.Context, auth Auth, path string, out any) error {
	body, err := c.do(ctx, auth, http.MethodGet, path, "", nil)
	if err != nil {
		return err
	}
	return json.Unmarshal(body, out)
}

// postJSON issues a POST with a JSON body and decodes the response into out
// when out is non-nil.
func (c *Client) postJSON(ctx context.Context, auth Auth, path string, in, out any) error {
	payload, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}
	body, err := c.do(ctx, auth, http.MethodPost, path, "application/json", payload)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	return json.Unmarshal(body, out)
}

// putJSON issues a PUT with a JSON body and decodes the response into out
// when out is non-nil.
func (c *Client) putJSON(ctx context.Context, auth Auth, path string, in, out any) error {
	payload, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}
	body, err := c.do(ctx, auth, http.MethodPut, path, "application/json", payload)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	return json.Unmarshal(body, out)
}
