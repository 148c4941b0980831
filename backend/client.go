package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/lumenworks/prayerkit"
	"github.com/lumenworks/prayerkit/tier"
)

// APIError carries a non-2xx response that is not an authorization failure.
type APIError struct {
	StatusCode int
	Body       string
}

// Error implements error.
func (e *APIError) Error() string {
	return fmt.Sprintf("backend: status %d: %s", e.StatusCode, e.Body)
}

// Client defines a public type used by prayerkit APIs.
//
// Client instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Client struct {
	baseURL string
	http    *http.Client
	logger  zerolog.Logger
}

// NewClient builds a backend client over the core's authorizing transport.
func NewClient(baseURL string, core *prayerkit.Core, logger zerolog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    core.HTTPClient(nil),
		logger:  logger,
	}
}

type userPayload struct {
	ID        string          `json:"id"`
	Email     string          `json:"email"`
	Name      string          `json:"name"`
	Status    string          `json:"status"`
	Tier      string          `json:"tier"`
	ExpiresAt string          `json:"subscription_expires_at,omitempty"`
	Settings  json.RawMessage `json:"settings,omitempty"`
}

func (p userPayload) toUser() prayerkit.User {
	user := prayerkit.User{
		ID:       p.ID,
		Email:    p.Email,
		Name:     p.Name,
		Status:   prayerkit.AccountStatus(p.Status),
		Settings: prayerkit.DefaultSettings(),
	}
	user.Tier = tier.Normalize(p.Tier)
	if p.ExpiresAt != "" {
		if ts, err := time.Parse(time.RFC3339, p.ExpiresAt); err == nil {
			user.ExpiresAt = &ts
		}
	}
	if len(p.Settings) > 0 {
		var s prayerkit.Settings
		if err := json.Unmarshal(p.Settings, &s); err == nil {
			user.Settings = s
		}
	}
	return user
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string      `json:"token"`
	User  userPayload `json:"user"`
}

// Login performs the credential exchange and returns the bearer token and
// user record. It does not commit the session; the caller hands both to
// [prayerkit.SessionManager.Login] so the commit stays atomic.
func (c *Client) Login(ctx context.Context, email, password string) (string, prayerkit.User, error) {
	var resp loginResponse
	err := c.do(prayerkit.WithoutAuthorization(ctx), http.MethodPost, "/v1/auth/login",
		loginRequest{Email: email, Password: password}, &resp)
	if err != nil {
		return "", prayerkit.User{}, err
	}
	if resp.Token == "" {
		return "", prayerkit.User{}, &APIError{StatusCode: http.StatusOK, Body: "login response missing token"}
	}
	return resp.Token, resp.User.toUser(), nil
}

// FetchProfile returns the current user record, including the updated
// settings and entitlement snapshot.
func (c *Client) FetchProfile(ctx context.Context) (prayerkit.User, error) {
	var payload userPayload
	if err := c.do(ctx, http.MethodGet, "/v1/me", nil, &payload); err != nil {
		return prayerkit.User{}, err
	}
	return payload.toUser(), nil
}

type countResponse struct {
	Count int `json:"count"`
}

// PrayerCount returns the number of saved prayers on the server.
func (c *Client) PrayerCount(ctx context.Context) (int, error) {
	var resp countResponse
	if err := c.do(ctx, http.MethodGet, "/v1/prayers/count", nil, &resp); err != nil {
		return 0, err
	}
	return resp.Count, nil
}

// PrayOnItCount returns the number of pray-on-it items on the server.
func (c *Client) PrayOnItCount(ctx context.Context) (int, error) {
	var resp countResponse
	if err := c.do(ctx, http.MethodGet, "/v1/pray-on-it/count", nil, &resp); err != nil {
		return 0, err
	}
	return resp.Count, nil
}

// Voice is one entry of the voice catalog.
type Voice struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Locale  string `json:"locale"`
	Premium bool   `json:"premium"`
}

type voicesResponse struct {
	Voices []Voice `json:"voices"`
}

// Voices returns the voice catalog metadata.
func (c *Client) Voices(ctx context.Context) ([]Voice, error) {
	var resp voicesResponse
	if err := c.do(ctx, http.MethodGet, "/v1/voices", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Voices, nil
}

// do runs one JSON round trip. A 401 maps to [prayerkit.ErrUnauthorized];
// the transport has already invalidated the session by the time do returns.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("backend: encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(
		prayerkit.WithRequestID(ctx, uuid.NewString()),
		method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("backend: build request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return prayerkit.ErrUnauthorized
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		c.logger.Debug().Int("status", resp.StatusCode).Str("path", path).Msg("backend call failed")
		return &APIError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(snippet))}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("backend: decode response: %w", err)
	}
	return nil
}
