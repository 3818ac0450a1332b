// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


// Package auth verifies caller identity by exchanging bearer tokens with
// the backend's session-verification endpoint. A user identifier obtained
// here is a verified identity; identifiers asserted in request bodies are
// never trusted for writes.
package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
)

// ErrUnauthorized indicates the token is absent, malformed, or rejected by
// the backend.
var ErrUnauthorized = errors.New("unauthorized")

// Verifier resolves bearer tokens to verified user identifiers.
type Verifier interface {
	// VerifyToken exchanges a bearer token for the user identifier it
	// belongs to. Returns ErrUnauthorized for any token the backend does
	// not accept.
	VerifyToken(ctx context.Context, token string) (string, error)
}

// Client is the HTTP implementation of Verifier against the backend's
// session endpoint.
type Client struct {
	baseURL    string
	anonKey    string
	httpClient *http.Client
	logger     *slog.Logger
}

var _ Verifier = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets the underlying HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient = httpClient
		}
	}
}

// NewClient creates a session-verification client.
func NewClient(baseURL, anonKey string, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("auth: baseURL is required")
	}
	c := &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		anonKey:    anonKey,
		httpClient: http.DefaultClient,
		logger:     slog.Default().With("component", "auth"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

type userResponse struct {
	ID string `json:"id"`
}

// VerifyToken exchanges the token with the backend's user endpoint.
func (c *Client) VerifyToken(ctx context.Context, token string) (string, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return "", fmt.Errorf("%w: missing bearer token", ErrUnauthorized)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/auth/v1/user", nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("apikey", c.anonKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("verifying token: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return "", fmt.Errorf("%w: backend rejected token", ErrUnauthorized)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("session verification returned status %d", resp.StatusCode)
	}

	var user userResponse
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return "", fmt.Errorf("decoding session response: %w", err)
	}
	if user.ID == "" {
		return "", fmt.Errorf("%w: session response missing user id", ErrUnauthorized)
	}

	c.logger.Debug("token verified", "user", user.ID)
	return user.ID, nil
}

// BearerFromHeader extracts the bearer token from an Authorization header
// value. Returns an empty string when the header is absent or malformed.
func BearerFromHeader(header string) string {
	header = strings.TrimSpace(header)
	if header == "" {
		return ""
	}
	if !strings.HasPrefix(strings.ToLower(header), "bearer ") {
		return ""
	}
	return strings.TrimSpace(header[7:])
}
