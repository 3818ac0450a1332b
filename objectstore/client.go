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


// Package objectstore downloads binary objects from the backend's storage
// API using service-level credentials, which bypass per-row access
// restrictions. The pipeline is the only caller; a failed download is fatal
// to its request and is not retried.
package objectstore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
)

// ErrDownloadFailed indicates the storage API refused or failed the fetch.
var ErrDownloadFailed = errors.New("object download failed")

// Client fetches objects from the backend storage HTTP API.
type Client struct {
	baseURL    string
	bucket     string
	serviceKey string
	httpClient *http.Client
	logger     *slog.Logger
}

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

// WithLogger sets a custom logger. Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewClient creates a storage client for one bucket.
func NewClient(baseURL, bucket, serviceKey string, opts ...Option) (*Client, error) {
	if baseURL == "" || bucket == "" {
		return nil, fmt.Errorf("objectstore: baseURL and bucket are required")
	}
	c := &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		bucket:     strings.Trim(bucket, "/"),
		serviceKey: serviceKey,
		httpClient: http.DefaultClient,
		logger:     slog.Default().With("component", "objectstore"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Download fetches the object at storagePath from the bucket.
func (c *Client) Download(ctx context.Context, storagePath string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.objectURL(storagePath), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.serviceKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDownloadFailed, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d for %s", ErrDownloadFailed, resp.StatusCode, storagePath)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDownloadFailed, err)
	}
	c.logger.Debug("object downloaded", "path", storagePath, "bytes", len(data))
	return data, nil
}

func (c *Client) objectURL(storagePath string) string {
	parts := strings.Split(strings.TrimPrefix(storagePath, "/"), "/")
	escaped := make([]string, 0, len(parts))
	for _, p := range parts {
		escaped = append(escaped, url.PathEscape(p))
	}
	return c.baseURL + "/storage/v1/object/" + c.bucket + "/" + strings.Join(escaped, "/")
}
