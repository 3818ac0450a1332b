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


package extraction

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/poiesic/studykit/ai"
)

const (
	defaultPollInterval  = 2 * time.Second
	defaultMaxPolls      = 30
	defaultMinTextLength = 50
)

// Client talks to the document-parsing service's asynchronous job API.
type Client struct {
	baseURL       string
	apiKey        string
	httpClient    *http.Client
	pollInterval  time.Duration
	maxPolls      int
	minTextLength int
	logger        *slog.Logger
}

var _ ai.TextExtractor = (*Client)(nil)

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

// WithPollInterval sets the delay between job status checks.
func WithPollInterval(interval time.Duration) Option {
	return func(c *Client) {
		if interval > 0 {
			c.pollInterval = interval
		}
	}
}

// WithMaxPolls sets the status-check attempt budget.
func WithMaxPolls(max int) Option {
	return func(c *Client) {
		if max > 0 {
			c.maxPolls = max
		}
	}
}

// WithMinTextLength sets the minimum usable extracted-text length.
func WithMinTextLength(min int) Option {
	return func(c *Client) {
		if min > 0 {
			c.minTextLength = min
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

// NewClient creates a parsing-service client.
func NewClient(baseURL, apiKey string, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("extraction: baseURL is required")
	}
	c := &Client{
		baseURL:       strings.TrimSuffix(baseURL, "/"),
		apiKey:        apiKey,
		httpClient:    http.DefaultClient,
		pollInterval:  defaultPollInterval,
		maxPolls:      defaultMaxPolls,
		minTextLength: defaultMinTextLength,
		logger:        slog.Default().With("component", "extraction"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

type jobCreated struct {
	JobID string `json:"jobId"`
}

type jobStatus struct {
	Status string `json:"status"`
	Error  string `json:"error"`
}

// ExtractText uploads the document, waits for the parsing job to complete,
// and returns the extracted plain text. Text shorter than the minimum
// threshold is an extraction failure.
func (c *Client) ExtractText(ctx context.Context, doc ai.Document) (string, error) {
	jobID, err := c.submit(ctx, doc)
	if err != nil {
		return "", fmt.Errorf("submitting extraction job: %w", err)
	}
	c.logger.Debug("extraction job submitted", "job", jobID, "file", doc.FileName)

	if err := c.waitForJob(ctx, jobID); err != nil {
		return "", err
	}

	text, err := c.fetchText(ctx, jobID)
	if err != nil {
		return "", fmt.Errorf("fetching extracted text: %w", err)
	}
	if len(strings.TrimSpace(text)) < c.minTextLength {
		return "", fmt.Errorf("%w: %d characters", ErrTextTooShort, len(text))
	}
	return text, nil
}

func (c *Client) submit(ctx context.Context, doc ai.Document) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/jobs", bytes.NewReader(doc.Data))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", doc.MIMEType)
	req.Header.Set("X-File-Name", doc.FileName)
	c.authorize(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("upload returned status %d", resp.StatusCode)
	}

	var created jobCreated
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return "", err
	}
	if created.JobID == "" {
		return "", fmt.Errorf("upload response missing job id")
	}
	return created.JobID, nil
}

// waitForJob polls the job status until success, failure, or budget
// exhaustion. The delay is fixed, so the wall clock is bounded by
// maxPolls x pollInterval.
func (c *Client) waitForJob(ctx context.Context, jobID string) error {
	for attempt := 0; attempt < c.maxPolls; attempt++ {
		status, err := c.pollStatus(ctx, jobID)
		if err != nil {
			return fmt.Errorf("polling extraction job: %w", err)
		}
		switch status.Status {
		case "success":
			return nil
		case "failed":
			return fmt.Errorf("%w: %s", ErrJobFailed, status.Error)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(c.pollInterval):
		}
	}
	return fmt.Errorf("%w: %d attempts", ErrPollBudgetExceeded, c.maxPolls)
}

func (c *Client) pollStatus(ctx context.Context, jobID string) (*jobStatus, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/jobs/"+jobID, nil)
	if err != nil {
		return nil, err
	}
	c.authorize(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("status check returned status %d", resp.StatusCode)
	}

	var status jobStatus
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		return nil, err
	}
	return &status, nil
}

func (c *Client) fetchText(ctx context.Context, jobID string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/jobs/"+jobID+"/text", nil)
	if err != nil {
		return "", err
	}
	c.authorize(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("text fetch returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

func (c *Client) authorize(req *http.Request) {
	if c.apiKey != "" {
		req.Header.Set("X-API-Key", c.apiKey)
	}
}
