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


package ai

import (
	"errors"
	"strings"
)

// Config holds configuration for the AI providers.
type Config struct {
	// PrimaryAPIKey is the API key for the primary multimodal provider.
	// When empty, the primary attempt is skipped entirely.
	PrimaryAPIKey string

	// PrimaryModels is the ordered list of model identifiers tried by the
	// primary provider. The first non-empty successful response wins.
	PrimaryModels []string

	// SecondaryAPIKey is the API key for the text-only fallback provider.
	SecondaryAPIKey string

	// SecondaryHost is the base URL for the fallback provider's
	// OpenAI-compatible API. Empty means the provider default.
	SecondaryHost string

	// SecondaryModel is the model identifier used on the fallback path.
	SecondaryModel string

	// TextBudget is the maximum number of characters of extracted text
	// submitted to the fallback provider. Longer text is truncated.
	// Default: 14000
	TextBudget int

	// MinTextLength is the minimum length of extracted text considered
	// usable. Shorter extractions are treated as extraction failures.
	// Default: 50
	MinTextLength int
}

// ConfigOption is a functional option for configuring a Config.
type ConfigOption func(*Config)

// WithPrimaryAPIKey sets the primary provider API key.
func WithPrimaryAPIKey(key string) ConfigOption {
	return func(c *Config) {
		c.PrimaryAPIKey = key
	}
}

// WithPrimaryModels sets the ordered primary model list.
func WithPrimaryModels(models ...string) ConfigOption {
	return func(c *Config) {
		c.PrimaryModels = models
	}
}

// WithSecondaryAPIKey sets the fallback provider API key.
func WithSecondaryAPIKey(key string) ConfigOption {
	return func(c *Config) {
		c.SecondaryAPIKey = key
	}
}

// WithSecondaryHost sets the fallback provider base URL.
func WithSecondaryHost(host string) ConfigOption {
	return func(c *Config) {
		c.SecondaryHost = host
	}
}

// WithSecondaryModel sets the fallback model identifier.
func WithSecondaryModel(model string) ConfigOption {
	return func(c *Config) {
		c.SecondaryModel = model
	}
}

// WithTextBudget sets the extracted-text character budget.
func WithTextBudget(budget int) ConfigOption {
	return func(c *Config) {
		c.TextBudget = budget
	}
}

// WithMinTextLength sets the minimum usable extracted-text length.
func WithMinTextLength(min int) ConfigOption {
	return func(c *Config) {
		c.MinTextLength = min
	}
}

// DefaultConfig returns a Config with sensible defaults. API keys are empty
// and must be supplied by the caller.
func DefaultConfig() *Config {
	return &Config{
		PrimaryModels:  []string{"gemini-2.0-flash", "gemini-1.5-flash", "gemini-1.5-pro"},
		SecondaryModel: "gpt-4o-mini",
		TextBudget:     14000,
		MinTextLength:  50,
	}
}

// NewConfig creates a Config with the default values and applies the
// provided options.
func NewConfig(opts ...ConfigOption) *Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Normalize ensures the configuration is in a canonical form. The fallback
// host gets the /v1 suffix required by OpenAI-compatible APIs when a custom
// host is configured without one.
func (c *Config) Normalize() {
	if c.SecondaryHost != "" && !strings.HasSuffix(c.SecondaryHost, "/v1") {
		c.SecondaryHost = strings.TrimSuffix(c.SecondaryHost, "/")
		c.SecondaryHost = c.SecondaryHost + "/v1"
	}
}

// Validate checks that the configuration is valid and complete. It
// automatically normalizes the configuration before validation. A missing
// PrimaryAPIKey is valid: the pipeline then goes straight to the fallback
// path.
func (c *Config) Validate() error {
	c.Normalize()

	if c.PrimaryAPIKey != "" && len(c.PrimaryModels) == 0 {
		return errors.New("ai config: PrimaryModels is required when PrimaryAPIKey is set")
	}
	if c.SecondaryModel == "" {
		return errors.New("ai config: SecondaryModel is required")
	}
	if c.TextBudget < 1 {
		return errors.New("ai config: TextBudget must be positive")
	}
	if c.MinTextLength < 1 {
		return errors.New("ai config: MinTextLength must be positive")
	}
	return nil
}
