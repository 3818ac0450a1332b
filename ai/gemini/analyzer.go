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


package gemini

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/poiesic/studykit/ai"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"
)

// Analyzer implements ai.DocumentAnalyzer using Google multimodal models.
type Analyzer struct {
	client llms.Model
	models []string
	logger *slog.Logger
}

// newAnalyzer is an internal constructor that returns the concrete type.
func newAnalyzer(ctx context.Context, config *ai.Config) (*Analyzer, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if config.PrimaryAPIKey == "" {
		return nil, errors.New("gemini: primary API key is not configured")
	}

	client, err := googleai.New(ctx,
		googleai.WithAPIKey(config.PrimaryAPIKey),
		googleai.WithDefaultModel(config.PrimaryModels[0]),
	)
	if err != nil {
		return nil, err
	}

	return &Analyzer{
		client: client,
		models: config.PrimaryModels,
		logger: slog.Default().With("component", "gemini-analyzer"),
	}, nil
}

// NewAnalyzer creates a new document analyzer using the provided
// configuration.
//
// Returns ai.DocumentAnalyzer interface to enforce abstraction.
func NewAnalyzer(ctx context.Context, config *ai.Config) (ai.DocumentAnalyzer, error) {
	return newAnalyzer(ctx, config)
}

// AnalyzeDocument submits the document inline with the instruction prompt.
// Models from the configured list are tried in order; an error or empty
// output advances to the next model. Returns ai.ErrNoOutput once the list
// is exhausted.
func (a *Analyzer) AnalyzeDocument(ctx context.Context, doc ai.Document, prompt string) (string, error) {
	if !doc.PrimarySupported() {
		return "", ai.ErrUnsupportedFormat
	}

	content := []llms.MessageContent{
		{
			Role: llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{
				llms.TextPart(prompt),
				llms.BinaryPart(doc.MIMEType, doc.Data),
			},
		},
	}

	for _, model := range a.models {
		response, err := a.client.GenerateContent(ctx, content,
			llms.WithModel(model),
			llms.WithTemperature(0.2),
		)
		if err != nil {
			a.logger.Warn("model attempt failed", "model", model, "err", err)
			continue
		}
		if len(response.Choices) < 1 {
			a.logger.Debug("no choices returned from model", "model", model)
			continue
		}
		output := strings.TrimSpace(response.Choices[0].Content)
		if output == "" {
			a.logger.Debug("empty output from model", "model", model)
			continue
		}
		return output, nil
	}

	return "", ai.ErrNoOutput
}
