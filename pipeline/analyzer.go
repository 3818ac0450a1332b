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


package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/poiesic/studykit/ai"
	"github.com/poiesic/studykit/core"
	"github.com/poiesic/studykit/storage"
)

// Downloader fetches document bytes from object storage.
type Downloader interface {
	Download(ctx context.Context, storagePath string) ([]byte, error)
}

// AnalyzeRequest describes one analysis run. UserID is the verified
// identity established by the transport layer, never a client-asserted
// value.
type AnalyzeRequest struct {
	StoragePath string
	FileName    string
	UserID      string
}

// Analyzer runs the document analysis pipeline.
type Analyzer struct {
	downloader Downloader
	primary    ai.DocumentAnalyzer // nil when no primary credential is configured
	extractor  ai.TextExtractor
	generator  ai.TextGenerator
	results    storage.ResultRepository
	prompt     string
	minText    int
	logger     *slog.Logger
}

// Option configures an Analyzer or ExamBuilder.
type Option func(*options)

type options struct {
	prompt     string
	examPrompt string
	minText    int
	logger     *slog.Logger
}

// WithPrompt overrides the fixed instruction prompt.
func WithPrompt(prompt string) Option {
	return func(o *options) {
		if prompt != "" {
			o.prompt = prompt
		}
	}
}

// WithExamPrompt overrides the exam instruction prompt.
func WithExamPrompt(prompt string) Option {
	return func(o *options) {
		if prompt != "" {
			o.examPrompt = prompt
		}
	}
}

// WithMinTextLength sets the minimum usable extracted-text length.
func WithMinTextLength(min int) Option {
	return func(o *options) {
		if min > 0 {
			o.minText = min
		}
	}
}

// WithLogger sets a custom logger. Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

func buildOptions(opts []Option) *options {
	o := &options{
		prompt:     ai.StudyPrompt(),
		examPrompt: ai.ExamPrompt(core.ExamQuestionCount),
		minText:    50,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// NewAnalyzer creates an analysis pipeline. primary may be nil, in which
// case every request goes straight to the extraction fallback.
func NewAnalyzer(
	downloader Downloader,
	primary ai.DocumentAnalyzer,
	extractor ai.TextExtractor,
	generator ai.TextGenerator,
	results storage.ResultRepository,
	opts ...Option,
) (*Analyzer, error) {
	if downloader == nil {
		return nil, errors.New("pipeline: downloader is required")
	}
	if extractor == nil {
		return nil, errors.New("pipeline: extractor is required")
	}
	if generator == nil {
		return nil, errors.New("pipeline: generator is required")
	}
	if results == nil {
		return nil, errors.New("pipeline: result repository is required")
	}

	o := buildOptions(opts)
	return &Analyzer{
		downloader: downloader,
		primary:    primary,
		extractor:  extractor,
		generator:  generator,
		results:    results,
		prompt:     o.prompt,
		minText:    o.minText,
		logger:     o.logger.With("component", "pipeline"),
	}, nil
}

// Analyze runs one request to completion and returns the produced study
// result. The result is persisted before returning; a persistence failure
// is logged and does not fail the request.
func (a *Analyzer) Analyze(ctx context.Context, req AnalyzeRequest) (*core.StudyResult, error) {
	if req.StoragePath == "" || req.FileName == "" {
		return nil, failf(CodeMissingParameter, "storagePath and fileName are required")
	}
	if req.UserID == "" {
		return nil, failf(CodeUnauthorized, "no verified identity")
	}

	data, err := a.downloader.Download(ctx, req.StoragePath)
	if err != nil {
		return nil, fail(CodeDownloadFailed, err)
	}
	doc := ai.NewDocument(req.FileName, data)

	raw, err := a.generate(ctx, doc)
	if err != nil {
		return nil, err
	}

	var set core.StudySet
	if err := ai.ParseJSONResponse(raw, &set); err != nil {
		return nil, fail(CodeParseFailed, err)
	}
	if err := core.ValidateStudySet(&set); err != nil {
		return nil, fail(CodeParseFailed, err)
	}

	result := &core.StudyResult{
		UserID:      req.UserID,
		FileName:    req.FileName,
		StoragePath: req.StoragePath,
		StudySet:    set,
	}

	// Persistence is a side effect, not part of the response contract.
	if persisted, err := a.results.AddResult(ctx, result); err != nil {
		a.logger.Warn("failed to persist study result",
			"user", req.UserID,
			"path", req.StoragePath,
			"err", err)
	} else {
		result = persisted
	}

	return result, nil
}

// generate produces raw model output: primary attempt first, then the
// extraction + secondary-generation fallback.
func (a *Analyzer) generate(ctx context.Context, doc ai.Document) (string, error) {
	if a.primary != nil && doc.PrimarySupported() {
		raw, err := a.primary.AnalyzeDocument(ctx, doc, a.prompt)
		if err == nil {
			return raw, nil
		}
		a.logger.Warn("primary analysis failed, falling back to extraction",
			"file", doc.FileName, "err", err)
	}

	text, err := a.extractor.ExtractText(ctx, doc)
	if err != nil {
		return "", fail(CodeExtractionFailed, err)
	}
	if len(strings.TrimSpace(text)) < a.minText {
		return "", failf(CodeExtractionFailed, "no readable text: %d characters extracted", len(text))
	}

	raw, err := a.generator.GenerateFromText(ctx, text, a.prompt)
	if err != nil {
		return "", fail(CodeAllProvidersFailed, err)
	}
	return raw, nil
}
