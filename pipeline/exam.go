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

	"github.com/poiesic/studykit/ai"
	"github.com/poiesic/studykit/core"
	"github.com/poiesic/studykit/storage"
)

// ExamBuilder generates practice exams. Unlike the analysis pipeline it has
// no fallback path: exam generation needs the multimodal provider.
type ExamBuilder struct {
	downloader Downloader
	primary    ai.DocumentAnalyzer // nil when no primary credential is configured
	results    storage.ResultRepository
	prompt     string
	logger     *slog.Logger
}

// NewExamBuilder creates an exam generation pipeline. primary may be nil;
// requests then fail with CodeAllProvidersFailed.
func NewExamBuilder(
	downloader Downloader,
	primary ai.DocumentAnalyzer,
	results storage.ResultRepository,
	opts ...Option,
) (*ExamBuilder, error) {
	if downloader == nil {
		return nil, errors.New("pipeline: downloader is required")
	}
	if results == nil {
		return nil, errors.New("pipeline: result repository is required")
	}

	o := buildOptions(opts)
	return &ExamBuilder{
		downloader: downloader,
		primary:    primary,
		results:    results,
		prompt:     o.examPrompt,
		logger:     o.logger.With("component", "exam"),
	}, nil
}

// examResponse is the wire shape the exam prompt requests from the model.
type examResponse struct {
	Questions []core.QuizItem `json:"questions"`
}

// BuildExam generates, validates, and persists a practice exam. As with
// analysis, a persistence failure is logged and does not fail the request.
func (b *ExamBuilder) BuildExam(ctx context.Context, req AnalyzeRequest) (*core.Exam, error) {
	if req.StoragePath == "" || req.FileName == "" {
		return nil, failf(CodeMissingParameter, "storagePath and fileName are required")
	}
	if req.UserID == "" {
		return nil, failf(CodeUnauthorized, "no verified identity")
	}
	if b.primary == nil {
		return nil, failf(CodeAllProvidersFailed, "no multimodal provider configured")
	}

	data, err := b.downloader.Download(ctx, req.StoragePath)
	if err != nil {
		return nil, fail(CodeDownloadFailed, err)
	}
	doc := ai.NewDocument(req.FileName, data)

	raw, err := b.primary.AnalyzeDocument(ctx, doc, b.prompt)
	if err != nil {
		return nil, fail(CodeAllProvidersFailed, err)
	}

	var resp examResponse
	if err := ai.ParseJSONResponse(raw, &resp); err != nil {
		return nil, fail(CodeParseFailed, err)
	}

	exam := &core.Exam{
		UserID:      req.UserID,
		FileName:    req.FileName,
		StoragePath: req.StoragePath,
		Questions:   resp.Questions,
	}
	if err := core.ValidateExam(exam); err != nil {
		return nil, fail(CodeParseFailed, err)
	}

	if persisted, err := b.results.AddExam(ctx, exam); err != nil {
		b.logger.Warn("failed to persist exam",
			"user", req.UserID,
			"path", req.StoragePath,
			"err", err)
	} else {
		exam = persisted
	}

	return exam, nil
}
