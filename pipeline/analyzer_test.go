package pipeline

import (
	"context"
	"errors"
	"testing"

	"github.com/poiesic/studykit/ai"
	"github.com/poiesic/studykit/ai/mock"
	"github.com/poiesic/studykit/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDownloader struct {
	data      []byte
	err       error
	callCount int
}

func (d *fakeDownloader) Download(ctx context.Context, storagePath string) ([]byte, error) {
	d.callCount++
	if d.err != nil {
		return nil, d.err
	}
	return d.data, nil
}

type fakeRepo struct {
	results []*core.StudyResult
	exams   []*core.Exam
	addErr  error
}

func (r *fakeRepo) AddResult(ctx context.Context, result *core.StudyResult) (*core.StudyResult, error) {
	if r.addErr != nil {
		return nil, r.addErr
	}
	stored := *result
	stored.Id = core.ID(len(r.results) + 1)
	r.results = append(r.results, &stored)
	return &stored, nil
}

func (r *fakeRepo) GetResult(ctx context.Context, userID string, id core.ID) (*core.StudyResult, error) {
	return nil, errors.New("not implemented")
}

func (r *fakeRepo) ListResults(ctx context.Context, userID string, limit int) ([]*core.StudyResult, error) {
	return r.results, nil
}

func (r *fakeRepo) AddExam(ctx context.Context, exam *core.Exam) (*core.Exam, error) {
	if r.addErr != nil {
		return nil, r.addErr
	}
	stored := *exam
	stored.Id = core.ID(len(r.exams) + 1)
	r.exams = append(r.exams, &stored)
	return &stored, nil
}

func (r *fakeRepo) ListExams(ctx context.Context, userID string, limit int) ([]*core.Exam, error) {
	return r.exams, nil
}

func (r *fakeRepo) Close() error { return nil }

type pipelineFixture struct {
	downloader *fakeDownloader
	analyzer   *mock.MockAnalyzer
	extractor  *mock.MockExtractor
	generator  *mock.MockGenerator
	repo       *fakeRepo
	pipeline   *Analyzer
}

func newFixture(t *testing.T, opts ...Option) *pipelineFixture {
	t.Helper()
	f := &pipelineFixture{
		downloader: &fakeDownloader{data: []byte("%PDF-1.4 content")},
		analyzer:   mock.NewMockAnalyzer(),
		extractor:  mock.NewMockExtractor(),
		generator:  mock.NewMockGenerator(),
		repo:       &fakeRepo{},
	}
	p, err := NewAnalyzer(f.downloader, f.analyzer, f.extractor, f.generator, f.repo, opts...)
	require.NoError(t, err)
	f.pipeline = p
	return f
}

func pdfRequest() AnalyzeRequest {
	return AnalyzeRequest{
		StoragePath: "u1/notes.pdf",
		FileName:    "notes.pdf",
		UserID:      "u1",
	}
}

func TestAnalyze_PrimarySuccess(t *testing.T) {
	f := newFixture(t)

	result, err := f.pipeline.Analyze(context.Background(), pdfRequest())
	require.NoError(t, err)
	assert.NotEmpty(t, result.Summary)
	assert.Len(t, result.Quiz, 5)

	// Primary path succeeded, so the fallback chain never runs.
	assert.Equal(t, 1, f.analyzer.CallCount())
	assert.Equal(t, 0, f.extractor.CallCount())
	assert.Equal(t, 0, f.generator.CallCount())
}

func TestAnalyze_FallbackOnPrimaryFailure(t *testing.T) {
	f := newFixture(t)
	f.analyzer.AnalyzeDocumentFunc = func(ctx context.Context, doc ai.Document, prompt string) (string, error) {
		return "", ai.ErrNoOutput
	}

	result, err := f.pipeline.Analyze(context.Background(), pdfRequest())
	require.NoError(t, err)
	assert.NotEmpty(t, result.Summary)

	assert.Equal(t, 1, f.analyzer.CallCount())
	assert.Equal(t, 1, f.extractor.CallCount())
	assert.Equal(t, 1, f.generator.CallCount())
}

func TestAnalyze_NonPDFSkipsPrimary(t *testing.T) {
	f := newFixture(t)

	req := AnalyzeRequest{StoragePath: "u1/notes.docx", FileName: "notes.docx", UserID: "u1"}
	_, err := f.pipeline.Analyze(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, 0, f.analyzer.CallCount())
	assert.Equal(t, 1, f.extractor.CallCount())
	assert.Equal(t, 1, f.generator.CallCount())
}

func TestAnalyze_NilPrimaryGoesStraightToFallback(t *testing.T) {
	downloader := &fakeDownloader{data: []byte("%PDF-1.4")}
	extractor := mock.NewMockExtractor()
	generator := mock.NewMockGenerator()
	repo := &fakeRepo{}

	p, err := NewAnalyzer(downloader, nil, extractor, generator, repo)
	require.NoError(t, err)

	_, err = p.Analyze(context.Background(), pdfRequest())
	require.NoError(t, err)
	assert.Equal(t, 1, extractor.CallCount())
	assert.Equal(t, 1, generator.CallCount())
}

func TestAnalyze_MissingParameters(t *testing.T) {
	f := newFixture(t)

	_, err := f.pipeline.Analyze(context.Background(), AnalyzeRequest{UserID: "u1"})
	assert.Equal(t, CodeMissingParameter, CodeOf(err))
	assert.Equal(t, 0, f.downloader.callCount)
}

func TestAnalyze_NoVerifiedIdentity(t *testing.T) {
	f := newFixture(t)

	req := pdfRequest()
	req.UserID = ""
	_, err := f.pipeline.Analyze(context.Background(), req)
	assert.Equal(t, CodeUnauthorized, CodeOf(err))
}

func TestAnalyze_DownloadFailure(t *testing.T) {
	f := newFixture(t)
	f.downloader.err = errors.New("object not found")

	_, err := f.pipeline.Analyze(context.Background(), pdfRequest())
	assert.Equal(t, CodeDownloadFailed, CodeOf(err))
	assert.Equal(t, 0, f.analyzer.CallCount())
}

func TestAnalyze_ExtractionFailure(t *testing.T) {
	f := newFixture(t)
	f.analyzer.AnalyzeDocumentFunc = func(ctx context.Context, doc ai.Document, prompt string) (string, error) {
		return "", ai.ErrNoOutput
	}
	f.extractor.ExtractTextFunc = func(ctx context.Context, doc ai.Document) (string, error) {
		return "", errors.New("job failed")
	}

	_, err := f.pipeline.Analyze(context.Background(), pdfRequest())
	assert.Equal(t, CodeExtractionFailed, CodeOf(err))
	assert.Equal(t, 0, f.generator.CallCount())
}

func TestAnalyze_ShortExtractedTextIsUnusable(t *testing.T) {
	f := newFixture(t)
	f.analyzer.AnalyzeDocumentFunc = func(ctx context.Context, doc ai.Document, prompt string) (string, error) {
		return "", ai.ErrNoOutput
	}
	f.extractor.ExtractTextFunc = func(ctx context.Context, doc ai.Document) (string, error) {
		return "too short", nil
	}

	_, err := f.pipeline.Analyze(context.Background(), pdfRequest())
	assert.Equal(t, CodeExtractionFailed, CodeOf(err))

	// Unusable text must never reach the secondary provider.
	assert.Equal(t, 0, f.generator.CallCount())
}

func TestAnalyze_SecondaryProviderFailure(t *testing.T) {
	f := newFixture(t)
	f.analyzer.AnalyzeDocumentFunc = func(ctx context.Context, doc ai.Document, prompt string) (string, error) {
		return "", ai.ErrNoOutput
	}
	f.generator.GenerateFromTextFunc = func(ctx context.Context, text, prompt string) (string, error) {
		return "", ai.ErrNoOutput
	}

	_, err := f.pipeline.Analyze(context.Background(), pdfRequest())
	assert.Equal(t, CodeAllProvidersFailed, CodeOf(err))
}

func TestAnalyze_UnparsableOutput(t *testing.T) {
	f := newFixture(t)
	f.analyzer.AnalyzeDocumentFunc = func(ctx context.Context, doc ai.Document, prompt string) (string, error) {
		return "I could not produce JSON, sorry.", nil
	}

	_, err := f.pipeline.Analyze(context.Background(), pdfRequest())
	assert.Equal(t, CodeParseFailed, CodeOf(err))
}

func TestAnalyze_InvalidStudySetIsParseFailure(t *testing.T) {
	f := newFixture(t)
	f.analyzer.AnalyzeDocumentFunc = func(ctx context.Context, doc ai.Document, prompt string) (string, error) {
		return `{"summary":"","keyConcepts":[],"flashcards":[],"quiz":[],"hardQuiz":[]}`, nil
	}

	_, err := f.pipeline.Analyze(context.Background(), pdfRequest())
	assert.Equal(t, CodeParseFailed, CodeOf(err))
	assert.ErrorIs(t, err, core.ErrEmptySummary)
}

func TestAnalyze_PersistsVerifiedIdentity(t *testing.T) {
	f := newFixture(t)

	result, err := f.pipeline.Analyze(context.Background(), pdfRequest())
	require.NoError(t, err)

	require.Len(t, f.repo.results, 1)
	assert.Equal(t, "u1", f.repo.results[0].UserID)
	assert.Equal(t, "u1/notes.pdf", f.repo.results[0].StoragePath)
	assert.Equal(t, f.repo.results[0].Id, result.Id)
}

func TestAnalyze_PersistenceFailureIsNonFatal(t *testing.T) {
	f := newFixture(t)
	f.repo.addErr = errors.New("disk full")

	result, err := f.pipeline.Analyze(context.Background(), pdfRequest())
	require.NoError(t, err)
	assert.NotEmpty(t, result.Summary)
}

func TestAnalyze_FencedOutputParses(t *testing.T) {
	f := newFixture(t)
	f.analyzer.AnalyzeDocumentFunc = func(ctx context.Context, doc ai.Document, prompt string) (string, error) {
		return "```json\n" + mock.DefaultStudySetJSON + "\n```", nil
	}

	result, err := f.pipeline.Analyze(context.Background(), pdfRequest())
	require.NoError(t, err)
	assert.Len(t, result.Flashcards, 5)
}
