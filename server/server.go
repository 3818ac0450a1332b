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


// Package server exposes the analysis pipeline over HTTP+JSON.
//
// Every response uses the same envelope: {"success":true,"result":...} on
// success, {"success":false,"error":{"code","message"}} on failure, with
// the code drawn from the pipeline failure taxonomy. Requests are
// authenticated by exchanging the caller's bearer token with the backend;
// the verified identity owns everything the request produces.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/poiesic/studykit/auth"
	"github.com/poiesic/studykit/core"
	"github.com/poiesic/studykit/pipeline"
	"github.com/poiesic/studykit/storage"
)

const defaultConcurrency = 8

// Server is the HTTP front end.
type Server struct {
	addr     string
	verifier auth.Verifier
	analyzer *pipeline.Analyzer
	exams    *pipeline.ExamBuilder
	results  storage.ResultRepository
	pool     *ants.Pool
	logger   *slog.Logger
}

// Option configures a Server.
type Option func(*config)

type config struct {
	concurrency int
	logger      *slog.Logger
}

// WithConcurrency bounds the number of pipeline runs in flight.
func WithConcurrency(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.concurrency = n
		}
	}
}

// WithLogger sets a custom logger. Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewServer creates the HTTP front end. Analysis and exam generation run on
// a bounded worker pool so a burst of uploads cannot fan out into unbounded
// provider calls.
func NewServer(
	addr string,
	verifier auth.Verifier,
	analyzer *pipeline.Analyzer,
	exams *pipeline.ExamBuilder,
	results storage.ResultRepository,
	opts ...Option,
) (*Server, error) {
	if verifier == nil {
		return nil, errors.New("server: verifier is required")
	}
	if analyzer == nil || exams == nil {
		return nil, errors.New("server: pipelines are required")
	}
	if results == nil {
		return nil, errors.New("server: result repository is required")
	}

	cfg := &config{concurrency: defaultConcurrency, logger: slog.Default()}
	for _, opt := range opts {
		opt(cfg)
	}

	pool, err := ants.NewPool(cfg.concurrency)
	if err != nil {
		return nil, fmt.Errorf("creating worker pool: %w", err)
	}

	return &Server{
		addr:     addr,
		verifier: verifier,
		analyzer: analyzer,
		exams:    exams,
		results:  results,
		pool:     pool,
		logger:   cfg.logger.With("component", "server"),
	}, nil
}

// Start listens on the configured address until ctx is canceled, then
// shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{Addr: s.addr, Handler: s.Handler()}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()
	s.logger.Info("listening", "addr", s.addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Close releases the worker pool.
func (s *Server) Close() {
	s.pool.Release()
}

// Handler returns the routed handler with middleware applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("POST /v1/analyze", s.handleAnalyze)
	mux.HandleFunc("POST /v1/exam", s.handleExam)
	mux.HandleFunc("GET /v1/results", s.handleListResults)
	mux.HandleFunc("GET /v1/exams", s.handleListExams)

	return Wrap(mux,
		Recovery(s.logger),
		RequestLogging(s.logger),
		CORS(),
	)
}

// analyzeRequest is the body of both the analyze and exam endpoints. Any
// user identifier a client puts in the body is ignored; ownership comes
// from the verified token.
type analyzeRequest struct {
	StoragePath string `json:"storagePath"`
	FileName    string `json:"fileName"`
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.authenticate(w, r)
	if !ok {
		return
	}
	var body analyzeRequest
	if !decodeBody(w, r, &body) {
		return
	}

	req := pipeline.AnalyzeRequest{
		StoragePath: body.StoragePath,
		FileName:    body.FileName,
		UserID:      userID,
	}
	var (
		result *core.StudyResult
		runErr error
	)
	s.run(r.Context(), func(ctx context.Context) {
		result, runErr = s.analyzer.Analyze(ctx, req)
	})
	if runErr != nil {
		s.writePipelineError(w, runErr)
		return
	}
	writeResult(w, http.StatusOK, result)
}

func (s *Server) handleExam(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.authenticate(w, r)
	if !ok {
		return
	}
	var body analyzeRequest
	if !decodeBody(w, r, &body) {
		return
	}

	req := pipeline.AnalyzeRequest{
		StoragePath: body.StoragePath,
		FileName:    body.FileName,
		UserID:      userID,
	}
	var (
		exam   *core.Exam
		runErr error
	)
	s.run(r.Context(), func(ctx context.Context) {
		exam, runErr = s.exams.BuildExam(ctx, req)
	})
	if runErr != nil {
		s.writePipelineError(w, runErr)
		return
	}
	writeResult(w, http.StatusOK, exam)
}

func (s *Server) handleListResults(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.authenticate(w, r)
	if !ok {
		return
	}
	results, err := s.results.ListResults(r.Context(), userID, listLimit(r))
	if err != nil {
		s.logger.Error("listing results", "user", userID, "err", err)
		writeError(w, http.StatusInternalServerError, string(pipeline.CodeInternal), "failed to list results")
		return
	}
	if results == nil {
		results = []*core.StudyResult{}
	}
	writeResult(w, http.StatusOK, results)
}

func (s *Server) handleListExams(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.authenticate(w, r)
	if !ok {
		return
	}
	exams, err := s.results.ListExams(r.Context(), userID, listLimit(r))
	if err != nil {
		s.logger.Error("listing exams", "user", userID, "err", err)
		writeError(w, http.StatusInternalServerError, string(pipeline.CodeInternal), "failed to list exams")
		return
	}
	if exams == nil {
		exams = []*core.Exam{}
	}
	writeResult(w, http.StatusOK, exams)
}

// authenticate resolves the request's bearer token to a verified user id,
// writing the error response itself on failure.
func (s *Server) authenticate(w http.ResponseWriter, r *http.Request) (string, bool) {
	token := auth.BearerFromHeader(r.Header.Get("Authorization"))
	if token == "" {
		writeError(w, http.StatusUnauthorized, string(pipeline.CodeUnauthorized), "missing bearer token")
		return "", false
	}
	userID, err := s.verifier.VerifyToken(r.Context(), token)
	if err != nil {
		if errors.Is(err, auth.ErrUnauthorized) {
			writeError(w, http.StatusUnauthorized, string(pipeline.CodeUnauthorized), "invalid or expired token")
		} else {
			s.logger.Error("session verification failed", "err", err)
			writeError(w, http.StatusInternalServerError, string(pipeline.CodeInternal), "session verification failed")
		}
		return "", false
	}
	return userID, true
}

// run executes fn on the worker pool and waits for it. Pool submission only
// fails once the pool is released during shutdown.
func (s *Server) run(ctx context.Context, fn func(context.Context)) {
	done := make(chan struct{})
	err := s.pool.Submit(func() {
		defer close(done)
		fn(ctx)
	})
	if err != nil {
		fn(ctx)
		return
	}
	<-done
}

func decodeBody(w http.ResponseWriter, r *http.Request, out any) bool {
	if err := json.NewDecoder(r.Body).Decode(out); err != nil {
		writeError(w, http.StatusBadRequest, string(pipeline.CodeMissingParameter), "invalid JSON body")
		return false
	}
	return true
}

func listLimit(r *http.Request) int {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		fmt.Sscanf(raw, "%d", &limit)
	}
	return limit
}

func (s *Server) writePipelineError(w http.ResponseWriter, err error) {
	code := pipeline.CodeOf(err)
	status := statusFor(code)
	if status >= http.StatusInternalServerError {
		s.logger.Error("pipeline failure", "code", code, "err", err)
	} else {
		s.logger.Warn("pipeline failure", "code", code, "err", err)
	}
	writeError(w, status, string(code), publicMessage(code, err))
}

func statusFor(code pipeline.Code) int {
	switch code {
	case pipeline.CodeMissingParameter:
		return http.StatusBadRequest
	case pipeline.CodeUnauthorized:
		return http.StatusUnauthorized
	case pipeline.CodeDownloadFailed, pipeline.CodeExtractionFailed, pipeline.CodeAllProvidersFailed:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// publicMessage keeps provider and backend details out of client-facing
// errors.
func publicMessage(code pipeline.Code, err error) string {
	switch code {
	case pipeline.CodeMissingParameter:
		return err.Error()
	case pipeline.CodeDownloadFailed:
		return "failed to download document"
	case pipeline.CodeExtractionFailed:
		return "failed to extract readable text from document"
	case pipeline.CodeAllProvidersFailed:
		return "all analysis providers failed"
	case pipeline.CodeParseFailed:
		return "analysis output could not be parsed"
	default:
		return "internal server error"
	}
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type envelope struct {
	Success bool       `json:"success"`
	Result  any        `json:"result,omitempty"`
	Error   *errorBody `json:"error,omitempty"`
}

func writeResult(w http.ResponseWriter, status int, result any) {
	writeJSON(w, status, envelope{Success: true, Result: result})
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, envelope{Success: false, Error: &errorBody{Code: code, Message: message}})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
