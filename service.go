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


package studykit

import (
	"context"
	"errors"
	"log/slog"

	"github.com/poiesic/studykit/ai"
	"github.com/poiesic/studykit/ai/gemini"
	"github.com/poiesic/studykit/ai/openai"
	"github.com/poiesic/studykit/auth"
	"github.com/poiesic/studykit/extraction"
	"github.com/poiesic/studykit/objectstore"
	"github.com/poiesic/studykit/pipeline"
	"github.com/poiesic/studykit/securestore"
	"github.com/poiesic/studykit/server"
	"github.com/poiesic/studykit/storage"
	"github.com/poiesic/studykit/storage/badger"
)

// Config holds everything the service needs to talk to its backends.
type Config struct {
	// Addr is the listen address of the HTTP API.
	Addr string

	// DBPath is the badger database directory. Empty with InMemory set
	// runs entirely in memory.
	DBPath   string
	InMemory bool

	// BackendURL is the base URL of the auth/storage backend.
	// ServiceKey authorizes object downloads; AnonKey accompanies
	// session-verification calls.
	BackendURL string
	ServiceKey string
	AnonKey    string

	// Bucket is the object-storage bucket documents are uploaded to.
	Bucket string

	// ParseURL and ParseAPIKey configure the text-extraction service used
	// on the fallback path.
	ParseURL    string
	ParseAPIKey string

	// AI configures both analysis providers. Nil means ai.DefaultConfig().
	AI *ai.Config

	// Concurrency bounds pipeline runs in flight. Zero means the server
	// default.
	Concurrency int
}

// Service is the assembled application: storage, providers, pipelines, and
// the HTTP server, wired together and closed in reverse order.
type Service struct {
	backend *badger.Backend
	results storage.ResultRepository
	secrets *securestore.Store
	server  *server.Server
	logger  *slog.Logger
}

// ServiceOption configures a Service.
type ServiceOption func(*serviceOptions)

type serviceOptions struct {
	logger *slog.Logger
}

// WithServiceLogger sets a custom logger. Default is slog.Default().
func WithServiceLogger(logger *slog.Logger) ServiceOption {
	return func(o *serviceOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// NewService wires the full application from config.
func NewService(ctx context.Context, cfg Config, opts ...ServiceOption) (*Service, error) {
	if cfg.BackendURL == "" {
		return nil, errors.New("studykit: BackendURL is required")
	}
	if cfg.Bucket == "" {
		return nil, errors.New("studykit: Bucket is required")
	}
	if cfg.ParseURL == "" {
		return nil, errors.New("studykit: ParseURL is required")
	}

	options := &serviceOptions{logger: slog.Default()}
	for _, opt := range opts {
		opt(options)
	}
	logger := options.logger

	aiConfig := cfg.AI
	if aiConfig == nil {
		aiConfig = ai.DefaultConfig()
	}
	if err := aiConfig.Validate(); err != nil {
		return nil, err
	}

	// Storage
	backend, err := badger.OpenBackend(cfg.DBPath, cfg.InMemory)
	if err != nil {
		return nil, err
	}
	results, err := badger.NewResultRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}
	secretBackend, err := badger.NewSecretBackend(backend, 0)
	if err != nil {
		results.Close()
		backend.Close()
		return nil, err
	}
	secrets := securestore.NewStore(secretBackend, securestore.WithLogger(logger))

	// Backend clients
	verifier, err := auth.NewClient(cfg.BackendURL, cfg.AnonKey)
	if err != nil {
		results.Close()
		backend.Close()
		return nil, err
	}
	downloader, err := objectstore.NewClient(cfg.BackendURL, cfg.Bucket, cfg.ServiceKey)
	if err != nil {
		results.Close()
		backend.Close()
		return nil, err
	}
	extractor, err := extraction.NewClient(cfg.ParseURL, cfg.ParseAPIKey,
		extraction.WithMinTextLength(aiConfig.MinTextLength))
	if err != nil {
		results.Close()
		backend.Close()
		return nil, err
	}

	// Providers. No primary key means no primary provider: analysis then
	// always takes the fallback path and exam generation is unavailable.
	var analyzer ai.DocumentAnalyzer
	if aiConfig.PrimaryAPIKey != "" {
		analyzer, err = gemini.NewAnalyzer(ctx, aiConfig)
		if err != nil {
			results.Close()
			backend.Close()
			return nil, err
		}
	} else {
		logger.Warn("no primary AI key configured, multimodal analysis disabled")
	}
	generator, err := openai.NewGenerator(aiConfig)
	if err != nil {
		results.Close()
		backend.Close()
		return nil, err
	}

	// Pipelines
	analysis, err := pipeline.NewAnalyzer(downloader, analyzer, extractor, generator, results,
		pipeline.WithMinTextLength(aiConfig.MinTextLength),
		pipeline.WithLogger(logger))
	if err != nil {
		results.Close()
		backend.Close()
		return nil, err
	}
	examBuilder, err := pipeline.NewExamBuilder(downloader, analyzer, results,
		pipeline.WithLogger(logger))
	if err != nil {
		results.Close()
		backend.Close()
		return nil, err
	}

	serverOpts := []server.Option{server.WithLogger(logger)}
	if cfg.Concurrency > 0 {
		serverOpts = append(serverOpts, server.WithConcurrency(cfg.Concurrency))
	}
	srv, err := server.NewServer(cfg.Addr, verifier, analysis, examBuilder, results, serverOpts...)
	if err != nil {
		results.Close()
		backend.Close()
		return nil, err
	}

	return &Service{
		backend: backend,
		results: results,
		secrets: secrets,
		server:  srv,
		logger:  logger,
	}, nil
}

// Start runs the HTTP server until ctx is canceled.
func (s *Service) Start(ctx context.Context) error {
	return s.server.Start(ctx)
}

// Results exposes the result repository.
func (s *Service) Results() storage.ResultRepository {
	return s.results
}

// Secrets exposes the chunked secure value store backed by the service
// database.
func (s *Service) Secrets() *securestore.Store {
	return s.secrets
}

// Close shuts everything down in reverse dependency order.
func (s *Service) Close() error {
	s.server.Close()

	if err := s.results.Close(); err != nil {
		s.logger.Error("error closing result repository", "err", err)
		return err
	}
	if err := s.backend.Close(); err != nil {
		s.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}
