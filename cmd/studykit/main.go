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


package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	studykit "github.com/poiesic/studykit"
	"github.com/poiesic/studykit/ai"
)

func main() {
	// Missing .env is fine; configuration can come from the environment.
	_ = godotenv.Load()

	app := &cli.App{
		Name:  "studykit",
		Usage: "Document analysis service generating study materials",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Run the HTTP API server",
				Action: serveCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "addr",
						Aliases: []string{"a"},
						Usage:   "Listen address",
						Value:   ":8080",
					},
					&cli.StringFlag{
						Name:    "db",
						Aliases: []string{"d"},
						Usage:   "Path to BadgerDB database directory",
						Value:   "studykit.db",
					},
					&cli.StringFlag{
						Name:    "bucket",
						Usage:   "Object storage bucket holding uploaded documents",
						Value:   "documents",
						EnvVars: []string{"STORAGE_BUCKET"},
					},
					&cli.StringFlag{
						Name:    "backend-url",
						Usage:   "Base URL of the auth/storage backend",
						EnvVars: []string{"BACKEND_URL"},
					},
					&cli.StringFlag{
						Name:    "parse-url",
						Usage:   "Base URL of the text extraction service",
						EnvVars: []string{"PARSE_URL"},
					},
					&cli.IntFlag{
						Name:  "concurrency",
						Usage: "Maximum analysis requests in flight",
						Value: 8,
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func serveCommand(c *cli.Context) error {
	backendURL := c.String("backend-url")
	if backendURL == "" {
		return fmt.Errorf("backend-url is required (flag or BACKEND_URL)")
	}
	parseURL := c.String("parse-url")
	if parseURL == "" {
		return fmt.Errorf("parse-url is required (flag or PARSE_URL)")
	}

	aiConfig := ai.NewConfig(
		ai.WithPrimaryAPIKey(os.Getenv("PRIMARY_AI_API_KEY")),
		ai.WithSecondaryAPIKey(os.Getenv("SECONDARY_AI_API_KEY")),
		ai.WithSecondaryHost(os.Getenv("SECONDARY_AI_HOST")),
	)
	if model := os.Getenv("SECONDARY_AI_MODEL"); model != "" {
		ai.WithSecondaryModel(model)(aiConfig)
	}
	if err := aiConfig.Validate(); err != nil {
		return fmt.Errorf("invalid AI configuration: %w", err)
	}

	cfg := studykit.Config{
		Addr:        c.String("addr"),
		DBPath:      c.String("db"),
		BackendURL:  backendURL,
		ServiceKey:  os.Getenv("BACKEND_SERVICE_KEY"),
		AnonKey:     os.Getenv("BACKEND_ANON_KEY"),
		Bucket:      c.String("bucket"),
		ParseURL:    parseURL,
		ParseAPIKey: os.Getenv("PARSE_API_KEY"),
		AI:          aiConfig,
		Concurrency: c.Int("concurrency"),
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	svc, err := studykit.NewService(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to start service: %w", err)
	}
	defer svc.Close()

	return svc.Start(ctx)
}

func setupLogger(c *cli.Context) error {
	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
