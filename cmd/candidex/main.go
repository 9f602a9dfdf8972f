// Copyright 2025 Electoral QA Labs
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

	"github.com/electoralqa/candidex"
	"github.com/electoralqa/candidex/ai"
	"github.com/electoralqa/candidex/server"
	"github.com/electoralqa/candidex/storage/badger"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "candidex",
		Usage: "Question answering over a political candidate corpus",
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
				Usage:  "Serve the search and answer endpoints",
				Action: serveCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to the corpus artifact directory",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "addr",
						Usage: "Listen address",
						Value: ":4000",
					},
					&cli.StringFlag{
						Name:  "ollama-host",
						Usage: "Ollama server URL",
						Value: "http://localhost:11434",
					},
					&cli.StringFlag{
						Name:  "model",
						Usage: "Generation model name",
						Value: "mistral",
					},
					&cli.StringFlag{
						Name:  "embedding-model",
						Usage: "Embedding model name",
						Value: "nomic-embed-text",
					},
				},
			},
			{
				Name:      "search",
				Usage:     "Run a retrieval query and print the ranked documents",
				ArgsUsage: "<query>",
				Action:    searchCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to the corpus artifact directory",
						Required: true,
					},
					&cli.IntFlag{
						Name:    "k",
						Aliases: []string{"n"},
						Usage:   "Number of results to return",
						Value:   5,
					},
					&cli.StringFlag{
						Name:  "ollama-host",
						Usage: "Ollama server URL",
						Value: "http://localhost:11434",
					},
					&cli.StringFlag{
						Name:  "embedding-model",
						Usage: "Embedding model name",
						Value: "nomic-embed-text",
					},
				},
			},
			{
				Name:   "verify",
				Usage:  "Check the corpus artifact for alignment problems",
				Action: verifyCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to the corpus artifact directory",
						Required: true,
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func setupLogger(c *cli.Context) error {
	// Get log level from flag and normalize to lowercase
	levelStr := strings.ToLower(c.String("log-level"))

	// Map string to slog.Level
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

	// Configure slog with the specified level
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}

func serveCommand(c *cli.Context) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	aiConfig := ai.NewConfig(
		ai.WithHost(c.String("ollama-host")),
		ai.WithGenerationModel(c.String("model")),
		ai.WithEmbeddingModel(c.String("embedding-model")),
	)
	if err := aiConfig.Validate(); err != nil {
		return fmt.Errorf("invalid AI configuration: %w", err)
	}

	system, err := candidex.Open(ctx, c.String("db"), candidex.WithAIConfig(aiConfig))
	if err != nil {
		// Stay up in a failing state so clients get a clear load error
		// instead of a connection refusal.
		slog.Error("corpus load failed, serving unavailable", "err", err)
		srv := server.NewUnavailable(err)
		return srv.ListenAndServe(ctx, c.String("addr"))
	}
	defer system.Close()

	retriever, err := system.NewRetriever()
	if err != nil {
		return err
	}
	synthesizer, err := system.NewSynthesizer()
	if err != nil {
		return err
	}

	srv := server.New(retriever, synthesizer)
	return srv.ListenAndServe(ctx, c.String("addr"))
}

func searchCommand(c *cli.Context) error {
	ctx := context.Background()

	query := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if query == "" {
		return fmt.Errorf("search query is required")
	}

	aiConfig := ai.NewConfig(
		ai.WithHost(c.String("ollama-host")),
		ai.WithEmbeddingModel(c.String("embedding-model")),
	)
	if err := aiConfig.Validate(); err != nil {
		return fmt.Errorf("invalid AI configuration: %w", err)
	}

	system, err := candidex.Open(ctx, c.String("db"), candidex.WithAIConfig(aiConfig))
	if err != nil {
		return err
	}
	defer system.Close()

	retriever, err := system.NewRetriever()
	if err != nil {
		return err
	}

	results, err := retriever.Retrieve(ctx, query, c.Int("k"))
	if err != nil {
		return err
	}
	if len(results) == 0 {
		fmt.Println("No relevant documents were found.")
		return nil
	}

	fmt.Printf("Found %d documents\n", len(results))
	for i, doc := range results {
		fmt.Printf("\n%d: %s [%s]\n", i+1, doc.CandidateName, doc.Type)
		fmt.Printf("   Slate: %s  Party: %s\n", doc.Slate, doc.Party)
		fmt.Printf("   Relevance: %.4f  Adjusted distance: %.4f\n", doc.Relevance, doc.AdjustedDistance)
		fmt.Printf("   %s\n", doc.ContextText)
	}

	return nil
}

func verifyCommand(c *cli.Context) error {
	ctx := context.Background()

	backend, err := badger.OpenBackend(c.String("db"), false)
	if err != nil {
		return fmt.Errorf("failed to open corpus artifact: %w", err)
	}
	defer backend.Close()

	repo, err := badger.NewCorpusRepository(backend)
	if err != nil {
		return err
	}

	snapshot, err := repo.LoadSnapshot(ctx)
	if err != nil {
		return fmt.Errorf("corpus artifact is not usable: %w", err)
	}

	fmt.Printf("Documents:  %d\n", snapshot.Len())
	fmt.Printf("Dimension:  %d\n", snapshot.Dimension)
	fmt.Printf("Vocabulary: %d terms\n", len(snapshot.Vectorizer.Vocabulary))
	fmt.Println("Corpus artifact is aligned.")

	return nil
}
