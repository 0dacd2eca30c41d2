// Copyright 2025 The Finchly Authors
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
	"strings"
	"time"

	finchly "github.com/chrismlittle123/finchly"
	"github.com/chrismlittle123/finchly/ai"
	"github.com/chrismlittle123/finchly/extract"
	"github.com/chrismlittle123/finchly/reembed"
	"github.com/chrismlittle123/finchly/server"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "finchly",
		Usage: "Save, enrich, and ask questions about shared links",
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
				Flags: append(commonFlags(),
					&cli.StringFlag{
						Name:  "host",
						Usage: "Address to listen on",
						Value: "127.0.0.1",
					},
					&cli.IntFlag{
						Name:  "port",
						Usage: "Port to listen on",
						Value: 8080,
					},
					&cli.StringFlag{
						Name:    "signing-secret",
						Usage:   "Chat platform webhook signing secret",
						EnvVars: []string{"FINCHLY_SIGNING_SECRET"},
					},
					&cli.StringFlag{
						Name:    "channel-id",
						Usage:   "Only save links shared in this chat channel",
						EnvVars: []string{"FINCHLY_CHANNEL_ID"},
					},
				),
			},
			{
				Name:      "search",
				Usage:     "Search saved links semantically",
				ArgsUsage: "<query>",
				Action:    searchCommand,
				Flags: append(commonFlags(),
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum number of results",
						Value: 5,
					},
					&cli.Float64Flag{
						Name:  "threshold",
						Usage: "Minimum similarity (0..1)",
						Value: 0.3,
					},
				),
			},
			{
				Name:      "ask",
				Usage:     "Ask a question grounded in saved links",
				ArgsUsage: "<question>",
				Action:    askCommand,
				Flags:     commonFlags(),
			},
			{
				Name:   "reembed",
				Usage:  "Regenerate embeddings for all saved links",
				Action: reembedCommand,
				Flags: append(commonFlags(),
					&cli.IntFlag{
						Name:  "batch-size",
						Usage: "Number of links to process in each batch",
						Value: 100,
					},
					&cli.IntFlag{
						Name:  "report-interval",
						Usage: "Report progress every N links",
						Value: 100,
					},
					&cli.IntFlag{
						Name:  "max-retries",
						Usage: "Maximum retry attempts for failed operations",
						Value: 3,
					},
					&cli.DurationFlag{
						Name:  "retry-delay",
						Usage: "Base delay for exponential backoff",
						Value: 1 * time.Second,
					},
				),
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

// commonFlags are shared by every command: database location plus model
// and extractor credentials.
func commonFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "db",
			Aliases: []string{"d"},
			Usage:   "Path to the database directory",
			EnvVars: []string{"FINCHLY_DB"},
			Value:   "finchly.db",
		},
		&cli.StringFlag{
			Name:    "embedding-host",
			Usage:   "Embedding service host URL (OpenAI-compatible)",
			EnvVars: []string{"FINCHLY_EMBEDDING_HOST"},
		},
		&cli.StringFlag{
			Name:    "embedding-model",
			Usage:   "Embedding model name",
			EnvVars: []string{"FINCHLY_EMBEDDING_MODEL"},
		},
		&cli.StringFlag{
			Name:    "embedding-api-key",
			Usage:   "Embedding service API key",
			EnvVars: []string{"FINCHLY_EMBEDDING_API_KEY", "OPENAI_API_KEY"},
		},
		&cli.StringFlag{
			Name:    "llm-host",
			Usage:   "Chat model host URL (OpenAI-compatible)",
			EnvVars: []string{"FINCHLY_LLM_HOST"},
		},
		&cli.StringFlag{
			Name:    "llm-model",
			Usage:   "Chat model name",
			EnvVars: []string{"FINCHLY_LLM_MODEL"},
		},
		&cli.StringFlag{
			Name:    "llm-api-key",
			Usage:   "Chat model API key",
			EnvVars: []string{"FINCHLY_LLM_API_KEY", "OPENAI_API_KEY"},
		},
		&cli.StringSliceFlag{
			Name:    "fallback-model",
			Usage:   "Fallback chat model, may be repeated",
			EnvVars: []string{"FINCHLY_FALLBACK_MODELS"},
		},
		&cli.StringFlag{
			Name:    "github-token",
			Usage:   "Code-host API token",
			EnvVars: []string{"FINCHLY_GITHUB_TOKEN", "GITHUB_TOKEN"},
		},
		&cli.StringFlag{
			Name:    "scrape-api-key",
			Usage:   "Scrape service API key",
			EnvVars: []string{"FINCHLY_SCRAPE_API_KEY"},
		},
	}
}

// newService builds the composition root from command-line flags.
func newService(c *cli.Context) (*finchly.Service, error) {
	aiOpts := []ai.ConfigOption{
		ai.WithEmbeddingHost(c.String("embedding-host")),
		ai.WithEmbeddingAPIKey(c.String("embedding-api-key")),
		ai.WithLLMHost(c.String("llm-host")),
		ai.WithLLMAPIKey(c.String("llm-api-key")),
	}
	if model := c.String("embedding-model"); model != "" {
		aiOpts = append(aiOpts, ai.WithEmbeddingModel(model))
	}
	if model := c.String("llm-model"); model != "" {
		aiOpts = append(aiOpts, ai.WithLLMModel(model))
	}
	if fallbacks := c.StringSlice("fallback-model"); len(fallbacks) > 0 {
		aiOpts = append(aiOpts, ai.WithFallbackModels(fallbacks...))
	}

	extractConfig := extract.NewConfig(
		extract.WithGitHubToken(c.String("github-token")),
		extract.WithScrapeAPIKey(c.String("scrape-api-key")),
	)

	return finchly.NewService(c.String("db"),
		finchly.WithAIConfig(ai.NewConfig(aiOpts...)),
		finchly.WithExtractConfig(extractConfig),
	)
}

func serveCommand(c *cli.Context) error {
	svc, err := newService(c)
	if err != nil {
		return fmt.Errorf("failed to open service: %w", err)
	}
	defer svc.Close()

	pipeline, err := svc.NewPipeline()
	if err != nil {
		return err
	}
	defer pipeline.Release()

	searcher, err := svc.NewSearcher()
	if err != nil {
		return err
	}
	rag, err := svc.NewRAG()
	if err != nil {
		return err
	}

	config := server.DefaultConfig()
	config.Host = c.String("host")
	config.Port = c.Int("port")
	config.SigningSecret = c.String("signing-secret")
	config.ChannelID = c.String("channel-id")

	return server.NewServer(svc.LinkRepository(), pipeline, searcher, rag, config).Start()
}

func searchCommand(c *cli.Context) error {
	query := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if query == "" {
		return fmt.Errorf("query is required")
	}

	svc, err := newService(c)
	if err != nil {
		return fmt.Errorf("failed to open service: %w", err)
	}
	defer svc.Close()

	searcher, err := svc.NewSearcher()
	if err != nil {
		return err
	}

	matches, err := searcher.Search(context.Background(), query,
		c.Int("limit"), float32(c.Float64("threshold")))
	if err != nil {
		return err
	}

	if len(matches) == 0 {
		fmt.Println("No matching links found.")
		return nil
	}

	for i, match := range matches {
		title := match.Link.Title
		if title == "" {
			title = match.Link.URL
		}
		fmt.Printf("%d. %s (%.2f)\n   %s\n", i+1, title, match.Similarity, match.Link.URL)
		if match.Link.Summary != "" {
			fmt.Printf("   %s\n", match.Link.Summary)
		}
	}
	return nil
}

func askCommand(c *cli.Context) error {
	question := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if question == "" {
		return fmt.Errorf("question is required")
	}

	svc, err := newService(c)
	if err != nil {
		return fmt.Errorf("failed to open service: %w", err)
	}
	defer svc.Close()

	rag, err := svc.NewRAG()
	if err != nil {
		return err
	}

	answer, err := rag.Ask(context.Background(), question)
	if err != nil {
		return err
	}

	fmt.Println(answer.Answer)
	if len(answer.Sources) > 0 {
		fmt.Println("\nSources:")
		for i, source := range answer.Sources {
			fmt.Printf("[%d] %s\n", i+1, source.Link.URL)
		}
	}
	return nil
}

func reembedCommand(c *cli.Context) error {
	svc, err := newService(c)
	if err != nil {
		return fmt.Errorf("failed to open service: %w", err)
	}
	defer svc.Close()

	config := &reembed.Config{
		BatchSize:      c.Int("batch-size"),
		ReportInterval: c.Int("report-interval"),
		MaxRetries:     c.Int("max-retries"),
		RetryDelay:     c.Duration("retry-delay"),
	}
	if config.BatchSize <= 0 {
		return fmt.Errorf("batch-size must be greater than 0")
	}
	if config.ReportInterval <= 0 {
		return fmt.Errorf("report-interval must be greater than 0")
	}
	if config.MaxRetries <= 0 {
		return fmt.Errorf("max-retries must be greater than 0")
	}

	reembedder := reembed.NewReembedder(svc.LinkRepository(), svc.Provider().Embedder(), config, os.Stderr)

	stats, err := reembedder.Run(context.Background())
	if err != nil {
		return fmt.Errorf("reembedding failed: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Embedded %d of %d links (%d skipped)\n",
		stats.Embedded, stats.Total, stats.Skipped)
	return nil
}

func setupLogger(c *cli.Context) error {
	// Get log level from flag and normalize to lowercase
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
