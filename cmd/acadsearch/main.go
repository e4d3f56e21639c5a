// Copyright 2025 Acadsearch Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
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
	"net/http"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/acadsearch/acadsearch"
	"github.com/acadsearch/acadsearch/ai"
	"github.com/acadsearch/acadsearch/ai/mock"
	"github.com/acadsearch/acadsearch/core"
	"github.com/acadsearch/acadsearch/httpapi"
	"github.com/acadsearch/acadsearch/search"
)

func main() {
	app := &cli.App{
		Name:  "acadsearch",
		Usage: "Semantic and self-querying search over academic records",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Before: setup,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Start the HTTP API",
				Action: serveCommand,
				Flags: append(serviceFlags(),
					&cli.StringFlag{
						Name:  "addr",
						Usage: "Listen address",
						Value: ":8080",
					},
				),
			},
			{
				Name:   "index",
				Usage:  "Rebuild the vector indices from stored records",
				Action: indexCommand,
				Flags: append(serviceFlags(),
					&cli.StringFlag{
						Name:  "type",
						Usage: "Record type to reindex (article, researcher); all when omitted",
					},
				),
			},
			{
				Name:      "search",
				Usage:     "Run a semantic search",
				ArgsUsage: "<query>",
				Action:    searchCommand,
				Flags: append(serviceFlags(),
					&cli.StringFlag{
						Name:  "type",
						Usage: "Record type to search (article, researcher)",
						Value: "article",
					},
					&cli.IntFlag{
						Name:  "k",
						Usage: "Number of results",
						Value: 10,
					},
				),
			},
			{
				Name:      "self-query",
				Usage:     "Run a self-querying search with filter extraction",
				ArgsUsage: "<query>",
				Action:    selfQueryCommand,
				Flags: append(serviceFlags(),
					&cli.IntFlag{
						Name:  "k",
						Usage: "Number of results",
						Value: 10,
					},
					&cli.BoolFlag{
						Name:  "explain",
						Usage: "Print each retrieval stage as it runs",
					},
				),
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func serviceFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "db",
			Aliases: []string{"d"},
			Usage:   "Path to BadgerDB database directory",
			Value:   "./acadsearch_db",
		},
		&cli.StringFlag{
			Name:  "schema",
			Usage: "Path to filter-field schema YAML (built-in defaults when missing)",
		},
		&cli.StringFlag{
			Name:  "host",
			Usage: "OpenAI-compatible provider base URL",
		},
		&cli.StringFlag{
			Name:  "embedding-model",
			Usage: "Embedding model name",
		},
		&cli.StringFlag{
			Name:  "completion-model",
			Usage: "Completion model name",
		},
		&cli.StringFlag{
			Name:    "api-key",
			Usage:   "Provider API key",
			EnvVars: []string{"OPENAI_API_KEY"},
		},
		&cli.BoolFlag{
			Name:  "mock",
			Usage: "Use the deterministic mock AI provider (offline mode)",
		},
	}
}

func setup(c *cli.Context) error {
	_ = godotenv.Load()

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

func openService(c *cli.Context) (*acadsearch.Service, error) {
	var configOpts []ai.ConfigOption
	if host := c.String("host"); host != "" {
		configOpts = append(configOpts, ai.WithHost(host))
	}
	if model := c.String("embedding-model"); model != "" {
		configOpts = append(configOpts, ai.WithEmbeddingModel(model))
	}
	if model := c.String("completion-model"); model != "" {
		configOpts = append(configOpts, ai.WithCompletionModel(model))
	}
	if key := c.String("api-key"); key != "" {
		configOpts = append(configOpts, ai.WithAPIKey(key))
	}

	opts := []acadsearch.ServiceOption{
		acadsearch.WithAIConfig(ai.NewConfig(configOpts...)),
	}
	if path := c.String("schema"); path != "" {
		opts = append(opts, acadsearch.WithSchemaPath(path))
	}
	if c.Bool("mock") {
		opts = append(opts, acadsearch.WithProvider(mock.NewMockProvider()))
	}

	return acadsearch.NewService(c.String("db"), opts...)
}

func serveCommand(c *cli.Context) error {
	service, err := openService(c)
	if err != nil {
		return fmt.Errorf("failed to open service: %w", err)
	}
	defer service.Close()

	searcher, err := service.NewSearcher()
	if err != nil {
		return err
	}
	pipeline, err := service.NewPipeline()
	if err != nil {
		return err
	}
	defer pipeline.Release()

	server, err := httpapi.NewServer(searcher, pipeline,
		httpapi.WithGenerator(service.NewGenerator()))
	if err != nil {
		return err
	}

	addr := c.String("addr")
	slog.Info("starting HTTP API", "addr", addr)
	return http.ListenAndServe(addr, server.Handler())
}

func indexCommand(c *cli.Context) error {
	ctx := context.Background()

	service, err := openService(c)
	if err != nil {
		return fmt.Errorf("failed to open service: %w", err)
	}
	defer service.Close()

	pipeline, err := service.NewPipeline()
	if err != nil {
		return err
	}
	defer pipeline.Release()

	if name := c.String("type"); name != "" {
		kind, parseErr := core.ParseRecordKind(name)
		if parseErr != nil {
			return parseErr
		}
		indexed, indexErr := pipeline.IndexKind(ctx, kind)
		if indexErr != nil {
			return indexErr
		}
		fmt.Printf("indexed %d %s records\n", indexed, kind)
		return nil
	}

	if err := pipeline.IndexAll(ctx); err != nil {
		return err
	}
	fmt.Println("all indices rebuilt")
	return nil
}

func searchCommand(c *cli.Context) error {
	ctx := context.Background()

	query := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if query == "" {
		return fmt.Errorf("query argument is required")
	}

	kind, err := core.ParseRecordKind(c.String("type"))
	if err != nil {
		return err
	}

	service, err := openService(c)
	if err != nil {
		return fmt.Errorf("failed to open service: %w", err)
	}
	defer service.Close()

	searcher, err := service.NewSearcher()
	if err != nil {
		return err
	}

	results, err := searcher.SemanticSearch(ctx, query, c.Int("k"), kind)
	if err != nil {
		return err
	}

	for i, result := range results {
		fmt.Printf("%2d. [%.3f] %s\n", i+1, result.Score,
			searcher.Formatter().FormatForDisplay(result.Record))
	}
	return nil
}

func selfQueryCommand(c *cli.Context) error {
	ctx := context.Background()

	query := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))

	service, err := openService(c)
	if err != nil {
		return fmt.Errorf("failed to open service: %w", err)
	}
	defer service.Close()

	searcher, err := service.NewSearcher()
	if err != nil {
		return err
	}

	var monitor search.SearchMonitor
	if c.Bool("explain") {
		monitor = &explainMonitor{}
	}

	result, err := searcher.SelfQueryWithMonitor(ctx, query, c.Int("k"), monitor)
	if err != nil {
		return err
	}

	fmt.Printf("mode: %s  degraded: %v  total: %d\n", result.Mode, result.Degraded, result.TotalFound)
	for _, filter := range result.Filters {
		fmt.Printf("filter: %s %s %v (%s)\n", filter.Field, filter.Operator, filter.Value, filter.Source)
	}
	for i, res := range result.Results {
		fmt.Printf("%2d. [%.3f] %s\n", i+1, res.Score,
			searcher.Formatter().FormatForDisplay(res.Record))
	}
	return nil
}

// explainMonitor prints each retrieval stage to stderr for the
// self-query --explain flag.
type explainMonitor struct{}

var _ search.SearchMonitor = (*explainMonitor)(nil)

func (m *explainMonitor) Start(query string) {
	fmt.Fprintf(os.Stderr, "-- query: %q\n", query)
}

func (m *explainMonitor) AfterFilterExtraction(filters []core.Filter) {
	fmt.Fprintf(os.Stderr, "-- extracted %d filter(s)\n", len(filters))
	for _, filter := range filters {
		fmt.Fprintf(os.Stderr, "--   %s %s %v (%s, evidence %q)\n",
			filter.Field, filter.Operator, filter.Value, filter.Source, filter.Evidence)
	}
}

func (m *explainMonitor) AfterQueryCleaning(residual string) {
	fmt.Fprintf(os.Stderr, "-- residual query: %q\n", residual)
}

func (m *explainMonitor) AfterVectorSearch(ids []string) {
	fmt.Fprintf(os.Stderr, "-- vector search returned %d candidate(s)\n", len(ids))
}

func (m *explainMonitor) FilteredOut(id string) {
	fmt.Fprintf(os.Stderr, "-- pruned %s\n", id)
}

func (m *explainMonitor) Degraded(err error) {
	fmt.Fprintf(os.Stderr, "-- vector search failed, falling back to filters: %v\n", err)
}

func (m *explainMonitor) Finish(result *core.SelfQueryResult) {
	fmt.Fprintf(os.Stderr, "-- %s mode, %d found\n", result.Mode, result.TotalFound)
}
