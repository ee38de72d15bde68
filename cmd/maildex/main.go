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
	"strings"

	"github.com/joho/godotenv"
	"github.com/poiesic/maildex"
	"github.com/poiesic/maildex/analysis"
	"github.com/poiesic/maildex/core"
	"github.com/poiesic/maildex/mailbox"
	"github.com/poiesic/maildex/search"
	"github.com/urfave/cli/v2"
)

func main() {
	_ = godotenv.Load()

	app := &cli.App{
		Name:  "maildex",
		Usage: "Search and relevance ranking for a local mail collection",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Before:   setupLogger,
		Commands: []*cli.Command{
			{
				Name:      "search",
				Usage:     "Rank messages in a mailbox against a free-text query",
				ArgsUsage: "<query>",
				Action:    searchCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "db",
						Aliases: []string{"d"},
						Usage:   "Path to the query-log database directory",
						EnvVars: []string{"MAILDEX_DB"},
						Value:   "./maildex_db",
					},
					&cli.StringFlag{
						Name:     "mail",
						Aliases:  []string{"m"},
						Usage:    "Directory of .eml message files",
						EnvVars:  []string{"MAILDEX_MAIL"},
						Required: true,
					},
				},
			},
			{
				Name:      "similar",
				Usage:     "Find messages similar to a given one",
				ArgsUsage: "<message-id>",
				Action:    similarCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "mail",
						Aliases:  []string{"m"},
						Usage:    "Directory of .eml message files",
						EnvVars:  []string{"MAILDEX_MAIL"},
						Required: true,
					},
				},
			},
			{
				Name:      "classify",
				Usage:     "Classify a query string into a semantic category",
				ArgsUsage: "<query>",
				Action:    classifyCommand,
			},
			{
				Name:   "insights",
				Usage:  "Aggregate the query log into usage insights",
				Action: insightsCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "db",
						Aliases: []string{"d"},
						Usage:   "Path to the query-log database directory",
						EnvVars: []string{"MAILDEX_DB"},
						Value:   "./maildex_db",
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func searchCommand(c *cli.Context) error {
	query := strings.Join(c.Args().Slice(), " ")
	if strings.TrimSpace(query) == "" {
		return fmt.Errorf("query is required")
	}

	docs, err := mailbox.LoadDirectory(c.String("mail"))
	if err != nil {
		return fmt.Errorf("failed to load mailbox: %w", err)
	}

	engine, err := maildex.New(c.String("db"))
	if err != nil {
		return fmt.Errorf("failed to open engine: %w", err)
	}
	defer engine.Close()

	results := engine.Search(context.Background(), query, docs)

	fmt.Printf("Found %d hits\n", len(results))
	for i, hit := range results {
		fmt.Printf("%d: %q from %s [%0.3f] %s\n",
			i, hit.Document.Subject, hit.Document.From, hit.Relevance, fieldNames(hit.MatchedFields))
		if hit.Summary != "" {
			fmt.Printf("   %s\n", hit.Summary)
		}
	}
	return nil
}

func similarCommand(c *cli.Context) error {
	id := c.Args().First()
	if id == "" {
		return fmt.Errorf("message-id is required")
	}

	docs, err := mailbox.LoadDirectory(c.String("mail"))
	if err != nil {
		return fmt.Errorf("failed to load mailbox: %w", err)
	}

	var source *core.Document
	for _, doc := range docs {
		if doc.Id == id {
			source = doc
			break
		}
	}
	if source == nil {
		return fmt.Errorf("message %q not found in mailbox", id)
	}

	similar := search.FindSimilar(source, docs)
	fmt.Printf("Found %d similar messages\n", len(similar))
	for i, doc := range similar {
		fmt.Printf("%d: %q from %s (%s)\n", i, doc.Subject, doc.From, doc.Id)
	}
	return nil
}

func classifyCommand(c *cli.Context) error {
	query := strings.Join(c.Args().Slice(), " ")
	if strings.TrimSpace(query) == "" {
		return fmt.Errorf("query is required")
	}

	result := analysis.Classify(query)
	fmt.Printf("Category: %s (%0.2f)\n", result.Category, result.Confidence)
	for _, term := range result.ExtractedTerms {
		fmt.Printf("  %s: %q (%0.2f)\n", term.Type, term.Value, term.Confidence)
	}
	return nil
}

func insightsCommand(c *cli.Context) error {
	engine, err := maildex.New(c.String("db"))
	if err != nil {
		return fmt.Errorf("failed to open engine: %w", err)
	}
	defer engine.Close()

	result, err := engine.Insights(context.Background())
	if err != nil {
		return fmt.Errorf("failed to aggregate insights: %w", err)
	}

	fmt.Println("Top terms:")
	for _, term := range result.TopTerms {
		fmt.Printf("  %s (%d)\n", term.Term, term.Count)
	}

	fmt.Println("Category breakdown:")
	for _, share := range result.CategoryBreakdown {
		fmt.Printf("  %s: %d%%\n", share.Category, share.Percent)
	}

	fmt.Println("Queries by hour:")
	for hour, count := range result.HourlyDistribution {
		if count > 0 {
			fmt.Printf("  %02d:00 %d\n", hour, count)
		}
	}

	fmt.Println("Suggested searches:")
	for _, suggestion := range result.SuggestedSearches {
		fmt.Printf("  %s\n", suggestion)
	}

	for _, tip := range result.Tips {
		fmt.Printf("Tip: %s\n", tip)
	}
	return nil
}

func fieldNames(fields []core.Field) string {
	names := make([]string, len(fields))
	for i, field := range fields {
		names[i] = string(field)
	}
	return "{" + strings.Join(names, ",") + "}"
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
