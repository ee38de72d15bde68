package main

import (
	"bufio"
	"context"
	"flag"
	"iter"
	"log/slog"
	"os"
	"time"

	"github.com/poiesic/maildex"
	"github.com/poiesic/maildex/core"
)

var queries = []string{
	"invoice payment due",
	"quarterly report attachment",
	"meeting notes budget review",
	"flight confirmation",
	"john@example.com",
	"invoice from billing@vendor.com",
	"payment receipt $100",
	"0x1111111111111111111111111111111111111111",
	"vitalik.eth airdrop",
	"nft mint confirmation",
	"defi yield farming newsletter",
	"staking rewards 0.5 eth",
	"refund 49.99 eur",
	"last week security alert",
	"yesterday standup notes",
	"january invoice archive",
	"next month travel itinerary",
	"12/05/2025 delivery update",
	"password reset",
	"subscription renewal notice",
	"team lunch friday",
	"contract signature pending",
	"tax documents 2024",
	"conference talk proposal",
	"shipping notification",
	"newsletter unsubscribe",
	"wallet backup instructions",
	"gas fees spike warning",
	"project alpha status",
	"invoice payment overdue",
}

var (
	seedFileName = flag.String("src", "", "file of seed queries")
	dbPath       = flag.String("db", "./maildex_db", "query-log database directory")
	days         = flag.Int("days", 14, "spread entries over this many past days")
)

func init() {
	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	slog.SetDefault(slog.New(handler))
	flag.Parse()
}

// linesFromFile returns an iterator over lines in a file.
func linesFromFile(filename string) (iter.Seq[string], error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}

	return func(yield func(string) bool) {
		defer f.Close()
		scanner := bufio.NewScanner(f)
		for scanner.Scan() {
			if !yield(scanner.Text()) {
				return
			}
		}
	}, nil
}

// linesFromSlice returns an iterator over a slice of strings.
func linesFromSlice(lines []string) iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, line := range lines {
			if !yield(line) {
				return
			}
		}
	}
}

// entriesFromQueries turns seed queries into log entries spread backwards
// over the configured window at varying hours, with result counts that
// exercise both search tips (a few zero-result and a few too-broad queries).
func entriesFromQueries(source iter.Seq[string], window int, now time.Time) []*core.QueryLogEntry {
	var entries []*core.QueryLogEntry

	i := 0
	for query := range source {
		if query == "" {
			continue
		}

		// Start a full day back so an entry's hour can never land in the
		// future; future timestamps fail query-log validation.
		age := time.Duration(i%window+1) * 24 * time.Hour
		hour := time.Duration((i*5)%24) * time.Hour

		resultsCount := (i * 7) % 40
		switch i % 10 {
		case 3:
			resultsCount = 0
		case 7:
			resultsCount = 150
		}

		entries = append(entries, &core.QueryLogEntry{
			Query:        query,
			Timestamp:    now.Add(-age).Truncate(24 * time.Hour).Add(hour),
			ResultsCount: resultsCount,
		})
		i++
	}

	return entries
}

func main() {
	if *days < 1 {
		*days = 1
	}

	engine, err := maildex.New(*dbPath)
	if err != nil {
		panic(err)
	}
	defer engine.Close()

	var source iter.Seq[string]
	if *seedFileName != "" {
		source, err = linesFromFile(*seedFileName)
		if err != nil {
			panic(err)
		}
	} else {
		source = linesFromSlice(queries)
	}

	entries := entriesFromQueries(source, *days, time.Now().UTC())
	if _, err := engine.QueryLog().Append(context.Background(), entries...); err != nil {
		panic(err)
	}

	slog.Info("seeded query log", "entries", len(entries), "db", *dbPath)
}
