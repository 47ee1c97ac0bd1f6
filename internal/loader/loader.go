// Package loader runs one end-to-end load: fetch every configured source,
// parse it with its adapter and aggregate the results into the canonical
// table.
package loader

import (
	"context"
	"fmt"
	"time"

	"bujichang/spending/internal/batch"
	"bujichang/spending/internal/factory"
	"bujichang/spending/internal/fetcher"
	"bujichang/spending/internal/logging"
	"bujichang/spending/internal/models"
	"bujichang/spending/internal/parser"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// Policy decides what a load does when a source fails.
type Policy string

const (
	// PolicyAbort fails the whole load on the first failed source.
	PolicyAbort Policy = "abort"
	// PolicyPartial drops failed sources and reports them in Result.Failures.
	PolicyPartial Policy = "partial"
)

// ParsePolicy converts a configuration value into a Policy.
func ParsePolicy(s string) (Policy, error) {
	switch p := Policy(s); p {
	case PolicyAbort, PolicyPartial:
		return p, nil
	default:
		return "", fmt.Errorf("unknown load policy: %q", s)
	}
}

// Source is one configured spending source.
type Source struct {
	Name    string
	Type    factory.ParserType
	SheetID string
	Sheets  []string
}

// ParserFactory creates the adapter for a source type.
type ParserFactory func(factory.ParserType, logging.Logger) (parser.Parser, error)

// Result is the outcome of one load.
type Result struct {
	RunID        string
	Transactions []models.Transaction
	Months       []string
	Stats        map[string]parser.Stats
	Failures     []error
}

// Loader orchestrates fetch, parse and aggregation.
type Loader struct {
	sources     []Source
	fetcher     fetcher.Fetcher
	aggregator  *batch.Aggregator
	newParser   ParserFactory
	policy      Policy
	concurrency int
	logger      logging.Logger
}

// Option customizes a Loader.
type Option func(*Loader)

// WithPolicy sets the failure policy. The default is PolicyAbort.
func WithPolicy(p Policy) Option {
	return func(l *Loader) { l.policy = p }
}

// WithConcurrency bounds how many sources are fetched at once.
func WithConcurrency(n int) Option {
	return func(l *Loader) {
		if n > 0 {
			l.concurrency = n
		}
	}
}

// WithParserFactory replaces factory.GetParserWithLogger.
func WithParserFactory(f ParserFactory) Option {
	return func(l *Loader) { l.newParser = f }
}

// NewLoader creates a Loader over sources, in the order given.
func NewLoader(sources []Source, f fetcher.Fetcher, aggregator *batch.Aggregator, logger logging.Logger, opts ...Option) *Loader {
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}
	l := &Loader{
		sources:     append([]Source(nil), sources...),
		fetcher:     f,
		aggregator:  aggregator,
		newParser:   factory.GetParserWithLogger,
		policy:      PolicyAbort,
		concurrency: 4,
		logger:      logger,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Sources returns the configured sources.
func (l *Loader) Sources() []Source {
	return append([]Source(nil), l.sources...)
}

type sourceResult struct {
	transactions []models.Transaction
	stats        parser.Stats
	err          error
}

// Load fetches and parses every source, then aggregates the outputs in
// configuration order regardless of which source finished first. An unknown
// source type or a cancelled context always fails the load; other source
// failures are handled according to the policy.
func (l *Loader) Load(ctx context.Context) (*Result, error) {
	start := time.Now()
	runID := uuid.NewString()
	log := logging.WithRun(l.logger, runID)

	parsers := make([]parser.Parser, len(l.sources))
	for i, src := range l.sources {
		p, err := l.newParser(src.Type, logging.WithSource(log, src.Name, ""))
		if err != nil {
			return nil, fmt.Errorf("source %q: %w", src.Name, err)
		}
		parsers[i] = p
	}

	log.Info("Starting load",
		logging.Field{Key: logging.FieldCount, Value: len(l.sources)},
		logging.Field{Key: "policy", Value: string(l.policy)})

	slots := make([]sourceResult, len(l.sources))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(l.concurrency)
	for i := range l.sources {
		g.Go(func() error {
			slots[i] = l.loadSource(gctx, log, l.sources[i], parsers[i])
			if slots[i].err != nil && l.policy == PolicyAbort {
				return slots[i].err
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result := &Result{
		RunID: runID,
		Stats: make(map[string]parser.Stats, len(l.sources)),
	}
	outputs := make([][]models.Transaction, 0, len(slots))
	for i, slot := range slots {
		name := l.sources[i].Name
		if slot.err != nil {
			log.Warn("Skipping failed source",
				logging.Field{Key: logging.FieldSource, Value: name},
				logging.Field{Key: logging.FieldError, Value: slot.err.Error()})
			result.Failures = append(result.Failures, slot.err)
			continue
		}
		result.Stats[name] = slot.stats
		outputs = append(outputs, slot.transactions)
	}

	result.Transactions = l.aggregator.Aggregate(outputs)
	result.Months = batch.AvailableMonths(result.Transactions)

	log.Info("Load complete",
		logging.Field{Key: logging.FieldCount, Value: len(result.Transactions)},
		logging.Field{Key: "failures", Value: len(result.Failures)},
		logging.Field{Key: logging.FieldDuration, Value: time.Since(start).Milliseconds()})
	return result, nil
}

// loadSource fetches and parses every sheet of one source. The first failed
// sheet fails the source.
func (l *Loader) loadSource(ctx context.Context, log logging.Logger, src Source, p parser.Parser) sourceResult {
	log = logging.WithSource(log, src.Name, "")

	var out []models.Transaction
	for _, sheet := range src.Sheets {
		table, err := l.fetcher.FetchSourceTable(ctx, src.SheetID, sheet)
		if err != nil {
			return sourceResult{err: err}
		}
		txs, err := p.Parse(table)
		if err != nil {
			return sourceResult{err: err}
		}
		for i := range txs {
			txs[i].Source = src.Name
		}
		out = append(out, txs...)
		log.Debug("Parsed sheet",
			logging.Field{Key: logging.FieldSheet, Value: sheet},
			logging.Field{Key: logging.FieldCount, Value: len(txs)})
	}

	var stats parser.Stats
	if reporter, ok := p.(parser.StatsReporter); ok {
		stats = reporter.Stats()
	}
	log.Info("Loaded source",
		logging.Field{Key: logging.FieldParser, Value: string(src.Type)},
		logging.Field{Key: logging.FieldCount, Value: len(out)},
		logging.Field{Key: logging.FieldDropped, Value: stats.Dropped()})
	return sourceResult{transactions: out, stats: stats}
}
