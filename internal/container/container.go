// Package container provides dependency injection for the spending
// application. It centralizes the creation and wiring of all application
// dependencies, making them explicit and testable.
package container

import (
	"context"
	"fmt"
	"time"

	"bujichang/spending/internal/batch"
	"bujichang/spending/internal/categorizer"
	"bujichang/spending/internal/common"
	"bujichang/spending/internal/config"
	"bujichang/spending/internal/factory"
	"bujichang/spending/internal/fetcher"
	"bujichang/spending/internal/loader"
	"bujichang/spending/internal/logging"
	"bujichang/spending/internal/store"
)

// Container holds all application dependencies and provides methods to
// access them.
//
// Container is immutable after creation: all fields are private and can only
// be accessed through getter methods.
type Container struct {
	logger      logging.Logger
	config      *config.Config
	store       *store.RuleStore
	categorizer *categorizer.Categorizer
	fetcher     fetcher.Fetcher
	aggregator  *batch.Aggregator
	loader      *loader.Loader
	csvWriter   *common.CSVWriter
}

// NewContainer creates and wires all application dependencies.
func NewContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}

	// Create logger first as it's needed by other components
	logger := logging.NewLogrusAdapter(cfg.Log.Level, cfg.Log.Format)
	return NewContainerWithLogger(ctx, cfg, logger)
}

// NewContainerWithLogger wires the dependencies around an existing logger.
func NewContainerWithLogger(ctx context.Context, cfg *config.Config, logger logging.Logger) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}

	ruleStore := store.NewRuleStore(cfg.Rules.File, logger)
	cat, err := categorizer.NewCategorizerFromSource(ruleStore, logger)
	if err != nil {
		return nil, err
	}

	f, err := newFetcher(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	policy, err := loader.ParsePolicy(cfg.Load.Policy)
	if err != nil {
		return nil, err
	}

	sources := make([]loader.Source, 0, len(cfg.Sources))
	for _, src := range cfg.Sources {
		sources = append(sources, loader.Source{
			Name:    src.Name,
			Type:    factory.ParserType(src.Type),
			SheetID: src.SheetID,
			Sheets:  src.Sheets,
		})
	}

	aggregator := batch.NewAggregator(cat, logger)
	ld := loader.NewLoader(sources, f, aggregator, logger,
		loader.WithPolicy(policy),
		loader.WithConcurrency(cfg.Load.Concurrency))

	var delimiter rune
	if d := []rune(cfg.CSV.Delimiter); len(d) > 0 {
		delimiter = d[0]
	}

	logger.Debug("Container initialized successfully",
		logging.Field{Key: logging.FieldBackend, Value: cfg.Fetch.Backend},
		logging.Field{Key: "sources", Value: len(sources)},
		logging.Field{Key: "rules", Value: len(cat.Rules())})

	return &Container{
		logger:      logger,
		config:      cfg,
		store:       ruleStore,
		categorizer: cat,
		fetcher:     f,
		aggregator:  aggregator,
		loader:      ld,
		csvWriter:   common.NewCSVWriter(delimiter, logger),
	}, nil
}

func newFetcher(ctx context.Context, cfg *config.Config, logger logging.Logger) (fetcher.Fetcher, error) {
	timeout := time.Duration(cfg.Fetch.TimeoutSeconds) * time.Second

	switch cfg.Fetch.Backend {
	case fetcher.BackendGviz, "":
		return fetcher.NewGvizFetcher(cfg.Fetch.Endpoint, timeout, logger), nil
	case fetcher.BackendSheets:
		return fetcher.NewSheetsFetcher(ctx, fetcher.SheetsCredentials{
			JSON:   cfg.Sheets.CredentialsJSON,
			File:   cfg.Sheets.CredentialsFile,
			APIKey: cfg.Sheets.APIKey,
		}, logger)
	case fetcher.BackendFile:
		f := fetcher.NewFileFetcher(cfg.Fetch.DataDir, logger)
		for _, src := range cfg.Sources {
			if src.Encoding != "" {
				f.SetEncoding(src.SheetID, src.Encoding)
			}
		}
		return f, nil
	case fetcher.BackendMemory:
		return fetcher.NewMemoryFetcher(), nil
	default:
		return nil, fmt.Errorf("unknown fetch backend: %s", cfg.Fetch.Backend)
	}
}

// NewSuggester creates the Gemini tag suggester. It requires an API key and
// is only built on demand, so loads never depend on it. The caller closes
// the returned client.
func (c *Container) NewSuggester(ctx context.Context) (*categorizer.GeminiClient, error) {
	if c.config.AI.APIKey == "" {
		return nil, fmt.Errorf("no Gemini API key configured (set GEMINI_API_KEY)")
	}
	client, err := categorizer.NewGeminiClient(ctx, c.config.AI.APIKey, c.config.AI.Model, c.logger)
	if err != nil {
		return nil, err
	}
	client.SetRequestsPerMinute(c.config.AI.RequestsPerMinute)
	client.SetTimeout(time.Duration(c.config.AI.TimeoutSeconds) * time.Second)
	return client, nil
}

// GetLogger returns the container's logger instance.
func (c *Container) GetLogger() logging.Logger {
	return c.logger
}

// GetConfig returns the container's configuration instance.
func (c *Container) GetConfig() *config.Config {
	return c.config
}

// GetStore returns the merchant rules store.
func (c *Container) GetStore() *store.RuleStore {
	return c.store
}

// GetCategorizer returns the container's categorizer instance.
func (c *Container) GetCategorizer() *categorizer.Categorizer {
	return c.categorizer
}

// GetFetcher returns the configured fetch backend.
func (c *Container) GetFetcher() fetcher.Fetcher {
	return c.fetcher
}

// GetAggregator returns the aggregator.
func (c *Container) GetAggregator() *batch.Aggregator {
	return c.aggregator
}

// GetLoader returns the loader over the configured sources.
func (c *Container) GetLoader() *loader.Loader {
	return c.loader
}

// GetCSVWriter returns the CSV writer using the configured delimiter.
func (c *Container) GetCSVWriter() *common.CSVWriter {
	return c.csvWriter
}

// Close performs cleanup of container resources.
func (c *Container) Close() error {
	c.logger.Debug("Container closed")
	return nil
}
