// Package config provides Viper-based hierarchical configuration management
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Load policies.
const (
	PolicyAbort   = "abort"
	PolicyPartial = "partial"
)

var (
	validBackends    = []string{"gviz", "sheets", "file", "memory"}
	validPolicies    = []string{PolicyAbort, PolicyPartial}
	validSourceTypes = []string{"cash", "ctbc", "citi", "tsib"}
)

// SourceConfig describes one spending source: which adapter reads it and
// where its sheets live.
type SourceConfig struct {
	Name     string   `mapstructure:"name" yaml:"name"`
	Type     string   `mapstructure:"type" yaml:"type"`
	SheetID  string   `mapstructure:"sheet_id" yaml:"sheet_id"`
	Sheets   []string `mapstructure:"sheets" yaml:"sheets"`
	Encoding string   `mapstructure:"encoding" yaml:"encoding"`
}

// Config represents the complete application configuration
type Config struct {
	Log struct {
		Level  string `mapstructure:"level" yaml:"level"`
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"log" yaml:"log"`

	CSV struct {
		Delimiter string `mapstructure:"delimiter" yaml:"delimiter"`
	} `mapstructure:"csv" yaml:"csv"`

	Fetch struct {
		Backend        string `mapstructure:"backend" yaml:"backend"`
		Endpoint       string `mapstructure:"endpoint" yaml:"endpoint"`
		TimeoutSeconds int    `mapstructure:"timeout_seconds" yaml:"timeout_seconds"`
		DataDir        string `mapstructure:"data_dir" yaml:"data_dir"`
	} `mapstructure:"fetch" yaml:"fetch"`

	Sheets struct {
		CredentialsJSON string `mapstructure:"credentials_json" yaml:"-"`
		CredentialsFile string `mapstructure:"credentials_file" yaml:"credentials_file"`
		APIKey          string `mapstructure:"api_key" yaml:"-"`
	} `mapstructure:"sheets" yaml:"sheets"`

	Load struct {
		Policy      string `mapstructure:"policy" yaml:"policy"`
		Concurrency int    `mapstructure:"concurrency" yaml:"concurrency"`
	} `mapstructure:"load" yaml:"load"`

	Rules struct {
		File string `mapstructure:"file" yaml:"file"`
	} `mapstructure:"rules" yaml:"rules"`

	Report struct {
		Window       int `mapstructure:"window" yaml:"window"`
		RecentMonths int `mapstructure:"recent_months" yaml:"recent_months"`
	} `mapstructure:"report" yaml:"report"`

	AI struct {
		Model             string `mapstructure:"model" yaml:"model"`
		RequestsPerMinute int    `mapstructure:"requests_per_minute" yaml:"requests_per_minute"`
		TimeoutSeconds    int    `mapstructure:"timeout_seconds" yaml:"timeout_seconds"`
		APIKey            string `mapstructure:"api_key" yaml:"-"` // Never serialize API key
	} `mapstructure:"ai" yaml:"ai"`

	Sources []SourceConfig `mapstructure:"sources" yaml:"sources"`
}

// InitializeConfig initializes Viper configuration with hierarchical loading.
// A non-empty configFile is read instead of searching the default locations.
func InitializeConfig(configFile string) (*Config, error) {
	v := viper.New()

	// 1. Set defaults
	setDefaults(v)

	// 2. Config file locations
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("$HOME/.spending")
		v.AddConfigPath(".spending")
		v.AddConfigPath(".")
	}

	// 3. Environment variables
	v.SetEnvPrefix("SPENDING")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// 4. Read config file (optional unless named explicitly)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// 5. Keys that are conventionally set without the prefix
	if err := v.BindEnv("ai.api_key", "SPENDING_AI_API_KEY", "GEMINI_API_KEY"); err != nil {
		return nil, fmt.Errorf("failed to bind GEMINI_API_KEY: %w", err)
	}
	if err := v.BindEnv("sheets.credentials_file", "SPENDING_SHEETS_CREDENTIALS_FILE", "GOOGLE_APPLICATION_CREDENTIALS"); err != nil {
		return nil, fmt.Errorf("failed to bind GOOGLE_APPLICATION_CREDENTIALS: %w", err)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// 6. Validate configuration
	if err := ValidateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("csv.delimiter", ",")

	v.SetDefault("fetch.backend", "gviz")
	v.SetDefault("fetch.endpoint", "https://docs.google.com/spreadsheets/d")
	v.SetDefault("fetch.timeout_seconds", 30)
	v.SetDefault("fetch.data_dir", "data")

	v.SetDefault("sheets.credentials_json", "")
	v.SetDefault("sheets.credentials_file", "")
	v.SetDefault("sheets.api_key", "")

	v.SetDefault("load.policy", PolicyAbort)
	v.SetDefault("load.concurrency", 4)

	v.SetDefault("rules.file", "rules.yaml")

	v.SetDefault("report.window", 3)
	v.SetDefault("report.recent_months", 3)

	v.SetDefault("ai.model", "gemini-1.5-flash")
	v.SetDefault("ai.requests_per_minute", 10)
	v.SetDefault("ai.timeout_seconds", 30)
}

// ValidateConfig validates the configuration values
func ValidateConfig(config *Config) error {
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}

	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", config.Log.Format)
	}

	if len([]rune(config.CSV.Delimiter)) != 1 {
		return fmt.Errorf("CSV delimiter must be a single character, got: %s", config.CSV.Delimiter)
	}

	if !contains(validBackends, config.Fetch.Backend) {
		return fmt.Errorf("invalid fetch backend: %s (must be one of %s)", config.Fetch.Backend, strings.Join(validBackends, ", "))
	}
	if config.Fetch.TimeoutSeconds < 0 {
		return fmt.Errorf("fetch.timeout_seconds must not be negative, got: %d", config.Fetch.TimeoutSeconds)
	}

	if !contains(validPolicies, config.Load.Policy) {
		return fmt.Errorf("invalid load policy: %s (must be 'abort' or 'partial')", config.Load.Policy)
	}
	if config.Load.Concurrency < 1 || config.Load.Concurrency > 64 {
		return fmt.Errorf("load.concurrency must be between 1 and 64, got: %d", config.Load.Concurrency)
	}

	if config.Report.Window < 1 {
		return fmt.Errorf("report.window must be at least 1, got: %d", config.Report.Window)
	}
	if config.Report.RecentMonths < 1 {
		return fmt.Errorf("report.recent_months must be at least 1, got: %d", config.Report.RecentMonths)
	}

	if config.AI.RequestsPerMinute < 1 || config.AI.RequestsPerMinute > 1000 {
		return fmt.Errorf("ai.requests_per_minute must be between 1 and 1000, got: %d", config.AI.RequestsPerMinute)
	}

	seen := make(map[string]bool)
	for i, src := range config.Sources {
		if src.Name == "" {
			return fmt.Errorf("sources[%d]: name is required", i)
		}
		if seen[src.Name] {
			return fmt.Errorf("sources[%d]: duplicate source name %q", i, src.Name)
		}
		seen[src.Name] = true
		if !contains(validSourceTypes, src.Type) {
			return fmt.Errorf("source %q: invalid type %q (must be one of %s)", src.Name, src.Type, strings.Join(validSourceTypes, ", "))
		}
		if src.SheetID == "" {
			return fmt.Errorf("source %q: sheet_id is required", src.Name)
		}
		if len(src.Sheets) == 0 {
			return fmt.Errorf("source %q: at least one sheet is required", src.Name)
		}
	}

	return nil
}

// ConfigureLoggingFromConfig configures logging based on the Config struct
func ConfigureLoggingFromConfig(config *Config) *logrus.Logger {
	logger := logrus.New()

	logLevel, err := logrus.ParseLevel(strings.ToLower(config.Log.Level))
	if err != nil {
		logger.Warnf("Invalid log level '%s', using 'info'", config.Log.Level)
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	if strings.ToLower(config.Log.Format) == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}

	return logger
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
