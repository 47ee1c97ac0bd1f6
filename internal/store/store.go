// Package store loads and saves the merchant rules file.
package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"bujichang/spending/internal/logging"
	"bujichang/spending/internal/models"

	"gopkg.in/yaml.v3"
)

// DefaultRulesFile is the rules file name looked up when none is configured.
const DefaultRulesFile = "rules.yaml"

// ErrUnknownTag is returned when a rules file names a tag outside the vocabulary.
var ErrUnknownTag = errors.New("unknown tag")

// RuleStore manages the YAML merchant rules file.
type RuleStore struct {
	RulesFile string
	logger    logging.Logger
}

// NewRuleStore creates a store for the given rules file.
func NewRuleStore(rulesFile string, logger logging.Logger) *RuleStore {
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}
	return &RuleStore{RulesFile: rulesFile, logger: logger}
}

// FindConfigFile looks for filename in the working directory, ./config and
// $HOME/.spending, in that order.
func (s *RuleStore) FindConfigFile(filename string) (string, error) {
	if filepath.IsAbs(filename) {
		if _, err := os.Stat(filename); err != nil {
			return "", err
		}
		return filename, nil
	}

	locations := []string{
		filename,
		filepath.Join("config", filename),
	}
	if home, err := os.UserHomeDir(); err == nil {
		locations = append(locations, filepath.Join(home, ".spending", filename))
	}

	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location, nil
		}
	}
	return "", os.ErrNotExist
}

// LoadRules reads the rules file. A missing file yields no rules and no
// error, meaning the built-in table applies. Tags may be written as slugs or
// ledger labels and are returned as slugs.
func (s *RuleStore) LoadRules() ([]models.MerchantRule, error) {
	filename := s.RulesFile
	if filename == "" {
		filename = DefaultRulesFile
	}

	path, err := s.FindConfigFile(filename)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			s.logger.Debug("Rules file not found, using built-in rules",
				logging.Field{Key: logging.FieldFile, Value: filename})
			return nil, nil
		}
		return nil, fmt.Errorf("error resolving rules file: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading rules file: %w", err)
	}

	var cfg models.RulesConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("error parsing rules file %s: %w", path, err)
	}

	rules := make([]models.MerchantRule, 0, len(cfg.MerchantRules))
	for i, rule := range cfg.MerchantRules {
		tag, ok := models.ParseTag(string(rule.Tag))
		if !ok || tag == models.TagUnset || tag == models.TagNone {
			return nil, fmt.Errorf("rules file %s, rule %d: %w %q", path, i+1, ErrUnknownTag, rule.Tag)
		}
		keywords := make([]string, 0, len(rule.Keywords))
		for _, kw := range rule.Keywords {
			if kw = strings.TrimSpace(kw); kw != "" {
				keywords = append(keywords, kw)
			}
		}
		rules = append(rules, models.MerchantRule{Tag: tag, Keywords: keywords})
	}

	s.logger.Info("Loaded merchant rules",
		logging.Field{Key: logging.FieldFile, Value: path},
		logging.Field{Key: logging.FieldCount, Value: len(rules)})
	return rules, nil
}

// SaveRules writes rules to the configured rules file, creating its directory.
func (s *RuleStore) SaveRules(rules []models.MerchantRule) error {
	filename := s.RulesFile
	if filename == "" {
		filename = DefaultRulesFile
	}

	if err := os.MkdirAll(filepath.Dir(filename), models.PermissionDirectory); err != nil {
		return fmt.Errorf("error creating rules directory: %w", err)
	}
	data, err := MarshalRules(rules)
	if err != nil {
		return err
	}
	if err := os.WriteFile(filename, data, models.PermissionConfigFile); err != nil {
		return fmt.Errorf("error writing rules file: %w", err)
	}

	s.logger.Info("Saved merchant rules",
		logging.Field{Key: logging.FieldFile, Value: filename},
		logging.Field{Key: logging.FieldCount, Value: len(rules)})
	return nil
}

// MarshalRules renders rules in the rules file format.
func MarshalRules(rules []models.MerchantRule) ([]byte, error) {
	data, err := yaml.Marshal(models.RulesConfig{MerchantRules: rules})
	if err != nil {
		return nil, fmt.Errorf("error marshaling rules: %w", err)
	}
	return data, nil
}
