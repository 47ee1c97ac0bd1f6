// Package categorizer assigns tags to merchants and classes to tags.
//
// Rules are plain data: an ordered table of keyword lists, first match wins.
// Nothing here is an error path; a merchant no rule recognizes gets the
// sentinel tag.
package categorizer

import (
	"fmt"

	"bujichang/spending/internal/logging"
	"bujichang/spending/internal/models"
	"bujichang/spending/internal/textutils"
)

// RuleSource loads a merchant rule table.
type RuleSource interface {
	LoadRules() ([]models.MerchantRule, error)
}

// Result is the outcome of classifying a merchant. Keyword is empty when no
// rule matched.
type Result struct {
	Merchant string
	Tag      models.Tag
	Class    models.Class
	Keyword  string
}

// Categorizer holds the active merchant rules.
type Categorizer struct {
	keywords *KeywordStrategy
	logger   logging.Logger
}

// NewCategorizer creates a Categorizer over the given rules. Nil rules mean
// the built-in table.
func NewCategorizer(rules []models.MerchantRule, logger logging.Logger) *Categorizer {
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}
	if rules == nil {
		rules = DefaultMerchantRules()
	}
	return &Categorizer{
		keywords: NewKeywordStrategy(rules, logger),
		logger:   logger,
	}
}

// NewCategorizerFromSource loads rules from src. A source returning no rules
// falls back to the built-in table.
func NewCategorizerFromSource(src RuleSource, logger logging.Logger) (*Categorizer, error) {
	rules, err := src.LoadRules()
	if err != nil {
		return nil, fmt.Errorf("loading merchant rules: %w", err)
	}
	if len(rules) == 0 {
		rules = nil
	}
	return NewCategorizer(rules, logger), nil
}

// MerchantToTag returns the tag of the first rule matching merchant, or
// TagNone.
func (c *Categorizer) MerchantToTag(merchant string) models.Tag {
	if tag, _, ok := c.keywords.Match(merchant); ok {
		return tag
	}
	return models.TagNone
}

// TagToClass returns the class of tag.
func (c *Categorizer) TagToClass(tag models.Tag) models.Class {
	return models.TagToClass(tag)
}

// IsTopUp reports whether an item describes a stored-value top-up.
func (c *Categorizer) IsTopUp(item string) bool {
	_, ok := textutils.ContainsAny(item, topUpKeywords)
	return ok
}

// Classify explains how a merchant is tagged.
func (c *Categorizer) Classify(merchant string) Result {
	normalized := textutils.NormalizeMerchant(merchant)
	tag, kw, ok := c.keywords.Match(normalized)
	if !ok {
		tag = models.TagNone
	}
	return Result{
		Merchant: normalized,
		Tag:      tag,
		Class:    c.TagToClass(tag),
		Keyword:  kw,
	}
}

// Rules returns a copy of the active rule table.
func (c *Categorizer) Rules() []models.MerchantRule {
	return c.keywords.Rules()
}
