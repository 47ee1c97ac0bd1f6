package categorizer

import (
	"bujichang/spending/internal/logging"
	"bujichang/spending/internal/models"
	"bujichang/spending/internal/textutils"
)

// KeywordStrategy tags merchants by case-sensitive substring match over an
// ordered rule table.
type KeywordStrategy struct {
	rules  []models.MerchantRule
	logger logging.Logger
}

// NewKeywordStrategy creates a KeywordStrategy over a copy of rules.
func NewKeywordStrategy(rules []models.MerchantRule, logger logging.Logger) *KeywordStrategy {
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}
	copied := make([]models.MerchantRule, len(rules))
	for i, r := range rules {
		copied[i] = models.MerchantRule{Tag: r.Tag, Keywords: append([]string(nil), r.Keywords...)}
	}
	return &KeywordStrategy{rules: copied, logger: logger}
}

// Name returns the name of this strategy for logging.
func (s *KeywordStrategy) Name() string {
	return "Keyword"
}

// Match returns the tag of the first rule with a keyword contained in
// merchant, along with that keyword.
func (s *KeywordStrategy) Match(merchant string) (models.Tag, string, bool) {
	if merchant == "" {
		return models.TagUnset, "", false
	}
	for _, rule := range s.rules {
		if kw, ok := textutils.ContainsAny(merchant, rule.Keywords); ok {
			s.logger.Debug("Merchant matched keyword",
				logging.Field{Key: logging.FieldMerchant, Value: merchant},
				logging.Field{Key: logging.FieldKeyword, Value: kw},
				logging.Field{Key: logging.FieldTag, Value: rule.Tag})
			return rule.Tag, kw, true
		}
	}
	return models.TagUnset, "", false
}

// Rules returns a copy of the rule table.
func (s *KeywordStrategy) Rules() []models.MerchantRule {
	out := make([]models.MerchantRule, len(s.rules))
	copy(out, s.rules)
	return out
}
