package categorizer

import (
	"context"
	"sort"

	"bujichang/spending/internal/logging"
	"bujichang/spending/internal/models"
	"bujichang/spending/internal/parsererror"
)

// TagSuggester proposes a tag for a merchant no rule recognized.
type TagSuggester interface {
	SuggestTag(ctx context.Context, merchant string) (models.Tag, error)
	Name() string
}

// Suggestion is a proposed rule and the merchants that motivated it.
type Suggestion struct {
	Rule      models.MerchantRule
	Merchants []string
}

// UnmatchedMerchants returns the distinct merchants of table whose tag is
// the sentinel, in table order.
func UnmatchedMerchants(table []models.Transaction) []string {
	seen := make(map[string]bool)
	var out []string
	for _, tx := range table {
		if tx.Tag != models.TagNone || tx.Merchant == "" || seen[tx.Merchant] {
			continue
		}
		seen[tx.Merchant] = true
		out = append(out, tx.Merchant)
	}
	return out
}

// SuggestRules asks suggester for a tag for every unmatched merchant in table
// and groups the answers into candidate rules, one per tag, in vocabulary
// order. The table is not modified. Merchants the suggester cannot place are
// skipped; a cancelled context stops the run.
func (c *Categorizer) SuggestRules(ctx context.Context, table []models.Transaction, suggester TagSuggester) ([]Suggestion, error) {
	merchants := UnmatchedMerchants(table)
	c.logger.Info("Requesting tag suggestions",
		logging.Field{Key: logging.FieldCount, Value: len(merchants)},
		logging.Field{Key: "strategy", Value: suggester.Name()})

	byTag := make(map[models.Tag][]string)
	for _, merchant := range merchants {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		tag, err := suggester.SuggestTag(ctx, merchant)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			c.logger.WithError(&parsererror.CategorizationError{
				Merchant: merchant,
				Strategy: suggester.Name(),
				Err:      err,
			}).Warn("Tag suggestion failed")
			continue
		}
		if tag == models.TagNone || tag == models.TagUnset {
			continue
		}
		byTag[tag] = append(byTag[tag], merchant)
	}

	var suggestions []Suggestion
	for _, tag := range models.AllTags() {
		merchants, ok := byTag[tag]
		if !ok {
			continue
		}
		keywords := append([]string(nil), merchants...)
		sort.Strings(keywords)
		suggestions = append(suggestions, Suggestion{
			Rule:      models.MerchantRule{Tag: tag, Keywords: keywords},
			Merchants: merchants,
		})
	}
	return suggestions, nil
}
