// Package batch merges the outputs of all source adapters into the canonical
// spending table.
package batch

import (
	"sort"

	"bujichang/spending/internal/logging"
	"bujichang/spending/internal/models"

	"github.com/agnivade/levenshtein"
)

// duplicateDistance is the largest merchant edit distance at which two rows
// with the same date and amount are reported as possible duplicates.
const duplicateDistance = 2

// Classifier supplies the merchant and item rules the aggregator applies.
type Classifier interface {
	MerchantToTag(merchant string) models.Tag
	TagToClass(tag models.Tag) models.Class
	IsTopUp(item string) bool
}

// Aggregator builds the canonical table.
type Aggregator struct {
	classifier Classifier
	logger     logging.Logger
}

// NewAggregator creates an Aggregator.
func NewAggregator(classifier Classifier, logger logging.Logger) *Aggregator {
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}
	return &Aggregator{classifier: classifier, logger: logger}
}

// Aggregate concatenates adapter outputs in order, drops rows without a month
// or a positive amount, and completes every row:
// top-up items get the top-up frequency, empty tags are derived from the
// merchant, every class is recomputed from the tag, and empty frequency and
// payment fall back to one-off and cash. The result is stably sorted by
// (month, day). Inputs are not modified.
func (a *Aggregator) Aggregate(outputs [][]models.Transaction) []models.Transaction {
	total := 0
	for _, out := range outputs {
		total += len(out)
	}

	table := make([]models.Transaction, 0, total)
	dropped := 0
	for _, out := range outputs {
		for _, tx := range out {
			if tx.Amount <= 0 {
				dropped++
				a.logger.Warn("Dropping non-positive amount",
					logging.Field{Key: logging.FieldSource, Value: tx.Source},
					logging.Field{Key: logging.FieldMerchant, Value: tx.Merchant})
				continue
			}
			if tx.Month == "" {
				dropped++
				a.logger.Warn("Dropping row without month",
					logging.Field{Key: logging.FieldSource, Value: tx.Source},
					logging.Field{Key: logging.FieldMerchant, Value: tx.Merchant})
				continue
			}
			table = append(table, a.complete(tx))
		}
	}

	sort.SliceStable(table, func(i, j int) bool {
		if table[i].Month != table[j].Month {
			return table[i].Month < table[j].Month
		}
		return table[i].Day < table[j].Day
	})

	a.logger.Info("Aggregated transactions",
		logging.Field{Key: logging.FieldCount, Value: len(table)},
		logging.Field{Key: logging.FieldDropped, Value: dropped})
	a.FindPossibleDuplicates(table)
	return table
}

func (a *Aggregator) complete(tx models.Transaction) models.Transaction {
	if a.classifier.IsTopUp(tx.Item) {
		tx.Frequency = models.FrequencyTopUp
	}
	if tx.Tag == models.TagUnset {
		tx.Tag = a.classifier.MerchantToTag(tx.Merchant)
	}
	tx.Class = a.classifier.TagToClass(tx.Tag)
	if tx.Frequency == models.FrequencyUnset {
		tx.Frequency = models.FrequencyOnce
	}
	if tx.PaymentMethod == models.PaymentUnset {
		tx.PaymentMethod = models.PaymentCash
	}
	return tx
}

// DuplicatePair identifies two rows of a table, by index, that may record the
// same spending twice.
type DuplicatePair struct {
	First, Second int
	Distance      int
}

// FindPossibleDuplicates reports rows from different sources sharing month,
// day and amount whose merchants are within a small edit distance. Rows are
// only reported, never removed.
func (a *Aggregator) FindPossibleDuplicates(table []models.Transaction) []DuplicatePair {
	type key struct {
		month  string
		day    int
		amount int64
	}
	buckets := make(map[key][]int)
	var order []key
	for i, tx := range table {
		k := key{tx.Month, tx.Day, tx.Amount}
		if _, ok := buckets[k]; !ok {
			order = append(order, k)
		}
		buckets[k] = append(buckets[k], i)
	}

	var pairs []DuplicatePair
	for _, k := range order {
		idx := buckets[k]
		for x := 0; x < len(idx); x++ {
			for y := x + 1; y < len(idx); y++ {
				first, second := table[idx[x]], table[idx[y]]
				if first.Source == second.Source {
					continue
				}
				d := levenshtein.ComputeDistance(first.Merchant, second.Merchant)
				if d > duplicateDistance {
					continue
				}
				pairs = append(pairs, DuplicatePair{First: idx[x], Second: idx[y], Distance: d})
				a.logger.Warn("Possible duplicate transaction",
					logging.Field{Key: logging.FieldMonth, Value: first.Month},
					logging.Field{Key: "day", Value: first.Day},
					logging.Field{Key: "amount", Value: first.Amount},
					logging.Field{Key: logging.FieldMerchant, Value: first.Merchant},
					logging.Field{Key: "sources", Value: first.Source + "," + second.Source})
			}
		}
	}
	return pairs
}

// AvailableMonths returns the distinct months of table in table order.
func AvailableMonths(table []models.Transaction) []string {
	seen := make(map[string]bool)
	var months []string
	for _, tx := range table {
		if seen[tx.Month] {
			continue
		}
		seen[tx.Month] = true
		months = append(months, tx.Month)
	}
	return months
}
