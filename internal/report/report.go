// Package report summarizes the canonical table: monthly totals with a
// trailing average, and per-month breakdowns by class, payment method or
// frequency.
package report

import (
	"fmt"
	"sort"

	"bujichang/spending/internal/models"

	"github.com/shopspring/decimal"
)

// DefaultWindow is the number of months in the trailing average.
const DefaultWindow = 3

// Group selects the column a breakdown is grouped by.
type Group string

const (
	GroupClass     Group = "class"
	GroupPayment   Group = "payment"
	GroupFrequency Group = "frequency"
)

// ParseGroup converts a flag value into a Group.
func ParseGroup(s string) (Group, error) {
	switch g := Group(s); g {
	case GroupClass, GroupPayment, GroupFrequency:
		return g, nil
	default:
		return "", fmt.Errorf("unknown group %q (must be class, payment or frequency)", s)
	}
}

// Keys returns the vocabulary of the group in its canonical order.
func (g Group) Keys() []string {
	var keys []string
	switch g {
	case GroupPayment:
		for _, p := range models.AllPaymentMethods() {
			keys = append(keys, string(p))
		}
	case GroupFrequency:
		for _, f := range models.AllFrequencies() {
			keys = append(keys, string(f))
		}
	default:
		for _, c := range models.AllClasses() {
			keys = append(keys, string(c))
		}
	}
	return keys
}

// ParseKey resolves a slug or display label to one of the group's keys.
func (g Group) ParseKey(s string) (string, error) {
	for _, k := range g.Keys() {
		if k == s || g.Label(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown %s %q", g, s)
}

// Key returns the value of tx in the grouped column.
func (g Group) Key(tx models.Transaction) string {
	switch g {
	case GroupPayment:
		return string(tx.PaymentMethod)
	case GroupFrequency:
		return string(tx.Frequency)
	default:
		return string(tx.Class)
	}
}

// Label returns the display label of a group key.
func (g Group) Label(key string) string {
	switch g {
	case GroupPayment:
		return models.PaymentMethod(key).Label()
	case GroupFrequency:
		return models.Frequency(key).Label()
	default:
		return models.Class(key).Label()
	}
}

// MonthlyTotal is the spending of one month.
type MonthlyTotal struct {
	Month   string
	Total   int64
	Average float64
}

// MonthlyTotals sums the table per month, in ascending month order. Average
// is the mean of the last window months up to and including this one; the
// first months average over as many months as exist.
func MonthlyTotals(table []models.Transaction, window int) []MonthlyTotal {
	if window < 1 {
		window = DefaultWindow
	}

	sums := make(map[string]int64)
	for _, tx := range table {
		sums[tx.Month] += tx.Amount
	}
	months := make([]string, 0, len(sums))
	for m := range sums {
		months = append(months, m)
	}
	sort.Strings(months)

	totals := make([]MonthlyTotal, len(months))
	for i, m := range months {
		start := max(0, i-window+1)
		var sum int64
		for _, prev := range months[start : i+1] {
			sum += sums[prev]
		}
		totals[i] = MonthlyTotal{
			Month:   m,
			Total:   sums[m],
			Average: float64(sum) / float64(i+1-start),
		}
	}
	return totals
}

// MonthTotal returns the spending of one month.
func MonthTotal(table []models.Transaction, month string) int64 {
	var total int64
	for _, tx := range table {
		if tx.Month == month {
			total += tx.Amount
		}
	}
	return total
}

// Share is the spending of one group value within a month.
type Share struct {
	Key     string
	Label   string
	Amount  int64
	Percent float64
}

// Breakdown sums one month per group value. Only values that occur are
// returned, largest first; percentages are rounded to one decimal.
func Breakdown(table []models.Transaction, month string, group Group) []Share {
	sums := make(map[string]int64)
	for _, tx := range table {
		if tx.Month == month {
			sums[group.Key(tx)] += tx.Amount
		}
	}
	return shares(sums, group.Keys(), group.Label)
}

// TagBreakdown sums the tags of one group value within one month.
func TagBreakdown(table []models.Transaction, month string, group Group, key string) []Share {
	sums := make(map[string]int64)
	for _, tx := range table {
		if tx.Month == month && group.Key(tx) == key {
			sums[string(tx.Tag)] += tx.Amount
		}
	}
	var order []string
	for _, t := range models.AllTags() {
		order = append(order, string(t))
	}
	return shares(sums, order, func(k string) string { return models.Tag(k).Label() })
}

// shares orders sums largest first, breaking ties by the order of keys.
// Keys missing from order sort after every known key.
func shares(sums map[string]int64, order []string, label func(string) string) []Share {
	if len(sums) == 0 {
		return nil
	}

	rank := make(map[string]int, len(order))
	for i, k := range order {
		rank[k] = i
	}
	keys := make([]string, 0, len(sums))
	var total int64
	for k, v := range sums {
		keys = append(keys, k)
		total += v
	}
	rankOf := func(k string) int {
		if r, ok := rank[k]; ok {
			return r
		}
		return len(order)
	}
	sort.Slice(keys, func(i, j int) bool {
		if sums[keys[i]] != sums[keys[j]] {
			return sums[keys[i]] > sums[keys[j]]
		}
		if rankOf(keys[i]) != rankOf(keys[j]) {
			return rankOf(keys[i]) < rankOf(keys[j])
		}
		return keys[i] < keys[j]
	})

	out := make([]Share, len(keys))
	for i, k := range keys {
		out[i] = Share{Key: k, Label: label(k), Amount: sums[k], Percent: percent(sums[k], total)}
	}
	return out
}

func percent(part, total int64) float64 {
	if total == 0 {
		return 0
	}
	return decimal.NewFromInt(part).
		Mul(decimal.NewFromInt(100)).
		Div(decimal.NewFromInt(total)).
		Round(1).
		InexactFloat64()
}

// RecentWindow returns the last n months, the default selection of the
// summary. A non-positive n selects DefaultWindow months.
func RecentWindow(months []string, n int) []string {
	if n < 1 {
		n = DefaultWindow
	}
	start := max(0, len(months)-n)
	return append([]string(nil), months[start:]...)
}
