// Package currencyutils provides the amount cleaners of the pipeline. Amounts
// are whole currency units; fractional input is rejected rather than rounded.
package currencyutils

import (
	"errors"
	"strings"

	"bujichang/spending/internal/parsererror"

	"github.com/shopspring/decimal"
)

// currencyTokens are removed from amount strings in this order.
var currencyTokens = []string{"NT$", "TWD", "NTD", "$", "元"}

var (
	errEmptyAmount      = errors.New("empty amount")
	errFractionalAmount = errors.New("not a whole currency amount")
)

// StripCurrency removes whitespace, currency tokens, thousands separators and
// a trailing ".00" from an amount string, repeating until nothing changes.
// It never fails and is idempotent: "1,234.00 TWD" becomes "1234".
func StripCurrency(s string) string {
	for {
		next := stripOnce(s)
		if next == s {
			return next
		}
		s = next
	}
}

func stripOnce(s string) string {
	s = strings.Join(strings.Fields(s), "")
	for _, token := range currencyTokens {
		s = strings.ReplaceAll(s, token, "")
	}
	s = strings.ReplaceAll(s, ",", "")
	return strings.TrimSuffix(s, ".00")
}

// ParseAmount cleans s with StripCurrency and parses it as an integer amount.
// Sign is preserved; callers decide what a negative amount means.
func ParseAmount(s string) (int64, error) {
	cleaned := StripCurrency(s)
	if cleaned == "" {
		return 0, &parsererror.ParseError{Parser: "currencyutils", Field: "amount", Value: s, Err: errEmptyAmount}
	}

	amount, err := decimal.NewFromString(cleaned)
	if err != nil {
		return 0, &parsererror.ParseError{Parser: "currencyutils", Field: "amount", Value: s, Err: err}
	}
	if !amount.IsInteger() {
		return 0, &parsererror.ParseError{Parser: "currencyutils", Field: "amount", Value: s, Err: errFractionalAmount}
	}

	return amount.IntPart(), nil
}

// IsReversal reports whether a raw amount string is marked as a refund or
// reversal by a leading minus sign.
func IsReversal(s string) bool {
	return strings.HasPrefix(strings.TrimSpace(s), "-")
}

// FormatAmount renders an amount with thousands separators, e.g. 12345 as "12,345".
func FormatAmount(amount int64) string {
	digits := decimal.NewFromInt(amount).Abs().String()

	var b strings.Builder
	if amount < 0 {
		b.WriteByte('-')
	}
	for i, r := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	return b.String()
}
