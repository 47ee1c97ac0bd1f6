// Package cashparser reads the manual cash ledger. Each sheet holds one
// year, named after it, with the month and day in separate columns.
package cashparser

import (
	"strconv"
	"strings"

	"bujichang/spending/internal/currencyutils"
	"bujichang/spending/internal/dateutils"
	"bujichang/spending/internal/logging"
	"bujichang/spending/internal/models"
	"bujichang/spending/internal/parser"
	"bujichang/spending/internal/parsererror"
	"bujichang/spending/internal/textutils"
)

// Row is one line of the cash ledger.
type Row struct {
	Month     string `csv:"月"`
	Day       string `csv:"日"`
	Merchant  string `csv:"店"`
	Item      string `csv:"項"`
	Amount    string `csv:"額"`
	Tag       string `csv:"標"`
	Frequency string `csv:"頻率"`
	Payment   string `csv:"方式"`
}

// Columns are the header names a cash sheet must carry.
var Columns = []string{"月", "日", "店", "項", "額", "標", "頻率", "方式"}

// Adapter parses cash ledger sheets.
type Adapter struct {
	parser.BaseParser
}

// NewAdapter creates a cash ledger adapter.
func NewAdapter(logger logging.Logger) *Adapter {
	return &Adapter{BaseParser: parser.NewBaseParser("cash", logger)}
}

// Parse converts one yearly sheet. Bare months are prefixed with the sheet
// name; rows without a payment method are paid in cash.
func (a *Adapter) Parse(table *models.RawTable) ([]models.Transaction, error) {
	rows, err := parser.DecodeRows[Row](table, Columns)
	if err != nil {
		return nil, err
	}

	log := a.BeginSheet(table)
	transactions := make([]models.Transaction, 0, len(rows))
	for _, row := range rows {
		tx, keep, err := a.convertRow(log, table.Sheet, row)
		if err != nil {
			a.Malformed(log, err)
			continue
		}
		if keep {
			transactions = append(transactions, tx)
		}
	}
	a.EndSheet(log, len(transactions))

	return transactions, nil
}

func (a *Adapter) convertRow(log logging.Logger, year string, row Row) (models.Transaction, bool, error) {
	month, err := dateutils.PrefixYear(year, row.Month)
	if err != nil {
		return models.Transaction{}, false, err
	}
	day, err := strconv.Atoi(strings.TrimSpace(row.Day))
	if err != nil {
		return models.Transaction{}, false, &parsererror.ParseError{Parser: a.Name(), Field: "day", Value: row.Day, Err: err}
	}
	amount, err := currencyutils.ParseAmount(row.Amount)
	if err != nil {
		return models.Transaction{}, false, err
	}
	if amount <= 0 {
		a.Exclude(log, parser.ReasonNonPositive, row.Merchant)
		return models.Transaction{}, false, nil
	}

	tag, freq, pay := a.Vocabulary(log, row.Tag, row.Frequency, row.Payment)
	if pay == models.PaymentUnset {
		pay = models.PaymentCash
	}

	return models.Transaction{
		Month:         month,
		Day:           day,
		Merchant:      textutils.NormalizeMerchant(row.Merchant),
		Item:          strings.TrimSpace(row.Item),
		Amount:        amount,
		Tag:           tag,
		PaymentMethod: pay,
		Frequency:     freq,
	}, true, nil
}
