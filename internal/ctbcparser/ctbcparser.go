// Package ctbcparser reads the bank account statement. The statement mixes
// spending with deposits, ATM withdrawals and credit card bill payments;
// ParseSpending keeps only the spending.
package ctbcparser

import (
	"strings"

	"bujichang/spending/internal/currencyutils"
	"bujichang/spending/internal/dateutils"
	"bujichang/spending/internal/logging"
	"bujichang/spending/internal/models"
	"bujichang/spending/internal/parser"
	"bujichang/spending/internal/textutils"
)

// Row is one line of the bank statement sheet.
type Row struct {
	Date      string `csv:"日期"`
	Amount    string `csv:"額"`
	Deposit   string `csv:"存入"`
	Merchant  string `csv:"店"`
	Memo      string `csv:"項"`
	Tag       string `csv:"標"`
	Frequency string `csv:"頻率"`
	Payment   string `csv:"方式"`
}

// Columns are the header names a statement sheet must carry.
var Columns = []string{"日期", "額", "存入", "店", "項", "標", "頻率", "方式"}

var (
	atmMerchants = []string{"ATM", "ＡＴＭ"}

	// Memos of transfers that settle a credit card bill; the card
	// statements already carry the underlying spending.
	cardBillKeywords = []string{"花旗銀行信用卡", "阿魚", "台新", "國泰", "渣打"}

	monthlyMemoRules = []models.MerchantRule{
		{Tag: models.TagFamily, Keywords: []string{"孝親"}},
		{Tag: models.TagRentStay, Keywords: []string{"房租"}},
	}
)

// Entry is a statement row with its fields parsed. Amount is zero for
// deposit-only rows.
type Entry struct {
	Month     string
	Day       int
	Merchant  string
	Memo      string
	Amount    int64
	Deposit   int64
	Tag       models.Tag
	Frequency models.Frequency
	Payment   models.PaymentMethod
}

// Adapter parses bank statement sheets.
type Adapter struct {
	parser.BaseParser
}

// NewAdapter creates a bank statement adapter.
func NewAdapter(logger logging.Logger) *Adapter {
	return &Adapter{BaseParser: parser.NewBaseParser("ctbc", logger)}
}

// Parse converts one statement sheet into spending transactions.
func (a *Adapter) Parse(table *models.RawTable) ([]models.Transaction, error) {
	entries, err := a.ParseStatement(table)
	if err != nil {
		return nil, err
	}

	log := a.BeginSheet(table)
	transactions := a.ParseSpending(log, entries)
	// rows dropped by ParseStatement were counted there
	a.EndSheet(log, len(transactions))
	return transactions, nil
}

// ParseStatement parses every well-formed statement row, deposits included.
func (a *Adapter) ParseStatement(table *models.RawTable) ([]Entry, error) {
	rows, err := parser.DecodeRows[Row](table, Columns)
	if err != nil {
		return nil, err
	}

	log := a.SheetLogger(table)
	entries := make([]Entry, 0, len(rows))
	for _, row := range rows {
		entry, err := a.parseEntry(log, row)
		if err != nil {
			a.Malformed(log, err)
			continue
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func (a *Adapter) parseEntry(log logging.Logger, row Row) (Entry, error) {
	month, day, err := dateutils.SplitDate(row.Date, dateutils.YearFirst)
	if err != nil {
		return Entry{}, err
	}

	var amount, deposit int64
	if currencyutils.StripCurrency(row.Amount) != "" {
		if amount, err = currencyutils.ParseAmount(row.Amount); err != nil {
			return Entry{}, err
		}
	}
	if currencyutils.StripCurrency(row.Deposit) != "" {
		if deposit, err = currencyutils.ParseAmount(row.Deposit); err != nil {
			return Entry{}, err
		}
	}

	tag, freq, pay := a.Vocabulary(log, row.Tag, row.Frequency, row.Payment)
	return Entry{
		Month:     month,
		Day:       day,
		Merchant:  strings.TrimSpace(row.Merchant),
		Memo:      strings.TrimSpace(row.Memo),
		Amount:    amount,
		Deposit:   deposit,
		Tag:       tag,
		Frequency: freq,
		Payment:   pay,
	}, nil
}

// ParseSpending filters statement entries down to spending. Deposits, ATM
// withdrawals and card bill payments are excluded; family support and rent
// transfers are tagged as monthly; the payment method defaults to digital.
func (a *Adapter) ParseSpending(log logging.Logger, entries []Entry) []models.Transaction {
	transactions := make([]models.Transaction, 0, len(entries))
	for _, e := range entries {
		switch {
		case e.Amount == 0:
			a.Exclude(log, parser.ReasonDeposit, e.Merchant)
			continue
		case e.Amount < 0:
			a.Exclude(log, parser.ReasonNonPositive, e.Merchant)
			continue
		case isATM(e.Merchant):
			a.Exclude(log, parser.ReasonATM, e.Merchant)
			continue
		}
		if _, ok := textutils.ContainsAny(e.Memo, cardBillKeywords); ok {
			a.Exclude(log, parser.ReasonCardBill, e.Memo)
			continue
		}

		tag, freq := e.Tag, e.Frequency
		for _, rule := range monthlyMemoRules {
			if _, ok := textutils.ContainsAny(e.Memo, rule.Keywords); ok {
				tag, freq = rule.Tag, models.FrequencyMonthly
				break
			}
		}
		pay := e.Payment
		if pay == models.PaymentUnset {
			pay = models.PaymentDigital
		}

		transactions = append(transactions, models.Transaction{
			Month:         e.Month,
			Day:           e.Day,
			Merchant:      textutils.NormalizeMerchant(e.Merchant),
			Item:          e.Memo,
			Amount:        e.Amount,
			Tag:           tag,
			PaymentMethod: pay,
			Frequency:     freq,
		})
	}
	return transactions
}

func isATM(merchant string) bool {
	for _, m := range atmMerchants {
		if merchant == m {
			return true
		}
	}
	return false
}
