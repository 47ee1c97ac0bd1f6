package parser

import (
	"strings"

	"bujichang/spending/internal/currencyutils"
	"bujichang/spending/internal/dateutils"
	"bujichang/spending/internal/logging"
	"bujichang/spending/internal/models"
	"bujichang/spending/internal/textutils"
)

// CardRow is one line of a credit card statement sheet.
type CardRow struct {
	Date      string `csv:"交易日期"`
	Merchant  string `csv:"店"`
	Amount    string `csv:"額"`
	Item      string `csv:"項"`
	Tag       string `csv:"標"`
	Frequency string `csv:"頻率"`
	Payment   string `csv:"方式"`
}

// CardColumns are the header names a card statement sheet must carry.
var CardColumns = []string{"交易日期", "店", "額", "項", "標", "頻率", "方式"}

// walletKeywords mark card charges that went through a mobile wallet
// (街口, and 連加 for Line Pay).
var walletKeywords = []string{"街口", "連加"}

// CardPayment resolves the payment method of a card charge: wallet merchants
// are digital, anything else without a method is card.
func CardPayment(rawMerchant string, supplied models.PaymentMethod) models.PaymentMethod {
	if _, ok := textutils.ContainsAny(rawMerchant, walletKeywords); ok {
		return models.PaymentDigital
	}
	if supplied == models.PaymentUnset {
		return models.PaymentCard
	}
	return supplied
}

// ParseCardSheet converts a card statement sheet whose dates are in the given
// order. Reversals, marked by a leading minus, are excluded.
func (b *BaseParser) ParseCardSheet(table *models.RawTable, order dateutils.Order) ([]models.Transaction, error) {
	rows, err := DecodeRows[CardRow](table, CardColumns)
	if err != nil {
		return nil, err
	}

	log := b.BeginSheet(table)
	transactions := make([]models.Transaction, 0, len(rows))
	for _, row := range rows {
		if currencyutils.IsReversal(row.Amount) {
			b.Exclude(log, ReasonReversal, row.Merchant)
			continue
		}
		tx, keep, err := b.convertCardRow(log, row, order)
		if err != nil {
			b.Malformed(log, err)
			continue
		}
		if keep {
			transactions = append(transactions, tx)
		}
	}
	b.EndSheet(log, len(transactions))

	return transactions, nil
}

func (b *BaseParser) convertCardRow(log logging.Logger, row CardRow, order dateutils.Order) (models.Transaction, bool, error) {
	month, day, err := dateutils.SplitDate(row.Date, order)
	if err != nil {
		return models.Transaction{}, false, err
	}
	amount, err := currencyutils.ParseAmount(row.Amount)
	if err != nil {
		return models.Transaction{}, false, err
	}
	if amount <= 0 {
		b.Exclude(log, ReasonNonPositive, row.Merchant)
		return models.Transaction{}, false, nil
	}

	tag, freq, pay := b.Vocabulary(log, row.Tag, row.Frequency, row.Payment)
	return models.Transaction{
		Month:         month,
		Day:           day,
		Merchant:      textutils.NormalizeMerchant(row.Merchant),
		Item:          strings.TrimSpace(row.Item),
		Amount:        amount,
		Tag:           tag,
		PaymentMethod: CardPayment(row.Merchant, pay),
		Frequency:     freq,
	}, true, nil
}
