package models

import (
	"errors"
	"fmt"
)

// Transaction is the canonical spending record produced by the pipeline.
// CSV tags define the column set exposed to the rendering layer.
type Transaction struct {
	Month         string        `csv:"month"`
	Day           int           `csv:"day"`
	Merchant      string        `csv:"merchant"`
	Item          string        `csv:"item"`
	Amount        int64         `csv:"amount"`
	Tag           Tag           `csv:"tag"`
	Class         Class         `csv:"class"`
	PaymentMethod PaymentMethod `csv:"payment_method"`
	Frequency     Frequency     `csv:"frequency"`
	Source        string        `csv:"source"`
}

// ErrIncomplete is returned by Validate for rows missing a required field.
var ErrIncomplete = errors.New("incomplete transaction")

// Validate reports whether the transaction satisfies the canonical table
// guarantees: a month, a positive amount, and every categorical field set.
func (t Transaction) Validate() error {
	switch {
	case t.Month == "":
		return fmt.Errorf("%w: empty month", ErrIncomplete)
	case t.Amount <= 0:
		return fmt.Errorf("%w: non-positive amount %d", ErrIncomplete, t.Amount)
	case t.Tag == TagUnset:
		return fmt.Errorf("%w: empty tag", ErrIncomplete)
	case t.Class == "":
		return fmt.Errorf("%w: empty class", ErrIncomplete)
	case t.PaymentMethod == PaymentUnset:
		return fmt.Errorf("%w: empty payment method", ErrIncomplete)
	case t.Frequency == FrequencyUnset:
		return fmt.Errorf("%w: empty frequency", ErrIncomplete)
	}
	return nil
}

// String returns a short human readable form used in log lines.
func (t Transaction) String() string {
	return fmt.Sprintf("%s/%02d %s %d", t.Month, t.Day, t.Merchant, t.Amount)
}
