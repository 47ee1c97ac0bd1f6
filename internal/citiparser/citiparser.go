// Package citiparser reads the first credit card statement, whose dates are
// written day first (05/08/2022).
package citiparser

import (
	"bujichang/spending/internal/dateutils"
	"bujichang/spending/internal/logging"
	"bujichang/spending/internal/models"
	"bujichang/spending/internal/parser"
)

// Adapter parses card statement sheets with day-first dates.
type Adapter struct {
	parser.BaseParser
}

// NewAdapter creates the day-first card adapter.
func NewAdapter(logger logging.Logger) *Adapter {
	return &Adapter{BaseParser: parser.NewBaseParser("citi", logger)}
}

// Parse converts one statement sheet. Reversals are excluded, not negated.
func (a *Adapter) Parse(table *models.RawTable) ([]models.Transaction, error) {
	return a.ParseCardSheet(table, dateutils.DayFirst)
}
