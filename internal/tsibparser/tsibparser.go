// Package tsibparser reads the second credit card statement, whose dates are
// written year first (2022/8/5).
package tsibparser

import (
	"bujichang/spending/internal/dateutils"
	"bujichang/spending/internal/logging"
	"bujichang/spending/internal/models"
	"bujichang/spending/internal/parser"
)

// Adapter parses card statement sheets with year-first dates.
type Adapter struct {
	parser.BaseParser
}

// NewAdapter creates the year-first card adapter.
func NewAdapter(logger logging.Logger) *Adapter {
	return &Adapter{BaseParser: parser.NewBaseParser("tsib", logger)}
}

// Parse converts one statement sheet. Negative amounts are excluded.
func (a *Adapter) Parse(table *models.RawTable) ([]models.Transaction, error) {
	return a.ParseCardSheet(table, dateutils.YearFirst)
}
