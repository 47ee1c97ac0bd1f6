package parser

import (
	"errors"

	"bujichang/spending/internal/logging"
	"bujichang/spending/internal/models"
	"bujichang/spending/internal/parsererror"
)

// BaseParser carries the logger and the row counters shared by all source
// adapters. Adapters embed it:
//
//	type Adapter struct {
//		parser.BaseParser
//	}
//
// A BaseParser is not safe for concurrent use; each source gets its own.
type BaseParser struct {
	name   string
	logger logging.Logger
	stats  Stats
}

// NewBaseParser creates a BaseParser. A nil logger discards output.
func NewBaseParser(name string, logger logging.Logger) BaseParser {
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}
	return BaseParser{name: name, logger: logger}
}

// SetLogger replaces the logger; nil is ignored.
func (b *BaseParser) SetLogger(logger logging.Logger) {
	if logger != nil {
		b.logger = logger
	}
}

// GetLogger returns the current logger.
func (b *BaseParser) GetLogger() logging.Logger {
	return b.logger
}

// Name returns the adapter name used in log fields.
func (b *BaseParser) Name() string {
	return b.name
}

// Stats returns the counters accumulated so far.
func (b *BaseParser) Stats() Stats {
	return b.stats
}

// BeginSheet counts a new sheet and returns a logger scoped to it.
func (b *BaseParser) BeginSheet(table *models.RawTable) logging.Logger {
	b.stats.Sheets++
	b.stats.Rows += len(table.Rows)
	return b.SheetLogger(table)
}

// SheetLogger returns a logger scoped to the adapter and table without
// counting the sheet.
func (b *BaseParser) SheetLogger(table *models.RawTable) logging.Logger {
	return logging.WithSource(b.logger.WithField(logging.FieldParser, b.name), table.SourceID, table.Sheet)
}

// EndSheet logs the sheet summary.
func (b *BaseParser) EndSheet(log logging.Logger, kept int) {
	b.stats.Kept += kept
	log.Debug("Parsed sheet", logging.Field{Key: logging.FieldCount, Value: kept})
}

// Exclude counts a well-formed row that is not spending.
func (b *BaseParser) Exclude(log logging.Logger, reason string, raw string) {
	b.stats.Excluded++
	log.Debug("Excluded row",
		logging.Field{Key: logging.FieldReason, Value: reason},
		logging.Field{Key: logging.FieldMerchant, Value: raw})
}

// Malformed counts a row dropped because a field failed to parse. err is
// expected to be a *parsererror.ParseError; other errors are wrapped in one.
func (b *BaseParser) Malformed(log logging.Logger, err error) {
	b.stats.Malformed++
	var parseErr *parsererror.ParseError
	if !errors.As(err, &parseErr) {
		parseErr = &parsererror.ParseError{Parser: b.name, Field: "row", Err: err}
	}
	log.WithError(parseErr).Debug("Dropped malformed row")
}

// Vocabulary parses the optional categorical columns of a row. Unknown values
// are kept as their sentinel and logged; they never drop the row.
func (b *BaseParser) Vocabulary(log logging.Logger, tag, frequency, payment string) (models.Tag, models.Frequency, models.PaymentMethod) {
	t, ok := models.ParseTag(tag)
	if !ok {
		log.Warn("Unknown tag value", logging.Field{Key: logging.FieldTag, Value: tag})
	}
	f, ok := models.ParseFrequency(frequency)
	if !ok {
		log.Warn("Unknown frequency value", logging.Field{Key: "frequency", Value: frequency})
	}
	p, ok := models.ParsePaymentMethod(payment)
	if !ok {
		log.Warn("Unknown payment method value", logging.Field{Key: "payment_method", Value: payment})
	}
	return t, f, p
}
