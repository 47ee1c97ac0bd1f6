// Package common provides CSV input and output of the canonical table.
package common

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"bujichang/spending/internal/logging"
	"bujichang/spending/internal/models"

	"github.com/gocarina/gocsv"
)

// DefaultDelimiter separates columns when none is configured.
const DefaultDelimiter = ','

// CSVWriter writes and reads the canonical table as delimited text, one
// column per Transaction field in declaration order.
type CSVWriter struct {
	delimiter rune
	logger    logging.Logger
}

// NewCSVWriter creates a CSVWriter. A zero delimiter means DefaultDelimiter.
func NewCSVWriter(delimiter rune, logger logging.Logger) *CSVWriter {
	if delimiter == 0 {
		delimiter = DefaultDelimiter
	}
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}
	return &CSVWriter{delimiter: delimiter, logger: logger}
}

// Delimiter returns the column separator.
func (c *CSVWriter) Delimiter() rune {
	return c.delimiter
}

// WriteTransactions writes a header row followed by one row per transaction.
func (c *CSVWriter) WriteTransactions(w io.Writer, transactions []models.Transaction) error {
	if transactions == nil {
		return fmt.Errorf("cannot write nil transactions to CSV")
	}

	csvWriter := csv.NewWriter(w)
	csvWriter.Comma = c.delimiter
	if err := gocsv.MarshalCSV(transactions, gocsv.NewSafeCSVWriter(csvWriter)); err != nil {
		return fmt.Errorf("error writing CSV data: %w", err)
	}
	return nil
}

// WriteTransactionsToCSV writes transactions to csvFile, creating its
// directory if needed.
func (c *CSVWriter) WriteTransactionsToCSV(transactions []models.Transaction, csvFile string) error {
	log := c.logger.WithFields(
		logging.Field{Key: logging.FieldFile, Value: csvFile},
		logging.Field{Key: logging.FieldCount, Value: len(transactions)})
	log.Info("Writing transactions to CSV file")

	dir := filepath.Dir(csvFile)
	if err := os.MkdirAll(dir, models.PermissionDirectory); err != nil {
		log.WithError(err).Error("Failed to create directory")
		return fmt.Errorf("error creating directory: %w", err)
	}

	file, err := os.OpenFile(csvFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, models.PermissionOutputFile) // #nosec G304 -- output path chosen by the user
	if err != nil {
		log.WithError(err).Error("Failed to create CSV file")
		return fmt.Errorf("error creating CSV file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			log.WithError(err).Warn("Failed to close file")
		}
	}()

	if err := c.WriteTransactions(file, transactions); err != nil {
		log.WithError(err).Error("Failed to marshal transactions to CSV")
		return err
	}

	log.Info("Successfully wrote transactions to CSV file")
	return nil
}

// ReadTransactions reads a table written by WriteTransactions, possibly
// edited by hand. Categorical values are mapped back onto the vocabularies;
// the rows still need aggregating before they form a canonical table.
func (c *CSVWriter) ReadTransactions(r io.Reader) ([]models.Transaction, error) {
	csvReader := csv.NewReader(r)
	csvReader.Comma = c.delimiter

	var transactions []models.Transaction
	if err := gocsv.UnmarshalCSV(csvReader, &transactions); err != nil {
		return nil, fmt.Errorf("error parsing CSV data: %w", err)
	}
	for i := range transactions {
		c.mapVocabulary(&transactions[i], i+2)
	}
	return transactions, nil
}

// mapVocabulary maps slugs or ledger labels of an edited file back onto the
// vocabularies. Unknown values become the sentinel or unset; class is left
// for the aggregator to recompute.
func (c *CSVWriter) mapVocabulary(tx *models.Transaction, line int) {
	warn := func(column, value string) {
		c.logger.Warn("Unknown vocabulary value in CSV",
			logging.Field{Key: "line", Value: line},
			logging.Field{Key: "column", Value: column},
			logging.Field{Key: "value", Value: value})
	}

	tag, ok := models.ParseTag(string(tx.Tag))
	if !ok {
		warn("tag", string(tx.Tag))
	}
	tx.Tag = tag
	tx.Class = models.TagToClass(tag)

	payment, ok := models.ParsePaymentMethod(string(tx.PaymentMethod))
	if !ok {
		warn("payment_method", string(tx.PaymentMethod))
	}
	tx.PaymentMethod = payment

	frequency, ok := models.ParseFrequency(string(tx.Frequency))
	if !ok {
		warn("frequency", string(tx.Frequency))
	}
	tx.Frequency = frequency
}

// ReadTransactionsFromCSV reads a table previously exported to csvFile.
func (c *CSVWriter) ReadTransactionsFromCSV(csvFile string) ([]models.Transaction, error) {
	log := c.logger.WithField(logging.FieldFile, csvFile)

	file, err := os.Open(csvFile) // #nosec G304 -- input path chosen by the user
	if err != nil {
		log.WithError(err).Error("Failed to open CSV file")
		return nil, fmt.Errorf("error opening CSV file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			log.WithError(err).Warn("Failed to close file")
		}
	}()

	transactions, err := c.ReadTransactions(file)
	if err != nil {
		return nil, err
	}
	log.Debug("Read transactions from CSV file", logging.Field{Key: logging.FieldCount, Value: len(transactions)})
	return transactions, nil
}
