// Package common contains shared functionality for command handlers
package common

import (
	"context"

	"bujichang/spending/internal/container"
	"bujichang/spending/internal/logging"
	"bujichang/spending/internal/models"
)

// LoadTransactions returns the canonical table: read back from inputFile
// and re-aggregated when one is given, otherwise loaded from the configured
// sources. Failed
// sources of a partial load are logged as warnings.
func LoadTransactions(ctx context.Context, c *container.Container, inputFile string) ([]models.Transaction, error) {
	log := c.GetLogger()
	if inputFile != "" {
		rows, err := c.GetCSVWriter().ReadTransactionsFromCSV(inputFile)
		if err != nil {
			return nil, err
		}
		return c.GetAggregator().Aggregate([][]models.Transaction{rows}), nil
	}

	result, err := c.GetLoader().Load(ctx)
	if err != nil {
		return nil, err
	}
	for _, failure := range result.Failures {
		log.Warn("Source skipped", logging.Field{Key: logging.FieldError, Value: failure.Error()})
	}
	return result.Transactions, nil
}
