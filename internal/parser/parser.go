// Package parser defines the source adapter contract and the shared
// machinery every adapter embeds.
package parser

import "bujichang/spending/internal/models"

// Parser turns one raw sheet of a source into canonical transactions.
// Malformed rows are dropped and counted; a table whose header lacks a
// required column fails with *parsererror.InvalidFormatError.
type Parser interface {
	Parse(table *models.RawTable) ([]models.Transaction, error)
}

// StatsReporter is implemented by parsers that count what they read and drop.
type StatsReporter interface {
	Stats() Stats
}
