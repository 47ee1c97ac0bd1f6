// Package fetcher retrieves raw source sheets. Every backend returns a
// *parsererror.FetchError on failure; what to do about a failed source is
// the caller's decision.
package fetcher

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"bujichang/spending/internal/models"
	"bujichang/spending/internal/parsererror"
)

// Backend names accepted in configuration.
const (
	BackendGviz   = "gviz"
	BackendSheets = "sheets"
	BackendFile   = "file"
	BackendMemory = "memory"
)

var (
	// ErrSheetNotFound is wrapped when a backend has no such sheet.
	ErrSheetNotFound = errors.New("sheet not found")
	// ErrEmptySheet is wrapped when a sheet has no header row.
	ErrEmptySheet = errors.New("sheet has no header row")
)

// Fetcher returns the raw table of one sheet of one source.
type Fetcher interface {
	FetchSourceTable(ctx context.Context, sourceID, sheetName string) (*models.RawTable, error)
}

func fetchError(sourceID, sheet string, err error) error {
	return &parsererror.FetchError{Source: sourceID, Sheet: sheet, Err: err}
}

// readCSVTable decodes CSV text into a RawTable. Rows may have any width;
// rows with only blank cells are skipped.
func readCSVTable(r io.Reader, sourceID, sheet string) (*models.RawTable, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fetchError(sourceID, sheet, fmt.Errorf("decoding csv: %w", err))
	}
	return newRawTable(sourceID, sheet, records)
}

func newRawTable(sourceID, sheet string, records [][]string) (*models.RawTable, error) {
	if len(records) == 0 || isBlank(records[0]) {
		return nil, fetchError(sourceID, sheet, ErrEmptySheet)
	}

	header := make([]string, len(records[0]))
	for i, col := range records[0] {
		header[i] = strings.TrimSpace(strings.TrimPrefix(col, "\ufeff"))
	}

	rows := make([][]string, 0, len(records)-1)
	for _, rec := range records[1:] {
		if isBlank(rec) {
			continue
		}
		rows = append(rows, rec)
	}

	return &models.RawTable{SourceID: sourceID, Sheet: sheet, Header: header, Rows: rows}, nil
}

func isBlank(record []string) bool {
	for _, cell := range record {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
