package parser

import (
	"fmt"
	"io"
	"strings"

	"bujichang/spending/internal/models"
	"bujichang/spending/internal/parsererror"

	"github.com/gocarina/gocsv"
)

// DecodeRows decodes the rows of table into structs whose csv tags name the
// source columns. The header must contain every required column.
func DecodeRows[TRow any](table *models.RawTable, required []string) ([]TRow, error) {
	if table == nil {
		return nil, &parsererror.InvalidFormatError{Msg: "no table"}
	}

	header := make([]string, len(table.Header))
	for i, col := range table.Header {
		header[i] = strings.TrimSpace(col)
	}
	trimmed := &models.RawTable{SourceID: table.SourceID, Sheet: table.Sheet, Header: header}
	if missing := trimmed.MissingColumns(required); len(missing) > 0 {
		return nil, &parsererror.InvalidFormatError{
			Source:  table.SourceID,
			Sheet:   table.Sheet,
			Missing: missing,
			Msg:     "required columns not found in header",
		}
	}

	var rows []TRow
	if len(table.Rows) == 0 {
		return rows, nil
	}
	if err := gocsv.UnmarshalCSV(newRecordReader(header, table.Rows), &rows); err != nil {
		return nil, &parsererror.InvalidFormatError{
			Source: table.SourceID,
			Sheet:  table.Sheet,
			Msg:    fmt.Sprintf("decoding rows: %v", err),
		}
	}
	return rows, nil
}

// recordReader serves already-split records to gocsv. Rows are padded or
// truncated to the header width.
type recordReader struct {
	records [][]string
	pos     int
}

func newRecordReader(header []string, rows [][]string) *recordReader {
	fitted := &models.RawTable{Header: header, Rows: make([][]string, len(rows))}
	for i, row := range rows {
		fitted.Rows[i] = make([]string, len(header))
		copy(fitted.Rows[i], row)
	}
	return &recordReader{records: fitted.Records()}
}

func (r *recordReader) Read() ([]string, error) {
	if r.pos >= len(r.records) {
		return nil, io.EOF
	}
	rec := r.records[r.pos]
	r.pos++
	return rec, nil
}

func (r *recordReader) ReadAll() ([][]string, error) {
	rest := r.records[r.pos:]
	r.pos = len(r.records)
	return rest, nil
}
