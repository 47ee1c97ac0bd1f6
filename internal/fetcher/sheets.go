package fetcher

import (
	"context"
	"errors"
	"fmt"
	"os"

	"bujichang/spending/internal/logging"
	"bujichang/spending/internal/models"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"
)

// SheetsCredentials selects how the Sheets API client authenticates. The
// first non-empty field wins.
type SheetsCredentials struct {
	JSON   string
	File   string
	APIKey string
}

// SheetsFetcher reads spreadsheets through the Google Sheets API v4.
type SheetsFetcher struct {
	svc    *gsheet.Service
	logger logging.Logger
}

// NewSheetsFetcher creates a read-only Sheets API client.
func NewSheetsFetcher(ctx context.Context, creds SheetsCredentials, logger logging.Logger) (*SheetsFetcher, error) {
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}

	var opts []goption.ClientOption
	switch {
	case creds.JSON != "":
		opts = append(opts, goption.WithCredentialsJSON([]byte(creds.JSON)))
	case creds.File != "":
		data, err := os.ReadFile(creds.File)
		if err != nil {
			return nil, fmt.Errorf("read service account file: %w", err)
		}
		opts = append(opts, goption.WithCredentialsJSON(data))
	case creds.APIKey != "":
		opts = append(opts, goption.WithAPIKey(creds.APIKey))
	default:
		return nil, errors.New("missing sheets credentials (set sheets.credentials_json, sheets.credentials_file or sheets.api_key)")
	}
	opts = append(opts, goption.WithScopes(gsheet.SpreadsheetsReadonlyScope))

	svc, err := gsheet.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	return NewSheetsFetcherFromService(svc, logger), nil
}

// NewSheetsFetcherFromService wraps an existing service.
func NewSheetsFetcherFromService(svc *gsheet.Service, logger logging.Logger) *SheetsFetcher {
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}
	return &SheetsFetcher{svc: svc, logger: logger}
}

// FetchSourceTable reads the whole sheet as formatted values.
func (f *SheetsFetcher) FetchSourceTable(ctx context.Context, sourceID, sheetName string) (*models.RawTable, error) {
	resp, err := f.svc.Spreadsheets.Values.Get(sourceID, sheetName).
		ValueRenderOption("FORMATTED_VALUE").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fetchError(sourceID, sheetName, err)
	}

	table, err := newRawTable(sourceID, sheetName, ValuesToRecords(resp.Values))
	if err != nil {
		return nil, err
	}
	f.logger.Debug("Fetched sheet",
		logging.Field{Key: logging.FieldBackend, Value: BackendSheets},
		logging.Field{Key: logging.FieldSource, Value: sourceID},
		logging.Field{Key: logging.FieldSheet, Value: sheetName},
		logging.Field{Key: logging.FieldCount, Value: len(table.Rows)})
	return table, nil
}

// ValuesToRecords converts a Sheets API value grid to string records.
func ValuesToRecords(values [][]interface{}) [][]string {
	records := make([][]string, len(values))
	for i, row := range values {
		rec := make([]string, len(row))
		for j, cell := range row {
			if cell != nil {
				rec[j] = fmt.Sprint(cell)
			}
		}
		records[i] = rec
	}
	return records
}
