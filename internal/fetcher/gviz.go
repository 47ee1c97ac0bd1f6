package fetcher

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"bujichang/spending/internal/logging"
	"bujichang/spending/internal/models"
)

// DefaultGvizEndpoint is the spreadsheet document root.
const DefaultGvizEndpoint = "https://docs.google.com/spreadsheets/d"

// GvizFetcher reads published spreadsheets through the visualization CSV
// export, without credentials.
type GvizFetcher struct {
	endpoint string
	client   *http.Client
	logger   logging.Logger
}

// NewGvizFetcher creates a GvizFetcher. An empty endpoint uses the public
// document root; a zero timeout means no client timeout.
func NewGvizFetcher(endpoint string, timeout time.Duration, logger logging.Logger) *GvizFetcher {
	if endpoint == "" {
		endpoint = DefaultGvizEndpoint
	}
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}
	return &GvizFetcher{
		endpoint: strings.TrimRight(endpoint, "/"),
		client:   &http.Client{Timeout: timeout},
		logger:   logger,
	}
}

// SheetURL returns the CSV export URL of one sheet.
func (f *GvizFetcher) SheetURL(sourceID, sheetName string) string {
	q := url.Values{}
	q.Set("tqx", "out:csv")
	q.Set("sheet", sheetName)
	return fmt.Sprintf("%s/%s/gviz/tq?%s", f.endpoint, url.PathEscape(sourceID), q.Encode())
}

// FetchSourceTable downloads and decodes one sheet.
func (f *GvizFetcher) FetchSourceTable(ctx context.Context, sourceID, sheetName string) (*models.RawTable, error) {
	start := time.Now()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.SheetURL(sourceID, sheetName), nil)
	if err != nil {
		return nil, fetchError(sourceID, sheetName, err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fetchError(sourceID, sheetName, err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			f.logger.WithError(err).Warn("Failed to close response body")
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, fetchError(sourceID, sheetName, fmt.Errorf("unexpected status %s", resp.Status))
	}
	// unpublished sheets answer 200 with a sign-in page
	if strings.Contains(resp.Header.Get("Content-Type"), "text/html") {
		return nil, fetchError(sourceID, sheetName, fmt.Errorf("sheet is not published (got an HTML page)"))
	}

	table, err := readCSVTable(resp.Body, sourceID, sheetName)
	if err != nil {
		return nil, err
	}

	f.logger.Debug("Fetched sheet",
		logging.Field{Key: logging.FieldBackend, Value: BackendGviz},
		logging.Field{Key: logging.FieldSource, Value: sourceID},
		logging.Field{Key: logging.FieldSheet, Value: sheetName},
		logging.Field{Key: logging.FieldCount, Value: len(table.Rows)},
		logging.Field{Key: logging.FieldDuration, Value: time.Since(start).Milliseconds()})
	return table, nil
}
