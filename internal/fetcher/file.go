package fetcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"bujichang/spending/internal/logging"
	"bujichang/spending/internal/models"

	"golang.org/x/net/html/charset"
)

// FileFetcher reads sheets exported as CSV files laid out as
// {dataDir}/{sourceID}/{sheet}.csv.
type FileFetcher struct {
	dataDir   string
	encodings map[string]string
	logger    logging.Logger
}

// NewFileFetcher creates a FileFetcher rooted at dataDir.
func NewFileFetcher(dataDir string, logger logging.Logger) *FileFetcher {
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}
	return &FileFetcher{dataDir: dataDir, encodings: make(map[string]string), logger: logger}
}

// SetEncoding declares the text encoding of a source's files, e.g. "big5".
// Files of sources without one are read as UTF-8.
func (f *FileFetcher) SetEncoding(sourceID, label string) {
	f.encodings[sourceID] = label
}

// SheetPath returns the file backing a sheet.
func (f *FileFetcher) SheetPath(sourceID, sheetName string) string {
	return filepath.Join(f.dataDir, sourceID, sheetName+".csv")
}

// FetchSourceTable reads and decodes one sheet file.
func (f *FileFetcher) FetchSourceTable(ctx context.Context, sourceID, sheetName string) (*models.RawTable, error) {
	if err := ctx.Err(); err != nil {
		return nil, fetchError(sourceID, sheetName, err)
	}

	path := f.SheetPath(sourceID, sheetName)
	file, err := os.Open(path) // #nosec G304 -- path is built from configured data dir
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fetchError(sourceID, sheetName, fmt.Errorf("%w: %s", ErrSheetNotFound, path))
		}
		return nil, fetchError(sourceID, sheetName, err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			f.logger.WithError(err).Warn("Failed to close file")
		}
	}()

	var r io.Reader = file
	if label := f.encodings[sourceID]; label != "" {
		r, err = charset.NewReaderLabel(label, file)
		if err != nil {
			return nil, fetchError(sourceID, sheetName, fmt.Errorf("encoding %q: %w", label, err))
		}
	}

	table, err := readCSVTable(r, sourceID, sheetName)
	if err != nil {
		return nil, err
	}
	f.logger.Debug("Fetched sheet",
		logging.Field{Key: logging.FieldBackend, Value: BackendFile},
		logging.Field{Key: logging.FieldFile, Value: path},
		logging.Field{Key: logging.FieldCount, Value: len(table.Rows)})
	return table, nil
}
