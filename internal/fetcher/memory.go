package fetcher

import (
	"context"
	"sync"

	"bujichang/spending/internal/models"
)

// MemoryFetcher serves tables held in memory. It is safe for concurrent use.
type MemoryFetcher struct {
	mu     sync.RWMutex
	tables map[string]*models.RawTable
	errs   map[string]error
}

// NewMemoryFetcher creates an empty MemoryFetcher.
func NewMemoryFetcher() *MemoryFetcher {
	return &MemoryFetcher{
		tables: make(map[string]*models.RawTable),
		errs:   make(map[string]error),
	}
}

func memoryKey(sourceID, sheet string) string {
	return sourceID + "\x00" + sheet
}

// Put stores a sheet.
func (m *MemoryFetcher) Put(sourceID, sheet string, header []string, rows ...[]string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tables[memoryKey(sourceID, sheet)] = &models.RawTable{
		SourceID: sourceID,
		Sheet:    sheet,
		Header:   append([]string(nil), header...),
		Rows:     copyRows(rows),
	}
}

// Fail makes every fetch of a sheet fail with err.
func (m *MemoryFetcher) Fail(sourceID, sheet string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errs[memoryKey(sourceID, sheet)] = err
}

// FetchSourceTable returns a copy of the stored sheet.
func (m *MemoryFetcher) FetchSourceTable(ctx context.Context, sourceID, sheetName string) (*models.RawTable, error) {
	if err := ctx.Err(); err != nil {
		return nil, fetchError(sourceID, sheetName, err)
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	key := memoryKey(sourceID, sheetName)
	if err, ok := m.errs[key]; ok {
		return nil, fetchError(sourceID, sheetName, err)
	}
	t, ok := m.tables[key]
	if !ok {
		return nil, fetchError(sourceID, sheetName, ErrSheetNotFound)
	}
	return &models.RawTable{
		SourceID: t.SourceID,
		Sheet:    t.Sheet,
		Header:   append([]string(nil), t.Header...),
		Rows:     copyRows(t.Rows),
	}, nil
}

func copyRows(rows [][]string) [][]string {
	out := make([][]string, len(rows))
	for i, r := range rows {
		out[i] = append([]string(nil), r...)
	}
	return out
}
