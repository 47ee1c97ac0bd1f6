package fetcher

import (
	"context"
	"errors"
	"testing"

	"bujichang/spending/internal/parsererror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryFetcher(t *testing.T) {
	m := NewMemoryFetcher()
	m.Put("cash", "2022", []string{"月", "日"}, []string{"8", "5"})

	table, err := m.FetchSourceTable(context.Background(), "cash", "2022")
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"8", "5"}}, table.Rows)

	table.Rows[0][0] = "mutated"
	again, err := m.FetchSourceTable(context.Background(), "cash", "2022")
	require.NoError(t, err)
	assert.Equal(t, "8", again.Rows[0][0], "callers get copies")

	_, err = m.FetchSourceTable(context.Background(), "cash", "2021")
	assert.ErrorIs(t, err, ErrSheetNotFound)

	m.Fail("cash", "2022", errors.New("network down"))
	_, err = m.FetchSourceTable(context.Background(), "cash", "2022")
	var fetchErr *parsererror.FetchError
	assert.True(t, errors.As(err, &fetchErr))
}

func TestValuesToRecords(t *testing.T) {
	records := ValuesToRecords([][]interface{}{
		{"日期", "額"},
		{"2022/08/05", float64(120)},
		{"2022/08/06", nil},
	})
	assert.Equal(t, [][]string{{"日期", "額"}, {"2022/08/05", "120"}, {"2022/08/06", ""}}, records)
}

func TestNewRawTable_Empty(t *testing.T) {
	_, err := newRawTable("id", "s", [][]string{{"", " "}})
	assert.ErrorIs(t, err, ErrEmptySheet)
}
