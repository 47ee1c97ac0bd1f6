package fetcher

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"bujichang/spending/internal/parsererror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSheet(t *testing.T, dir, source, sheet, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, source), 0750))
	require.NoError(t, os.WriteFile(filepath.Join(dir, source, sheet+".csv"), []byte(content), 0600))
}

func TestFileFetcher_FetchSourceTable(t *testing.T) {
	dir := t.TempDir()
	writeSheet(t, dir, "cash", "2022", "\ufeff月,日,店\n8,5,全聯\n,,\n")

	f := NewFileFetcher(dir, nil)
	table, err := f.FetchSourceTable(context.Background(), "cash", "2022")
	require.NoError(t, err)
	assert.Equal(t, []string{"月", "日", "店"}, table.Header, "BOM is stripped")
	assert.Equal(t, [][]string{{"8", "5", "全聯"}}, table.Rows)
}

func TestFileFetcher_Encoding(t *testing.T) {
	dir := t.TempDir()
	writeSheet(t, dir, "legacy", "2022", "date,merchant\n2022/08/05,shop\n")

	f := NewFileFetcher(dir, nil)
	f.SetEncoding("legacy", "big5")
	table, err := f.FetchSourceTable(context.Background(), "legacy", "2022")
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"2022/08/05", "shop"}}, table.Rows)

	f.SetEncoding("legacy", "no-such-encoding")
	_, err = f.FetchSourceTable(context.Background(), "legacy", "2022")
	var fetchErr *parsererror.FetchError
	assert.True(t, errors.As(err, &fetchErr))
}

func TestFileFetcher_Missing(t *testing.T) {
	f := NewFileFetcher(t.TempDir(), nil)
	_, err := f.FetchSourceTable(context.Background(), "cash", "2022")

	var fetchErr *parsererror.FetchError
	require.True(t, errors.As(err, &fetchErr))
	assert.ErrorIs(t, err, ErrSheetNotFound)
}

func TestFileFetcher_EmptyFile(t *testing.T) {
	dir := t.TempDir()
	writeSheet(t, dir, "cash", "2022", "")

	_, err := NewFileFetcher(dir, nil).FetchSourceTable(context.Background(), "cash", "2022")
	assert.ErrorIs(t, err, ErrEmptySheet)
}
