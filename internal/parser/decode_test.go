package parser

import (
	"errors"
	"testing"

	"bujichang/spending/internal/models"
	"bujichang/spending/internal/parsererror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleRow struct {
	Date     string `csv:"日期"`
	Merchant string `csv:"店"`
	Amount   string `csv:"額"`
}

func TestDecodeRows(t *testing.T) {
	table := &models.RawTable{
		SourceID: "sheet-1",
		Sheet:    "2022",
		Header:   []string{" 日期", "店", "額", "備註"},
		Rows: [][]string{
			{"2022/08/05", "全聯", "120", "ignored"},
			{"2022/08/06", "星巴克"},
		},
	}

	rows, err := DecodeRows[sampleRow](table, []string{"日期", "店", "額"})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, sampleRow{Date: "2022/08/05", Merchant: "全聯", Amount: "120"}, rows[0])
	assert.Equal(t, sampleRow{Date: "2022/08/06", Merchant: "星巴克"}, rows[1], "short rows are padded")
}

func TestDecodeRows_MissingColumns(t *testing.T) {
	table := &models.RawTable{
		SourceID: "sheet-1",
		Sheet:    "2022",
		Header:   []string{"日期", "店"},
		Rows:     [][]string{{"2022/08/05", "全聯"}},
	}

	_, err := DecodeRows[sampleRow](table, []string{"日期", "店", "額"})
	var formatErr *parsererror.InvalidFormatError
	require.True(t, errors.As(err, &formatErr))
	assert.Equal(t, []string{"額"}, formatErr.Missing)
	assert.Equal(t, "sheet-1", formatErr.Source)
}

func TestDecodeRows_EmptyAndNil(t *testing.T) {
	rows, err := DecodeRows[sampleRow](&models.RawTable{Header: []string{"日期", "店", "額"}}, []string{"日期"})
	require.NoError(t, err)
	assert.Empty(t, rows)

	_, err = DecodeRows[sampleRow](nil, nil)
	var formatErr *parsererror.InvalidFormatError
	assert.True(t, errors.As(err, &formatErr))
}
