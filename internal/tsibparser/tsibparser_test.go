package tsibparser

import (
	"testing"

	"bujichang/spending/internal/logging"
	"bujichang/spending/internal/models"
	"bujichang/spending/internal/parser"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdapter_Parse(t *testing.T) {
	adapter := NewAdapter(logging.NewMockLogger())

	txs, err := adapter.Parse(&models.RawTable{
		SourceID: "tsib-sheet",
		Sheet:    "2022",
		Header:   parser.CardColumns,
		Rows: [][]string{
			{"2022/8/5", "宜得利家居", "3,990", "收納櫃", "", "", ""},
			{"2022/8/9", "宜得利家居", "-3,990", "退貨", "", "", ""},
			{"2022/11/30", "連加＊麥當勞", "150", "", "", "", ""},
			{"2022", "缺日", "100", "", "", "", ""},
		},
	})
	require.NoError(t, err)
	require.Len(t, txs, 2)

	assert.Equal(t, "2022/08", txs[0].Month)
	assert.Equal(t, 5, txs[0].Day)
	assert.Equal(t, models.PaymentCard, txs[0].PaymentMethod)

	assert.Equal(t, "2022/11", txs[1].Month)
	assert.Equal(t, 30, txs[1].Day)
	assert.Equal(t, models.PaymentDigital, txs[1].PaymentMethod)

	assert.Equal(t, parser.Stats{Sheets: 1, Rows: 4, Kept: 2, Excluded: 1, Malformed: 1}, adapter.Stats())
}
