package parser

import (
	"testing"

	"bujichang/spending/internal/dateutils"
	"bujichang/spending/internal/logging"
	"bujichang/spending/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCardPayment(t *testing.T) {
	assert.Equal(t, models.PaymentDigital, CardPayment("街口支付－早餐店", models.PaymentUnset))
	assert.Equal(t, models.PaymentDigital, CardPayment("連加＊星巴克", models.PaymentCard))
	assert.Equal(t, models.PaymentCard, CardPayment("全聯", models.PaymentUnset))
	assert.Equal(t, models.PaymentCash, CardPayment("全聯", models.PaymentCash))
}

func TestParseCardSheet(t *testing.T) {
	base := NewBaseParser("card", logging.NewMockLogger())

	txs, err := base.ParseCardSheet(&models.RawTable{
		SourceID: "card",
		Sheet:    "2022",
		Header:   CardColumns,
		Rows: [][]string{
			{"05/08/2022", "連加＊路易莎", "1,234.00", "", "", "", ""},
			{"06/08/2022", "退款", "-1,234.00", "", "", "", ""},
			{"07/08/2022", "全聯", "0", "", "", "", ""},
			{"2022", "全聯", "100", "", "", "", ""},
		},
	}, dateutils.DayFirst)
	require.NoError(t, err)
	require.Len(t, txs, 1)

	assert.Equal(t, "2022/08", txs[0].Month)
	assert.Equal(t, 5, txs[0].Day)
	assert.Equal(t, int64(1234), txs[0].Amount)
	assert.Equal(t, models.PaymentDigital, txs[0].PaymentMethod)
	assert.Equal(t, Stats{Sheets: 1, Rows: 4, Kept: 1, Excluded: 2, Malformed: 1}, base.Stats())
}
