package batch

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"testing"

	"bujichang/spending/internal/categorizer"
	"bujichang/spending/internal/logging"
	"bujichang/spending/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// cryptoRandIntn returns a random int in [0, n) using crypto/rand
func cryptoRandIntn(n int) int {
	if n <= 0 {
		return 0
	}
	result, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		return 0
	}
	return int(result.Int64())
}

func newTestAggregator() (*Aggregator, *logging.MockLogger) {
	mockLog := logging.NewMockLogger()
	return NewAggregator(categorizer.NewCategorizer(nil, mockLog), mockLog), mockLog
}

func TestAggregate_FillsDefaults(t *testing.T) {
	agg, _ := newTestAggregator()

	table := agg.Aggregate([][]models.Transaction{{
		{Month: "2022/08", Day: 5, Merchant: "全聯福利中心", Amount: 350},
	}})
	require.Len(t, table, 1)

	tx := table[0]
	assert.Equal(t, models.TagMarket, tx.Tag)
	assert.Equal(t, models.ClassCook, tx.Class)
	assert.Equal(t, models.FrequencyOnce, tx.Frequency)
	assert.Equal(t, models.PaymentCash, tx.PaymentMethod)
	assert.NoError(t, tx.Validate())
}

func TestAggregate_SuppliedTagWins(t *testing.T) {
	agg, _ := newTestAggregator()

	table := agg.Aggregate([][]models.Transaction{{
		{Month: "2022/08", Day: 5, Merchant: "全聯", Amount: 350, Tag: models.TagBake, Class: models.ClassFun},
	}})
	require.Len(t, table, 1)
	assert.Equal(t, models.TagBake, table[0].Tag)
	assert.Equal(t, models.ClassCook, table[0].Class, "class is always recomputed from the tag")
}

func TestAggregate_UnmatchedMerchantGetsSentinel(t *testing.T) {
	agg, _ := newTestAggregator()

	table := agg.Aggregate([][]models.Transaction{{
		{Month: "2022/08", Day: 5, Merchant: "路易莎", Amount: 85},
	}})
	require.Len(t, table, 1)
	assert.Equal(t, models.TagNone, table[0].Tag)
	assert.Equal(t, models.ClassOther, table[0].Class)
}

func TestAggregate_TopUpOverridesFrequency(t *testing.T) {
	agg, _ := newTestAggregator()

	table := agg.Aggregate([][]models.Transaction{{
		{Month: "2022/08", Day: 5, Merchant: "悠遊卡", Item: "悠遊卡儲值", Amount: 500},
		{Month: "2022/08", Day: 6, Merchant: "悠遊付", Item: "自動儲值", Amount: 500, Frequency: models.FrequencyMonthly},
	}})
	require.Len(t, table, 2)
	for _, tx := range table {
		assert.Equal(t, models.FrequencyTopUp, tx.Frequency)
	}
}

func TestAggregate_GroupsAndStablySorts(t *testing.T) {
	agg, _ := newTestAggregator()

	cash := []models.Transaction{
		{Month: "2022/09", Day: 1, Merchant: "A", Amount: 1, Source: "cash"},
		{Month: "2022/08", Day: 20, Merchant: "B", Amount: 2, Source: "cash"},
		{Month: "2022/08", Day: 3, Merchant: "C", Amount: 3, Source: "cash"},
	}
	card := []models.Transaction{
		{Month: "2022/08", Day: 3, Merchant: "D", Amount: 4, Source: "card"},
		{Month: "2022/08", Day: 20, Merchant: "E", Amount: 5, Source: "card"},
	}

	table := agg.Aggregate([][]models.Transaction{cash, card})
	var got []string
	for _, tx := range table {
		got = append(got, tx.Merchant)
	}
	assert.Equal(t, []string{"C", "D", "B", "E", "A"}, got, "ties keep source order")
	assert.Equal(t, []string{"2022/08", "2022/09"}, AvailableMonths(table))
}

func TestAggregate_DoesNotModifyInputs(t *testing.T) {
	agg, _ := newTestAggregator()

	out := []models.Transaction{{Month: "2022/08", Day: 5, Merchant: "全聯", Amount: 350}}
	agg.Aggregate([][]models.Transaction{out})

	assert.Equal(t, models.TagUnset, out[0].Tag)
	assert.Equal(t, models.Class(""), out[0].Class)
}

func TestAggregate_DropsIncompleteRows(t *testing.T) {
	agg, mockLog := newTestAggregator()

	table := agg.Aggregate([][]models.Transaction{{
		{Month: "2022/08", Day: 5, Merchant: "A", Amount: 0},
		{Month: "2022/08", Day: 5, Merchant: "B", Amount: -10},
		{Month: "2022/08", Day: 5, Merchant: "C", Amount: 10},
		{Month: "", Day: 5, Merchant: "D", Amount: 10},
	}})
	require.Len(t, table, 1)
	assert.Equal(t, "C", table[0].Merchant)
	assert.Len(t, mockLog.GetEntriesByLevel("WARN"), 3)
}

func TestAggregate_EmptyInput(t *testing.T) {
	agg, _ := newTestAggregator()
	assert.Empty(t, agg.Aggregate(nil))
	assert.Empty(t, AvailableMonths(nil))
}

func TestFindPossibleDuplicates(t *testing.T) {
	agg, mockLog := newTestAggregator()

	table := []models.Transaction{
		{Month: "2022/08", Day: 5, Merchant: "全聯福利中心", Amount: 350, Source: "cash"},
		{Month: "2022/08", Day: 5, Merchant: "全聯福利中心新莊", Amount: 350, Source: "citi"},
		{Month: "2022/08", Day: 5, Merchant: "全聯福利", Amount: 350, Source: "tsib"},
		{Month: "2022/08", Day: 5, Merchant: "全聯福利中心", Amount: 350, Source: "cash"},
		{Month: "2022/08", Day: 5, Merchant: "家樂福", Amount: 350, Source: "ctbc"},
		{Month: "2022/08", Day: 6, Merchant: "全聯福利中心", Amount: 350, Source: "ctbc"},
	}

	pairs := agg.FindPossibleDuplicates(table)
	assert.Equal(t, []DuplicatePair{
		{First: 0, Second: 1, Distance: 2},
		{First: 0, Second: 2, Distance: 2},
		{First: 1, Second: 3, Distance: 2},
		{First: 2, Second: 3, Distance: 2},
	}, pairs, "same-source pairs and distant merchants are not reported")
	assert.Len(t, mockLog.GetEntriesByLevel("WARN"), 4)
}

// Property: every aggregated row carries class == TagToClass(tag), a positive
// amount and non-empty categorical fields, whatever the inputs.
func TestProperty_AggregatedRowsAreComplete(t *testing.T) {
	agg := NewAggregator(categorizer.NewCategorizer(nil, nil), nil)
	merchants := []string{"全聯", "星巴克", "路易莎", "中油", "", "必勝客"}
	tags := append([]models.Tag{models.TagUnset}, models.AllTags()...)
	freqs := append([]models.Frequency{models.FrequencyUnset}, models.AllFrequencies()...)
	pays := append([]models.PaymentMethod{models.PaymentUnset}, models.AllPaymentMethods()...)
	items := []string{"", "儲值", "午餐"}

	for i := 0; i < 100; i++ {
		t.Run(fmt.Sprintf("iteration_%d", i), func(t *testing.T) {
			var outputs [][]models.Transaction
			for s := 0; s < cryptoRandIntn(4)+1; s++ {
				var out []models.Transaction
				for r := 0; r < cryptoRandIntn(20); r++ {
					out = append(out, models.Transaction{
						Month:         fmt.Sprintf("2022/%02d", cryptoRandIntn(12)+1),
						Day:           cryptoRandIntn(28) + 1,
						Merchant:      merchants[cryptoRandIntn(len(merchants))],
						Item:          items[cryptoRandIntn(len(items))],
						Amount:        int64(cryptoRandIntn(2000) - 100),
						Tag:           tags[cryptoRandIntn(len(tags))],
						Class:         models.ClassFun,
						Frequency:     freqs[cryptoRandIntn(len(freqs))],
						PaymentMethod: pays[cryptoRandIntn(len(pays))],
					})
				}
				outputs = append(outputs, out)
			}

			table := agg.Aggregate(outputs)
			for i, tx := range table {
				require.NoError(t, tx.Validate())
				assert.Equal(t, models.TagToClass(tx.Tag), tx.Class)
				if i > 0 {
					prev := table[i-1]
					assert.True(t, prev.Month < tx.Month || (prev.Month == tx.Month && prev.Day <= tx.Day))
				}
			}
		})
	}
}
