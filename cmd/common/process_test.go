package common

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"bujichang/spending/internal/config"
	"bujichang/spending/internal/container"
	"bujichang/spending/internal/fetcher"
	"bujichang/spending/internal/logging"
	"bujichang/spending/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestContainer(t *testing.T) *container.Container {
	t.Helper()
	cfg := &config.Config{}
	cfg.CSV.Delimiter = ","
	cfg.Fetch.Backend = fetcher.BackendMemory
	cfg.Load.Policy = config.PolicyAbort
	cfg.Load.Concurrency = 1
	cfg.Rules.File = filepath.Join(t.TempDir(), "rules.yaml")
	c, err := container.NewContainerWithLogger(context.Background(), cfg, logging.NewMockLogger())
	require.NoError(t, err)
	return c
}

func TestLoadTransactions_EditedInputIsCanonical(t *testing.T) {
	c := newTestContainer(t)
	input := filepath.Join(t.TempDir(), "table.csv")
	require.NoError(t, os.WriteFile(input, []byte(
		"month,day,merchant,item,amount,tag,class,payment_method,frequency,source\n"+
			"2022/08,5,全聯,,-50,market,fun,,weekly,cash\n"+
			"2022/08,9,全聯,,300,,fun,,weekly,cash\n"+
			"2022/08,7,星巴克,,120,drink,rent,card,monthly,tsib\n"+
			",3,路易莎,,80,drink,fun,card,monthly,tsib\n"), models.PermissionOutputFile))

	table, err := LoadTransactions(context.Background(), c, input)
	require.NoError(t, err)
	require.Len(t, table, 2)

	for _, tx := range table {
		require.NoError(t, tx.Validate())
		assert.Equal(t, models.TagToClass(tx.Tag), tx.Class)
	}
	assert.Equal(t, "星巴克", table[0].Merchant, "rows are re-sorted by day")
	assert.Equal(t, models.ClassDineOut, table[0].Class)
	assert.Equal(t, models.TagMarket, table[1].Tag, "empty tags come from the merchant rules")
	assert.Equal(t, models.PaymentCash, table[1].PaymentMethod)
	assert.Equal(t, models.FrequencyOnce, table[1].Frequency)
}

func TestLoadTransactions_FromSources(t *testing.T) {
	c := newTestContainer(t)
	table, err := LoadTransactions(context.Background(), c, "")
	require.NoError(t, err)
	assert.Empty(t, table)
}

func TestLoadTransactions_MissingInput(t *testing.T) {
	_, err := LoadTransactions(context.Background(), newTestContainer(t), filepath.Join(t.TempDir(), "missing.csv"))
	assert.Error(t, err)
}
