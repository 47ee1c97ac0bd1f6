package suggest

import (
	"os"
	"path/filepath"
	"testing"

	"bujichang/spending/internal/categorizer"
	"bujichang/spending/internal/models"
	"bujichang/spending/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestFormat(t *testing.T) {
	data, err := Format(nil)
	require.NoError(t, err)
	assert.Equal(t, "# no suggestions\n", string(data))

	data, err = Format([]categorizer.Suggestion{
		{Rule: models.MerchantRule{Tag: models.TagDrink, Keywords: []string{"五十嵐", "清心"}}, Merchants: []string{"五十嵐", "清心"}},
	})
	require.NoError(t, err)

	var cfg models.RulesConfig
	require.NoError(t, yaml.Unmarshal(data, &cfg))
	require.Len(t, cfg.MerchantRules, 1)
	assert.Equal(t, models.TagDrink, cfg.MerchantRules[0].Tag)
	assert.Equal(t, []string{"五十嵐", "清心"}, cfg.MerchantRules[0].Keywords)
}

func TestSuggestCommand_Metadata(t *testing.T) {
	assert.Equal(t, "suggest", Cmd.Use)
	assert.Contains(t, Cmd.Short, "Gemini")
	assert.NotNil(t, Cmd.Flags().Lookup("input"))
	assert.NotNil(t, Cmd.Flags().Lookup("write"))
}

func TestWriteRules(t *testing.T) {
	file := filepath.Join(t.TempDir(), "rules", "rules.yaml")
	rs := store.NewRuleStore(file, nil)
	current := categorizer.DefaultMerchantRules()

	require.NoError(t, WriteRules(rs, current, nil))
	_, err := os.Stat(file)
	assert.True(t, os.IsNotExist(err), "nothing to write without suggestions")

	require.NoError(t, WriteRules(rs, current, []categorizer.Suggestion{
		{Rule: models.MerchantRule{Tag: models.TagDrink, Keywords: []string{"五十嵐"}}, Merchants: []string{"五十嵐"}},
	}))

	saved, err := rs.LoadRules()
	require.NoError(t, err)
	require.Len(t, saved, len(current)+1)
	assert.Equal(t, current[0].Tag, saved[0].Tag)
	assert.Equal(t, models.MerchantRule{Tag: models.TagDrink, Keywords: []string{"五十嵐"}}, saved[len(saved)-1])

	cat := categorizer.NewCategorizer(saved, nil)
	assert.Equal(t, models.TagDrink, cat.MerchantToTag("五十嵐"))
	assert.Equal(t, models.TagMarket, cat.MerchantToTag("全聯"))
}
