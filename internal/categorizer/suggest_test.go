package categorizer

import (
	"context"
	"errors"
	"testing"

	"bujichang/spending/internal/logging"
	"bujichang/spending/internal/models"
	"bujichang/spending/internal/parsererror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mapSuggester struct {
	answers map[string]models.Tag
	errs    map[string]error
	calls   []string
}

func (m *mapSuggester) Name() string { return "Map" }

func (m *mapSuggester) SuggestTag(_ context.Context, merchant string) (models.Tag, error) {
	m.calls = append(m.calls, merchant)
	if err, ok := m.errs[merchant]; ok {
		return models.TagNone, err
	}
	if tag, ok := m.answers[merchant]; ok {
		return tag, nil
	}
	return models.TagNone, nil
}

func unmatchedTable() []models.Transaction {
	return []models.Transaction{
		{Merchant: "路易莎", Tag: models.TagNone},
		{Merchant: "全聯", Tag: models.TagMarket},
		{Merchant: "路易莎", Tag: models.TagNone},
		{Merchant: "Cama", Tag: models.TagNone},
		{Merchant: "金石堂", Tag: models.TagNone},
		{Merchant: "神秘", Tag: models.TagNone},
	}
}

func TestUnmatchedMerchants(t *testing.T) {
	assert.Equal(t, []string{"路易莎", "Cama", "金石堂", "神秘"}, UnmatchedMerchants(unmatchedTable()))
}

func TestSuggestRules(t *testing.T) {
	mockLog := logging.NewMockLogger()
	c := NewCategorizer(nil, mockLog)
	suggester := &mapSuggester{
		answers: map[string]models.Tag{"路易莎": models.TagDrink, "Cama": models.TagDrink},
		errs:    map[string]error{"金石堂": errors.New("quota exceeded")},
	}
	table := unmatchedTable()
	before := append([]models.Transaction(nil), table...)

	suggestions, err := c.SuggestRules(context.Background(), table, suggester)
	require.NoError(t, err)
	require.Len(t, suggestions, 1)

	assert.Equal(t, models.TagDrink, suggestions[0].Rule.Tag)
	assert.Equal(t, []string{"Cama", "路易莎"}, suggestions[0].Rule.Keywords)
	assert.Equal(t, []string{"路易莎", "Cama"}, suggestions[0].Merchants)
	assert.Equal(t, before, table, "suggestions never modify the table")
	assert.Len(t, suggester.calls, 4)

	warns := mockLog.GetEntriesByLevel("WARN")
	require.Len(t, warns, 1)
	var catErr *parsererror.CategorizationError
	require.True(t, errors.As(warns[0].Error, &catErr))
	assert.Equal(t, "金石堂", catErr.Merchant)
}

func TestSuggestRules_Cancelled(t *testing.T) {
	c := NewCategorizer(nil, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.SuggestRules(ctx, unmatchedTable(), &mapSuggester{})
	assert.ErrorIs(t, err, context.Canceled)
}
