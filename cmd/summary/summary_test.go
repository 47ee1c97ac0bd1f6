package summary

import (
	"testing"

	"bujichang/spending/internal/models"
	"bujichang/spending/internal/report"

	"github.com/stretchr/testify/assert"
)

func row(month string, amount int64, tag models.Tag) models.Transaction {
	return models.Transaction{
		Month: month, Day: 1, Merchant: "店", Amount: amount,
		Tag: tag, Class: models.TagToClass(tag),
		PaymentMethod: models.PaymentCash, Frequency: models.FrequencyOnce,
	}
}

func TestSummaryCommand_Flags(t *testing.T) {
	groupFlag := Cmd.Flags().Lookup("group")
	assert.NotNil(t, groupFlag)
	assert.Equal(t, "class", groupFlag.DefValue)
	assert.NotNil(t, Cmd.Flags().Lookup("month"))
	assert.NotNil(t, Cmd.Flags().Lookup("input"))
}

func TestRender(t *testing.T) {
	table := []models.Transaction{
		row("2022/06", 100, models.TagMarket),
		row("2022/07", 200, models.TagEatOut),
		row("2022/08", 300, models.TagMarket),
		row("2022/09", 400, models.TagEatOut),
	}

	out := Render(table, "", report.GroupClass, "", 3, 2)
	assert.Contains(t, out, "2022/06", "monthly totals list every month")
	assert.Contains(t, out, "$300")
	assert.Contains(t, out, "$400")
	assert.NotContains(t, out, "$200", "only the recent months are broken down")

	single := Render(table, "2022/07", report.GroupPayment, "", 3, 2)
	assert.Contains(t, single, "$200")
	assert.Contains(t, single, models.PaymentCash.Label())
}

func TestRender_Tags(t *testing.T) {
	table := []models.Transaction{
		row("2022/08", 300, models.TagMarket),
		row("2022/08", 100, models.TagBake),
		row("2022/08", 600, models.TagEatOut),
	}

	out := Render(table, "2022/08", report.GroupClass, string(models.ClassCook), 3, 2)
	assert.Contains(t, out, "2022/08 "+models.ClassCook.Label())
	assert.Contains(t, out, "$400 / $1,000")
	assert.Contains(t, out, models.TagMarket.Label())
	assert.Contains(t, out, models.TagBake.Label())
	assert.Contains(t, out, "75.0%")
	assert.NotContains(t, out, models.TagEatOut.Label(), "only tags of the chosen class are listed")
}

func TestSummaryCommand_TagsFlag(t *testing.T) {
	assert.NotNil(t, Cmd.Flags().Lookup("tags"))
	key, err := report.GroupClass.ParseKey("煮食")
	assert.NoError(t, err)
	assert.Equal(t, string(models.ClassCook), key)
}
