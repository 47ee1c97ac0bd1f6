package parser

import (
	"errors"
	"testing"

	"bujichang/spending/internal/logging"
	"bujichang/spending/internal/models"
	"bujichang/spending/internal/parsererror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBaseParser(t *testing.T) {
	t.Run("with provided logger", func(t *testing.T) {
		mockLog := logging.NewMockLogger()
		base := NewBaseParser("cash", mockLog)
		assert.Equal(t, mockLog, base.GetLogger())
		assert.Equal(t, "cash", base.Name())
	})

	t.Run("with nil logger", func(t *testing.T) {
		base := NewBaseParser("cash", nil)
		assert.NotNil(t, base.GetLogger())
	})

	t.Run("SetLogger ignores nil", func(t *testing.T) {
		mockLog := logging.NewMockLogger()
		base := NewBaseParser("cash", mockLog)
		base.SetLogger(nil)
		assert.Equal(t, mockLog, base.GetLogger())
	})
}

func TestBaseParser_Counters(t *testing.T) {
	mockLog := logging.NewMockLogger()
	base := NewBaseParser("citi", mockLog)

	table := &models.RawTable{SourceID: "id", Sheet: "2022", Rows: [][]string{{}, {}, {}}}
	log := base.BeginSheet(table)
	base.Exclude(log, ReasonReversal, "退款")
	base.Malformed(log, &parsererror.ParseError{Parser: "currencyutils", Field: "amount", Value: "x", Err: errors.New("bad")})
	base.EndSheet(log, 1)

	stats := base.Stats()
	assert.Equal(t, Stats{Sheets: 1, Rows: 3, Kept: 1, Excluded: 1, Malformed: 1}, stats)
	assert.Equal(t, 2, stats.Dropped())

	debug := mockLog.GetEntriesByLevel("DEBUG")
	require.Len(t, debug, 3)
	assert.Equal(t, "Excluded row", debug[0].Message)
	assert.Contains(t, debug[0].Fields, logging.Field{Key: logging.FieldSheet, Value: "2022"})
	assert.Contains(t, debug[0].Fields, logging.Field{Key: logging.FieldSource, Value: "id"})
	assert.NotNil(t, debug[1].Error)
}

func TestBaseParser_SheetLogger(t *testing.T) {
	mockLog := logging.NewMockLogger()
	base := NewBaseParser("ctbc", mockLog)

	base.SheetLogger(&models.RawTable{SourceID: "bank", Sheet: "2023"}).Debug("x")
	assert.Equal(t, Stats{}, base.Stats())

	entries := mockLog.GetEntries()
	require.Len(t, entries, 1)
	assert.Equal(t, []logging.Field{
		{Key: logging.FieldParser, Value: "ctbc"},
		{Key: logging.FieldSource, Value: "bank"},
		{Key: logging.FieldSheet, Value: "2023"},
	}, entries[0].Fields)
}

func TestBaseParser_MalformedWrapsPlainErrors(t *testing.T) {
	mockLog := logging.NewMockLogger()
	base := NewBaseParser("cash", mockLog)

	base.Malformed(mockLog, errors.New("boom"))

	entries := mockLog.GetEntriesByLevel("DEBUG")
	require.Len(t, entries, 1)
	var parseErr *parsererror.ParseError
	require.True(t, errors.As(entries[0].Error, &parseErr))
	assert.Equal(t, "cash", parseErr.Parser)
}

func TestBaseParser_Vocabulary(t *testing.T) {
	mockLog := logging.NewMockLogger()
	base := NewBaseParser("cash", mockLog)

	tag, freq, pay := base.Vocabulary(mockLog, "超市", "每月", "卡")
	assert.Equal(t, models.TagMarket, tag)
	assert.Equal(t, models.FrequencyMonthly, freq)
	assert.Equal(t, models.PaymentCard, pay)
	assert.Empty(t, mockLog.GetEntriesByLevel("WARN"))

	tag, freq, pay = base.Vocabulary(mockLog, "", "", "")
	assert.Equal(t, models.TagUnset, tag)
	assert.Equal(t, models.FrequencyUnset, freq)
	assert.Equal(t, models.PaymentUnset, pay)

	tag, freq, pay = base.Vocabulary(mockLog, "mystery", "weekly", "barter")
	assert.Equal(t, models.TagNone, tag)
	assert.Equal(t, models.FrequencyOnce, freq)
	assert.Equal(t, models.PaymentUnset, pay)
	assert.Len(t, mockLog.GetEntriesByLevel("WARN"), 3)
}

func TestStats_Add(t *testing.T) {
	a := Stats{Sheets: 1, Rows: 10, Kept: 8, Excluded: 1, Malformed: 1}
	b := Stats{Sheets: 2, Rows: 5, Kept: 5}
	assert.Equal(t, Stats{Sheets: 3, Rows: 15, Kept: 13, Excluded: 1, Malformed: 1}, a.Add(b))
}
