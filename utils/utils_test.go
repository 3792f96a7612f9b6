package utils_test

import (
	"testing"
	"time"

	"github.com/bpnlt/tv-planner/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDecimal(t *testing.T) {
	t.Run("PlainNumber", func(t *testing.T) {
		v, ok := utils.ParseDecimal("18.4")
		require.True(t, ok)
		assert.Equal(t, 18.4, v)
	})

	t.Run("CommaDecimalSeparator", func(t *testing.T) {
		v, ok := utils.ParseDecimal("18,4")
		require.True(t, ok)
		assert.Equal(t, 18.4, v)
	})

	t.Run("CurrencySuffix", func(t *testing.T) {
		v, ok := utils.ParseDecimal("18,4 €")
		require.True(t, ok)
		assert.Equal(t, 18.4, v)
	})

	t.Run("PercentSuffix", func(t *testing.T) {
		v, ok := utils.ParseDecimal("95 %")
		require.True(t, ok)
		assert.Equal(t, 95.0, v)
	})

	t.Run("EmptyInput", func(t *testing.T) {
		_, ok := utils.ParseDecimal("")
		assert.False(t, ok)
	})

	t.Run("WhitespaceOnly", func(t *testing.T) {
		_, ok := utils.ParseDecimal("   ")
		assert.False(t, ok)
	})

	t.Run("Garbage", func(t *testing.T) {
		_, ok := utils.ParseDecimal("n/a")
		assert.False(t, ok)
	})
}

func TestParseDecimalPtr(t *testing.T) {
	assert.Nil(t, utils.ParseDecimalPtr(nil))

	raw := "2,5"
	v := utils.ParseDecimalPtr(&raw)
	require.NotNil(t, v)
	assert.Equal(t, 2.5, *v)

	bad := "abc"
	assert.Nil(t, utils.ParseDecimalPtr(&bad))
}

func TestDaysInMonth(t *testing.T) {
	assert.Equal(t, 31, utils.DaysInMonth(2026, time.January))
	assert.Equal(t, 28, utils.DaysInMonth(2026, time.February))
	assert.Equal(t, 29, utils.DaysInMonth(2024, time.February))
	assert.Equal(t, 30, utils.DaysInMonth(2026, time.June))
}

func TestParseAndFormatDate(t *testing.T) {
	d, err := utils.ParseDate("2026-05-20")
	require.NoError(t, err)
	assert.Equal(t, 2026, d.Year())
	assert.Equal(t, time.May, d.Month())
	assert.Equal(t, 20, d.Day())
	assert.Equal(t, "2026-05-20", utils.FormatDate(d))

	_, err = utils.ParseDate("20.05.2026")
	assert.Error(t, err)
}

func TestSameMonth(t *testing.T) {
	a := time.Date(2026, time.May, 1, 0, 0, 0, 0, time.UTC)
	b := time.Date(2026, time.May, 31, 0, 0, 0, 0, time.UTC)
	c := time.Date(2025, time.May, 10, 0, 0, 0, 0, time.UTC)

	assert.True(t, utils.SameMonth(a, b))
	assert.False(t, utils.SameMonth(a, c))
}
