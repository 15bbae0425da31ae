package analytics

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func series(values ...int64) []SeriesPoint {
	out := make([]SeriesPoint, len(values))
	for i, v := range values {
		out[i] = SeriesPoint{Period: string(rune('a' + i)), Value: decimal.NewFromInt(v)}
	}
	return out
}

func TestRollingAverage_Window3(t *testing.T) {
	got, err := RollingAverage(series(10, 20, 30, 40), 3)
	require.NoError(t, err)

	// Same length as the input; missing until the window fills.
	require.Len(t, got, 4)
	assert.False(t, got[0].Rolling.Valid)
	assert.False(t, got[1].Rolling.Valid)
	require.True(t, got[2].Rolling.Valid)
	assert.True(t, got[2].Rolling.Decimal.Equal(decimal.NewFromInt(20)))
	require.True(t, got[3].Rolling.Valid)
	assert.True(t, got[3].Rolling.Decimal.Equal(decimal.NewFromInt(30)))
}

func TestRollingAverage_PreservesPeriodAndValue(t *testing.T) {
	got, err := RollingAverage([]SeriesPoint{
		{Period: "2024-01", Value: decimal.NewFromInt(7)},
		{Period: "2024-02", Value: decimal.NewFromInt(9)},
	}, 2)
	require.NoError(t, err)

	require.Len(t, got, 2)
	assert.Equal(t, "2024-01", got[0].Period)
	assert.True(t, got[0].Value.Equal(decimal.NewFromInt(7)))
	require.True(t, got[1].Rolling.Valid)
	assert.True(t, got[1].Rolling.Decimal.Equal(decimal.NewFromInt(8)))
}

func TestRollingAverage_WindowOne(t *testing.T) {
	got, err := RollingAverage(series(3, 6, 9), 1)
	require.NoError(t, err)

	for i, p := range got {
		require.True(t, p.Rolling.Valid, i)
		assert.True(t, p.Rolling.Decimal.Equal(p.Value))
	}
}

func TestRollingAverage_WindowLargerThanSeries(t *testing.T) {
	got, err := RollingAverage(series(1, 2), 5)
	require.NoError(t, err)

	require.Len(t, got, 2)
	assert.False(t, got[0].Rolling.Valid)
	assert.False(t, got[1].Rolling.Valid)
}

func TestRollingAverage_InvalidWindow(t *testing.T) {
	_, err := RollingAverage(series(1, 2, 3), 0)
	assert.Error(t, err)

	_, err = RollingAverage(series(1, 2, 3), -1)
	assert.Error(t, err)
}

func TestRollingAverage_EmptySeries(t *testing.T) {
	got, err := RollingAverage(nil, 3)
	require.NoError(t, err)
	assert.Empty(t, got)
}
