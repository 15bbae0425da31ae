package analytics

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/biztools/revenue-atlas/pkg/models/domain"
)

func annotated(t *testing.T, records ...domain.Record) []domain.AnnotatedRecord {
	t.Helper()
	out, err := Annotate(records)
	require.NoError(t, err)
	return out
}

func TestAggregate_SumsByFirstSeenKeyOrder(t *testing.T) {
	records := annotated(t,
		rec("beta", "US", "2024-01", 10),
		rec("alpha", "US", "2024-01", 5),
		rec("beta", "US", "2024-02", 7),
	)

	rows := Aggregate(records, GroupBy{
		Keys:     []domain.Dimension{domain.DimClient},
		Measures: []domain.Measure{domain.MeasureRevenue},
	})

	require.Len(t, rows, 2)
	assert.Equal(t, []string{"beta"}, rows[0].Key)
	assert.Equal(t, []string{"alpha"}, rows[1].Key)
	assert.True(t, rows[0].MeasureOrZero(domain.MeasureRevenue).Equal(decimal.NewFromInt(17)))
	assert.True(t, rows[1].MeasureOrZero(domain.MeasureRevenue).Equal(decimal.NewFromInt(5)))
}

func TestAggregate_PivotZeroFillsConfiguredColumns(t *testing.T) {
	// alpha has no 2024Q1 records at all.
	records := annotated(t,
		rec("alpha", "US", "2023-11", 100),
		rec("bravo", "US", "2024-01", 50),
	)

	rows := Aggregate(records, GroupBy{
		Keys:         []domain.Dimension{domain.DimClient},
		PivotOn:      domain.DimQuarter,
		PivotMeasure: domain.MeasureRevenue,
		PivotColumns: []string{"2023Q4", "2024Q1"},
	})

	require.Len(t, rows, 2)
	for _, row := range rows {
		require.Contains(t, row.Pivot, "2023Q4")
		require.Contains(t, row.Pivot, "2024Q1")
	}
	assert.True(t, rows[0].Pivot["2023Q4"].Equal(decimal.NewFromInt(100)))
	assert.True(t, rows[0].Pivot["2024Q1"].IsZero())
	assert.True(t, rows[1].Pivot["2023Q4"].IsZero())
	assert.True(t, rows[1].Pivot["2024Q1"].Equal(decimal.NewFromInt(50)))
}

func TestAggregate_PivotDropsUnconfiguredColumns(t *testing.T) {
	records := annotated(t,
		rec("alpha", "US", "2023-05", 999), // 2023Q2, outside the fixed list
		rec("alpha", "US", "2024-01", 50),
	)

	rows := Aggregate(records, GroupBy{
		Keys:         []domain.Dimension{domain.DimClient},
		PivotOn:      domain.DimQuarter,
		PivotMeasure: domain.MeasureRevenue,
		PivotColumns: []string{"2023Q4", "2024Q1"},
	})

	require.Len(t, rows, 1)
	assert.Len(t, rows[0].Pivot, 2)
	assert.NotContains(t, rows[0].Pivot, "2023Q2")
}

func TestAggregate_MissingMeasureSemantics(t *testing.T) {
	withCost := rec("alpha", "US", "2024-01", 10)
	withCost.TotalCost = decimal.NewNullDecimal(decimal.NewFromInt(4))
	noCost := rec("alpha", "US", "2024-01", 20)
	allMissing := rec("bravo", "US", "2024-01", 30)

	rows := Aggregate(annotated(t, withCost, noCost, allMissing), GroupBy{
		Keys:     []domain.Dimension{domain.DimClient},
		Measures: []domain.Measure{domain.MeasureRevenue, domain.MeasureTotalCost},
	})

	require.Len(t, rows, 2)

	// Missing counts as 0 inside a sum that has at least one valid input.
	alphaCost := rows[0].Measures[domain.MeasureTotalCost]
	require.True(t, alphaCost.Valid)
	assert.True(t, alphaCost.Decimal.Equal(decimal.NewFromInt(4)))

	// A group with no valid input stays missing.
	bravoCost := rows[1].Measures[domain.MeasureTotalCost]
	assert.False(t, bravoCost.Valid)
}

func TestAggregate_MultiKeyGrouping(t *testing.T) {
	a := rec("alpha", "US", "2024-01", 10)
	a.ServiceLine = "consulting"
	b := rec("alpha", "US", "2024-01", 20)
	b.ServiceLine = "support"
	c := rec("alpha", "DE", "2024-01", 40)
	c.ServiceLine = "consulting"

	rows := Aggregate(annotated(t, a, b, c), GroupBy{
		Keys:     []domain.Dimension{domain.DimServiceLine, domain.DimCountry},
		Measures: []domain.Measure{domain.MeasureRevenue},
	})

	require.Len(t, rows, 3)
	assert.Equal(t, []string{"consulting", "US"}, rows[0].Key)
	assert.Equal(t, []string{"support", "US"}, rows[1].Key)
	assert.Equal(t, []string{"consulting", "DE"}, rows[2].Key)
}
