package export

import (
	"bytes"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/biztools/revenue-atlas/pkg/models/domain"
)

func TestReporter_Handle(t *testing.T) {
	rep := &domain.RevenueReport{
		Quarters: domain.QuarterPair{Earlier: "2023Q4", Later: "2024Q1"},
		LostClients: []domain.ChangeRow{{
			AggregateRow: domain.AggregateRow{
				Key: []string{"Acme"},
				Pivot: map[string]decimal.Decimal{
					"2023Q4": decimal.NewFromInt(100),
					"2024Q1": {},
				},
			},
			Change: decimal.NewFromInt(-100),
			Lost:   true,
		}},
		ServiceOfferings: []domain.AggregateRow{{
			Key: []string{"Advisory"},
			Measures: map[domain.Measure]decimal.NullDecimal{
				domain.MeasureRevenue: decimal.NewNullDecimal(decimal.NewFromInt(100)),
			},
		}},
		MonthlyRevenue: []domain.TrendPoint{
			{Period: "2023-12", Value: decimal.NewFromInt(100)},
			{Period: "2024-01", Value: decimal.NewFromInt(40)},
		},
		PeakRevenue: decimal.NewNullDecimal(decimal.NewFromInt(100)),
		LowRevenue:  decimal.NewNullDecimal(decimal.NewFromInt(40)),
	}

	var buf bytes.Buffer
	reporter := NewReporter(&buf)
	require.NoError(t, reporter.Handle(rep))

	out := buf.String()
	assert.Contains(t, out, "Business Revenue Report (2023Q4 vs 2024Q1)")
	for _, title := range []string{
		"Lost Clients", "Top Revenue Losses", "Service Line Trends",
		"Service Offering Summary", "Client Profitability", "Country Trends",
		"Monthly Revenue",
	} {
		assert.Contains(t, out, "=== "+title+" ===")
	}
	assert.Contains(t, out, "Acme")
	assert.Contains(t, out, "$-100.00")
	assert.Contains(t, out, "Peak Monthly Revenue: $100.00")
	assert.Contains(t, out, "Lowest Monthly Revenue: $40.00")

	// Missing measures and unfilled rolling averages render as a dash.
	advisoryLine := ""
	for _, line := range strings.Split(out, "\n") {
		if strings.Contains(line, "Advisory") {
			advisoryLine = line
		}
	}
	require.NotEmpty(t, advisoryLine)
	assert.Contains(t, advisoryLine, "-")
}
