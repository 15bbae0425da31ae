package domain

import "github.com/shopspring/decimal"

// AggregateRow is the result of grouping records by one or more dimensions:
// the ordered key values, one summed value per requested measure, and, when
// the aggregation pivoted, one column per configured pivot value.
type AggregateRow struct {
	Key      []string
	Measures map[Measure]decimal.NullDecimal
	Pivot    map[string]decimal.Decimal
}

// MeasureOrZero returns the summed measure, or 0 when the whole group was
// missing for it.
func (r AggregateRow) MeasureOrZero(m Measure) decimal.Decimal {
	if v, ok := r.Measures[m]; ok && v.Valid {
		return v.Decimal
	}
	return decimal.Decimal{}
}

// ChangeRow is an AggregateRow augmented with the quarter-over-quarter change
// and the "lost" classification flag.
type ChangeRow struct {
	AggregateRow
	Change decimal.Decimal
	Lost   bool
}

// TrendPoint is one step of the monthly revenue series. Rolling is missing
// for the points before the averaging window has filled.
type TrendPoint struct {
	Period  string
	Value   decimal.Decimal
	Rolling decimal.NullDecimal
}

// QuarterPair names the two quarters a report compares.
type QuarterPair struct {
	Earlier string
	Later   string
}

// ReportParams are the caller-selected inputs of one report run.
type ReportParams struct {
	ExcludedCountries []string
	MinRevenue        decimal.Decimal
	// AllowedPeriods nil means every period observed in the data. An empty
	// non-nil slice filters everything out.
	AllowedPeriods []string
	// Quarters nil means the two most recent quarters observed in the
	// filtered data.
	Quarters      *QuarterPair
	RollingWindow int // 0 = default
	TopLosses     int // 0 = default
}

// RevenueReport is the assembled output: the five named tables, the monthly
// trend series, and the peak/low monthly revenue scalars.
type RevenueReport struct {
	Quarters QuarterPair

	LostClients         []ChangeRow
	TopLosses           []ChangeRow
	ServiceLineTrends   []ChangeRow
	ServiceOfferings    []AggregateRow
	ClientProfitability []AggregateRow
	CountryTrends       []ChangeRow

	MonthlyRevenue []TrendPoint
	PeakRevenue    decimal.NullDecimal
	LowRevenue     decimal.NullDecimal
}

// Facets are the distinct filterable values present in the record store,
// exposed so a UI can populate its filter controls.
type Facets struct {
	Countries []string
	Periods   []string
}
