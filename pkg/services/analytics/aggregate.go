package analytics

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/biztools/revenue-atlas/pkg/models/domain"
)

// GroupBy describes one aggregation pass: the ordered grouping dimensions,
// the measures to sum per group, and, optionally, a pivot that spreads one
// measure into a fixed set of columns (one per PivotColumns entry).
type GroupBy struct {
	Keys     []domain.Dimension
	Measures []domain.Measure

	// PivotOn, when non-empty, spreads PivotMeasure across PivotColumns.
	// Pivot values observed in the data but absent from PivotColumns are
	// dropped; configured columns a group never hit stay 0.
	PivotOn      domain.Dimension
	PivotMeasure domain.Measure
	PivotColumns []string
}

// groupSep cannot appear in dimension values read from a tabular source.
const groupSep = "\x1f"

// Aggregate groups records by the cross-product of the grouping keys, summing
// each measure within a group. A missing measure value counts as 0 inside a
// sum, but a group whose every input was missing stays missing. Output rows
// keep first-seen group order; nothing depends on map iteration.
func Aggregate(records []domain.AnnotatedRecord, by GroupBy) []domain.AggregateRow {
	index := make(map[string]int)
	rows := make([]domain.AggregateRow, 0)

	for _, r := range records {
		key := make([]string, len(by.Keys))
		for i, d := range by.Keys {
			key[i] = r.DimensionValue(d)
		}
		mapKey := strings.Join(key, groupSep)

		idx, seen := index[mapKey]
		if !seen {
			row := domain.AggregateRow{
				Key:      key,
				Measures: make(map[domain.Measure]decimal.NullDecimal, len(by.Measures)),
			}
			if by.PivotOn != "" {
				row.Pivot = make(map[string]decimal.Decimal, len(by.PivotColumns))
				for _, col := range by.PivotColumns {
					row.Pivot[col] = decimal.Decimal{}
				}
			}
			idx = len(rows)
			rows = append(rows, row)
			index[mapKey] = idx
		}
		row := &rows[idx]

		for _, m := range by.Measures {
			v := r.MeasureValue(m)
			if !v.Valid {
				continue
			}
			sum := row.Measures[m]
			sum.Decimal = sum.Decimal.Add(v.Decimal)
			sum.Valid = true
			row.Measures[m] = sum
		}

		if by.PivotOn != "" {
			col := r.DimensionValue(by.PivotOn)
			if cur, wanted := row.Pivot[col]; wanted {
				if v := r.MeasureValue(by.PivotMeasure); v.Valid {
					row.Pivot[col] = cur.Add(v.Decimal)
				}
			}
		}
	}
	return rows
}
