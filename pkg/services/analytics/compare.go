package analytics

import (
	"sort"

	"github.com/biztools/revenue-atlas/pkg/models/domain"
)

// WithChange computes later-quarter minus earlier-quarter for every pivoted
// row. Both operands are always present because the pivot zero-fills its
// configured columns.
func WithChange(rows []domain.AggregateRow, earlier, later string) []domain.ChangeRow {
	out := make([]domain.ChangeRow, 0, len(rows))
	for _, r := range rows {
		out = append(out, domain.ChangeRow{
			AggregateRow: r,
			Change:       r.Pivot[later].Sub(r.Pivot[earlier]),
		})
	}
	return out
}

// ClassifyLost tags the rows whose later-quarter value is exactly zero. It
// removes nothing; consumers decide whether to filter or highlight. An entity
// with zero in both quarters is still tagged: zero in the later quarter is
// the whole rule.
func ClassifyLost(rows []domain.ChangeRow, later string) []domain.ChangeRow {
	out := make([]domain.ChangeRow, len(rows))
	copy(out, rows)
	for i := range out {
		out[i].Lost = out[i].Pivot[later].IsZero()
	}
	return out
}

// Rank sorts a copy of rows under less and keeps the first n. The sort is
// stable, so ties keep their first-seen order. n <= 0 or n past the end
// returns every row sorted.
func Rank[T any](rows []T, less func(a, b T) bool, n int) []T {
	out := make([]T, len(rows))
	copy(out, rows)
	sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })
	if n > 0 && n < len(out) {
		out = out[:n]
	}
	return out
}

// ByChangeAsc orders rows from largest loss to largest gain.
func ByChangeAsc(a, b domain.ChangeRow) bool { return a.Change.LessThan(b.Change) }

// ByChangeDesc orders rows from largest gain to largest loss.
func ByChangeDesc(a, b domain.ChangeRow) bool { return b.Change.LessThan(a.Change) }

// ByMeasureDesc orders aggregate rows by one summed measure, largest first.
// Missing sums compare as 0.
func ByMeasureDesc(m domain.Measure) func(a, b domain.AggregateRow) bool {
	return func(a, b domain.AggregateRow) bool {
		return b.MeasureOrZero(m).LessThan(a.MeasureOrZero(m))
	}
}
