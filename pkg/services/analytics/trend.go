package analytics

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/biztools/revenue-atlas/pkg/models/domain"
)

// SeriesPoint is one period/value observation. Callers present the series in
// ascending period order; this package does not sort it.
type SeriesPoint struct {
	Period string
	Value  decimal.Decimal
}

// RollingAverage computes the trailing mean of the given window over the
// series. The output has the same length as the input; points before the
// window has filled carry a missing rolling value, not zero.
func RollingAverage(series []SeriesPoint, window int) ([]domain.TrendPoint, error) {
	if window <= 0 {
		return nil, fmt.Errorf("rolling window must be positive, got %d", window)
	}

	out := make([]domain.TrendPoint, len(series))
	sum := decimal.Decimal{}
	for i, p := range series {
		sum = sum.Add(p.Value)
		if i >= window {
			sum = sum.Sub(series[i-window].Value)
		}
		out[i] = domain.TrendPoint{Period: p.Period, Value: p.Value}
		if i >= window-1 {
			mean := sum.Div(decimal.NewFromInt(int64(window)))
			out[i].Rolling = decimal.NewNullDecimal(mean)
		}
	}
	return out, nil
}
