package analytics

import (
	"github.com/shopspring/decimal"

	"github.com/biztools/revenue-atlas/pkg/models/domain"
)

// FilterParams are the user-selected predicates applied before any
// aggregation runs.
type FilterParams struct {
	ExcludedCountries map[string]struct{}
	MinRevenue        decimal.Decimal
	AllowedPeriods    map[string]struct{}
}

// Filter keeps the records whose country is not excluded, whose revenue meets
// the minimum, and whose period is allowed. An empty exclusion set excludes
// nothing; an empty allowed-period set keeps nothing, which is a valid empty
// result rather than an error. A record with missing revenue never satisfies
// the minimum-revenue bound. Surviving records keep their input order.
func Filter(records []domain.Record, params FilterParams) []domain.Record {
	out := make([]domain.Record, 0, len(records))
	for _, r := range records {
		if _, excluded := params.ExcludedCountries[r.Country]; excluded {
			continue
		}
		if !r.Revenue.Valid || r.Revenue.Decimal.LessThan(params.MinRevenue) {
			continue
		}
		if _, allowed := params.AllowedPeriods[r.YearMonth]; !allowed {
			continue
		}
		out = append(out, r)
	}
	return out
}
