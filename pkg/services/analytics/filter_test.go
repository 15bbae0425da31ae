package analytics

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/biztools/revenue-atlas/pkg/models/domain"
)

func rec(client, country, period string, revenue float64) domain.Record {
	return domain.Record{
		ClientName: client,
		Country:    country,
		YearMonth:  period,
		Revenue:    decimal.NewNullDecimal(decimal.NewFromFloat(revenue)),
	}
}

func set(values ...string) map[string]struct{} {
	s := make(map[string]struct{}, len(values))
	for _, v := range values {
		s[v] = struct{}{}
	}
	return s
}

func TestFilter_AppliesAllPredicates(t *testing.T) {
	records := []domain.Record{
		rec("a", "US", "2024-01", 100),
		rec("b", "DE", "2024-01", 100), // excluded country
		rec("c", "US", "2024-01", 5),   // below minimum
		rec("d", "US", "2023-07", 100), // period not allowed
		rec("e", "US", "2024-02", 100),
	}

	got := Filter(records, FilterParams{
		ExcludedCountries: set("DE"),
		MinRevenue:        decimal.NewFromInt(10),
		AllowedPeriods:    set("2024-01", "2024-02"),
	})

	assert.Len(t, got, 2)
	assert.Equal(t, "a", got[0].ClientName)
	assert.Equal(t, "e", got[1].ClientName)
}

func TestFilter_EmptyExclusionExcludesNothing(t *testing.T) {
	records := []domain.Record{
		rec("a", "US", "2024-01", 100),
		rec("b", "DE", "2024-01", 100),
	}

	got := Filter(records, FilterParams{
		MinRevenue:     decimal.NewFromInt(-1000),
		AllowedPeriods: set("2024-01"),
	})

	assert.Len(t, got, 2)
}

func TestFilter_EmptyAllowedPeriodsYieldsEmptyResult(t *testing.T) {
	records := []domain.Record{rec("a", "US", "2024-01", 100)}

	got := Filter(records, FilterParams{AllowedPeriods: set()})

	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestFilter_MissingRevenueFailsMinimum(t *testing.T) {
	missing := domain.Record{ClientName: "a", Country: "US", YearMonth: "2024-01"}
	records := []domain.Record{missing, rec("b", "US", "2024-01", -50)}

	// Even a very low bound never admits a missing revenue.
	got := Filter(records, FilterParams{
		MinRevenue:     decimal.NewFromInt(-1000),
		AllowedPeriods: set("2024-01"),
	})

	assert.Len(t, got, 1)
	assert.Equal(t, "b", got[0].ClientName)
}

func TestFilter_DoesNotMutateInput(t *testing.T) {
	records := []domain.Record{
		rec("a", "US", "2024-01", 100),
		rec("b", "DE", "2024-01", 100),
	}

	_ = Filter(records, FilterParams{
		ExcludedCountries: set("US"),
		AllowedPeriods:    set("2024-01"),
	})

	assert.Equal(t, "a", records[0].ClientName)
	assert.Equal(t, "b", records[1].ClientName)
}
