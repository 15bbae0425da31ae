package report

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/biztools/revenue-atlas/pkg/models/domain"
	"github.com/biztools/revenue-atlas/pkg/services/analytics"
)

const (
	defaultRollingWindow = 3
	defaultTopLosses     = 10
)

// RecordSource supplies the validated record set a report runs over. The
// returned slice is treated as read-only for the duration of the run.
type RecordSource interface {
	Records(ctx context.Context) ([]domain.Record, error)
}

// Generator assembles the full revenue report from a record source. It holds
// no per-run state, so one Generator serves concurrent report requests.
type Generator struct {
	source RecordSource
}

func NewGenerator(source RecordSource) *Generator {
	return &Generator{source: source}
}

// Generate runs the whole pipeline: filter, quarter derivation, the four
// dimensional aggregations with their change/ranking/lost stages, and the
// monthly trend. Any stage failure aborts the report with the originating
// error.
func (g *Generator) Generate(ctx context.Context, params domain.ReportParams) (*domain.RevenueReport, error) {
	logger := zerolog.Ctx(ctx)
	started := time.Now()

	records, err := g.source.Records(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading records: %w", err)
	}

	allowed := params.AllowedPeriods
	if allowed == nil {
		allowed = distinctPeriods(records)
	}

	filtered := analytics.Filter(records, analytics.FilterParams{
		ExcludedCountries: toSet(params.ExcludedCountries),
		MinRevenue:        params.MinRevenue,
		AllowedPeriods:    toSet(allowed),
	})

	annotated, err := analytics.Annotate(filtered)
	if err != nil {
		return nil, fmt.Errorf("deriving quarters: %w", err)
	}

	quarters := resolveQuarters(params.Quarters, annotated)
	pivotCols := []string{quarters.Earlier, quarters.Later}

	rep := &domain.RevenueReport{Quarters: quarters}

	// Lost Clients: revenue by client across the two quarters.
	clients := analytics.Aggregate(annotated, analytics.GroupBy{
		Keys:         []domain.Dimension{domain.DimClient},
		PivotOn:      domain.DimQuarter,
		PivotMeasure: domain.MeasureRevenue,
		PivotColumns: pivotCols,
	})
	tagged := analytics.ClassifyLost(
		analytics.WithChange(clients, quarters.Earlier, quarters.Later),
		quarters.Later,
	)
	for _, row := range tagged {
		if row.Lost {
			rep.LostClients = append(rep.LostClients, row)
		}
	}
	topLosses := params.TopLosses
	if topLosses == 0 {
		topLosses = defaultTopLosses
	}
	rep.TopLosses = analytics.Rank(rep.LostClients, analytics.ByChangeAsc, topLosses)

	// Service Line Trends, worst change first.
	serviceLines := analytics.Aggregate(annotated, analytics.GroupBy{
		Keys:         []domain.Dimension{domain.DimServiceLine},
		PivotOn:      domain.DimQuarter,
		PivotMeasure: domain.MeasureRevenue,
		PivotColumns: pivotCols,
	})
	rep.ServiceLineTrends = analytics.Rank(
		analytics.WithChange(serviceLines, quarters.Earlier, quarters.Later),
		analytics.ByChangeAsc, 0,
	)

	allMeasures := []domain.Measure{
		domain.MeasureRevenue,
		domain.MeasureTotalCost,
		domain.MeasureGrossProfit,
		domain.MeasureDirectProfit,
	}

	// Service Offering Summary: plain sums, first-seen order.
	rep.ServiceOfferings = analytics.Aggregate(annotated, analytics.GroupBy{
		Keys:     []domain.Dimension{domain.DimServiceOffering},
		Measures: allMeasures,
	})

	// Client Profitability, largest revenue first.
	rep.ClientProfitability = analytics.Rank(
		analytics.Aggregate(annotated, analytics.GroupBy{
			Keys:     []domain.Dimension{domain.DimClient},
			Measures: allMeasures,
		}),
		analytics.ByMeasureDesc(domain.MeasureRevenue), 0,
	)

	// Country Trends, best change first.
	countries := analytics.Aggregate(annotated, analytics.GroupBy{
		Keys:         []domain.Dimension{domain.DimCountry},
		PivotOn:      domain.DimQuarter,
		PivotMeasure: domain.MeasureRevenue,
		PivotColumns: pivotCols,
	})
	rep.CountryTrends = analytics.Rank(
		analytics.WithChange(countries, quarters.Earlier, quarters.Later),
		analytics.ByChangeDesc, 0,
	)

	// Monthly revenue series with the rolling average, period ascending.
	window := params.RollingWindow
	if window == 0 {
		window = defaultRollingWindow
	}
	series, err := g.monthlySeries(annotated, window)
	if err != nil {
		return nil, err
	}
	rep.MonthlyRevenue = series
	rep.PeakRevenue, rep.LowRevenue = peakAndLow(series)

	logger.Debug().
		Int("records", len(records)).
		Int("filtered", len(filtered)).
		Str("earlier", quarters.Earlier).
		Str("later", quarters.Later).
		Dur("elapsed", time.Since(started)).
		Msg("report assembled")

	return rep, nil
}

// Facets lists the distinct countries and periods present in the store, for
// populating filter controls.
func (g *Generator) Facets(ctx context.Context) (domain.Facets, error) {
	records, err := g.source.Records(ctx)
	if err != nil {
		return domain.Facets{}, fmt.Errorf("loading records: %w", err)
	}

	countries := make(map[string]struct{})
	for _, r := range records {
		if r.Country != "" {
			countries[r.Country] = struct{}{}
		}
	}
	facets := domain.Facets{
		Countries: sortedKeys(countries),
		Periods:   distinctPeriods(records),
	}
	sort.Strings(facets.Periods)
	return facets, nil
}

func (g *Generator) monthlySeries(annotated []domain.AnnotatedRecord, window int) ([]domain.TrendPoint, error) {
	monthly := analytics.Aggregate(annotated, analytics.GroupBy{
		Keys:     []domain.Dimension{domain.DimYearMonth},
		Measures: []domain.Measure{domain.MeasureRevenue},
	})

	series := make([]analytics.SeriesPoint, 0, len(monthly))
	for _, row := range monthly {
		series = append(series, analytics.SeriesPoint{
			Period: row.Key[0],
			Value:  row.MeasureOrZero(domain.MeasureRevenue),
		})
	}
	// "2006-01" labels sort chronologically as strings.
	sort.SliceStable(series, func(i, j int) bool { return series[i].Period < series[j].Period })

	points, err := analytics.RollingAverage(series, window)
	if err != nil {
		return nil, fmt.Errorf("computing rolling average: %w", err)
	}
	return points, nil
}

// resolveQuarters picks the configured quarter pair, or the two most recent
// quarters observed in the filtered data. A configured quarter absent from
// the data is not an error: the pivot zero-fills it.
func resolveQuarters(configured *domain.QuarterPair, annotated []domain.AnnotatedRecord) domain.QuarterPair {
	if configured != nil {
		return *configured
	}
	seen := make(map[string]struct{})
	for _, r := range annotated {
		seen[r.Quarter] = struct{}{}
	}
	labels := sortedKeys(seen)
	switch len(labels) {
	case 0:
		return domain.QuarterPair{}
	case 1:
		return domain.QuarterPair{Earlier: labels[0], Later: labels[0]}
	}
	return domain.QuarterPair{Earlier: labels[len(labels)-2], Later: labels[len(labels)-1]}
}

func peakAndLow(series []domain.TrendPoint) (peak, low decimal.NullDecimal) {
	for i, p := range series {
		if i == 0 {
			peak = decimal.NewNullDecimal(p.Value)
			low = decimal.NewNullDecimal(p.Value)
			continue
		}
		if p.Value.GreaterThan(peak.Decimal) {
			peak.Decimal = p.Value
		}
		if p.Value.LessThan(low.Decimal) {
			low.Decimal = p.Value
		}
	}
	return peak, low
}

func distinctPeriods(records []domain.Record) []string {
	seen := make(map[string]struct{})
	for _, r := range records {
		seen[r.YearMonth] = struct{}{}
	}
	return sortedKeys(seen)
}

func toSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
