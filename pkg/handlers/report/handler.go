package report

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/biztools/revenue-atlas/pkg/models/api"
	"github.com/biztools/revenue-atlas/pkg/models/domain"
	"github.com/biztools/revenue-atlas/pkg/services/analytics"
)

// Service is the report engine surface the handler needs.
type Service interface {
	Generate(ctx context.Context, params domain.ReportParams) (*domain.RevenueReport, error)
	Facets(ctx context.Context) (domain.Facets, error)
}

type Handler struct {
	service Service
	base    domain.ReportParams
}

// NewHandler wires the report service behind HTTP. base supplies the
// configured defaults; query parameters override them per request.
func NewHandler(service Service, base domain.ReportParams) *Handler {
	return &Handler{service: service, base: base}
}

func (h *Handler) GetReport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	params, err := h.requestParams(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	rep, err := h.service.Generate(ctx, params)
	if err != nil {
		var perr *analytics.MalformedPeriodError
		if errors.As(err, &perr) {
			http.Error(w, perr.Error(), http.StatusUnprocessableEntity)
			return
		}
		logger.Error().Err(err).Msg("failed to generate report")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(toAPIReport(rep)); err != nil {
		logger.Error().Err(err).Msg("failed to encode report")
	}
}

func (h *Handler) GetFacets(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	facets, err := h.service.Facets(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("failed to list facets")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	response := api.Facets{Countries: facets.Countries, Periods: facets.Periods}
	if err := json.NewEncoder(w).Encode(response); err != nil {
		logger.Error().Err(err).Msg("failed to encode facets")
	}
}

// requestParams layers query-string overrides over the configured defaults.
func (h *Handler) requestParams(r *http.Request) (domain.ReportParams, error) {
	params := h.base
	q := r.URL.Query()

	if countries, ok := q["exclude_country"]; ok {
		params.ExcludedCountries = countries
	}
	if v := q.Get("min_revenue"); v != "" {
		d, err := decimal.NewFromString(v)
		if err != nil {
			return domain.ReportParams{}, errors.New("invalid min_revenue")
		}
		params.MinRevenue = d
	}
	if periods, ok := q["period"]; ok {
		params.AllowedPeriods = periods
	}
	if earlier, later := q.Get("earlier"), q.Get("later"); earlier != "" && later != "" {
		params.Quarters = &domain.QuarterPair{Earlier: earlier, Later: later}
	}
	return params, nil
}

func toAPIReport(rep *domain.RevenueReport) api.Report {
	quarters := api.Quarters{Earlier: rep.Quarters.Earlier, Later: rep.Quarters.Later}
	return api.Report{
		Quarters:            quarters,
		LostClients:         toQuarterRows(rep.LostClients, rep.Quarters),
		TopLosses:           toQuarterRows(rep.TopLosses, rep.Quarters),
		ServiceLineTrends:   toQuarterRows(rep.ServiceLineTrends, rep.Quarters),
		ServiceOfferings:    toSummaryRows(rep.ServiceOfferings),
		ClientProfitability: toSummaryRows(rep.ClientProfitability),
		CountryTrends:       toQuarterRows(rep.CountryTrends, rep.Quarters),
		MonthlyRevenue:      toTrendPoints(rep.MonthlyRevenue),
		PeakRevenue:         rep.PeakRevenue,
		LowRevenue:          rep.LowRevenue,
	}
}

func toQuarterRows(rows []domain.ChangeRow, quarters domain.QuarterPair) []api.QuarterRow {
	out := make([]api.QuarterRow, 0, len(rows))
	for _, row := range rows {
		out = append(out, api.QuarterRow{
			Name:    row.Key[0],
			Earlier: row.Pivot[quarters.Earlier],
			Later:   row.Pivot[quarters.Later],
			Change:  row.Change,
		})
	}
	return out
}

func toSummaryRows(rows []domain.AggregateRow) []api.SummaryRow {
	out := make([]api.SummaryRow, 0, len(rows))
	for _, row := range rows {
		out = append(out, api.SummaryRow{
			Name:         row.Key[0],
			Revenue:      row.Measures[domain.MeasureRevenue],
			TotalCost:    row.Measures[domain.MeasureTotalCost],
			GrossProfit:  row.Measures[domain.MeasureGrossProfit],
			DirectProfit: row.Measures[domain.MeasureDirectProfit],
		})
	}
	return out
}

func toTrendPoints(points []domain.TrendPoint) []api.TrendPoint {
	out := make([]api.TrendPoint, 0, len(points))
	for _, p := range points {
		out = append(out, api.TrendPoint{Period: p.Period, Revenue: p.Value, Rolling: p.Rolling})
	}
	return out
}
