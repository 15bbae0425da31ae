package api

import "github.com/shopspring/decimal"

type Quarters struct {
	Earlier string `json:"earlier"`
	Later   string `json:"later"`
}

// QuarterRow is one entity compared across the two report quarters.
type QuarterRow struct {
	Name    string          `json:"name"`
	Earlier decimal.Decimal `json:"earlier_revenue"`
	Later   decimal.Decimal `json:"later_revenue"`
	Change  decimal.Decimal `json:"change"`
}

// SummaryRow carries the four summed measures for one entity. Measures that
// were missing across the whole group serialize as null.
type SummaryRow struct {
	Name         string              `json:"name"`
	Revenue      decimal.NullDecimal `json:"revenue"`
	TotalCost    decimal.NullDecimal `json:"total_cost"`
	GrossProfit  decimal.NullDecimal `json:"gross_profit"`
	DirectProfit decimal.NullDecimal `json:"direct_profit"`
}

type TrendPoint struct {
	Period  string              `json:"period"`
	Revenue decimal.Decimal     `json:"revenue"`
	Rolling decimal.NullDecimal `json:"rolling_average"`
}

type Report struct {
	Quarters            Quarters            `json:"quarters"`
	LostClients         []QuarterRow        `json:"lost_clients"`
	TopLosses           []QuarterRow        `json:"top_losses"`
	ServiceLineTrends   []QuarterRow        `json:"service_line_trends"`
	ServiceOfferings    []SummaryRow        `json:"service_offering_summary"`
	ClientProfitability []SummaryRow        `json:"client_profitability"`
	CountryTrends       []QuarterRow        `json:"country_trends"`
	MonthlyRevenue      []TrendPoint        `json:"monthly_revenue"`
	PeakRevenue         decimal.NullDecimal `json:"peak_monthly_revenue"`
	LowRevenue          decimal.NullDecimal `json:"low_monthly_revenue"`
}

type Facets struct {
	Countries []string `json:"countries"`
	Periods   []string `json:"periods"`
}
