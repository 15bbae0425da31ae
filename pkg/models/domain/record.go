package domain

import "github.com/shopspring/decimal"

// Record is one transaction line as ingested from the source file.
// Monetary fields use decimal.NullDecimal: Valid=false means the source
// value was absent or malformed and the row was kept anyway.
type Record struct {
	ClientName      string
	Country         string
	ServiceLine     string
	ServiceOffering string
	YearMonth       string // "2006-01"
	Revenue         decimal.NullDecimal
	TotalCost       decimal.NullDecimal
	GrossProfit     decimal.NullDecimal
	DirectProfit    decimal.NullDecimal
}

// AnnotatedRecord is a Record with its derived fiscal quarter. The original
// year-month stays available alongside the quarter label.
type AnnotatedRecord struct {
	Record
	Quarter string // "2006Q1"
}

// Dimension identifies a groupable field of a record.
type Dimension string

const (
	DimClient          Dimension = "client"
	DimCountry         Dimension = "country"
	DimServiceLine     Dimension = "service_line"
	DimServiceOffering Dimension = "service_offering"
	DimYearMonth       Dimension = "year_month"
	DimQuarter         Dimension = "quarter"
)

// Measure identifies a summable numeric field of a record.
type Measure string

const (
	MeasureRevenue      Measure = "revenue"
	MeasureTotalCost    Measure = "total_cost"
	MeasureGrossProfit  Measure = "gross_profit"
	MeasureDirectProfit Measure = "direct_profit"
)

// DimensionValue returns the record's value for the given dimension.
func (r AnnotatedRecord) DimensionValue(d Dimension) string {
	switch d {
	case DimClient:
		return r.ClientName
	case DimCountry:
		return r.Country
	case DimServiceLine:
		return r.ServiceLine
	case DimServiceOffering:
		return r.ServiceOffering
	case DimYearMonth:
		return r.YearMonth
	case DimQuarter:
		return r.Quarter
	}
	return ""
}

// MeasureValue returns the record's value for the given measure.
func (r Record) MeasureValue(m Measure) decimal.NullDecimal {
	switch m {
	case MeasureRevenue:
		return r.Revenue
	case MeasureTotalCost:
		return r.TotalCost
	case MeasureGrossProfit:
		return r.GrossProfit
	case MeasureDirectProfit:
		return r.DirectProfit
	}
	return decimal.NullDecimal{}
}
