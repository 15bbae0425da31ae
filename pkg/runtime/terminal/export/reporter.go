package export

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/template"

	"github.com/shopspring/decimal"

	"github.com/biztools/revenue-atlas/pkg/models/domain"
)

type TableConfig struct {
	NameWidth  int
	ValueWidth int
}

func DefaultTableConfig() TableConfig {
	return TableConfig{
		NameWidth:  36,
		ValueWidth: 16,
	}
}

type Reporter struct {
	writer io.Writer
	config TableConfig
}

func NewReporter(writer io.Writer) *Reporter {
	if writer == nil {
		writer = os.Stdout
	}
	return &Reporter{
		writer: writer,
		config: DefaultTableConfig(),
	}
}

type renderTable struct {
	Title   string
	Columns []string
	Rows    [][]string
}

type renderReport struct {
	Earlier string
	Later   string
	Tables  []renderTable
	Peak    string
	Low     string
}

func (c *Reporter) Handle(report *domain.RevenueReport) error {
	funcMap := template.FuncMap{
		"formatRow": func(cells []string) string {
			parts := make([]string, len(cells))
			for i, cell := range cells {
				width := c.config.ValueWidth
				if i == 0 {
					width = c.config.NameWidth
				}
				parts[i] = fmt.Sprintf(" %-*s ", width, cell)
			}
			return "|" + strings.Join(parts, "|") + "|"
		},
		"separator": func(cells []string) string {
			parts := make([]string, len(cells))
			for i := range cells {
				width := c.config.ValueWidth
				if i == 0 {
					width = c.config.NameWidth
				}
				parts[i] = strings.Repeat("-", width+2)
			}
			return "+" + strings.Join(parts, "+") + "+"
		},
	}

	tmpl := `
Business Revenue Report ({{.Earlier}} vs {{.Later}})
{{range .Tables}}
=== {{.Title}} ===
{{separator .Columns}}
{{formatRow .Columns}}
{{separator .Columns}}
{{range .Rows}}{{formatRow .}}
{{end}}{{separator .Columns}}
{{end}}
Peak Monthly Revenue: {{.Peak}}
Lowest Monthly Revenue: {{.Low}}
`

	t, err := template.New("report").Funcs(funcMap).Parse(tmpl)
	if err != nil {
		return fmt.Errorf("failed to parse report template: %w", err)
	}
	return t.Execute(c.writer, c.buildModel(report))
}

func (c *Reporter) buildModel(report *domain.RevenueReport) renderReport {
	quarters := report.Quarters
	model := renderReport{
		Earlier: quarters.Earlier,
		Later:   quarters.Later,
		Peak:    moneyOrDash(report.PeakRevenue),
		Low:     moneyOrDash(report.LowRevenue),
	}

	model.Tables = append(model.Tables,
		quarterTable("Lost Clients", "Client", report.LostClients, quarters),
		quarterTable("Top Revenue Losses", "Client", report.TopLosses, quarters),
		quarterTable("Service Line Trends", "Service Line", report.ServiceLineTrends, quarters),
		summaryTable("Service Offering Summary", "Service Offering", report.ServiceOfferings),
		summaryTable("Client Profitability", "Client", report.ClientProfitability),
		quarterTable("Country Trends", "Country", report.CountryTrends, quarters),
	)

	trend := renderTable{
		Title:   "Monthly Revenue",
		Columns: []string{"Period", "Revenue", "Rolling Average"},
	}
	for _, p := range report.MonthlyRevenue {
		trend.Rows = append(trend.Rows, []string{p.Period, money(p.Value), moneyOrDash(p.Rolling)})
	}
	model.Tables = append(model.Tables, trend)

	return model
}

func quarterTable(title, dimension string, rows []domain.ChangeRow, quarters domain.QuarterPair) renderTable {
	table := renderTable{
		Title:   title,
		Columns: []string{dimension, quarters.Earlier, quarters.Later, "Change"},
	}
	for _, row := range rows {
		table.Rows = append(table.Rows, []string{
			row.Key[0],
			money(row.Pivot[quarters.Earlier]),
			money(row.Pivot[quarters.Later]),
			money(row.Change),
		})
	}
	return table
}

func summaryTable(title, dimension string, rows []domain.AggregateRow) renderTable {
	table := renderTable{
		Title:   title,
		Columns: []string{dimension, "Revenue", "Total Cost", "Gross Profit", "Direct Profit"},
	}
	for _, row := range rows {
		table.Rows = append(table.Rows, []string{
			row.Key[0],
			moneyOrDash(row.Measures[domain.MeasureRevenue]),
			moneyOrDash(row.Measures[domain.MeasureTotalCost]),
			moneyOrDash(row.Measures[domain.MeasureGrossProfit]),
			moneyOrDash(row.Measures[domain.MeasureDirectProfit]),
		})
	}
	return table
}

func money(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}

func moneyOrDash(d decimal.NullDecimal) string {
	if !d.Valid {
		return "-"
	}
	return money(d.Decimal)
}
