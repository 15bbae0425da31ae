package csv

import (
	"context"
	encsv "encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/biztools/revenue-atlas/pkg/models/domain"
)

// Source column headers, exactly as they appear in the input file.
const (
	colClient          = "Client name"
	colCountry         = "Country"
	colServiceLine     = "Service Lines"
	colServiceOffering = "Service Offerings"
	colYearMonth       = "[Year-Month]"
	colRevenue         = "Revenue"
	colTotalCost       = "Total Cost"
	colGrossProfit     = "Gross Profit"
	colDirectProfit    = "Direct Profit"
)

var requiredColumns = []string{
	colClient, colCountry, colServiceLine, colServiceOffering,
	colYearMonth, colRevenue, colTotalCost, colGrossProfit, colDirectProfit,
}

// Store is a read-only record store backed by a tabular file. Records load
// once at construction; after that the store is safe for concurrent report
// runs.
type Store struct {
	records []domain.Record
}

// NewStore reads and parses the file at path.
func NewStore(path string) (*Store, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening record file: %w", err)
	}
	defer f.Close()

	store, err := NewStoreFromReader(f)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return store, nil
}

// NewStoreFromReader parses CSV content with the source header row. Unknown
// columns are ignored; a missing required column is an error. Monetary cells
// that do not parse coerce to missing rather than rejecting the row.
func NewStoreFromReader(r io.Reader) (*Store, error) {
	reader := encsv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.TrimSpace(name)] = i
	}
	for _, name := range requiredColumns {
		if _, ok := cols[name]; !ok {
			return nil, fmt.Errorf("missing required column %q", name)
		}
	}

	var records []domain.Record
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading row %d: %w", len(records)+1, err)
		}

		cell := func(name string) string {
			idx := cols[name]
			if idx >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[idx])
		}

		records = append(records, domain.Record{
			ClientName:      cell(colClient),
			Country:         cell(colCountry),
			ServiceLine:     cell(colServiceLine),
			ServiceOffering: cell(colServiceOffering),
			YearMonth:       cell(colYearMonth),
			Revenue:         parseMoney(cell(colRevenue)),
			TotalCost:       parseMoney(cell(colTotalCost)),
			GrossProfit:     parseMoney(cell(colGrossProfit)),
			DirectProfit:    parseMoney(cell(colDirectProfit)),
		})
	}

	return &Store{records: records}, nil
}

// Records returns the loaded record set. Callers treat it as read-only.
func (s *Store) Records(_ context.Context) ([]domain.Record, error) {
	return s.records, nil
}

func parseMoney(value string) decimal.NullDecimal {
	if value == "" {
		return decimal.NullDecimal{}
	}
	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(d)
}
