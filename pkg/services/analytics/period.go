package analytics

import (
	"fmt"
	"time"

	"github.com/biztools/revenue-atlas/pkg/models/domain"
)

const periodLayout = "2006-01"

// MalformedPeriodError reports a year-month label that could not be parsed.
// Row is the zero-based index of the offending record, or -1 when the label
// was checked outside a record set.
type MalformedPeriodError struct {
	Value string
	Row   int
}

func (e *MalformedPeriodError) Error() string {
	if e.Row < 0 {
		return fmt.Sprintf("malformed period %q", e.Value)
	}
	return fmt.Sprintf("malformed period %q at row %d", e.Value, e.Row)
}

// ToQuarter derives the fiscal-quarter label ("2024Q1") for a year-month
// label ("2024-01").
func ToQuarter(yearMonth string) (string, error) {
	t, err := time.Parse(periodLayout, yearMonth)
	if err != nil {
		return "", &MalformedPeriodError{Value: yearMonth, Row: -1}
	}
	quarter := (int(t.Month()) + 2) / 3
	return fmt.Sprintf("%dQ%d", t.Year(), quarter), nil
}

// Annotate derives the quarter for every record. The first malformed period
// aborts the whole pass with the offending value and row identified.
func Annotate(records []domain.Record) ([]domain.AnnotatedRecord, error) {
	out := make([]domain.AnnotatedRecord, 0, len(records))
	for i, r := range records {
		quarter, err := ToQuarter(r.YearMonth)
		if err != nil {
			if perr, ok := err.(*MalformedPeriodError); ok {
				perr.Row = i
			}
			return nil, err
		}
		out = append(out, domain.AnnotatedRecord{Record: r, Quarter: quarter})
	}
	return out, nil
}
