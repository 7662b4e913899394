package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// DateFormat is the calendar date layout used in all normalized output.
const DateFormat = "2006-01-02"

// RawRecord is a single source row as read from a CSV or XLSX file,
// before any normalization. Open and Close carry the original cell text
// and may be empty or malformed.
type RawRecord struct {
	Line  int    `json:"line"`
	Date  string `json:"date"`
	Open  string `json:"open,omitempty"`
	Close string `json:"close,omitempty"`
}

// PricePoint is one normalized daily observation of an index.
// Open and Close are always present and numeric.
type PricePoint struct {
	Date  time.Time       `json:"date" validate:"required"`
	Open  decimal.Decimal `json:"open"`
	Close decimal.Decimal `json:"close"`
}

// CSVRow renders the point in the normalized Date,Open,Close schema.
// Decimal values keep their source precision so a normalized file
// round-trips byte for byte.
func (p PricePoint) CSVRow() []string {
	return []string{p.Date.Format(DateFormat), PriceString(p.Open), PriceString(p.Close)}
}

// PriceString renders a price at the scale it was parsed with.
// decimal.Decimal.String trims trailing zeros ("2751.90" becomes
// "2751.9"); rendering at the stored exponent keeps the source text
// intact, which is what makes re-normalizing an output file a no-op.
func PriceString(d decimal.Decimal) string {
	if d.Exponent() >= 0 {
		return d.String()
	}
	return d.StringFixed(-d.Exponent())
}

// Series is the ordered history of one index.
type Series struct {
	ID     string       `json:"id" validate:"required"`
	Name   string       `json:"name,omitempty"`
	Points []PricePoint `json:"points"`
}

// Validate checks the series invariant: dates strictly increasing,
// which also rules out duplicates.
func (s *Series) Validate() error {
	for i := 1; i < len(s.Points); i++ {
		prev, cur := s.Points[i-1].Date, s.Points[i].Date
		if !cur.After(prev) {
			return fmt.Errorf("series %s: dates not strictly increasing at row %d (%s then %s)",
				s.ID, i, prev.Format(DateFormat), cur.Format(DateFormat))
		}
	}
	return nil
}

// First returns the earliest point, or false for an empty series.
func (s *Series) First() (PricePoint, bool) {
	if len(s.Points) == 0 {
		return PricePoint{}, false
	}
	return s.Points[0], true
}

// Last returns the latest point, or false for an empty series.
func (s *Series) Last() (PricePoint, bool) {
	if len(s.Points) == 0 {
		return PricePoint{}, false
	}
	return s.Points[len(s.Points)-1], true
}
