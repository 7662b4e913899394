package dataprocessing

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"idxcli/internal/errors"
	"idxcli/internal/infrastructure"
	"idxcli/pkg/contracts/domain"
)

// Normalizer converts raw source rows into a clean price series:
// ISO dates, numeric open/close, ascending order, no duplicates.
type Normalizer struct {
	logger *slog.Logger
}

// NewNormalizer creates a normalizer. A nil logger falls back to the
// application logger.
func NewNormalizer(logger *slog.Logger) *Normalizer {
	if logger == nil {
		logger = infrastructure.GetLogger()
	}
	return &Normalizer{logger: logger}
}

// NormalizeStats reports what happened to the rows of one source file.
type NormalizeStats struct {
	Dialect        string
	RowsIn         int
	RowsOut        int
	DroppedRows    int
	FilledOpens    int
	DuplicateDates int
}

// dateLayouts are the accepted input date formats, tried in order.
// Single-digit layout verbs also match zero-padded values.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006/1/2",
	"20060102",
	"1/2/2006",
}

// Normalize applies the normalization contract to raw source rows.
// formatHint is the configured source format ("", "auto", or a family
// name); when set, a source whose detected dialect belongs to a different
// family is rejected rather than silently misread.
func (n *Normalizer) Normalize(id string, rows [][]string, formatHint string) (domain.Series, NormalizeStats, error) {
	d, cm, err := detectDialect(rows)
	if err != nil {
		return domain.Series{}, NormalizeStats{}, err
	}
	if formatHint != "" && formatHint != "auto" && d.family() != formatHint {
		return domain.Series{}, NormalizeStats{}, errors.New(errors.CodeUnknownDialect,
			fmt.Sprintf("index %s: source detected as %s but config expects %s", id, d, formatHint))
	}

	records := extractRecords(rows, d, cm)
	stats := NormalizeStats{Dialect: d.String(), RowsIn: len(records)}

	byDate := make(map[time.Time]domain.PricePoint, len(records))
	for _, rec := range records {
		date, err := parseDate(rec.Date)
		if err != nil {
			stats.DroppedRows++
			n.logger.Debug("dropping row",
				slog.String("index", id),
				slog.String("error", errors.ParseError(rec.Line, err.Error()).Error()))
			continue
		}

		closeVal, ok := parsePrice(rec.Close)
		if !ok {
			stats.DroppedRows++
			n.logger.Debug("dropping row",
				slog.String("index", id),
				slog.String("error", errors.ParseError(rec.Line,
					fmt.Sprintf("unusable close price %q", rec.Close)).Error()))
			continue
		}

		openVal, ok := parsePrice(rec.Open)
		if !ok {
			// Missing open falls back to the close price.
			openVal = closeVal
			stats.FilledOpens++
		}

		if _, dup := byDate[date]; dup {
			stats.DuplicateDates++
		}
		// Last-seen row wins for a duplicate date.
		byDate[date] = domain.PricePoint{Date: date, Open: openVal, Close: closeVal}
	}

	points := make([]domain.PricePoint, 0, len(byDate))
	for _, p := range byDate {
		points = append(points, p)
	}
	sort.Slice(points, func(i, j int) bool {
		return points[i].Date.Before(points[j].Date)
	})

	series := domain.Series{ID: id, Points: points}
	if err := series.Validate(); err != nil {
		return domain.Series{}, stats, errors.Wrap(errors.CodeParseError, "normalized series invalid", err)
	}
	stats.RowsOut = len(points)

	if stats.FilledOpens > 0 {
		n.logger.Info("filled missing open prices from close",
			slog.String("index", id),
			slog.Int("count", stats.FilledOpens))
	}

	return series, stats, nil
}

// parseDate parses a source date under the accepted layouts and truncates
// it to a UTC calendar date.
func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable date %q", s)
}

// parsePrice parses a price cell, tolerating thousands separators.
// Empty and non-numeric cells report ok=false.
func parsePrice(s string) (decimal.Decimal, bool) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return decimal.Decimal{}, false
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, false
	}
	return d, true
}
