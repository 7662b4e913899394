package dataprocessing

import (
	"math"

	"idxcli/pkg/contracts/domain"
)

// Summarize computes run-report statistics for a normalized series:
// row count, date range, period return, and daily return mean and
// volatility. An empty series yields a zero summary.
func Summarize(series domain.Series) domain.SeriesSummary {
	summary := domain.SeriesSummary{
		ID:   series.ID,
		Name: series.Name,
		Rows: len(series.Points),
	}

	first, ok := series.First()
	if !ok {
		return summary
	}
	last, _ := series.Last()

	summary.FirstDate = first.Date
	summary.LastDate = last.Date
	summary.FirstClose = first.Close
	summary.LastClose = last.Close

	firstClose := first.Close.InexactFloat64()
	if firstClose != 0 {
		summary.PeriodReturnPct = (last.Close.InexactFloat64()/firstClose - 1) * 100
	}

	returns := dailyReturns(series.Points)
	if len(returns) == 0 {
		return summary
	}
	mean := meanOf(returns)
	summary.MeanDailyReturnPct = mean * 100
	summary.DailyVolatilityPct = stddevOf(returns, mean) * 100

	return summary
}

// dailyReturns computes close-to-close simple returns. Days following a
// zero close are skipped.
func dailyReturns(points []domain.PricePoint) []float64 {
	var returns []float64
	for i := 1; i < len(points); i++ {
		prev := points[i-1].Close.InexactFloat64()
		if prev == 0 {
			continue
		}
		returns = append(returns, points[i].Close.InexactFloat64()/prev-1)
	}
	return returns
}

func meanOf(values []float64) float64 {
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// stddevOf computes the sample standard deviation around mean.
func stddevOf(values []float64, mean float64) float64 {
	if len(values) < 2 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		d := v - mean
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(values)-1))
}
