package exporter

import (
	"sort"

	"idxcli/pkg/contracts/domain"
)

// SummaryHeader is the header of the per-run summary report.
var SummaryHeader = []string{
	"Index", "Name", "Rows", "FirstDate", "LastDate",
	"FirstClose", "LastClose", "PeriodReturnPct",
	"MeanDailyReturnPct", "DailyVolatilityPct",
}

// WriteSummary writes per-index run statistics, sorted by index ID.
func (w *CSVWriter) WriteSummary(filePath string, summaries []domain.SeriesSummary) error {
	sorted := make([]domain.SeriesSummary, len(summaries))
	copy(sorted, summaries)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].ID < sorted[j].ID
	})

	records := make([][]string, 0, len(sorted))
	for _, s := range sorted {
		records = append(records, summaryToCSVRow(s))
	}
	return w.WriteSimpleCSV(filePath, SummaryHeader, records)
}

// summaryToCSVRow converts a series summary to a CSV row.
func summaryToCSVRow(s domain.SeriesSummary) []string {
	return []string{
		s.ID,
		s.Name,
		formatInt(s.Rows),
		s.FirstDate.Format(domain.DateFormat),
		s.LastDate.Format(domain.DateFormat),
		domain.PriceString(s.FirstClose),
		domain.PriceString(s.LastClose),
		formatFloat(s.PeriodReturnPct),
		formatPercent(s.MeanDailyReturnPct),
		formatPercent(s.DailyVolatilityPct),
	}
}
