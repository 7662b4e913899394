package exporter

import (
	"fmt"
)

// formatFloat formats a float64 for CSV output with exactly 2 decimal
// places, so values like 13.4 appear as 13.40.
func formatFloat(f float64) string {
	return fmt.Sprintf("%.2f", f)
}

// formatPercent formats a percentage statistic with 3 decimal places.
func formatPercent(f float64) string {
	return fmt.Sprintf("%.3f", f)
}

// formatInt formats an int for CSV output
func formatInt(i int) string {
	return fmt.Sprintf("%d", i)
}
