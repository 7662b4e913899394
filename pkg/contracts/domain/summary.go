package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// SeriesSummary holds per-index statistics for one normalization run.
// Return and volatility figures are percentages.
type SeriesSummary struct {
	ID                 string          `json:"id"`
	Name               string          `json:"name,omitempty"`
	Rows               int             `json:"rows"`
	FirstDate          time.Time       `json:"first_date"`
	LastDate           time.Time       `json:"last_date"`
	FirstClose         decimal.Decimal `json:"first_close"`
	LastClose          decimal.Decimal `json:"last_close"`
	PeriodReturnPct    float64         `json:"period_return_pct"`
	MeanDailyReturnPct float64         `json:"mean_daily_return_pct"`
	DailyVolatilityPct float64         `json:"daily_volatility_pct"`
}
