package pricing

import (
	"time"

	"github.com/shopspring/decimal"
)

var secondsPerMinute = decimal.NewFromInt(60)

// Estimate is the billed usage of one transcription.
type Estimate struct {
	Minutes decimal.Decimal
	CostUSD decimal.Decimal
}

// MinutesString formats minutes with two decimals, e.g. "1.50".
func (e Estimate) MinutesString() string {
	return e.Minutes.StringFixed(2)
}

// CostString formats the cost with four decimals, e.g. "0.0090".
func (e Estimate) CostString() string {
	return e.CostUSD.StringFixed(4)
}

// Calculator prices audio by the minute.
type Calculator struct {
	perMinute decimal.Decimal
}

// NewCalculator returns a Calculator charging costPerMinute USD.
func NewCalculator(costPerMinute float64) *Calculator {
	return &Calculator{perMinute: decimal.NewFromFloat(costPerMinute)}
}

// Estimate prices duration. Unknown durations (zero or negative) cost nothing.
func (c *Calculator) Estimate(duration time.Duration) Estimate {
	if duration <= 0 {
		return Estimate{Minutes: decimal.Zero, CostUSD: decimal.Zero}
	}
	minutes := decimal.NewFromFloat(duration.Seconds()).Div(secondsPerMinute)
	return Estimate{
		Minutes: minutes,
		CostUSD: minutes.Mul(c.perMinute),
	}
}
