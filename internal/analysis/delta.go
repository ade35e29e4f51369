package analysis

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// DeltaPercent is the percentage change from dry to wet pace, rounded to two
// decimal places. Positive means slower in the wet. It is undefined for a
// zero dry pace.
func DeltaPercent(dry, wet float64) (float64, bool) {
	if dry == 0 {
		return 0, false
	}
	d := decimal.NewFromFloat(dry)
	delta := decimal.NewFromFloat(wet).Sub(d).Div(d).Mul(hundred).Round(2)
	f, _ := delta.Float64()
	return f, true
}
