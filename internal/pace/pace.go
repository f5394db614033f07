package pace

import (
	"github.com/shopspring/decimal"

	"pacewatch/internal/model"
)

// classifyBand is the hysteresis tolerance around expected spend.
// Deviations within ±5% of expected classify as on_pace, so small
// day-to-day noise does not flip the classification.
var classifyBand = decimal.NewFromFloat(0.05)

var hundred = decimal.NewFromInt(100)

// ExpectedSpend returns the expected cumulative spend by the given
// day, and which baseline produced it.
//
// With no prior-month curve the baseline is a linear ramp of the
// monthly target. When the prior curve covers the day, last month's
// actual spend-by-this-day is used directly; recurring bills that
// land early each month then produce symmetric curves instead of
// false "ahead of pace" readings. A day past the prior month's end
// (31st vs a 28-day prior) clamps to the prior month's final total.
func ExpectedSpend(day, daysInMonth int, prior model.CumulativeCurve, target decimal.Decimal) (decimal.Decimal, model.PaceSource) {
	if prior.Empty() {
		return linearRamp(day, daysInMonth, target), model.SourceLinearRamp
	}
	if v, ok := prior.At(day); ok {
		return v, model.SourcePriorCurve
	}
	if day > prior.Days {
		return prior.Final(), model.SourcePriorCurve
	}
	return linearRamp(day, daysInMonth, target), model.SourceLinearRamp
}

// Classify buckets a deviation from expected spend. Negative delta
// (under expected) beyond the band is ahead; positive beyond the band
// is behind.
func Classify(delta, expected decimal.Decimal) model.PaceClass {
	band := expected.Mul(classifyBand)
	switch {
	case delta.LessThan(band.Neg()):
		return model.PaceAhead
	case delta.GreaterThan(band):
		return model.PaceBehind
	default:
		return model.PaceOnPace
	}
}

// Result assembles the full pace comparison for "today".
func Result(day, daysInMonth int, prior model.CumulativeCurve, target, actual decimal.Decimal) model.PaceResult {
	expected, source := ExpectedSpend(day, daysInMonth, prior, target)

	delta := actual.Sub(expected)
	percentDelta := decimal.Zero
	if !expected.IsZero() {
		percentDelta = delta.Div(expected).Mul(hundred).Round(1)
	}

	return model.PaceResult{
		Expected:       expected.Round(2),
		Actual:         actual.Round(2),
		Delta:          delta.Round(2),
		PercentDelta:   percentDelta,
		Classification: Classify(delta, expected),
		Source:         source,
	}
}

func linearRamp(day, daysInMonth int, target decimal.Decimal) decimal.Decimal {
	if daysInMonth <= 0 || target.Sign() <= 0 {
		return decimal.Zero
	}
	return target.
		Mul(decimal.NewFromInt(int64(day))).
		Div(decimal.NewFromInt(int64(daysInMonth))).
		Round(2)
}
