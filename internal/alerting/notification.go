package alerting

import (
	"errors"
	"math"
	"time"

	"github.com/shopspring/decimal"

	"fx-valuation/internal/analysis"
)

// ErrNonFinite is returned when a report cannot be expressed as decimals.
var ErrNonFinite = errors.New("analysis produced a non-finite value")

// FromReport condenses a combined report into a notification. The report must
// carry both legs and the combined signal.
func FromReport(rep analysis.Report, thresholdPct float64, channels []string, at time.Time) (Notification, error) {
	if rep.PPP == nil || rep.IFE == nil || rep.Combined == nil {
		return Notification{}, errors.New("report has no combined signal")
	}

	values := []float64{
		rep.PPP.PPPImpliedRate,
		rep.Scenario.ExchangeRate,
		rep.PPP.MisalignmentPercent,
		rep.IFE.PredictedChangeExact,
		rep.Combined.Value,
		thresholdPct,
	}
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return Notification{}, ErrNonFinite
		}
	}

	return Notification{
		Pair:            rep.Scenario.Pair,
		GeneratedAt:     at.UTC(),
		PPPImpliedRate:  decimal.NewFromFloat(rep.PPP.PPPImpliedRate),
		ExchangeRate:    decimal.NewFromFloat(rep.Scenario.ExchangeRate),
		MisalignmentPct: decimal.NewFromFloat(rep.PPP.MisalignmentPercent),
		PredictedChange: decimal.NewFromFloat(rep.IFE.PredictedChangeExact),
		CombinedPct:     decimal.NewFromFloat(rep.Combined.Value),
		ThresholdPct:    decimal.NewFromFloat(thresholdPct),
		Verdict:         rep.CombinedVerdict,
		Agreement:       rep.Combined.Agreement,
		Channels:        channels,
	}, nil
}

// Breaches reports whether the combined signal lies strictly outside the
// threshold band.
func Breaches(rep analysis.Report, thresholdPct float64) bool {
	if rep.Combined == nil {
		return false
	}
	return math.Abs(rep.Combined.Value) > thresholdPct
}
