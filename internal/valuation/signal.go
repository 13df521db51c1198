package valuation

import "math"

const weightTolerance = 1e-9

const (
	Aligned     = "aligned"
	Conflicting = "conflicting"
	Neutral     = "neutral"
)

// Weights is the blend applied to the PPP misalignment and the IFE exact change.
//
// The pair is expected to sum to 1.0 so the combined value stays a percentage
// on the same scale as its inputs. This is not enforced.
type Weights struct {
	PPP float64 `mapstructure:"weight_ppp" json:"weight_ppp" yaml:"weight_ppp"`
	IFE float64 `mapstructure:"weight_ife" json:"weight_ife" yaml:"weight_ife"`
}

// DefaultWeights returns the equal 50/50 blend.
func DefaultWeights() Weights {
	return Weights{PPP: 0.5, IFE: 0.5}
}

// SumsToOne reports whether the weights add up to 1.0 within rounding.
func (w Weights) SumsToOne() bool {
	return math.Abs(w.PPP+w.IFE-1) <= weightTolerance
}

// CombinedSignal is the weighted blend of the two indicators.
type CombinedSignal struct {
	Value     float64 `json:"combined_signal" yaml:"combined_signal"`
	WeightPPP float64 `json:"weight_ppp" yaml:"weight_ppp"`
	WeightIFE float64 `json:"weight_ife" yaml:"weight_ife"`
	Agreement string  `json:"agreement" yaml:"agreement"`
}

// CombineSignals blends the PPP misalignment with the IFE exact change.
// Both components read "positive means the domestic currency should weaken",
// so a positive blend points to an overvalued currency likely to depreciate.
func CombineSignals(ppp PPPResult, ife IFEResult, w Weights) CombinedSignal {
	return CombinedSignal{
		Value:     w.PPP*ppp.MisalignmentPercent + w.IFE*ife.PredictedChangeExact,
		WeightPPP: w.PPP,
		WeightIFE: w.IFE,
		Agreement: agreement(ppp.MisalignmentPercent, ife.PredictedChangeExact),
	}
}

// ClassifyCombined maps a combined signal to a verdict.
func ClassifyCombined(value float64) string {
	switch {
	case nonFinite(value):
		return Undefined
	case value > 0:
		return Overvalued
	case value < 0:
		return Undervalued
	default:
		return Neutral
	}
}

func agreement(a, b float64) string {
	if nonFinite(a) || nonFinite(b) {
		return Undefined
	}
	if a == 0 || b == 0 {
		return Neutral
	}
	if math.Signbit(a) == math.Signbit(b) {
		return Aligned
	}
	return Conflicting
}
