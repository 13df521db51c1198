package valuation

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCombineSignalsDefaultWeights(t *testing.T) {
	ppp, err := CalculatePPP(120.5, 115.2, 1.08)
	require.NoError(t, err)
	ife, err := CalculateIFE(0.045, 0.025)
	require.NoError(t, err)

	sig := CombineSignals(ppp, ife, DefaultWeights())
	assert.InDelta(t, 0.5*ppp.MisalignmentPercent+0.5*ife.PredictedChangeExact, sig.Value, 1e-12)
	assert.InDelta(t, 2.6005, sig.Value, 1e-3)
	assert.Equal(t, Aligned, sig.Agreement)
	assert.Equal(t, Overvalued, ClassifyCombined(sig.Value))
	assert.Equal(t, 0.5, sig.WeightPPP)
	assert.Equal(t, 0.5, sig.WeightIFE)
}

func TestCombineSignalsCustomWeights(t *testing.T) {
	ppp := PPPResult{PPPImpliedRate: 1, MisalignmentPercent: 10}
	ife := IFEResult{PredictedChangeExact: -2}

	sig := CombineSignals(ppp, ife, Weights{PPP: 0.25, IFE: 0.75})
	assert.InDelta(t, 1.0, sig.Value, 1e-12)
	assert.Equal(t, Conflicting, sig.Agreement)

	sig = CombineSignals(ppp, ife, Weights{PPP: 0, IFE: 1})
	assert.InDelta(t, -2.0, sig.Value, 1e-12)
	assert.Equal(t, Undervalued, ClassifyCombined(sig.Value))
}

func TestCombineSignalsNeutral(t *testing.T) {
	sig := CombineSignals(PPPResult{MisalignmentPercent: 0}, IFEResult{PredictedChangeExact: 1.5}, DefaultWeights())
	assert.Equal(t, Neutral, sig.Agreement)

	sig = CombineSignals(PPPResult{}, IFEResult{}, DefaultWeights())
	assert.Equal(t, Neutral, ClassifyCombined(sig.Value))
}

func TestWeightsSumsToOne(t *testing.T) {
	assert.True(t, DefaultWeights().SumsToOne())
	assert.True(t, Weights{PPP: 0.7, IFE: 0.3}.SumsToOne())
	assert.True(t, Weights{PPP: 0.1, IFE: 0.9}.SumsToOne())
	assert.False(t, Weights{PPP: 0.5, IFE: 0.6}.SumsToOne())
	assert.False(t, Weights{}.SumsToOne())
}

func TestCombineSignalsNonFinite(t *testing.T) {
	sig := CombineSignals(PPPResult{MisalignmentPercent: math.NaN()}, IFEResult{PredictedChangeExact: 1.95}, DefaultWeights())
	assert.True(t, math.IsNaN(sig.Value))
	assert.Equal(t, Undefined, sig.Agreement)
	assert.Equal(t, Undefined, ClassifyCombined(sig.Value))
}
