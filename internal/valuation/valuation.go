// Package valuation implements the purchasing power parity and international
// Fisher effect calculators together with their weighted combination.
//
// All functions are pure. Inputs are not range-checked: negative or infinite
// values propagate arithmetically. The only faults reported are zero
// divisors, surfaced as ErrDivisionByZero.
package valuation

import (
	"errors"
	"fmt"
	"math"
)

// ErrDivisionByZero is returned when an input makes a formula divide by zero.
var ErrDivisionByZero = errors.New("division by zero")

// PPPResult holds the purchasing power parity outputs.
type PPPResult struct {
	PPPImpliedRate      float64 `json:"ppp_implied_rate" yaml:"ppp_implied_rate"`
	MisalignmentPercent float64 `json:"misalignment_percent" yaml:"misalignment_percent"`
}

// IFEResult holds the international Fisher effect outputs, all in percent.
type IFEResult struct {
	PredictedChangeExact  float64 `json:"predicted_change_exact" yaml:"predicted_change_exact"`
	PredictedChangeApprox float64 `json:"predicted_change_approx" yaml:"predicted_change_approx"`
	InterestDifferential  float64 `json:"interest_differential" yaml:"interest_differential"`
}

// ApproximationGap returns how far the linear approximation is from the exact change.
func (r IFEResult) ApproximationGap() float64 {
	return r.PredictedChangeExact - r.PredictedChangeApprox
}

// CalculatePPP derives the PPP-implied exchange rate (domestic per foreign)
// and the percentage by which currentExchangeRate deviates from it.
// A positive misalignment means the domestic currency is overvalued.
func CalculatePPP(domesticPrice, foreignPrice, currentExchangeRate float64) (PPPResult, error) {
	if foreignPrice == 0 {
		return PPPResult{}, fmt.Errorf("ppp implied rate: foreign price index is zero: %w", ErrDivisionByZero)
	}

	implied := domesticPrice / foreignPrice
	if implied == 0 {
		return PPPResult{}, fmt.Errorf("ppp misalignment: implied rate is zero: %w", ErrDivisionByZero)
	}

	return PPPResult{
		PPPImpliedRate:      implied,
		MisalignmentPercent: (currentExchangeRate - implied) / implied * 100.0,
	}, nil
}

// CalculateIFE predicts the exchange-rate change implied by two nominal
// interest rates given as decimals (0.05 for 5%). A positive change means the
// domestic currency is expected to depreciate.
func CalculateIFE(domesticInterest, foreignInterest float64) (IFEResult, error) {
	if 1+foreignInterest == 0 {
		return IFEResult{}, fmt.Errorf("ife predicted change: foreign interest rate is -1: %w", ErrDivisionByZero)
	}

	differential := (domesticInterest - foreignInterest) * 100.0
	return IFEResult{
		PredictedChangeExact:  ((1+domesticInterest)/(1+foreignInterest) - 1) * 100.0,
		PredictedChangeApprox: differential,
		InterestDifferential:  differential,
	}, nil
}

const (
	Overvalued  = "overvalued"
	Undervalued = "undervalued"
	Parity      = "parity"

	Depreciate = "depreciate"
	Appreciate = "appreciate"
	Flat       = "flat"

	// Undefined is the verdict for a NaN or infinite input.
	Undefined = "undefined"
)

func nonFinite(v float64) bool {
	return math.IsNaN(v) || math.IsInf(v, 0)
}

// ClassifyMisalignment maps a PPP misalignment to a valuation verdict.
func ClassifyMisalignment(pct float64) string {
	switch {
	case nonFinite(pct):
		return Undefined
	case pct > 0:
		return Overvalued
	case pct < 0:
		return Undervalued
	default:
		return Parity
	}
}

// ClassifyExpectedChange maps an IFE predicted change to the expected move of the domestic currency.
func ClassifyExpectedChange(pct float64) string {
	switch {
	case nonFinite(pct):
		return Undefined
	case pct > 0:
		return Depreciate
	case pct < 0:
		return Appreciate
	default:
		return Flat
	}
}
