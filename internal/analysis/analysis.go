package analysis

import (
	"errors"
	"fmt"
	"math"

	"github.com/rs/zerolog"

	"fx-valuation/internal/valuation"
)

// ErrNotFinite marks a report whose inputs or results overflowed to NaN or Inf.
var ErrNotFinite = errors.New("result is not a finite number")

// Economy is one side of a currency pair.
type Economy struct {
	Name         string  `json:"name" yaml:"name"`
	PriceIndex   float64 `json:"price_index" yaml:"price_index"`
	InterestRate float64 `json:"interest_rate" yaml:"interest_rate"`
}

// Scenario is a currency pair quoted as domestic units per foreign unit.
type Scenario struct {
	Pair         string  `json:"pair" yaml:"pair"`
	Domestic     Economy `json:"domestic" yaml:"domestic"`
	Foreign      Economy `json:"foreign" yaml:"foreign"`
	ExchangeRate float64 `json:"exchange_rate" yaml:"exchange_rate"`
}

// DefaultScenario is the US vs Eurozone demonstration pair.
func DefaultScenario() Scenario {
	return Scenario{
		Pair:         "USD/EUR",
		Domestic:     Economy{Name: "US", PriceIndex: 120.5, InterestRate: 0.045},
		Foreign:      Economy{Name: "EU", PriceIndex: 115.2, InterestRate: 0.025},
		ExchangeRate: 1.08,
	}
}

// Report is the outcome of analysing one scenario.
type Report struct {
	Scenario         Scenario                  `json:"scenario" yaml:"scenario"`
	PPP              *valuation.PPPResult      `json:"ppp,omitempty" yaml:"ppp,omitempty"`
	PPPVerdict       string                    `json:"ppp_verdict,omitempty" yaml:"ppp_verdict,omitempty"`
	IFE              *valuation.IFEResult      `json:"ife,omitempty" yaml:"ife,omitempty"`
	IFEVerdict       string                    `json:"ife_verdict,omitempty" yaml:"ife_verdict,omitempty"`
	ApproximationGap float64                   `json:"approximation_gap,omitempty" yaml:"approximation_gap,omitempty"`
	Combined         *valuation.CombinedSignal `json:"combined,omitempty" yaml:"combined,omitempty"`
	CombinedVerdict  string                    `json:"combined_verdict,omitempty" yaml:"combined_verdict,omitempty"`
	Warnings         []string                  `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

// Analyzer runs scenarios through the calculators.
type Analyzer struct {
	weights    valuation.Weights
	includeIFE bool
	logger     zerolog.Logger
}

// New constructs an Analyzer. When includeIFE is false only the PPP leg runs
// and no combined signal is produced.
func New(weights valuation.Weights, includeIFE bool, logger zerolog.Logger) *Analyzer {
	return &Analyzer{
		weights:    weights,
		includeIFE: includeIFE,
		logger:     logger.With().Str("component", "analysis").Logger(),
	}
}

// Analyze evaluates the scenario. Calculator faults are returned wrapped, so
// errors.Is(err, valuation.ErrDivisionByZero) still matches.
func (a *Analyzer) Analyze(s Scenario) (Report, error) {
	rep := Report{Scenario: s, Warnings: inputWarnings(s)}

	ppp, err := valuation.CalculatePPP(s.Domestic.PriceIndex, s.Foreign.PriceIndex, s.ExchangeRate)
	if err != nil {
		return Report{}, fmt.Errorf("ppp: %w", err)
	}
	rep.PPP = &ppp
	rep.PPPVerdict = valuation.ClassifyMisalignment(ppp.MisalignmentPercent)

	if a.includeIFE {
		if err := a.applyIFE(&rep); err != nil {
			return Report{}, err
		}
		if !a.weights.SumsToOne() {
			rep.Warnings = append(rep.Warnings, fmt.Sprintf("signal weights sum to %g, combined signal is not on the percentage scale", a.weights.PPP+a.weights.IFE))
		}
		combined := valuation.CombineSignals(ppp, *rep.IFE, a.weights)
		rep.Combined = &combined
		rep.CombinedVerdict = valuation.ClassifyCombined(combined.Value)
	}

	a.finalize(&rep)
	return rep, nil
}

// AnalyzeIFE evaluates only the interest-rate leg of the scenario.
func (a *Analyzer) AnalyzeIFE(s Scenario) (Report, error) {
	rep := Report{Scenario: s}
	if err := a.applyIFE(&rep); err != nil {
		return Report{}, err
	}
	a.finalize(&rep)
	return rep, nil
}

func (a *Analyzer) finalize(rep *Report) {
	if !rep.Finite() {
		rep.Warnings = append(rep.Warnings, "result overflowed to a non-finite value, verdicts are undefined")
	}
	a.log(*rep)
}

func (a *Analyzer) applyIFE(rep *Report) error {
	s := rep.Scenario
	ife, err := valuation.CalculateIFE(s.Domestic.InterestRate, s.Foreign.InterestRate)
	if err != nil {
		return fmt.Errorf("ife: %w", err)
	}
	rep.IFE = &ife
	rep.IFEVerdict = valuation.ClassifyExpectedChange(ife.PredictedChangeExact)
	rep.ApproximationGap = ife.ApproximationGap()
	return nil
}

// Finite reports whether every input and computed value is a finite number.
func (r Report) Finite() bool {
	s := r.Scenario
	if !finite(s.Domestic.PriceIndex, s.Foreign.PriceIndex, s.ExchangeRate, s.Domestic.InterestRate, s.Foreign.InterestRate) {
		return false
	}
	if r.PPP != nil && !finite(r.PPP.PPPImpliedRate, r.PPP.MisalignmentPercent) {
		return false
	}
	if r.IFE != nil && !finite(r.IFE.PredictedChangeExact, r.IFE.PredictedChangeApprox, r.IFE.InterestDifferential, r.ApproximationGap) {
		return false
	}
	if r.Combined != nil && !finite(r.Combined.Value) {
		return false
	}
	return true
}

func finite(values ...float64) bool {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func (a *Analyzer) log(rep Report) {
	pair := rep.Scenario.Pair
	for _, w := range rep.Warnings {
		a.logger.Warn().Str("pair", pair).Msg(w)
	}

	event := a.logger.Debug().Str("pair", pair)
	if rep.PPP != nil {
		event = event.Float64("ppp_implied_rate", rep.PPP.PPPImpliedRate).
			Float64("misalignment_percent", rep.PPP.MisalignmentPercent)
	}
	if rep.IFE != nil {
		event = event.Float64("predicted_change_exact", rep.IFE.PredictedChangeExact)
	}
	if rep.Combined != nil {
		event = event.Float64("combined_signal", rep.Combined.Value).
			Str("agreement", rep.Combined.Agreement)
	}
	event.Msg("scenario analysed")
}

func inputWarnings(s Scenario) []string {
	var warnings []string
	if s.Domestic.PriceIndex <= 0 {
		warnings = append(warnings, fmt.Sprintf("domestic price index %g is not positive", s.Domestic.PriceIndex))
	}
	if s.Foreign.PriceIndex <= 0 {
		warnings = append(warnings, fmt.Sprintf("foreign price index %g is not positive", s.Foreign.PriceIndex))
	}
	if s.ExchangeRate <= 0 {
		warnings = append(warnings, fmt.Sprintf("exchange rate %g is not positive", s.ExchangeRate))
	}
	return warnings
}
