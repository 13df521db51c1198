package report

import (
	"bufio"
	"fmt"
	"io"

	"github.com/fatih/color"

	"fx-valuation/internal/analysis"
	"fx-valuation/internal/valuation"
)

type painter func(format string, a ...interface{}) string

func newPainter(enabled bool, attrs ...color.Attribute) painter {
	if !enabled {
		return fmt.Sprintf
	}
	c := color.New(attrs...)
	c.EnableColor()
	return c.SprintfFunc()
}

func renderText(w io.Writer, rep analysis.Report, colored bool) error {
	bw := bufio.NewWriter(w)
	heading := newPainter(colored, color.Bold)
	weaker := newPainter(colored, color.FgRed)
	stronger := newPainter(colored, color.FgGreen)
	neutral := newPainter(colored, color.FgYellow)

	verdict := func(sign int, msg string) string {
		switch {
		case sign > 0:
			return weaker("%s", msg)
		case sign < 0:
			return stronger("%s", msg)
		default:
			return neutral("%s", msg)
		}
	}

	s := rep.Scenario
	code := CurrencyCode(s)
	pair := pairLabel(s)
	dom := economyName(s.Domestic, "domestic")
	frn := economyName(s.Foreign, "foreign")

	fmt.Fprintln(bw, heading("=== Combined Currency Valuation Analysis ==="))

	if rep.PPP != nil {
		fmt.Fprintln(bw)
		fmt.Fprintln(bw, heading("--- PPP (Long-Term) Perspective ---"))
		fmt.Fprintf(bw, "Domestic (%s) price level index: %s\n", dom, formatPlain(s.Domestic.PriceIndex))
		fmt.Fprintf(bw, "Foreign (%s) price level index: %s\n", frn, formatPlain(s.Foreign.PriceIndex))
		fmt.Fprintf(bw, "Current exchange rate (%s): %s\n", pair, formatPlain(s.ExchangeRate))
		fmt.Fprintf(bw, "PPP-implied exchange rate (%s): %s\n", pair, formatRate(rep.PPP.PPPImpliedRate))
		fmt.Fprintf(bw, "PPP misalignment: %s\n", formatPct(rep.PPP.MisalignmentPercent))

		switch rep.PPPVerdict {
		case valuation.Overvalued:
			fmt.Fprintln(bw, verdict(1, fmt.Sprintf("  → %s is OVERVALUED relative to PPP.", code)))
		case valuation.Undervalued:
			fmt.Fprintln(bw, verdict(-1, fmt.Sprintf("  → %s is UNDERVALUED relative to PPP.", code)))
		default:
			fmt.Fprintln(bw, verdict(0, fmt.Sprintf("  → %s is at PARITY with PPP.", code)))
		}
	}

	if rep.IFE != nil {
		fmt.Fprintln(bw)
		fmt.Fprintln(bw, heading("--- IFE (Short-to-Medium-Term) Perspective ---"))
		fmt.Fprintf(bw, "Domestic (%s) interest rate: %s\n", dom, decimalPct(s.Domestic.InterestRate))
		fmt.Fprintf(bw, "Foreign (%s) interest rate: %s\n", frn, decimalPct(s.Foreign.InterestRate))
		fmt.Fprintf(bw, "Interest rate differential (%s-%s): %s\n", dom, frn, formatPct(rep.IFE.InterestDifferential))
		fmt.Fprintf(bw, "Predicted exchange rate change (exact): %s\n", formatPct(rep.IFE.PredictedChangeExact))
		fmt.Fprintf(bw, "Predicted exchange rate change (approximate): %s\n", formatPct(rep.IFE.PredictedChangeApprox))

		switch rep.IFEVerdict {
		case valuation.Depreciate:
			fmt.Fprintln(bw, verdict(1, fmt.Sprintf("  → %s expected to DEPRECIATE (exchange rate ↑) according to IFE.", code)))
		case valuation.Appreciate:
			fmt.Fprintln(bw, verdict(-1, fmt.Sprintf("  → %s expected to APPRECIATE (exchange rate ↓) according to IFE.", code)))
		default:
			fmt.Fprintln(bw, verdict(0, fmt.Sprintf("  → No change in %s expected according to IFE.", code)))
		}
	}

	if rep.Combined != nil {
		c := rep.Combined
		fmt.Fprintln(bw)
		fmt.Fprintln(bw, heading("--- Combined Signal ---"))
		fmt.Fprintln(bw, "PPP reflects long-term equilibrium based on price levels.")
		fmt.Fprintln(bw, "IFE reflects short-term expectations driven by interest rates.")
		fmt.Fprintln(bw, "A holistic view considers both signals:")
		fmt.Fprintln(bw, "  - If PPP and IFE point in the same direction, the signal is stronger.")
		fmt.Fprintln(bw, "  - If they conflict, further analysis of other factors is warranted.")

		switch c.Agreement {
		case valuation.Aligned:
			fmt.Fprintln(bw, "Here PPP and IFE point in the same direction.")
		case valuation.Conflicting:
			fmt.Fprintln(bw, "Here PPP and IFE conflict.")
		default:
			fmt.Fprintln(bw, "Here at least one of PPP and IFE is neutral.")
		}

		fmt.Fprintf(bw, "\nWeighted combined signal (%s PPP, %s IFE): %s\n",
			FormatFixed(c.WeightPPP*100, 0)+"%", FormatFixed(c.WeightIFE*100, 0)+"%", formatPct(c.Value))

		switch rep.CombinedVerdict {
		case valuation.Overvalued:
			fmt.Fprintln(bw, verdict(1, fmt.Sprintf("  → Combined indicator suggests %s OVERVALUED / likely to depreciate.", code)))
		case valuation.Undervalued:
			fmt.Fprintln(bw, verdict(-1, fmt.Sprintf("  → Combined indicator suggests %s UNDERVALUED / likely to appreciate.", code)))
		default:
			fmt.Fprintln(bw, verdict(0, fmt.Sprintf("  → Combined indicator is neutral for %s.", code)))
		}
	}

	if len(rep.Warnings) > 0 {
		fmt.Fprintln(bw)
		for _, warning := range rep.Warnings {
			fmt.Fprintln(bw, neutral("Warning: %s", warning))
		}
	}

	return bw.Flush()
}
