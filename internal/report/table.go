package report

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"fx-valuation/internal/analysis"
)

func newTable(w io.Writer, title string) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleRounded)
	t.SetTitle(title)
	t.AppendHeader(table.Row{"Metric", "Value"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight},
	})
	return t
}

func renderTable(w io.Writer, rep analysis.Report) error {
	s := rep.Scenario
	pair := pairLabel(s)
	dom := economyName(s.Domestic, "domestic")
	frn := economyName(s.Foreign, "foreign")

	if rep.PPP != nil {
		t := newTable(w, "PPP (long-term)")
		t.AppendRows([]table.Row{
			{fmt.Sprintf("%s price level index", dom), formatPlain(s.Domestic.PriceIndex)},
			{fmt.Sprintf("%s price level index", frn), formatPlain(s.Foreign.PriceIndex)},
			{fmt.Sprintf("current rate (%s)", pair), formatPlain(s.ExchangeRate)},
			{"ppp_implied_rate", formatRate(rep.PPP.PPPImpliedRate)},
			{"misalignment_percent", formatPct(rep.PPP.MisalignmentPercent)},
		})
		t.AppendFooter(table.Row{"verdict", rep.PPPVerdict})
		t.Render()
	}

	if rep.IFE != nil {
		t := newTable(w, "IFE (short-to-medium-term)")
		t.AppendRows([]table.Row{
			{fmt.Sprintf("%s interest rate", dom), decimalPct(s.Domestic.InterestRate)},
			{fmt.Sprintf("%s interest rate", frn), decimalPct(s.Foreign.InterestRate)},
			{"interest_differential", formatPct(rep.IFE.InterestDifferential)},
			{"predicted_change_exact", formatPct(rep.IFE.PredictedChangeExact)},
			{"predicted_change_approx", formatPct(rep.IFE.PredictedChangeApprox)},
			{"approximation gap", FormatFixed(rep.ApproximationGap, 4)},
		})
		t.AppendFooter(table.Row{"verdict", rep.IFEVerdict})
		t.Render()
	}

	if rep.Combined != nil {
		t := newTable(w, "Combined signal")
		t.AppendRows([]table.Row{
			{"weight_ppp", FormatFixed(rep.Combined.WeightPPP, 2)},
			{"weight_ife", FormatFixed(rep.Combined.WeightIFE, 2)},
			{"combined_signal", formatPct(rep.Combined.Value)},
			{"agreement", rep.Combined.Agreement},
		})
		t.AppendFooter(table.Row{"verdict", rep.CombinedVerdict})
		t.Render()
	}

	for _, warning := range rep.Warnings {
		if _, err := fmt.Fprintf(w, "Warning: %s\n", warning); err != nil {
			return err
		}
	}
	return nil
}
