package app

import (
	"context"
	"fmt"

	"fx-valuation/internal/report"
	"fx-valuation/internal/sensitivity"
)

// Sensitivity sweeps the domestic interest rate, prints the worst
// approximation gap and optionally exports the sweep.
func (a *App) Sensitivity(ctx context.Context, opts SensitivityOptions) error {
	foreign := a.Config.Scenario.Foreign.InterestRate
	override(&foreign, opts.ForeignRate)
	minRate := a.Config.Sensitivity.MinRate
	override(&minRate, opts.MinRate)
	maxRate := a.Config.Sensitivity.MaxRate
	override(&maxRate, opts.MaxRate)
	steps := a.Config.ResolveSteps(opts.Steps)

	points, err := sensitivity.Sweep(foreign, minRate, maxRate, steps)
	if err != nil {
		return err
	}
	a.Logger.Info().Int("points", len(points)).
		Float64("foreign_rate", foreign).
		Float64("min_rate", minRate).
		Float64("max_rate", maxRate).
		Msg("ife sweep computed")

	if worst, ok := sensitivity.MaxAbsGap(points); ok {
		fmt.Fprintf(a.Out, "IFE sweep: %d domestic rates from %s to %s against foreign rate %s\n",
			len(points), pct(minRate), pct(maxRate), pct(foreign))
		fmt.Fprintf(a.Out, "Largest exact-vs-approximate gap: %s pp at domestic rate %s\n",
			report.FormatFixed(worst.Gap, 4), pct(worst.DomesticRate))
	}

	if opts.CSVPath != "" {
		if err := sensitivity.WriteCSV(opts.CSVPath, points); err != nil {
			return fmt.Errorf("write csv: %w", err)
		}
		a.Logger.Info().Str("path", opts.CSVPath).Msg("sweep csv written")
	}

	if opts.PNGPath != "" {
		if err := sensitivity.WritePNG(opts.PNGPath, points); err != nil {
			return fmt.Errorf("write png: %w", err)
		}
		a.Logger.Info().Str("path", opts.PNGPath).Msg("sweep chart written")
	}

	return nil
}

func pct(rate float64) string {
	return report.FormatFixed(rate*100, 2) + "%"
}
