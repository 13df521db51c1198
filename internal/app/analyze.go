package app

import (
	"context"

	"fx-valuation/internal/analysis"
	"fx-valuation/internal/report"
)

// Analyze runs the full PPP + IFE analysis and renders it.
func (a *App) Analyze(ctx context.Context, opts AnalyzeOptions) error {
	includeIFE := a.Config.Signal.IncludeIFE && !opts.SkipIFE
	analyzer := analysis.New(a.weights(opts.WeightPPP, opts.WeightIFE), includeIFE, a.Logger)

	rep, err := analyzer.Analyze(a.scenario(opts.Overrides))
	if err != nil {
		return err
	}
	return report.Render(a.Out, rep, a.reportOptions(opts))
}

// PPP runs only the purchasing power parity leg.
func (a *App) PPP(ctx context.Context, opts AnalyzeOptions) error {
	analyzer := analysis.New(a.Config.Signal.Weights(), false, a.Logger)

	rep, err := analyzer.Analyze(a.scenario(opts.Overrides))
	if err != nil {
		return err
	}
	return report.Render(a.Out, rep, a.reportOptions(opts))
}

// IFE runs only the international Fisher effect leg.
func (a *App) IFE(ctx context.Context, opts AnalyzeOptions) error {
	analyzer := analysis.New(a.Config.Signal.Weights(), true, a.Logger)

	rep, err := analyzer.AnalyzeIFE(a.scenario(opts.Overrides))
	if err != nil {
		return err
	}
	return report.Render(a.Out, rep, a.reportOptions(opts))
}

func (a *App) reportOptions(opts AnalyzeOptions) report.Options {
	out := report.Options{Format: a.Config.Report.Format, Color: a.Config.Report.Color}
	if opts.Format != "" {
		out.Format = opts.Format
	}
	if opts.Color != nil {
		out.Color = *opts.Color
	}
	return out
}
