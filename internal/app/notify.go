package app

import (
	"context"
	"errors"
	"time"

	"fx-valuation/internal/alerting"
	"fx-valuation/internal/analysis"
)

// Notify analyses the configured scenario and sends it to the alert channels
// when the combined signal exceeds the threshold, or unconditionally with Force.
func (a *App) Notify(ctx context.Context, opts NotifyOptions) error {
	if !a.Config.Alerting.Enabled {
		return errors.New("alerting is not enabled")
	}

	notifier := a.newNotifier()
	if notifier == nil {
		return errors.New("no alert channel configured")
	}

	analyzer := analysis.New(a.Config.Signal.Weights(), true, a.Logger)
	rep, err := analyzer.Analyze(a.scenario(opts.Overrides))
	if err != nil {
		return err
	}

	threshold := a.Config.Alerting.ThresholdPct
	if !opts.Force && !alerting.Breaches(rep, threshold) {
		a.Logger.Info().Float64("combined_signal", rep.Combined.Value).
			Float64("threshold_pct", threshold).
			Msg("combined signal within threshold; nothing sent")
		return nil
	}

	note, err := alerting.FromReport(rep, threshold, a.Config.Alerting.Channels, time.Now())
	if err != nil {
		return err
	}
	return notifier.Notify(ctx, note)
}
