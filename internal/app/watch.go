package app

import (
	"context"
	"errors"
	"os/signal"
	"syscall"
	"time"

	"fx-valuation/internal/config"
	"fx-valuation/internal/scheduler"
	"fx-valuation/internal/service"
)

// Watch re-reads the configuration on every tick and alerts when the combined
// signal breaches the threshold. With Once a single evaluation runs.
func (a *App) Watch(ctx context.Context, opts WatchOptions) error {
	ctx, cancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	wcfg := a.Config.Watch
	if opts.Interval > 0 {
		wcfg.Interval = opts.Interval
	}

	notifier := a.newNotifier()
	if notifier == nil && a.Config.Alerting.Enabled {
		a.Logger.Warn().Msg("alerting enabled without a channel; breaches will only be logged")
	}

	load := func(ctx context.Context) (*config.Config, error) {
		return config.Load(a.ConfigPath)
	}

	if opts.Once {
		return service.New(nil, load, notifier, a.Logger).ProcessTick(ctx, time.Now().UTC())
	}

	sched, err := scheduler.New(scheduler.Options{
		Interval:       wcfg.Interval,
		AlignToStart:   wcfg.AlignToStart,
		StartupDelay:   wcfg.StartupDelay,
		RunImmediately: true,
	}, a.Logger)
	if err != nil {
		return err
	}

	a.Logger.Info().Dur("interval", wcfg.Interval).Msg("starting watch")
	if err := service.New(sched, load, notifier, a.Logger).Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	a.Logger.Info().Msg("watch stopped")
	return nil
}
