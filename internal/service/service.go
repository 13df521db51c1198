package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"fx-valuation/internal/alerting"
	"fx-valuation/internal/analysis"
	"fx-valuation/internal/config"
	"fx-valuation/internal/scheduler"
)

// Loader returns the configuration in effect for one evaluation. Reloading on
// every tick lets an external process publish fresh price levels and rates.
type Loader func(ctx context.Context) (*config.Config, error)

// Service periodically re-evaluates the configured scenario and raises an
// alert when the combined signal leaves the threshold band.
type Service struct {
	scheduler *scheduler.Scheduler
	load      Loader
	notifier  alerting.Notifier
	logger    zerolog.Logger

	mu       sync.Mutex
	breached string
}

// New constructs the watch service. notifier may be nil, in which case
// breaches are only logged.
func New(sched *scheduler.Scheduler, load Loader, notifier alerting.Notifier, logger zerolog.Logger) *Service {
	return &Service{
		scheduler: sched,
		load:      load,
		notifier:  notifier,
		logger:    logger.With().Str("component", "service").Logger(),
	}
}

// Run begins the evaluation loop.
func (s *Service) Run(ctx context.Context) error {
	if s.scheduler == nil {
		return errors.New("scheduler not configured")
	}
	return s.scheduler.Run(ctx, s.ProcessTick)
}

// ProcessTick evaluates the scenario once. An alert is sent on the first tick
// that breaches the threshold and again only when the verdict flips; a tick
// back inside the band re-arms it.
func (s *Service) ProcessTick(ctx context.Context, slot time.Time) error {
	cfg, err := s.load(ctx)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	analyzer := analysis.New(cfg.Signal.Weights(), true, s.logger)
	rep, err := analyzer.Analyze(cfg.Scenario.Scenario())
	if err != nil {
		return fmt.Errorf("analyze %s: %w", cfg.Scenario.Pair, err)
	}

	threshold := cfg.Alerting.ThresholdPct
	s.logger.Info().Time("slot", slot).
		Str("pair", rep.Scenario.Pair).
		Float64("combined_signal", rep.Combined.Value).
		Float64("threshold_pct", threshold).
		Str("verdict", rep.CombinedVerdict).
		Msg("scenario evaluated")

	s.mu.Lock()
	defer s.mu.Unlock()

	if !alerting.Breaches(rep, threshold) {
		if s.breached != "" {
			s.logger.Info().Str("pair", rep.Scenario.Pair).Msg("combined signal back within threshold")
		}
		s.breached = ""
		return nil
	}

	if s.breached == rep.CombinedVerdict {
		s.logger.Debug().Str("verdict", rep.CombinedVerdict).Msg("breach already reported")
		return nil
	}

	if !cfg.Alerting.Enabled || s.notifier == nil {
		s.logger.Warn().Str("pair", rep.Scenario.Pair).
			Float64("combined_signal", rep.Combined.Value).
			Msg("threshold breached but alerting is disabled")
		s.breached = rep.CombinedVerdict
		return nil
	}

	note, err := alerting.FromReport(rep, threshold, cfg.Alerting.Channels, slot)
	if err != nil {
		return err
	}
	if err := s.notifier.Notify(ctx, note); err != nil {
		return fmt.Errorf("dispatch alert: %w", err)
	}
	s.breached = rep.CombinedVerdict
	return nil
}
