package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fx-valuation/internal/alerting"
	"fx-valuation/internal/config"
	"fx-valuation/internal/valuation"
)

type recordingNotifier struct {
	notes []alerting.Notification
	err   error
}

func (r *recordingNotifier) Notify(ctx context.Context, note alerting.Notification) error {
	if r.err != nil {
		return r.err
	}
	r.notes = append(r.notes, note)
	return nil
}

func demoConfig() *config.Config {
	return &config.Config{
		Scenario: config.ScenarioConfig{
			Pair:         "USD/EUR",
			Domestic:     config.EconomyConfig{Name: "US", PriceIndex: 120.5, InterestRate: 0.045},
			Foreign:      config.EconomyConfig{Name: "EU", PriceIndex: 115.2, InterestRate: 0.025},
			ExchangeRate: 1.08,
		},
		Signal:   config.SignalConfig{WeightPPP: 0.5, WeightIFE: 0.5, IncludeIFE: true},
		Alerting: config.AlertingConfig{Enabled: true, ThresholdPct: 2, Channels: []string{"telegram"}},
	}
}

func staticLoader(cfg *config.Config) Loader {
	return func(ctx context.Context) (*config.Config, error) { return cfg, nil }
}

func TestProcessTickAlertsOncePerBreach(t *testing.T) {
	cfg := demoConfig()
	rec := &recordingNotifier{}
	svc := New(nil, staticLoader(cfg), rec, zerolog.Nop())
	ctx := context.Background()
	slot := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)

	require.NoError(t, svc.ProcessTick(ctx, slot))
	require.Len(t, rec.notes, 1)
	assert.Equal(t, valuation.Overvalued, rec.notes[0].Verdict)
	assert.Equal(t, slot, rec.notes[0].GeneratedAt)

	require.NoError(t, svc.ProcessTick(ctx, slot.Add(time.Hour)))
	assert.Len(t, rec.notes, 1, "unchanged breach must not be re-sent")

	// Spot at a deep discount flips the verdict.
	cfg.Scenario.ExchangeRate = 0.9
	require.NoError(t, svc.ProcessTick(ctx, slot.Add(2*time.Hour)))
	require.Len(t, rec.notes, 2)
	assert.Equal(t, valuation.Undervalued, rec.notes[1].Verdict)
}

func TestProcessTickRearmsAfterReturningInsideBand(t *testing.T) {
	cfg := demoConfig()
	rec := &recordingNotifier{}
	svc := New(nil, staticLoader(cfg), rec, zerolog.Nop())
	ctx := context.Background()

	require.NoError(t, svc.ProcessTick(ctx, time.Now()))
	require.Len(t, rec.notes, 1)

	cfg.Alerting.ThresholdPct = 10
	require.NoError(t, svc.ProcessTick(ctx, time.Now()))
	assert.Len(t, rec.notes, 1)

	cfg.Alerting.ThresholdPct = 2
	require.NoError(t, svc.ProcessTick(ctx, time.Now()))
	assert.Len(t, rec.notes, 2)
}

func TestProcessTickWithoutNotifier(t *testing.T) {
	svc := New(nil, staticLoader(demoConfig()), nil, zerolog.Nop())
	assert.NoError(t, svc.ProcessTick(context.Background(), time.Now()))
}

func TestProcessTickErrors(t *testing.T) {
	ctx := context.Background()

	failing := New(nil, func(ctx context.Context) (*config.Config, error) {
		return nil, errors.New("boom")
	}, nil, zerolog.Nop())
	assert.ErrorContains(t, failing.ProcessTick(ctx, time.Now()), "load config")

	cfg := demoConfig()
	cfg.Scenario.Foreign.PriceIndex = 0
	zero := New(nil, staticLoader(cfg), nil, zerolog.Nop())
	assert.ErrorIs(t, zero.ProcessTick(ctx, time.Now()), valuation.ErrDivisionByZero)

	rec := &recordingNotifier{err: errors.New("telegram down")}
	down := New(nil, staticLoader(demoConfig()), rec, zerolog.Nop())
	assert.ErrorContains(t, down.ProcessTick(ctx, time.Now()), "dispatch alert")
}

func TestRunRequiresScheduler(t *testing.T) {
	svc := New(nil, staticLoader(demoConfig()), nil, zerolog.Nop())
	assert.Error(t, svc.Run(context.Background()))
}
