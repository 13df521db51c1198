package app

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"fx-valuation/internal/alerting"
	"fx-valuation/internal/analysis"
	"fx-valuation/internal/config"
	"fx-valuation/internal/valuation"
)

func testConfig() *config.Config {
	return &config.Config{
		Scenario: config.ScenarioConfig{
			Pair:         "USD/EUR",
			Domestic:     config.EconomyConfig{Name: "US", PriceIndex: 120.5, InterestRate: 0.045},
			Foreign:      config.EconomyConfig{Name: "EU", PriceIndex: 115.2, InterestRate: 0.025},
			ExchangeRate: 1.08,
		},
		Signal:      config.SignalConfig{WeightPPP: 0.5, WeightIFE: 0.5, IncludeIFE: true},
		Report:      config.ReportConfig{Format: "text"},
		Sensitivity: config.SensitivityConfig{MinRate: 0, MaxRate: 0.25, Steps: 11},
		Alerting: config.AlertingConfig{
			Enabled:      true,
			ThresholdPct: 2,
			Channels:     []string{"telegram"},
		},
	}
}

func testApp() (*App, *bytes.Buffer) {
	var buf bytes.Buffer
	a := NewApp(testConfig(), zerolog.Nop())
	a.Out = &buf
	return a, &buf
}

type recordingNotifier struct {
	notes []alerting.Notification
}

func (r *recordingNotifier) Notify(ctx context.Context, note alerting.Notification) error {
	r.notes = append(r.notes, note)
	return nil
}

func float(v float64) *float64 { return &v }

func TestAnalyzeDemo(t *testing.T) {
	a, buf := testApp()
	if err := a.Analyze(context.Background(), AnalyzeOptions{}); err != nil {
		t.Fatalf("analyze: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"PPP misalignment: 3.25%", "Predicted exchange rate change (exact): 1.95%", "Weighted combined signal (50% PPP, 50% IFE): 2.60%"} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in output:\n%s", want, out)
		}
	}
}

func TestAnalyzeOverridesAndFormat(t *testing.T) {
	a, buf := testApp()
	err := a.Analyze(context.Background(), AnalyzeOptions{
		Overrides: ScenarioOverrides{ExchangeRate: float(120.5 / 115.2)},
		WeightPPP: float(0.8),
		WeightIFE: float(0.2),
		Format:    "json",
	})
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, `"misalignment_percent": 0`) {
		t.Fatalf("expected parity misalignment in json:\n%s", out)
	}
	if !strings.Contains(out, `"weight_ppp": 0.8`) {
		t.Fatalf("weight override missing:\n%s", out)
	}
}

func TestAnalyzeSkipIFE(t *testing.T) {
	a, buf := testApp()
	if err := a.Analyze(context.Background(), AnalyzeOptions{SkipIFE: true}); err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if strings.Contains(buf.String(), "Combined Signal") {
		t.Fatal("combined section should be omitted without IFE")
	}
}

func TestAnalyzeDivisionByZero(t *testing.T) {
	a, _ := testApp()
	err := a.Analyze(context.Background(), AnalyzeOptions{Overrides: ScenarioOverrides{ForeignPrice: float(0)}})
	if !errors.Is(err, valuation.ErrDivisionByZero) {
		t.Fatalf("expected division by zero, got %v", err)
	}
}

func TestAnalyzeOverflowNotRendered(t *testing.T) {
	for _, format := range []string{"text", "json"} {
		a, buf := testApp()
		err := a.Analyze(context.Background(), AnalyzeOptions{
			Overrides: ScenarioOverrides{DomesticPrice: float(1e308), ForeignPrice: float(1e-308)},
			Format:    format,
		})
		if !errors.Is(err, analysis.ErrNotFinite) {
			t.Fatalf("%s: expected non-finite error, got %v", format, err)
		}
		if buf.Len() != 0 {
			t.Fatalf("%s: nothing should be rendered, got:\n%s", format, buf.String())
		}
	}
}

func TestPPPAndIFECommands(t *testing.T) {
	a, buf := testApp()
	if err := a.PPP(context.Background(), AnalyzeOptions{}); err != nil {
		t.Fatalf("ppp: %v", err)
	}
	if strings.Contains(buf.String(), "IFE") {
		t.Fatalf("ppp output should not contain IFE:\n%s", buf.String())
	}

	buf.Reset()
	err := a.IFE(context.Background(), AnalyzeOptions{Overrides: ScenarioOverrides{DomesticInterest: float(0.10), ForeignInterest: float(0.10)}})
	if err != nil {
		t.Fatalf("ife: %v", err)
	}
	if strings.Contains(buf.String(), "PPP misalignment") {
		t.Fatalf("ife output should not contain PPP:\n%s", buf.String())
	}
	if !strings.Contains(buf.String(), "Predicted exchange rate change (exact): 0.00%") {
		t.Fatalf("equal rates should predict no change:\n%s", buf.String())
	}

	err = a.IFE(context.Background(), AnalyzeOptions{Overrides: ScenarioOverrides{ForeignInterest: float(-1)}})
	if !errors.Is(err, valuation.ErrDivisionByZero) {
		t.Fatalf("expected division by zero, got %v", err)
	}
}

func TestSensitivityExports(t *testing.T) {
	a, buf := testApp()
	dir := t.TempDir()
	opts := SensitivityOptions{
		CSVPath: filepath.Join(dir, "out", "sweep.csv"),
		PNGPath: filepath.Join(dir, "out", "sweep.png"),
		Steps:   6,
	}
	if err := a.Sensitivity(context.Background(), opts); err != nil {
		t.Fatalf("sensitivity: %v", err)
	}
	if !strings.Contains(buf.String(), "IFE sweep: 6 domestic rates from 0.00% to 25.00% against foreign rate 2.50%") {
		t.Fatalf("unexpected summary:\n%s", buf.String())
	}
	for _, p := range []string{opts.CSVPath, opts.PNGPath} {
		if info, err := os.Stat(p); err != nil || info.Size() == 0 {
			t.Fatalf("expected non-empty %s: %v", p, err)
		}
	}
}

func TestSensitivityInvalidRange(t *testing.T) {
	a, _ := testApp()
	if err := a.Sensitivity(context.Background(), SensitivityOptions{MinRate: float(0.3)}); err == nil {
		t.Fatal("empty range should fail")
	}
}

func TestNotifyAboveThreshold(t *testing.T) {
	a, _ := testApp()
	rec := &recordingNotifier{}
	a.notifier = rec

	if err := a.Notify(context.Background(), NotifyOptions{}); err != nil {
		t.Fatalf("notify: %v", err)
	}
	if len(rec.notes) != 1 {
		t.Fatalf("expected one notification, got %d", len(rec.notes))
	}
	note := rec.notes[0]
	if note.CombinedPct.StringFixed(2) != "2.60" || note.Verdict != valuation.Overvalued {
		t.Fatalf("unexpected notification: %+v", note)
	}
}

func TestNotifyWithinThreshold(t *testing.T) {
	a, _ := testApp()
	a.Config.Alerting.ThresholdPct = 5
	rec := &recordingNotifier{}
	a.notifier = rec

	if err := a.Notify(context.Background(), NotifyOptions{}); err != nil {
		t.Fatalf("notify: %v", err)
	}
	if len(rec.notes) != 0 {
		t.Fatal("signal below threshold should not notify")
	}

	if err := a.Notify(context.Background(), NotifyOptions{Force: true}); err != nil {
		t.Fatalf("forced notify: %v", err)
	}
	if len(rec.notes) != 1 {
		t.Fatal("force should notify regardless of threshold")
	}
}

func TestNotifyRequiresChannel(t *testing.T) {
	a, _ := testApp()
	if err := a.Notify(context.Background(), NotifyOptions{}); err == nil {
		t.Fatal("missing channel should fail")
	}

	a.Config.Alerting.Enabled = false
	a.notifier = &recordingNotifier{}
	if err := a.Notify(context.Background(), NotifyOptions{}); err == nil {
		t.Fatal("disabled alerting should fail")
	}
}

func TestWatchOnceReloadsConfig(t *testing.T) {
	a, _ := testApp()
	rec := &recordingNotifier{}
	a.notifier = rec

	a.ConfigPath = filepath.Join(t.TempDir(), "config.yaml")
	body := "alerting:\n  enabled: true\n  threshold_pct: 2\nscenario:\n  exchange_rate: 0.9\n"
	if err := os.WriteFile(a.ConfigPath, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	if err := a.Watch(context.Background(), WatchOptions{Once: true}); err != nil {
		t.Fatalf("watch: %v", err)
	}
	if len(rec.notes) != 1 {
		t.Fatalf("expected one notification, got %d", len(rec.notes))
	}
	if rec.notes[0].Verdict != valuation.Undervalued {
		t.Fatalf("reloaded exchange rate not used: %+v", rec.notes[0])
	}
}
