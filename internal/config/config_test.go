package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "app:\n  name: fxval\n"))
	if err != nil {
		t.Fatalf("defaults should load: %v", err)
	}

	if cfg.Scenario.Pair != "USD/EUR" {
		t.Fatalf("unexpected pair %q", cfg.Scenario.Pair)
	}
	if cfg.Scenario.Domestic.PriceIndex != 120.5 || cfg.Scenario.Foreign.PriceIndex != 115.2 {
		t.Fatalf("unexpected price indices: %+v", cfg.Scenario)
	}
	if cfg.Scenario.ExchangeRate != 1.08 {
		t.Fatalf("unexpected exchange rate %v", cfg.Scenario.ExchangeRate)
	}
	w := cfg.Signal.Weights()
	if w.PPP != 0.5 || w.IFE != 0.5 || !cfg.Signal.IncludeIFE {
		t.Fatalf("unexpected signal config: %+v", cfg.Signal)
	}
	if cfg.Server.ReadTimeout != 15*time.Second {
		t.Fatalf("duration default not decoded: %v", cfg.Server.ReadTimeout)
	}
	if cfg.Watch.Interval != time.Hour || !cfg.Watch.AlignToStart {
		t.Fatalf("unexpected watch defaults: %+v", cfg.Watch)
	}
	if cfg.Logging.Output != "stderr" {
		t.Fatalf("logs should default to stderr, got %q", cfg.Logging.Output)
	}
}

func TestLoadOverrides(t *testing.T) {
	body := `
scenario:
  pair: GBP/JPY
  domestic:
    name: UK
    price_index: 130
    interest_rate: 0.05
  foreign:
    name: JP
    price_index: 105
    interest_rate: 0.001
  exchange_rate: 1.3
signal:
  weight_ppp: 0.7
  weight_ife: 0.3
report:
  format: table
server:
  addr: 127.0.0.1:9090
  read_timeout: 3s
`
	cfg, err := Load(writeConfig(t, body))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Scenario.Domestic.Name != "UK" || cfg.Scenario.Foreign.InterestRate != 0.001 {
		t.Fatalf("scenario not applied: %+v", cfg.Scenario)
	}
	if cfg.Signal.WeightPPP != 0.7 || cfg.Signal.WeightIFE != 0.3 {
		t.Fatalf("weights not applied: %+v", cfg.Signal)
	}
	if cfg.Report.Format != "table" {
		t.Fatalf("format not applied: %q", cfg.Report.Format)
	}
	if cfg.Server.Addr != "127.0.0.1:9090" || cfg.Server.ReadTimeout != 3*time.Second {
		t.Fatalf("server not applied: %+v", cfg.Server)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("FXVAL_SCENARIO_EXCHANGE_RATE", "1.2")
	cfg, err := Load(writeConfig(t, "app:\n  name: fxval\n"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Scenario.ExchangeRate != 1.2 {
		t.Fatalf("env override ignored: %v", cfg.Scenario.ExchangeRate)
	}
}

func TestLoadInvalidFile(t *testing.T) {
	if _, err := Load(writeConfig(t, "report: [unterminated\n")); err == nil {
		t.Fatal("malformed yaml should fail")
	}
}

func TestValidate(t *testing.T) {
	base, err := Load(writeConfig(t, "app:\n  name: fxval\n"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	cases := map[string]func(c *Config){
		"format":    func(c *Config) { c.Report.Format = "xml" },
		"steps":     func(c *Config) { c.Sensitivity.Steps = 1 },
		"range":     func(c *Config) { c.Sensitivity.MinRate = 0.3 },
		"addr":      func(c *Config) { c.Server.Addr = "" },
		"threshold": func(c *Config) { c.Alerting.ThresholdPct = -1 },
		"telegram":  func(c *Config) { c.Alerting.Telegram.Enabled = true },
		"interval":  func(c *Config) { c.Watch.Interval = 0 },
	}
	for name, mutate := range cases {
		cfg := *base
		mutate(&cfg)
		if err := cfg.Validate(); err == nil {
			t.Fatalf("%s: expected validation error", name)
		}
	}

	cfg := *base
	cfg.Alerting.Telegram = TelegramConfig{Enabled: true, BotToken: "t", ChatID: "c"}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("complete telegram config should validate: %v", err)
	}
}

func TestResolveSteps(t *testing.T) {
	cfg := &Config{Sensitivity: SensitivityConfig{Steps: 51}}
	if cfg.ResolveSteps(0) != 51 {
		t.Fatal("zero override should fall back to config")
	}
	if cfg.ResolveSteps(11) != 11 {
		t.Fatal("positive override should win")
	}
}

func TestScenarioConversion(t *testing.T) {
	sc := ScenarioConfig{
		Pair:         "GBP/JPY",
		Domestic:     EconomyConfig{Name: "UK", PriceIndex: 130, InterestRate: 0.05},
		Foreign:      EconomyConfig{Name: "JP", PriceIndex: 105, InterestRate: 0.001},
		ExchangeRate: 1.3,
	}
	s := sc.Scenario()
	if s.Pair != "GBP/JPY" || s.ExchangeRate != 1.3 {
		t.Fatalf("pair or rate lost: %+v", s)
	}
	if s.Domestic.Name != "UK" || s.Domestic.PriceIndex != 130 || s.Foreign.InterestRate != 0.001 {
		t.Fatalf("economies lost: %+v", s)
	}
}
