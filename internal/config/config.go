package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"

	"fx-valuation/internal/analysis"
	"fx-valuation/internal/logging"
	"fx-valuation/internal/valuation"
)

// Config materialises application configuration.
type Config struct {
	App         AppConfig         `mapstructure:"app"`
	Logging     logging.Config    `mapstructure:"logging"`
	Scenario    ScenarioConfig    `mapstructure:"scenario"`
	Signal      SignalConfig      `mapstructure:"signal"`
	Report      ReportConfig      `mapstructure:"report"`
	Sensitivity SensitivityConfig `mapstructure:"sensitivity"`
	Server      ServerConfig      `mapstructure:"server"`
	Alerting    AlertingConfig    `mapstructure:"alerting"`
	Watch       WatchConfig       `mapstructure:"watch"`
}

// AppConfig general metadata.
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Environment string `mapstructure:"environment"`
}

// ScenarioConfig is the currency pair analysed when no flags override it.
type ScenarioConfig struct {
	Pair         string        `mapstructure:"pair"`
	Domestic     EconomyConfig `mapstructure:"domestic"`
	Foreign      EconomyConfig `mapstructure:"foreign"`
	ExchangeRate float64       `mapstructure:"exchange_rate"`
}

// Scenario converts the configured inputs into an analysis scenario.
func (s ScenarioConfig) Scenario() analysis.Scenario {
	return analysis.Scenario{
		Pair:         s.Pair,
		Domestic:     s.Domestic.economy(),
		Foreign:      s.Foreign.economy(),
		ExchangeRate: s.ExchangeRate,
	}
}

// EconomyConfig holds one side of the pair.
type EconomyConfig struct {
	Name         string  `mapstructure:"name"`
	PriceIndex   float64 `mapstructure:"price_index"`
	InterestRate float64 `mapstructure:"interest_rate"`
}

func (e EconomyConfig) economy() analysis.Economy {
	return analysis.Economy{Name: e.Name, PriceIndex: e.PriceIndex, InterestRate: e.InterestRate}
}

// SignalConfig controls the combined signal.
type SignalConfig struct {
	WeightPPP  float64 `mapstructure:"weight_ppp"`
	WeightIFE  float64 `mapstructure:"weight_ife"`
	IncludeIFE bool    `mapstructure:"include_ife"`
}

// Weights returns the configured blend. Weights are expected to sum to 1.
func (s SignalConfig) Weights() valuation.Weights {
	return valuation.Weights{PPP: s.WeightPPP, IFE: s.WeightIFE}
}

// ReportConfig sets output rendering.
type ReportConfig struct {
	Format string `mapstructure:"format"`
	Color  bool   `mapstructure:"color"`
}

// SensitivityConfig bounds the interest-rate sweep.
type SensitivityConfig struct {
	MinRate float64 `mapstructure:"min_rate"`
	MaxRate float64 `mapstructure:"max_rate"`
	Steps   int     `mapstructure:"steps"`
}

// ServerConfig covers the HTTP API.
type ServerConfig struct {
	Addr            string        `mapstructure:"addr"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	AllowOrigins    []string      `mapstructure:"allow_origins"`
}

// AlertingConfig defines alert thresholds and routing.
type AlertingConfig struct {
	Enabled      bool           `mapstructure:"enabled"`
	ThresholdPct float64        `mapstructure:"threshold_pct"`
	Channels     []string       `mapstructure:"channels"`
	Telegram     TelegramConfig `mapstructure:"telegram"`
}

// TelegramConfig describes the Telegram bot used for delivery.
type TelegramConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	BotToken string        `mapstructure:"bot_token"`
	ChatID   string        `mapstructure:"chat_id"`
	APIBase  string        `mapstructure:"api_base"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

// WatchConfig drives periodic re-evaluation of the scenario.
type WatchConfig struct {
	Interval     time.Duration `mapstructure:"interval"`
	AlignToStart bool          `mapstructure:"align_to_start"`
	StartupDelay time.Duration `mapstructure:"startup_delay"`
}

var reportFormats = map[string]struct{}{
	"text":  {},
	"table": {},
	"json":  {},
	"yaml":  {},
}

// Load builds configuration from file, environment, and defaults.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("FXVAL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := readConfig(v); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg, decodeHook()); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func readConfig(v *viper.Viper) error {
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "fxval")
	v.SetDefault("app.environment", "development")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("logging.output", "stderr")

	v.SetDefault("scenario.pair", "USD/EUR")
	v.SetDefault("scenario.domestic.name", "US")
	v.SetDefault("scenario.domestic.price_index", 120.5)
	v.SetDefault("scenario.domestic.interest_rate", 0.045)
	v.SetDefault("scenario.foreign.name", "EU")
	v.SetDefault("scenario.foreign.price_index", 115.2)
	v.SetDefault("scenario.foreign.interest_rate", 0.025)
	v.SetDefault("scenario.exchange_rate", 1.08)

	v.SetDefault("signal.weight_ppp", 0.5)
	v.SetDefault("signal.weight_ife", 0.5)
	v.SetDefault("signal.include_ife", true)

	v.SetDefault("report.format", "text")
	v.SetDefault("report.color", false)

	v.SetDefault("sensitivity.min_rate", 0.0)
	v.SetDefault("sensitivity.max_rate", 0.25)
	v.SetDefault("sensitivity.steps", 51)

	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "15s")
	v.SetDefault("server.shutdown_timeout", "5s")
	v.SetDefault("server.allow_origins", []string{"*"})

	v.SetDefault("alerting.enabled", false)
	v.SetDefault("alerting.threshold_pct", 2.0)
	v.SetDefault("alerting.channels", []string{"telegram"})
	v.SetDefault("alerting.telegram.enabled", false)
	v.SetDefault("alerting.telegram.api_base", "https://api.telegram.org")
	v.SetDefault("alerting.telegram.timeout", "10s")

	v.SetDefault("watch.interval", "1h")
	v.SetDefault("watch.align_to_start", true)
	v.SetDefault("watch.startup_delay", "0s")
}

func decodeHook() viper.DecoderConfigOption {
	return func(dc *mapstructure.DecoderConfig) {
		dc.TagName = "mapstructure"
		dc.DecodeHook = mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		)
	}
}

// Validate performs basic sanity checks on the configuration values.
func (c *Config) Validate() error {
	if _, ok := reportFormats[strings.ToLower(c.Report.Format)]; !ok {
		return fmt.Errorf("report.format %q is not one of text, table, json, yaml", c.Report.Format)
	}
	if c.Sensitivity.Steps < 2 {
		return fmt.Errorf("sensitivity.steps must be at least 2")
	}
	if c.Sensitivity.MinRate >= c.Sensitivity.MaxRate {
		return fmt.Errorf("sensitivity.min_rate must be below sensitivity.max_rate")
	}
	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr must be set")
	}
	if c.Alerting.ThresholdPct < 0 {
		return fmt.Errorf("alerting.threshold_pct cannot be negative")
	}
	if c.Watch.Interval <= 0 {
		return fmt.Errorf("watch.interval must be positive")
	}
	if c.Alerting.Telegram.Enabled {
		if c.Alerting.Telegram.BotToken == "" {
			return fmt.Errorf("alerting.telegram.bot_token must be set")
		}
		if c.Alerting.Telegram.ChatID == "" {
			return fmt.Errorf("alerting.telegram.chat_id must be set")
		}
	}
	return nil
}

// ResolveSteps returns either the CLI override or config default.
func (c *Config) ResolveSteps(override int) int {
	if override > 0 {
		return override
	}
	return c.Sensitivity.Steps
}
