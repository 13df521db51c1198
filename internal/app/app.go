package app

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"

	"fx-valuation/internal/alerting"
	"fx-valuation/internal/analysis"
	"fx-valuation/internal/config"
	"fx-valuation/internal/valuation"
)

// App aggregates configuration and shared dependencies for the CLI commands.
type App struct {
	Config *config.Config
	Logger zerolog.Logger
	Out    io.Writer
	// ConfigPath is re-read by Watch on every tick.
	ConfigPath string

	notifier alerting.Notifier
}

// NewApp constructs a new application handle writing reports to stdout.
func NewApp(cfg *config.Config, logger zerolog.Logger) *App {
	return &App{Config: cfg, Logger: logger.With().Str("component", "app").Logger(), Out: os.Stdout}
}

// ScenarioOverrides replace individual scenario inputs from the config.
type ScenarioOverrides struct {
	DomesticPrice    *float64
	ForeignPrice     *float64
	ExchangeRate     *float64
	DomesticInterest *float64
	ForeignInterest  *float64
}

// AnalyzeOptions configure the analyze, ppp and ife commands.
type AnalyzeOptions struct {
	Overrides ScenarioOverrides
	WeightPPP *float64
	WeightIFE *float64
	SkipIFE   bool
	Format    string
	Color     *bool
}

// SensitivityOptions configure the IFE approximation sweep.
type SensitivityOptions struct {
	ForeignRate *float64
	MinRate     *float64
	MaxRate     *float64
	Steps       int
	CSVPath     string
	PNGPath     string
}

// ServeOptions configure the HTTP API.
type ServeOptions struct {
	Addr string
}

// WatchOptions configure the periodic evaluation loop.
type WatchOptions struct {
	Interval time.Duration
	Once     bool
}

// NotifyOptions configure the notify command.
type NotifyOptions struct {
	Overrides ScenarioOverrides
	Force     bool
}

func (a *App) scenario(o ScenarioOverrides) analysis.Scenario {
	s := a.Config.Scenario.Scenario()

	override(&s.Domestic.PriceIndex, o.DomesticPrice)
	override(&s.Foreign.PriceIndex, o.ForeignPrice)
	override(&s.ExchangeRate, o.ExchangeRate)
	override(&s.Domestic.InterestRate, o.DomesticInterest)
	override(&s.Foreign.InterestRate, o.ForeignInterest)
	return s
}

func (a *App) weights(ppp, ife *float64) valuation.Weights {
	w := a.Config.Signal.Weights()
	override(&w.PPP, ppp)
	override(&w.IFE, ife)
	return w
}

func (a *App) newNotifier() alerting.Notifier {
	if a.notifier != nil {
		return a.notifier
	}
	if a.Config.Alerting.Telegram.Enabled {
		cfg := a.Config.Alerting.Telegram
		return alerting.NewTelegramNotifier(cfg.BotToken, cfg.ChatID, cfg.APIBase, cfg.Timeout, a.Logger)
	}
	return nil
}

func override(dst *float64, v *float64) {
	if v != nil {
		*dst = *v
	}
}
