// Package report renders analysis results for terminals and machines.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"fx-valuation/internal/analysis"
)

const (
	FormatText  = "text"
	FormatTable = "table"
	FormatJSON  = "json"
	FormatYAML  = "yaml"
)

// Options select the output format.
type Options struct {
	Format string
	Color  bool
}

// Render writes the report to w in the requested format. A report holding NaN
// or Inf is rejected with analysis.ErrNotFinite whatever the format, since JSON
// cannot encode it.
func Render(w io.Writer, rep analysis.Report, opts Options) error {
	if !rep.Finite() {
		return fmt.Errorf("render %s report: %w", rep.Scenario.Pair, analysis.ErrNotFinite)
	}

	switch strings.ToLower(opts.Format) {
	case "", FormatText:
		return renderText(w, rep, opts.Color)
	case FormatTable:
		return renderTable(w, rep)
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(rep); err != nil {
			return fmt.Errorf("encode json report: %w", err)
		}
		return nil
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(rep); err != nil {
			return fmt.Errorf("encode yaml report: %w", err)
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported report format %q", opts.Format)
	}
}

// FormatFixed renders v with a fixed number of decimal places. Non-finite
// values are printed as-is.
func FormatFixed(v float64, places int32) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	return decimal.NewFromFloat(v).StringFixed(places)
}

func formatRate(v float64) string {
	return FormatFixed(v, 4)
}

func formatPct(v float64) string {
	return FormatFixed(v, 2) + "%"
}

// decimalPct renders a decimal interest rate (0.045) as a percentage (4.50%).
func decimalPct(v float64) string {
	return formatPct(v * 100)
}

func formatPlain(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// CurrencyCode returns the domestic currency code of the scenario's pair,
// falling back to the domestic economy name.
func CurrencyCode(s analysis.Scenario) string {
	if base, _, ok := strings.Cut(s.Pair, "/"); ok && strings.TrimSpace(base) != "" {
		return strings.TrimSpace(base)
	}
	if s.Domestic.Name != "" {
		return s.Domestic.Name
	}
	return "domestic currency"
}

func pairLabel(s analysis.Scenario) string {
	if s.Pair == "" {
		return "domestic/foreign"
	}
	return s.Pair
}

func economyName(e analysis.Economy, fallback string) string {
	if e.Name == "" {
		return fallback
	}
	return e.Name
}
