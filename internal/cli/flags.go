package cli

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"fx-valuation/internal/app"
)

// scenarioFlags holds the raw values of the scenario override flags. Only
// flags the user actually set replace the configured scenario.
type scenarioFlags struct {
	domesticPrice    float64
	foreignPrice     float64
	exchangeRate     float64
	domesticInterest float64
	foreignInterest  float64
}

func (f *scenarioFlags) register(fs *pflag.FlagSet, prices, rates bool) {
	if prices {
		fs.Float64Var(&f.domesticPrice, "domestic-price", 0, "Domestic price level index")
		fs.Float64Var(&f.foreignPrice, "foreign-price", 0, "Foreign price level index")
		fs.Float64Var(&f.exchangeRate, "rate", 0, "Current exchange rate (domestic per foreign)")
	}
	if rates {
		fs.Float64Var(&f.domesticInterest, "domestic-interest", 0, "Domestic nominal interest rate as a decimal (0.045 = 4.5%)")
		fs.Float64Var(&f.foreignInterest, "foreign-interest", 0, "Foreign nominal interest rate as a decimal")
	}
}

func (f *scenarioFlags) overrides(cmd *cobra.Command) app.ScenarioOverrides {
	return app.ScenarioOverrides{
		DomesticPrice:    changedFloat(cmd, "domestic-price", f.domesticPrice),
		ForeignPrice:     changedFloat(cmd, "foreign-price", f.foreignPrice),
		ExchangeRate:     changedFloat(cmd, "rate", f.exchangeRate),
		DomesticInterest: changedFloat(cmd, "domestic-interest", f.domesticInterest),
		ForeignInterest:  changedFloat(cmd, "foreign-interest", f.foreignInterest),
	}
}

func changedFloat(cmd *cobra.Command, name string, v float64) *float64 {
	flag := cmd.Flags().Lookup(name)
	if flag == nil || !flag.Changed {
		return nil
	}
	return &v
}
