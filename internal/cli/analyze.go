package cli

import (
	"github.com/spf13/cobra"

	"fx-valuation/internal/app"
)

var (
	analyzeScenario  scenarioFlags
	analyzeWeightPPP float64
	analyzeWeightIFE float64
	analyzeSkipIFE   bool
	analyzeFormat    string
	analyzeColor     bool

	pppScenario scenarioFlags
	pppFormat   string
	pppColor    bool

	ifeScenario scenarioFlags
	ifeFormat   string
	ifeColor    bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Run the combined PPP and IFE valuation for the configured pair",
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := app.AnalyzeOptions{
			Overrides: analyzeScenario.overrides(cmd),
			WeightPPP: changedFloat(cmd, "weight-ppp", analyzeWeightPPP),
			WeightIFE: changedFloat(cmd, "weight-ife", analyzeWeightIFE),
			SkipIFE:   analyzeSkipIFE,
			Format:    analyzeFormat,
			Color:     changedBool(cmd, "color", analyzeColor),
		}
		return getApp().Analyze(cmd.Context(), opts)
	},
}

var pppCmd = &cobra.Command{
	Use:   "ppp",
	Short: "Compute the PPP-implied exchange rate and misalignment",
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := app.AnalyzeOptions{
			Overrides: pppScenario.overrides(cmd),
			Format:    pppFormat,
			Color:     changedBool(cmd, "color", pppColor),
		}
		return getApp().PPP(cmd.Context(), opts)
	},
}

var ifeCmd = &cobra.Command{
	Use:   "ife",
	Short: "Compute the exchange rate change predicted by the international Fisher effect",
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := app.AnalyzeOptions{
			Overrides: ifeScenario.overrides(cmd),
			Format:    ifeFormat,
			Color:     changedBool(cmd, "color", ifeColor),
		}
		return getApp().IFE(cmd.Context(), opts)
	},
}

func init() {
	analyzeScenario.register(analyzeCmd.Flags(), true, true)
	analyzeCmd.Flags().Float64Var(&analyzeWeightPPP, "weight-ppp", 0, "Weight of the PPP misalignment in the combined signal")
	analyzeCmd.Flags().Float64Var(&analyzeWeightIFE, "weight-ife", 0, "Weight of the IFE prediction in the combined signal")
	analyzeCmd.Flags().BoolVar(&analyzeSkipIFE, "no-ife", false, "Skip the IFE leg and the combined signal")
	analyzeCmd.Flags().StringVar(&analyzeFormat, "format", "", "Output format: text, table, json or yaml (defaults to config)")
	analyzeCmd.Flags().BoolVar(&analyzeColor, "color", false, "Colour verdict lines in text output")

	pppScenario.register(pppCmd.Flags(), true, false)
	pppCmd.Flags().StringVar(&pppFormat, "format", "", "Output format: text, table, json or yaml (defaults to config)")
	pppCmd.Flags().BoolVar(&pppColor, "color", false, "Colour verdict lines in text output")

	ifeScenario.register(ifeCmd.Flags(), false, true)
	ifeCmd.Flags().StringVar(&ifeFormat, "format", "", "Output format: text, table, json or yaml (defaults to config)")
	ifeCmd.Flags().BoolVar(&ifeColor, "color", false, "Colour verdict lines in text output")
}

func changedBool(cmd *cobra.Command, name string, v bool) *bool {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	return &v
}
