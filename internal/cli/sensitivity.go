package cli

import (
	"github.com/spf13/cobra"

	"fx-valuation/internal/app"
)

var (
	sensForeignRate float64
	sensMinRate     float64
	sensMaxRate     float64
	sensSteps       int
	sensCSVPath     string
	sensPNGPath     string
)

var sensitivityCmd = &cobra.Command{
	Use:   "sensitivity",
	Short: "Sweep the domestic interest rate and compare exact and approximate IFE",
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := app.SensitivityOptions{
			ForeignRate: changedFloat(cmd, "foreign-interest", sensForeignRate),
			MinRate:     changedFloat(cmd, "min", sensMinRate),
			MaxRate:     changedFloat(cmd, "max", sensMaxRate),
			Steps:       sensSteps,
			CSVPath:     sensCSVPath,
			PNGPath:     sensPNGPath,
		}
		return getApp().Sensitivity(cmd.Context(), opts)
	},
}

func init() {
	sensitivityCmd.Flags().Float64Var(&sensForeignRate, "foreign-interest", 0, "Foreign interest rate held fixed during the sweep (defaults to config)")
	sensitivityCmd.Flags().Float64Var(&sensMinRate, "min", 0, "Lowest domestic interest rate")
	sensitivityCmd.Flags().Float64Var(&sensMaxRate, "max", 0, "Highest domestic interest rate")
	sensitivityCmd.Flags().IntVar(&sensSteps, "steps", 0, "Number of grid points (defaults to config)")
	sensitivityCmd.Flags().StringVar(&sensCSVPath, "csv", "", "Path to write CSV data")
	sensitivityCmd.Flags().StringVar(&sensPNGPath, "png", "", "Path to write PNG chart")
}
