package cli

import (
	"github.com/spf13/cobra"

	"fx-valuation/internal/app"
)

var (
	notifyScenario scenarioFlags
	notifyForce    bool
)

var notifyCmd = &cobra.Command{
	Use:   "notify",
	Short: "Send the combined signal to alert channels when it breaches the threshold",
	RunE: func(cmd *cobra.Command, args []string) error {
		return getApp().Notify(cmd.Context(), app.NotifyOptions{
			Overrides: notifyScenario.overrides(cmd),
			Force:     notifyForce,
		})
	},
}

func init() {
	notifyScenario.register(notifyCmd.Flags(), true, true)
	notifyCmd.Flags().BoolVar(&notifyForce, "force", false, "Send even when the signal is within the threshold")
}
