package cli

import (
	"time"

	"github.com/spf13/cobra"

	"fx-valuation/internal/app"
)

var (
	watchInterval time.Duration
	watchOnce     bool
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Periodically re-evaluate the configured pair and alert on threshold breaches",
	Long: "Re-reads the configuration file and FXVAL_ environment on every tick, so updated " +
		"price levels and interest rates are picked up without restarting.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return getApp().Watch(cmd.Context(), app.WatchOptions{Interval: watchInterval, Once: watchOnce})
	},
}

func init() {
	watchCmd.Flags().DurationVar(&watchInterval, "interval", 0, "Evaluation interval (defaults to config)")
	watchCmd.Flags().BoolVar(&watchOnce, "once", false, "Evaluate once and exit")
}
