package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var daemonCmd = &cobra.Command{
	Use:   "daemon",
	Short: "Run scheduled ingest and matching in the foreground",
	Long: `Runs the background scheduler until interrupted. Intervals are read from
the scheduler.* config keys; see 'foodtrend config list'.`,
	Args: cobra.NoArgs,
	RunE: runDaemon,
}

func init() {
	rootCmd.AddCommand(daemonCmd)
}

func runDaemon(cmd *cobra.Command, _ []string) error {
	if scheduler == nil {
		return errNotConfigured("scheduler")
	}
	if !schedulerConfig.Enabled {
		return errors.New("scheduler is disabled; set scheduler.enabled to true")
	}

	cmd.Println("Scheduler running. Press Ctrl+C to stop.")
	if err := scheduler.Start(cmd.Context()); err != nil {
		return fmt.Errorf("scheduler failed: %w", err)
	}
	return scheduler.Stop()
}
