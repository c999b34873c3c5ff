package cli

import (
	"context"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/foodtrend/internal/adapters/driving/tui"
	"github.com/custodia-labs/foodtrend/internal/logger"
)

var tuiScheduler bool

// tuiCmd represents the tui command.
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive terminal UI",
	Long: `Launch the interactive terminal user interface for foodtrend.

The dashboard has tabs for trending terms, trending cuisines, search and
recent posts. Tabs load the first time they are opened.

Controls:
  Tab/Shift+Tab - Switch tabs
  ↑/k, ↓/j      - Navigate rows
  Enter         - Search
  /             - Edit the query
  r             - Refresh
  ?             - Toggle help
  q             - Quit`,
	Args: cobra.NoArgs,
	RunE: runTUI,
}

func init() {
	tuiCmd.Flags().BoolVar(&tuiScheduler, "scheduler", false, "run scheduled ingest and matching while the UI is open")
	rootCmd.AddCommand(tuiCmd)
}

// tuiOptions builds the dashboard defaults from the current settings.
func tuiOptions() tui.Options {
	settings := currentSettings()
	return tui.Options{
		TrendDays:    settings.Trends.Days,
		TrendLimit:   settings.Trends.Limit,
		CuisineLimit: defaultCuisineLimit,
		SearchDays:   settings.Search.Days,
		SearchLimit:  settings.Search.Limit,
		PostLimit:    20,
	}
}

func runTUI(cmd *cobra.Command, _ []string) error {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	app, err := tui.NewApp(&tui.Ports{
		Trends: trendService,
		Search: searchService,
		Posts:  postService,
	}, tuiOptions())
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}

	ctx := cmd.Context()
	if tuiScheduler && schedulerConfig.Enabled && scheduler != nil {
		schedulerCtx, schedulerCancel := context.WithCancel(ctx)
		defer schedulerCancel()

		go func() {
			if err := scheduler.Start(schedulerCtx); err != nil {
				logger.Warn("scheduler stopped: %v", err)
			}
		}()

		defer func() {
			if err := scheduler.Stop(); err != nil {
				logger.Warn("scheduler stop error: %v", err)
			}
		}()
	}

	if err := app.WithContext(ctx).Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
