package cli

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/foodtrend/internal/adapters/driving/httpapi"
	"github.com/custodia-labs/foodtrend/internal/logger"
)

var (
	serveAddr   string
	serveScan   int
	serveOrigin string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve trends and search over HTTP",
	Long: `Starts the JSON API used by dashboards.

Endpoints:
  GET /api/trends/?days=&limit=
  GET /api/trending-cuisines/?days=&limit=
  GET /api/search/?q=&days=&limit=&term=
  GET /api/posts/?limit=
  GET /health

Use --scan to try the following ports when the address is taken.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8000", "listen address")
	serveCmd.Flags().IntVar(&serveScan, "scan", 0, "number of following ports to try when the address is in use")
	serveCmd.Flags().StringVar(&serveOrigin, "allow-origin", "*", "Access-Control-Allow-Origin value")
	rootCmd.AddCommand(serveCmd)
}

// newAPILogger returns the structured logger used by the HTTP server.
func newAPILogger(cmd *cobra.Command) *logrus.Entry {
	l := logrus.New()
	l.SetOutput(cmd.ErrOrStderr())
	l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if logger.IsVerbose() || logger.GetLevel() == logger.LevelDebug {
		l.SetLevel(logrus.DebugLevel)
	}
	return l.WithField("component", "httpapi")
}

// apiOptions builds request defaults from the current settings.
func apiOptions() httpapi.Options {
	settings := currentSettings()
	opts := httpapi.DefaultOptions()
	opts.TrendDays = settings.Trends.Days
	opts.TrendLimit = settings.Trends.Limit
	opts.CuisineDays = settings.Trends.Days
	opts.SearchDays = settings.Search.Days
	opts.SearchLimit = settings.Search.Limit
	opts.AllowOrigin = serveOrigin
	return opts
}

func runServe(cmd *cobra.Command, _ []string) error {
	server, err := httpapi.NewServer(&httpapi.Ports{
		Trends: trendService,
		Search: searchService,
		Posts:  postService,
	}, apiOptions(), newAPILogger(cmd))
	if err != nil {
		return fmt.Errorf("creating API server: %w", err)
	}

	l, err := httpapi.Listen(serveAddr, serveScan)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", serveAddr, err)
	}

	cmd.Printf("API listening on http://%s\n", l.Addr())
	return server.Serve(cmd.Context(), l)
}
