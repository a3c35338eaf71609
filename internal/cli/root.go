// Package cli is the esplan command tree. Every command builds its client
// wiring on demand from the environment, so commands stay independent and
// scriptable.
package cli

import (
	"context"
	"log/slog"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"esplan/internal/auth"
	"esplan/internal/notify"
	"esplan/internal/platform/config"
	"esplan/internal/platform/logger"
	"esplan/internal/platform/metrics"
	"esplan/internal/session"
	"esplan/internal/transport/rest"
)

var rootCmd = &cobra.Command{
	Use:   "esplan",
	Short: "Client for the provincial education strategic-plan API",
	Long: `esplan talks to the strategic-plan API of a provincial education office:
strategic issues, strategies, projects, and user administration.

Configuration comes from the environment (ESPLAN_API_URL, ESPLAN_SESSION_DIR,
ESPLAN_REQUEST_TIMEOUT), optionally loaded from a .env file in the working
directory. Run "esplan stub" to serve a seeded local API for development.`,
	SilenceUsage: true,
	PersistentPreRun: func(*cobra.Command, []string) {
		// Missing .env is the normal case outside development.
		_ = godotenv.Load()
	},
}

// Execute runs the root command under the process context.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// app bundles the shared wiring every API-facing command needs.
type app struct {
	cfg      config.Client
	logger   *slog.Logger
	store    session.Store
	client   *rest.Client
	auth     *auth.Service
	notifier notify.Notifier
}

func newApp() *app {
	cfg := config.FromEnv()
	log := logger.New()
	store := session.NewFileStore(cfg.SessionDir)
	client := rest.New(cfg.BaseURL, store,
		rest.WithLogger(log),
		rest.WithMetrics(metrics.New(prometheus.NewRegistry())),
		rest.WithTimeout(cfg.RequestTimeout),
	)
	notifier := notify.Log{Logger: log}
	return &app{
		cfg:      cfg,
		logger:   log,
		store:    store,
		client:   client,
		auth:     auth.NewService(client, store, auth.WithLogger(log), auth.WithNotifier(notifier)),
		notifier: notifier,
	}
}
