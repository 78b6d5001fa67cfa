package commands

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/balkashynov/tinytodo/internal/metrics"
	"github.com/balkashynov/tinytodo/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the lists API over HTTP",
	Long: `Serve the lists API on /api/lists, with /healthz and Prometheus
metrics on /metrics.

Without a token every caller may read and change every list. With a token,
callers must send "Authorization: Bearer <token>" to change lists or to
read unpublished ones.`,
	Args: cobra.NoArgs,
	RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
		if cmd.Flags().Changed("listen") {
			a.cfg.Listen, _ = cmd.Flags().GetString("listen")
		}
		if cmd.Flags().Changed("token") {
			a.cfg.Token, _ = cmd.Flags().GetString("token")
		}
		if a.cfg.Token == "" {
			a.logger.Warn("no token configured, all callers are authorized")
		}

		recorder := metrics.NewPrometheusRecorder(nil)
		srv := server.New(a.manager, server.Options{
			Addr:           a.cfg.Listen,
			Gate:           server.TokenGate{Token: a.cfg.Token},
			Logger:         a.logger,
			Recorder:       recorder,
			MetricsHandler: recorder.Handler(),
		})

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		return srv.ListenAndServe(ctx)
	}),
}

func init() {
	serveCmd.Flags().String("listen", "", "Listen address (default 127.0.0.1:8080)")
	serveCmd.Flags().String("token", "", "Bearer token required for writes")
}
