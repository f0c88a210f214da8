package cli

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/vfrplanner-go/internal/adapters/httpapi"
	"github.com/andrescamacho/vfrplanner-go/internal/adapters/metrics"
)

// NewServeCommand creates the serve command
func NewServeCommand() *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the planning HTTP API",
		Long: `Run the planning HTTP API.

Endpoints:
  POST /fplanner   plan a route (form: orig, dest, alt, speed, climb, climb_speed, night)
  POST /update     replace a leg's landmark (form: num, place)
  GET  /plan       current plan of the session
  GET  /saveplan   current plan as a PDF navigation log
  GET  /metrics    Prometheus metrics, when enabled

Examples:
  vfrplanner serve
  vfrplanner serve --port 9090`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			serverCfg := a.cfg.Server
			if port > 0 {
				serverCfg.Port = port
			}

			srv := httpapi.NewServer(httpapi.Options{
				Mediator:    a.mediator,
				Server:      serverCfg,
				StaticMap:   a.cfg.Providers.StaticMap,
				SessionTTL:  a.cfg.Session.TTL,
				Logger:      a.logger,
				Metrics:     metrics.GetRegistry(),
				MetricsPath: a.cfg.Metrics.Path,
			})

			parent := cmd.Context()
			if parent == nil {
				parent = context.Background()
			}
			ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return srv.ListenAndServe(ctx)
		},
	}

	cmd.Flags().IntVar(&port, "port", 0, "Port to listen on (default: config)")
	return cmd
}
