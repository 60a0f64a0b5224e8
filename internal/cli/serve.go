package cli

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/matzehuels/stratum/internal/server"
	"github.com/matzehuels/stratum/pkg/cache"
	"github.com/matzehuels/stratum/pkg/observability"
)

// serveCommand creates the serve command for running the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	cfg := server.DefaultConfig()
	cacheSize := 256

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the solver over HTTP",
		Long: `Serve the solver over HTTP.

Endpoints:
  POST /v1/solve   solve a stackfile posted as JSON, TOML or YAML
  POST /v1/graph   render its constraint graph (?format=dot|svg)
  GET  /healthz    liveness probe
  GET  /metrics    Prometheus metrics`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), cfg, cacheSize)
		},
	}

	cmd.Flags().StringVar(&cfg.Addr, "addr", cfg.Addr, "listen address")
	cmd.Flags().DurationVar(&cfg.ReadTimeout, "read-timeout", cfg.ReadTimeout, "maximum duration for reading a request")
	cmd.Flags().DurationVar(&cfg.WriteTimeout, "write-timeout", cfg.WriteTimeout, "maximum duration for writing a response")
	cmd.Flags().DurationVar(&cfg.ShutdownTimeout, "shutdown-timeout", cfg.ShutdownTimeout, "grace period for in-flight requests on shutdown")
	cmd.Flags().Int64Var(&cfg.MaxBodyBytes, "max-body", cfg.MaxBodyBytes, "maximum stackfile size in bytes")
	cmd.Flags().IntVar(&cacheSize, "render-cache", cacheSize, "number of rendered SVGs kept in memory (0 disables)")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, cfg server.Config, cacheSize int) error {
	hooks := observability.NewPrometheusHooks(prometheus.DefaultRegisterer)
	observability.SetSolverHooks(hooks)
	observability.SetRenderHooks(hooks)
	defer observability.Reset()

	printKeyValue("Listening", cfg.Addr)
	printKeyValue("Metrics", cfg.Addr+"/metrics")
	printKeyValue("Timeouts", "read "+cfg.ReadTimeout.String()+", write "+cfg.WriteTimeout.String())

	runner := c.newRunner()
	if cacheSize > 0 {
		runner.Cache = cache.NewMemoryCache(cacheSize)
	}

	start := time.Now()
	err := server.New(cfg, runner, c.Logger).Run(ctx)
	c.Logger.Info("server stopped", "uptime", time.Since(start).Round(time.Second))
	return err
}
