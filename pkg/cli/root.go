/*
Copyright © 2025 restic-exporter authors
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/urfave/cli/v3"
	"golang.org/x/sync/errgroup"

	"github.com/resticlabs/restic-exporter/pkg/config"
	"github.com/resticlabs/restic-exporter/pkg/exporter"
	"github.com/resticlabs/restic-exporter/pkg/logging"
	"github.com/resticlabs/restic-exporter/pkg/restic"
	"github.com/resticlabs/restic-exporter/pkg/server"
)

const (
	name           = "restic-exporter"
	versionDefault = "dev"
)

var (
	// overridden during build with ldflags
	version = versionDefault
	commit  = "unknown"
	date    = "unknown"
)

// New builds the exporter command.
func New() *cli.Command {
	return &cli.Command{
		Name:                  name,
		Version:               version,
		EnableShellCompletion: true,
		Usage:                 "Prometheus exporter for restic backup repositories",
		Description: `Periodically runs 'restic snapshots' against the configured repository,
parses the snapshot table, and publishes the result as Prometheus gauges:

  restic_snapshot_count
  restic_snapshot_details{host,id,date,tags,directory}
  restic_snapshot_timestamp{host,id,date}

Configuration comes from a YAML file (--config) or from the environment
(RESTIC_REPOSITORY, RESTIC_PASSWORD, AWS_ACCESS_KEY_ID,
AWS_SECRET_ACCESS_KEY, EXPORTER_PORT, UPDATE_INTERVAL).

# Examples

Environment-driven:
  RESTIC_REPOSITORY=s3:bucket/repo RESTIC_PASSWORD=secret restic-exporter

With a config file and verbose logging:
  restic-exporter --config /etc/restic-exporter.yaml --log-level debug`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Usage:   "Path to YAML config file (default: environment variables)",
				Sources: cli.EnvVars("EXPORTER_CONFIG"),
			},
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "Log level (debug, info, warn, error)",
				Sources: cli.EnvVars("LOG_LEVEL"),
				Value:   "info",
			},
		},
		Action: run,
	}
}

// Run parses args and executes the exporter until the context is canceled.
func Run(ctx context.Context, args []string) error {
	return New().Run(ctx, args)
}

// run wires config, registry, poller, and server together and blocks until
// shutdown or a fatal error.
func run(ctx context.Context, cmd *cli.Command) error {
	logging.SetDefaultStructuredLoggerWithLevel(name, version, cmd.String("log-level"))
	slog.Info("starting",
		"name", name,
		"version", version,
		"commit", commit,
		"date", date)

	cfg, err := config.Load(cmd.String("config"))
	if err != nil {
		return err
	}

	// One explicitly owned registry: domain gauges, scrape
	// instrumentation, and runtime collectors all live on it.
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	poller := &exporter.Poller{
		Lister:          restic.NewCommandLister(cfg),
		Metrics:         exporter.NewMetrics(registry),
		Interval:        cfg.Interval,
		Schedule:        cfg.Schedule,
		ContinueOnError: cfg.ContinueOnError,
	}

	srvConfig := server.NewConfig()
	srvConfig.Name = name
	srvConfig.Version = version
	srvConfig.Port = cfg.Port
	// Readiness goes to systemd only once the listener is bound, so a
	// taken port fails the unit instead of reporting READY and exiting.
	srvConfig.OnReady = notifyReady
	srv := server.New(srvConfig, registry)

	slog.Info("exporter config",
		"repository", cfg.Repository,
		"port", cfg.Port,
		"interval", cfg.Interval.String(),
		"schedule", cfg.Schedule,
		"continueOnError", cfg.ContinueOnError)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return srv.Start(gctx)
	})

	g.Go(func() error {
		return poller.Run(gctx)
	})

	defer notifyStopping()

	if err := g.Wait(); err != nil {
		return err
	}

	slog.Info("exporter stopped gracefully")
	return nil
}
