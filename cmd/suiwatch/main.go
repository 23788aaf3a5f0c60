// Command suiwatch compiles a declarative description of monitored Sui
// bridges and validators into Prometheus scrape configuration, per-entity
// alerting rule files and an Alertmanager routing document, and prints a
// shell-assignable export of the validated configuration to stdout.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
	"github.com/urfave/cli/v2"

	"github.com/suiwatch/suiwatch/internal/artifact"
	"github.com/suiwatch/suiwatch/internal/config"
	"github.com/suiwatch/suiwatch/internal/promcfg"
)

func main() {
	slog.SetDefault(newLogger())

	app := &cli.App{
		Name:  "suiwatch",
		Usage: "generate Prometheus and Alertmanager configuration for Sui bridge and validator monitoring",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Value: "config.yml", Usage: "Path to the monitoring input file"},
			&cli.StringFlag{Name: "output", Value: "generated_configs", Usage: "Directory the artifact set is written to"},
			&cli.StringFlag{Name: "rules-glob", Usage: "rule_files glob as seen by the Prometheus container"},
			&cli.StringFlag{Name: "prometheus-target", Usage: "Prometheus self-scrape address"},
			&cli.StringFlag{Name: "alertmanager-target", Usage: "Alertmanager address for the alerting section"},
			&cli.StringFlag{Name: "blackbox-address", Usage: "Blackbox exporter address for probe jobs"},
			&cli.BoolFlag{Name: "watch", Usage: "Keep running and regenerate on input file changes"},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		slog.Error("generation failed", "err", err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	opts := artifact.Options{
		OutputDir: c.String("output"),
		Prom: promcfg.Options{
			PrometheusTarget:        c.String("prometheus-target"),
			AlertmanagerTarget:      c.String("alertmanager-target"),
			BlackboxExporterAddress: c.String("blackbox-address"),
			RuleGlob:                c.String("rules-glob"),
		},
	}

	path := c.String("config")
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	if err := generate(cfg, opts); err != nil {
		return err
	}

	if !c.Bool("watch") {
		return nil
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	return config.Watch(ctx, path, func(cfg *config.Config) {
		if err := generate(cfg, opts); err != nil {
			slog.Error("regeneration failed — keeping previous artifacts", "err", err)
		}
	})
}

func generate(cfg *config.Config, opts artifact.Options) error {
	set, err := artifact.Build(cfg, opts)
	if err != nil {
		return err
	}
	if err := set.Write(opts.OutputDir); err != nil {
		return err
	}

	fmt.Print(set.Export)

	slog.Info("artifacts generated",
		"dir", opts.OutputDir,
		"bridges", len(cfg.Bridges),
		"validators", len(cfg.Validators),
		"rule_files", len(set.RuleFiles),
	)
	return nil
}

// newLogger logs human-readable output on a terminal and JSON otherwise.
// The export stream goes to stdout, so all logging stays on stderr.
func newLogger() *slog.Logger {
	if isatty.IsTerminal(os.Stderr.Fd()) {
		return slog.New(tint.NewHandler(os.Stderr, &tint.Options{
			Level:      slog.LevelInfo,
			TimeFormat: time.TimeOnly,
		}))
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
}
