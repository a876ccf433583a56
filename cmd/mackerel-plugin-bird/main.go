package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sorah/mackerel-plugin-bird/internal/app"
	"github.com/sorah/mackerel-plugin-bird/internal/birdc"
	"github.com/sorah/mackerel-plugin-bird/internal/config"
	"github.com/sorah/mackerel-plugin-bird/internal/monitor"
	"github.com/sorah/mackerel-plugin-bird/internal/version"
	"github.com/urfave/cli/v3"
)

func main() {
	if err := newCommand(run).Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newCommand(action cli.ActionFunc) *cli.Command {
	return &cli.Command{
		Name:    "mackerel-plugin-bird",
		Usage:   "BIRD routing daemon metrics plugin for mackerel-agent",
		Version: version.String(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "path to configuration file",
			},
			&cli.StringSliceFlag{
				Name:    "protocols",
				Aliases: []string{"p"},
				Usage:   "protocol types to collect (default: Kernel, BGP, OSPF)",
			},
			&cli.StringSliceFlag{
				Name:  "ignore",
				Usage: "protocol names to skip",
			},
			&cli.BoolFlag{
				Name:  "memory-effective",
				Usage: "also report the effective memory column",
			},
			&cli.BoolFlag{
				Name:  "memory-overhead",
				Usage: "also report the overhead memory column",
			},
			&cli.StringFlag{
				Name:    "workdir",
				Usage:   "directory holding the counter state file",
				Sources: cli.EnvVars(config.EnvWorkdir),
			},
			&cli.StringFlag{
				Name:  "birdc",
				Usage: "birdc binary for IPv4",
			},
			&cli.StringFlag{
				Name:  "birdc6",
				Usage: "birdc binary for IPv6",
			},
			&cli.StringFlag{
				Name:  "socket",
				Usage: "control socket for IPv4",
			},
			&cli.StringFlag{
				Name:  "socket6",
				Usage: "control socket for IPv6",
			},
			&cli.StringFlag{
				Name:  "dual-stack",
				Usage: "query birdc6 as well: auto, on or off",
			},
			&cli.StringFlag{
				Name:  "textfile",
				Usage: "also write metrics to a node_exporter textfile",
			},
			&cli.StringFlag{
				Name:  "otlp-endpoint",
				Usage: "also push metrics to an OTLP endpoint",
			},
			&cli.StringFlag{
				Name:  "otlp-protocol",
				Usage: "OTLP transport: http or grpc (needs an endpoint)",
			},
			&cli.DurationFlag{
				Name:  "timeout",
				Usage: "deadline for the whole run (0 waits for birdc indefinitely)",
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "enable debug logging",
			},
		},
		Action: action,
	}
}

func run(ctx context.Context, cmd *cli.Command) error {
	logLevel := slog.LevelInfo
	if cmd.Bool("debug") {
		logLevel = slog.LevelDebug
	}
	// stdout carries the plugin protocol
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	mon := monitor.New(logger)

	cfg, err := config.Load(cmd.String("config"))
	if err != nil {
		return err
	}
	if err := applyFlags(cmd, cfg); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if timeout := cmd.Duration("timeout"); timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	runner := birdc.NewExecRunner(cfg.BirdcClient(), logger)
	application := app.New(cfg, runner, cmd.Root().Writer, logger)

	if os.Getenv(config.EnvMeta) == "1" {
		slog.Debug("printing graph definitions", "version", version.String())
		err = application.Meta(ctx)
	} else {
		slog.Debug("collecting metrics", "version", version.String(), "state", application.Store.Path())
		err = application.Collect(ctx, time.Now())
	}
	if err != nil {
		return err
	}

	mon.Report(ctx)
	return nil
}

// applyFlags overlays explicitly set command line flags on the configuration.
func applyFlags(cmd *cli.Command, cfg *config.Config) error {
	if cmd.IsSet("protocols") {
		cfg.Protocols = cmd.StringSlice("protocols")
	}
	if cmd.IsSet("ignore") {
		cfg.Ignore = cmd.StringSlice("ignore")
	}
	if cmd.IsSet("memory-effective") {
		cfg.Memory.Effective = cmd.Bool("memory-effective")
	}
	if cmd.IsSet("memory-overhead") {
		cfg.Memory.Overhead = cmd.Bool("memory-overhead")
	}
	if cmd.IsSet("workdir") {
		cfg.Workdir = cmd.String("workdir")
	}
	if cmd.IsSet("birdc") {
		cfg.Birdc.Binary = cmd.String("birdc")
	}
	if cmd.IsSet("birdc6") {
		cfg.Birdc.BinaryIPv6 = cmd.String("birdc6")
	}
	if cmd.IsSet("socket") {
		cfg.Birdc.Socket = cmd.String("socket")
	}
	if cmd.IsSet("socket6") {
		cfg.Birdc.SocketIPv6 = cmd.String("socket6")
	}
	if cmd.IsSet("dual-stack") {
		cfg.DualStack = birdc.DualStackMode(cmd.String("dual-stack"))
	}
	if cmd.IsSet("textfile") {
		cfg.Export.Textfile = &config.TextfileExportConfig{Path: cmd.String("textfile")}
	}
	if cmd.IsSet("otlp-endpoint") {
		if cfg.Export.OTEL == nil {
			cfg.Export.OTEL = &config.OTELExportConfig{}
		}
		cfg.Export.OTEL.Enabled = true
		cfg.Export.OTEL.Endpoint = cmd.String("otlp-endpoint")
	}
	if cmd.IsSet("otlp-protocol") {
		if cfg.Export.OTEL == nil {
			return fmt.Errorf("--otlp-protocol requires --otlp-endpoint or an export.otel config section")
		}
		cfg.Export.OTEL.Protocol = config.OTLPProtocol(cmd.String("otlp-protocol"))
	}

	return nil
}
