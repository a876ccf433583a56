package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/sorah/mackerel-plugin-bird/internal/birdc"
	"github.com/sorah/mackerel-plugin-bird/internal/config"
	"github.com/sorah/mackerel-plugin-bird/internal/exporter"
	"github.com/sorah/mackerel-plugin-bird/internal/metric"
	"github.com/sorah/mackerel-plugin-bird/internal/state"
)

// App holds initialized plugin components.
type App struct {
	Config *config.Config
	Runner birdc.Runner
	Store  *state.Store

	out    io.Writer
	logger *slog.Logger
}

// New initializes the plugin from a validated configuration. Metrics and
// graph definitions are written to out.
func New(cfg *config.Config, runner birdc.Runner, out io.Writer, logger *slog.Logger) *App {
	return &App{
		Config: cfg,
		Runner: runner,
		Store:  state.NewStore(cfg.Workdir, logger),
		out:    out,
		logger: logger,
	}
}

// Collect queries the daemons, prints one line per metric and persists the
// counter state. Nothing is printed or saved when any query or parse fails.
func (a *App) Collect(ctx context.Context, now time.Time) error {
	prev, err := a.Store.Load()
	if err != nil {
		return err
	}

	differ := metric.NewDiffer(prev)
	ts := now.Unix()

	var obs []metric.Observation
	for _, target := range birdc.Targets(a.Config.DualStack) {
		familyObs, err := a.collectFamily(ctx, target, differ, ts)
		if err != nil {
			return err
		}
		obs = append(obs, familyObs...)
	}

	if err := metric.NewEmitter(a.out).EmitAll(obs); err != nil {
		return err
	}

	if err := a.Store.Save(differ.Counters()); err != nil {
		return err
	}

	a.logger.Debug("collection complete", "metrics", len(obs))

	return a.export(ctx, obs)
}

// export feeds the observations to the configured secondary sinks.
func (a *App) export(ctx context.Context, obs []metric.Observation) error {
	if tf := a.Config.Export.Textfile; tf != nil {
		if err := exporter.WriteTextfile(tf.Path, obs); err != nil {
			return fmt.Errorf("textfile exporter: %w", err)
		}
	}

	if otel := a.Config.Export.OTEL; otel != nil && otel.Enabled {
		pushCtx, cancel := context.WithTimeout(ctx, otel.Timeout)
		defer cancel()

		if err := exporter.PushOTLP(pushCtx, otel, obs); err != nil {
			return fmt.Errorf("otel exporter: %w", err)
		}
	}

	return nil
}
