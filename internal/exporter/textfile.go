package exporter

import (
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sorah/mackerel-plugin-bird/internal/metric"
)

// WriteTextfile writes observations in the Prometheus text format for the
// node_exporter textfile collector. The file is replaced atomically.
func WriteTextfile(path string, obs []metric.Observation) error {
	registry := prometheus.NewRegistry()
	if err := registry.Register(newCollector(obs)); err != nil {
		return fmt.Errorf("failed to register collector: %w", err)
	}

	if err := prometheus.WriteToTextfile(path, registry); err != nil {
		return fmt.Errorf("failed to write textfile: %w", err)
	}

	slog.Debug("wrote textfile", "path", path, "metrics", len(obs))
	return nil
}
